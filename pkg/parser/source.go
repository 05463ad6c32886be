package parser

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sargas/network-rank/pkg/fetch"
)

// ReaderSource implements LineSource over any reader.
type ReaderSource struct {
	rc      io.ReadCloser
	reader  *bufio.Reader
	source  string
	lineNum int
	done    bool
}

// NewReaderSource creates a LineSource reading lines from rc. Lines have no
// length limit. The name is reported as LogLine.Source.
func NewReaderSource(name string, rc io.ReadCloser) *ReaderSource {
	return &ReaderSource{
		rc:     rc,
		reader: bufio.NewReaderSize(rc, 64*1024),
		source: name,
	}
}

// NewFileSource opens a local log file.
func NewFileSource(path string) (*ReaderSource, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("%w: opening log file %s: %v", ErrStreamUnavailable, path, err)
	}
	return NewReaderSource(path, f), nil
}

// Next returns the next line.
func (s *ReaderSource) Next(ctx context.Context) (*LogLine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.done {
		return nil, io.EOF
	}

	text, err := s.reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("reading %s: %w", s.source, err)
		}
		s.done = true
		if text == "" {
			return nil, io.EOF
		}
	}

	s.lineNum++
	return &LogLine{
		Content: strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r"),
		Source:  s.source,
		LineNum: s.lineNum,
	}, nil
}

// Close releases the underlying reader.
func (s *ReaderSource) Close() error {
	if s.rc == nil {
		return nil
	}
	err := s.rc.Close()
	s.rc = nil
	return err
}

// MultiSource reads several sources one after the other.
type MultiSource struct {
	sources []LineSource
	index   int
}

// NewMultiSource concatenates sources in the given order.
func NewMultiSource(sources ...LineSource) *MultiSource {
	return &MultiSource{sources: sources}
}

// Next returns the next line, moving on to the following source at io.EOF.
func (m *MultiSource) Next(ctx context.Context) (*LogLine, error) {
	for m.index < len(m.sources) {
		line, err := m.sources[m.index].Next(ctx)
		if err == io.EOF {
			m.index++
			continue
		}
		return line, err
	}
	return nil, io.EOF
}

// Close closes every underlying source.
func (m *MultiSource) Close() error {
	var errs []error
	for _, s := range m.sources {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenOptions configures how Open reaches a log.
type OpenOptions struct {
	// HTTP configures remote retrieval for http and https locations.
	HTTP fetch.Options
}

// IsRemote reports whether a location is fetched over HTTP.
func IsRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Open returns a LineSource for a local path, glob pattern or HTTP URI.
// Failures to reach the log are reported as ErrStreamUnavailable.
func Open(ctx context.Context, location string, opts OpenOptions) (LineSource, error) {
	if location == "" {
		return nil, fmt.Errorf("%w: no log location given", ErrStreamUnavailable)
	}

	if IsRemote(location) {
		body, err := fetch.NewClient(opts.HTTP).Get(ctx, location)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStreamUnavailable, err)
		}
		return NewReaderSource(location, body), nil
	}

	files, err := ExpandGlob(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStreamUnavailable, err)
	}

	if len(files) == 1 {
		return NewFileSource(files[0])
	}

	sources := make([]LineSource, 0, len(files))
	for _, file := range files {
		src, err := NewFileSource(file)
		if err != nil {
			for _, opened := range sources {
				_ = opened.Close()
			}
			return nil, err
		}
		sources = append(sources, src)
	}
	return NewMultiSource(sources...), nil
}
