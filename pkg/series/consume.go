package series

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/sargas/network-rank/pkg/parser"
)

// ConsumeOptions controls how a line stream is folded into a series.
type ConsumeOptions struct {
	// Classifier classifies each line. The zero value uses local time.
	Classifier parser.Classifier

	// Strict aborts on the first malformed record instead of skipping it.
	Strict bool

	// Logger receives warnings for skipped records. Nil uses slog.Default().
	Logger *slog.Logger
}

// Consume reads every line from src and builds a series. Stats are returned
// even when the build fails so callers can report what was read.
func Consume(ctx context.Context, src parser.LineSource, opts ConsumeOptions) (*Series, *Stats, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	b := NewBuilder()
	stats := &Stats{}

	for {
		line, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, err
		}
		stats.LinesRead++

		rec, err := opts.Classifier.Classify(line.Content)
		if err != nil {
			var mre *parser.MalformedRecordError
			if !errors.As(err, &mre) {
				return nil, stats, err
			}
			stats.Malformed++
			if opts.Strict {
				return nil, stats, fmt.Errorf("%s:%d: %w", line.Source, line.LineNum, err)
			}
			logger.Warn("Skipping malformed record",
				slog.String("source", line.Source),
				slog.Int("line", line.LineNum),
				slog.String("reason", mre.Reason))
			b.Discard(mre.Kind)
			continue
		}

		switch rec.Kind {
		case parser.KindSample:
			stats.Samples++
		case parser.KindTimestamp:
			stats.Timestamps++
		default:
			stats.Noise++
		}
		b.Add(rec, line.Source, line.LineNum)
	}

	s, err := b.Build()
	if err != nil {
		return nil, stats, err
	}
	stats.Pairs = s.Len()

	logger.Debug("Series built",
		slog.Int("lines", stats.LinesRead),
		slog.Int("pairs", stats.Pairs),
		slog.Int("malformed", stats.Malformed),
		slog.String("year_span", s.YearSpan.String()))

	return s, stats, nil
}
