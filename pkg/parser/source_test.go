package parser

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readAll(t *testing.T, src LineSource) []*LogLine {
	t.Helper()
	ctx := context.Background()
	var lines []*LogLine
	for {
		line, err := src.Next(ctx)
		if err == io.EOF {
			return lines
		}
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		lines = append(lines, line)
	}
}

func writeLog(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReaderSource_LongLine(t *testing.T) {
	long := strings.Repeat("x", 2*1024*1024)
	content := "Mon, 05 Jan 2009\n10 out of 200\n" + long + "\nTue, 06 Jan 2009\n5 out of 200"
	src := NewReaderSource("mem", io.NopCloser(strings.NewReader(content)))
	defer src.Close()

	lines := readAll(t, src)
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(lines))
	}
	if len(lines[2].Content) != len(long) {
		t.Errorf("long line has %d bytes, want %d", len(lines[2].Content), len(long))
	}
	if lines[4].Content != "5 out of 200" || lines[4].LineNum != 5 {
		t.Errorf("last line = %+v", lines[4])
	}
}

func TestReaderSource_CRLF(t *testing.T) {
	src := NewReaderSource("mem", io.NopCloser(strings.NewReader("10 out of 200\r\nnoise\r\n")))
	defer src.Close()

	lines := readAll(t, src)
	if len(lines) != 2 || lines[0].Content != "10 out of 200" || lines[1].Content != "noise" {
		t.Errorf("lines = %q, %q", lines[0].Content, lines[1].Content)
	}
}

func TestReaderSource_Next(t *testing.T) {
	content := "Mon, 05 Jan 2009\n10 out of 200\n\nnoise\n"
	src := NewReaderSource("mem", io.NopCloser(strings.NewReader(content)))
	defer src.Close()

	lines := readAll(t, src)
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}
	if lines[1].Content != "10 out of 200" {
		t.Errorf("Content = %q", lines[1].Content)
	}
	if lines[1].LineNum != 2 {
		t.Errorf("LineNum = %d, want 2", lines[1].LineNum)
	}
	if lines[0].Source != "mem" {
		t.Errorf("Source = %q, want mem", lines[0].Source)
	}
}

func TestReaderSource_ContextCancellation(t *testing.T) {
	src := NewReaderSource("mem", io.NopCloser(strings.NewReader("a\nb\n")))
	defer src.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := src.Next(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestReaderSource_CloseTwice(t *testing.T) {
	src := NewReaderSource("mem", io.NopCloser(strings.NewReader("")))
	if err := src.Close(); err != nil {
		t.Fatal(err)
	}
	if err := src.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestMultiSource_Concatenates(t *testing.T) {
	a := NewReaderSource("a", io.NopCloser(strings.NewReader("1\n2\n")))
	b := NewReaderSource("b", io.NopCloser(strings.NewReader("")))
	c := NewReaderSource("c", io.NopCloser(strings.NewReader("3\n")))

	src := NewMultiSource(a, b, c)
	defer src.Close()

	lines := readAll(t, src)
	var got []string
	for _, l := range lines {
		got = append(got, l.Source+":"+l.Content)
	}
	want := "a:1,a:2,c:3"
	if strings.Join(got, ",") != want {
		t.Errorf("got %v, want %s", got, want)
	}
}

func TestOpen_LocalFile(t *testing.T) {
	dir := t.TempDir()
	path := writeLog(t, dir, "network-rank", "Mon, 05 Jan 2009\n10 out of 200\n")

	src, err := Open(context.Background(), path, OpenOptions{})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer src.Close()

	if lines := readAll(t, src); len(lines) != 2 {
		t.Errorf("got %d lines, want 2", len(lines))
	}
}

func TestOpen_Glob(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "rank.2", "second\n")
	writeLog(t, dir, "rank.1", "first\n")
	writeLog(t, dir, "other.txt", "ignored\n")

	src, err := Open(context.Background(), filepath.Join(dir, "rank.*"), OpenOptions{})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer src.Close()

	lines := readAll(t, src)
	if len(lines) != 2 || lines[0].Content != "first" || lines[1].Content != "second" {
		t.Errorf("unexpected lines: %+v", lines)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "missing"), OpenOptions{})
	if !errors.Is(err, ErrStreamUnavailable) {
		t.Errorf("expected ErrStreamUnavailable, got %v", err)
	}
}

func TestOpen_EmptyLocation(t *testing.T) {
	_, err := Open(context.Background(), "", OpenOptions{})
	if !errors.Is(err, ErrStreamUnavailable) {
		t.Errorf("expected ErrStreamUnavailable, got %v", err)
	}
}

func TestOpen_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Mon, 05 Jan 2009\n10 out of 200\n"))
	}))
	defer server.Close()

	src, err := Open(context.Background(), server.URL+"/network-rank", OpenOptions{})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer src.Close()

	lines := readAll(t, src)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0].Source != server.URL+"/network-rank" {
		t.Errorf("Source = %q", lines[0].Source)
	}
}

func TestOpen_HTTPNotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := Open(context.Background(), server.URL, OpenOptions{})
	if !errors.Is(err, ErrStreamUnavailable) {
		t.Errorf("expected ErrStreamUnavailable, got %v", err)
	}
}

func TestIsRemote(t *testing.T) {
	tests := []struct {
		location string
		want     bool
	}{
		{"http://example.com/network-rank", true},
		{"HTTPS://example.com/network-rank", true},
		{"network-rank", false},
		{"/var/log/network-rank", false},
		{"ftp://example.com/network-rank", false},
	}
	for _, tt := range tests {
		if got := IsRemote(tt.location); got != tt.want {
			t.Errorf("IsRemote(%q) = %v, want %v", tt.location, got, tt.want)
		}
	}
}
