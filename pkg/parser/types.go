// Package parser classifies ranking log lines and supplies them from local files
// or remote URIs.
package parser

import "time"

// LogLine is a raw log line before classification.
type LogLine struct {
	// Content is the raw line text without the trailing newline.
	Content string

	// Source is the file path or URI this line came from.
	Source string

	// LineNum is the 1-based line number in the source.
	LineNum int
}

// Kind identifies the shape of a classified line.
type Kind int

const (
	// KindNone is any line that is neither a sample nor a timestamp.
	KindNone Kind = iota
	// KindSample is a "<rank> out of <total>" line.
	KindSample
	// KindTimestamp is a weekday-prefixed date line.
	KindTimestamp
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindSample:
		return "sample"
	case KindTimestamp:
		return "timestamp"
	default:
		return "none"
	}
}

// Record is the result of classifying a single line.
// Only the fields matching Kind are meaningful.
type Record struct {
	Kind Kind

	// Rank and Total are set for KindSample.
	Rank  int64
	Total int64

	// Time is set for KindTimestamp, in the classifier's location.
	Time time.Time

	// HasClock reports whether the line carried a time of day.
	HasClock bool
}

// Percentile converts a sample into an upper percentile where 100 is the best
// possible rank. The caller must ensure Total is positive.
func (r Record) Percentile() float64 {
	return (1 - float64(r.Rank)/float64(r.Total)) * 100
}
