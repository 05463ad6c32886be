// Package series folds classified ranking records into aligned date,
// percentile and total sequences.
package series

import (
	"errors"
	"fmt"
	"time"

	"github.com/sargas/network-rank/pkg/parser"
)

// YearSpan records whether the committed dates fall within one calendar year.
type YearSpan int

const (
	// YearSpanEmpty means no date has been committed yet.
	YearSpanEmpty YearSpan = iota
	// YearSpanUniform means every date shares one calendar year.
	YearSpanUniform
	// YearSpanVaries means at least two dates have different years.
	YearSpanVaries
)

// String returns the lowercase name of the span.
func (y YearSpan) String() string {
	switch y {
	case YearSpanUniform:
		return "uniform"
	case YearSpanVaries:
		return "varies"
	default:
		return "empty"
	}
}

// Series holds three aligned sequences of equal length.
type Series struct {
	Dates       []time.Time
	Percentiles []float64
	Totals      []float64

	// YearSpan is the final year variance of Dates.
	YearSpan YearSpan
}

// Len returns the number of samples.
func (s *Series) Len() int {
	return len(s.Dates)
}

// Point is a single sample of a series.
type Point struct {
	Date       time.Time
	Percentile float64
	Total      float64
}

// At returns the i-th sample.
func (s *Series) At(i int) Point {
	return Point{Date: s.Dates[i], Percentile: s.Percentiles[i], Total: s.Totals[i]}
}

// Latest returns the last sample in input order.
func (s *Series) Latest() (Point, bool) {
	if s.Len() == 0 {
		return Point{}, false
	}
	return s.At(s.Len() - 1), true
}

// Best returns the sample with the highest percentile (earliest on ties).
func (s *Series) Best() (Point, bool) {
	return s.pick(func(a, b float64) bool { return a > b })
}

// Worst returns the sample with the lowest percentile (earliest on ties).
func (s *Series) Worst() (Point, bool) {
	return s.pick(func(a, b float64) bool { return a < b })
}

func (s *Series) pick(better func(a, b float64) bool) (Point, bool) {
	if s.Len() == 0 {
		return Point{}, false
	}
	idx := 0
	for i := 1; i < s.Len(); i++ {
		if better(s.Percentiles[i], s.Percentiles[idx]) {
			idx = i
		}
	}
	return s.At(idx), true
}

// MaxTotal returns the largest population seen, or zero for an empty series.
func (s *Series) MaxTotal() float64 {
	var max float64
	for _, t := range s.Totals {
		if t > max {
			max = t
		}
	}
	return max
}

// Stats counts what a build saw in the input stream.
type Stats struct {
	LinesRead  int
	Samples    int
	Timestamps int
	Noise      int
	Malformed  int
	Pairs      int
}

// ErrUnpairedRecord marks a sample or timestamp left without its counterpart.
var ErrUnpairedRecord = errors.New("unpaired record")

// Orphan identifies a record that never found its counterpart.
type Orphan struct {
	Kind parser.Kind

	// Source names the file or URI the record was read from.
	Source  string
	LineNum int
}

// Location returns "source:line", or "line N" when the source is unknown.
func (o Orphan) Location() string {
	if o.Source == "" {
		return fmt.Sprintf("line %d", o.LineNum)
	}
	return fmt.Sprintf("%s:%d", o.Source, o.LineNum)
}

// UnpairedRecordError reports every orphaned record found during a build.
type UnpairedRecordError struct {
	Orphans []Orphan
}

func (e *UnpairedRecordError) Error() string {
	first := e.Orphans[0]
	if len(e.Orphans) == 1 {
		return fmt.Sprintf("unpaired %s record at %s", first.Kind, first.Location())
	}
	return fmt.Sprintf("%d unpaired records (first: %s at %s)", len(e.Orphans), first.Kind, first.Location())
}

// Unwrap lets errors.Is match ErrUnpairedRecord.
func (e *UnpairedRecordError) Unwrap() error {
	return ErrUnpairedRecord
}
