// Package output formats parsed ranking series as text or JSON reports.
package output

import (
	"time"

	"github.com/sargas/network-rank/pkg/plot"
	"github.com/sargas/network-rank/pkg/series"
)

// Report is the complete description of a parsed series.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary `json:"summary"`

	// Points lists every sample in input order.
	Points []Point `json:"points"`

	// Metadata provides context about the run.
	Metadata Metadata `json:"metadata"`
}

// Point is one sample with its date rendered as a key.
type Point struct {
	Date       string  `json:"date"`
	Percentile float64 `json:"percentile"`
	Total      int64   `json:"total"`
}

// Summary provides aggregate statistics.
type Summary struct {
	Samples  int    `json:"samples"`
	YearSpan string `json:"year_span"`

	Latest *Point `json:"latest,omitempty"`
	Best   *Point `json:"best,omitempty"`
	Worst  *Point `json:"worst,omitempty"`

	MaxTotal int64 `json:"max_total"`
}

// Metadata provides context about the run.
type Metadata struct {
	// Source is the file path or URI that was read.
	Source string `json:"source"`

	// DateFormat is the layout of Point.Date, or "unix" for second counters.
	DateFormat string `json:"date_format"`

	LinesRead int `json:"lines_read"`
	Noise     int `json:"noise"`
	Malformed int `json:"malformed"`

	// GeneratedAt is when the report was built.
	GeneratedAt time.Time `json:"generated_at"`
}

// NewReport creates a Report from a built series. Stats may be nil.
func NewReport(s *series.Series, stats *series.Stats, cfg plot.Configuration, source string) *Report {
	report := &Report{
		Points: make([]Point, 0, s.Len()),
		Summary: Summary{
			Samples:  s.Len(),
			YearSpan: s.YearSpan.String(),
			MaxTotal: int64(s.MaxTotal()),
		},
		Metadata: Metadata{
			Source:      source,
			DateFormat:  cfg.DateInputFormat,
			GeneratedAt: time.Now(),
		},
	}

	for i := 0; i < s.Len(); i++ {
		report.Points = append(report.Points, newPoint(s.At(i), cfg))
	}

	if p, ok := s.Latest(); ok {
		report.Summary.Latest = pointPtr(newPoint(p, cfg))
	}
	if p, ok := s.Best(); ok {
		report.Summary.Best = pointPtr(newPoint(p, cfg))
	}
	if p, ok := s.Worst(); ok {
		report.Summary.Worst = pointPtr(newPoint(p, cfg))
	}

	if stats != nil {
		report.Metadata.LinesRead = stats.LinesRead
		report.Metadata.Noise = stats.Noise
		report.Metadata.Malformed = stats.Malformed
	}

	return report
}

func newPoint(p series.Point, cfg plot.Configuration) Point {
	return Point{
		Date:       cfg.DateKey(p.Date),
		Percentile: p.Percentile,
		Total:      int64(p.Total),
	}
}

func pointPtr(p Point) *Point {
	return &p
}
