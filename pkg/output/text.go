package output

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	_, err := fmt.Fprintf(w, "network-rank: %s\n", summaryLine(report))
	return err
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	fmt.Fprintln(w, "=== Network Rank Report ===")
	if report.Metadata.Source != "" {
		fmt.Fprintf(w, "Source: %s\n", report.Metadata.Source)
	}
	fmt.Fprintln(w)

	if len(report.Points) > 0 {
		fmt.Fprintf(w, "%-20s %10s %12s\n", "DATE", "PERCENTILE", "NETWORKS")
		for _, p := range report.Points {
			fmt.Fprintf(w, "%-20s %10.2f %12s\n", p.Date, p.Percentile, humanize.Comma(p.Total))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %s\n", summaryLine(report))

	s := report.Summary
	if s.Latest != nil {
		fmt.Fprintf(w, "Latest:  %s\n", describePoint(s.Latest))
		fmt.Fprintf(w, "Best:    %s\n", describePoint(s.Best))
		fmt.Fprintf(w, "Worst:   %s\n", describePoint(s.Worst))
	}

	if f.opts.Verbose {
		m := report.Metadata
		fmt.Fprintf(w, "Lines read: %s (%s ignored, %s malformed)\n",
			humanize.Comma(int64(m.LinesRead)), humanize.Comma(int64(m.Noise)), humanize.Comma(int64(m.Malformed)))
		fmt.Fprintf(w, "Date format: %s\n", m.DateFormat)
	}

	return nil
}

func summaryLine(report *Report) string {
	s := report.Summary
	years := "within one year"
	switch s.YearSpan {
	case "varies":
		years = "spanning several years"
	case "empty":
		years = "no dates"
	}
	return fmt.Sprintf("%d sample(s), %s, at most %s networks", s.Samples, years, humanize.Comma(s.MaxTotal))
}

func describePoint(p *Point) string {
	return fmt.Sprintf("%.2f on %s (%s networks)", p.Percentile, p.Date, humanize.Comma(p.Total))
}
