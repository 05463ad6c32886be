package plot

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sargas/network-rank/pkg/series"
)

// Fixed labels.
const (
	YLabel             = "Percentile"
	XLabel             = "Date"
	SecondaryAxisLabel = "Number Of Networks"
)

// DateKeyUnix is the date input format of second-precision series: dates are
// keyed by their Unix-seconds counter.
const DateKeyUnix = "unix"

// TargetKind selects where a chart goes.
type TargetKind int

const (
	TargetText TargetKind = iota
	TargetInteractive
	TargetFile
)

// String returns the lowercase name of the target kind.
func (k TargetKind) String() string {
	switch k {
	case TargetInteractive:
		return "interactive"
	case TargetFile:
		return "file"
	default:
		return "text"
	}
}

// FileFormat is the encoding of a file target.
type FileFormat string

const (
	FormatPNG FileFormat = "png"
	FormatSVG FileFormat = "svg"
)

// Target is the resolved output of a run.
type Target struct {
	Kind TargetKind

	// Path and Format are set for TargetFile.
	Path   string
	Format FileFormat
}

// Configuration is the immutable description of a chart.
type Configuration struct {
	Title  string
	YLabel string
	XLabel string

	// DateInputFormat is the key format dates are exchanged in: a Go layout,
	// or DateKeyUnix.
	DateInputFormat string

	// DateOutputFormat is the Go layout of X axis tick labels.
	DateOutputFormat string

	Smoothing  Smoothing
	ShowTotals bool

	// SecondaryAxisLabel is empty when no secondary axis is drawn.
	SecondaryAxisLabel string

	Target Target
}

// HasSecondaryAxis reports whether the totals curve gets its own axis.
func (c Configuration) HasSecondaryAxis() bool {
	return c.SecondaryAxisLabel != ""
}

// DateKey formats a date in the configuration's input format.
func (c Configuration) DateKey(t time.Time) string {
	if c.DateInputFormat == DateKeyUnix {
		return strconv.FormatInt(t.Unix(), 10)
	}
	return t.Format(c.DateInputFormat)
}

// ParseDateKey parses a key produced by DateKey back into a local time.
func (c Configuration) ParseDateKey(key string) (time.Time, error) {
	return c.parseDateKeyIn(key, time.Local)
}

func (c Configuration) parseDateKeyIn(key string, loc *time.Location) (time.Time, error) {
	if c.DateInputFormat == DateKeyUnix {
		secs, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("parsing date key %q: %w", key, err)
		}
		return time.Unix(secs, 0).In(loc), nil
	}
	t, err := time.ParseInLocation(c.DateInputFormat, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date key %q: %w", key, err)
	}
	return t, nil
}

// Normalize truncates a date to the configured precision by passing it
// through its key. The date keeps its location.
func (c Configuration) Normalize(t time.Time) time.Time {
	n, err := c.parseDateKeyIn(c.DateKey(t), t.Location())
	if err != nil {
		return t
	}
	return n
}

// Derive builds the chart configuration. It is a pure function of its inputs;
// display is only consulted when no file output was requested.
func Derive(opts Options, span series.YearSpan, display Display) (Configuration, error) {
	if err := opts.Validate(); err != nil {
		return Configuration{}, err
	}

	smoothing, _ := ParseSmoothing(string(opts.Smoothing))
	precision, _ := ParsePrecision(string(opts.Precision))

	cfg := Configuration{
		Title:      opts.Title,
		YLabel:     YLabel,
		XLabel:     XLabel,
		Smoothing:  smoothing,
		ShowTotals: opts.ShowTotals,
	}
	if cfg.Title == "" {
		cfg.Title = DefaultTitle
	}

	cfg.DateInputFormat, cfg.DateOutputFormat = dateFormats(precision, span)

	if opts.ShowTotals {
		cfg.SecondaryAxisLabel = SecondaryAxisLabel
	}

	cfg.Target = resolveTarget(opts, display)

	return cfg, nil
}

func dateFormats(precision Precision, span series.YearSpan) (input, output string) {
	// Labels must carry the year once samples cross a year boundary.
	withYear := span == series.YearSpanVaries

	if precision == PrecisionDateTime {
		if withYear {
			return DateKeyUnix, "2006-01-02 15:04"
		}
		return DateKeyUnix, "01/02 15:04"
	}

	if withYear {
		return "2006-01-02", "2006-01-02"
	}
	return "2006-01-02", "01/02"
}

func resolveTarget(opts Options, display Display) Target {
	switch {
	case opts.PNGPath != "":
		return Target{Kind: TargetFile, Path: opts.PNGPath, Format: FormatPNG}
	case opts.SVGPath != "":
		return Target{Kind: TargetFile, Path: opts.SVGPath, Format: FormatSVG}
	case display != nil && display.Available():
		return Target{Kind: TargetInteractive}
	default:
		return Target{Kind: TargetText}
	}
}
