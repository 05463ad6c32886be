// Package render draws a percentile series to an image file, a plain-text
// terminal or an interactive terminal view.
package render

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sargas/network-rank/pkg/plot"
	"github.com/sargas/network-rank/pkg/series"
)

// Renderer draws a series according to a chart configuration.
type Renderer interface {
	Render(ctx context.Context, s *series.Series, cfg plot.Configuration) error
}

// RenderError wraps a backend failure.
type RenderError struct {
	Target plot.Target
	Err    error
}

func (e *RenderError) Error() string {
	if e.Target.Kind == plot.TargetFile {
		return fmt.Sprintf("rendering %s chart to %s: %v", e.Target.Format, e.Target.Path, e.Err)
	}
	return fmt.Sprintf("rendering %s chart: %v", e.Target.Kind, e.Err)
}

// Unwrap returns the backend error.
func (e *RenderError) Unwrap() error {
	return e.Err
}

// Default dimensions.
const (
	DefaultImageWidth  = 1024
	DefaultImageHeight = 600
	DefaultTextWidth   = 80
	DefaultTextHeight  = 24
)

// Options configures the backends.
type Options struct {
	// ImageWidth and ImageHeight size file output in pixels.
	ImageWidth  int
	ImageHeight int

	// TextWidth and TextHeight size terminal output in cells.
	TextWidth  int
	TextHeight int

	// Out receives plain-text charts and hosts the interactive view.
	Out io.Writer

	// In feeds key presses to the interactive view. Nil uses stdin.
	In io.Reader
}

// Adapter dispatches to the backend selected by the configuration's target.
type Adapter struct {
	opts Options
}

// New creates an Adapter, filling unset options with defaults.
func New(opts Options) *Adapter {
	if opts.ImageWidth <= 0 {
		opts.ImageWidth = DefaultImageWidth
	}
	if opts.ImageHeight <= 0 {
		opts.ImageHeight = DefaultImageHeight
	}
	if opts.TextWidth <= 0 {
		opts.TextWidth = DefaultTextWidth
	}
	if opts.TextHeight <= 0 {
		opts.TextHeight = DefaultTextHeight
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return &Adapter{opts: opts}
}

// Render draws s to cfg.Target. Backend failures are returned as *RenderError.
func (a *Adapter) Render(ctx context.Context, s *series.Series, cfg plot.Configuration) error {
	var r Renderer
	switch cfg.Target.Kind {
	case plot.TargetFile:
		r = &FileRenderer{Width: a.opts.ImageWidth, Height: a.opts.ImageHeight}
	case plot.TargetInteractive:
		r = &InteractiveRenderer{Out: a.opts.Out, In: a.opts.In}
	default:
		r = &TextRenderer{Out: a.opts.Out, Width: a.opts.TextWidth, Height: a.opts.TextHeight}
	}

	if err := r.Render(ctx, s, cfg); err != nil {
		return &RenderError{Target: cfg.Target, Err: err}
	}
	return nil
}

// chartData is a series prepared for drawing: dates normalized to the
// configured precision and the connecting curve computed.
type chartData struct {
	dates       []time.Time
	percentiles []float64
	totals      []float64

	curveDates  []time.Time
	curveValues []float64
}

func prepare(s *series.Series, cfg plot.Configuration) chartData {
	d := chartData{
		dates:       make([]time.Time, s.Len()),
		percentiles: s.Percentiles,
		totals:      s.Totals,
	}
	for i, t := range s.Dates {
		d.dates[i] = cfg.Normalize(t)
	}

	if len(d.dates) == 0 {
		return d
	}

	origin := d.dates[0]
	for _, t := range d.dates {
		if t.Before(origin) {
			origin = t
		}
	}
	xs, ys := smooth(secondsSince(origin, d.dates), d.percentiles, cfg.Smoothing, curveSamples)
	d.curveDates = datesFrom(origin, xs)
	d.curveValues = ys
	return d
}

func (d chartData) span() (time.Time, time.Time) {
	if len(d.dates) == 0 {
		now := time.Now()
		return now.Add(-24 * time.Hour), now
	}
	lo, hi := d.dates[0], d.dates[0]
	for _, t := range d.dates[1:] {
		if t.Before(lo) {
			lo = t
		}
		if t.After(hi) {
			hi = t
		}
	}
	return lo, hi
}
