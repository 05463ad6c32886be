package render

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	drawille "github.com/chriskim06/drawille-go"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/sargas/network-rank/pkg/plot"
	"github.com/sargas/network-rank/pkg/series"
)

// TextRenderer draws a braille chart for terminals without a display.
type TextRenderer struct {
	Out    io.Writer
	Width  int
	Height int
}

// Render writes the chart to Out.
func (r *TextRenderer) Render(ctx context.Context, s *series.Series, cfg plot.Configuration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	text := textChart(prepare(s, cfg), cfg, textLayout{
		width:      r.Width,
		height:     r.Height,
		showTotals: cfg.ShowTotals,
	})
	_, err := io.WriteString(r.Out, text)
	return err
}

// TerminalSize returns the size of the terminal on fd, or the defaults when
// fd is not a terminal.
func TerminalSize(fd int) (width, height int) {
	w, h, err := term.GetSize(fd)
	if err != nil || w <= 0 || h <= 0 {
		return DefaultTextWidth, DefaultTextHeight
	}
	return w, h
}

type textLayout struct {
	width      int
	height     int
	showTotals bool
	colors     []drawille.Color
}

// Lines used around the canvases: title, axis caption, date range, latest.
const textChromeLines = 4

func textChart(d chartData, cfg plot.Configuration, layout textLayout) string {
	var b strings.Builder
	fmt.Fprintln(&b, cfg.Title)

	switch len(d.dates) {
	case 0:
		fmt.Fprintln(&b, "No samples to plot.")
		return b.String()
	case 1:
		fmt.Fprintf(&b, "%s: %.1f %s (%s networks)\n",
			d.dates[0].Format(cfg.DateOutputFormat), d.percentiles[0],
			strings.ToLower(cfg.YLabel), humanize.Comma(int64(d.totals[0])))
		return b.String()
	}

	width := max(layout.width, 20)
	height := max(layout.height-textChromeLines, 4)
	primaryHeight := height
	totalsHeight := 0
	if layout.showTotals {
		totalsHeight = max(height/3, 3)
		primaryHeight = max(height-totalsHeight-1, 3)
	}

	lo, hi := d.span()
	points := max(width*2, 2)

	lowP, highP := bounds(d.percentiles)
	fmt.Fprintf(&b, "%s (%.1f to %.1f)\n", cfg.YLabel, lowP, highP)
	curve := resample(secondsSince(lo, d.curveDates), d.curveValues, points)
	b.WriteString(canvas(curve, width, primaryHeight, layout.colors))

	fmt.Fprintf(&b, "%s: %s to %s\n", cfg.XLabel, lo.Format(cfg.DateOutputFormat), hi.Format(cfg.DateOutputFormat))

	if layout.showTotals {
		lowT, highT := bounds(d.totals)
		fmt.Fprintf(&b, "%s (%s to %s)\n", cfg.SecondaryAxisLabel,
			humanize.Comma(int64(lowT)), humanize.Comma(int64(highT)))
		totals := resample(secondsSince(lo, d.dates), d.totals, points)
		b.WriteString(canvas(totals, width, totalsHeight, layout.colors))
	}

	last := len(d.dates) - 1
	fmt.Fprintf(&b, "Latest: %.1f on %s, %s networks\n",
		d.percentiles[last], d.dates[last].Format(cfg.DateOutputFormat), humanize.Comma(int64(d.totals[last])))

	return b.String()
}

func canvas(values []float64, width, height int, colors []drawille.Color) string {
	if lo, hi := bounds(values); lo == hi {
		// A flat series has no vertical range to scale; draw the baseline directly.
		return strings.Repeat("\n", height-1) + strings.Repeat("⣀", width) + "\n"
	}

	c := drawille.NewCanvas(width, height)
	c.NumDataPoints = len(values)
	c.ShowAxis = true
	c.LineColors = make([]drawille.Color, 1)
	if len(colors) > 0 {
		c.LineColors[0] = colors[0]
	}
	c.Fill([][]float64{values})

	out := c.String()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

func bounds(values []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
