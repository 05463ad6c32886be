package render

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/sargas/network-rank/pkg/plot"
	"github.com/sargas/network-rank/pkg/series"
)

// Series names shown in the legend when totals are overlaid.
const (
	pointsName = "Samples"
	curveName  = "Network Rank"
	totalsName = "Total # of Networks"
)

// FileRenderer writes PNG or SVG charts with go-chart.
type FileRenderer struct {
	Width  int
	Height int
}

// Render writes the chart to cfg.Target.Path.
func (r *FileRenderer) Render(ctx context.Context, s *series.Series, cfg plot.Configuration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(cfg.Target.Path) // #nosec G304 -- user-provided output path is expected
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	if err := r.Write(s, cfg, f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Write encodes the chart in cfg.Target.Format to w.
func (r *FileRenderer) Write(s *series.Series, cfg plot.Configuration, w io.Writer) error {
	provider := chart.PNG
	if cfg.Target.Format == plot.FormatSVG {
		provider = chart.SVG
	}

	ch := buildChart(prepare(s, cfg), cfg, r.Width, r.Height)
	return ch.Render(provider, w)
}

// pointStyle renders dots without a visible connecting line.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: drawing.ColorTransparent,
		DotWidth:    4,
		DotColor:    col,
	}
}

func buildChart(d chartData, cfg plot.Configuration, width, height int) *chart.Chart {
	lo, hi := d.span()
	if !hi.After(lo) {
		// go-chart rejects a zero-width range; center a single day on the sample.
		lo = lo.Add(-12 * time.Hour)
		hi = hi.Add(12 * time.Hour)
	}

	var seriesList []chart.Series
	if len(d.dates) == 0 {
		// go-chart needs one visible series; draw an invisible baseline.
		seriesList = append(seriesList, chart.TimeSeries{
			XValues: []time.Time{lo, hi},
			YValues: []float64{0, 0},
			Style:   chart.Style{StrokeColor: drawing.ColorTransparent},
		})
	} else {
		seriesList = append(seriesList,
			chart.TimeSeries{
				Name:    pointsName,
				XValues: d.dates,
				YValues: d.percentiles,
				Style:   pointStyle(chart.ColorBlue),
			},
			chart.TimeSeries{
				Name:    curveName,
				XValues: d.curveDates,
				YValues: d.curveValues,
				Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2},
			},
		)
	}

	ch := &chart.Chart{
		Title:      cfg.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           cfg.XLabel,
			ValueFormatter: chart.TimeValueFormatterWithFormat(cfg.DateOutputFormat),
			Range: &chart.ContinuousRange{
				Min: chart.TimeToFloat64(lo),
				Max: chart.TimeToFloat64(hi),
			},
		},
		YAxis: chart.YAxis{
			Name:  cfg.YLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
	}

	if cfg.ShowTotals && len(d.dates) > 0 {
		maxTotal := 0.0
		for _, t := range d.totals {
			if t > maxTotal {
				maxTotal = t
			}
		}
		seriesList = append(seriesList, chart.TimeSeries{
			Name:    totalsName,
			YAxis:   chart.YAxisSecondary,
			XValues: d.dates,
			YValues: d.totals,
			Style: chart.Style{
				StrokeColor: chart.ColorAlternateGray,
				StrokeWidth: 1,
				DotWidth:    3,
				DotColor:    chart.ColorAlternateGray,
			},
		})
		ch.YAxisSecondary = chart.YAxis{
			Name:           cfg.SecondaryAxisLabel,
			Range:          &chart.ContinuousRange{Min: 0, Max: maxTotal * 1.1},
			ValueFormatter: chart.IntValueFormatter,
		}
	}

	ch.Series = seriesList
	if cfg.ShowTotals && len(d.dates) > 0 {
		ch.Elements = []chart.Renderable{chart.Legend(ch)}
	}
	return ch
}
