package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sargas/network-rank/pkg/config"
	"github.com/sargas/network-rank/pkg/output"
	"github.com/sargas/network-rank/pkg/plot"
	"github.com/sargas/network-rank/pkg/render"
)

var errImageConflict = fmt.Errorf("%w: PNG and SVG output are mutually exclusive", plot.ErrConfigurationConflict)

// ChartOptions holds command-line options for drawing the chart.
type ChartOptions struct {
	Totals  bool
	PNG     string
	SVG     string
	Curve   string
	Title   string
	Summary bool
}

// NewChartCommand creates the command that draws the ranking chart. It is
// used as the root command; subcommands are added by the caller.
func NewChartCommand(global *GlobalOptions, env Environment) *cobra.Command {
	opts := &ChartOptions{}

	cmd := &cobra.Command{
		Use:   "network-rank",
		Short: "Chart an IRC network's ranking over time",
		Long: `network-rank reads a ranking log (a file, a glob of files, or an http(s) URI)
in which every "N out of M" line is paired with a date line, and charts the
network's percentile over time.

Output goes to a PNG or SVG image when requested, otherwise to an interactive
terminal view when stdout is a terminal, otherwise to plain text.

Exit codes:
  0 - Chart drawn (an empty chart included)
  1 - Invalid flags, arguments or configuration
  2 - Log unreadable, unpaired records, or rendering failed`,
		Args: func(cmd *cobra.Command, args []string) error {
			return NewUsageError(cobra.MaximumNArgs(1)(cmd, args))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChart(cmd, args, global, opts, env)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.Totals, "totals", "t", false, "Overlay the total number of networks on a second axis")
	flags.StringVarP(&opts.PNG, "png", "p", "", "Write a PNG image (default file "+plot.DefaultPNGPath+")")
	flags.StringVarP(&opts.SVG, "svg", "s", "", "Write an SVG image (default file "+plot.DefaultSVGPath+")")
	flags.StringVarP(&opts.Curve, "curve", "c", config.DefaultCurve, "Curve through the samples (csplines|bezier|none)")
	flags.StringVar(&opts.Title, "title", "", "Chart title (default \""+plot.DefaultTitle+"\")")
	flags.BoolVar(&opts.Summary, "summary", false, "Print a one-line summary to stderr after drawing")
	flags.Lookup("png").NoOptDefVal = plot.DefaultPNGPath
	flags.Lookup("svg").NoOptDefVal = plot.DefaultSVGPath

	return cmd
}

func runChart(cmd *cobra.Command, args []string, global *GlobalOptions, opts *ChartOptions, env Environment) error {
	ctx := contextOf(cmd)
	logger := global.Logger(cmd.ErrOrStderr())

	if err := opts.resolveImagePath(cmd, args); err != nil {
		return err
	}
	// Image targets come only from flags; reject a conflict before reading
	// the config file or the log.
	if opts.PNG != "" && opts.SVG != "" {
		return NewUsageError(errImageConflict)
	}

	cfg, err := global.loadConfig(ctx, cmd, func(cfg *config.Config) {
		flags := cmd.Flags()
		if flags.Changed("totals") {
			cfg.Totals = opts.Totals
		}
		if flags.Changed("curve") {
			cfg.Curve = opts.Curve
		}
		if flags.Changed("title") {
			cfg.Title = opts.Title
		}
	})
	if err != nil {
		return err
	}

	plotOpts := plot.Options{
		ShowTotals: cfg.Totals,
		PNGPath:    opts.PNG,
		SVGPath:    opts.SVG,
		Source:     cfg.Data,
		Smoothing:  plot.Smoothing(cfg.Curve),
		Precision:  plot.Precision(cfg.Precision),
		Title:      cfg.Title,
	}
	if err := plotOpts.Validate(); err != nil {
		return NewUsageError(err)
	}

	s, stats, err := loadSeries(ctx, cfg, logger)
	if err != nil {
		return err
	}

	chartCfg, err := plot.Derive(plotOpts, s.YearSpan, env.Display)
	if err != nil {
		return NewUsageError(err)
	}
	logger.Debug("Chart configured",
		slog.String("target", chartCfg.Target.Kind.String()),
		slog.String("date_format", chartCfg.DateOutputFormat),
		slog.String("curve", string(chartCfg.Smoothing)))

	renderer := render.New(render.Options{
		ImageWidth:  cfg.Chart.Width,
		ImageHeight: cfg.Chart.Height,
		TextWidth:   env.TextWidth,
		TextHeight:  env.TextHeight,
		Out:         cmd.OutOrStdout(),
	})
	if err := renderer.Render(ctx, s, chartCfg); err != nil {
		return err
	}

	if chartCfg.Target.Kind == plot.TargetFile {
		logger.Info("Chart written",
			slog.String("path", chartCfg.Target.Path),
			slog.Int("samples", s.Len()))
	}

	if opts.Summary {
		report := output.NewReport(s, stats, chartCfg, cfg.Data)
		formatter := output.NewTextFormatter(output.FormatOptions{Quiet: true})
		if err := formatter.Format(ctx, report, cmd.ErrOrStderr()); err != nil {
			return fmt.Errorf("formatting summary: %w", err)
		}
	}

	return nil
}

// resolveImagePath lets "-p out.png" name the image: pflag only binds an
// optional value written as "-p=out.png", so a bare flag followed by one
// argument takes that argument as the file name.
func (o *ChartOptions) resolveImagePath(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}

	flags := cmd.Flags()
	pngBare := flags.Changed("png") && o.PNG == plot.DefaultPNGPath
	svgBare := flags.Changed("svg") && o.SVG == plot.DefaultSVGPath

	switch {
	case o.PNG != "" && o.SVG != "":
		return NewUsageError(errImageConflict)
	case pngBare:
		o.PNG = args[0]
	case svgBare:
		o.SVG = args[0]
	default:
		return NewUsageError(fmt.Errorf("unexpected argument %q", args[0]))
	}
	return nil
}
