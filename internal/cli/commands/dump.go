package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sargas/network-rank/pkg/output"
	"github.com/sargas/network-rank/pkg/plot"
)

// DumpOptions holds command-line options for the dump command.
type DumpOptions struct {
	Output string
	Quiet  bool
}

// NewDumpCommand creates the dump command.
func NewDumpCommand(global *GlobalOptions) *cobra.Command {
	opts := &DumpOptions{}

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the parsed series without drawing it",
		Long: `Print every paired sample (date, percentile, total) along with the best,
worst and latest samples. Dates use the same keys the chart is built from:
YYYY-MM-DD, or Unix seconds with --precision datetime.`,
		Args: func(cmd *cobra.Command, args []string) error {
			return NewUsageError(cobra.NoArgs(cmd, args))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, global, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no samples")

	return cmd
}

func runDump(cmd *cobra.Command, global *GlobalOptions, opts *DumpOptions) error {
	ctx := contextOf(cmd)
	logger := global.Logger(cmd.ErrOrStderr())

	formatter, err := output.NewFormatter(opts.Output, output.FormatOptions{
		Verbose: global.Verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return NewUsageError(err)
	}

	cfg, err := global.loadConfig(ctx, cmd, nil)
	if err != nil {
		return err
	}

	s, stats, err := loadSeries(ctx, cfg, logger)
	if err != nil {
		return err
	}

	chartCfg, err := plot.Derive(plot.Options{
		Source:    cfg.Data,
		Precision: plot.Precision(cfg.Precision),
	}, s.YearSpan, plot.NoDisplay)
	if err != nil {
		return NewUsageError(err)
	}

	report := output.NewReport(s, stats, chartCfg, cfg.Data)
	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}
	return nil
}
