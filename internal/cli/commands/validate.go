package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sargas/network-rank/pkg/config"
	"github.com/sargas/network-rank/pkg/parser"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a network-rank configuration file without reading the log.

Checks:
  - YAML syntax
  - Curve and precision values
  - HTTP timeout and chart size
  - Data location existence (warning only)`,
		Args: func(cmd *cobra.Command, args []string) error {
			return NewUsageError(cobra.ExactArgs(1)(cmd, args))
		},
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := contextOf(cmd)
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return NewUsageError(fmt.Errorf("validation failed: %w", err))
	}

	fmt.Fprintf(out, "\nConfiguration valid!\n")
	fmt.Fprintf(out, "  Data:      %s\n", cfg.Data)
	fmt.Fprintf(out, "  Curve:     %s\n", cfg.Curve)
	fmt.Fprintf(out, "  Precision: %s\n", cfg.Precision)
	fmt.Fprintf(out, "  Totals:    %t\n", cfg.Totals)
	fmt.Fprintf(out, "  Strict:    %t\n", cfg.Strict)
	fmt.Fprintf(out, "  Chart:     %dx%d\n", cfg.Chart.Width, cfg.Chart.Height)

	// Remote locations are only checked by diagnose.
	if parser.IsRemote(cfg.Data) {
		fmt.Fprintf(out, "\nRemote data location (not checked): %s\n", cfg.Data)
		return nil
	}

	files, err := parser.ExpandGlob(cfg.Data)
	if err != nil {
		fmt.Fprintf(out, "\nWarning: %v\n", err)
		return nil
	}
	fmt.Fprintf(out, "\nLog files matched: %d\n", len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			fmt.Fprintf(out, "  - %s (warning: %v)\n", f, err)
			continue
		}
		fmt.Fprintf(out, "  - %s\n", f)
	}

	return nil
}
