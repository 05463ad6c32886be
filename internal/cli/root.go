// Package cli provides the command-line interface for network-rank.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sargas/network-rank/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return run(ctx, NewRootCommand(), os.Stderr)
}

func run(ctx context.Context, rootCmd *cobra.Command, stderr io.Writer) int {
	cmd, err := rootCmd.ExecuteContextC(ctx)
	if err == nil {
		return commands.ExitOK
	}

	// Print error to stderr (SilenceErrors prevents Cobra from doing this)
	_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)

	code := commands.ExitCodeFor(err)
	if code == commands.ExitUsage && cmd != nil {
		_, _ = fmt.Fprintf(stderr, "\n%s", cmd.UsageString())
	}
	return code
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	return newRootCommand(commands.TerminalEnvironment())
}

func newRootCommand(env commands.Environment) *cobra.Command {
	global := &commands.GlobalOptions{}

	rootCmd := commands.NewChartCommand(global, env)
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return commands.NewUsageError(err)
	})

	global.AddFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(commands.NewDumpCommand(global))
	rootCmd.AddCommand(commands.NewDiagnoseCommand(global, env))
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
