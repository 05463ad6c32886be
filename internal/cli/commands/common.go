package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sargas/network-rank/pkg/config"
	"github.com/sargas/network-rank/pkg/fetch"
	"github.com/sargas/network-rank/pkg/parser"
	"github.com/sargas/network-rank/pkg/plot"
	"github.com/sargas/network-rank/pkg/render"
	"github.com/sargas/network-rank/pkg/series"
)

// Exit codes returned by the CLI.
const (
	ExitOK      = 0
	ExitUsage   = 1 // invalid flags, arguments or configuration
	ExitRuntime = 2 // unreadable log, unpaired record, render failure
)

// UsageError marks errors caused by the invocation rather than the input.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// NewUsageError wraps err so that it maps to ExitUsage.
func NewUsageError(err error) error {
	if err == nil {
		return nil
	}
	return &UsageError{Err: err}
}

// ExitCodeFor maps an error returned by a command to a process exit code.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitOK
	}
	var usage *UsageError
	if errors.As(err, &usage) || errors.Is(err, plot.ErrConfigurationConflict) {
		return ExitUsage
	}
	return ExitRuntime
}

// GlobalOptions holds flags shared by every command that reads a log.
type GlobalOptions struct {
	ConfigPath string
	Data       string
	Precision  string
	Strict     bool
	Verbose    bool
}

// AddFlags registers the shared flags as persistent flags of cmd.
func (g *GlobalOptions) AddFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&g.ConfigPath, "config", "", "YAML configuration file")
	flags.StringVarP(&g.Data, "data", "d", config.DefaultData, "Log file, glob pattern or http(s) URI to read")
	flags.StringVar(&g.Precision, "precision", config.DefaultPrecision, "Date precision on the X axis (date|datetime)")
	flags.BoolVar(&g.Strict, "strict", false, "Abort on the first malformed record instead of skipping it")
	flags.BoolVarP(&g.Verbose, "verbose", "v", false, "Log pipeline progress to stderr")
}

// Logger returns a text logger on w, at debug level when verbose.
func (g *GlobalOptions) Logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if g.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig layers defaults, the config file, the environment and finally
// explicitly set flags. Any failure is a usage error.
func (g *GlobalOptions) loadConfig(ctx context.Context, cmd *cobra.Command, override func(*config.Config)) (*config.Config, error) {
	var cfg *config.Config
	if g.ConfigPath != "" {
		loaded, err := config.Load(ctx, g.ConfigPath)
		if err != nil {
			return nil, NewUsageError(err)
		}
		cfg = loaded
	} else {
		cfg = config.DefaultConfig()
		cfg.ApplyEnvironmentOverrides()
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.Data = g.Data
	}
	if flags.Changed("precision") {
		cfg.Precision = g.Precision
	}
	if flags.Changed("strict") {
		cfg.Strict = g.Strict
	}
	if override != nil {
		override(cfg)
	}

	if err := config.Validate(cfg); err != nil {
		return nil, NewUsageError(err)
	}
	return cfg, nil
}

// loadSeries opens the configured log and folds it into a series.
func loadSeries(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*series.Series, *series.Stats, error) {
	logger.Debug("Opening log", slog.String("data", cfg.Data))

	src, err := parser.Open(ctx, cfg.Data, parser.OpenOptions{
		HTTP: fetch.Options{
			Timeout: cfg.HTTP.Timeout,
			Token:   cfg.HTTP.Token,
		},
	})
	if err != nil {
		return nil, nil, err
	}
	defer src.Close()

	s, stats, err := series.Consume(ctx, src, series.ConsumeOptions{
		Strict: cfg.Strict,
		Logger: logger,
	})
	if err != nil {
		return nil, stats, fmt.Errorf("reading %s: %w", cfg.Data, err)
	}
	return s, stats, nil
}

// Environment supplies the terminal facts a run depends on.
type Environment struct {
	// Display decides between the interactive view and plain text.
	Display plot.Display

	// TextWidth and TextHeight size plain-text charts.
	TextWidth  int
	TextHeight int
}

// TerminalEnvironment inspects the process's stdout.
func TerminalEnvironment() Environment {
	w, h := render.TerminalSize(int(os.Stdout.Fd()))
	return Environment{
		Display:    plot.TerminalDisplay{Out: os.Stdout},
		TextWidth:  w,
		TextHeight: h,
	}
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
