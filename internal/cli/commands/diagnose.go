package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/sargas/network-rank/pkg/config"
	"github.com/sargas/network-rank/pkg/parser"
	"github.com/sargas/network-rank/pkg/series"
)

// DiagnoseOptions holds options for the diagnose command
type DiagnoseOptions struct {
	Verbose bool
}

// DiagnosticResult represents the result of a single diagnostic check
type DiagnosticResult struct {
	Check    string
	Status   string // "ok", "warning", "error"
	Message  string
	Details  []string
	Suggests []string
}

// NewDiagnoseCommand creates the diagnose command
func NewDiagnoseCommand(global *GlobalOptions, env Environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Diagnose common setup problems",
		Long: `Diagnose common setup problems.

This command checks:
- Config file syntax and structure (with --config)
- Log location existence and reachability
- Whether the log contains pairable ranking records
- Which output the chart would use

Example:
  network-rank diagnose -d /var/log/irc/network-rank
  network-rank diagnose -v --config rank.yaml  # verbose output`,
		Args: func(cmd *cobra.Command, args []string) error {
			return NewUsageError(cobra.NoArgs(cmd, args))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &DiagnoseOptions{Verbose: global.Verbose}
			return runDiagnose(contextOf(cmd), cmd, global, env, opts)
		},
	}

	return cmd
}

func runDiagnose(ctx context.Context, cmd *cobra.Command, global *GlobalOptions, env Environment, opts *DiagnoseOptions) error {
	results := []DiagnosticResult{}
	out := cmd.OutOrStdout()

	// 1. Check config file, when one is given
	if global.ConfigPath != "" {
		result := checkConfigExists(global.ConfigPath)
		results = append(results, result)
		if result.Status == "error" {
			printDiagnostics(out, results, opts)
			return nil
		}
	}

	// 2. Resolve the effective configuration
	cfg, err := global.loadConfig(ctx, cmd, nil)
	if err != nil {
		results = append(results, DiagnosticResult{
			Check:   "Configuration",
			Status:  "error",
			Message: fmt.Sprintf("Invalid configuration: %v", err),
			Suggests: []string{
				"Run 'network-rank validate <config-file>' for details",
			},
		})
		printDiagnostics(out, results, opts)
		return nil
	}
	results = append(results, DiagnosticResult{
		Check:   "Configuration",
		Status:  "ok",
		Message: "Configuration resolved",
		Details: []string{
			fmt.Sprintf("Data: %s", cfg.Data),
			fmt.Sprintf("Curve: %s", cfg.Curve),
			fmt.Sprintf("Precision: %s", cfg.Precision),
		},
	})

	// 3. Check the log location
	locationResults := checkLogLocation(cfg)
	results = append(results, locationResults...)

	// 4. Read the log and try to pair its records
	if !hasErrors(locationResults) {
		results = append(results, checkRecords(ctx, cfg))
	}

	// 5. Report where a chart would be drawn
	results = append(results, checkDisplay(env))

	printDiagnostics(out, results, opts)
	return nil
}

func checkConfigExists(path string) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Config File",
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		result.Status = "error"
		result.Message = fmt.Sprintf("Config file not found: %s", path)
		result.Suggests = []string{
			"Check the file path is correct",
			"Every setting has a default: the config file is optional",
		}
		return result
	}
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot access config file: %v", err)
		result.Suggests = []string{"Check file permissions"}
		return result
	}
	if info.IsDir() {
		result.Status = "error"
		result.Message = "Path is a directory, not a file"
		return result
	}
	if info.Size() == 0 {
		result.Status = "warning"
		result.Message = "Config file is empty, defaults apply"
		return result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("Found: %s (%s)", path, humanize.Bytes(uint64(info.Size())))
	return result
}

func checkLogLocation(cfg *config.Config) []DiagnosticResult {
	if parser.IsRemote(cfg.Data) {
		// Reachability is covered by the record check.
		return []DiagnosticResult{{
			Check:   fmt.Sprintf("Log Location: %s", cfg.Data),
			Status:  "ok",
			Message: "Remote location, fetched over HTTP",
		}}
	}

	files, err := parser.ExpandGlob(cfg.Data)
	if err != nil {
		return []DiagnosticResult{{
			Check:   fmt.Sprintf("Log Location: %s", cfg.Data),
			Status:  "error",
			Message: err.Error(),
			Suggests: []string{
				"Check if the log files exist at this path",
				"Verify the glob pattern syntax",
			},
		}}
	}

	results := []DiagnosticResult{}
	for _, file := range files {
		result := DiagnosticResult{
			Check: fmt.Sprintf("Log File: %s", file),
		}

		info, err := os.Stat(file)
		switch {
		case os.IsNotExist(err):
			result.Status = "error"
			result.Message = "File does not exist"
			result.Suggests = []string{
				"Check if the log file path is correct",
				"Use -d or the data config key to point at the log",
			}
		case err != nil:
			result.Status = "error"
			result.Message = fmt.Sprintf("Cannot access file: %v", err)
			result.Suggests = []string{"Check file permissions"}
		case info.IsDir():
			result.Status = "error"
			result.Message = "Path is a directory, not a file"
			result.Suggests = []string{
				"Use a glob pattern to match files in directory",
				"Example: /var/log/irc/network-rank*",
			}
		case info.Size() == 0:
			result.Status = "warning"
			result.Message = "File is empty (0 bytes)"
		default:
			result.Status = "ok"
			result.Message = fmt.Sprintf("File exists (%s)", humanize.Bytes(uint64(info.Size())))
		}
		results = append(results, result)
	}

	return results
}

func checkRecords(ctx context.Context, cfg *config.Config) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Ranking Records",
	}

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, stats, err := loadSeries(ctx, &config.Config{
		Data: cfg.Data,
		HTTP: cfg.HTTP,
	}, quiet)

	if stats != nil {
		result.Details = []string{
			fmt.Sprintf("Lines read: %s", humanize.Comma(int64(stats.LinesRead))),
			fmt.Sprintf("Samples: %d, dates: %d, other lines: %d",
				stats.Samples, stats.Timestamps, stats.Noise),
		}
	}

	var unpaired *series.UnpairedRecordError
	switch {
	case errors.Is(err, parser.ErrStreamUnavailable):
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot read log: %v", err)
		result.Suggests = []string{"Check the location and, for HTTP, the token and timeout"}
	case errors.As(err, &unpaired):
		result.Status = "error"
		result.Message = err.Error()
		result.Suggests = []string{
			"Each \"N out of M\" line must be next to exactly one date line",
		}
		for _, o := range unpaired.Orphans {
			result.Details = append(result.Details, fmt.Sprintf("Unpaired %s at %s", o.Kind, o.Location()))
		}
	case err != nil:
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot read log: %v", err)
	case s.Len() == 0:
		result.Status = "warning"
		result.Message = "No ranking samples found, the chart will be empty"
		result.Suggests = []string{
			"Samples look like \"12 out of 1,209\" followed by a date line like \"Tue, 03 Jan 2023\"",
		}
	case stats.Malformed > 0:
		result.Status = "warning"
		result.Message = fmt.Sprintf("%d sample(s) paired, %d malformed record(s) skipped", s.Len(), stats.Malformed)
		result.Suggests = []string{"Run with --strict to stop at the first malformed record"}
	default:
		result.Status = "ok"
		result.Message = fmt.Sprintf("%d sample(s) paired, dates %s", s.Len(), describeSpan(s.YearSpan))
	}

	return result
}

func describeSpan(span series.YearSpan) string {
	if span == series.YearSpanVaries {
		return "span several years"
	}
	return "fall within one year"
}

func checkDisplay(env Environment) DiagnosticResult {
	result := DiagnosticResult{
		Check:  "Display",
		Status: "ok",
	}
	if env.Display != nil && env.Display.Available() {
		result.Message = "Terminal detected, charts open in the interactive view"
	} else {
		result.Message = "No terminal, charts print as plain text"
		result.Suggests = []string{"Use --png or --svg to write an image instead"}
	}
	result.Details = []string{fmt.Sprintf("Text size: %dx%d", env.TextWidth, env.TextHeight)}
	return result
}

func hasErrors(results []DiagnosticResult) bool {
	for _, r := range results {
		if r.Status == "error" {
			return true
		}
	}
	return false
}

func printDiagnostics(w io.Writer, results []DiagnosticResult, opts *DiagnoseOptions) {
	fmt.Fprintln(w, "=== network-rank Diagnostics ===")
	fmt.Fprintln(w)

	okCount := 0
	warnCount := 0
	errCount := 0

	for _, r := range results {
		// Status icon
		var icon string
		switch r.Status {
		case "ok":
			icon = "PASS"
			okCount++
		case "warning":
			icon = "WARN"
			warnCount++
		case "error":
			icon = "FAIL"
			errCount++
		}

		fmt.Fprintf(w, "[%s] %s\n", icon, r.Check)
		fmt.Fprintf(w, "    %s\n", r.Message)

		if opts.Verbose || r.Status != "ok" {
			for _, d := range r.Details {
				fmt.Fprintf(w, "      - %s\n", d)
			}
		}

		for _, s := range r.Suggests {
			fmt.Fprintf(w, "      Hint: %s\n", s)
		}

		fmt.Fprintln(w)
	}

	// Summary
	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)

	switch {
	case errCount > 0:
		fmt.Fprintln(w, "\nFix the errors above before drawing the chart.")
	case warnCount > 0:
		fmt.Fprintln(w, "\nSetup is usable but has warnings.")
	default:
		fmt.Fprintln(w, "\nSetup looks good!")
	}
}
