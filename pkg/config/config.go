package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.ApplyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors and fills zero values with defaults.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Data) == "" {
		return errors.New("data: a file path or URI is required")
	}

	switch cfg.Curve {
	case "":
		cfg.Curve = DefaultCurve
	case "csplines", "bezier", "none":
	default:
		return fmt.Errorf("curve: invalid value %q (must be csplines, bezier, or none)", cfg.Curve)
	}

	switch cfg.Precision {
	case "":
		cfg.Precision = DefaultPrecision
	case "date", "datetime":
	default:
		return fmt.Errorf("precision: invalid value %q (must be date or datetime)", cfg.Precision)
	}

	if err := validateHTTP(&cfg.HTTP); err != nil {
		return fmt.Errorf("http: %w", err)
	}

	if err := validateChart(&cfg.Chart); err != nil {
		return fmt.Errorf("chart: %w", err)
	}

	return nil
}

func validateHTTP(h *HTTPConfig) error {
	if h.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %v", h.Timeout)
	}
	if h.Timeout == 0 {
		h.Timeout = DefaultHTTPTimeout
	}

	h.Token = expandEnvVar(h.Token)
	return nil
}

func validateChart(c *ChartConfig) error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("width and height must not be negative, got %dx%d", c.Width, c.Height)
	}
	if c.Width == 0 {
		c.Width = DefaultChartWidth
	}
	if c.Height == 0 {
		c.Height = DefaultChartHeight
	}
	return nil
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	if s == "" {
		return s
	}

	// Handle ${VAR} format
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		varName := s[2 : len(s)-1]
		return os.Getenv(varName)
	}

	// Handle $VAR format (no braces)
	if strings.HasPrefix(s, "$") && !strings.HasPrefix(s, "${") {
		varName := s[1:]
		return os.Getenv(varName)
	}

	return s
}
