package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_ValidConfig(t *testing.T) {
	content := `
data: /var/log/irc/rank.log
totals: true
curve: bezier
precision: datetime
strict: true
title: Freenode Rating
http:
  timeout: 5s
  token: abc123
chart:
  width: 800
  height: 400
`
	path := writeTempFile(t, "config.yaml", content)
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Data != "/var/log/irc/rank.log" {
		t.Errorf("Data = %q", cfg.Data)
	}
	if !cfg.Totals || !cfg.Strict {
		t.Errorf("Totals = %v, Strict = %v, want both true", cfg.Totals, cfg.Strict)
	}
	if cfg.Curve != "bezier" {
		t.Errorf("Curve = %q, want bezier", cfg.Curve)
	}
	if cfg.Precision != "datetime" {
		t.Errorf("Precision = %q, want datetime", cfg.Precision)
	}
	if cfg.Title != "Freenode Rating" {
		t.Errorf("Title = %q", cfg.Title)
	}
	if cfg.HTTP.Timeout != 5*time.Second {
		t.Errorf("HTTP.Timeout = %v, want 5s", cfg.HTTP.Timeout)
	}
	if cfg.HTTP.Token != "abc123" {
		t.Errorf("HTTP.Token = %q", cfg.HTTP.Token)
	}
	if cfg.Chart.Width != 800 || cfg.Chart.Height != 400 {
		t.Errorf("Chart = %dx%d, want 800x400", cfg.Chart.Width, cfg.Chart.Height)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeTempFile(t, "config.yaml", "totals: true\n")
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Data != DefaultData {
		t.Errorf("Data = %q, want %q", cfg.Data, DefaultData)
	}
	if cfg.Curve != DefaultCurve {
		t.Errorf("Curve = %q, want %q", cfg.Curve, DefaultCurve)
	}
	if cfg.Precision != DefaultPrecision {
		t.Errorf("Precision = %q, want %q", cfg.Precision, DefaultPrecision)
	}
	if cfg.HTTP.Timeout != DefaultHTTPTimeout {
		t.Errorf("HTTP.Timeout = %v, want %v", cfg.HTTP.Timeout, DefaultHTTPTimeout)
	}
	if cfg.Chart.Width != DefaultChartWidth || cfg.Chart.Height != DefaultChartHeight {
		t.Errorf("Chart = %dx%d", cfg.Chart.Width, cfg.Chart.Height)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(context.Background(), "/nonexistent/config.yaml")
	if err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	content := `invalid: yaml: content: [`
	path := writeTempFile(t, "invalid.yaml", content)
	_, err := Load(context.Background(), path)
	if err == nil {
		t.Error("Load() expected error for invalid YAML")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvData, "https://example.org/rank.log")
	t.Setenv(EnvHTTPToken, "from-env")

	path := writeTempFile(t, "config.yaml", "data: local.log\nhttp:\n  token: from-file\n")
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Data != "https://example.org/rank.log" {
		t.Errorf("Data = %q, want environment value", cfg.Data)
	}
	if cfg.HTTP.Token != "from-env" {
		t.Errorf("HTTP.Token = %q, want environment value", cfg.HTTP.Token)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"empty data", func(c *Config) { c.Data = "  " }, "data"},
		{"bad curve", func(c *Config) { c.Curve = "spline" }, "curve"},
		{"empty curve", func(c *Config) { c.Curve = "" }, ""},
		{"none curve", func(c *Config) { c.Curve = "none" }, ""},
		{"bad precision", func(c *Config) { c.Precision = "hourly" }, "precision"},
		{"negative timeout", func(c *Config) { c.HTTP.Timeout = -time.Second }, "http"},
		{"negative width", func(c *Config) { c.Chart.Width = -1 }, "chart"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() expected error")
			}
			if !strings.HasPrefix(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want prefix %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_FillsZeroValues(t *testing.T) {
	cfg := &Config{Data: "rank.log"}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Curve != DefaultCurve || cfg.Precision != DefaultPrecision {
		t.Errorf("Curve = %q, Precision = %q", cfg.Curve, cfg.Precision)
	}
	if cfg.HTTP.Timeout != DefaultHTTPTimeout {
		t.Errorf("HTTP.Timeout = %v", cfg.HTTP.Timeout)
	}
	if cfg.Chart.Width != DefaultChartWidth || cfg.Chart.Height != DefaultChartHeight {
		t.Errorf("Chart = %dx%d", cfg.Chart.Width, cfg.Chart.Height)
	}
}

func TestValidate_ExpandsToken(t *testing.T) {
	t.Setenv("TEST_RANK_TOKEN", "secret-value")

	cfg := DefaultConfig()
	cfg.HTTP.Token = "${TEST_RANK_TOKEN}"
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.HTTP.Token != "secret-value" {
		t.Errorf("HTTP.Token = %q, want secret-value", cfg.HTTP.Token)
	}
}

func TestExpandEnvVar(t *testing.T) {
	t.Setenv("TEST_RANK_TOKEN", "secret-value")

	tests := []struct {
		input string
		want  string
	}{
		{"${TEST_RANK_TOKEN}", "secret-value"},
		{"$TEST_RANK_TOKEN", "secret-value"},
		{"plain-value", "plain-value"},
		{"", ""},
		{"${NONEXISTENT_VAR}", ""},
	}

	for _, tt := range tests {
		got := expandEnvVar(tt.input)
		if got != tt.want {
			t.Errorf("expandEnvVar(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}
