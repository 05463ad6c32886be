package config

import (
	"os"
	"time"
)

// Default values for configuration.
const (
	DefaultData        = "network-rank"
	DefaultCurve       = "csplines"
	DefaultPrecision   = "date"
	DefaultHTTPTimeout = 30 * time.Second
	DefaultChartWidth  = 1024
	DefaultChartHeight = 600
)

// Environment variable names.
const (
	EnvData      = "NETWORK_RANK_DATA"
	EnvHTTPToken = "NETWORK_RANK_HTTP_TOKEN"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Data:      DefaultData,
		Curve:     DefaultCurve,
		Precision: DefaultPrecision,
		HTTP: HTTPConfig{
			Timeout: DefaultHTTPTimeout,
		},
		Chart: ChartConfig{
			Width:  DefaultChartWidth,
			Height: DefaultChartHeight,
		},
	}
}

// ApplyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) ApplyEnvironmentOverrides() {
	if data := os.Getenv(EnvData); data != "" {
		c.Data = data
	}
	if token := os.Getenv(EnvHTTPToken); token != "" {
		c.HTTP.Token = token
	}
}
