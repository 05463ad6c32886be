// Package config provides configuration loading and validation for network-rank.
package config

import "time"

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Data is the log file path, glob or http(s) URI to read.
	Data string `yaml:"data"`

	Totals    bool   `yaml:"totals"`
	Curve     string `yaml:"curve"`     // csplines, bezier, none
	Precision string `yaml:"precision"` // date, datetime
	Strict    bool   `yaml:"strict"`
	Title     string `yaml:"title,omitempty"`

	HTTP  HTTPConfig  `yaml:"http"`
	Chart ChartConfig `yaml:"chart"`
}

// HTTPConfig configures remote log retrieval.
type HTTPConfig struct {
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// Token is sent as a bearer token. ${VAR} and $VAR are expanded.
	Token string `yaml:"token,omitempty"`
}

// ChartConfig sets the size of image output in pixels.
type ChartConfig struct {
	Width  int `yaml:"width,omitempty"`
	Height int `yaml:"height,omitempty"`
}
