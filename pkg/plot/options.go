// Package plot derives the chart configuration handed to a renderer from user
// options and the shape of the parsed series.
package plot

import (
	"errors"
	"fmt"
)

// Smoothing is the curve fitted through the percentile samples.
type Smoothing string

const (
	SmoothNone     Smoothing = "none"
	SmoothCSplines Smoothing = "csplines"
	SmoothBezier   Smoothing = "bezier"
)

// ParseSmoothing maps a user-supplied name to a Smoothing.
func ParseSmoothing(s string) (Smoothing, error) {
	switch Smoothing(s) {
	case SmoothNone, SmoothCSplines, SmoothBezier:
		return Smoothing(s), nil
	case "":
		return SmoothNone, nil
	default:
		return "", fmt.Errorf("invalid curve %q (must be csplines, bezier, or none)", s)
	}
}

// Precision is how much of each timestamp is kept on the X axis.
type Precision string

const (
	PrecisionDate     Precision = "date"
	PrecisionDateTime Precision = "datetime"
)

// ParsePrecision maps a user-supplied name to a Precision.
func ParsePrecision(s string) (Precision, error) {
	switch Precision(s) {
	case PrecisionDate, PrecisionDateTime:
		return Precision(s), nil
	case "":
		return PrecisionDate, nil
	default:
		return "", fmt.Errorf("invalid precision %q (must be date or datetime)", s)
	}
}

// ErrConfigurationConflict marks mutually exclusive options set together.
var ErrConfigurationConflict = errors.New("configuration conflict")

// Default values for options.
const (
	DefaultTitle   = "Network Rating"
	DefaultPNGPath = "network-rank.png"
	DefaultSVGPath = "network-rank.svg"
	DefaultSource  = "network-rank"
)

// Options is the plain user configuration of a run.
type Options struct {
	// ShowTotals overlays the total population on a secondary axis.
	ShowTotals bool

	// PNGPath and SVGPath select file output. At most one may be set.
	PNGPath string
	SVGPath string

	// Source is a local path, glob or http(s) URI.
	Source string

	Smoothing Smoothing
	Precision Precision

	// Title overrides DefaultTitle when set.
	Title string
}

// Validate rejects conflicting or unknown option values.
func (o Options) Validate() error {
	if o.PNGPath != "" && o.SVGPath != "" {
		return fmt.Errorf("%w: PNG and SVG output are mutually exclusive", ErrConfigurationConflict)
	}
	if _, err := ParseSmoothing(string(o.Smoothing)); err != nil {
		return err
	}
	if _, err := ParsePrecision(string(o.Precision)); err != nil {
		return err
	}
	return nil
}
