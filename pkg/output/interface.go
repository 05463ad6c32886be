package output

import (
	"context"
	"io"
)

// Formatter renders a series report in a specific format.
type Formatter interface {
	// Format renders the report to the given writer.
	Format(ctx context.Context, report *Report, w io.Writer) error

	// Name returns the format name (text, json).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Verbose adds input statistics to the report.
	Verbose bool

	// Quiet enables minimal summary-only output.
	Quiet bool
}

// NewFormatter returns the formatter registered under name.
func NewFormatter(name string, opts FormatOptions) (Formatter, error) {
	switch name {
	case "text", "":
		return NewTextFormatter(opts), nil
	case "json":
		return NewJSONFormatter(opts), nil
	default:
		return nil, &UnknownFormatError{Name: name}
	}
}

// UnknownFormatError is returned by NewFormatter for unregistered names.
type UnknownFormatError struct {
	Name string
}

func (e *UnknownFormatError) Error() string {
	return "unknown output format \"" + e.Name + "\" (use text or json)"
}
