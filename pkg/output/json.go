package output

import (
	"context"
	"encoding/json"
	"io"
)

// JSONFormatter writes reports as indented JSON, one document per call.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter returns a JSON formatter.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns "json".
func (f *JSONFormatter) Name() string {
	return "json"
}

// quietReport is the summary flattened next to the log location.
type quietReport struct {
	Source string `json:"source,omitempty"`
	Summary
}

// Format encodes the full report, or only the summary and source when quiet.
// Sources are URIs, so '&' and '<' are written as-is.
func (f *JSONFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if f.opts.Quiet {
		return enc.Encode(quietReport{Source: report.Metadata.Source, Summary: report.Summary})
	}
	return enc.Encode(report)
}
