// Package export serializes converted projects.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/st4conv/pkg/core"
)

// Format is an output serialization.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatXLSX Format = "xlsx"
)

var formats = []Format{FormatJSON, FormatYAML, FormatXLSX}

// Formats returns the names of all supported formats.
func Formats() []string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names
}

// ParseFormat parses a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unknown format %q (valid: %s)", s, strings.Join(Formats(), ", "))
}

// Extension returns the file extension for the format, without a dot.
func (f Format) Extension() string { return string(f) }

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/json"
}

// Binary reports whether the format is unsuitable for a terminal.
func (f Format) Binary() bool { return f == FormatXLSX }

// Options tunes text serializations.
type Options struct {
	// Indent is the number of spaces per nesting level. 0 writes compact JSON.
	Indent int
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options { return Options{Indent: 2} }

// Write serializes p to w in format f.
func Write(w io.Writer, p *core.Project, f Format, opts Options) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, p, opts)
	case FormatYAML:
		return WriteYAML(w, p, opts)
	case FormatXLSX:
		return WriteXLSX(w, p)
	}
	return fmt.Errorf("unknown format %q", f)
}

// WriteJSON writes the project in the exporter's JSON shape.
func WriteJSON(w io.Writer, p *core.Project, opts Options) error {
	enc := json.NewEncoder(w)
	if opts.Indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", opts.Indent))
	}
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// WriteYAML writes the project as YAML with the JSON field names.
func WriteYAML(w io.Writer, p *core.Project, opts Options) error {
	enc := yaml.NewEncoder(w)
	indent := opts.Indent
	if indent < 2 {
		indent = 2
	}
	enc.SetIndent(indent)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}
