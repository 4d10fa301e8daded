// Package output renders command results as text, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format selects how results are rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps the --output flag value to a Format. An empty value
// selects text.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format: %s", s)
	}
}

// Writer renders values to one destination in one fixed format.
type Writer struct {
	format Format
	w      io.Writer
}

// NewWriter returns a Writer rendering in the given format.
func NewWriter(w io.Writer, format Format) *Writer {
	return &Writer{format: format, w: w}
}

// Write renders v. JSON and YAML encode the value's struct tags. Text
// requires the value to describe itself via fmt.Stringer; every view type
// the commands emit implements it.
func (w *Writer) Write(v any) error {
	switch w.format {
	case FormatJSON:
		enc := json.NewEncoder(w.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w.w)
		enc.SetIndent(2)
		return enc.Encode(v)
	default:
		s, ok := v.(fmt.Stringer)
		if !ok {
			return fmt.Errorf("value of type %T has no text rendering", v)
		}
		_, err := fmt.Fprintln(w.w, s.String())
		return err
	}
}
