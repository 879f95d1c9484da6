package output

import (
	"io"

	"github.com/goccy/go-json"
)

// JSONFormatter renders reports as indented JSON.
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// FormatPass writes a pass summary.
func (f *JSONFormatter) FormatPass(summary *PassSummary) error {
	return f.encode(summary)
}

// FormatStore writes a store listing.
func (f *JSONFormatter) FormatStore(listing *StoreListing) error {
	return f.encode(listing)
}

func (f *JSONFormatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
