package output

import (
	"io"

	"github.com/goccy/go-yaml"
)

// YAMLFormatter renders reports as YAML.
type YAMLFormatter struct {
	writer io.Writer
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(w io.Writer) *YAMLFormatter {
	return &YAMLFormatter{writer: w}
}

// FormatPass writes a pass summary.
func (f *YAMLFormatter) FormatPass(summary *PassSummary) error {
	return f.encode(summary)
}

// FormatStore writes a store listing.
func (f *YAMLFormatter) FormatStore(listing *StoreListing) error {
	return f.encode(listing)
}

func (f *YAMLFormatter) encode(v any) error {
	encoder := yaml.NewEncoder(f.writer, yaml.Indent(2))

	if err := encoder.Encode(v); err != nil {
		return err
	}

	return encoder.Close()
}
