package output

import (
	"io"

	"github.com/goccy/go-yaml"
	"github.com/reglet-dev/lintgate/internal/domain/execution"
)

// YAMLFormatter formats invocation results as YAML.
type YAMLFormatter struct {
	writer io.Writer
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(w io.Writer) *YAMLFormatter {
	return &YAMLFormatter{writer: w}
}

// Format writes the invocation result as YAML.
func (f *YAMLFormatter) Format(result *execution.InvocationResult) error {
	encoder := yaml.NewEncoder(f.writer, yaml.Indent(2))

	if err := encoder.Encode(result.Record()); err != nil {
		return err
	}

	return encoder.Close()
}
