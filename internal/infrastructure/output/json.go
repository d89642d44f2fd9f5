package output

import (
	"encoding/json"
	"io"

	"github.com/reglet-dev/lintgate/internal/domain/execution"
)

// JSONFormatter formats invocation results as JSON.
type JSONFormatter struct {
	writer io.Writer
	indent bool
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(w io.Writer, indent bool) *JSONFormatter {
	return &JSONFormatter{
		writer: w,
		indent: indent,
	}
}

// Format writes the invocation result as JSON.
func (f *JSONFormatter) Format(result *execution.InvocationResult) error {
	encoder := json.NewEncoder(f.writer)
	if f.indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(result.Record())
}
