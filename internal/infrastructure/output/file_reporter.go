package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/reglet-dev/lintgate/internal/application/ports"
	"github.com/reglet-dev/lintgate/internal/domain/execution"
)

// FileReporter writes a report in one format to a file, or to a writer
// when the path is "-".
type FileReporter struct {
	factory ports.ReportFormatterFactory
	stdout  io.Writer
	format  string
	path    string
}

// NewFileReporter creates a reporter. The format is checked eagerly so a
// typo fails before the analyzer runs.
func NewFileReporter(factory ports.ReportFormatterFactory, format, path string, stdout io.Writer) (*FileReporter, error) {
	if _, err := factory.Create(format, io.Discard); err != nil {
		return nil, err
	}
	return &FileReporter{
		factory: factory,
		stdout:  stdout,
		format:  format,
		path:    path,
	}, nil
}

// Report implements ports.Reporter.
func (r *FileReporter) Report(result *execution.InvocationResult) error {
	if r.path == "-" {
		formatter, err := r.factory.Create(r.format, r.stdout)
		if err != nil {
			return err
		}
		return formatter.Format(result)
	}

	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	//nolint:gosec // G304: User-controlled output file path is intentional
	file, err := os.Create(r.path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}

	formatter, err := r.factory.Create(r.format, file)
	if err != nil {
		_ = file.Close()
		return err
	}

	if err := formatter.Format(result); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write %s report: %w", r.format, err)
	}

	return file.Close()
}
