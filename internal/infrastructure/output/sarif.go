package output

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"
	"github.com/reglet-dev/lintgate/internal/domain/execution"
	"github.com/reglet-dev/lintgate/internal/version"
)

// SARIFFormatter formats invocation results as SARIF 2.1.0 JSON.
//
// Diagnostics that can be parsed from the output become individual results
// with locations. The invocation itself is always recorded, so a crash
// that printed nothing parseable still shows up as a failed run.
type SARIFFormatter struct {
	writer io.Writer
}

// NewSARIFFormatter creates a new SARIF formatter.
func NewSARIFFormatter(writer io.Writer) *SARIFFormatter {
	return &SARIFFormatter{
		writer: writer,
	}
}

// Format writes the invocation result as SARIF 2.1.0 JSON.
func (f *SARIFFormatter) Format(result *execution.InvocationResult) error {
	report := sarif.NewReport()

	run := sarif.NewRunWithInformationURI(result.Tool(), "https://github.com/reglet-dev/lintgate")
	toolVersion := version.Get().Version
	run.Tool.Driver.Version = &toolVersion
	run.Tool.Driver.Organization = ptrString("lintgate")

	mapper := newSARIFMapper(result)
	mapper.mapToRun(run)

	report.AddRun(run)

	if err := report.Write(f.writer); err != nil {
		return fmt.Errorf("failed to write SARIF output: %w", err)
	}

	_, err := f.writer.Write([]byte("\n"))
	return err
}

func ptrString(s string) *string {
	return &s
}

func ptrBool(b bool) *bool {
	return &b
}
