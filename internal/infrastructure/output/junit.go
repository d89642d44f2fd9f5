package output

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/reglet-dev/lintgate/internal/domain/execution"
)

// JUnitFormatter formats invocation results as JUnit XML.
// The invocation becomes a single test case that fails when the analyzer
// exited non-zero.
type JUnitFormatter struct {
	writer io.Writer
}

// NewJUnitFormatter creates a new JUnit formatter.
func NewJUnitFormatter(w io.Writer) *JUnitFormatter {
	return &JUnitFormatter{
		writer: w,
	}
}

// JUnitTestSuites JUnit XML structures
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Name       string           `xml:"name,attr"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

type JUnitTestSuite struct {
	XMLName   xml.Name        `xml:"testsuite"`
	Name      string          `xml:"name,attr"`
	Tests     int             `xml:"tests,attr"`
	Failures  int             `xml:"failures,attr"`
	Errors    int             `xml:"errors,attr"`
	Skipped   int             `xml:"skipped,attr"`
	Time      float64         `xml:"time,attr"`
	Timestamp string          `xml:"timestamp,attr,omitempty"`
	TestCases []JUnitTestCase `xml:"testcase"`
}

type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	SystemOut string        `xml:"system-out,omitempty"`
}

type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr,omitempty"`
	Content string `xml:",chardata"`
}

// Format writes the invocation result as JUnit XML.
func (f *JUnitFormatter) Format(result *execution.InvocationResult) error {
	tc := JUnitTestCase{
		Name:      caseName(result),
		ClassName: "lintgate." + result.Tool(),
		Time:      result.Duration().Seconds(),
	}

	failures := 0
	if result.Outcome().IsClean() {
		tc.SystemOut = result.Output()
	} else {
		failures = 1
		tc.Failure = &JUnitFailure{
			Message: fmt.Sprintf("%s exited with status %d", result.Tool(), result.ExitCode().Int()),
			Type:    "exit_" + fmt.Sprint(result.ExitCode().Int()),
			Content: result.Output(),
		}
	}

	suite := JUnitTestSuite{
		Name:      result.Tool(),
		Tests:     1,
		Failures:  failures,
		Time:      result.Duration().Seconds(),
		TestCases: []JUnitTestCase{tc},
	}
	if !result.StartTime().IsZero() {
		suite.Timestamp = result.StartTime().UTC().Format("2006-01-02T15:04:05")
	}

	suites := JUnitTestSuites{
		Name:       "lintgate",
		Tests:      1,
		Failures:   failures,
		Time:       result.Duration().Seconds(),
		TestSuites: []JUnitTestSuite{suite},
	}

	_, err := f.writer.Write([]byte(xml.Header))
	if err != nil {
		return err
	}

	encoder := xml.NewEncoder(f.writer)
	encoder.Indent("", "  ")
	if err := encoder.Encode(suites); err != nil {
		return err
	}

	_, err = f.writer.Write([]byte("\n"))
	return err
}

// caseName names the test case after its targets, or "default" when the
// analyzer chose its own.
func caseName(result *execution.InvocationResult) string {
	var targets []string
	for _, a := range result.Args() {
		if !strings.HasPrefix(a, "-") {
			targets = append(targets, a)
		}
	}
	if len(targets) == 0 {
		return result.Tool() + " (default targets)"
	}
	return result.Tool() + " " + strings.Join(targets, " ")
}
