package output

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"
)

// Finding is one diagnostic line recognized in analyzer output.
type Finding struct {
	Path    string
	Code    string
	Message string
	Line    int

	// Column is -1 when the tool did not report one.
	Column int
}

// findingPattern matches the "path:line[:col]: [CODE[:]] message" layout
// shared by pylint's text format, flake8, ruff, mypy and most compilers.
var findingPattern = regexp.MustCompile(`^([^:\s][^:]*):(\d+):(?:(\d+):)?\s*(?:([A-Z]+\d+):?\s+)?(.+)$`)

// ParseFindings extracts findings from analyzer output. Lines that do not
// look like diagnostics (headers, scores, separators) are ignored.
func ParseFindings(output string) []Finding {
	var findings []Finding

	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		m := findingPattern.FindStringSubmatch(strings.TrimRight(scanner.Text(), "\r"))
		if m == nil {
			continue
		}
		line, _ := strconv.Atoi(m[2])
		col := -1
		if m[3] != "" {
			col, _ = strconv.Atoi(m[3])
		}
		findings = append(findings, Finding{
			Path:    m[1],
			Line:    line,
			Column:  col,
			Code:    m[4],
			Message: strings.TrimSpace(m[5]),
		})
	}

	return findings
}
