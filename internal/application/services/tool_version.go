package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// versionPattern finds the first dotted version in free-form `--version` output.
// pylint prints "pylint 3.2.7\nastroid 3.2.4\nPython 3.12.3 ...".
var versionPattern = regexp.MustCompile(`\bv?(\d+\.\d+(?:\.\d+)?(?:[-+][0-9A-Za-z.+-]+)?)\b`)

// ExtractVersion returns the first semantic version found in output.
func ExtractVersion(output string) (*semver.Version, error) {
	match := versionPattern.FindStringSubmatch(output)
	if match == nil {
		return nil, fmt.Errorf("no version found in %q", firstLine(output))
	}
	v, err := semver.NewVersion(match[1])
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", match[1], err)
	}
	return v, nil
}

// ParseMinVersion turns a min_tool_version setting into a constraint.
// A bare version ("3.0") means ">= 3.0"; anything else is parsed as a
// semver constraint expression.
func ParseMinVersion(s string) (*semver.Constraints, error) {
	s = strings.TrimSpace(s)
	if _, err := semver.NewVersion(s); err == nil {
		s = ">= " + s
	}
	c, err := semver.NewConstraint(s)
	if err != nil {
		return nil, fmt.Errorf("invalid min_tool_version %q: %w", s, err)
	}
	return c, nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}
