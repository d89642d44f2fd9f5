package analyzer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrNotFound is returned when a tool is not on the search path.
var ErrNotFound = errors.New("executable file not found")

// PathResolver resolves executables against an explicit search path
// instead of the lintgate process's own $PATH.
type PathResolver struct{}

// NewPathResolver creates a new resolver.
func NewPathResolver() *PathResolver {
	return &PathResolver{}
}

// Resolve implements ports.ToolResolver.
//
// A tool containing a path separator is checked directly and not searched.
func (r *PathResolver) Resolve(tool, pathList string) (string, error) {
	if strings.ContainsRune(tool, filepath.Separator) || strings.ContainsRune(tool, '/') {
		if err := checkExecutable(tool); err != nil {
			return "", fmt.Errorf("%s: %w", tool, err)
		}
		return filepath.Abs(tool)
	}

	for _, dir := range filepath.SplitList(pathList) {
		if dir == "" {
			// Empty entries mean the current directory in POSIX shells;
			// that is never what a gate wants.
			continue
		}
		for _, name := range candidates(tool) {
			path := filepath.Join(dir, name)
			if err := checkExecutable(path); err == nil {
				return filepath.Abs(path)
			}
		}
	}

	return "", fmt.Errorf("%s: %w in %q", tool, ErrNotFound, pathList)
}

func candidates(tool string) []string {
	if runtime.GOOS != "windows" || filepath.Ext(tool) != "" {
		return []string{tool}
	}
	exts := filepath.SplitList(os.Getenv("PATHEXT"))
	if len(exts) == 0 {
		exts = []string{".com", ".exe", ".bat", ".cmd"}
	}
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		out = append(out, tool+strings.ToLower(ext))
	}
	return out
}

func checkExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fs.ErrPermission
	}
	if runtime.GOOS != "windows" && info.Mode()&0o111 == 0 {
		return fs.ErrPermission
	}
	return nil
}
