package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"

	"github.com/reglet-dev/lintgate/internal/infrastructure/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAnalyzer echoes its arguments and search path, then exits with
// $STUB_EXIT.
const stubAnalyzer = `#!/bin/sh
echo "args: $*"
echo "PYTHONPATH=$PYTHONPATH"
exit ${STUB_EXIT:-0}
`

// setupProject creates a project in a temp dir with a provisioned .venv
// holding the given tools, and makes it the working directory.
func setupProject(t *testing.T, tools ...string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub analyzers are POSIX shell scripts")
	}

	dir := t.TempDir()
	bin := filepath.Join(dir, ".venv", "bin")
	require.NoError(t, os.MkdirAll(bin, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(bin, "activate"), []byte("# venv\n"), 0o600))
	for _, tool := range tools {
		//nolint:gosec // G306: test stub must be executable
		require.NoError(t, os.WriteFile(filepath.Join(bin, tool), []byte(stubAnalyzer), 0o755))
	}

	t.Chdir(dir)
	t.Setenv("STUB_EXIT", "0")
	t.Setenv("PYTHONPATH", "")
	return dir
}

type result struct {
	stdout string
	stderr string
	code   int
}

func execute(args ...string) result {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func TestCheck_Clean(t *testing.T) {
	setupProject(t, "pylint")

	res := execute("check", "app.py")

	assert.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "No pylint issues found.\n", res.stdout)
}

func TestCheck_CleanQuiet(t *testing.T) {
	setupProject(t, "pylint")

	res := execute("check", "--quiet", "app.py")

	assert.Equal(t, 0, res.code)
	assert.Empty(t, res.stdout)
}

func TestCheck_PropagatesAnalyzerStatus(t *testing.T) {
	for _, status := range []string{"1", "4", "30"} {
		t.Run(status, func(t *testing.T) {
			setupProject(t, "pylint")
			t.Setenv("STUB_EXIT", status)

			res := execute("check", "app.py", "utils/")

			assert.Equal(t, status, strconv.Itoa(res.code))
			assert.Equal(t, "pylint found issues:\nargs: --rcfile=.pylintrc app.py utils/\nPYTHONPATH=\n", res.stdout)
			assert.Empty(t, res.stderr)
		})
	}
}

func TestCheck_DashTargets(t *testing.T) {
	setupProject(t, "pylint")
	t.Setenv("STUB_EXIT", "2")

	res := execute("check", "--", "-odd.py")

	assert.Equal(t, 2, res.code)
	assert.Contains(t, res.stdout, "args: --rcfile=.pylintrc -odd.py\n")
}

func TestCheck_NotProvisioned(t *testing.T) {
	setupProject(t)
	require.NoError(t, os.RemoveAll(".venv"))

	res := execute("check", "app.py")

	assert.Equal(t, 1, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "environment not provisioned")
}

func TestCheck_ToolNotInstalled(t *testing.T) {
	setupProject(t)

	res := execute("check", "app.py")

	assert.Equal(t, 127, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "pylint is not installed in the environment")
}

func TestCheck_FlagOverrides(t *testing.T) {
	setupProject(t, "flake8")
	t.Setenv("PYTHONPATH", "/base")
	t.Setenv("STUB_EXIT", "1")

	res := execute("check", "--tool", "flake8", "--rcfile", "setup.cfg", "--search-path", "backend", "src")

	assert.Equal(t, 1, res.code, res.stderr)
	assert.Contains(t, res.stdout, "flake8 found issues:\n")
	assert.Contains(t, res.stdout, "args: --rcfile=setup.cfg src\n")
	assert.Contains(t, res.stdout, "PYTHONPATH=/base"+string(os.PathListSeparator)+"backend\n")
}

func TestCheck_ConfigFileAndEnv(t *testing.T) {
	setupProject(t, "ruff", "mypy")
	require.NoError(t, os.WriteFile(".lintgate.yaml", []byte("tool: ruff\nconfig_path: \"\"\n"), 0o600))

	res := execute("check", "x.py")
	assert.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "No ruff issues found.\n", res.stdout)

	t.Setenv("LINTGATE_TOOL", "mypy")
	res = execute("check", "x.py")
	assert.Equal(t, "No mypy issues found.\n", res.stdout)
}

func TestCheck_InvalidConfigFile(t *testing.T) {
	setupProject(t, "pylint")
	require.NoError(t, os.WriteFile(".lintgate.yaml", []byte("tool: pylint\nlanguage: python\n"), 0o600))

	res := execute("check")

	assert.Equal(t, 78, res.code)
	assert.Contains(t, res.stderr, "config validation failed")
}

func TestCheck_UsageErrors(t *testing.T) {
	setupProject(t, "pylint")

	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"check", "--nope"}},
		{"verbose and quiet", []string{"check", "-v", "-q"}},
		{"bad report format", []string{"check", "--report-format", "html", "--report-file", "x"}},
		{"unknown activator", []string{"check", "--activator", "conda"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(tt.args...)
			assert.Equal(t, 78, res.code, res.stderr)
			assert.Empty(t, res.stdout)
		})
	}
}

func TestCheck_WritesReport(t *testing.T) {
	dir := setupProject(t, "pylint")
	t.Setenv("STUB_EXIT", "16")

	res := execute("check", "--report-file", "reports/lint.json", "app.py")

	assert.Equal(t, 16, res.code, res.stderr)
	data, err := os.ReadFile(filepath.Join(dir, "reports", "lint.json"))
	require.NoError(t, err)

	var report map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, "issues", report["outcome"])
	assert.EqualValues(t, 16, report["exit_code"])
}

func TestCheck_ReportFailure(t *testing.T) {
	setupProject(t, "pylint")
	require.NoError(t, os.MkdirAll("taken.json", 0o755))

	t.Run("clean run becomes a config error", func(t *testing.T) {
		res := execute("check", "--report-file", "taken.json")
		assert.Equal(t, 78, res.code)
		assert.Equal(t, "No pylint issues found.\n", res.stdout)
		assert.Contains(t, res.stderr, "failed to write report")
	})

	t.Run("analyzer status wins", func(t *testing.T) {
		t.Setenv("STUB_EXIT", "8")
		res := execute("check", "--report-file", "taken.json")
		assert.Equal(t, 8, res.code)
		assert.Contains(t, res.stdout, "pylint found issues:")
		assert.Contains(t, res.stderr, "failed to write report")
	})
}

func TestEnv(t *testing.T) {
	dir := setupProject(t, "pylint")

	res := execute("env")

	assert.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, filepath.Join(dir, ".venv", "bin", "pylint"))
	assert.Contains(t, res.stdout, "ready")
}

func TestEnv_ToolNotInstalled(t *testing.T) {
	setupProject(t)

	res := execute("env")

	assert.Equal(t, 127, res.code)
	assert.Contains(t, res.stdout, "not installed")
}

func TestInit(t *testing.T) {
	setupProject(t)

	res := execute("init", "--no-interactive")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "Wrote .lintgate.yaml\n", res.stdout)

	data, err := os.ReadFile(".lintgate.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "tool: pylint")

	res = execute("init", "--no-interactive")
	assert.Equal(t, 78, res.code)
	assert.Contains(t, res.stderr, "already exists")

	res = execute("init", "--no-interactive", "--force")
	assert.Equal(t, 0, res.code, res.stderr)
}

func TestInit_Prompts(t *testing.T) {
	setupProject(t)

	original := promptConfig
	t.Cleanup(func() { promptConfig = original })

	var prompted bool
	promptConfig = func(cfg *system.Config) error {
		prompted = true
		cfg.Tool = "flake8"
		return nil
	}

	res := execute("init")
	require.Equal(t, 0, res.code, res.stderr)
	assert.True(t, prompted)

	data, err := os.ReadFile(".lintgate.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "tool: flake8")
}

func TestVersion(t *testing.T) {
	res := execute("version")

	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "lintgate version dev")
}
