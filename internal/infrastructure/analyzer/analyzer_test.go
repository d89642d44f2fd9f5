package analyzer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
	"time"

	apperrors "github.com/reglet-dev/lintgate/internal/application/errors"
	"github.com/reglet-dev/lintgate/internal/domain/execution"
	"github.com/reglet-dev/lintgate/internal/domain/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requirePOSIX(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

// writeScript creates an executable shell script in dir.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestBoundedBuffer(t *testing.T) {
	t.Parallel()

	b := NewBoundedBuffer(5)
	n, err := b.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.False(t, b.Truncated)

	n, err = b.Write([]byte("defgh"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.True(t, b.Truncated)
	assert.Equal(t, "abcde", b.String())

	n, err = b.Write([]byte("more"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, 5, b.Len())

	unbounded := NewBoundedBuffer(0)
	_, _ = unbounded.Write([]byte(strings.Repeat("x", 1024)))
	assert.Equal(t, 1024, unbounded.Len())
	assert.False(t, unbounded.Truncated)
}

func TestPathResolver(t *testing.T) {
	requirePOSIX(t)
	t.Parallel()

	first := t.TempDir()
	second := t.TempDir()
	writeScript(t, second, "pylint", "exit 0\n")
	// Not executable; must be skipped.
	require.NoError(t, os.WriteFile(filepath.Join(first, "pylint"), []byte("x"), 0o644))

	r := NewPathResolver()
	pathList := first + string(os.PathListSeparator) + second

	got, err := r.Resolve("pylint", pathList)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(second, "pylint"), got)

	_, err = r.Resolve("ruff", pathList)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = r.Resolve("pylint", "")
	assert.ErrorIs(t, err, ErrNotFound)

	direct, err := r.Resolve(filepath.Join(second, "pylint"), "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(second, "pylint"), direct)
}

func TestPathResolver_IgnoresProcessPath(t *testing.T) {
	requirePOSIX(t)
	t.Parallel()

	// sh is on the process PATH but not on the empty search path.
	_, err := NewPathResolver().Resolve("sh", t.TempDir())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExecAnalyzer_ExitCodes(t *testing.T) {
	requirePOSIX(t)
	t.Parallel()

	for _, code := range []int{0, 1, 2, 37} {
		t.Run("exit_"+strconv.Itoa(code), func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			tool := writeScript(t, dir, "tool", `echo "out"; echo "err" >&2; exit $CODE`+"\n")

			res, err := NewExecAnalyzer(nil).Run(context.Background(), execution.Invocation{
				Tool: "tool",
				Path: tool,
				Env:  []string{"CODE=" + strconv.Itoa(code)},
			})
			require.NoError(t, err)
			assert.Equal(t, values.ExitCode(code), res.ExitCode())
			assert.Equal(t, "out\nerr\n", res.Output())
		})
	}
}

func TestExecAnalyzer_ForwardsArgsAndEnv(t *testing.T) {
	requirePOSIX(t)
	t.Parallel()

	dir := t.TempDir()
	tool := writeScript(t, dir, "tool", `for a in "$@"; do echo "arg:$a"; done; echo "pp:$PYTHONPATH"; echo "home:$HOME"`+"\n")

	res, err := NewExecAnalyzer(nil).Run(context.Background(), execution.Invocation{
		Tool: "tool",
		Path: tool,
		Args: []string{"--rcfile=.pylintrc", "a b.py", "-dash.py"},
		Env:  []string{"PYTHONPATH=backend"},
	})
	require.NoError(t, err)
	assert.Equal(t, "arg:--rcfile=.pylintrc\narg:a b.py\narg:-dash.py\npp:backend\nhome:\n", res.Output())
}

func TestExecAnalyzer_NoArgs(t *testing.T) {
	requirePOSIX(t)
	t.Parallel()

	dir := t.TempDir()
	tool := writeScript(t, dir, "tool", `echo "argc:$#"`+"\n")

	res, err := NewExecAnalyzer(nil).Run(context.Background(), execution.Invocation{Tool: "tool", Path: tool})
	require.NoError(t, err)
	assert.Equal(t, "argc:0\n", res.Output())
}

func TestExecAnalyzer_Truncates(t *testing.T) {
	requirePOSIX(t)
	t.Parallel()

	dir := t.TempDir()
	tool := writeScript(t, dir, "tool", "printf '0123456789'; exit 4\n")

	res, err := NewExecAnalyzer(nil).Run(context.Background(), execution.Invocation{
		Tool:           "tool",
		Path:           tool,
		MaxOutputBytes: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, "0123", res.Output())
	assert.True(t, res.Truncated())
	assert.Equal(t, values.ExitCode(4), res.ExitCode())
}

func TestExecAnalyzer_Timeout(t *testing.T) {
	requirePOSIX(t)
	t.Parallel()

	dir := t.TempDir()
	tool := writeScript(t, dir, "tool", "exec sleep 5\n")

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := NewExecAnalyzer(nil).Run(ctx, execution.Invocation{
		Tool: "tool",
		Path: tool,
		Env:  []string{"PATH=/usr/bin:/bin"},
	})
	require.Error(t, err)
	assert.Equal(t, values.ExitTimeout, apperrors.ExitCodeOf(err))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestExecAnalyzer_Signal(t *testing.T) {
	requirePOSIX(t)
	t.Parallel()

	dir := t.TempDir()
	tool := writeScript(t, dir, "tool", "kill -9 $$\n")

	res, err := NewExecAnalyzer(nil).Run(context.Background(), execution.Invocation{Tool: "tool", Path: tool})
	require.NoError(t, err)
	assert.Equal(t, values.ExitCode(128+9), res.ExitCode())
}

func TestExecAnalyzer_StartFailure(t *testing.T) {
	requirePOSIX(t)
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "not-executable")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o644))

	_, err := NewExecAnalyzer(nil).Run(context.Background(), execution.Invocation{Tool: "tool", Path: path})
	require.Error(t, err)
	var coder apperrors.ExitCoder
	assert.False(t, errors.As(err, &coder), "start failures are classified by the use case")
}

func TestVersionProbe(t *testing.T) {
	requirePOSIX(t)
	t.Parallel()

	dir := t.TempDir()
	tool := writeScript(t, dir, "pylint", `[ "$1" = "--version" ] && echo "pylint 3.2.7" && exit 0; exit 9`+"\n")

	out, err := NewVersionProbe("").Probe(context.Background(), tool, nil)
	require.NoError(t, err)
	assert.Equal(t, "pylint 3.2.7\n", out)

	_, err = NewVersionProbe("-V").Probe(context.Background(), tool, nil)
	assert.Error(t, err)
}
