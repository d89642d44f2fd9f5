// Package output renders gate results for people and for machines.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/reglet-dev/lintgate/internal/application/dto"
)

// BannerWriter prints the human-readable gate outcome: the fixed banner
// line and, when the analyzer reported issues, its captured output.
type BannerWriter struct {
	writer io.Writer
	quiet  bool
}

// NewBannerWriter creates a banner writer. In quiet mode a clean run
// prints nothing; failures are always printed.
func NewBannerWriter(w io.Writer, quiet bool) *BannerWriter {
	return &BannerWriter{
		writer: w,
		quiet:  quiet,
	}
}

// Write prints the response.
//
// The captured output is written unchanged. A trailing newline is added
// only when the output does not already end with one.
func (b *BannerWriter) Write(resp *dto.GateResponse) error {
	if resp.ExitCode.IsSuccess() {
		if b.quiet {
			return nil
		}
		_, err := fmt.Fprintln(b.writer, resp.Banner)
		return err
	}

	if _, err := fmt.Fprintln(b.writer, resp.Banner); err != nil {
		return err
	}

	out := resp.Result.Output()
	if out == "" {
		return nil
	}
	if _, err := io.WriteString(b.writer, out); err != nil {
		return err
	}
	if !strings.HasSuffix(out, "\n") {
		_, err := io.WriteString(b.writer, "\n")
		return err
	}
	return nil
}
