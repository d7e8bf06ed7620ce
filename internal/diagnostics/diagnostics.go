// Package diagnostics writes progress and error lines to standard error,
// colorizing them when standard error is an interactive terminal and
// leaving them plain otherwise — the same terminal-detection rule the
// sampled formatter's color output follows.
package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Writer prints diagnostic lines to an underlying io.Writer, usually
// os.Stderr.
type Writer struct {
	out      io.Writer
	colorize bool
}

// New returns a Writer over out, detecting color support via isatty when
// out is a real file (a pipe or a buffer in a test never gets color).
func New(out io.Writer) *Writer {
	colorize := false
	if f, ok := out.(*os.File); ok {
		colorize = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Writer{out: out, colorize: colorize}
}

// Info prints a cyan progress line: "fetching page 2 ...".
func (w *Writer) Info(format string, args ...any) {
	w.line(color.New(color.FgCyan), format, args...)
}

// Warn prints a yellow warning line, for conditions worth noticing that
// don't abort the run.
func (w *Writer) Warn(format string, args ...any) {
	w.line(color.New(color.FgYellow, color.Bold), format, args...)
}

// Error prints a red error line.
func (w *Writer) Error(format string, args ...any) {
	w.line(color.New(color.FgRed, color.Bold), format, args...)
}

func (w *Writer) line(c *color.Color, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if w.colorize {
		msg = c.Sprint(msg)
	}
	fmt.Fprintln(w.out, msg)
}
