package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	qaguide "github.com/alnah/go-qaguide"
)

// clearLine returns the cursor to column 0 and erases the line.
const clearLine = "\r\033[K"

// progress reports build stages. On a terminal each stage overwrites the
// previous one; elsewhere only the final summary is written.
type progress struct {
	w     io.Writer
	tty   bool
	quiet bool
	label string
}

// newProgress creates a progress reporter writing to w.
func newProgress(w io.Writer, quiet bool, label string) *progress {
	return &progress{w: w, tty: isTerminal(w), quiet: quiet, label: label}
}

// isTerminal reports whether w is a terminal (including Cygwin/MSYS ptys).
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Stage is a qaguide.Inspector that shows the stage just completed.
func (p *progress) Stage(stage qaguide.Stage, _ string) {
	if p.quiet || !p.tty {
		return
	}
	fmt.Fprintf(p.w, "%s%s: %s", clearLine, p.label, stage)
}

// Done writes the final line for a finished build.
func (p *progress) Done(res *qaguide.Result, target string, elapsed time.Duration) {
	if p.tty {
		fmt.Fprint(p.w, clearLine)
	}
	if p.quiet {
		return
	}
	fmt.Fprintf(p.w, "%s: %d nodes, %d highlights, %d keywords indexed -> %s (%s)\n",
		p.label, res.Nodes, totalWraps(res), res.Keywords, target, elapsed.Round(time.Millisecond))
}

// Fail clears a pending stage line so the error starts at column 0.
func (p *progress) Fail() {
	if p.tty && !p.quiet {
		fmt.Fprint(p.w, clearLine)
	}
}

func totalWraps(res *qaguide.Result) int {
	n := 0
	for _, c := range res.Wraps {
		n += c
	}
	return n
}
