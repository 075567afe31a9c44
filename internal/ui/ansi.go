// Package ui renders non-interactive CLI output: colored status lines,
// framed panels and progress bars.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
)

const (
	symCheck = "✔"
	symCross = "✖"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr

	out    = termenv.NewOutput(os.Stdout)
	errOut = termenv.NewOutput(os.Stderr)

	forceColor   bool
	disableColor bool
)

// SetOutput redirects stdout/stderr rendering; colors are re-detected for
// the new writers.
func SetOutput(o, e io.Writer) {
	stdout, stderr = o, e
	rebuild()
}

// SetColorForcing overrides TTY detection.
func SetColorForcing(force, disable bool) {
	forceColor = force
	disableColor = disable
	rebuild()
}

func rebuild() {
	out = newOutput(stdout)
	errOut = newOutput(stderr)
}

func newOutput(w io.Writer) *termenv.Output {
	switch {
	case disableColor, current.Name == "mono":
		return termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))
	case forceColor:
		return termenv.NewOutput(w, termenv.WithProfile(termenv.ANSI256))
	}
	return termenv.NewOutput(w)
}

// C colors s with a theme color spec ("" leaves s plain).
func C(color, s string) string { return paint(out, color, s) }

// Bold renders s in bold on stdout's profile.
func Bold(s string) string { return out.String(s).Bold().String() }

// Faint renders s dimmed on stdout's profile.
func Faint(s string) string { return out.String(s).Faint().String() }

func paint(o *termenv.Output, color, s string) string {
	if color == "" {
		return s
	}
	return o.String(s).Foreground(o.Color(color)).String()
}

func OK(msg string) { fmt.Fprintln(stdout, C(current.Success, symCheck+" "+msg)) }
func Fail(msg string) {
	fmt.Fprintln(stderr, paint(errOut, current.Error, symCross+" "+msg))
}

// Hint prints a muted follow-up line on stderr.
func Hint(msg string) { fmt.Fprintln(stderr, paint(errOut, current.Muted, msg)) }

// Println writes one plain line to the configured stdout.
func Println(s string) { fmt.Fprintln(stdout, s) }
