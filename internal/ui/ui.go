// Package ui renders user-facing CLI output: section headings, check
// marks for validation results, and colored warnings on stderr.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Printer writes results to Out and diagnostics to Err.
type Printer struct {
	Out io.Writer
	Err io.Writer

	outColor bool
	errColor bool
}

// New returns a Printer for the given files, coloring each one only when
// it is a terminal and NO_COLOR is unset.
func New(out, errOut *os.File) *Printer {
	return &Printer{
		Out:      out,
		Err:      errOut,
		outColor: detectColor(out),
		errColor: detectColor(errOut),
	}
}

// Plain returns a Printer that never emits ANSI codes.
func Plain(out, errOut io.Writer) *Printer {
	return &Printer{Out: out, Err: errOut}
}

func detectColor(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetColor overrides color detection for both streams.
func (p *Printer) SetColor(enabled bool) {
	p.outColor = enabled
	p.errColor = enabled
}

func paint(on bool, code, s string) string {
	if !on {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}

func (p *Printer) Bold(s string) string   { return paint(p.outColor, "1", s) }
func (p *Printer) Dim(s string) string    { return paint(p.outColor, "2", s) }
func (p *Printer) Green(s string) string  { return paint(p.outColor, "32", s) }
func (p *Printer) Red(s string) string    { return paint(p.outColor, "31", s) }
func (p *Printer) Yellow(s string) string { return paint(p.outColor, "33", s) }

// Section prints a bold title with a thin underline.
func (p *Printer) Section(title string) {
	fmt.Fprintln(p.Out, p.Bold(title))
	fmt.Fprintln(p.Out, p.Dim(strings.Repeat("─", len([]rune(title)))))
}

// Check prints one result line: a green ✓ or red ✗, the subject, and an
// optional dimmed detail.
func (p *Printer) Check(ok bool, subject, detail string) {
	tag := p.Green("✓")
	if !ok {
		tag = p.Red("✗")
	}
	if detail == "" {
		fmt.Fprintf(p.Out, "%s %s\n", tag, subject)
		return
	}
	fmt.Fprintf(p.Out, "%s %s  %s\n", tag, subject, p.Dim(detail))
}

// Warnf prints a warning to Err.
func (p *Printer) Warnf(format string, args ...any) {
	fmt.Fprintf(p.Err, "%s %s\n", paint(p.errColor, "33", "Warning:"), fmt.Sprintf(format, args...))
}

// Errorf prints an error to Err.
func (p *Printer) Errorf(format string, args ...any) {
	fmt.Fprintf(p.Err, "%s %s\n", paint(p.errColor, "31", "Error:"), fmt.Sprintf(format, args...))
}

// Infof prints an unprefixed message to Err.
func (p *Printer) Infof(format string, args ...any) {
	fmt.Fprintf(p.Err, format+"\n", args...)
}
