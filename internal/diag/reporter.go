package diag

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

const (
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiReset  = "\x1b[0m"
)

// Reporter writes diagnostics to a stream, one per line, optionally
// colored by severity when that stream is a terminal.
type Reporter struct {
	w        io.Writer
	color    bool
	errCount int
	warnCount int
}

// NewReporter builds a Reporter writing to w. Color is auto-detected
// via golang.org/x/term when w is *os.File; call SetColor to override
// that detection (used when the config file disables color, and by tests).
func NewReporter(w io.Writer) *Reporter {
	r := &Reporter{w: w}
	if f, ok := w.(*os.File); ok {
		r.color = term.IsTerminal(int(f.Fd()))
	}
	return r
}

// SetColor overrides the auto-detected color setting.
func (r *Reporter) SetColor(enabled bool) {
	r.color = enabled
}

// Report writes one diagnostic and tallies it.
func (r *Reporter) Report(d Diagnostic) {
	if d.Severity == Error {
		r.errCount++
	} else {
		r.warnCount++
	}
	if !r.color {
		fmt.Fprintln(r.w, d.String())
		return
	}
	code := ansiRed
	if d.Severity == Warning {
		code = ansiYellow
	}
	fmt.Fprintf(r.w, "%s%s%s\n", code, d.String(), ansiReset)
}

// ReportMemoryFull writes the fixed "memory is full" message, which
// falls outside the numbered catalog in the original (it's printed
// directly by the memory manager rather than going through the error
// catalog), and tallies it as an error.
func (r *Reporter) ReportMemoryFull() {
	r.errCount++
	msg := "Error: memory is full."
	if !r.color {
		fmt.Fprintln(r.w, msg)
		return
	}
	fmt.Fprintf(r.w, "%s%s%s\n", ansiRed, msg, ansiReset)
}

// HasErrors reports whether any Error-severity diagnostic was reported.
func (r *Reporter) HasErrors() bool {
	return r.errCount > 0
}

// ErrorCount and WarningCount return the running tallies.
func (r *Reporter) ErrorCount() int   { return r.errCount }
func (r *Reporter) WarningCount() int { return r.warnCount }

// Fatal reports an unrecoverable internal invariant violation and
// terminates the process, mirroring the original's single fatal path
// (there, an allocation failure; here, a broken invariant that the
// type system should have prevented from occurring at all).
func Fatal(msg string) {
	fmt.Fprintf(os.Stderr, "Fatal Error: %s, exiting program!\n\n", msg)
	os.Exit(1)
}
