package diag

import (
	"bytes"
	"strings"
	"testing"
)

func TestDiagnosticStringNoToken(t *testing.T) {
	d := NewError(12, ErrDuplicateSymbol)
	want := "Error, line 12: such symbol already exists."
	if got := d.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestDiagnosticStringWithToken(t *testing.T) {
	d := NewErrorToken(3, ErrIllegalLabel, "9bad")
	want := "Error, line 3: \"9bad\" is an illegal label."
	if got := d.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestWarningText(t *testing.T) {
	d := NewWarning(5, WarnValueWontFit10)
	want := "Warning, line 5: value will not fit in 10 bits."
	if got := d.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestTokenTruncation(t *testing.T) {
	d := NewErrorToken(1, ErrLabelTooLong, "averylonglabelname")
	if !strings.Contains(d.String(), "\"avery...\"") {
		t.Errorf("expected truncated token in %q", d.String())
	}
}

func TestReporterTalliesAndPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)
	r.SetColor(false)
	r.Report(NewError(1, ErrDuplicateSymbol))
	r.Report(NewWarning(2, WarnValueWontFit10))

	if r.ErrorCount() != 1 || r.WarningCount() != 1 {
		t.Errorf("ErrorCount=%d WarningCount=%d, want 1,1", r.ErrorCount(), r.WarningCount())
	}
	if !r.HasErrors() {
		t.Error("HasErrors() = false, want true")
	}
	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Errorf("expected plain output, got ANSI codes: %q", out)
	}
	if !strings.Contains(out, "such symbol already exists.") {
		t.Errorf("output missing error text: %q", out)
	}
}

func TestReporterColorOutput(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)
	r.SetColor(true)
	r.Report(NewError(1, ErrDuplicateSymbol))
	if !strings.Contains(buf.String(), ansiRed) {
		t.Errorf("expected red ANSI code in colored output: %q", buf.String())
	}
}
