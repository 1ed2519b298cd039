package diag

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cwbudde/mppc/internal/token"
)

func TestDiagnosticFormatBasic(t *testing.T) {
	d := Diagnostic{Severity: Error, Message: "undeclared identifier 'x'", Pos: token.Position{Line: 1, Column: 5}, Len: 1}
	out := d.Format("foo.mpp", []string{"int y = x;"})
	if !strings.Contains(out, "foo.mpp:1:5: error: undeclared identifier 'x'") {
		t.Errorf("missing header: %q", out)
	}
	lines := strings.Split(out, "\n")
	if lines[1] != "int y = x;" {
		t.Errorf("source line wrong: %q", lines[1])
	}
	if lines[2] != "    ^" {
		t.Errorf("caret line wrong: %q", lines[2])
	}
}

func TestDiagnosticFormatWithTildeSpan(t *testing.T) {
	d := Diagnostic{Severity: Warning, Message: "unused variable", Pos: token.Position{Line: 1, Column: 1}, Len: 3}
	out := d.Format("", []string{"foo = 1;"})
	lines := strings.Split(out, "\n")
	if lines[2] != "^~~" {
		t.Errorf("underline wrong: %q", lines[2])
	}
}

func TestExpandTabsAlignsCaret(t *testing.T) {
	expanded, col := expandTabs("\tx = 1;", 2, 4)
	if expanded != "    x = 1;" {
		t.Errorf("expanded = %q", expanded)
	}
	if col != 5 {
		t.Errorf("caretCol = %d, want 5", col)
	}
}

func TestSinkEmitRoutesBySeverity(t *testing.T) {
	sink := NewSink("t.mpp", "int x;\n", true)
	sink.Error(token.Position{Line: 1, Column: 1}, 1, "bad thing: %s", "oops")
	sink.Warning(token.Position{Line: 1, Column: 1}, 1, "unused variable '%s'", "x")

	var stdout, stderr bytes.Buffer
	sink.Emit(&stdout, &stderr)

	if !strings.Contains(stderr.String(), "bad thing: oops") {
		t.Errorf("error should go to stderr, got stderr=%q stdout=%q", stderr.String(), stdout.String())
	}
	if !strings.Contains(stdout.String(), "unused variable 'x'") {
		t.Errorf("warning should go to stdout, got stdout=%q", stdout.String())
	}
}

func TestSinkSuppressesWarningsUnlessEnabled(t *testing.T) {
	sink := NewSink("t.mpp", "int x;\n", false)
	sink.Warning(token.Position{Line: 1, Column: 1}, 1, "unused variable 'x'")

	var stdout, stderr bytes.Buffer
	sink.Emit(&stdout, &stderr)

	if stdout.Len() != 0 {
		t.Errorf("warning should be suppressed when WarnEnabled is false, got %q", stdout.String())
	}
}

func TestSinkHasErrors(t *testing.T) {
	sink := NewSink("t.mpp", "x\n", false)
	if sink.HasErrors() {
		t.Errorf("fresh sink should report no errors")
	}
	sink.Note(token.Position{Line: 1, Column: 1}, 1, "fyi")
	if sink.HasErrors() {
		t.Errorf("a note should not count as an error")
	}
	sink.Error(token.Position{Line: 1, Column: 1}, 1, "bad")
	if !sink.HasErrors() {
		t.Errorf("after recording an error, HasErrors should be true")
	}
}
