// Package diag formats and routes the compiler's diagnostics: errors,
// warnings, and notes located by a source line and a caret/tilde
// underline, in the teacher's errors.CompilerError style (spec §4.D).
package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/cwbudde/mppc/internal/token"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
	Note
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	}
	return "?"
}

// Diagnostic is one reported message tied to a source position and
// (usually) a span length for the underline.
type Diagnostic struct {
	Severity Severity
	Message  string
	Pos      token.Position
	Len      int // underline width; 0 or 1 both render a single caret
}

// tabWidth is the column width a tab expands to when rendering the source
// line and underline, matching the original compiler's display behavior.
const tabWidth = 4

// Format renders d against source lines split from the full source text,
// in the filename:line:column form the teacher's CompilerError.Format
// uses, followed by the offending line and a caret/tilde underline.
func (d Diagnostic) Format(filename string, lines []string) string {
	var sb strings.Builder

	if filename != "" {
		fmt.Fprintf(&sb, "%s:%d:%d: %s: %s\n", filename, d.Pos.Line, d.Pos.Column, d.Severity, d.Message)
	} else {
		fmt.Fprintf(&sb, "%d:%d: %s: %s\n", d.Pos.Line, d.Pos.Column, d.Severity, d.Message)
	}

	if d.Pos.Line < 1 || d.Pos.Line > len(lines) {
		return sb.String()
	}
	raw := lines[d.Pos.Line-1]
	expanded, caretCol := expandTabs(raw, d.Pos.Column, tabWidth)

	sb.WriteString(expanded)
	sb.WriteString("\n")

	sb.WriteString(strings.Repeat(" ", caretCol-1))
	sb.WriteString("^")
	width := d.Len
	if width > 1 {
		sb.WriteString(strings.Repeat("~", width-1))
	}
	sb.WriteString("\n")

	return sb.String()
}

// expandTabs rewrites line, replacing each tab with spaces out to the next
// tabWidth boundary, and recomputes the 1-based caret column so the
// underline still lands under the same rune in the expanded line.
func expandTabs(line string, col, tabWidth int) (string, int) {
	var sb strings.Builder
	outCol := 1
	caretCol := 1
	for i, r := range []rune(line) {
		if i+1 == col {
			caretCol = outCol
		}
		if r == '\t' {
			spaces := tabWidth - ((outCol - 1) % tabWidth)
			sb.WriteString(strings.Repeat(" ", spaces))
			outCol += spaces
		} else {
			sb.WriteRune(r)
			outCol++
		}
	}
	if col > len([]rune(line)) {
		caretCol = outCol
	}
	return sb.String(), caretCol
}

// Sink collects diagnostics as they are raised during compilation and
// knows how to render them to the program's output streams: errors go to
// Stderr, warnings and notes go to Stdout; warnings are suppressed unless
// WarnEnabled is set, notes never are (spec §4.D, §6).
type Sink struct {
	Filename    string
	Lines       []string
	WarnEnabled bool

	diagnostics []Diagnostic
}

// NewSink splits source into lines and returns a Sink ready to record
// diagnostics against it.
func NewSink(filename, source string, warnEnabled bool) *Sink {
	return &Sink{
		Filename:    filename,
		Lines:       strings.Split(source, "\n"),
		WarnEnabled: warnEnabled,
	}
}

// Error records an error diagnostic.
func (s *Sink) Error(pos token.Position, length int, format string, args ...interface{}) {
	s.add(Error, pos, length, format, args...)
}

// Warning records a warning diagnostic.
func (s *Sink) Warning(pos token.Position, length int, format string, args ...interface{}) {
	s.add(Warning, pos, length, format, args...)
}

// Note records a note diagnostic.
func (s *Sink) Note(pos token.Position, length int, format string, args ...interface{}) {
	s.add(Note, pos, length, format, args...)
}

func (s *Sink) add(sev Severity, pos token.Position, length int, format string, args ...interface{}) {
	s.diagnostics = append(s.diagnostics, Diagnostic{
		Severity: sev,
		Message:  fmt.Sprintf(format, args...),
		Pos:      pos,
		Len:      length,
	})
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (s *Sink) HasErrors() bool {
	for _, d := range s.diagnostics {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// All returns every recorded diagnostic in the order it was raised.
func (s *Sink) All() []Diagnostic {
	return s.diagnostics
}

// Emit writes every recorded diagnostic to errOut (errors) or stdOut
// (notes always; warnings only when WarnEnabled). Notes cross-reference a
// preceding error (e.g. "previously used here") and so print unconditionally
// alongside it, independent of the --warn flag.
func (s *Sink) Emit(stdOut, errOut io.Writer) {
	for _, d := range s.diagnostics {
		switch d.Severity {
		case Error:
			io.WriteString(errOut, d.Format(s.Filename, s.Lines))
		case Note:
			io.WriteString(stdOut, d.Format(s.Filename, s.Lines))
		case Warning:
			if s.WarnEnabled {
				io.WriteString(stdOut, d.Format(s.Filename, s.Lines))
			}
		}
	}
}
