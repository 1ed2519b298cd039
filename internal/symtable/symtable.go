// Package symtable renders the optional symbol-table dump requested with
// `--sym_table FILE` (spec §6): a box-drawn table of every declaration
// still live once analysis finishes. Local scopes are already popped by
// then, so the dump only ever lists the global scope's declarations — the
// durable symbol set, the way `nm`/`objdump -t` list a binary's globals
// rather than its call-stack locals.
//
// The renderer borrows the plain io.Writer/fmt.Fprintf style of the
// teacher's bytecode.Disassembler (internal/bytecode/disasm.go) rather than
// reaching for a table-formatting library: the column set is fixed and
// small, so a hand-built grid keeps the dependency list honest.
package symtable

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cwbudde/mppc/internal/ast"
)

var columns = []string{"depth", "type", "identifier", "alias", "uses"}

// row is one rendered table line, already stringified per column.
type row [5]string

// Dump renders decls as a box-drawn table and returns it as a string.
// decls is expected to be internal/semantic's Analyzer.GlobalDeclarations()
// result; every entry is reported at depth 0, since only global-scope
// declarations survive to dump time.
func Dump(decls []ast.Declaration) string {
	var sb strings.Builder
	_ = Write(&sb, decls)
	return sb.String()
}

// Write renders decls as a box-drawn table to w.
func Write(w io.Writer, decls []ast.Declaration) error {
	rows := make([]row, len(decls))
	for i, d := range decls {
		rows[i] = declRow(d)
	}

	widths := columnWidths(rows)

	if err := writeRule(w, widths, "┌", "┬", "┐"); err != nil {
		return err
	}
	if err := writeRow(w, widths, headerRow()); err != nil {
		return err
	}
	if err := writeRule(w, widths, "├", "┼", "┤"); err != nil {
		return err
	}
	for _, r := range rows {
		if err := writeRow(w, widths, r); err != nil {
			return err
		}
	}
	return writeRule(w, widths, "└", "┴", "┘")
}

func headerRow() row {
	return row{columns[0], columns[1], columns[2], columns[3], columns[4]}
}

// declRow extracts one declaration's dump row. A function's use-count
// reflects call sites, exactly like a variable's reflects reads.
func declRow(d ast.Declaration) row {
	return row{
		"0",
		d.DeclType().String(),
		d.DeclName(),
		d.Alias(),
		strconv.Itoa(d.UseCount()),
	}
}

func columnWidths(rows []row) [5]int {
	var widths [5]int
	for i, h := range headerRow() {
		widths[i] = len([]rune(h))
	}
	for _, r := range rows {
		for i, cell := range r {
			if n := len([]rune(cell)); n > widths[i] {
				widths[i] = n
			}
		}
	}
	return widths
}

func writeRule(w io.Writer, widths [5]int, left, mid, right string) error {
	parts := make([]string, len(widths))
	for i, width := range widths {
		parts[i] = strings.Repeat("─", width+2)
	}
	_, err := fmt.Fprintf(w, "%s%s%s\n", left, strings.Join(parts, mid), right)
	return err
}

func writeRow(w io.Writer, widths [5]int, r row) error {
	parts := make([]string, len(r))
	for i, cell := range r {
		parts[i] = fmt.Sprintf(" %-*s ", widths[i], cell)
	}
	_, err := fmt.Fprintf(w, "│%s│\n", strings.Join(parts, "│"))
	return err
}
