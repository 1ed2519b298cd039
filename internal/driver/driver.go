// Package driver wires the front end's stages together: read source, lex,
// parse, analyze, emit, write. It is the in-process analogue of the
// teacher's cmd/dwscript/cmd/compile.go, minus the bytecode/unit machinery
// this front end has no use for (spec §4.H).
package driver

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/mppc/internal/diag"
	"github.com/cwbudde/mppc/internal/lexer"
	"github.com/cwbudde/mppc/internal/parser"
	"github.com/cwbudde/mppc/internal/quad"
	"github.com/cwbudde/mppc/internal/semantic"
	"github.com/cwbudde/mppc/internal/symtable"
)

// Options configures a Compile run.
type Options struct {
	// WarnEnabled controls whether warning diagnostics are emitted
	// (spec §4.D); errors and notes are always emitted regardless.
	WarnEnabled bool
	// DumpSymbols requests the symbol-table text be populated in Result
	// (spec §6); the caller decides whether and where to write it.
	DumpSymbols bool
}

// Result carries everything a caller (the CLI or a test) needs from one
// compilation: the rendered diagnostics, the quadruple listing text (empty
// on failure), and the optional symbol-table dump text.
type Result struct {
	Diagnostics []diag.Diagnostic
	Quad        string
	SymbolTable string
	Ok          bool

	sink *diag.Sink
}

// Emit renders Result's diagnostics through the same Sink that recorded
// them, so filenames/source lines/tab expansion stay consistent with what
// Compile saw (spec §4.D).
func (r Result) Emit(stdOut, errOut io.Writer) {
	r.sink.Emit(stdOut, errOut)
}

// Compile runs the five-step pipeline of spec §4.H over source. filename is
// used only for diagnostic rendering and has no effect on semantics.
func Compile(source, filename string, opts Options) Result {
	sink := diag.NewSink(filename, source, opts.WarnEnabled)

	tokens, lexErrs := lexer.Tokenize(source)
	for _, le := range lexErrs {
		sink.Error(le.Pos, 1, "%s", le.Message)
	}

	// parser.Parse's own ok is not consulted directly: syntax errors are
	// embedded as *ast.ErrorNode, and analysis below is what turns those
	// into real diagnostics via sink.Error.
	prog, _ := parser.Parse(tokens)

	analyzer := semantic.New(sink)
	analyzeOk := analyzer.Analyze(prog)

	if !analyzeOk || sink.HasErrors() {
		return Result{Diagnostics: sink.All(), Ok: false, sink: sink}
	}

	listing := quad.EmitProgram(prog)

	res := Result{Diagnostics: sink.All(), Quad: listing.String(), Ok: true, sink: sink}
	if opts.DumpSymbols {
		res.SymbolTable = symtable.Dump(analyzer.GlobalDeclarations())
	}
	return res
}

// CompileFile reads path, compiles it, and writes the quadruple listing to
// outPath (or, if empty, path with its extension replaced by ".quad").
// When symTablePath is non-empty and compilation succeeded, the
// symbol-table dump is written there too. Diagnostics are always printed
// to stderr/stdout via sink.Emit's convention before either file is
// touched. Compile failures still leave an empty output file behind, per
// spec §4.H step 4, rather than leaving a stale one from a previous run.
func CompileFile(path, outPath, symTablePath string, warnEnabled bool) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	if outPath == "" {
		outPath = defaultOutputPath(path)
	}

	result := Compile(string(content), path, Options{
		WarnEnabled: warnEnabled,
		DumpSymbols: symTablePath != "",
	})
	result.Emit(os.Stdout, os.Stderr)

	if !result.Ok {
		if err := os.WriteFile(outPath, nil, 0o644); err != nil {
			return fmt.Errorf("failed to write output file %s: %w", outPath, err)
		}
		return nil
	}

	if err := os.WriteFile(outPath, []byte(result.Quad), 0o644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outPath, err)
	}

	if symTablePath != "" {
		if err := os.WriteFile(symTablePath, []byte(result.SymbolTable), 0o644); err != nil {
			return fmt.Errorf("failed to write symbol table file %s: %w", symTablePath, err)
		}
	}

	return nil
}

// defaultOutputPath replaces path's extension with ".quad", or appends it
// if path has none (spec §6's "vendor-chosen default").
func defaultOutputPath(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return path + ".quad"
	}
	return strings.TrimSuffix(path, ext) + ".quad"
}
