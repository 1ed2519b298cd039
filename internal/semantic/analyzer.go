// Package semantic implements the single-pass semantic analyzer: a
// boolean-valued tree walk over the parse tree that resolves identifiers,
// checks types, and reports diagnostics (spec §4.E). Per the parse tree's
// own design note, analyze is not a method on each node kind — it is a
// type-switch dispatcher here, mirroring the teacher's
// analyzeStatement/analyzeExpression split.
package semantic

import (
	"strings"

	"github.com/cwbudde/mppc/internal/ast"
	"github.com/cwbudde/mppc/internal/diag"
	"github.com/cwbudde/mppc/internal/scope"
)

// Analyzer walks a *ast.Program, reporting diagnostics to sink and
// maintaining the scope stack across the walk.
type Analyzer struct {
	sink        *diag.Sink
	scopes      *scope.Stack
	globalDecls []ast.Declaration
}

// New returns an Analyzer that reports to sink.
func New(sink *diag.Sink) *Analyzer {
	return &Analyzer{sink: sink, scopes: scope.New()}
}

// Analyze walks prog and returns true iff no error-severity diagnostic was
// reported anywhere in the tree. Analysis never stops at the first error;
// every statement is still visited so a single run surfaces every
// diagnostic.
func (a *Analyzer) Analyze(prog *ast.Program) bool {
	ok := true
	for _, stmt := range prog.Statements {
		// Every top-level statement is visited regardless of earlier
		// failures (spec §4.E): compute this statement's result first,
		// then combine, rather than short-circuiting on ok.
		stmtOK := a.analyzeStatement(stmt)
		ok = ok && stmtOK
	}
	a.globalDecls = a.scopes.Global().Declarations()
	res := a.scopes.Pop()
	a.reportPopScope(res)
	return ok
}

// GlobalDeclarations returns the program's top-level declarations as they
// stood at the end of Analyze, for internal/symtable's dump (spec §6):
// only the durable, global symbol set survives past analysis, since every
// local scope has already been popped.
func (a *Analyzer) GlobalDeclarations() []ast.Declaration {
	return a.globalDecls
}

func (a *Analyzer) reportPopScope(res scope.PopResult) {
	for _, decl := range res.UnusedVars {
		v := decl.(*ast.VarDecl)
		header := varHeader(v)
		a.sink.Warning(v.Pos(), len(v.DeclName()), "the value of variable '%s' is never used", header)
	}
	for _, decl := range res.UnusedFuncs {
		f := decl.(*ast.FunctionDecl)
		header := funcHeader(f)
		a.sink.Warning(f.Pos(), len(f.DeclName()), "function '%s' is never called", header)
	}
}

// varHeader renders a variable declaration's header the way the original
// compiler's declaredHeader() does: "<type> <name>".
func varHeader(v *ast.VarDecl) string {
	return v.Type.String() + " " + v.Name
}

// funcHeader renders a function's header: "<rettype> <name>(<paramtypes>)".
func funcHeader(f *ast.FunctionDecl) string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.Type.String()
	}
	return f.RetType.String() + " " + f.Name + "(" + strings.Join(parts, ", ") + ")"
}

// declHeader renders decl's declaredHeader()-style header regardless of its
// concrete kind, falling back to its bare name for declarations that are
// neither (there are none today, but this keeps the helper total).
func declHeader(decl ast.Declaration) string {
	switch d := decl.(type) {
	case *ast.VarDecl:
		return varHeader(d)
	case *ast.FunctionDecl:
		return funcHeader(d)
	default:
		return decl.DeclName()
	}
}

// and combines two already-computed results with logical and. Used instead
// of `a() && b()` wherever both sides must run regardless of the other's
// outcome (spec §4.E): as a plain function call, Go evaluates both
// arguments before and is invoked, so neither side is skipped the way `&&`
// would skip the right side once the left is false.
func and(a, b bool) bool { return a && b }
