package symtable

import (
	"strings"
	"testing"

	"github.com/cwbudde/mppc/internal/ast"
	"github.com/cwbudde/mppc/internal/diag"
	"github.com/cwbudde/mppc/internal/semantic"
	"github.com/cwbudde/mppc/internal/types"
	"github.com/gkampitakis/go-snaps/snaps"
)

func lit(v interface{}, t types.DataType) *ast.ValueLiteral {
	return &ast.ValueLiteral{ExprAttrs: ast.ExprAttrs{Type: t, Constant: true}, Value: v}
}

func ident(name string) *ast.Identifier {
	return &ast.Identifier{Name: name}
}

func TestDumpHasHeaderAndBoxDrawing(t *testing.T) {
	v := &ast.VarDecl{Type: types.Int, Name: "count", Init: lit(int64(0), types.Int)}
	prog := &ast.Program{Statements: []ast.Statement{v}}

	sink := diag.NewSink("t.mpp", "", true)
	a := semantic.New(sink)
	if !a.Analyze(prog) {
		t.Fatalf("analysis failed")
	}

	got := Dump(a.GlobalDeclarations())
	for _, want := range []string{"┌", "┬", "┐", "├", "┼", "┤", "└", "┴", "┘", "│", "depth", "type", "identifier", "alias", "uses"} {
		if !strings.Contains(got, want) {
			t.Errorf("dump missing %q, got:\n%s", want, got)
		}
	}
	if !strings.Contains(got, "count") {
		t.Errorf("dump missing declared identifier, got:\n%s", got)
	}
}

func TestDumpOnlyIncludesGlobalScope(t *testing.T) {
	fn := &ast.FunctionDecl{
		Name: "main", RetType: types.Int,
		Body: &ast.BlockStmt{Statements: []ast.Statement{
			&ast.VarDecl{Type: types.Int, Name: "local", Init: lit(int64(1), types.Int)},
			&ast.ReturnStmt{Value: lit(int64(0), types.Int)},
		}},
	}
	prog := &ast.Program{Statements: []ast.Statement{fn}}

	sink := diag.NewSink("t.mpp", "", true)
	a := semantic.New(sink)
	if !a.Analyze(prog) {
		t.Fatalf("analysis failed")
	}

	got := Dump(a.GlobalDeclarations())
	if !strings.Contains(got, "main") {
		t.Errorf("dump missing global function, got:\n%s", got)
	}
	if strings.Contains(got, "local") {
		t.Errorf("dump should not include a popped local scope's declarations, got:\n%s", got)
	}
}

func TestDumpReflectsUseCount(t *testing.T) {
	fn := &ast.FunctionDecl{
		Name: "helper", RetType: types.Int,
		Body: &ast.BlockStmt{Statements: []ast.Statement{&ast.ReturnStmt{Value: lit(int64(0), types.Int)}}},
	}
	caller := &ast.FunctionDecl{
		Name: "main", RetType: types.Int,
		Body: &ast.BlockStmt{Statements: []ast.Statement{
			&ast.ReturnStmt{Value: &ast.CallExpr{Callee: ident("helper")}},
		}},
	}
	prog := &ast.Program{Statements: []ast.Statement{fn, caller}}

	sink := diag.NewSink("t.mpp", "", true)
	a := semantic.New(sink)
	if !a.Analyze(prog) {
		t.Fatalf("analysis failed")
	}

	got := Dump(a.GlobalDeclarations())
	lines := strings.Split(got, "\n")
	found := false
	for _, l := range lines {
		if strings.Contains(l, "helper") && strings.Contains(l, "│ 1") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected helper's use-count column to read 1, got:\n%s", got)
	}
}

func TestDumpEmptyProgramStillRendersHeader(t *testing.T) {
	prog := &ast.Program{}

	sink := diag.NewSink("t.mpp", "", true)
	a := semantic.New(sink)
	if !a.Analyze(prog) {
		t.Fatalf("analysis failed")
	}

	got := Dump(a.GlobalDeclarations())
	if !strings.Contains(got, "identifier") {
		t.Errorf("expected header row even with no declarations, got:\n%s", got)
	}
}

func TestSnapshotDumpForMixedDeclarations(t *testing.T) {
	fn := &ast.FunctionDecl{
		Name: "square", RetType: types.Int,
		Params: []ast.Param{{Type: types.Int, Name: "n"}},
		Body:   &ast.BlockStmt{Statements: []ast.Statement{&ast.ReturnStmt{Value: ident("n")}}},
	}
	prog := &ast.Program{Statements: []ast.Statement{
		&ast.VarDecl{Type: types.Float, Name: "pi", IsConstDecl: true, Init: lit(float64(3.14), types.Float)},
		fn,
	}}

	sink := diag.NewSink("t.mpp", "", true)
	a := semantic.New(sink)
	if !a.Analyze(prog) {
		t.Fatalf("analysis failed")
	}

	snaps.MatchSnapshot(t, Dump(a.GlobalDeclarations()))
}
