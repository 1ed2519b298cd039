package parser

import (
	"testing"

	"github.com/cwbudde/mppc/internal/ast"
	"github.com/cwbudde/mppc/internal/lexer"
	"github.com/cwbudde/mppc/internal/types"
)

func parse(t *testing.T, src string) (*ast.Program, bool) {
	t.Helper()
	toks, lexErrs := lexer.Tokenize(src)
	if len(lexErrs) > 0 {
		t.Fatalf("unexpected lex errors: %v", lexErrs)
	}
	return Parse(toks)
}

func TestParseSimpleFunction(t *testing.T) {
	prog, ok := parse(t, `int main() { int x = 3; x = x + 1; return x; }`)
	if !ok {
		t.Fatalf("expected no syntax errors")
	}
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 top-level statement, got %d", len(prog.Statements))
	}
	fn, isFn := prog.Statements[0].(*ast.FunctionDecl)
	if !isFn {
		t.Fatalf("expected *ast.FunctionDecl, got %T", prog.Statements[0])
	}
	if fn.Name != "main" || fn.RetType != types.Int {
		t.Errorf("got name=%q retType=%s", fn.Name, fn.RetType)
	}
	if len(fn.Body.Statements) != 3 {
		t.Fatalf("expected 3 statements in body, got %d", len(fn.Body.Statements))
	}
}

func TestParseGlobalVarDeclList(t *testing.T) {
	prog, ok := parse(t, `int a = 1, b, c = 3;`)
	if !ok {
		t.Fatalf("expected no syntax errors")
	}
	m, isMulti := prog.Statements[0].(*ast.MultiVarDecl)
	if !isMulti {
		t.Fatalf("expected *ast.MultiVarDecl, got %T", prog.Statements[0])
	}
	if len(m.Decls) != 3 {
		t.Fatalf("expected 3 decls, got %d", len(m.Decls))
	}
	if m.Decls[1].Init != nil {
		t.Errorf("expected the middle declaration to have no initializer")
	}
}

func TestParseFunctionWithParams(t *testing.T) {
	prog, ok := parse(t, `int add(int a, int b) { return a + b; }`)
	if !ok {
		t.Fatalf("expected no syntax errors")
	}
	fn := prog.Statements[0].(*ast.FunctionDecl)
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
	if fn.Params[0].Name != "a" || fn.Params[1].Name != "b" {
		t.Errorf("unexpected param names: %+v", fn.Params)
	}
}

func TestParseIfElse(t *testing.T) {
	prog, ok := parse(t, `int f() { if (1) { return 1; } else { return 0; } }`)
	if !ok {
		t.Fatalf("expected no syntax errors")
	}
	fn := prog.Statements[0].(*ast.FunctionDecl)
	ifs, isIf := fn.Body.Statements[0].(*ast.IfStmt)
	if !isIf {
		t.Fatalf("expected *ast.IfStmt, got %T", fn.Body.Statements[0])
	}
	if ifs.Else == nil {
		t.Errorf("expected an else branch")
	}
}

func TestParseWhileDoForLoops(t *testing.T) {
	src := `int f() {
		while (1) { break; }
		do { continue; } while (0);
		for (int i = 0; i < 10; i++) { }
	}`
	prog, ok := parse(t, src)
	if !ok {
		t.Fatalf("expected no syntax errors")
	}
	fn := prog.Statements[0].(*ast.FunctionDecl)
	if len(fn.Body.Statements) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(fn.Body.Statements))
	}
	if _, ok := fn.Body.Statements[0].(*ast.WhileStmt); !ok {
		t.Errorf("statement 0: expected *ast.WhileStmt, got %T", fn.Body.Statements[0])
	}
	if _, ok := fn.Body.Statements[1].(*ast.DoWhileStmt); !ok {
		t.Errorf("statement 1: expected *ast.DoWhileStmt, got %T", fn.Body.Statements[1])
	}
	forStmt, ok := fn.Body.Statements[2].(*ast.ForStmt)
	if !ok {
		t.Fatalf("statement 2: expected *ast.ForStmt, got %T", fn.Body.Statements[2])
	}
	if forStmt.Init == nil || forStmt.Cond == nil || forStmt.Post == nil {
		t.Errorf("expected all three for-clauses to be present")
	}
}

func TestParseSwitchFlattensCaseLabels(t *testing.T) {
	src := `int f() {
		switch (1) {
		case 1:
		case 2:
			break;
		default:
			break;
		}
	}`
	prog, ok := parse(t, src)
	if !ok {
		t.Fatalf("expected no syntax errors")
	}
	fn := prog.Statements[0].(*ast.FunctionDecl)
	sw, isSwitch := fn.Body.Statements[0].(*ast.SwitchStmt)
	if !isSwitch {
		t.Fatalf("expected *ast.SwitchStmt, got %T", fn.Body.Statements[0])
	}
	if len(sw.Cases) != 3 {
		t.Fatalf("expected 3 case blocks (1, 2, default), got %d", len(sw.Cases))
	}
	if len(sw.Cases[0].Statements) != 0 {
		t.Errorf("expected the first case (fallthrough) to carry no statements of its own")
	}
	if !sw.Cases[2].IsDefault {
		t.Errorf("expected the third block to be the default label")
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	prog, ok := parse(t, `int f() { return 1 + 2 * 3; }`)
	if !ok {
		t.Fatalf("expected no syntax errors")
	}
	fn := prog.Statements[0].(*ast.FunctionDecl)
	ret := fn.Body.Statements[0].(*ast.ReturnStmt)
	bin, isBin := ret.Value.(*ast.BinaryExpr)
	if !isBin || bin.Op != types.OpAdd {
		t.Fatalf("expected top-level '+' , got %#v", ret.Value)
	}
	rhs, isBin := bin.Rhs.(*ast.BinaryExpr)
	if !isBin || rhs.Op != types.OpMul {
		t.Fatalf("expected '*' to bind tighter than '+', got %#v", bin.Rhs)
	}
}

func TestParseAssignmentIsRightAssociative(t *testing.T) {
	prog, ok := parse(t, `int f() { int a = 0; int b = 0; a = b = 5; }`)
	if !ok {
		t.Fatalf("expected no syntax errors")
	}
	fn := prog.Statements[0].(*ast.FunctionDecl)
	exprStmt := fn.Body.Statements[2].(*ast.ExprStmt)
	outer, isAssign := exprStmt.Expr.(*ast.AssignExpr)
	if !isAssign {
		t.Fatalf("expected *ast.AssignExpr, got %T", exprStmt.Expr)
	}
	if _, innerIsAssign := outer.Rhs.(*ast.AssignExpr); !innerIsAssign {
		t.Fatalf("expected the right operand to itself be an assignment, got %T", outer.Rhs)
	}
}

func TestParsePrePostIncDec(t *testing.T) {
	prog, ok := parse(t, `int f() { int x = 0; return x++ + ++x; }`)
	if !ok {
		t.Fatalf("expected no syntax errors")
	}
	fn := prog.Statements[0].(*ast.FunctionDecl)
	ret := fn.Body.Statements[1].(*ast.ReturnStmt)
	bin := ret.Value.(*ast.BinaryExpr)

	post, isUnary := bin.Lhs.(*ast.UnaryExpr)
	if !isUnary || post.Op != types.OpPostInc || !post.Postfix {
		t.Fatalf("expected postfix ++ on the left, got %#v", bin.Lhs)
	}
	pre, isUnary := bin.Rhs.(*ast.UnaryExpr)
	if !isUnary || pre.Op != types.OpPreInc || pre.Postfix {
		t.Fatalf("expected prefix ++ on the right, got %#v", bin.Rhs)
	}
}

func TestParseFunctionCallWithArgs(t *testing.T) {
	prog, ok := parse(t, `int f() { return add(1, 2 * 3); }`)
	if !ok {
		t.Fatalf("expected no syntax errors")
	}
	fn := prog.Statements[0].(*ast.FunctionDecl)
	ret := fn.Body.Statements[0].(*ast.ReturnStmt)
	call, isCall := ret.Value.(*ast.CallExpr)
	if !isCall {
		t.Fatalf("expected *ast.CallExpr, got %T", ret.Value)
	}
	if call.Callee.Name != "add" || len(call.Args) != 2 {
		t.Fatalf("got callee=%q args=%d", call.Callee.Name, len(call.Args))
	}
}

func TestParseConstDeclaration(t *testing.T) {
	prog, ok := parse(t, `const float pi = 3.14;`)
	if !ok {
		t.Fatalf("expected no syntax errors")
	}
	v, isVar := prog.Statements[0].(*ast.VarDecl)
	if !isVar {
		t.Fatalf("expected *ast.VarDecl, got %T", prog.Statements[0])
	}
	if !v.IsConstDecl || v.Type != types.Float {
		t.Errorf("expected a const float declaration, got %+v", v)
	}
}

func TestParseCharAndBoolLiterals(t *testing.T) {
	prog, ok := parse(t, `bool b = true; char c = '\n';`)
	if !ok {
		t.Fatalf("expected no syntax errors")
	}
	boolDecl := prog.Statements[0].(*ast.VarDecl)
	lit := boolDecl.Init.(*ast.ValueLiteral)
	if v, isBool := lit.Value.(bool); !isBool || !v {
		t.Errorf("expected bool literal true, got %#v", lit.Value)
	}

	charDecl := prog.Statements[1].(*ast.VarDecl)
	charLit := charDecl.Init.(*ast.ValueLiteral)
	if r, isRune := charLit.Value.(rune); !isRune || r != '\n' {
		t.Errorf("expected decoded '\\n' escape, got %#v", charLit.Value)
	}
}

func TestParseSyntaxErrorProducesErrorNodeAndRecovers(t *testing.T) {
	prog, ok := parse(t, `int f() { int x = ; } int g() { return 1; }`)
	if ok {
		t.Fatalf("expected a syntax error to be recorded")
	}
	if len(prog.Statements) != 2 {
		t.Fatalf("expected parsing to recover and still find both top-level declarations, got %d", len(prog.Statements))
	}
	if _, isFn := prog.Statements[1].(*ast.FunctionDecl); !isFn {
		t.Fatalf("expected the second function to still parse after recovery, got %T", prog.Statements[1])
	}
}

func TestParseMissingTypeAtTopLevelIsSyntaxError(t *testing.T) {
	_, ok := parse(t, `x = 1;`)
	if ok {
		t.Fatalf("expected a syntax error for a bare statement at global scope")
	}
}

func TestParseEmptyFunctionBody(t *testing.T) {
	prog, ok := parse(t, `void f() { }`)
	if !ok {
		t.Fatalf("expected no syntax errors")
	}
	fn := prog.Statements[0].(*ast.FunctionDecl)
	if len(fn.Body.Statements) != 0 {
		t.Errorf("expected an empty body, got %d statements", len(fn.Body.Statements))
	}
}
