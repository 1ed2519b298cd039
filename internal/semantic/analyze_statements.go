package semantic

import (
	"sort"

	"github.com/cwbudde/mppc/internal/ast"
	"github.com/cwbudde/mppc/internal/fold"
	"github.com/cwbudde/mppc/internal/scope"
	"github.com/cwbudde/mppc/internal/types"
)

func (a *Analyzer) analyzeStatement(stmt ast.Statement) bool {
	if stmt == nil {
		return true
	}
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		return a.analyzeBlock(s)
	case *ast.VarDecl:
		return a.analyzeVarDecl(s)
	case *ast.MultiVarDecl:
		return a.analyzeMultiVarDecl(s)
	case *ast.FunctionDecl:
		return a.analyzeFunctionDecl(s)
	case *ast.IfStmt:
		return a.analyzeIf(s)
	case *ast.WhileStmt:
		return a.analyzeWhile(s)
	case *ast.DoWhileStmt:
		return a.analyzeDoWhile(s)
	case *ast.ForStmt:
		return a.analyzeFor(s)
	case *ast.BreakStmt:
		return a.analyzeBreak(s)
	case *ast.ContinueStmt:
		return a.analyzeContinue(s)
	case *ast.ReturnStmt:
		return a.analyzeReturn(s)
	case *ast.SwitchStmt:
		return a.analyzeSwitch(s)
	case *ast.ExprStmt:
		return a.analyzeExpression(s.Expr, false)
	case *ast.ErrorNode:
		a.sink.Error(s.Pos(), 1, "%s", s.Message)
		return false
	default:
		// An Expression used directly in statement position (e.g. a bare
		// identifier reference) falls through here since Expression embeds
		// Statement.
		if expr, ok := stmt.(ast.Expression); ok {
			return a.analyzeExpression(expr, false)
		}
		a.sink.Error(stmt.Pos(), 1, "internal error: unknown statement type")
		return false
	}
}

func (a *Analyzer) analyzeBlock(b *ast.BlockStmt) bool {
	if a.scopes.IsGlobalScope() {
		a.sink.Error(b.Pos(), 1, "block is not allowed in global scope")
		return false
	}
	a.scopes.Push(scope.Block, b)
	ok := true
	for _, stmt := range b.Statements {
		stmtOK := a.analyzeStatement(stmt)
		ok = and(ok, stmtOK)
	}
	res := a.scopes.Pop()
	a.reportPopScope(res)
	return ok
}

func (a *Analyzer) analyzeVarDecl(v *ast.VarDecl) bool {
	ok := true

	if v.Type == types.Void {
		a.sink.Error(v.Pos(), len(v.Name), "variable or field '%s' declared void", v.Name)
		ok = false
	}

	declared := a.scopes.Declare(v)
	if !declared {
		a.sink.Error(v.Pos(), len(v.Name), "'%s' redeclared", varHeader(v))
		ok = false
	}

	if a.scopes.DeclaringFuncParams {
		v.SetInitialized(true)
	}

	if v.Init != nil {
		prevInit := a.scopes.InitializingVar
		a.scopes.InitializingVar = true
		initOK := a.analyzeExpression(v.Init, true)
		a.scopes.InitializingVar = prevInit
		ok = and(ok, initOK)

		initType := v.Init.Attrs().Type
		if initType == types.Void || initType == types.FuncPtr {
			a.sink.Error(v.Init.Pos(), 1, "invalid conversion from '%s' to '%s'", initType, v.Type)
			ok = false
		}

		if a.scopes.DeclaringFuncParams {
			a.sink.Error(v.Init.Pos(), 1, "default function parameters are not allowed")
			ok = false
		}

		v.SetInitialized(true)

		if sw := a.scopes.EnclosingSwitch(); sw != nil {
			sw.InitializedInSwitch[v.Name] = v
		}
	} else if v.IsConstDecl && !a.scopes.DeclaringFuncParams {
		a.sink.Error(v.Pos(), len(v.Name), "uninitialized const '%s'", v.Name)
		ok = false
	}

	return ok
}

func (a *Analyzer) analyzeMultiVarDecl(m *ast.MultiVarDecl) bool {
	ok := true
	for _, d := range m.Decls {
		declOK := a.analyzeVarDecl(d)
		ok = and(ok, declOK)
	}
	return ok
}

func (a *Analyzer) analyzeFunctionDecl(f *ast.FunctionDecl) bool {
	ok := true

	if !a.scopes.IsGlobalScope() {
		a.sink.Error(f.Pos(), len(f.Name), "a function-definition is not allowed here")
		ok = false
	}

	if !a.scopes.Declare(f) {
		a.sink.Error(f.Pos(), len(f.Name), "'%s' redeclared", funcHeader(f))
		ok = false
	}

	a.scopes.Push(scope.Function, f)

	a.scopes.DeclaringFuncParams = true
	for i := range f.Params {
		p := &f.Params[i]
		paramDecl := &ast.VarDecl{Type: p.Type, Name: p.Name, VarAt: p.ParamAt}
		paramOK := a.analyzeVarDecl(paramDecl)
		p.Alias = paramDecl.Alias()
		ok = and(ok, paramOK)
	}
	a.scopes.DeclaringFuncParams = false

	bodyOK := true
	for _, stmt := range f.Body.Statements {
		stmtOK := a.analyzeStatement(stmt)
		bodyOK = and(bodyOK, stmtOK)
	}
	ok = and(ok, bodyOK)

	res := a.scopes.Pop()
	a.reportPopScope(res)

	return ok
}

func (a *Analyzer) analyzeIf(s *ast.IfStmt) bool {
	if a.scopes.IsGlobalScope() {
		a.sink.Error(s.Pos(), 2, "if-statement is not allowed in global scope")
		return false
	}
	a.scopes.Push(scope.If, s)
	ok := a.analyzeCondition(s.Cond)
	thenOK := a.analyzeStatement(s.Then)
	ok = and(ok, thenOK)
	if s.Else != nil {
		elseOK := a.analyzeStatement(s.Else)
		ok = and(ok, elseOK)
	}
	a.scopes.Pop()
	return ok
}

func (a *Analyzer) analyzeWhile(s *ast.WhileStmt) bool {
	if a.scopes.IsGlobalScope() {
		a.sink.Error(s.Pos(), 5, "while-statement is not allowed in global scope")
		return false
	}
	a.scopes.Push(scope.Loop, s)
	ok := a.analyzeCondition(s.Cond)
	bodyOK := a.analyzeStatement(s.Body)
	ok = and(ok, bodyOK)
	a.scopes.Pop()
	return ok
}

func (a *Analyzer) analyzeDoWhile(s *ast.DoWhileStmt) bool {
	if a.scopes.IsGlobalScope() {
		a.sink.Error(s.Pos(), 2, "do-while-statement is not allowed in global scope")
		return false
	}
	a.scopes.Push(scope.Loop, s)
	bodyOK := a.analyzeStatement(s.Body)
	condOK := a.analyzeCondition(s.Cond)
	a.scopes.Pop()
	return and(bodyOK, condOK)
}

func (a *Analyzer) analyzeFor(s *ast.ForStmt) bool {
	if a.scopes.IsGlobalScope() {
		a.sink.Error(s.Pos(), 3, "for-statement is not allowed in global scope")
		return false
	}
	a.scopes.Push(scope.Loop, s)
	ok := true
	if s.Init != nil {
		initOK := a.analyzeStatement(s.Init)
		ok = and(ok, initOK)
	}
	if s.Cond != nil {
		condOK := a.analyzeCondition(s.Cond)
		ok = and(ok, condOK)
	}
	if s.Post != nil {
		postOK := a.analyzeExpression(s.Post, false)
		ok = and(ok, postOK)
	}
	bodyOK := a.analyzeStatement(s.Body)
	ok = and(ok, bodyOK)
	a.scopes.Pop()
	return ok
}

// analyzeCondition analyzes an if/while/do-while/for condition expression,
// requiring it not be void (spec §4.E).
func (a *Analyzer) analyzeCondition(cond ast.Expression) bool {
	ok := a.analyzeExpression(cond, true)
	if cond.Attrs().Type == types.Void {
		a.sink.Error(cond.Pos(), 1, "invalid conversion from '%s' to '%s'", types.Void, types.Bool)
		ok = false
	}
	return ok
}

func (a *Analyzer) analyzeBreak(s *ast.BreakStmt) bool {
	if !a.scopes.BreakAllowed() {
		a.sink.Error(s.Pos(), 5, "break-statement not within loop or switch")
		return false
	}
	return true
}

func (a *Analyzer) analyzeContinue(s *ast.ContinueStmt) bool {
	if !a.scopes.ContinueAllowed() {
		a.sink.Error(s.Pos(), 8, "continue-statement not within loop")
		return false
	}
	return true
}

func (a *Analyzer) analyzeReturn(s *ast.ReturnStmt) bool {
	fn := a.scopes.EnclosingFunction()
	if fn == nil {
		a.sink.Error(s.Pos(), 6, "return-statement not within function")
		return false
	}

	ok := true
	if s.Value != nil {
		valOK := a.analyzeExpression(s.Value, true)
		ok = and(ok, valOK)
		if fn.RetType == types.Void && s.Value.Attrs().Type != types.Void {
			a.sink.Error(s.Value.Pos(), 1, "return-statement with '%s' value, in function returning 'void'", s.Value.Attrs().Type)
			ok = false
		}
	} else if fn.RetType != types.Void {
		a.sink.Error(s.Pos(), 6, "return-statement with no value, in function returning '%s'", fn.RetType)
		ok = false
	}
	return ok
}

// analyzeSwitch implements spec §4.E's switch contract. The parser already
// performs the case-block flattening the spec describes as a
// pre-computation step: ast.SwitchStmt.Cases is the parallel
// (label, governed-statements) list the emitter also consumes (spec §4.G).
func (a *Analyzer) analyzeSwitch(s *ast.SwitchStmt) bool {
	if a.scopes.IsGlobalScope() {
		a.sink.Error(s.Pos(), 6, "switch-statement is not allowed in global scope")
		return false
	}

	a.scopes.Push(scope.Switch, s)
	sw := a.scopes.Top()
	condOK := a.analyzeExpression(s.Tag, true)
	ok := condOK
	if !types.IsIntegerType(s.Tag.Attrs().Type) {
		a.sink.Error(s.Tag.Pos(), 1, "switch quantity not an integer")
		ok = false
	}

	for _, c := range s.Cases {
		caseOK := a.analyzeCaseLabel(c, sw)
		ok = and(ok, caseOK)
	}

	a.scopes.Pop()
	return ok
}

func (a *Analyzer) analyzeCaseLabel(c *ast.CaseLabelStmt, sw *scope.Frame) bool {
	ok := true

	if len(sw.InitializedInSwitch) > 0 {
		a.sink.Error(c.Pos(), 1, "jump to case label")

		decls := make([]ast.Declaration, 0, len(sw.InitializedInSwitch))
		for _, decl := range sw.InitializedInSwitch {
			decls = append(decls, decl)
		}
		sort.Slice(decls, func(i, j int) bool {
			return decls[i].Pos().Offset < decls[j].Pos().Offset
		})

		for _, decl := range decls {
			header := decl.DeclName()
			if v, ok := decl.(*ast.VarDecl); ok {
				header = varHeader(v)
			}
			a.sink.Note(decl.Pos(), len(decl.DeclName()), "crosses initialization of '%s'", header)
		}
		ok = false
	}

	if c.IsDefault {
		if !sw.DeclareDefault() {
			a.sink.Error(c.Pos(), 7, "multiple default labels in one switch")
			ok = false
		}
	} else {
		exprOK := a.analyzeExpression(c.ConstExpr, true)
		ok = and(ok, exprOK)

		if !c.ConstExpr.Attrs().Constant {
			a.sink.Error(c.ConstExpr.Pos(), 1, "constant expression required in case label")
			ok = false
		} else if !types.IsIntegerType(c.ConstExpr.Attrs().Type) {
			a.sink.Error(c.ConstExpr.Pos(), 1, "case quantity not an integer")
			ok = false
		} else if value, foldOK := fold.Eval(c.ConstExpr); !foldOK {
			a.sink.Error(c.ConstExpr.Pos(), 1, "constant expression required in case label")
			ok = false
		} else {
			c.FoldedInt = value
			if first, declOK := sw.DeclareCase(value, c); !declOK {
				a.sink.Error(c.ConstExpr.Pos(), 1, "duplicate case value")
				a.sink.Note(first.ConstExpr.Pos(), 1, "previously used here")
				ok = false
			}
		}
	}

	for _, stmt := range c.Statements {
		stmtOK := a.analyzeStatement(stmt)
		ok = and(ok, stmtOK)
	}

	return ok
}
