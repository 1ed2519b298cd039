package quad

import (
	"github.com/cwbudde/mppc/internal/ast"
	"github.com/cwbudde/mppc/internal/types"
)

// EmitProgram lowers an analyzed program into a quadruple listing. The
// caller must only invoke this on a tree whose Analyze returned true (spec
// §4.H emits nothing on analysis failure).
func EmitProgram(prog *ast.Program) *Listing {
	e := NewEmitter()
	for _, stmt := range prog.Statements {
		e.emitStatement(stmt)
	}
	return e.listing()
}

func (e *Emitter) emitStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case nil:
	case *ast.VarDecl:
		e.emitVarDecl(s)
	case *ast.MultiVarDecl:
		for _, d := range s.Decls {
			e.emitVarDecl(d)
		}
	case *ast.FunctionDecl:
		e.emitFunctionDecl(s)
	case *ast.BlockStmt:
		for _, child := range s.Statements {
			e.emitStatement(child)
		}
	case *ast.IfStmt:
		e.emitIf(s)
	case *ast.WhileStmt:
		e.emitWhile(s)
	case *ast.DoWhileStmt:
		e.emitDoWhile(s)
	case *ast.ForStmt:
		e.emitFor(s)
	case *ast.BreakStmt:
		e.emit("JMP %s", e.topBreak())
	case *ast.ContinueStmt:
		e.emit("JMP %s", e.topContinue())
	case *ast.ReturnStmt:
		e.emitReturn(s)
	case *ast.SwitchStmt:
		e.emitSwitch(s)
	case *ast.ExprStmt:
		e.emitExpression(s.Expr, false)
	case *ast.ErrorNode:
		// A tree containing an error node never reaches the emitter: the
		// driver only calls EmitProgram after a successful analysis pass.
	}
}

// emitVarDecl lowers a declaration with an initializer: spec §4.G,
// "variable declaration with initializer (or parameter)". A declaration
// without Init emits nothing; parameter pops are emitted by
// emitFunctionDecl.
func (e *Emitter) emitVarDecl(v *ast.VarDecl) {
	if v.Init == nil {
		return
	}
	e.emitExpression(v.Init, true)
	e.convert(v.Init.Attrs().Type, v.Type)
	e.emit("POP_%s %s", v.Type.QuadTag(), v.Alias())
}

func (e *Emitter) emitFunctionDecl(f *ast.FunctionDecl) {
	e.emit("PROC %s", f.Alias())

	prevFunc := e.currentFunc
	e.currentFunc = f

	for _, p := range f.Params {
		e.emit("POP_%s %s", p.Type.QuadTag(), p.Alias)
	}
	for _, stmt := range f.Body.Statements {
		e.emitStatement(stmt)
	}

	e.currentFunc = prevFunc
	e.emit("ENDP %s", f.Alias())
}

func (e *Emitter) emitIf(s *ast.IfStmt) {
	condTag := s.Cond.Attrs().Type.QuadTag()
	e.emitExpression(s.Cond, true)

	if s.Else == nil {
		lend := e.FreshLabel()
		e.emit("JZ_%s %s", condTag, lend)
		e.emitStatement(s.Then)
		e.label(lend)
		return
	}

	lelse := e.FreshLabel()
	lend := e.FreshLabel()
	e.emit("JZ_%s %s", condTag, lelse)
	e.emitStatement(s.Then)
	e.emit("JMP %s", lend)
	e.label(lelse)
	e.emitStatement(s.Else)
	e.label(lend)
}

func (e *Emitter) emitWhile(s *ast.WhileStmt) {
	ltop := e.FreshLabel()
	lexit := e.FreshLabel()

	e.label(ltop)
	e.emitExpression(s.Cond, true)
	e.emit("JZ_%s %s", s.Cond.Attrs().Type.QuadTag(), lexit)

	e.pushLoop(lexit, ltop)
	e.emitStatement(s.Body)
	e.popLoop()

	e.emit("JMP %s", ltop)
	e.label(lexit)
}

func (e *Emitter) emitDoWhile(s *ast.DoWhileStmt) {
	ltop := e.FreshLabel()
	lcont := e.FreshLabel()
	lexit := e.FreshLabel()

	e.label(ltop)
	e.pushLoop(lexit, lcont)
	e.emitStatement(s.Body)
	e.popLoop()

	e.label(lcont)
	e.emitExpression(s.Cond, true)
	e.emit("JNZ_%s %s", s.Cond.Attrs().Type.QuadTag(), ltop)
	e.label(lexit)
}

func (e *Emitter) emitFor(s *ast.ForStmt) {
	ltop := e.FreshLabel()
	lcont := e.FreshLabel()
	lexit := e.FreshLabel()

	if s.Init != nil {
		e.emitStatement(s.Init)
	}
	e.label(ltop)
	if s.Cond != nil {
		e.emitExpression(s.Cond, true)
		e.emit("JZ_%s %s", s.Cond.Attrs().Type.QuadTag(), lexit)
	}

	e.pushLoop(lexit, lcont)
	e.emitStatement(s.Body)
	e.popLoop()

	e.label(lcont)
	if s.Post != nil {
		e.emitExpression(s.Post, false)
	}
	e.emit("JMP %s", ltop)
	e.label(lexit)
}

func (e *Emitter) emitReturn(s *ast.ReturnStmt) {
	if s.Value != nil {
		e.emitExpression(s.Value, true)
		if e.currentFunc != nil {
			e.convert(s.Value.Attrs().Type, e.currentFunc.RetType)
		}
	}
	e.emit("RET")
}

// emitSwitch implements spec §4.G's comparison-chain lowering: comparisons
// and bodies for each case-block are interleaved so a fallthrough body
// (one with no break) runs straight into the next body via the "JMP
// Lbody[i]" bridge, while a failed comparison jumps to the next block's
// comparison label instead.
func (e *Emitter) emitSwitch(s *ast.SwitchStmt) {
	lbreak := e.FreshLabel()
	e.pushBreak(lbreak)

	condType := s.Tag.Attrs().Type
	e.emitExpression(s.Tag, true)
	cell := "SWITCH_COND@" + lbreak
	e.emit("POP_%s %s", condType.QuadTag(), cell)

	n := len(s.Cases)
	lcmp := make([]string, n)
	lbody := make([]string, n)
	defaultIdx := -1
	for i, c := range s.Cases {
		lbody[i] = e.FreshLabel()
		if c.IsDefault {
			defaultIdx = i
		} else {
			lcmp[i] = e.FreshLabel()
		}
	}

	nextTarget := func(i int) string {
		for j := i + 1; j < n; j++ {
			if !s.Cases[j].IsDefault {
				return lcmp[j]
			}
		}
		if defaultIdx != -1 {
			return lbody[defaultIdx]
		}
		return lbreak
	}

	if n > 0 && s.Cases[0].IsDefault {
		e.emit("JMP %s", nextTarget(0))
	}

	for i, c := range s.Cases {
		if i > 0 {
			e.emit("JMP %s", lbody[i])
		}
		if !c.IsDefault {
			e.label(lcmp[i])
			pt := types.Promote(condType, c.ConstExpr.Attrs().Type)
			e.emit("PUSH_%s %s", condType.QuadTag(), cell)
			e.convert(condType, pt)
			e.emit("PUSH_%s %d", c.ConstExpr.Attrs().Type.QuadTag(), c.FoldedInt)
			e.convert(c.ConstExpr.Attrs().Type, pt)
			e.emit("EQU_%s", pt.QuadTag())
			e.emit("JZ_%s %s", types.Bool.QuadTag(), nextTarget(i))
		}
		e.label(lbody[i])
		for _, stmt := range c.Statements {
			e.emitStatement(stmt)
		}
	}

	e.popBreak()
	e.label(lbreak)
}
