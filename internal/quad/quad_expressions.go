package quad

import (
	"github.com/cwbudde/mppc/internal/ast"
	"github.com/cwbudde/mppc/internal/types"
)

// emitExpression lowers expr. Per spec §4.G every expression leaves exactly
// one value on the stack iff used is true; side effects (assignment,
// inc/dec, calls) still happen when used is false.
func (e *Emitter) emitExpression(expr ast.Expression, used bool) {
	switch ex := expr.(type) {
	case nil:
	case *ast.Identifier:
		if used {
			e.emit("PUSH_%s %s", ex.Type.QuadTag(), ex.Reference.Alias())
		}
	case *ast.ValueLiteral:
		if used {
			e.emit("PUSH_%s %s", ex.Type.QuadTag(), literalOperand(ex))
		}
	case *ast.GroupedExpr:
		e.emitExpression(ex.Inner, used)
	case *ast.AssignExpr:
		e.emitAssign(ex, used)
	case *ast.BinaryExpr:
		e.emitBinary(ex, used)
	case *ast.UnaryExpr:
		e.emitUnary(ex, used)
	case *ast.CallExpr:
		e.emitCall(ex, used)
	case *ast.ErrorNode:
		// unreachable: emission never runs over a tree analysis rejected.
	}
}

func (e *Emitter) emitAssign(a *ast.AssignExpr, used bool) {
	e.emitExpression(a.Lhs, false)
	e.emitExpression(a.Rhs, true)
	e.convert(a.Rhs.Attrs().Type, a.Type)

	alias := a.Reference.Alias()
	e.emit("POP_%s %s", a.Type.QuadTag(), alias)
	if used {
		e.emit("PUSH_%s %s", a.Type.QuadTag(), alias)
	}
}

func (e *Emitter) emitBinary(b *ast.BinaryExpr, used bool) {
	if !used {
		e.emitExpression(b.Lhs, false)
		e.emitExpression(b.Rhs, false)
		return
	}
	e.emitExpression(b.Lhs, true)
	e.convert(b.Lhs.Attrs().Type, b.Type)
	e.emitExpression(b.Rhs, true)
	e.convert(b.Rhs.Attrs().Type, b.Type)
	e.emit("%s_%s", types.QuadMnemonic(b.Op), b.Type.QuadTag())
}

func (e *Emitter) emitUnary(u *ast.UnaryExpr, used bool) {
	if types.RequiresLvalue(u.Op) {
		e.emitIncDec(u, used)
		return
	}
	if u.Op == types.OpUnaryPlus {
		e.emitExpression(u.Operand, used)
		return
	}
	e.emitExpression(u.Operand, used)
	if used {
		e.emit("%s_%s", types.QuadMnemonic(u.Op), u.Type.QuadTag())
	}
}

// emitIncDec lowers pre/post inc/dec per spec §4.G. Pre-inc/dec pushes the
// current value, increments it, stores it back, and re-pushes only if
// used. Post-inc/dec additionally captures the old value (by reading the
// alias a second time before the increment) when used, since postfix
// yields the pre-increment value.
func (e *Emitter) emitIncDec(u *ast.UnaryExpr, used bool) {
	alias := u.Operand.Attrs().Reference.Alias()
	tag := u.Operand.Attrs().Type.QuadTag()
	mnemonic := types.QuadMnemonic(u.Op)

	e.emitExpression(u.Operand, true)
	if u.Postfix {
		if used {
			e.emit("PUSH_%s %s", tag, alias)
		}
		e.emit("%s_%s", mnemonic, tag)
		e.emit("POP_%s %s", tag, alias)
		return
	}

	e.emit("%s_%s", mnemonic, tag)
	e.emit("POP_%s %s", tag, alias)
	if used {
		e.emit("PUSH_%s %s", tag, alias)
	}
}

// emitCall lowers a function call: arguments are pushed in reverse order,
// each converted to the matching parameter's type, then CALL. If the
// callee's return value is unused it is discarded so every expression
// still leaves exactly zero or one value on the stack (spec §4.G).
func (e *Emitter) emitCall(c *ast.CallExpr, used bool) {
	fn, _ := c.Callee.Reference.(*ast.FunctionDecl)

	for i := len(c.Args) - 1; i >= 0; i-- {
		arg := c.Args[i]
		e.emitExpression(arg, true)
		if fn != nil && i < len(fn.Params) {
			e.convert(arg.Attrs().Type, fn.Params[i].Type)
		}
	}

	alias := c.Callee.Name
	if fn != nil {
		alias = fn.Alias()
	}
	e.emit("CALL %s", alias)

	if !used && c.Type != types.Void {
		e.emit("POP_%s", c.Type.QuadTag())
	}
}
