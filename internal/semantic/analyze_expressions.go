package semantic

import (
	"github.com/cwbudde/mppc/internal/ast"
	"github.com/cwbudde/mppc/internal/types"
)

// analyzeExpression dispatches on expression kind, propagating valueUsed
// down per spec §4.E, and sets expr.Attrs().Used = valueUsed on the way
// out regardless of which branch ran.
func (a *Analyzer) analyzeExpression(expr ast.Expression, valueUsed bool) bool {
	if expr == nil {
		return true
	}

	var ok bool
	switch e := expr.(type) {
	case *ast.Identifier:
		ok = a.analyzeIdentifier(e, valueUsed)
	case *ast.ValueLiteral:
		ok = a.analyzeValueLiteral(e, valueUsed)
	case *ast.GroupedExpr:
		ok = a.analyzeGroupedExpr(e, valueUsed)
	case *ast.AssignExpr:
		ok = a.analyzeAssign(e, valueUsed)
	case *ast.BinaryExpr:
		ok = a.analyzeBinary(e, valueUsed)
	case *ast.UnaryExpr:
		ok = a.analyzeUnary(e, valueUsed)
	case *ast.CallExpr:
		ok = a.analyzeCall(e, valueUsed)
	case *ast.ErrorNode:
		a.sink.Error(e.Pos(), 1, "%s", e.Message)
		ok = false
	default:
		a.sink.Error(expr.Pos(), 1, "internal error: unknown expression type")
		ok = false
	}

	expr.Attrs().Used = valueUsed
	return ok
}

func (a *Analyzer) analyzeIdentifier(id *ast.Identifier, valueUsed bool) bool {
	decl := a.scopes.Lookup(id.Name)
	if decl == nil {
		a.sink.Error(id.Pos(), len(id.Name), "'%s' was not declared in this scope", id.Name)
		id.Type = types.Error
		return false
	}

	id.Reference = decl
	id.Constant = decl.IsConst()
	if _, isFn := decl.(*ast.FunctionDecl); isFn {
		id.Type = types.FuncPtr
	} else {
		id.Type = decl.DeclType()
	}

	ok := true
	if valueUsed {
		decl.MarkUsed()
		if vd, isVar := decl.(*ast.VarDecl); isVar && !vd.Initialized() {
			a.sink.Error(id.Pos(), len(id.Name), "variable or field '%s' used without being initialized", id.Name)
			ok = false
		}
	}
	return ok
}

func (a *Analyzer) analyzeValueLiteral(v *ast.ValueLiteral, _ bool) bool {
	v.Constant = true
	return true
}

func (a *Analyzer) analyzeGroupedExpr(g *ast.GroupedExpr, valueUsed bool) bool {
	ok := true
	if a.scopes.IsGlobalScope() && !a.scopes.InitializingVar {
		a.sink.Error(g.Pos(), 1, "expression is not allowed in global scope")
		ok = false
	}
	innerOK := a.analyzeExpression(g.Inner, valueUsed)
	ok = and(ok, innerOK)

	g.Type = g.Inner.Attrs().Type
	g.Reference = g.Inner.Attrs().Reference
	g.Constant = g.Inner.Attrs().Constant
	return ok
}

func (a *Analyzer) analyzeAssign(asn *ast.AssignExpr, _ bool) bool {
	rhsOK := a.analyzeExpression(asn.Rhs, true)
	lhsOK := a.analyzeExpression(asn.Lhs, false)
	ok := and(rhsOK, lhsOK)

	lhsType := asn.Lhs.Attrs().Type
	ref := asn.Lhs.Attrs().Reference

	if lhsType == types.FuncPtr {
		header := asn.Lhs.String()
		if ref != nil {
			header = declHeader(ref)
		}
		a.sink.Error(asn.Lhs.Pos(), 1, "assignment of function '%s'", header)
		ok = false
	}
	if ref == nil {
		a.sink.Error(asn.EqAt, 1, "lvalue required as left operand of assignment")
		ok = false
	} else if ref.IsConst() {
		a.sink.Error(asn.Lhs.Pos(), 1, "assignment of read-only variable '%s'", declHeader(ref))
		ok = false
	}

	rhsType := asn.Rhs.Attrs().Type
	if rhsType == types.Void || rhsType == types.FuncPtr {
		a.sink.Error(asn.Rhs.Pos(), 1, "invalid conversion from '%s' to '%s'", rhsType, lhsType)
		ok = false
	}

	asn.Type = lhsType
	asn.Reference = ref
	asn.Constant = false
	if ref != nil {
		ref.SetInitialized(true)
	}
	return ok
}

func (a *Analyzer) analyzeBinary(b *ast.BinaryExpr, valueUsed bool) bool {
	lhsOK := a.analyzeExpression(b.Lhs, valueUsed)
	rhsOK := a.analyzeExpression(b.Rhs, valueUsed)
	ok := and(lhsOK, rhsOK)

	lt := b.Lhs.Attrs().Type
	rt := b.Rhs.Attrs().Type

	if lt == types.Void || lt == types.FuncPtr || rt == types.Void || rt == types.FuncPtr {
		a.sink.Error(b.Pos(), 1, "invalid operands of types '%s' and '%s' to binary operator '%s'", lt, rt, b.Op)
		ok = false
		b.Type = types.Error
	} else if types.IsIntegerOnly(b.Op) && (lt == types.Float || rt == types.Float) {
		a.sink.Error(b.Pos(), 1, "invalid operands of types '%s' and '%s' to binary operator '%s'", lt, rt, b.Op)
		ok = false
		b.Type = types.Error
	} else if types.IsLogical(b.Op) {
		b.Type = types.Bool
	} else {
		b.Type = types.Promote(lt, rt)
	}

	b.Constant = b.Lhs.Attrs().Constant && b.Rhs.Attrs().Constant
	return ok
}

func (a *Analyzer) analyzeUnary(u *ast.UnaryExpr, valueUsed bool) bool {
	effectiveUsed := valueUsed
	if types.RequiresLvalue(u.Op) {
		effectiveUsed = true
	}
	operandOK := a.analyzeExpression(u.Operand, effectiveUsed)
	ok := operandOK

	ot := u.Operand.Attrs().Type
	if ot == types.Void || ot == types.FuncPtr {
		a.sink.Error(u.Pos(), 1, "invalid operands of types '%s' and '%s' to binary operator '%s'", ot, ot, u.Op)
		ok = false
		u.Type = types.Error
	} else if types.IsBitwise(u.Op) && ot == types.Float {
		a.sink.Error(u.Pos(), 1, "invalid operands of types '%s' and '%s' to binary operator '%s'", ot, ot, u.Op)
		ok = false
		u.Type = types.Error
	} else if types.IsLogical(u.Op) {
		u.Type = types.Bool
	} else {
		u.Type = ot
	}

	if types.RequiresLvalue(u.Op) {
		ref := u.Operand.Attrs().Reference
		if ref == nil {
			a.sink.Error(u.Pos(), 1, "lvalue required as left operand of assignment")
			ok = false
		} else if ref.IsConst() {
			a.sink.Error(u.Pos(), 1, "assignment of read-only variable '%s'", declHeader(ref))
			ok = false
		}
	}

	switch u.Op {
	case types.OpPreInc, types.OpPreDec:
		u.Reference = u.Operand.Attrs().Reference
	default:
		u.Reference = nil
	}
	u.Constant = u.Operand.Attrs().Constant
	return ok
}

func (a *Analyzer) analyzeCall(c *ast.CallExpr, _ bool) bool {
	decl := a.scopes.Lookup(c.Callee.Name)
	if decl == nil {
		a.sink.Error(c.Callee.Pos(), len(c.Callee.Name), "'%s' was not declared in this scope", c.Callee.Name)
		c.Type = types.Error
		return false
	}

	fn, isFn := decl.(*ast.FunctionDecl)
	if !isFn {
		a.sink.Error(c.Callee.Pos(), len(c.Callee.Name), "'%s' cannot be used as a function", c.Callee.Name)
		c.Type = types.Error
		return false
	}

	c.Callee.Reference = fn
	c.Callee.Type = types.FuncPtr

	ok := true
	if len(c.Args) > len(fn.Params) {
		a.sink.Error(c.Pos(), 1, "too many arguments to function '%s'", funcHeader(fn))
		ok = false
	} else if len(c.Args) < len(fn.Params) {
		a.sink.Error(c.Pos(), 1, "too few arguments to function '%s'", funcHeader(fn))
		ok = false
	}

	for i, arg := range c.Args {
		argOK := a.analyzeExpression(arg, true)
		ok = and(ok, argOK)

		at := arg.Attrs().Type
		if i < len(fn.Params) && (at == types.Void || at == types.FuncPtr) {
			a.sink.Error(arg.Pos(), 1, "invalid conversion from '%s' to '%s' in function '%s' call", at, fn.Params[i].Type, funcHeader(fn))
			ok = false
		}
	}

	c.Type = fn.RetType
	c.Reference = nil
	c.Constant = false
	if ok {
		fn.MarkUsed()
	}
	return ok
}
