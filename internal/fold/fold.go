// Package fold implements the integer constant evaluator used to resolve
// switch case-label expressions at analysis time (spec §4.F). It only
// needs to handle the integer-valued subset of expressions, matching the
// original compiler's getConstIntValue family, and truncates to 32-bit
// two's-complement on every operation to match that compiler's C `int`
// arithmetic (spec §12).
package fold

import (
	"github.com/cwbudde/mppc/internal/ast"
	"github.com/cwbudde/mppc/internal/types"
)

// trunc32 wraps v into the int32 range the way a C `int` would on
// overflow, by truncating through int32.
func trunc32(v int64) int32 {
	return int32(v)
}

// Eval recursively evaluates expr as a compile-time integer constant. ok
// is false if expr is not a foldable constant expression (a non-constant
// identifier, a float literal, a function call, or an unsupported
// operator, or a zero divisor), in which case the analyzer reports
// "constant expression required in case label" and the value is
// meaningless.
func Eval(expr ast.Expression) (value int32, ok bool) {
	switch n := expr.(type) {
	case *ast.ValueLiteral:
		return evalLiteral(n)
	case *ast.Identifier:
		return evalIdentifier(n)
	case *ast.GroupedExpr:
		return Eval(n.Inner)
	case *ast.UnaryExpr:
		return evalUnary(n)
	case *ast.BinaryExpr:
		return evalBinary(n)
	default:
		return 0, false
	}
}

func evalLiteral(n *ast.ValueLiteral) (int32, bool) {
	switch v := n.Value.(type) {
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case rune:
		return trunc32(int64(v)), true
	case int64:
		return trunc32(v), true
	default:
		// Float literals, and anything else, are not integer-foldable.
		return 0, false
	}
}

func evalIdentifier(n *ast.Identifier) (int32, bool) {
	decl, ok := n.Reference.(*ast.VarDecl)
	if !ok || decl == nil {
		return 0, false
	}
	if !decl.IsConst() || !decl.Initialized() || decl.Init == nil {
		return 0, false
	}
	if !types.IsIntegerType(decl.Type) {
		return 0, false
	}
	return Eval(decl.Init)
}

func evalUnary(n *ast.UnaryExpr) (int32, bool) {
	v, ok := Eval(n.Operand)
	if !ok {
		return 0, false
	}
	switch n.Op {
	case types.OpUnaryPlus:
		return v, true
	case types.OpUnaryMinus:
		return trunc32(-int64(v)), true
	case types.OpBitNot:
		return ^v, true
	case types.OpLogicalNot:
		if v == 0 {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func evalBinary(n *ast.BinaryExpr) (int32, bool) {
	l, ok := Eval(n.Lhs)
	if !ok {
		return 0, false
	}
	r, ok := Eval(n.Rhs)
	if !ok {
		return 0, false
	}
	switch n.Op {
	case types.OpAdd:
		return trunc32(int64(l) + int64(r)), true
	case types.OpSub:
		return trunc32(int64(l) - int64(r)), true
	case types.OpMul:
		return trunc32(int64(l) * int64(r)), true
	case types.OpDiv:
		if r == 0 {
			return 0, false
		}
		return trunc32(int64(l) / int64(r)), true
	case types.OpMod:
		if r == 0 {
			return 0, false
		}
		return trunc32(int64(l) % int64(r)), true
	case types.OpBitAnd:
		return l & r, true
	case types.OpBitOr:
		return l | r, true
	case types.OpBitXor:
		return l ^ r, true
	case types.OpShl:
		return trunc32(int64(l) << uint(r)), true
	case types.OpShr:
		return trunc32(int64(l) >> uint(r)), true
	case types.OpLogicalAnd:
		return boolInt(l != 0 && r != 0), true
	case types.OpLogicalOr:
		return boolInt(l != 0 || r != 0), true
	case types.OpLT:
		return boolInt(l < r), true
	case types.OpLTE:
		return boolInt(l <= r), true
	case types.OpGT:
		return boolInt(l > r), true
	case types.OpGTE:
		return boolInt(l >= r), true
	case types.OpEQ:
		return boolInt(l == r), true
	case types.OpNEQ:
		return boolInt(l != r), true
	default:
		return 0, false
	}
}

