package ast

import (
	"strings"

	"github.com/cwbudde/mppc/internal/token"
	"github.com/cwbudde/mppc/internal/types"
)

// GroupedExpr is the expression-container node: a parenthesization. It has
// no effect on semantics beyond gating where expressions are allowed at
// global scope (spec §4.E, "expression container").
type GroupedExpr struct {
	ExprAttrs
	Inner    Expression
	LParenAt token.Position
}

func (g *GroupedExpr) Pos() token.Position { return g.LParenAt }
func (g *GroupedExpr) String() string      { return "(" + g.Inner.String() + ")" }
func (g *GroupedExpr) statementNode()      {}
func (g *GroupedExpr) expressionNode()     {}
func (g *GroupedExpr) Attrs() *ExprAttrs   { return &g.ExprAttrs }

// AssignExpr is `lhs = rhs`.
type AssignExpr struct {
	ExprAttrs
	Lhs, Rhs Expression
	EqAt     token.Position
}

func (a *AssignExpr) Pos() token.Position { return a.EqAt }
func (a *AssignExpr) String() string      { return a.Lhs.String() + " = " + a.Rhs.String() }
func (a *AssignExpr) statementNode()      {}
func (a *AssignExpr) expressionNode()     {}
func (a *AssignExpr) Attrs() *ExprAttrs   { return &a.ExprAttrs }

// BinaryExpr is `lhs OP rhs` for any of the binary surface operators.
type BinaryExpr struct {
	ExprAttrs
	Lhs, Rhs Expression
	Op       types.Operator
	OpAt     token.Position
}

func (b *BinaryExpr) Pos() token.Position { return b.OpAt }
func (b *BinaryExpr) String() string {
	return "(" + b.Lhs.String() + " " + b.Op.String() + " " + b.Rhs.String() + ")"
}
func (b *BinaryExpr) statementNode()    {}
func (b *BinaryExpr) expressionNode()   {}
func (b *BinaryExpr) Attrs() *ExprAttrs { return &b.ExprAttrs }

// UnaryExpr covers unary +/-, bitwise not, logical not, and pre/post
// inc/dec (Postfix distinguishes ++x from x++).
type UnaryExpr struct {
	ExprAttrs
	Operand Expression
	Op      types.Operator
	OpAt    token.Position
	Postfix bool
}

func (u *UnaryExpr) Pos() token.Position { return u.OpAt }
func (u *UnaryExpr) String() string {
	if u.Postfix {
		return "(" + u.Operand.String() + u.Op.String() + ")"
	}
	return "(" + u.Op.String() + u.Operand.String() + ")"
}
func (u *UnaryExpr) statementNode()    {}
func (u *UnaryExpr) expressionNode()   {}
func (u *UnaryExpr) Attrs() *ExprAttrs { return &u.ExprAttrs }

// ValueLiteral is a bool/char/int/float literal. Value holds the parsed Go
// value (bool, int64, float64, or a single rune for char), consulted by the
// constant folder and the emitter.
type ValueLiteral struct {
	ExprAttrs
	Value    interface{}
	Text     string
	LitPos   token.Position
}

func (v *ValueLiteral) Pos() token.Position { return v.LitPos }
func (v *ValueLiteral) String() string      { return v.Text }
func (v *ValueLiteral) statementNode()      {}
func (v *ValueLiteral) expressionNode()     {}
func (v *ValueLiteral) Attrs() *ExprAttrs   { return &v.ExprAttrs }

// CallExpr is a function call `callee(args...)`.
type CallExpr struct {
	ExprAttrs
	Callee  *Identifier
	Args    []Expression
	CallAt  token.Position
}

func (c *CallExpr) Pos() token.Position { return c.CallAt }
func (c *CallExpr) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Callee.Name + "(" + strings.Join(parts, ", ") + ")"
}
func (c *CallExpr) statementNode()    {}
func (c *CallExpr) expressionNode()   {}
func (c *CallExpr) Attrs() *ExprAttrs { return &c.ExprAttrs }
