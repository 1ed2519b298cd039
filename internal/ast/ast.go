// Package ast defines the M++ parse tree: the typed node hierarchy statement,
// expression, and declaration nodes share, plus the computed attributes the
// semantic analyzer populates on expressions and declarations (spec §3).
//
// Node kinds are plain structs implementing small interfaces (Node,
// Statement, Expression). Per the spec's own redesign note, analyze/emit are
// NOT methods on these types — they are type-switch dispatchers living in
// internal/semantic and internal/quad. This package only owns shape and the
// attribute slots those passes fill in.
package ast

import (
	"strings"

	"github.com/cwbudde/mppc/internal/token"
	"github.com/cwbudde/mppc/internal/types"
)

// Node is the common interface every parse-tree node satisfies.
type Node interface {
	Pos() token.Position
	String() string
}

// Statement is any node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// Expression is any node that produces a value. Per spec §3, Expression
// extends Statement (an expression can appear in statement position).
type Expression interface {
	Statement
	expressionNode()
	Attrs() *ExprAttrs
}

// ExprAttrs holds the four computed attributes the analyzer populates on
// every expression (spec §3): the resolved type, the declaration this
// expression denotes storage for (if it is an lvalue), whether its value is
// a compile-time constant, and whether the parent consumes its value.
type ExprAttrs struct {
	Type      types.DataType
	Reference Declaration
	Constant  bool
	Used      bool
}

// Declaration is satisfied by the two node kinds that introduce a name into
// a scope: *VarDecl and *FunctionDecl. It carries the mutable bookkeeping
// fields the scope stack and analyzer update: Alias (assigned on
// declaration, unique per spec invariant 1) and Used (a count, per spec's
// preserved used-count/used-bool asymmetry, §9).
type Declaration interface {
	Statement
	DeclType() types.DataType
	DeclName() string
	Alias() string
	SetAlias(alias string)
	UseCount() int
	MarkUsed()
	Initialized() bool
	SetInitialized(bool)
	IsConst() bool
}

// Program is the root of the parse tree: the sequence of top-level
// declarations and statements the parser produced. It is the "root
// statement node" the driver passes to the analyzer and emitter (spec §4.H).
type Program struct {
	Statements []Statement
	StartPos   token.Position
}

func (p *Program) Pos() token.Position { return p.StartPos }
func (p *Program) statementNode()      {}
func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Statements {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// TypeNode wraps a data-type tag with its source location.
type TypeNode struct {
	Kind    types.DataType
	TypePos token.Position
}

func (t *TypeNode) Pos() token.Position { return t.TypePos }
func (t *TypeNode) String() string      { return t.Kind.String() }

// Identifier names a variable or function. As an expression it resolves
// (during analysis) to the Declaration it refers to.
type Identifier struct {
	ExprAttrs
	Name    string
	IdentPos token.Position
}

func (i *Identifier) Pos() token.Position { return i.IdentPos }
func (i *Identifier) String() string      { return i.Name }
func (i *Identifier) statementNode()      {}
func (i *Identifier) expressionNode()     {}
func (i *Identifier) Attrs() *ExprAttrs   { return &i.ExprAttrs }

// ErrorNode marks a location the parser could not make sense of. The
// analyzer turns it directly into a diagnostic (spec §6, §7) rather than
// trying to analyze it further.
type ErrorNode struct {
	ExprAttrs
	Message  string
	ErrorPos token.Position
}

func (e *ErrorNode) Pos() token.Position { return e.ErrorPos }
func (e *ErrorNode) String() string      { return "<error: " + e.Message + ">" }
func (e *ErrorNode) statementNode()      {}
func (e *ErrorNode) expressionNode()     {}
func (e *ErrorNode) Attrs() *ExprAttrs   { return &e.ExprAttrs }
