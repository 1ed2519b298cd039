package ast

import (
	"strings"

	"github.com/cwbudde/mppc/internal/token"
	"github.com/cwbudde/mppc/internal/types"
)

// BlockStmt is a brace-delimited statement sequence. It introduces a block
// scope (spec §4.C).
type BlockStmt struct {
	Statements []Statement
	LBraceAt   token.Position
}

func (b *BlockStmt) Pos() token.Position { return b.LBraceAt }
func (b *BlockStmt) statementNode()      {}
func (b *BlockStmt) String() string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, s := range b.Statements {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// IfStmt is `if (Cond) Then [else Else]`. Then and Else each introduce
// their own scope when they are blocks (spec §4.E).
type IfStmt struct {
	Cond    Expression
	Then    Statement
	Else    Statement
	IfAt    token.Position
}

func (i *IfStmt) Pos() token.Position { return i.IfAt }
func (i *IfStmt) statementNode()      {}
func (i *IfStmt) String() string {
	s := "if (" + i.Cond.String() + ") " + i.Then.String()
	if i.Else != nil {
		s += " else " + i.Else.String()
	}
	return s
}

// CaseLabelStmt is one `case <const>:` or `default:` arm inside a switch,
// holding the statements that run until the next label or the closing
// brace. An arm without a break falls through into the next arm's
// statements, per spec's switch lowering in §4.G.
type CaseLabelStmt struct {
	IsDefault  bool
	ConstExpr  Expression // nil when IsDefault
	FoldedInt  int32      // populated by the constant folder (spec §4.F)
	Statements []Statement
	CaseAt     token.Position
}

func (c *CaseLabelStmt) Pos() token.Position { return c.CaseAt }
func (c *CaseLabelStmt) statementNode()      {}
func (c *CaseLabelStmt) String() string {
	var sb strings.Builder
	if c.IsDefault {
		sb.WriteString("default:\n")
	} else {
		sb.WriteString("case " + c.ConstExpr.String() + ":\n")
	}
	for _, s := range c.Statements {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// SwitchStmt is `switch (Tag) { Cases... }`. It introduces a switch scope
// that tracks which case constants have been seen and whether a default
// arm is present (spec §4.C, §4.E).
type SwitchStmt struct {
	Tag      Expression
	Cases    []*CaseLabelStmt
	SwitchAt token.Position
}

func (s *SwitchStmt) Pos() token.Position { return s.SwitchAt }
func (s *SwitchStmt) statementNode()      {}
func (s *SwitchStmt) String() string {
	var sb strings.Builder
	sb.WriteString("switch (" + s.Tag.String() + ") {\n")
	for _, c := range s.Cases {
		sb.WriteString(c.String())
	}
	sb.WriteString("}")
	return sb.String()
}

// WhileStmt is `while (Cond) Body`, a loop scope that allows break/continue.
type WhileStmt struct {
	Cond     Expression
	Body     Statement
	WhileAt  token.Position
}

func (w *WhileStmt) Pos() token.Position { return w.WhileAt }
func (w *WhileStmt) statementNode()      {}
func (w *WhileStmt) String() string {
	return "while (" + w.Cond.String() + ") " + w.Body.String()
}

// DoWhileStmt is `do Body while (Cond);`.
type DoWhileStmt struct {
	Body  Statement
	Cond  Expression
	DoAt  token.Position
}

func (d *DoWhileStmt) Pos() token.Position { return d.DoAt }
func (d *DoWhileStmt) statementNode()      {}
func (d *DoWhileStmt) String() string {
	return "do " + d.Body.String() + " while (" + d.Cond.String() + ");"
}

// ForStmt is the C-style `for (Init; Cond; Post) Body`. Init, Cond, and
// Post are each optional (nil when omitted). Per the preserved C semantics
// (spec §9), Cond is tested before every iteration including the first.
type ForStmt struct {
	Init   Statement // VarDecl, MultiVarDecl, ExprStmt, or nil
	Cond   Expression // nil means "always true"
	Post   Expression // nil when omitted
	Body   Statement
	ForAt  token.Position
}

func (f *ForStmt) Pos() token.Position { return f.ForAt }
func (f *ForStmt) statementNode()      {}
func (f *ForStmt) String() string {
	init, cond, post := "", "", ""
	if f.Init != nil {
		init = f.Init.String()
	}
	if f.Cond != nil {
		cond = f.Cond.String()
	}
	if f.Post != nil {
		post = f.Post.String()
	}
	return "for (" + init + "; " + cond + "; " + post + ") " + f.Body.String()
}

// BreakStmt terminates the nearest enclosing loop or switch.
type BreakStmt struct {
	BreakAt token.Position
}

func (b *BreakStmt) Pos() token.Position { return b.BreakAt }
func (b *BreakStmt) statementNode()      {}
func (b *BreakStmt) String() string      { return "break;" }

// ContinueStmt jumps to the next iteration of the nearest enclosing loop.
type ContinueStmt struct {
	ContinueAt token.Position
}

func (c *ContinueStmt) Pos() token.Position { return c.ContinueAt }
func (c *ContinueStmt) statementNode()      {}
func (c *ContinueStmt) String() string      { return "continue;" }

// ReturnStmt is `return [Value];`. Value is nil for a bare return.
type ReturnStmt struct {
	Value    Expression
	ReturnAt token.Position
}

func (r *ReturnStmt) Pos() token.Position { return r.ReturnAt }
func (r *ReturnStmt) statementNode()      {}
func (r *ReturnStmt) String() string {
	if r.Value == nil {
		return "return;"
	}
	return "return " + r.Value.String() + ";"
}

// Param is one function parameter: a type and a name, no default value.
// Alias is populated by the analyzer (it declares each parameter as a
// synthetic VarDecl) and consulted by the emitter to pop the caller's
// pushed argument into the right cell.
type Param struct {
	Type    types.DataType
	Name    string
	ParamAt token.Position
	Alias   string
}

// FunctionDecl declares a function: its return type, parameters, and body.
// It implements Declaration so it can be entered into the enclosing (global)
// scope and referred to by CallExpr and by function-pointer-typed
// identifiers.
type FunctionDecl struct {
	RetType   types.DataType
	Name      string
	Params    []Param
	Body      *BlockStmt
	FuncAt    token.Position
	alias     string
	useCount  int
	inited    bool
	isConst   bool
}

func (f *FunctionDecl) Pos() token.Position { return f.FuncAt }
func (f *FunctionDecl) statementNode()      {}
func (f *FunctionDecl) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.Type.String() + " " + p.Name
	}
	return f.RetType.String() + " " + f.Name + "(" + strings.Join(parts, ", ") + ") " + f.Body.String()
}

func (f *FunctionDecl) DeclType() types.DataType  { return types.FuncPtr }
func (f *FunctionDecl) DeclName() string          { return f.Name }
func (f *FunctionDecl) Alias() string             { return f.alias }
func (f *FunctionDecl) SetAlias(alias string)     { f.alias = alias }
func (f *FunctionDecl) UseCount() int             { return f.useCount }
func (f *FunctionDecl) MarkUsed()                 { f.useCount++ }
func (f *FunctionDecl) Initialized() bool         { return f.inited }
func (f *FunctionDecl) SetInitialized(v bool)     { f.inited = v }
func (f *FunctionDecl) IsConst() bool             { return f.isConst }

// VarDecl declares a single variable, with an optional initializer.
// It implements Declaration. IsConstDecl marks a `const`-qualified
// declaration, which requires an initializer and forbids subsequent
// assignment (spec §4.E).
type VarDecl struct {
	Type        types.DataType
	Name        string
	Init        Expression // nil when uninitialized
	IsConstDecl bool
	VarAt       token.Position
	alias       string
	useCount    int
	inited      bool
}

func (v *VarDecl) Pos() token.Position { return v.VarAt }
func (v *VarDecl) statementNode()      {}
func (v *VarDecl) String() string {
	s := v.Type.String() + " " + v.Name
	if v.Init != nil {
		s += " = " + v.Init.String()
	}
	return s + ";"
}

func (v *VarDecl) DeclType() types.DataType  { return v.Type }
func (v *VarDecl) DeclName() string          { return v.Name }
func (v *VarDecl) Alias() string             { return v.alias }
func (v *VarDecl) SetAlias(alias string)     { v.alias = alias }
func (v *VarDecl) UseCount() int             { return v.useCount }
func (v *VarDecl) MarkUsed()                 { v.useCount++ }
func (v *VarDecl) Initialized() bool         { return v.inited }
func (v *VarDecl) SetInitialized(b bool)     { v.inited = b }
func (v *VarDecl) IsConst() bool             { return v.IsConstDecl }

// MultiVarDecl is a comma-separated run of declarations sharing one type
// specifier, e.g. `int a = 1, b, c = 3;`. The parser expands it into one
// VarDecl per name; this node only exists to preserve the original source
// grouping for diagnostics and pretty-printing.
type MultiVarDecl struct {
	Decls []*VarDecl
	VarAt token.Position
}

func (m *MultiVarDecl) Pos() token.Position { return m.VarAt }
func (m *MultiVarDecl) statementNode()      {}
func (m *MultiVarDecl) String() string {
	parts := make([]string, len(m.Decls))
	for i, d := range m.Decls {
		parts[i] = d.String()
	}
	return strings.Join(parts, " ")
}

// ExprStmt wraps an expression used in statement position, e.g. a bare
// call or assignment followed by `;`.
type ExprStmt struct {
	Expr  Expression
	SemiAt token.Position
}

func (e *ExprStmt) Pos() token.Position { return e.Expr.Pos() }
func (e *ExprStmt) statementNode()      {}
func (e *ExprStmt) String() string      { return e.Expr.String() + ";" }
