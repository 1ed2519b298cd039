// Package scope implements the declaration stack the analyzer pushes and
// pops as it walks into and out of blocks, functions, loops, ifs, and
// switches (spec §4.C). It is the Go counterpart of the original
// compiler's ScopeContext, and borrows the push/defer/pop idiom from the
// teacher's parser.ParseContext.
package scope

import (
	"strconv"

	"github.com/cwbudde/mppc/internal/ast"
)

// Kind identifies what kind of construct opened a scope.
type Kind int

const (
	Global Kind = iota
	Block
	Function
	Loop
	If
	Switch
)

func (k Kind) String() string {
	switch k {
	case Global:
		return "global"
	case Block:
		return "block"
	case Function:
		return "function"
	case Loop:
		return "loop"
	case If:
		return "if"
	case Switch:
		return "switch"
	}
	return "?"
}

// Frame is one entry on the scope stack.
type Frame struct {
	Kind Kind
	Node ast.Node // the node that opened this scope, for diagnostics

	symbols map[string]ast.Declaration
	order   []string // declaration order, for deterministic pop-scope reporting

	// Switch-only bookkeeping.
	caseConstants map[int32]*ast.CaseLabelStmt
	hasDefault    bool
	// InitializedInSwitch records, by name, every variable declared with
	// an initializer anywhere inside this switch so far, used by the
	// cross-initialization rule in spec §4.E (a case label that follows
	// such a declaration is a "jump to case label" error).
	InitializedInSwitch map[string]ast.Declaration
}

func newFrame(kind Kind, node ast.Node) *Frame {
	f := &Frame{
		Kind:    kind,
		Node:    node,
		symbols: make(map[string]ast.Declaration),
	}
	if kind == Switch {
		f.caseConstants = make(map[int32]*ast.CaseLabelStmt)
		f.InitializedInSwitch = make(map[string]ast.Declaration)
	}
	return f
}

// Stack is the analyzer's live scope stack plus the process-wide alias
// counter. Per original_source/src/context/scope_context.h the alias
// counter is a single map shared across all scopes, not reset per scope,
// so that a shadowing declaration in a nested scope still gets a distinct
// alias from the one it shadows.
type Stack struct {
	frames  []*Frame
	aliases map[string]int

	// DeclaringFuncParams and InitializingVar mirror the original's
	// declareFuncParams/initializeVar flags. Declare does not read them;
	// the analyzer does: DeclaringFuncParams is set while a function's
	// parameters are declared (they count as initialized and may not have
	// defaults), and InitializingVar is set while a variable's initializer
	// is analyzed (it lets a parenthesized expression appear in a global
	// initializer).
	DeclaringFuncParams bool
	InitializingVar     bool
}

// New returns a Stack holding only the global scope.
func New() *Stack {
	s := &Stack{aliases: make(map[string]int)}
	s.frames = append(s.frames, newFrame(Global, nil))
	return s
}

// Push opens a new scope of the given kind on top of the stack.
func (s *Stack) Push(kind Kind, node ast.Node) {
	s.frames = append(s.frames, newFrame(kind, node))
}

// PopResult reports what Pop found so the caller can turn it into
// diagnostics (the analyzer owns message formatting; this package only
// classifies).
type PopResult struct {
	UnusedVars  []ast.Declaration
	UnusedFuncs []ast.Declaration
}

// Pop removes the top scope and returns the declarations in it that went
// unused, in declaration order, for the analyzer to turn into warnings.
// `main` is exempt from the unused-function warning (spec §12).
func (s *Stack) Pop() PopResult {
	n := len(s.frames)
	top := s.frames[n-1]
	s.frames = s.frames[:n-1]

	var res PopResult
	for _, name := range top.order {
		sym := top.symbols[name]
		if sym.UseCount() > 0 {
			continue
		}
		switch sym.(type) {
		case *ast.VarDecl:
			res.UnusedVars = append(res.UnusedVars, sym)
		case *ast.FunctionDecl:
			if sym.DeclName() != "main" {
				res.UnusedFuncs = append(res.UnusedFuncs, sym)
			}
		}
	}

	for _, name := range top.order {
		if s.aliases[name] > 0 {
			s.aliases[name]--
		}
	}

	return res
}

// Top returns the innermost scope.
func (s *Stack) Top() *Frame {
	return s.frames[len(s.frames)-1]
}

// Global returns the outermost (program-level) scope. Declarations stay
// reachable there even after every other frame has been popped, which is
// what the symbol-table dump (spec §6) walks after a full analysis pass.
func (s *Stack) Global() *Frame {
	return s.frames[0]
}

// Declarations returns this frame's declarations in the order they were
// declared.
func (f *Frame) Declarations() []ast.Declaration {
	decls := make([]ast.Declaration, len(f.order))
	for i, name := range f.order {
		decls[i] = f.symbols[name]
	}
	return decls
}

// IsGlobalScope reports whether the stack currently holds only the global
// frame.
func (s *Stack) IsGlobalScope() bool {
	return len(s.frames) == 1
}

// Declare enters sym into the innermost scope under its declared name. It
// returns false if the name is already declared in that same scope
// (shadowing an outer scope's declaration is allowed and handled by
// assigning a disambiguating alias).
func (s *Stack) Declare(sym ast.Declaration) bool {
	top := s.Top()
	name := sym.DeclName()
	if _, exists := top.symbols[name]; exists {
		return false
	}

	num := s.aliases[name]
	s.aliases[name] = num + 1
	if num > 0 {
		sym.SetAlias(name + "@" + strconv.Itoa(num))
	} else {
		sym.SetAlias(name)
	}

	top.symbols[name] = sym
	top.order = append(top.order, name)
	return true
}

// Lookup searches the scope stack from innermost to outermost for name.
func (s *Stack) Lookup(name string) ast.Declaration {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if sym, ok := s.frames[i].symbols[name]; ok {
			return sym
		}
	}
	return nil
}

// EnclosingFunction returns the nearest enclosing function scope's node,
// or nil if return is used outside any function.
func (s *Stack) EnclosingFunction() *ast.FunctionDecl {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].Kind == Function {
			if fn, ok := s.frames[i].Node.(*ast.FunctionDecl); ok {
				return fn
			}
		}
	}
	return nil
}

// EnclosingSwitch returns the nearest enclosing switch frame, or nil.
func (s *Stack) EnclosingSwitch() *Frame {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].Kind == Switch {
			return s.frames[i]
		}
	}
	return nil
}

// BreakAllowed reports whether a break statement here targets a loop or
// switch scope.
func (s *Stack) BreakAllowed() bool {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].Kind == Loop || s.frames[i].Kind == Switch {
			return true
		}
	}
	return false
}

// ContinueAllowed reports whether a continue statement here targets a
// loop scope (switch does not accept continue).
func (s *Stack) ContinueAllowed() bool {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].Kind == Loop {
			return true
		}
	}
	return false
}

// DeclareCase records a folded case constant and the label node that first
// used it in the innermost switch frame. On a duplicate it reports false
// and returns the original label, so the caller can point its "previously
// used here" note at the first occurrence rather than the duplicate
// (spec §4.C, §4.E).
func (f *Frame) DeclareCase(value int32, label *ast.CaseLabelStmt) (first *ast.CaseLabelStmt, ok bool) {
	if first, seen := f.caseConstants[value]; seen {
		return first, false
	}
	f.caseConstants[value] = label
	return label, true
}

// DeclareDefault records that this switch frame has seen a default arm,
// reporting false if one was already seen.
func (f *Frame) DeclareDefault() bool {
	if f.hasDefault {
		return false
	}
	f.hasDefault = true
	return true
}
