// Package parser implements a recursive-descent, precedence-climbing
// parser for M++'s C-like grammar, producing an *ast.Program (spec §4.B).
//
// It is grounded on the teacher's internal/parser (cursor-based token
// stream, one parseX method per production) but rebuilt from scratch for
// C-like rather than Pascal-like syntax: there is no BEGIN/END, statements
// are brace-delimited, and expressions use C operator precedence and
// assignment-as-expression instead of Object Pascal's `:=`.
//
// Per spec §6, a syntax error never aborts the parse: the offending
// construct is replaced with an *ast.ErrorNode carrying a message, the
// cursor resynchronizes to the next likely statement boundary, and parsing
// continues so the rest of the file is still checked. Parse's ok result
// reports whether any such node was produced.
package parser

import (
	"fmt"

	"github.com/cwbudde/mppc/internal/ast"
	"github.com/cwbudde/mppc/internal/token"
	"github.com/cwbudde/mppc/internal/types"
)

// Parser holds the mutable parsing state: the current cursor position and
// whether any syntax error has been recorded so far.
type Parser struct {
	cur      *Cursor
	hadError bool
}

// Parse builds an *ast.Program from tokens. ok is true iff no syntax
// error was recorded anywhere in the file; the returned tree is always
// walkable (error sites are *ast.ErrorNode) even when ok is false, so a
// caller that wants diagnostics for every error site in one pass can still
// walk it instead of stopping at the first syntax error.
func Parse(tokens []token.Token) (*ast.Program, bool) {
	p := &Parser{cur: NewCursor(tokens)}
	start := p.cur.Current().Pos

	prog := &ast.Program{StartPos: start}
	for !p.cur.IsEOF() {
		stmt := p.parseTopLevel()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	return prog, !p.hadError
}

// errorf records a syntax error at pos and returns an *ast.ErrorNode for
// the caller to splice into the tree in place of whatever it was parsing.
func (p *Parser) errorf(pos token.Position, format string, args ...interface{}) *ast.ErrorNode {
	p.hadError = true
	return &ast.ErrorNode{Message: fmt.Sprintf(format, args...), ErrorPos: pos}
}

// expect advances past the current token if it has type t, else records a
// syntax error and returns an ErrorNode without consuming the token (so
// the caller's resync logic can still make progress from it).
func (p *Parser) expect(t token.Type, what string) (ok bool, errNode *ast.ErrorNode) {
	if p.cur.Is(t) {
		p.cur = p.cur.Advance()
		return true, nil
	}
	return false, p.errorf(p.cur.Current().Pos, "expected %s, found %s", what, p.cur.Current().Type)
}

// syncToStatementBoundary advances the cursor past tokens until it finds
// one that plausibly begins or ends a statement, so a malformed statement
// does not desynchronize the rest of the file.
func (p *Parser) syncToStatementBoundary() {
	for {
		switch p.cur.Current().Type {
		case token.EOF, token.RBRACE:
			return
		case token.SEMI:
			p.cur = p.cur.Advance()
			return
		case token.IF, token.WHILE, token.DO, token.FOR, token.SWITCH,
			token.BREAK, token.CONTINUE, token.RETURN, token.LBRACE,
			token.VOID, token.BOOL, token.CHARTYPE, token.INTTYPE, token.FLOATTYPE, token.CONST:
			return
		default:
			p.cur = p.cur.Advance()
		}
	}
}

var typeTokens = map[token.Type]types.DataType{
	token.VOID:      types.Void,
	token.BOOL:      types.Bool,
	token.CHARTYPE:  types.Char,
	token.INTTYPE:   types.Int,
	token.FLOATTYPE: types.Float,
}

// isTypeStart reports whether t begins a type specifier.
func isTypeStart(t token.Type) bool {
	_, ok := typeTokens[t]
	return ok
}

// parseType consumes a type-specifier token and returns its DataType. The
// caller must already know isTypeStart(p.cur.Current().Type) holds.
func (p *Parser) parseType() types.DataType {
	dt := typeTokens[p.cur.Current().Type]
	p.cur = p.cur.Advance()
	return dt
}
