package parser

import (
	"github.com/cwbudde/mppc/internal/ast"
	"github.com/cwbudde/mppc/internal/token"
	"github.com/cwbudde/mppc/internal/types"
)

// parseTopLevel parses one global-scope construct: a function definition
// or a variable declaration list, per spec §4.B (only these two appear at
// global scope).
func (p *Parser) parseTopLevel() ast.Statement {
	if !isTypeStart(p.cur.Current().Type) && !p.cur.Is(token.CONST) {
		err := p.errorf(p.cur.Current().Pos, "expected a type, found %s", p.cur.Current().Type)
		p.syncToStatementBoundary()
		return err
	}
	return p.parseDeclOrFunction()
}

// parseDeclOrFunction parses a type-led construct that is either a
// function definition (`type name (...) { ... }`) or one or more variable
// declarations (`[const] type name [= expr] (, name [= expr])* ;`),
// disambiguated by whether '(' follows the first declared name.
func (p *Parser) parseDeclOrFunction() ast.Statement {
	startPos := p.cur.Current().Pos
	isConst := false
	if p.cur.Is(token.CONST) {
		isConst = true
		p.cur = p.cur.Advance()
	}

	if !isTypeStart(p.cur.Current().Type) {
		err := p.errorf(p.cur.Current().Pos, "expected a type after 'const', found %s", p.cur.Current().Type)
		p.syncToStatementBoundary()
		return err
	}
	retType := p.parseType()

	if !p.cur.Is(token.IDENT) {
		err := p.errorf(p.cur.Current().Pos, "expected an identifier, found %s", p.cur.Current().Type)
		p.syncToStatementBoundary()
		return err
	}
	name := p.cur.Current().Literal
	namePos := p.cur.Current().Pos
	p.cur = p.cur.Advance()

	if p.cur.Is(token.LPAREN) {
		return p.parseFunctionDecl(retType, name, startPos)
	}

	return p.parseVarDeclList(retType, isConst, name, namePos, startPos)
}

// parseFunctionDecl parses the parameter list and body of a function whose
// return type and name have already been consumed; the cursor is on the
// opening '('.
func (p *Parser) parseFunctionDecl(retType types.DataType, name string, startPos token.Position) ast.Statement {
	p.cur = p.cur.Advance() // '('

	var params []ast.Param
	for !p.cur.Is(token.RPAREN) && !p.cur.IsEOF() {
		if !isTypeStart(p.cur.Current().Type) {
			err := p.errorf(p.cur.Current().Pos, "expected a parameter type, found %s", p.cur.Current().Type)
			p.syncToStatementBoundary()
			return err
		}
		paramAt := p.cur.Current().Pos
		paramType := p.parseType()

		if !p.cur.Is(token.IDENT) {
			err := p.errorf(p.cur.Current().Pos, "expected a parameter name, found %s", p.cur.Current().Type)
			p.syncToStatementBoundary()
			return err
		}
		params = append(params, ast.Param{Type: paramType, Name: p.cur.Current().Literal, ParamAt: paramAt})
		p.cur = p.cur.Advance()

		if p.cur.Is(token.COMMA) {
			p.cur = p.cur.Advance()
		} else {
			break
		}
	}

	if ok, err := p.expect(token.RPAREN, "')'"); !ok {
		return err
	}

	body := p.parseBlock()
	return &ast.FunctionDecl{RetType: retType, Name: name, Params: params, Body: body, FuncAt: startPos}
}

// parseVarDeclList parses the tail of a comma-separated run of
// declarations sharing one type specifier, given the first name already
// consumed. A single declaration collapses to a bare *ast.VarDecl rather
// than a one-element MultiVarDecl.
func (p *Parser) parseVarDeclList(declType types.DataType, isConst bool, firstName string, firstPos, startPos token.Position) ast.Statement {
	first := p.finishVarDecl(declType, isConst, firstName, firstPos)

	if !p.cur.Is(token.COMMA) {
		if ok, err := p.expect(token.SEMI, "';'"); !ok {
			return err
		}
		return first
	}

	decls := []*ast.VarDecl{first}
	for p.cur.Is(token.COMMA) {
		p.cur = p.cur.Advance()
		if !p.cur.Is(token.IDENT) {
			err := p.errorf(p.cur.Current().Pos, "expected an identifier, found %s", p.cur.Current().Type)
			p.syncToStatementBoundary()
			return err
		}
		name := p.cur.Current().Literal
		pos := p.cur.Current().Pos
		p.cur = p.cur.Advance()
		decls = append(decls, p.finishVarDecl(declType, isConst, name, pos))
	}

	if ok, err := p.expect(token.SEMI, "';'"); !ok {
		return err
	}
	return &ast.MultiVarDecl{Decls: decls, VarAt: startPos}
}

// finishVarDecl parses the optional `= initializer` tail for one
// already-named declaration.
func (p *Parser) finishVarDecl(declType types.DataType, isConst bool, name string, pos token.Position) *ast.VarDecl {
	v := &ast.VarDecl{Type: declType, Name: name, IsConstDecl: isConst, VarAt: pos}
	if p.cur.Is(token.ASSIGN) {
		p.cur = p.cur.Advance()
		v.Init = p.parseAssignment()
	}
	return v
}
