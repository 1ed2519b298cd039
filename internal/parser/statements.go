package parser

import (
	"github.com/cwbudde/mppc/internal/ast"
	"github.com/cwbudde/mppc/internal/token"
)

// parseStatement parses one statement, dispatching on the current token
// exactly the way the teacher's parser.go switches on cur.Type (spec §4.B).
// A type-led statement is routed through the same declaration parser used
// at global scope; nested function definitions are a semantic error
// (spec §4.E), not a syntax one, so the parser accepts them here and lets
// internal/semantic reject the misplaced FunctionDecl.
func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Current().Type {
	case token.LBRACE:
		return p.parseBlock()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.DO:
		return p.parseDoWhile()
	case token.FOR:
		return p.parseFor()
	case token.BREAK:
		return p.parseBreak()
	case token.CONTINUE:
		return p.parseContinue()
	case token.RETURN:
		return p.parseReturn()
	case token.SWITCH:
		return p.parseSwitch()
	case token.SEMI:
		p.cur = p.cur.Advance()
		return nil
	case token.CONST:
		return p.parseDeclOrFunction()
	default:
		if isTypeStart(p.cur.Current().Type) {
			return p.parseDeclOrFunction()
		}
		return p.parseExprStmt()
	}
}

// parseBlock parses a brace-delimited statement sequence.
func (p *Parser) parseBlock() *ast.BlockStmt {
	lbraceAt := p.cur.Current().Pos
	if ok, _ := p.expect(token.LBRACE, "'{'"); !ok {
		p.syncToStatementBoundary()
		return &ast.BlockStmt{LBraceAt: lbraceAt}
	}

	b := &ast.BlockStmt{LBraceAt: lbraceAt}
	for !p.cur.Is(token.RBRACE) && !p.cur.IsEOF() {
		stmt := p.parseStatement()
		if stmt != nil {
			b.Statements = append(b.Statements, stmt)
		}
	}
	p.expect(token.RBRACE, "'}'")
	return b
}

func (p *Parser) parseIf() ast.Statement {
	ifAt := p.cur.Current().Pos
	p.cur = p.cur.Advance()

	if ok, err := p.expect(token.LPAREN, "'('"); !ok {
		return err
	}
	cond := p.parseExpression()
	if ok, err := p.expect(token.RPAREN, "')'"); !ok {
		return err
	}

	then := p.parseStatement()
	s := &ast.IfStmt{Cond: cond, Then: then, IfAt: ifAt}
	if p.cur.Is(token.ELSE) {
		p.cur = p.cur.Advance()
		s.Else = p.parseStatement()
	}
	return s
}

func (p *Parser) parseWhile() ast.Statement {
	whileAt := p.cur.Current().Pos
	p.cur = p.cur.Advance()

	if ok, err := p.expect(token.LPAREN, "'('"); !ok {
		return err
	}
	cond := p.parseExpression()
	if ok, err := p.expect(token.RPAREN, "')'"); !ok {
		return err
	}

	body := p.parseStatement()
	return &ast.WhileStmt{Cond: cond, Body: body, WhileAt: whileAt}
}

func (p *Parser) parseDoWhile() ast.Statement {
	doAt := p.cur.Current().Pos
	p.cur = p.cur.Advance()

	body := p.parseStatement()

	if ok, err := p.expect(token.WHILE, "'while'"); !ok {
		return err
	}
	if ok, err := p.expect(token.LPAREN, "'('"); !ok {
		return err
	}
	cond := p.parseExpression()
	if ok, err := p.expect(token.RPAREN, "')'"); !ok {
		return err
	}
	p.expect(token.SEMI, "';'")

	return &ast.DoWhileStmt{Body: body, Cond: cond, DoAt: doAt}
}

func (p *Parser) parseFor() ast.Statement {
	forAt := p.cur.Current().Pos
	p.cur = p.cur.Advance()

	if ok, err := p.expect(token.LPAREN, "'('"); !ok {
		return err
	}

	var init ast.Statement
	if !p.cur.Is(token.SEMI) {
		if isTypeStart(p.cur.Current().Type) || p.cur.Is(token.CONST) {
			init = p.parseDeclOrFunction()
		} else {
			expr := p.parseExpression()
			p.expect(token.SEMI, "';'")
			init = &ast.ExprStmt{Expr: expr}
		}
	} else {
		p.cur = p.cur.Advance()
	}

	var cond ast.Expression
	if !p.cur.Is(token.SEMI) {
		cond = p.parseExpression()
	}
	p.expect(token.SEMI, "';'")

	var post ast.Expression
	if !p.cur.Is(token.RPAREN) {
		post = p.parseExpression()
	}
	if ok, err := p.expect(token.RPAREN, "')'"); !ok {
		return err
	}

	body := p.parseStatement()
	return &ast.ForStmt{Init: init, Cond: cond, Post: post, Body: body, ForAt: forAt}
}

func (p *Parser) parseBreak() ast.Statement {
	at := p.cur.Current().Pos
	p.cur = p.cur.Advance()
	p.expect(token.SEMI, "';'")
	return &ast.BreakStmt{BreakAt: at}
}

func (p *Parser) parseContinue() ast.Statement {
	at := p.cur.Current().Pos
	p.cur = p.cur.Advance()
	p.expect(token.SEMI, "';'")
	return &ast.ContinueStmt{ContinueAt: at}
}

func (p *Parser) parseReturn() ast.Statement {
	at := p.cur.Current().Pos
	p.cur = p.cur.Advance()

	var value ast.Expression
	if !p.cur.Is(token.SEMI) {
		value = p.parseExpression()
	}
	p.expect(token.SEMI, "';'")
	return &ast.ReturnStmt{Value: value, ReturnAt: at}
}

// parseSwitch parses `switch (Tag) { (case Const: Stmts...|default: Stmts...)* }`
// directly into the flattened (label, governed-statements) pairs
// ast.SwitchStmt.Cases holds (spec §4.B, §4.G): each label starts a new
// ast.CaseLabelStmt, and statements are appended to the most recently
// opened one until the next label or the closing brace.
func (p *Parser) parseSwitch() ast.Statement {
	switchAt := p.cur.Current().Pos
	p.cur = p.cur.Advance()

	if ok, err := p.expect(token.LPAREN, "'('"); !ok {
		return err
	}
	tag := p.parseExpression()
	if ok, err := p.expect(token.RPAREN, "')'"); !ok {
		return err
	}
	if ok, err := p.expect(token.LBRACE, "'{'"); !ok {
		return err
	}

	s := &ast.SwitchStmt{Tag: tag, SwitchAt: switchAt}
	var current *ast.CaseLabelStmt
	var stray *ast.ErrorNode

	for !p.cur.Is(token.RBRACE) && !p.cur.IsEOF() {
		switch p.cur.Current().Type {
		case token.CASE:
			caseAt := p.cur.Current().Pos
			p.cur = p.cur.Advance()
			constExpr := p.parseExpression()
			p.expect(token.COLON, "':'")
			current = &ast.CaseLabelStmt{ConstExpr: constExpr, CaseAt: caseAt}
			s.Cases = append(s.Cases, current)
		case token.DEFAULT:
			caseAt := p.cur.Current().Pos
			p.cur = p.cur.Advance()
			p.expect(token.COLON, "':'")
			current = &ast.CaseLabelStmt{IsDefault: true, CaseAt: caseAt}
			s.Cases = append(s.Cases, current)
		default:
			if current == nil {
				if stray == nil {
					stray = p.errorf(p.cur.Current().Pos, "statement outside any case or default label")
				}
				before := p.cur.Current().Pos
				p.parseStatement()
				if p.cur.Current().Pos == before {
					p.cur = p.cur.Advance()
				}
				continue
			}
			stmt := p.parseStatement()
			if stmt != nil {
				current.Statements = append(current.Statements, stmt)
			}
		}
	}

	p.expect(token.RBRACE, "'}'")
	if stray != nil {
		return stray
	}
	return s
}

func (p *Parser) parseExprStmt() ast.Statement {
	expr := p.parseExpression()
	p.expect(token.SEMI, "';'")
	return &ast.ExprStmt{Expr: expr}
}
