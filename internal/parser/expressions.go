package parser

import (
	"strconv"

	"github.com/cwbudde/mppc/internal/ast"
	"github.com/cwbudde/mppc/internal/token"
	"github.com/cwbudde/mppc/internal/types"
)

// parseExpression is the expression grammar's entry point: assignment is
// the lowest-precedence production, so every other expression parses as a
// degenerate case of it (spec §4.B).
func (p *Parser) parseExpression() ast.Expression {
	return p.parseAssignment()
}

// parseAssignment parses `lhs = rhs`, right-associative, falling through to
// logical-or when no '=' follows.
func (p *Parser) parseAssignment() ast.Expression {
	lhs := p.parseLogicalOr()
	if !p.cur.Is(token.ASSIGN) {
		return lhs
	}
	eqAt := p.cur.Current().Pos
	p.cur = p.cur.Advance()
	rhs := p.parseAssignment()
	return &ast.AssignExpr{Lhs: lhs, Rhs: rhs, EqAt: eqAt}
}

// binaryLevel is one precedence tier: the token types that belong to it and
// the operator each maps to, plus the next-tighter-binding parse function.
type binaryLevel struct {
	ops  map[token.Type]types.Operator
	next func(*Parser) ast.Expression
}

func (p *Parser) parseBinaryLevel(lvl binaryLevel) ast.Expression {
	left := lvl.next(p)
	for {
		op, ok := lvl.ops[p.cur.Current().Type]
		if !ok {
			return left
		}
		opAt := p.cur.Current().Pos
		p.cur = p.cur.Advance()
		right := lvl.next(p)
		left = &ast.BinaryExpr{Lhs: left, Rhs: right, Op: op, OpAt: opAt}
	}
}

func (p *Parser) parseLogicalOr() ast.Expression {
	return p.parseBinaryLevel(binaryLevel{
		ops:  map[token.Type]types.Operator{token.OROR: types.OpLogicalOr},
		next: (*Parser).parseLogicalAnd,
	})
}

func (p *Parser) parseLogicalAnd() ast.Expression {
	return p.parseBinaryLevel(binaryLevel{
		ops:  map[token.Type]types.Operator{token.ANDAND: types.OpLogicalAnd},
		next: (*Parser).parseBitOr,
	})
}

func (p *Parser) parseBitOr() ast.Expression {
	return p.parseBinaryLevel(binaryLevel{
		ops:  map[token.Type]types.Operator{token.PIPE: types.OpBitOr},
		next: (*Parser).parseBitXor,
	})
}

func (p *Parser) parseBitXor() ast.Expression {
	return p.parseBinaryLevel(binaryLevel{
		ops:  map[token.Type]types.Operator{token.CARET: types.OpBitXor},
		next: (*Parser).parseBitAnd,
	})
}

func (p *Parser) parseBitAnd() ast.Expression {
	return p.parseBinaryLevel(binaryLevel{
		ops:  map[token.Type]types.Operator{token.AMP: types.OpBitAnd},
		next: (*Parser).parseEquality,
	})
}

func (p *Parser) parseEquality() ast.Expression {
	return p.parseBinaryLevel(binaryLevel{
		ops: map[token.Type]types.Operator{
			token.EQ: types.OpEQ, token.NEQ: types.OpNEQ,
		},
		next: (*Parser).parseRelational,
	})
}

func (p *Parser) parseRelational() ast.Expression {
	return p.parseBinaryLevel(binaryLevel{
		ops: map[token.Type]types.Operator{
			token.LT: types.OpLT, token.LTE: types.OpLTE,
			token.GT: types.OpGT, token.GTE: types.OpGTE,
		},
		next: (*Parser).parseShift,
	})
}

func (p *Parser) parseShift() ast.Expression {
	return p.parseBinaryLevel(binaryLevel{
		ops: map[token.Type]types.Operator{
			token.SHL: types.OpShl, token.SHR: types.OpShr,
		},
		next: (*Parser).parseAdditive,
	})
}

func (p *Parser) parseAdditive() ast.Expression {
	return p.parseBinaryLevel(binaryLevel{
		ops: map[token.Type]types.Operator{
			token.PLUS: types.OpAdd, token.MINUS: types.OpSub,
		},
		next: (*Parser).parseMultiplicative,
	})
}

func (p *Parser) parseMultiplicative() ast.Expression {
	return p.parseBinaryLevel(binaryLevel{
		ops: map[token.Type]types.Operator{
			token.STAR: types.OpMul, token.SLASH: types.OpDiv, token.PERCENT: types.OpMod,
		},
		next: (*Parser).parseUnary,
	})
}

var unaryOps = map[token.Type]types.Operator{
	token.PLUS:  types.OpUnaryPlus,
	token.MINUS: types.OpUnaryMinus,
	token.BANG:  types.OpLogicalNot,
	token.TILDE: types.OpBitNot,
}

// parseUnary handles unary +/-/!/~ and prefix ++/-- (spec §4.B); anything
// else falls through to postfix.
func (p *Parser) parseUnary() ast.Expression {
	cur := p.cur.Current()
	if op, ok := unaryOps[cur.Type]; ok {
		p.cur = p.cur.Advance()
		operand := p.parseUnary()
		return &ast.UnaryExpr{Operand: operand, Op: op, OpAt: cur.Pos}
	}
	if cur.Type == token.INC || cur.Type == token.DEC {
		p.cur = p.cur.Advance()
		operand := p.parseUnary()
		op := types.OpPreInc
		if cur.Type == token.DEC {
			op = types.OpPreDec
		}
		return &ast.UnaryExpr{Operand: operand, Op: op, OpAt: cur.Pos}
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary expression followed by any number of
// trailing ++/--. Chained postfix (`x++++`) is accepted syntactically; the
// analyzer rejects it since the first `++`'s result is not an lvalue.
func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()
	for p.cur.IsAny(token.INC, token.DEC) {
		cur := p.cur.Current()
		p.cur = p.cur.Advance()
		op := types.OpPostInc
		if cur.Type == token.DEC {
			op = types.OpPostDec
		}
		expr = &ast.UnaryExpr{Operand: expr, Op: op, OpAt: cur.Pos, Postfix: true}
	}
	return expr
}

func (p *Parser) parsePrimary() ast.Expression {
	cur := p.cur.Current()
	switch cur.Type {
	case token.INT:
		p.cur = p.cur.Advance()
		v, err := strconv.ParseInt(cur.Literal, 10, 64)
		if err != nil {
			return p.errorf(cur.Pos, "invalid integer literal %q", cur.Literal)
		}
		return &ast.ValueLiteral{ExprAttrs: ast.ExprAttrs{Type: types.Int}, Value: v, Text: cur.Literal, LitPos: cur.Pos}
	case token.FLOAT:
		p.cur = p.cur.Advance()
		v, err := strconv.ParseFloat(cur.Literal, 64)
		if err != nil {
			return p.errorf(cur.Pos, "invalid float literal %q", cur.Literal)
		}
		return &ast.ValueLiteral{ExprAttrs: ast.ExprAttrs{Type: types.Float}, Value: v, Text: cur.Literal, LitPos: cur.Pos}
	case token.CHAR:
		p.cur = p.cur.Advance()
		r := decodeCharLiteral(cur.Literal)
		return &ast.ValueLiteral{ExprAttrs: ast.ExprAttrs{Type: types.Char}, Value: r, Text: cur.Literal, LitPos: cur.Pos}
	case token.TRUE, token.FALSE:
		p.cur = p.cur.Advance()
		return &ast.ValueLiteral{ExprAttrs: ast.ExprAttrs{Type: types.Bool}, Value: cur.Type == token.TRUE, Text: cur.Literal, LitPos: cur.Pos}
	case token.IDENT:
		p.cur = p.cur.Advance()
		if p.cur.Is(token.LPAREN) {
			return p.parseCall(cur.Literal, cur.Pos)
		}
		return &ast.Identifier{Name: cur.Literal, IdentPos: cur.Pos}
	case token.LPAREN:
		p.cur = p.cur.Advance()
		inner := p.parseExpression()
		p.expect(token.RPAREN, "')'")
		return &ast.GroupedExpr{Inner: inner, LParenAt: cur.Pos}
	default:
		err := p.errorf(cur.Pos, "expected an expression, found %s", cur.Type)
		p.syncToStatementBoundary()
		return err
	}
}

func (p *Parser) parseCall(name string, namePos token.Position) ast.Expression {
	callAt := p.cur.Current().Pos
	p.cur = p.cur.Advance() // '('

	var args []ast.Expression
	for !p.cur.Is(token.RPAREN) && !p.cur.IsEOF() {
		args = append(args, p.parseAssignment())
		if p.cur.Is(token.COMMA) {
			p.cur = p.cur.Advance()
		} else {
			break
		}
	}
	p.expect(token.RPAREN, "')'")

	callee := &ast.Identifier{Name: name, IdentPos: namePos}
	return &ast.CallExpr{Callee: callee, Args: args, CallAt: callAt}
}

// decodeCharLiteral turns the lexer's raw char-literal text (one rune, or
// a backslash followed by its escape letter) into the rune value the
// literal denotes.
func decodeCharLiteral(lit string) rune {
	runes := []rune(lit)
	if len(runes) == 1 {
		return runes[0]
	}
	if len(runes) == 2 && runes[0] == '\\' {
		switch runes[1] {
		case 'n':
			return '\n'
		case 't':
			return '\t'
		case 'r':
			return '\r'
		case '0':
			return 0
		case '\\':
			return '\\'
		case '\'':
			return '\''
		default:
			return runes[1]
		}
	}
	return 0
}
