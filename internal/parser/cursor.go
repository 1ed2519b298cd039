package parser

import "github.com/cwbudde/mppc/internal/token"

// Cursor is an immutable navigation cursor over a fixed token slice,
// adapted from the teacher's streaming internal/parser/cursor.go
// (TokenCursor) to the fact that internal/lexer.Tokenize already
// materializes the whole token stream up front: there is no lexer to pull
// from lazily, so Peek is a bounds-checked index instead of a buffering
// fetch loop. The immutable-cursor discipline (every navigation method
// returns a new value rather than mutating in place) is kept, since it is
// what makes backtracking in the expression/declaration lookahead below
// safe to reason about.
type Cursor struct {
	tokens []token.Token
	index  int
}

// NewCursor returns a Cursor positioned at the first token. tokens must
// end with an EOF token, as internal/lexer.Tokenize guarantees.
func NewCursor(tokens []token.Token) *Cursor {
	return &Cursor{tokens: tokens}
}

// Current returns the token at the cursor's position.
func (c *Cursor) Current() token.Token { return c.at(c.index) }

// Peek returns the token n positions ahead; Peek(0) is Current().
func (c *Cursor) Peek(n int) token.Token { return c.at(c.index + n) }

func (c *Cursor) at(i int) token.Token {
	if i < 0 {
		i = 0
	}
	if i >= len(c.tokens) {
		i = len(c.tokens) - 1 // clamp to the trailing EOF
	}
	return c.tokens[i]
}

// Advance returns a new cursor at the next token.
func (c *Cursor) Advance() *Cursor {
	return &Cursor{tokens: c.tokens, index: c.index + 1}
}

// Is reports whether the current token has type t.
func (c *Cursor) Is(t token.Type) bool { return c.Current().Type == t }

// IsAny reports whether the current token matches any of types.
func (c *Cursor) IsAny(types ...token.Type) bool {
	cur := c.Current().Type
	for _, t := range types {
		if cur == t {
			return true
		}
	}
	return false
}

// PeekIs reports whether the token n positions ahead has type t.
func (c *Cursor) PeekIs(n int, t token.Type) bool { return c.Peek(n).Type == t }

// IsEOF reports whether the cursor has reached the end of the stream.
func (c *Cursor) IsEOF() bool { return c.Is(token.EOF) }

// Expect advances past the current token if it has type t, reporting
// whether it matched.
func (c *Cursor) Expect(t token.Type) (*Cursor, bool) {
	if c.Is(t) {
		return c.Advance(), true
	}
	return c, false
}
