package lexer

import (
	"testing"

	"github.com/cwbudde/mppc/internal/token"
)

func typesOf(toks []token.Token) []token.Type {
	types := make([]token.Type, len(toks))
	for i, t := range toks {
		types[i] = t.Type
	}
	return types
}

func TestTokenizeSimpleDeclaration(t *testing.T) {
	toks, errs := Tokenize("int x = 3;")
	if len(errs) != 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	want := []token.Type{token.INTTYPE, token.IDENT, token.ASSIGN, token.INT, token.SEMI, token.EOF}
	got := typesOf(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestTokenizeOperators(t *testing.T) {
	toks, errs := Tokenize("a++ <= b-- && c || !d == e != f << 2 >> 1")
	if len(errs) != 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	want := []token.Type{
		token.IDENT, token.INC, token.LTE, token.IDENT, token.DEC,
		token.ANDAND, token.IDENT, token.OROR, token.BANG, token.IDENT,
		token.EQ, token.IDENT, token.NEQ, token.IDENT, token.SHL, token.INT,
		token.SHR, token.INT, token.EOF,
	}
	got := typesOf(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestTokenizeComments(t *testing.T) {
	toks, errs := Tokenize("int x; // trailing\n/* block\ncomment */ int y;")
	if len(errs) != 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	got := typesOf(toks)
	want := []token.Type{
		token.INTTYPE, token.IDENT, token.SEMI,
		token.INTTYPE, token.IDENT, token.SEMI, token.EOF,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
}

func TestTokenizeFloatVsIntDot(t *testing.T) {
	toks, _ := Tokenize("3.14")
	if toks[0].Type != token.FLOAT || toks[0].Literal != "3.14" {
		t.Errorf("got %+v, want FLOAT 3.14", toks[0])
	}
}

func TestTokenizeCharLiteral(t *testing.T) {
	toks, errs := Tokenize("'a' '\\n'")
	if len(errs) != 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	if toks[0].Type != token.CHAR || toks[0].Literal != "a" {
		t.Errorf("got %+v, want CHAR 'a'", toks[0])
	}
	if toks[1].Type != token.CHAR || toks[1].Literal != "\\n" {
		t.Errorf("got %+v, want CHAR '\\n'", toks[1])
	}
}

func TestPositionsTrackLinesAndColumns(t *testing.T) {
	toks, _ := Tokenize("int x;\nint y;")
	// second "int" is on line 2, column 1
	var second token.Token
	count := 0
	for _, tk := range toks {
		if tk.Type == token.INTTYPE {
			count++
			if count == 2 {
				second = tk
			}
		}
	}
	if second.Pos.Line != 2 || second.Pos.Column != 1 {
		t.Errorf("second int token pos = %+v, want line 2 col 1", second.Pos)
	}
}

func TestIllegalCharacterRecorded(t *testing.T) {
	_, errs := Tokenize("int x = 3 @ 4;")
	if len(errs) == 0 {
		t.Fatalf("expected a lex error for '@'")
	}
}
