package lexer

import (
	"testing"

	"lox/token"
)

func tokenTypes(t *testing.T, src string) []token.TokenType {
	t.Helper()
	toks, err := New(src).Scan()
	if err != nil {
		t.Fatalf("Scan(%q) returned error: %v", src, err)
	}
	types := make([]token.TokenType, len(toks))
	for i, tok := range toks {
		types[i] = tok.Type
	}
	return types
}

func TestScanPunctuationAndOperators(t *testing.T) {
	got := tokenTypes(t, "(){};,.+-*/ ! != = == < <= > >=")
	want := []token.TokenType{
		token.LPA, token.RPA, token.LCUR, token.RCUR, token.SEMICOLON, token.COMMA,
		token.DOT, token.ADD, token.SUB, token.MULT, token.DIV,
		token.BANG, token.NOT_EQUAL, token.ASSIGN, token.EQUAL_EQUAL,
		token.LESS, token.LESS_EQUAL, token.LARGER, token.LARGER_EQUAL, token.EOF,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	got := tokenTypes(t, "and class else false for fun if nil or print return super this true var while foo")
	want := []token.TokenType{
		token.AND, token.CLASS, token.ELSE, token.FALSE, token.FOR, token.FUNC,
		token.IF, token.NIL, token.OR, token.PRINT, token.RETURN, token.SUPER,
		token.THIS, token.TRUE, token.VAR, token.WHILE, token.IDENTIFIER, token.EOF,
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestScanNumberLiteral(t *testing.T) {
	toks, err := New("123.456;").Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Type != token.NUMBER || toks[0].Literal.(float64) != 123.456 {
		t.Fatalf("unexpected number token: %+v", toks[0])
	}
}

func TestScanStringLiteralSpanningLines(t *testing.T) {
	toks, err := New("\"a\nb\" ;").Scan()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Type != token.STRING || toks[0].Literal.(string) != "a\nb" {
		t.Fatalf("unexpected string token: %+v", toks[0])
	}
	if toks[1].Line != 2 {
		t.Fatalf("expected the semicolon on line 2, got %d", toks[1].Line)
	}
}

func TestUnterminatedStringIsAnError(t *testing.T) {
	_, err := New("\"abc").Scan()
	if err == nil {
		t.Fatal("expected an error")
	}
	lexErr, ok := err.(Error)
	if !ok || lexErr.Message != "Unterminated string." {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUnexpectedCharacterIsAnError(t *testing.T) {
	_, err := New("@").Scan()
	if err == nil {
		t.Fatal("expected an error")
	}
	lexErr, ok := err.(Error)
	if !ok || lexErr.Message != "Unexpected character." {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLineCommentsAreSkipped(t *testing.T) {
	got := tokenTypes(t, "1; // a comment\n2;")
	want := []token.TokenType{token.NUMBER, token.SEMICOLON, token.NUMBER, token.SEMICOLON, token.EOF}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}
