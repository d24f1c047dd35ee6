package token

import "testing"

func TestKeywordsDoNotOverlapIdentifiers(t *testing.T) {
	for word, tt := range Keywords {
		if tt == IDENTIFIER {
			t.Errorf("keyword %q maps to IDENTIFIER, want a reserved type", word)
		}
	}
}

func TestNewSetsFields(t *testing.T) {
	tok := New(ADD, "+", 3)
	if tok.Type != ADD || tok.Lexeme != "+" || tok.Line != 3 {
		t.Fatalf("unexpected token: %+v", tok)
	}
}

func TestNewLiteralSetsLiteral(t *testing.T) {
	tok := NewLiteral(NUMBER, "3.5", 3.5, 1)
	if tok.Literal.(float64) != 3.5 {
		t.Fatalf("expected literal 3.5, got %v", tok.Literal)
	}
}
