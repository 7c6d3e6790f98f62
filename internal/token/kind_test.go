package token_test

import (
	"testing"

	"dndml/internal/source"
	"dndml/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	for _, k := range []token.Kind{token.IntLit, token.StringLit, token.Null} {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.KwInt, token.Plus, token.EOF} {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestIsPunct(t *testing.T) {
	for _, k := range []token.Kind{token.Colon, token.Semicolon, token.LBracket, token.RBracket, token.Plus} {
		if !tok(k).IsPunct() {
			t.Fatalf("%v should be punctuation", k)
		}
	}
	if tok(token.Ident).IsPunct() {
		t.Fatal("identifier is not punctuation")
	}
}

func TestIsReserved(t *testing.T) {
	for k := token.KwSection; k <= token.KwItem; k++ {
		if !tok(k).IsReserved() {
			t.Fatalf("%v should be reserved", k)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.Null, token.IntLit, token.Invalid} {
		if tok(k).IsReserved() {
			t.Fatalf("%v must NOT be reserved", k)
		}
	}
}

func TestIsValueKeyword(t *testing.T) {
	tests := []struct {
		kind token.Kind
		want bool
	}{
		{token.KwStat, true},
		{token.KwString, true},
		{token.KwItem, true},
		{token.KwItemList, true},
		{token.KwField, false},
		{token.KwEndSection, false},
		{token.Ident, false},
	}
	for _, tt := range tests {
		if got := tt.kind.IsValueKeyword(); got != tt.want {
			t.Errorf("%v.IsValueKeyword() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestKindString(t *testing.T) {
	tests := map[token.Kind]string{
		token.Colon:     ":",
		token.Semicolon: ";",
		token.LBracket:  "[",
		token.EOF:       "end of input",
		token.Ident:     "identifier",
		token.Null:      "NULL",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
	if got := token.Kind(250).String(); got != "Kind(?)" {
		t.Errorf("unknown kind String() = %q", got)
	}
}
