package token

import (
	"dndml/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
}

// IsLiteral reports whether the token is an int, string or NULL literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, StringLit, Null:
		return true
	default:
		return false
	}
}

// IsPunct reports whether the token is single-character punctuation.
func (t Token) IsPunct() bool {
	switch t.Kind {
	case Colon, Semicolon, LBracket, RBracket, Plus:
		return true
	default:
		return false
	}
}

// IsReserved reports whether the token is one of the ten reserved words.
func (t Token) IsReserved() bool {
	return t.Kind >= KwSection && t.Kind <= KwItem
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
