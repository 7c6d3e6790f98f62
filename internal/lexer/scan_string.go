package lexer

import (
	"dndml/internal/diag"
	"dndml/internal/token"
)

// scanString scans "...". The span includes both quotes; there are no escapes,
// so the first '"' after the opening one closes the literal.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() == '"' {
			return token.Token{Kind: token.StringLit, Span: lx.cursor.SpanFrom(start)}
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp}
}
