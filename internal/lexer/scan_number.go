package lexer

import (
	"dndml/internal/token"
)

// scanNumber scans a maximal run of decimal digits. Range checks happen in the parser.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.BumpWhile(isDec)
	return token.Token{Kind: token.IntLit, Span: lx.cursor.SpanFrom(start)}
}
