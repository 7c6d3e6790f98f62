package lexer

import (
	"bytes"

	"dndml/internal/token"
)

var nullWord = []byte("NULL")

// scanIdent scans a maximal run of ASCII letters and '_'.
// Digits end the run, so "2d6" yields 2, d, 6.
func (lx *Lexer) scanIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.BumpWhile(isIdentByte)
	sp := lx.cursor.SpanFrom(start)
	if bytes.Equal(lx.file.Slice(sp), nullWord) {
		return token.Token{Kind: token.Null, Span: sp}
	}
	return token.Token{Kind: token.Ident, Span: sp}
}
