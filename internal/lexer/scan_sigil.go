package lexer

import (
	"dndml/internal/diag"
	"dndml/internal/token"
)

// scanSigilWord scans '@' or '%' followed by [A-Za-z0-9_-]* and looks the whole
// word up in the reserved table. Unreserved words come back as Ident so the parser
// can tell an unknown value kind apart from a lexical error.
func (lx *Lexer) scanSigilWord() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // sigil
	lx.cursor.BumpWhile(isSigilWordByte)
	sp := lx.cursor.SpanFrom(start)
	if sp.Len() == 1 {
		lx.errLex(diag.LexBareSigil, sp, "'"+lx.file.Text(sp)+"' must be followed by a word")
		return token.Token{Kind: token.Invalid, Span: sp}
	}
	if k, ok := token.LookupReserved(lx.file.Text(sp)); ok {
		return token.Token{Kind: k, Span: sp}
	}
	return token.Token{Kind: token.Ident, Span: sp}
}
