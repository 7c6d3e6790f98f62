package lexer

import (
	"fmt"

	"dndml/internal/diag"
	"dndml/internal/token"
)

var punct = [...]token.Kind{
	':': token.Colon,
	';': token.Semicolon,
	'[': token.LBracket,
	']': token.RBracket,
	'+': token.Plus,
}

// scanPunct emits single-byte punctuation; anything else becomes Invalid
// covering exactly one rune.
func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	ch := lx.cursor.Peek()
	if int(ch) < len(punct) && punct[ch] != token.Invalid {
		lx.cursor.Bump()
		return token.Token{Kind: punct[ch], Span: lx.cursor.SpanFrom(start)}
	}

	r, _ := lx.peekRune()
	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("unexpected character %q", r))
	return token.Token{Kind: token.Invalid, Span: sp}
}
