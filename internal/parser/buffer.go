package parser

import (
	"cmp"
	"unicode/utf8"

	"dndml/internal/diag"
	"dndml/internal/lexer"
	"dndml/internal/source"
	"dndml/internal/token"
)

// Buffer is the fully drained token stream of one file with a forward-only cursor.
// The last token is always EOF.
type Buffer struct {
	file   *source.File
	tokens []token.Token
	pos    int
}

// Fill drains lx up to and including EOF. The first Invalid token stops
// buffering and yields a LexError; no partial buffer is returned.
func Fill(lx *lexer.Lexer) (*Buffer, error) {
	tokens := make([]token.Token, 0, 64)
	for {
		tok := lx.Next()
		if tok.Kind == token.Invalid {
			return nil, &Error{
				Kind:     LexError,
				Code:     cmp.Or(lx.LastError(), lexCode(lx.File(), tok)),
				Expected: "a valid token",
				Found:    token.Invalid,
				Span:     tok.Span,
			}
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return &Buffer{file: lx.File(), tokens: tokens}, nil
		}
	}
}

// lexCode guesses the code for an Invalid token when the lexer did not report one.
// String literals have no length limit, so a leading quote always means unterminated.
func lexCode(f *source.File, tok token.Token) diag.Code {
	text := f.Slice(tok.Span)
	switch {
	case len(text) > 0 && text[0] == '"':
		return diag.LexUnterminatedString
	case len(text) == 1 && (text[0] == '@' || text[0] == '%'):
		return diag.LexBareSigil
	case tok.Span.Len() > utf8.UTFMax: // an unknown character is a single rune
		return diag.LexTokenTooLong
	}
	return diag.LexUnknownChar
}

// Peek returns the token under the cursor without consuming it.
func (b *Buffer) Peek() token.Token {
	return b.tokens[b.pos]
}

func (b *Buffer) PeekKind() token.Kind {
	return b.tokens[b.pos].Kind
}

// Consume advances past the current token if it has the expected kind.
// On mismatch the cursor stays put and a SyntaxError naming kind is returned.
func (b *Buffer) Consume(kind token.Kind) (token.Token, error) {
	tok := b.Peek()
	if tok.Kind != kind {
		return tok, &Error{
			Kind:     SyntaxError,
			Code:     diag.SynUnexpectedToken,
			Expected: "'" + kind.String() + "'",
			Found:    tok.Kind,
			Span:     tok.Span,
		}
	}
	// EOF is never stepped over so Peek stays valid.
	if b.pos < len(b.tokens)-1 {
		b.pos++
	}
	return tok, nil
}

// Prev returns the last consumed token, or the current one at the start.
func (b *Buffer) Prev() token.Token {
	if b.pos == 0 {
		return b.tokens[0]
	}
	return b.tokens[b.pos-1]
}

// Text returns the source text of tok.
func (b *Buffer) Text(tok token.Token) string {
	return b.file.Text(tok.Span)
}

func (b *Buffer) File() *source.File {
	return b.file
}

// Pos is the index of the token under the cursor.
func (b *Buffer) Pos() int {
	return b.pos
}

func (b *Buffer) Len() int {
	return len(b.tokens)
}

// Tokens returns the buffered tokens; callers must not modify them.
func (b *Buffer) Tokens() []token.Token {
	return b.tokens
}
