package lexer

import (
	"dndml/internal/diag"
	"dndml/internal/source"
	"dndml/internal/token"
)

// maxTokenLength bounds identifiers, numbers and sigil words; longer runs are
// reported and the rest of the input is skipped. String literals are unbounded.
const maxTokenLength = 1 << 12

// Lexer produces DSML tokens from a single file on demand.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token
	// code of the most recent lexical diagnostic
	lastErr diag.Code
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next token.
// Once the input is exhausted every further call returns EOF with an empty span at the end offset.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipSpace()
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	var tok token.Token
	switch ch := lx.cursor.Peek(); {
	case ch == '@' || ch == '%':
		tok = lx.scanSigilWord()
	case isIdentByte(ch):
		tok = lx.scanIdent()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '"':
		tok = lx.scanString()
	default:
		tok = lx.scanPunct()
	}

	if tok.Kind != token.Invalid && tok.Kind != token.StringLit && tok.Span.Len() > maxTokenLength {
		lx.errLex(diag.LexTokenTooLong, tok.Span, "token is too long")
		lx.cursor.SkipToEnd()
		tok.Kind = token.Invalid
	}
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// LastError is the code of the latest lexical diagnostic, or diag.UnknownCode
// when none was raised yet.
func (lx *Lexer) LastError() diag.Code {
	return lx.lastErr
}

// File returns the file being scanned.
func (lx *Lexer) File() *source.File {
	return lx.file
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) skipSpace() {
	lx.cursor.BumpWhile(isSpace)
}
