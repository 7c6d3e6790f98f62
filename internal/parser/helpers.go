package parser

import (
	"errors"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"dndml/internal/diag"
	"dndml/internal/token"
)

const valueKinds = "a value kind (%stat, %string, %int, %dice, %deathsaves, %item, %itemlist)"

// errorAt builds an Error located at the token under the cursor.
func (p *parser) errorAt(kind ErrorKind, code diag.Code, expected string) *Error {
	tok := p.buf.Peek()
	return &Error{Kind: kind, Code: code, Expected: expected, Found: tok.Kind, Span: tok.Span}
}

func (p *parser) unexpected(expected string) error {
	return p.errorAt(SyntaxError, diag.SynUnexpectedToken, expected)
}

// parseName consumes a section or field name. Unreserved sigil words such as
// '%foo' are identifiers to the lexer but never valid names.
func (p *parser) parseName(what string) (string, error) {
	tok := p.buf.Peek()
	if tok.Kind == token.Ident {
		if text := p.buf.Text(tok); !strings.HasPrefix(text, "@") && !strings.HasPrefix(text, "%") {
			p.buf.pos++
			return text, nil
		}
	}
	return "", p.errorAt(MissingIdentifier, diag.SynExpectIdentifier, what)
}

// sectionNotClosed refines a failed '@end-section' consume.
func (p *parser) sectionNotClosed(err error, open token.Token) error {
	var perr *Error
	if !errors.As(err, &perr) {
		return err
	}
	if perr.Found != token.EOF {
		return p.unexpected("'@field' or '@end-section'")
	}
	perr.Code = diag.SynUnterminatedSection
	perr.notes = append(perr.notes, diag.Note{Span: open.Span, Msg: "section opened here"})
	closing := "@end-section\n"
	if content := p.file.Content; len(content) > 0 && content[len(content)-1] != '\n' {
		closing = "\n" + closing
	}
	return perr.withFix("close the section", perr.Span, closing)
}

// expectAttr consumes the fixed attribute name and the colon after it.
// Names are plain identifiers matched byte-for-byte.
func (p *parser) expectAttr(name string) error {
	if err := p.expectWord(name); err != nil {
		return err
	}
	_, err := p.buf.Consume(token.Colon)
	return err
}

func (p *parser) expectWord(word string) error {
	tok := p.buf.Peek()
	if tok.Kind != token.Ident || p.buf.Text(tok) != word {
		perr := p.errorAt(SyntaxError, diag.SynBadAttribute, "'"+word+"'")
		if tok.Kind == token.Ident && strings.EqualFold(p.buf.Text(tok), word) {
			perr.withFix("use '"+word+"'", tok.Span, word)
		}
		return perr
	}
	p.buf.pos++
	return nil
}

// parseIntOrNull: <int-literal> | 'NULL'. Anything else is rejected.
func (p *parser) parseIntOrNull() (*int, error) {
	tok := p.buf.Peek()
	switch tok.Kind {
	case token.Null:
		p.buf.pos++
		return nil, nil
	case token.IntLit:
		v, err := strconv.ParseInt(p.buf.Text(tok), 10, 64)
		if err != nil {
			return nil, p.errorAt(SyntaxError, diag.SynIntegerOutOfRange, "an integer that fits in int")
		}
		n, err := safecast.Conv[int](v)
		if err != nil {
			return nil, p.errorAt(SyntaxError, diag.SynIntegerOutOfRange, "an integer that fits in int")
		}
		p.buf.pos++
		return &n, nil
	}
	return nil, p.errorAt(SyntaxError, diag.SynExpectIntOrNull, "int literal or NULL")
}

// parseStringOrNull: <string-literal> | 'NULL'. The quotes are stripped.
func (p *parser) parseStringOrNull() (*string, error) {
	tok := p.buf.Peek()
	switch tok.Kind {
	case token.Null:
		p.buf.pos++
		return nil, nil
	case token.StringLit:
		text := p.buf.Text(tok)
		s := text[1 : len(text)-1]
		p.buf.pos++
		return &s, nil
	}
	return nil, p.errorAt(SyntaxError, diag.SynExpectStringOrNull, "string literal or NULL")
}

// expectFieldEnd consumes the ';' closing a field and suggests inserting it when missing.
func (p *parser) expectFieldEnd() (token.Token, error) {
	semi, err := p.buf.Consume(token.Semicolon)
	var perr *Error
	if err != nil && errors.As(err, &perr) {
		end := p.buf.Prev().Span.AtEnd()
		perr.withFix("insert ';'", end, ";")
	}
	return semi, err
}

// bracketed consumes kw '[' body ']'.
func (p *parser) bracketed(kw token.Kind, body func() error) error {
	if _, err := p.buf.Consume(kw); err != nil {
		return err
	}
	if _, err := p.buf.Consume(token.LBracket); err != nil {
		return err
	}
	if err := body(); err != nil {
		return err
	}
	_, err := p.buf.Consume(token.RBracket)
	return err
}
