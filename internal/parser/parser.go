package parser

import (
	"errors"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"dndml/internal/lexer"
	"dndml/internal/sheet"
	"dndml/internal/source"
	"dndml/internal/token"
)

// parser is the state of one parse over a filled Buffer.
type parser struct {
	buf  *Buffer
	file *source.File
	opts Options
	log  logrus.FieldLogger
	doc  *sheet.Document // partial tree, only for debug dumps
}

// Parse tokenizes, buffers and parses file. It returns either a complete
// Document or nil and a *Error; nothing partial escapes.
func Parse(file *source.File, opts Options) (*sheet.Document, error) {
	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter})
	buf, err := Fill(lx)
	if err != nil {
		opts.logger().WithField("file", file.Path).WithError(err).Debug("tokenizing failed")
		return nil, err
	}
	return ParseBuffer(buf, file, opts)
}

// ParseBuffer parses an already filled buffer. On failure the buffer cursor
// is left on the offending token.
func ParseBuffer(buf *Buffer, file *source.File, opts Options) (*sheet.Document, error) {
	p := &parser{
		buf:  buf,
		file: file,
		opts: opts,
		log:  opts.logger().WithField("file", file.Path),
		doc:  &sheet.Document{SourceName: file.Path, Source: file},
	}

	if err := p.parseDocument(); err != nil {
		p.fail(err)
		return nil, err
	}
	p.log.WithField("sections", len(p.doc.Sections)).Debug("parsed sheet")
	return p.doc, nil
}

// fail reports err and dumps what was built so far; the partial tree is then dropped.
func (p *parser) fail(err error) {
	var perr *Error
	if errors.As(err, &perr) && p.opts.Reporter != nil {
		p.opts.Reporter.Report(perr.Diagnostic())
	}
	p.log.WithError(err).Debugf("partial sheet: %s\nremaining tokens: %d",
		spew.Sdump(p.doc.Sections), p.buf.Len()-p.buf.Pos())
}

func (p *parser) at(k token.Kind) bool {
	return p.buf.PeekKind() == k
}

// parseDocument: section* EOF
func (p *parser) parseDocument() error {
	for !p.at(token.EOF) {
		if !p.at(token.KwSection) {
			return p.unexpected("'@section'")
		}
		if err := p.parseSection(); err != nil {
			return err
		}
	}
	_, err := p.buf.Consume(token.EOF)
	return err
}

// parseSection: '@section' <identifier> ':' field* '@end-section'
// The section is appended before its fields so a failing field still shows up in the debug dump.
func (p *parser) parseSection() error {
	open, err := p.buf.Consume(token.KwSection)
	if err != nil {
		return err
	}
	name, err := p.parseName("section name")
	if err != nil {
		return err
	}
	if _, err = p.buf.Consume(token.Colon); err != nil {
		return err
	}

	p.doc.Sections = append(p.doc.Sections, sheet.Section{Name: name, Span: open.Span})
	sec := &p.doc.Sections[len(p.doc.Sections)-1]

	for p.at(token.KwField) {
		field, err := p.parseField()
		if err != nil {
			return err
		}
		sec.Fields = append(sec.Fields, field)
	}

	end, err := p.buf.Consume(token.KwEndSection)
	if err != nil {
		return p.sectionNotClosed(err, open)
	}
	sec.Span = open.Span.Cover(end.Span)
	return nil
}

// parseField: '@field' <identifier> ':' value ';'
func (p *parser) parseField() (sheet.Field, error) {
	kw, err := p.buf.Consume(token.KwField)
	if err != nil {
		return sheet.Field{}, err
	}
	name, err := p.parseName("field name")
	if err != nil {
		return sheet.Field{}, err
	}
	if _, err = p.buf.Consume(token.Colon); err != nil {
		return sheet.Field{}, err
	}
	value, err := p.parseValue()
	if err != nil {
		return sheet.Field{}, err
	}
	semi, err := p.expectFieldEnd()
	if err != nil {
		return sheet.Field{}, err
	}
	return sheet.Field{Name: name, Span: kw.Span.Cover(semi.Span), Value: value}, nil
}
