package parser

import (
	"errors"
	"fmt"

	"dndml/internal/diag"
	"dndml/internal/source"
	"dndml/internal/token"
)

// ErrorKind classifies a parse failure.
type ErrorKind uint8

const (
	// LexError means buffering hit an Invalid token.
	LexError ErrorKind = iota + 1
	// SyntaxError is any expected-token mismatch.
	SyntaxError
	// MissingIdentifier is a section or field without a name.
	MissingIdentifier
	// UnknownValueKind is a field value that does not start with one of the seven value keywords.
	UnknownValueKind
)

var (
	ErrLex               = errors.New("lex error")
	ErrSyntax            = errors.New("syntax error")
	ErrMissingIdentifier = errors.New("missing identifier")
	ErrUnknownValueKind  = errors.New("unknown value kind")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case LexError:
		return ErrLex
	case SyntaxError:
		return ErrSyntax
	case MissingIdentifier:
		return ErrMissingIdentifier
	case UnknownValueKind:
		return ErrUnknownValueKind
	}
	return nil
}

func (k ErrorKind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return "parse error"
}

// Error is the single failure a parse returns.
// Span locates the offending token; renderers resolve it to line and column.
type Error struct {
	Kind     ErrorKind
	Code     diag.Code
	Expected string
	Found    token.Kind
	Span     source.Span

	notes []diag.Note
	fixes []diag.Fix
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: expected %s, found %s at %d", e.Kind, e.Expected, e.Found, e.Span.Start)
}

// Fixes returns the edits suggested for the error, if any.
func (e *Error) Fixes() []diag.Fix {
	return e.fixes
}

func (e *Error) withFix(title string, sp source.Span, text string) *Error {
	e.fixes = append(e.fixes, diag.Fix{Title: title, Edits: []diag.FixEdit{{Span: sp, NewText: text}}})
	return e
}

// Unwrap exposes the kind's sentinel so errors.Is(err, ErrSyntax) works.
func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}

// Diagnostic converts the error into a diag.Diagnostic.
func (e *Error) Diagnostic() diag.Diagnostic {
	d := diag.NewError(e.Code, e.Span, fmt.Sprintf("expected %s, found %s", e.Expected, e.Found))
	for _, n := range e.notes {
		d = d.WithNote(n.Span, n.Msg)
	}
	for _, f := range e.fixes {
		d = d.WithFix(f.Title, f.Edits...)
	}
	return d
}
