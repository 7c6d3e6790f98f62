package lexer

import (
	"strings"
	"testing"

	"dndml/internal/diag"
	"dndml/internal/source"
	"dndml/internal/token"
)

func TestTokenTooLongTriggersDiagnosticAndStops(t *testing.T) {
	content := strings.Repeat("a", maxTokenLength+1) + " : ;"
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("long.dnd", []byte(content)))

	bag := diag.NewBag(4)
	lx := New(file, Options{Reporter: &diag.BagReporter{Bag: bag}})

	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Fatalf("expected invalid token, got %v", tok.Kind)
	}
	if !bag.HasErrors() {
		t.Fatalf("expected diagnostics for long token")
	}
	if code := bag.Items()[0].Code; code != diag.LexTokenTooLong {
		t.Fatalf("expected LexTokenTooLong, got %v", code)
	}
	if next := lx.Next(); next.Kind != token.EOF {
		t.Fatalf("expected EOF after long token, got %v", next.Kind)
	}
}

func TestTokenAtLimitAllowed(t *testing.T) {
	content := strings.Repeat("b", maxTokenLength)
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("limit.dnd", []byte(content)))

	bag := diag.NewBag(1)
	lx := New(file, Options{Reporter: &diag.BagReporter{Bag: bag}})

	if tok := lx.Next(); tok.Kind != token.Ident {
		t.Fatalf("expected ident token, got %v", tok.Kind)
	}
	if bag.HasErrors() {
		t.Fatalf("did not expect diagnostics, got %v", bag.Items())
	}
}

func TestLongStringLiteralIsNotLimited(t *testing.T) {
	content := `"` + strings.Repeat("x", maxTokenLength*2) + `";`
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("long_string.dnd", []byte(content)))

	bag := diag.NewBag(4)
	lx := New(file, Options{Reporter: &diag.BagReporter{Bag: bag}})

	tok := lx.Next()
	if tok.Kind != token.StringLit || int(tok.Span.Len()) != len(content)-1 {
		t.Fatalf("got %v over %d bytes", tok.Kind, tok.Span.Len())
	}
	if next := lx.Next(); next.Kind != token.Semicolon {
		t.Fatalf("expected ';' after the string, got %v", next.Kind)
	}
	if bag.Len() != 0 || lx.LastError() != diag.UnknownCode {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}
