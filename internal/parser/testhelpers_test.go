package parser

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"dndml/internal/diag"
	"dndml/internal/sheet"
	"dndml/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.DebugLevel) // still exercise the failure dump
	return l
}

func parseSource(t *testing.T, input string) (*sheet.Document, *source.FileSet, *diag.Bag, error) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.dnd", []byte(input)))
	bag := diag.NewBag(16)
	doc, err := Parse(file, Options{Reporter: &diag.BagReporter{Bag: bag}, Logger: quietLogger()})
	return doc, fs, bag, err
}

func wrapField(value string) string {
	return "@section Foo:\n\t@field x: " + value + ";\n@end-section\n"
}

// onlyValue parses value inside a one-field sheet and returns it.
func onlyValue(t *testing.T, value string) sheet.Value {
	t.Helper()
	doc, _, bag, err := parseSource(t, wrapField(value))
	if err != nil {
		t.Fatalf("parse %q: %v (diagnostics: %s)", value, err, diagnosticsSummary(bag))
	}
	return doc.Sections[0].Fields[0].Value
}
