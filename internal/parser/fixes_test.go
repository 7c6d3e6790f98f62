package parser

import (
	"testing"

	"dndml/internal/diag"
)

func TestFixSuggestions(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		title     string
		at        uint32
		newText   string
		wantFixed string
	}{
		{
			name:      "missing semicolon",
			input:     "@section a:\n@field hp: %int[3]\n@end-section\n",
			title:     "insert ';'",
			at:        30,
			newText:   ";",
			wantFixed: "@section a:\n@field hp: %int[3];\n@end-section\n",
		},
		{
			name:      "unterminated section with newline",
			input:     "@section a:\n",
			title:     "close the section",
			at:        12,
			newText:   "@end-section\n",
			wantFixed: "@section a:\n@end-section\n",
		},
		{
			name:      "unterminated section without newline",
			input:     "@section a:",
			title:     "close the section",
			at:        11,
			newText:   "\n@end-section\n",
			wantFixed: "@section a:\n@end-section\n",
		},
		{
			name:      "attribute case",
			input:     wrapField("%stat[Ability: 3; mod: NULL]"),
			title:     "use 'ability'",
			at:        31,
			newText:   "ability",
			wantFixed: wrapField("%stat[ability: 3; mod: NULL]"),
		},
		{
			name:      "dice separator case",
			input:     wrapField("%dice[2D6+1]"),
			title:     "use 'd'",
			at:        32,
			newText:   "d",
			wantFixed: wrapField("%dice[2d6+1]"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, bag, err := parseSource(t, tt.input)
			if err == nil {
				t.Fatal("expected failure")
			}
			if bag.Len() != 1 {
				t.Fatalf("expected 1 diagnostic, got %s", diagnosticsSummary(bag))
			}
			fixes := bag.Items()[0].Fixes
			if len(fixes) != 1 || fixes[0].Title != tt.title || len(fixes[0].Edits) != 1 {
				t.Fatalf("fixes = %+v", fixes)
			}
			edit := fixes[0].Edits[0]
			if edit.NewText != tt.newText {
				t.Errorf("NewText = %q, want %q", edit.NewText, tt.newText)
			}
			if edit.Span.Start != tt.at {
				t.Errorf("edit starts at %d, want %d", edit.Span.Start, tt.at)
			}

			fixed := applyEdit(tt.input, edit)
			if fixed != tt.wantFixed {
				t.Fatalf("fixed source = %q, want %q", fixed, tt.wantFixed)
			}
			if _, _, bag, err := parseSource(t, fixed); err != nil {
				t.Errorf("fixed source still fails: %v (%s)", err, diagnosticsSummary(bag))
			}
		})
	}
}

func TestNoFixForUnrelatedAttribute(t *testing.T) {
	_, _, bag, err := parseSource(t, wrapField("%stat[power: 3; mod: NULL]"))
	if err == nil {
		t.Fatal("expected failure")
	}
	if d := bag.Items()[0]; d.Code != diag.SynBadAttribute || len(d.Fixes) != 0 {
		t.Errorf("got %s with fixes %+v", d.Code.ID(), d.Fixes)
	}
}

func applyEdit(src string, edit diag.FixEdit) string {
	return src[:edit.Span.Start] + edit.NewText + src[edit.Span.End:]
}
