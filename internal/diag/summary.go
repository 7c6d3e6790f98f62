package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"dndml/internal/source"
)

// Line is the one-line form of a diagnostic or one of its notes.
type Line struct {
	Label   string // "error", "warning", "info" or "note"
	Code    string
	Path    string
	Line    uint32
	Column  uint32
	Message string
}

func (l Line) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.Label, l.Code, l.Path, l.Line, l.Column, l.Message)
}

// SummaryOpts selects what Summarize includes.
type SummaryOpts struct {
	// PathMode is passed to source.File.FormatPath; empty means "relative".
	PathMode string
	Notes    bool
}

// Summarize flattens diags into sorted one-line records. Diagnostics whose
// file is not in fs are skipped.
func Summarize(diags []Diagnostic, fs *source.FileSet, opts SummaryOpts) []Line {
	if fs == nil {
		return nil
	}
	mode := cmp.Or(opts.PathMode, "relative")

	var lines []Line
	for _, d := range diags {
		id := d.Code.ID()
		if l, ok := lineAt(fs, d.Primary, mode); ok {
			l.Label, l.Code, l.Message = d.Severity.Label(), id, flatten(d.Message)
			lines = append(lines, l)
		}
		if !opts.Notes {
			continue
		}
		for _, n := range d.Notes {
			if l, ok := lineAt(fs, n.Span, mode); ok {
				l.Label, l.Code, l.Message = "note", id, flatten(n.Msg)
				lines = append(lines, l)
			}
		}
	}

	slices.SortStableFunc(lines, func(a, b Line) int {
		return cmp.Or(
			cmp.Compare(a.Path, b.Path),
			cmp.Compare(a.Line, b.Line),
			cmp.Compare(a.Column, b.Column),
			cmp.Compare(a.Label, b.Label),
			cmp.Compare(a.Code, b.Code),
			cmp.Compare(a.Message, b.Message),
		)
	})
	return lines
}

// FormatSummary joins Summarize output with newlines.
func FormatSummary(diags []Diagnostic, fs *source.FileSet, opts SummaryOpts) string {
	lines := Summarize(diags, fs, opts)
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.String()
	}
	return strings.Join(parts, "\n")
}

func lineAt(fs *source.FileSet, span source.Span, mode string) (Line, bool) {
	if int(span.File) >= fs.Len() {
		return Line{}, false
	}
	start, _ := fs.Resolve(span)
	path := filepath.ToSlash(fs.Get(span.File).FormatPath(mode, fs.BaseDir()))
	for strings.HasPrefix(path, "./") {
		path = path[2:]
	}
	return Line{Path: path, Line: start.Line, Column: start.Col}, true
}

func flatten(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
