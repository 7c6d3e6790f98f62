package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"dndml/internal/diag"
	"dndml/internal/source"
)

type palette struct {
	err, warn, info, note, code, gutter, caret, add, del *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed),
		add:    color.New(color.FgGreen),
		del:    color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.code, p.gutter, p.caret, p.add, p.del} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty renders diagnostics for humans, in bag order (call bag.Sort() first).
// For each diagnostic it prints
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// followed by the source line with a ^~~~ underline, then notes and fixes when enabled.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	if int(d.Primary.File) >= fs.Len() {
		fmt.Fprintf(w, "%s %s: %s\n", pal.severity(d.Severity).Sprint(d.Severity.String()), pal.code.Sprint(d.Code.ID()), d.Message)
		return
	}
	file := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		formatPath(fs, file, opts.PathMode), start.Line, start.Col,
		pal.severity(d.Severity).Sprint(d.Severity.String()),
		pal.code.Sprint(d.Code.ID()),
		d.Message)

	writeSnippet(w, file, start, end, int(opts.Context), pal)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			if int(n.Span.File) >= fs.Len() {
				continue
			}
			nstart, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", pal.note.Sprint("note:"),
				formatPath(fs, fs.Get(n.Span.File), opts.PathMode), nstart.Line, nstart.Col, n.Msg)
		}
	}

	if opts.ShowFixes {
		for i, fix := range d.Fixes {
			fmt.Fprintf(w, "  fix #%d: %s\n", i+1, fix.Title)
			for _, edit := range fix.Edits {
				if int(edit.Span.File) >= fs.Len() {
					continue
				}
				es, ee := fs.Resolve(edit.Span)
				fmt.Fprintf(w, "    edit %s:%d:%d-%d:%d apply=%q\n",
					formatPath(fs, fs.Get(edit.Span.File), opts.PathMode), es.Line, es.Col, ee.Line, ee.Col, edit.NewText)
				if !opts.ShowPreview {
					continue
				}
				preview, err := previewEdit(fs, edit)
				if err != nil {
					continue
				}
				fmt.Fprintln(w, "    preview:")
				for _, l := range preview.before {
					fmt.Fprintf(w, "      %s\n", pal.del.Sprint("- "+l))
				}
				for _, l := range preview.after {
					fmt.Fprintf(w, "      %s\n", pal.add.Sprint("+ "+l))
				}
			}
		}
	}
}

// writeSnippet prints the primary line (plus context) and underlines the span.
// Multi-line spans are underlined up to the end of their first line.
func writeSnippet(w io.Writer, file *source.File, start, end source.LineCol, context int, pal palette) {
	first := int(start.Line) - context
	if first < 1 {
		first = 1
	}
	last := int(start.Line) + context
	if maxLine := len(file.LineIdx) + 1; last > maxLine {
		last = maxLine
	}
	gutterWidth := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		text := file.GetLine(uint32(ln)) // #nosec G115 -- bounded by LineIdx length
		fmt.Fprintf(w, " %s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, ln), text)
		if ln != int(start.Line) {
			continue
		}
		col := int(start.Col) - 1
		if col > len(text) {
			col = len(text)
		}
		spanEnd := len(text)
		if end.Line == start.Line {
			spanEnd = min(int(end.Col)-1, len(text))
		}
		underline := underlineFor(text, col, spanEnd)
		fmt.Fprintf(w, " %s %s\n", pal.gutter.Sprintf("%*s |", gutterWidth, ""), pal.caret.Sprint(underline))
	}
}

// underlineFor builds "   ^~~~" under text[from:to], keeping tabs so the caret lines up.
func underlineFor(text string, from, to int) string {
	var b strings.Builder
	for _, r := range text[:from] {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	width := 1
	if to > from {
		width = max(runewidth.StringWidth(text[from:to]), 1)
	}
	b.WriteByte('^')
	b.WriteString(strings.Repeat("~", width-1))
	return b.String()
}
