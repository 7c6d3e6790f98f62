package main

import (
	"fmt"
	"io"

	"dndml/internal/diag"
	"dndml/internal/diagfmt"
	"dndml/internal/source"
)

// printDiagnostics writes bag to w as pretty text or JSON. Quiet runs print
// one line per diagnostic instead of the pretty form.
func printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, format string) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	bag.Sort()
	switch format {
	case "", "pretty":
		if current.Quiet {
			summary := diag.FormatSummary(bag.Items(), fs, diag.SummaryOpts{PathMode: current.PathMode.String()})
			if summary == "" {
				return nil
			}
			_, err := fmt.Fprintln(w, summary)
			return err
		}
		diagfmt.Pretty(w, bag, fs, current.prettyOpts(w))
		return nil
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         current.PathMode,
			Max:              current.MaxDiagnostics,
			IncludeNotes:     true,
			IncludeFixes:     true,
		})
	default:
		return fmt.Errorf("unknown diagnostics format: %s", format)
	}
}
