package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"dndml/internal/diag"
)

func TestParseDirOrderAndResults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.dnd", heroSheet)
	writeFile(t, dir, "a.dnd", "@section a:\n@end-section\n")
	writeFile(t, dir, "nested/c.dnd", "@section c:\n@field hp: %int[];\n@end-section\n")
	writeFile(t, dir, "readme.txt", "not a sheet")
	if err := os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "ghost.dnd")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	events := make(chan Event, 64)
	fs, results, err := ParseDir(context.Background(), dir, Options{
		MaxDiagnostics: 10,
		Jobs:           2,
		Progress:       ChannelSink{Ch: events},
	})
	close(events)
	if err != nil {
		t.Fatalf("ParseDir() error: %v", err)
	}

	wantPaths := []string{
		filepath.Join(dir, "a.dnd"),
		filepath.Join(dir, "b.dnd"),
		filepath.Join(dir, "ghost.dnd"),
		filepath.Join(dir, "nested", "c.dnd"),
	}
	if len(results) != len(wantPaths) {
		t.Fatalf("got %d results, want %d", len(results), len(wantPaths))
	}
	for i, want := range wantPaths {
		if results[i].Path != want {
			t.Errorf("result %d path = %q, want %q", i, results[i].Path, want)
		}
	}

	if results[0].Err != nil || len(results[0].Doc.Sections) != 1 {
		t.Errorf("a.dnd: %v", results[0].Err)
	}
	if results[1].Err != nil || results[1].Doc.FieldCount() != 8 {
		t.Errorf("b.dnd: %v", results[1].Err)
	}

	ghost := results[2]
	if ghost.Err == nil || ghost.Doc != nil || ghost.Bag.Len() != 1 || ghost.Bag.Items()[0].Code != diag.IOLoadFileError {
		t.Errorf("ghost.dnd: err=%v diags=%+v", ghost.Err, ghost.Bag.Items())
	}
	if f := fs.Get(ghost.FileID); f.Path != filepath.ToSlash(ghost.Path) {
		t.Errorf("load diagnostic points at %q", f.Path)
	}

	nested := results[3]
	if nested.Err == nil || nested.Bag.Items()[0].Code != diag.SynExpectIntOrNull {
		t.Errorf("nested/c.dnd: err=%v", nested.Err)
	}
	if fs.Get(nested.FileID).Path != filepath.ToSlash(nested.Path) {
		t.Errorf("FileID does not match path")
	}

	final := map[string]Status{}
	count := 0
	for ev := range events {
		count++
		final[ev.File] = ev.Status
	}
	if count != 11 {
		t.Errorf("got %d events, want 11", count)
	}
	wantStatus := []Status{StatusDone, StatusDone, StatusError, StatusError}
	for i, p := range wantPaths {
		if final[p] != wantStatus[i] {
			t.Errorf("%s final status = %s, want %s", p, final[p], wantStatus[i])
		}
	}
}

func TestParseDirEmpty(t *testing.T) {
	fs, results, err := ParseDir(context.Background(), t.TempDir(), Options{})
	if err != nil || results != nil || fs == nil {
		t.Errorf("ParseDir() = %v, %v, %v", fs, results, err)
	}
}

func TestParseDirMissingDir(t *testing.T) {
	if _, _, err := ParseDir(context.Background(), "/nonexistent/sheets", Options{}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ParseDir() error = %v", err)
	}
}

func TestParseDirCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.dnd", heroSheet)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := ParseDir(ctx, dir, Options{Jobs: 1}); !errors.Is(err, context.Canceled) {
		t.Errorf("ParseDir() error = %v, want context.Canceled", err)
	}
}
