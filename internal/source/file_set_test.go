package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("hero.dnd", []byte("@stats"), 0)
	id2 := fs.Add("hero.dnd", []byte("@info"), 0)
	if id1 != 0 || id2 != 1 {
		t.Fatalf("unexpected ids %d, %d", id1, id2)
	}

	latest, ok := fs.GetLatest("hero.dnd")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d, %v; want %d, true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "@stats" {
		t.Errorf("old version content = %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Len() = %d, want 2", fs.Len())
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("mem.dnd", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("LineIdx = %v, want %v", file.LineIdx, expected)
	}
	for i, v := range expected {
		if file.LineIdx[i] != v {
			t.Errorf("LineIdx[%d] = %d, want %d", i, file.LineIdx[i], v)
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag")
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("mem.dnd", []byte("@stats\nSTR: %stat 15\n"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{6, LineCol{Line: 1, Col: 7}},
		{7, LineCol{Line: 2, Col: 1}},
		{12, LineCol{Line: 2, Col: 6}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestFileText(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("mem.dnd", []byte(`name: %str "Ada";`)))

	if got := f.Text(Span{Start: 11, End: 16}); got != `"Ada"` {
		t.Errorf("Text = %q", got)
	}
	if got := f.Text(Span{Start: 15, End: 500}); got != `";` {
		t.Errorf("clamped Text = %q", got)
	}
	if got := f.Text(Span{Start: 900, End: 901}); got != "" {
		t.Errorf("out of range Text = %q", got)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("mem.dnd", []byte("one\ntwo\nthree")))

	cases := map[uint32]string{0: "", 1: "one", 2: "two", 3: "three", 4: ""}
	for n, want := range cases {
		if got := f.GetLine(n); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hero.dnd")
	// BOM + CRLF + decomposed e-acute
	raw := []byte("\xEF\xBB\xBF@info\r\nname: %str \"Ame\u0301lie\";\r\n")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)

	want := "@info\nname: %str \"Am\u00e9lie\";\n"
	if string(f.Content) != want {
		t.Errorf("content = %q, want %q", f.Content, want)
	}
	for _, flag := range []FileFlags{FileHadBOM, FileNormalizedCRLF, FileNormalizedNFC} {
		if f.Flags&flag == 0 {
			t.Errorf("flag %b not set in %b", flag, f.Flags)
		}
	}
	if f.Flags&FileVirtual != 0 {
		t.Error("loaded file must not be virtual")
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := NewFileSet().Load(filepath.Join(t.TempDir(), "nope.dnd")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestNormalizeCRLFKeepsLoneCR(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\rb\r\nc"))
	if !changed || string(out) != "a\rb\nc" {
		t.Errorf("normalizeCRLF = %q, %v", out, changed)
	}
}

func TestFormatPath(t *testing.T) {
	f := &File{Path: "sheets/party/hero.dnd"}
	if got := f.FormatPath("basename", ""); got != "hero.dnd" {
		t.Errorf("basename = %q", got)
	}
	if got := f.FormatPath("auto", ""); got != "sheets/party/hero.dnd" {
		t.Errorf("auto = %q", got)
	}
	if got := f.FormatPath("", ""); got != f.Path {
		t.Errorf("default = %q", got)
	}
}
