package source

import (
	"os"
	"path/filepath"
)

// autoPathLimit is the length above which "auto" shortens absolute paths.
const autoPathLimit = 40

// Text returns the bytes covered by span, clamped to the content.
func (f *File) Text(span Span) string {
	return string(f.Slice(span))
}

// Slice is the zero-copy counterpart of Text.
func (f *File) Slice(span Span) []byte {
	n := uint32(len(f.Content)) // #nosec G115 -- Add refuses larger content
	end := min(span.End, n)
	start := min(span.Start, end)
	return f.Content[start:end]
}

// lineBounds returns the byte range of the 1-based line, without its newline.
func (f *File) lineBounds(line uint32) (start, end uint32, ok bool) {
	nl := uint32(len(f.LineIdx)) // #nosec G115 -- at most one entry per byte
	if line == 0 || line > nl+1 {
		return 0, 0, false
	}
	if line > 1 {
		start = f.LineIdx[line-2] + 1
	}
	end = uint32(len(f.Content)) // #nosec G115
	if line <= nl {
		end = f.LineIdx[line-1]
	}
	return start, end, true
}

// GetLine returns the 1-based line without its newline; missing lines are empty.
func (f *File) GetLine(line uint32) string {
	start, end, ok := f.lineBounds(line)
	if !ok {
		return ""
	}
	return string(f.Content[start:end])
}

// FormatPath renders the path for mode "absolute", "relative", "basename"
// or "auto". baseDir is used by "relative" only and defaults to the working
// directory. Unknown modes and failures return Path unchanged.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
	case "relative":
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
	case "basename":
		return BaseName(f.Path)
	case "auto":
		if len(f.Path) >= autoPathLimit && filepath.IsAbs(f.Path) {
			return BaseName(f.Path)
		}
	}
	return f.Path
}
