package diagfmt

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"dndml/internal/diag"
	"dndml/internal/source"
)

var errNoSource = errors.New("edit refers to a file outside the FileSet")

// fixPreview holds the whole lines an edit touches, before and after applying it.
type fixPreview struct {
	before []string
	after  []string
}

func previewEdit(fs *source.FileSet, edit diag.FixEdit) (fixPreview, error) {
	if fs == nil || int(edit.Span.File) >= fs.Len() {
		return fixPreview{}, errNoSource
	}
	file := fs.Get(edit.Span.File)
	content := file.Content
	start, end := int(edit.Span.Start), int(edit.Span.End)
	if start > end || end > len(content) {
		return fixPreview{}, fmt.Errorf("edit %d-%d is outside %s", start, end, file.Path)
	}

	lo := bytes.LastIndexByte(content[:start], '\n') + 1
	hi := len(content)
	if i := bytes.IndexByte(content[end:], '\n'); i >= 0 {
		hi = end + i + 1
	}

	after := make([]byte, 0, hi-lo+len(edit.NewText))
	after = append(after, content[lo:start]...)
	after = append(after, edit.NewText...)
	after = append(after, content[end:hi]...)

	return fixPreview{
		before: previewLines(content[lo:hi]),
		after:  previewLines(after),
	}, nil
}

// previewLines drops the block's final newline so it yields no empty tail line.
func previewLines(block []byte) []string {
	if len(block) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(block), "\n"), "\n")
}
