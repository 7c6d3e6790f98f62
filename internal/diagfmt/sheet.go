package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"gopkg.in/yaml.v3"

	"dndml/internal/sheet"
	"dndml/internal/source"
)

// SheetOutput is the serializable view of a parsed document.
type SheetOutput struct {
	Source   string          `json:"source,omitempty" yaml:"source,omitempty"`
	Sections []SectionOutput `json:"sections" yaml:"sections"`
}

type SectionOutput struct {
	Name   string        `json:"name" yaml:"name"`
	Span   string        `json:"span,omitempty" yaml:"span,omitempty"`
	Fields []FieldOutput `json:"fields" yaml:"fields"`
}

type FieldOutput struct {
	Name  string `json:"name" yaml:"name"`
	Kind  string `json:"kind" yaml:"kind"`
	Span  string `json:"span,omitempty" yaml:"span,omitempty"`
	Value any    `json:"value" yaml:"value"`
}

type statOutput struct {
	Ability *int `json:"ability" yaml:"ability"`
	Mod     *int `json:"mod" yaml:"mod"`
}

type diceOutput struct {
	Count    *int `json:"count" yaml:"count"`
	Faces    *int `json:"faces" yaml:"faces"`
	Modifier *int `json:"modifier" yaml:"modifier"`
}

type deathSavesOutput struct {
	Succ *int `json:"succ" yaml:"succ"`
	Fail *int `json:"fail" yaml:"fail"`
}

type itemOutput struct {
	Val    *string `json:"val" yaml:"val"`
	Qty    *int    `json:"qty" yaml:"qty"`
	Weight *int    `json:"weight" yaml:"weight"`
}

func valueOutput(v sheet.Value) any {
	switch v := v.(type) {
	case sheet.Stat:
		return statOutput{Ability: v.Ability, Mod: v.Mod}
	case sheet.Str:
		return v.Value
	case sheet.Int:
		return v.Value
	case sheet.Dice:
		return diceOutput{Count: v.Count, Faces: v.Faces, Modifier: v.Modifier}
	case sheet.DeathSaves:
		return deathSavesOutput{Succ: v.Succ, Fail: v.Fail}
	case sheet.Item:
		return itemOutput{Val: v.Val, Qty: v.Qty, Weight: v.Weight}
	case sheet.ItemList:
		items := make([]itemOutput, 0, len(v.Items))
		for _, it := range v.Items {
			items = append(items, itemOutput{Val: it.Val, Qty: it.Qty, Weight: it.Weight})
		}
		return items
	}
	return nil
}

func valueKind(v sheet.Value) string {
	if v == nil {
		return "none"
	}
	return v.Kind().String()
}

// BuildSheetOutput converts doc into its serializable view. Spans are
// included only when fs is non-nil.
func BuildSheetOutput(doc *sheet.Document, fs *source.FileSet) SheetOutput {
	out := SheetOutput{
		Source:   doc.SourceName,
		Sections: make([]SectionOutput, 0, len(doc.Sections)),
	}
	for _, sec := range doc.Sections {
		so := SectionOutput{
			Name:   sec.Name,
			Fields: make([]FieldOutput, 0, len(sec.Fields)),
		}
		if fs != nil {
			so.Span = formatSpan(sec.Span, fs)
		}
		for _, f := range sec.Fields {
			fo := FieldOutput{
				Name:  f.Name,
				Kind:  valueKind(f.Value),
				Value: valueOutput(f.Value),
			}
			if fs != nil {
				fo.Span = formatSpan(f.Span, fs)
			}
			so.Fields = append(so.Fields, fo)
		}
		out.Sections = append(out.Sections, so)
	}
	return out
}

// FormatSheetJSON writes doc as indented JSON.
func FormatSheetJSON(w io.Writer, doc *sheet.Document, fs *source.FileSet) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildSheetOutput(doc, fs))
}

// FormatSheetYAML writes doc as YAML with the same shape as the JSON output.
func FormatSheetYAML(w io.Writer, doc *sheet.Document, fs *source.FileSet) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(BuildSheetOutput(doc, fs)); err != nil {
		return err
	}
	return encoder.Close()
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// FormatSheetDump writes a Go-syntax dump of the section tree.
func FormatSheetDump(w io.Writer, doc *sheet.Document) error {
	if _, err := fmt.Fprintf(w, "Document %q\n", doc.SourceName); err != nil {
		return err
	}
	dumpConfig.Fdump(w, doc.Sections)
	return nil
}

// FormatSheetPretty writes an indented listing of sections and fields.
func FormatSheetPretty(w io.Writer, doc *sheet.Document, fs *source.FileSet) error {
	name := doc.SourceName
	if name == "" {
		name = "Document"
	}
	if _, err := fmt.Fprintf(w, "%s (%d sections, %d fields)\n", name, len(doc.Sections), doc.FieldCount()); err != nil {
		return err
	}

	for i, sec := range doc.Sections {
		branch, prefix := "├─", "│  "
		if i == len(doc.Sections)-1 {
			branch, prefix = "└─", "   "
		}
		fmt.Fprintf(w, "%s Section %s (span: %s)\n", branch, sec.Name, formatSpan(sec.Span, fs)) //nolint:errcheck
		if len(sec.Fields) == 0 {
			fmt.Fprintf(w, "%s└─ (no fields)\n", prefix) //nolint:errcheck
			continue
		}
		for j, f := range sec.Fields {
			fieldBranch := "├─"
			if j == len(sec.Fields)-1 {
				fieldBranch = "└─"
			}
			fmt.Fprintf(w, "%s%s %s: %s (span: %s)\n", prefix, fieldBranch, f.Name, sheet.FormatValue(f.Value), formatSpan(f.Span, fs)) //nolint:errcheck
		}
	}
	return nil
}

// FormatSheetTree draws the document as a top-down tree.
func FormatSheetTree(w io.Writer, doc *sheet.Document) error {
	_, err := io.WriteString(w, renderTree(sheetTreeNode(doc)).String())
	return err
}

func sheetTreeNode(doc *sheet.Document) *treeNode {
	label := doc.SourceName
	if label == "" {
		label = "Document"
	}
	root := &treeNode{label: label}
	for _, sec := range doc.Sections {
		secNode := &treeNode{label: "@" + sec.Name}
		for _, f := range sec.Fields {
			fieldNode := &treeNode{label: f.Name + ": " + valueKind(f.Value)}
			if list, ok := f.Value.(sheet.ItemList); ok {
				for _, it := range list.Items {
					fieldNode.children = append(fieldNode.children, &treeNode{label: itemLabel(it)})
				}
			}
			secNode.children = append(secNode.children, fieldNode)
		}
		root.children = append(root.children, secNode)
	}
	return root
}

func itemLabel(it sheet.Item) string {
	label := "NULL"
	if it.Val != nil {
		label = *it.Val
	}
	if it.Qty != nil {
		label = fmt.Sprintf("%s x%d", label, *it.Qty)
	}
	return label
}

func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil && int(span.File) < fs.Len() {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}
