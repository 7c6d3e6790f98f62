package sheet

import (
	"dndml/internal/source"
)

// Document is one parsed sheet.
type Document struct {
	SourceName string
	Source     *source.File
	Sections   []Section
}

// Section is a named '@section ... @end-section' block.
type Section struct {
	Name   string
	Span   source.Span
	Fields []Field
}

// Field is a named, typed '@field name: value;' entry.
type Field struct {
	Name  string
	Span  source.Span
	Value Value
}

// Section returns the first section called name.
func (d *Document) Section(name string) (*Section, bool) {
	if d == nil {
		return nil, false
	}
	for i := range d.Sections {
		if d.Sections[i].Name == name {
			return &d.Sections[i], true
		}
	}
	return nil, false
}

// Field returns the first field called name.
func (s *Section) Field(name string) (*Field, bool) {
	if s == nil {
		return nil, false
	}
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i], true
		}
	}
	return nil, false
}

// Lookup resolves "section.field"; both parts use first-match semantics.
func (d *Document) Lookup(section, field string) (*Field, bool) {
	sec, ok := d.Section(section)
	if !ok {
		return nil, false
	}
	return sec.Field(field)
}

// FieldCount sums fields over all sections.
func (d *Document) FieldCount() int {
	n := 0
	for i := range d.Sections {
		n += len(d.Sections[i].Fields)
	}
	return n
}
