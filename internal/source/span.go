package source

import "fmt"

// Span is the byte range [Start, End) of a file.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) Empty() bool { return s.End <= s.Start }

func (s Span) Len() uint32 {
	if s.Empty() {
		return 0
	}
	return s.End - s.Start
}

// Contains reports whether off falls inside s.
func (s Span) Contains(off uint32) bool { return off >= s.Start && off < s.End }

func (s Span) String() string { return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End) }

// Cover widens s to include other. A span from another file leaves s unchanged.
func (s Span) Cover(other Span) Span {
	if s.File == other.File {
		s.Start, s.End = min(s.Start, other.Start), max(s.End, other.End)
	}
	return s
}

// AtStart is the empty span at the start of s.
func (s Span) AtStart() Span { return Span{File: s.File, Start: s.Start, End: s.Start} }

// AtEnd is the empty span just past s.
func (s Span) AtEnd() Span { return Span{File: s.File, Start: s.End, End: s.End} }
