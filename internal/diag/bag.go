package diag

import (
	"cmp"
	"slices"

	"dndml/internal/source"

	"fortio.org/safecast"
)

// Bag collects diagnostics up to a fixed limit. Later reports are dropped.
type Bag struct {
	items []Diagnostic
	max   uint16
}

func clampLimit(n int) uint16 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[uint16](n)
	if err != nil {
		return ^uint16(0)
	}
	return v
}

// NewBag keeps at most max diagnostics; max is clamped to [0, 65535].
func NewBag(max int) *Bag {
	limit := clampLimit(max)
	return &Bag{items: make([]Diagnostic, 0, min(int(limit), 64)), max: limit}
}

// Add reports false when the bag is full.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) == int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() uint16 { return b.max }
func (b *Bag) Len() int    { return len(b.items) }

// Items exposes the stored diagnostics. Do not modify.
func (b *Bag) Items() []Diagnostic { return b.items }

func (b *Bag) atLeast(sev Severity) bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= sev })
}

func (b *Bag) HasErrors() bool   { return b.atLeast(SevError) }
func (b *Bag) HasWarnings() bool { return b.atLeast(SevWarning) }

// Merge copies other into b. The limit is raised so nothing from other is lost.
func (b *Bag) Merge(other *Bag) {
	if other == nil || len(other.items) == 0 {
		return
	}
	b.max = max(b.max, clampLimit(len(b.items)+len(other.items)))
	for _, d := range other.items {
		if !b.Add(d) {
			return
		}
	}
}

// Sort orders by position, then most severe first, then code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

// Dedup keeps the first diagnostic for every code and primary span.
func (b *Bag) Dedup() {
	type key struct {
		code Code
		span source.Span
	}
	seen := make(map[key]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := key{d.Code, d.Primary}
		if _, dup := seen[k]; dup {
			return true
		}
		seen[k] = struct{}{}
		return false
	})
}
