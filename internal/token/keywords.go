package token

// reserved is filled once at package init and never mutated afterwards.
var reserved = map[string]Kind{
	"@section":     KwSection,
	"@end-section": KwEndSection,
	"@field":       KwField,
	"%stat":        KwStat,
	"%string":      KwString,
	"%int":         KwInt,
	"%dice":        KwDice,
	"%deathsaves":  KwDeathSaves,
	"%itemlist":    KwItemList,
	"%item":        KwItem,
}

// LookupReserved returns the kind of a sigil word (sigil included).
// Matching is case-sensitive.
func LookupReserved(word string) (Kind, bool) {
	k, ok := reserved[word]
	return k, ok
}

// ReservedWords returns a copy of the reserved-word table.
func ReservedWords() map[string]Kind {
	out := make(map[string]Kind, len(reserved))
	for w, k := range reserved {
		out[w] = k
	}
	return out
}
