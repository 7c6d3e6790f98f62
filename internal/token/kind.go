package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token (unknown character, unterminated string, bare sigil).
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token, including unreserved sigil words like '%itn'.
	Ident

	// KwSection represents the '@section' reserved word.
	KwSection // @section
	// KwEndSection represents the '@end-section' reserved word.
	KwEndSection // @end-section
	// KwField represents the '@field' reserved word.
	KwField // @field
	// KwStat represents the '%stat' value keyword.
	KwStat // %stat
	// KwString represents the '%string' value keyword.
	KwString // %string
	// KwInt represents the '%int' value keyword.
	KwInt // %int
	// KwDice represents the '%dice' value keyword.
	KwDice // %dice
	// KwDeathSaves represents the '%deathsaves' value keyword.
	KwDeathSaves // %deathsaves
	// KwItemList represents the '%itemlist' value keyword.
	KwItemList // %itemlist
	// KwItem represents the '%item' value keyword.
	KwItem // %item

	// IntLit represents an unsigned decimal literal.
	IntLit
	// StringLit represents a double-quoted string literal.
	StringLit
	// Null represents the 'NULL' literal.
	Null

	// Colon represents the colon punctuation token.
	Colon // :
	// Semicolon represents the semicolon punctuation token.
	Semicolon // ;
	// LBracket represents the left bracket punctuation token.
	LBracket // [
	// RBracket represents the right bracket punctuation token.
	RBracket // ]
	// Plus represents the plus punctuation token.
	Plus // +

	kindCount
)

var kindNames = [kindCount]string{
	Invalid:      "invalid",
	EOF:          "end of input",
	Ident:        "identifier",
	KwSection:    "@section",
	KwEndSection: "@end-section",
	KwField:      "@field",
	KwStat:       "%stat",
	KwString:     "%string",
	KwInt:        "%int",
	KwDice:       "%dice",
	KwDeathSaves: "%deathsaves",
	KwItemList:   "%itemlist",
	KwItem:       "%item",
	IntLit:       "int literal",
	StringLit:    "string literal",
	Null:         "NULL",
	Colon:        ":",
	Semicolon:    ";",
	LBracket:     "[",
	RBracket:     "]",
	Plus:         "+",
}

// String returns the literal spelling for reserved words and punctuation
// and a readable class name for everything else.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsValueKeyword reports whether k introduces one of the seven field value kinds.
func (k Kind) IsValueKeyword() bool {
	return k >= KwStat && k <= KwItem
}
