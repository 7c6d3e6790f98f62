package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBareSigil          Code = 1003
	LexTokenTooLong       Code = 1004

	// Syntax
	SynInfo                 Code = 2000
	SynUnexpectedToken      Code = 2001
	SynExpectIdentifier     Code = 2102
	SynUnknownValueKind     Code = 2300
	SynUnterminatedSection  Code = 2301
	SynIntegerOutOfRange    Code = 2302
	SynBadAttribute         Code = 2303
	SynExpectIntOrNull      Code = 2304
	SynExpectStringOrNull   Code = 2305
	SynUnterminatedItemList Code = 2306

	// I/O
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:             "Unknown error",
	LexInfo:                 "Lexical information",
	LexUnknownChar:          "Unknown character",
	LexUnterminatedString:   "Unterminated string literal",
	LexBareSigil:            "Sigil without a word",
	LexTokenTooLong:         "Token too long",
	SynInfo:                 "Syntax information",
	SynUnexpectedToken:      "Unexpected token",
	SynExpectIdentifier:     "Expected identifier",
	SynUnknownValueKind:     "Unknown value kind",
	SynUnterminatedSection:  "Unterminated section",
	SynIntegerOutOfRange:    "Integer literal out of range",
	SynBadAttribute:         "Unexpected attribute name",
	SynExpectIntOrNull:      "Expected integer or NULL",
	SynExpectStringOrNull:   "Expected string or NULL",
	SynUnterminatedItemList: "Unterminated item list",
	IOLoadFileError:         "I/O load file error",
	IOCacheError:            "Cache error",
	ObsInfo:                 "Observability information",
	ObsTimings:              "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
