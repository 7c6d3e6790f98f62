// Package sheet holds the parsed form of a DSML character sheet.
//
// A Document owns its Sections in document order, a Section owns its Fields,
// and every Field carries exactly one Value variant. A nil pointer inside a
// value is the explicit NULL from the source; there are no sentinel numbers.
//
// Spans point into Document.Source, which the Document keeps alive.
package sheet
