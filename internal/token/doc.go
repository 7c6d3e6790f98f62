// Package token defines lexical token kinds for DSML character sheets.
// Invariants:
//   - Token carries no text; File.Text(Token.Span) slices it from the source on demand.
//   - String literal spans include both quotes.
//   - Reserved words keep their sigil ('@' or '%') and are looked up as whole words,
//     so '@section' and '@end-section' never shadow each other.
//   - Fixed attribute names (ability, mod, succ, fail, val, qty, weight) and the dice
//     separator 'd' are plain identifiers; the parser matches them by text.
package token
