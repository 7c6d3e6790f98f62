// Package diag defines the diagnostic model shared by the lexer, the parser and
// the driver.
//
// Diagnostic is the central record: a Severity, a stable Code (LEX/SYN/IO/OBS
// families, see codes.go), a short Message, the Primary span and optional Notes
// and Fixes. Producers emit through a Reporter, usually a BagReporter feeding a
// bounded Bag.
//
// Package diag does no IO. Rendering lives in internal/diagfmt, except for the
// one-line Summarize form used by tests and quiet CLI runs.
package diag
