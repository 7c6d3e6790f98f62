package lexer

import (
	"dndml/internal/diag"
	"dndml/internal/source"
)

type Options struct {
	// Reporter receives lexical diagnostics; nil means they are dropped
	// and the Invalid token is the only signal.
	Reporter diag.Reporter
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	lx.lastErr = code
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(diag.NewError(code, sp, msg))
	}
}
