package diag

import "dndml/internal/source"

// Reporter receives diagnostics from the lexer and the parser.
type Reporter interface {
	Report(Diagnostic)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Diagnostic)

func (f ReporterFunc) Report(d Diagnostic) { f(d) }

// Discard drops everything.
var Discard Reporter = ReporterFunc(func(Diagnostic) {})

// BagReporter writes into a *Bag; a nil Bag drops.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

// Tee fans each diagnostic out to every non-nil reporter.
func Tee(rs ...Reporter) Reporter {
	return ReporterFunc(func(d Diagnostic) {
		for _, r := range rs {
			if r != nil {
				r.Report(d)
			}
		}
	})
}

type dedupKey struct {
	code Code
	sev  Severity
	span source.Span
	msg  string
}

// Dedup forwards a diagnostic only the first time its code, severity,
// primary span and message are seen. Not safe for concurrent use.
func Dedup(next Reporter) Reporter {
	seen := make(map[dedupKey]struct{})
	return ReporterFunc(func(d Diagnostic) {
		key := dedupKey{code: d.Code, sev: d.Severity, span: d.Primary, msg: d.Message}
		if _, dup := seen[key]; dup || next == nil {
			return
		}
		seen[key] = struct{}{}
		next.Report(d)
	})
}
