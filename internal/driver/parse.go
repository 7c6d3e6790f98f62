package driver

import (
	"errors"
	"fmt"

	"dndml/internal/diag"
	"dndml/internal/lexer"
	"dndml/internal/observ"
	"dndml/internal/parser"
	"dndml/internal/sheet"
	"dndml/internal/source"
)

// ErrLoad wraps failures to read a sheet from disk.
var ErrLoad = errors.New("load sheet")

// ParseResult is the outcome of parsing one file. Exactly one of Doc and Err is set.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Doc     *sheet.Document
	Err     error
	Bag     *diag.Bag
	Cached  bool
	Timing  observ.Report
}

// Parse loads and parses one sheet. The returned error is only for I/O;
// parse failures are reported in ParseResult.Err and Bag.
func Parse(path string, opts Options) (*ParseResult, error) {
	timer := observ.NewTimer()
	fs := source.NewFileSet()

	stop := timer.Start(string(StageLoad))
	fileID, err := fs.Load(path)
	stop("")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return parseFile(fs, fs.Get(fileID), opts, opts.newBag(), timer), nil
}

// ParseBytes parses in-memory content registered under name.
func ParseBytes(name string, content []byte, opts Options) *ParseResult {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, content))
	return parseFile(fs, file, opts, opts.newBag(), observ.NewTimer())
}

func parseFile(fs *source.FileSet, file *source.File, opts Options, bag *diag.Bag, timer *observ.Timer) *ParseResult {
	log := dLogger.WithField("path", file.Path)
	reporter := diag.BagReporter{Bag: bag}
	res := &ParseResult{FileSet: fs, File: file, Bag: bag}

	if opts.Cache != nil {
		stop := timer.Start("cache")
		doc, ok, err := opts.Cache.Get(file.Hash, file)
		stop("lookup")
		switch {
		case err != nil:
			log.WithError(err).Warn("cache lookup failed")
			reporter.Report(diag.Warnf(diag.IOCacheError, source.Span{File: file.ID}, "cache lookup failed: %v", err))
		case ok:
			log.Debug("cache hit")
			res.Doc, res.Cached = doc, true
			finish(res, opts, timer)
			return res
		}
	}

	stop := timer.Start(string(StageLex))
	buf, err := parser.Fill(lexer.New(file, lexer.Options{Reporter: reporter}))
	stop("")
	if err != nil {
		res.Err = err
		finish(res, opts, timer)
		return res
	}

	stop = timer.Start(string(StageParse))
	doc, err := parser.ParseBuffer(buf, file, parser.Options{Reporter: reporter, Logger: log})
	stop(fmt.Sprintf("%d tokens", buf.Len()))
	if err != nil {
		res.Err = err
		finish(res, opts, timer)
		return res
	}
	res.Doc = doc

	if opts.Cache != nil {
		if err := opts.Cache.Put(file.Hash, doc); err != nil {
			log.WithError(err).Warn("cache store failed")
			reporter.Report(diag.Warnf(diag.IOCacheError, source.Span{File: file.ID}, "cache store failed: %v", err))
		}
	}
	finish(res, opts, timer)
	return res
}

func finish(res *ParseResult, opts Options, timer *observ.Timer) {
	res.Timing = timer.Report()
	if opts.Timings {
		appendTimingDiagnostic(res.Bag, timingPayload{
			Kind:    "parse",
			Path:    res.File.Path,
			TotalMS: res.Timing.TotalMS,
			Phases:  res.Timing.Phases,
		})
	}
}
