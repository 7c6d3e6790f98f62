package parser

import (
	"github.com/sirupsen/logrus"

	"dndml/internal/diag"
)

var pLogger logrus.FieldLogger = logrus.NewEntry(logrus.StandardLogger())

// SetLogger configures the package logger used when Options.Logger is nil.
func SetLogger(l logrus.FieldLogger) { pLogger = l }

type Options struct {
	// Reporter receives one diagnostic per failure (lexical ones come from the lexer).
	Reporter diag.Reporter
	// Logger overrides the package logger for this parse.
	Logger logrus.FieldLogger
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	return pLogger
}
