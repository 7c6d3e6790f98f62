package driver

import (
	"github.com/sirupsen/logrus"

	"dndml/internal/diag"
)

var dLogger logrus.FieldLogger = logrus.NewEntry(logrus.StandardLogger())

// SetLogger configures the logger used by the driver and handed to the parser.
func SetLogger(l logrus.FieldLogger) { dLogger = l }

// Options control one driver run.
type Options struct {
	MaxDiagnostics int
	// Timings appends an OBS6001 diagnostic with per-phase durations.
	Timings bool
	// Cache, when set, short-circuits parsing of unchanged files.
	Cache *DiskCache
	// Jobs bounds ParseDir's parallelism; <= 0 means GOMAXPROCS.
	Jobs int
	// Progress receives per-file events from ParseDir.
	Progress ProgressSink
}

func (o Options) newBag() *diag.Bag {
	return diag.NewBag(o.MaxDiagnostics)
}
