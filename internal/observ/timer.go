package observ

import (
	"fmt"
	"strings"
	"time"
)

// Timer records named phases in start order. One Timer per parse; it has no locking.
type Timer struct {
	phases []phase
	now    func() time.Time
}

type phase struct {
	name    string
	started time.Time
	took    time.Duration
	note    string
}

func NewTimer() *Timer { return &Timer{now: time.Now} }

// Start opens a phase. Calling the returned func closes it; later calls are no-ops.
func (t *Timer) Start(name string) (stop func(note string)) {
	t.phases = append(t.phases, phase{name: name, started: t.now()})
	idx := len(t.phases) - 1
	done := false
	return func(note string) {
		if done {
			return
		}
		done = true
		p := &t.phases[idx]
		p.took, p.note = t.now().Sub(p.started), note
	}
}

// Time runs fn as one phase; a failing fn marks the phase "failed".
func (t *Timer) Time(name string, fn func() error) error {
	stop := t.Start(name)
	err := fn()
	if err != nil {
		stop("failed")
	} else {
		stop("")
	}
	return err
}

type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report is the serializable snapshot of a Timer.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

func (t *Timer) Report() Report {
	var r Report
	var total time.Duration
	for _, p := range t.phases {
		total += p.took
		r.Phases = append(r.Phases, PhaseReport{Name: p.name, DurationMS: ms(p.took), Note: p.note})
	}
	r.TotalMS = ms(total)
	return r
}

// String lays the report out as an aligned table.
func (r Report) String() string {
	var b strings.Builder
	b.WriteString("timings:\n")
	row := func(name string, v float64, note string) {
		fmt.Fprintf(&b, "  %-12s %8.2f ms", name, v)
		if note != "" {
			b.WriteString("  // " + note)
		}
		b.WriteByte('\n')
	}
	for _, p := range r.Phases {
		row(p.Name, p.DurationMS, p.Note)
	}
	row("total", r.TotalMS, "")
	return b.String()
}
