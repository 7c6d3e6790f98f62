package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"dndml/internal/driver"
)

func TestApplyEventTracksStatus(t *testing.T) {
	files := []string{"party/aria.dnd", "party/bram.dnd"}
	m := newProgressModel("parsing party", files, nil)

	m.applyEvent(driver.Event{File: "party/aria.dnd", Stage: driver.StageParse, Status: driver.StatusWorking})
	if got := m.items[0].status; got != "parsing" {
		t.Errorf("status = %q, want parsing", got)
	}
	if got := m.percent(); got != 0.3 {
		t.Errorf("percent() = %v, want 0.3", got)
	}

	m.applyEvent(driver.Event{File: "party/aria.dnd", Stage: driver.StageParse, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "party/bram.dnd", Stage: driver.StageLoad, Status: driver.StatusError})
	if m.items[0].status != "done" || m.items[1].status != "error" || !m.items[1].failed {
		t.Errorf("items = %+v", m.items)
	}
	if m.finished() != 2 || m.percent() != 1.0 {
		t.Errorf("finished = %d, percent = %v", m.finished(), m.percent())
	}

	// unknown files are ignored
	if cmd := m.applyEvent(driver.Event{File: "elsewhere.dnd", Status: driver.StatusDone}); cmd != nil {
		t.Error("applyEvent for unknown file returned a command")
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		stage  driver.Stage
		status driver.Status
		want   string
	}{
		{driver.StageLoad, driver.StatusQueued, "queued"},
		{driver.StageLoad, driver.StatusWorking, "loading"},
		{driver.StageLex, driver.StatusWorking, "lexing"},
		{driver.StageParse, driver.StatusWorking, "parsing"},
		{driver.StageParse, driver.StatusDone, "done"},
		{driver.StageLex, driver.StatusError, "error"},
		{driver.StageParse, driver.Status("paused"), ""},
	}
	for _, tt := range tests {
		if got := statusLabel(tt.stage, tt.status); got != tt.want {
			t.Errorf("statusLabel(%s, %s) = %q, want %q", tt.stage, tt.status, got, tt.want)
		}
	}
}

func TestViewListsFiles(t *testing.T) {
	m := newProgressModel("parsing party", []string{"aria.dnd", "bram.dnd"}, nil)
	m.applyEvent(driver.Event{File: "aria.dnd", Stage: driver.StageParse, Status: driver.StatusDone})
	view := m.View()
	for _, want := range []string{"parsing party (1/2)", "done aria.dnd", "queued bram.dnd"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestEventsChannelDrivesModel(t *testing.T) {
	events := make(chan driver.Event, 1)
	m := newProgressModel("x", []string{"a.dnd"}, events)

	events <- driver.Event{File: "a.dnd", Stage: driver.StageLex, Status: driver.StatusWorking}
	msg := m.listenForEvent()()
	if _, ok := msg.(eventMsg); !ok {
		t.Fatalf("listenForEvent() = %T, want eventMsg", msg)
	}
	m.Update(msg)
	if m.items[0].status != "lexing" {
		t.Errorf("status = %q, want lexing", m.items[0].status)
	}

	close(events)
	if _, ok := m.listenForEvent()().(doneMsg); !ok {
		t.Fatal("closed channel should yield doneMsg")
	}
	_, cmd := m.Update(doneMsg{})
	if !m.done || cmd == nil {
		t.Error("doneMsg should finish the model")
	}
	if !strings.Contains(m.View(), "done: x (0/1)") {
		t.Errorf("View() after done = %q", m.View())
	}
}

func TestCtrlCAborts(t *testing.T) {
	m := newProgressModel("x", []string{"a.dnd"}, nil)
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.aborted {
		t.Error("ctrl+c should abort")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly-10", 10, "exactly-10"},
		{"a-much-longer-path.dnd", 10, "a-much-..."},
		{"abcdef", 3, "abc"},
		{"abcdef", 0, "abcdef"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
