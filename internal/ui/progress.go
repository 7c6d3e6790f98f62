package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"dndml/internal/driver"
)

const statusColumn = 12

var (
	stageVerb = map[driver.Stage]string{
		driver.StageLoad:  "loading",
		driver.StageLex:   "lexing",
		driver.StageParse: "parsing",
	}
	// share of a file's bar credited once it reaches a stage
	stageWeight = map[driver.Stage]float64{
		driver.StageLex:   0.3,
		driver.StageParse: 0.6,
	}
	statusColor = map[string]lipgloss.Color{
		"done":    "2",
		"error":   "1",
		"loading": "6",
		"lexing":  "6",
		"parsing": "6",
	}
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
)

type fileItem struct {
	path   string
	status string
	stage  driver.Stage
	failed bool
	final  bool
}

func (it fileItem) weight() float64 {
	if it.final {
		return 1
	}
	return stageWeight[it.stage]
}

type eventMsg driver.Event
type doneMsg struct{}

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	items   []fileItem
	byPath  map[string]int
	width   int
	done    bool
	aborted bool
}

// NewProgressModel shows per-file ParseDir progress until events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	return newProgressModel(title, files, events)
}

func newProgressModel(title string, files []string, events <-chan driver.Event) *progressModel {
	m := &progressModel{
		title:   title,
		events:  events,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("6")))),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		items:   make([]fileItem, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	for i, f := range files {
		m.items[i] = fileItem{path: f, status: "queued", stage: driver.StageLoad}
		m.byPath[f] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case eventMsg:
		cmd = tea.Batch(m.applyEvent(driver.Event(msg)), m.listenForEvent())
	case doneMsg:
		m.done = true
		cmd = tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.aborted = true
			cmd = tea.Quit
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case spinner.TickMsg:
		if !m.done {
			m.spinner, cmd = m.spinner.Update(msg)
		}
	case progress.FrameMsg:
		var next tea.Model
		next, cmd = m.bar.Update(msg)
		m.bar = next.(progress.Model)
	}
	return m, cmd
}

func (m *progressModel) header() string {
	h := fmt.Sprintf("%s (%d/%d)", m.title, m.finished(), len(m.items))
	if m.done {
		return "done: " + h
	}
	return m.spinner.View() + " " + h
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.header()) + "\n\n")

	nameWidth := max(m.width-statusColumn-4, 20)
	for _, it := range m.items {
		st := lipgloss.NewStyle().Foreground(colorFor(it.status)).Render(fmt.Sprintf("%*s", statusColumn, it.status))
		fmt.Fprintf(&b, "  %s %s\n", st, truncate(it.path, nameWidth))
	}

	bar := m.bar.View()
	if m.done {
		bar = m.bar.ViewAs(1)
	}
	b.WriteString("\n" + bar + "\n")
	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

// applyEvent updates the row for ev.File; events for unknown files return nil.
func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	it := &m.items[i]
	if label := statusLabel(ev.Stage, ev.Status); label != "" {
		it.status, it.stage = label, ev.Stage
	}
	it.failed = ev.Status == driver.StatusError
	it.final = it.failed || ev.Status == driver.StatusDone
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) finished() (n int) {
	for _, it := range m.items {
		if it.final {
			n++
		}
	}
	return n
}

func (m *progressModel) percent() float64 {
	if len(m.items) == 0 {
		return 0
	}
	var sum float64
	for _, it := range m.items {
		sum += it.weight()
	}
	return sum / float64(len(m.items))
}

func statusLabel(stage driver.Stage, status driver.Status) string {
	switch status {
	case driver.StatusWorking:
		return stageVerb[stage]
	case driver.StatusQueued, driver.StatusDone, driver.StatusError:
		return string(status)
	}
	return ""
}

func colorFor(status string) lipgloss.Color {
	if c, ok := statusColor[status]; ok {
		return c
	}
	return "7"
}

func truncate(value string, width int) string {
	switch {
	case width <= 0 || runewidth.StringWidth(value) <= width:
		return value
	case width <= 3:
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
