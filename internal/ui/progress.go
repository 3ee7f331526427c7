// Package ui renders the live progress of a comparison with Bubble Tea.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tradiff/internal/pipeline"
)

// row is one input file. The same path given for both sides gets two rows
// that move together.
type row struct {
	side   string
	path   string
	state  string
	failed bool
}

// weight is the share of the row's work that is finished.
func (r row) weight() float64 {
	if r.failed {
		return 1
	}
	return stateWeights[r.state]
}

var stateWeights = map[string]float64{
	"decoding": 0.1,
	"decoded":  0.4,
	"parsing":  0.5,
	"parsed":   1,
}

type model struct {
	title   string
	events  <-chan pipeline.Event
	spin    spinner.Model
	bar     progress.Model
	rows    []row
	phase   string // whole-run state, e.g. "comparing"
	width   int
	stopped bool
}

type eventMsg pipeline.Event
type closedMsg struct{}

// NewProgressModel returns a Bubble Tea model showing one row per file. It
// quits once events is closed.
func NewProgressModel(title string, files []string, events <-chan pipeline.Event) tea.Model {
	spin := spinner.New(spinner.WithSpinner(spinner.MiniDot))
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	rows := make([]row, len(files))
	for i, f := range files {
		rows[i] = row{side: sideName(i), path: f, state: "queued"}
	}
	return &model{
		title:  title,
		events: events,
		spin:   spin,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		rows:   rows,
		width:  80,
	}
}

func sideName(i int) string {
	if i < 2 {
		return [...]string{"first", "second"}[i]
	}
	return fmt.Sprintf("#%d", i+1)
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.next())
}

// next waits for the following pipeline event.
func (m *model) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(pipeline.Event(msg)), m.next())
	case closedMsg:
		m.stopped = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case spinner.TickMsg:
		if !m.stopped {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// apply moves the rows of ev.File to the state ev describes. Events without
// a file update the run-wide phase.
func (m *model) apply(ev pipeline.Event) tea.Cmd {
	state := stateName(ev.Stage, ev.Status)
	if state == "" {
		return nil
	}
	if ev.File == "" {
		m.phase = state
		return nil
	}
	matched := false
	for i := range m.rows {
		if m.rows[i].path == ev.File {
			m.rows[i].state = state
			m.rows[i].failed = ev.Status == pipeline.StatusError
			matched = true
		}
	}
	if !matched {
		return nil
	}
	return m.bar.SetPercent(m.done())
}

func (m *model) done() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	var sum float64
	for _, r := range m.rows {
		sum += r.weight()
	}
	return sum / float64(len(m.rows))
}

func stateName(stage pipeline.Stage, status pipeline.Status) string {
	switch status {
	case pipeline.StatusQueued:
		return "queued"
	case pipeline.StatusError:
		return "error"
	case pipeline.StatusWorking:
		return map[pipeline.Stage]string{
			pipeline.StageDecode:  "decoding",
			pipeline.StageParse:   "parsing",
			pipeline.StageCompare: "comparing",
		}[stage]
	case pipeline.StatusDone:
		return map[pipeline.Stage]string{
			pipeline.StageDecode:  "decoded",
			pipeline.StageParse:   "parsed",
			pipeline.StageCompare: "compared",
		}[stage]
	}
	return ""
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	busyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	idleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	sideStyle  = lipgloss.NewStyle().Faint(true).Width(7)
)

func stateStyle(state string) lipgloss.Style {
	switch state {
	case "parsed", "compared":
		return okStyle
	case "error":
		return errStyle
	case "queued":
		return idleStyle
	default:
		return busyStyle
	}
}

func (m *model) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	title := m.title
	if m.phase != "" {
		title += " (" + m.phase + ")"
	}
	if m.stopped {
		title = "done: " + title
	} else {
		title = m.spin.View() + " " + title
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	const stateWidth = 10
	pathWidth := max(m.width-stateWidth-sideStyle.GetWidth()-6, 20)
	for _, r := range m.rows {
		state := stateStyle(r.state).Render(fmt.Sprintf("%*s", stateWidth, r.state))
		fmt.Fprintf(&b, "  %s %s%s\n", state, sideStyle.Render(r.side), truncate(r.path, pathWidth))
	}

	b.WriteString("\n")
	if m.stopped {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}
