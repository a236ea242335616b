package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vito/progrock"
)

const (
	statusRunning = "running"
	statusDone    = "done"
	statusCached  = "cached"
	statusFailed  = "failed"
)

// ruleView is the rendered state of one rule vertex.
type ruleView struct {
	id     string
	name   string
	status string
}

// Model is the Bubble Tea model driving the rule list.
type Model struct {
	tape    TapeSource
	rules   []ruleView
	width   int
	height  int
	spinner spinner.Model
}

// NewModel creates a model reading from the given tape source.
func NewModel(tape TapeSource) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = ruleRunningStyle

	return &Model{
		tape:    tape,
		spinner: s,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		WaitForTape(m.tape),
		m.spinner.Tick,
	)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case MsgTapeUpdate:
		m.apply(msg.Update)
		return m, WaitForTape(m.tape)
	case MsgTapeEnded:
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) apply(update *progrock.StatusUpdate) {
	for _, v := range update.Vertexes {
		m.applyVertex(v)
	}
}

func (m *Model) applyVertex(v *progrock.Vertex) {
	for i := range m.rules {
		if m.rules[i].id == v.Id {
			m.rules[i].status = vertexStatus(v)
			return
		}
	}
	m.rules = append(m.rules, ruleView{
		id:     v.Id,
		name:   v.Name,
		status: vertexStatus(v),
	})
}

func vertexStatus(v *progrock.Vertex) string {
	if v.Completed == nil {
		return statusRunning
	}
	switch {
	case v.Error != nil:
		return statusFailed
	case v.Cached:
		return statusCached
	default:
		return statusDone
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var s strings.Builder

	// Show the tail when the list outgrows the window.
	start := 0
	if m.height > 0 && len(m.rules) > m.height {
		start = len(m.rules) - m.height
	}

	for _, r := range m.rules[start:] {
		var icon, suffix string
		var style lipgloss.Style
		switch r.status {
		case statusDone:
			icon = "✓"
			style = ruleDoneStyle
		case statusCached:
			icon = "✓"
			suffix = " (cached)"
			style = ruleCachedStyle
		case statusFailed:
			icon = "✗"
			style = ruleFailedStyle
		default:
			icon = m.spinner.View()
			style = ruleRunningStyle
		}
		fmt.Fprintf(&s, "%s %s%s\n", style.Render(icon), r.name, suffix)
	}

	return s.String()
}
