// Package tui provides interactive terminal UI components.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcgrab/marcgrab/internal/search"
)

type statusMsg search.StatusUpdate

type taskDoneMsg struct{}

type statusStyles struct {
	found     lipgloss.Style
	notFound  lipgloss.Style
	errored   lipgloss.Style
	canceled  lipgloss.Style
	pending   lipgloss.Style
	name      lipgloss.Style
	url       lipgloss.Style
	helpStyle lipgloss.Style
}

func newStatusStyles() statusStyles {
	return statusStyles{
		found:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		notFound:  lipgloss.NewStyle().Foreground(lipgloss.Color("204")),
		errored:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		canceled:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		pending:   lipgloss.NewStyle().Faint(true),
		name:      lipgloss.NewStyle().Bold(true),
		url:       lipgloss.NewStyle().Foreground(lipgloss.Color("247")),
		helpStyle: lipgloss.NewStyle().Faint(true),
	}
}

type row struct {
	outcome search.Outcome
	url     string
	detail  string
}

// Model is the live status table for a running search task: one row per
// endpoint, updated as ordered status notifications arrive.
type Model struct {
	names      []string
	rows       []row
	task       *search.Task
	spinner    spinner.Model
	styles     statusStyles
	cancelling bool
	done       bool
}

// NewModel builds the status table for the given endpoint names and
// running task.
func NewModel(names []string, task *search.Task) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		names:   names,
		rows:    make([]row, len(names)),
		task:    task,
		spinner: sp,
		styles:  newStatusStyles(),
	}
}

// Init starts the spinner.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles status notifications, task completion, and cancel
// keys.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusMsg:
		if msg.Index >= 0 && msg.Index < len(m.rows) {
			m.rows[msg.Index] = row{outcome: msg.Outcome, url: msg.URL, detail: msg.Detail}
		}
		return m, nil

	case taskDoneMsg:
		m.done = true
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "c", "q", "ctrl+c", "esc":
			if !m.cancelling {
				m.cancelling = true
				m.task.Cancel()
			}
			return m, nil
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the table.
func (m Model) View() string {
	var b strings.Builder
	for i, name := range m.names {
		r := m.rows[i]
		b.WriteString(m.statusCell(r))
		b.WriteString("  ")
		b.WriteString(m.styles.name.Render(name))
		if r.url != "" && r.outcome == search.OutcomeFound {
			b.WriteString("  ")
			b.WriteString(m.styles.url.Render(r.url))
		}
		if r.detail != "" && r.outcome == search.OutcomeError {
			b.WriteString("  ")
			b.WriteString(m.styles.errored.Render(r.detail))
		}
		b.WriteString("\n")
	}

	switch {
	case m.done:
	case m.cancelling:
		b.WriteString(m.styles.helpStyle.Render("cancelling, waiting for the current request..."))
		b.WriteString("\n")
	default:
		b.WriteString(m.styles.helpStyle.Render("press c to cancel"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) statusCell(r row) string {
	const width = 13
	pad := func(s string) string {
		if len(s) < width {
			return s + strings.Repeat(" ", width-len(s))
		}
		return s
	}
	switch r.outcome {
	case search.OutcomeSearching:
		return pad(fmt.Sprintf("%sSearching", m.spinner.View()))
	case search.OutcomeFound:
		return m.styles.found.Render(pad("Found"))
	case search.OutcomeNotFound:
		return m.styles.notFound.Render(pad("Not Found"))
	case search.OutcomeError:
		return m.styles.errored.Render(pad("Error"))
	case search.OutcomeCanceled:
		return m.styles.canceled.Render(pad("Canceled"))
	default:
		return m.styles.pending.Render(pad("-"))
	}
}

// RunSearch drives the status table until the task reaches a terminal
// state, forwarding the task's ordered updates into the program.
func RunSearch(names []string, task *search.Task) error {
	m := NewModel(names, task)
	p := tea.NewProgram(m)

	go func() {
		for update := range task.Updates() {
			p.Send(statusMsg(update))
		}
		p.Send(taskDoneMsg{})
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("status display failed: %w", err)
	}
	return nil
}
