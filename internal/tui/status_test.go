package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcgrab/marcgrab/internal/search"
)

func TestModelUpdateStatus(t *testing.T) {
	m := NewModel([]string{"First Library", "Second Library"}, &search.Task{})

	next, _ := m.Update(statusMsg{Index: 0, Outcome: search.OutcomeFound, URL: "https://catalog.example.org/record/1"})
	m = next.(Model)

	view := m.View()
	assert.Contains(t, view, "Found")
	assert.Contains(t, view, "First Library")
	assert.Contains(t, view, "https://catalog.example.org/record/1")
	assert.Contains(t, view, "press c to cancel")
}

func TestModelUpdateErrorDetail(t *testing.T) {
	m := NewModel([]string{"Only Library"}, &search.Task{})

	next, _ := m.Update(statusMsg{Index: 0, Outcome: search.OutcomeError, Detail: "connection refused"})
	m = next.(Model)

	view := m.View()
	assert.Contains(t, view, "Error")
	assert.Contains(t, view, "connection refused")
}

func TestModelIgnoresOutOfRangeIndex(t *testing.T) {
	m := NewModel([]string{"Only Library"}, &search.Task{})

	next, _ := m.Update(statusMsg{Index: 5, Outcome: search.OutcomeFound})
	m = next.(Model)

	assert.NotContains(t, m.View(), "Found")
}

func TestModelTaskDoneQuits(t *testing.T) {
	m := NewModel([]string{"Only Library"}, &search.Task{})

	next, cmd := m.Update(taskDoneMsg{})
	m = next.(Model)

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.NotContains(t, m.View(), "press c to cancel")
}

func TestModelCancelKey(t *testing.T) {
	m := NewModel([]string{"Only Library"}, &search.Task{})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	m = next.(Model)

	assert.Contains(t, m.View(), "cancelling")
}
