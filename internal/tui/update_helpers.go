package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ensigniasec/tv-guide/internal/guide"
)

// handleKey processes key bindings and returns updated model and command.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) { // nolint:ireturn
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.fitViewport()
		return m, nil
	}

	if m.nav == nil {
		return m, nil
	}
	dir, ok := m.keys.direction(msg)
	if !ok {
		return m, nil
	}
	cmd := m.applyStep(m.nav.Move(dir))
	return m, cmd
}

// applyStep clears the description pane and starts the lookup for the new selection.
func (m *Model) applyStep(step guide.Step) tea.Cmd {
	m.description = ""
	m.descriptionPending = step.Description.Path != ""
	return m.describe(step.Description)
}

// fitViewport resizes the grid window to what the terminal can show, capped at the
// configured size.
func (m *Model) fitViewport() {
	if m.nav == nil {
		return
	}
	rows, cols := m.windowSize()
	m.nav.Resize(rows, cols)
}

func (m Model) windowSize() (rows, cols int) {
	rows, cols = m.opts.Rows, m.opts.Cols
	if m.width > 0 {
		cols = clamp((m.width-labelColumnWidth)/minCellWidth, 1, m.opts.Cols)
	}
	if m.height > 0 {
		avail := m.height - guideOverheadLines - m.helpLines()
		rows = clamp(avail/rowLines, 1, m.opts.Rows)
	}
	return rows, cols
}

func (m Model) helpLines() int {
	if !m.help.ShowAll {
		return 1
	}
	n := 0
	for _, group := range m.keys.FullHelp() {
		n = max(n, len(group))
	}
	return n
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
