package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ensigniasec/tv-guide/internal/guide"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) { // nolint:ireturn
	switch x := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = x.Width, x.Height
		m.help.Width = x.Width
		m.fitViewport()
		return m, nil

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(x)
		return m, cmd

	case spinner.TickMsg:
		if m.nav != nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(x)
		return m, cmd

	case scanDoneMsg:
		m.channels, m.files = x.Channels, x.Files
		return m, m.listenForEvents()

	case buildProgressMsg:
		// Progress arrives from several probe workers; keep the high-water mark.
		if x.Done > m.probed {
			m.probed = x.Done
			m.lastProbe = x.Path
		}
		m.files = x.Total
		return m, m.listenForEvents()

	case gridReadyMsg:
		if x.Err != nil {
			m.loadErr = x.Err
			m.quitting = true
			return m, tea.Quit
		}
		m.nav = guide.NewNavigator(x.Grid, m.opts.Rows, m.opts.Cols, m.opts.Locator, m.opts.Player)
		m.fitViewport()
		cmd := m.applyStep(m.nav.Start())
		return m, cmd

	case descriptionMsg:
		if m.nav == nil || !m.nav.Preview.AcceptDescription(x.Seq) {
			return m, nil
		}
		m.description = x.Text
		m.descriptionPending = false
		return m, nil

	case clockTickMsg:
		m.now = x.Now
		return m, m.tickClock()
	}

	return m, nil
}
