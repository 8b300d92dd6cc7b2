package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/ensigniasec/tv-guide/internal/guide"
)

const (
	defaultContentWidth = 80
	ellipsis            = "…"
)

//nolint:gochecknoglobals // shared styles.
var (
	accentColor = lipgloss.Color("208")
	dimColor    = lipgloss.Color("241")

	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	dimStyle       = lipgloss.NewStyle().Foreground(dimColor)
	labelStyle     = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	timelineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("238"))
	cellStyle      = lipgloss.NewStyle().Background(lipgloss.Color("236")).Padding(0, 1).MarginRight(1)
	selectedStyle  = cellStyle.Background(accentColor).Foreground(lipgloss.Color("0")).Bold(true)
	descBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(dimColor).Padding(0, 1)
	previewOnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
)

func (m Model) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}
	if m.nav == nil {
		return m.renderLoading()
	}

	sections := []string{m.renderHeader(), m.renderDescription(), m.renderPreviewStatus()}
	if m.nav.Grid.RowCount() == 0 {
		sections = append(sections, "", dimStyle.Render(emptyGuideText(m.opts.Root)))
	} else {
		sections = append(sections, m.renderTimeline(), m.renderGrid())
	}
	sections = append(sections, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func emptyGuideText(root string) string {
	return fmt.Sprintf("No channels found. Add folders with video files under %s.", root)
}

func (m Model) contentWidth() int {
	if m.width > 0 {
		return m.width
	}
	return defaultContentWidth
}

// cellWidth is the width of one slot column, margin included.
func (m Model) cellWidth() int {
	cols := m.nav.Viewport.VisibleCols
	return max((m.contentWidth()-labelColumnWidth)/cols, 4)
}

func (m Model) renderLoading() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("TV Listings"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s Tuning in to %s\n", m.spinner.View(), m.opts.Root)
	if m.channels > 0 {
		fmt.Fprintf(&b, "%d channels, %d programs\n", m.channels, m.files)
	}
	if m.files > 0 {
		bar := m.progress
		bar.Width = min(m.contentWidth(), defaultContentWidth)
		b.WriteString(bar.ViewAs(float64(m.probed) / float64(m.files)))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(ansi.Truncate(m.lastProbe, m.contentWidth(), ellipsis)))
	}
	return b.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("TV Listings")
	clock := dimStyle.Render(m.now.Format("Mon 3:04pm"))
	pad := max(m.contentWidth()-lipgloss.Width(title)-lipgloss.Width(clock), 1)
	return title + strings.Repeat(" ", pad) + clock
}

func (m Model) renderDescription() string {
	box := descBoxStyle.Width(m.contentWidth() - descBoxStyle.GetHorizontalBorderSize())
	inner := max(box.GetWidth()-descBoxStyle.GetHorizontalPadding(), 1)
	entry, ok := m.nav.Grid.Current()
	if !ok {
		return box.Render(dimStyle.Render("Nothing selected"))
	}

	heading := lipgloss.NewStyle().Bold(true).Render(ansi.Truncate(entry.DisplayName, inner, ellipsis))
	body := m.description
	if m.descriptionPending {
		body = dimStyle.Render("Loading description" + ellipsis)
	}
	body = lipgloss.NewStyle().Width(inner).MaxHeight(descriptionLines).Render(body)
	return box.Render(heading + "\n" + body)
}

func (m Model) renderPreviewStatus() string {
	last := m.nav.Preview.LastRow()
	row, ok := m.nav.Grid.Row(last)
	if !ok {
		return dimStyle.Render("■ No preview playing")
	}
	status := previewOnStyle.Render("▶ Previewing " + oneLine(row.Label))
	if sel := m.nav.Grid.Selection(); sel.Row != last {
		status += dimStyle.Render("  (no preview clip for this channel)")
	}
	return status
}

func (m Model) renderTimeline() string {
	vp := m.nav.Viewport
	day, labels := guide.Timeline(m.now, vp.ColStart, vp.VisibleCols, m.opts.Slot)
	cw := m.cellWidth()

	var b strings.Builder
	b.WriteString(fitText(" "+day, labelColumnWidth))
	for _, l := range labels {
		b.WriteString(fitText(" "+l, cw))
	}
	return timelineStyle.Render(b.String())
}

func (m Model) renderGrid() string {
	grid, vp := m.nav.Grid, m.nav.Viewport
	sel := grid.Selection()
	cw := m.cellWidth()

	start, end := vp.VisibleRowRange(grid.RowCount())
	lines := make([]string, 0, end-start)
	for r := start; r < end; r++ {
		row, _ := grid.Row(r)
		parts := []string{renderLabel(row.Label)}
		used := 0
		for _, c := range vp.VisibleCells(row) {
			selected := r == sel.Row && c.Col == sel.Col
			parts = append(parts, renderCell(c.Entry, c.Width*cw, selected))
			used += c.Width
		}
		if rest := vp.VisibleCols - used; rest > 0 {
			parts = append(parts, lipgloss.NewStyle().Width(rest*cw).Height(rowLines).Render(""))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, parts...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderLabel(label string) string {
	inner := labelColumnWidth - labelStyle.GetHorizontalFrameSize()
	lines := strings.Split(label, "\n")
	for i := range lines {
		lines[i] = ansi.Truncate(lines[i], inner, ellipsis)
	}
	if len(lines) > 1 {
		lines[1] = dimStyle.Render(lines[1])
	}
	return labelStyle.Width(labelColumnWidth).Height(rowLines).MaxHeight(rowLines).Render(strings.Join(lines, "\n"))
}

// renderCell draws one program occupying width columns, margin included.
func renderCell(e guide.ProgramEntry, width int, selected bool) string {
	style := cellStyle
	if selected {
		style = selectedStyle
	}
	inner := max(width-style.GetHorizontalFrameSize(), 1)
	title := ansi.Truncate(e.DisplayName, inner, ellipsis)
	detail := ansi.Truncate(formatLength(e.DurationSeconds), inner, ellipsis)
	return style.Width(width - style.GetHorizontalMargins()).Height(rowLines).Render(title + "\n" + detail)
}

// formatLength renders a running time as "45m", "2h" or "1h 30m"; unknown lengths are blank.
func formatLength(seconds float64) string {
	if seconds <= 0 {
		return ""
	}
	d := time.Duration(seconds * float64(time.Second)).Round(time.Minute)
	h, mins := int(d.Hours()), int(d.Minutes())%60
	switch {
	case d < time.Minute:
		return "<1m"
	case h == 0:
		return fmt.Sprintf("%dm", mins)
	case mins == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, mins)
	}
}

func oneLine(label string) string {
	return strings.ReplaceAll(label, "\n", " · ")
}

// fitText truncates or pads s to exactly width cells.
func fitText(s string, width int) string {
	s = ansi.Truncate(s, width, ellipsis)
	return s + strings.Repeat(" ", max(width-ansi.StringWidth(s), 0))
}
