package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const nameColumnWidth = 12

// View renders the host screen with the overlay composited over its body.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Loading..."
	}

	sections := []string{m.renderHeader()}
	if body := m.host.Compose(m.renderRows()); body != "" {
		sections = append(sections, body)
	}
	sections = append(sections, m.renderFooter())
	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := m.styles.TitleStyle.Render("hoarding")
	info := fmt.Sprintf(" %d presets", len(m.presets))
	if m.overlay != nil {
		info += fmt.Sprintf(" · %s", m.overlay.Class())
	}
	if m.session.retries > 0 {
		info += fmt.Sprintf(" · %d retries", m.session.retries)
	}
	rest := m.width - lipgloss.Width(title)
	if rest <= 0 {
		return ansi.Truncate(title, m.width, "")
	}
	return title + m.styles.HeaderStyle.Width(rest).Render(ansi.Truncate(info, rest, "…"))
}

// renderRows draws the preset list that the overlay covers when shown.
func (m Model) renderRows() string {
	w, h := m.bodySize()
	if w <= 0 || h <= 0 {
		return ""
	}

	lines := make([]string, 0, h)
	if m.loading {
		lines = append(lines, m.styles.RowStyle.Width(w).Render(" Loading presets..."))
	}
	for i, p := range m.presets {
		if len(lines) == h {
			break
		}
		style := m.styles.RowStyle
		if i%2 == 1 {
			style = m.styles.RowAltStyle
		}
		if i == m.cursor {
			style = m.styles.RowSelectedStyle
		}
		name := m.styles.RowNameStyle.Inherit(style).Render(fmt.Sprintf(" %-*s", nameColumnWidth, p.Name))
		row := name + style.Render(" "+p.Title)
		rowWidth := lipgloss.Width(row)
		switch {
		case rowWidth > w:
			row = ansi.Truncate(row, w, "…")
		case rowWidth < w:
			row += style.Render(strings.Repeat(" ", w-rowWidth))
		}
		lines = append(lines, row)
	}

	blank := m.styles.RowStyle.Render(strings.Repeat(" ", w))
	for len(lines) < h {
		lines = append(lines, blank)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	status := m.styles.StatusStyle.Width(m.width).Render(ansi.Truncate(" "+m.statusMsg, m.width, "…"))
	helpLine := m.help.View(m.keys)
	if m.help.ShowAll {
		// Full help spans several lines; keep the footer to its fixed height.
		helpLine = strings.SplitN(helpLine, "\n", 2)[0]
	}
	helpLine = ansi.Truncate(helpLine, m.width, "")
	if pad := m.width - lipgloss.Width(helpLine); pad > 0 {
		helpLine += m.styles.FooterStyle.Render(strings.Repeat(" ", pad))
	}
	return status + "\n" + helpLine
}
