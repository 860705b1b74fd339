package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/hoarding/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a palette.
type Styles struct {
	colorBg lipgloss.Color

	// Header
	TitleStyle  lipgloss.Style
	HeaderStyle lipgloss.Style

	// Preset rows
	RowStyle         lipgloss.Style
	RowAltStyle      lipgloss.Style
	RowSelectedStyle lipgloss.Style
	RowNameStyle     lipgloss.Style

	// Footer
	StatusStyle   lipgloss.Style
	FooterStyle   lipgloss.Style
	HelpKeyStyle  lipgloss.Style
	HelpDescStyle lipgloss.Style
}

// NewStyles creates a Styles instance from the given palette.
func NewStyles(p *theme.Palette) *Styles {
	s := &Styles{colorBg: p.Bg}

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextOnAccent).
		Background(p.Accent).
		Padding(0, 1)
	s.HeaderStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Background(p.BgHighlight)

	s.RowStyle = lipgloss.NewStyle().
		Foreground(p.Fg).
		Background(p.Bg)
	s.RowAltStyle = lipgloss.NewStyle().
		Foreground(p.Fg).
		Background(p.RowBgAlt)
	s.RowSelectedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextOnSelection).
		Background(p.BgSelection)
	s.RowNameStyle = lipgloss.NewStyle().
		Foreground(p.Accent)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(p.Warning).
		Background(p.Bg)
	s.FooterStyle = lipgloss.NewStyle().
		Background(p.Bg)
	s.HelpKeyStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Background(p.Bg)
	s.HelpDescStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Background(p.Bg)

	return s
}
