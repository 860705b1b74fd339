package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/hoarding/internal/debuglog"
	"github.com/javiermolinar/hoarding/internal/hoarding"
	"github.com/javiermolinar/hoarding/internal/preset"
	"github.com/javiermolinar/hoarding/internal/tui/commands"
	"github.com/javiermolinar/hoarding/internal/tui/theme"
)

const statusTTL = 3 * time.Second

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Show     key.Binding
	Next     key.Binding
	Prev     key.Binding
	Remove   key.Binding
	Activate key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Show: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "show"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove"),
		),
		Activate: key.NewBinding(
			key.WithKeys(hoarding.DefaultKeyMap().Activate.Keys()...),
			key.WithHelp("enter", "activate"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Show, k.Next, k.Remove, k.Activate, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev},
		{k.Show, k.Remove, k.Activate},
		{k.Help, k.Quit},
	}
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	debuglog.LogKeyPress(msg.String())

	// The overlay gets first pick while it is on screen.
	if m.overlayShown() && m.overlay.HandleMsg(msg) {
		return m.afterTap()
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, false)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, false)
	case key.Matches(msg, m.keys.Next):
		m.moveCursor(1, true)
		if m.overlayShown() {
			return m.showSelected()
		}
	case key.Matches(msg, m.keys.Prev):
		m.moveCursor(-1, true)
		if m.overlayShown() {
			return m.showSelected()
		}
	case key.Matches(msg, m.keys.Show):
		return m.showSelected()
	case key.Matches(msg, m.keys.Remove):
		if m.overlay != nil {
			m.overlay.Remove()
		}
		m.session.shown = ""
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// handleMouseMsg forwards clicks inside the host surface to the overlay.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.overlayShown() {
		return m, nil
	}
	local := msg
	local.Y -= headerHeight
	if m.overlay.HandleMsg(local) {
		return m.afterTap()
	}
	return m, nil
}

func (m *Model) moveCursor(delta int, wrap bool) {
	n := len(m.presets)
	if n == 0 {
		return
	}
	next := m.cursor + delta
	switch {
	case wrap:
		next = ((next % n) + n) % n
	case next < 0:
		next = 0
	case next >= n:
		next = n - 1
	}
	m.cursor = next
}

func (m Model) overlayShown() bool {
	return m.overlay != nil && m.overlay.Shown()
}

// showSelected shows the preset under the cursor, replacing whatever is on screen.
func (m Model) showSelected() (tea.Model, tea.Cmd) {
	if len(m.presets) == 0 {
		return m, commands.ShowStatus("no presets loaded")
	}
	return m.showPreset(m.presets[m.cursor])
}

func (m Model) showPreset(p preset.Preset) (tea.Model, tea.Cmd) {
	themed := applyPalette(p, m.palette.Overlay)
	detail, err := themed.ToDetail()
	if err != nil {
		debuglog.LogError("show preset", err)
		return m, commands.ShowStatus(err.Error())
	}

	m.ensureOverlay()
	v := m.overlay
	session := m.session
	session.shown = p.Name
	v.Show(detail, func() {
		session.retries++
		session.shown = ""
		v.Remove()
	})

	return m, commands.ShowStatus(fmt.Sprintf("showing %s", p.Name))
}

// showPending shows the preset requested at startup once presets and the
// terminal size are both known.
func (m Model) showPending() (tea.Model, tea.Cmd) {
	if m.pending == "" || m.loading || m.width == 0 {
		return m, nil
	}
	name := m.pending
	m.pending = ""

	for i, p := range m.presets {
		if p.Name == name {
			m.cursor = i
			return m.showPreset(p)
		}
	}

	status := fmt.Sprintf("unknown preset %q", name)
	if hints := preset.Suggest(name, preset.Names(m.presets)); len(hints) > 0 {
		status += fmt.Sprintf(", did you mean %s?", strings.Join(hints, ", "))
	}
	return m, commands.ShowStatus(status)
}

func (m Model) afterTap() (tea.Model, tea.Cmd) {
	return m, commands.ShowStatus(fmt.Sprintf("retry #%d", m.session.retries))
}

// ensureOverlay creates the overlay for the current terminal size.
func (m *Model) ensureOverlay() {
	if m.overlay != nil {
		return
	}
	class := m.config.DeviceClass(m.width, m.height)
	m.overlay = hoarding.New(m.host, class,
		hoarding.WithMetrics(m.config.Metrics(class)),
		hoarding.WithKeyMap(hoarding.KeyMap{Activate: m.keys.Activate}),
	)
}

// applyPalette fills style fields the preset leaves empty with theme colours.
func applyPalette(p preset.Preset, c theme.OverlayColors) preset.Preset {
	s := &p.Style
	if s.Background == "" {
		s.Background = c.Bg
	}
	if s.TitleColor == "" {
		s.TitleColor = c.Title
	}
	if s.SubtitleColor == "" {
		s.SubtitleColor = c.Subtitle
	}
	if s.ButtonBackground == "" {
		s.ButtonBackground = c.Button
	}
	if s.ButtonTitleColor == "" {
		s.ButtonTitleColor = c.ButtonText
	}
	return p
}
