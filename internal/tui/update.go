package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/hoarding/internal/debuglog"
	"github.com/javiermolinar/hoarding/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.host.Resize(m.bodySize())
		m.dropStaleOverlay()
		return m.showPending()

	case commands.PresetsLoadedMsg:
		m.presets = msg.Presets
		m.loading = false
		if m.cursor >= len(m.presets) {
			m.cursor = 0
		}
		return m.showPending()

	case commands.ErrMsg:
		m.err = msg.Err
		m.loading = false
		debuglog.LogError("tui", msg.Err)
		m.statusMsg = msg.Err.Error()
		m.statusTime = time.Now().Add(statusTTL)
		return m, commands.ClearStatusAfter(statusTTL)

	case commands.StatusMsgCmd:
		m.statusMsg = msg.Msg
		m.statusTime = time.Now().Add(statusTTL)
		return m, commands.ClearStatusAfter(statusTTL)

	case commands.ClearStatusMsg:
		// A newer status may have arrived since this clear was scheduled.
		if !time.Now().Before(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	return m, nil
}

// bodySize returns the size of the host surface between header and footer.
func (m Model) bodySize() (int, int) {
	h := m.height - headerHeight - footerHeight
	if h < 0 {
		h = 0
	}
	return m.width, h
}

// dropStaleOverlay forgets a hidden overlay whose device class no longer
// matches the terminal, so the next show picks up the new metrics.
func (m *Model) dropStaleOverlay() {
	if m.overlay == nil || m.overlay.Shown() {
		return
	}
	if m.config.DeviceClass(m.width, m.height) != m.overlay.Class() {
		m.overlay = nil
	}
}
