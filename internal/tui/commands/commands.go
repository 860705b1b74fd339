// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/hoarding/internal/preset"
)

// PresetsLoadedMsg is sent when the preset catalogue is loaded.
type PresetsLoadedMsg struct {
	Presets []preset.Preset
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadPresets loads stored presets and merges them over the builtins.
// A nil repository yields the builtins only.
func LoadPresets(repo preset.Repository) tea.Cmd {
	return func() tea.Msg {
		if repo == nil {
			return PresetsLoadedMsg{Presets: preset.Merge(preset.Builtin(), nil)}
		}
		stored, err := repo.List(context.Background())
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading presets: %w", err)}
		}
		return PresetsLoadedMsg{Presets: preset.Merge(preset.Builtin(), stored)}
	}
}

// ShowStatus returns a command that shows a status message.
func ShowStatus(msg string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsgCmd{Msg: msg}
	}
}

// ClearStatusAfter returns a command that clears the status after a delay.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
