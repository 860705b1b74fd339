// Package tui provides the demo host screen for the hoarding overlay.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/hoarding/internal/config"
	"github.com/javiermolinar/hoarding/internal/debuglog"
	"github.com/javiermolinar/hoarding/internal/hoarding"
	"github.com/javiermolinar/hoarding/internal/preset"
	"github.com/javiermolinar/hoarding/internal/surface"
	"github.com/javiermolinar/hoarding/internal/tui/commands"
	"github.com/javiermolinar/hoarding/internal/tui/theme"
)

// Screen chrome around the host surface, in lines.
const (
	headerHeight = 1
	footerHeight = 2
)

// overlaySession is shared by every copy of the model so the retry callback
// can update it from inside the overlay.
type overlaySession struct {
	retries int
	shown   string // name of the preset on screen
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo   preset.Repository
	config *config.Config

	// Theme and styles
	theme   *theme.Theme
	palette *theme.Palette
	styles  *Styles

	keys keyMap
	help help.Model

	// Catalogue
	presets []preset.Preset
	cursor  int
	loading bool
	pending string // preset to show once presets and size are known

	// Host and overlay
	host    *surface.Surface
	overlay *hoarding.View // created on first show
	session *overlaySession

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string    // Temporary status/error message
	statusTime time.Time // When to clear message

	err error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithInitialPreset shows the named preset as soon as the screen is ready.
func WithInitialPreset(name string) ModelOption {
	return func(m *Model) {
		m.pending = name
	}
}

// New creates a new TUI model.
func New(repo preset.Repository, cfg *config.Config, opts ...ModelOption) Model {
	if cfg == nil {
		cfg = config.Default()
	}

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		// Fallback to mocha on error
		t, _ = theme.Load("mocha")
	}
	palette := theme.NewPalette(t)
	styles := NewStyles(palette)

	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpDescStyle
	h.Styles.ShortSeparator = styles.HelpDescStyle
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle
	h.Styles.FullSeparator = styles.HelpDescStyle

	m := Model{
		repo:    repo,
		config:  cfg,
		theme:   t,
		palette: palette,
		styles:  styles,
		keys:    defaultKeyMap(),
		help:    h,
		loading: true,
		pending: cfg.UI.DefaultPreset,
		host:    surface.New(0, 0),
		session: &overlaySession{},
	}

	for _, opt := range opts {
		opt(&m)
	}

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return commands.LoadPresets(m.repo)
}

// Retries returns how many times the overlay button fired its callback.
func (m Model) Retries() int {
	return m.session.retries
}

// Overlay returns the overlay view, or nil before the first show.
func (m Model) Overlay() *hoarding.View {
	return m.overlay
}

// Run starts the TUI.
func Run(repo preset.Repository, cfg *config.Config, opts ...ModelOption) error {
	return RunWithDebug(repo, cfg, false, opts...)
}

// RunWithDebug starts the TUI with optional debug logging. A nil repo is
// opened from the configured database path and closed on exit.
func RunWithDebug(repo preset.Repository, cfg *config.Config, debug bool, opts ...ModelOption) error {
	if err := debuglog.Init(debug, debuglog.DefaultPath); err != nil {
		return err
	}
	defer debuglog.Close()

	if repo == nil {
		opened, err := openRepo(cfg.Storage.DBPath)
		if err != nil {
			return err
		}
		defer func() { _ = opened.Close() }()
		repo = opened
	}

	model := New(repo, cfg, opts...)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
