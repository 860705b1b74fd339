// Package hoarding implements a full-bounds placeholder overlay ("hoarding")
// that shows an image, title, subtitle and optional action button over a host.
package hoarding

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/hoarding/internal/debuglog"
	"github.com/javiermolinar/hoarding/internal/surface"
)

// Host is the surface an overlay attaches to.
type Host interface {
	Size() (width, height int)
	Attach(l surface.Layer)
	Detach(l surface.Layer) bool
}

// KeyMap holds the key bindings the overlay reacts to.
type KeyMap struct {
	Activate key.Binding
}

// DefaultKeyMap activates the button with enter or space.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "activate button"),
		),
	}
}

// View is the overlay. Create one per host and call Show and Remove as needed.
// It is not safe for concurrent use; drive it from the UI goroutine.
type View struct {
	host    Host
	class   DeviceClass
	metrics Metrics
	keys    KeyMap

	detail   Detail
	children []element
	button   *buttonElement
	stacked  bool
	onRetry  func()
}

// Option configures a View.
type Option func(*View)

// WithMetrics overrides the device-class constants.
func WithMetrics(m Metrics) Option {
	return func(v *View) { v.metrics = m }
}

// WithKeyMap overrides the key bindings.
func WithKeyMap(km KeyMap) Option {
	return func(v *View) { v.keys = km }
}

// New creates an overlay for host. Nothing is attached until Show.
func New(host Host, class DeviceClass, opts ...Option) *View {
	v := &View{
		host:    host,
		class:   class,
		metrics: MetricsFor(class),
		keys:    DefaultKeyMap(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Class returns the device class the view was created with.
func (v *View) Class() DeviceClass { return v.class }

// Metrics returns the layout constants in use.
func (v *View) Metrics() Metrics { return v.metrics }

// KeyMap returns the key bindings in use.
func (v *View) KeyMap() KeyMap { return v.keys }

// Show displays d over the host, replacing anything shown before. onRetry may
// be nil; otherwise it runs once for every activation of the button.
func (v *View) Show(d Detail, onRetry func()) {
	v.Remove()

	v.detail = d.withDefaults()
	v.host.Attach(v)
	v.stacked = true

	if d.Image != nil {
		v.children = append(v.children, &imageElement{img: d.Image})
	}
	if !isBlank(d.Title) {
		v.children = append(v.children, &labelElement{
			elementKind: ElementTitle,
			label:       d.Title,
			font:        v.detail.TitleFont,
			color:       v.detail.TitleColor,
		})
	}
	if !isBlank(d.Subtitle) {
		v.children = append(v.children, &labelElement{
			elementKind: ElementSubtitle,
			label:       d.Subtitle,
			font:        v.detail.SubtitleFont,
			color:       v.detail.SubtitleColor,
		})
	}
	if d.Button != nil {
		v.button = &buttonElement{owner: v, content: d.Button}
		v.children = append(v.children, v.button)
	}

	v.onRetry = onRetry

	debuglog.LogShow(d.Title, v.elementNames(), onRetry != nil)
}

// Remove detaches the overlay and drops its children and callback. It is a
// no-op when nothing is shown.
func (v *View) Remove() {
	wasShown := v.Shown()

	v.onRetry = nil
	v.host.Detach(v)
	for _, child := range v.children {
		child.detach()
	}
	v.children = nil
	v.button = nil
	v.stacked = false

	if wasShown {
		debuglog.LogRemove(true)
	}
}

// Shown reports whether the overlay is attached to its host.
func (v *View) Shown() bool {
	return v.stacked
}

// Elements lists the stack children in display order.
func (v *View) Elements() []Element {
	out := make([]Element, 0, len(v.children))
	for _, child := range v.children {
		out = append(out, Element{Kind: child.kind(), Text: child.text()})
	}
	return out
}

// HasButton reports whether an action button is currently shown.
func (v *View) HasButton() bool {
	return v.button != nil
}

// Tap activates the button as if the user pressed it. Without a button it does nothing.
func (v *View) Tap() {
	if v.button == nil {
		return
	}
	v.button.press("programmatic")
}

// HandleMsg reacts to the button's primary action: the activate key binding,
// or a left-button release inside the button. Mouse coordinates are relative
// to the host. It reports whether the message activated the button.
func (v *View) HandleMsg(msg tea.Msg) bool {
	if v.button == nil {
		return false
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, v.keys.Activate) {
			v.button.press("key")
			return true
		}
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease {
			return false
		}
		if msg.Button != tea.MouseButtonLeft && msg.Button != tea.MouseButtonNone {
			return false
		}
		w, h := v.host.Size()
		if v.layout(w, h).button.contains(msg.X, msg.Y) {
			v.button.press("mouse")
			return true
		}
	}
	return false
}

// handleTap is the single effect of a button activation.
func (v *View) handleTap(source string) {
	fired := v.onRetry != nil
	debuglog.LogTap(source, fired)
	if fired {
		v.onRetry()
	}
}

// Render draws the overlay at the given host size. It implements surface.Layer.
func (v *View) Render(width, height int) string {
	if !v.stacked {
		return ""
	}
	return v.layout(width, height).String()
}

func (v *View) elementNames() []string {
	names := make([]string, 0, len(v.children))
	for _, child := range v.children {
		names = append(names, child.kind().String())
	}
	return names
}
