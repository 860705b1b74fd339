package hoarding

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Default colours, matching the platform defaults placeholders usually ship with.
const (
	DefaultButtonBackground = lipgloss.Color("#007AFF")
	DefaultButtonTitleColor = lipgloss.Color("#FFFFFF")
	DefaultTitleColor       = lipgloss.Color("#000000")
	DefaultSubtitleColor    = lipgloss.Color("#AAAAAA")
	DefaultBackgroundColor  = lipgloss.Color("#FFFFFF")
)

// Default fonts.
var (
	DefaultButtonFont   = SystemFont(16, WeightSemibold)
	DefaultTitleFont    = SystemFont(16, WeightSemibold)
	DefaultSubtitleFont = SystemFont(14, WeightRegular)
)

// Weight is a font weight.
type Weight int

const (
	WeightUnset Weight = iota
	WeightLight
	WeightRegular
	WeightMedium
	WeightSemibold
	WeightBold
)

// Font describes text appearance. Terminals cannot scale glyphs, so Size is
// carried for hosts that can and only Weight and Italic affect rendering.
type Font struct {
	Size   float64
	Weight Weight
	Italic bool
}

// SystemFont returns a font of the given size and weight.
func SystemFont(size float64, weight Weight) Font {
	return Font{Size: size, Weight: weight}
}

func (f Font) isZero() bool {
	return f == Font{}
}

func (f Font) apply(s lipgloss.Style) lipgloss.Style {
	switch {
	case f.Weight >= WeightSemibold:
		s = s.Bold(true)
	case f.Weight == WeightLight:
		s = s.Faint(true)
	}
	if f.Italic {
		s = s.Italic(true)
	}
	return s
}

// Span is a run of text sharing one set of attributes.
type Span struct {
	Text      string
	Font      Font
	Color     lipgloss.Color
	Underline bool
}

// RichText is attributed text made of spans.
type RichText []Span

// String returns the text without attributes.
func (r RichText) String() string {
	var b strings.Builder
	for _, s := range r {
		b.WriteString(s.Text)
	}
	return b.String()
}

func (r RichText) render(bg lipgloss.Color) string {
	var b strings.Builder
	for _, s := range r {
		style := s.Font.apply(lipgloss.NewStyle().Background(bg)).Underline(s.Underline)
		if s.Color != "" {
			style = style.Foreground(s.Color)
		}
		b.WriteString(style.Render(s.Text))
	}
	return b.String()
}

// Button is the optional action button content. A nil Button shows no button.
// The concrete types are PlainButton and RichButton.
type Button interface {
	buttonTitle() string
}

// PlainButton is a button with a plain title styled by the Detail's button fields.
type PlainButton struct {
	Title string
}

func (b PlainButton) buttonTitle() string { return b.Title }

// RichButton is a button whose title carries its own attributes. The Detail's
// ButtonFont and ButtonTitleColor are not applied to it.
type RichButton struct {
	Title RichText
}

func (b RichButton) buttonTitle() string { return b.Title.String() }

// ButtonFrom picks the button variant from two independent inputs. Rich content
// takes precedence, so at most one button is ever described.
func ButtonFrom(plain string, rich RichText) Button {
	if len(rich) > 0 {
		return RichButton{Title: rich}
	}
	if plain != "" {
		return PlainButton{Title: plain}
	}
	return nil
}

// Detail describes what the overlay shows.
type Detail struct {
	Title    string
	Subtitle string
	Image    image.Image
	Button   Button

	ButtonBackground lipgloss.Color
	ButtonFont       Font
	ButtonTitleColor lipgloss.Color

	TitleFont     Font
	SubtitleFont  Font
	TitleColor    lipgloss.Color
	SubtitleColor lipgloss.Color

	BackgroundColor lipgloss.Color
}

// DetailOption configures a Detail.
type DetailOption func(*Detail)

// NewDetail returns a Detail with the given title and every style field set
// to its default.
func NewDetail(title string, opts ...DetailOption) Detail {
	d := Detail{Title: title}.withDefaults()
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// WithSubtitle sets the subtitle.
func WithSubtitle(subtitle string) DetailOption {
	return func(d *Detail) { d.Subtitle = subtitle }
}

// WithImage sets the image.
func WithImage(img image.Image) DetailOption {
	return func(d *Detail) { d.Image = img }
}

// WithButton sets the button content.
func WithButton(b Button) DetailOption {
	return func(d *Detail) { d.Button = b }
}

// WithButtonStyle sets the button background, title colour and font.
func WithButtonStyle(bg, titleColor lipgloss.Color, font Font) DetailOption {
	return func(d *Detail) {
		d.ButtonBackground = bg
		d.ButtonTitleColor = titleColor
		d.ButtonFont = font
	}
}

// WithTitleStyle sets the title font and colour.
func WithTitleStyle(font Font, color lipgloss.Color) DetailOption {
	return func(d *Detail) {
		d.TitleFont = font
		d.TitleColor = color
	}
}

// WithSubtitleStyle sets the subtitle font and colour.
func WithSubtitleStyle(font Font, color lipgloss.Color) DetailOption {
	return func(d *Detail) {
		d.SubtitleFont = font
		d.SubtitleColor = color
	}
}

// WithBackground sets the overlay background colour.
func WithBackground(color lipgloss.Color) DetailOption {
	return func(d *Detail) { d.BackgroundColor = color }
}

// withDefaults fills every unset style field with its default.
func (d Detail) withDefaults() Detail {
	if d.ButtonBackground == "" {
		d.ButtonBackground = DefaultButtonBackground
	}
	if d.ButtonFont.isZero() {
		d.ButtonFont = DefaultButtonFont
	}
	if d.ButtonTitleColor == "" {
		d.ButtonTitleColor = DefaultButtonTitleColor
	}
	if d.TitleFont.isZero() {
		d.TitleFont = DefaultTitleFont
	}
	if d.SubtitleFont.isZero() {
		d.SubtitleFont = DefaultSubtitleFont
	}
	if d.TitleColor == "" {
		d.TitleColor = DefaultTitleColor
	}
	if d.SubtitleColor == "" {
		d.SubtitleColor = DefaultSubtitleColor
	}
	if d.BackgroundColor == "" {
		d.BackgroundColor = DefaultBackgroundColor
	}
	return d
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
