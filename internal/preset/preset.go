// Package preset defines named, serializable overlay configurations.
package preset

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/hoarding/internal/hoarding"
	"github.com/javiermolinar/hoarding/internal/imagecell"
)

// Sentinel errors.
var (
	ErrNotFound  = errors.New("preset not found")
	ErrEmptyName = errors.New("preset name cannot be empty")
	ErrNoContent = errors.New("preset has nothing to show")
)

// SpanSpec is one run of rich button text.
type SpanSpec struct {
	Text      string `toml:"text" yaml:"text" json:"text"`
	Color     string `toml:"color,omitempty" yaml:"color,omitempty" json:"color,omitempty"`
	Weight    string `toml:"weight,omitempty" yaml:"weight,omitempty" json:"weight,omitempty"`
	Italic    bool   `toml:"italic,omitempty" yaml:"italic,omitempty" json:"italic,omitempty"`
	Underline bool   `toml:"underline,omitempty" yaml:"underline,omitempty" json:"underline,omitempty"`
}

// StyleSpec holds optional colour and weight overrides. Empty fields keep the defaults.
type StyleSpec struct {
	Background       string `toml:"background,omitempty" yaml:"background,omitempty" json:"background,omitempty"`
	TitleColor       string `toml:"title_color,omitempty" yaml:"title_color,omitempty" json:"title_color,omitempty"`
	TitleWeight      string `toml:"title_weight,omitempty" yaml:"title_weight,omitempty" json:"title_weight,omitempty"`
	SubtitleColor    string `toml:"subtitle_color,omitempty" yaml:"subtitle_color,omitempty" json:"subtitle_color,omitempty"`
	SubtitleWeight   string `toml:"subtitle_weight,omitempty" yaml:"subtitle_weight,omitempty" json:"subtitle_weight,omitempty"`
	ButtonBackground string `toml:"button_background,omitempty" yaml:"button_background,omitempty" json:"button_background,omitempty"`
	ButtonTitleColor string `toml:"button_title_color,omitempty" yaml:"button_title_color,omitempty" json:"button_title_color,omitempty"`
	ButtonWeight     string `toml:"button_weight,omitempty" yaml:"button_weight,omitempty" json:"button_weight,omitempty"`
}

// Preset is a named overlay configuration.
type Preset struct {
	Name        string     `toml:"name" yaml:"name" json:"name"`
	Title       string     `toml:"title" yaml:"title" json:"title"`
	Subtitle    string     `toml:"subtitle,omitempty" yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	ImagePath   string     `toml:"image,omitempty" yaml:"image,omitempty" json:"image,omitempty"`
	ButtonTitle string     `toml:"button_title,omitempty" yaml:"button_title,omitempty" json:"button_title,omitempty"`
	ButtonRich  []SpanSpec `toml:"button_rich,omitempty" yaml:"button_rich,omitempty" json:"button_rich,omitempty"`
	Style       StyleSpec  `toml:"style,omitempty" yaml:"style,omitempty" json:"style,omitempty"`
	CreatedAt   time.Time  `toml:"-" yaml:"-" json:"-"`
}

// Repository defines the storage interface for presets.
type Repository interface {
	// Save inserts or replaces a preset by name.
	Save(ctx context.Context, p *Preset) error

	// Get returns the named preset, or nil if it does not exist.
	Get(ctx context.Context, name string) (*Preset, error)

	// List returns all presets ordered by name.
	List(ctx context.Context) ([]*Preset, error)

	// Delete removes the named preset. Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, name string) error

	// Close releases any resources held by the repository.
	Close() error
}

// Validate checks the fields a preset cannot do without.
func (p *Preset) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(p.Title) == "" && strings.TrimSpace(p.Subtitle) == "" &&
		p.ImagePath == "" && p.ButtonTitle == "" && len(p.ButtonRich) == 0 {
		return ErrNoContent
	}
	for _, c := range []struct{ field, value string }{
		{"style.background", p.Style.Background},
		{"style.title_color", p.Style.TitleColor},
		{"style.subtitle_color", p.Style.SubtitleColor},
		{"style.button_background", p.Style.ButtonBackground},
		{"style.button_title_color", p.Style.ButtonTitleColor},
	} {
		if c.value != "" && imagecell.ParseHex(c.value) == nil {
			return fmt.Errorf("%s must be a #rrggbb colour, got %q", c.field, c.value)
		}
	}
	for _, w := range []string{p.Style.TitleWeight, p.Style.SubtitleWeight, p.Style.ButtonWeight} {
		if _, err := ParseWeight(w); err != nil {
			return err
		}
	}
	for _, s := range p.ButtonRich {
		if _, err := ParseWeight(s.Weight); err != nil {
			return err
		}
	}
	return nil
}

// ToDetail resolves the preset into an overlay detail, loading the image if one is set.
func (p *Preset) ToDetail() (hoarding.Detail, error) {
	if err := p.Validate(); err != nil {
		return hoarding.Detail{}, err
	}

	d := hoarding.NewDetail(p.Title, hoarding.WithSubtitle(p.Subtitle))

	if p.ImagePath != "" {
		img, err := imagecell.Load(expandHome(p.ImagePath))
		if err != nil {
			return hoarding.Detail{}, fmt.Errorf("preset %s: %w", p.Name, err)
		}
		d.Image = img
	}

	var rich hoarding.RichText
	for _, s := range p.ButtonRich {
		w, _ := ParseWeight(s.Weight)
		rich = append(rich, hoarding.Span{
			Text:      s.Text,
			Font:      hoarding.Font{Size: hoarding.DefaultButtonFont.Size, Weight: w, Italic: s.Italic},
			Color:     lipgloss.Color(s.Color),
			Underline: s.Underline,
		})
	}
	d.Button = hoarding.ButtonFrom(p.ButtonTitle, rich)

	st := p.Style
	if st.Background != "" {
		d.BackgroundColor = lipgloss.Color(st.Background)
	}
	if st.TitleColor != "" {
		d.TitleColor = lipgloss.Color(st.TitleColor)
	}
	if st.SubtitleColor != "" {
		d.SubtitleColor = lipgloss.Color(st.SubtitleColor)
	}
	if st.ButtonBackground != "" {
		d.ButtonBackground = lipgloss.Color(st.ButtonBackground)
	}
	if st.ButtonTitleColor != "" {
		d.ButtonTitleColor = lipgloss.Color(st.ButtonTitleColor)
	}
	if w, _ := ParseWeight(st.TitleWeight); w != hoarding.WeightUnset {
		d.TitleFont.Weight = w
	}
	if w, _ := ParseWeight(st.SubtitleWeight); w != hoarding.WeightUnset {
		d.SubtitleFont.Weight = w
	}
	if w, _ := ParseWeight(st.ButtonWeight); w != hoarding.WeightUnset {
		d.ButtonFont.Weight = w
	}

	return d, nil
}

var weights = map[string]hoarding.Weight{
	"":         hoarding.WeightUnset,
	"light":    hoarding.WeightLight,
	"regular":  hoarding.WeightRegular,
	"medium":   hoarding.WeightMedium,
	"semibold": hoarding.WeightSemibold,
	"bold":     hoarding.WeightBold,
}

// ParseWeight parses a weight name. The empty string means unset.
func ParseWeight(s string) (hoarding.Weight, error) {
	w, ok := weights[strings.ToLower(s)]
	if !ok {
		return hoarding.WeightUnset, fmt.Errorf("invalid weight: %s", s)
	}
	return w, nil
}
