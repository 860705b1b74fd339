package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestNewPalette_OverlayFallbacks(t *testing.T) {
	base := &Theme{
		Bg:          "#101010",
		BgHighlight: "#202020",
		BgSelection: "#303030",
		Fg:          "#ffffff",
		FgMuted:     "#aaaaaa",
		Accent:      "#ff0000",
		Warning:     "#ff00ff",
	}

	palette := NewPalette(base)
	if palette.Overlay.Bg != base.BgHighlight {
		t.Fatalf("Overlay.Bg = %q, want %q", palette.Overlay.Bg, base.BgHighlight)
	}
	if palette.Overlay.Button != base.Accent {
		t.Fatalf("Overlay.Button = %q, want %q", palette.Overlay.Button, base.Accent)
	}
	if palette.Overlay.Title != base.Fg {
		t.Fatalf("Overlay.Title = %q, want %q", palette.Overlay.Title, base.Fg)
	}
	if palette.Accent != lipgloss.Color(base.Accent) {
		t.Fatalf("Accent = %q, want %q", palette.Accent, base.Accent)
	}
}

func TestNewPalette_ButtonTextContrast(t *testing.T) {
	tests := []struct {
		name   string
		button string
		want   string
	}{
		{name: "dark button takes white text", button: "#003366", want: "#ffffff"},
		{name: "light button takes black text", button: "#f9e2af", want: "#000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			palette := NewPalette(&Theme{Bg: "#000000", Fg: "#ffffff", ButtonBg: tt.button})
			if palette.Overlay.ButtonText != tt.want {
				t.Errorf("ButtonText = %q, want %q", palette.Overlay.ButtonText, tt.want)
			}
		})
	}
}

func TestNewPalette_AlternateRowShade(t *testing.T) {
	dark := NewPalette(&Theme{Bg: "#101010"})
	if relativeLuminance(string(dark.RowBgAlt)) <= relativeLuminance("#101010") {
		t.Fatalf("dark RowBgAlt = %q, want lighter than bg", dark.RowBgAlt)
	}

	light := NewPalette(&Theme{Bg: "#f5f5f5"})
	if relativeLuminance(string(light.RowBgAlt)) >= relativeLuminance("#f5f5f5") {
		t.Fatalf("light RowBgAlt = %q, want darker than bg", light.RowBgAlt)
	}
}

func TestNewPalette_NilUsesMocha(t *testing.T) {
	palette := NewPalette(nil)
	if palette.Bg != lipgloss.Color("#1e1e2e") {
		t.Fatalf("Bg = %q, want mocha base", palette.Bg)
	}
}

func TestChooseTextColorPrefersContrast(t *testing.T) {
	bg := "#f0f0f0"
	lightText := "#ffffff"
	darkText := "#111111"

	if got := chooseTextColor(bg, lightText, darkText); got != darkText {
		t.Fatalf("chooseTextColor(%q, %q, %q) = %q, want %q", bg, lightText, darkText, got, darkText)
	}
}
