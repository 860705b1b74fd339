package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Preset names: bold cyan
	colorName = color.New(color.FgCyan, color.Bold)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Success: green
	colorSuccess = color.New(color.FgGreen)

	// Hints: yellow to make it pop
	colorHint = color.New(color.FgYellow)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termSize returns the terminal size, or 80x24 if detection fails.
func termSize() (int, int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return 80, 24 // sensible default
	}
	return width, height
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func formatName(s string) string {
	return colorName.Sprint(s)
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatSuccess(s string) string {
	return colorSuccess.Sprint(s)
}

func formatHint(s string) string {
	return colorHint.Sprint(s)
}

func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
