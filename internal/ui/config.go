package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/hoarding/internal/config"
	"github.com/javiermolinar/hoarding/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  hoarding config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(os.Stdout, cfg)

	// Ask if user wants to edit
	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	// Interactive editing
	reader := bufio.NewReader(os.Stdin)

	cfg.UI.Theme = promptTheme(reader, cfg.UI.Theme)
	cfg.UI.Device = promptDevice(reader, cfg.UI.Device)
	cfg.UI.DefaultPreset = promptValue(reader, "Default preset", cfg.UI.DefaultPreset)
	cfg.Storage.DBPath = promptValue(reader, "Database path", cfg.Storage.DBPath)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Save
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved!")
	return nil
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintln(w, "──────────────────────")
	fmt.Fprintln(w, "[ui]")
	fmt.Fprintf(w, "  theme                = %s\n", cfg.UI.Theme)
	fmt.Fprintf(w, "  device               = %s\n", cfg.UI.Device)
	fmt.Fprintf(w, "  default_preset       = %s\n", cfg.UI.DefaultPreset)

	l := cfg.Layout
	var overrides []string
	if l.EdgeSpacing != nil {
		overrides = append(overrides, fmt.Sprintf("  edge_spacing         = %d", *l.EdgeSpacing))
	}
	if l.Spacing != nil {
		overrides = append(overrides, fmt.Sprintf("  spacing              = %d", *l.Spacing))
	}
	if l.ImageSizeRatio != nil {
		overrides = append(overrides, fmt.Sprintf("  image_size_ratio     = %g", *l.ImageSizeRatio))
	}
	if l.ButtonHeight != nil {
		overrides = append(overrides, fmt.Sprintf("  button_height        = %d", *l.ButtonHeight))
	}
	if l.ButtonWidthRatio != nil {
		overrides = append(overrides, fmt.Sprintf("  button_width_ratio   = %g", *l.ButtonWidthRatio))
	}
	if l.ButtonCornerRadius != nil {
		overrides = append(overrides, fmt.Sprintf("  button_corner_radius = %d", *l.ButtonCornerRadius))
	}
	if len(overrides) > 0 {
		fmt.Fprintln(w, "\n[layout]")
		fmt.Fprintln(w, strings.Join(overrides, "\n"))
	}

	fmt.Fprintln(w, "\n[storage]")
	fmt.Fprintf(w, "  db_path              = %s\n", cfg.Storage.DBPath)
}

func promptYesNo(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Printf("  %s: ", label)
	} else {
		fmt.Printf("  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptTheme(reader *bufio.Reader, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Printf("  Invalid theme %q. Available: %s\n", value, options)
	}
}

func promptDevice(reader *bufio.Reader, current string) string {
	options := []string{config.DeviceAuto, config.DeviceCompact, config.DeviceRegular}
	label := fmt.Sprintf("Device class (%s)", strings.Join(options, ", "))
	for {
		value := strings.ToLower(promptValue(reader, label, current))
		for _, o := range options {
			if value == o {
				return value
			}
		}
		fmt.Printf("  Invalid device %q. Available: %s\n", value, strings.Join(options, ", "))
	}
}
