package ui

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/hoarding/internal/hoarding"
	"github.com/javiermolinar/hoarding/internal/preset"
	"github.com/javiermolinar/hoarding/internal/surface"
)

func (a *App) renderCmd() *cobra.Command {
	var (
		width     int
		height    int
		copyPlain bool
		colorMode string
	)

	cmd := &cobra.Command{
		Use:   "render [preset]",
		Short: "Print an overlay to stdout",
		Long: `Render a preset over an empty host of the given size and print it.

The size defaults to the terminal size. Without a preset name the
configured default preset is used.`,
		Example: `  hoarding render offline
  hoarding render empty --width=60 --height=20 --device=regular
  hoarding render oops --copy`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.applyDevice(); err != nil {
				return err
			}
			if err := applyColorMode(colorMode); err != nil {
				return err
			}

			name := a.config.UI.DefaultPreset
			if len(args) == 1 {
				name = args[0]
			}

			p, err := a.lookupPreset(context.Background(), name)
			if err != nil {
				return err
			}

			tw, th := termSize()
			if width <= 0 {
				width = tw
			}
			if height <= 0 {
				height = th
			}

			out, err := a.renderPreset(p, width, height)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)

			if copyPlain {
				if err := clipboard.WriteAll(ansi.Strip(out)); err != nil {
					return fmt.Errorf("copying to clipboard: %w", err)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), formatMuted("Copied to clipboard."))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "Host width in cells (default: terminal width)")
	cmd.Flags().IntVar(&height, "height", 0, "Host height in cells (default: terminal height)")
	cmd.Flags().BoolVar(&copyPlain, "copy", false, "Copy the render without colors to the clipboard")
	cmd.Flags().StringVar(&colorMode, "color", "auto", "Color output: auto, always or never")

	return cmd
}

// renderPreset shows p on a fresh host of the given size and returns the
// composed screen.
func (a *App) renderPreset(p preset.Preset, width, height int) (string, error) {
	detail, err := p.ToDetail()
	if err != nil {
		return "", fmt.Errorf("preparing preset %q: %w", p.Name, err)
	}

	host := surface.New(width, height)
	class := a.config.DeviceClass(width, height)
	view := hoarding.New(host, class, hoarding.WithMetrics(a.config.Metrics(class)))
	view.Show(detail, nil)
	defer view.Remove()

	return host.Compose(""), nil
}

// applyColorMode sets the lipgloss color profile. "always" forces true color
// so renders keep their colors when piped.
func applyColorMode(mode string) error {
	switch mode {
	case "", "auto":
	case "always":
		lipgloss.SetColorProfile(termenv.TrueColor)
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
		DisableColor()
	default:
		return fmt.Errorf("invalid color mode %q (want auto, always or never)", mode)
	}
	return nil
}
