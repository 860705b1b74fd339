package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/hoarding/internal/preset"
)

func (a *App) presetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage overlay presets",
		Long: `List, inspect and edit the presets the demo and render commands use.

Built-in presets are always available. Stored presets with the same
name take their place.`,
	}

	cmd.AddCommand(a.presetListCmd())
	cmd.AddCommand(a.presetShowCmd())
	cmd.AddCommand(a.presetAddCmd())
	cmd.AddCommand(a.presetRemoveCmd())
	cmd.AddCommand(a.presetImportCmd())
	cmd.AddCommand(a.presetExportCmd())

	return cmd
}

func (a *App) presetListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := context.Background()
			if err := a.ensureRepo(); err != nil {
				return err
			}
			stored, err := a.repo.List(ctx)
			if err != nil {
				return fmt.Errorf("listing presets: %w", err)
			}

			isStored := make(map[string]bool, len(stored))
			for _, p := range stored {
				isStored[p.Name] = true
			}

			out := cmd.OutOrStdout()
			for _, p := range preset.Merge(preset.Builtin(), stored) {
				source := "builtin"
				if isStored[p.Name] {
					source = "stored"
				}
				fmt.Fprintf(out, "  %s %s %s\n",
					formatName(fmt.Sprintf("%-14s", p.Name)),
					p.Title,
					formatMuted("("+source+")"),
				)
			}
			return nil
		},
	}
}

func (a *App) presetShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Show a preset's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.lookupPreset(context.Background(), args[0])
			if err != nil {
				return err
			}
			printPreset(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

func (a *App) presetAddCmd() *cobra.Command {
	var (
		p           preset.Preset
		buttonStyle string
	)

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add or replace a stored preset",
		Example: `  hoarding preset add sync-failed --title="Sync failed" --subtitle="We'll retry shortly" --button=Retry
  hoarding preset add quiet --title="All caught up" --background="#1e1e2e" --title-color="#cdd6f4"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			p.Name = args[0]
			p.ButtonRich = nil
			if buttonStyle != "" {
				if p.ButtonTitle == "" {
					return fmt.Errorf("--button-rich needs --button")
				}
				p.ButtonRich = []preset.SpanSpec{{Text: p.ButtonTitle, Weight: buttonStyle, Underline: true}}
			}
			if err := a.repo.Save(context.Background(), &p); err != nil {
				return fmt.Errorf("saving preset: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatSuccess("Saved preset"), formatName(p.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&p.Title, "title", "", "Title text")
	cmd.Flags().StringVar(&p.Subtitle, "subtitle", "", "Subtitle text")
	cmd.Flags().StringVar(&p.ImagePath, "image", "", "Image file (png, jpeg, gif or webp)")
	cmd.Flags().StringVar(&p.ButtonTitle, "button", "", "Button title (no button when empty)")
	cmd.Flags().StringVar(&buttonStyle, "button-rich", "", "Render the button title as underlined rich text with this weight")
	cmd.Flags().StringVar(&p.Style.Background, "background", "", "Background color (#rrggbb)")
	cmd.Flags().StringVar(&p.Style.TitleColor, "title-color", "", "Title color (#rrggbb)")
	cmd.Flags().StringVar(&p.Style.SubtitleColor, "subtitle-color", "", "Subtitle color (#rrggbb)")
	cmd.Flags().StringVar(&p.Style.ButtonBackground, "button-background", "", "Button background color (#rrggbb)")
	cmd.Flags().StringVar(&p.Style.ButtonTitleColor, "button-title-color", "", "Button title color (#rrggbb)")

	return cmd
}

func (a *App) presetRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove [name]",
		Aliases: []string{"rm"},
		Short:   "Remove a stored preset",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if err := a.ensureRepo(); err != nil {
				return err
			}
			name := args[0]
			if err := a.repo.Delete(ctx, name); err != nil {
				if errors.Is(err, preset.ErrNotFound) {
					return a.notFound(ctx, name)
				}
				return fmt.Errorf("removing preset: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatSuccess("Removed preset"), formatName(name))
			return nil
		},
	}
}

// lookupPreset resolves a stored preset first, then a builtin.
func (a *App) lookupPreset(ctx context.Context, name string) (preset.Preset, error) {
	if name == "" {
		return preset.Preset{}, preset.ErrEmptyName
	}
	if err := a.ensureRepo(); err != nil {
		return preset.Preset{}, err
	}

	stored, err := a.repo.Get(ctx, name)
	if err != nil {
		return preset.Preset{}, fmt.Errorf("loading preset: %w", err)
	}
	if stored != nil {
		return *stored, nil
	}
	if p, ok := preset.Lookup(name, preset.Builtin()); ok {
		return p, nil
	}
	return preset.Preset{}, a.notFound(ctx, name)
}

// notFound wraps ErrNotFound with a "did you mean" hint when one exists.
func (a *App) notFound(ctx context.Context, name string) error {
	stored, err := a.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("%w: %q", preset.ErrNotFound, name)
	}
	names := preset.Names(preset.Merge(preset.Builtin(), stored))
	if hints := preset.Suggest(name, names); len(hints) > 0 {
		return fmt.Errorf("%w: %q (did you mean %s?)", preset.ErrNotFound, name, formatHint(strings.Join(hints, ", ")))
	}
	return fmt.Errorf("%w: %q", preset.ErrNotFound, name)
}

func printPreset(w io.Writer, p preset.Preset) {
	fmt.Fprintln(w, formatHeader(p.Name))
	field := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(w, "  %-18s %s\n", label, value)
	}
	field("title", p.Title)
	field("subtitle", p.Subtitle)
	field("image", p.ImagePath)
	field("button", p.ButtonTitle)
	if len(p.ButtonRich) > 0 {
		var parts []string
		for _, s := range p.ButtonRich {
			attrs := []string{}
			if s.Weight != "" {
				attrs = append(attrs, s.Weight)
			}
			if s.Italic {
				attrs = append(attrs, "italic")
			}
			if s.Underline {
				attrs = append(attrs, "underline")
			}
			if s.Color != "" {
				attrs = append(attrs, s.Color)
			}
			part := fmt.Sprintf("%q", s.Text)
			if len(attrs) > 0 {
				part += formatMuted(" [" + strings.Join(attrs, " ") + "]")
			}
			parts = append(parts, part)
		}
		field("button (rich)", strings.Join(parts, " "))
	}
	field("background", p.Style.Background)
	field("title_color", p.Style.TitleColor)
	field("title_weight", p.Style.TitleWeight)
	field("subtitle_color", p.Style.SubtitleColor)
	field("subtitle_weight", p.Style.SubtitleWeight)
	field("button_background", p.Style.ButtonBackground)
	field("button_title_color", p.Style.ButtonTitleColor)
	field("button_weight", p.Style.ButtonWeight)
}
