package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/hoarding/internal/preset"
)

func (a *App) presetImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import presets from a TOML or YAML file",
		Long: `Import every preset in a file into the database. Presets with an
existing name are replaced.

Example:
  hoarding preset import ~/presets.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			sourcePath, err := resolvePath(args[0])
			if err != nil {
				return err
			}

			info, err := os.Stat(sourcePath)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("preset file does not exist: %s", sourcePath)
				}
				return fmt.Errorf("checking preset file: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("preset file path is a directory: %s", sourcePath)
			}

			count, err := importPresets(context.Background(), a.repo, sourcePath)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d presets from %s\n", count, sourcePath)
			return nil
		},
	}

	return cmd
}

func (a *App) presetExportCmd() *cobra.Command {
	var withBuiltin bool

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export stored presets to a TOML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			destPath, err := resolvePath(args[0])
			if err != nil {
				return err
			}

			stored, err := a.repo.List(context.Background())
			if err != nil {
				return fmt.Errorf("listing presets: %w", err)
			}

			var builtin []preset.Preset
			if withBuiltin {
				builtin = preset.Builtin()
			}
			presets := preset.Merge(builtin, stored)
			if err := preset.WriteFile(destPath, presets); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d presets to %s\n", len(presets), destPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&withBuiltin, "builtin", false, "Include built-in presets")
	return cmd
}

func importPresets(ctx context.Context, dest preset.Repository, sourcePath string) (int, error) {
	presets, err := preset.ParseFile(sourcePath)
	if err != nil {
		return 0, err
	}

	imported := 0
	for i := range presets {
		p := &presets[i]
		if err := dest.Save(ctx, p); err != nil {
			return imported, fmt.Errorf("importing preset %q: %w", p.Name, err)
		}
		imported++
	}

	return imported, nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
