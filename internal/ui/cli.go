package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/hoarding/internal/config"
	"github.com/javiermolinar/hoarding/internal/db"
	"github.com/javiermolinar/hoarding/internal/preset"
	"github.com/javiermolinar/hoarding/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo     preset.Repository
	ownsRepo bool // repo was opened by the app and must be closed
	config   *config.Config
	root     *cobra.Command
	debug    bool   // Enable debug logging
	preset   string // Preset to show on start
	device   string // Device class override
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repository is opened lazily from the configured database path.
func NewApp(repo preset.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg}

	a.root = &cobra.Command{
		Use:   "hoarding",
		Short: "Full-screen placeholder overlays for terminal apps",
		Long: `Hoarding shows a full-screen placeholder over a host screen: an
optional image, a title, a subtitle and an optional action button.

Run without arguments to open the interactive demo.`,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.applyDevice(); err != nil {
				return err
			}
			var opts []tui.ModelOption
			if a.preset != "" {
				opts = append(opts, tui.WithInitialPreset(a.preset))
			}
			return tui.RunWithDebug(a.repo, a.config, a.debug, opts...)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (writes hoarding-debug.log)")
	a.root.Flags().StringVar(&a.preset, "preset", "", "Preset to show on start (default from config)")
	a.root.PersistentFlags().StringVar(&a.device, "device", "", "Device class: auto, compact or regular")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.renderCmd())
	a.root.AddCommand(a.presetCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hoarding %s (commit: %s)\n", Version, Commit)
		},
	}
}

// applyDevice validates and applies the --device flag to the config.
func (a *App) applyDevice() error {
	if a.device == "" {
		return nil
	}
	prev := a.config.UI.Device
	a.config.UI.Device = a.device
	if err := a.config.Validate(); err != nil {
		a.config.UI.Device = prev
		return err
	}
	return nil
}

// ensureRepo opens the configured database if no repository was injected.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	dbPath := a.config.Storage.DBPath
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	a.repo = repo
	a.ownsRepo = true
	return nil
}

// Close releases the repository if the app opened it.
func (a *App) Close() error {
	if a.ownsRepo && a.repo != nil {
		return a.repo.Close()
	}
	return nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
