// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/hoarding/internal/hoarding"
)

// Device values accepted in [ui] device.
const (
	DeviceAuto    = "auto"
	DeviceCompact = "compact"
	DeviceRegular = "regular"
)

// Config holds the application configuration.
type Config struct {
	UI      UIConfig      `toml:"ui"`
	Layout  LayoutConfig  `toml:"layout"`
	Storage StorageConfig `toml:"storage"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme         string `toml:"theme"`          // "mocha", "latte"
	Device        string `toml:"device"`         // "auto", "compact", "regular"
	DefaultPreset string `toml:"default_preset"` // preset shown by the demo on start
}

// LayoutConfig overrides individual overlay metrics. Unset fields keep the
// device class defaults.
type LayoutConfig struct {
	EdgeSpacing        *int     `toml:"edge_spacing,omitempty"`
	Spacing            *int     `toml:"spacing,omitempty"`
	ImageSizeRatio     *float64 `toml:"image_size_ratio,omitempty"`
	ButtonHeight       *int     `toml:"button_height,omitempty"`
	ButtonWidthRatio   *float64 `toml:"button_width_ratio,omitempty"`
	ButtonCornerRadius *int     `toml:"button_corner_radius,omitempty"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		UI: UIConfig{
			Theme:         "mocha",
			Device:        DeviceAuto,
			DefaultPreset: "offline",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "hoarding.db"
	}
	return filepath.Join(home, ".local", "share", "hoarding", "hoarding.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "hoarding", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HOARDING_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("HOARDING_UI_DEVICE"); v != "" {
		cfg.UI.Device = v
	}
	if v := os.Getenv("HOARDING_DEFAULT_PRESET"); v != "" {
		cfg.UI.DefaultPreset = v
	}
	if v := os.Getenv("HOARDING_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch strings.ToLower(c.UI.Device) {
	case DeviceAuto, DeviceCompact, DeviceRegular:
	default:
		return fmt.Errorf("invalid device: %s (want auto, compact or regular)", c.UI.Device)
	}

	l := c.Layout
	for _, v := range []struct {
		name string
		val  *int
	}{
		{"edge_spacing", l.EdgeSpacing},
		{"spacing", l.Spacing},
		{"button_corner_radius", l.ButtonCornerRadius},
	} {
		if v.val != nil && *v.val < 0 {
			return fmt.Errorf("%s must not be negative", v.name)
		}
	}
	if l.ButtonHeight != nil && *l.ButtonHeight < 1 {
		return errors.New("button_height must be at least 1")
	}
	for _, v := range []struct {
		name string
		val  *float64
	}{
		{"image_size_ratio", l.ImageSizeRatio},
		{"button_width_ratio", l.ButtonWidthRatio},
	} {
		if v.val != nil && (*v.val <= 0 || *v.val > 1) {
			return fmt.Errorf("%s must be in (0, 1]", v.name)
		}
	}

	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// DeviceClass resolves the configured device, using the terminal size for "auto".
func (c *Config) DeviceClass(width, height int) hoarding.DeviceClass {
	switch strings.ToLower(c.UI.Device) {
	case DeviceCompact:
		return hoarding.Compact
	case DeviceRegular:
		return hoarding.Regular
	default:
		return hoarding.ClassifySize(width, height)
	}
}

// Metrics returns the device class metrics with any configured overrides applied.
func (c *Config) Metrics(class hoarding.DeviceClass) hoarding.Metrics {
	m := hoarding.MetricsFor(class)
	l := c.Layout
	if l.EdgeSpacing != nil {
		m.EdgeSpacing = *l.EdgeSpacing
	}
	if l.Spacing != nil {
		m.Spacing = *l.Spacing
	}
	if l.ImageSizeRatio != nil {
		m.ImageSizeRatio = *l.ImageSizeRatio
	}
	if l.ButtonHeight != nil {
		m.ButtonHeight = *l.ButtonHeight
	}
	if l.ButtonWidthRatio != nil {
		m.ButtonWidthRatio = *l.ButtonWidthRatio
	}
	if l.ButtonCornerRadius != nil {
		m.ButtonCornerRadius = *l.ButtonCornerRadius
	}
	return m
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
