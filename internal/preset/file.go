package preset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of a preset collection.
type File struct {
	Presets []Preset `toml:"presets" yaml:"presets"`
}

// ParseFile reads presets from a .toml, .yaml or .yml file and validates each one.
func ParseFile(path string) ([]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading preset file: %w", err)
	}

	var f File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing preset file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing preset file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported preset file extension %q", ext)
	}

	seen := make(map[string]bool, len(f.Presets))
	for i := range f.Presets {
		p := &f.Presets[i]
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("preset %d (%s): %w", i+1, p.Name, err)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate preset name: %s", p.Name)
		}
		seen[p.Name] = true
	}

	return f.Presets, nil
}

// WriteFile writes presets as TOML.
func WriteFile(path string, presets []Preset) error {
	data, err := toml.Marshal(File{Presets: presets})
	if err != nil {
		return fmt.Errorf("marshaling presets: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing preset file: %w", err)
	}
	return nil
}

// Builtin returns the presets available without any storage.
func Builtin() []Preset {
	return []Preset{
		{
			Name:  "oops",
			Title: "Oops",
		},
		{
			Name:        "offline",
			Title:       "You're offline",
			Subtitle:    "Check your connection and try again.",
			ButtonTitle: "Retry",
		},
		{
			Name:     "empty",
			Title:    "Nothing here yet",
			Subtitle: "Items you add will show up here.",
			ButtonRich: []SpanSpec{
				{Text: "+ ", Weight: "bold"},
				{Text: "Add item", Underline: true},
			},
		},
	}
}

// Lookup finds a preset by name among presets.
func Lookup(name string, presets []Preset) (Preset, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// Merge combines builtin and stored presets. Stored presets shadow builtins of
// the same name. The result is sorted by name.
func Merge(builtin []Preset, stored []*Preset) []Preset {
	byName := make(map[string]Preset, len(builtin)+len(stored))
	for _, p := range builtin {
		byName[p.Name] = p
	}
	for _, p := range stored {
		if p != nil {
			byName[p.Name] = *p
		}
	}
	out := make([]Preset, 0, len(byName))
	for _, p := range byName {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Suggest returns up to three names that fuzzily match name, best first.
func Suggest(name string, names []string) []string {
	if name == "" {
		return nil
	}
	matches := fuzzy.Find(name, names)
	out := make([]string, 0, 3)
	for _, m := range matches {
		out = append(out, m.Str)
		if len(out) == 3 {
			break
		}
	}
	return out
}

// Names returns the preset names in order.
func Names(presets []Preset) []string {
	names := make([]string, 0, len(presets))
	for _, p := range presets {
		names = append(names, p.Name)
	}
	return names
}

// expandHome expands a leading ~/ to the user's home directory.
func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
