package preset

import (
	"errors"
	goimage "image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/hoarding/internal/hoarding"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		preset  Preset
		wantErr error
		anyErr  bool
	}{
		{name: "valid", preset: Preset{Name: "a", Title: "Oops"}},
		{name: "empty name", preset: Preset{Name: " ", Title: "Oops"}, wantErr: ErrEmptyName},
		{name: "nothing to show", preset: Preset{Name: "a", Title: "  "}, wantErr: ErrNoContent},
		{name: "button only", preset: Preset{Name: "a", ButtonTitle: "Retry"}},
		{name: "bad colour", preset: Preset{Name: "a", Title: "x", Style: StyleSpec{Background: "white"}}, anyErr: true},
		{name: "bad weight", preset: Preset{Name: "a", Title: "x", Style: StyleSpec{TitleWeight: "heavy"}}, anyErr: true},
		{name: "bad span weight", preset: Preset{Name: "a", Title: "x", ButtonRich: []SpanSpec{{Text: "x", Weight: "ultra"}}}, anyErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.preset.Validate()
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
			case tt.anyErr:
				if err == nil {
					t.Fatalf("expected an error")
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestToDetailDefaultsAndOverrides(t *testing.T) {
	p := Preset{
		Name:        "offline",
		Title:       "Offline",
		Subtitle:    "Reconnect",
		ButtonTitle: "Retry",
		Style: StyleSpec{
			Background:   "#101010",
			TitleWeight:  "light",
			ButtonWeight: "regular",
		},
	}

	d, err := p.ToDetail()
	if err != nil {
		t.Fatalf("ToDetail failed: %v", err)
	}
	if d.BackgroundColor != lipgloss.Color("#101010") {
		t.Fatalf("expected background override, got %q", d.BackgroundColor)
	}
	if d.TitleColor != hoarding.DefaultTitleColor {
		t.Fatalf("expected default title colour, got %q", d.TitleColor)
	}
	if d.TitleFont.Weight != hoarding.WeightLight {
		t.Fatalf("expected light title, got %v", d.TitleFont.Weight)
	}
	if d.ButtonFont.Weight != hoarding.WeightRegular {
		t.Fatalf("expected regular button font, got %v", d.ButtonFont.Weight)
	}
	if b, ok := d.Button.(hoarding.PlainButton); !ok || b.Title != "Retry" {
		t.Fatalf("expected plain Retry button, got %#v", d.Button)
	}
}

func TestToDetailRichWins(t *testing.T) {
	p := Preset{
		Name:        "both",
		Title:       "Error",
		ButtonTitle: "Retry",
		ButtonRich:  []SpanSpec{{Text: "Try ", Weight: "bold"}, {Text: "again", Color: "#ff0000"}},
	}

	d, err := p.ToDetail()
	if err != nil {
		t.Fatalf("ToDetail failed: %v", err)
	}
	rb, ok := d.Button.(hoarding.RichButton)
	if !ok {
		t.Fatalf("expected rich button, got %T", d.Button)
	}
	if rb.Title.String() != "Try again" {
		t.Fatalf("unexpected rich title %q", rb.Title.String())
	}
	if rb.Title[0].Font.Weight != hoarding.WeightBold {
		t.Fatalf("expected bold first span")
	}
}

func TestToDetailLoadsImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, goimage.NewRGBA(goimage.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	_ = f.Close()

	d, err := (&Preset{Name: "img", Title: "x", ImagePath: path}).ToDetail()
	if err != nil {
		t.Fatalf("ToDetail failed: %v", err)
	}
	if d.Image == nil {
		t.Fatalf("expected image to be loaded")
	}

	_, err = (&Preset{Name: "img", Title: "x", ImagePath: path + ".missing"}).ToDetail()
	if err == nil {
		t.Fatalf("expected error for missing image")
	}
}

func TestParseFileTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.toml")
	content := `
[[presets]]
name = "offline"
title = "Offline"
button_title = "Retry"

[presets.style]
background = "#000000"

[[presets]]
name = "empty"
title = "Nothing here"

[[presets.button_rich]]
text = "Add"
underline = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	presets, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if len(presets) != 2 {
		t.Fatalf("expected 2 presets, got %d", len(presets))
	}
	if presets[0].Style.Background != "#000000" {
		t.Fatalf("expected style to be parsed, got %+v", presets[0].Style)
	}
	if len(presets[1].ButtonRich) != 1 || !presets[1].ButtonRich[0].Underline {
		t.Fatalf("expected rich span, got %+v", presets[1].ButtonRich)
	}
}

func TestParseFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	content := `presets:
  - name: oops
    title: Oops
    subtitle: Something broke
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	presets, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if len(presets) != 1 || presets[0].Subtitle != "Something broke" {
		t.Fatalf("unexpected presets %+v", presets)
	}
}

func TestParseFileErrors(t *testing.T) {
	dir := t.TempDir()

	dup := filepath.Join(dir, "dup.yaml")
	_ = os.WriteFile(dup, []byte("presets:\n  - {name: a, title: A}\n  - {name: a, title: B}\n"), 0o644)
	if _, err := ParseFile(dup); err == nil {
		t.Fatalf("expected duplicate name error")
	}

	invalid := filepath.Join(dir, "invalid.toml")
	_ = os.WriteFile(invalid, []byte("[[presets]]\nname = \"\"\ntitle = \"x\"\n"), 0o644)
	if _, err := ParseFile(invalid); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}

	ext := filepath.Join(dir, "presets.json")
	_ = os.WriteFile(ext, []byte("{}"), 0o644)
	if _, err := ParseFile(ext); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.toml")
	if err := WriteFile(path, Builtin()); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	got, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if len(got) != len(Builtin()) {
		t.Fatalf("expected %d presets, got %d", len(Builtin()), len(got))
	}
}

func TestBuiltinAreValid(t *testing.T) {
	for _, p := range Builtin() {
		if err := p.Validate(); err != nil {
			t.Fatalf("builtin %s invalid: %v", p.Name, err)
		}
	}
}

func TestMergeStoredShadowsBuiltin(t *testing.T) {
	stored := []*Preset{{Name: "oops", Title: "Custom oops"}, {Name: "aaa", Title: "First"}}
	merged := Merge(Builtin(), stored)

	if merged[0].Name != "aaa" {
		t.Fatalf("expected sorted output, got %v", Names(merged))
	}
	p, ok := Lookup("oops", merged)
	if !ok || p.Title != "Custom oops" {
		t.Fatalf("expected stored preset to shadow builtin, got %+v", p)
	}
	if _, ok := Lookup("missing", merged); ok {
		t.Fatalf("expected missing preset lookup to fail")
	}
}

func TestSuggest(t *testing.T) {
	names := []string{"offline", "oops", "empty"}
	got := Suggest("ofl", names)
	if len(got) == 0 || got[0] != "offline" {
		t.Fatalf("expected offline suggestion, got %v", got)
	}
	if Suggest("", names) != nil {
		t.Fatalf("expected no suggestions for empty input")
	}
}
