package ui

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/hoarding/internal/config"
	"github.com/javiermolinar/hoarding/internal/db"
	"github.com/javiermolinar/hoarding/internal/preset"
)

func newTestRepo(t *testing.T) *db.SQLite {
	t.Helper()
	repo, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("creating repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// run executes the CLI with args against repo and returns its output.
func run(t *testing.T, repo preset.Repository, args ...string) (string, error) {
	t.Helper()
	DisableColor()

	app := NewApp(repo, config.Default())
	var out bytes.Buffer
	app.root.SetOut(&out)
	app.root.SetErr(&out)
	app.root.SetArgs(args)
	err := app.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, newTestRepo(t), "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "hoarding dev") {
		t.Errorf("unexpected version output %q", out)
	}
}

func TestPresetListShowsBuiltins(t *testing.T) {
	out, err := run(t, newTestRepo(t), "preset", "list")
	if err != nil {
		t.Fatalf("preset list failed: %v", err)
	}
	for _, name := range []string{"empty", "offline", "oops"} {
		if !strings.Contains(out, name) {
			t.Errorf("expected %s in list, got:\n%s", name, out)
		}
	}
	if strings.Contains(out, "(stored)") {
		t.Errorf("expected only builtins, got:\n%s", out)
	}
}

func TestPresetAddShowRemove(t *testing.T) {
	repo := newTestRepo(t)

	out, err := run(t, repo, "preset", "add", "sync",
		"--title=Sync failed", "--subtitle=Try later", "--button=Retry",
		"--button-rich=bold", "--background=#101010")
	if err != nil {
		t.Fatalf("preset add failed: %v", err)
	}
	if !strings.Contains(out, "Saved preset sync") {
		t.Errorf("unexpected add output %q", out)
	}

	out, err = run(t, repo, "preset", "show", "sync")
	if err != nil {
		t.Fatalf("preset show failed: %v", err)
	}
	for _, want := range []string{"Sync failed", "Try later", `"Retry" [bold underline]`, "#101010"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in show output:\n%s", want, out)
		}
	}

	out, err = run(t, repo, "preset", "list")
	if err != nil {
		t.Fatalf("preset list failed: %v", err)
	}
	if !strings.Contains(out, "(stored)") {
		t.Errorf("expected stored preset in list:\n%s", out)
	}

	if _, err := run(t, repo, "preset", "remove", "sync"); err != nil {
		t.Fatalf("preset remove failed: %v", err)
	}
	_, err = run(t, repo, "preset", "remove", "sync")
	if !errors.Is(err, preset.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second remove, got %v", err)
	}
}

func TestPresetAddRejectsInvalid(t *testing.T) {
	repo := newTestRepo(t)

	if _, err := run(t, repo, "preset", "add", "blank"); !errors.Is(err, preset.ErrNoContent) {
		t.Errorf("expected ErrNoContent, got %v", err)
	}
	if _, err := run(t, repo, "preset", "add", "x", "--title=X", "--background=red"); err == nil {
		t.Error("expected invalid colour to fail")
	}
	if _, err := run(t, repo, "preset", "add", "x", "--title=X", "--button-rich=bold"); err == nil {
		t.Error("expected --button-rich without --button to fail")
	}
}

func TestPresetShowSuggests(t *testing.T) {
	_, err := run(t, newTestRepo(t), "preset", "show", "ofline")
	if !errors.Is(err, preset.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "did you mean offline") {
		t.Errorf("expected suggestion, got %v", err)
	}
}

func TestStoredPresetShadowsBuiltin(t *testing.T) {
	repo := newTestRepo(t)
	if err := repo.Save(context.Background(), &preset.Preset{Name: "oops", Title: "Well then"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	app := NewApp(repo, config.Default())
	p, err := app.lookupPreset(context.Background(), "oops")
	if err != nil {
		t.Fatalf("lookupPreset failed: %v", err)
	}
	if p.Title != "Well then" {
		t.Errorf("expected stored preset, got %+v", p)
	}
}

func TestRenderPreset(t *testing.T) {
	app := NewApp(newTestRepo(t), config.Default())
	p, _ := preset.Lookup("offline", preset.Builtin())

	out, err := app.renderPreset(p, 40, 12)
	if err != nil {
		t.Fatalf("renderPreset failed: %v", err)
	}

	lines := strings.Split(out, "\n")
	if len(lines) != 12 {
		t.Fatalf("expected 12 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 40 {
			t.Errorf("line %d width = %d, want 40", i, w)
		}
	}

	plain := ansi.Strip(out)
	for _, want := range []string{"You're offline", "Check your connection and try again.", "Retry"} {
		if !strings.Contains(plain, want) {
			t.Errorf("expected %q in render:\n%s", want, plain)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	out, err := run(t, newTestRepo(t), "render", "empty", "--width=50", "--height=14", "--color=never")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	plain := ansi.Strip(out)
	if !strings.Contains(plain, "Nothing here yet") || !strings.Contains(plain, "+ Add item") {
		t.Errorf("unexpected render output:\n%s", plain)
	}
}

func TestRenderRejectsBadFlags(t *testing.T) {
	repo := newTestRepo(t)

	if _, err := run(t, repo, "render", "oops", "--width=20", "--height=5", "--color=sometimes"); err == nil {
		t.Error("expected invalid color mode to fail")
	}
	if _, err := run(t, repo, "render", "oops", "--width=20", "--height=5", "--device=watch"); err == nil {
		t.Error("expected invalid device to fail")
	}
}

func TestImportPresets(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	path := filepath.Join(t.TempDir(), "presets.toml")
	content := `
[[presets]]
name = "maintenance"
title = "Down for maintenance"
subtitle = "Back soon"

[[presets]]
name = "no-results"
title = "No results"
button_title = "Clear filters"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing preset file: %v", err)
	}

	count, err := importPresets(ctx, repo, path)
	if err != nil {
		t.Fatalf("importPresets failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 imported presets, got %d", count)
	}

	got, err := repo.Get(ctx, "no-results")
	if err != nil || got == nil {
		t.Fatalf("expected imported preset, got %v, %v", got, err)
	}
	if got.ButtonTitle != "Clear filters" {
		t.Errorf("unexpected button title %q", got.ButtonTitle)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	source := newTestRepo(t)
	if err := source.Save(context.Background(), &preset.Preset{Name: "a", Title: "A", Subtitle: "sub"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.toml")
	out, err := run(t, source, "preset", "export", path, "--builtin")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(out, "Exported 4 presets") {
		t.Errorf("unexpected export output %q", out)
	}

	dest := newTestRepo(t)
	out, err = run(t, dest, "preset", "import", path)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if !strings.Contains(out, "Imported 4 presets") {
		t.Errorf("unexpected import output %q", out)
	}
}

func TestImportMissingFile(t *testing.T) {
	_, err := run(t, newTestRepo(t), "preset", "import", filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("expected missing file error, got %v", err)
	}
}

func TestPrintConfigShowsOverrides(t *testing.T) {
	cfg := config.Default()
	radius := 0
	cfg.Layout.ButtonCornerRadius = &radius

	var buf bytes.Buffer
	printConfig(&buf, cfg)

	out := buf.String()
	if !strings.Contains(out, "[layout]") || !strings.Contains(out, "button_corner_radius = 0") {
		t.Errorf("expected layout overrides:\n%s", out)
	}
	if !strings.Contains(out, "device               = auto") {
		t.Errorf("expected device line:\n%s", out)
	}
}

func TestPrintConfigOmitsEmptyLayout(t *testing.T) {
	var buf bytes.Buffer
	printConfig(&buf, config.Default())
	if strings.Contains(buf.String(), "[layout]") {
		t.Errorf("expected no layout section:\n%s", buf.String())
	}
}
