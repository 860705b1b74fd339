package integration

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/hoarding/internal/db"
	"github.com/javiermolinar/hoarding/internal/hoarding"
	"github.com/javiermolinar/hoarding/internal/preset"
	"github.com/javiermolinar/hoarding/internal/surface"
)

// openRepo creates a fresh repository for each test with automatic cleanup.
func openRepo(t *testing.T) *db.SQLite {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	repo, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// writeFile writes content under a temp dir and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// writePNG writes a solid w x h image and returns its path.
func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "icon.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create png: %v", err)
	}
	defer func() { _ = f.Close() }()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return path
}

// loadStored imports path into repo and reads the named preset back.
func loadStored(t *testing.T, repo *db.SQLite, path, name string) preset.Preset {
	t.Helper()
	ctx := context.Background()

	presets, err := preset.ParseFile(path)
	if err != nil {
		t.Fatalf("failed to parse presets: %v", err)
	}
	for i := range presets {
		if err := repo.Save(ctx, &presets[i]); err != nil {
			t.Fatalf("failed to save preset: %v", err)
		}
	}

	got, err := repo.Get(ctx, name)
	if err != nil {
		t.Fatalf("failed to get preset: %v", err)
	}
	if got == nil {
		t.Fatalf("preset %s not found in database", name)
	}
	return *got
}

func TestYAMLPresetThroughStorageToScreen(t *testing.T) {
	repo := openRepo(t)
	path := writeFile(t, "presets.yaml", `
presets:
  - name: error
    title: Error
    subtitle: Something went wrong
    button_rich:
      - text: Try
        weight: bold
      - text: " again"
        underline: true
    style:
      background: "#202020"
      title_color: "#ffffff"
`)

	p := loadStored(t, repo, path, "error")
	detail, err := p.ToDetail()
	if err != nil {
		t.Fatalf("ToDetail failed: %v", err)
	}
	if _, ok := detail.Button.(hoarding.RichButton); !ok {
		t.Fatalf("expected rich button after storage round trip, got %T", detail.Button)
	}

	host := surface.New(60, 20)
	view := hoarding.New(host, hoarding.Compact)

	retries := 0
	view.Show(detail, func() { retries++ })

	screen := ansi.Strip(host.Compose(""))
	for _, want := range []string{"Error", "Something went wrong", "Try again"} {
		if !strings.Contains(screen, want) {
			t.Errorf("expected %q on screen:\n%s", want, screen)
		}
	}

	view.Tap()
	view.Tap()
	if retries != 2 {
		t.Errorf("expected 2 retries, got %d", retries)
	}

	view.Remove()
	if got := strings.TrimSpace(ansi.Strip(host.Compose(""))); got != "" {
		t.Errorf("expected empty screen after remove, got:\n%s", got)
	}
	view.Tap()
	if retries != 2 {
		t.Errorf("expected no retry after remove, got %d", retries)
	}
}

func TestTOMLPresetWithImage(t *testing.T) {
	repo := openRepo(t)
	imgPath := writePNG(t, 64, 64)
	path := writeFile(t, "presets.toml", `
[[presets]]
name = "gallery"
title = "No photos"
image = "`+imgPath+`"
button_title = "Import"
`)

	p := loadStored(t, repo, path, "gallery")
	if p.ImagePath != imgPath {
		t.Fatalf("ImagePath: got %q, want %q", p.ImagePath, imgPath)
	}

	detail, err := p.ToDetail()
	if err != nil {
		t.Fatalf("ToDetail failed: %v", err)
	}

	host := surface.New(80, 30)
	view := hoarding.New(host, hoarding.Regular)
	view.Show(detail, nil)

	elements := view.Elements()
	if len(elements) != 3 {
		t.Fatalf("expected image, title and button, got %+v", elements)
	}
	if elements[0].Kind != hoarding.ElementImage {
		t.Errorf("expected image first, got %v", elements[0].Kind)
	}

	screen := host.Compose("")
	if !strings.Contains(screen, "▄") {
		t.Error("expected half-block image cells on screen")
	}
	if !strings.Contains(ansi.Strip(screen), "Import") {
		t.Error("expected button title on screen")
	}
}

func TestOverlayCoversHostContent(t *testing.T) {
	host := surface.New(30, 8)
	base := strings.Repeat("host content here\n", 8)

	view := hoarding.New(host, hoarding.Compact)
	builtin, _ := preset.Lookup("oops", preset.Builtin())
	detail, err := builtin.ToDetail()
	if err != nil {
		t.Fatalf("ToDetail failed: %v", err)
	}

	view.Show(detail, nil)
	screen := ansi.Strip(host.Compose(base))
	if strings.Contains(screen, "host content") {
		t.Errorf("expected overlay to hide the host:\n%s", screen)
	}

	view.Remove()
	screen = ansi.Strip(host.Compose(base))
	if !strings.Contains(screen, "host content") {
		t.Errorf("expected host to show after remove:\n%s", screen)
	}
}
