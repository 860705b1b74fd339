package hoarding

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/hoarding/internal/imagecell"
)

// ElementKind identifies a stack child.
type ElementKind int

const (
	ElementImage ElementKind = iota
	ElementTitle
	ElementSubtitle
	ElementButton
)

func (k ElementKind) String() string {
	switch k {
	case ElementImage:
		return "image"
	case ElementTitle:
		return "title"
	case ElementSubtitle:
		return "subtitle"
	case ElementButton:
		return "button"
	default:
		return fmt.Sprintf("ElementKind(%d)", int(k))
	}
}

// Element describes one stack child. Text is empty for images.
type Element struct {
	Kind ElementKind
	Text string
}

type element interface {
	kind() ElementKind
	text() string
	render(c layoutContext) []string
	detach()
}

type layoutContext struct {
	hostW   int
	hostH   int
	stackW  int
	metrics Metrics
	detail  Detail
}

type imageElement struct {
	img image.Image
}

func (e *imageElement) kind() ElementKind { return ElementImage }
func (e *imageElement) text() string      { return "" }
func (e *imageElement) detach()           { e.img = nil }

// render draws a square of side ImageSizeRatio x host height. A cell is about
// twice as tall as it is wide, so the square is side rows by 2*side columns.
func (e *imageElement) render(c layoutContext) []string {
	side := int(math.Round(c.metrics.ImageSizeRatio * float64(c.hostH)))
	if side < 1 {
		side = 1
	}
	cols := side * 2
	if cols > c.stackW {
		side = c.stackW / 2
		if side < 1 {
			side = 1
		}
		cols = min(side*2, c.stackW)
	}
	bg := imagecell.ParseHex(string(c.detail.BackgroundColor))
	return imagecell.RenderFit(e.img, cols, side, bg)
}

type labelElement struct {
	elementKind ElementKind
	label       string
	font        Font
	color       lipgloss.Color
}

func (e *labelElement) kind() ElementKind { return e.elementKind }
func (e *labelElement) text() string      { return e.label }
func (e *labelElement) detach()           {}

func (e *labelElement) render(c layoutContext) []string {
	style := e.font.apply(lipgloss.NewStyle()).
		Foreground(e.color).
		Background(c.detail.BackgroundColor).
		Width(c.stackW).
		Align(lipgloss.Center)
	return strings.Split(style.Render(e.label), "\n")
}

type buttonElement struct {
	owner   *View
	content Button
}

func (e *buttonElement) kind() ElementKind { return ElementButton }
func (e *buttonElement) text() string      { return e.content.buttonTitle() }

// detach unhooks the button from its view so a stale reference cannot fire.
func (e *buttonElement) detach() { e.owner = nil }

func (e *buttonElement) press(source string) {
	if e.owner == nil {
		return
	}
	e.owner.handleTap(source)
}

func (e *buttonElement) render(c layoutContext) []string {
	d := c.detail
	w := int(math.Round(c.metrics.ButtonWidthRatio * float64(c.hostW)))
	w = max(w, 3)
	w = min(w, c.stackW)
	h := max(c.metrics.ButtonHeight, 1)

	bordered := w >= 3 && h >= 3
	innerW, innerH := w, h
	if bordered {
		innerW, innerH = w-2, h-2
	}

	style := lipgloss.NewStyle().
		Background(d.ButtonBackground).
		Width(innerW).
		Height(innerH).
		Align(lipgloss.Center, lipgloss.Center)

	var content string
	switch b := e.content.(type) {
	case RichButton:
		content = ansi.Truncate(b.Title.render(d.ButtonBackground), innerW, "…")
	default:
		style = d.ButtonFont.apply(style).Foreground(d.ButtonTitleColor)
		content = runewidth.Truncate(b.buttonTitle(), innerW, "…")
	}

	if bordered {
		border := lipgloss.NormalBorder()
		if c.metrics.ButtonCornerRadius > 0 {
			border = lipgloss.RoundedBorder()
		}
		style = style.Border(border).
			BorderForeground(d.ButtonBackground).
			BorderBackground(d.BackgroundColor)
	}

	return strings.Split(style.Render(content), "\n")
}

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return r.w > 0 && r.h > 0 && x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

type stackLayout struct {
	lines  []string
	button rect
}

func (l stackLayout) String() string {
	return strings.Join(l.lines, "\n")
}

// layout places the stack inside a width x height host: horizontally inset by
// EdgeSpacing, centred vertically, and never taller than the host minus
// 2*EdgeSpacing. Rows that do not fit are clipped from the bottom.
func (v *View) layout(width, height int) stackLayout {
	if width <= 0 || height <= 0 {
		return stackLayout{}
	}

	m := v.metrics
	bg := lipgloss.NewStyle().Background(v.detail.BackgroundColor)

	edge := m.EdgeSpacing
	stackW := width - 2*edge
	if stackW < 1 {
		edge, stackW = 0, width
	}
	vEdge := m.EdgeSpacing
	if 2*vEdge >= height {
		vEdge = 0
	}
	maxH := height - 2*vEdge

	c := layoutContext{
		hostW:   width,
		hostH:   height,
		stackW:  stackW,
		metrics: m,
		detail:  v.detail,
	}

	blank := fill(bg, stackW)
	var rows []string
	var btn rect
	for i, child := range v.children {
		if i > 0 {
			for s := 0; s < m.Spacing; s++ {
				rows = append(rows, blank)
			}
		}
		lines := child.render(c)
		if b, ok := child.(*buttonElement); ok && b == v.button && len(lines) > 0 {
			bw := lipgloss.Width(lines[0])
			btn = rect{x: edge + (stackW-bw)/2, y: len(rows), w: bw, h: len(lines)}
		}
		for _, line := range lines {
			rows = append(rows, center(line, stackW, bg))
		}
	}

	if len(rows) > maxH {
		rows = rows[:maxH]
	}
	top := (height - len(rows)) / 2

	if btn.h > 0 {
		visible := min(btn.h, len(rows)-btn.y)
		if visible <= 0 {
			btn = rect{}
		} else {
			btn.h = visible
			btn.y += top
		}
	}

	left := fill(bg, edge)
	right := fill(bg, width-edge-stackW)
	empty := fill(bg, width)

	lines := make([]string, height)
	for r := range lines {
		if r >= top && r < top+len(rows) {
			lines[r] = left + rows[r-top] + right
			continue
		}
		lines[r] = empty
	}

	return stackLayout{lines: lines, button: btn}
}

func fill(bg lipgloss.Style, n int) string {
	if n <= 0 {
		return ""
	}
	return bg.Render(strings.Repeat(" ", n))
}

func center(line string, width int, bg lipgloss.Style) string {
	lw := lipgloss.Width(line)
	if lw >= width {
		return ansi.Truncate(line, width, "")
	}
	pad := width - lw
	return fill(bg, pad/2) + line + fill(bg, pad-pad/2)
}
