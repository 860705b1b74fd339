// Package surface provides a sized terminal region that composites layers
// over base content.
package surface

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Layer is anything that can paint itself over a surface of the given size.
type Layer interface {
	Render(width, height int) string
}

// Surface is a host region that owns an ordered list of attached layers.
type Surface struct {
	width  int
	height int
	layers []Layer
}

// New creates a surface with the given bounds.
func New(width, height int) *Surface {
	s := &Surface{}
	s.Resize(width, height)
	return s
}

// Size returns the current bounds.
func (s *Surface) Size() (int, int) {
	return s.width, s.height
}

// Resize updates the bounds. Negative values are clamped to zero.
func (s *Surface) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	s.width = width
	s.height = height
}

// Attach adds a layer on top. Attaching an already attached layer is a no-op.
func (s *Surface) Attach(l Layer) {
	if l == nil || s.indexOf(l) >= 0 {
		return
	}
	s.layers = append(s.layers, l)
}

// Detach removes a layer. It reports whether the layer was attached.
func (s *Surface) Detach(l Layer) bool {
	idx := s.indexOf(l)
	if idx < 0 {
		return false
	}
	s.layers = append(s.layers[:idx], s.layers[idx+1:]...)
	return true
}

// Attached reports whether l is currently attached.
func (s *Surface) Attached(l Layer) bool {
	return s.indexOf(l) >= 0
}

// Layers returns a copy of the attached layers, bottom first.
func (s *Surface) Layers() []Layer {
	out := make([]Layer, len(s.layers))
	copy(out, s.layers)
	return out
}

func (s *Surface) indexOf(l Layer) int {
	for i, existing := range s.layers {
		if existing == l {
			return i
		}
	}
	return -1
}

// Compose paints every attached layer over base, in attach order.
func (s *Surface) Compose(base string) string {
	if s.width <= 0 || s.height <= 0 {
		return ""
	}

	lines := normalize(base, s.width, s.height)
	for _, l := range s.layers {
		layerLines := strings.Split(l.Render(s.width, s.height), "\n")
		for row := 0; row < s.height && row < len(layerLines); row++ {
			lines[row] = paintLine(lines[row], layerLines[row], s.width)
		}
	}

	return strings.Join(lines, "\n")
}

// paintLine places top over the left part of base and keeps whatever of base
// lies beyond top's width.
func paintLine(base, top string, width int) string {
	topWidth := lipgloss.Width(top)
	if topWidth >= width {
		return ansi.Cut(top, 0, width)
	}
	if topWidth == 0 {
		return base
	}
	return top + ansi.ResetStyle + ansi.Cut(base, topWidth, width)
}

// normalize pads or trims base to exactly height lines of width cells.
func normalize(base string, width, height int) []string {
	var lines []string
	if base != "" {
		lines = strings.Split(base, "\n")
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}

	for i, line := range lines {
		lineWidth := lipgloss.Width(line)
		if lineWidth > width {
			lines[i] = ansi.Cut(line, 0, width)
			continue
		}
		if lineWidth < width {
			lines[i] = line + strings.Repeat(" ", width-lineWidth)
		}
	}

	return lines
}
