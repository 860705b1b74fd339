// Package imagecell renders raster images as terminal cells using half blocks.
package imagecell

import (
	"fmt"
	goimage "image"
	"image/color"
	"os"
	"strings"

	// Register decoders for standard formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Load decodes an image file in any registered format.
func Load(path string) (goimage.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := goimage.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding image %s: %w", path, err)
	}
	return img, nil
}

// Fit returns the largest w, h that fits inside maxW x maxH while keeping the
// srcW:srcH aspect ratio. Both results are at least 1 when the inputs are positive.
func Fit(srcW, srcH, maxW, maxH int) (int, int) {
	if srcW <= 0 || srcH <= 0 || maxW <= 0 || maxH <= 0 {
		return 0, 0
	}
	w := maxW
	h := srcH * maxW / srcW
	if h > maxH {
		h = maxH
		w = srcW * maxH / srcH
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// RenderFit renders img aspect-fit into a box of cols x rows cells. Each cell
// holds one pixel column and two pixel rows, so the pixel box is cols x 2*rows.
// Letterboxed areas use bg. The output always has exactly rows lines of cols cells.
func RenderFit(img goimage.Image, cols, rows int, bg color.Color) []string {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	if bg == nil {
		bg = color.White
	}

	boxW, boxH := cols, rows*2
	canvas := goimage.NewRGBA(goimage.Rect(0, 0, boxW, boxH))
	draw.Draw(canvas, canvas.Bounds(), goimage.NewUniform(bg), goimage.Point{}, draw.Src)

	if img != nil {
		b := img.Bounds()
		fitW, fitH := Fit(b.Dx(), b.Dy(), boxW, boxH)
		if fitW > 0 && fitH > 0 {
			left := (boxW - fitW) / 2
			top := (boxH - fitH) / 2
			dst := goimage.Rect(left, top, left+fitW, top+fitH)
			draw.CatmullRom.Scale(canvas, dst, img, b, draw.Over, nil)
		}
	}

	lines := make([]string, 0, rows)
	for y := 0; y < boxH; y += 2 {
		var sb strings.Builder
		for x := 0; x < boxW; x++ {
			topR, topG, topB := rgbAt(canvas, x, y)
			botR, botG, botB := rgbAt(canvas, x, y+1)
			fmt.Fprintf(&sb, "\x1b[48;2;%d;%d;%dm\x1b[38;2;%d;%d;%dm▄",
				topR, topG, topB, botR, botG, botB)
		}
		sb.WriteString("\x1b[0m")
		lines = append(lines, sb.String())
	}
	return lines
}

// ParseHex parses a #rrggbb colour. Anything else yields nil.
func ParseHex(hex string) color.Color {
	if len(hex) != 7 || hex[0] != '#' {
		return nil
	}
	var rgb [3]uint8
	for i := range rgb {
		hi, ok1 := hexDigit(hex[1+i*2])
		lo, ok2 := hexDigit(hex[2+i*2])
		if !ok1 || !ok2 {
			return nil
		}
		rgb[i] = hi<<4 | lo
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xff}
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func rgbAt(img goimage.Image, x, y int) (uint8, uint8, uint8) {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}
