package raster

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/fogleman/gg"

	"facewarp/internal/mesh"
)

// WireframeStyle controls the mesh overlay stroke.
type WireframeStyle struct {
	Color     color.Color
	LineWidth float64
}

// DefaultWireframeStyle is a translucent light gray hairline.
func DefaultWireframeStyle() WireframeStyle {
	return WireframeStyle{Color: color.NRGBA{0xC0, 0xC0, 0xC0, 0x70}, LineWidth: 1}
}

// DrawWireframe strokes every unique edge of table over the face. The
// surface clip and transform are ignored; landmarks map straight to
// surface pixels.
func DrawWireframe(s *Surface, table *mesh.Table, landmarks mesh.LandmarkSet, style WireframeStyle) {
	w, h := s.Size()
	dc := gg.NewContextForRGBA(s.Image())
	dc.SetColor(style.Color)
	dc.SetLineWidth(style.LineWidth)

	for _, e := range table.Edges() {
		if e.A >= len(landmarks) || e.B >= len(landmarks) || e.A < 0 || e.B < 0 {
			continue
		}
		a := landmarks.Canvas(e.A, w, h)
		b := landmarks.Canvas(e.B, w, h)
		dc.MoveTo(a.X, a.Y)
		dc.LineTo(b.X, b.Y)
	}
	dc.Stroke()
}

// ParseColor reads #RGB, #RRGGBB or #RRGGBBAA.
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("raster: bad color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("raster: bad color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
