package raster

import (
	"image"

	"facewarp/internal/mathutil"
)

// SeamOverlap is how far, in surface pixels, each triangle's clip is grown
// past its edges. Neighbouring triangles then cover shared edges fully
// instead of leaving anti-aliased cracks. Anything above half a pixel
// diagonal (~0.71) closes the seams.
const SeamOverlap = 0.75

// PaintTriangle draws the part of tex that xf maps into dst. The clip is the
// filled destination triangle; tex is composited whole through xf, so only
// its image inside dst shows. The surface state is the same on return as on
// entry, including when the clip turns out empty.
func PaintTriangle(s *Surface, tex image.Image, xf mathutil.Affine, dst [3]mathutil.Vec2) {
	s.Push()
	defer s.Pop()

	if !s.ClipTriangle(dst, SeamOverlap) {
		return
	}
	s.ApplyTransform(xf)
	s.DrawImage(tex)
}
