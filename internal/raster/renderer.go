package raster

import (
	"image"

	"facewarp/internal/mathutil"
	"facewarp/internal/mesh"
	"facewarp/internal/texture"
)

// FaceStats counts what happened to the triangles of one face in one frame.
type FaceStats struct {
	Painted    int
	Degenerate int
	// Skipped counts triangles naming a landmark outside the set or the
	// binding.
	Skipped int
}

// Add accumulates o into st.
func (st *FaceStats) Add(o FaceStats) {
	st.Painted += o.Painted
	st.Degenerate += o.Degenerate
	st.Skipped += o.Skipped
}

// RenderFace warps tex onto one face, triangle by triangle. Landmarks are
// normalized and scaled to the surface size. A triangle that cannot be
// solved is skipped alone; the rest of the face still renders.
func RenderFace(
	s *Surface,
	table *mesh.Table,
	landmarks mesh.LandmarkSet,
	binding *texture.Binding,
	tex image.Image,
	eps float64,
) FaceStats {
	var st FaceStats
	if binding == nil || tex == nil {
		return st
	}
	w, h := s.Size()

	table.Each(func(_ int, tri mesh.Triangle) {
		if !landmarks.Has(tri) {
			st.Skipped++
			return
		}
		src, ok := binding.Triangle(tri)
		if !ok {
			st.Skipped++
			return
		}
		dst := landmarks.Triangle(tri, w, h)

		xf, err := mathutil.SolveAffine(src, dst, eps)
		if err != nil {
			st.Degenerate++
			return
		}
		PaintTriangle(s, tex, xf, dst)
		st.Painted++
	})
	return st
}
