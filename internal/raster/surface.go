package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"facewarp/internal/mathutil"
)

// Surface is the composition target. It keeps a save/restore stack of draw
// state: the current transform and the clip region.
type Surface struct {
	img     *image.RGBA
	scratch *image.RGBA
	interp  draw.Interpolator

	cur   state
	stack []state
}

type state struct {
	xf mathutil.Affine
	// clip is nil while unclipped; otherwise it covers clipRect exactly.
	clip     *image.Alpha
	clipRect image.Rectangle
}

// NewSurface allocates a transparent w×h surface.
func NewSurface(w, h int, interp draw.Interpolator) *Surface {
	if interp == nil {
		interp = draw.BiLinear
	}
	r := image.Rect(0, 0, w, h)
	return &Surface{
		img:     image.NewRGBA(r),
		scratch: image.NewRGBA(r),
		interp:  interp,
		cur:     state{xf: mathutil.Identity(), clipRect: r},
	}
}

// Interpolator returns the resampler for a configuration name.
func Interpolator(name string) (draw.Interpolator, error) {
	switch name {
	case "nearest":
		return draw.NearestNeighbor, nil
	case "approx-bilinear":
		return draw.ApproxBiLinear, nil
	case "", "bilinear":
		return draw.BiLinear, nil
	case "catmull-rom":
		return draw.CatmullRom, nil
	}
	return nil, fmt.Errorf("raster: unknown interpolation %q", name)
}

// Image returns the backing image. It is overwritten by later draws.
func (s *Surface) Image() *image.RGBA { return s.img }

// Bounds returns the surface rectangle.
func (s *Surface) Bounds() image.Rectangle { return s.img.Rect }

// Size returns the surface width and height.
func (s *Surface) Size() (int, int) { return s.img.Rect.Dx(), s.img.Rect.Dy() }

// Depth returns the number of saved states.
func (s *Surface) Depth() int { return len(s.stack) }

// Push saves the current transform and clip.
func (s *Surface) Push() {
	s.stack = append(s.stack, s.cur)
}

// Pop restores the most recently pushed state. Popping an empty stack is a
// no-op.
func (s *Surface) Pop() {
	n := len(s.stack)
	if n == 0 {
		return
	}
	s.cur = s.stack[n-1]
	s.stack = s.stack[:n-1]
}

// Transform returns the current transform.
func (s *Surface) Transform() mathutil.Affine { return s.cur.xf }

// SetTransform replaces the current transform.
func (s *Surface) SetTransform(a mathutil.Affine) { s.cur.xf = a }

// ApplyTransform composes a onto the current transform: points are mapped
// by a first, then by the previous transform.
func (s *Surface) ApplyTransform(a mathutil.Affine) { s.cur.xf = a.Then(s.cur.xf) }

// Clipped reports whether a clip is active.
func (s *Surface) Clipped() bool { return s.cur.clip != nil }

// Clear fills the whole surface with c, ignoring clip and transform.
func (s *Surface) Clear(c color.Color) {
	draw.Draw(s.img, s.img.Rect, image.NewUniform(c), image.Point{}, draw.Src)
}

// DrawBackground scales bg to cover the surface, ignoring clip and
// transform. A nil bg leaves the surface unchanged.
func (s *Surface) DrawBackground(bg image.Image) {
	if bg == nil || bg.Bounds().Empty() {
		return
	}
	draw.ApproxBiLinear.Scale(s.img, s.img.Rect, bg, bg.Bounds(), draw.Over, nil)
}

// ClipTriangle intersects the clip with the filled triangle tri, given in
// current user space and grown outward by overlap pixels. It returns false
// when the resulting clip is empty.
func (s *Surface) ClipTriangle(tri [3]mathutil.Vec2, overlap float64) bool {
	for i := range tri {
		tri[i] = s.cur.xf.Apply(tri[i])
	}
	if overlap > 0 {
		tri = inflate(tri, overlap)
	}

	lo := mathutil.Vec2{
		X: mathutil.Min3(tri[0].X, tri[1].X, tri[2].X),
		Y: mathutil.Min3(tri[0].Y, tri[1].Y, tri[2].Y),
	}
	hi := mathutil.Vec2{
		X: mathutil.Max3(tri[0].X, tri[1].X, tri[2].X),
		Y: mathutil.Max3(tri[0].Y, tri[1].Y, tri[2].Y),
	}
	if !finite(lo) || !finite(hi) {
		s.setEmptyClip()
		return false
	}
	bbox := image.Rect(
		int(math.Floor(lo.X)), int(math.Floor(lo.Y)),
		int(math.Ceil(hi.X)), int(math.Ceil(hi.Y)),
	).Intersect(s.cur.clipRect)
	if bbox.Empty() {
		s.setEmptyClip()
		return false
	}

	z := vector.NewRasterizer(bbox.Dx(), bbox.Dy())
	ox, oy := float64(bbox.Min.X), float64(bbox.Min.Y)
	z.MoveTo(float32(tri[0].X-ox), float32(tri[0].Y-oy))
	z.LineTo(float32(tri[1].X-ox), float32(tri[1].Y-oy))
	z.LineTo(float32(tri[2].X-ox), float32(tri[2].Y-oy))
	z.ClosePath()

	mask := image.NewAlpha(bbox)
	z.Draw(mask, bbox, image.Opaque, image.Point{})

	if prev := s.cur.clip; prev != nil {
		for y := bbox.Min.Y; y < bbox.Max.Y; y++ {
			for x := bbox.Min.X; x < bbox.Max.X; x++ {
				i := mask.PixOffset(x, y)
				mask.Pix[i] = uint8(uint16(mask.Pix[i]) * uint16(prev.AlphaAt(x, y).A) / 255)
			}
		}
	}
	s.cur.clip = mask
	s.cur.clipRect = bbox
	return true
}

func (s *Surface) setEmptyClip() {
	s.cur.clipRect = image.Rectangle{}
	s.cur.clip = image.NewAlpha(image.Rectangle{})
}

// DrawImage composites src (its full bounds) through the current transform
// and clip with source-over.
func (s *Surface) DrawImage(src image.Image) {
	r := s.cur.clipRect
	if r.Empty() || src == nil || src.Bounds().Empty() {
		return
	}
	if !s.cur.xf.IsFinite() {
		return
	}
	scratch := s.scratch.SubImage(r).(*image.RGBA)
	draw.Draw(scratch, r, image.Transparent, image.Point{}, draw.Src)
	s.interp.Transform(scratch, s.cur.xf.Aff3(), src, src.Bounds(), draw.Src, nil)

	if s.cur.clip == nil {
		draw.Draw(s.img, r, scratch, r.Min, draw.Over)
		return
	}
	draw.DrawMask(s.img, r, scratch, r.Min, s.cur.clip, r.Min, draw.Over)
}

// inflate moves every edge of tri outward by d, limiting how far a sharp
// vertex may travel.
func inflate(tri [3]mathutil.Vec2, d float64) [3]mathutil.Vec2 {
	const miterLimit = 3.0
	var out [3]mathutil.Vec2
	for i := range tri {
		v := tri[i]
		u := tri[(i+1)%3].Sub(v).Normalize()
		w := tri[(i+2)%3].Sub(v).Normalize()
		bis := u.Add(w).Scale(-1)
		if bis.Len() < 1e-9 {
			out[i] = v
			continue
		}
		sinHalf := math.Sqrt(math.Max(0, (1-u.Dot(w))/2))
		dist := miterLimit * d
		if sinHalf > 1.0/miterLimit {
			dist = d / sinHalf
		}
		out[i] = v.Add(bis.Normalize().Scale(dist))
	}
	return out
}

func finite(v mathutil.Vec2) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
