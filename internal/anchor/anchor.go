// Package anchor draws a mask as one rigid image pinned to the eyes, with an
// optional jaw split that follows the mouth opening.
package anchor

import (
	"errors"
	"image"
	"math"

	"facewarp/internal/mathutil"
	"facewarp/internal/mesh"
	"facewarp/internal/raster"
)

// ErrNoAnchor reports a face or mask whose eye anchors cannot define a
// transform.
var ErrNoAnchor = errors.New("anchor: eye anchors unavailable")

// DefaultEyes are the eye centers of a typical portrait, normalized to the
// texture size.
var DefaultEyes = [2]mathutil.Vec2{{X: 0.35, Y: 0.40}, {X: 0.65, Y: 0.40}}

// Params tunes the renderer.
type Params struct {
	// Eyes are the texture's eye centers, normalized. Zero uses DefaultEyes.
	Eyes  [2]mathutil.Vec2
	Scale float64
	// Split in (0,1) cuts the texture at that height; the part below moves
	// down by the lip gap times MouthGain.
	Split     float64
	MouthGain float64
}

// Transform returns the similarity that maps the texture's eye anchors onto
// the face's eye centers, scaled by p.Scale about the eye midpoint.
func Transform(p Params, texW, texH int, landmarks mesh.LandmarkSet, w, h int) (mathutil.Mat3, error) {
	left, right, ok := landmarks.EyeCenters()
	if !ok {
		return mathutil.Mat3{}, ErrNoAnchor
	}
	eyes := p.Eyes
	if eyes == [2]mathutil.Vec2{} {
		eyes = DefaultEyes
	}
	scale := p.Scale
	if scale <= 0 {
		scale = 1
	}

	srcL := mathutil.Vec2{X: eyes[0].X * float64(texW), Y: eyes[0].Y * float64(texH)}
	srcR := mathutil.Vec2{X: eyes[1].X * float64(texW), Y: eyes[1].Y * float64(texH)}
	dstL := mathutil.Vec2{X: left.X * float64(w), Y: left.Y * float64(h)}
	dstR := mathutil.Vec2{X: right.X * float64(w), Y: right.Y * float64(h)}

	sv, dv := srcR.Sub(srcL), dstR.Sub(dstL)
	if sv.Len() < 1e-6 || dv.Len() < 1e-6 {
		return mathutil.Mat3{}, ErrNoAnchor
	}
	k := dv.Len() / sv.Len() * scale
	angle := math.Atan2(dv.Y, dv.X) - math.Atan2(sv.Y, sv.X)
	srcMid, dstMid := srcL.Lerp(srcR, 0.5), dstL.Lerp(dstR, 0.5)

	return mathutil.Chain(
		mathutil.Translate(dstMid.X, dstMid.Y),
		mathutil.Rotate(angle),
		mathutil.Mat3Diag(k, k),
		mathutil.Translate(-srcMid.X, -srcMid.Y),
	), nil
}

// MouthOffset returns the jaw displacement in surface pixels: the lip gap
// times gain, along the face's down axis.
func MouthOffset(landmarks mesh.LandmarkSet, w, h int, gain float64) mathutil.Vec2 {
	if gain == 0 || len(landmarks) <= mesh.LowerLipInner {
		return mathutil.Vec2{}
	}
	left, right, ok := landmarks.EyeCenters()
	if !ok {
		return mathutil.Vec2{}
	}
	eye := mathutil.Vec2{X: (right.X - left.X) * float64(w), Y: (right.Y - left.Y) * float64(h)}.Normalize()
	down := mathutil.Vec2{X: -eye.Y, Y: eye.X}

	gap := landmarks.Canvas(mesh.UpperLipInner, w, h).Dist(landmarks.Canvas(mesh.LowerLipInner, w, h))
	return down.Scale(gap * gain)
}

// Render draws tex onto the face. The surface state is unchanged on return.
func Render(s *raster.Surface, tex *image.NRGBA, p Params, landmarks mesh.LandmarkSet) error {
	w, h := s.Size()
	b := tex.Bounds()
	m, err := Transform(p, b.Dx(), b.Dy(), landmarks, w, h)
	if err != nil {
		return err
	}

	s.Push()
	defer s.Pop()

	if p.Split <= 0 || p.Split >= 1 {
		s.SetTransform(m.Affine())
		s.DrawImage(tex)
		return nil
	}

	cut := b.Min.Y + int(math.Round(p.Split*float64(b.Dy())))
	upper := tex.SubImage(image.Rect(b.Min.X, b.Min.Y, b.Max.X, cut))
	lower := tex.SubImage(image.Rect(b.Min.X, cut, b.Max.X, b.Max.Y))

	s.SetTransform(m.Affine())
	s.DrawImage(upper)

	off := MouthOffset(landmarks, w, h, p.MouthGain)
	s.SetTransform(mathutil.Mat3Mul(mathutil.Translate(off.X, off.Y), m).Affine())
	s.DrawImage(lower)
	return nil
}
