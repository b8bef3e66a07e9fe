package mathutil

import (
	"errors"
	"math"

	"golang.org/x/image/math/f64"
)

// DefaultDegenerateEpsilon is the |denom| threshold below which a source
// triangle is treated as having no area.
const DefaultDegenerateEpsilon = 0.001

// ErrDegenerate reports a source triangle whose vertices are coincident or
// collinear, so no unique affine map exists.
var ErrDegenerate = errors.New("mathutil: degenerate source triangle")

// Affine maps a source point (x, y) to a destination point (X, Y):
//
//	X = M11*x + M21*y + DX
//	Y = M12*x + M22*y + DY
//
// Field order follows the 2D canvas transform(a, b, c, d, e, f) call.
type Affine struct {
	M11, M12, M21, M22, DX, DY float64
}

// Identity returns the identity map.
func Identity() Affine {
	return Affine{M11: 1, M22: 1}
}

// Apply maps p through a.
func (a Affine) Apply(p Vec2) Vec2 {
	return Vec2{
		a.M11*p.X + a.M21*p.Y + a.DX,
		a.M12*p.X + a.M22*p.Y + a.DY,
	}
}

// Then returns the map that applies a first and b second.
func (a Affine) Then(b Affine) Affine {
	return Affine{
		M11: b.M11*a.M11 + b.M21*a.M12,
		M12: b.M12*a.M11 + b.M22*a.M12,
		M21: b.M11*a.M21 + b.M21*a.M22,
		M22: b.M12*a.M21 + b.M22*a.M22,
		DX:  b.M11*a.DX + b.M21*a.DY + b.DX,
		DY:  b.M12*a.DX + b.M22*a.DY + b.DY,
	}
}

// Aff3 returns a in the row-major layout used by golang.org/x/image/draw.
func (a Affine) Aff3() f64.Aff3 {
	return f64.Aff3{
		a.M11, a.M21, a.DX,
		a.M12, a.M22, a.DY,
	}
}

// IsFinite reports whether every coefficient is a finite number.
func (a Affine) IsFinite() bool {
	for _, v := range [6]float64{a.M11, a.M12, a.M21, a.M22, a.DX, a.DY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Denom returns the common denominator of the closed-form solve for the
// source triangle s. It is minus twice the signed area of s.
func Denom(s [3]Vec2) float64 {
	x0, y0 := s[0].X, s[0].Y
	x1, y1 := s[1].X, s[1].Y
	x2, y2 := s[2].X, s[2].Y
	return x0*(y2-y1) - x1*y2 + x2*y1 + (x1-x2)*y0
}

// SolveAffine returns the affine map sending src[i] to dst[i] for i = 0..2.
// It fails with ErrDegenerate when |Denom(src)| < eps.
//
// The coefficients are Cramer's rule over the 6×6 system, sharing Denom as
// the denominator. The map is exact at the three vertices, so a vertex
// shared by two triangles lands on the same destination point in both.
func SolveAffine(src, dst [3]Vec2, eps float64) (Affine, error) {
	denom := Denom(src)
	if math.IsNaN(denom) || math.IsInf(denom, 0) || math.Abs(denom) < eps {
		return Affine{}, ErrDegenerate
	}

	x0, y0 := src[0].X, src[0].Y
	x1, y1 := src[1].X, src[1].Y
	x2, y2 := src[2].X, src[2].Y
	X0, Y0 := dst[0].X, dst[0].Y
	X1, Y1 := dst[1].X, dst[1].Y
	X2, Y2 := dst[2].X, dst[2].Y

	a := Affine{
		M11: -(y0*(X2-X1) - y1*X2 + y2*X1 + (y1-y2)*X0) / denom,
		M12: (y1*Y2 + y0*(Y1-Y2) - y2*Y1 + (y2-y1)*Y0) / denom,
		M21: (x0*(X2-X1) - x1*X2 + x2*X1 + (x1-x2)*X0) / denom,
		M22: (x0*(Y2-Y1) - x1*Y2 + x2*Y1 + (x1-x2)*Y0) / denom,
		DX:  (x0*(y2*X1-y1*X2) + y0*(x1*X2-x2*X1) + (x2*y1-x1*y2)*X0) / denom,
		DY:  (x0*(y2*Y1-y1*Y2) + y0*(x1*Y2-x2*Y1) + (x2*y1-x1*y2)*Y0) / denom,
	}
	if !a.IsFinite() {
		return Affine{}, ErrDegenerate
	}
	return a, nil
}
