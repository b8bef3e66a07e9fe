package mathutil

import "math"

// Mat3 is a 3×3 homogeneous 2D matrix stored row-major: [r0c0, r0c1, r0c2, r1c0, ...].
// The last row is (0, 0, 1) for every matrix built by this package.
// Value type for zero heap allocation.
type Mat3 [9]float64

func Mat3Identity() Mat3 {
	return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

func Mat3Diag(x, y float64) Mat3 {
	return Mat3{x, 0, 0, 0, y, 0, 0, 0, 1}
}

// Translate returns a translation by (tx, ty).
func Translate(tx, ty float64) Mat3 {
	return Mat3{1, 0, tx, 0, 1, ty, 0, 0, 1}
}

// Rotate returns a counter-clockwise rotation (in y-down canvas space this
// turns clockwise on screen). Angle in radians.
func Rotate(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// Mat3Mul returns a × b.
func Mat3Mul(a, b Mat3) Mat3 {
	var m Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m[r*3+c] = a[r*3+0]*b[0*3+c] + a[r*3+1]*b[1*3+c] + a[r*3+2]*b[2*3+c]
		}
	}
	return m
}

// Chain multiplies left to right: Chain(a, b, c) = a × b × c.
func Chain(ms ...Mat3) Mat3 {
	out := Mat3Identity()
	for _, m := range ms {
		out = Mat3Mul(out, m)
	}
	return out
}

// MulVec2 applies M to the point v.
func (m Mat3) MulVec2(v Vec2) Vec2 {
	return Vec2{
		m[0]*v.X + m[1]*v.Y + m[2],
		m[3]*v.X + m[4]*v.Y + m[5],
	}
}

// Affine converts M to canvas-convention affine coefficients.
func (m Mat3) Affine() Affine {
	return Affine{
		M11: m[0], M21: m[1], DX: m[2],
		M12: m[3], M22: m[4], DY: m[5],
	}
}
