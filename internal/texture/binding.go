package texture

import (
	"errors"
	"fmt"

	"facewarp/internal/mathutil"
	"facewarp/internal/mesh"
)

// ErrShapeMismatch reports a landmark set whose size differs from the count
// the triangulation expects.
var ErrShapeMismatch = errors.New("texture: landmark count mismatch")

// Binding fixes which texture pixel each landmark shows. It is created once
// per bind event and never modified afterwards.
type Binding struct {
	uv     []mathutil.Vec2
	width  int
	height int
}

// Bind captures the texture coordinates of every landmark by scaling the
// normalized bind-frame positions into a width×height texture.
// The bind-frame pose becomes the texture's parameterization for every
// later frame, so a near-frontal neutral face binds best.
func Bind(landmarks mesh.LandmarkSet, expected, width, height int) (*Binding, error) {
	if len(landmarks) != expected {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrShapeMismatch, len(landmarks), expected)
	}
	uv := make([]mathutil.Vec2, len(landmarks))
	for i, p := range landmarks {
		uv[i] = mathutil.Vec2{X: p.X * float64(width), Y: p.Y * float64(height)}
	}
	return &Binding{uv: uv, width: width, height: height}, nil
}

// Len returns the number of bound landmarks.
func (b *Binding) Len() int { return len(b.uv) }

// Size returns the texture size the binding was captured for.
func (b *Binding) Size() (int, int) { return b.width, b.height }

// UV returns the texture coordinate of landmark i.
func (b *Binding) UV(i int) mathutil.Vec2 { return b.uv[i] }

// Triangle returns the bound source triangle for t. ok is false when t names
// an index outside the binding.
func (b *Binding) Triangle(t mesh.Triangle) (tri [3]mathutil.Vec2, ok bool) {
	for k, i := range t {
		if i < 0 || i >= len(b.uv) {
			return tri, false
		}
		tri[k] = b.uv[i]
	}
	return tri, true
}
