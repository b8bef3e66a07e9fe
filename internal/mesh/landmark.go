package mesh

import (
	"math"

	"facewarp/internal/mathutil"
)

// DefaultLandmarkCount is the cardinality of the standard face landmark mesh.
const DefaultLandmarkCount = 468

// Landmark indices used outside the triangle loop, following the MediaPipe
// face mesh numbering.
const (
	NoseTip       = 1
	UpperLipInner = 13
	LowerLipInner = 14
	LeftEyeOuter  = 33
	LeftEyeInner  = 133
	RightEyeOuter = 263
	RightEyeInner = 362
)

// Point is a landmark position normalized to [0,1] on both axes.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LandmarkSet holds the landmarks of one face for one frame.
// The slice is borrowed: callers must not keep it past the frame.
type LandmarkSet []Point

// Has reports whether every index of t is inside the set.
func (l LandmarkSet) Has(t Triangle) bool {
	for _, i := range t {
		if i < 0 || i >= len(l) {
			return false
		}
	}
	return true
}

// Canvas returns landmark i scaled to a w×h canvas.
func (l LandmarkSet) Canvas(i int, w, h int) mathutil.Vec2 {
	p := l[i]
	return mathutil.Vec2{X: p.X * float64(w), Y: p.Y * float64(h)}
}

// Triangle returns the canvas-space destination triangle for t.
func (l LandmarkSet) Triangle(t Triangle, w, h int) [3]mathutil.Vec2 {
	return [3]mathutil.Vec2{
		l.Canvas(t[0], w, h),
		l.Canvas(t[1], w, h),
		l.Canvas(t[2], w, h),
	}
}

// Bounds returns the normalized bounding box (min, max) of all points.
func (l LandmarkSet) Bounds() (mathutil.Vec2, mathutil.Vec2) {
	if len(l) == 0 {
		return mathutil.Vec2{}, mathutil.Vec2{}
	}
	lo := mathutil.Vec2{X: math.Inf(1), Y: math.Inf(1)}
	hi := mathutil.Vec2{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, p := range l {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}
	return lo, hi
}

// Center returns the center of the bounding box.
func (l LandmarkSet) Center() mathutil.Vec2 {
	lo, hi := l.Bounds()
	return lo.Lerp(hi, 0.5)
}

// Diagonal returns the length of the bounding box diagonal.
func (l LandmarkSet) Diagonal() float64 {
	lo, hi := l.Bounds()
	return lo.Dist(hi)
}

// Vec returns landmark i as a vector in normalized space.
func (l LandmarkSet) Vec(i int) mathutil.Vec2 {
	return mathutil.Vec2{X: l[i].X, Y: l[i].Y}
}

// EyeCenters returns the midpoints of the left and right eye corners in
// normalized space. ok is false when the set is too small.
func (l LandmarkSet) EyeCenters() (left, right mathutil.Vec2, ok bool) {
	if len(l) <= RightEyeInner || len(l) <= RightEyeOuter {
		return mathutil.Vec2{}, mathutil.Vec2{}, false
	}
	left = l.Vec(LeftEyeOuter).Lerp(l.Vec(LeftEyeInner), 0.5)
	right = l.Vec(RightEyeOuter).Lerp(l.Vec(RightEyeInner), 0.5)
	return left, right, true
}
