package session

import (
	"math"

	"facewarp/internal/mathutil"
	"facewarp/internal/mesh"
)

// BindPolicy decides when a face may be bound to the active texture. The
// bind-frame pose becomes the texture parameterization, so binding can wait
// a few frames and for a roughly frontal face. The zero policy binds on the
// first frame the texture is ready.
type BindPolicy struct {
	DelayFrames int
	// MaxRollDeg limits the eye-line tilt. Zero disables the check.
	MaxRollDeg float64
	// MaxYawRatio limits the nose-tip offset from the eye midpoint, along
	// the eye line, as a fraction of eye distance. Zero disables the check.
	MaxYawRatio float64
}

// Admit reports whether landmarks seen on a w×h canvas, readyFrames frames
// after the texture became ready (1 on the first), may be bound.
func (p BindPolicy) Admit(landmarks mesh.LandmarkSet, w, h, readyFrames int) bool {
	if readyFrames <= p.DelayFrames {
		return false
	}
	if p.MaxRollDeg <= 0 && p.MaxYawRatio <= 0 {
		return true
	}
	roll, yaw, ok := Pose(landmarks, w, h)
	if !ok {
		return false
	}
	if p.MaxRollDeg > 0 && mathutil.AngleDist(roll, 0) > p.MaxRollDeg {
		return false
	}
	if p.MaxYawRatio > 0 && math.Abs(yaw) > p.MaxYawRatio {
		return false
	}
	return true
}

// Pose estimates head roll in degrees and a yaw ratio from the outer eye
// corners and the nose tip.
func Pose(landmarks mesh.LandmarkSet, w, h int) (roll, yaw float64, ok bool) {
	if len(landmarks) <= mesh.RightEyeOuter {
		return 0, 0, false
	}
	left := landmarks.Canvas(mesh.LeftEyeOuter, w, h)
	right := landmarks.Canvas(mesh.RightEyeOuter, w, h)
	nose := landmarks.Canvas(mesh.NoseTip, w, h)

	axis := right.Sub(left)
	dist := axis.Len()
	if dist < 1e-9 {
		return 0, 0, false
	}
	roll = mathutil.Rad2Deg(math.Atan2(axis.Y, axis.X))
	mid := left.Lerp(right, 0.5)
	yaw = nose.Sub(mid).Dot(axis.Scale(1/dist)) / dist
	return roll, yaw, true
}
