package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable(t *testing.T) {
	tbl := DefaultTable()

	assert.Equal(t, TableVersion, tbl.Version())
	assert.Equal(t, 272, tbl.Len())
	assert.Equal(t, 18, tbl.PatchLen())
	assert.Less(t, tbl.MaxIndex(), DefaultLandmarkCount)
	assert.Equal(t, Triangle{127, 34, 139}, tbl.At(0))
	assert.Equal(t, Triangle{415, 324, 308}, tbl.At(tbl.Len()-1))
	assert.Equal(t, 49, tbl.RepeatedIndex())
}

func TestEdgesAreUniqueAndOrdered(t *testing.T) {
	tbl := NewTable("test", []Triangle{{0, 1, 2}, {2, 1, 3}, {4, 4, 5}})
	edges := tbl.Edges()

	assert.Equal(t, []Edge{{0, 1}, {0, 2}, {1, 2}, {1, 3}, {2, 3}, {4, 5}}, edges)
}

func TestLandmarkSetGeometry(t *testing.T) {
	l := LandmarkSet{{0.1, 0.2}, {0.5, 0.2}, {0.1, 0.6}}

	assert.True(t, l.Has(Triangle{0, 1, 2}))
	assert.False(t, l.Has(Triangle{0, 1, 3}))
	assert.False(t, l.Has(Triangle{-1, 1, 2}))

	tri := l.Triangle(Triangle{0, 1, 2}, 100, 50)
	assert.InDelta(t, 10, tri[0].X, 1e-9)
	assert.InDelta(t, 10, tri[0].Y, 1e-9)
	assert.InDelta(t, 50, tri[1].X, 1e-9)
	assert.InDelta(t, 30, tri[2].Y, 1e-9)

	c := l.Center()
	assert.InDelta(t, 0.3, c.X, 1e-9)
	assert.InDelta(t, 0.4, c.Y, 1e-9)
	assert.InDelta(t, 0.565685, l.Diagonal(), 1e-6)
}

func TestEyeCenters(t *testing.T) {
	_, _, ok := LandmarkSet{{0, 0}}.EyeCenters()
	assert.False(t, ok)

	l := make(LandmarkSet, DefaultLandmarkCount)
	l[LeftEyeOuter] = Point{0.30, 0.40}
	l[LeftEyeInner] = Point{0.40, 0.42}
	l[RightEyeInner] = Point{0.60, 0.42}
	l[RightEyeOuter] = Point{0.70, 0.40}

	left, right, ok := l.EyeCenters()
	require.True(t, ok)
	assert.InDelta(t, 0.35, left.X, 1e-9)
	assert.InDelta(t, 0.41, left.Y, 1e-9)
	assert.InDelta(t, 0.65, right.X, 1e-9)
}
