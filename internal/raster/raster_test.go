package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/draw"

	"facewarp/internal/mathutil"
	"facewarp/internal/mesh"
	"facewarp/internal/texture"
)

var red = color.RGBA{R: 255, A: 255}

func solidTexture(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Rect, image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func TestInterpolatorNames(t *testing.T) {
	for _, name := range []string{"", "nearest", "approx-bilinear", "bilinear", "catmull-rom"} {
		_, err := Interpolator(name)
		assert.NoError(t, err, name)
	}
	_, err := Interpolator("lanczos")
	assert.Error(t, err)
}

func TestPaintTriangleRestoresState(t *testing.T) {
	s := NewSurface(64, 64, draw.NearestNeighbor)
	tex := solidTexture(32, 32, red)

	dst := [3]mathutil.Vec2{{10, 10}, {40, 10}, {10, 40}}
	PaintTriangle(s, tex, mathutil.Identity(), dst)
	assert.Equal(t, 0, s.Depth())
	assert.False(t, s.Clipped())
	assert.Equal(t, mathutil.Identity(), s.Transform())

	// Entirely off-surface: empty clip, nothing drawn, state still balanced.
	off := [3]mathutil.Vec2{{-100, -100}, {-90, -100}, {-100, -90}}
	PaintTriangle(s, tex, mathutil.Identity(), off)
	assert.Equal(t, 0, s.Depth())
	assert.False(t, s.Clipped())
}

func TestPaintTriangleStaysInsideClip(t *testing.T) {
	s := NewSurface(64, 64, draw.NearestNeighbor)
	tex := solidTexture(64, 64, red)

	dst := [3]mathutil.Vec2{{10, 10}, {50, 10}, {10, 50}}
	PaintTriangle(s, tex, mathutil.Identity(), dst)

	img := s.Image()
	assert.Equal(t, red, img.RGBAAt(15, 15), "inside")
	assert.Equal(t, color.RGBA{}, img.RGBAAt(45, 45), "past the hypotenuse")
	assert.Equal(t, color.RGBA{}, img.RGBAAt(5, 30), "left of the triangle")
	assert.Equal(t, color.RGBA{}, img.RGBAAt(60, 5), "outside the bbox")
}

func TestPaintTriangleMapsTexture(t *testing.T) {
	// Left half blue, right half green; the map mirrors horizontally.
	tex := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	blue := color.NRGBA{B: 255, A: 255}
	green := color.NRGBA{G: 255, A: 255}
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if x < 20 {
				tex.SetNRGBA(x, y, blue)
			} else {
				tex.SetNRGBA(x, y, green)
			}
		}
	}
	src := [3]mathutil.Vec2{{0, 0}, {40, 0}, {0, 40}}
	dst := [3]mathutil.Vec2{{40, 0}, {0, 0}, {40, 40}}
	xf, err := mathutil.SolveAffine(src, dst, mathutil.DefaultDegenerateEpsilon)
	require.NoError(t, err)

	s := NewSurface(40, 40, draw.NearestNeighbor)
	PaintTriangle(s, tex, xf, dst)

	assert.Equal(t, color.RGBA{G: 255, A: 255}, s.Image().RGBAAt(8, 3), "right texels land on the left")
	assert.Equal(t, color.RGBA{B: 255, A: 255}, s.Image().RGBAAt(30, 5), "left texels land on the right")
}

func TestTwoTrianglesTileWithoutGaps(t *testing.T) {
	landmarks := mesh.LandmarkSet{{0.2, 0.2}, {0.7, 0.2}, {0.2, 0.7}, {0.7, 0.7}}
	table := mesh.NewTable("test", []mesh.Triangle{{0, 1, 2}, {1, 3, 2}})

	tex := solidTexture(200, 200, red)
	// Bind against a different frame so the warp is not the identity.
	bindFrame := mesh.LandmarkSet{{0.1, 0.1}, {0.9, 0.15}, {0.1, 0.8}, {0.85, 0.9}}
	b, err := texture.Bind(bindFrame, 4, 200, 200)
	require.NoError(t, err)

	s := NewSurface(100, 100, draw.BiLinear)
	st := RenderFace(s, table, landmarks, b, tex, mathutil.DefaultDegenerateEpsilon)
	assert.Equal(t, FaceStats{Painted: 2}, st)

	img := s.Image()
	for y := 21; y < 69; y++ {
		for x := 21; x < 69; x++ {
			require.Equal(t, uint8(255), img.RGBAAt(x, y).A, "gap at (%d,%d)", x, y)
		}
	}
}

func TestRenderFaceSkipsBadTriangles(t *testing.T) {
	landmarks := mesh.LandmarkSet{{0.1, 0.1}, {0.5, 0.1}, {0.1, 0.5}, {0.5, 0.5}}
	table := mesh.NewTable("test", []mesh.Triangle{
		{0, 1, 2},
		{1, 1, 3}, // repeated index: zero area
		{1, 3, 9}, // outside the set
	})
	b, err := texture.Bind(landmarks, 4, 50, 50)
	require.NoError(t, err)

	s := NewSurface(50, 50, draw.NearestNeighbor)
	st := RenderFace(s, table, landmarks, b, solidTexture(50, 50, red), mathutil.DefaultDegenerateEpsilon)

	assert.Equal(t, FaceStats{Painted: 1, Degenerate: 1, Skipped: 1}, st)
	assert.Equal(t, 0, s.Depth())
	assert.Equal(t, uint8(255), s.Image().RGBAAt(8, 8).A)
}

func TestRenderFaceWithoutBindingIsNoop(t *testing.T) {
	s := NewSurface(10, 10, nil)
	st := RenderFace(s, mesh.DefaultTable(), nil, nil, nil, mathutil.DefaultDegenerateEpsilon)
	assert.Equal(t, FaceStats{}, st)
}

func TestNestedClipIntersects(t *testing.T) {
	s := NewSurface(40, 40, draw.NearestNeighbor)
	s.Push()
	require.True(t, s.ClipTriangle([3]mathutil.Vec2{{0, 0}, {40, 0}, {0, 40}}, 0))
	// Disjoint second clip leaves nothing.
	s.ClipTriangle([3]mathutil.Vec2{{30, 30}, {40, 30}, {40, 40}}, 0)
	s.DrawImage(solidTexture(40, 40, red))
	s.Pop()

	assert.Equal(t, color.RGBA{}, s.Image().RGBAAt(35, 35))
	assert.Equal(t, color.RGBA{}, s.Image().RGBAAt(5, 5))
}

func TestSurfaceBackgroundAndClear(t *testing.T) {
	s := NewSurface(20, 10, nil)
	s.Clear(color.Black)
	assert.Equal(t, color.RGBA{A: 255}, s.Image().RGBAAt(3, 3))

	s.DrawBackground(solidTexture(4, 2, red))
	assert.Equal(t, red, s.Image().RGBAAt(19, 9))

	s.DrawBackground(nil)
	assert.Equal(t, red, s.Image().RGBAAt(0, 0))
}

func TestDrawWireframe(t *testing.T) {
	s := NewSurface(100, 100, nil)
	landmarks := mesh.LandmarkSet{{0.1, 0.5}, {0.9, 0.5}, {0.5, 0.9}}
	table := mesh.NewTable("test", []mesh.Triangle{{0, 1, 2}})

	DrawWireframe(s, table, landmarks, WireframeStyle{Color: color.White, LineWidth: 2})

	assert.NotZero(t, s.Image().RGBAAt(50, 50).A, "edge 0-1 crosses (50,50)")
	assert.Zero(t, s.Image().RGBAAt(50, 20).A)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#C0C0C070")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{0xC0, 0xC0, 0xC0, 0x70}, c)

	c, err = ParseColor("fff")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, c)

	_, err = ParseColor("#12345")
	assert.Error(t, err)
}
