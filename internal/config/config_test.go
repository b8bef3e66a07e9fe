package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaults(t *testing.T) {
	var c Config
	c.Resolve(Flags{})

	assert.Equal(t, "masks", c.MaskDir)
	assert.Equal(t, "lincoln", c.DefaultMask)
	assert.Len(t, c.Masks, 3)
	assert.Equal(t, 1280, c.CanvasWidth)
	assert.Equal(t, 720, c.CanvasHeight)
	assert.Equal(t, 468, c.Landmarks)
	assert.Equal(t, 0.001, c.DegenerateEpsilon)
	assert.Equal(t, "bilinear", c.Interpolation)
	assert.Equal(t, "mesh", c.Renderer)
	require.NotNil(t, c.ShowMesh)
	assert.True(t, *c.ShowMesh)
	assert.Equal(t, "#C0C0C070", c.MeshColor)
	assert.Equal(t, 0.5, c.Track.MaxDistance)
	assert.Equal(t, 15, c.Track.MaxMissed)
	assert.Equal(t, "webp", c.Format)
	assert.Positive(t, c.Workers)
	assert.Equal(t, Duration(15*time.Second), c.LoadTimeout)
	assert.NoError(t, c.Validate())
}

func TestLoadAndFlagsOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facewarp.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"masks": [{"id": "tiger", "src": "tiger.png", "scale": 1.2, "eyes": [[0.3, 0.4], [0.7, 0.4]]}],
		"default_mask": "tiger",
		"show_mesh": false,
		"format": "PNG",
		"bind": {"delay_frames": 3, "max_roll_deg": 12},
		"anchor": {"split": 0.62, "mouth_gain": 1.5},
		"load_timeout": 2.5
	}`), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	c.Resolve(Flags{Renderer: "anchor", Workers: 3})

	assert.Equal(t, "tiger", c.DefaultMask)
	assert.False(t, *c.ShowMesh)
	assert.Equal(t, "png", c.Format)
	assert.Equal(t, "anchor", c.Renderer)
	assert.Equal(t, 3, c.Workers)
	assert.Equal(t, 3, c.Bind.DelayFrames)
	assert.Equal(t, 12.0, c.Bind.MaxRollDeg)
	assert.Equal(t, 0.62, c.Anchor.Split)
	assert.Equal(t, Duration(2500*time.Millisecond), c.LoadTimeout)
	require.NoError(t, c.Validate())

	cat, err := c.Catalog()
	require.NoError(t, err)
	m, ok := cat.Lookup("tiger")
	require.True(t, ok)
	assert.True(t, m.HasEyes())
	assert.Equal(t, 0.7, m.Eyes[1].X)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"load_timeout": "soon"}`), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	c := Config{Format: "gif"}
	c.Resolve(Flags{})
	assert.Error(t, c.Validate())

	c = Config{}
	c.Resolve(Flags{})
	c.Anchor.Split = 1.5
	assert.Error(t, c.Validate())

	c = Config{Masks: []MaskConfig{{ID: "x", Eyes: [][2]float64{{0, 0}}}}}
	c.Resolve(Flags{})
	assert.Error(t, c.Validate())
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, filepath.Join("rec", "f.png"), ResolvePath("rec", "f.png"))
	assert.Equal(t, "/abs/f.png", ResolvePath("rec", "/abs/f.png"))
	assert.Equal(t, "f.png", ResolvePath("", "f.png"))
}
