package texture

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceLifecycle(t *testing.T) {
	var r Resource
	assert.Equal(t, Unloaded, r.State())

	req := r.Begin("lincoln", "lincoln.png")
	assert.Equal(t, Loading, r.State())
	_, ok := r.Image()
	assert.False(t, ok, "pixels must not be readable while loading")

	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	require.NoError(t, r.Resolve(Completion{Request: req, Image: img}))
	assert.Equal(t, Loaded, r.State())
	got, ok := r.Image()
	require.True(t, ok)
	assert.Same(t, img, got)
}

func TestResourceFailure(t *testing.T) {
	var r Resource
	req := r.Begin("monalisa", "https://example.invalid/m.jpg")

	require.NoError(t, r.Resolve(Completion{Request: req, Err: errors.New("404")}))
	assert.Equal(t, Failed, r.State())
	assert.ErrorIs(t, r.Err(), ErrAssetLoadFailed)
	_, ok := r.Image()
	assert.False(t, ok)
}

func TestResourceStaleCompletion(t *testing.T) {
	var r Resource
	old := r.Begin("lincoln", "lincoln.png")
	cur := r.Begin("monalisa", "monalisa.png")
	assert.Greater(t, cur.Gen, old.Gen)

	slow := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	err := r.Resolve(Completion{Request: old, Image: slow})
	assert.ErrorIs(t, err, ErrStaleCallback)
	assert.Equal(t, Loading, r.State())
	assert.Equal(t, "monalisa", r.ID())

	// Same id re-requested still supersedes the earlier generation.
	again := r.Begin("monalisa", "monalisa.png")
	assert.ErrorIs(t, r.Resolve(Completion{Request: cur, Image: slow}), ErrStaleCallback)
	assert.NoError(t, r.Resolve(Completion{Request: again, Image: slow}))

	// A second completion for an already resolved request is stale too.
	assert.ErrorIs(t, r.Resolve(Completion{Request: again, Image: slow}), ErrStaleCallback)
}

func TestResourceResetSupersedesLoad(t *testing.T) {
	var r Resource
	req := r.Begin("lincoln", "lincoln.png")
	r.Reset("blank")

	assert.Equal(t, Unloaded, r.State())
	assert.ErrorIs(t, r.Resolve(Completion{Request: req, Image: image.NewNRGBA(image.Rect(0, 0, 1, 1))}), ErrStaleCallback)
	assert.Equal(t, Unloaded, r.State())
}

func TestResourceNilImageFails(t *testing.T) {
	var r Resource
	req := r.Begin("x", "x.png")
	require.NoError(t, r.Resolve(Completion{Request: req}))
	assert.Equal(t, Failed, r.State())
}
