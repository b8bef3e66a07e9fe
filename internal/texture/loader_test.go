package texture

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 10), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodePNG(t *testing.T) {
	img, err := Decode(encodePNG(t, 8, 6), "mem.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 6), img.Bounds())
	assert.Equal(t, color.NRGBA{R: 30, G: 20, B: 200, A: 255}, img.NRGBAAt(3, 2))
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode([]byte("not an image"), "junk")
	assert.Error(t, err)
}

func TestToNRGBAMovesOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 20, 14, 22))
	src.SetRGBA(11, 21, color.RGBA{R: 255, A: 255})

	out := ToNRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 4, 2), out.Bounds())
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, out.NRGBAAt(1, 1))

	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	gray.SetGray(0, 0, color.Gray{Y: 90})
	assert.Equal(t, color.NRGBA{R: 90, G: 90, B: 90, A: 255}, ToNRGBA(gray).NRGBAAt(0, 0))
}

func TestFileLoaderReadsRelativeToBaseDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "face.png"), encodePNG(t, 4, 4), 0644))

	l := NewFileLoader(dir, time.Second)
	img, err := l.Load(context.Background(), "face.png")
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())

	_, err = l.Load(context.Background(), "missing.png")
	assert.Error(t, err)
}

func TestFileLoaderFetchesURL(t *testing.T) {
	body := encodePNG(t, 5, 3)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		w.Write(body)
	}))
	defer srv.Close()

	l := NewFileLoader("", time.Second)
	img, err := l.Load(context.Background(), srv.URL+"/mask.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 5, 3), img.Bounds())

	_, err = l.Load(context.Background(), srv.URL+"/missing.png")
	assert.Error(t, err)
}

type countingLoader struct {
	calls atomic.Int32
	fail  bool
}

func (c *countingLoader) Load(ctx context.Context, src string) (*image.NRGBA, error) {
	c.calls.Add(1)
	if c.fail {
		return nil, errors.New("boom")
	}
	return image.NewNRGBA(image.Rect(0, 0, 1, 1)), nil
}

func TestCacheMemoizesSuccess(t *testing.T) {
	inner := &countingLoader{}
	c := NewCache(inner)

	a, err := c.Load(context.Background(), "a.png")
	require.NoError(t, err)
	b, err := c.Load(context.Background(), "a.png")
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.Equal(t, int32(1), inner.calls.Load())
	assert.Equal(t, 1, c.Len())
}

func TestCacheDoesNotMemoizeFailure(t *testing.T) {
	inner := &countingLoader{fail: true}
	c := NewCache(inner)

	_, err := c.Load(context.Background(), "a.png")
	assert.Error(t, err)
	_, err = c.Load(context.Background(), "a.png")
	assert.Error(t, err)

	assert.Equal(t, int32(2), inner.calls.Load())
	assert.Equal(t, 0, c.Len())
}
