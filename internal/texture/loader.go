package texture

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Loader fetches and decodes a texture source.
type Loader interface {
	Load(ctx context.Context, src string) (*image.NRGBA, error)
}

// FileLoader reads textures from disk (relative to BaseDir) or over HTTP.
type FileLoader struct {
	BaseDir string
	Client  *http.Client
	Timeout time.Duration
}

// NewFileLoader returns a loader rooted at baseDir.
func NewFileLoader(baseDir string, timeout time.Duration) *FileLoader {
	return &FileLoader{
		BaseDir: baseDir,
		Client:  &http.Client{},
		Timeout: timeout,
	}
}

// Load implements Loader.
func (l *FileLoader) Load(ctx context.Context, src string) (*image.NRGBA, error) {
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	var raw []byte
	var err error
	if isURL(src) {
		raw, err = l.fetch(ctx, src)
	} else {
		raw, err = l.read(ctx, src)
	}
	if err != nil {
		return nil, err
	}
	return Decode(raw, src)
}

func (l *FileLoader) read(ctx context.Context, src string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", src, err)
	}
	path := src
	if !filepath.IsAbs(path) && l.BaseDir != "" {
		path = filepath.Join(l.BaseDir, path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}
	return raw, nil
}

func (l *FileLoader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("texture: request %s: %w", url, err)
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("texture: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("texture: fetch %s: status %s", url, resp.Status)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("texture: fetch %s: %w", url, err)
	}
	return raw, nil
}

func isURL(src string) bool {
	s := strings.ToLower(src)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Decode decodes PNG, JPEG, TGA, WebP or BMP bytes into NRGBA with its
// origin at (0, 0). name is only used in error messages.
func Decode(raw []byte, name string) (*image.NRGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", name, err)
	}
	out := ToNRGBA(img)
	if out.Rect.Empty() {
		return nil, fmt.Errorf("texture: decode %s: empty image", name)
	}
	return out, nil
}

// ToNRGBA converts any image to NRGBA format with min-point at (0, 0).
func ToNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	switch src.(type) {
	case *image.YCbCr, *image.Gray, *image.RGBA, *image.NRGBA:
		// draw handles the conversion, including un-premultiplying RGBA.
		draw.Draw(dst, dst.Rect, src, b.Min, draw.Src)
	default:
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				i := dst.PixOffset(x, y)
				dst.Pix[i] = c.R
				dst.Pix[i+1] = c.G
				dst.Pix[i+2] = c.B
				dst.Pix[i+3] = c.A
			}
		}
	}
	return dst
}
