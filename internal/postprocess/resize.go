package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Resize scales a composited frame to width, keeping the aspect ratio. The
// frame is premultiplied already, so CatmullRom does not halo at
// transparent edges. A non-positive or equal width returns img unchanged.
func Resize(img *image.RGBA, width int) *image.RGBA {
	b := img.Bounds()
	if width <= 0 || width == b.Dx() || b.Empty() {
		return img
	}
	height := (b.Dy()*width + b.Dx()/2) / b.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Unpremultiply converts a frame to straight alpha for encoders that store
// it that way.
func Unpremultiply(img *image.RGBA) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	result := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			si := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			di := result.PixOffset(x, y)
			a := img.Pix[si+3]
			switch a {
			case 0:
			case 255:
				copy(result.Pix[di:di+3], img.Pix[si:si+3])
			default:
				inv := 255.0 / float64(a)
				result.Pix[di] = clamp8(float64(img.Pix[si]) * inv)
				result.Pix[di+1] = clamp8(float64(img.Pix[si+1]) * inv)
				result.Pix[di+2] = clamp8(float64(img.Pix[si+2]) * inv)
			}
			result.Pix[di+3] = a
		}
	}
	return result
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
