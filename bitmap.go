package rakuga

import "fmt"

// Bitmap is a grayscale coverage buffer produced by a Rasterizer. Each byte
// is an intensity from 0 (no ink) to 255 (full ink), stored row-major.
//
// A Bitmap with no pixels is valid: rasterizers return it for glyphs that
// carry no ink, such as space.
type Bitmap struct {
	Pix    []uint8
	Width  int
	Height int
}

// NewBitmap wraps pix as a width x height bitmap. An empty pix always
// yields the zero-size bitmap regardless of the dimensions given; otherwise
// len(pix) must equal width*height.
func NewBitmap(pix []uint8, width, height int) (Bitmap, error) {
	if len(pix) == 0 {
		return Bitmap{}, nil
	}
	if width <= 0 || height <= 0 || len(pix) != width*height {
		return Bitmap{}, fmt.Errorf(
			"bitmap buffer has %d bytes, want %dx%d", len(pix), width, height)
	}
	return Bitmap{Pix: pix, Width: width, Height: height}, nil
}

// Empty reports whether the bitmap has no pixels.
func (b Bitmap) Empty() bool {
	return b.Width <= 0 || b.Height <= 0 || len(b.Pix) == 0
}

// At returns the intensity at (x, y), or 0 when the coordinate falls
// outside the buffer.
func (b Bitmap) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return 0
	}
	idx := y*b.Width + x
	if idx >= len(b.Pix) {
		return 0
	}
	return b.Pix[idx]
}
