// Package imageutil provides the grayscale image helpers used to turn
// image files into glyph bitmaps: decoding, luminance conversion, resizing
// and PNG output.
package imageutil

import (
	"image"
	"image/color"
)

// GrayImage wraps image.Gray with convenience methods for pixel access.
type GrayImage struct {
	*image.Gray
}

// NewGrayImage creates a new GrayImage with the specified dimensions.
func NewGrayImage(width, height int) *GrayImage {
	return &GrayImage{
		Gray: image.NewGray(image.Rect(0, 0, width, height)),
	}
}

// GrayImageFromBytes wraps a row-major buffer of width*height bytes. The
// buffer is copied.
func GrayImageFromBytes(pix []uint8, width, height int) *GrayImage {
	img := NewGrayImage(width, height)
	copy(img.Pix, pix)
	return img
}

// Width returns the image width.
func (img *GrayImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the image height.
func (img *GrayImage) Height() int {
	return img.Bounds().Dy()
}

// GetGray returns the grayscale value at (x, y), relative to the image origin.
func (img *GrayImage) GetGray(x, y int) uint8 {
	b := img.Bounds()
	return img.GrayAt(b.Min.X+x, b.Min.Y+y).Y
}

// SetGrayValue sets the grayscale value at (x, y), relative to the image origin.
func (img *GrayImage) SetGrayValue(x, y int, v uint8) {
	b := img.Bounds()
	img.Gray.SetGray(b.Min.X+x, b.Min.Y+y, color.Gray{Y: v})
}

// Bytes returns the pixels as a tightly packed row-major copy, dropping any
// stride padding.
func (img *GrayImage) Bytes() []uint8 {
	w, h := img.Width(), img.Height()
	out := make([]uint8, 0, w*h)
	for y := 0; y < h; y++ {
		start := y * img.Stride
		out = append(out, img.Pix[start:start+w]...)
	}
	return out
}

// Invert returns a copy with every value v replaced by 255-v.
func (img *GrayImage) Invert() *GrayImage {
	inv := img.Clone()
	for i, v := range inv.Pix {
		inv.Pix[i] = 255 - v
	}
	return inv
}

// Clone creates a deep copy of the image.
func (img *GrayImage) Clone() *GrayImage {
	clone := NewGrayImage(img.Width(), img.Height())
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			clone.SetGrayValue(x, y, img.GetGray(x, y))
		}
	}
	return clone
}
