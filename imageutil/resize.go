package imageutil

import (
	"fmt"
	"image"
	"math"
	"strings"

	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationNearest uses nearest-neighbor interpolation. It keeps
	// hard glyph edges and is the default for bitmaps.
	InterpolationNearest Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	InterpolationLinear

	// InterpolationArea uses Catmull-Rom for high-quality downscaling.
	InterpolationArea
)

func (interp Interpolation) String() string {
	switch interp {
	case InterpolationNearest:
		return "nearest"
	case InterpolationLinear:
		return "linear"
	case InterpolationArea:
		return "area"
	}
	return fmt.Sprintf("Interpolation(%d)", int(interp))
}

// ParseInterpolation parses "nearest", "linear" or "area".
func ParseInterpolation(s string) (Interpolation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nearest", "":
		return InterpolationNearest, nil
	case "linear", "bilinear":
		return InterpolationLinear, nil
	case "area", "catmullrom":
		return InterpolationArea, nil
	}
	return InterpolationNearest, fmt.Errorf(
		"unknown interpolation %q, options are nearest, linear or area", s)
}

func (interp Interpolation) scaler() draw.Scaler {
	switch interp {
	case InterpolationLinear:
		return draw.BiLinear
	case InterpolationArea:
		return draw.CatmullRom
	default:
		return draw.NearestNeighbor
	}
}

// ResizeGray resizes a grayscale image to the specified dimensions.
func ResizeGray(img *GrayImage, width, height int, interp Interpolation) *GrayImage {
	dst := NewGrayImage(width, height)
	dstRect := image.Rect(0, 0, width, height)
	interp.scaler().Scale(dst.Gray, dstRect, img.Gray, img.Bounds(), draw.Src, nil)
	return dst
}

// FitGray scales img so that its larger side equals size pixels, keeping
// the aspect ratio. Neither side goes below one pixel.
func FitGray(img *GrayImage, size float64, interp Interpolation) *GrayImage {
	w, h := img.Width(), img.Height()
	if w == 0 || h == 0 {
		return NewGrayImage(0, 0)
	}
	scale := size / float64(max(w, h))
	newW := max(1, int(math.Round(float64(w)*scale)))
	newH := max(1, int(math.Round(float64(h)*scale)))
	if newW == w && newH == h {
		return img.Clone()
	}
	return ResizeGray(img, newW, newH, interp)
}
