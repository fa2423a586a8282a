package rakuga

import (
	"bytes"
	"fmt"
	"image"
	"os"

	"github.com/wbrown/rakuga/imageutil"
)

// ImageRasterizer serves a pre-rasterized glyph from an image. The image
// luminance is the coverage: bright pixels are ink unless Invert is set,
// for dark ink on a light background. Interpolation picks the scaler;
// the zero value is nearest-neighbour, which keeps hard edges. The codepoint
// is ignored.
type ImageRasterizer struct {
	gray          *imageutil.GrayImage
	Invert        bool
	Interpolation imageutil.Interpolation
}

// NewImageRasterizer converts img to grayscale and wraps it.
func NewImageRasterizer(img image.Image, invert bool) *ImageRasterizer {
	return &ImageRasterizer{gray: imageutil.ToGrayscale(img), Invert: invert}
}

// LoadImageRasterizer reads a PNG, JPEG, GIF or TIFF glyph image. Read
// failures wrap ErrFontIO and decode failures wrap ErrFontParse.
func LoadImageRasterizer(path string, invert bool) (*ImageRasterizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read image: %w", ErrFontIO, err)
	}
	img, err := imageutil.DecodeImage(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFontParse, err)
	}
	b := img.Bounds()
	Logger().Debug("glyph image loaded", "path", path, "width", b.Dx(), "height", b.Dy())
	return NewImageRasterizer(img, invert), nil
}

// Rasterize scales the image so that its larger side equals size, and
// returns its coverage.
func (r *ImageRasterizer) Rasterize(_ rune, size float64) (Bitmap, error) {
	if !(size > 0) {
		return Bitmap{}, &DimensionError{Field: "size", Value: size}
	}
	if r.gray.Width() == 0 || r.gray.Height() == 0 {
		return Bitmap{}, nil
	}
	src := r.gray
	if r.Invert {
		src = src.Invert()
	}
	fitted := imageutil.FitGray(src, size, r.Interpolation)
	Logger().Debug("glyph image scaled",
		"from", fmt.Sprintf("%dx%d", r.gray.Width(), r.gray.Height()),
		"to", fmt.Sprintf("%dx%d", fitted.Width(), fitted.Height()),
		"interpolation", r.Interpolation)
	return NewBitmap(fitted.Bytes(), fitted.Width(), fitted.Height())
}
