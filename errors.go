package rakuga

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors returned by the renderer and its font collaborators.
var (
	// ErrInvalidDimension is returned when a target width, target height
	// or aspect ratio is zero, negative or not finite.
	ErrInvalidDimension = errors.New("rakuga: invalid dimension")

	// ErrFontIO is returned when font data cannot be read.
	ErrFontIO = errors.New("rakuga: font io")

	// ErrFontParse is returned when font data is malformed or a glyph
	// cannot be produced from it.
	ErrFontParse = errors.New("rakuga: font parse")

	// ErrGlyphNotFound is returned when the font has no glyph for the
	// requested codepoint. It wraps ErrFontParse.
	ErrGlyphNotFound = fmt.Errorf("%w: glyph not found", ErrFontParse)
)

// DimensionError reports which request field failed validation.
type DimensionError struct {
	Field string
	Value float64
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("rakuga: invalid dimension: %s must be positive, got %g",
		e.Field, e.Value)
}

// Unwrap lets errors.Is match ErrInvalidDimension.
func (e *DimensionError) Unwrap() error {
	return ErrInvalidDimension
}

// validateDimensions checks the three numeric inputs shared by every stage
// of the transform.
func validateDimensions(width, height int, aspect float64) error {
	if width <= 0 {
		return &DimensionError{Field: "width", Value: float64(width)}
	}
	if height <= 0 {
		return &DimensionError{Field: "height", Value: float64(height)}
	}
	// NaN fails this comparison as well.
	if !(aspect > 0) || math.IsInf(aspect, 1) {
		return &DimensionError{Field: "aspect_ratio", Value: aspect}
	}
	return nil
}
