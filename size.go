package rakuga

import "math"

// DefaultAspectRatio is the height-to-width ratio of a typical terminal
// character cell.
const DefaultAspectRatio = 2.0

// ComputeRasterSize returns the pixel size to request from a Rasterizer so
// that a glyph covers a width x height grid of cells whose height is aspect
// times their width.
//
// Cells are measured in square pixels: a cell is one pixel wide and aspect
// pixels tall. The larger of the two physical extents is returned, since
// rasterizers take a single size and a glyph rendered too small loses detail
// to resampling on whichever axis is short.
func ComputeRasterSize(width, height int, aspect float64) (float64, error) {
	if err := validateDimensions(width, height, aspect); err != nil {
		return 0, err
	}
	physWidth := float64(width)
	physHeight := float64(height) * aspect
	return math.Max(physWidth, physHeight), nil
}
