// Package rakuga renders a single font glyph as a grid of terminal
// characters, optionally colored.
//
// The pipeline is: ComputeRasterSize picks a pixel size for the requested
// grid, a Rasterizer turns the codepoint into a grayscale Bitmap, Sample
// reduces the bitmap to one intensity per cell, MapIntensity picks a
// character for each intensity and Encode attaches a matching color. Every
// stage is a pure function of its inputs.
package rakuga

// Rasterizer produces a grayscale coverage bitmap for a codepoint at a size
// given in pixels per em. A glyph with no ink may be returned as an empty
// Bitmap.
type Rasterizer interface {
	Rasterize(codepoint rune, size float64) (Bitmap, error)
}

// RenderMode combines the two independent output policies.
type RenderMode struct {
	Charset CharacterSet
	Color   ColorMode
}

// DefaultMode is the density ramp without color.
var DefaultMode = RenderMode{Charset: Density, Color: NoColor}

// Request describes one render: the target grid in cells, the height-to-width
// ratio of a cell and the output policies.
type Request struct {
	Width       int
	Height      int
	AspectRatio float64
	Mode        RenderMode
}

// Validate reports a *DimensionError for any non-positive field.
func (req Request) Validate() error {
	return validateDimensions(req.Width, req.Height, req.AspectRatio)
}

// Render rasterizes codepoint with r and converts it into a grid of exactly
// req.Height lines of req.Width cells. The request is validated before the
// rasterizer is called. Rasterizer errors are returned unchanged.
func Render(r Rasterizer, codepoint rune, req Request) (Grid, error) {
	return renderScaled(r, codepoint, req, 1)
}

// RenderDefault renders with DefaultAspectRatio and DefaultMode.
func RenderDefault(r Rasterizer, codepoint rune, width, height int) (Grid, error) {
	return Render(r, codepoint, Request{
		Width:       width,
		Height:      height,
		AspectRatio: DefaultAspectRatio,
		Mode:        DefaultMode,
	})
}

func renderScaled(r Rasterizer, codepoint rune, req Request, multiplier float64) (Grid, error) {
	size, err := ComputeRasterSize(req.Width, req.Height, req.AspectRatio)
	if err != nil {
		return nil, err
	}
	bitmap, err := r.Rasterize(codepoint, size*multiplier)
	if err != nil {
		return nil, err
	}
	samples, err := Sample(bitmap, req.Width, req.Height, req.AspectRatio)
	if err != nil {
		return nil, err
	}
	return buildGrid(samples, req.Mode), nil
}

// buildGrid maps and encodes every sampled intensity.
func buildGrid(samples [][]uint8, mode RenderMode) Grid {
	grid := make(Grid, len(samples))
	for y, row := range samples {
		line := make(Line, len(row))
		for x, v := range row {
			line[x] = Encode(MapIntensity(v, mode.Charset), v, mode.Color)
		}
		grid[y] = line
	}
	return grid
}

// RenderChar loads the font at fontPath and renders codepoint at the
// default aspect ratio and mode, returning plain lines.
func RenderChar(fontPath string, codepoint rune, width, height int) ([]string, error) {
	font, err := LoadFont(fontPath, BackendAuto)
	if err != nil {
		return nil, err
	}
	grid, err := RenderDefault(font, codepoint, width, height)
	if err != nil {
		return nil, err
	}
	return grid.Lines(), nil
}
