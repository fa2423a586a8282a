package rakuga

import (
	"fmt"
	"math"
)

// Renderer holds a render configuration. It has no mutable state, so one
// Renderer can serve concurrent callers.
type Renderer struct {
	AspectRatio    float64
	Mode           RenderMode
	SizeMultiplier float64
}

// RendererOption is a functional option for configuring a Renderer.
type RendererOption func(*Renderer)

// NewRenderer creates a Renderer with the given options.
// Default values: AspectRatio=2.0, Mode={Density, NoColor}, SizeMultiplier=1.0.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		AspectRatio:    DefaultAspectRatio,
		Mode:           DefaultMode,
		SizeMultiplier: 1.0,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithAspectRatio sets the height-to-width ratio of a terminal cell.
func WithAspectRatio(aspect float64) RendererOption {
	return func(r *Renderer) {
		r.AspectRatio = aspect
	}
}

// WithCharacterSet sets the character set.
func WithCharacterSet(cs CharacterSet) RendererOption {
	return func(r *Renderer) {
		r.Mode.Charset = cs
	}
}

// WithColorMode sets the color mode.
func WithColorMode(cm ColorMode) RendererOption {
	return func(r *Renderer) {
		r.Mode.Color = cm
	}
}

// WithMode sets both output policies at once.
func WithMode(mode RenderMode) RendererOption {
	return func(r *Renderer) {
		r.Mode = mode
	}
}

// WithSizeMultiplier scales the raster size handed to the rasterizer.
// 1.0 requests exactly the size ComputeRasterSize returns; older builds
// padded by 1.2.
func WithSizeMultiplier(m float64) RendererOption {
	return func(r *Renderer) {
		r.SizeMultiplier = m
	}
}

// Request builds the Request this renderer would issue for a grid.
func (r *Renderer) Request(width, height int) Request {
	return Request{
		Width:       width,
		Height:      height,
		AspectRatio: r.AspectRatio,
		Mode:        r.Mode,
	}
}

// Render renders codepoint with ras into a width x height grid.
func (r *Renderer) Render(ras Rasterizer, codepoint rune, width, height int) (Grid, error) {
	if !(r.SizeMultiplier > 0) || math.IsInf(r.SizeMultiplier, 1) {
		return nil, &DimensionError{Field: "size_multiplier", Value: r.SizeMultiplier}
	}
	return renderScaled(ras, codepoint, r.Request(width, height), r.SizeMultiplier)
}

func (r *Renderer) String() string {
	return fmt.Sprintf("aspect=%g charset=%s color=%s", r.AspectRatio, r.Mode.Charset, r.Mode.Color)
}
