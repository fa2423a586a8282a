package rakuga

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// staticRasterizer returns the same bitmap for every request.
type staticRasterizer struct {
	bitmap Bitmap
}

func (s staticRasterizer) Rasterize(rune, float64) (Bitmap, error) {
	return s.bitmap, nil
}

// recordingRasterizer remembers the sizes it was asked for.
type recordingRasterizer struct {
	bitmap Bitmap
	err    error
	sizes  []float64
}

func (r *recordingRasterizer) Rasterize(_ rune, size float64) (Bitmap, error) {
	r.sizes = append(r.sizes, size)
	return r.bitmap, r.err
}

// bandRasterizer draws a square canvas of the requested size whose first
// inkRows pixel rows are fully inked. The ink does not scale with the
// canvas, so the sampled picture depends on the raster size.
type bandRasterizer struct {
	inkRows int
}

func (b bandRasterizer) Rasterize(_ rune, size float64) (Bitmap, error) {
	n := int(size)
	pix := make([]uint8, n*n)
	for y := 0; y < n && y < b.inkRows; y++ {
		for x := 0; x < n; x++ {
			pix[y*n+x] = 255
		}
	}
	return NewBitmap(pix, n, n)
}

func diagonal(t *testing.T) Bitmap {
	return mustBitmap(t, []uint8{255, 0, 0, 255}, 2, 2)
}

func TestRenderEmptyBitmap(t *testing.T) {
	t.Parallel()

	for _, cs := range []CharacterSet{Density, Blocks} {
		grid, err := Render(staticRasterizer{}, ' ', Request{
			Width: 5, Height: 3, AspectRatio: 2.0,
			Mode: RenderMode{Charset: cs},
		})
		if err != nil {
			t.Fatalf("%s: %v", cs, err)
		}
		want := []string{"     ", "     ", "     "}
		if diff := cmp.Diff(want, grid.Lines()); diff != "" {
			t.Errorf("%s: lines mismatch (-want +got):\n%s", cs, diff)
		}
	}
}

func TestRenderEmptyBitmapColorsAtZero(t *testing.T) {
	t.Parallel()

	for _, cm := range []ColorMode{Ansi256, Truecolor} {
		grid, err := Render(staticRasterizer{}, ' ', Request{
			Width: 3, Height: 2, AspectRatio: 2.0,
			Mode: RenderMode{Charset: Density, Color: cm},
		})
		if err != nil {
			t.Fatal(err)
		}
		want := Encode(' ', 0, cm)
		for y, line := range grid {
			for x, cell := range line {
				if cell != want {
					t.Errorf("%s (%d,%d) = %+v, want %+v", cm, x, y, cell, want)
				}
			}
		}
	}
}

func TestRenderDiagonalBlocks(t *testing.T) {
	t.Parallel()

	grid, err := Render(staticRasterizer{diagonal(t)}, 'x', Request{
		Width: 2, Height: 2, AspectRatio: 1.0,
		Mode: RenderMode{Charset: Blocks},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"█ ", " █"}
	if diff := cmp.Diff(want, grid.Lines()); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderDiagonalDensity(t *testing.T) {
	t.Parallel()

	grid, err := Render(staticRasterizer{diagonal(t)}, 'x', Request{
		Width: 2, Height: 2, AspectRatio: 1.0,
		Mode: RenderMode{Charset: Density},
	})
	if err != nil {
		t.Fatal(err)
	}
	darkest, lightest := RampRune(RampLen()-1), RampRune(0)
	want := Grid{
		{{Rune: darkest}, {Rune: lightest}},
		{{Rune: lightest}, {Rune: darkest}},
	}
	if diff := cmp.Diff(want, grid); diff != "" {
		t.Errorf("grid mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderDimensions(t *testing.T) {
	t.Parallel()

	rasterizers := []Rasterizer{
		staticRasterizer{},
		staticRasterizer{diagonal(t)},
		bandRasterizer{inkRows: 5},
	}
	for _, ras := range rasterizers {
		for _, aspect := range []float64{0.75, 1.0, 1.67, 2.0} {
			for w := 1; w <= 8; w++ {
				for h := 1; h <= 8; h++ {
					grid, err := Render(ras, 'x', Request{Width: w, Height: h, AspectRatio: aspect})
					if err != nil {
						t.Fatalf("%T %dx%d@%g: %v", ras, w, h, aspect, err)
					}
					if len(grid) != h {
						t.Fatalf("%T %dx%d@%g: %d lines", ras, w, h, aspect, len(grid))
					}
					for _, line := range grid {
						if len(line) != w {
							t.Fatalf("%T %dx%d@%g: line of %d cells", ras, w, h, aspect, len(line))
						}
					}
				}
			}
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	t.Parallel()

	req := Request{Width: 12, Height: 6, AspectRatio: 1.67,
		Mode: RenderMode{Charset: Density, Color: Ansi256}}
	first, err := Render(bandRasterizer{inkRows: 4}, 'x', req)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := Render(bandRasterizer{inkRows: 4}, 'x', req)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("render %d differs (-first +again):\n%s", i, diff)
		}
	}
}

func TestRenderAspectSensitivity(t *testing.T) {
	t.Parallel()

	ras := bandRasterizer{inkRows: 12}
	square, err := Render(ras, 'x', Request{Width: 10, Height: 10, AspectRatio: 1.0,
		Mode: RenderMode{Charset: Blocks}})
	if err != nil {
		t.Fatal(err)
	}
	tall, err := Render(ras, 'x', Request{Width: 10, Height: 10, AspectRatio: 2.0,
		Mode: RenderMode{Charset: Blocks}})
	if err != nil {
		t.Fatal(err)
	}

	// At aspect 1.0 the 10px canvas is entirely ink; at 2.0 the canvas is
	// 20px and only its top 12 rows are ink.
	if got := square[9].Text(); got != strings.Repeat("█", 10) {
		t.Errorf("aspect 1.0 last row = %q", got)
	}
	if got := tall[9].Text(); got != strings.Repeat(" ", 10) {
		t.Errorf("aspect 2.0 last row = %q", got)
	}
	if got := tall[0].Text(); got != strings.Repeat("█", 10) {
		t.Errorf("aspect 2.0 first row = %q", got)
	}
}

func TestRenderModesShareCharacters(t *testing.T) {
	t.Parallel()

	ras := bandRasterizer{inkRows: 7}
	for _, cs := range []CharacterSet{Density, Blocks} {
		base, err := Render(ras, 'x', Request{Width: 6, Height: 6, AspectRatio: 2,
			Mode: RenderMode{Charset: cs}})
		if err != nil {
			t.Fatal(err)
		}
		for _, cm := range []ColorMode{Ansi256, Truecolor} {
			colored, err := Render(ras, 'x', Request{Width: 6, Height: 6, AspectRatio: 2,
				Mode: RenderMode{Charset: cs, Color: cm}})
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(base.Text(), colored.Text()); diff != "" {
				t.Errorf("%s/%s characters differ (-plain +colored):\n%s", cs, cm, diff)
			}
		}
	}
}

func TestRenderRequestsComputedSize(t *testing.T) {
	t.Parallel()

	ras := &recordingRasterizer{}
	if _, err := Render(ras, 'x', Request{Width: 30, Height: 30, AspectRatio: 2.0}); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{60}, ras.sizes); diff != "" {
		t.Errorf("sizes mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderValidatesBeforeRasterizing(t *testing.T) {
	t.Parallel()

	bad := []Request{
		{Width: 0, Height: 3, AspectRatio: 2},
		{Width: 3, Height: -1, AspectRatio: 2},
		{Width: 3, Height: 3, AspectRatio: 0},
	}
	for _, req := range bad {
		ras := &recordingRasterizer{}
		_, err := Render(ras, 'x', req)
		if !errors.Is(err, ErrInvalidDimension) {
			t.Errorf("Render(%+v): expected ErrInvalidDimension, got %v", req, err)
		}
		if !errors.Is(req.Validate(), ErrInvalidDimension) {
			t.Errorf("Validate(%+v) should fail", req)
		}
		if len(ras.sizes) != 0 {
			t.Errorf("Render(%+v) called the rasterizer", req)
		}
	}
}

func TestRenderPropagatesRasterizerError(t *testing.T) {
	t.Parallel()

	ras := &recordingRasterizer{err: ErrGlyphNotFound}
	_, err := Render(ras, 'x', Request{Width: 3, Height: 3, AspectRatio: 2})
	if !errors.Is(err, ErrGlyphNotFound) || !errors.Is(err, ErrFontParse) {
		t.Errorf("Expected glyph error, got %v", err)
	}
}

func TestRenderDefault(t *testing.T) {
	t.Parallel()

	ras := &recordingRasterizer{bitmap: diagonal(t)}
	grid, err := RenderDefault(ras, 'x', 4, 3)
	if err != nil {
		t.Fatal(err)
	}
	// max(4, 3*2.0)
	if diff := cmp.Diff([]float64{6}, ras.sizes); diff != "" {
		t.Errorf("sizes mismatch (-want +got):\n%s", diff)
	}
	for _, line := range grid {
		for _, cell := range line {
			if cell.Color != (Color{}) {
				t.Fatalf("default mode should not color cells, got %+v", cell)
			}
		}
	}
}

func TestRenderConcurrent(t *testing.T) {
	t.Parallel()

	ras := bandRasterizer{inkRows: 9}
	req := Request{Width: 16, Height: 8, AspectRatio: 2,
		Mode: RenderMode{Charset: Density, Color: Truecolor}}
	want, err := Render(ras, 'x', req)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Render(ras, 'x', req)
			if err != nil {
				errs <- err
				return
			}
			if diff := cmp.Diff(want, got); diff != "" {
				errs <- errors.New(diff)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestDimensionErrorMessage(t *testing.T) {
	t.Parallel()

	err := Request{Width: 3, Height: 0, AspectRatio: 2}.Validate()
	if err == nil || !strings.Contains(err.Error(), "height must be positive, got 0") {
		t.Errorf("unexpected error: %v", err)
	}
}
