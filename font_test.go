package rakuga

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func loadGoRegular(t *testing.T, backend Backend) *Font {
	t.Helper()
	f, err := ParseFont(goregular.TTF, backend)
	require.NoError(t, err)
	return f
}

func writeGoRegular(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "goregular.ttf")
	require.NoError(t, os.WriteFile(path, goregular.TTF, 0o644))
	return path
}

func maxInk(b Bitmap) uint8 {
	var m uint8
	for _, v := range b.Pix {
		m = max(m, v)
	}
	return m
}

func TestParseFontBackends(t *testing.T) {
	t.Parallel()

	tests := []struct {
		backend Backend
		want    Backend
	}{
		{BackendAuto, BackendFreetype},
		{BackendFreetype, BackendFreetype},
		{BackendOpentype, BackendOpentype},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.backend.String(), func(t *testing.T) {
			t.Parallel()
			f := loadGoRegular(t, tt.backend)
			assert.Equal(t, tt.want, f.Backend())
			assert.NotEmpty(t, f.Name())
			assert.True(t, f.HasGlyph('A'))
			assert.False(t, f.HasGlyph('あ'))
		})
	}
}

func TestFontRasterizeGlyph(t *testing.T) {
	t.Parallel()

	for _, backend := range []Backend{BackendFreetype, BackendOpentype} {
		backend := backend
		t.Run(backend.String(), func(t *testing.T) {
			t.Parallel()
			f := loadGoRegular(t, backend)
			b, err := f.Rasterize('A', 48)
			require.NoError(t, err)
			require.False(t, b.Empty())
			assert.Len(t, b.Pix, b.Width*b.Height)
			assert.Greater(t, maxInk(b), uint8(128))
			// Cropped to ink bounds, so never larger than a few ems.
			assert.LessOrEqual(t, b.Height, 96)
		})
	}
}

func TestFontRasterizeSpace(t *testing.T) {
	t.Parallel()

	for _, backend := range []Backend{BackendFreetype, BackendOpentype} {
		f := loadGoRegular(t, backend)
		b, err := f.Rasterize(' ', 48)
		require.NoError(t, err, backend)
		assert.Zero(t, maxInk(b), backend)
	}
}

func TestFontRasterizeMissingGlyph(t *testing.T) {
	t.Parallel()

	f := loadGoRegular(t, BackendAuto)
	_, err := f.Rasterize('あ', 48)
	assert.ErrorIs(t, err, ErrGlyphNotFound)
	assert.ErrorIs(t, err, ErrFontParse)
	assert.Contains(t, err.Error(), "U+3042")
}

func TestFontRasterizeInvalidSize(t *testing.T) {
	t.Parallel()

	f := loadGoRegular(t, BackendAuto)
	for _, size := range []float64{0, -3} {
		_, err := f.Rasterize('A', size)
		assert.ErrorIs(t, err, ErrInvalidDimension)
	}
}

func TestParseFontErrors(t *testing.T) {
	t.Parallel()

	for _, backend := range []Backend{BackendAuto, BackendFreetype, BackendOpentype} {
		_, err := ParseFont(nil, backend)
		assert.ErrorIs(t, err, ErrFontParse, backend)

		_, err = ParseFont([]byte("definitely not a font file"), backend)
		assert.ErrorIs(t, err, ErrFontParse, backend)
		assert.False(t, errors.Is(err, ErrFontIO), backend)
	}
}

func TestLoadFont(t *testing.T) {
	t.Parallel()

	f, err := LoadFont(writeGoRegular(t), BackendAuto)
	require.NoError(t, err)
	assert.Contains(t, f.Name(), "Go")

	_, err = LoadFont(filepath.Join(t.TempDir(), "missing.ttf"), BackendAuto)
	assert.ErrorIs(t, err, ErrFontIO)
	assert.False(t, errors.Is(err, ErrFontParse))
}

func TestParseBackend(t *testing.T) {
	t.Parallel()

	tests := map[string]Backend{
		"":         BackendAuto,
		"auto":     BackendAuto,
		"FreeType": BackendFreetype,
		"truetype": BackendFreetype,
		"opentype": BackendOpentype,
		" sfnt ":   BackendOpentype,
	}
	for in, want := range tests {
		got, err := ParseBackend(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseBackend("cairo")
	assert.Error(t, err)
}

func TestRenderChar(t *testing.T) {
	t.Parallel()

	lines, err := RenderChar(writeGoRegular(t), 'A', 20, 20)
	require.NoError(t, err)
	require.Len(t, lines, 20)

	ink := 0
	for _, line := range lines {
		assert.Equal(t, 20, len([]rune(line)))
		assert.NotContains(t, line, ESC)
		ink += len(strings.TrimSpace(line))
	}
	assert.Positive(t, ink, "expected some non-blank cells:\n%s", strings.Join(lines, "\n"))
}

func TestRenderCharErrors(t *testing.T) {
	t.Parallel()

	path := writeGoRegular(t)

	_, err := RenderChar(path, 'あ', 10, 10)
	assert.ErrorIs(t, err, ErrGlyphNotFound)

	_, err = RenderChar(path, 'A', 0, 10)
	assert.ErrorIs(t, err, ErrInvalidDimension)

	_, err = RenderChar(filepath.Join(t.TempDir(), "nope.ttf"), 'A', 10, 10)
	assert.ErrorIs(t, err, ErrFontIO)
}

func TestFontRasterizeConcurrent(t *testing.T) {
	t.Parallel()

	for _, backend := range []Backend{BackendFreetype, BackendOpentype} {
		f := loadGoRegular(t, backend)
		want, err := f.Rasterize('g', 40)
		require.NoError(t, err)

		var wg sync.WaitGroup
		results := make([]Bitmap, 8)
		errs := make([]error, 8)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], errs[i] = f.Rasterize('g', 40)
			}(i)
		}
		wg.Wait()
		for i := range results {
			require.NoError(t, errs[i])
			assert.Equal(t, want, results[i], "%s goroutine %d", backend, i)
		}
	}
}
