package rakuga

import (
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Backend selects the font parsing and rasterizing library.
type Backend int

const (
	// BackendAuto tries freetype first and falls back to opentype.
	BackendAuto Backend = iota
	// BackendFreetype uses github.com/golang/freetype (TrueType outlines).
	BackendFreetype
	// BackendOpentype uses golang.org/x/image/font/opentype (TrueType and CFF).
	BackendOpentype
)

func (b Backend) String() string {
	switch b {
	case BackendAuto:
		return "auto"
	case BackendFreetype:
		return "freetype"
	case BackendOpentype:
		return "opentype"
	}
	return fmt.Sprintf("Backend(%d)", int(b))
}

// ParseBackend parses "auto", "freetype" or "opentype".
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "":
		return BackendAuto, nil
	case "freetype", "truetype":
		return BackendFreetype, nil
	case "opentype", "sfnt":
		return BackendOpentype, nil
	}
	return BackendAuto, fmt.Errorf("unknown font backend %q, options are auto, freetype or opentype", s)
}

// Font is a parsed font that rasterizes single glyphs. A Font is read-only
// after parsing; every Rasterize call builds its own face, so a Font may be
// shared between goroutines.
type Font struct {
	name    string
	backend Backend
	ttf     *truetype.Font
	otf     *opentype.Font
}

// LoadFont reads and parses the font file at path.
func LoadFont(path string, backend Backend) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read font: %w", ErrFontIO, err)
	}
	f, err := ParseFont(data, backend)
	if err != nil {
		return nil, err
	}
	Logger().Debug("font loaded", "path", path, "name", f.name, "backend", f.backend)
	return f, nil
}

// ParseFont parses TTF or OTF data.
func ParseFont(data []byte, backend Backend) (*Font, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty font data", ErrFontParse)
	}
	switch backend {
	case BackendFreetype:
		return parseTrueType(data)
	case BackendOpentype:
		return parseOpenType(data)
	case BackendAuto:
		f, err := parseTrueType(data)
		if err == nil {
			return f, nil
		}
		Logger().Debug("freetype parse failed, trying opentype", "err", err)
		return parseOpenType(data)
	}
	return nil, fmt.Errorf("%w: unknown backend %v", ErrFontParse, backend)
}

func parseTrueType(data []byte) (*Font, error) {
	ttf, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse font: %w", ErrFontParse, err)
	}
	return &Font{
		name:    ttf.Name(truetype.NameIDFontFullName),
		backend: BackendFreetype,
		ttf:     ttf,
	}, nil
}

func parseOpenType(data []byte) (*Font, error) {
	otf, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse font: %w", ErrFontParse, err)
	}
	var buf sfnt.Buffer
	name, _ := otf.Name(&buf, sfnt.NameIDFull)
	return &Font{
		name:    name,
		backend: BackendOpentype,
		otf:     otf,
	}, nil
}

// Name returns the full font name, or "" if the font does not carry one.
func (f *Font) Name() string { return f.name }

// Backend returns the library that parsed the font.
func (f *Font) Backend() Backend { return f.backend }

// HasGlyph reports whether the font maps r to a real glyph.
func (f *Font) HasGlyph(r rune) bool {
	if f.ttf != nil {
		return f.ttf.Index(r) != 0
	}
	var buf sfnt.Buffer
	idx, err := f.otf.GlyphIndex(&buf, r)
	return err == nil && idx != 0
}

// Rasterize renders r at size pixels per em (72 DPI, unhinted) and returns
// the glyph's coverage cropped to its ink bounds. Glyphs without ink, such
// as space, come back as an empty Bitmap.
func (f *Font) Rasterize(r rune, size float64) (Bitmap, error) {
	if !(size > 0) {
		return Bitmap{}, &DimensionError{Field: "size", Value: size}
	}
	if !f.HasGlyph(r) {
		return Bitmap{}, fmt.Errorf("%w: %q (U+%04X)", ErrGlyphNotFound, r, r)
	}

	face, err := f.newFace(size)
	if err != nil {
		return Bitmap{}, err
	}
	defer face.Close()

	dr, mask, maskp, _, ok := face.Glyph(fixed.Point26_6{}, r)
	if !ok {
		// The glyph exists but has no outline area to fill.
		Logger().Debug("glyph has no ink", "rune", string(r), "size", size)
		return Bitmap{}, nil
	}
	return maskToBitmap(dr, mask, maskp), nil
}

func (f *Font) newFace(size float64) (font.Face, error) {
	if f.ttf != nil {
		return truetype.NewFace(f.ttf, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingNone,
		}), nil
	}
	face, err := opentype.NewFace(f.otf, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFontParse, err)
	}
	return face, nil
}

// maskToBitmap copies the dr-sized region of mask starting at maskp. The
// copy is required: truetype faces reuse their mask between calls.
func maskToBitmap(dr image.Rectangle, mask image.Image, maskp image.Point) Bitmap {
	w, h := dr.Dx(), dr.Dy()
	if w <= 0 || h <= 0 || mask == nil {
		return Bitmap{}
	}
	pix := make([]uint8, w*h)
	if alpha, ok := mask.(*image.Alpha); ok {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				pix[y*w+x] = alpha.AlphaAt(maskp.X+x, maskp.Y+y).A
			}
		}
	} else {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				_, _, _, a := mask.At(maskp.X+x, maskp.Y+y).RGBA()
				pix[y*w+x] = uint8(a >> 8)
			}
		}
	}
	return Bitmap{Pix: pix, Width: w, Height: h}
}
