// Package config loads the optional JSON configuration file of the rakuga
// command. Every field is optional; accessors fall back to built-in
// defaults so partial files are safe.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/muesli/termenv"

	"github.com/wbrown/rakuga"
)

// Built-in defaults, matching the command-line defaults.
const (
	DefaultWidth    = 30
	DefaultHeight   = 30
	DefaultFontPath = "fonts/noto_sans_jp/NotoSansJP-VariableFont_wght.ttf"
	DefaultCharset  = "density"
	DefaultColor    = "none"
	DefaultBackend  = "auto"

	// ColorAuto selects the richest mode the terminal advertises.
	ColorAuto = "auto"

	maxFileSize = 1 * 1024 * 1024 // 1MB
)

// Config mirrors the command-line flags.
type Config struct {
	Width          *int     `json:"width,omitempty"`
	Height         *int     `json:"height,omitempty"`
	AspectRatio    *float64 `json:"aspect_ratio,omitempty"`
	Charset        *string  `json:"charset,omitempty"`
	Color          *string  `json:"color,omitempty"`
	FontPath       *string  `json:"font,omitempty"`
	Backend        *string  `json:"backend,omitempty"`
	SizeMultiplier *float64 `json:"size_multiplier,omitempty"`
	InvertImage    *bool    `json:"invert_image,omitempty"`
}

// Load reads a Config from a JSON file. The path must have a .json
// extension and the file must be under 1MB.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks every field that is set.
func (c *Config) Validate() error {
	if c.Width != nil && *c.Width <= 0 {
		return fmt.Errorf("width must be positive, got %d", *c.Width)
	}
	if c.Height != nil && *c.Height <= 0 {
		return fmt.Errorf("height must be positive, got %d", *c.Height)
	}
	if c.AspectRatio != nil && !isPositiveFinite(*c.AspectRatio) {
		return fmt.Errorf("aspect_ratio must be positive, got %g", *c.AspectRatio)
	}
	if c.SizeMultiplier != nil && !isPositiveFinite(*c.SizeMultiplier) {
		return fmt.Errorf("size_multiplier must be positive, got %g", *c.SizeMultiplier)
	}
	if c.Charset != nil {
		if _, err := rakuga.ParseCharacterSet(*c.Charset); err != nil {
			return err
		}
	}
	if c.Color != nil && *c.Color != ColorAuto {
		if _, err := rakuga.ParseColorMode(*c.Color); err != nil {
			return err
		}
	}
	if c.Backend != nil {
		if _, err := rakuga.ParseBackend(*c.Backend); err != nil {
			return err
		}
	}
	return nil
}

func isPositiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// GetWidth returns the width or DefaultWidth.
func (c *Config) GetWidth() int {
	if c.Width == nil {
		return DefaultWidth
	}
	return *c.Width
}

// GetHeight returns the height or DefaultHeight.
func (c *Config) GetHeight() int {
	if c.Height == nil {
		return DefaultHeight
	}
	return *c.Height
}

// GetAspectRatio returns the aspect ratio or rakuga.DefaultAspectRatio.
func (c *Config) GetAspectRatio() float64 {
	if c.AspectRatio == nil {
		return rakuga.DefaultAspectRatio
	}
	return *c.AspectRatio
}

func (c *Config) GetSizeMultiplier() float64 {
	if c.SizeMultiplier == nil {
		return 1.0
	}
	return *c.SizeMultiplier
}

func (c *Config) GetFontPath() string {
	if c.FontPath == nil {
		return DefaultFontPath
	}
	return *c.FontPath
}

func (c *Config) GetInvertImage() bool {
	return c.InvertImage != nil && *c.InvertImage
}

// GetCharset returns the parsed character set, Density when unset.
func (c *Config) GetCharset() rakuga.CharacterSet {
	if c.Charset == nil {
		return rakuga.Density
	}
	cs, _ := rakuga.ParseCharacterSet(*c.Charset)
	return cs
}

// GetBackend returns the parsed font backend, BackendAuto when unset.
func (c *Config) GetBackend() rakuga.Backend {
	if c.Backend == nil {
		return rakuga.BackendAuto
	}
	b, _ := rakuga.ParseBackend(*c.Backend)
	return b
}

// GetColorMode resolves the color mode. "auto" consults the terminal
// profile from the environment.
func (c *Config) GetColorMode() rakuga.ColorMode {
	if c.Color == nil {
		return rakuga.NoColor
	}
	if *c.Color == ColorAuto {
		return rakuga.ColorModeForProfile(termenv.EnvColorProfile())
	}
	cm, _ := rakuga.ParseColorMode(*c.Color)
	return cm
}

// RendererOptions converts the configuration into renderer options.
func (c *Config) RendererOptions() []rakuga.RendererOption {
	return []rakuga.RendererOption{
		rakuga.WithAspectRatio(c.GetAspectRatio()),
		rakuga.WithCharacterSet(c.GetCharset()),
		rakuga.WithColorMode(c.GetColorMode()),
		rakuga.WithSizeMultiplier(c.GetSizeMultiplier()),
	}
}

func ptrInt(v int) *int             { return &v }
func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrBool(v bool) *bool          { return &v }

// Override copies every field set in other onto c.
func (c *Config) Override(other *Config) {
	if other == nil {
		return
	}
	if other.Width != nil {
		c.Width = ptrInt(*other.Width)
	}
	if other.Height != nil {
		c.Height = ptrInt(*other.Height)
	}
	if other.AspectRatio != nil {
		c.AspectRatio = ptrFloat64(*other.AspectRatio)
	}
	if other.Charset != nil {
		c.Charset = ptrString(*other.Charset)
	}
	if other.Color != nil {
		c.Color = ptrString(*other.Color)
	}
	if other.FontPath != nil {
		c.FontPath = ptrString(*other.FontPath)
	}
	if other.Backend != nil {
		c.Backend = ptrString(*other.Backend)
	}
	if other.SizeMultiplier != nil {
		c.SizeMultiplier = ptrFloat64(*other.SizeMultiplier)
	}
	if other.InvertImage != nil {
		c.InvertImage = ptrBool(*other.InvertImage)
	}
}
