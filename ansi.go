package rakuga

import (
	"fmt"
	"html"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

const (
	// ESC introduces every control sequence written by Line.String.
	ESC = "\u001b"

	// reset clears all attributes at the end of a colored run.
	reset = ESC + "[0m"

	// grayRampBase is the first of the 24 grayscale entries (232-255) of
	// the xterm 256-color palette.
	grayRampBase = 232
	grayRampLen  = 24
)

// ColorMode selects the color annotation attached to each cell.
type ColorMode int

const (
	NoColor ColorMode = iota
	Ansi256
	Truecolor
)

func (cm ColorMode) String() string {
	switch cm {
	case NoColor:
		return "none"
	case Ansi256:
		return "ansi256"
	case Truecolor:
		return "truecolor"
	}
	return fmt.Sprintf("ColorMode(%d)", int(cm))
}

// ParseColorMode parses "none", "ansi256" or "truecolor" (case-insensitive).
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return NoColor, nil
	case "ansi256", "256":
		return Ansi256, nil
	case "truecolor", "24bit", "rgb":
		return Truecolor, nil
	}
	return NoColor, fmt.Errorf(
		"unknown color mode %q, options are none, ansi256 or truecolor", s)
}

// ColorModeForProfile maps a detected terminal profile to the richest
// grayscale mode it supports.
func ColorModeForProfile(p termenv.Profile) ColorMode {
	switch p {
	case termenv.TrueColor:
		return Truecolor
	case termenv.ANSI256:
		return Ansi256
	}
	return NoColor
}

// Color is the foreground annotation of a cell. Value is the palette index
// for Ansi256 and the gray level for Truecolor. The zero Color carries no
// annotation.
type Color struct {
	Mode  ColorMode
	Value uint8
}

// Sequence returns the SGR parameters for the color, without the leading
// ESC[ or trailing m, or "" when the color is empty.
func (c Color) Sequence() string {
	switch c.Mode {
	case Ansi256:
		return termenv.ANSI256Color(c.Value).Sequence(false)
	case Truecolor:
		return fmt.Sprintf("38;2;%d;%d;%d", c.Value, c.Value, c.Value)
	}
	return ""
}

// Hex returns the color as #rrggbb, or "" when the color is empty. Ansi256
// indices are resolved through the xterm grayscale ramp (8 + 10*n).
func (c Color) Hex() string {
	var level uint8
	switch c.Mode {
	case Ansi256:
		level = uint8(8 + 10*(int(c.Value)-grayRampBase))
	case Truecolor:
		level = c.Value
	default:
		return ""
	}
	v := float64(level) / 255.0
	return colorful.Color{R: v, G: v, B: v}.Hex()
}

// Cell is one character of output with its optional color.
type Cell struct {
	Rune  rune
	Color Color
}

// Encode pairs r with a color derived from intensity v. The character is
// never changed; only the annotation depends on cm.
func Encode(r rune, v uint8, cm ColorMode) Cell {
	switch cm {
	case Ansi256:
		shade := int(v) * (grayRampLen - 1) / 255
		return Cell{Rune: r, Color: Color{Mode: Ansi256, Value: uint8(grayRampBase + shade)}}
	case Truecolor:
		return Cell{Rune: r, Color: Color{Mode: Truecolor, Value: v}}
	}
	return Cell{Rune: r}
}

// Line is one row of cells.
type Line []Cell

// String renders the line for a terminal. Adjacent cells that share a color
// are emitted under a single escape sequence, and a line that used any
// color ends with a reset. Uncolored lines contain no escape sequences.
func (l Line) String() string {
	var sb strings.Builder
	sb.Grow(len(l))
	current := ""
	for _, c := range l {
		seq := c.Color.Sequence()
		if seq != current {
			if seq == "" {
				sb.WriteString(reset)
			} else {
				sb.WriteString(ESC)
				sb.WriteByte('[')
				sb.WriteString(seq)
				sb.WriteByte('m')
			}
			current = seq
		}
		sb.WriteRune(c.Rune)
	}
	if current != "" {
		sb.WriteString(reset)
	}
	return sb.String()
}

// HTML renders the line as escaped HTML text. Colored runs are wrapped in
// a span whose color is the run's Hex value, merged the same way as String.
func (l Line) HTML() string {
	var sb strings.Builder
	for i := 0; i < len(l); {
		j := i + 1
		for j < len(l) && l[j].Color == l[i].Color {
			j++
		}
		text := html.EscapeString(l[i:j].Text())
		if hex := l[i].Color.Hex(); hex != "" {
			fmt.Fprintf(&sb, `<span style="color:%s">%s</span>`, hex, text)
		} else {
			sb.WriteString(text)
		}
		i = j
	}
	return sb.String()
}

// Text returns the characters of the line without color.
func (l Line) Text() string {
	rs := make([]rune, len(l))
	for i, c := range l {
		rs[i] = c.Rune
	}
	return string(rs)
}

// Grid is the rendered output: Height lines of Width cells each.
type Grid []Line

// Lines renders every line with String.
func (g Grid) Lines() []string {
	out := make([]string, len(g))
	for i, l := range g {
		out[i] = l.String()
	}
	return out
}

// Text returns every line without color.
func (g Grid) Text() []string {
	out := make([]string, len(g))
	for i, l := range g {
		out[i] = l.Text()
	}
	return out
}

// String joins the rendered lines with newlines.
func (g Grid) String() string {
	return strings.Join(g.Lines(), "\n")
}

// HTML returns the grid as a <pre> block, one line per row.
func (g Grid) HTML() string {
	var sb strings.Builder
	sb.WriteString("<pre>\n")
	for _, l := range g {
		sb.WriteString(l.HTML())
		sb.WriteByte('\n')
	}
	sb.WriteString("</pre>\n")
	return sb.String()
}
