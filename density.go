package rakuga

import (
	"fmt"
	"strings"
)

// CharacterSet selects how an intensity becomes a character.
type CharacterSet int

const (
	// Density picks from the 70-step density ramp.
	Density CharacterSet = iota
	// Blocks thresholds at the midpoint: full block or space.
	Blocks
)

const (
	// BlockThreshold is the intensity above which Blocks emits FilledRune.
	BlockThreshold = 128
	// FilledRune is the ink character of the Blocks set.
	FilledRune = '█'
	// BlankRune is the lightest character of both sets.
	BlankRune = ' '
)

// densityRamp runs from lightest to darkest. The first entry is always a
// space so intensity 0 renders blank under both character sets.
var densityRamp = [...]rune{
	' ', '.', '\'', '`', '^', '"', ',', ':', ';', 'I',
	'l', '!', 'i', '>', '<', '~', '+', '_', '-', '?',
	']', '[', '}', '{', '1', ')', '(', '|', '\\', '/',
	't', 'f', 'j', 'r', 'x', 'n', 'u', 'v', 'c', 'z',
	'X', 'Y', 'U', 'J', 'C', 'L', 'Q', '0', 'O', 'Z',
	'm', 'w', 'q', 'p', 'd', 'b', 'k', 'h', 'a', 'o',
	'*', '#', 'M', 'W', '&', '8', '%', 'B', '@', '$',
}

// RampLen returns the number of entries in the density ramp.
func RampLen() int { return len(densityRamp) }

// RampRune returns ramp entry i, lightest first.
func RampRune(i int) rune { return densityRamp[i] }

// RampIndex maps an intensity onto the density ramp. Index 0 is the
// lightest entry and 255 maps to the last one; the mapping is monotonic.
func RampIndex(v uint8) int {
	return int(v) * (len(densityRamp) - 1) / 255
}

// MapIntensity converts an intensity to a display character under cs.
func MapIntensity(v uint8, cs CharacterSet) rune {
	switch cs {
	case Blocks:
		if v > BlockThreshold {
			return FilledRune
		}
		return BlankRune
	default:
		return densityRamp[RampIndex(v)]
	}
}

func (cs CharacterSet) String() string {
	switch cs {
	case Density:
		return "density"
	case Blocks:
		return "blocks"
	}
	return fmt.Sprintf("CharacterSet(%d)", int(cs))
}

// ParseCharacterSet parses "density" or "blocks" (case-insensitive).
func ParseCharacterSet(s string) (CharacterSet, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "density", "ramp", "":
		return Density, nil
	case "blocks", "block":
		return Blocks, nil
	}
	return Density, fmt.Errorf("unknown character set %q, options are density or blocks", s)
}
