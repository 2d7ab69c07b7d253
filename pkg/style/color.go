// Package style turns loosely-typed configuration values into terminal
// colors and text attributes, and encodes them as SGR escape sequences.
package style

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ColorKind identifies which variant a Color holds.
type ColorKind uint8

const (
	ColorNone    ColorKind = iota // no color; the terminal default applies
	ColorNamed                    // one of the 16 named palette entries
	ColorIndexed                  // 8-bit palette index (ESC[38;5;n)
	ColorRGB                      // 24-bit color (ESC[38;2;r;g;b)
)

// Color is a terminal color. The zero value is ColorNone.
type Color struct {
	Kind    ColorKind
	Index   uint8 // palette position for ColorNamed (0-15) and ColorIndexed
	R, G, B uint8
}

// stColorNames lists the named colors in palette order, so a name's index
// in this table is its palette position.
var stColorNames = [16]string{
	"black", "red", "green", "yellow", "blue", "purple", "cyan", "white",
	"bright_black", "bright_red", "bright_green", "bright_yellow",
	"bright_blue", "bright_purple", "bright_cyan", "bright_white",
}

var stIntegerPattern = regexp.MustCompile(`^[+-]?[0-9]+$`)

// Named returns the named palette color at position i. Positions above 15
// wrap into the extended palette and are returned as indexed colors.
func Named(i uint8) Color {
	if i > 15 {
		return Indexed(i)
	}
	return Color{Kind: ColorNamed, Index: i}
}

// Indexed returns the 256-color palette entry n.
func Indexed(n uint8) Color {
	return Color{Kind: ColorIndexed, Index: n}
}

// RGB returns a 24-bit color.
func RGB(r, g, b uint8) Color {
	return Color{Kind: ColorRGB, R: r, G: g, B: b}
}

// IsZero reports whether c is ColorNone.
func (c Color) IsZero() bool {
	return c.Kind == ColorNone
}

// String returns the configuration spelling of c.
func (c Color) String() string {
	switch c.Kind {
	case ColorNamed:
		return stColorNames[c.Index]
	case ColorIndexed:
		return strconv.Itoa(int(c.Index))
	case ColorRGB:
		return fmt.Sprintf("(%d, %d, %d)", c.R, c.G, c.B)
	default:
		return "none"
	}
}

// ParseColor parses a color-valued configuration string. It tries, in
// order: a case-insensitive color name, a palette index 0-255, a
// comma-separated (optionally parenthesized) RGB triple and a #rrggbb hex
// value.
//
// Input that looks like one of the numeric forms but does not fit it fails
// with ErrInvalidForm; anything else fails with ErrNoSuchMatch.
func ParseColor(s string) (Color, error) {
	trimmed := strings.TrimSpace(s)

	lower := strings.ToLower(trimmed)
	for i, name := range stColorNames {
		if lower == name {
			return Named(uint8(i)), nil
		}
	}

	if stIntegerPattern.MatchString(trimmed) {
		n, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return Color{}, stError(s, ErrInvalidForm)
		}
		c, err := ColorFromInt(n)
		if err != nil {
			return Color{}, stError(s, ErrInvalidForm)
		}
		return c, nil
	}

	if strings.ContainsAny(trimmed, ",()") {
		return stParseRGB(s)
	}

	if strings.HasPrefix(trimmed, "#") {
		return stParseHex(s, trimmed)
	}

	return Color{}, stError(s, ErrNoSuchMatch)
}

// ColorFromInt converts an integer configuration value to an indexed color.
// Values outside 0-255 fail with ErrInvalidForm.
func ColorFromInt(n int64) (Color, error) {
	if n < 0 || n > 255 {
		return Color{}, stError(strconv.FormatInt(n, 10), ErrInvalidForm)
	}
	return Indexed(uint8(n)), nil
}

// ColorFromInts converts a three-integer configuration array to an RGB
// color. Wrong arity or components outside 0-255 fail with ErrInvalidForm.
func ColorFromInts(vals []int64) (Color, error) {
	input := fmt.Sprint(vals)
	if len(vals) != 3 {
		return Color{}, stError(input, ErrInvalidForm)
	}
	var rgb [3]uint8
	for i, v := range vals {
		if v < 0 || v > 255 {
			return Color{}, stError(input, ErrInvalidForm)
		}
		rgb[i] = uint8(v)
	}
	return RGB(rgb[0], rgb[1], rgb[2]), nil
}

// stParseRGB parses "(r, g, b)" or "r, g, b". Parentheses and spaces are
// stripped from every component, so "(0, 0, 0))" is accepted while
// "(0, 0, 0,)" is not.
func stParseRGB(s string) (Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Color{}, stError(s, ErrInvalidForm)
	}

	var rgb [3]uint8
	for i, part := range parts {
		cleaned := strings.Map(func(r rune) rune {
			if r == '(' || r == ')' || r == ' ' {
				return -1
			}
			return r
		}, part)

		v, err := strconv.ParseUint(cleaned, 10, 8)
		if err != nil {
			return Color{}, stError(s, ErrInvalidForm)
		}
		rgb[i] = uint8(v)
	}

	return RGB(rgb[0], rgb[1], rgb[2]), nil
}

// stParseHex parses "#rrggbb".
func stParseHex(input, hex string) (Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return Color{}, stError(input, ErrInvalidForm)
	}

	var rgb [3]uint8
	for i := range rgb {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return Color{}, stError(input, ErrInvalidForm)
		}
		rgb[i] = uint8(v)
	}
	return RGB(rgb[0], rgb[1], rgb[2]), nil
}
