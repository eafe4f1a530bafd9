// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package color

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrOutOfRange is returned for RGB values outside [0, 0xFFFFFF].
	ErrOutOfRange = errors.New("color: value out of 24-bit range")
	// ErrInvalidHex is returned when a hex color string cannot be parsed.
	ErrInvalidHex = errors.New("color: invalid hex color")
	// ErrUnknownName is returned for color names that are not in the palette.
	ErrUnknownName = errors.New("color: unknown color name")
)

// MaxRGB is the largest valid RGB value.
const MaxRGB = 0xFFFFFF

// =============================================================================
// COLOR TYPE
// =============================================================================

// Color is a 24-bit RGB color. The zero Color is the default color: it is what
// a reset code produces and what text without any color code carries. Default
// is distinct from every RGB value, black included.
//
// Color is comparable; two colors are equal when both are default or both carry
// the same RGB value.
type Color struct {
	rgb uint32
	set bool
}

// Default is the default color.
var Default = Color{}

// RGB returns the color for v, which must be in [0, MaxRGB].
func RGB(v uint32) (Color, error) {
	if v > MaxRGB {
		return Color{}, fmt.Errorf("%w: %#x", ErrOutOfRange, v)
	}
	return Color{rgb: v, set: true}, nil
}

// MustRGB is like RGB but panics on an out-of-range value. Intended for
// constants and tests.
func MustRGB(v uint32) Color {
	c, err := RGB(v)
	if err != nil {
		panic(err)
	}
	return c
}

// IsDefault reports whether c is the default color.
func (c Color) IsDefault() bool {
	return !c.set
}

// Value returns the RGB value. The default color reports 0 and false.
func (c Color) Value() (uint32, bool) {
	return c.rgb, c.set
}

// Code returns the legacy code for c when c is exactly a palette color.
// Nearest-match is never used here.
func (c Color) Code() (byte, bool) {
	if !c.set {
		return 0, false
	}
	code, ok := byRGB[c.rgb]
	return code, ok
}

// Name returns the palette name for c ("red", "dark_blue", ...), or "" when c is
// not exactly a palette color.
func (c Color) Name() string {
	code, ok := c.Code()
	if !ok {
		return ""
	}
	return palette[codeIndex(code)].name
}

// Hex returns c as "#RRGGBB". The default color returns "".
func (c Color) Hex() string {
	if !c.set {
		return ""
	}
	return fmt.Sprintf("#%06X", c.rgb)
}

// String returns the palette name when there is one, otherwise the hex form.
func (c Color) String() string {
	if !c.set {
		return "default"
	}
	if name := c.Name(); name != "" {
		return name
	}
	return c.Hex()
}

// colorful converts c for perceptual math.
func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64((c.rgb>>16)&0xFF) / 255.0,
		G: float64((c.rgb>>8)&0xFF) / 255.0,
		B: float64(c.rgb&0xFF) / 255.0,
	}
}

// =============================================================================
// PARSING
// =============================================================================

// ParseHex parses "#RRGGBB" or "#RGB" (the leading '#' is optional). In the
// short form each digit is doubled, so "#4BC" is 0x44BBCC.
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6:
	default:
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	c, err := colorful.Hex("#" + h)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	r, g, b := c.RGB255()
	return RGB(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// Parse accepts a palette name ("red"), a legacy code character ("c") or a hex
// color. An empty string or "reset" yields the default color.
func Parse(s string) (Color, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "" || strings.EqualFold(s, "reset"):
		return Default, nil
	case strings.HasPrefix(s, "#"):
		return ParseHex(s)
	case len(s) == 1:
		if c, ok := FromCode(s[0]); ok {
			return c, nil
		}
	}
	if c, ok := FromName(s); ok {
		return c, nil
	}
	return Color{}, fmt.Errorf("%w: %q", ErrUnknownName, s)
}
