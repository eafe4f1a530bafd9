// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package color

import "strings"

// =============================================================================
// LEGACY PALETTE
// =============================================================================

type paletteEntry struct {
	code byte
	name string
	rgb  uint32
}

// palette is indexed by codeIndex.
var palette = [16]paletteEntry{
	{'0', "black", 0x000000},
	{'1', "dark_blue", 0x0000AA},
	{'2', "dark_green", 0x00AA00},
	{'3', "dark_aqua", 0x00AAAA},
	{'4', "dark_red", 0xAA0000},
	{'5', "dark_purple", 0xAA00AA},
	{'6', "gold", 0xFFAA00},
	{'7', "gray", 0xAAAAAA},
	{'8', "dark_gray", 0x555555},
	{'9', "blue", 0x5555FF},
	{'a', "green", 0x55FF55},
	{'b', "aqua", 0x55FFFF},
	{'c', "red", 0xFF5555},
	{'d', "light_purple", 0xFF55FF},
	{'e', "yellow", 0xFFFF55},
	{'f', "white", 0xFFFFFF},
}

// Named palette colors.
var (
	Black       = MustRGB(0x000000)
	DarkBlue    = MustRGB(0x0000AA)
	DarkGreen   = MustRGB(0x00AA00)
	DarkAqua    = MustRGB(0x00AAAA)
	DarkRed     = MustRGB(0xAA0000)
	DarkPurple  = MustRGB(0xAA00AA)
	Gold        = MustRGB(0xFFAA00)
	Gray        = MustRGB(0xAAAAAA)
	DarkGray    = MustRGB(0x555555)
	Blue        = MustRGB(0x5555FF)
	Green       = MustRGB(0x55FF55)
	Aqua        = MustRGB(0x55FFFF)
	Red         = MustRGB(0xFF5555)
	LightPurple = MustRGB(0xFF55FF)
	Yellow      = MustRGB(0xFFFF55)
	White       = MustRGB(0xFFFFFF)
)

var (
	byRGB  = make(map[uint32]byte, len(palette))
	byName = make(map[string]byte, len(palette))
)

func init() {
	for _, e := range palette {
		byRGB[e.rgb] = e.code
		byName[e.name] = e.code
	}
}

// codeIndex maps '0'-'9', 'a'-'f' and 'A'-'F' to 0-15, or -1.
func codeIndex(code byte) int {
	switch {
	case code >= '0' && code <= '9':
		return int(code - '0')
	case code >= 'a' && code <= 'f':
		return int(code-'a') + 10
	case code >= 'A' && code <= 'F':
		return int(code-'A') + 10
	}
	return -1
}

// IsCode reports whether code is a legacy color code (case-insensitive).
func IsCode(code byte) bool {
	return codeIndex(code) >= 0
}

// FromCode returns the palette color for a legacy code character.
func FromCode(code byte) (Color, bool) {
	i := codeIndex(code)
	if i < 0 {
		return Color{}, false
	}
	return Color{rgb: palette[i].rgb, set: true}, true
}

// FromName returns the palette color for a name such as "dark_red". Matching is
// case-insensitive.
func FromName(name string) (Color, bool) {
	code, ok := byName[strings.ToLower(name)]
	if !ok {
		return Color{}, false
	}
	return FromCode(code)
}

// Palette returns the 16 palette colors in code order.
func Palette() []Color {
	out := make([]Color, len(palette))
	for i, e := range palette {
		out[i] = Color{rgb: e.rgb, set: true}
	}
	return out
}

// Nearest returns the palette entry perceptually closest to c (CIE Lab
// distance). It exists for targets that cannot display arbitrary RGB; regular
// serialization uses Code, which only accepts exact matches. The default color
// maps to itself with code 'r'.
func Nearest(c Color) (byte, Color) {
	if c.IsDefault() {
		return 'r', Default
	}
	if code, ok := c.Code(); ok {
		return code, c
	}
	src := c.colorful()
	best := 0
	bestDist := -1.0
	for i, e := range palette {
		d := src.DistanceLab(Color{rgb: e.rgb, set: true}.colorful())
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return palette[best].code, Color{rgb: palette[best].rgb, set: true}
}
