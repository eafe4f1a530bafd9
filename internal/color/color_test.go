// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// COLOR TESTS
// =============================================================================

func TestRGB_Range(t *testing.T) {
	c, err := RGB(0)
	require.NoError(t, err)
	assert.False(t, c.IsDefault())

	_, err = RGB(MaxRGB)
	require.NoError(t, err)

	_, err = RGB(MaxRGB + 1)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestDefaultIsDistinctFromBlack(t *testing.T) {
	assert.True(t, Default.IsDefault())
	assert.NotEqual(t, Default, Black)

	v, ok := Default.Value()
	assert.Equal(t, uint32(0), v)
	assert.False(t, ok)

	_, ok = Default.Code()
	assert.False(t, ok)
}

func TestCode_ExactMatchOnly(t *testing.T) {
	code, ok := MustRGB(0xFF5555).Code()
	require.True(t, ok)
	assert.Equal(t, byte('c'), code)

	_, ok = MustRGB(0xFF5556).Code()
	assert.False(t, ok, "near-miss colors must not serialize as palette codes")
}

func TestFromCode(t *testing.T) {
	tests := []struct {
		code byte
		want Color
	}{
		{'0', Black},
		{'9', Blue},
		{'a', Green},
		{'A', Green},
		{'c', Red},
		{'F', White},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			got, ok := FromCode(tt.code)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := FromCode('g')
	assert.False(t, ok)
}

func TestPaletteRoundTrip(t *testing.T) {
	for _, c := range Palette() {
		code, ok := c.Code()
		require.True(t, ok, c.Hex())
		back, ok := FromCode(code)
		require.True(t, ok)
		assert.Equal(t, c, back)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  uint32
	}{
		{"full", "#FF5555", 0xFF5555},
		{"lowercase", "#ff5555", 0xFF5555},
		{"noHash", "123456", 0x123456},
		{"short", "#4BC", 0x44BBCC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseHex(tt.input)
			require.NoError(t, err)
			v, _ := c.Value()
			assert.Equal(t, tt.want, v)
		})
	}

	_, err := ParseHex("#12345")
	require.ErrorIs(t, err, ErrInvalidHex)
	_, err = ParseHex("#GGGGGG")
	require.ErrorIs(t, err, ErrInvalidHex)
}

func TestParse(t *testing.T) {
	c, err := Parse("dark_red")
	require.NoError(t, err)
	assert.Equal(t, DarkRed, c)

	c, err = Parse("e")
	require.NoError(t, err)
	assert.Equal(t, Yellow, c)

	c, err = Parse("reset")
	require.NoError(t, err)
	assert.True(t, c.IsDefault())

	_, err = Parse("mauve")
	require.ErrorIs(t, err, ErrUnknownName)
}

func TestStringForms(t *testing.T) {
	assert.Equal(t, "red", Red.String())
	assert.Equal(t, "#123456", MustRGB(0x123456).String())
	assert.Equal(t, "default", Default.String())
	assert.Equal(t, "#FF5555", Red.Hex())
}

func TestNearest(t *testing.T) {
	code, c := Nearest(MustRGB(0xFE5050))
	assert.Equal(t, byte('c'), code)
	assert.Equal(t, Red, c)

	code, c = Nearest(Gold)
	assert.Equal(t, byte('6'), code)
	assert.Equal(t, Gold, c)

	code, c = Nearest(Default)
	assert.Equal(t, byte('r'), code)
	assert.True(t, c.IsDefault())
}

// =============================================================================
// STYLE TESTS
// =============================================================================

func TestStyleFromCode(t *testing.T) {
	tests := []struct {
		code byte
		want StyleSet
	}{
		{'k', Obfuscated},
		{'l', Bold},
		{'M', Strikethrough},
		{'n', Underline},
		{'O', Italic},
	}
	for _, tt := range tests {
		got, ok := StyleFromCode(tt.code)
		require.True(t, ok, string(tt.code))
		assert.Equal(t, tt.want, got)
	}

	_, ok := StyleFromCode('p')
	assert.False(t, ok)
	_, ok = StyleFromCode('r')
	assert.False(t, ok)
}

func TestStyleSetOps(t *testing.T) {
	s := StyleSet(0).Toggle(Bold).Toggle(Italic)
	assert.True(t, s.Has(Bold))
	assert.True(t, s.Has(Bold|Italic))
	assert.False(t, s.Has(Underline))

	s = s.Toggle(Bold)
	assert.False(t, s.Has(Bold))

	assert.Equal(t, []byte{'l', 'o'}, (Bold | Italic).Codes())
	assert.Equal(t, "bold+italic", (Bold | Italic).String())
	assert.Equal(t, "none", StyleSet(0).String())
}

func TestStyleByName(t *testing.T) {
	s, ok := StyleByName("underlined")
	require.True(t, ok)
	assert.Equal(t, Underline, s)

	_, ok = StyleByName("underline")
	assert.False(t, ok)
}
