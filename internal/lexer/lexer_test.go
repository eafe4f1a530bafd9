// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/richchat/internal/color"
)

// =============================================================================
// SCAN TESTS
// =============================================================================

func TestScan(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Run
	}{
		{
			name:  "plain",
			input: "hello world",
			want:  []Run{{Text: "hello world"}},
		},
		{
			name:  "legacyColor",
			input: "&cred",
			want:  []Run{{Text: "red", Color: color.Red}},
		},
		{
			name:  "markerAffectsFollowingTextOnly",
			input: "a&cb",
			want:  []Run{{Text: "a"}, {Text: "b", Color: color.Red}},
		},
		{
			name:  "upperCaseCode",
			input: "&Ax",
			want:  []Run{{Text: "x", Color: color.Green}},
		},
		{
			name:  "styleToggle",
			input: "&lbold&lplain",
			want:  []Run{{Text: "bold", Styles: color.Bold}, {Text: "plain"}},
		},
		{
			name:  "colorKeepsStyles",
			input: "&l&cx",
			want:  []Run{{Text: "x", Color: color.Red, Styles: color.Bold}},
		},
		{
			name:  "reset",
			input: "&c&lx&ry",
			want:  []Run{{Text: "x", Color: color.Red, Styles: color.Bold}, {Text: "y"}},
		},
		{
			name:  "fullHex",
			input: "<#123456>x",
			want:  []Run{{Text: "x", Color: color.MustRGB(0x123456)}},
		},
		{
			name:  "shortHex",
			input: "<#4BC>x",
			want:  []Run{{Text: "x", Color: color.MustRGB(0x44BBCC)}},
		},
		{
			name:  "hexKeepsStyles",
			input: "&o<#abcdef>x",
			want:  []Run{{Text: "x", Color: color.MustRGB(0xABCDEF), Styles: color.Italic}},
		},
		{
			name:  "emptyRunsDropped",
			input: "&c&a&b",
			want:  nil,
		},
		{
			name:  "notAMarker",
			input: "R&Z <#12> <#zzzzzz>",
			want:  []Run{{Text: "R&Z <#12> <#zzzzzz>"}},
		},
		{
			name:  "doubleAmpersand",
			input: "&&cx",
			want:  []Run{{Text: "&"}, {Text: "x", Color: color.Red}},
		},
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Scan(tt.input, Legacy))
		})
	}
}

func TestScan_NoneMode(t *testing.T) {
	got := Scan("&cnot red <#fff>", None)
	require.Equal(t, []Run{{Text: "&cnot red <#fff>"}}, got)
	require.Nil(t, Scan("", None))
}

func TestScan_PlainTextRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"just words",
		"ünïcödé ✓ 日本語",
		"pipes | and & alone",
		"&c&lStyled <#FF00FF>text&r done",
	}
	for _, in := range inputs {
		assert.Equal(t, Strip(in), PlainText(Scan(in, Legacy)), in)
	}
}

func TestApply_PanicsOnBadMarker(t *testing.T) {
	require.Panics(t, func() { Apply(State{}, "&z") })
	require.Panics(t, func() { Apply(State{}, "<#12>") })
	require.Panics(t, func() { Apply(State{}, "&") })
}

func TestHasMarkers(t *testing.T) {
	assert.True(t, HasMarkers("x&cy"))
	assert.True(t, HasMarkers("<#abc>"))
	assert.False(t, HasMarkers("a & b"))
}

// =============================================================================
// WRITER TESTS
// =============================================================================

func TestWrite(t *testing.T) {
	tests := []struct {
		name string
		runs []Run
		want string
	}{
		{"plain", []Run{{Text: "hi"}}, "hi"},
		{"paletteColorUsesCode", []Run{{Text: "hi", Color: color.MustRGB(0xFF5555)}}, "&chi"},
		{"hexColor", []Run{{Text: "hi", Color: color.MustRGB(0x123456)}}, "<#123456>hi"},
		{"stylesToggle", []Run{{Text: "a", Styles: color.Bold}, {Text: "b", Styles: color.Italic}}, "&la&l&ob"},
		{"backToDefault", []Run{{Text: "a", Color: color.Red, Styles: color.Bold}, {Text: "b"}}, "&c&la&rb"},
		{"defaultColorKeepsStyles", []Run{{Text: "a", Color: color.Red}, {Text: "b", Styles: color.Bold}}, "&ca&r&lb"},
		{"emptyRunsSkipped", []Run{{Text: "", Color: color.Red}, {Text: "x"}}, "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Write(tt.runs))
		})
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	inputs := []string{
		"&cHello &lWorld",
		"<#123456>hex &aand green",
	}
	for _, in := range inputs {
		runs := Scan(in, Legacy)
		require.Equal(t, in, Write(runs), in)
	}

	// Styles switched off by toggling rather than reset still scan the same.
	runs := Scan("plain &l&obold italic&r plain", Legacy)
	require.Equal(t, "plain &l&obold italic&l&o plain", Write(runs))
	require.Equal(t, runs, Scan(Write(runs), Legacy))
}

func TestWriter_Downsample(t *testing.T) {
	w := Writer{Downsample: true}
	got := w.Write([]Run{{Text: "x", Color: color.MustRGB(0xFE5050)}})
	assert.Equal(t, "&cx", got)
}
