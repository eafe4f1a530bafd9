// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"time"

	"github.com/mattn/go-runewidth"
)

// =============================================================================
// OBFUSCATED TEXT
// =============================================================================

// ObfuscateRate is how often obfuscated text is scrambled again.
var ObfuscateRate = 80 * time.Millisecond

// ScrambleChars are the glyphs obfuscated text cycles through. Each is one
// column wide so scrambled text keeps its layout.
var ScrambleChars = []rune("!#$%&*+-0123456789=?@ABCDEFGHJKLMNPQRSTUVWXYZ^abcdefghkmnopqrstuvwxyz~")

// wideScrambleChars replace two-column runes.
var wideScrambleChars = []rune("＃＄％＆＊＋？＠ＡＢＣＤＥＦ")

// Scramble replaces every visible rune of text with a glyph chosen from frame
// and the rune's position. Whitespace and line breaks are kept, and each
// replacement has the same display width as the rune it replaces.
func Scramble(text string, frame int) string {
	out := make([]rune, 0, len(text))
	i := 0
	for _, r := range text {
		switch {
		case r == ' ' || r == '\n' || r == '\t':
			out = append(out, r)
		case runewidth.RuneWidth(r) == 2:
			out = append(out, wideScrambleChars[pick(frame, i, len(wideScrambleChars))])
		case runewidth.RuneWidth(r) == 0:
			// combining marks vanish with their base
		default:
			out = append(out, ScrambleChars[pick(frame, i, len(ScrambleChars))])
		}
		i++
	}
	return string(out)
}

// pick mixes frame and position into an index below n.
func pick(frame, pos, n int) int {
	h := uint32(frame)*2654435761 ^ uint32(pos+1)*40503
	h ^= h >> 13
	return int(h % uint32(n))
}

// =============================================================================
// TREE CONNECTORS
// =============================================================================

// TreeChars for rendering section attributes under their section.
var TreeChars = struct {
	Tee    string
	Corner string
	Dash   string
}{
	Tee:    "+",
	Corner: "`",
	Dash:   "-",
}

// RenderTreeLine creates a tree line prefix.
// isLast: true if this is the last item in the list
func RenderTreeLine(isLast bool) string {
	if isLast {
		return TreeChars.Corner + TreeChars.Dash + " "
	}
	return TreeChars.Tee + TreeChars.Dash + " "
}
