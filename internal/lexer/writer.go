// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package lexer

import (
	"strings"

	"github.com/jeranaias/richchat/internal/color"
)

// =============================================================================
// MARKER WRITER
// =============================================================================

// Writer turns runs back into marker text. The output always starts from the
// default state, the same state Scan starts in, so Scan(w.Write(runs)) yields
// runs equal to the input when no run text contains marker characters.
type Writer struct {
	// Downsample snaps colors that are not palette entries to their nearest
	// palette code instead of writing a hex marker.
	Downsample bool
}

// Write serializes runs. A palette color is always written as its one
// character legacy code; other colors use <#RRGGBB>.
func (w Writer) Write(runs []Run) string {
	var sb strings.Builder
	var st State
	for _, r := range runs {
		if r.Text == "" {
			continue
		}
		w.transition(&sb, st, State{Color: r.Color, Styles: r.Styles})
		st = State{Color: r.Color, Styles: r.Styles}
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// transition writes the markers that move from one state to another. Style
// codes toggle, so the bits that differ are exactly the codes to emit.
func (w Writer) transition(sb *strings.Builder, from, to State) {
	if from == to {
		return
	}
	if from.Color != to.Color && to.Color.IsDefault() {
		sb.WriteString("&r")
		from = State{}
	}
	if from.Color != to.Color {
		sb.WriteString(w.colorMarker(to.Color))
	}
	for _, code := range (from.Styles ^ to.Styles).Codes() {
		sb.WriteByte('&')
		sb.WriteByte(code)
	}
}

func (w Writer) colorMarker(c color.Color) string {
	if code, ok := c.Code(); ok {
		return "&" + string(code)
	}
	if w.Downsample {
		code, _ := color.Nearest(c)
		return "&" + string(code)
	}
	return "<" + c.Hex() + ">"
}

// Write serializes runs with the default Writer.
func Write(runs []Run) string {
	return Writer{}.Write(runs)
}
