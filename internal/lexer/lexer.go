// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package lexer scans color and style markers out of chat text.
//
// Recognized markers, tried in this order at each position:
//
//	&0-&9 &a-&f   palette color (case-insensitive)
//	&k-&o         toggle obfuscated, bold, strikethrough, underline, italic
//	&r            reset color and styles to the default state
//	<#RRGGBB>     hex color
//	<#RGB>        short hex color, each digit doubled
//
// Text between markers becomes one Run carrying the color and styles that were
// active before the text. Markers never affect preceding text, and runs with no
// text are dropped.
package lexer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jeranaias/richchat/internal/color"
)

// Mode selects how color markers are treated.
type Mode uint8

const (
	// Legacy recognizes legacy and hex markers.
	Legacy Mode = iota
	// None leaves the text untouched: the whole input is one default run.
	None
)

// String names the mode as it appears in configuration.
func (m Mode) String() string {
	switch m {
	case Legacy:
		return "legacy"
	case None:
		return "none"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// Marker lengths.
const (
	legacyLen   = 2 // &c
	shortHexLen = 6 // <#RGB>
	fullHexLen  = 9 // <#RRGGBB>
)

// markerPattern matches every marker. Alternation is leftmost-first, so the
// six digit form wins over the three digit form at the same position.
var markerPattern = regexp.MustCompile(`(?i)&[0-9a-fk-or]|<#[0-9a-f]{6}>|<#[0-9a-f]{3}>`)

// Run is a stretch of text with uniform formatting.
type Run struct {
	Text   string
	Color  color.Color
	Styles color.StyleSet
}

// State is the formatting applied to the next piece of text.
type State struct {
	Color  color.Color
	Styles color.StyleSet
}

// Scan splits text into runs according to mode.
func Scan(text string, mode Mode) []Run {
	if text == "" {
		return nil
	}
	if mode == None {
		return []Run{{Text: text}}
	}

	var runs []Run
	var st State
	last := 0
	for _, loc := range markerPattern.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			runs = append(runs, Run{Text: text[last:loc[0]], Color: st.Color, Styles: st.Styles})
		}
		st = Apply(st, text[loc[0]:loc[1]])
		last = loc[1]
	}
	if last < len(text) {
		runs = append(runs, Run{Text: text[last:], Color: st.Color, Styles: st.Styles})
	}
	return runs
}

// Apply returns the state after marker. marker must be a match of the marker
// grammar; anything else is a defect in the caller and panics.
func Apply(st State, marker string) State {
	switch len(marker) {
	case legacyLen:
		code := marker[1]
		switch {
		case color.IsResetCode(code):
			return State{}
		case color.IsCode(code):
			c, _ := color.FromCode(code)
			st.Color = c
			return st
		default:
			s, ok := color.StyleFromCode(code)
			if !ok {
				panic(fmt.Sprintf("lexer: unexpected legacy marker %q", marker))
			}
			st.Styles = st.Styles.Toggle(s)
			return st
		}
	case shortHexLen, fullHexLen:
		c, err := color.ParseHex(marker[2 : len(marker)-1])
		if err != nil {
			panic(fmt.Sprintf("lexer: unexpected hex marker %q: %v", marker, err))
		}
		st.Color = c
		return st
	default:
		panic(fmt.Sprintf("lexer: marker %q has unexpected length %d", marker, len(marker)))
	}
}

// Strip removes every recognized marker from text.
func Strip(text string) string {
	return markerPattern.ReplaceAllString(text, "")
}

// HasMarkers reports whether text contains any recognized marker.
func HasMarkers(text string) bool {
	return markerPattern.MatchString(text)
}

// PlainText concatenates the text of runs.
func PlainText(runs []Run) string {
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}
