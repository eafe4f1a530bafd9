// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package parser

import (
	"strings"

	"github.com/jeranaias/richchat/internal/action"
	"github.com/jeranaias/richchat/internal/grammar"
	"github.com/jeranaias/richchat/internal/lexer"
	"github.com/jeranaias/richchat/internal/model"
)

// =============================================================================
// FORMATTING
// =============================================================================

// Formatter writes messages back to the raw form.
//
// Text that itself contains "||" or marker sequences is written as is and
// will not parse back to the same message. Sections without text and tags
// with an empty payload cannot be represented and are dropped.
type Formatter struct {
	// Writer controls hex downsampling.
	Writer lexer.Writer
}

// Format writes m with tags. Each section restarts from the default state,
// matching how Parse lexes every content token independently.
func (f Formatter) Format(m *model.Message) string {
	if m == nil {
		return ""
	}
	var sb strings.Builder
	for _, s := range m.Sections() {
		content := f.Writer.Write(runs(s.Contents()))
		if content == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(grammar.Delimiter)
		}
		sb.WriteString(content)
		if h := s.Hover(); h != nil {
			writeTag(&sb, grammar.Hover, f.FormatLegacy(h))
		}
		if c := s.Click(); c != nil {
			writeTag(&sb, clickTag(c.Kind), c.Value)
		}
		if ins, ok := s.Insertion(); ok {
			writeTag(&sb, grammar.Insertion, ins)
		}
	}
	return sb.String()
}

// FormatLegacy writes only the colored text of m, without tags, as one
// continuous marker string.
func (f Formatter) FormatLegacy(m *model.Message) string {
	if m == nil {
		return ""
	}
	return f.Writer.Write(runs(m.Components()))
}

// Format writes m with the default Formatter.
func Format(m *model.Message) string {
	return Formatter{}.Format(m)
}

// FormatLegacy writes m's text with the default Formatter.
func FormatLegacy(m *model.Message) string {
	return Formatter{}.FormatLegacy(m)
}

func writeTag(sb *strings.Builder, kind grammar.Kind, payload string) {
	if payload == "" {
		return
	}
	sb.WriteString(grammar.Tag(kind, payload))
}

func clickTag(k action.Kind) grammar.Kind {
	switch k {
	case action.SuggestCommand:
		return grammar.Suggest
	case action.OpenURL:
		return grammar.URL
	default:
		return grammar.Command
	}
}

func runs(components []model.Component) []lexer.Run {
	out := make([]lexer.Run, len(components))
	for i, c := range components {
		out[i] = lexer.Run{Text: c.Text, Color: c.Color, Styles: c.Styles}
	}
	return out
}
