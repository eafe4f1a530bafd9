// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package richtext

import (
	"github.com/jeranaias/richchat/internal/action"
	"github.com/jeranaias/richchat/internal/lexer"
	"github.com/jeranaias/richchat/internal/model"
)

// =============================================================================
// SERIALIZERS
// =============================================================================

// Serializer converts between leaves and an encoded formatted-text form T.
// For any t holding only supported formatting,
// WriteFormatting(ReadFormatting(t)) must equal t.
type Serializer[T any] interface {
	// ReadFormatting decodes t into attribute-free leaves.
	ReadFormatting(t T) []Leaf
	// WriteFormatting encodes the text, colors and styles of leaves.
	WriteFormatting(leaves []Leaf) T
}

// LegacySerializer encodes leaves as legacy marker strings ("&c", "<#RRGGBB>").
type LegacySerializer struct {
	// Writer controls hex downsampling.
	Writer lexer.Writer
}

var _ Serializer[string] = LegacySerializer{}

// ReadFormatting implements Serializer.
func (s LegacySerializer) ReadFormatting(text string) []Leaf {
	runs := lexer.Scan(text, lexer.Legacy)
	leaves := make([]Leaf, len(runs))
	for i, r := range runs {
		leaves[i] = Leaf{Text: r.Text, Color: r.Color, Styles: r.Styles}
	}
	return leaves
}

// WriteFormatting implements Serializer.
func (s LegacySerializer) WriteFormatting(leaves []Leaf) string {
	runs := make([]lexer.Run, len(leaves))
	for i, l := range leaves {
		runs[i] = lexer.Run{Text: l.Text, Color: l.Color, Styles: l.Styles}
	}
	return s.Writer.Write(runs)
}

// ComponentSerializer encodes leaves as flat model components.
type ComponentSerializer struct{}

var _ Serializer[[]model.Component] = ComponentSerializer{}

// ReadFormatting implements Serializer.
func (ComponentSerializer) ReadFormatting(components []model.Component) []Leaf {
	leaves := make([]Leaf, 0, len(components))
	for _, c := range components {
		if c.Text == "" {
			continue
		}
		leaves = append(leaves, Leaf{Text: c.Text, Color: c.Color, Styles: c.Styles})
	}
	return leaves
}

// WriteFormatting implements Serializer.
func (ComponentSerializer) WriteFormatting(leaves []Leaf) []model.Component {
	out := make([]model.Component, len(leaves))
	for i, l := range leaves {
		out[i] = model.Styled(l.Text, l.Color, l.Styles)
	}
	return out
}

// =============================================================================
// COALESCING
// =============================================================================

// Part is a maximal run of adjacent leaves sharing hover, click and insertion,
// with its formatted text encoded once.
type Part[T any] struct {
	Content   T
	Hover     Node
	Click     *action.Click
	Insertion *string
}

// Coalesce groups leaves into parts. A run is extended while the next leaf's
// hover, click and insertion equal the run's by value; the first mismatch
// closes it. No leaves yields no parts.
func Coalesce[T any](leaves []Leaf, s Serializer[T]) []Part[T] {
	var parts []Part[T]
	start := 0
	for i := 1; i <= len(leaves); i++ {
		if i < len(leaves) && leaves[i].SameAttributes(leaves[start]) {
			continue
		}
		head := leaves[start]
		parts = append(parts, Part[T]{
			Content:   s.WriteFormatting(leaves[start:i]),
			Hover:     head.Hover,
			Click:     head.Click,
			Insertion: head.Insertion,
		})
		start = i
	}
	return parts
}
