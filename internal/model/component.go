// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"github.com/jeranaias/richchat/internal/color"
)

// =============================================================================
// COMPONENT TYPE
// =============================================================================

// Component is a stretch of text with uniform formatting. Components are
// comparable values.
type Component struct {
	Text   string
	Color  color.Color
	Styles color.StyleSet
}

// Text returns an unstyled component in color c.
func Text(text string, c color.Color) Component {
	return Component{Text: text, Color: c}
}

// Styled returns a component with color and styles.
func Styled(text string, c color.Color, styles color.StyleSet) Component {
	return Component{Text: text, Color: c, Styles: styles}
}

// WithText returns a copy of c carrying different text.
func (c Component) WithText(text string) Component {
	c.Text = text
	return c
}

// SameFormat reports whether two components differ only in text.
func (c Component) SameFormat(o Component) bool {
	return c.Color == o.Color && c.Styles == o.Styles
}
