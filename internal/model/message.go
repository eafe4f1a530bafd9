// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"slices"
	"strings"

	"github.com/jeranaias/richchat/internal/color"
)

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is an ordered sequence of sections. A nil *Message means "no
// message" (for example, a section without hover); an empty Message is a
// message with zero sections.
type Message struct {
	sections []*Section
}

// Empty is the message with no sections.
var Empty = &Message{}

// NewMessage returns a message over sections. Nil sections are skipped.
func NewMessage(sections ...*Section) *Message {
	out := make([]*Section, 0, len(sections))
	for _, s := range sections {
		if s != nil {
			out = append(out, s)
		}
	}
	return &Message{sections: out}
}

// PlainMessage returns a one-section message holding text in the default
// color with no attributes.
func PlainMessage(text string) *Message {
	return NewMessage(NewSection([]Component{Text(text, color.Default)}))
}

// Sections returns a copy of the section list.
func (m *Message) Sections() []*Section {
	return slices.Clone(m.sections)
}

// Len returns the number of sections.
func (m *Message) Len() int {
	return len(m.sections)
}

// Section returns the i-th section.
func (m *Message) Section(i int) *Section {
	return m.sections[i]
}

// Components returns every component of every section, in order.
func (m *Message) Components() []Component {
	var out []Component
	for _, s := range m.sections {
		out = append(out, s.contents...)
	}
	return out
}

// PlainText concatenates the text of every component in order. Hover
// messages are not included.
func (m *Message) PlainText() string {
	var sb strings.Builder
	for _, s := range m.sections {
		for _, c := range s.contents {
			sb.WriteString(c.Text)
		}
	}
	return sb.String()
}

// String implements fmt.Stringer with the plain text.
func (m *Message) String() string {
	if m == nil {
		return "<nil>"
	}
	return m.PlainText()
}

// IsEmpty reports whether the message carries no text.
func (m *Message) IsEmpty() bool {
	for _, s := range m.sections {
		if !s.IsEmpty() {
			return false
		}
	}
	return true
}

// WithSections returns a message over a copy of sections.
func (m *Message) WithSections(sections []*Section) *Message {
	return &Message{sections: slices.Clone(sections)}
}

// Append returns a message with other's sections after m's.
func (m *Message) Append(other *Message) *Message {
	out := make([]*Section, 0, len(m.sections)+len(other.sections))
	out = append(out, m.sections...)
	out = append(out, other.sections...)
	return &Message{sections: out}
}

// Equal reports structural equality. Two nil messages are equal; a nil
// message never equals a non-nil one, even an empty one.
func (m *Message) Equal(o *Message) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m == o {
		return true
	}
	return slices.EqualFunc(m.sections, o.sections, (*Section).Equal)
}
