// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"slices"
	"strings"

	"github.com/jeranaias/richchat/internal/action"
)

// =============================================================================
// SECTION TYPE
// =============================================================================

// Section is one attributable unit of a Message. Its fields are unexported so
// a Section cannot change after construction.
type Section struct {
	contents  []Component
	hover     *Message
	click     *action.Click
	insertion *string
}

// SectionOption sets an optional attribute in NewSection.
type SectionOption func(*Section)

// WithHover attaches a hover message. A nil message means no hover.
func WithHover(m *Message) SectionOption {
	return func(s *Section) { s.hover = m }
}

// WithClick attaches a click action.
func WithClick(c action.Click) SectionOption {
	return func(s *Section) { s.click = &c }
}

// WithInsertion attaches insertion text.
func WithInsertion(text string) SectionOption {
	return func(s *Section) { s.insertion = &text }
}

// NewSection returns a section holding a copy of contents.
func NewSection(contents []Component, opts ...SectionOption) *Section {
	s := &Section{contents: slices.Clone(contents)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Contents returns a copy of the section's components.
func (s *Section) Contents() []Component {
	return slices.Clone(s.contents)
}

// Len returns the number of components.
func (s *Section) Len() int {
	return len(s.contents)
}

// Component returns the i-th component.
func (s *Section) Component(i int) Component {
	return s.contents[i]
}

// Hover returns the hover message, or nil.
func (s *Section) Hover() *Message {
	return s.hover
}

// Click returns the click action, or nil. The returned value is a copy.
func (s *Section) Click() *action.Click {
	if s.click == nil {
		return nil
	}
	c := *s.click
	return &c
}

// Insertion returns the insertion text and whether one is set.
func (s *Section) Insertion() (string, bool) {
	if s.insertion == nil {
		return "", false
	}
	return *s.insertion, true
}

// PlainText concatenates the component texts.
func (s *Section) PlainText() string {
	var sb strings.Builder
	for _, c := range s.contents {
		sb.WriteString(c.Text)
	}
	return sb.String()
}

// IsEmpty reports whether the section has no text.
func (s *Section) IsEmpty() bool {
	for _, c := range s.contents {
		if c.Text != "" {
			return false
		}
	}
	return true
}

// =============================================================================
// DERIVATION
// =============================================================================

func (s *Section) clone() *Section {
	c := *s
	return &c
}

// WithContents returns a section with contents replaced.
func (s *Section) WithContents(contents []Component) *Section {
	c := s.clone()
	c.contents = slices.Clone(contents)
	return c
}

// WithHover returns a section with the hover replaced; nil removes it.
func (s *Section) WithHover(m *Message) *Section {
	c := s.clone()
	c.hover = m
	return c
}

// WithClick returns a section with the click replaced; nil removes it.
func (s *Section) WithClick(click *action.Click) *Section {
	c := s.clone()
	if click == nil {
		c.click = nil
	} else {
		v := *click
		c.click = &v
	}
	return c
}

// WithInsertion returns a section with the insertion replaced; nil removes it.
func (s *Section) WithInsertion(text *string) *Section {
	c := s.clone()
	if text == nil {
		c.insertion = nil
	} else {
		v := *text
		c.insertion = &v
	}
	return c
}

// Equal reports structural equality. Two nil sections are equal.
func (s *Section) Equal(o *Section) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s == o {
		return true
	}
	return slices.Equal(s.contents, o.contents) &&
		s.hover.Equal(o.hover) &&
		action.Equal(s.click, o.click) &&
		action.EqualInsertion(s.insertion, o.insertion)
}

// SameAttributes reports whether two sections carry equal hover, click and
// insertion, ignoring their contents.
func (s *Section) SameAttributes(o *Section) bool {
	return s.hover.Equal(o.hover) &&
		action.Equal(s.click, o.click) &&
		action.EqualInsertion(s.insertion, o.insertion)
}
