// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package richtext

import (
	"github.com/jeranaias/richchat/internal/color"
	"github.com/jeranaias/richchat/internal/model"
)

// =============================================================================
// MESSAGE CONVERSION
// =============================================================================

// ToMessage flattens root and coalesces it into sections, one per part.
// Hover content is converted recursively. A nil root returns nil; a tree with
// no text returns an empty message.
func ToMessage(root Node) *model.Message {
	if root == nil {
		return nil
	}
	parts := Coalesce(Flatten(root), ComponentSerializer{})
	sections := make([]*model.Section, 0, len(parts))
	for _, p := range parts {
		var opts []model.SectionOption
		if p.Hover != nil {
			opts = append(opts, model.WithHover(ToMessage(p.Hover)))
		}
		if p.Click != nil {
			opts = append(opts, model.WithClick(*p.Click))
		}
		if p.Insertion != nil {
			opts = append(opts, model.WithInsertion(*p.Insertion))
		}
		sections = append(sections, model.NewSection(p.Content, opts...))
	}
	return model.NewMessage(sections...)
}

// FromMessage builds a tree with an empty root, one child per section holding
// that section's hover, click and insertion, and one grandchild per component.
// ToMessage(FromMessage(m)) equals m when adjacent sections differ in their
// attributes and no component is empty. A nil message returns nil.
func FromMessage(m *model.Message) *Component {
	if m == nil {
		return nil
	}
	children := make([]*Component, 0, m.Len())
	for _, s := range m.Sections() {
		var opts []Option
		if h := s.Hover(); h != nil {
			opts = append(opts, WithHover(FromMessage(h)))
		}
		if c := s.Click(); c != nil {
			opts = append(opts, WithClick(*c))
		}
		if ins, ok := s.Insertion(); ok {
			opts = append(opts, WithInsertion(ins))
		}
		leaves := make([]*Component, 0, s.Len())
		for _, c := range s.Contents() {
			leaves = append(leaves, fromComponent(c))
		}
		opts = append(opts, WithChildren(leaves...))
		children = append(children, New("", opts...))
	}
	return New("", WithChildren(children...))
}

func fromComponent(c model.Component) *Component {
	var opts []Option
	if !c.Color.IsDefault() {
		opts = append(opts, WithColor(c.Color))
	}
	if c.Styles != 0 {
		opts = append(opts, WithStyle(c.Styles, true))
	}
	return New(c.Text, opts...)
}

// Plain returns a leaf component with text and an optional explicit color.
func Plain(text string, c color.Color) *Component {
	if c.IsDefault() {
		return New(text)
	}
	return New(text, WithColor(c))
}
