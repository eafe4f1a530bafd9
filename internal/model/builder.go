// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"github.com/jeranaias/richchat/internal/action"
)

// =============================================================================
// PENDING SECTION
// =============================================================================

// pending is the section under construction. Transitions return a new value;
// nothing aliases a pending section once it is finalized.
type pending struct {
	opened    bool
	contents  []Component
	hover     *Message
	click     *action.Click
	insertion *string
}

// accepts reports whether tags can attach. Tags only decorate content that
// already exists in the buffer.
func (p pending) accepts() bool {
	return len(p.contents) > 0
}

func (p pending) withHover(m *Message) pending {
	if p.accepts() {
		p.hover = m
	}
	return p
}

func (p pending) withClick(c action.Click) pending {
	if p.accepts() {
		p.click = &c
	}
	return p
}

func (p pending) withInsertion(text string) pending {
	if p.accepts() {
		p.insertion = &text
	}
	return p
}

func (p pending) section() *Section {
	return &Section{
		contents:  p.contents,
		hover:     p.hover,
		click:     p.click,
		insertion: p.insertion,
	}
}

// =============================================================================
// BUILDER
// =============================================================================

// Builder accumulates sections token by token. The zero Builder is ready to
// use. A Builder is not safe for concurrent use.
//
// Content opens a new pending section, finalizing the previous one if it was
// opened. Hover, Click and Insertion modify the pending section only when it
// already holds a component; before that they are no-ops. Build finalizes the
// pending section, so every built message has at least one section.
type Builder struct {
	sections []*Section
	cur      pending
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Content finalizes the open section, if any, and starts a new one holding
// components. Zero components still start a section.
func (b *Builder) Content(components ...Component) *Builder {
	if b.cur.opened {
		b.sections = append(b.sections, b.cur.section())
	}
	b.cur = pending{opened: true, contents: append([]Component(nil), components...)}
	return b
}

// Hover sets the pending hover message.
func (b *Builder) Hover(m *Message) *Builder {
	b.cur = b.cur.withHover(m)
	return b
}

// Click sets the pending click action. The last click wins.
func (b *Builder) Click(c action.Click) *Builder {
	b.cur = b.cur.withClick(c)
	return b
}

// Insertion sets the pending insertion text.
func (b *Builder) Insertion(text string) *Builder {
	b.cur = b.cur.withInsertion(text)
	return b
}

// Build finalizes the pending section and returns the message. The builder is
// reset and can be reused.
func (b *Builder) Build() *Message {
	msg := &Message{sections: append(b.sections, b.cur.section())}
	b.sections = nil
	b.cur = pending{}
	return msg
}
