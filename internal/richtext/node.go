// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package richtext

import (
	"slices"

	"github.com/jeranaias/richchat/internal/action"
	"github.com/jeranaias/richchat/internal/color"
)

// =============================================================================
// NODE INTERFACE
// =============================================================================

// Node is a read-only view of a rich-text tree node. Methods report only what
// the node sets itself; inheritance is resolved by Flatten.
type Node interface {
	// Text is the node's own text, which precedes its children.
	Text() string
	// Color returns the explicit color and whether one is set.
	Color() (color.Color, bool)
	// Styles returns style values and the mask of bits the node sets.
	Styles() (on, mask color.StyleSet)
	// Hover returns the hover content, or nil.
	Hover() Node
	// Click returns the click action, or nil.
	Click() *action.Click
	// Insertion returns the insertion text and whether one is set.
	Insertion() (string, bool)
	// Children returns the child nodes in document order.
	Children() []Node
}

// =============================================================================
// COMPONENT
// =============================================================================

// Component is an immutable Node. Build one with New and options; derive
// modified copies with the With* methods.
type Component struct {
	text      string
	color     color.Color
	hasColor  bool
	styles    color.StyleSet
	styleMask color.StyleSet
	hover     *Component
	click     *action.Click
	insertion *string
	children  []*Component
}

var _ Node = (*Component)(nil)

// Option sets an attribute in New.
type Option func(*Component)

// WithColor sets an explicit color. Setting color.Default still counts as an
// explicit override, which stops inheritance of an ancestor's color.
func WithColor(c color.Color) Option {
	return func(n *Component) {
		n.color = c
		n.hasColor = true
	}
}

// WithStyle sets the bits of s to on. Bits outside s stay inherited.
func WithStyle(s color.StyleSet, on bool) Option {
	return func(n *Component) {
		n.styleMask |= s
		if on {
			n.styles |= s
		} else {
			n.styles &^= s
		}
	}
}

// WithHover sets the hover content.
func WithHover(h *Component) Option {
	return func(n *Component) { n.hover = h }
}

// WithClick sets the click action.
func WithClick(c action.Click) Option {
	return func(n *Component) { n.click = &c }
}

// WithInsertion sets the insertion text.
func WithInsertion(text string) Option {
	return func(n *Component) { n.insertion = &text }
}

// WithChildren appends children. Nil children are skipped.
func WithChildren(children ...*Component) Option {
	return func(n *Component) {
		for _, c := range children {
			if c != nil {
				n.children = append(n.children, c)
			}
		}
	}
}

// New returns a component with text and options applied in order.
func New(text string, opts ...Option) *Component {
	n := &Component{text: text}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Text implements Node.
func (c *Component) Text() string { return c.text }

// Color implements Node.
func (c *Component) Color() (color.Color, bool) { return c.color, c.hasColor }

// Styles implements Node.
func (c *Component) Styles() (on, mask color.StyleSet) { return c.styles, c.styleMask }

// Hover implements Node. A missing hover is an untyped nil.
func (c *Component) Hover() Node {
	if c.hover == nil {
		return nil
	}
	return c.hover
}

// HoverComponent returns the hover content as a *Component, or nil.
func (c *Component) HoverComponent() *Component { return c.hover }

// Click implements Node. The returned value is a copy.
func (c *Component) Click() *action.Click {
	if c.click == nil {
		return nil
	}
	v := *c.click
	return &v
}

// Insertion implements Node.
func (c *Component) Insertion() (string, bool) {
	if c.insertion == nil {
		return "", false
	}
	return *c.insertion, true
}

// Children implements Node.
func (c *Component) Children() []Node {
	if len(c.children) == 0 {
		return nil
	}
	out := make([]Node, len(c.children))
	for i, ch := range c.children {
		out[i] = ch
	}
	return out
}

// ChildComponents returns a copy of the child list.
func (c *Component) ChildComponents() []*Component {
	return slices.Clone(c.children)
}

// =============================================================================
// DERIVATION
// =============================================================================

func (c *Component) clone() *Component {
	n := *c
	return &n
}

// WithText returns a copy with different text.
func (c *Component) WithText(text string) *Component {
	n := c.clone()
	n.text = text
	return n
}

// WithHover returns a copy with the hover replaced; nil removes it.
func (c *Component) WithHover(h *Component) *Component {
	n := c.clone()
	n.hover = h
	return n
}

// WithClick returns a copy with the click replaced; nil removes it.
func (c *Component) WithClick(click *action.Click) *Component {
	n := c.clone()
	if click == nil {
		n.click = nil
	} else {
		v := *click
		n.click = &v
	}
	return n
}

// WithInsertion returns a copy with the insertion replaced; nil removes it.
func (c *Component) WithInsertion(text *string) *Component {
	n := c.clone()
	if text == nil {
		n.insertion = nil
	} else {
		v := *text
		n.insertion = &v
	}
	return n
}

// WithChildren returns a copy over a copy of children.
func (c *Component) WithChildren(children []*Component) *Component {
	n := c.clone()
	n.children = slices.Clone(children)
	return n
}

// Equal reports structural equality of two components. Two nils are equal.
func (c *Component) Equal(o *Component) bool {
	if c == nil || o == nil {
		return c == o
	}
	if c == o {
		return true
	}
	return c.text == o.text &&
		c.hasColor == o.hasColor && c.color == o.color &&
		c.styleMask == o.styleMask && c.styles&c.styleMask == o.styles&o.styleMask &&
		c.hover.Equal(o.hover) &&
		action.Equal(c.click, o.click) &&
		action.EqualInsertion(c.insertion, o.insertion) &&
		slices.EqualFunc(c.children, o.children, (*Component).Equal)
}

// Equal reports whether two nodes are structurally equal through the Node
// interface. Two nil nodes are equal.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if ac, ok := a.(*Component); ok {
		if bc, ok := b.(*Component); ok {
			return ac.Equal(bc)
		}
	}
	if a.Text() != b.Text() {
		return false
	}
	ac, aok := a.Color()
	bc, bok := b.Color()
	if aok != bok || ac != bc {
		return false
	}
	aon, amask := a.Styles()
	bon, bmask := b.Styles()
	if amask != bmask || aon&amask != bon&bmask {
		return false
	}
	ai, aiok := a.Insertion()
	bi, biok := b.Insertion()
	if aiok != biok || ai != bi {
		return false
	}
	if !action.Equal(a.Click(), b.Click()) || !Equal(a.Hover(), b.Hover()) {
		return false
	}
	return slices.EqualFunc(a.Children(), b.Children(), Equal)
}
