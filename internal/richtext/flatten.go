// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package richtext

import (
	"github.com/jeranaias/richchat/internal/action"
	"github.com/jeranaias/richchat/internal/color"
)

// =============================================================================
// RESOLVED LEAVES
// =============================================================================

// Leaf is a piece of text with every attribute resolved. Hover, Click and
// Insertion are nil when absent.
type Leaf struct {
	Text      string
	Color     color.Color
	Styles    color.StyleSet
	Hover     Node
	Click     *action.Click
	Insertion *string
}

// SameAttributes reports whether two leaves carry equal hover, click and
// insertion. Two absent values are equal.
func (l Leaf) SameAttributes(o Leaf) bool {
	return action.Equal(l.Click, o.Click) &&
		action.EqualInsertion(l.Insertion, o.Insertion) &&
		sameHover(l.Hover, o.Hover)
}

func sameHover(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return Equal(a, b)
}

// inherited is the attribute context an ancestor passes to its descendants.
type inherited struct {
	color     color.Color
	styles    color.StyleSet
	hover     Node
	click     *action.Click
	insertion *string
}

// resolve combines the context with n's own overrides.
func (ctx inherited) resolve(n Node) inherited {
	if c, ok := n.Color(); ok {
		ctx.color = c
	}
	on, mask := n.Styles()
	ctx.styles = ctx.styles&^mask | on&mask
	if h := n.Hover(); h != nil {
		ctx.hover = h
	}
	if c := n.Click(); c != nil {
		ctx.click = c
	}
	if ins, ok := n.Insertion(); ok {
		ctx.insertion = &ins
	}
	return ctx
}

func (ctx inherited) leaf(text string) Leaf {
	return Leaf{
		Text:      text,
		Color:     ctx.color,
		Styles:    ctx.styles,
		Hover:     ctx.hover,
		Click:     ctx.click,
		Insertion: ctx.insertion,
	}
}

// =============================================================================
// FLATTEN
// =============================================================================

// Flatten walks root depth-first in document order: a node's own text comes
// before its children, and children come before the node's following
// siblings. Every non-empty text becomes one Leaf carrying its effective
// attributes. A nil root yields no leaves.
func Flatten(root Node) []Leaf {
	if root == nil {
		return nil
	}
	var leaves []Leaf
	var walk func(n Node, ctx inherited)
	walk = func(n Node, ctx inherited) {
		ctx = ctx.resolve(n)
		if t := n.Text(); t != "" {
			leaves = append(leaves, ctx.leaf(t))
		}
		for _, child := range n.Children() {
			if child != nil {
				walk(child, ctx)
			}
		}
	}
	walk(root, inherited{})
	return leaves
}

// PlainText concatenates the text of every node under root in document order.
func PlainText(root Node) string {
	var out []byte
	for _, l := range Flatten(root) {
		out = append(out, l.Text...)
	}
	return string(out)
}
