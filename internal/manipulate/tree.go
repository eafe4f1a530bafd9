// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package manipulate

import (
	"github.com/jeranaias/richchat/internal/richtext"
)

// =============================================================================
// TREE ADAPTER
// =============================================================================

// ComponentAccessor adapts richtext.Component to the engine. A node's own
// fields are its text, hover tree, click value and insertion; children are
// visited after them. Hover content is the plain content of the whole hover
// tree.
type ComponentAccessor struct{}

var (
	_ Accessor[*richtext.Component] = ComponentAccessor{}
	_ Nested[*richtext.Component]   = ComponentAccessor{}
)

// Test implements Accessor.
func (a ComponentAccessor) Test(c *richtext.Component, goals TextGoal, pred Predicate) bool {
	if goals.Has(PlainContent) && pred(c.Text()) {
		return true
	}
	if goals.Has(HoverContent) {
		if h := c.HoverComponent(); h != nil && EvaluateUnits([]*richtext.Component{h}, a, PlainContent, pred) {
			return true
		}
	}
	if goals.Has(ClickValue) {
		if click := c.Click(); click != nil && pred(click.Value) {
			return true
		}
	}
	if goals.Has(InsertionValue) {
		if ins, ok := c.Insertion(); ok && pred(ins) {
			return true
		}
	}
	return false
}

// Rewrite implements Accessor. Children are handled by the engine.
func (a ComponentAccessor) Rewrite(c *richtext.Component, goals TextGoal, fn Transform) (*richtext.Component, bool) {
	out := c
	changed := false

	if goals.Has(PlainContent) {
		if t := fn(c.Text()); t != c.Text() {
			out = out.WithText(t)
			changed = true
		}
	}
	if goals.Has(HoverContent) {
		if h := c.HoverComponent(); h != nil {
			if nh, ok := ReplaceUnits([]*richtext.Component{h}, a, PlainContent, fn); ok {
				out = out.WithHover(nh[0])
				changed = true
			}
		}
	}
	if goals.Has(ClickValue) {
		if click := c.Click(); click != nil {
			if v := fn(click.Value); v != click.Value {
				nc := click.WithValue(v)
				out = out.WithClick(&nc)
				changed = true
			}
		}
	}
	if goals.Has(InsertionValue) {
		if ins, ok := c.Insertion(); ok {
			if v := fn(ins); v != ins {
				out = out.WithInsertion(&v)
				changed = true
			}
		}
	}
	return out, changed
}

// Children implements Nested.
func (ComponentAccessor) Children(c *richtext.Component) []*richtext.Component {
	return c.ChildComponents()
}

// WithChildren implements Nested.
func (ComponentAccessor) WithChildren(c *richtext.Component, children []*richtext.Component) *richtext.Component {
	return c.WithChildren(children)
}

// =============================================================================
// ENTRY POINTS
// =============================================================================

// EvaluateTree reports whether pred matches any field selected by goals in the
// tree under root, visited in document order.
func EvaluateTree(root *richtext.Component, goals TextGoal, pred Predicate) (bool, error) {
	if err := checkArgs(root == nil, goals, pred == nil); err != nil {
		return false, err
	}
	return EvaluateUnits([]*richtext.Component{root}, ComponentAccessor{}, goals, pred), nil
}

// ReplaceTree applies fn to every selected field in the tree under root. If no
// field changed, root itself is returned; otherwise every unchanged subtree is
// shared with root.
func ReplaceTree(root *richtext.Component, goals TextGoal, fn Transform) (*richtext.Component, error) {
	if err := checkArgs(root == nil, goals, fn == nil); err != nil {
		return nil, err
	}
	out, _ := ReplaceUnits([]*richtext.Component{root}, ComponentAccessor{}, goals, fn)
	return out[0], nil
}
