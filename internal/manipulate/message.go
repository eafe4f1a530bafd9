// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package manipulate

import (
	"github.com/jeranaias/richchat/internal/model"
)

// =============================================================================
// FLAT MESSAGE ADAPTER
// =============================================================================

// SectionAccessor adapts model.Section to the engine. Hover content is the
// plain content of the hover message.
type SectionAccessor struct{}

var _ Accessor[*model.Section] = SectionAccessor{}

// Test implements Accessor.
func (a SectionAccessor) Test(s *model.Section, goals TextGoal, pred Predicate) bool {
	if goals.Has(PlainContent) {
		for i := 0; i < s.Len(); i++ {
			if pred(s.Component(i).Text) {
				return true
			}
		}
	}
	if goals.Has(HoverContent) {
		if h := s.Hover(); h != nil && EvaluateUnits(h.Sections(), a, PlainContent, pred) {
			return true
		}
	}
	if goals.Has(ClickValue) {
		if c := s.Click(); c != nil && pred(c.Value) {
			return true
		}
	}
	if goals.Has(InsertionValue) {
		if ins, ok := s.Insertion(); ok && pred(ins) {
			return true
		}
	}
	return false
}

// Rewrite implements Accessor.
func (a SectionAccessor) Rewrite(s *model.Section, goals TextGoal, fn Transform) (*model.Section, bool) {
	out := s
	changed := false

	if goals.Has(PlainContent) {
		var contents []model.Component
		for i := 0; i < s.Len(); i++ {
			c := s.Component(i)
			if t := fn(c.Text); t != c.Text {
				if contents == nil {
					contents = s.Contents()
				}
				contents[i] = c.WithText(t)
			}
		}
		if contents != nil {
			out = out.WithContents(contents)
			changed = true
		}
	}
	if goals.Has(HoverContent) {
		if h := s.Hover(); h != nil {
			if nh, ok := replaceMessage(h, a, PlainContent, fn); ok {
				out = out.WithHover(nh)
				changed = true
			}
		}
	}
	if goals.Has(ClickValue) {
		if c := s.Click(); c != nil {
			if v := fn(c.Value); v != c.Value {
				nc := c.WithValue(v)
				out = out.WithClick(&nc)
				changed = true
			}
		}
	}
	if goals.Has(InsertionValue) {
		if ins, ok := s.Insertion(); ok {
			if v := fn(ins); v != ins {
				out = out.WithInsertion(&v)
				changed = true
			}
		}
	}
	return out, changed
}

func replaceMessage(m *model.Message, acc Accessor[*model.Section], goals TextGoal, fn Transform) (*model.Message, bool) {
	sections, changed := ReplaceUnits(m.Sections(), acc, goals, fn)
	if !changed {
		return m, false
	}
	return m.WithSections(sections), true
}

// =============================================================================
// ENTRY POINTS
// =============================================================================

// Evaluate reports whether pred matches any field of m selected by goals.
// Sections are visited in order; within a section the order is content,
// hover, click, insertion. Evaluation stops at the first match.
func Evaluate(m *model.Message, goals TextGoal, pred Predicate) (bool, error) {
	if err := checkArgs(m == nil, goals, pred == nil); err != nil {
		return false, err
	}
	return EvaluateUnits(m.Sections(), SectionAccessor{}, goals, pred), nil
}

// Replace applies fn to every field of m selected by goals. If no field
// changed, m itself is returned.
func Replace(m *model.Message, goals TextGoal, fn Transform) (*model.Message, error) {
	if err := checkArgs(m == nil, goals, fn == nil); err != nil {
		return nil, err
	}
	out, _ := replaceMessage(m, SectionAccessor{}, goals, fn)
	return out, nil
}
