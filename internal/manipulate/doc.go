// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package manipulate searches and rewrites the text of messages and rich-text
// trees, scoped by text goals.
//
// A goal selects which textual fields an operation touches: plain content,
// hover content, click values and insertion values. Evaluate tests fields in
// a fixed order (content, hover, click, insertion, then children for trees)
// and stops at the first match; fields outside the goals are never visited.
// Replace rebuilds only what changed, and returns the very same root when no
// field changed, so callers can detect a no-op with ==.
//
// One generic engine serves both models: an Accessor describes how to test
// and rewrite the fields of a unit (a model.Section or a richtext.Component),
// and units that nest implement Nested as well.
//
// # Key Types
//
//   - TextGoal: bitset of PlainContent, HoverContent, ClickValue, InsertionValue
//   - Accessor / Nested: field access for one unit type
//   - Manipulator: a root bound to a goal set
//
// # Usage
//
//	m, err := manipulate.ForMessage(msg, manipulate.PlainContent, manipulate.HoverContent)
//	if err != nil {
//	    return err
//	}
//	out, err := m.ReplaceText("{player}", "Steve")
//	if out == msg {
//	    // nothing matched
//	}
package manipulate
