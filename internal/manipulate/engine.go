// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package manipulate

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned before any traversal when a required input is
// nil or the goal set is empty.
var ErrInvalidArgument = errors.New("manipulate: invalid argument")

// Predicate tests one field value.
type Predicate func(text string) bool

// Transform maps one field value to its replacement. Absent fields (no click,
// no insertion, no hover) are never passed to a Transform.
type Transform func(text string) string

// =============================================================================
// UNIT ACCESS
// =============================================================================

// Accessor exposes the textual fields of one unit type.
type Accessor[U any] interface {
	// Test calls pred on each field of u selected by goals, in goal order,
	// and reports whether any call returned true. It stops at the first true.
	Test(u U, goals TextGoal, pred Predicate) bool
	// Rewrite applies fn to each field of u selected by goals. It returns u
	// itself and false when every field came back equal.
	Rewrite(u U, goals TextGoal, fn Transform) (U, bool)
}

// Nested is implemented by accessors whose units have children. Children are
// visited after the unit's own fields.
type Nested[U any] interface {
	Children(u U) []U
	WithChildren(u U, children []U) U
}

// =============================================================================
// ENGINE
// =============================================================================

// EvaluateUnits reports whether pred matches any selected field of units,
// visiting units in order and children after their parent.
func EvaluateUnits[U any](units []U, acc Accessor[U], goals TextGoal, pred Predicate) bool {
	nested, _ := acc.(Nested[U])
	for _, u := range units {
		if acc.Test(u, goals, pred) {
			return true
		}
		if nested != nil && EvaluateUnits(nested.Children(u), acc, goals, pred) {
			return true
		}
	}
	return false
}

// ReplaceUnits rewrites every unit. When nothing changed it returns units
// itself and false; otherwise a new slice in which unchanged units are
// reused.
func ReplaceUnits[U any](units []U, acc Accessor[U], goals TextGoal, fn Transform) ([]U, bool) {
	nested, _ := acc.(Nested[U])
	var out []U
	for i, u := range units {
		nu, changed := acc.Rewrite(u, goals, fn)
		if nested != nil {
			if kids, kidsChanged := ReplaceUnits(nested.Children(u), acc, goals, fn); kidsChanged {
				nu = nested.WithChildren(nu, kids)
				changed = true
			}
		}
		if !changed {
			if out != nil {
				out = append(out, u)
			}
			continue
		}
		if out == nil {
			out = make([]U, i, len(units))
			copy(out, units[:i])
		}
		out = append(out, nu)
	}
	if out == nil {
		return units, false
	}
	return out, true
}

// checkArgs validates the common arguments of every entry point.
func checkArgs(rootNil bool, goals TextGoal, fnNil bool) error {
	switch {
	case rootNil:
		return fmt.Errorf("%w: nil root", ErrInvalidArgument)
	case goals == 0:
		return fmt.Errorf("%w: empty goal set", ErrInvalidArgument)
	case !goals.Valid():
		return fmt.Errorf("%w: unknown goals %s", ErrInvalidArgument, goals)
	case fnNil:
		return fmt.Errorf("%w: nil function", ErrInvalidArgument)
	}
	return nil
}
