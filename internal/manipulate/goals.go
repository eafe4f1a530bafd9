// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package manipulate

import (
	"fmt"
	"strings"
)

// =============================================================================
// TEXT GOALS
// =============================================================================

// TextGoal selects textual fields. Goals combine with |.
type TextGoal uint8

const (
	// PlainContent is the text of each content component.
	PlainContent TextGoal = 1 << iota
	// HoverContent is the plain content of the hover message.
	HoverContent
	// ClickValue is the value of the click action.
	ClickValue
	// InsertionValue is the insertion text.
	InsertionValue
)

// AllGoals selects every field.
const AllGoals = PlainContent | HoverContent | ClickValue | InsertionValue

var goalNames = []struct {
	goal TextGoal
	name string
}{
	{PlainContent, "plain"},
	{HoverContent, "hover"},
	{ClickValue, "click"},
	{InsertionValue, "insertion"},
}

// Goals combines goals into one set.
func Goals(goals ...TextGoal) TextGoal {
	var out TextGoal
	for _, g := range goals {
		out |= g
	}
	return out
}

// Has reports whether every goal in o is selected.
func (g TextGoal) Has(o TextGoal) bool {
	return o != 0 && g&o == o
}

// Valid reports whether g is non-empty and has no unknown bits.
func (g TextGoal) Valid() bool {
	return g != 0 && g&^AllGoals == 0
}

// String lists the selected goals, comma separated.
func (g TextGoal) String() string {
	if g == 0 {
		return "none"
	}
	var parts []string
	for _, gn := range goalNames {
		if g&gn.goal != 0 {
			parts = append(parts, gn.name)
		}
	}
	if rest := g &^ AllGoals; rest != 0 {
		parts = append(parts, fmt.Sprintf("%#x", uint8(rest)))
	}
	return strings.Join(parts, ",")
}

// ParseGoals parses a comma separated list such as "plain,hover". "all"
// selects every goal. An empty list is an invalid argument.
func ParseGoals(list string) (TextGoal, error) {
	var out TextGoal
	for _, raw := range strings.Split(list, ",") {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		if name == "all" {
			out |= AllGoals
			continue
		}
		found := false
		for _, gn := range goalNames {
			if gn.name == name {
				out |= gn.goal
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: unknown goal %q", ErrInvalidArgument, raw)
		}
	}
	if out == 0 {
		return 0, fmt.Errorf("%w: no goals in %q", ErrInvalidArgument, list)
	}
	return out, nil
}
