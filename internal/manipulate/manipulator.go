// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package manipulate

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jeranaias/richchat/internal/model"
	"github.com/jeranaias/richchat/internal/richtext"
)

// =============================================================================
// MANIPULATOR
// =============================================================================

// Manipulator binds a root of type M to a goal set. It is immutable; Derive
// and With return new manipulators, so one root can be shared by several
// manipulators across goroutines.
type Manipulator[M comparable] struct {
	root     M
	goals    TextGoal
	evaluate func(M, TextGoal, Predicate) (bool, error)
	replace  func(M, TextGoal, Transform) (M, error)
}

// ForMessage binds m to the union of goals.
func ForMessage(m *model.Message, goals ...TextGoal) (*Manipulator[*model.Message], error) {
	return bind(m, m == nil, Goals(goals...), Evaluate, Replace)
}

// ForTree binds a rich-text root to the union of goals.
func ForTree(root *richtext.Component, goals ...TextGoal) (*Manipulator[*richtext.Component], error) {
	return bind(root, root == nil, Goals(goals...), EvaluateTree, ReplaceTree)
}

func bind[M comparable](
	root M,
	rootNil bool,
	goals TextGoal,
	evaluate func(M, TextGoal, Predicate) (bool, error),
	replace func(M, TextGoal, Transform) (M, error),
) (*Manipulator[M], error) {
	if err := checkArgs(rootNil, goals, false); err != nil {
		return nil, err
	}
	return &Manipulator[M]{root: root, goals: goals, evaluate: evaluate, replace: replace}, nil
}

// Root returns the bound root.
func (m *Manipulator[M]) Root() M {
	return m.root
}

// Goals returns the bound goal set.
func (m *Manipulator[M]) Goals() TextGoal {
	return m.goals
}

// Derive returns a manipulator over the same root with a different goal set.
func (m *Manipulator[M]) Derive(goals ...TextGoal) (*Manipulator[M], error) {
	g := Goals(goals...)
	if err := checkArgs(false, g, false); err != nil {
		return nil, err
	}
	d := *m
	d.goals = g
	return &d, nil
}

// With returns a manipulator with the same goals over another root.
func (m *Manipulator[M]) With(root M) *Manipulator[M] {
	d := *m
	d.root = root
	return &d
}

// Evaluate reports whether pred matches any selected field.
func (m *Manipulator[M]) Evaluate(pred Predicate) (bool, error) {
	return m.evaluate(m.root, m.goals, pred)
}

// Replace applies fn to every selected field. The bound root is returned when
// nothing changed.
func (m *Manipulator[M]) Replace(fn Transform) (M, error) {
	return m.replace(m.root, m.goals, fn)
}

// ReplaceText replaces every occurrence of target in the selected fields.
// An empty target is an invalid argument.
func (m *Manipulator[M]) ReplaceText(target, replacement string) (M, error) {
	if target == "" {
		var zero M
		return zero, fmt.Errorf("%w: empty target", ErrInvalidArgument)
	}
	return m.Replace(func(s string) string {
		if !strings.Contains(s, target) {
			return s
		}
		return strings.ReplaceAll(s, target, replacement)
	})
}

// ReplaceAll applies every target/replacement pair in one pass per field, in
// the order given by pairs (as for strings.NewReplacer).
func (m *Manipulator[M]) ReplaceAll(pairs ...string) (M, error) {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		var zero M
		return zero, fmt.Errorf("%w: replacement pairs", ErrInvalidArgument)
	}
	r := strings.NewReplacer(pairs...)
	return m.Replace(r.Replace)
}

// Contains reports whether any selected field contains target.
func (m *Manipulator[M]) Contains(target string) (bool, error) {
	return m.Evaluate(func(s string) bool { return strings.Contains(s, target) })
}

// ContainsFold is Contains under Unicode case folding.
func (m *Manipulator[M]) ContainsFold(target string) (bool, error) {
	fold := cases.Fold()
	needle := fold.String(target)
	return m.Evaluate(func(s string) bool { return strings.Contains(fold.String(s), needle) })
}

// Changed reports whether out differs from the bound root by identity, which
// is how Replace signals a no-op.
func (m *Manipulator[M]) Changed(out M) bool {
	return out != m.root
}
