// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package action defines click actions shared by flat messages and rich-text trees.
package action

import (
	"errors"
	"fmt"
)

// ErrUnknownKind is returned when a click action name is not recognized.
var ErrUnknownKind = errors.New("action: unknown click action")

// Kind identifies what a click does.
type Kind uint8

const (
	RunCommand Kind = iota + 1
	SuggestCommand
	OpenURL
)

// String returns the wire name of the kind ("run_command", ...).
func (k Kind) String() string {
	switch k {
	case RunCommand:
		return "run_command"
	case SuggestCommand:
		return "suggest_command"
	case OpenURL:
		return "open_url"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ParseKind maps a wire name to a Kind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "run_command":
		return RunCommand, nil
	case "suggest_command":
		return SuggestCommand, nil
	case "open_url":
		return OpenURL, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Click is a click action. Click is a comparable value; equality is by kind
// and value.
type Click struct {
	Kind  Kind
	Value string
}

// Run returns a click that runs value as a command.
func Run(value string) Click { return Click{Kind: RunCommand, Value: value} }

// Suggest returns a click that places value in the chat input.
func Suggest(value string) Click { return Click{Kind: SuggestCommand, Value: value} }

// URL returns a click that opens value.
func URL(value string) Click { return Click{Kind: OpenURL, Value: value} }

// WithValue returns a copy of c with a different value.
func (c Click) WithValue(value string) Click {
	c.Value = value
	return c
}

// Equal compares two optional clicks; two nils are equal.
func Equal(a, b *Click) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// EqualInsertion compares two optional insertion strings; two nils are equal.
func EqualInsertion(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
