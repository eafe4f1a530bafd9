// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package preview

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the keyboard bindings of the preview.
type KeyMap struct {
	Quit     key.Binding
	Tags     key.Binding
	JSON     key.Binding
	Mode     key.Binding
	Annotate key.Binding
	Up       key.Binding
	Down     key.Binding
	Clear    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
		Tags: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "tags"),
		),
		JSON: key.NewBinding(
			key.WithKeys("ctrl+j"),
			key.WithHelp("C-j", "json"),
		),
		Mode: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("C-o", "colors"),
		),
		Annotate: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "annotate"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "prev section"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "next section"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "clear"),
		),
	}
}

// ShortHelp returns the bindings shown in the help line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tags, k.JSON, k.Mode, k.Annotate, k.Up, k.Down, k.Clear, k.Quit}
}

// FullHelp returns all bindings in one column.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
