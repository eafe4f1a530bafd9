// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the flat chat message model.
//
// A Message is an ordered sequence of Sections. Each Section holds styled text
// Components plus an optional hover message, click action and insertion text.
// All values are immutable once built: the With* methods return new values
// that share every unchanged part with the receiver.
//
// # Key Types
//
//   - Component: a run of text with one color and one style set
//   - Section: components plus hover, click and insertion attributes
//   - Message: the ordered, possibly empty list of sections
//   - Builder: the pending-section state machine used by the parser
//   - Transcript: a bounded history of parsed messages for interactive use
//
// # Usage
//
// Build a message by hand:
//
//	msg := model.NewMessage(
//	    model.NewSection([]model.Component{model.Text("Click me", color.Aqua)},
//	        model.WithClick(action.Run("/help")),
//	        model.WithHover(model.PlainMessage("Shows help")),
//	    ),
//	)
//
// Or drive a Builder token by token:
//
//	b := model.NewBuilder()
//	b.Content(model.Text("hello", color.Default))
//	b.Hover(model.PlainMessage("world"))
//	msg := b.Build()
package model
