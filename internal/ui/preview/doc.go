// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package preview provides a live terminal preview of raw chat messages.
//
// The screen has an input line for the raw string, the message rendered as a
// chat client would draw it, a table with one row per section, the
// attributes of the selected section and a status line with the parse error,
// if any. Obfuscated text is animated.
//
// # Key Bindings
//
//   - tab: toggle the tag grammar
//   - ctrl+j: toggle JSON component input
//   - ctrl+o: switch between legacy colors and no colors
//   - ctrl+t: toggle the hover and click footer
//   - up/down: select a section
//   - ctrl+l: clear the input
//   - esc, ctrl+c: quit
//
// # Usage
//
//	msg, err := preview.Run(ctx, preview.Options{
//	    Initial: "&aHello||ttp:world",
//	    Parse:   parser.DefaultOptions(),
//	})
package preview
