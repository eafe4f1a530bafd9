// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package color defines the color and style values carried by chat messages.
//
// # Key Types
//
//   - Color: a 24-bit RGB value, or the explicit default state produced by a reset
//   - StyleSet: bitmask of bold, italic, underline, strikethrough and obfuscated
//   - Palette: the 16 legacy color codes 0-9a-f and their RGB values
//
// # Usage
//
// Look up a legacy code and serialize it back:
//
//	red, _ := color.FromCode('c')
//	code, ok := red.Code() // 'c', true
//
// Arbitrary colors only serialize to a legacy code when they match a palette
// entry exactly:
//
//	c := color.MustRGB(0xFF5555)
//	c.Code() // 'c', true
//	color.MustRGB(0xFF5556).Code() // 0, false
package color
