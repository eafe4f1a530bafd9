// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the CLI, exporters and
// catalog.
//
// # Key Functions
//
// String Utilities:
//   - TruncateRunes: UTF-8 safe truncation with ellipsis
//   - TruncateWidth: display-width truncation (wide runes count as 2 columns)
//   - StringWidth: display width of a string
//   - PadCenter: centers a string in a fixed number of columns
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	line := util.PadCenter(msg.PlainText(), 53)
//	err := util.AtomicWriteFile(path, data, 0644)
package util
