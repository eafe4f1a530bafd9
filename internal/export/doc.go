// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export renders parsed chat messages into output formats.
//
// # Key Types
//
//   - Exporter: Common interface implemented by every format
//   - Options: Export configuration (profile, theme, tags, annotations)
//
// # Supported Formats
//
//   - ansi: Terminal escape sequences via lipgloss
//   - legacy: Raw chat strings with color markers and tags
//   - json: The JSON component form
//   - html: Standalone page with styled spans and links
//   - markdown: Emphasis and links
//   - plain: Visible text only
//
// # Usage
//
//	exp, err := export.ForFormat("html", export.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	path, err := export.ExportToFile(msg, exp, opts)
package export
