// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the richchat preview UI.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection. These styles frame the preview; the chat message itself is drawn
with its own colors by the export package.

# Color System (colors.go)

  - Purple - Headers and table titles
  - Cyan - Prompts, focus and key hints
  - Emerald - Success and enabled toggles
  - Amber - Disabled toggles and warnings
  - Rose - Parse errors

StatusIndicators pair every state with an ASCII shape so nothing depends on
color alone.

# Theme (theme.go)

Theme groups the styles by screen area (header, input, preview, section
table, status bar) and tracks the terminal size for responsive layouts:

	theme := styles.NewTheme()
	theme.SetSize(msg.Width, msg.Height)
	if theme.GetLayoutMode() == styles.LayoutNarrow { ... }

# Animations (animations.go)

Obfuscated text is redrawn every ObfuscateRate with Scramble, which keeps
the display width of every rune it replaces.
*/
package styles
