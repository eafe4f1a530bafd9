// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package color

import "strings"

// =============================================================================
// STYLE SET
// =============================================================================

// StyleSet is a bitmask of text decorations.
type StyleSet uint8

const (
	Bold StyleSet = 1 << iota
	Italic
	Underline
	Strikethrough
	Obfuscated
)

// AllStyles has every style bit set.
const AllStyles = Bold | Italic | Underline | Strikethrough | Obfuscated

// styleCodes lists styles in legacy code order (k, l, m, n, o).
var styleCodes = []struct {
	code  byte
	style StyleSet
	name  string
}{
	{'k', Obfuscated, "obfuscated"},
	{'l', Bold, "bold"},
	{'m', Strikethrough, "strikethrough"},
	{'n', Underline, "underlined"},
	{'o', Italic, "italic"},
}

// StyleFromCode returns the style toggled by a legacy code in [k-oK-O].
func StyleFromCode(code byte) (StyleSet, bool) {
	if code >= 'A' && code <= 'Z' {
		code += 'a' - 'A'
	}
	for _, sc := range styleCodes {
		if sc.code == code {
			return sc.style, true
		}
	}
	return 0, false
}

// IsResetCode reports whether code is 'r' or 'R'.
func IsResetCode(code byte) bool {
	return code == 'r' || code == 'R'
}

// Has reports whether every bit of t is set in s.
func (s StyleSet) Has(t StyleSet) bool {
	return s&t == t && t != 0
}

// Toggle flips the bits of t.
func (s StyleSet) Toggle(t StyleSet) StyleSet {
	return s ^ t
}

// Codes returns the legacy codes for each set bit, in code order.
func (s StyleSet) Codes() []byte {
	var out []byte
	for _, sc := range styleCodes {
		if s&sc.style != 0 {
			out = append(out, sc.code)
		}
	}
	return out
}

// Each calls fn with the JSON name and value of every style bit in mask.
func (s StyleSet) Each(mask StyleSet, fn func(name string, on bool)) {
	for _, sc := range styleCodes {
		if mask&sc.style != 0 {
			fn(sc.name, s&sc.style != 0)
		}
	}
}

// StyleByName maps a JSON style key ("bold", "underlined", ...) to its bit.
func StyleByName(name string) (StyleSet, bool) {
	for _, sc := range styleCodes {
		if sc.name == name {
			return sc.style, true
		}
	}
	return 0, false
}

// String returns the set bits joined with '+', or "none".
func (s StyleSet) String() string {
	if s == 0 {
		return "none"
	}
	var parts []string
	for _, sc := range styleCodes {
		if s&sc.style != 0 {
			parts = append(parts, sc.name)
		}
	}
	return strings.Join(parts, "+")
}
