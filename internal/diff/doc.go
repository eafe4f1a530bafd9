// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package diff compares two messages section by section.
//
// Sections are matched by value with a longest common subsequence, so a
// replacement that touches one section shows as one removed and one added
// row while the rest stay unchanged.
//
// # Key Types
//
//   - ChangeType: Type of row (unchanged, added, removed)
//   - Row: One section with its canonical raw form and positions
//   - Diff: The rows and their counts
//
// # Usage
//
//	d := diff.Messages(before, after)
//	if d.Changed() {
//		fmt.Print(diff.Format(d))
//	}
package diff
