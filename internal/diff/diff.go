// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package diff

import (
	"fmt"
	"strings"

	"github.com/jeranaias/richchat/internal/model"
	"github.com/jeranaias/richchat/internal/parser"
)

// =============================================================================
// CHANGE TYPES
// =============================================================================

// ChangeType represents the type of a diff row.
type ChangeType int

const (
	// Unchanged marks a section present in both messages
	Unchanged ChangeType = iota
	// Added marks a section only in the new message
	Added
	// Removed marks a section only in the old message
	Removed
)

// String returns the string representation of a change type.
func (t ChangeType) String() string {
	switch t {
	case Unchanged:
		return "unchanged"
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Prefix returns the diff prefix character for this change type.
func (t ChangeType) Prefix() string {
	switch t {
	case Added:
		return "+"
	case Removed:
		return "-"
	default:
		return " "
	}
}

// =============================================================================
// DIFF
// =============================================================================

// Row is one section of either message.
type Row struct {
	Type  ChangeType
	Raw   string // Canonical raw form of the section alone
	Plain string
	Old   int // 1-based position in the old message, 0 if added
	New   int // 1-based position in the new message, 0 if removed
}

// Stats counts rows by type.
type Stats struct {
	Added     int
	Removed   int
	Unchanged int
}

// Diff is the section-level difference between two messages.
type Diff struct {
	Rows  []Row
	Stats Stats
}

// Messages compares before and after. A nil message counts as empty.
func Messages(before, after *model.Message) *Diff {
	var a, b []*model.Section
	if before != nil {
		a = before.Sections()
	}
	if after != nil {
		b = after.Sections()
	}

	// lcs[i][j] is the common subsequence length of a[i:] and b[j:].
	lcs := make([][]int, len(a)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i].Equal(b[j]) {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	d := &Diff{}
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Equal(b[j]):
			d.add(Unchanged, a[i], i+1, j+1)
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			d.add(Removed, a[i], i+1, 0)
			i++
		default:
			d.add(Added, b[j], 0, j+1)
			j++
		}
	}
	for ; i < len(a); i++ {
		d.add(Removed, a[i], i+1, 0)
	}
	for ; j < len(b); j++ {
		d.add(Added, b[j], 0, j+1)
	}
	return d
}

func (d *Diff) add(t ChangeType, s *model.Section, oldPos, newPos int) {
	d.Rows = append(d.Rows, Row{
		Type:  t,
		Raw:   parser.Format(model.NewMessage(s)),
		Plain: s.PlainText(),
		Old:   oldPos,
		New:   newPos,
	})
	switch t {
	case Added:
		d.Stats.Added++
	case Removed:
		d.Stats.Removed++
	default:
		d.Stats.Unchanged++
	}
}

// Changed reports whether any section was added or removed.
func (d *Diff) Changed() bool {
	return d.Stats.Added > 0 || d.Stats.Removed > 0
}

// =============================================================================
// FORMATTING
// =============================================================================

// Format writes one row per line: the prefix, a space and the section's raw
// form.
func Format(d *Diff) string {
	var sb strings.Builder
	for _, r := range d.Rows {
		sb.WriteString(r.Type.Prefix())
		sb.WriteString(" ")
		sb.WriteString(r.Raw)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Summary returns a short description of the diff.
func (d *Diff) Summary() string {
	if !d.Changed() {
		return fmt.Sprintf("unchanged (%d sections)", d.Stats.Unchanged)
	}
	return fmt.Sprintf("+%d -%d (%d unchanged)", d.Stats.Added, d.Stats.Removed, d.Stats.Unchanged)
}
