// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package diff

import (
	"testing"

	"github.com/jeranaias/richchat/internal/model"
	"github.com/jeranaias/richchat/internal/parser"
)

func parse(t *testing.T, raw string) *model.Message {
	t.Helper()
	m, err := parser.Parse(raw, parser.DefaultOptions())
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return m
}

func TestMessages_Unchanged(t *testing.T) {
	m := parse(t, "&aHi||ttp:there||&cmore")
	d := Messages(m, parse(t, "&aHi||ttp:there||&cmore"))

	if d.Changed() {
		t.Errorf("Expected no change, got %s", d.Summary())
	}
	if d.Stats.Unchanged != 2 {
		t.Errorf("Expected 2 unchanged sections, got %d", d.Stats.Unchanged)
	}
	if got := d.Summary(); got != "unchanged (2 sections)" {
		t.Errorf("Summary() = %q", got)
	}
}

func TestMessages_ReplacedSection(t *testing.T) {
	before := parse(t, "&aHi||ttp:there||&cmore||&bend")
	after := parse(t, "&aHi||ttp:there||&cless||&bend")
	d := Messages(before, after)

	if d.Stats.Added != 1 || d.Stats.Removed != 1 || d.Stats.Unchanged != 2 {
		t.Fatalf("Unexpected stats %+v", d.Stats)
	}

	want := []ChangeType{Unchanged, Removed, Added, Unchanged}
	if len(d.Rows) != len(want) {
		t.Fatalf("Expected %d rows, got %d", len(want), len(d.Rows))
	}
	for i, w := range want {
		if d.Rows[i].Type != w {
			t.Errorf("Row %d: expected %s, got %s", i, w, d.Rows[i].Type)
		}
	}

	removed := d.Rows[1]
	if removed.Raw != "&cmore" || removed.Old != 2 || removed.New != 0 {
		t.Errorf("Unexpected removed row %+v", removed)
	}
	added := d.Rows[2]
	if added.Plain != "less" || added.Old != 0 || added.New != 2 {
		t.Errorf("Unexpected added row %+v", added)
	}
}

func TestMessages_AttributeChange(t *testing.T) {
	d := Messages(parse(t, "Hi||ttp:one"), parse(t, "Hi||ttp:two"))
	if !d.Changed() {
		t.Fatal("Expected a hover change to count as a change")
	}
	if got := d.Summary(); got != "+1 -1 (0 unchanged)" {
		t.Errorf("Summary() = %q", got)
	}
}

func TestMessages_Nil(t *testing.T) {
	d := Messages(nil, parse(t, "a||cmd:/x||b"))
	if d.Stats.Added != 2 || d.Stats.Removed != 0 {
		t.Errorf("Unexpected stats %+v", d.Stats)
	}

	d = Messages(nil, nil)
	if d.Changed() || len(d.Rows) != 0 {
		t.Errorf("Expected empty diff, got %+v", d)
	}
}

func TestFormat(t *testing.T) {
	d := Messages(parse(t, "&aHi||&cold"), parse(t, "&aHi||&cnew"))
	want := "  &aHi\n- &cold\n+ &cnew\n"
	if got := Format(d); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestChangeType(t *testing.T) {
	tests := []struct {
		t      ChangeType
		name   string
		prefix string
	}{
		{Unchanged, "unchanged", " "},
		{Added, "added", "+"},
		{Removed, "removed", "-"},
		{ChangeType(9), "unknown", " "},
	}
	for _, tt := range tests {
		if got := tt.t.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
		if got := tt.t.Prefix(); got != tt.prefix {
			t.Errorf("Prefix() = %q, want %q", got, tt.prefix)
		}
	}
}
