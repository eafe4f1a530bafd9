// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

// =============================================================================
// THEME TESTS
// =============================================================================

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme() returned nil")
	}
	if got := theme.Header.Render("test"); !strings.Contains(got, "test") {
		t.Errorf("Header should render its content, got %q", got)
	}
}

func TestThemeLayoutMode(t *testing.T) {
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
	}

	theme := NewTheme()
	for _, tt := range tests {
		theme.SetSize(tt.width, 24)
		if got := theme.GetLayoutMode(); got != tt.want {
			t.Errorf("width %d: GetLayoutMode() = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestThemeToggle(t *testing.T) {
	theme := NewTheme()
	if got := theme.Toggle("tags", true); !strings.Contains(got, StatusIndicators.On+" tags") {
		t.Errorf("Toggle on = %q", got)
	}
	if got := theme.Toggle("json", false); !strings.Contains(got, StatusIndicators.Off+" json") {
		t.Errorf("Toggle off = %q", got)
	}
}

// =============================================================================
// ANIMATION TESTS
// =============================================================================

func TestScrambleKeepsWidth(t *testing.T) {
	inputs := []string{"Hello world", "a\nb c", "日本語 text", ""}
	for _, in := range inputs {
		for frame := 0; frame < 5; frame++ {
			out := Scramble(in, frame)
			if runewidth.StringWidth(out) != runewidth.StringWidth(in) {
				t.Errorf("Scramble(%q, %d) = %q changes width", in, frame, out)
			}
			if strings.Count(out, "\n") != strings.Count(in, "\n") {
				t.Errorf("Scramble(%q, %d) = %q changes line breaks", in, frame, out)
			}
		}
	}
}

func TestScrambleKeepsSpaces(t *testing.T) {
	out := []rune(Scramble("ab cd", 3))
	if out[2] != ' ' {
		t.Errorf("space not kept: %q", string(out))
	}
}

func TestScrambleVariesByFrame(t *testing.T) {
	in := strings.Repeat("x", 20)
	if Scramble(in, 1) == Scramble(in, 2) {
		t.Error("consecutive frames should differ")
	}
	if Scramble(in, 7) != Scramble(in, 7) {
		t.Error("the same frame should scramble the same way")
	}
}

func TestRenderTreeLine(t *testing.T) {
	if got := RenderTreeLine(false); got != "+- " {
		t.Errorf("RenderTreeLine(false) = %q", got)
	}
	if got := RenderTreeLine(true); got != "`- " {
		t.Errorf("RenderTreeLine(true) = %q", got)
	}
}
