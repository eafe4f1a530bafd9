// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/richchat/internal/color"
	"github.com/jeranaias/richchat/internal/model"
)

// =============================================================================
// ANSI EXPORTER
// =============================================================================

// ANSIExporter renders messages as terminal escape sequences.
type ANSIExporter struct {
	options  *Options
	renderer *lipgloss.Renderer
}

// NewANSIExporter creates an ANSI exporter bound to opts.Profile.
func NewANSIExporter(opts *Options) *ANSIExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(opts.Profile)
	r.SetHasDarkBackground(opts.Theme != "light")
	return &ANSIExporter{options: opts, renderer: r}
}

// Export renders every component in order, then the annotation footer when
// enabled.
func (e *ANSIExporter) Export(msg *model.Message) ([]byte, error) {
	if msg == nil {
		return nil, ErrNilMessage
	}
	var sb strings.Builder
	for _, c := range msg.Components() {
		sb.WriteString(e.RenderComponent(c))
	}
	if e.options.Annotate {
		sb.WriteString(e.annotations(msg))
	}
	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for ANSI text.
func (e *ANSIExporter) FileExtension() string {
	return ".ans"
}

// MimeType returns the MIME type for ANSI text.
func (e *ANSIExporter) MimeType() string {
	return "text/plain; charset=utf-8"
}

// RenderComponent styles one component. Lines are rendered separately so
// lipgloss does not pad them to a common width.
func (e *ANSIExporter) RenderComponent(c model.Component) string {
	st := e.style(c)
	lines := strings.Split(c.Text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = st.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func (e *ANSIExporter) style(c model.Component) lipgloss.Style {
	st := e.renderer.NewStyle().TabWidth(lipgloss.NoTabConversion)
	if !c.Color.IsDefault() {
		st = st.Foreground(lipgloss.Color(c.Color.Hex()))
	}
	if c.Styles.Has(color.Bold) {
		st = st.Bold(true)
	}
	if c.Styles.Has(color.Italic) {
		st = st.Italic(true)
	}
	if c.Styles.Has(color.Underline) {
		st = st.Underline(true)
	}
	if c.Styles.Has(color.Strikethrough) {
		st = st.Strikethrough(true)
	}
	if c.Styles.Has(color.Obfuscated) {
		st = st.Blink(true)
	}
	return st
}

// annotations lists section attributes, one faint line each, numbered by
// section.
func (e *ANSIExporter) annotations(msg *model.Message) string {
	var lines []string
	for i, s := range msg.Sections() {
		n := i + 1
		if h := s.Hover(); h != nil {
			lines = append(lines, fmt.Sprintf("[%d] hover: %s", n, h.PlainText()))
		}
		if c := s.Click(); c != nil {
			lines = append(lines, fmt.Sprintf("[%d] %s: %s", n, c.Kind, c.Value))
		}
		if ins, ok := s.Insertion(); ok {
			lines = append(lines, fmt.Sprintf("[%d] insertion: %s", n, ins))
		}
	}
	if len(lines) == 0 {
		return ""
	}
	faint := e.renderer.NewStyle().Faint(true)
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteByte('\n')
		sb.WriteString(faint.Render(l))
	}
	return sb.String()
}
