// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jeranaias/richchat/internal/action"
	"github.com/jeranaias/richchat/internal/color"
	"github.com/jeranaias/richchat/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports messages to Markdown. Colors and underline have no
// Markdown form and are dropped.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export converts a message to Markdown.
func (e *MarkdownExporter) Export(msg *model.Message) ([]byte, error) {
	if msg == nil {
		return nil, ErrNilMessage
	}

	var sb strings.Builder
	if e.options.IncludeMetadata {
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("title: %s\n", escapeYAML(msg.PlainText())))
		sb.WriteString(fmt.Sprintf("sections: %d\n", msg.Len()))
		sb.WriteString("generator: richchat\n")
		sb.WriteString("---\n\n")
	}
	sb.WriteString(RenderMarkdown(msg))
	sb.WriteString("\n")
	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// RenderMarkdown renders the message body. Sections opening a safe URL become
// links, titled with the hover text when there is one.
func RenderMarkdown(msg *model.Message) string {
	var sb strings.Builder
	for _, s := range msg.Sections() {
		var inner strings.Builder
		for _, c := range s.Contents() {
			inner.WriteString(emphasize(c.Text, c.Styles))
		}
		c := s.Click()
		if c == nil || c.Kind != action.OpenURL || !safeURL(c.Value) || inner.Len() == 0 {
			sb.WriteString(inner.String())
			continue
		}
		title := ""
		if h := s.Hover(); h != nil && !h.IsEmpty() {
			title = fmt.Sprintf(` "%s"`, strings.ReplaceAll(h.PlainText(), `"`, `\"`))
		}
		sb.WriteString(fmt.Sprintf("[%s](<%s>%s)", inner.String(), c.Value, title))
	}
	return sb.String()
}

// emphasize wraps text in emphasis markers. Surrounding whitespace stays
// outside the markers so they still bind.
func emphasize(text string, styles color.StyleSet) string {
	core := strings.TrimLeftFunc(text, unicode.IsSpace)
	lead := text[:len(text)-len(core)]
	core = strings.TrimRightFunc(core, unicode.IsSpace)
	trail := text[len(lead)+len(core):]

	if core == "" {
		return text
	}
	core = escapeMarkdown(core)
	if styles.Has(color.Italic) {
		core = "*" + core + "*"
	}
	if styles.Has(color.Bold) {
		core = "**" + core + "**"
	}
	if styles.Has(color.Strikethrough) {
		core = "~~" + core + "~~"
	}
	return lead + core + trail
}

// =============================================================================
// ESCAPING HELPERS
// =============================================================================

// escapeMarkdown escapes special Markdown characters in plain text.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "#", "\\#")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "_", "\\_")
	s = strings.ReplaceAll(s, "~", "\\~")
	s = strings.ReplaceAll(s, "`", "\\`")
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	return s
}

// escapeYAML escapes special YAML characters in values.
func escapeYAML(s string) string {
	if strings.ContainsAny(s, ":#|>@`\"'[]{}!%&*\n\r\\") || strings.HasPrefix(s, " ") || strings.HasSuffix(s, " ") {
		s = strings.ReplaceAll(s, "\\", "\\\\")
		s = strings.ReplaceAll(s, "\"", "\\\"")
		s = strings.ReplaceAll(s, "\n", "\\n")
		s = strings.ReplaceAll(s, "\r", "\\r")
		return fmt.Sprintf("\"%s\"", s)
	}
	return s
}
