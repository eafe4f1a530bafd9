// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/jeranaias/richchat/internal/action"
	"github.com/jeranaias/richchat/internal/color"
	"github.com/jeranaias/richchat/internal/model"
	"github.com/jeranaias/richchat/internal/util"
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter exports messages to a standalone HTML page with embedded CSS.
type HTMLExporter struct {
	options *Options
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &HTMLExporter{options: opts}
}

// Export converts a message to an HTML document.
func (e *HTMLExporter) Export(msg *model.Message) ([]byte, error) {
	if msg == nil {
		return nil, ErrNilMessage
	}

	theme := e.options.Theme
	if theme != "light" {
		theme = "dark"
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html lang=\"en\">\n")
	sb.WriteString("<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", html.EscapeString(util.TruncateRunes(msg.PlainText(), 60))))
	if e.options.IncludeMetadata {
		sb.WriteString("    <meta name=\"generator\" content=\"richchat\">\n")
		sb.WriteString(fmt.Sprintf("    <meta name=\"sections\" content=\"%d\">\n", msg.Len()))
	}
	sb.WriteString(css)
	sb.WriteString("</head>\n")
	sb.WriteString(fmt.Sprintf("<body class=\"%s-theme\">\n", theme))
	sb.WriteString("    <p class=\"message\">")
	sb.WriteString(RenderHTML(msg))
	sb.WriteString("</p>\n")
	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for HTML.
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

// MimeType returns the MIME type for HTML.
func (e *HTMLExporter) MimeType() string {
	return "text/html"
}

// =============================================================================
// RENDERING FUNCTIONS
// =============================================================================

// RenderHTML renders the body of a message without the page around it.
// Sections with attributes become an element carrying them: an anchor for
// safe URLs, otherwise a span with data attributes.
func RenderHTML(msg *model.Message) string {
	var sb strings.Builder
	for _, s := range msg.Sections() {
		sb.WriteString(renderSection(s))
	}
	return sb.String()
}

func renderSection(s *model.Section) string {
	var inner strings.Builder
	for _, c := range s.Contents() {
		inner.WriteString(renderComponent(c))
	}

	tag := "span"
	var attrs []string
	if c := s.Click(); c != nil {
		switch {
		case c.Kind == action.OpenURL && safeURL(c.Value):
			tag = "a"
			attrs = append(attrs, attr("href", c.Value))
		case c.Kind == action.OpenURL:
			attrs = append(attrs, attr("data-url", c.Value))
		case c.Kind == action.RunCommand:
			attrs = append(attrs, attr("data-command", c.Value))
		case c.Kind == action.SuggestCommand:
			attrs = append(attrs, attr("data-suggest", c.Value))
		}
	}
	if h := s.Hover(); h != nil {
		attrs = append(attrs, attr("title", h.PlainText()))
	}
	if ins, ok := s.Insertion(); ok {
		attrs = append(attrs, attr("data-insertion", ins))
	}
	if len(attrs) == 0 {
		return inner.String()
	}
	if tag == "span" {
		attrs = append([]string{`class="section"`}, attrs...)
	}
	return fmt.Sprintf("<%s %s>%s</%s>", tag, strings.Join(attrs, " "), inner.String(), tag)
}

func renderComponent(c model.Component) string {
	text := strings.ReplaceAll(html.EscapeString(c.Text), "\n", "<br>")

	var rules []string
	if !c.Color.IsDefault() {
		rules = append(rules, "color:"+c.Color.Hex())
	}
	if c.Styles.Has(color.Bold) {
		rules = append(rules, "font-weight:bold")
	}
	if c.Styles.Has(color.Italic) {
		rules = append(rules, "font-style:italic")
	}
	var deco []string
	if c.Styles.Has(color.Underline) {
		deco = append(deco, "underline")
	}
	if c.Styles.Has(color.Strikethrough) {
		deco = append(deco, "line-through")
	}
	if len(deco) > 0 {
		rules = append(rules, "text-decoration:"+strings.Join(deco, " "))
	}

	var attrs []string
	if c.Styles.Has(color.Obfuscated) {
		attrs = append(attrs, `class="obfuscated"`)
	}
	if len(rules) > 0 {
		attrs = append(attrs, attr("style", strings.Join(rules, ";")))
	}
	if len(attrs) == 0 {
		return text
	}
	return fmt.Sprintf("<span %s>%s</span>", strings.Join(attrs, " "), text)
}

func attr(name, value string) string {
	return fmt.Sprintf(`%s="%s"`, name, html.EscapeString(value))
}

// safeURL reports whether u may be used as a link target.
func safeURL(u string) bool {
	parsed, err := url.Parse(u)
	if err != nil {
		return false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto":
		return true
	}
	return false
}

// =============================================================================
// STYLES
// =============================================================================

const css = `    <style>
        :root {
            --font-mono: "SF Mono", "Monaco", "Inconsolata", "Fira Code", "Source Code Pro", monospace;
        }

        .dark-theme {
            --bg-primary: #1a1b26;
            --text-primary: #c0caf5;
            --accent-blue: #7aa2f7;
        }

        .light-theme {
            --bg-primary: #ffffff;
            --text-primary: #24292e;
            --accent-blue: #0366d6;
        }

        body {
            font-family: var(--font-mono);
            background: var(--bg-primary);
            color: var(--text-primary);
            padding: 2rem;
        }

        .message a {
            color: inherit;
            text-decoration-color: var(--accent-blue);
        }

        .section[title], .section[data-command], .section[data-suggest] {
            cursor: pointer;
            border-bottom: 1px dotted var(--accent-blue);
        }

        .obfuscated {
            filter: blur(3px);
        }
    </style>
`
