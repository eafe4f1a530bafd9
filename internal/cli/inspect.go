// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/richchat/internal/model"
	"github.com/jeranaias/richchat/internal/parser"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// renderMarkdown renders markdown for terminal display. The source is
// returned unchanged when the renderer cannot be built.
func renderMarkdown(content string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// =============================================================================
// INSPECT
// =============================================================================

func runInspect(args Args, env Env) error {
	p := NewArgParser(args.Raw)
	raw, msg, err := parseArg(p, 0, args, env, "richchat inspect '&aHello||ttp:Greeting'")
	if err != nil {
		return err
	}

	if args.JSON {
		return writeJSON(env, "inspect", NewParseData(raw, msg))
	}

	report := InspectReport(raw, msg)
	if env.TTY && env.Color {
		width := GetTerminalWidth()
		if width > 100 {
			width = 100
		}
		report = renderMarkdown(report, width)
	}
	writeLine(env.Stdout, report)
	return nil
}

// InspectReport describes msg as a markdown document with one table row per
// component and a details list per section.
func InspectReport(raw string, msg *model.Message) string {
	data := NewParseData(raw, msg)

	var sb strings.Builder
	sb.WriteString("# Message\n\n")
	sb.WriteString("```\n" + raw + "\n```\n\n")
	fmt.Fprintf(&sb, "- **Plain text:** %s\n", cell(data.Plain))
	fmt.Fprintf(&sb, "- **Width:** %d columns\n", data.Width)
	fmt.Fprintf(&sb, "- **Sections:** %d\n", len(data.Sections))
	fmt.Fprintf(&sb, "- **Canonical:** `%s`\n\n", strings.ReplaceAll(parser.Format(msg), "`", "'"))

	if msg.IsEmpty() && !hasAttributes(data) {
		sb.WriteString("_Empty message._\n")
		return sb.String()
	}

	sb.WriteString("## Components\n\n")
	sb.WriteString("| Section | Text | Color | Styles |\n")
	sb.WriteString("|---:|---|---|---|\n")
	for _, s := range data.Sections {
		for _, c := range s.Components {
			fmt.Fprintf(&sb, "| %d | %s | %s | %s |\n", s.Index, cell(c.Text), c.Color, c.Styles)
		}
	}

	sb.WriteString("\n## Sections\n\n")
	for _, s := range data.Sections {
		fmt.Fprintf(&sb, "### [%d] %s\n\n", s.Index, cell(s.Text))
		attrs := 0
		if s.Hover != nil {
			fmt.Fprintf(&sb, "- **Hover:** %s\n", cell(*s.Hover))
			attrs++
		}
		if s.Click != nil {
			fmt.Fprintf(&sb, "- **Click:** %s `%s`\n", s.Click.Action, strings.ReplaceAll(s.Click.Value, "`", "'"))
			attrs++
		}
		if s.Insertion != nil {
			fmt.Fprintf(&sb, "- **Insertion:** %s\n", cell(*s.Insertion))
			attrs++
		}
		if attrs == 0 {
			sb.WriteString("_No hover, click or insertion._\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// hasAttributes reports whether any section carries a hover, click or insertion.
func hasAttributes(data ParseData) bool {
	for _, s := range data.Sections {
		if s.Hover != nil || s.Click != nil || s.Insertion != nil {
			return true
		}
	}
	return false
}

// cell escapes text for a markdown table cell or list item.
func cell(s string) string {
	if s == "" {
		return "_(empty)_"
	}
	r := strings.NewReplacer("|", `\|`, "\n", " ↵ ", "*", `\*`, "_", `\_`, "`", "'")
	return r.Replace(s)
}
