// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package preview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/richchat/internal/export"
	"github.com/jeranaias/richchat/internal/model"
	"github.com/jeranaias/richchat/internal/ui/styles"
	"github.com/jeranaias/richchat/internal/util"
)

// =============================================================================
// SECTION TABLE
// =============================================================================

// columns lays out the section table for a terminal width columns wide.
func columns(width int) []table.Column {
	return columnsFor(styles.LayoutMedium, width)
}

// columnsFor sizes the section table. Narrow terminals give all the room to
// the text and click columns; hover and insertion stay in the detail view.
func columnsFor(mode styles.LayoutMode, width int) []table.Column {
	// Two columns of cell padding per column.
	avail := max(width-3-2*5, 20)
	if mode == styles.LayoutNarrow {
		text := avail * 6 / 10
		return []table.Column{
			{Title: "#", Width: 3},
			{Title: "Text", Width: text},
			{Title: "Hover", Width: 0},
			{Title: "Click", Width: avail - text},
			{Title: "Insertion", Width: 0},
		}
	}
	text := avail * 3 / 10
	hover := avail / 4
	click := avail / 4
	return []table.Column{
		{Title: "#", Width: 3},
		{Title: "Text", Width: text},
		{Title: "Hover", Width: hover},
		{Title: "Click", Width: click},
		{Title: "Insertion", Width: avail - text - hover - click},
	}
}

// rows builds one table row per section.
func rows(msg *model.Message) []table.Row {
	if msg == nil {
		return nil
	}
	out := make([]table.Row, 0, msg.Len())
	for i, s := range msg.Sections() {
		row := table.Row{strconv.Itoa(i), oneLine(s.PlainText()), "", "", ""}
		if h := s.Hover(); h != nil {
			row[2] = oneLine(h.PlainText())
		}
		if c := s.Click(); c != nil {
			row[3] = c.Kind.String() + " " + c.Value
		}
		if ins, ok := s.Insertion(); ok {
			row[4] = oneLine(ins)
		}
		out = append(out, row)
	}
	return out
}

func oneLine(s string) string {
	return strings.ReplaceAll(s, "\n", " ↵ ")
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the preview screen.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.theme.InputContainer.Width(max(m.width-2, 20)).Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.renderPreview())
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")
	if details := m.renderDetails(); details != "" {
		b.WriteString(details)
		b.WriteString("\n")
	}
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderHeader() string {
	toggles := strings.Join([]string{
		m.theme.Toggle("tags", m.parse.Tags),
		m.theme.Toggle("json", m.parse.JSON),
		m.theme.Toggle("annotate", m.export.Annotate),
		m.theme.HeaderSubtitle.Render("colors: " + m.parse.ColorMode.String()),
	}, "  ")
	title := m.theme.HeaderTitle.Render("richchat preview")
	gap := max(m.width-lipgloss.Width(title)-lipgloss.Width(toggles)-2, 1)
	return m.theme.Header.Render(title + strings.Repeat(" ", gap) + toggles)
}

// renderPreview draws the message as chat would, with obfuscated text
// scrambled for the current frame.
func (m Model) renderPreview() string {
	label := m.theme.PreviewLabel.Render("Preview")
	body := m.theme.Muted.Render("(empty)")
	if m.msg != nil && !m.msg.IsEmpty() {
		out, err := m.renderer.Export(scrambled(m.msg, m.frame))
		if err != nil {
			body = m.theme.StatusError.Render(err.Error())
		} else {
			body = string(out)
		}
	}
	return m.theme.PreviewBox.Width(max(m.width-2, 20)).Render(label + "\n" + body)
}

// renderDetails lists the attributes of the selected section as a tree.
func (m Model) renderDetails() string {
	if m.msg == nil || m.msg.Len() == 0 {
		return ""
	}
	i := m.table.Cursor()
	if i < 0 || i >= m.msg.Len() {
		return ""
	}
	s := m.msg.Section(i)

	var lines []string
	if h := s.Hover(); h != nil {
		lines = append(lines, "hover: "+oneLine(h.PlainText()))
	}
	if c := s.Click(); c != nil {
		lines = append(lines, c.Kind.String()+": "+c.Value)
	}
	if ins, ok := s.Insertion(); ok {
		lines = append(lines, "insertion: "+oneLine(ins))
	}
	if len(lines) == 0 {
		return ""
	}

	width := max(m.width-6, 10)
	var b strings.Builder
	fmt.Fprintf(&b, "section %d\n", i)
	for j, l := range lines {
		b.WriteString(styles.RenderTreeLine(j == len(lines)-1))
		b.WriteString(util.TruncateWidth(l, width))
		if j < len(lines)-1 {
			b.WriteString("\n")
		}
	}
	return m.theme.Detail.Render(b.String())
}

func (m Model) renderStatus() string {
	if m.err != nil {
		return m.theme.StatusBar.Render(
			m.theme.StatusError.Render(styles.StatusIndicators.Error) + " " + util.TruncateWidth(m.err.Error(), max(m.width-8, 10)))
	}
	n := 0
	width := 0
	if m.msg != nil {
		n = m.msg.Len()
		width = export.Width(m.msg)
	}
	return m.theme.StatusBar.Render(fmt.Sprintf("%s %d sections, %d columns",
		m.theme.StatusOK.Render(styles.StatusIndicators.Success), n, width))
}
