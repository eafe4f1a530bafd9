// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package preview

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/richchat/internal/color"
	"github.com/jeranaias/richchat/internal/export"
	"github.com/jeranaias/richchat/internal/lexer"
	"github.com/jeranaias/richchat/internal/model"
	"github.com/jeranaias/richchat/internal/parser"
	"github.com/jeranaias/richchat/internal/ui/styles"
)

// Options configures a preview session.
type Options struct {
	// Initial is the raw message shown when the preview opens.
	Initial string

	// Parse holds the starting parse options; tags, JSON and color mode can
	// be toggled while running.
	Parse parser.Options

	// Export controls the ANSI rendering. Nil uses export.DefaultOptions.
	Export *export.Options

	// Logger receives parse diagnostics. Nil uses zap.L().
	Logger *zap.Logger
}

// tickMsg advances the obfuscated text animation.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(styles.ObfuscateRate, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the bubbletea model of the live preview.
type Model struct {
	parse    parser.Options
	export   *export.Options
	renderer *export.ANSIExporter

	keys    KeyMap
	help    help.Model
	input   textinput.Model
	table   table.Model
	columns []table.Column
	theme   *styles.Theme
	log     *zap.Logger

	msg     *model.Message
	err     error
	frame   int
	ticking bool
	width   int
	height  int
}

// New creates a preview model.
func New(opts Options) Model {
	eopts := opts.Export
	if eopts == nil {
		eopts = export.DefaultOptions()
	}
	cp := *eopts
	log := opts.Logger
	if log == nil {
		log = zap.L()
	}

	theme := styles.NewTheme()

	input := textinput.New()
	input.Prompt = "> "
	input.PromptStyle = theme.InputPrompt
	input.PlaceholderStyle = theme.InputPlaceholder
	input.Placeholder = "&aHello &l<#FF00FF>world||ttp:&7Greeting||cmd:/hello"
	input.CharLimit = 4096
	input.SetValue(opts.Initial)
	input.Focus()

	ts := table.DefaultStyles()
	ts.Header = theme.TableHeader
	ts.Cell = theme.TableCell
	ts.Selected = theme.TableSelected
	cols := columns(80)
	tbl := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(6),
		table.WithStyles(ts),
	)

	m := Model{
		parse:    opts.Parse,
		export:   &cp,
		renderer: export.NewANSIExporter(&cp),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		input:    input,
		table:    tbl,
		columns:  cols,
		theme:    theme,
		log:      log.Named("preview"),
		width:    80,
		height:   24,
	}
	m.reparse()
	return m
}

// Init starts the cursor blink and, when needed, the obfuscation animation.
func (m Model) Init() tea.Cmd {
	if hasObfuscated(m.msg) {
		return tea.Batch(textinput.Blink, tick())
	}
	return textinput.Blink
}

// Message returns the last successfully parsed message.
func (m Model) Message() *model.Message {
	return m.msg
}

// Err returns the parse error of the current input, if any.
func (m Model) Err() error {
	return m.err
}

// Value returns the current raw input.
func (m Model) Value() string {
	return m.input.Value()
}

// ParseOptions returns the current parse options.
func (m Model) ParseOptions() parser.Options {
	return m.parse
}

// Update handles input and window events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		m.frame++
		if hasObfuscated(m.msg) {
			return m, tick()
		}
		m.ticking = false
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tags):
			m.parse.Tags = !m.parse.Tags
			m.export.Tags = m.parse.Tags
			return m, m.reparse()
		case key.Matches(msg, m.keys.JSON):
			m.parse.JSON = !m.parse.JSON
			return m, m.reparse()
		case key.Matches(msg, m.keys.Mode):
			if m.parse.ColorMode == lexer.Legacy {
				m.parse.ColorMode = lexer.None
			} else {
				m.parse.ColorMode = lexer.Legacy
			}
			return m, m.reparse()
		case key.Matches(msg, m.keys.Annotate):
			m.export.Annotate = !m.export.Annotate
			m.renderer = export.NewANSIExporter(m.export)
			return m, nil
		case key.Matches(msg, m.keys.Up):
			m.table.MoveUp(1)
			return m, nil
		case key.Matches(msg, m.keys.Down):
			m.table.MoveDown(1)
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			m.input.SetValue("")
			return m, m.reparse()
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		return m, tea.Batch(cmd, m.reparse())
	}
	return m, cmd
}

// reparse parses the input and refreshes the section table. A failed parse
// keeps the last good message on screen. The returned command starts the
// animation when obfuscated text appears.
func (m *Model) reparse() tea.Cmd {
	msg, err := parser.Parse(m.input.Value(), m.parse)
	m.err = err
	if err != nil {
		m.log.Debug("parse failed", zap.Error(err))
	} else {
		m.msg = msg
	}
	m.table.SetRows(rows(m.msg))
	if m.table.Cursor() >= len(m.table.Rows()) {
		m.table.SetCursor(0)
	}

	if !m.ticking && hasObfuscated(m.msg) {
		m.ticking = true
		return tick()
	}
	return nil
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.theme.SetSize(width, height)
	m.input.Width = max(width-8, 10)
	m.help.Width = width
	m.columns = columnsFor(m.theme.GetLayoutMode(), width)
	m.table.SetColumns(m.columns)
	m.table.SetHeight(max(height/3, 3))
}

// hasObfuscated reports whether msg contains obfuscated text.
func hasObfuscated(msg *model.Message) bool {
	if msg == nil {
		return false
	}
	for _, c := range msg.Components() {
		if c.Styles.Has(color.Obfuscated) && c.Text != "" {
			return true
		}
	}
	return false
}

// scrambled returns msg with obfuscated text replaced for the given frame.
// msg itself is returned when it has nothing obfuscated.
func scrambled(msg *model.Message, frame int) *model.Message {
	if msg == nil {
		return nil
	}
	sections := msg.Sections()
	changed := false
	for i, s := range sections {
		contents := s.Contents()
		touched := false
		for j, c := range contents {
			if c.Styles.Has(color.Obfuscated) {
				contents[j] = c.WithText(styles.Scramble(c.Text, frame*97+i*31+j))
				touched = true
			}
		}
		if touched {
			sections[i] = s.WithContents(contents)
			changed = true
		}
	}
	if !changed {
		return msg
	}
	return msg.WithSections(sections)
}

// =============================================================================
// PROGRAM
// =============================================================================

// Run opens the preview on the alternate screen and blocks until the user
// quits or ctx is cancelled. It returns the last parsed message.
func Run(ctx context.Context, opts Options) (*model.Message, error) {
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return nil, err
	}
	if fm, ok := final.(Model); ok {
		return fm.Message(), nil
	}
	return nil, nil
}
