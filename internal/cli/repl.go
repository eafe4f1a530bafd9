// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl.go - Interactive parse and render loop.

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"go.uber.org/zap"

	"github.com/jeranaias/richchat/internal/config"
	"github.com/jeranaias/richchat/internal/diff"
	"github.com/jeranaias/richchat/internal/export"
	"github.com/jeranaias/richchat/internal/lexer"
	"github.com/jeranaias/richchat/internal/logger"
	"github.com/jeranaias/richchat/internal/manipulate"
	"github.com/jeranaias/richchat/internal/model"
	"github.com/jeranaias/richchat/internal/parser"
)

// =============================================================================
// LINE EDITOR
// =============================================================================

// LineEditor provides input history and line editing for the REPL.
type LineEditor struct {
	line        *liner.State
	historyFile string
}

// NewLineEditor creates a line editor whose history lives in the config
// directory. Slash commands complete with tab.
func NewLineEditor() *LineEditor {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetCompleter(func(input string) []string {
		if !strings.HasPrefix(input, "/") {
			return nil
		}
		var out []string
		for _, c := range replCommands {
			if strings.HasPrefix(c, input) {
				out = append(out, c)
			}
		}
		return out
	})

	dir, err := config.ConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	e := &LineEditor{line: line, historyFile: filepath.Join(dir, "repl_history")}
	e.LoadHistory()
	return e
}

// LoadHistory loads command history from file.
func (e *LineEditor) LoadHistory() {
	if f, err := os.Open(e.historyFile); err == nil {
		_, _ = e.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt.
func (e *LineEditor) ReadInput(prompt string) (string, error) {
	input, err := e.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		e.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists command history to file with owner-only permissions.
func (e *LineEditor) SaveHistory() {
	if err := os.MkdirAll(filepath.Dir(e.historyFile), 0700); err != nil {
		return
	}
	f, err := os.OpenFile(e.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = e.line.WriteHistory(f)
}

// Close saves history and restores the terminal.
func (e *LineEditor) Close() {
	e.SaveHistory()
	e.line.Close()
}

// =============================================================================
// REPL SESSION
// =============================================================================

var replCommands = []string{
	"/help", "/quit", "/exit", "/tags", "/json", "/mode", "/format",
	"/history", "/all", "/clear", "/inspect", "/raw", "/replace", "/annotate",
	"/diff",
}

const replHelp = `Type a raw message to render it. Commands:
  /tags               Toggle the tag grammar
  /json               Toggle JSON component input
  /mode legacy|none   Set the color mode
  /format F           Output format (ansi, legacy, json, html, markdown, plain)
  /annotate           Toggle the hover and click footer
  /inspect            Describe the last message
  /raw                Canonical raw form of the last message
  /replace T R [G]    Replace T with R in the last message (goals G, default plain)
  /diff               Compare the last two messages section by section
  /history            List messages entered so far
  /all                Render every message as one
  /clear              Forget the history
  /quit               Leave`

// Repl evaluates REPL input. It holds the parse options and the transcript
// of messages entered so far.
type Repl struct {
	out        io.Writer
	errOut     io.Writer
	log        *zap.Logger
	parse      parser.Options
	export     *export.Options
	format     string
	transcript *model.Transcript
}

// NewRepl creates a REPL over env's configuration.
func NewRepl(ctx context.Context, args Args, env Env) (*Repl, error) {
	env.fill()
	popts, err := parseOptions(env.Config, args)
	if err != nil {
		return nil, err
	}
	eopts, err := exportOptions(env, args, popts.Tags)
	if err != nil {
		return nil, err
	}
	format := env.Config.Render.Format
	if _, err := export.ForFormat(format, eopts); err != nil {
		return nil, err
	}
	return &Repl{
		out:        env.Stdout,
		errOut:     env.Stderr,
		log:        logger.L(ctx),
		parse:      popts,
		export:     eopts,
		format:     format,
		transcript: model.NewTranscript(),
	}, nil
}

// Transcript returns the messages entered so far.
func (r *Repl) Transcript() *model.Transcript {
	return r.transcript
}

// Eval handles one line of input. It reports false when the session should
// end.
func (r *Repl) Eval(input string) (bool, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return true, nil
	}
	if strings.HasPrefix(input, "/") {
		return r.command(input)
	}

	msg, err := parser.Parse(input, r.parse)
	if err != nil {
		return true, err
	}
	r.transcript.Add(input, msg)
	return true, r.render(msg)
}

func (r *Repl) render(msg *model.Message) error {
	exporter, err := export.ForFormat(r.format, r.export)
	if err != nil {
		return err
	}
	out, err := exporter.Export(msg)
	if err != nil {
		return err
	}
	writeLine(r.out, string(out))
	return nil
}

func (r *Repl) last() (*model.Entry, error) {
	e := r.transcript.Last()
	if e == nil {
		return nil, NewNotFoundError("message", "last")
	}
	return e, nil
}

func (r *Repl) command(input string) (bool, error) {
	fields := strings.Fields(input)
	name, rest := fields[0], fields[1:]

	switch name {
	case "/quit", "/exit", "/q":
		return false, nil
	case "/help", "/?":
		fmt.Fprintln(r.out, replHelp)
	case "/tags":
		r.parse.Tags = !r.parse.Tags
		r.export.Tags = r.parse.Tags
		fmt.Fprintf(r.out, "tags %s\n", onOff(r.parse.Tags))
	case "/json":
		r.parse.JSON = !r.parse.JSON
		fmt.Fprintf(r.out, "json input %s\n", onOff(r.parse.JSON))
	case "/annotate":
		r.export.Annotate = !r.export.Annotate
		fmt.Fprintf(r.out, "annotations %s\n", onOff(r.export.Annotate))
	case "/mode":
		if len(rest) != 1 {
			return true, ErrMissingArgument("mode", "/mode legacy")
		}
		mode, err := parser.ParseModeName(rest[0])
		if err != nil {
			return true, err
		}
		r.parse.ColorMode = mode
		fmt.Fprintf(r.out, "mode %s\n", mode)
	case "/format":
		if len(rest) != 1 {
			return true, ErrMissingArgument("format", "/format html")
		}
		if _, err := export.ForFormat(rest[0], r.export); err != nil {
			return true, err
		}
		r.format = rest[0]
		fmt.Fprintf(r.out, "format %s\n", r.format)
	case "/history":
		for i, e := range r.transcript.Entries {
			fmt.Fprintf(r.out, "%s %s\n", DimStyle.Render(fmt.Sprintf("%3d", i+1)), e.Raw)
		}
	case "/all":
		if r.transcript.Len() == 0 {
			return true, NewNotFoundError("message", "last")
		}
		return true, r.render(r.transcript.Combined())
	case "/clear":
		r.transcript.Clear()
	case "/inspect":
		e, err := r.last()
		if err != nil {
			return true, err
		}
		writeLine(r.out, InspectReport(e.Raw, e.Message))
	case "/raw":
		e, err := r.last()
		if err != nil {
			return true, err
		}
		f := parser.Formatter{Writer: lexer.Writer{Downsample: r.export.Downsample}}
		fmt.Fprintln(r.out, f.Format(e.Message))
	case "/replace":
		return true, r.replace(rest)
	case "/diff":
		n := len(r.transcript.Entries)
		if n < 2 {
			return true, NewValidationError("diff", "", "needs two messages")
		}
		before, after := r.transcript.Entries[n-2], r.transcript.Entries[n-1]
		fmt.Fprint(r.out, RenderDiff(diff.Messages(before.Message, after.Message)))
	default:
		if hint := SuggestFrom(name, replCommands); hint != "" {
			return true, fmt.Errorf("unknown command %s (did you mean %s?)", name, hint)
		}
		return true, fmt.Errorf("unknown command %s (try /help)", name)
	}
	return true, nil
}

// replace rewrites the last message and records the result as a new entry.
func (r *Repl) replace(rest []string) error {
	if len(rest) < 2 {
		return ErrMissingArgument("target", "/replace {name} Steve all")
	}
	e, err := r.last()
	if err != nil {
		return err
	}
	goals := manipulate.PlainContent
	if len(rest) > 2 {
		if goals, err = manipulate.ParseGoals(rest[2]); err != nil {
			return err
		}
	}
	m, err := manipulate.ForMessage(e.Message, goals)
	if err != nil {
		return err
	}
	out, err := m.ReplaceText(rest[0], rest[1])
	if err != nil {
		return err
	}
	if !m.Changed(out) {
		fmt.Fprintln(r.out, DimStyle.Render("no match"))
		return nil
	}
	r.transcript.Add(parser.Format(out), out)
	return r.render(out)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// =============================================================================
// REPL LOOP
// =============================================================================

func runRepl(ctx context.Context, args Args, env Env) error {
	repl, err := NewRepl(ctx, args, env)
	if err != nil {
		return err
	}

	editor := NewLineEditor()
	defer editor.Close()

	fmt.Fprintln(env.Stdout, TitleStyle.Render("richchat repl")+" "+DimStyle.Render("(/help for commands, ctrl+d to quit)"))
	for {
		if ctx.Err() != nil {
			return nil
		}
		input, err := editor.ReadInput("> ")
		if err != nil {
			// Ctrl+C, Ctrl+D or a closed stdin all end the session.
			fmt.Fprintln(env.Stdout)
			repl.log.Debug("repl finished", zap.Int("messages", repl.transcript.Len()))
			return nil
		}

		keepGoing, err := repl.Eval(input)
		if err != nil {
			fmt.Fprintf(env.Stderr, "%s %v\n", ErrorStyle.Render("[ERROR]"), err)
		}
		if !keepGoing {
			return nil
		}
	}
}
