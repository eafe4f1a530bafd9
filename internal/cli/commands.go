// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// commands.go - Command dispatch and the message commands.

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/muesli/termenv"
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
// ENVIRONMENT
// =============================================================================

// Env carries the streams, configuration and logger a command runs with.
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Config *config.Config

	// ConfigPath is the file the configuration came from, if any.
	ConfigPath string

	Log *zap.Logger

	// TTY reports that stdout is an interactive terminal.
	TTY bool

	// Color enables styled CLI output (chroma, glamour, lipgloss).
	Color bool
}

// DefaultEnv returns an Env bound to the process streams and the global
// configuration.
func DefaultEnv() Env {
	return Env{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Config: config.Global(),
		Log:    zap.L(),
		TTY:    IsStdoutTTY(),
		Color:  ColorsEnabled(),
	}
}

func (e *Env) fill() {
	if e.Stdin == nil {
		e.Stdin = os.Stdin
	}
	if e.Stdout == nil {
		e.Stdout = os.Stdout
	}
	if e.Stderr == nil {
		e.Stderr = os.Stderr
	}
	if e.Config == nil {
		e.Config = config.Default()
	}
	if e.Log == nil {
		e.Log = zap.L()
	}
}

// =============================================================================
// DISPATCH
// =============================================================================

// Run executes cmd. Errors are returned for the caller to display once with
// DisplayError and to map to an exit code with GetExitCode.
func Run(ctx context.Context, cmd Command, args Args, env Env) error {
	env.fill()
	if args.NoColor {
		env.Color = false
		SetColors(false)
	}

	log := env.Log.With(zap.String("command", cmd.String()))
	ctx = logger.NewContext(ctx, log)
	log.Debug("running command", zap.Strings("args", args.Raw))

	switch cmd {
	case CmdHelp:
		PrintUsage(env.Stdout)
		return nil
	case CmdVersion:
		return runVersion(args, env)
	case CmdParse:
		return runParse(args, env)
	case CmdRender:
		return runRender(args, env)
	case CmdFormat:
		return runFormat(args, env)
	case CmdReplace:
		return runReplace(args, env)
	case CmdContains:
		return runContains(args, env)
	case CmdInspect:
		return runInspect(args, env)
	case CmdCatalog:
		return runCatalog(ctx, args, env)
	case CmdRepl:
		return runRepl(ctx, args, env)
	case CmdPreview:
		return runPreview(ctx, args, env)
	case CmdConfig:
		return runConfig(args, env)
	}
	return NewNotFoundError("command", args.Name)
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// parseOptions applies the global flags over the configured parse settings.
func parseOptions(cfg *config.Config, args Args) (parser.Options, error) {
	opts, err := cfg.Parse.Options()
	if err != nil {
		return parser.Options{}, err
	}
	if args.Mode != "" {
		mode, err := parser.ParseModeName(args.Mode)
		if err != nil {
			return parser.Options{}, err
		}
		opts.ColorMode = mode
	}
	if args.NoTags {
		opts.Tags = false
	}
	if args.JSONInput {
		opts.JSON = true
	}
	return opts, opts.Validate()
}

// exportOptions builds exporter options from the render settings.
func exportOptions(env Env, args Args, tags bool) (*export.Options, error) {
	opts, err := export.FromConfig(env.Config.Render, tags)
	if err != nil {
		return nil, err
	}
	if args.NoColor {
		opts.Profile = termenv.Ascii
	}
	return opts, nil
}

// readRaw resolves a raw message argument; "-" reads stdin.
func readRaw(env Env, arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	data, err := io.ReadAll(env.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// parseArg reads positional argument i as a raw message and parses it.
func parseArg(p *ArgParser, i int, args Args, env Env, usage string) (string, *model.Message, error) {
	if p.PositionalCount() <= i {
		return "", nil, ErrMissingArgument("raw", usage)
	}
	raw, err := readRaw(env, p.Positional(i))
	if err != nil {
		return "", nil, err
	}
	opts, err := parseOptions(env.Config, args)
	if err != nil {
		return "", nil, err
	}
	msg, err := parser.Parse(raw, opts)
	if err != nil {
		return "", nil, err
	}
	return raw, msg, nil
}

// writeJSON writes a successful response.
func writeJSON(env Env, command string, data interface{}) error {
	return NewJSONResponse(command, data).Write(env.Stdout, env.TTY && env.Color)
}

// writeLine writes s followed by a newline unless it already ends in one.
func writeLine(w io.Writer, s string) {
	if strings.HasSuffix(s, "\n") {
		fmt.Fprint(w, s)
		return
	}
	fmt.Fprintln(w, s)
}

// =============================================================================
// VERSION
// =============================================================================

func runVersion(args Args, env Env) error {
	if args.JSON {
		return writeJSON(env, "version", VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		})
	}
	PrintVersion(env.Stdout)
	return nil
}

// =============================================================================
// PARSE
// =============================================================================

func runParse(args Args, env Env) error {
	p := NewArgParser(args.Raw)
	raw, msg, err := parseArg(p, 0, args, env, "richchat parse '&aHello||ttp:Greeting'")
	if err != nil {
		return err
	}

	data := NewParseData(raw, msg)
	if args.JSON {
		return writeJSON(env, "parse", data)
	}

	w := env.Stdout
	fmt.Fprintln(w, RenderField("Plain", fmt.Sprintf("%q", data.Plain)))
	fmt.Fprintln(w, RenderField("Sections", fmt.Sprint(len(data.Sections))))
	for _, s := range data.Sections {
		fmt.Fprintf(w, "%s %q\n", HighlightStyle.Render(fmt.Sprintf("[%d]", s.Index)), s.Text)
		for _, c := range s.Components {
			fmt.Fprintf(w, "    %s %s\n", DimStyle.Render(fmt.Sprintf("%-10s %-14s", c.Color, c.Styles)), fmt.Sprintf("%q", c.Text))
		}
		if s.Hover != nil {
			fmt.Fprintln(w, "    "+RenderField("hover", *s.Hover))
		}
		if s.Click != nil {
			fmt.Fprintln(w, "    "+RenderField(s.Click.Action, s.Click.Value))
		}
		if s.Insertion != nil {
			fmt.Fprintln(w, "    "+RenderField("insertion", *s.Insertion))
		}
	}
	return nil
}

// =============================================================================
// RENDER
// =============================================================================

func runRender(args Args, env Env) error {
	p := NewArgParser(args.Raw, "annotate", "downsample", "open")
	_, msg, err := parseArg(p, 0, args, env, "richchat render --format html '&aHello'")
	if err != nil {
		return err
	}
	popts, _ := parseOptions(env.Config, args)

	opts, err := exportOptions(env, args, popts.Tags)
	if err != nil {
		return err
	}
	if p.BoolFlag("annotate") {
		opts.Annotate = true
	}
	if p.BoolFlag("downsample") {
		opts.Downsample = true
	}
	opts.OpenAfterExport = p.BoolFlag("open")
	opts.Name = p.Flag("name")

	format := p.FlagOrDefault("format", env.Config.Render.Format)
	exporter, err := export.ForFormat(format, opts)
	if err != nil {
		return err
	}

	width := env.Config.Render.Width
	if p.HasFlag("width") {
		if width, err = ParseIntWithValidation(p.Flag("width"), "width"); err != nil {
			return err
		}
	}

	if dir := p.Flag("out"); dir != "" {
		opts.OutputDir = dir
		path, err := export.ExportToFile(msg, exporter, opts)
		if err != nil {
			return NewCommandError("render", "export", "could not write file", err)
		}
		env.Log.Info("exported message", zap.String("format", format), zap.String("path", path))
		if args.JSON {
			return writeJSON(env, "render", RenderData{Format: format, Path: path})
		}
		fmt.Fprintf(env.Stdout, "%s %s\n", SuccessStyle.Render("Wrote"), path)
		return nil
	}

	out, err := exporter.Export(msg)
	if err != nil {
		return err
	}
	text := string(out)
	if width > 0 && centerable(format) {
		text = center(msg, text, width)
	}
	if args.JSON {
		return writeJSON(env, "render", RenderData{Format: format, Output: text})
	}
	writeLine(env.Stdout, text)
	return nil
}

// centerable reports whether output of format is laid out in columns.
func centerable(format string) bool {
	switch strings.ToLower(format) {
	case "ansi", "terminal", "plain", "text", "txt":
		return true
	}
	return false
}

// center indents every line of rendered by the padding that centers msg in a
// box width columns wide.
func center(msg *model.Message, rendered string, width int) string {
	pad := export.Center(msg, width)
	if pad == "" {
		return rendered
	}
	lines := strings.Split(rendered, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n")
}

// =============================================================================
// FORMAT
// =============================================================================

func runFormat(args Args, env Env) error {
	p := NewArgParser(args.Raw, "legacy", "downsample")
	_, msg, err := parseArg(p, 0, args, env, "richchat format '&a&lHi'")
	if err != nil {
		return err
	}

	f := parser.Formatter{Writer: lexer.Writer{
		Downsample: p.BoolFlag("downsample") || env.Config.Render.Downsample,
	}}
	kind := "tags"
	var out string
	if p.BoolFlag("legacy") {
		kind = "legacy"
		out = f.FormatLegacy(msg)
	} else {
		out = f.Format(msg)
	}

	if args.JSON {
		return writeJSON(env, "format", RenderData{Format: kind, Output: out})
	}
	fmt.Fprintln(env.Stdout, out)
	return nil
}

// =============================================================================
// REPLACE / CONTAINS
// =============================================================================

func runReplace(args Args, env Env) error {
	const usage = "richchat replace '&cHi {name}' '{name}' Steve --goals all"
	p := NewArgParser(args.Raw, "diff")
	if p.PositionalCount() < 3 {
		return ErrMissingArgument("replacement", usage)
	}
	_, msg, err := parseArg(p, 0, args, env, usage)
	if err != nil {
		return err
	}
	goals, err := manipulate.ParseGoals(p.FlagOrDefault("goals", "plain"))
	if err != nil {
		return err
	}

	m, err := manipulate.ForMessage(msg, goals)
	if err != nil {
		return err
	}
	out, err := m.ReplaceText(p.Positional(1), p.Positional(2))
	if err != nil {
		return err
	}

	formatted := parser.Format(out)
	showDiff := p.BoolFlag("diff")
	if args.JSON {
		data := ReplaceData{
			Goals:   goals.String(),
			Changed: m.Changed(out),
			Result:  formatted,
		}
		if showDiff {
			data.Diff = NewDiffData(diff.Messages(msg, out))
		}
		return writeJSON(env, "replace", data)
	}
	if showDiff {
		fmt.Fprint(env.Stdout, RenderDiff(diff.Messages(msg, out)))
		return nil
	}
	fmt.Fprintln(env.Stdout, formatted)
	if !m.Changed(out) {
		fmt.Fprintln(env.Stderr, DimStyle.Render("no match"))
	}
	return nil
}

func runContains(args Args, env Env) error {
	const usage = "richchat contains '&aHello||ttp:world' world --goals hover"
	p := NewArgParser(args.Raw, "fold")
	if p.PositionalCount() < 2 {
		return ErrMissingArgument("target", usage)
	}
	_, msg, err := parseArg(p, 0, args, env, usage)
	if err != nil {
		return err
	}
	goals, err := manipulate.ParseGoals(p.FlagOrDefault("goals", "all"))
	if err != nil {
		return err
	}

	m, err := manipulate.ForMessage(msg, goals)
	if err != nil {
		return err
	}
	target := p.Positional(1)
	fold := p.BoolFlag("fold")
	var found bool
	if fold {
		found, err = m.ContainsFold(target)
	} else {
		found, err = m.Contains(target)
	}
	if err != nil {
		return err
	}

	if args.JSON {
		return writeJSON(env, "contains", ContainsData{
			Goals:    goals.String(),
			Target:   target,
			Fold:     fold,
			Contains: found,
		})
	}
	fmt.Fprintln(env.Stdout, RenderStatus(found))
	return nil
}
