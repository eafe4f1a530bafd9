// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jeranaias/richchat/internal/catalog"
	"github.com/jeranaias/richchat/internal/config"
	"github.com/jeranaias/richchat/internal/manipulate"
	"github.com/jeranaias/richchat/internal/parser"
	"github.com/jeranaias/richchat/internal/richtext"
	"github.com/jeranaias/richchat/internal/storage"
)

func TestMain(m *testing.M) {
	SetColors(false)
	os.Exit(m.Run())
}

type testEnv struct {
	Env
	out *bytes.Buffer
	err *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Render.Format = "plain"
	cfg.Render.ColorProfile = "ascii"
	cfg.Catalog.Dir = filepath.Join(dir, "catalog")
	cfg.Catalog.DatabasePath = filepath.Join(dir, "templates.db")

	te := &testEnv{out: &bytes.Buffer{}, err: &bytes.Buffer{}}
	te.Env = Env{
		Stdin:      strings.NewReader(""),
		Stdout:     te.out,
		Stderr:     te.err,
		Config:     cfg,
		ConfigPath: filepath.Join(dir, "config.toml"),
		Log:        zap.NewNop(),
	}
	return te
}

func (te *testEnv) run(argv ...string) error {
	cmd, args := ParseArgs(argv)
	return Run(context.Background(), cmd, args, te.Env)
}

func decodeResponse(t *testing.T, data []byte, v interface{}) JSONResponse {
	t.Helper()
	resp := JSONResponse{Data: v}
	require.NoError(t, json.Unmarshal(data, &resp))
	return resp
}

// =============================================================================
// ARGUMENT PARSING
// =============================================================================

func TestParseArgs_Commands(t *testing.T) {
	tests := []struct {
		argv []string
		want Command
	}{
		{nil, CmdHelp},
		{[]string{"parse", "x"}, CmdParse},
		{[]string{"p", "x"}, CmdParse},
		{[]string{"r"}, CmdRender},
		{[]string{"fmt"}, CmdFormat},
		{[]string{"replace"}, CmdReplace},
		{[]string{"contains"}, CmdContains},
		{[]string{"i"}, CmdInspect},
		{[]string{"cat", "list"}, CmdCatalog},
		{[]string{"repl"}, CmdRepl},
		{[]string{"tui"}, CmdPreview},
		{[]string{"config"}, CmdConfig},
		{[]string{"--version"}, CmdVersion},
		{[]string{"-h"}, CmdHelp},
		{[]string{"rendr"}, CmdUnknown},
	}
	for _, tt := range tests {
		got, _ := ParseArgs(tt.argv)
		assert.Equal(t, tt.want, got, "%v", tt.argv)
	}
}

func TestParseArgs_GlobalFlags(t *testing.T) {
	cmd, args := ParseArgs([]string{"--json", "render", "--mode", "none", "&aHi", "--no-tags", "--config=/tmp/c.toml", "-v", "--format", "html"})
	assert.Equal(t, CmdRender, cmd)
	assert.True(t, args.JSON)
	assert.True(t, args.NoTags)
	assert.True(t, args.Verbose)
	assert.Equal(t, "none", args.Mode)
	assert.Equal(t, "/tmp/c.toml", args.ConfigPath)
	assert.Equal(t, "render", args.Name)
	assert.Equal(t, []string{"&aHi", "--format", "html"}, args.Raw)
}

func TestParseArgs_Terminator(t *testing.T) {
	cmd, args := ParseArgs([]string{"parse", "--", "--json"})
	assert.Equal(t, CmdParse, cmd)
	assert.False(t, args.JSON)
	assert.Equal(t, []string{"--", "--json"}, args.Raw)

	p := NewArgParser(args.Raw)
	assert.Equal(t, 1, p.PositionalCount())
	assert.Equal(t, "--json", p.Positional(0))
}

func TestArgParser(t *testing.T) {
	p := NewArgParser([]string{"&aHi", "--format", "html", "--annotate", "more", "--width=40", "--open=false", "-"}, "annotate")
	assert.Equal(t, "&aHi", p.Subcommand())
	assert.Equal(t, "html", p.Flag("format"))
	assert.True(t, p.BoolFlag("annotate"))
	assert.False(t, p.BoolFlag("open"))
	assert.Equal(t, "40", p.Flag("width"))
	assert.Equal(t, []string{"&aHi", "more", "-"}, p.PositionalFrom(0))
	assert.Equal(t, "", p.Positional(9))
	assert.Equal(t, "ansi", p.FlagOrDefault("missing", "ansi"))
	assert.True(t, p.HasFlag("annotate"))
	assert.True(t, p.HasFlag("width"))
	assert.False(t, p.HasFlag("missing"))

	n, err := p.FlagInt("width")
	require.NoError(t, err)
	assert.Equal(t, 40, n)
}

func TestArgParser_UnknownFlagTakesValue(t *testing.T) {
	p := NewArgParser([]string{"--goals", "all", "text"})
	assert.Equal(t, "all", p.Flag("goals"))
	assert.Equal(t, []string{"text"}, p.PositionalFrom(0))
}

func TestParsePlaceholders(t *testing.T) {
	got, err := ParsePlaceholders([]string{"player=Steve", "{server}=Hub", "empty="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"player": "Steve", "server": "Hub", "empty": ""}, got)

	_, err = ParsePlaceholders([]string{"novalue"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "placeholder", ve.Field)

	_, err = ParsePlaceholders([]string{"{}=x"})
	require.Error(t, err)
}

func TestParseIntWithValidation(t *testing.T) {
	n, err := ParseIntWithValidation("12", "width")
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	for _, bad := range []string{"", "abc", "0", "-3"} {
		_, err := ParseIntWithValidation(bad, "width")
		assert.Error(t, err, bad)
	}
}

// =============================================================================
// ERRORS AND SUGGESTIONS
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitSuccess},
		{errors.New("boom"), ExitGeneralError},
		{NewValidationError("x", "y", "bad"), ExitUsageError},
		{fmt.Errorf("goals: %w", manipulate.ErrInvalidArgument), ExitUsageError},
		{fmt.Errorf("%w: bad file", ErrConfig), ExitConfigError},
		{fmt.Errorf("mode: %w", parser.ErrUnsupportedMode), ExitConfigError},
		{fmt.Errorf("decode: %w", richtext.ErrInvalidJSON), ExitInputError},
		{fmt.Errorf("load: %w", catalog.ErrInvalidTemplate), ExitInputError},
		{NewNotFoundError("command", "x"), ExitNotFoundError},
		{fmt.Errorf("key: %w", catalog.ErrNotFound), ExitNotFoundError},
		{fmt.Errorf("key: %w", storage.ErrNotFound), ExitNotFoundError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GetExitCode(tt.err), "%v", tt.err)
	}
}

func TestCommandError_Unwrap(t *testing.T) {
	err := NewCommandError("render", "export", "could not write file", os.ErrPermission)
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Contains(t, err.Error(), "render")
}

func TestDisplayError_SuggestsCommand(t *testing.T) {
	var buf bytes.Buffer
	DisplayError(&buf, NewNotFoundError("command", "rendr"), false)
	assert.Contains(t, buf.String(), "[ERROR]")
	assert.Contains(t, buf.String(), `Did you mean "render"?`)
}

func TestDisplayErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	DisplayError(&buf, NewValidationErrorWithExample("format", "pdf", "unsupported format", "html"), true)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "validation_error", out["error_type"])
	assert.Equal(t, "pdf", out["value"])
	assert.Equal(t, float64(ExitUsageError), out["exit_code"])
}

func TestSuggest(t *testing.T) {
	assert.Equal(t, "render", SuggestCommand("rendr"))
	assert.Equal(t, "contains", SuggestCommand("contians"))
	assert.Equal(t, "", SuggestCommand("x"))
	assert.Equal(t, "", SuggestCommand("completelydifferent"))
	assert.Equal(t, "greet.welcome", SuggestFrom("greet.welcom", []string{"greet.bye", "greet.welcome"}))
}

// =============================================================================
// JSON OUTPUT
// =============================================================================

func TestJSONResponse_Write(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONResponse("version", VersionData{Version: "1.0.0"}).Write(&buf, false))
	assert.True(t, strings.HasSuffix(buf.String(), "}\n"))

	var data VersionData
	resp := decodeResponse(t, buf.Bytes(), &data)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
	assert.Equal(t, "version", resp.Command)
	assert.Equal(t, "1.0.0", data.Version)

	errResp := NewJSONErrorResponse("parse", errors.New("bad"))
	assert.False(t, errResp.Success)
	assert.Contains(t, errResp.String(), `"error": "bad"`)
}

func TestNewParseData(t *testing.T) {
	msg := parser.MustParse("&aHello||ttp:Greeting|| &bworld||cmd:/hi||ins:w", parser.DefaultOptions())
	data := NewParseData("raw", msg)

	assert.Equal(t, "Hello world", data.Plain)
	assert.Equal(t, 11, data.Width)
	require.Len(t, data.Sections, 2)

	first := data.Sections[0]
	assert.Equal(t, "Hello", first.Text)
	require.NotNil(t, first.Hover)
	assert.Equal(t, "Greeting", *first.Hover)
	assert.Nil(t, first.Click)
	require.Len(t, first.Components, 1)
	assert.Equal(t, "green", first.Components[0].Color)

	second := data.Sections[1]
	require.NotNil(t, second.Click)
	assert.Equal(t, ClickData{Action: "run_command", Value: "/hi"}, *second.Click)
	require.NotNil(t, second.Insertion)
	assert.Equal(t, "w", *second.Insertion)
}

// =============================================================================
// MESSAGE COMMANDS
// =============================================================================

func TestRun_ParseJSON(t *testing.T) {
	te := newTestEnv(t)
	require.NoError(t, te.run("--json", "parse", "&aHello||ttp:Greeting"))

	var data ParseData
	resp := decodeResponse(t, te.out.Bytes(), &data)
	assert.True(t, resp.Success)
	assert.Equal(t, "parse", resp.Command)
	assert.Equal(t, "Hello", data.Plain)
	require.Len(t, data.Sections, 1)
	assert.Equal(t, "Greeting", *data.Sections[0].Hover)
}

func TestRun_ParseText(t *testing.T) {
	te := newTestEnv(t)
	require.NoError(t, te.run("parse", "&aHi||url:https://example.com"))
	out := te.out.String()
	assert.Contains(t, out, `"Hi"`)
	assert.Contains(t, out, "open_url")
	assert.Contains(t, out, "https://example.com")
}

func TestRun_ParseStdin(t *testing.T) {
	te := newTestEnv(t)
	te.Stdin = strings.NewReader("&cfrom stdin\n")
	require.NoError(t, te.run("--json", "parse", "-"))

	var data ParseData
	decodeResponse(t, te.out.Bytes(), &data)
	assert.Equal(t, "&cfrom stdin", data.Raw)
	assert.Equal(t, "from stdin", data.Plain)
}

func TestRun_ParseMissingArgument(t *testing.T) {
	te := newTestEnv(t)
	err := te.run("parse")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestRun_ParseBadMode(t *testing.T) {
	te := newTestEnv(t)
	err := te.run("--mode", "sepia", "parse", "x")
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, GetExitCode(err))
}

func TestRun_RenderPlainCentered(t *testing.T) {
	te := newTestEnv(t)
	require.NoError(t, te.run("render", "--format", "plain", "--width", "10", "&ahi"))
	assert.Equal(t, "    hi\n", te.out.String())
}

func TestRun_RenderHTMLToFile(t *testing.T) {
	te := newTestEnv(t)
	dir := t.TempDir()
	require.NoError(t, te.run("render", "--format", "html", "--out", dir, "--name", "docs", "Docs||url:https://example.com"))

	path := filepath.Join(dir, "docs.html")
	assert.Contains(t, te.out.String(), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<a href="https://example.com">Docs</a>`)
}

func TestRun_RenderJSON(t *testing.T) {
	te := newTestEnv(t)
	require.NoError(t, te.run("--json", "render", "--format", "markdown", "&lbold"))

	var data RenderData
	decodeResponse(t, te.out.Bytes(), &data)
	assert.Equal(t, "markdown", data.Format)
	assert.Contains(t, data.Output, "**bold**\n")
}

func TestRun_RenderUnsupportedFormat(t *testing.T) {
	te := newTestEnv(t)
	err := te.run("render", "--format", "pdf", "x")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestRun_Format(t *testing.T) {
	te := newTestEnv(t)
	require.NoError(t, te.run("format", "--legacy", "&aone||cmd:/x||&ctwo"))
	assert.Equal(t, "&aone&ctwo\n", te.out.String())

	te.out.Reset()
	require.NoError(t, te.run("format", "&aClick||cmd:/help"))
	assert.Equal(t, "&aClick||cmd:/help\n", te.out.String())
}

func TestRun_Replace(t *testing.T) {
	te := newTestEnv(t)
	require.NoError(t, te.run("replace", "&cHi {name}", "{name}", "Steve"))
	assert.Equal(t, "&cHi Steve\n", te.out.String())
	assert.Empty(t, te.err.String())

	te.out.Reset()
	require.NoError(t, te.run("replace", "&cHi", "absent", "x"))
	assert.Equal(t, "&cHi\n", te.out.String())
	assert.Contains(t, te.err.String(), "no match")
}

func TestRun_ReplaceJSONGoals(t *testing.T) {
	te := newTestEnv(t)
	require.NoError(t, te.run("--json", "replace", "Hi||ttp:Hi there", "Hi", "Yo", "--goals", "hover"))

	var data ReplaceData
	decodeResponse(t, te.out.Bytes(), &data)
	assert.Equal(t, "hover", data.Goals)
	assert.True(t, data.Changed)
	assert.Equal(t, "Hi||ttp:Yo there", data.Result)
}

func TestRun_ReplaceDiff(t *testing.T) {
	te := newTestEnv(t)
	require.NoError(t, te.run("replace", "--diff", "&aHi||&cold", "old", "new"))
	assert.Equal(t, "  &aHi\n- &cold\n+ &cnew\n+1 -1 (1 unchanged)\n", te.out.String())

	te.out.Reset()
	require.NoError(t, te.run("--json", "replace", "--diff", "&aHi||&cold", "old", "new"))
	var data ReplaceData
	decodeResponse(t, te.out.Bytes(), &data)
	require.NotNil(t, data.Diff)
	assert.Equal(t, 1, data.Diff.Added)
	assert.Equal(t, 1, data.Diff.Removed)
	require.Len(t, data.Diff.Rows, 3)
	assert.Equal(t, DiffRowData{Type: "removed", Raw: "&cold"}, data.Diff.Rows[1])
}

func TestRun_ReplaceBadGoals(t *testing.T) {
	te := newTestEnv(t)
	err := te.run("replace", "Hi", "Hi", "Yo", "--goals", "colour")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestRun_Contains(t *testing.T) {
	te := newTestEnv(t)
	require.NoError(t, te.run("contains", "&aHELLO", "hello"))
	assert.Equal(t, "[NO]\n", te.out.String())

	te.out.Reset()
	require.NoError(t, te.run("contains", "--fold", "&aHELLO", "hello"))
	assert.Equal(t, "[YES]\n", te.out.String())

	te.out.Reset()
	require.NoError(t, te.run("--json", "contains", "Hi||ttp:secret", "secret", "--goals", "plain"))
	var data ContainsData
	decodeResponse(t, te.out.Bytes(), &data)
	assert.False(t, data.Contains)
	assert.Equal(t, "plain", data.Goals)
}

func TestRun_Inspect(t *testing.T) {
	te := newTestEnv(t)
	require.NoError(t, te.run("inspect", "&aHi||ttp:there"))
	out := te.out.String()
	assert.Contains(t, out, "# Message")
	assert.Contains(t, out, "| 0 | Hi | green |")
	assert.Contains(t, out, "- **Hover:** there")
}

func TestInspectReport_Empty(t *testing.T) {
	msg := parser.MustParse("", parser.DefaultOptions())
	report := InspectReport("", msg)
	assert.Contains(t, report, "_Empty message._")
	assert.NotContains(t, report, "## Components")
}

func TestInspectReport_NonEmpty(t *testing.T) {
	msg := parser.MustParse("&aHi", parser.DefaultOptions())
	report := InspectReport("&aHi", msg)
	assert.Contains(t, report, "## Components")
	assert.NotContains(t, report, "_Empty message._")
}

func TestRun_Version(t *testing.T) {
	te := newTestEnv(t)
	require.NoError(t, te.run("--json", "version"))

	var data VersionData
	decodeResponse(t, te.out.Bytes(), &data)
	assert.Equal(t, Version, data.Version)
	assert.NotEmpty(t, data.GoVersion)
}

func TestRun_Help(t *testing.T) {
	te := newTestEnv(t)
	require.NoError(t, te.run())
	assert.Contains(t, te.out.String(), "richchat")
}

func TestRun_UnknownCommand(t *testing.T) {
	te := newTestEnv(t)
	err := te.run("rendr", "x")
	require.Error(t, err)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "rendr", nf.ID)
	assert.Equal(t, ExitNotFoundError, GetExitCode(err))
}

// =============================================================================
// CATALOG
// =============================================================================

const testCatalog = `
[greet]
welcome = "&aWelcome, {player}!||ttp:&7Joined {server}"
bye = "&cBye"
`

func writeCatalog(t *testing.T, te *testEnv) {
	t.Helper()
	dir := te.Config.Catalog.Dir
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "greetings.toml"), []byte(testCatalog), 0644))
}

func TestRun_CatalogList(t *testing.T) {
	te := newTestEnv(t)
	writeCatalog(t, te)

	require.NoError(t, te.run("catalog"))
	assert.Contains(t, te.out.String(), "greet.welcome")
	assert.Contains(t, te.out.String(), "greet.bye")

	te.out.Reset()
	require.NoError(t, te.run("--json", "catalog", "list"))
	var data []TemplateData
	decodeResponse(t, te.out.Bytes(), &data)
	require.Len(t, data, 2)
	for _, d := range data {
		assert.Equal(t, "greetings.toml", filepath.Base(d.Source))
		assert.NotEmpty(t, d.Revision)
	}
}

func TestRun_CatalogListWithoutStore(t *testing.T) {
	te := newTestEnv(t)
	te.Config.Catalog.DatabasePath = ""
	writeCatalog(t, te)

	require.NoError(t, te.run("catalog", "ls"))
	assert.Contains(t, te.out.String(), "greet.bye")
}

func TestRun_CatalogEmptyDir(t *testing.T) {
	te := newTestEnv(t)
	te.Config.Catalog.DatabasePath = ""

	require.NoError(t, te.run("catalog", "list"))
	assert.Contains(t, te.out.String(), "No templates")
}

func TestRun_CatalogGetAndRender(t *testing.T) {
	te := newTestEnv(t)
	writeCatalog(t, te)

	require.NoError(t, te.run("catalog", "get", "greet.bye"))
	assert.Equal(t, "Bye\n", te.out.String())

	te.out.Reset()
	require.NoError(t, te.run("catalog", "render", "greet.welcome", "player=Steve", "server=Hub", "--format", "legacy"))
	assert.Equal(t, "&aWelcome, Steve!||ttp:&7Joined Hub\n", te.out.String())

	te.out.Reset()
	require.NoError(t, te.run("--json", "catalog", "render", "greet.welcome", "player=Alex"))
	var data TemplateData
	decodeResponse(t, te.out.Bytes(), &data)
	assert.Equal(t, "greet.welcome", data.Key)
	assert.Equal(t, "Welcome, Alex!", data.Plain)
	assert.Equal(t, "&aWelcome, {player}!||ttp:&7Joined {server}", data.Raw)
}

func TestRun_CatalogGetMissing(t *testing.T) {
	te := newTestEnv(t)
	writeCatalog(t, te)

	err := te.run("catalog", "get", "greet.welcom")
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.Contains(t, err.Error(), `"greet.welcome"`)
	assert.Equal(t, ExitNotFoundError, GetExitCode(err))
}

func TestRun_CatalogSearch(t *testing.T) {
	te := newTestEnv(t)
	writeCatalog(t, te)

	require.NoError(t, te.run("catalog", "search", "Welcome"))
	assert.Equal(t, "greet.welcome\n", te.out.String())

	te.out.Reset()
	require.NoError(t, te.run("catalog", "search", "nothing-like-this"))
	assert.Contains(t, te.out.String(), "No matches")
}

func TestRun_CatalogBadSubcommand(t *testing.T) {
	te := newTestEnv(t)
	err := te.run("catalog", "explode")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

// =============================================================================
// CONFIG
// =============================================================================

func TestRun_ConfigGetAndKeys(t *testing.T) {
	te := newTestEnv(t)
	require.NoError(t, te.run("config", "get", "render.format"))
	assert.Equal(t, "plain\n", te.out.String())

	te.out.Reset()
	require.NoError(t, te.run("config", "keys"))
	assert.Contains(t, te.out.String(), "catalog.debounce_ms\n")

	err := te.run("config", "get", "render.nope")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestRun_ConfigSet(t *testing.T) {
	defer config.ResetGlobalForTesting()
	te := newTestEnv(t)

	require.NoError(t, te.run("config", "set", "render.format", "html"))
	assert.Contains(t, te.out.String(), "render.format = html")

	saved, err := config.LoadFromPath(te.ConfigPath)
	require.NoError(t, err)
	assert.Equal(t, "html", saved.Render.Format)
	assert.Equal(t, "plain", te.Config.Render.Format, "set must not mutate the running config")
}

func TestRun_ConfigSetInvalid(t *testing.T) {
	te := newTestEnv(t)
	err := te.run("config", "set", "render.format", "pdf")
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, GetExitCode(err))
	assert.NoFileExists(t, te.ConfigPath)
}

func TestRun_ConfigInit(t *testing.T) {
	te := newTestEnv(t)
	require.NoError(t, te.run("config", "init"))
	assert.FileExists(t, te.ConfigPath)

	err := te.run("config", "init")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, GetExitCode(err))

	require.NoError(t, te.run("config", "init", "--force"))
}

func TestRun_ConfigPath(t *testing.T) {
	te := newTestEnv(t)
	require.NoError(t, te.run("config", "path"))
	assert.Equal(t, te.ConfigPath+"\n", te.out.String())
}

// =============================================================================
// REPL
// =============================================================================

func newTestRepl(t *testing.T) (*Repl, *testEnv) {
	t.Helper()
	te := newTestEnv(t)
	r, err := NewRepl(context.Background(), Args{}, te.Env)
	require.NoError(t, err)
	return r, te
}

func TestRepl_RendersMessages(t *testing.T) {
	r, te := newTestRepl(t)

	ok, err := r.Eval("&aHello")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Hello\n", te.out.String())
	assert.Equal(t, 1, r.Transcript().Len())

	ok, err = r.Eval("   ")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, r.Transcript().Len())
}

func TestRepl_ReplaceAndRaw(t *testing.T) {
	r, te := newTestRepl(t)
	_, err := r.Eval("&aHello")
	require.NoError(t, err)

	te.out.Reset()
	_, err = r.Eval("/replace Hello Bye")
	require.NoError(t, err)
	assert.Equal(t, "Bye\n", te.out.String())
	assert.Equal(t, 2, r.Transcript().Len())

	te.out.Reset()
	_, err = r.Eval("/raw")
	require.NoError(t, err)
	assert.Equal(t, "&aBye\n", te.out.String())

	te.out.Reset()
	_, err = r.Eval("/all")
	require.NoError(t, err)
	assert.Equal(t, "HelloBye\n", te.out.String())

	te.out.Reset()
	_, err = r.Eval("/replace absent x")
	require.NoError(t, err)
	assert.Contains(t, te.out.String(), "no match")
	assert.Equal(t, 2, r.Transcript().Len())
}

func TestRepl_Diff(t *testing.T) {
	r, te := newTestRepl(t)
	_, err := r.Eval("/diff")
	require.Error(t, err)

	_, _ = r.Eval("&aHi||ttp:one")
	_, _ = r.Eval("&aHi||ttp:two")
	te.out.Reset()
	_, err = r.Eval("/diff")
	require.NoError(t, err)
	assert.Equal(t, "- &aHi||ttp:one\n+ &aHi||ttp:two\n+1 -1 (0 unchanged)\n", te.out.String())
}

func TestRepl_Toggles(t *testing.T) {
	r, te := newTestRepl(t)

	_, err := r.Eval("/tags")
	require.NoError(t, err)
	assert.Contains(t, te.out.String(), "tags off")

	_, err = r.Eval("/mode none")
	require.NoError(t, err)
	te.out.Reset()
	_, err = r.Eval("&aliteral")
	require.NoError(t, err)
	assert.Equal(t, "&aliteral\n", te.out.String())

	_, err = r.Eval("/format html")
	require.NoError(t, err)
	_, err = r.Eval("/format pdf")
	assert.Error(t, err)

	_, err = r.Eval("/mode")
	assert.Error(t, err)
}

func TestRepl_HistoryAndClear(t *testing.T) {
	r, te := newTestRepl(t)
	_, _ = r.Eval("one")
	_, _ = r.Eval("two")

	te.out.Reset()
	_, err := r.Eval("/history")
	require.NoError(t, err)
	assert.Contains(t, te.out.String(), "1 one")
	assert.Contains(t, te.out.String(), "2 two")

	_, err = r.Eval("/clear")
	require.NoError(t, err)
	assert.Equal(t, 0, r.Transcript().Len())

	_, err = r.Eval("/raw")
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)

	_, err = r.Eval("/all")
	assert.Error(t, err)
}

func TestRepl_Inspect(t *testing.T) {
	r, te := newTestRepl(t)
	_, _ = r.Eval("&aHi||ttp:there")

	te.out.Reset()
	_, err := r.Eval("/inspect")
	require.NoError(t, err)
	assert.Contains(t, te.out.String(), "- **Hover:** there")
}

func TestRepl_UnknownAndQuit(t *testing.T) {
	r, _ := newTestRepl(t)

	ok, err := r.Eval("/frmat html")
	assert.True(t, ok)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/format")

	ok, err = r.Eval("/quit")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepl_ParseError(t *testing.T) {
	r, _ := newTestRepl(t)
	_, err := r.Eval("/json")
	require.NoError(t, err)

	ok, err := r.Eval(`{"text":"x","clickEvent":{"action":"change_page","value":"2"}}`)
	assert.True(t, ok)
	require.ErrorIs(t, err, richtext.ErrUnsupportedAction)
	assert.Equal(t, 0, r.Transcript().Len())
}
