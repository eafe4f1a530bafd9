// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing for richchat.

package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdHelp Command = iota
	CmdParse
	CmdRender
	CmdFormat
	CmdReplace
	CmdContains
	CmdInspect
	CmdCatalog
	CmdRepl
	CmdPreview
	CmdConfig
	CmdVersion
	CmdUnknown
)

// String returns the command name as typed on the command line.
func (c Command) String() string {
	switch c {
	case CmdHelp:
		return "help"
	case CmdParse:
		return "parse"
	case CmdRender:
		return "render"
	case CmdFormat:
		return "format"
	case CmdReplace:
		return "replace"
	case CmdContains:
		return "contains"
	case CmdInspect:
		return "inspect"
	case CmdCatalog:
		return "catalog"
	case CmdRepl:
		return "repl"
	case CmdPreview:
		return "preview"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	}
	return "unknown"
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	ConfigPath string
	JSON       bool // Output in JSON format
	NoColor    bool
	Verbose    bool
	Mode       string // Color mode override: legacy or none
	NoTags     bool   // Disable the "||" tag grammar
	JSONInput  bool   // Accept JSON component input

	// Name is the command word as typed, kept for unknown commands.
	Name string

	// Raw args (remaining after the command word and global flags)
	Raw []string
}

const usageText = `richchat - rich chat message engine

Parses raw chat strings with color markers and inline tags, renders them in
several formats and rewrites their text.

Usage:
  richchat parse <raw>                 Show the sections of a parsed message
  richchat render <raw>                Render a message
    --format F                         ansi, legacy, json, html, markdown, plain
    --out DIR                          Write to a file in DIR instead of stdout
    --name NAME                        Output file name without extension
    --width N                          Center in a chat box N columns wide
    --annotate                         List hover, click and insertion under ANSI output
    --downsample                       Snap hex colors to palette codes (legacy)
  richchat format <raw>                Write the canonical raw form
    --legacy                           Colors only, no tags
    --downsample                       Snap hex colors to palette codes
  richchat replace <raw> <target> <replacement>
    --goals LIST                       plain,hover,click,insertion or all (default: plain)
    --diff                             Show changed sections instead of the result
  richchat contains <raw> <target>     Report whether any selected field contains target
    --goals LIST                       Fields to search (default: all)
    --fold                             Ignore case
  richchat inspect <raw>               Detailed section report
  richchat catalog list                List catalog templates
  richchat catalog get <key>           Render a template
  richchat catalog search <text>       Search template keys and text
  richchat catalog render <key> k=v... Render with placeholders
  richchat catalog watch               Reload templates as files change
  richchat repl                        Interactive parse and render loop
  richchat preview [raw]               Live preview TUI
  richchat config [show|get|set|path|keys|init]
  richchat version                     Show version information
  richchat help                        Show this help

Global Flags:
  --config PATH      Configuration file (default: ~/.richchat/config.toml)
  --json             Output in JSON format
  --no-color         Disable colored output
  -v, --verbose      Debug logging
  --mode MODE        Color mode: legacy or none
  --no-tags          Treat the whole input as content
  --json-input       Accept JSON component input
  --                 End of flags; everything after is an argument

Use "-" as <raw> to read the message from stdin.

Examples:
  richchat render '&aHello &l<#FF00FF>world||ttp:&7Greeting||cmd:/hello'
  richchat replace '&cHi {name}||ttp:for {name}' '{name}' Steve --goals all
  richchat render --format html --out ./out 'Docs||url:https://example.com'
`

// Parse parses os.Args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses CLI arguments. Global flags may appear anywhere before a
// "--" terminator.
func ParseArgs(argv []string) (Command, Args) {
	remaining, args := parseGlobalFlags(argv)
	if len(remaining) == 0 {
		return CmdHelp, args
	}

	args.Name = remaining[0]
	args.Raw = remaining[1:]

	switch remaining[0] {
	case "parse", "p":
		return CmdParse, args
	case "render", "r":
		return CmdRender, args
	case "format", "fmt":
		return CmdFormat, args
	case "replace":
		return CmdReplace, args
	case "contains":
		return CmdContains, args
	case "inspect", "i":
		return CmdInspect, args
	case "catalog", "cat":
		return CmdCatalog, args
	case "repl":
		return CmdRepl, args
	case "preview", "tui":
		return CmdPreview, args
	case "config":
		return CmdConfig, args
	case "version", "--version":
		return CmdVersion, args
	case "help", "-h", "--help":
		return CmdHelp, args
	}
	return CmdUnknown, args
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(argv []string) ([]string, Args) {
	var remaining []string
	var args Args

	for i := 0; i < len(argv); i++ {
		arg := argv[i]

		switch arg {
		case "--":
			// Keep the terminator so command parsers stop reading flags too.
			remaining = append(remaining, argv[i:]...)
			return remaining, args
		case "--json":
			args.JSON = true
		case "--no-color":
			args.NoColor = true
		case "-v", "--verbose":
			args.Verbose = true
		case "--no-tags":
			args.NoTags = true
		case "--json-input":
			args.JSONInput = true
		case "--config", "--mode":
			if i+1 < len(argv) {
				i++
				if arg == "--config" {
					args.ConfigPath = argv[i]
				} else {
					args.Mode = argv[i]
				}
			}
		default:
			switch {
			case strings.HasPrefix(arg, "--config="):
				args.ConfigPath = strings.TrimPrefix(arg, "--config=")
			case strings.HasPrefix(arg, "--mode="):
				args.Mode = strings.TrimPrefix(arg, "--mode=")
			default:
				remaining = append(remaining, arg)
			}
		}
	}

	return remaining, args
}

// PrintUsage writes the help text.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}

// PrintVersion writes version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "richchat %s\n", Version)
	fmt.Fprintf(w, "  Commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Built:  %s\n", BuildDate)
	fmt.Fprintf(w, "  Go:     %s\n", runtime.Version())
}
