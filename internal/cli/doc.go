// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and execution for richchat.
//
// # Key Types
//
//   - Command: Enumeration of all available CLI commands
//   - Args: Parsed global flags plus the remaining command arguments
//   - Env: Streams, configuration and logger a command runs with
//   - ArgParser: Per-command flag and positional parsing
//   - JSONResponse: The --json output envelope
//   - Repl: The interactive evaluator behind the repl command
//
// # Usage
//
// Parse and execute commands:
//
//	cmd, args := cli.Parse()
//	if err := cli.Run(ctx, cmd, args, cli.DefaultEnv()); err != nil {
//	    cli.DisplayError(os.Stderr, err, args.JSON)
//	    os.Exit(cli.GetExitCode(err))
//	}
//
// # Commands Overview
//
//   - parse, inspect: describe the sections of a raw message
//   - render: write a message as ANSI, legacy, JSON, HTML, Markdown or plain text
//   - format: write the canonical raw form
//   - replace, contains: goal-scoped text manipulation
//   - catalog: message templates loaded from TOML files
//   - repl, preview: interactive editing
//   - config: show and change settings
//
// # Exit Codes
//
// GetExitCode maps errors to ExitUsageError, ExitConfigError,
// ExitInputError and ExitNotFoundError; anything else is ExitGeneralError.
package cli
