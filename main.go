// richchat - Parse, inspect and render rich chat messages.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/jeranaias/richchat/internal/cli"
	"github.com/jeranaias/richchat/internal/config"
	"github.com/jeranaias/richchat/internal/logger"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(run())
}

func run() int {
	cmd, args := cli.Parse()

	cfg, err := loadConfig(args.ConfigPath)
	if err != nil {
		cli.DisplayError(os.Stderr, err, args.JSON)
		return cli.GetExitCode(err)
	}
	config.SetGlobal(cfg)

	level := cfg.Log.Level
	if args.Verbose {
		level = "debug"
	}
	log, err := logger.New(level, cfg.Log.Development)
	if err != nil {
		err = fmt.Errorf("%w: %v", cli.ErrConfig, err)
		cli.DisplayError(os.Stderr, err, args.JSON)
		return cli.GetExitCode(err)
	}
	defer func() { _ = log.Sync() }()
	undo := zap.ReplaceGlobals(log)
	defer undo()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := cli.DefaultEnv()
	env.Config = cfg
	env.ConfigPath = args.ConfigPath
	env.Log = log

	if err := cli.Run(ctx, cmd, args, env); err != nil {
		log.Debug("command failed", zap.String("command", cmd.String()), zap.Error(err))
		cli.DisplayError(os.Stderr, err, args.JSON)
		return cli.GetExitCode(err)
	}
	return cli.ExitSuccess
}

// loadConfig reads the file named by --config, or the default locations.
// A broken default file is reported and the defaults are used.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		cfg, err := config.LoadFromPath(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", cli.ErrConfig, err)
		}
		return cfg, nil
	}

	cfg, err := config.Load()
	if cfg == nil {
		return nil, fmt.Errorf("%w: %v", cli.ErrConfig, err)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}
	return cfg, nil
}
