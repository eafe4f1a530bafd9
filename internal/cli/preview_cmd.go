// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"

	"github.com/jeranaias/richchat/internal/logger"
	"github.com/jeranaias/richchat/internal/parser"
	"github.com/jeranaias/richchat/internal/ui/preview"
)

// runPreview opens the live preview. On exit the canonical raw form of the
// last message is printed so it can be pasted elsewhere.
func runPreview(ctx context.Context, args Args, env Env) error {
	if err := RequiresTTY("open the preview"); err != nil {
		return err
	}
	popts, err := parseOptions(env.Config, args)
	if err != nil {
		return err
	}
	eopts, err := exportOptions(env, args, popts.Tags)
	if err != nil {
		return err
	}

	p := NewArgParser(args.Raw)
	msg, err := preview.Run(ctx, preview.Options{
		Initial: p.Positional(0),
		Parse:   popts,
		Export:  eopts,
		Logger:  logger.L(ctx),
	})
	if err != nil {
		return NewCommandError("preview", "run", "terminal UI failed", err)
	}
	if msg != nil && !msg.IsEmpty() {
		fmt.Fprintln(env.Stdout, parser.Format(msg))
	}
	return nil
}
