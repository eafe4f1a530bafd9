// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// catalog_cmd.go - The catalog command: list, get, search, render and watch
// message templates.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/jeranaias/richchat/internal/catalog"
	"github.com/jeranaias/richchat/internal/export"
	"github.com/jeranaias/richchat/internal/logger"
	"github.com/jeranaias/richchat/internal/model"
	"github.com/jeranaias/richchat/internal/storage"
)

// TemplateData represents one template in catalog output.
type TemplateData struct {
	Key      string `json:"key"`
	Raw      string `json:"raw"`
	Plain    string `json:"plain"`
	Source   string `json:"source,omitempty"`
	Revision string `json:"revision,omitempty"`
	Output   string `json:"output,omitempty"`
}

const catalogUsage = "richchat catalog [list|get|search|render|watch]"

func runCatalog(ctx context.Context, args Args, env Env) error {
	p := NewArgParser(args.Raw)

	sub := p.Subcommand()
	if sub == "" {
		sub = "list"
	}
	switch sub {
	case "list", "ls", "get", "search", "render", "watch":
	default:
		return NewValidationErrorWithExample("subcommand", sub, "unknown catalog subcommand", catalogUsage)
	}

	var onReload func([]string, error)
	if sub == "watch" {
		onReload = func(files []string, err error) {
			for _, f := range files {
				fmt.Fprintf(env.Stdout, "%s %s\n", SuccessStyle.Render("reloaded"), f)
			}
			if err != nil {
				fmt.Fprintf(env.Stderr, "%s %v\n", WarningStyle.Render("[WARN]"), err)
			}
		}
	}

	cat, store, err := openCatalog(ctx, args, env, onReload)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	switch sub {
	case "list", "ls":
		return catalogList(cat, store, args, env)
	case "get":
		if p.PositionalCount() < 2 {
			return ErrMissingArgument("key", "richchat catalog get greet.welcome")
		}
		return catalogShow(cat, store, p, p.Positional(1), nil, args, env)
	case "render":
		if p.PositionalCount() < 2 {
			return ErrMissingArgument("key", "richchat catalog render greet.welcome name=Steve")
		}
		placeholders, err := ParsePlaceholders(p.PositionalFrom(2))
		if err != nil {
			return err
		}
		return catalogShow(cat, store, p, p.Positional(1), placeholders, args, env)
	case "search":
		if p.PositionalCount() < 2 {
			return ErrMissingArgument("text", "richchat catalog search welcome")
		}
		return catalogSearch(cat, strings.Join(p.PositionalFrom(1), " "), args, env)
	default:
		return catalogWatch(ctx, cat, env)
	}
}

// openCatalog loads the configured catalog directory and opens the template
// store when a database path is configured. Broken template files are
// reported and skipped.
func openCatalog(ctx context.Context, args Args, env Env, onReload func([]string, error)) (*catalog.Catalog, *storage.TemplateStore, error) {
	log := logger.L(ctx)

	var store *storage.TemplateStore
	if path := env.Config.Catalog.DatabasePath; path != "" {
		s, err := storage.Open(path)
		if err != nil {
			return nil, nil, NewCommandError("catalog", "open", "could not open template store", err)
		}
		store = s
	}

	opts, err := catalog.OptionsFromConfig(env.Config, store)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, nil, err
	}
	popts, err := parseOptions(env.Config, args)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, nil, err
	}
	opts.Parse = popts
	opts.Logger = log
	opts.OnReload = onReload

	cat, err := catalog.New(opts)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, nil, err
	}

	if _, err := os.Stat(opts.Dir); errors.Is(err, fs.ErrNotExist) {
		log.Debug("catalog directory does not exist", zap.String("dir", opts.Dir))
		return cat, store, nil
	}
	if err := cat.LoadDir(); err != nil {
		log.Warn("some catalog files failed to load", zap.Error(err))
		fmt.Fprintf(env.Stderr, "%s %v\n", WarningStyle.Render("[WARN]"), err)
	}
	return cat, store, nil
}

func catalogList(cat *catalog.Catalog, store *storage.TemplateStore, args Args, env Env) error {
	var templates []storage.Template
	if store != nil {
		var err error
		if templates, err = store.List(); err != nil {
			return err
		}
	} else {
		for _, key := range cat.Keys() {
			raw, err := cat.Raw(key)
			if err != nil {
				return err
			}
			msg, err := cat.Get(key)
			if err != nil {
				return err
			}
			templates = append(templates, storage.Template{Key: key, Raw: raw, Plain: msg.PlainText()})
		}
	}

	if args.JSON {
		out := make([]TemplateData, 0, len(templates))
		for _, t := range templates {
			out = append(out, TemplateData{Key: t.Key, Raw: t.Raw, Plain: t.Plain, Source: t.Source, Revision: t.Revision})
		}
		return writeJSON(env, "catalog list", out)
	}

	if len(templates) == 0 {
		fmt.Fprintln(env.Stdout, DimStyle.Render(fmt.Sprintf("No templates in %s", env.Config.Catalog.Dir)))
		return nil
	}
	writeLine(env.Stdout, storage.FormatTemplateList(templates))
	return nil
}

// catalogShow renders one template, substituting placeholders when given.
func catalogShow(cat *catalog.Catalog, store *storage.TemplateStore, p *ArgParser, key string, placeholders map[string]string, args Args, env Env) error {
	var msg *model.Message
	var err error
	if placeholders != nil {
		msg, err = cat.Render(key, placeholders)
	} else {
		msg, err = cat.Get(key)
	}
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			if hint := SuggestFrom(key, cat.Keys()); hint != "" {
				return fmt.Errorf("%w (did you mean %q?)", err, hint)
			}
		}
		return err
	}

	popts, _ := parseOptions(env.Config, args)
	opts, err := exportOptions(env, args, popts.Tags)
	if err != nil {
		return err
	}
	format := p.FlagOrDefault("format", env.Config.Render.Format)
	exporter, err := export.ForFormat(format, opts)
	if err != nil {
		return err
	}
	out, err := exporter.Export(msg)
	if err != nil {
		return err
	}

	if args.JSON {
		raw, _ := cat.Raw(key)
		data := TemplateData{Key: key, Raw: raw, Plain: msg.PlainText(), Output: string(out)}
		if store != nil {
			if t, err := store.Get(key); err == nil {
				data.Source = t.Source
				data.Revision = t.Revision
			}
		}
		return writeJSON(env, "catalog "+p.Subcommand(), data)
	}
	writeLine(env.Stdout, string(out))
	return nil
}

func catalogSearch(cat *catalog.Catalog, text string, args Args, env Env) error {
	keys, err := cat.Search(text)
	if err != nil {
		return err
	}
	if args.JSON {
		return writeJSON(env, "catalog search", keys)
	}
	if len(keys) == 0 {
		fmt.Fprintln(env.Stdout, DimStyle.Render("No matches"))
		return nil
	}
	for _, k := range keys {
		fmt.Fprintln(env.Stdout, k)
	}
	return nil
}

// catalogWatch reloads templates as files change until ctx is cancelled.
func catalogWatch(ctx context.Context, cat *catalog.Catalog, env Env) error {
	dir := env.Config.Catalog.Dir
	if err := os.MkdirAll(dir, 0755); err != nil {
		return NewCommandError("catalog", "watch", "could not create catalog directory", err)
	}
	fmt.Fprintf(env.Stderr, "%s %s (%d templates)\n", TitleStyle.Render("Watching"), dir, cat.Len())
	return cat.Watch(ctx)
}
