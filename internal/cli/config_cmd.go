// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/richchat/internal/config"
)

// ConfigValueData represents one configuration value.
type ConfigValueData struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// configPath returns the file config set and init write to.
func configPath(env Env) (string, error) {
	if env.ConfigPath != "" {
		return env.ConfigPath, nil
	}
	path, err := config.ConfigPathTOML()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return path, nil
}

func saveConfig(cfg *config.Config, path string) error {
	var err error
	if strings.HasSuffix(path, ".json") {
		err = config.SaveJSON(cfg, path)
	} else {
		err = config.SaveTOML(cfg, path)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return nil
}

func runConfig(args Args, env Env) error {
	p := NewArgParser(args.Raw, "force")
	cfg := env.Config

	switch sub := p.Subcommand(); sub {
	case "", "show":
		if args.JSON {
			return writeJSON(env, "config show", cfg)
		}
		out := cfg.String()
		if env.TTY && env.Color {
			out = Highlight(out, "json")
		}
		writeLine(env.Stdout, out)
		return nil

	case "get":
		key := p.Positional(1)
		if key == "" {
			return ErrMissingArgument("key", "richchat config get render.format")
		}
		value, err := cfg.Get(key)
		if err != nil {
			return NewValidationErrorWithExample("key", key, err.Error(), "richchat config keys")
		}
		if args.JSON {
			return writeJSON(env, "config get", ConfigValueData{Key: key, Value: value})
		}
		fmt.Fprintln(env.Stdout, value)
		return nil

	case "set":
		key, value := p.Positional(1), p.Positional(2)
		if p.PositionalCount() < 3 {
			return ErrMissingArgument("value", "richchat config set render.format html")
		}
		updated := cfg.Clone()
		if err := updated.Set(key, value); err != nil {
			return NewValidationErrorWithExample("key", key, err.Error(), "richchat config keys")
		}
		if err := updated.Validate(); err != nil {
			return err
		}
		path, err := configPath(env)
		if err != nil {
			return err
		}
		if err := saveConfig(updated, path); err != nil {
			return err
		}
		config.SetGlobal(updated)
		if args.JSON {
			v, _ := updated.Get(key)
			return writeJSON(env, "config set", ConfigValueData{Key: key, Value: v})
		}
		fmt.Fprintf(env.Stdout, "%s %s = %s\n", SuccessStyle.Render("Set"), key, value)
		return nil

	case "path":
		path, err := configPath(env)
		if err != nil {
			return err
		}
		if args.JSON {
			return writeJSON(env, "config path", map[string]string{"path": path})
		}
		fmt.Fprintln(env.Stdout, path)
		return nil

	case "keys":
		keys := config.GetAllKeys()
		if args.JSON {
			return writeJSON(env, "config keys", keys)
		}
		for _, k := range keys {
			fmt.Fprintln(env.Stdout, k)
		}
		return nil

	case "init":
		path, err := configPath(env)
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err == nil && !p.BoolFlag("force") {
			return NewValidationErrorWithExample("path", path, "config file already exists", "richchat config init --force")
		}
		if err := saveConfig(config.Default(), path); err != nil {
			return err
		}
		fmt.Fprintf(env.Stdout, "%s %s\n", SuccessStyle.Render("Wrote"), path)
		return nil

	default:
		return NewValidationErrorWithExample("subcommand", sub, "unknown config subcommand",
			"richchat config [show|get|set|path|keys|init]")
	}
}
