// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for richchat.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - ParseConfig: Color mode, tag grammar and JSON input switches
//   - RenderConfig: Output format, theme and terminal color profile
//   - CatalogConfig: Template directory, database and watch settings
//   - LogConfig: Log level and development mode
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (RICHCHAT_*)
//   - ~/.richchat/config.toml
//   - ~/.richchat/config.json
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Access settings:
//
//	opts, err := cfg.Parse.Options()
//	format := cfg.Render.Format
package config
