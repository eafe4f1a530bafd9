// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package catalog loads named message templates from TOML files.
//
// A catalog file maps keys to raw chat strings. Nested tables become dotted
// keys:
//
//	[greet]
//	welcome = "&aWelcome, {player}!||ttp:&7Joined {server}"
//
// defines "greet.welcome".
//
// # Key Types
//
//   - Catalog: Parsed templates cached in memory, optionally mirrored to a
//     storage.TemplateStore
//   - Options: Directory, parser settings and watch tuning
//
// # Usage
//
//	cat, err := catalog.New(catalog.DefaultOptions(dir))
//	if err := cat.LoadDir(); err != nil {
//	    log.Warn("some templates failed to load", zap.Error(err))
//	}
//	msg, err := cat.Render("greet.welcome", map[string]string{"player": "Steve"})
//
// Watch keeps the catalog current while a context is live:
//
//	go cat.Watch(ctx)
package catalog
