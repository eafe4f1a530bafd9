// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists message catalog templates in SQLite.
//
// # Key Types
//
//   - TemplateStore: SQLite-backed store keyed by catalog key
//   - Template: A raw template with its source file and revision
//
// # Usage
//
// Open a store and replace the keys loaded from one catalog file:
//
//	store, err := storage.Open(filepath.Join(dir, "catalog.db"))
//	stored, err := store.ReplaceSource("greetings.toml", templates)
//
// Look up and search:
//
//	t, err := store.Get("greet.welcome")
//	hits, err := store.Search("welcome")
//
// # Revisions
//
// Every change to a template's raw text or source assigns a new UUID
// revision. Storing identical content keeps the existing revision.
package storage
