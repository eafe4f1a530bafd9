// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

const (
	// SchemaVersion tracks the database schema version for migrations
	SchemaVersion = 1
)

// Schema is the SQLite schema for the template store.
const Schema = `
-- Metadata table for schema version
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
) WITHOUT ROWID;

-- Templates table: one row per catalog key
CREATE TABLE IF NOT EXISTS templates (
    key TEXT PRIMARY KEY,
    raw TEXT NOT NULL,
    plain TEXT NOT NULL,        -- Visible text, used by Search
    source TEXT NOT NULL,       -- Catalog file the key was loaded from
    revision TEXT NOT NULL,     -- UUID, changes when raw or source changes
    updated_at INTEGER NOT NULL -- Unix timestamp
) WITHOUT ROWID;

CREATE INDEX IF NOT EXISTS idx_templates_source ON templates(source);
`

// InitMetadata seeds the metadata table.
const InitMetadata = `
INSERT OR IGNORE INTO metadata (key, value) VALUES ('schema_version', '1');
`
