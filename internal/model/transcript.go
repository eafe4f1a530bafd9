// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// MaxEntries is the maximum number of entries kept in a transcript.
// When exceeded, the oldest entries are pruned.
const MaxEntries = 1000

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Entry is one parsed line of a transcript.
type Entry struct {
	ID        string    `json:"id"`
	Raw       string    `json:"raw"`
	Timestamp time.Time `json:"timestamp"`
	Message   *Message  `json:"-"`
}

// Transcript is an append-only, bounded history of parsed messages, used by
// the interactive shell. It is not safe for concurrent use.
type Transcript struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Entries   []*Entry  `json:"entries"`

	max int
}

// NewTranscript creates an empty transcript with a generated ID.
func NewTranscript() *Transcript {
	now := time.Now()
	return &Transcript{
		ID:        "tr_" + uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		Entries:   make([]*Entry, 0),
		max:       MaxEntries,
	}
}

// SetLimit changes how many entries are kept. Values below 1 restore
// MaxEntries.
func (t *Transcript) SetLimit(n int) {
	if n < 1 {
		n = MaxEntries
	}
	t.max = n
	t.prune()
}

// Add records a parsed message and returns its entry.
func (t *Transcript) Add(raw string, msg *Message) *Entry {
	e := &Entry{
		ID:        uuid.NewString(),
		Raw:       raw,
		Timestamp: time.Now(),
		Message:   msg,
	}
	t.Entries = append(t.Entries, e)
	t.UpdatedAt = e.Timestamp
	t.prune()
	return e
}

// Last returns the most recent entry, or nil if empty.
func (t *Transcript) Last() *Entry {
	if len(t.Entries) == 0 {
		return nil
	}
	return t.Entries[len(t.Entries)-1]
}

// Get returns the entry with id, or nil.
func (t *Transcript) Get(id string) *Entry {
	for _, e := range t.Entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	return len(t.Entries)
}

// Clear removes every entry.
func (t *Transcript) Clear() {
	t.Entries = make([]*Entry, 0)
	t.UpdatedAt = time.Now()
}

// Combined joins every entry's message into one message, in order.
func (t *Transcript) Combined() *Message {
	out := Empty
	for _, e := range t.Entries {
		if e.Message != nil {
			out = out.Append(e.Message)
		}
	}
	return out
}

// prune drops the oldest entries beyond the limit.
func (t *Transcript) prune() {
	limit := t.max
	if limit < 1 {
		limit = MaxEntries
	}
	if len(t.Entries) <= limit {
		return
	}
	kept := make([]*Entry, limit)
	copy(kept, t.Entries[len(t.Entries)-limit:])
	t.Entries = kept
}
