// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"

	"github.com/jeranaias/richchat/internal/lexer"
	"github.com/jeranaias/richchat/internal/model"
	"github.com/jeranaias/richchat/internal/parser"
	"github.com/jeranaias/richchat/internal/richtext"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter exports messages in the JSON component form: an empty root
// with one child per section. The output parses back with richtext.ParseJSON.
type JSONExporter struct {
	options *Options
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

// Export converts a message to indented JSON.
func (e *JSONExporter) Export(msg *model.Message) ([]byte, error) {
	if msg == nil {
		return nil, ErrNilMessage
	}
	return json.MarshalIndent(richtext.FromMessage(msg), "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}

// =============================================================================
// LEGACY EXPORTER
// =============================================================================

// LegacyExporter writes messages back to raw chat strings.
type LegacyExporter struct {
	options   *Options
	formatter parser.Formatter
}

// NewLegacyExporter creates a legacy exporter. With Tags unset only the color
// markers are written.
func NewLegacyExporter(opts *Options) *LegacyExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &LegacyExporter{
		options:   opts,
		formatter: parser.Formatter{Writer: lexer.Writer{Downsample: opts.Downsample}},
	}
}

// Export converts a message to its raw string form.
func (e *LegacyExporter) Export(msg *model.Message) ([]byte, error) {
	if msg == nil {
		return nil, ErrNilMessage
	}
	if e.options.Tags {
		return []byte(e.formatter.Format(msg)), nil
	}
	return []byte(e.formatter.FormatLegacy(msg)), nil
}

// FileExtension returns the file extension for raw chat strings.
func (e *LegacyExporter) FileExtension() string {
	return ".chat"
}

// MimeType returns the MIME type for raw chat strings.
func (e *LegacyExporter) MimeType() string {
	return "text/plain; charset=utf-8"
}

// =============================================================================
// PLAIN EXPORTER
// =============================================================================

// PlainExporter writes only the visible text.
type PlainExporter struct {
	options *Options
}

// NewPlainExporter creates a plain text exporter.
func NewPlainExporter(opts *Options) *PlainExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &PlainExporter{options: opts}
}

// Export returns the message's plain text.
func (e *PlainExporter) Export(msg *model.Message) ([]byte, error) {
	if msg == nil {
		return nil, ErrNilMessage
	}
	return []byte(msg.PlainText()), nil
}

// FileExtension returns the file extension for plain text.
func (e *PlainExporter) FileExtension() string {
	return ".txt"
}

// MimeType returns the MIME type for plain text.
func (e *PlainExporter) MimeType() string {
	return "text/plain; charset=utf-8"
}
