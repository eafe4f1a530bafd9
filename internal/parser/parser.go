// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package parser turns raw chat strings into messages.
//
// The raw form combines color markers ("&c", "<#RRGGBB>", "<#RGB>") with the
// "||" tag grammar ("||ttp:", "||cmd:", "||sgt:", "||url:", "||ins:"). When
// JSON mode is on, input that is a JSON component object or array is decoded
// as a rich-text tree instead.
//
// Parsing is a pure function: the same input and options always yield equal
// messages, and every call is safe for concurrent use.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/jeranaias/richchat/internal/action"
	"github.com/jeranaias/richchat/internal/grammar"
	"github.com/jeranaias/richchat/internal/lexer"
	"github.com/jeranaias/richchat/internal/model"
	"github.com/jeranaias/richchat/internal/richtext"
)

// ErrUnsupportedMode is returned when a requested parse mode is not provided.
// It is distinct from input errors so callers can detect a capability
// mismatch.
var ErrUnsupportedMode = errors.New("parser: unsupported mode")

// =============================================================================
// OPTIONS
// =============================================================================

// Options selects parse modes.
type Options struct {
	// ColorMode controls marker recognition in content.
	ColorMode lexer.Mode
	// Tags enables the "||" tag grammar. When false the whole input is one
	// content token.
	Tags bool
	// JSON decodes input that is a JSON component object or array.
	JSON bool
}

// DefaultOptions recognizes legacy markers and tags; JSON input is off.
func DefaultOptions() Options {
	return Options{ColorMode: lexer.Legacy, Tags: true}
}

// Validate reports ErrUnsupportedMode for color modes this package does not
// implement.
func (o Options) Validate() error {
	switch o.ColorMode {
	case lexer.Legacy, lexer.None:
		return nil
	}
	return fmt.Errorf("%w: color mode %s", ErrUnsupportedMode, o.ColorMode)
}

// ParseModeName maps a configuration name to a color mode. Names are
// case-insensitive; "" means legacy.
func ParseModeName(name string) (lexer.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "legacy":
		return lexer.Legacy, nil
	case "none", "plain":
		return lexer.None, nil
	}
	return 0, fmt.Errorf("%w: color mode %q", ErrUnsupportedMode, name)
}

// =============================================================================
// PARSING
// =============================================================================

// Parse converts raw into a message. The result always has at least one
// section unless raw was decoded in JSON mode. Tags that precede any content
// are ignored; when several click tags follow the same content the last one
// wins.
func Parse(raw string, opts Options) (*model.Message, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.JSON && looksLikeJSON(raw) {
		root, err := richtext.ParseJSONString(raw)
		if err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
		return richtext.ToMessage(root), nil
	}

	b := model.NewBuilder()
	if !opts.Tags {
		return b.Content(components(raw, opts.ColorMode)...).Build(), nil
	}

	hoverOpts := Options{ColorMode: opts.ColorMode}
	for _, tok := range grammar.Tokenize(raw) {
		switch tok.Kind {
		case grammar.Content:
			b.Content(components(tok.Payload, opts.ColorMode)...)
		case grammar.Hover:
			hover, err := Parse(tok.Payload, hoverOpts)
			if err != nil {
				return nil, fmt.Errorf("parse hover: %w", err)
			}
			b.Hover(hover)
		case grammar.Command:
			b.Click(action.Run(tok.Payload))
		case grammar.Suggest:
			b.Click(action.Suggest(tok.Payload))
		case grammar.URL:
			b.Click(action.URL(tok.Payload))
		case grammar.Insertion:
			b.Insertion(tok.Payload)
		}
	}
	return b.Build(), nil
}

// MustParse is like Parse but panics on error. Intended for constants and
// tests.
func MustParse(raw string, opts Options) *model.Message {
	m, err := Parse(raw, opts)
	if err != nil {
		panic(err)
	}
	return m
}

// components lexes one content token.
func components(text string, mode lexer.Mode) []model.Component {
	runs := lexer.Scan(text, mode)
	out := make([]model.Component, len(runs))
	for i, r := range runs {
		out[i] = model.Styled(r.Text, r.Color, r.Styles)
	}
	return out
}

// looksLikeJSON reports whether raw is a JSON object or array.
func looksLikeJSON(raw string) bool {
	s := strings.TrimSpace(raw)
	if s == "" || (s[0] != '{' && s[0] != '[') {
		return false
	}
	return gjson.Valid(s)
}
