// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package grammar tokenizes the inline tag syntax of raw chat strings.
//
// A raw string is split on the "||" delimiter. Each non-empty piece is either
// content (fed to the color lexer) or a tag whose first four characters are a
// reserved prefix:
//
//	ttp:  hover text
//	cmd:  run a command on click
//	sgt:  suggest a command on click
//	url:  open a URL on click
//	ins:  insert text on shift-click
//
// Example: "Click me||cmd:/help||ttp:&7Shows help" is one content token followed
// by two tags.
package grammar

import "strings"

// Delimiter separates tokens.
const Delimiter = "||"

// prefixLen is the length of every tag prefix.
const prefixLen = 4

// Kind classifies a token.
type Kind uint8

const (
	Content Kind = iota
	Hover
	Command
	Suggest
	URL
	Insertion
)

// Tag prefixes, exactly as they appear on the wire.
const (
	HoverPrefix     = "ttp:"
	CommandPrefix   = "cmd:"
	SuggestPrefix   = "sgt:"
	URLPrefix       = "url:"
	InsertionPrefix = "ins:"
)

var prefixes = map[string]Kind{
	HoverPrefix:     Hover,
	CommandPrefix:   Command,
	SuggestPrefix:   Suggest,
	URLPrefix:       URL,
	InsertionPrefix: Insertion,
}

// String names the kind.
func (k Kind) String() string {
	switch k {
	case Content:
		return "content"
	case Hover:
		return "hover"
	case Command:
		return "command"
	case Suggest:
		return "suggest"
	case URL:
		return "url"
	case Insertion:
		return "insertion"
	}
	return "unknown"
}

// IsTag reports whether k is any tag kind.
func (k Kind) IsTag() bool {
	return k != Content
}

// Prefix returns the wire prefix of a tag kind, or "" for Content.
func (k Kind) Prefix() string {
	for p, kind := range prefixes {
		if kind == k {
			return p
		}
	}
	return ""
}

// Token is one delimiter-separated piece of a raw string. For tags, Payload is
// the text after the prefix; for content it is the whole piece.
type Token struct {
	Kind    Kind
	Payload string
}

// Classify determines whether piece is a tag. A tag needs at least one payload
// character, so pieces shorter than five characters are always content.
func Classify(piece string) Token {
	if len(piece) > prefixLen {
		if kind, ok := prefixes[piece[:prefixLen]]; ok {
			return Token{Kind: kind, Payload: piece[prefixLen:]}
		}
	}
	return Token{Kind: Content, Payload: piece}
}

// Tokenize splits raw on Delimiter, drops empty pieces and classifies the rest.
func Tokenize(raw string) []Token {
	pieces := strings.Split(raw, Delimiter)
	tokens := make([]Token, 0, len(pieces))
	for _, p := range pieces {
		if p == "" {
			continue
		}
		tokens = append(tokens, Classify(p))
	}
	return tokens
}

// Tag renders a tag token back to wire form, including the leading delimiter.
func Tag(kind Kind, payload string) string {
	return Delimiter + kind.Prefix() + payload
}
