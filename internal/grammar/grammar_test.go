// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package grammar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		piece string
		want  Token
	}{
		{"content", "hello", Token{Content, "hello"}},
		{"hover", "ttp:world", Token{Hover, "world"}},
		{"command", "cmd:/help", Token{Command, "/help"}},
		{"suggest", "sgt:/msg ", Token{Suggest, "/msg "}},
		{"url", "url:https://example.com", Token{URL, "https://example.com"}},
		{"insertion", "ins:abc", Token{Insertion, "abc"}},
		{"prefixOnly", "url:", Token{Content, "url:"}},
		{"short", "ttp", Token{Content, "ttp"}},
		{"caseSensitive", "TTP:world", Token{Content, "TTP:world"}},
		{"prefixInside", "see ttp:x", Token{Content, "see ttp:x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Classify(tt.piece))
		})
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("hello||ttp:world||||cmd:/x||")
	require.Equal(t, []Token{
		{Content, "hello"},
		{Hover, "world"},
		{Command, "/x"},
	}, got)

	require.Empty(t, Tokenize(""))
	require.Empty(t, Tokenize("||||"))
}

func TestTokenizeOddPipes(t *testing.T) {
	// "a|||b" splits into "a" and "|b".
	require.Equal(t, []Token{{Content, "a"}, {Content, "|b"}}, Tokenize("a|||b"))
}

func TestTagRoundTrip(t *testing.T) {
	for _, k := range []Kind{Hover, Command, Suggest, URL, Insertion} {
		wire := Tag(k, "payload")
		toks := Tokenize(wire)
		require.Len(t, toks, 1)
		require.Equal(t, k, toks[0].Kind)
		require.Equal(t, "payload", toks[0].Payload)
	}
	require.Equal(t, "", Content.Prefix())
}
