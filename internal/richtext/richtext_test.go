// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package richtext

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/richchat/internal/action"
	"github.com/jeranaias/richchat/internal/color"
	"github.com/jeranaias/richchat/internal/model"
)

// =============================================================================
// FLATTEN TESTS
// =============================================================================

func TestFlatten_HoverInheritance(t *testing.T) {
	parentHover := New("parent tip")
	childHover := New("child tip")
	root := New("", WithHover(parentHover), WithChildren(
		New("first"),
		New("second", WithHover(childHover)),
	))

	leaves := Flatten(root)
	require.Len(t, leaves, 2)
	assert.True(t, Equal(parentHover, leaves[0].Hover))
	assert.True(t, Equal(childHover, leaves[1].Hover))
	assert.False(t, Equal(parentHover, leaves[1].Hover))
}

func TestFlatten_DocumentOrder(t *testing.T) {
	root := New("a", WithChildren(
		New("b", WithChildren(New("c"))),
		New("d"),
	))
	var got string
	for _, l := range Flatten(root) {
		got += l.Text
	}
	assert.Equal(t, "abcd", got)
	assert.Equal(t, "abcd", PlainText(root))
}

func TestFlatten_ColorAndStyleInheritance(t *testing.T) {
	root := New("", WithColor(color.Red), WithStyle(color.Bold, true), WithChildren(
		New("inherits"),
		New("overrides", WithColor(color.Blue), WithStyle(color.Bold, false), WithStyle(color.Italic, true)),
		New("default", WithColor(color.Default)),
	))

	leaves := Flatten(root)
	require.Len(t, leaves, 3)
	assert.Equal(t, color.Red, leaves[0].Color)
	assert.Equal(t, color.Bold, leaves[0].Styles)
	assert.Equal(t, color.Blue, leaves[1].Color)
	assert.Equal(t, color.Italic, leaves[1].Styles)
	assert.True(t, leaves[2].Color.IsDefault())
	assert.Equal(t, color.Bold, leaves[2].Styles)
}

func TestFlatten_ClickAndInsertionInheritance(t *testing.T) {
	root := New("", WithClick(action.Run("/a")), WithInsertion("x"), WithChildren(
		New("one"),
		New("two", WithClick(action.URL("https://example.com"))),
	))
	leaves := Flatten(root)
	require.Len(t, leaves, 2)
	assert.Equal(t, action.Run("/a"), *leaves[0].Click)
	assert.Equal(t, action.URL("https://example.com"), *leaves[1].Click)
	assert.Equal(t, "x", *leaves[1].Insertion)
}

func TestFlatten_Nil(t *testing.T) {
	assert.Nil(t, Flatten(nil))
	assert.Empty(t, Flatten(New("")))
}

// =============================================================================
// COALESCE TESTS
// =============================================================================

func TestCoalesce_MergesSharedClick(t *testing.T) {
	click := action.Run("/help")
	root := New("", WithChildren(
		New("one ", WithClick(click), WithColor(color.Red)),
		New("two ", WithClick(click)),
		New("three"),
	))

	parts := Coalesce(Flatten(root), LegacySerializer{})
	require.Len(t, parts, 2)
	assert.Equal(t, "&cone &rtwo ", parts[0].Content)
	assert.Equal(t, click, *parts[0].Click)
	assert.Equal(t, "three", parts[1].Content)
	assert.Nil(t, parts[1].Click)
}

func TestCoalesce_SingleLeafAndEmpty(t *testing.T) {
	parts := Coalesce([]Leaf{{Text: "solo"}}, LegacySerializer{})
	require.Len(t, parts, 1)
	assert.Equal(t, "solo", parts[0].Content)

	assert.Empty(t, Coalesce(nil, LegacySerializer{}))
}

func TestCoalesce_EqualHoverByValue(t *testing.T) {
	leaves := []Leaf{
		{Text: "a", Hover: New("tip")},
		{Text: "b", Hover: New("tip")},
		{Text: "c", Hover: New("other")},
	}
	parts := Coalesce(leaves, ComponentSerializer{})
	require.Len(t, parts, 2)
	assert.Len(t, parts[0].Content, 2)
}

func TestLegacySerializer_RoundTrip(t *testing.T) {
	s := LegacySerializer{}
	for _, in := range []string{
		"plain",
		"&cred &lbold",
		"<#123456>hex&r plain",
		"&a&ogreen italic",
	} {
		assert.Equal(t, in, s.WriteFormatting(s.ReadFormatting(in)), in)
	}
}

func TestLegacySerializer_Canonicalizes(t *testing.T) {
	s := LegacySerializer{}
	tests := []struct {
		in   string
		want string
	}{
		{"&l&chi", "&c&lhi"},
		{"<#4BC>x", "<#44BBCC>x"},
		{"a&rb", "ab"},
	}
	for _, tt := range tests {
		got := s.WriteFormatting(s.ReadFormatting(tt.in))
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, got, s.WriteFormatting(s.ReadFormatting(got)), "canonical form is stable: %s", got)
	}
}

// =============================================================================
// JSON TESTS
// =============================================================================

func TestParseJSON_Object(t *testing.T) {
	root, err := ParseJSONString(`{
		"text": "Click",
		"color": "gold",
		"bold": true,
		"italic": false,
		"insertion": "ins",
		"clickEvent": {"action": "suggest_command", "value": "/msg "},
		"hoverEvent": {"action": "show_text", "contents": {"text": "tip", "color": "#123456"}},
		"extra": [" here", {"text": "!", "color": "red"}]
	}`)
	require.NoError(t, err)

	c, ok := root.Color()
	assert.True(t, ok)
	assert.Equal(t, color.Gold, c)
	on, mask := root.Styles()
	assert.Equal(t, color.Bold|color.Italic, mask)
	assert.Equal(t, color.Bold, on)
	assert.Equal(t, action.Suggest("/msg "), *root.Click())
	ins, _ := root.Insertion()
	assert.Equal(t, "ins", ins)
	require.NotNil(t, root.Hover())
	hc, _ := root.Hover().Color()
	assert.Equal(t, color.MustRGB(0x123456), hc)
	assert.Equal(t, "Click here!", PlainText(root))
}

func TestParseJSON_ArrayAndString(t *testing.T) {
	root, err := ParseJSONString(`["a", {"text": "b"}, "c"]`)
	require.NoError(t, err)
	assert.Equal(t, "abc", PlainText(root))
	assert.Len(t, root.Children(), 2)

	s, err := ParseJSONString(`"just text"`)
	require.NoError(t, err)
	assert.Equal(t, "just text", s.Text())

	empty, err := ParseJSONString(`[]`)
	require.NoError(t, err)
	assert.Equal(t, "", PlainText(empty))
}

func TestParseJSON_Errors(t *testing.T) {
	_, err := ParseJSONString(`{"text":`)
	assert.ErrorIs(t, err, ErrInvalidJSON)

	_, err = ParseJSONString(`null`)
	assert.ErrorIs(t, err, ErrInvalidJSON)

	_, err = ParseJSONString(`{"text":"x","clickEvent":{"action":"change_page","value":"2"}}`)
	assert.ErrorIs(t, err, ErrUnsupportedAction)
	assert.ErrorIs(t, err, action.ErrUnknownKind)

	_, err = ParseJSONString(`{"text":"x","hoverEvent":{"action":"show_item","contents":"x"}}`)
	assert.ErrorIs(t, err, ErrUnsupportedAction)

	_, err = ParseJSONString(`{"text":"x","color":"not-a-color"}`)
	assert.ErrorIs(t, err, ErrInvalidJSON)
	assert.ErrorIs(t, err, color.ErrUnknownName)
}

func TestMarshalJSON_RoundTrip(t *testing.T) {
	root := New("Hi", WithColor(color.MustRGB(0xABCDEF)), WithStyle(color.Underline, true),
		WithClick(action.URL("https://example.com")),
		WithHover(New("tip", WithColor(color.Red))),
		WithInsertion("x"),
		WithChildren(New(" there", WithStyle(color.Underline, false))),
	)

	data, err := json.Marshal(root)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"color":"#ABCDEF"`)
	assert.Contains(t, string(data), `"underlined":true`)
	assert.Contains(t, string(data), `"action":"open_url"`)

	back, err := ParseJSON(data)
	require.NoError(t, err)
	assert.True(t, root.Equal(back))
}

// =============================================================================
// CONVERSION TESTS
// =============================================================================

func TestToMessage(t *testing.T) {
	root := New("", WithChildren(
		New("Click ", WithColor(color.Green), WithClick(action.Run("/go"))),
		New("here", WithStyle(color.Bold, true), WithClick(action.Run("/go"))),
		New(" or not"),
	))

	msg := ToMessage(root)
	require.Equal(t, 2, msg.Len())
	first := msg.Section(0)
	assert.Equal(t, []model.Component{
		model.Text("Click ", color.Green),
		model.Styled("here", color.Default, color.Bold),
	}, first.Contents())
	assert.Equal(t, action.Run("/go"), *first.Click())
	assert.Nil(t, msg.Section(1).Click())
	assert.Equal(t, "Click here or not", msg.PlainText())

	assert.Nil(t, ToMessage(nil))
	assert.Equal(t, 0, ToMessage(New("")).Len())
}

func TestFromMessage_RoundTrip(t *testing.T) {
	msg := model.NewMessage(
		model.NewSection([]model.Component{model.Text("a", color.Red), model.Styled("b", color.MustRGB(0x123456), color.Italic)},
			model.WithHover(model.PlainMessage("tip"))),
		model.NewSection([]model.Component{model.Text("c", color.Default)},
			model.WithClick(action.Run("/c")), model.WithInsertion("ins")),
	)

	back := ToMessage(FromMessage(msg))
	assert.True(t, msg.Equal(back), "got %v", back)
	assert.Nil(t, FromMessage(nil))
}
