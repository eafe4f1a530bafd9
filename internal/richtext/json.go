// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package richtext

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/jeranaias/richchat/internal/action"
	"github.com/jeranaias/richchat/internal/color"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrInvalidJSON is returned when input is not a valid JSON component.
	ErrInvalidJSON = errors.New("richtext: invalid JSON component")
	// ErrUnsupportedAction is returned for click or hover actions outside
	// run_command, suggest_command, open_url and show_text.
	ErrUnsupportedAction = errors.New("richtext: unsupported action")
)

// hoverShowText is the only supported hover action.
const hoverShowText = "show_text"

// =============================================================================
// DECODING
// =============================================================================

// ParseJSON decodes the JSON component form. Accepted shapes:
//
//	"text"                        a plain text node
//	[first, second, ...]          first is the parent, the rest are appended as children
//	{"text": ..., "extra": [...]} a node with attributes
//
// Object keys: text, color (palette name or #RRGGBB), bold, italic,
// underlined, strikethrough, obfuscated, insertion,
// clickEvent {action, value} and hoverEvent {action: "show_text", contents}.
// Unknown keys are ignored.
func ParseJSON(data []byte) (*Component, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	return decode(gjson.ParseBytes(data))
}

// ParseJSONString is ParseJSON for a string.
func ParseJSONString(s string) (*Component, error) {
	return ParseJSON([]byte(s))
}

func decode(r gjson.Result) (*Component, error) {
	switch {
	case r.IsObject():
		return decodeObject(r)
	case r.IsArray():
		items := r.Array()
		if len(items) == 0 {
			return New(""), nil
		}
		parent, err := decode(items[0])
		if err != nil {
			return nil, err
		}
		children := parent.ChildComponents()
		for _, item := range items[1:] {
			child, err := decode(item)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		return parent.WithChildren(children), nil
	case r.Type == gjson.String, r.Type == gjson.Number, r.Type == gjson.True, r.Type == gjson.False:
		return New(r.String()), nil
	default:
		return nil, fmt.Errorf("%w: unexpected %s", ErrInvalidJSON, r.Type)
	}
}

func decodeObject(r gjson.Result) (*Component, error) {
	var opts []Option

	if v := r.Get("color"); v.Exists() {
		c, err := color.Parse(v.String())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
		}
		opts = append(opts, WithColor(c))
	}

	color.StyleSet(0).Each(color.AllStyles, func(name string, _ bool) {
		if v := r.Get(name); v.Exists() {
			bit, _ := color.StyleByName(name)
			opts = append(opts, WithStyle(bit, v.Bool()))
		}
	})

	if v := r.Get("insertion"); v.Exists() {
		opts = append(opts, WithInsertion(v.String()))
	}

	if v := r.Get("clickEvent"); v.Exists() {
		kind, err := action.ParseKind(v.Get("action").String())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedAction, err)
		}
		opts = append(opts, WithClick(action.Click{Kind: kind, Value: v.Get("value").String()}))
	}

	if v := r.Get("hoverEvent"); v.Exists() {
		if a := v.Get("action").String(); a != hoverShowText {
			return nil, fmt.Errorf("%w: hover %q", ErrUnsupportedAction, a)
		}
		contents := v.Get("contents")
		if !contents.Exists() {
			contents = v.Get("value")
		}
		hover, err := decode(contents)
		if err != nil {
			return nil, fmt.Errorf("hover: %w", err)
		}
		opts = append(opts, WithHover(hover))
	}

	if v := r.Get("extra"); v.Exists() {
		if !v.IsArray() {
			return nil, fmt.Errorf("%w: extra must be an array", ErrInvalidJSON)
		}
		for _, item := range v.Array() {
			child, err := decode(item)
			if err != nil {
				return nil, err
			}
			opts = append(opts, WithChildren(child))
		}
	}

	return New(r.Get("text").String(), opts...), nil
}

// =============================================================================
// ENCODING
// =============================================================================

type jsonClick struct {
	Action string `json:"action"`
	Value  string `json:"value"`
}

type jsonHover struct {
	Action   string     `json:"action"`
	Contents *Component `json:"contents"`
}

type jsonComponent struct {
	Text          string       `json:"text"`
	Color         string       `json:"color,omitempty"`
	Bold          *bool        `json:"bold,omitempty"`
	Italic        *bool        `json:"italic,omitempty"`
	Underlined    *bool        `json:"underlined,omitempty"`
	Strikethrough *bool        `json:"strikethrough,omitempty"`
	Obfuscated    *bool        `json:"obfuscated,omitempty"`
	Insertion     *string      `json:"insertion,omitempty"`
	ClickEvent    *jsonClick   `json:"clickEvent,omitempty"`
	HoverEvent    *jsonHover   `json:"hoverEvent,omitempty"`
	Extra         []*Component `json:"extra,omitempty"`
}

// MarshalJSON writes the object form accepted by ParseJSON. Only attributes
// the component sets itself are written. An explicit default color is written
// as "reset".
func (c *Component) MarshalJSON() ([]byte, error) {
	out := jsonComponent{
		Text:      c.text,
		Insertion: c.insertion,
		Extra:     c.children,
	}
	if c.hasColor {
		if c.color.IsDefault() {
			out.Color = "reset"
		} else {
			out.Color = c.color.String()
		}
	}
	c.styles.Each(c.styleMask, func(name string, on bool) {
		v := on
		switch name {
		case "bold":
			out.Bold = &v
		case "italic":
			out.Italic = &v
		case "underlined":
			out.Underlined = &v
		case "strikethrough":
			out.Strikethrough = &v
		case "obfuscated":
			out.Obfuscated = &v
		}
	})
	if c.click != nil {
		out.ClickEvent = &jsonClick{Action: c.click.Kind.String(), Value: c.click.Value}
	}
	if c.hover != nil {
		out.HoverEvent = &jsonHover{Action: hoverShowText, Contents: c.hover}
	}
	return json.Marshal(out)
}
