// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package richtext adapts hierarchical rich-text trees to the flat message
// model.
//
// A tree node carries optional color, styles, hover, click and insertion, plus
// children. Attributes a node leaves unset are inherited from the nearest
// ancestor that sets them. Flatten resolves that inheritance once, producing
// leaves in document order; Coalesce then merges adjacent leaves that share
// hover, click and insertion into parts, writing each part's formatted text
// through a pluggable Serializer.
//
// # Key Types
//
//   - Node: the read-only capability a host tree must expose
//   - Component: the package's own immutable Node implementation
//   - Leaf: a resolved text node with effective attributes
//   - Part: a coalesced run of leaves with shared attributes
//   - Serializer: converts between leaves and an encoded text form
//
// # Usage
//
// Parse the JSON component form and convert it to a flat message:
//
//	root, err := richtext.ParseJSON([]byte(`{"text":"hi","color":"red","extra":["!"]}`))
//	if err != nil {
//	    return err
//	}
//	msg := richtext.ToMessage(root)
//
// Coalesce into legacy-coded strings:
//
//	parts := richtext.Coalesce(richtext.Flatten(root), richtext.LegacySerializer{})
package richtext
