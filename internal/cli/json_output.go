// json_output.go - JSON output for scripting and pipelines.
//
// Every command accepts --json and then writes exactly one JSONResponse to
// stdout. Human-readable notes go to stderr in that mode.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jeranaias/richchat/internal/diff"
	"github.com/jeranaias/richchat/internal/export"
	"github.com/jeranaias/richchat/internal/model"
)

// JSONResponse is the standardized response format for all CLI commands.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data interface{} `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// Timestamp is the ISO8601 timestamp when the response was generated
	Timestamp string `json:"timestamp"`

	// Command is the command that was executed
	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a new successful JSON response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates a new error JSON response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Success:   false,
		Error:     &errStr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Write outputs the indented JSON response. When highlight is set the JSON is
// colored with chroma.
func (r *JSONResponse) Write(w io.Writer, highlight bool) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	out := string(data) + "\n"
	if highlight {
		out = Highlight(out, "json")
	}
	_, err = io.WriteString(w, out)
	return err
}

// String returns the JSON response as a string.
func (r *JSONResponse) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"success":false,"error":"failed to marshal response: %s","timestamp":"%s"}`,
			err.Error(), time.Now().UTC().Format(time.RFC3339))
	}
	return string(data)
}

// =============================================================================
// COMMAND-SPECIFIC DATA STRUCTURES
// =============================================================================

// SectionData describes one section of a parsed message.
type SectionData struct {
	Index      int             `json:"index"`
	Text       string          `json:"text"`
	Components []ComponentData `json:"components"`
	Hover      *string         `json:"hover,omitempty"`
	Click      *ClickData      `json:"click,omitempty"`
	Insertion  *string         `json:"insertion,omitempty"`
}

// ComponentData describes one styled run of text.
type ComponentData struct {
	Text   string `json:"text"`
	Color  string `json:"color"`
	Styles string `json:"styles"`
}

// ClickData describes a click action.
type ClickData struct {
	Action string `json:"action"`
	Value  string `json:"value"`
}

// ParseData represents the data returned by the parse and inspect commands.
type ParseData struct {
	Raw      string        `json:"raw"`
	Plain    string        `json:"plain"`
	Width    int           `json:"width"`
	Sections []SectionData `json:"sections"`
}

// RenderData represents the data returned by the render command.
type RenderData struct {
	Format string `json:"format"`
	Output string `json:"output,omitempty"`
	Path   string `json:"path,omitempty"`
}

// ReplaceData represents the data returned by the replace command.
type ReplaceData struct {
	Goals   string    `json:"goals"`
	Changed bool      `json:"changed"`
	Result  string    `json:"result"`
	Diff    *DiffData `json:"diff,omitempty"`
}

// DiffData describes a section-level diff.
type DiffData struct {
	Added     int           `json:"added"`
	Removed   int           `json:"removed"`
	Unchanged int           `json:"unchanged"`
	Rows      []DiffRowData `json:"rows"`
}

// DiffRowData is one section of a diff.
type DiffRowData struct {
	Type string `json:"type"`
	Raw  string `json:"raw"`
}

// ContainsData represents the data returned by the contains command.
type ContainsData struct {
	Goals    string `json:"goals"`
	Target   string `json:"target"`
	Fold     bool   `json:"fold"`
	Contains bool   `json:"contains"`
}

// VersionData represents the data returned by the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version,omitempty"`
}

// NewParseData describes msg section by section.
func NewParseData(raw string, msg *model.Message) ParseData {
	data := ParseData{
		Raw:      raw,
		Plain:    msg.PlainText(),
		Width:    export.Width(msg),
		Sections: make([]SectionData, 0, msg.Len()),
	}
	for i, s := range msg.Sections() {
		sd := SectionData{
			Index:      i,
			Text:       s.PlainText(),
			Components: make([]ComponentData, 0, s.Len()),
		}
		for _, c := range s.Contents() {
			sd.Components = append(sd.Components, ComponentData{
				Text:   c.Text,
				Color:  c.Color.String(),
				Styles: c.Styles.String(),
			})
		}
		if h := s.Hover(); h != nil {
			text := h.PlainText()
			sd.Hover = &text
		}
		if c := s.Click(); c != nil {
			sd.Click = &ClickData{Action: c.Kind.String(), Value: c.Value}
		}
		if ins, ok := s.Insertion(); ok {
			sd.Insertion = &ins
		}
		data.Sections = append(data.Sections, sd)
	}
	return data
}

// NewDiffData converts a diff for JSON output.
func NewDiffData(d *diff.Diff) *DiffData {
	data := &DiffData{
		Added:     d.Stats.Added,
		Removed:   d.Stats.Removed,
		Unchanged: d.Stats.Unchanged,
		Rows:      make([]DiffRowData, 0, len(d.Rows)),
	}
	for _, r := range d.Rows {
		data.Rows = append(data.Rows, DiffRowData{Type: r.Type.String(), Raw: r.Raw})
	}
	return data
}
