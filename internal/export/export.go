// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/jeranaias/richchat/internal/config"
	"github.com/jeranaias/richchat/internal/model"
	"github.com/jeranaias/richchat/internal/util"
)

// Export errors.
var (
	ErrNilMessage         = errors.New("export: message is nil")
	ErrUnsupportedFormat  = errors.New("export: unsupported format")
	ErrUnsupportedProfile = errors.New("export: unsupported color profile")
)

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter defines the interface for message exporters.
type Exporter interface {
	// Export converts a message to the target format and returns the content.
	Export(msg *model.Message) ([]byte, error)

	// FileExtension returns the appropriate file extension (e.g., ".md", ".html").
	FileExtension() string

	// MimeType returns the MIME type for the exported format.
	MimeType() string
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is the directory where files will be saved.
	// Default: current working directory
	OutputDir string

	// Name is the base file name without extension. Empty derives one from
	// the message text and the current time.
	Name string

	// OpenAfterExport opens the file in the default application.
	OpenAfterExport bool

	// IncludeMetadata adds a generator header to HTML and Markdown output.
	IncludeMetadata bool

	// Theme for HTML and ANSI export ("light" or "dark").
	// Default: "dark"
	Theme string

	// Profile is the terminal color profile used by the ANSI exporter.
	Profile termenv.Profile

	// Tags writes hover, click and insertion tags in legacy output.
	Tags bool

	// Downsample snaps hex colors to palette codes in legacy output.
	Downsample bool

	// Annotate lists hover, click and insertion details under ANSI output.
	Annotate bool
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:       ".",
		IncludeMetadata: true,
		Theme:           "dark",
		Profile:         termenv.TrueColor,
		Tags:            true,
	}
}

// FromConfig builds options from the render section of the configuration.
func FromConfig(rc config.RenderConfig, tags bool) (*Options, error) {
	profile, err := ParseProfile(rc.ColorProfile)
	if err != nil {
		return nil, err
	}
	opts := DefaultOptions()
	opts.Theme = rc.Theme
	opts.Profile = profile
	opts.Tags = tags
	opts.Downsample = rc.Downsample
	opts.Annotate = rc.Annotate
	return opts, nil
}

// ParseProfile maps a configured profile name to a termenv profile. "auto"
// asks the environment.
func ParseProfile(name string) (termenv.Profile, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return termenv.EnvColorProfile(), nil
	case "truecolor":
		return termenv.TrueColor, nil
	case "ansi256":
		return termenv.ANSI256, nil
	case "ansi":
		return termenv.ANSI, nil
	case "ascii", "none":
		return termenv.Ascii, nil
	}
	return termenv.Ascii, fmt.Errorf("%w: %q", ErrUnsupportedProfile, name)
}

// =============================================================================
// FORMAT REGISTRY
// =============================================================================

// Formats lists the canonical format names accepted by ForFormat.
func Formats() []string {
	return []string{"ansi", "legacy", "json", "html", "markdown", "plain"}
}

// ForFormat returns the exporter for a format name. Common aliases such as
// "md" and "txt" are accepted.
func ForFormat(name string, opts *Options) (Exporter, error) {
	switch strings.ToLower(name) {
	case "ansi", "terminal":
		return NewANSIExporter(opts), nil
	case "legacy", "raw":
		return NewLegacyExporter(opts), nil
	case "json":
		return NewJSONExporter(opts), nil
	case "html", "htm":
		return NewHTMLExporter(opts), nil
	case "markdown", "md":
		return NewMarkdownExporter(opts), nil
	case "plain", "text", "txt":
		return NewPlainExporter(opts), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ExportToFile exports a message to a file using the specified exporter.
// Returns the output file path or an error.
func ExportToFile(msg *model.Message, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	content, err := exporter.Export(msg)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	name := opts.Name
	if name == "" {
		name = fmt.Sprintf("message_%s_%s",
			sanitizeFilename(util.TruncateRunes(msg.PlainText(), 40)),
			time.Now().Format("20060102_150405"),
		)
	}
	outputPath := filepath.Join(opts.OutputDir, name+exporter.FileExtension())

	if err := util.AtomicWriteFileWithDir(outputPath, content, 0644, 0755); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	if opts.OpenAfterExport {
		if err := openFile(outputPath); err != nil {
			// Non-fatal - file was still created successfully
			return outputPath, fmt.Errorf("open %s: %w", outputPath, err)
		}
	}

	return outputPath, nil
}

// =============================================================================
// LAYOUT HELPERS
// =============================================================================

// Width returns the display width of the widest line of msg's plain text.
func Width(msg *model.Message) int {
	widest := 0
	for _, line := range strings.Split(msg.PlainText(), "\n") {
		if w := runewidth.StringWidth(line); w > widest {
			widest = w
		}
	}
	return widest
}

// Center returns the left padding that centers msg in a chat box of the
// given width. It is empty when the message does not fit.
func Center(msg *model.Message, width int) string {
	pad := (width - Width(msg)) / 2
	if pad <= 0 {
		return ""
	}
	return strings.Repeat(" ", pad)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// sanitizeFilename removes or replaces characters that are invalid in filenames.
func sanitizeFilename(s string) string {
	replacer := map[rune]rune{
		'/':  '-',
		'\\': '-',
		':':  '-',
		'*':  '-',
		'?':  '-',
		'"':  '-',
		'<':  '-',
		'>':  '-',
		'|':  '-',
		' ':  '_',
		'\t': '_',
		'\n': '_',
		'\r': '_',
	}

	result := []rune{}
	for _, r := range s {
		if replacement, found := replacer[r]; found {
			result = append(result, replacement)
		} else if r < 32 || r == 127 {
			result = append(result, '-')
		} else {
			result = append(result, r)
		}
	}

	if len(result) == 0 {
		return "empty"
	}

	return string(result)
}

// openFile opens a file in the default application for the OS.
func openFile(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", `""`, path)
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
