// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/jeranaias/richchat/internal/config"
	"github.com/jeranaias/richchat/internal/manipulate"
	"github.com/jeranaias/richchat/internal/model"
	"github.com/jeranaias/richchat/internal/parser"
	"github.com/jeranaias/richchat/internal/storage"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNotFound        = errors.New("catalog: template not found")
	ErrInvalidTemplate = errors.New("catalog: invalid template")
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures a Catalog.
type Options struct {
	// Dir is the directory scanned by LoadDir and watched by Watch.
	Dir string

	// Store mirrors loaded templates when set. The catalog does not own it.
	Store *storage.TemplateStore

	// Parse controls how templates are parsed.
	Parse parser.Options

	// Debounce is how long a file must be quiet before it is reloaded.
	Debounce time.Duration

	// MaxReloadsPerMinute throttles reload batches while watching.
	MaxReloadsPerMinute int

	// OnReload is called after each reload batch made by Watch.
	OnReload func(files []string, err error)

	// Logger receives load and watch diagnostics. Nil uses zap.L().
	Logger *zap.Logger
}

// DefaultOptions returns options for dir with the default parser settings.
func DefaultOptions(dir string) Options {
	return Options{
		Dir:                 dir,
		Parse:               parser.DefaultOptions(),
		Debounce:            250 * time.Millisecond,
		MaxReloadsPerMinute: 30,
	}
}

// OptionsFromConfig builds catalog options from the configuration.
func OptionsFromConfig(cfg *config.Config, store *storage.TemplateStore) (Options, error) {
	popts, err := cfg.Parse.Options()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Dir:                 cfg.Catalog.Dir,
		Store:               store,
		Parse:               popts,
		Debounce:            time.Duration(cfg.Catalog.DebounceMS) * time.Millisecond,
		MaxReloadsPerMinute: cfg.Catalog.MaxReloadsPerMinute,
	}, nil
}

// =============================================================================
// CATALOG
// =============================================================================

type entry struct {
	raw    string
	source string
	msg    *model.Message
}

// Catalog holds parsed message templates keyed by dotted name.
type Catalog struct {
	opts    Options
	log     *zap.Logger
	mu      sync.RWMutex
	entries map[string]entry
}

// New creates an empty catalog.
func New(opts Options) (*Catalog, error) {
	if err := opts.Parse.Validate(); err != nil {
		return nil, err
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 250 * time.Millisecond
	}
	if opts.MaxReloadsPerMinute <= 0 {
		opts.MaxReloadsPerMinute = 30
	}
	log := opts.Logger
	if log == nil {
		log = zap.L()
	}
	return &Catalog{
		opts:    opts,
		log:     log.Named("catalog"),
		entries: make(map[string]entry),
	}, nil
}

// LoadDir loads every *.toml file under the catalog directory. A broken file
// does not stop the others from loading; all failures are returned joined.
func (c *Catalog) LoadDir() error {
	if c.opts.Dir == "" {
		return fmt.Errorf("catalog: no directory configured")
	}

	var errs []error
	err := filepath.WalkDir(c.opts.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if d.IsDir() || !isTemplateFile(path) {
			return nil
		}
		if err := c.LoadFile(path); err != nil {
			errs = append(errs, err)
		}
		return nil
	})
	if err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// LoadFile parses one TOML file and makes its templates the complete set for
// that file. Nested tables become dotted keys. A file with any invalid value
// changes nothing.
func (c *Catalog) LoadFile(path string) error {
	var doc map[string]any
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidTemplate, path, err)
	}

	raws := make(map[string]string)
	if err := flatten("", doc, raws); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidTemplate, path, err)
	}

	source := c.source(path)
	loaded := make(map[string]entry, len(raws))
	for key, raw := range raws {
		msg, err := parser.Parse(raw, c.opts.Parse)
		if err != nil {
			return fmt.Errorf("%w: %s: %s: %v", ErrInvalidTemplate, path, key, err)
		}
		loaded[key] = entry{raw: raw, source: source, msg: msg}
	}

	if c.opts.Store != nil {
		templates := make([]storage.Template, 0, len(loaded))
		for _, key := range sortedKeys(loaded) {
			e := loaded[key]
			templates = append(templates, storage.Template{Key: key, Raw: e.raw, Plain: e.msg.PlainText()})
		}
		if _, err := c.opts.Store.ReplaceSource(source, templates); err != nil {
			return fmt.Errorf("catalog: store %s: %w", path, err)
		}
	}

	c.mu.Lock()
	for key, e := range c.entries {
		if e.source == source {
			delete(c.entries, key)
		}
	}
	for key, e := range loaded {
		if prev, ok := c.entries[key]; ok && prev.source != source {
			c.log.Warn("template key redefined",
				zap.String("key", key),
				zap.String("previous", prev.source),
				zap.String("source", source))
		}
		c.entries[key] = e
	}
	c.mu.Unlock()

	c.log.Debug("loaded templates", zap.String("file", source), zap.Int("count", len(loaded)))
	return nil
}

// Remove drops every template loaded from path.
func (c *Catalog) Remove(path string) error {
	source := c.source(path)

	c.mu.Lock()
	removed := 0
	for key, e := range c.entries {
		if e.source == source {
			delete(c.entries, key)
			removed++
		}
	}
	c.mu.Unlock()

	if c.opts.Store != nil {
		if _, err := c.opts.Store.DeleteSource(source); err != nil {
			return fmt.Errorf("catalog: store %s: %w", path, err)
		}
	}
	c.log.Debug("removed templates", zap.String("file", source), zap.Int("count", removed))
	return nil
}

// =============================================================================
// LOOKUP
// =============================================================================

// Get returns the parsed message for key.
func (c *Catalog) Get(key string) (*model.Message, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return e.msg, nil
}

// Raw returns the unparsed template text for key.
func (c *Catalog) Raw(key string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return e.raw, nil
}

// Render returns the message for key with every "{name}" placeholder
// replaced in content, hover, click values and insertions. Values are
// inserted as literal text and are not parsed for markers. When no
// placeholder occurs the cached message itself is returned.
func (c *Catalog) Render(key string, placeholders map[string]string) (*model.Message, error) {
	msg, err := c.Get(key)
	if err != nil {
		return nil, err
	}
	if len(placeholders) == 0 {
		return msg, nil
	}

	names := make([]string, 0, len(placeholders))
	for name := range placeholders {
		names = append(names, name)
	}
	sort.Strings(names)
	pairs := make([]string, 0, 2*len(names))
	for _, name := range names {
		pairs = append(pairs, "{"+name+"}", placeholders[name])
	}

	m, err := manipulate.ForMessage(msg, manipulate.AllGoals)
	if err != nil {
		return nil, err
	}
	return m.ReplaceAll(pairs...)
}

// Keys returns every loaded key in sorted order.
func (c *Catalog) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedKeys(c.entries)
}

// Len returns the number of loaded templates.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Search returns the sorted keys whose name or visible text contains text,
// ignoring case. It queries the store when one is configured.
func (c *Catalog) Search(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}

	if c.opts.Store != nil {
		hits, err := c.opts.Store.Search(text)
		if err != nil {
			return nil, err
		}
		keys := make([]string, 0, len(hits))
		for _, t := range hits {
			keys = append(keys, t.Key)
		}
		return keys, nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := []string{}
	for _, key := range sortedKeys(c.entries) {
		if strings.Contains(strings.ToLower(key), strings.ToLower(text)) {
			keys = append(keys, key)
			continue
		}
		m, err := manipulate.ForMessage(c.entries[key].msg, manipulate.PlainContent)
		if err != nil {
			return nil, err
		}
		if ok, _ := m.ContainsFold(text); ok {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// =============================================================================
// HELPERS
// =============================================================================

// flatten walks a decoded TOML document. Every leaf must be a string.
func flatten(prefix string, doc map[string]any, out map[string]string) error {
	for k, v := range doc {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			out[key] = val
		case map[string]any:
			if err := flatten(key, val, out); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%s: expected a string or table, got %T", key, v)
		}
	}
	return nil
}

// source names path relative to the catalog directory when it lies inside it.
func (c *Catalog) source(path string) string {
	if c.opts.Dir != "" {
		if rel, err := filepath.Rel(c.opts.Dir, path); err == nil && !strings.HasPrefix(rel, "..") {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(filepath.Clean(path))
}

func isTemplateFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
