// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/richchat/internal/logger"
	"github.com/jeranaias/richchat/internal/parser"
	"github.com/jeranaias/richchat/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete richchat configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Parsing of raw strings
	Parse ParseConfig `toml:"parse" json:"parse"`

	// Output rendering
	Render RenderConfig `toml:"render" json:"render"`

	// Message template catalog
	Catalog CatalogConfig `toml:"catalog" json:"catalog"`

	// Logging
	Log LogConfig `toml:"log" json:"log"`
}

// ParseConfig selects parse modes.
type ParseConfig struct {
	// ColorMode is "legacy" or "none".
	ColorMode string `toml:"color_mode" json:"color_mode"`

	// Tags enables the "||" tag grammar.
	Tags bool `toml:"tags" json:"tags"`

	// JSON decodes JSON component input.
	JSON bool `toml:"json" json:"json"`
}

// RenderConfig controls how messages are written out.
type RenderConfig struct {
	// Format is one of ansi, legacy, json, html, markdown, plain.
	Format string `toml:"format" json:"format"`

	// Theme is "dark" or "light".
	Theme string `toml:"theme" json:"theme"`

	// ColorProfile is auto, truecolor, ansi256, ansi or ascii.
	ColorProfile string `toml:"color_profile" json:"color_profile"`

	// Downsample snaps hex colors to the nearest palette code in legacy output.
	Downsample bool `toml:"downsample" json:"downsample"`

	// Annotate prints hover, click and insertion details under ANSI output.
	Annotate bool `toml:"annotate" json:"annotate"`

	// Width is the chat box width used for centering; 0 disables centering.
	Width int `toml:"width" json:"width"`
}

// CatalogConfig configures the message template catalog.
type CatalogConfig struct {
	// Dir holds *.toml template files.
	Dir string `toml:"dir" json:"dir"`

	// DatabasePath is the SQLite template store.
	DatabasePath string `toml:"database_path" json:"database_path"`

	// Watch reloads templates when files change.
	Watch bool `toml:"watch" json:"watch"`

	// DebounceMS coalesces bursts of file events.
	DebounceMS int `toml:"debounce_ms" json:"debounce_ms"`

	// MaxReloadsPerMinute throttles reloads.
	MaxReloadsPerMinute int `toml:"max_reloads_per_minute" json:"max_reloads_per_minute"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `toml:"level" json:"level"`

	// Development selects console output instead of JSON.
	Development bool `toml:"development" json:"development"`
}

// Accepted enumerations.
var (
	validFormats  = []string{"ansi", "legacy", "json", "html", "markdown", "plain"}
	validThemes   = []string{"dark", "light"}
	validProfiles = []string{"auto", "truecolor", "ansi256", "ansi", "ascii"}
)

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns the default configuration.
func Default() *Config {
	dir, err := ConfigDir()
	if err != nil {
		dir = ".richchat"
	}
	return &Config{
		Version: "1",
		Parse: ParseConfig{
			ColorMode: "legacy",
			Tags:      true,
		},
		Render: RenderConfig{
			Format:       "ansi",
			Theme:        "dark",
			ColorProfile: "auto",
		},
		Catalog: CatalogConfig{
			Dir:                 filepath.Join(dir, "catalog"),
			DatabasePath:        filepath.Join(dir, "templates.db"),
			DebounceMS:          250,
			MaxReloadsPerMinute: 30,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Options converts the parse settings, surfacing parser.ErrUnsupportedMode for
// unknown color modes.
func (p ParseConfig) Options() (parser.Options, error) {
	mode, err := parser.ParseModeName(p.ColorMode)
	if err != nil {
		return parser.Options{}, err
	}
	return parser.Options{ColorMode: mode, Tags: p.Tags, JSON: p.JSON}, nil
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the richchat configuration directory. RICHCHAT_HOME
// overrides the default ~/.richchat.
func ConfigDir() (string, error) {
	if dir := os.Getenv("RICHCHAT_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".richchat"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
//
// When a file exists but cannot be decoded, the defaults are returned together
// with the load error.
func Load() (*Config, error) {
	var loadErr error

	if path, err := ConfigPathTOML(); err == nil && fileExists(path) {
		cfg := Default()
		if err := LoadTOML(cfg, path); err != nil {
			loadErr = fmt.Errorf("failed to load TOML config: %w", err)
		} else {
			return finish(cfg)
		}
	}

	if path, err := ConfigPathJSON(); err == nil && fileExists(path) {
		cfg := Default()
		if err := LoadJSON(cfg, path); err != nil {
			loadErr = errors.Join(loadErr, fmt.Errorf("failed to load JSON config: %w", err))
		} else {
			return finish(cfg)
		}
	}

	cfg, err := finish(Default())
	if err != nil {
		return nil, err
	}
	return cfg, loadErr
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file, layered over the
// defaults, with environment overrides and validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finish(cfg)
}

// finish applies env overrides, fills defaults and validates.
func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes cfg as TOML with a header comment.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# richchat configuration file\n")
	buf.WriteString("# Generated by richchat - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON writes cfg as indented JSON.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if _, err := parser.ParseModeName(c.Parse.ColorMode); err != nil {
		errs = append(errs, ValidationError{"parse.color_mode", fmt.Sprintf("must be legacy or none, got %q", c.Parse.ColorMode)})
	}

	if !slices.Contains(validFormats, c.Render.Format) {
		errs = append(errs, ValidationError{"render.format", fmt.Sprintf("must be one of %s", strings.Join(validFormats, ", "))})
	}
	if !slices.Contains(validThemes, c.Render.Theme) {
		errs = append(errs, ValidationError{"render.theme", "must be dark or light"})
	}
	if !slices.Contains(validProfiles, c.Render.ColorProfile) {
		errs = append(errs, ValidationError{"render.color_profile", fmt.Sprintf("must be one of %s", strings.Join(validProfiles, ", "))})
	}
	if c.Render.Width < 0 || c.Render.Width > 1000 {
		errs = append(errs, ValidationError{"render.width", "must be between 0 and 1000"})
	}

	if c.Catalog.DebounceMS < 0 || c.Catalog.DebounceMS > 60000 {
		errs = append(errs, ValidationError{"catalog.debounce_ms", "must be between 0 and 60000"})
	}
	if c.Catalog.MaxReloadsPerMinute < 1 {
		errs = append(errs, ValidationError{"catalog.max_reloads_per_minute", "must be at least 1"})
	}

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, ValidationError{"log.level", "must be debug, info, warn or error"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills empty fields with default values. Booleans are left alone
// because false is a meaningful setting.
func (c *Config) SetDefaults() {
	d := Default()

	if c.Version == "" {
		c.Version = d.Version
	}
	if c.Parse.ColorMode == "" {
		c.Parse.ColorMode = d.Parse.ColorMode
	}
	if c.Render.Format == "" {
		c.Render.Format = d.Render.Format
	}
	if c.Render.Theme == "" {
		c.Render.Theme = d.Render.Theme
	}
	if c.Render.ColorProfile == "" {
		c.Render.ColorProfile = d.Render.ColorProfile
	}
	if c.Catalog.Dir == "" {
		c.Catalog.Dir = d.Catalog.Dir
	}
	if c.Catalog.DatabasePath == "" {
		c.Catalog.DatabasePath = d.Catalog.DatabasePath
	}
	if c.Catalog.MaxReloadsPerMinute == 0 {
		c.Catalog.MaxReloadsPerMinute = d.Catalog.MaxReloadsPerMinute
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - RICHCHAT_COLOR_MODE: overrides parse.color_mode
//   - RICHCHAT_TAGS: "1"/"true" enables the tag grammar, anything else disables it
//   - RICHCHAT_JSON: enables JSON component input
//   - RICHCHAT_FORMAT: overrides render.format
//   - RICHCHAT_THEME: overrides render.theme
//   - RICHCHAT_CATALOG_DIR: overrides catalog.dir
//   - RICHCHAT_DB: overrides catalog.database_path
//   - RICHCHAT_LOG_LEVEL: overrides log.level
//   - RICHCHAT_DEBUG: enables development logging at debug level
//   - NO_COLOR: forces the ascii color profile
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("RICHCHAT_COLOR_MODE"); v != "" {
		c.Parse.ColorMode = v
	}
	if v := os.Getenv("RICHCHAT_TAGS"); v != "" {
		c.Parse.Tags = truthy(v)
	}
	if v := os.Getenv("RICHCHAT_JSON"); v != "" {
		c.Parse.JSON = truthy(v)
	}
	if v := os.Getenv("RICHCHAT_FORMAT"); v != "" {
		c.Render.Format = v
	}
	if v := os.Getenv("RICHCHAT_THEME"); v != "" {
		c.Render.Theme = v
	}
	if v := os.Getenv("RICHCHAT_CATALOG_DIR"); v != "" {
		c.Catalog.Dir = v
	}
	if v := os.Getenv("RICHCHAT_DB"); v != "" {
		c.Catalog.DatabasePath = v
	}
	if v := os.Getenv("RICHCHAT_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("RICHCHAT_DEBUG"); truthy(v) {
		c.Log.Development = true
		c.Log.Level = "debug"
	}
	// https://no-color.org: any non-empty value.
	if os.Getenv("NO_COLOR") != "" {
		c.Render.ColorProfile = "ascii"
	}
}

func truthy(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "1" || v == "true" || v == "yes"
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "render.format").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation. String values are
// converted to the field's type.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

// lookup walks dotted key parts through nested structs.
func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Bool:
			field.SetBool(truthy(strVal))
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all configuration keys in dot notation, in declaration
// order, using the TOML names.
func GetAllKeys() []string {
	var keys []string
	var walk func(t reflect.Type, prefix string)
	walk = func(t reflect.Type, prefix string) {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := strings.Split(f.Tag.Get("toml"), ",")[0]
			if name == "" || name == "-" {
				continue
			}
			if f.Type.Kind() == reflect.Struct {
				walk(f.Type, prefix+name+".")
				continue
			}
			keys = append(keys, prefix+name)
		}
	}
	walk(reflect.TypeOf(Config{}), "")
	return keys
}

// Clone returns a copy of the configuration. Config holds only value fields,
// so a struct copy is deep.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns the configuration as indented JSON.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access and falls back to defaults. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		if cfg == nil {
			cfg = Default()
		}
		globalConfigMu.Lock()
		globalConfig = cfg
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	SetGlobal(cfg)
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
