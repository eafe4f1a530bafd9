// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jeranaias/richchat/internal/action"
	"github.com/jeranaias/richchat/internal/config"
	"github.com/jeranaias/richchat/internal/storage"
)

const greetings = `
[greet]
welcome = "&aWelcome, {player}!||ttp:&7Joined {server}"
bye = "&cBye"

[greet.help]
link = "Help||url:https://example.com/{page}"
`

func newCatalog(t *testing.T, dir string, store *storage.TemplateStore) *Catalog {
	t.Helper()
	opts := DefaultOptions(dir)
	opts.Store = store
	opts.Logger = zap.NewNop()
	c, err := New(opts)
	require.NoError(t, err)
	return c
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// =============================================================================
// LOAD TESTS
// =============================================================================

func TestLoadFile_FlattensTables(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "greetings.toml")
	writeFile(t, path, greetings)

	c := newCatalog(t, dir, nil)
	require.NoError(t, c.LoadFile(path))

	assert.Equal(t, []string{"greet.bye", "greet.help.link", "greet.welcome"}, c.Keys())
	assert.Equal(t, 3, c.Len())

	msg, err := c.Get("greet.bye")
	require.NoError(t, err)
	assert.Equal(t, "Bye", msg.PlainText())

	raw, err := c.Raw("greet.bye")
	require.NoError(t, err)
	assert.Equal(t, "&cBye", raw)
}

func TestLoadFile_Invalid(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "a.toml")
	writeFile(t, good, `hi = "hello"`)

	c := newCatalog(t, dir, nil)
	require.NoError(t, c.LoadFile(good))

	writeFile(t, good, `hi = 3`)
	require.ErrorIs(t, c.LoadFile(good), ErrInvalidTemplate)
	// The previous contents stay loaded.
	msg, err := c.Get("hi")
	require.NoError(t, err)
	assert.Equal(t, "hello", msg.PlainText())

	broken := filepath.Join(dir, "b.toml")
	writeFile(t, broken, `this is not toml`)
	require.ErrorIs(t, c.LoadFile(broken), ErrInvalidTemplate)
}

func TestLoadFile_ReloadDropsRemovedKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.toml")
	writeFile(t, path, "one = \"1\"\ntwo = \"2\"")

	c := newCatalog(t, dir, nil)
	require.NoError(t, c.LoadFile(path))
	writeFile(t, path, `one = "uno"`)
	require.NoError(t, c.LoadFile(path))

	assert.Equal(t, []string{"one"}, c.Keys())
	_, err := c.Get("two")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.toml"), `a = "A"`)
	writeFile(t, filepath.Join(dir, "sub", "b.toml"), `b = "B"`)
	writeFile(t, filepath.Join(dir, "notes.txt"), `ignored`)
	writeFile(t, filepath.Join(dir, "bad.toml"), `x = [1, 2]`)

	c := newCatalog(t, dir, nil)
	err := c.LoadDir()
	require.ErrorIs(t, err, ErrInvalidTemplate)
	assert.Equal(t, []string{"a", "b"}, c.Keys())
}

func TestLoadDir_NoDirectory(t *testing.T) {
	c := newCatalog(t, "", nil)
	require.Error(t, c.LoadDir())
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.toml")
	writeFile(t, path, `a = "A"`)

	c := newCatalog(t, dir, nil)
	require.NoError(t, c.LoadFile(path))
	require.NoError(t, c.Remove(path))
	assert.Empty(t, c.Keys())
}

// =============================================================================
// RENDER AND SEARCH TESTS
// =============================================================================

func TestRender(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "greetings.toml")
	writeFile(t, path, greetings)
	c := newCatalog(t, dir, nil)
	require.NoError(t, c.LoadFile(path))

	msg, err := c.Render("greet.welcome", map[string]string{"player": "Steve", "server": "Hub"})
	require.NoError(t, err)
	assert.Equal(t, "Welcome, Steve!", msg.PlainText())
	require.NotNil(t, msg.Section(0).Hover())
	assert.Equal(t, "Joined Hub", msg.Section(0).Hover().PlainText())

	link, err := c.Render("greet.help.link", map[string]string{"page": "faq"})
	require.NoError(t, err)
	assert.Equal(t, &action.Click{Kind: action.OpenURL, Value: "https://example.com/faq"}, link.Section(0).Click())
}

func TestRender_ValuesAreLiteral(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.toml")
	writeFile(t, path, `hi = "Hi {name}"`)
	c := newCatalog(t, dir, nil)
	require.NoError(t, c.LoadFile(path))

	msg, err := c.Render("hi", map[string]string{"name": "&cBob"})
	require.NoError(t, err)
	assert.Equal(t, "Hi &cBob", msg.PlainText())
}

func TestRender_IdentityWhenNothingMatches(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.toml")
	writeFile(t, path, `hi = "Hi"`)
	c := newCatalog(t, dir, nil)
	require.NoError(t, c.LoadFile(path))

	cached, err := c.Get("hi")
	require.NoError(t, err)

	same, err := c.Render("hi", map[string]string{"name": "x"})
	require.NoError(t, err)
	assert.Same(t, cached, same)

	same, err = c.Render("hi", nil)
	require.NoError(t, err)
	assert.Same(t, cached, same)

	_, err = c.Render("missing", nil)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSearch_InMemory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "greetings.toml")
	writeFile(t, path, greetings)
	c := newCatalog(t, dir, nil)
	require.NoError(t, c.LoadFile(path))

	keys, err := c.Search("WELCOME")
	require.NoError(t, err)
	assert.Equal(t, []string{"greet.welcome"}, keys)

	keys, err = c.Search("help")
	require.NoError(t, err)
	assert.Equal(t, []string{"greet.help.link"}, keys)

	keys, err = c.Search("")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestStoreMirror(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	defer store.Close()

	path := filepath.Join(dir, "sub", "greetings.toml")
	writeFile(t, path, greetings)
	c := newCatalog(t, dir, store)
	require.NoError(t, c.LoadFile(path))

	stored, err := store.Get("greet.welcome")
	require.NoError(t, err)
	assert.Equal(t, "sub/greetings.toml", stored.Source)
	assert.Equal(t, "Welcome, {player}!", stored.Plain)

	keys, err := c.Search("bye")
	require.NoError(t, err)
	assert.Equal(t, []string{"greet.bye"}, keys)

	require.NoError(t, c.Remove(path))
	n, err := store.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Catalog.DebounceMS = 40
	opts, err := OptionsFromConfig(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 40*time.Millisecond, opts.Debounce)
	assert.Equal(t, cfg.Catalog.Dir, opts.Dir)
	assert.True(t, opts.Parse.Tags)
}

// =============================================================================
// WATCH TESTS
// =============================================================================

func TestWatch_ReloadsAndRemoves(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultOptions(dir)
	opts.Logger = zap.NewNop()
	opts.Debounce = 20 * time.Millisecond
	opts.MaxReloadsPerMinute = 6000
	c, err := New(opts)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Watch(ctx) }()

	path := filepath.Join(dir, "live.toml")
	require.Eventually(t, func() bool {
		if _, err := c.Get("live"); err == nil {
			return true
		}
		writeFile(t, path, `live = "&aon"`)
		return false
	}, 5*time.Second, 200*time.Millisecond)

	require.NoError(t, os.Remove(path))
	require.Eventually(t, func() bool {
		_, err := c.Get("live")
		return err != nil
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatch_NoDirectory(t *testing.T) {
	c := newCatalog(t, "", nil)
	require.Error(t, c.Watch(context.Background()))
}

func TestWatchNewDir_LogsFailure(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	opts := DefaultOptions(t.TempDir())
	opts.Logger = zap.New(core)
	c, err := New(opts)
	require.NoError(t, err)

	fw, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer fw.Close()

	w := &watcher{cat: c, fs: fw, pending: make(map[string]time.Time)}
	missing := filepath.Join(t.TempDir(), "gone")
	w.watchNewDir(missing)

	entries := logs.FilterMessage("cannot watch new directory").All()
	require.Len(t, entries, 1)
	assert.Equal(t, missing, entries[0].ContextMap()["dir"])
	assert.Contains(t, entries[0].ContextMap(), "error")

	sub := filepath.Join(opts.Dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0755))
	w.watchNewDir(sub)
	assert.Len(t, logs.FilterMessage("cannot watch new directory").All(), 1)
	assert.Contains(t, fw.WatchList(), sub)
}
