// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// =============================================================================
// WATCHER
// =============================================================================

// watcher debounces file events and reloads changed catalog files.
type watcher struct {
	cat      *Catalog
	fs       *fsnotify.Watcher
	limiter  *rate.Limiter
	debounce time.Duration
	mu       sync.Mutex
	pending  map[string]time.Time // File path -> last change time
}

// Watch reloads catalog files as they change until ctx is cancelled. Bursts
// of events for one file are debounced, and reload batches are throttled to
// MaxReloadsPerMinute. Watch returns nil when ctx ends.
func (c *Catalog) Watch(ctx context.Context) error {
	if c.opts.Dir == "" {
		return errors.New("catalog: no directory configured")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	w := &watcher{
		cat:      c,
		fs:       fw,
		limiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(c.opts.MaxReloadsPerMinute)), 1),
		debounce: c.opts.Debounce,
		pending:  make(map[string]time.Time),
	}
	if err := w.addRecursive(c.opts.Dir); err != nil {
		return err
	}
	c.log.Info("watching catalog", zap.String("dir", c.opts.Dir))

	done := make(chan struct{})
	go func() {
		defer close(done)
		w.processPending(ctx)
	}()
	w.processEvents(ctx)
	<-done
	return nil
}

// addRecursive adds a directory and all its subdirectories to the watch list
func (w *watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil // Skip errors below the root
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fs.Add(path); err != nil {
			w.cat.log.Warn("cannot watch directory", zap.String("dir", path), zap.Error(err))
		}
		return nil
	})
}

// watchNewDir starts watching a directory created under the catalog root.
func (w *watcher) watchNewDir(dir string) {
	if err := w.addRecursive(dir); err != nil {
		w.cat.log.Warn("cannot watch new directory", zap.String("dir", dir), zap.Error(err))
	}
}

// processEvents records file events until ctx ends or the watcher closes.
func (w *watcher) processEvents(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			w.cat.log.Error("catalog watcher panic", zap.Any("panic", r))
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					w.watchNewDir(event.Name)
					continue
				}
			}
			if !isTemplateFile(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				w.touch(event.Name)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.cat.log.Warn("catalog watcher error", zap.Error(err))
		}
	}
}

func (w *watcher) touch(path string) {
	w.mu.Lock()
	w.pending[path] = time.Now()
	w.mu.Unlock()
}

// processPending reloads files that have been quiet for the debounce period.
func (w *watcher) processPending(ctx context.Context) {
	ticker := time.NewTicker(w.tick())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			due := w.due(time.Now())
			if len(due) == 0 {
				continue
			}
			if err := w.limiter.Wait(ctx); err != nil {
				return
			}
			w.reload(due)
		}
	}
}

// tick polls at a fraction of the debounce period, bounded to stay responsive.
func (w *watcher) tick() time.Duration {
	t := w.debounce / 4
	if t < 10*time.Millisecond {
		t = 10 * time.Millisecond
	}
	if t > 100*time.Millisecond {
		t = 100 * time.Millisecond
	}
	return t
}

func (w *watcher) due(now time.Time) []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	var paths []string
	for path, changed := range w.pending {
		if now.Sub(changed) >= w.debounce {
			paths = append(paths, path)
			delete(w.pending, path)
		}
	}
	sort.Strings(paths)
	return paths
}

// reload applies one batch. Files that no longer exist are removed.
func (w *watcher) reload(paths []string) {
	var errs []error
	for _, path := range paths {
		var err error
		if fileExists(path) {
			err = w.cat.LoadFile(path)
		} else {
			err = w.cat.Remove(path)
		}
		if err != nil {
			w.cat.log.Warn("catalog reload failed", zap.String("file", path), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		w.cat.log.Info("catalog reloaded", zap.String("file", path))
	}
	if w.cat.opts.OnReload != nil {
		w.cat.opts.OnReload(paths, errors.Join(errs...))
	}
}
