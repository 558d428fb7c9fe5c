package config

import (
	"context"
	"encoding/json"
	"hash/fnv"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"mcqbot/pkg/logx"
)

// Watcher reloads the YAML config when the file changes on disk.
// Serve mode uses it so schedule or window edits take effect without a
// restart. Invalid edits are rejected and the previous config stays
// active.
type Watcher struct {
	path string
	log  logx.Logger

	mu       sync.Mutex
	lastHash uint64
}

func NewWatcher(path string, log logx.Logger) *Watcher {
	return &Watcher{path: path, log: log}
}

// Watch blocks until ctx is done, invoking apply with each config that
// parses, validates, and differs from the last applied one. Editors
// produce bursts of write events, so reloads are debounced.
func (w *Watcher) Watch(ctx context.Context, apply func(*Config)) error {
	dir := filepath.Dir(w.path)
	file := filepath.Base(w.path)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()
	if err := fw.Add(dir); err != nil {
		return err
	}

	var (
		timerMu sync.Mutex
		timer   *time.Timer
	)
	// A debounced reload must not fire after Watch has returned.
	defer func() {
		timerMu.Lock()
		if timer != nil {
			timer.Stop()
		}
		timerMu.Unlock()
	}()
	reload := func() {
		cfg, err := Load(w.path)
		if err != nil {
			w.log.Warn("config rejected", logx.String("path", w.path), logx.Err(err))
			return
		}

		h := hashConfig(cfg)
		w.mu.Lock()
		unchanged := h != 0 && h == w.lastHash
		if !unchanged {
			w.lastHash = h
		}
		w.mu.Unlock()
		if unchanged {
			w.log.Debug("config unchanged; skipping reload", logx.String("path", w.path))
			return
		}

		w.log.Info("config reloaded", logx.String("path", w.path))
		apply(cfg)
	}
	debounce := func() {
		timerMu.Lock()
		defer timerMu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(250*time.Millisecond, reload)
	}

	// Seed the hash with the currently running config so an untouched
	// file does not trigger a spurious apply on the first event.
	if cfg, err := Load(w.path); err == nil {
		w.mu.Lock()
		w.lastHash = hashConfig(cfg)
		w.mu.Unlock()
	}

	w.log.Debug("config watcher started", logx.String("dir", dir), logx.String("file", file))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			// Compare by basename; editors rename/replace on save.
			if strings.EqualFold(filepath.Base(ev.Name), file) {
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Chmod) != 0 {
					debounce()
				}
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			if err != nil {
				w.log.Warn("config watch error", logx.Err(err), logx.String("dir", dir))
			}
		}
	}
}

func hashConfig(cfg *Config) uint64 {
	if cfg == nil {
		return 0
	}
	b, err := json.Marshal(cfg)
	if err != nil {
		return 0
	}
	h := fnv.New64a()
	h.Write(b)
	return h.Sum64()
}
