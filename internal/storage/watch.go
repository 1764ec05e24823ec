package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"longautotyper/internal/core/model"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// Watcher reloads the settings file when it is edited outside the app.
type Watcher struct {
	store  *Store
	logger *slog.Logger

	mu       sync.Mutex
	onChange []func(model.Settings)
	watcher  *fsnotify.Watcher
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewWatcher returns a watcher for the store's file. Call Start to begin.
func NewWatcher(store *Store, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{store: store, logger: logger, ctx: ctx, cancel: cancel}
}

// OnChange registers a callback for reloaded settings. Callbacks run on the
// watcher goroutine.
func (watcher *Watcher) OnChange(callback func(model.Settings)) {
	watcher.mu.Lock()
	defer watcher.mu.Unlock()
	watcher.onChange = append(watcher.onChange, callback)
}

// Start watches the directory holding the settings file, creating it if needed.
func (watcher *Watcher) Start() error {
	dir := filepath.Dir(watcher.store.Path())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return fmt.Errorf("watch directory: %w", err)
	}

	watcher.mu.Lock()
	watcher.watcher = fsWatcher
	watcher.mu.Unlock()

	go watcher.loop(fsWatcher)
	return nil
}

// Close stops watching.
func (watcher *Watcher) Close() error {
	watcher.cancel()
	watcher.mu.Lock()
	fsWatcher := watcher.watcher
	watcher.watcher = nil
	watcher.mu.Unlock()
	if fsWatcher == nil {
		return nil
	}
	return fsWatcher.Close()
}

func (watcher *Watcher) loop(fsWatcher *fsnotify.Watcher) {
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	fileName := filepath.Base(watcher.store.Path())
	for {
		select {
		case <-watcher.ctx.Done():
			return

		case event, ok := <-fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != fileName {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(reloadDebounce, watcher.reload)

		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return
			}
			watcher.logger.Warn("settings watcher error", "error", err)
		}
	}
}

func (watcher *Watcher) reload() {
	if watcher.ctx.Err() != nil {
		return
	}
	rawData, err := os.ReadFile(watcher.store.Path())
	if err != nil {
		watcher.logger.Warn("settings reload failed", "error", err)
		return
	}
	if watcher.store.savedByUs(rawData) {
		return
	}
	settings, err := decodeSettings(rawData)
	if err != nil {
		watcher.logger.Warn("settings reload failed", "error", err)
		return
	}

	watcher.logger.Info("settings reloaded", "path", watcher.store.Path())
	watcher.mu.Lock()
	callbacks := append(([]func(model.Settings))(nil), watcher.onChange...)
	watcher.mu.Unlock()
	for _, callback := range callbacks {
		callback(settings)
	}
}
