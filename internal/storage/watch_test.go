package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"longautotyper/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReloadsOutsideEdits(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "settings.yaml"))
	require.NoError(t, store.Save(model.DefaultSettings()))

	watcher := NewWatcher(store, nil)
	changes := make(chan model.Settings, 4)
	watcher.OnChange(func(settings model.Settings) { changes <- settings })
	require.NoError(t, watcher.Start())
	defer watcher.Close()

	require.NoError(t, os.WriteFile(store.Path(), []byte("manual_text: from editor\ncountdown_seconds: 2\n"), 0o644))

	select {
	case settings := <-changes:
		assert.Equal(t, "from editor", settings.ManualText)
		assert.Equal(t, 2, settings.CountdownSeconds)
	case <-time.After(3 * time.Second):
		t.Fatal("settings change not observed")
	}
}

func TestWatcherIgnoresOwnSaves(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "settings.yaml"))
	watcher := NewWatcher(store, nil)
	changes := make(chan model.Settings, 4)
	watcher.OnChange(func(settings model.Settings) { changes <- settings })
	require.NoError(t, watcher.Start())
	defer watcher.Close()

	settings := model.DefaultSettings()
	settings.ManualText = "saved in app"
	require.NoError(t, store.Save(settings))

	select {
	case <-changes:
		t.Fatal("own save reported as outside edit")
	case <-time.After(4 * reloadDebounce):
	}
}
