package storage

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"longautotyper/internal/core/model"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	ManualText       string   `yaml:"manual_text"`
	KeyDelaySeconds  *float64 `yaml:"key_delay_seconds"`
	CountdownSeconds *int     `yaml:"countdown_seconds"`
	StartHotkey      string   `yaml:"start_hotkey"`
	StopHotkey       string   `yaml:"stop_hotkey"`
	LogLevel         string   `yaml:"log_level,omitempty"`
}

// LoadSettingsFrom reads user preferences from path.
func LoadSettingsFrom(path string) (model.Settings, error) {
	settings := model.DefaultSettings()
	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}
	return decodeSettings(rawData)
}

// SaveSettingsTo writes user preferences to path.
func SaveSettingsTo(path string, settings model.Settings) error {
	_, err := writeSettings(path, settings)
	return err
}

// ResolveConfigPath returns <user config dir>/<appName>/settings.yaml.
func ResolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// Store persists settings to a single file and remembers what it wrote last,
// so a Watcher can tell its own saves from outside edits.
type Store struct {
	path string

	mu        sync.Mutex
	lastSaved []byte
}

// NewStore returns a store for path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the settings file path.
func (store *Store) Path() string {
	return store.path
}

// Load reads the settings file.
func (store *Store) Load() (model.Settings, error) {
	return LoadSettingsFrom(store.path)
}

// Save writes the settings file.
func (store *Store) Save(settings model.Settings) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	serialized, err := writeSettings(store.path, settings)
	if err != nil {
		return err
	}
	store.lastSaved = serialized
	return nil
}

func (store *Store) savedByUs(content []byte) bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.lastSaved != nil && bytes.Equal(store.lastSaved, content)
}

func writeSettings(path string, settings model.Settings) ([]byte, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}

	settings = settings.Clamped()
	delaySeconds := settings.KeyDelay.Seconds()
	countdown := settings.CountdownSeconds
	fileData := yamlSettings{
		ManualText:       settings.ManualText,
		KeyDelaySeconds:  &delaySeconds,
		CountdownSeconds: &countdown,
		StartHotkey:      settings.StartHotkey,
		StopHotkey:       settings.StopHotkey,
		LogLevel:         settings.LogLevel,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return nil, fmt.Errorf("marshal settings yaml: %w", err)
	}
	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return nil, fmt.Errorf("write settings file: %w", err)
	}
	return serialized, nil
}

func decodeSettings(rawData []byte) (model.Settings, error) {
	settings := model.DefaultSettings()
	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}
	applyYamlSettings(&settings, fileData)
	return settings.Clamped(), nil
}

func applyYamlSettings(settings *model.Settings, fileData yamlSettings) {
	settings.ManualText = fileData.ManualText
	if fileData.KeyDelaySeconds != nil && !math.IsNaN(*fileData.KeyDelaySeconds) {
		seconds := math.Max(0, math.Min(*fileData.KeyDelaySeconds, model.MaxKeyDelay.Seconds()))
		settings.KeyDelay = time.Duration(math.Round(seconds*1000)) * time.Millisecond
	}
	if fileData.CountdownSeconds != nil {
		settings.CountdownSeconds = *fileData.CountdownSeconds
	}
	if fileData.StartHotkey != "" {
		settings.StartHotkey = fileData.StartHotkey
	}
	if fileData.StopHotkey != "" {
		settings.StopHotkey = fileData.StopHotkey
	}
	if fileData.LogLevel != "" {
		settings.LogLevel = fileData.LogLevel
	}
}
