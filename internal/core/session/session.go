// Package session turns typing runs into user-visible state. It owns the
// active run token, the focus target of the current run and the persisted
// preferences, and it filters out updates from superseded runs.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"longautotyper/internal/core/model"
	"longautotyper/internal/core/typing"

	"github.com/rivo/uniseg"
)

var (
	// ErrAlreadyTyping is returned when a run is requested while one is active.
	ErrAlreadyTyping = errors.New("typing already in progress")
	// ErrEmptyText is returned when there is nothing to type.
	ErrEmptyText = errors.New("nothing to type")
)

// progressStatusInterval limits how often progress rewrites the status line.
const progressStatusInterval = 120 * time.Millisecond

// Source names where a run's text came from.
type Source string

const (
	SourceClipboard Source = "Clipboard"
	SourceHotkey    Source = "Hotkey"
	SourceManual    Source = "Manual"
)

// Status is the user-visible state.
type Status struct {
	Typing  bool
	Message string
}

// Runner starts and stops typing runs.
type Runner interface {
	Start(params typing.Params, focus typing.FocusCheck, onUpdate typing.UpdateFunc) typing.RunID
	Stop()
}

// TextSource reads the text to type from the clipboard.
type TextSource interface {
	ReadText() (string, bool)
}

// AppIdentity identifies a frontmost application.
type AppIdentity struct {
	ID   string
	Name string
}

// FrontmostProvider reports the application that currently owns keyboard focus.
type FrontmostProvider interface {
	Frontmost() (AppIdentity, bool)
}

// CancelMonitor watches for the local cancel key while a run is active.
type CancelMonitor interface {
	Start() bool
	Stop()
}

// SettingsStore persists preferences.
type SettingsStore interface {
	Save(settings model.Settings) error
}

// Deps holds the collaborators of a Session. Runner is required.
type Deps struct {
	Runner    Runner
	Clipboard TextSource
	Frontmost FrontmostProvider
	Cancel    CancelMonitor
	Store     SettingsStore
	// SelfID is the identity of this process; while it is frontmost the run is not focused.
	SelfID string
	// Dispatch delivers listener calls to the UI context. Defaults to a direct call.
	Dispatch func(func())
	Logger   *slog.Logger
	Now      func() time.Time
}

// Session is the application model behind the tray and main window.
type Session struct {
	mu       sync.Mutex
	deps     Deps
	settings model.Settings
	status   Status

	statusListeners   []func(Status)
	settingsListeners []func(model.Settings)

	activeRun      typing.RunID
	source         Source
	target         AppIdentity
	targetCaptured bool
	lastProgress   time.Time
}

// New creates a session with the given settings.
func New(deps Deps, settings model.Settings) *Session {
	if deps.Dispatch == nil {
		deps.Dispatch = func(fn func()) { fn() }
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Session{
		deps:     deps,
		settings: settings.Clamped(),
		status:   Status{Message: "Idle"},
	}
}

// OnStatus registers a status listener.
func (session *Session) OnStatus(listener func(Status)) {
	session.mu.Lock()
	defer session.mu.Unlock()
	session.statusListeners = append(session.statusListeners, listener)
}

// OnSettings registers a listener for settings applied from outside the UI.
func (session *Session) OnSettings(listener func(model.Settings)) {
	session.mu.Lock()
	defer session.mu.Unlock()
	session.settingsListeners = append(session.settingsListeners, listener)
}

// Status returns the current status.
func (session *Session) Status() Status {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.status
}

// Settings returns the current preferences.
func (session *Session) Settings() model.Settings {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.settings
}

// UpdateSettings clamps, applies and persists preferences edited in the UI.
func (session *Session) UpdateSettings(settings model.Settings) error {
	settings = settings.Clamped()
	session.mu.Lock()
	session.settings = settings
	store := session.deps.Store
	session.mu.Unlock()

	if store == nil {
		return nil
	}
	if err := store.Save(settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// ApplySettings replaces preferences loaded from disk without saving them back.
func (session *Session) ApplySettings(settings model.Settings) {
	settings = settings.Clamped()
	session.mu.Lock()
	session.settings = settings
	listeners := append(([]func(model.Settings))(nil), session.settingsListeners...)
	session.mu.Unlock()

	session.deps.Dispatch(func() {
		for _, listener := range listeners {
			listener(settings)
		}
	})
}

// Warn shows a warning in the status line without touching the run state.
func (session *Session) Warn(message string) {
	session.mu.Lock()
	defer session.mu.Unlock()
	session.deps.Logger.Warn(message)
	session.setStatusLocked(session.status.Typing, message)
}

// HandleStartHotkey types the clipboard immediately, refusing while a run is active.
func (session *Session) HandleStartHotkey() error {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.status.Typing {
		session.setStatusLocked(true, fmt.Sprintf("Typing in progress. Stop with %s.", session.stopBindingLocked()))
		return ErrAlreadyTyping
	}
	return session.startClipboardLocked(SourceHotkey, 0)
}

// TypeClipboard types the clipboard after the configured countdown.
func (session *Session) TypeClipboard() error {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.startClipboardLocked(SourceClipboard, session.settings.CountdownSeconds)
}

// TypeManual types the saved manual text after the configured countdown.
func (session *Session) TypeManual() error {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.status.Typing {
		session.setStatusLocked(true, "Typing is already in progress.")
		return ErrAlreadyTyping
	}
	text := session.settings.ManualText
	if strings.TrimSpace(text) == "" {
		session.setStatusLocked(false, "Manual text is empty.")
		return ErrEmptyText
	}
	session.startLocked(text, SourceManual, session.settings.CountdownSeconds)
	return nil
}

// Stop cancels the active run.
func (session *Session) Stop() {
	session.EmergencyStop("Typing stopped.")
}

// EmergencyStop cancels the active run and shows reason.
func (session *Session) EmergencyStop(reason string) {
	session.mu.Lock()
	defer session.mu.Unlock()
	session.activeRun = ""
	session.deps.Runner.Stop()
	session.endRunLocked()
	session.setStatusLocked(false, reason)
	session.deps.Logger.Info("typing cancelled", "reason", reason)
}

func (session *Session) startClipboardLocked(source Source, countdown int) error {
	if session.status.Typing {
		session.setStatusLocked(true, "Typing is already in progress.")
		return ErrAlreadyTyping
	}
	var text string
	ok := false
	if session.deps.Clipboard != nil {
		text, ok = session.deps.Clipboard.ReadText()
	}
	if !ok || text == "" {
		session.setStatusLocked(false, "Clipboard is empty.")
		return ErrEmptyText
	}
	session.startLocked(text, source, countdown)
	return nil
}

func (session *Session) startLocked(text string, source Source, countdown int) {
	session.resetTargetLocked()
	session.source = source
	session.lastProgress = time.Time{}

	message := fmt.Sprintf("Preparing %s typing...", strings.ToLower(string(source)))
	if session.deps.Cancel != nil && !session.deps.Cancel.Start() {
		message += " (Delete stop unavailable)"
	}

	session.deps.Logger.Info("typing requested",
		"source", source,
		"characters", len([]rune(text)),
		"graphemes", uniseg.GraphemeClusterCount(text),
		"preview", Preview(text, 24),
	)

	params := session.settings.TypingParams(text, countdown)
	session.activeRun = session.deps.Runner.Start(params, session.focusState, func(update typing.Update) {
		session.handleUpdate(update, source)
	})
	session.setStatusLocked(true, message)
}

// focusState is called from the run goroutine. The window system is queried
// before taking the lock so a slow answer never blocks UI callers.
func (session *Session) focusState() typing.FocusState {
	var (
		app   AppIdentity
		known bool
	)
	if session.deps.Frontmost != nil {
		app, known = session.deps.Frontmost.Frontmost()
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	if !known {
		return typing.FocusState{Focused: true, TargetName: session.target.Name}
	}
	if session.deps.SelfID != "" && app.ID == session.deps.SelfID {
		return typing.FocusState{Focused: false, TargetName: session.target.Name}
	}
	if !session.targetCaptured {
		session.target = app
		session.targetCaptured = true
		session.deps.Logger.Debug("typing target captured", "app", app.Name, "id", app.ID)
	}
	return typing.FocusState{
		Focused:    app.ID == session.target.ID,
		TargetName: session.target.Name,
	}
}

func (session *Session) handleUpdate(update typing.Update, source Source) {
	session.mu.Lock()
	defer session.mu.Unlock()
	if update.Run != session.activeRun {
		return
	}

	switch update.Type {
	case typing.UpdateCountdown:
		session.setStatusLocked(true, fmt.Sprintf("%s typing starts in %ds...", source, update.SecondsLeft))
	case typing.UpdateStarted:
		session.lastProgress = time.Time{}
		session.setStatusLocked(true, fmt.Sprintf("Typing %d chars... Stop: %s", update.Total, session.stopBindingLocked()))
	case typing.UpdatePaused:
		session.setStatusLocked(true, fmt.Sprintf("Paused (focus changed). Return to %s to resume.", targetName(update.TargetName)))
	case typing.UpdateResumed:
		session.setStatusLocked(true, fmt.Sprintf("Resumed in %s. Stop: %s", targetName(update.TargetName), session.stopBindingLocked()))
	case typing.UpdateProgress:
		now := session.deps.Now()
		if now.Sub(session.lastProgress) < progressStatusInterval && update.Typed < update.Total {
			return
		}
		session.lastProgress = now
		session.setStatusLocked(true, fmt.Sprintf("Typing %d/%d (Stop: %s)", update.Typed, update.Total, session.stopBindingLocked()))
	case typing.UpdateCompleted:
		session.finishLocked("Typing finished.")
	case typing.UpdateStopped:
		session.finishLocked("Typing stopped.")
	case typing.UpdateFailed:
		session.finishLocked("Typing failed: " + update.Message)
	}
}

func (session *Session) finishLocked(message string) {
	session.activeRun = ""
	session.endRunLocked()
	session.setStatusLocked(false, message)
	session.deps.Logger.Info("typing run finished", "status", message)
}

func (session *Session) endRunLocked() {
	if session.deps.Cancel != nil {
		session.deps.Cancel.Stop()
	}
	session.resetTargetLocked()
}

func (session *Session) resetTargetLocked() {
	session.target = AppIdentity{}
	session.targetCaptured = false
}

func (session *Session) stopBindingLocked() string {
	return model.DisplayBinding(session.settings.StopHotkey)
}

func (session *Session) setStatusLocked(typingActive bool, message string) {
	session.status = Status{Typing: typingActive, Message: message}
	status := session.status
	listeners := append(([]func(Status))(nil), session.statusListeners...)
	session.deps.Dispatch(func() {
		for _, listener := range listeners {
			listener(status)
		}
	})
}

func targetName(name string) string {
	if name == "" {
		return "target app"
	}
	return name
}

// Preview returns the first limit grapheme clusters of text on one line,
// with "…" appended if truncated.
func Preview(text string, limit int) string {
	text = strings.Join(strings.Fields(text), " ")
	var builder strings.Builder
	graphemes := uniseg.NewGraphemes(text)
	count := 0
	for graphemes.Next() {
		if count == limit {
			builder.WriteString("…")
			break
		}
		builder.WriteString(graphemes.Str())
		count++
	}
	return builder.String()
}
