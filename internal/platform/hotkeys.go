package platform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.design/x/hotkey"
)

// ErrInvalidBinding indicates a hotkey binding string that cannot be parsed.
var ErrInvalidBinding = errors.New("invalid hotkey binding")

// Binding is a parsed global hotkey such as "ctrl+alt+period".
type Binding struct {
	Text      string
	Modifiers []hotkey.Modifier
	Key       hotkey.Key
}

var keyNames = map[string]hotkey.Key{
	"space":  hotkey.KeySpace,
	"return": hotkey.KeyReturn,
	"enter":  hotkey.KeyReturn,
	"escape": hotkey.KeyEscape,
	"esc":    hotkey.KeyEscape,
	"delete": hotkey.KeyDelete,
	"tab":    hotkey.KeyTab,
	"left":   hotkey.KeyLeft,
	"right":  hotkey.KeyRight,
	"up":     hotkey.KeyUp,
	"down":   hotkey.KeyDown,
	"period": keyPeriod,
	".":      keyPeriod,

	"a": hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
	"e": hotkey.KeyE, "f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH,
	"i": hotkey.KeyI, "j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO, "p": hotkey.KeyP,
	"q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,

	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,

	"f1": hotkey.KeyF1, "f2": hotkey.KeyF2, "f3": hotkey.KeyF3, "f4": hotkey.KeyF4,
	"f5": hotkey.KeyF5, "f6": hotkey.KeyF6, "f7": hotkey.KeyF7, "f8": hotkey.KeyF8,
	"f9": hotkey.KeyF9, "f10": hotkey.KeyF10, "f11": hotkey.KeyF11, "f12": hotkey.KeyF12,
}

// ParseBinding converts "mod+mod+key" into a Binding. A bare key is allowed.
func ParseBinding(binding string) (Binding, error) {
	text := strings.ToLower(strings.TrimSpace(binding))
	if text == "" {
		return Binding{}, fmt.Errorf("%w: empty", ErrInvalidBinding)
	}
	parts := strings.Split(text, "+")
	keyName := strings.TrimSpace(parts[len(parts)-1])
	key, ok := keyNames[keyName]
	if !ok {
		return Binding{}, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidBinding, keyName, binding)
	}

	parsed := Binding{Text: text, Key: key}
	seen := make(map[string]bool)
	for _, part := range parts[:len(parts)-1] {
		name := strings.TrimSpace(part)
		modifier, ok := modifierNames[name]
		if !ok {
			return Binding{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidBinding, name, binding)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		parsed.Modifiers = append(parsed.Modifiers, modifier)
	}
	return parsed, nil
}

// HotkeyCallbacks defines global hotkey handlers.
type HotkeyCallbacks struct {
	OnStart   func()
	OnStop    func()
	OnWarning func(message string)
}

// HotkeyManager owns the start and stop global hotkeys.
type HotkeyManager struct {
	mu         sync.Mutex
	callbacks  HotkeyCallbacks
	logger     *slog.Logger
	registered []*hotkey.Hotkey
	cancel     context.CancelFunc
}

// NewHotkeyManager creates a manager; nothing is registered until Register.
func NewHotkeyManager(callbacks HotkeyCallbacks, logger *slog.Logger) *HotkeyManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &HotkeyManager{callbacks: callbacks, logger: logger}
}

// Register replaces any registered bindings. Start fires when its key is
// released so that held modifiers do not leak into the typed text; stop
// fires on key press. Each failed binding is reported through OnWarning and
// the failures are returned joined.
func (manager *HotkeyManager) Register(startBinding, stopBinding string) error {
	manager.Unregister()

	ctx, cancel := context.WithCancel(context.Background())
	manager.mu.Lock()
	manager.cancel = cancel
	manager.mu.Unlock()

	var errs []error
	if hk, err := manager.register(startBinding); err != nil {
		errs = append(errs, err)
	} else {
		go manager.listen(ctx, hk, false, manager.callbacks.OnStart)
	}
	if hk, err := manager.register(stopBinding); err != nil {
		errs = append(errs, err)
	} else {
		go manager.listen(ctx, hk, true, manager.callbacks.OnStop)
	}
	return errors.Join(errs...)
}

// Unregister releases every registered binding.
func (manager *HotkeyManager) Unregister() {
	manager.mu.Lock()
	registered := manager.registered
	manager.registered = nil
	if manager.cancel != nil {
		manager.cancel()
		manager.cancel = nil
	}
	manager.mu.Unlock()

	for _, hk := range registered {
		if err := hk.Unregister(); err != nil {
			manager.logger.Debug("hotkey unregister failed", "error", err)
		}
	}
}

func (manager *HotkeyManager) register(text string) (*hotkey.Hotkey, error) {
	binding, err := ParseBinding(text)
	if err != nil {
		manager.warn(fmt.Sprintf("Hotkey %q is invalid.", text))
		return nil, err
	}
	hk := hotkey.New(binding.Modifiers, binding.Key)
	if err := hk.Register(); err != nil {
		manager.warn(fmt.Sprintf("Hotkey registration failed for %s.", binding.Text))
		return nil, fmt.Errorf("register %s: %w", binding.Text, err)
	}
	manager.mu.Lock()
	manager.registered = append(manager.registered, hk)
	manager.mu.Unlock()
	manager.logger.Info("hotkey registered", "binding", binding.Text)
	return hk, nil
}

func (manager *HotkeyManager) listen(ctx context.Context, hk *hotkey.Hotkey, onPress bool, handler func()) {
	pressed := false
	for {
		select {
		case <-ctx.Done():
			return
		case <-hk.Keydown():
			pressed = true
			if onPress && handler != nil {
				handler()
			}
		case <-hk.Keyup():
			if pressed && !onPress && handler != nil {
				handler()
			}
			pressed = false
		}
	}
}

func (manager *HotkeyManager) warn(message string) {
	manager.logger.Warn(message)
	if manager.callbacks.OnWarning != nil {
		manager.callbacks.OnWarning(message)
	}
}
