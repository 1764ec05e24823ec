package model

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"longautotyper/internal/core/typing"
)

const (
	MinKeyDelay         = 0
	MaxKeyDelay         = 2 * time.Second
	DefaultKeyDelay     = 20 * time.Millisecond
	MinCountdownSeconds = 0
	MaxCountdownSeconds = 20
	DefaultCountdown    = 5
)

// Settings defines editable user preferences.
type Settings struct {
	ManualText       string
	KeyDelay         time.Duration
	CountdownSeconds int

	StartHotkey string
	StopHotkey  string
	LogLevel    string
}

// DefaultSettings returns default settings for LongAutoTyper.
func DefaultSettings() Settings {
	return Settings{
		KeyDelay:         DefaultKeyDelay,
		CountdownSeconds: DefaultCountdown,
		StartHotkey:      DefaultStartHotkey,
		StopHotkey:       DefaultStopHotkey,
		LogLevel:         "info",
	}
}

// Clamped returns a copy with every numeric field inside its allowed range
// and empty hotkeys replaced by the defaults.
func (settings Settings) Clamped() Settings {
	if settings.KeyDelay < MinKeyDelay {
		settings.KeyDelay = MinKeyDelay
	}
	if settings.KeyDelay > MaxKeyDelay {
		settings.KeyDelay = MaxKeyDelay
	}
	if settings.CountdownSeconds < MinCountdownSeconds {
		settings.CountdownSeconds = MinCountdownSeconds
	}
	if settings.CountdownSeconds > MaxCountdownSeconds {
		settings.CountdownSeconds = MaxCountdownSeconds
	}
	if strings.TrimSpace(settings.StartHotkey) == "" {
		settings.StartHotkey = DefaultStartHotkey
	}
	if strings.TrimSpace(settings.StopHotkey) == "" {
		settings.StopHotkey = DefaultStopHotkey
	}
	if strings.TrimSpace(settings.LogLevel) == "" {
		settings.LogLevel = "info"
	}
	return settings
}

// TypingParams converts settings to run parameters for text.
func (settings Settings) TypingParams(text string, countdown int) typing.Params {
	return typing.Params{
		Text:              text,
		DelayPerCharacter: settings.KeyDelay,
		CountdownSeconds:  countdown,
	}
}

// DisplayBinding formats a binding such as "ctrl+option+cmd+period" for status text.
func DisplayBinding(binding string) string {
	parts := strings.Split(binding, "+")
	for index, part := range parts {
		part = strings.TrimSpace(part)
		if part == "period" {
			parts[index] = "."
			continue
		}
		first, size := utf8.DecodeRuneInString(part)
		if first == utf8.RuneError {
			parts[index] = part
			continue
		}
		if utf8.RuneCountInString(part) <= 3 && strings.HasPrefix(part, "f") && len(part) > 1 {
			parts[index] = strings.ToUpper(part)
			continue
		}
		parts[index] = string(unicode.ToUpper(first)) + part[size:]
	}
	return strings.Join(parts, "+")
}
