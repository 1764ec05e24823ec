package platform

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/go-vgo/robotgo"
)

// ErrUnsupportedCharacter indicates a rune that cannot be typed.
var ErrUnsupportedCharacter = errors.New("unsupported character")

// KeyAction is how a character is injected.
type KeyAction int

const (
	// ActionLiteral injects the character as a Unicode string event.
	ActionLiteral KeyAction = iota
	ActionEnter
	ActionTab
	// ActionKey taps a mapped key, with shift for upper case letters.
	ActionKey
)

// ActionFor classifies char: line breaks press Enter, tabs press Tab,
// letters, digits and space tap their key and everything else is injected
// as literal Unicode.
func ActionFor(char rune) KeyAction {
	switch {
	case char == '\n' || char == '\r':
		return ActionEnter
	case char == '\t':
		return ActionTab
	case char == ' ',
		char >= 'a' && char <= 'z',
		char >= 'A' && char <= 'Z',
		char >= '0' && char <= '9':
		return ActionKey
	default:
		return ActionLiteral
	}
}

// KeyEmitter injects characters into the focused application.
type KeyEmitter struct {
	tap     func(key string, modifiers ...string) error
	literal func(text string) error
}

// NewKeyEmitter returns an emitter backed by synthetic OS key events.
func NewKeyEmitter() *KeyEmitter {
	return &KeyEmitter{
		tap: func(key string, modifiers ...string) error {
			args := make([]interface{}, 0, len(modifiers))
			for _, modifier := range modifiers {
				args = append(args, modifier)
			}
			return robotgo.KeyTap(key, args...)
		},
		literal: func(text string) error {
			// TypeStr reports no failure.
			robotgo.TypeStr(text)
			return nil
		},
	}
}

// Emit sends key-down and key-up for a single character.
func (emitter *KeyEmitter) Emit(char rune) error {
	// Guards direct callers; runes decoded from a string are always valid.
	if !utf8.ValidRune(char) {
		return fmt.Errorf("emit %U: %w", char, ErrUnsupportedCharacter)
	}
	var err error
	switch ActionFor(char) {
	case ActionEnter:
		err = emitter.tap("enter")
	case ActionTab:
		err = emitter.tap("tab")
	case ActionKey:
		key, modifiers := keyFor(char)
		err = emitter.tap(key, modifiers...)
	default:
		err = emitter.literal(string(char))
	}
	if err != nil {
		return fmt.Errorf("emit %U: %w", char, err)
	}
	return nil
}

func keyFor(char rune) (string, []string) {
	switch {
	case char == ' ':
		return "space", nil
	case char >= 'A' && char <= 'Z':
		return string(char - 'A' + 'a'), []string{"shift"}
	default:
		return string(char), nil
	}
}
