package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.design/x/hotkey"
)

func TestParseBinding(t *testing.T) {
	binding, err := ParseBinding("Ctrl+Alt+Period")
	require.NoError(t, err)
	assert.Equal(t, "ctrl+alt+period", binding.Text)
	assert.Equal(t, keyPeriod, binding.Key)
	assert.Equal(t, []hotkey.Modifier{modifierNames["ctrl"], modifierNames["alt"]}, binding.Modifiers)

	binding, err = ParseBinding(" f12 ")
	require.NoError(t, err)
	assert.Equal(t, hotkey.KeyF12, binding.Key)
	assert.Empty(t, binding.Modifiers)

	binding, err = ParseBinding("shift+shift+s")
	require.NoError(t, err)
	assert.Len(t, binding.Modifiers, 1)
}

func TestParseBindingRejectsUnknownParts(t *testing.T) {
	for _, text := range []string{"", "   ", "ctrl+", "hyper+a", "ctrl+f13", "ctrl++a"} {
		_, err := ParseBinding(text)
		assert.ErrorIs(t, err, ErrInvalidBinding, text)
	}
}

func TestRegisterReportsInvalidBindings(t *testing.T) {
	var warnings []string
	manager := NewHotkeyManager(HotkeyCallbacks{
		OnWarning: func(message string) { warnings = append(warnings, message) },
	}, nil)

	err := manager.Register("nope", "hyper+x")
	require.ErrorIs(t, err, ErrInvalidBinding)
	assert.Len(t, warnings, 2)
	manager.Unregister()
}
