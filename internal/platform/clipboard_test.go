package platform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClipboardReadText(t *testing.T) {
	board := NewClipboard(nil)

	board.read = func() (string, error) { return "hello\nworld", nil }
	text, ok := board.ReadText()
	assert.True(t, ok)
	assert.Equal(t, "hello\nworld", text)

	board.read = func() (string, error) { return "", nil }
	_, ok = board.ReadText()
	assert.False(t, ok)

	board.read = func() (string, error) { return "", errors.New("no clipboard utility") }
	_, ok = board.ReadText()
	assert.False(t, ok)
}
