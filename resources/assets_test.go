package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIconsAreEmbedded(t *testing.T) {
	for _, name := range []string{IconIdle, IconTyping} {
		icon, err := Icon(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, icon.Name())
		assert.Contains(t, string(icon.Content()), "<svg")
		assert.Same(t, icon, MustIcon(name))
	}
}

func TestMissingIcon(t *testing.T) {
	_, err := Icon("missing.svg")
	assert.Error(t, err)
	assert.Panics(t, func() { MustIcon("missing.svg") })
}
