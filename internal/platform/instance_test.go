package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstancePortIsStable(t *testing.T) {
	port := instancePort("LongAutoTyper")
	assert.Equal(t, port, instancePort("LongAutoTyper"))
	assert.GreaterOrEqual(t, port, instanceMinPort)
	assert.LessOrEqual(t, port, instanceMaxPort)
}

func TestSecondInstanceIsRefused(t *testing.T) {
	name := "longautotyper-test-" + t.Name()
	first, err := AcquireInstance(name, nil)
	require.NoError(t, err)
	defer first.Release()

	second, err := AcquireInstance(name, nil)
	assert.Nil(t, second)
	require.ErrorIs(t, err, ErrAlreadyRunning)
}

func TestReleaseFreesInstance(t *testing.T) {
	name := "longautotyper-test-" + t.Name()
	first, err := AcquireInstance(name, nil)
	require.NoError(t, err)
	require.NoError(t, first.Release())

	again, err := AcquireInstance(name, nil)
	require.NoError(t, err)
	require.NoError(t, again.Release())
	assert.NoError(t, (*Instance)(nil).Release())
}
