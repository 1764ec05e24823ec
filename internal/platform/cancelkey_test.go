package platform

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.design/x/hotkey"
)

type fakeCancelKey struct {
	down         chan hotkey.Event
	unregistered atomic.Bool
}

func (key *fakeCancelKey) Keydown() <-chan hotkey.Event { return key.down }

func (key *fakeCancelKey) Unregister() error {
	key.unregistered.Store(true)
	return nil
}

func TestCancelKeyMonitorFiresOnPress(t *testing.T) {
	cancelled := make(chan struct{}, 1)
	monitor := NewCancelKeyMonitor(func() { cancelled <- struct{}{} }, nil)
	key := &fakeCancelKey{down: make(chan hotkey.Event)}
	registrations := 0
	monitor.register = func() (cancelKey, error) {
		registrations++
		return key, nil
	}

	assert.True(t, monitor.Start())
	assert.True(t, monitor.Start())
	assert.Equal(t, 1, registrations)

	key.down <- hotkey.Event{}
	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("cancel callback not called")
	}

	monitor.Stop()
	assert.True(t, key.unregistered.Load())
	monitor.Stop()
}

func TestCancelKeyMonitorUnavailable(t *testing.T) {
	monitor := NewCancelKeyMonitor(nil, nil)
	monitor.register = func() (cancelKey, error) {
		return nil, errors.New("grab failed")
	}
	assert.False(t, monitor.Start())
	monitor.Stop()
}
