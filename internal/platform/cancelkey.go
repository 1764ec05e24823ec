package platform

import (
	"context"
	"log/slog"
	"sync"

	"golang.design/x/hotkey"
)

// CancelKeyMonitor grabs the bare Delete key while a run is active so that
// pressing it anywhere cancels typing.
type CancelKeyMonitor struct {
	mu       sync.Mutex
	onCancel func()
	logger   *slog.Logger
	register func() (cancelKey, error)
	active   cancelKey
	stop     context.CancelFunc
}

type cancelKey interface {
	Keydown() <-chan hotkey.Event
	Unregister() error
}

// NewCancelKeyMonitor returns a monitor that calls onCancel on its own
// goroutine when Delete is pressed.
func NewCancelKeyMonitor(onCancel func(), logger *slog.Logger) *CancelKeyMonitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &CancelKeyMonitor{
		onCancel: onCancel,
		logger:   logger,
		register: func() (cancelKey, error) {
			hk := hotkey.New(nil, hotkey.KeyDelete)
			if err := hk.Register(); err != nil {
				return nil, err
			}
			return hk, nil
		},
	}
}

// Start grabs the cancel key. It reports false when the key could not be
// registered; typing continues without it.
func (monitor *CancelKeyMonitor) Start() bool {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	if monitor.active != nil {
		return true
	}

	key, err := monitor.register()
	if err != nil {
		monitor.logger.Warn("cancel key unavailable", "error", err)
		return false
	}
	ctx, cancel := context.WithCancel(context.Background())
	monitor.active = key
	monitor.stop = cancel
	go monitor.listen(ctx, key)
	return true
}

// Stop releases the cancel key. Safe to call when not started.
func (monitor *CancelKeyMonitor) Stop() {
	monitor.mu.Lock()
	key := monitor.active
	cancel := monitor.stop
	monitor.active = nil
	monitor.stop = nil
	monitor.mu.Unlock()

	if key == nil {
		return
	}
	cancel()
	if err := key.Unregister(); err != nil {
		monitor.logger.Debug("cancel key unregister failed", "error", err)
	}
}

func (monitor *CancelKeyMonitor) listen(ctx context.Context, key cancelKey) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-key.Keydown():
			if !ok {
				return
			}
			if monitor.onCancel != nil {
				go monitor.onCancel()
			}
		}
	}
}
