package typing

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EmitFailureMessage is the failed-update message for a rejected keystroke.
const EmitFailureMessage = "Could not emit keyboard event."

// Emitter injects a single character as keyboard input.
type Emitter interface {
	Emit(char rune) error
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(char rune) error

// Emit calls fn(char).
func (fn EmitterFunc) Emit(char rune) error {
	return fn(char)
}

// Params describes one run. Negative durations and counts are treated as zero.
type Params struct {
	Text              string
	DelayPerCharacter time.Duration
	CountdownSeconds  int
	InitialDelay      time.Duration
}

// Config contains runtime options for Engine.
type Config struct {
	CountdownStep     time.Duration
	FocusPollInterval time.Duration
}

// DefaultFocusPollInterval is how often an unfocused run re-checks focus.
const DefaultFocusPollInterval = 120 * time.Millisecond

// Engine owns at most one active run and drives it through
// countdown, focus gating and per-character emission.
type Engine struct {
	mu      sync.Mutex
	emitter Emitter
	options Config
	logger  *slog.Logger
	current *run
	latest  *run
	state   State
}

type run struct {
	id     RunID
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates an Engine that types through emitter.
func New(emitter Emitter, options Config) *Engine {
	if options.CountdownStep <= 0 {
		options.CountdownStep = time.Second
	}
	if options.FocusPollInterval <= 0 {
		options.FocusPollInterval = DefaultFocusPollInterval
	}
	return &Engine{
		emitter: emitter,
		options: options,
		logger:  slog.Default(),
		state:   StateIdle,
	}
}

// SetLogger replaces the engine logger.
func (engine *Engine) SetLogger(logger *slog.Logger) {
	if logger == nil {
		return
	}
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.logger = logger
}

// Start supersedes any active run and begins a new one under a fresh token.
// It returns immediately; progress is reported through onUpdate, which is
// always called from the run goroutine, one update at a time.
func (engine *Engine) Start(params Params, focus FocusCheck, onUpdate UpdateFunc) RunID {
	if focus == nil {
		focus = func() FocusState { return FocusState{Focused: true} }
	}
	if onUpdate == nil {
		onUpdate = func(Update) {}
	}

	ctx, cancel := context.WithCancel(context.Background())
	next := &run{
		id:     RunID(uuid.NewString()),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	engine.mu.Lock()
	if engine.current != nil {
		engine.current.cancel()
	}
	// A stopped run is no longer current but may still be inside Emit.
	previous := engine.latest
	engine.current = next
	engine.latest = next
	engine.state = StateIdle
	logger := engine.logger
	engine.mu.Unlock()

	logger.Debug("typing run scheduled",
		"run", next.id,
		"characters", len([]rune(params.Text)),
		"countdown", params.CountdownSeconds,
		"delay", params.DelayPerCharacter,
	)

	runner := &runner{
		engine:   engine,
		ctx:      ctx,
		run:      next,
		params:   sanitize(params),
		focus:    focus,
		onUpdate: onUpdate,
		logger:   logger.With("run", next.id),
	}
	go func() {
		defer close(next.done)
		defer cancel()
		if previous != nil {
			<-previous.done
		}
		runner.execute()
		engine.release(next)
	}()

	return next.id
}

// Stop cancels the active run, if any. The run reports stopped on its own.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.current == nil {
		return
	}
	engine.current.cancel()
	engine.current = nil
	engine.state = StateIdle
}

// State returns the state of the active run.
func (engine *Engine) State() State {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.state
}

// Current returns the token of the active run, or "" when idle.
func (engine *Engine) Current() RunID {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.current == nil {
		return ""
	}
	return engine.current.id
}

// Wait blocks until every run body, including stopped ones, has exited or
// ctx is done. Run bodies exit in start order.
func (engine *Engine) Wait(ctx context.Context) error {
	engine.mu.Lock()
	latest := engine.latest
	engine.mu.Unlock()
	if latest == nil {
		return nil
	}
	select {
	case <-latest.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (engine *Engine) setState(owner *run, state State) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.current != owner {
		return
	}
	engine.state = state
}

func (engine *Engine) release(owner *run) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.current != owner {
		return
	}
	engine.current = nil
	engine.state = StateIdle
}

func sanitize(params Params) Params {
	if params.DelayPerCharacter < 0 {
		params.DelayPerCharacter = 0
	}
	if params.CountdownSeconds < 0 {
		params.CountdownSeconds = 0
	}
	if params.InitialDelay < 0 {
		params.InitialDelay = 0
	}
	return params
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return ctx.Err() == nil
	}
}
