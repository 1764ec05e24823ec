package typing

import (
	"context"
	"log/slog"
	"time"
)

// runner executes a single run body. All of its methods run on the run goroutine.
type runner struct {
	engine   *Engine
	ctx      context.Context
	run      *run
	params   Params
	focus    FocusCheck
	onUpdate UpdateFunc
	logger   *slog.Logger
}

func (runner *runner) execute() {
	if runner.params.CountdownSeconds > 0 {
		runner.setState(StateCountingDown)
		for secondsLeft := runner.params.CountdownSeconds; secondsLeft >= 1; secondsLeft-- {
			if runner.cancelled() {
				runner.stop()
				return
			}
			runner.emit(Update{Type: UpdateCountdown, SecondsLeft: secondsLeft})
			if !sleepWithContext(runner.ctx, runner.engine.options.CountdownStep) {
				runner.stop()
				return
			}
		}
	}

	if runner.params.InitialDelay > 0 && !sleepWithContext(runner.ctx, runner.params.InitialDelay) {
		runner.stop()
		return
	}

	runner.setState(StateAwaitingFocus)
	if !runner.awaitFocus(StateAwaitingFocus, StateAwaitingFocus) {
		return
	}

	characters := []rune(runner.params.Text)
	total := len(characters)
	runner.setState(StateTyping)
	runner.emit(Update{Type: UpdateStarted, Total: total})
	runner.logger.Info("typing started", "characters", total)

	for index, char := range characters {
		if runner.cancelled() {
			runner.stop()
			return
		}
		if !runner.awaitFocus(StatePaused, StateTyping) {
			return
		}

		if err := runner.engine.emitter.Emit(char); err != nil {
			runner.logger.Warn("keystroke rejected", "index", index, "error", err)
			runner.finish(StateFailed, Update{Type: UpdateFailed, Message: EmitFailureMessage})
			return
		}

		runner.emit(Update{Type: UpdateProgress, Typed: index + 1, Total: total})

		if runner.params.DelayPerCharacter > 0 && !sleepWithContext(runner.ctx, runner.params.DelayPerCharacter) {
			runner.stop()
			return
		}
	}

	// A stop that lands during the last keystroke still wins over completion.
	if runner.cancelled() {
		runner.stop()
		return
	}
	runner.finish(StateCompleted, Update{Type: UpdateCompleted})
	runner.logger.Info("typing completed", "characters", total)
}

// awaitFocus polls the focus check until the target is focused again.
// It returns false after reporting stopped.
func (runner *runner) awaitFocus(waiting State, resume State) bool {
	paused := false
	pausedName := ""
	for {
		if runner.cancelled() {
			runner.stop()
			return false
		}

		focus := runner.focus()
		if focus.Focused {
			if paused {
				name := focus.TargetName
				if name == "" {
					name = pausedName
				}
				runner.setState(resume)
				runner.emit(Update{Type: UpdateResumed, TargetName: name})
				runner.logger.Debug("typing resumed", "target", name)
			}
			return true
		}

		if !paused {
			paused = true
			pausedName = focus.TargetName
			runner.setState(waiting)
			runner.emit(Update{Type: UpdatePaused, TargetName: pausedName})
			runner.logger.Debug("typing paused", "target", pausedName)
		}

		if !sleepWithContext(runner.ctx, runner.engine.options.FocusPollInterval) {
			runner.stop()
			return false
		}
	}
}

func (runner *runner) cancelled() bool {
	return runner.ctx.Err() != nil
}

func (runner *runner) stop() {
	runner.finish(StateStopped, Update{Type: UpdateStopped})
	runner.logger.Info("typing stopped")
}

func (runner *runner) finish(state State, update Update) {
	runner.setState(state)
	runner.emit(update)
}

func (runner *runner) setState(state State) {
	runner.engine.setState(runner.run, state)
}

func (runner *runner) emit(update Update) {
	update.Run = runner.run.id
	update.At = time.Now()
	runner.onUpdate(update)
}
