package typing

import "time"

// State represents the current controller mode.
type State string

const (
	StateIdle          State = "idle"
	StateCountingDown  State = "counting_down"
	StateAwaitingFocus State = "awaiting_focus"
	StateTyping        State = "typing"
	StatePaused        State = "paused"
	StateCompleted     State = "completed"
	StateStopped       State = "stopped"
	StateFailed        State = "failed"
)

// Terminal reports whether the state ends a run.
func (state State) Terminal() bool {
	return state == StateCompleted || state == StateStopped || state == StateFailed
}

// UpdateType defines the type of run update.
type UpdateType string

const (
	UpdateCountdown UpdateType = "countdown"
	UpdateStarted   UpdateType = "started"
	UpdatePaused    UpdateType = "paused"
	UpdateResumed   UpdateType = "resumed"
	UpdateProgress  UpdateType = "progress"
	UpdateCompleted UpdateType = "completed"
	UpdateStopped   UpdateType = "stopped"
	UpdateFailed    UpdateType = "failed"
)

// Terminal reports whether no further update follows this one for the same run.
func (kind UpdateType) Terminal() bool {
	return kind == UpdateCompleted || kind == UpdateStopped || kind == UpdateFailed
}

// RunID identifies a single run. Updates carrying a RunID other than the
// most recent one returned by Start are stale.
type RunID string

// Update is a lifecycle event delivered to the run observer.
type Update struct {
	Type        UpdateType
	Run         RunID
	SecondsLeft int
	Typed       int
	Total       int
	TargetName  string
	Message     string
	At          time.Time
}

// UpdateFunc receives run updates in generation order.
type UpdateFunc func(Update)

// FocusState is a point-in-time answer from the focus observer.
type FocusState struct {
	Focused    bool
	TargetName string
}

// FocusCheck is polled before every character.
type FocusCheck func() FocusState
