package brew

import (
	"github.com/google/uuid"

	"v60timer/internal/core/schedule"
	"v60timer/internal/core/split"
)

// Status represents the current brew mode.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusRunning  Status = "running"
	StatusPaused   Status = "paused"
	StatusFinished Status = "finished"
)

// DefaultCoffee is the dose used when nothing else is configured.
const DefaultCoffee = 15

var newSessionID = uuid.NewString

// State is the complete brew session state. Transitions never mutate their
// argument; they return the next State.
type State struct {
	CoffeeAmount int
	Elapsed      int
	PhaseID      int
	Status       Status
	// SplitA is the cup A share in ml; nil selects the default half split.
	SplitA    *int
	SessionID string
}

// Running reports whether the clock is advancing.
func (state State) Running() bool {
	return state.Status == StatusRunning
}

// Finished reports whether the brew reached its total duration.
func (state State) Finished() bool {
	return state.Status == StatusFinished
}

// NewState returns an idle session for the given dose.
func NewState(coffee int) State {
	if coffee < 1 {
		coffee = 1
	}
	return State{
		CoffeeAmount: coffee,
		Status:       StatusIdle,
	}
}

// Start begins a fresh brew from zero, discarding any previous progress.
func Start(state State) State {
	state.Elapsed = 0
	state.PhaseID = 0
	state.Status = StatusRunning
	state.SplitA = nil
	state.SessionID = newSessionID()
	return state
}

// Pause stops the clock and keeps elapsed time and phase.
func Pause(state State) State {
	if state.Status != StatusRunning {
		return state
	}
	state.Status = StatusPaused
	return state
}

// Resume continues a paused brew without resetting elapsed time.
func Resume(state State) State {
	if state.Status != StatusPaused {
		return state
	}
	state.Status = StatusRunning
	return state
}

// TogglePlay starts an idle or finished brew, pauses a running one and
// resumes a paused one.
func TogglePlay(state State) State {
	switch state.Status {
	case StatusRunning:
		return Pause(state)
	case StatusPaused:
		return Resume(state)
	default:
		return Start(state)
	}
}

// Reset returns to idle with the clock at zero.
func Reset(state State) State {
	state.Elapsed = 0
	state.PhaseID = 0
	state.Status = StatusIdle
	state.SplitA = nil
	return state
}

// Tick advances a running brew by one second.
func Tick(state State, sched schedule.Schedule) State {
	if state.Status != StatusRunning {
		return state
	}

	state.Elapsed++
	if phase, ok := sched.StartingAt(state.Elapsed); ok && phase.ID > state.PhaseID {
		state.PhaseID = phase.ID
	}

	total := sched.TotalDuration()
	if state.Elapsed >= total {
		state.Elapsed = total
		state.Status = StatusFinished
	}
	return state
}

// AdjustTime shifts the clock by delta seconds within [0, total duration] and
// recomputes the phase. Reaching the end finishes the brew. A finished brew
// is left untouched.
func AdjustTime(state State, sched schedule.Schedule, delta int) State {
	if state.Status == StatusFinished {
		return state
	}

	total := sched.TotalDuration()
	elapsed := state.Elapsed + delta
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > total {
		elapsed = total
	}

	state.Elapsed = elapsed
	state.PhaseID = sched.IndexAt(elapsed)
	if elapsed >= total && (state.Status == StatusRunning || state.Status == StatusPaused) {
		state.Status = StatusFinished
	}
	return state
}

// SetCoffeeAmount changes the dose while the clock is stopped. Doses below
// 1 g are raised to 1 g and the cup A share is clamped to the new yield.
func SetCoffeeAmount(state State, grams int) State {
	if state.Status == StatusRunning {
		return state
	}
	if grams < 1 {
		grams = 1
	}
	state.CoffeeAmount = grams
	if state.SplitA != nil {
		clamped := split.ClampCupA(grams, *state.SplitA)
		state.SplitA = &clamped
	}
	return state
}

// AdjustCoffee changes the dose by delta grams.
func AdjustCoffee(state State, delta int) State {
	return SetCoffeeAmount(state, state.CoffeeAmount+delta)
}

// SetSplitA chooses the cup A share, clamped to [0, expected yield].
func SetSplitA(state State, ml int) State {
	clamped := split.ClampCupA(state.CoffeeAmount, ml)
	state.SplitA = &clamped
	return state
}

// Progress returns how far the clock is through the current phase, 0 to 100.
func Progress(state State, sched schedule.Schedule) float64 {
	phase, ok := sched.Phase(state.PhaseID)
	if !ok {
		return 0
	}

	end := phase.EndTime
	if next, ok := sched.Phase(state.PhaseID + 1); ok {
		end = next.StartTime
	}
	duration := end - phase.StartTime
	if duration <= 0 {
		return 100
	}

	progress := float64(state.Elapsed-phase.StartTime) / float64(duration) * 100
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}
