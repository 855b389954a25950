package brew

import (
	"fmt"

	"v60timer/internal/core/schedule"
	"v60timer/internal/core/split"
)

// Snapshot is a read-only view of a brew for renderers.
type Snapshot struct {
	State

	Time            string
	Phase           schedule.Phase
	PhaseNumber     int
	PhaseCount      int
	Progress        float64
	CumulativeWater float64
	TotalWater      float64
	TotalDuration   int
	// InPourWindow is set while the current phase is a pour and the clock is
	// inside its window.
	InPourWindow bool
	// Upcoming holds the current phase followed by every later phase.
	Upcoming []schedule.Phase
	Split    split.Split
}

// NewSnapshot derives the renderer view of state under sched.
func NewSnapshot(state State, sched schedule.Schedule) Snapshot {
	phase, ok := sched.Phase(state.PhaseID)
	if !ok {
		phase, _ = sched.Phase(0)
	}

	var upcoming []schedule.Phase
	phases := sched.Phases()
	if state.PhaseID < len(phases) {
		upcoming = phases[state.PhaseID:]
	}

	// SplitA is shared with the caller's State, so copy it.
	if state.SplitA != nil {
		value := *state.SplitA
		state.SplitA = &value
	}

	return Snapshot{
		State:           state,
		Time:            FormatTime(state.Elapsed),
		Phase:           phase,
		PhaseNumber:     phase.ID + 1,
		PhaseCount:      sched.Len(),
		Progress:        Progress(state, sched),
		CumulativeWater: phase.CumulativeWater,
		TotalWater:      sched.TotalWater(),
		TotalDuration:   sched.TotalDuration(),
		InPourWindow:    phase.IsPour() && state.Elapsed >= phase.StartTime && state.Elapsed < phase.EndTime,
		Upcoming:        upcoming,
		Split:           split.Compute(state.CoffeeAmount, state.SplitA),
	}
}

// FormatTime renders seconds as zero-padded MM:SS.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	minutes := seconds / 60
	seconds = seconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
