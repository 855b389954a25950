package schedule

import (
	"fmt"
	"math"
)

const (
	// TotalDuration is the length of a brew in seconds.
	TotalDuration = 180

	shareDenominator = 5
)

// Kind classifies a phase as pouring or resting.
type Kind string

const (
	KindPour Kind = "pour"
	KindRest Kind = "rest"
)

// Phase is one contiguous pour or rest window of a brew.
type Phase struct {
	ID              int
	StartTime       int
	EndTime         int
	WaterAmount     float64
	CumulativeWater float64
	Description     string
	Kind            Kind
}

// Duration returns the phase length in seconds.
func (phase Phase) Duration() int {
	return phase.EndTime - phase.StartTime
}

// IsPour reports whether water is added during the phase.
func (phase Phase) IsPour() bool {
	return phase.Kind == KindPour
}

// InvalidDoseError is the panic value raised when Build receives a dose below 1 g.
type InvalidDoseError struct {
	Coffee int
}

func (err *InvalidDoseError) Error() string {
	return fmt.Sprintf("invalid coffee dose %d g: must be at least 1 g", err.Coffee)
}

type phaseTemplate struct {
	start       int
	end         int
	share       int
	description string
}

// Canonical 10-phase schedule: five equal pours separated by rests.
var template = []phaseTemplate{
	{start: 0, end: 15, share: 1, description: "Bloom pour"},
	{start: 15, end: 45, share: 0, description: "Rest"},
	{start: 45, end: 60, share: 1, description: "Second pour"},
	{start: 60, end: 70, share: 0, description: "Rest"},
	{start: 70, end: 80, share: 1, description: "Third pour"},
	{start: 80, end: 90, share: 0, description: "Rest"},
	{start: 90, end: 100, share: 1, description: "Fourth pour"},
	{start: 100, end: 110, share: 0, description: "Rest"},
	{start: 110, end: 120, share: 1, description: "Final pour"},
	{start: 120, end: TotalDuration, share: 0, description: "Final rest"},
}

// Schedule is an ordered, contiguous list of phases for one dose.
type Schedule struct {
	coffee int
	phases []Phase
}

// TotalWater returns the target water in grams for a coffee dose
// (15 g of coffee takes 250 g of water).
func TotalWater(coffee int) float64 {
	return float64(coffee) * 250 / 15
}

// Build returns the phase schedule for the given coffee dose in grams.
// It panics with *InvalidDoseError when coffee is below 1.
func Build(coffee int) Schedule {
	if coffee < 1 {
		panic(&InvalidDoseError{Coffee: coffee})
	}

	total := TotalWater(coffee)
	phases := make([]Phase, 0, len(template))
	cumulativeShare := 0
	for index, entry := range template {
		cumulativeShare += entry.share
		kind := KindRest
		if entry.share > 0 {
			kind = KindPour
		}
		cumulative := total
		if cumulativeShare < shareDenominator {
			cumulative = total * float64(cumulativeShare) / shareDenominator
		}
		phases = append(phases, Phase{
			ID:              index,
			StartTime:       entry.start,
			EndTime:         entry.end,
			WaterAmount:     total * float64(entry.share) / shareDenominator,
			CumulativeWater: cumulative,
			Description:     entry.description,
			Kind:            kind,
		})
	}

	return Schedule{coffee: coffee, phases: phases}
}

// Coffee returns the dose the schedule was built for.
func (sched Schedule) Coffee() int {
	return sched.coffee
}

// TotalWater returns the cumulative water of the final phase.
func (sched Schedule) TotalWater() float64 {
	if len(sched.phases) == 0 {
		return 0
	}
	return sched.phases[len(sched.phases)-1].CumulativeWater
}

// TotalDuration returns the end time of the final phase.
func (sched Schedule) TotalDuration() int {
	if len(sched.phases) == 0 {
		return 0
	}
	return sched.phases[len(sched.phases)-1].EndTime
}

// Len returns the number of phases.
func (sched Schedule) Len() int {
	return len(sched.phases)
}

// Phases returns a copy of the phase list.
func (sched Schedule) Phases() []Phase {
	return append([]Phase(nil), sched.phases...)
}

// Phase returns the phase with the given index.
func (sched Schedule) Phase(id int) (Phase, bool) {
	if id < 0 || id >= len(sched.phases) {
		return Phase{}, false
	}
	return sched.phases[id], true
}

// Last returns the final phase.
func (sched Schedule) Last() Phase {
	if len(sched.phases) == 0 {
		return Phase{}
	}
	return sched.phases[len(sched.phases)-1]
}

// StartingAt returns the phase whose start time equals second.
func (sched Schedule) StartingAt(second int) (Phase, bool) {
	for _, phase := range sched.phases {
		if phase.StartTime == second {
			return phase, true
		}
	}
	return Phase{}, false
}

// IndexAt returns the greatest phase index whose start time is at or before
// second, never less than zero.
func (sched Schedule) IndexAt(second int) int {
	index := 0
	for i, phase := range sched.phases {
		if phase.StartTime > second {
			break
		}
		index = i
	}
	return index
}

// RoundGrams rounds a water amount to whole grams for display.
func RoundGrams(grams float64) int {
	return int(math.Round(grams))
}
