package split

import (
	"math"

	"v60timer/internal/core/schedule"
)

// RetainedPerGram is the water in grams that a gram of grounds holds back.
const RetainedPerGram = 2

// Split divides the expected yield of a brew between two cups.
type Split struct {
	ExpectedYield int `json:"expected_yield_ml"`
	StepMl        int `json:"step_ml"`
	CupA          int `json:"cup_a_ml"`
	CupB          int `json:"cup_b_ml"`
	GroundsA      int `json:"grounds_a_g"`
	GroundsB      int `json:"grounds_b_g"`
}

// ExpectedYield returns the liquid coffee left after the grounds retain water.
func ExpectedYield(coffee int) int {
	liquid := schedule.TotalWater(coffee) - float64(coffee*RetainedPerGram)
	return int(math.Round(math.Max(0, liquid)))
}

// Step returns the split increment in ml: the yield of one gram of grounds.
func Step(coffee int) int {
	yield := ExpectedYield(coffee)
	perGram := float64(yield)
	if coffee > 0 {
		perGram = float64(yield) / float64(coffee)
	}
	step := int(math.Round(perGram))
	if step < 1 {
		return 1
	}
	return step
}

// DefaultCupA returns the initial cup A share: half the yield, rounded up.
func DefaultCupA(coffee int) int {
	return int(math.Ceil(float64(ExpectedYield(coffee)) / 2))
}

// ClampCupA limits a cup A value to the expected yield of the dose.
func ClampCupA(coffee, cupA int) int {
	return clamp(cupA, 0, ExpectedYield(coffee))
}

// Compute derives both cups from the chosen cup A value. A nil cupA selects
// the default half split.
func Compute(coffee int, cupA *int) Split {
	yield := ExpectedYield(coffee)
	step := Step(coffee)

	raw := DefaultCupA(coffee)
	if cupA != nil {
		raw = *cupA
	}

	snapped := int(math.Round(float64(raw)/float64(step))) * step
	a := clamp(snapped, 0, yield)

	groundsA := 0
	if coffee > 0 {
		groundsA = clamp(int(math.Round(float64(a)/float64(step))), 0, coffee)
	}
	groundsB := coffee - groundsA
	if groundsB < 0 {
		groundsB = 0
	}

	return Split{
		ExpectedYield: yield,
		StepMl:        step,
		CupA:          a,
		CupB:          yield - a,
		GroundsA:      groundsA,
		GroundsB:      groundsB,
	}
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
