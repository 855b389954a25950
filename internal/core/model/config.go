package model

import "time"

// BrewConfig contains runtime settings for the brew Timer.
type BrewConfig struct {
	// CoffeeAmount is the dose in grams a new session starts with.
	CoffeeAmount int
	// AdjustStep is how far the skip controls move the clock.
	AdjustStep time.Duration
}

// AdjustSeconds returns AdjustStep in whole seconds, at least one.
func (config BrewConfig) AdjustSeconds() int {
	seconds := int(config.AdjustStep / time.Second)
	if seconds < 1 {
		return 1
	}
	return seconds
}
