package brew

import "time"

// EventType defines the type of Timer event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventTick        EventType = "tick"
	EventPhaseChange EventType = "phase_change"
	EventDoseChange  EventType = "dose_change"
)

// Event represents a Timer update for observers.
type Event struct {
	Type     EventType
	Snapshot Snapshot
	At       time.Time
}

// Ticker delivers clock ticks until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickSource creates tickers. The Timer acquires one ticker per running
// period.
type TickSource interface {
	NewTicker(interval time.Duration) Ticker
}

type systemTickSource struct{}

type systemTicker struct {
	ticker *time.Ticker
}

// SystemTicks returns a TickSource backed by time.Ticker.
func SystemTicks() TickSource {
	return systemTickSource{}
}

func (systemTickSource) NewTicker(interval time.Duration) Ticker {
	return &systemTicker{ticker: time.NewTicker(interval)}
}

func (ticker *systemTicker) C() <-chan time.Time {
	return ticker.ticker.C
}

func (ticker *systemTicker) Stop() {
	ticker.ticker.Stop()
}
