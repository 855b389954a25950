package brew

import (
	"log/slog"
	"sync"
	"time"

	"v60timer/internal/core/model"
	"v60timer/internal/core/schedule"
	"v60timer/internal/logging"
)

// Config contains runtime options for Timer.
type Config struct {
	TickInterval time.Duration
	Ticks        TickSource
	Logger       *slog.Logger
}

// Timer owns a brew State and drives it from a ticker while running.
type Timer struct {
	mu      sync.Mutex
	config  model.BrewConfig
	options Config
	logger  *slog.Logger
	state   State
	sched   schedule.Schedule
	events  []chan Event
	ticker  Ticker
	stopCh  chan struct{}
	closed  bool
}

// New creates an idle Timer with the provided configuration.
func New(config model.BrewConfig, options Config) *Timer {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Ticks == nil {
		options.Ticks = SystemTicks()
	}
	if config.CoffeeAmount < 1 {
		config.CoffeeAmount = DefaultCoffee
	}
	if config.AdjustStep <= 0 {
		config.AdjustStep = 5 * time.Second
	}

	state := NewState(config.CoffeeAmount)
	return &Timer{
		config:  config,
		options: options,
		logger:  logging.NewComponentLogger(options.Logger, "brew"),
		state:   state,
		sched:   schedule.Build(state.CoffeeAmount),
	}
}

// Subscribe registers a new observer channel.
func (timer *Timer) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if timer.closed {
		close(ch)
		return ch
	}
	timer.events = append(timer.events, ch)
	return ch
}

// Snapshot returns the current renderer view.
func (timer *Timer) Snapshot() Snapshot {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return NewSnapshot(timer.state, timer.sched)
}

// Schedule returns the phase schedule for the current dose.
func (timer *Timer) Schedule() schedule.Schedule {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.sched
}

// Config returns the active brew configuration.
func (timer *Timer) Config() model.BrewConfig {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.config
}

// Start begins a fresh brew.
func (timer *Timer) Start() {
	timer.update(Start)
}

// Pause freezes the clock.
func (timer *Timer) Pause() {
	timer.update(Pause)
}

// Resume continues a paused brew.
func (timer *Timer) Resume() {
	timer.update(Resume)
}

// TogglePlay starts, pauses or resumes depending on the current status.
func (timer *Timer) TogglePlay() {
	timer.update(TogglePlay)
}

// Reset stops the clock and returns to idle.
func (timer *Timer) Reset() {
	timer.update(Reset)
}

// AdjustTime shifts the clock by delta seconds.
func (timer *Timer) AdjustTime(delta int) {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	timer.applyLocked(AdjustTime(timer.state, timer.sched, delta))
}

// SkipForward moves the clock forward by the configured step.
func (timer *Timer) SkipForward() {
	timer.AdjustTime(timer.Config().AdjustSeconds())
}

// SkipBack moves the clock back by the configured step.
func (timer *Timer) SkipBack() {
	timer.AdjustTime(-timer.Config().AdjustSeconds())
}

// SetCoffeeAmount changes the dose while the clock is stopped.
func (timer *Timer) SetCoffeeAmount(grams int) {
	timer.update(func(state State) State {
		return SetCoffeeAmount(state, grams)
	})
}

// AdjustCoffee changes the dose by delta grams.
func (timer *Timer) AdjustCoffee(delta int) {
	timer.update(func(state State) State {
		return AdjustCoffee(state, delta)
	})
}

// SetSplitA chooses the cup A share in ml.
func (timer *Timer) SetSplitA(ml int) {
	timer.update(func(state State) State {
		return SetSplitA(state, ml)
	})
}

// UpdateConfig applies new settings. The dose only changes while idle.
func (timer *Timer) UpdateConfig(config model.BrewConfig) {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	if config.AdjustStep <= 0 {
		config.AdjustStep = timer.config.AdjustStep
	}
	if config.CoffeeAmount < 1 {
		config.CoffeeAmount = timer.config.CoffeeAmount
	}
	timer.config = config
	if timer.state.Status == StatusIdle {
		timer.applyLocked(SetCoffeeAmount(timer.state, config.CoffeeAmount))
	}
}

// Close stops the ticker and closes observers. The Timer ignores further
// commands.
func (timer *Timer) Close() {
	timer.mu.Lock()
	if timer.closed {
		timer.mu.Unlock()
		return
	}
	timer.closed = true
	timer.releaseTickerLocked()
	events := timer.events
	timer.events = nil
	timer.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (timer *Timer) update(transition func(State) State) {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	timer.applyLocked(transition(timer.state))
}

func (timer *Timer) run(ticker Ticker, stopCh chan struct{}) {
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C():
			timer.tick(stopCh)
		}
	}
}

func (timer *Timer) tick(stopCh chan struct{}) {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	// A tick that raced with release belongs to a previous running period.
	if timer.stopCh != stopCh {
		return
	}
	timer.applyLocked(Tick(timer.state, timer.sched))
}

func (timer *Timer) applyLocked(next State) {
	if timer.closed {
		return
	}
	prev := timer.state
	timer.state = next

	if next.CoffeeAmount != prev.CoffeeAmount {
		timer.sched = schedule.Build(next.CoffeeAmount)
	}

	if next.Status == StatusRunning {
		timer.acquireTickerLocked()
	} else {
		timer.releaseTickerLocked()
	}

	now := time.Now()
	snapshot := NewSnapshot(next, timer.sched)

	if next.Status != prev.Status || next.SessionID != prev.SessionID {
		timer.logTransitionLocked(prev, next)
		timer.emitLocked(Event{Type: EventStateChange, Snapshot: snapshot, At: now})
	}
	if next.PhaseID != prev.PhaseID {
		timer.logger.Info("phase changed",
			logging.FieldSession, next.SessionID,
			"phase", snapshot.Phase.Description,
			"phase_number", snapshot.PhaseNumber,
			"elapsed", snapshot.Time,
			"cumulative_water", schedule.RoundGrams(snapshot.CumulativeWater),
		)
		timer.emitLocked(Event{Type: EventPhaseChange, Snapshot: snapshot, At: now})
	}
	if next.Elapsed != prev.Elapsed {
		timer.emitLocked(Event{Type: EventTick, Snapshot: snapshot, At: now})
	}
	if next.CoffeeAmount != prev.CoffeeAmount || !sameSplit(next.SplitA, prev.SplitA) {
		timer.emitLocked(Event{Type: EventDoseChange, Snapshot: snapshot, At: now})
	}
}

func (timer *Timer) logTransitionLocked(prev, next State) {
	attrs := []any{
		logging.FieldSession, next.SessionID,
		"coffee_g", next.CoffeeAmount,
		"elapsed", FormatTime(next.Elapsed),
	}
	switch {
	case next.Status == StatusRunning && prev.Status == StatusPaused:
		timer.logger.Info("brew resumed", attrs...)
	case next.Status == StatusRunning:
		timer.logger.Info("brew started", attrs...)
	case next.Status == StatusPaused:
		timer.logger.Info("brew paused", attrs...)
	case next.Status == StatusFinished:
		timer.logger.Info("brew finished", attrs...)
	case next.Status == StatusIdle:
		timer.logger.Info("brew reset", attrs...)
	}
}

func (timer *Timer) acquireTickerLocked() {
	if timer.stopCh != nil {
		return
	}
	ticker := timer.options.Ticks.NewTicker(timer.options.TickInterval)
	stopCh := make(chan struct{})
	timer.ticker = ticker
	timer.stopCh = stopCh
	go timer.run(ticker, stopCh)
}

func (timer *Timer) releaseTickerLocked() {
	if timer.stopCh == nil {
		return
	}
	close(timer.stopCh)
	timer.ticker.Stop()
	timer.stopCh = nil
	timer.ticker = nil
}

func (timer *Timer) emitLocked(event Event) {
	for _, ch := range timer.events {
		select {
		case ch <- event:
		default:
		}
	}
}

func sameSplit(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
