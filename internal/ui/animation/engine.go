package animation

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Range defines a duration range with random sampling.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Random returns a random duration within the range.
func (value Range) Random(rng *rand.Rand) time.Duration {
	if value.Max <= value.Min {
		return value.Min
	}
	delta := value.Max - value.Min
	return value.Min + time.Duration(rng.Int63n(int64(delta)))
}

// Config contains pulse timing values.
type Config struct {
	BrightDuration Range
	DimDuration    Range
}

// DefaultConfig returns the pour indicator rhythm.
func DefaultConfig() Config {
	return Config{
		BrightDuration: Range{Min: 550 * time.Millisecond, Max: 650 * time.Millisecond},
		DimDuration:    Range{Min: 350 * time.Millisecond, Max: 450 * time.Millisecond},
	}
}

// Engine pulses an indicator between bright and dim while a pour is due.
type Engine struct {
	mu     sync.Mutex
	config Config
	update func(bright bool)
	cancel context.CancelFunc
	rng    *rand.Rand
}

// New creates a new pulse engine. update receives every bright/dim change
// from the engine goroutine.
func New(config Config, update func(bright bool)) *Engine {
	return &Engine{
		config: config,
		update: update,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start begins pulsing until ctx is done or Stop is called. Starting an
// already running engine keeps the current pulse.
func (engine *Engine) Start(ctx context.Context) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.mu.Unlock()
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	engine.cancel = cancel
	engine.mu.Unlock()

	go engine.run(runCtx)
}

// Stop terminates the pulse and leaves the indicator bright.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	cancel := engine.cancel
	engine.cancel = nil
	engine.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Running reports whether a pulse is active.
func (engine *Engine) Running() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.cancel != nil
}

func (engine *Engine) run(ctx context.Context) {
	defer engine.update(true)
	for {
		engine.update(true)
		if !sleepWithContext(ctx, engine.sample(engine.config.BrightDuration)) {
			return
		}
		engine.update(false)
		if !sleepWithContext(ctx, engine.sample(engine.config.DimDuration)) {
			return
		}
	}
}

func (engine *Engine) sample(value Range) time.Duration {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return value.Random(engine.rng)
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
