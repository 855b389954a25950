package animation

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"
)

func TestRange_Random(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	value := Range{Min: 10 * time.Millisecond, Max: 20 * time.Millisecond}
	for i := 0; i < 100; i++ {
		got := value.Random(rng)
		if got < value.Min || got >= value.Max {
			t.Fatalf("Random = %v, outside [%v, %v)", got, value.Min, value.Max)
		}
	}
	if got := (Range{Min: time.Second, Max: time.Second}).Random(rng); got != time.Second {
		t.Errorf("degenerate range = %v, want 1s", got)
	}
}

func TestEngine_PulsesUntilStopped(t *testing.T) {
	var mu sync.Mutex
	var states []bool
	dimSeen := make(chan struct{}, 1)

	engine := New(Config{
		BrightDuration: Range{Min: time.Millisecond, Max: time.Millisecond},
		DimDuration:    Range{Min: time.Millisecond, Max: time.Millisecond},
	}, func(bright bool) {
		mu.Lock()
		states = append(states, bright)
		mu.Unlock()
		if !bright {
			select {
			case dimSeen <- struct{}{}:
			default:
			}
		}
	})

	engine.Start(context.Background())
	if !engine.Running() {
		t.Fatal("engine not running after Start")
	}

	select {
	case <-dimSeen:
	case <-time.After(2 * time.Second):
		t.Fatal("no dim update observed")
	}

	engine.Stop()
	if engine.Running() {
		t.Error("engine still running after Stop")
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		last := states[len(states)-1]
		mu.Unlock()
		if last {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Error("indicator not left bright after Stop")
}

func TestEngine_StopWithoutStart(t *testing.T) {
	engine := New(DefaultConfig(), func(bool) {})
	engine.Stop()
	if engine.Running() {
		t.Error("engine running without Start")
	}
}
