package tray

import (
	"testing"

	"v60timer/internal/core/brew"
	"v60timer/internal/core/schedule"
)

func snapshotAt(status brew.Status, elapsed int) brew.Snapshot {
	sched := schedule.Build(15)
	state := brew.NewState(15)
	state.Status = status
	state.Elapsed = elapsed
	state.PhaseID = sched.IndexAt(elapsed)
	return brew.NewSnapshot(state, sched)
}

func TestManager_SetStatus(t *testing.T) {
	manager := New(nil, Callbacks{})

	tests := []struct {
		status     brew.Status
		elapsed    int
		wantPlay   string
		wantStatus string
		resetOff   bool
	}{
		{brew.StatusIdle, 0, "Start brew", "Ready · 15g coffee", true},
		{brew.StatusRunning, 20, "Pause", "00:20 · Rest", false},
		{brew.StatusPaused, 50, "Resume", "00:50 · Second pour (paused)", false},
		{brew.StatusFinished, 180, "Start brew", "Brew finished", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			manager.SetStatus(snapshotAt(tt.status, tt.elapsed))
			if manager.playItem.Label != tt.wantPlay {
				t.Errorf("play label = %q, want %q", manager.playItem.Label, tt.wantPlay)
			}
			if manager.statusItem.Label != tt.wantStatus {
				t.Errorf("status label = %q, want %q", manager.statusItem.Label, tt.wantStatus)
			}
			if manager.resetItem.Disabled != tt.resetOff {
				t.Errorf("reset disabled = %v, want %v", manager.resetItem.Disabled, tt.resetOff)
			}
		})
	}
}

func TestManager_MenuActions(t *testing.T) {
	var toggled, reset, shown int
	manager := New(nil, Callbacks{
		OnShow:       func() { shown++ },
		OnTogglePlay: func() { toggled++ },
		OnReset:      func() { reset++ },
	})

	menu := manager.Menu()
	if menu.Label != "V60 Timer" {
		t.Errorf("menu label = %q", menu.Label)
	}
	manager.showItem.Action()
	manager.playItem.Action()
	manager.playItem.Action()
	manager.resetItem.Action()
	// No preferences callback configured.
	manager.prefsItem.Action()

	if shown != 1 || toggled != 2 || reset != 1 {
		t.Errorf("shown=%d toggled=%d reset=%d", shown, toggled, reset)
	}
}
