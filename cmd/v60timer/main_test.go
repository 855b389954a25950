package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"v60timer/internal/storage"
	"v60timer/internal/ui/preferences"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	if !containsFlag(args, "--config") {
		args = append(args, "--config", filepath.Join(t.TempDir(), "settings.yaml"))
	}

	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func containsFlag(args []string, flag string) bool {
	for _, arg := range args {
		if arg == flag {
			return true
		}
	}
	return false
}

func TestScheduleCommand_Table(t *testing.T) {
	out, err := runCLI(t, "schedule", "--coffee", "15")
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	for _, want := range []string{
		"Coffee 15 g · water 250 g · 03:00",
		"00:00-00:15",
		"Bloom pour",
		"Final pour",
		"02:00-03:00",
		"250 g",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestScheduleCommand_JSON(t *testing.T) {
	out, err := runCLI(t, "schedule", "--coffee", "15", "--json")
	if err != nil {
		t.Fatalf("schedule --json: %v", err)
	}

	var got scheduleJSON
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(got.Phases) != 10 {
		t.Fatalf("phases = %d, want 10", len(got.Phases))
	}
	if got.TotalDuration != 180 {
		t.Errorf("total duration = %d, want 180", got.TotalDuration)
	}
	if last := got.Phases[9]; last.CumulativeWater != 250 || last.End != 180 {
		t.Errorf("last phase = %+v, want 250 g ending at 180", last)
	}
}

func TestScheduleCommand_DefaultsToSavedDose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	settings := preferences.DefaultSettings()
	settings.CoffeeAmount = 18
	if err := storage.SaveSettings(path, settings); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}

	out, err := runCLI(t, "schedule", "--json", "--config", path)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	var got scheduleJSON
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Coffee != 18 || got.TotalWater != 300 {
		t.Errorf("coffee=%d water=%v, want 18/300", got.Coffee, got.TotalWater)
	}
}

func TestScheduleCommand_RejectsZeroDose(t *testing.T) {
	if _, err := runCLI(t, "schedule", "--coffee", "0"); err == nil {
		t.Fatal("expected error for zero dose")
	}
}

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"default", []string{"split", "--coffee", "15"}, []string{"220 ml", "105 ml / 7 g", "115 ml / 8 g", "15 ml"}},
		{"requested", []string{"split", "--coffee", "15", "--cup-a", "40"}, []string{"45 ml / 3 g", "175 ml / 12 g"}},
		{"clamped", []string{"split", "--coffee", "15", "--cup-a", "999"}, []string{"220 ml / 15 g", "0 ml / 0 g"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, tt.args...)
			if err != nil {
				t.Fatalf("split: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestSplitCommand_JSON(t *testing.T) {
	out, err := runCLI(t, "split", "--coffee", "15", "--json")
	if err != nil {
		t.Fatalf("split --json: %v", err)
	}
	var got map[string]int
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["coffee_g"] != 15 || got["cup_a_ml"] != 105 || got["cup_b_ml"] != 115 {
		t.Errorf("split json = %v", got)
	}
}

func TestBrewCommand_RunsToCompletion(t *testing.T) {
	out, err := runCLI(t, "brew", "--coffee", "15", "--tick", "1ms")
	if err != nil {
		t.Fatalf("brew: %v", err)
	}
	for _, want := range []string{
		"Brewing 15 g coffee with 250 g water",
		"00:00  Bloom pour: pour to 50 g",
		"01:50  Final pour: pour to 250 g",
		"Brew finished at 03:00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestBrewCommand_RejectsBadLogFormat(t *testing.T) {
	if _, err := runCLI(t, "brew", "--coffee", "15", "--log-format", "xml"); err == nil {
		t.Fatal("expected error for unsupported log format")
	}
}
