package schedule

import (
	"errors"
	"math"
	"testing"
)

func TestBuild_PhasesPartitionBrew(t *testing.T) {
	for coffee := 1; coffee <= 60; coffee++ {
		sched := Build(coffee)
		phases := sched.Phases()
		if len(phases) == 0 {
			t.Fatalf("coffee %d: empty schedule", coffee)
		}
		if phases[0].StartTime != 0 {
			t.Errorf("coffee %d: first phase starts at %d, want 0", coffee, phases[0].StartTime)
		}
		for i, phase := range phases {
			if phase.ID != i {
				t.Errorf("coffee %d: phase %d has id %d", coffee, i, phase.ID)
			}
			if phase.EndTime <= phase.StartTime {
				t.Errorf("coffee %d: phase %d window %d-%d is empty", coffee, i, phase.StartTime, phase.EndTime)
			}
			if i > 0 && phases[i-1].EndTime != phase.StartTime {
				t.Errorf("coffee %d: gap between phase %d and %d", coffee, i-1, i)
			}
			if i > 0 && phase.CumulativeWater < phases[i-1].CumulativeWater {
				t.Errorf("coffee %d: cumulative water decreased at phase %d", coffee, i)
			}
		}
		if got := sched.TotalDuration(); got != TotalDuration {
			t.Errorf("coffee %d: TotalDuration = %d, want %d", coffee, got, TotalDuration)
		}
		want := float64(coffee) * 250 / 15
		if got := sched.Last().CumulativeWater; math.Abs(got-want) > 1e-6 {
			t.Errorf("coffee %d: final cumulative water = %f, want %f", coffee, got, want)
		}
	}
}

func TestBuild_WaterSumsToCumulative(t *testing.T) {
	sched := Build(18)
	sum := 0.0
	for _, phase := range sched.Phases() {
		sum += phase.WaterAmount
		if math.Abs(sum-phase.CumulativeWater) > 1e-6 {
			t.Errorf("phase %d: running sum %f, cumulative %f", phase.ID, sum, phase.CumulativeWater)
		}
		if phase.IsPour() != (phase.WaterAmount > 0) {
			t.Errorf("phase %d: kind %q does not match water %f", phase.ID, phase.Kind, phase.WaterAmount)
		}
	}
}

func TestBuild_StandardDose(t *testing.T) {
	sched := Build(15)
	if sched.Len() != 10 {
		t.Fatalf("Len = %d, want 10", sched.Len())
	}
	if got := sched.TotalWater(); got != 250 {
		t.Errorf("TotalWater = %f, want 250", got)
	}
	bloom, _ := sched.Phase(0)
	if bloom.WaterAmount != 50 || bloom.EndTime != 15 {
		t.Errorf("bloom = %+v, want 50 g over 0-15", bloom)
	}
	if got := RoundGrams(sched.phases[3].CumulativeWater); got != 100 {
		t.Errorf("cumulative after second pour = %d, want 100", got)
	}
}

func TestBuild_InvalidDosePanics(t *testing.T) {
	for _, coffee := range []int{0, -3} {
		func() {
			defer func() {
				recovered := recover()
				err, ok := recovered.(error)
				if !ok {
					t.Fatalf("coffee %d: recovered %v, want error", coffee, recovered)
				}
				var doseErr *InvalidDoseError
				if !errors.As(err, &doseErr) || doseErr.Coffee != coffee {
					t.Errorf("coffee %d: recovered %v, want InvalidDoseError", coffee, err)
				}
			}()
			Build(coffee)
		}()
	}
}

func TestIndexAt(t *testing.T) {
	sched := Build(15)
	tests := []struct {
		second int
		want   int
	}{
		{-5, 0},
		{0, 0},
		{14, 0},
		{15, 1},
		{44, 1},
		{45, 2},
		{119, 8},
		{120, 9},
		{180, 9},
		{500, 9},
	}
	for _, tt := range tests {
		if got := sched.IndexAt(tt.second); got != tt.want {
			t.Errorf("IndexAt(%d) = %d, want %d", tt.second, got, tt.want)
		}
	}
}

func TestStartingAt(t *testing.T) {
	sched := Build(15)
	phase, ok := sched.StartingAt(70)
	if !ok || phase.ID != 4 {
		t.Errorf("StartingAt(70) = %d, %v; want 4, true", phase.ID, ok)
	}
	if _, ok := sched.StartingAt(71); ok {
		t.Errorf("StartingAt(71) found a phase, want none")
	}
}
