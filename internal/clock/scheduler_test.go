package clock

import (
	"errors"
	"testing"
)

func TestStepDrivesAPUWithCPUCycleCount(t *testing.T) {
	c := NewMasterClock()
	var apuCycles uint64
	c.CPUStep = func() (uint64, error) { return 16, nil }
	c.APUStep = func(cycles uint64) error { apuCycles = cycles; return nil }

	n, err := c.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if n != 16 || apuCycles != 16 {
		t.Errorf("Step returned %d, APU saw %d cycles, want 16 both", n, apuCycles)
	}
	if c.GetCycle() != 16 {
		t.Errorf("Cycle = %d, want 16", c.GetCycle())
	}
}

func TestRunCyclesAccumulatesAcrossVariableSteps(t *testing.T) {
	c := NewMasterClock()
	calls := []uint64{4, 12, 20}
	i := 0
	c.CPUStep = func() (uint64, error) {
		v := calls[i]
		i++
		return v, nil
	}
	c.APUStep = func(cycles uint64) error { return nil }

	ran, err := c.RunCycles(30)
	if err != nil {
		t.Fatalf("RunCycles: %v", err)
	}
	if ran != 36 { // 4+12+20, overshoots the 30 target rather than stopping mid-step
		t.Errorf("RunCycles = %d, want 36", ran)
	}
}

func TestStepPropagatesCPUError(t *testing.T) {
	c := NewMasterClock()
	wantErr := errors.New("boom")
	c.CPUStep = func() (uint64, error) { return 0, wantErr }

	if _, err := c.Step(); !errors.Is(err, wantErr) {
		t.Errorf("Step error = %v, want wrapping %v", err, wantErr)
	}
}

func TestResetZeroesCycle(t *testing.T) {
	c := NewMasterClock()
	c.CPUStep = func() (uint64, error) { return 8, nil }
	c.Step()
	c.Reset()
	if c.GetCycle() != 0 {
		t.Errorf("Cycle after Reset = %d, want 0", c.GetCycle())
	}
}
