// Package clock drives the CPU and APU in lockstep off the same T-state count,
// the way a real scheduler sits outside the emulator core.
package clock

import (
	"fmt"
)

// DMGClockHz is the Sharp LR35902 master clock rate: 4 T-states per machine cycle.
const DMGClockHz = 4_194_304

// MasterClock coordinates the CPU and APU. Unlike a fixed-rate peripheral, the
// CPU produces a variable number of T-states per Step() call (one instruction,
// or one interrupt dispatch); the APU is driven by that same count immediately
// afterward, so its envelope time base never drifts from what the CPU executed.
type MasterClock struct {
	// Cycle is the total T-state count executed so far.
	Cycle uint64

	// CPUStep executes one CPU step (one instruction or interrupt dispatch)
	// and returns the number of T-states it consumed.
	CPUStep func() (uint64, error)

	// APUStep advances APU envelopes/mixing by the given number of T-states.
	APUStep func(cycles uint64) error

	// PPUStep is an optional hook for a future pixel-processing unit; nil by
	// default since the PPU is outside this module's scope. When set, it runs
	// after APUStep with the same cycle count.
	PPUStep func(cycles uint64) error
}

// NewMasterClock creates a scheduler with no steppers wired; callers assign
// CPUStep/APUStep (and optionally PPUStep) before calling Step.
func NewMasterClock() *MasterClock {
	return &MasterClock{}
}

// Step executes exactly one CPU step and advances the APU (and PPU, if wired)
// by the cycle count that step consumed. Returns that cycle count.
func (c *MasterClock) Step() (uint64, error) {
	if c.CPUStep == nil {
		return 0, fmt.Errorf("clock: CPUStep not set")
	}

	cycles, err := c.CPUStep()
	if err != nil {
		return 0, fmt.Errorf("CPU step error: %w", err)
	}

	if c.APUStep != nil {
		if err := c.APUStep(cycles); err != nil {
			return 0, fmt.Errorf("APU step error: %w", err)
		}
	}

	if c.PPUStep != nil {
		if err := c.PPUStep(cycles); err != nil {
			return 0, fmt.Errorf("PPU step error: %w", err)
		}
	}

	c.Cycle += cycles
	return cycles, nil
}

// RunCycles repeatedly calls Step until at least the given number of T-states
// have been executed. Returns the total number of T-states actually executed
// (which may overshoot by at most one instruction's worth of cycles).
func (c *MasterClock) RunCycles(cycles uint64) (uint64, error) {
	var ran uint64
	for ran < cycles {
		n, err := c.Step()
		if err != nil {
			return ran, err
		}
		ran += n
	}
	return ran, nil
}

// GetCycle returns the total T-state count executed so far.
func (c *MasterClock) GetCycle() uint64 {
	return c.Cycle
}

// Reset zeroes the cycle counter.
func (c *MasterClock) Reset() {
	c.Cycle = 0
}
