// Package cpu implements the Sharp LR35902 instruction set: register file,
// flag derivation, interrupt dispatch, and the fetch/decode/execute loop
// driven once per MasterClock.Step() call.
package cpu

import (
	"errors"
	"fmt"

	"nitro-gb-core/internal/debug"
	"nitro-gb-core/internal/memory"
)

// Flag bit positions within F, matching the hardware layout (bits 3-0 are
// always zero).
const (
	FlagZ uint8 = 1 << 7
	FlagN uint8 = 1 << 6
	FlagH uint8 = 1 << 5
	FlagC uint8 = 1 << 4
)

// Interrupt vectors, indexed by IF/IE bit position (0=VBlank .. 4=Joypad).
var interruptVectors = [5]uint16{0x40, 0x48, 0x50, 0x58, 0x60}

// ErrUnknownOpcode is returned when the fetched byte has no entry in the
// dispatch table: the eleven opcodes the LR35902 leaves undefined (0xD3,
// 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD). The CB table
// has no gaps.
var ErrUnknownOpcode = errors.New("cpu: unknown opcode")

// CPU holds the Sharp LR35902 register file and execution state.
type CPU struct {
	A, F          uint8
	B, C          uint8
	D, E          uint8
	H, L          uint8
	SP, PC        uint16

	IME            bool
	imeEnableDelay int // EI takes effect after the instruction following it

	Halted  bool
	Stopped bool

	Cycles uint64

	logger *debug.Logger
}

// NewCPU creates a CPU in its post-BIOS DMG power-up state (spec §4.2.1).
func NewCPU() *CPU {
	c := &CPU{}
	c.Reset()
	return c
}

// SetLogger attaches a logger for per-instruction tracing.
func (c *CPU) SetLogger(logger *debug.Logger) {
	c.logger = logger
}

// Reset restores the documented DMG post-boot-ROM register values.
func (c *CPU) Reset() {
	c.A, c.F = 0x01, 0xB0
	c.B, c.C = 0x00, 0x13
	c.D, c.E = 0x00, 0xD8
	c.H, c.L = 0x01, 0x4D
	c.SP = 0xFFFE
	c.PC = 0x0100
	c.IME = false
	c.imeEnableDelay = 0
	c.Halted = false
	c.Stopped = false
	c.Cycles = 0
}

// Register pair accessors.

func (c *CPU) BC() uint16 { return uint16(c.B)<<8 | uint16(c.C) }
func (c *CPU) DE() uint16 { return uint16(c.D)<<8 | uint16(c.E) }
func (c *CPU) HL() uint16 { return uint16(c.H)<<8 | uint16(c.L) }
func (c *CPU) AF() uint16 { return uint16(c.A)<<8 | uint16(c.F&0xF0) }

func (c *CPU) SetBC(v uint16) { c.B, c.C = uint8(v>>8), uint8(v) }
func (c *CPU) SetDE(v uint16) { c.D, c.E = uint8(v>>8), uint8(v) }
func (c *CPU) SetHL(v uint16) { c.H, c.L = uint8(v>>8), uint8(v) }
func (c *CPU) SetAF(v uint16) { c.A, c.F = uint8(v>>8), uint8(v)&0xF0 }

// Flag accessors.

func (c *CPU) GetFlag(mask uint8) bool { return c.F&mask != 0 }

func (c *CPU) SetFlag(mask uint8, set bool) {
	if set {
		c.F |= mask
	} else {
		c.F &^= mask
	}
}

// fetch8 reads the byte at PC and advances PC by one.
func (c *CPU) fetch8(bus *memory.Bus) uint8 {
	v := bus.ReadByte(c.PC)
	c.PC++
	return v
}

// fetch16 reads a little-endian word at PC and advances PC by two.
func (c *CPU) fetch16(bus *memory.Bus) uint16 {
	v := bus.ReadWord(c.PC)
	c.PC += 2
	return v
}

// Step executes one unit of CPU work — either an interrupt dispatch, one
// halted idle tick, or one instruction — and returns the T-states consumed.
// This is the function MasterClock.CPUStep wraps (spec §4.2.1, §6).
func (c *CPU) Step(bus *memory.Bus) (uint64, error) {
	if cycles, handled := c.serviceInterrupt(bus); handled {
		c.Cycles += cycles
		return cycles, nil
	}

	if c.Halted {
		// A pending-but-masked interrupt still wakes the CPU from HALT even
		// though IME is off; it just doesn't get dispatched.
		if bus.Register(memory.RegIF).Read()&bus.IE().Read()&0x1F != 0 {
			c.Halted = false
		} else {
			c.Cycles += 4
			return 4, nil
		}
	}

	if c.imeEnableDelay > 0 {
		c.imeEnableDelay--
		if c.imeEnableDelay == 0 {
			c.IME = true
		}
	}

	opcodeByte := c.fetch8(bus)
	startPC := c.PC - 1

	var op *Opcode
	if opcodeByte == 0xCB {
		cbByte := c.fetch8(bus)
		op = &cbOpcodes[cbByte]
	} else {
		op = &opcodes[opcodeByte]
	}
	if op.Effect == nil {
		return 0, fmt.Errorf("%w: 0x%02X at PC=0x%04X", ErrUnknownOpcode, opcodeByte, startPC)
	}

	if c.logger != nil && c.logger.IsComponentEnabled(debug.ComponentCPU) {
		c.logger.LogCPUf(debug.LogLevelTrace, "PC=%04X op=%02X (%s) AF=%04X BC=%04X DE=%04X HL=%04X SP=%04X",
			startPC, opcodeByte, op.Mnemonic, c.AF(), c.BC(), c.DE(), c.HL(), c.SP)
	}

	branchTaken, err := op.Effect(c, bus)
	if err != nil {
		return 0, fmt.Errorf("executing %s at PC=0x%04X: %w", op.Mnemonic, startPC, err)
	}

	cycles := uint64(op.Cycles)
	if branchTaken && op.CyclesAlt != 0 {
		cycles = uint64(op.CyclesAlt)
	}
	c.Cycles += cycles
	return cycles, nil
}

// serviceInterrupt dispatches the highest-priority pending, enabled
// interrupt if IME is set, pushing PC and jumping to its vector. Returns
// (20 T-states, true) if one was dispatched.
func (c *CPU) serviceInterrupt(bus *memory.Bus) (uint64, bool) {
	if !c.IME {
		return 0, false
	}
	ifReg := bus.Register(memory.RegIF)
	pending := ifReg.Read() & bus.IE().Read() & 0x1F
	if pending == 0 {
		return 0, false
	}

	for bit := 0; bit < 5; bit++ {
		if pending&(1<<bit) == 0 {
			continue
		}
		c.IME = false
		c.Halted = false
		ifReg.Write(ifReg.Read() &^ (1 << bit))
		c.SP = bus.PushWord(c.SP, c.PC)
		c.PC = interruptVectors[bit]
		return 20, true
	}
	return 0, false
}

// RequestEnableIME schedules IME to become true after the instruction that
// follows the current one finishes — the documented EI delay.
func (c *CPU) RequestEnableIME() {
	c.imeEnableDelay = 1
}
