package cpu

import (
	"testing"

	"nitro-gb-core/internal/memory"
)

// flatCart is a writable stand-in cartridge: a bare Bus drops writes into
// ROM space, so tests need it to place programs at 0x0100.
type flatCart struct {
	rom, ram [0x10000]uint8
}

func (f *flatCart) ReadROM(addr uint16) uint8     { return f.rom[addr] }
func (f *flatCart) WriteROM(addr uint16, v uint8) { f.rom[addr] = v }
func (f *flatCart) ReadRAM(addr uint16) uint8     { return f.ram[addr] }
func (f *flatCart) WriteRAM(addr uint16, v uint8) { f.ram[addr] = v }

func newTestCPU() (*CPU, *memory.Bus) {
	c := NewCPU()
	bus := memory.NewBus()
	bus.SetCartridge(&flatCart{})
	return c, bus
}

func loadProgram(bus *memory.Bus, at uint16, bytes ...uint8) {
	for i, b := range bytes {
		bus.WriteByte(at+uint16(i), b)
	}
}

func TestLDBCd16(t *testing.T) {
	c, bus := newTestCPU()
	c.PC = 0x0100
	loadProgram(bus, 0x0100, 0x01, 0x34, 0x12) // LD BC,0x1234
	if _, err := c.Step(bus); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.BC() != 0x1234 {
		t.Errorf("BC = %#x, want 0x1234", c.BC())
	}
}

func TestINCBSetsZeroFlagOnWrap(t *testing.T) {
	c, bus := newTestCPU()
	c.PC = 0x0100
	c.B = 0xFF
	loadProgram(bus, 0x0100, 0x04) // INC B
	if _, err := c.Step(bus); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.B != 0x00 || !c.GetFlag(FlagZ) || !c.GetFlag(FlagH) || c.GetFlag(FlagN) {
		t.Errorf("after INC B from 0xFF: B=%#x F=%#x", c.B, c.F)
	}
}

func TestRLCAWrapsCarryIntoBit0(t *testing.T) {
	c, bus := newTestCPU()
	c.PC = 0x0100
	c.A = 0x85
	loadProgram(bus, 0x0100, 0x07) // RLCA
	if _, err := c.Step(bus); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A != 0x0B || !c.GetFlag(FlagC) {
		t.Errorf("RLCA(0x85) = A=%#x C=%v, want A=0x0B C=true", c.A, c.GetFlag(FlagC))
	}
	if c.GetFlag(FlagZ) {
		t.Errorf("RLCA must never set Z regardless of result")
	}
}

func TestXORASelfZeroesAndSetsZ(t *testing.T) {
	c, bus := newTestCPU()
	c.PC = 0x0100
	c.A = 0x7A
	loadProgram(bus, 0x0100, 0xAF) // XOR A
	if _, err := c.Step(bus); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A != 0x00 || !c.GetFlag(FlagZ) || c.GetFlag(FlagN) || c.GetFlag(FlagH) || c.GetFlag(FlagC) {
		t.Errorf("XOR A: A=%#x F=%#x, want A=0 Z set only", c.A, c.F)
	}
}

func TestRegisterPairRoundTrip(t *testing.T) {
	c, _ := newTestCPU()
	c.SetBC(0xBEEF)
	if c.B != 0xBE || c.C != 0xEF || c.BC() != 0xBEEF {
		t.Errorf("SetBC round trip failed: B=%#x C=%#x BC=%#x", c.B, c.C, c.BC())
	}
	c.SetAF(0x12FF)
	if c.F&0x0F != 0 {
		t.Errorf("AF low nibble must always read zero, got F=%#x", c.F)
	}
}

func TestCallAndReturn(t *testing.T) {
	c, bus := newTestCPU()
	c.PC = 0x0100
	c.SP = 0xFFFE
	loadProgram(bus, 0x0100, 0xCD, 0x00, 0x02) // CALL 0x0200
	loadProgram(bus, 0x0200, 0xC9)             // RET

	if _, err := c.Step(bus); err != nil {
		t.Fatalf("CALL step: %v", err)
	}
	if c.PC != 0x0200 {
		t.Fatalf("PC after CALL = %#x, want 0x0200", c.PC)
	}
	if _, err := c.Step(bus); err != nil {
		t.Fatalf("RET step: %v", err)
	}
	if c.PC != 0x0103 {
		t.Errorf("PC after RET = %#x, want 0x0103", c.PC)
	}
}

func TestConditionalJumpCyclesDifferWhenNotTaken(t *testing.T) {
	c, bus := newTestCPU()
	c.PC = 0x0100
	c.SetFlag(FlagZ, true) // NZ condition false, branch not taken
	loadProgram(bus, 0x0100, 0x20, 0x05) // JR NZ,+5

	cycles, err := c.Step(bus)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if cycles != 8 {
		t.Errorf("JR NZ not-taken cycles = %d, want 8", cycles)
	}
	if c.PC != 0x0102 {
		t.Errorf("PC after not-taken JR = %#x, want 0x0102", c.PC)
	}
}

func TestHaltWakesOnPendingInterruptEvenWithIMEOff(t *testing.T) {
	c, bus := newTestCPU()
	c.Halted = true
	c.IME = false
	bus.IE().Write(0x01)
	bus.Register(memory.RegIF).Write(0x01)

	cycles, err := c.Step(bus)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.Halted {
		t.Errorf("CPU should have woken from HALT")
	}
	_ = cycles
}

func TestInterruptDispatchPushesPCAndJumpsToVector(t *testing.T) {
	c, bus := newTestCPU()
	c.PC = 0x0150
	c.SP = 0xFFFE
	c.IME = true
	bus.IE().Write(0x01)       // VBlank enabled
	bus.Register(memory.RegIF).Write(0x01) // VBlank pending

	cycles, err := c.Step(bus)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if cycles != 20 {
		t.Errorf("interrupt dispatch cycles = %d, want 20", cycles)
	}
	if c.PC != 0x40 {
		t.Errorf("PC after VBlank dispatch = %#x, want 0x0040", c.PC)
	}
	if c.IME {
		t.Errorf("IME should be cleared during dispatch")
	}
	if bus.Register(memory.RegIF).Read()&0x01 != 0 {
		t.Errorf("IF bit 0 should be cleared after dispatch")
	}
	var returnAddr uint16
	returnAddr, _ = bus.PopWord(c.SP)
	if returnAddr != 0x0150 {
		t.Errorf("pushed return address = %#x, want 0x0150", returnAddr)
	}
}

func TestEIDelaysIMEByOneInstruction(t *testing.T) {
	c, bus := newTestCPU()
	c.PC = 0x0100
	c.IME = false
	loadProgram(bus, 0x0100, 0xFB, 0x00, 0x00) // EI, NOP, NOP

	if _, err := c.Step(bus); err != nil { // EI
		t.Fatalf("EI step: %v", err)
	}
	if c.IME {
		t.Errorf("IME must still be false immediately after EI")
	}
	if _, err := c.Step(bus); err != nil { // first NOP after EI
		t.Fatalf("step: %v", err)
	}
	if !c.IME {
		t.Errorf("IME must be true after the instruction following EI completes")
	}
}

func TestUnknownOpcodeReturnsError(t *testing.T) {
	c, bus := newTestCPU()
	c.PC = 0x0100
	loadProgram(bus, 0x0100, 0xD3) // invalid opcode
	if _, err := c.Step(bus); err == nil {
		t.Errorf("expected ErrUnknownOpcode for 0xD3")
	}
}

func TestCBBitInstruction(t *testing.T) {
	c, bus := newTestCPU()
	c.PC = 0x0100
	c.B = 0x00
	loadProgram(bus, 0x0100, 0xCB, 0x40) // BIT 0,B
	if _, err := c.Step(bus); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !c.GetFlag(FlagZ) || !c.GetFlag(FlagH) || c.GetFlag(FlagN) {
		t.Errorf("BIT 0,B on zero register: F=%#x, want Z,H set and N clear", c.F)
	}
}
