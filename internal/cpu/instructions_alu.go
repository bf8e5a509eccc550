package cpu

import (
	"nitro-gb-core/internal/alu"
	"nitro-gb-core/internal/memory"
)

// applyFull commits all four flags from an alu.Result onto F.
func (c *CPU) applyFull(r alu.Result) {
	c.SetFlag(FlagZ, r.Z)
	c.SetFlag(FlagN, r.N)
	c.SetFlag(FlagH, r.H)
	c.SetFlag(FlagC, r.C)
}

// The aluXxxVal functions hold the actual semantics against a literal byte;
// aluXxx (register-operand form) and aluImm(aluXxxVal) (d8-operand form)
// both wrap these so the two addressing modes can never drift apart.

func aluAddVal(c *CPU, v uint8) {
	r := alu.Add8(c.A, v)
	c.A = r.Result8()
	c.applyFull(r)
}

func aluAdcVal(c *CPU, v uint8) {
	r := alu.Adc8(c.A, v, c.GetFlag(FlagC))
	c.A = r.Result8()
	c.applyFull(r)
}

func aluSubVal(c *CPU, v uint8) {
	r := alu.Sub8(c.A, v)
	c.A = r.Result8()
	c.applyFull(r)
}

func aluSbcVal(c *CPU, v uint8) {
	r := alu.Sbc8(c.A, v, c.GetFlag(FlagC))
	c.A = r.Result8()
	c.applyFull(r)
}

func aluAndVal(c *CPU, v uint8) {
	c.A &= v
	c.F = 0
	c.SetFlag(FlagZ, c.A == 0)
	c.SetFlag(FlagH, true)
}

func aluXorVal(c *CPU, v uint8) {
	c.A ^= v
	c.F = 0
	c.SetFlag(FlagZ, c.A == 0)
}

func aluOrVal(c *CPU, v uint8) {
	c.A |= v
	c.F = 0
	c.SetFlag(FlagZ, c.A == 0)
}

func aluCpVal(c *CPU, v uint8) {
	r := alu.Sub8(c.A, v)
	c.applyFull(r)
}

func aluAdd(c *CPU, bus *memory.Bus, idx uint8) (bool, error) {
	aluAddVal(c, getR8(c, bus, idx))
	return false, nil
}

func aluAdc(c *CPU, bus *memory.Bus, idx uint8) (bool, error) {
	aluAdcVal(c, getR8(c, bus, idx))
	return false, nil
}

func aluSub(c *CPU, bus *memory.Bus, idx uint8) (bool, error) {
	aluSubVal(c, getR8(c, bus, idx))
	return false, nil
}

func aluSbc(c *CPU, bus *memory.Bus, idx uint8) (bool, error) {
	aluSbcVal(c, getR8(c, bus, idx))
	return false, nil
}

func aluAnd(c *CPU, bus *memory.Bus, idx uint8) (bool, error) {
	aluAndVal(c, getR8(c, bus, idx))
	return false, nil
}

func aluXor(c *CPU, bus *memory.Bus, idx uint8) (bool, error) {
	aluXorVal(c, getR8(c, bus, idx))
	return false, nil
}

func aluOr(c *CPU, bus *memory.Bus, idx uint8) (bool, error) {
	aluOrVal(c, getR8(c, bus, idx))
	return false, nil
}

func aluCp(c *CPU, bus *memory.Bus, idx uint8) (bool, error) {
	aluCpVal(c, getR8(c, bus, idx))
	return false, nil
}

// aluImm builds the d8-operand (e.g. ADD A,d8) form of an ALU op from its
// value-based core.
func aluImm(core func(*CPU, uint8)) func(*CPU, *memory.Bus) (bool, error) {
	return func(c *CPU, bus *memory.Bus) (bool, error) {
		core(c, c.fetch8(bus))
		return false, nil
	}
}

func incR8(c *CPU, bus *memory.Bus, idx uint8) (bool, error) {
	r := alu.Inc8(getR8(c, bus, idx))
	r.C = c.GetFlag(FlagC)
	setR8(c, bus, idx, r.Result8())
	c.applyFull(r)
	return false, nil
}

func decR8(c *CPU, bus *memory.Bus, idx uint8) (bool, error) {
	r := alu.Dec8(getR8(c, bus, idx))
	r.C = c.GetFlag(FlagC)
	setR8(c, bus, idx, r.Result8())
	c.applyFull(r)
	return false, nil
}

func incR16(c *CPU, idx uint8) (bool, error) {
	setR16(c, idx, getR16(c, idx)+1)
	return false, nil
}

func decR16(c *CPU, idx uint8) (bool, error) {
	setR16(c, idx, getR16(c, idx)-1)
	return false, nil
}

func addHLR16(c *CPU, idx uint8) (bool, error) {
	r := alu.Add16(c.HL(), getR16(c, idx))
	c.SetHL(r.Value)
	c.SetFlag(FlagN, false)
	c.SetFlag(FlagH, r.H)
	c.SetFlag(FlagC, r.C)
	return false, nil
}

// addSPSigned is shared by ADD SP,r8 and LD HL,SP+r8: both add a sign-extended
// immediate byte to SP and derive flags from the low-byte addition only.
func addSPSigned(c *CPU, bus *memory.Bus) (uint16, alu.Result) {
	d8 := int8(c.fetch8(bus))
	r := alu.Add8(uint8(c.SP), uint8(int16(d8)))
	sum := uint16(int32(c.SP) + int32(d8))
	return sum, r
}

func opADDSPr8(c *CPU, bus *memory.Bus) (bool, error) {
	sum, r := addSPSigned(c, bus)
	c.SP = sum
	c.F = 0
	c.SetFlag(FlagH, r.H)
	c.SetFlag(FlagC, r.C)
	return false, nil
}

func opLDHLSPr8(c *CPU, bus *memory.Bus) (bool, error) {
	sum, r := addSPSigned(c, bus)
	c.SetHL(sum)
	c.F = 0
	c.SetFlag(FlagH, r.H)
	c.SetFlag(FlagC, r.C)
	return false, nil
}

func opDAA(c *CPU, bus *memory.Bus) (bool, error) {
	r := alu.Daa(c.A, c.GetFlag(FlagN), c.GetFlag(FlagH), c.GetFlag(FlagC))
	c.A = r.Result8()
	c.SetFlag(FlagZ, r.Z)
	c.SetFlag(FlagH, false)
	c.SetFlag(FlagC, r.C)
	return false, nil
}

func opCPL(c *CPU, bus *memory.Bus) (bool, error) {
	c.A = ^c.A
	c.SetFlag(FlagN, true)
	c.SetFlag(FlagH, true)
	return false, nil
}

func opSCF(c *CPU, bus *memory.Bus) (bool, error) {
	c.SetFlag(FlagN, false)
	c.SetFlag(FlagH, false)
	c.SetFlag(FlagC, true)
	return false, nil
}

func opCCF(c *CPU, bus *memory.Bus) (bool, error) {
	c.SetFlag(FlagN, false)
	c.SetFlag(FlagH, false)
	c.SetFlag(FlagC, !c.GetFlag(FlagC))
	return false, nil
}
