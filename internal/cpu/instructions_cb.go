package cpu

import (
	"nitro-gb-core/internal/alu"
	"nitro-gb-core/internal/memory"
)

// cbRotateShift wraps an alu.Result-returning rotate/shift primitive into a
// CB-prefixed opcode effect over the standard 3-bit operand field.
func cbRotateShift(f func(uint8) alu.Result, operand uint8) func(*CPU, *memory.Bus) (bool, error) {
	return func(c *CPU, bus *memory.Bus) (bool, error) {
		r := f(getR8(c, bus, operand))
		setR8(c, bus, operand, r.Result8())
		c.F = 0
		c.SetFlag(FlagZ, r.Z)
		c.SetFlag(FlagC, r.C)
		return false, nil
	}
}

func cbRL(operand uint8) func(*CPU, *memory.Bus) (bool, error) {
	return func(c *CPU, bus *memory.Bus) (bool, error) {
		r := alu.Rl(getR8(c, bus, operand), c.GetFlag(FlagC))
		setR8(c, bus, operand, r.Result8())
		c.F = 0
		c.SetFlag(FlagZ, r.Z)
		c.SetFlag(FlagC, r.C)
		return false, nil
	}
}

func cbRR(operand uint8) func(*CPU, *memory.Bus) (bool, error) {
	return func(c *CPU, bus *memory.Bus) (bool, error) {
		r := alu.Rr(getR8(c, bus, operand), c.GetFlag(FlagC))
		setR8(c, bus, operand, r.Result8())
		c.F = 0
		c.SetFlag(FlagZ, r.Z)
		c.SetFlag(FlagC, r.C)
		return false, nil
	}
}

func cbSwap(operand uint8) func(*CPU, *memory.Bus) (bool, error) {
	return func(c *CPU, bus *memory.Bus) (bool, error) {
		r := alu.Swap(getR8(c, bus, operand))
		setR8(c, bus, operand, r.Result8())
		c.F = 0
		c.SetFlag(FlagZ, r.Z)
		return false, nil
	}
}

func cbBit(bit, operand uint8) func(*CPU, *memory.Bus) (bool, error) {
	return func(c *CPU, bus *memory.Bus) (bool, error) {
		r := alu.Bit(getR8(c, bus, operand), bit)
		c.SetFlag(FlagZ, r.Z)
		c.SetFlag(FlagN, false)
		c.SetFlag(FlagH, true)
		return false, nil
	}
}

func cbRes(bit, operand uint8) func(*CPU, *memory.Bus) (bool, error) {
	return func(c *CPU, bus *memory.Bus) (bool, error) {
		setR8(c, bus, operand, alu.Res(getR8(c, bus, operand), bit))
		return false, nil
	}
}

func cbSet(bit, operand uint8) func(*CPU, *memory.Bus) (bool, error) {
	return func(c *CPU, bus *memory.Bus) (bool, error) {
		setR8(c, bus, operand, alu.Set(getR8(c, bus, operand), bit))
		return false, nil
	}
}

// The unprefixed accumulator rotates (RLCA/RLA/RRCA/RRA) reuse the CB rotate
// primitives but always clear Z regardless of the result, unlike their
// CB-prefixed RLC A/RL A/RRC A/RR A counterparts.

func opRLCA(c *CPU, bus *memory.Bus) (bool, error) {
	r := alu.Rlc(c.A)
	c.A = r.Result8()
	c.F = 0
	c.SetFlag(FlagC, r.C)
	return false, nil
}

func opRLA(c *CPU, bus *memory.Bus) (bool, error) {
	r := alu.Rl(c.A, c.GetFlag(FlagC))
	c.A = r.Result8()
	c.F = 0
	c.SetFlag(FlagC, r.C)
	return false, nil
}

func opRRCA(c *CPU, bus *memory.Bus) (bool, error) {
	r := alu.Rrc(c.A)
	c.A = r.Result8()
	c.F = 0
	c.SetFlag(FlagC, r.C)
	return false, nil
}

func opRRA(c *CPU, bus *memory.Bus) (bool, error) {
	r := alu.Rr(c.A, c.GetFlag(FlagC))
	c.A = r.Result8()
	c.F = 0
	c.SetFlag(FlagC, r.C)
	return false, nil
}
