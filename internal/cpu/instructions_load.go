package cpu

import "nitro-gb-core/internal/memory"

func opNOP(c *CPU, bus *memory.Bus) (bool, error) { return false, nil }

func ldR8R8(dst, src uint8) func(*CPU, *memory.Bus) (bool, error) {
	return func(c *CPU, bus *memory.Bus) (bool, error) {
		setR8(c, bus, dst, getR8(c, bus, src))
		return false, nil
	}
}

func ldR8Imm8(dst uint8) func(*CPU, *memory.Bus) (bool, error) {
	return func(c *CPU, bus *memory.Bus) (bool, error) {
		setR8(c, bus, dst, c.fetch8(bus))
		return false, nil
	}
}

func ldR16Imm16(dst uint8) func(*CPU, *memory.Bus) (bool, error) {
	return func(c *CPU, bus *memory.Bus) (bool, error) {
		setR16(c, dst, c.fetch16(bus))
		return false, nil
	}
}

func opLDBCmemA(c *CPU, bus *memory.Bus) (bool, error) {
	bus.WriteByte(c.BC(), c.A)
	return false, nil
}

func opLDDEmemA(c *CPU, bus *memory.Bus) (bool, error) {
	bus.WriteByte(c.DE(), c.A)
	return false, nil
}

func opLDAmemBC(c *CPU, bus *memory.Bus) (bool, error) {
	c.A = bus.ReadByte(c.BC())
	return false, nil
}

func opLDAmemDE(c *CPU, bus *memory.Bus) (bool, error) {
	c.A = bus.ReadByte(c.DE())
	return false, nil
}

func opLDHLIncA(c *CPU, bus *memory.Bus) (bool, error) {
	bus.WriteByte(c.HL(), c.A)
	c.SetHL(c.HL() + 1)
	return false, nil
}

func opLDHLDecA(c *CPU, bus *memory.Bus) (bool, error) {
	bus.WriteByte(c.HL(), c.A)
	c.SetHL(c.HL() - 1)
	return false, nil
}

func opLDAHLInc(c *CPU, bus *memory.Bus) (bool, error) {
	c.A = bus.ReadByte(c.HL())
	c.SetHL(c.HL() + 1)
	return false, nil
}

func opLDAHLDec(c *CPU, bus *memory.Bus) (bool, error) {
	c.A = bus.ReadByte(c.HL())
	c.SetHL(c.HL() - 1)
	return false, nil
}

func opLDa16memSP(c *CPU, bus *memory.Bus) (bool, error) {
	addr := c.fetch16(bus)
	bus.WriteWord(addr, c.SP)
	return false, nil
}

func opLDa16memA(c *CPU, bus *memory.Bus) (bool, error) {
	addr := c.fetch16(bus)
	bus.WriteByte(addr, c.A)
	return false, nil
}

func opLDAa16mem(c *CPU, bus *memory.Bus) (bool, error) {
	addr := c.fetch16(bus)
	c.A = bus.ReadByte(addr)
	return false, nil
}

func opLDHa8memA(c *CPU, bus *memory.Bus) (bool, error) {
	off := c.fetch8(bus)
	bus.WriteByte(0xFF00+uint16(off), c.A)
	return false, nil
}

func opLDHAa8mem(c *CPU, bus *memory.Bus) (bool, error) {
	off := c.fetch8(bus)
	c.A = bus.ReadByte(0xFF00 + uint16(off))
	return false, nil
}

func opLDCmemA(c *CPU, bus *memory.Bus) (bool, error) {
	bus.WriteByte(0xFF00+uint16(c.C), c.A)
	return false, nil
}

func opLDACmem(c *CPU, bus *memory.Bus) (bool, error) {
	c.A = bus.ReadByte(0xFF00 + uint16(c.C))
	return false, nil
}

func opLDSPHL(c *CPU, bus *memory.Bus) (bool, error) {
	c.SP = c.HL()
	return false, nil
}

func pushR16(idx uint8) func(*CPU, *memory.Bus) (bool, error) {
	return func(c *CPU, bus *memory.Bus) (bool, error) {
		c.SP = bus.PushWord(c.SP, getR16Stk(c, idx))
		return false, nil
	}
}

func popR16(idx uint8) func(*CPU, *memory.Bus) (bool, error) {
	return func(c *CPU, bus *memory.Bus) (bool, error) {
		var v uint16
		v, c.SP = bus.PopWord(c.SP)
		setR16Stk(c, idx, v)
		return false, nil
	}
}
