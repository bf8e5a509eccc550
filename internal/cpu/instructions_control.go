package cpu

import "nitro-gb-core/internal/memory"

func opJPa16(c *CPU, bus *memory.Bus) (bool, error) {
	addr := c.fetch16(bus)
	c.PC = addr
	return false, nil
}

func opJPcca16(cond uint8) func(*CPU, *memory.Bus) (bool, error) {
	return func(c *CPU, bus *memory.Bus) (bool, error) {
		addr := c.fetch16(bus)
		if checkCond(c, cond) {
			c.PC = addr
			return true, nil
		}
		return false, nil
	}
}

func opJPHL(c *CPU, bus *memory.Bus) (bool, error) {
	c.PC = c.HL()
	return false, nil
}

func opJRr8(c *CPU, bus *memory.Bus) (bool, error) {
	off := int8(c.fetch8(bus))
	c.PC = uint16(int32(c.PC) + int32(off))
	return false, nil
}

func opJRccr8(cond uint8) func(*CPU, *memory.Bus) (bool, error) {
	return func(c *CPU, bus *memory.Bus) (bool, error) {
		off := int8(c.fetch8(bus))
		if checkCond(c, cond) {
			c.PC = uint16(int32(c.PC) + int32(off))
			return true, nil
		}
		return false, nil
	}
}

func opCALLa16(c *CPU, bus *memory.Bus) (bool, error) {
	addr := c.fetch16(bus)
	c.SP = bus.PushWord(c.SP, c.PC)
	c.PC = addr
	return false, nil
}

func opCALLcca16(cond uint8) func(*CPU, *memory.Bus) (bool, error) {
	return func(c *CPU, bus *memory.Bus) (bool, error) {
		addr := c.fetch16(bus)
		if checkCond(c, cond) {
			c.SP = bus.PushWord(c.SP, c.PC)
			c.PC = addr
			return true, nil
		}
		return false, nil
	}
}

func opRET(c *CPU, bus *memory.Bus) (bool, error) {
	var addr uint16
	addr, c.SP = bus.PopWord(c.SP)
	c.PC = addr
	return false, nil
}

func opRETcc(cond uint8) func(*CPU, *memory.Bus) (bool, error) {
	return func(c *CPU, bus *memory.Bus) (bool, error) {
		if checkCond(c, cond) {
			var addr uint16
			addr, c.SP = bus.PopWord(c.SP)
			c.PC = addr
			return true, nil
		}
		return false, nil
	}
}

func opRETI(c *CPU, bus *memory.Bus) (bool, error) {
	var addr uint16
	addr, c.SP = bus.PopWord(c.SP)
	c.PC = addr
	c.IME = true
	return false, nil
}

func opRST(vector uint16) func(*CPU, *memory.Bus) (bool, error) {
	return func(c *CPU, bus *memory.Bus) (bool, error) {
		c.SP = bus.PushWord(c.SP, c.PC)
		c.PC = vector
		return false, nil
	}
}

func opEI(c *CPU, bus *memory.Bus) (bool, error) {
	c.RequestEnableIME()
	return false, nil
}

func opDI(c *CPU, bus *memory.Bus) (bool, error) {
	c.IME = false
	c.imeEnableDelay = 0
	return false, nil
}

func opHALT(c *CPU, bus *memory.Bus) (bool, error) {
	c.Halted = true
	return false, nil
}

func opSTOP(c *CPU, bus *memory.Bus) (bool, error) {
	c.fetch8(bus) // STOP's mandatory (and conventionally ignored) operand byte
	c.Stopped = true
	return false, nil
}
