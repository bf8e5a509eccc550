package cpu

import "nitro-gb-core/internal/memory"

// getR8/setR8 implement the standard 3-bit register field encoding used
// throughout the LR35902 instruction set: 0=B 1=C 2=D 3=E 4=H 5=L 6=(HL) 7=A.
func getR8(c *CPU, bus *memory.Bus, idx uint8) uint8 {
	switch idx {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return bus.ReadByte(c.HL())
	default:
		return c.A
	}
}

func setR8(c *CPU, bus *memory.Bus, idx uint8, v uint8) {
	switch idx {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		c.H = v
	case 5:
		c.L = v
	case 6:
		bus.WriteByte(c.HL(), v)
	default:
		c.A = v
	}
}

func r8Name(idx uint8) string {
	return [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}[idx]
}

// getR16/setR16 implement the SP-form 2-bit pair encoding: 0=BC 1=DE 2=HL 3=SP.
func getR16(c *CPU, idx uint8) uint16 {
	switch idx {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.HL()
	default:
		return c.SP
	}
}

func setR16(c *CPU, idx uint8, v uint16) {
	switch idx {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		c.SetHL(v)
	default:
		c.SP = v
	}
}

func r16Name(idx uint8) string {
	return [4]string{"BC", "DE", "HL", "SP"}[idx]
}

// getR16Stk/setR16Stk implement the PUSH/POP-form pair encoding: 0=BC 1=DE 2=HL 3=AF.
func getR16Stk(c *CPU, idx uint8) uint16 {
	if idx == 3 {
		return c.AF()
	}
	return getR16(c, idx)
}

func setR16Stk(c *CPU, idx uint8, v uint16) {
	if idx == 3 {
		c.SetAF(v)
		return
	}
	setR16(c, idx, v)
}

// checkCond evaluates the 2-bit branch condition encoding: 0=NZ 1=Z 2=NC 3=C.
func checkCond(c *CPU, idx uint8) bool {
	switch idx {
	case 0:
		return !c.GetFlag(FlagZ)
	case 1:
		return c.GetFlag(FlagZ)
	case 2:
		return !c.GetFlag(FlagC)
	default:
		return c.GetFlag(FlagC)
	}
}

func condName(idx uint8) string {
	return [4]string{"NZ", "Z", "NC", "C"}[idx]
}
