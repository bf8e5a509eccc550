package cpu

import (
	"fmt"

	"nitro-gb-core/internal/alu"
	"nitro-gb-core/internal/memory"
)

// Opcode is one dispatch-table slot: its mnemonic (for logging/errors), its
// base cycle cost, an alternate cost used when Effect reports a branch was
// taken (0 means the instruction has no conditional variant), and the
// function that performs it.
type Opcode struct {
	Mnemonic  string
	Cycles    uint8
	CyclesAlt uint8
	Effect    func(*CPU, *memory.Bus) (bool, error)
}

var opcodes [256]Opcode
var cbOpcodes [256]Opcode

func init() {
	buildMainTable()
	buildCBTable()
}

func buildMainTable() {
	set := func(code uint8, mnemonic string, cycles uint8, effect func(*CPU, *memory.Bus) (bool, error)) {
		opcodes[code] = Opcode{Mnemonic: mnemonic, Cycles: cycles, Effect: effect}
	}
	setBranch := func(code uint8, mnemonic string, cycles, cyclesTaken uint8, effect func(*CPU, *memory.Bus) (bool, error)) {
		opcodes[code] = Opcode{Mnemonic: mnemonic, Cycles: cycles, CyclesAlt: cyclesTaken, Effect: effect}
	}

	set(0x00, "NOP", 4, opNOP)
	set(0x01, "LD BC,d16", 12, ldR16Imm16(0))
	set(0x02, "LD (BC),A", 8, opLDBCmemA)
	set(0x03, "INC BC", 8, func(c *CPU, bus *memory.Bus) (bool, error) { return incR16(c, 0) })
	set(0x04, "INC B", 4, func(c *CPU, bus *memory.Bus) (bool, error) { return incR8(c, bus, 0) })
	set(0x05, "DEC B", 4, func(c *CPU, bus *memory.Bus) (bool, error) { return decR8(c, bus, 0) })
	set(0x06, "LD B,d8", 8, ldR8Imm8(0))
	set(0x07, "RLCA", 4, opRLCA)
	set(0x08, "LD (a16),SP", 20, opLDa16memSP)
	set(0x09, "ADD HL,BC", 8, func(c *CPU, bus *memory.Bus) (bool, error) { return addHLR16(c, 0) })
	set(0x0A, "LD A,(BC)", 8, opLDAmemBC)
	set(0x0B, "DEC BC", 8, func(c *CPU, bus *memory.Bus) (bool, error) { return decR16(c, 0) })
	set(0x0C, "INC C", 4, func(c *CPU, bus *memory.Bus) (bool, error) { return incR8(c, bus, 1) })
	set(0x0D, "DEC C", 4, func(c *CPU, bus *memory.Bus) (bool, error) { return decR8(c, bus, 1) })
	set(0x0E, "LD C,d8", 8, ldR8Imm8(1))
	set(0x0F, "RRCA", 4, opRRCA)

	set(0x10, "STOP", 4, opSTOP)
	set(0x11, "LD DE,d16", 12, ldR16Imm16(1))
	set(0x12, "LD (DE),A", 8, opLDDEmemA)
	set(0x13, "INC DE", 8, func(c *CPU, bus *memory.Bus) (bool, error) { return incR16(c, 1) })
	set(0x14, "INC D", 4, func(c *CPU, bus *memory.Bus) (bool, error) { return incR8(c, bus, 2) })
	set(0x15, "DEC D", 4, func(c *CPU, bus *memory.Bus) (bool, error) { return decR8(c, bus, 2) })
	set(0x16, "LD D,d8", 8, ldR8Imm8(2))
	set(0x17, "RLA", 4, opRLA)
	set(0x18, "JR r8", 12, opJRr8)
	set(0x19, "ADD HL,DE", 8, func(c *CPU, bus *memory.Bus) (bool, error) { return addHLR16(c, 1) })
	set(0x1A, "LD A,(DE)", 8, opLDAmemDE)
	set(0x1B, "DEC DE", 8, func(c *CPU, bus *memory.Bus) (bool, error) { return decR16(c, 1) })
	set(0x1C, "INC E", 4, func(c *CPU, bus *memory.Bus) (bool, error) { return incR8(c, bus, 3) })
	set(0x1D, "DEC E", 4, func(c *CPU, bus *memory.Bus) (bool, error) { return decR8(c, bus, 3) })
	set(0x1E, "LD E,d8", 8, ldR8Imm8(3))
	set(0x1F, "RRA", 4, opRRA)

	setBranch(0x20, "JR NZ,r8", 8, 12, opJRccr8(0))
	set(0x21, "LD HL,d16", 12, ldR16Imm16(2))
	set(0x22, "LD (HL+),A", 8, opLDHLIncA)
	set(0x23, "INC HL", 8, func(c *CPU, bus *memory.Bus) (bool, error) { return incR16(c, 2) })
	set(0x24, "INC H", 4, func(c *CPU, bus *memory.Bus) (bool, error) { return incR8(c, bus, 4) })
	set(0x25, "DEC H", 4, func(c *CPU, bus *memory.Bus) (bool, error) { return decR8(c, bus, 4) })
	set(0x26, "LD H,d8", 8, ldR8Imm8(4))
	set(0x27, "DAA", 4, opDAA)
	setBranch(0x28, "JR Z,r8", 8, 12, opJRccr8(1))
	set(0x29, "ADD HL,HL", 8, func(c *CPU, bus *memory.Bus) (bool, error) { return addHLR16(c, 2) })
	set(0x2A, "LD A,(HL+)", 8, opLDAHLInc)
	set(0x2B, "DEC HL", 8, func(c *CPU, bus *memory.Bus) (bool, error) { return decR16(c, 2) })
	set(0x2C, "INC L", 4, func(c *CPU, bus *memory.Bus) (bool, error) { return incR8(c, bus, 5) })
	set(0x2D, "DEC L", 4, func(c *CPU, bus *memory.Bus) (bool, error) { return decR8(c, bus, 5) })
	set(0x2E, "LD L,d8", 8, ldR8Imm8(5))
	set(0x2F, "CPL", 4, opCPL)

	setBranch(0x30, "JR NC,r8", 8, 12, opJRccr8(2))
	set(0x31, "LD SP,d16", 12, ldR16Imm16(3))
	set(0x32, "LD (HL-),A", 8, opLDHLDecA)
	set(0x33, "INC SP", 8, func(c *CPU, bus *memory.Bus) (bool, error) { return incR16(c, 3) })
	set(0x34, "INC (HL)", 12, func(c *CPU, bus *memory.Bus) (bool, error) { return incR8(c, bus, 6) })
	set(0x35, "DEC (HL)", 12, func(c *CPU, bus *memory.Bus) (bool, error) { return decR8(c, bus, 6) })
	set(0x36, "LD (HL),d8", 12, ldR8Imm8(6))
	set(0x37, "SCF", 4, opSCF)
	setBranch(0x38, "JR C,r8", 8, 12, opJRccr8(3))
	set(0x39, "ADD HL,SP", 8, func(c *CPU, bus *memory.Bus) (bool, error) { return addHLR16(c, 3) })
	set(0x3A, "LD A,(HL-)", 8, opLDAHLDec)
	set(0x3B, "DEC SP", 8, func(c *CPU, bus *memory.Bus) (bool, error) { return decR16(c, 3) })
	set(0x3C, "INC A", 4, func(c *CPU, bus *memory.Bus) (bool, error) { return incR8(c, bus, 7) })
	set(0x3D, "DEC A", 4, func(c *CPU, bus *memory.Bus) (bool, error) { return decR8(c, bus, 7) })
	set(0x3E, "LD A,d8", 8, ldR8Imm8(7))
	set(0x3F, "CCF", 4, opCCF)

	// 0x40-0x7F: LD r,r' over the regular 8x8 grid, except 0x76 = HALT.
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			code := 0x40 + dst*8 + src
			if code == 0x76 {
				set(code, "HALT", 4, opHALT)
				continue
			}
			cycles := uint8(4)
			if dst == 6 || src == 6 {
				cycles = 8
			}
			set(code, "LD "+r8Name(dst)+","+r8Name(src), cycles, ldR8R8(dst, src))
		}
	}

	// 0x80-0xBF: ALU A,r over the regular 8-op x 8-operand grid.
	aluOps := [8]struct {
		name string
		fn   func(*CPU, *memory.Bus, uint8) (bool, error)
	}{
		{"ADD A,", aluAdd}, {"ADC A,", aluAdc}, {"SUB ", aluSub}, {"SBC A,", aluSbc},
		{"AND ", aluAnd}, {"XOR ", aluXor}, {"OR ", aluOr}, {"CP ", aluCp},
	}
	for row, op := range aluOps {
		for operand := uint8(0); operand < 8; operand++ {
			code := uint8(0x80+row*8) + operand
			cycles := uint8(4)
			if operand == 6 {
				cycles = 8
			}
			fn := op.fn
			set(code, op.name+r8Name(operand), cycles, func(c *CPU, bus *memory.Bus) (bool, error) {
				return fn(c, bus, operand)
			})
		}
	}

	setBranch(0xC0, "RET NZ", 8, 20, opRETcc(0))
	set(0xC1, "POP BC", 12, popR16(0))
	setBranch(0xC2, "JP NZ,a16", 12, 16, opJPcca16(0))
	set(0xC3, "JP a16", 16, opJPa16)
	setBranch(0xC4, "CALL NZ,a16", 12, 24, opCALLcca16(0))
	set(0xC5, "PUSH BC", 16, pushR16(0))
	set(0xC6, "ADD A,d8", 8, aluImm(aluAddVal))
	set(0xC7, "RST 00H", 16, opRST(0x00))
	setBranch(0xC8, "RET Z", 8, 20, opRETcc(1))
	set(0xC9, "RET", 16, opRET)
	setBranch(0xCA, "JP Z,a16", 12, 16, opJPcca16(1))
	// 0xCB is the CB-prefix escape, handled specially in CPU.Step.
	setBranch(0xCC, "CALL Z,a16", 12, 24, opCALLcca16(1))
	set(0xCD, "CALL a16", 24, opCALLa16)
	set(0xCE, "ADC A,d8", 8, aluImm(aluAdcVal))
	set(0xCF, "RST 08H", 16, opRST(0x08))

	setBranch(0xD0, "RET NC", 8, 20, opRETcc(2))
	set(0xD1, "POP DE", 12, popR16(1))
	setBranch(0xD2, "JP NC,a16", 12, 16, opJPcca16(2))
	setBranch(0xD4, "CALL NC,a16", 12, 24, opCALLcca16(2))
	set(0xD5, "PUSH DE", 16, pushR16(1))
	set(0xD6, "SUB d8", 8, aluImm(aluSubVal))
	set(0xD7, "RST 10H", 16, opRST(0x10))
	setBranch(0xD8, "RET C", 8, 20, opRETcc(3))
	set(0xD9, "RETI", 16, opRETI)
	setBranch(0xDA, "JP C,a16", 12, 16, opJPcca16(3))
	setBranch(0xDC, "CALL C,a16", 12, 24, opCALLcca16(3))
	set(0xDE, "SBC A,d8", 8, aluImm(aluSbcVal))
	set(0xDF, "RST 18H", 16, opRST(0x18))

	set(0xE0, "LDH (a8),A", 12, opLDHa8memA)
	set(0xE1, "POP HL", 12, popR16(2))
	set(0xE2, "LD (C),A", 8, opLDCmemA)
	set(0xE5, "PUSH HL", 16, pushR16(2))
	set(0xE6, "AND d8", 8, aluImm(aluAndVal))
	set(0xE7, "RST 20H", 16, opRST(0x20))
	set(0xE8, "ADD SP,r8", 16, opADDSPr8)
	set(0xE9, "JP HL", 4, opJPHL)
	set(0xEA, "LD (a16),A", 16, opLDa16memA)
	set(0xEE, "XOR d8", 8, aluImm(aluXorVal))
	set(0xEF, "RST 28H", 16, opRST(0x28))

	set(0xF0, "LDH A,(a8)", 12, opLDHAa8mem)
	set(0xF1, "POP AF", 12, popR16(3))
	set(0xF2, "LD A,(C)", 8, opLDACmem)
	set(0xF3, "DI", 4, opDI)
	set(0xF5, "PUSH AF", 16, pushR16(3))
	set(0xF6, "OR d8", 8, aluImm(aluOrVal))
	set(0xF7, "RST 30H", 16, opRST(0x30))
	set(0xF8, "LD HL,SP+r8", 12, opLDHLSPr8)
	set(0xF9, "LD SP,HL", 8, opLDSPHL)
	set(0xFA, "LD A,(a16)", 16, opLDAa16mem)
	set(0xFB, "EI", 4, opEI)
	set(0xFE, "CP d8", 8, aluImm(aluCpVal))
	set(0xFF, "RST 38H", 16, opRST(0x38))
}

// buildCBTable fills the CB-prefixed table: 8 operation rows (RLC, RRC, RL,
// RR, SLA, SRA, SWAP, SRL) of 8 operands each, followed by BIT/RES/SET, each
// spanning 8 bits x 8 operands.
func buildCBTable() {
	rotateRows := [8]struct {
		name string
		fn   func(operand uint8) func(*CPU, *memory.Bus) (bool, error)
	}{
		{"RLC", func(o uint8) func(*CPU, *memory.Bus) (bool, error) { return cbRotateShift(alu.Rlc, o) }},
		{"RRC", func(o uint8) func(*CPU, *memory.Bus) (bool, error) { return cbRotateShift(alu.Rrc, o) }},
		{"RL", cbRL},
		{"RR", cbRR},
		{"SLA", func(o uint8) func(*CPU, *memory.Bus) (bool, error) { return cbRotateShift(alu.Sla, o) }},
		{"SRA", func(o uint8) func(*CPU, *memory.Bus) (bool, error) { return cbRotateShift(alu.Sra, o) }},
		{"SWAP", cbSwap},
		{"SRL", func(o uint8) func(*CPU, *memory.Bus) (bool, error) { return cbRotateShift(alu.Srl, o) }},
	}
	for row, op := range rotateRows {
		for operand := uint8(0); operand < 8; operand++ {
			code := uint8(row*8) + operand
			cycles := uint8(8)
			if operand == 6 {
				cycles = 16
			}
			cbOpcodes[code] = Opcode{Mnemonic: op.name + " " + r8Name(operand), Cycles: cycles, Effect: op.fn(operand)}
		}
	}

	for bit := uint8(0); bit < 8; bit++ {
		for operand := uint8(0); operand < 8; operand++ {
			bitCode := uint8(0x40) + bit*8 + operand
			bitCycles := uint8(8)
			if operand == 6 {
				bitCycles = 12
			}
			cbOpcodes[bitCode] = Opcode{Mnemonic: fmt.Sprintf("BIT %d,%s", bit, r8Name(operand)), Cycles: bitCycles, Effect: cbBit(bit, operand)}

			resCode := uint8(0x80) + bit*8 + operand
			wideCycles := uint8(8)
			if operand == 6 {
				wideCycles = 16
			}
			cbOpcodes[resCode] = Opcode{Mnemonic: fmt.Sprintf("RES %d,%s", bit, r8Name(operand)), Cycles: wideCycles, Effect: cbRes(bit, operand)}

			setCode := uint8(0xC0) + bit*8 + operand
			cbOpcodes[setCode] = Opcode{Mnemonic: fmt.Sprintf("SET %d,%s", bit, r8Name(operand)), Cycles: wideCycles, Effect: cbSet(bit, operand)}
		}
	}
}
