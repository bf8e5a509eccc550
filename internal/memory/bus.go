// Package memory implements the DMG's flat 16-bit address space: a uniform
// Bus/MMU that routes CPU and APU accesses to RAM regions, the cartridge, and
// named MMIO registers.
package memory

import (
	"fmt"

	"nitro-gb-core/internal/debug"
)

// Cartridge is the external collaborator for ROM/cartridge-RAM accesses. The
// bus never interprets bank-switching itself — a write into ROM space is
// forwarded here and the cartridge (an MBC) decides what it means.
type Cartridge interface {
	ReadROM(addr uint16) uint8
	WriteROM(addr uint16, v uint8)
	ReadRAM(addr uint16) uint8
	WriteRAM(addr uint16, v uint8)
}

// Named offsets into the IO register window (0xFF00-0xFF7F), relative to 0xFF00.
const (
	RegJOYP = 0x00
	RegSB   = 0x01
	RegSC   = 0x02
	RegDIV  = 0x04
	RegTIMA = 0x05
	RegTMA  = 0x06
	RegTAC  = 0x07
	RegIF   = 0x0F

	RegNR10 = 0x10
	RegNR11 = 0x11
	RegNR12 = 0x12
	RegNR13 = 0x13
	RegNR14 = 0x14
	RegNR21 = 0x16
	RegNR22 = 0x17
	RegNR23 = 0x18
	RegNR24 = 0x19
	RegNR30 = 0x1A
	RegNR31 = 0x1B
	RegNR32 = 0x1C
	RegNR33 = 0x1D
	RegNR34 = 0x1E
	RegNR41 = 0x20
	RegNR42 = 0x21
	RegNR43 = 0x22
	RegNR44 = 0x23
	RegNR50 = 0x24
	RegNR51 = 0x25
	RegNR52 = 0x26

	RegWaveRAMStart = 0x30
	RegWaveRAMEnd   = 0x3F // inclusive

	RegLCDC = 0x40
	RegSTAT = 0x41
	RegSCY  = 0x42
	RegSCX  = 0x43
	RegLY   = 0x44
	RegLYC  = 0x45
	RegBGP  = 0x47
)

// soundRegisterRange spans NR10..WAVE_RAM[15]; this is what the falling edge
// of NR52 bit 7 zeroes (spec §3 invariant 5 / §4.3.2 step 1).
var soundRegisterRange = [2]int{RegNR10, RegWaveRAMEnd}

// Bus is the DMG's uniform 16-bit address space.
type Bus struct {
	VRAM [0x2000]uint8 // 0x8000-0x9FFF
	WRAM [0x2000]uint8 // 0xC000-0xDFFF
	OAM  [0xA0]uint8    // 0xFE00-0xFE9F
	HRAM [0x7F]uint8    // 0xFF80-0xFFFE

	io [0x80]Register // 0xFF00-0xFF7F
	ie Register        // 0xFFFF

	Cartridge Cartridge

	logger *debug.Logger
}

// NewBus creates a bus with no cartridge attached; SetCartridge wires one in.
func NewBus() *Bus {
	return &Bus{}
}

// SetLogger attaches a logger for out-of-range access tracing.
func (b *Bus) SetLogger(logger *debug.Logger) {
	b.logger = logger
}

// SetCartridge attaches the ROM/cartridge-RAM collaborator.
func (b *Bus) SetCartridge(c Cartridge) {
	b.Cartridge = c
}

// Register returns the named MMIO register handle at IO offset off
// (0x00-0x7F, relative to 0xFF00).
func (b *Bus) Register(off int) *Register {
	return &b.io[off]
}

// IE returns the interrupt-enable register handle (0xFFFF).
func (b *Bus) IE() *Register {
	return &b.ie
}

// WaveRAM returns the handle for wave-pattern byte i (0-15, each packing two
// 4-bit samples), mapped to 0xFF30+i.
func (b *Bus) WaveRAM(i int) *Register {
	return &b.io[RegWaveRAMStart+i]
}

// ZeroSoundRegisters clears NR10..WAVE_RAM[15] to 0x00, used once on the
// falling edge of NR52 bit 7 (spec §3 invariant 5).
func (b *Bus) ZeroSoundRegisters() {
	for off := soundRegisterRange[0]; off <= soundRegisterRange[1]; off++ {
		b.io[off].Write(0)
	}
}

// ReadByte reads a single byte from the 16-bit address space.
func (b *Bus) ReadByte(addr uint16) uint8 {
	switch {
	case addr < 0x8000:
		if b.Cartridge != nil {
			return b.Cartridge.ReadROM(addr)
		}
		return 0xFF

	case addr < 0xA000:
		return b.VRAM[addr-0x8000]

	case addr < 0xC000:
		if b.Cartridge != nil {
			return b.Cartridge.ReadRAM(addr)
		}
		return 0xFF

	case addr < 0xE000:
		return b.WRAM[addr-0xC000]

	case addr < 0xFE00: // echo of 0xC000-0xDDFF
		return b.WRAM[addr-0xE000]

	case addr < 0xFEA0:
		return b.OAM[addr-0xFE00]

	case addr < 0xFF00: // prohibited
		return 0xFF

	case addr < 0xFF80:
		return b.io[addr-0xFF00].Read()

	case addr < 0xFFFF:
		return b.HRAM[addr-0xFF80]

	default: // 0xFFFF
		return b.ie.Read()
	}
}

// WriteByte writes a single byte to the 16-bit address space.
func (b *Bus) WriteByte(addr uint16, v uint8) {
	switch {
	case addr < 0x8000:
		if b.Cartridge != nil {
			b.Cartridge.WriteROM(addr, v)
		}

	case addr < 0xA000:
		b.VRAM[addr-0x8000] = v

	case addr < 0xC000:
		if b.Cartridge != nil {
			b.Cartridge.WriteRAM(addr, v)
		}

	case addr < 0xE000:
		b.WRAM[addr-0xC000] = v

	case addr < 0xFE00: // echo of 0xC000-0xDDFF
		b.WRAM[addr-0xE000] = v

	case addr < 0xFEA0:
		b.OAM[addr-0xFE00] = v

	case addr < 0xFF00: // prohibited: writes ignored
		if b.logger != nil && b.logger.IsComponentEnabled(debug.ComponentMemory) {
			b.logger.LogMemoryf(debug.LogLevelDebug, "write to prohibited address 0x%04X dropped", addr)
		}

	case addr < 0xFF80:
		b.io[addr-0xFF00].Write(v)

	case addr < 0xFFFF:
		b.HRAM[addr-0xFF80] = v

	default: // 0xFFFF
		b.ie.Write(v)
	}
}

// ReadWord reads a little-endian 16-bit value: low byte at addr, high byte at addr+1.
func (b *Bus) ReadWord(addr uint16) uint16 {
	lo := b.ReadByte(addr)
	hi := b.ReadByte(addr + 1)
	return uint16(lo) | uint16(hi)<<8
}

// WriteWord writes a little-endian 16-bit value.
func (b *Bus) WriteWord(addr uint16, v uint16) {
	b.WriteByte(addr, uint8(v))
	b.WriteByte(addr+1, uint8(v>>8))
}

// PushWord decrements sp by 2 and writes v little-endian, returning the new sp.
// sp ends up pointing at the byte that would be read next by PopWord.
func (b *Bus) PushWord(sp uint16, v uint16) uint16 {
	sp -= 2
	b.WriteWord(sp, v)
	return sp
}

// PopWord reads a little-endian word at sp and returns (value, sp+2).
func (b *Bus) PopWord(sp uint16) (uint16, uint16) {
	v := b.ReadWord(sp)
	return v, sp + 2
}

// String renders the bus's high-level region layout, useful for debug dumps.
func (b *Bus) String() string {
	return fmt.Sprintf("Bus{VRAM=%dB WRAM=%dB OAM=%dB HRAM=%dB IO=%dB}",
		len(b.VRAM), len(b.WRAM), len(b.OAM), len(b.HRAM), len(b.io))
}
