package memory

import "testing"

func TestEchoRAMMirror(t *testing.T) {
	b := NewBus()

	b.WriteByte(0xC100, 0x42)
	if got := b.ReadByte(0xE100); got != 0x42 {
		t.Errorf("read 0xE100 = %#x, want 0x42", got)
	}

	b.WriteByte(0xE200, 0x55)
	if got := b.ReadByte(0xC200); got != 0x55 {
		t.Errorf("read 0xC200 = %#x, want 0x55", got)
	}
}

func TestEchoRAMMirrorExhaustive(t *testing.T) {
	b := NewBus()
	for a := uint32(0xE000); a <= 0xFDFF; a++ {
		addr := uint16(a)
		b.WriteByte(addr, uint8(addr))
		if got := b.ReadByte(addr - 0x2000); got != uint8(addr) {
			t.Fatalf("mirror mismatch at 0x%04X: read(addr-0x2000)=%#x want %#x", addr, got, uint8(addr))
		}
	}
}

func TestProhibitedRange(t *testing.T) {
	b := NewBus()
	if got := b.ReadByte(0xFEA0); got != 0xFF {
		t.Errorf("read 0xFEA0 = %#x, want 0xFF", got)
	}
	b.WriteByte(0xFEA0, 0x99)
	if got := b.ReadByte(0xFEA0); got != 0xFF {
		t.Errorf("write to 0xFEA0 should be dropped, read back %#x", got)
	}
}

func TestReadWriteWordLittleEndian(t *testing.T) {
	b := NewBus()
	b.WriteWord(0xC000, 0x1234)
	if got := b.ReadByte(0xC000); got != 0x34 {
		t.Errorf("low byte = %#x, want 0x34", got)
	}
	if got := b.ReadByte(0xC001); got != 0x12 {
		t.Errorf("high byte = %#x, want 0x12", got)
	}
	if got := b.ReadWord(0xC000); got != 0x1234 {
		t.Errorf("ReadWord = %#x, want 0x1234", got)
	}
}

func TestPushPopWord(t *testing.T) {
	b := NewBus()
	sp := uint16(0xFFFE)
	sp = b.PushWord(sp, 0xBEEF)
	if sp != 0xFFFC {
		t.Fatalf("sp after push = %#x, want 0xFFFC", sp)
	}
	var v uint16
	v, sp = b.PopWord(sp)
	if v != 0xBEEF || sp != 0xFFFE {
		t.Errorf("pop = %#x sp=%#x, want 0xBEEF / 0xFFFE", v, sp)
	}
}

func TestRegisterVersionBumpsOnEveryWrite(t *testing.T) {
	b := NewBus()
	r := b.Register(RegNR10)
	v0 := r.Version()
	r.Write(0x00)
	r.Write(0x00) // same value written twice
	if r.Version() != v0+2 {
		t.Errorf("version = %d, want %d (every write bumps, even same value)", r.Version(), v0+2)
	}
}

func TestRegisterBitAccess(t *testing.T) {
	b := NewBus()
	r := b.Register(RegNR52)
	r.SetBit(7, true)
	if !r.Bit(7) {
		t.Errorf("bit 7 not set after SetBit(7,true)")
	}
	r.SetBit(7, false)
	if r.Bit(7) {
		t.Errorf("bit 7 still set after SetBit(7,false)")
	}
}

func TestIEAndIORegistersDistinctFromWRAM(t *testing.T) {
	b := NewBus()
	b.WriteByte(0xFFFF, 0x1F)
	if got := b.ReadByte(0xFFFF); got != 0x1F {
		t.Errorf("IE read = %#x, want 0x1F", got)
	}
	b.WriteByte(0xFF0F, 0x01)
	if got := b.ReadByte(0xFF0F); got != 0x01 {
		t.Errorf("IF read = %#x, want 0x01", got)
	}
}

type stubCartridge struct {
	rom, ram [0x10000]uint8
}

func (s *stubCartridge) ReadROM(addr uint16) uint8     { return s.rom[addr] }
func (s *stubCartridge) WriteROM(addr uint16, v uint8)  { s.rom[addr] = v }
func (s *stubCartridge) ReadRAM(addr uint16) uint8     { return s.ram[addr] }
func (s *stubCartridge) WriteRAM(addr uint16, v uint8) { s.ram[addr] = v }

func TestCartridgeRoutingForROMAndExternalRAM(t *testing.T) {
	b := NewBus()
	cart := &stubCartridge{}
	cart.rom[0x0100] = 0xAB
	b.SetCartridge(cart)

	if got := b.ReadByte(0x0100); got != 0xAB {
		t.Errorf("ROM read = %#x, want 0xAB", got)
	}
	b.WriteByte(0xA100, 0x77)
	if got := b.ReadByte(0xA100); got != 0x77 {
		t.Errorf("cart RAM read = %#x, want 0x77", got)
	}
}

func TestZeroSoundRegisters(t *testing.T) {
	b := NewBus()
	b.Register(RegNR10).Write(0xFF)
	b.Register(RegNR50).Write(0xFF)
	b.WaveRAM(0).Write(0xFF)

	b.ZeroSoundRegisters()

	if b.Register(RegNR10).Read() != 0 || b.Register(RegNR50).Read() != 0 || b.WaveRAM(0).Read() != 0 {
		t.Errorf("sound registers not fully zeroed")
	}
}
