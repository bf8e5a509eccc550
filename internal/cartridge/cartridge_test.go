package cartridge

import "testing"

func makeROM(romSize, ramSize uint8, title string) []uint8 {
	banks, _ := romBankCount(romSize)
	data := make([]uint8, banks*romBankSize)
	copy(data[headerTitleStart:headerTitleEnd+1], title)
	data[headerType] = 0x01 // MBC1
	data[headerROMSize] = romSize
	data[headerRAMSize] = ramSize
	return data
}

func TestLoadROMParsesHeader(t *testing.T) {
	data := makeROM(0x00, 0x02, "TESTGAME")
	var c Cartridge
	if err := c.LoadROM(data); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	if c.Header.Title != "TESTGAME" {
		t.Errorf("Title = %q, want TESTGAME", c.Header.Title)
	}
	if len(c.rom) != romBankSize*2 {
		t.Errorf("rom len = %d, want %d", len(c.rom), romBankSize*2)
	}
	if len(c.ram) != ramBankSize {
		t.Errorf("ram len = %d, want %d", len(c.ram), ramBankSize)
	}
}

func TestLoadROMRejectsShortImage(t *testing.T) {
	var c Cartridge
	if err := c.LoadROM(make([]uint8, 10)); err == nil {
		t.Errorf("expected error for short image")
	}
}

func TestBank0AlwaysFixed(t *testing.T) {
	data := makeROM(0x01, 0x00, "BANKTEST") // 4 banks
	data[0x0000] = 0xAA
	data[romBankSize*2+0x10] = 0xBB // bank 2, offset 0x10
	var c Cartridge
	if err := c.LoadROM(data); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}

	if got := c.ReadROM(0x0000); got != 0xAA {
		t.Errorf("bank0 read = %#x, want 0xAA", got)
	}

	c.WriteROM(0x2000, 0x02) // select bank 2
	if got := c.ReadROM(0x4010); got != 0xBB {
		t.Errorf("bank2 read = %#x, want 0xBB", got)
	}
}

func TestWritingBank0SelectsBank1(t *testing.T) {
	data := makeROM(0x00, 0x00, "QUIRK")
	var c Cartridge
	if err := c.LoadROM(data); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	c.WriteROM(0x2000, 0x00)
	if c.romBank != 1 {
		t.Errorf("romBank = %d, want 1 (bank 0 write aliases to bank 1)", c.romBank)
	}
}

func TestRAMDisabledByDefault(t *testing.T) {
	data := makeROM(0x00, 0x02, "RAMTEST")
	var c Cartridge
	if err := c.LoadROM(data); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	c.WriteRAM(0xA000, 0x42)
	if got := c.ReadRAM(0xA000); got != 0xFF {
		t.Errorf("RAM read while disabled = %#x, want 0xFF", got)
	}

	c.WriteROM(0x0000, 0x0A) // enable
	c.WriteRAM(0xA000, 0x42)
	if got := c.ReadRAM(0xA000); got != 0x42 {
		t.Errorf("RAM read after enable = %#x, want 0x42", got)
	}
}

func TestRejectsUnsupportedSizeBytes(t *testing.T) {
	var c Cartridge
	data := make([]uint8, headerRAMSize+1)
	data[headerROMSize] = 0xFF
	if err := c.LoadROM(data); err == nil {
		t.Errorf("expected error for unsupported ROM size byte")
	}
}
