package cartridge

import (
	"errors"
	"testing"
	"time"

	"github.com/thelolagemann/dmgcore/internal/types"
)

// newROM returns a ROM with a valid header, where every 16KiB bank
// starts with its own bank number.
func newROM(t Type, romCode, ramCode uint8) []byte {
	rom := make([]byte, (32*1024)<<romCode)
	for bank := 0; bank < len(rom)/romBankSize; bank++ {
		rom[bank*romBankSize] = byte(bank)
		rom[bank*romBankSize+1] = byte(bank >> 8)
	}
	copy(rom[0x134:], "TESTROM")
	rom[0x147] = byte(t)
	rom[0x148] = romCode
	rom[0x149] = ramCode
	var sum uint8
	for _, b := range rom[0x134:0x14D] {
		sum = sum - b - 1
	}
	rom[0x14D] = sum
	return rom
}

func mustNew(t *testing.T, rom []byte) *Cartridge {
	t.Helper()
	c, err := New(rom)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func TestParseHeader(t *testing.T) {
	rom := newROM(MBC1RAMBATT, 0x02, 0x03)
	h, err := ParseHeader(rom)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Title != "TESTROM" {
		t.Errorf("expected title TESTROM, got %q", h.Title)
	}
	if h.ROMSize != 128*1024 || h.RAMSize != 32*1024 {
		t.Errorf("expected 128kB/32kB, got %d/%d", h.ROMSize, h.RAMSize)
	}
	if h.CartridgeType != MBC1RAMBATT || !h.CartridgeType.Battery() {
		t.Errorf("expected battery backed MBC1, got %s", h.CartridgeType)
	}
	if !h.ChecksumValid() {
		t.Errorf("expected checksum to be valid")
	}
	if h.Hardware() != "DMG" {
		t.Errorf("expected DMG, got %s", h.Hardware())
	}

	rom[0x134] = 'X'
	if h, _ := ParseHeader(rom); h.ChecksumValid() {
		t.Errorf("expected checksum to be invalid after changing the title")
	}
}

func TestParseHeader_Title(t *testing.T) {
	rom := newROM(ROM, 0, 0)
	copy(rom[0x134:], "ABCDEFGHIJKLMNOP")
	if h, _ := ParseHeader(rom); h.Title != "ABCDEFGHIJKLMNOP" {
		t.Errorf("expected a 16 byte title, got %q", h.Title)
	}

	rom[0x143] = 0x80
	if h, _ := ParseHeader(rom); h.Title != "ABCDEFGHIJKLMNO" {
		t.Errorf("expected a 15 byte title with the CGB flag, got %q", h.Title)
	}
}

func TestParseHeader_Errors(t *testing.T) {
	if _, err := ParseHeader(make([]byte, 0x14F)); !errors.Is(err, ErrHeaderTooShort) {
		t.Errorf("expected ErrHeaderTooShort, got %v", err)
	}

	rom := newROM(ROM, 0, 0)
	rom[0x148] = 0x20
	rom[0x149] = 0x07
	_, err := ParseHeader(rom)
	if !errors.Is(err, ErrInvalidROMSize) || !errors.Is(err, ErrInvalidRAMSize) {
		t.Errorf("expected both size errors, got %v", err)
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name string
		rom  []byte
		want error
	}{
		{"unsupported", newROM(HUDSONHUC3, 0, 0), ErrUnsupportedType},
		{"rom without mbc too large", newROM(ROM, 1, 0), ErrSizeNotSupported},
		{"ram without mbc too large", newROM(ROMRAM, 0, 3), ErrSizeNotSupported},
		{"mbc2 with ram", newROM(MBC2, 0, 2), ErrSizeNotSupported},
		{"length mismatch", newROM(MBC1, 2, 0)[:64*1024], ErrLengthMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.rom); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNoMBC(t *testing.T) {
	rom := newROM(ROMRAM, 0, 2)
	rom[0x7FFF] = 0x42
	c := mustNew(t, rom)
	if _, ok := c.MemoryBankController.(*NoMBC); !ok {
		t.Fatalf("expected NoMBC, got %T", c.MemoryBankController)
	}

	c.StoreROMByte(0x7FFF, 0x00)
	if c.LoadROMByte(0x7FFF) != 0x42 {
		t.Errorf("expected ROM writes to be ignored")
	}
	c.StoreRAMByte(0x1FFF, 0x99)
	if c.LoadRAMByte(0x1FFF) != 0x99 {
		t.Errorf("expected RAM to be writable")
	}
	if _, ok := c.Battery(); ok {
		t.Errorf("expected no battery")
	}

	small := mustNew(t, newROM(ROMRAM, 0, 1))
	small.StoreRAMByte(0x1000, 0x12)
	if small.LoadRAMByte(0x1000) != 0xFF {
		t.Errorf("expected RAM past 2KiB to read 0xFF")
	}
}

func TestMBC1(t *testing.T) {
	c := mustNew(t, newROM(MBC1RAMBATT, 0x06, 0x03)) // 2MiB, 32KiB

	if c.LoadROMByte(0x4000) != 1 {
		t.Errorf("expected bank 1 after reset")
	}
	c.StoreROMByte(0x2000, 0x00)
	if c.LoadROMByte(0x4000) != 1 {
		t.Errorf("expected bank 0 to select bank 1")
	}
	c.StoreROMByte(0x2000, 0x05)
	c.StoreROMByte(0x4000, 0x02)
	if got := c.LoadROMByte(0x4000); got != 0x45 {
		t.Errorf("expected bank 0x45, got 0x%02X", got)
	}
	// in ROM banking mode, 0x0000 - 0x3FFF is always bank 0
	if c.LoadROMByte(0x0000) != 0 {
		t.Errorf("expected bank 0 at 0x0000")
	}

	// RAM disabled
	c.StoreRAMByte(0x0000, 0x11)
	if c.LoadRAMByte(0x0000) != 0xFF {
		t.Errorf("expected disabled RAM to read 0xFF")
	}

	c.StoreROMByte(0x0000, 0x0A)
	c.StoreRAMByte(0x0000, 0x11) // bank 0, mode 0
	c.StoreROMByte(0x6000, 0x01) // RAM banking, bank2 = 2
	if c.LoadROMByte(0x0000) != 0x40 {
		t.Errorf("expected bank 0x40 at 0x0000 in RAM banking mode")
	}
	c.StoreRAMByte(0x0000, 0x22)
	c.StoreROMByte(0x6000, 0x00)
	if c.LoadRAMByte(0x0000) != 0x11 {
		t.Errorf("expected RAM bank 0 in ROM banking mode")
	}

	b, ok := c.Battery()
	if !ok {
		t.Fatalf("expected battery")
	}
	if b.RAM()[2*ramBankSize] != 0x22 {
		t.Errorf("expected 0x22 in RAM bank 2")
	}
}

func TestMBC1_BankWraps(t *testing.T) {
	c := mustNew(t, newROM(MBC1, 0x02, 0x00)) // 8 banks
	c.StoreROMByte(0x2000, 0x09)
	if got := c.LoadROMByte(0x4000); got != 1 {
		t.Errorf("expected bank 9 to wrap to 1, got %d", got)
	}
}

func TestMBC2(t *testing.T) {
	c := mustNew(t, newROM(MBC2BATT, 0x03, 0x00))

	c.StoreROMByte(0x2100, 0x03) // bit 8 set: ROM bank
	if c.LoadROMByte(0x4000) != 3 {
		t.Errorf("expected bank 3")
	}
	c.StoreROMByte(0x0000, 0x0A) // bit 8 clear: RAM enable
	c.StoreRAMByte(0x0005, 0xAB)
	if got := c.LoadRAMByte(0x0205); got != 0xFB {
		t.Errorf("expected the RAM to repeat with the upper nibble set, got 0x%02X", got)
	}
	if b, ok := c.Battery(); !ok || len(b.RAM()) != 512 {
		t.Errorf("expected 512 bytes of battery RAM")
	}
}

func TestMBC3_RAMAndRTC(t *testing.T) {
	now := time.Unix(1_000_000, 0)
	c, err := newCartridge(newROM(MBC3TIMERRAMBATT, 0x06, 0x03), func() time.Time { return now })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c.StoreROMByte(0x2000, 0x7F)
	if c.LoadROMByte(0x4000) != 0x7F {
		t.Errorf("expected bank 0x7F")
	}

	c.StoreROMByte(0x0000, 0x0A)
	c.StoreROMByte(0x4000, 0x03)
	c.StoreRAMByte(0x0010, 0x33)
	if c.LoadRAMByte(0x0010) != 0x33 {
		t.Errorf("expected RAM bank 3 to be writable")
	}

	// 1 day, 2 hours, 3 minutes and 4 seconds later
	now = now.Add(26*time.Hour + 3*time.Minute + 4*time.Second)
	c.StoreROMByte(0x6000, 0x00)
	c.StoreROMByte(0x6000, 0x01)

	for register, want := range map[types.Byte]types.Byte{0x08: 4, 0x09: 3, 0x0A: 2, 0x0B: 1, 0x0C: 0} {
		c.StoreROMByte(0x4000, register)
		if got := c.LoadRAMByte(0); got != want {
			t.Errorf("register 0x%02X: expected %d, got %d", register, want, got)
		}
	}

	// halted clocks don't advance
	c.StoreROMByte(0x4000, 0x0C)
	c.StoreRAMByte(0, 0x40)
	now = now.Add(time.Hour)
	c.StoreROMByte(0x6000, 0x00)
	c.StoreROMByte(0x6000, 0x01)
	c.StoreROMByte(0x4000, 0x0A)
	if got := c.LoadRAMByte(0); got != 2 {
		t.Errorf("expected hours to stay at 2 while halted, got %d", got)
	}
}

func TestMBC3_DayCarry(t *testing.T) {
	now := time.Unix(0, 0)
	m := NewMBC3(make([]byte, 0x8000), 0, true, func() time.Time { return now })
	m.StoreROMByte(0x0000, 0x0A)

	now = now.Add(513 * 24 * time.Hour)
	m.StoreROMByte(0x6000, 0x00)
	m.StoreROMByte(0x6000, 0x01)

	m.StoreROMByte(0x4000, 0x0B)
	if got := m.LoadRAMByte(0); got != 1 {
		t.Errorf("expected day 1, got %d", got)
	}
	m.StoreROMByte(0x4000, 0x0C)
	if got := m.LoadRAMByte(0); got != 0x80 {
		t.Errorf("expected the carry bit, got 0x%02X", got)
	}
}

func TestMBC5(t *testing.T) {
	c := mustNew(t, newROM(MBC5RAMBATT, 0x08, 0x04)) // 8MiB, 128KiB

	c.StoreROMByte(0x2000, 0x00)
	if c.LoadROMByte(0x4000) != 0 {
		t.Errorf("expected bank 0 to be selectable")
	}
	c.StoreROMByte(0x2000, 0x23)
	c.StoreROMByte(0x3000, 0x01)
	if lo, hi := c.LoadROMByte(0x4000), c.LoadROMByte(0x4001); lo != 0x23 || hi != 0x01 {
		t.Errorf("expected bank 0x123, got 0x%02X%02X", hi, lo)
	}

	c.StoreROMByte(0x0000, 0x0A)
	c.StoreROMByte(0x4000, 0x0F)
	c.StoreRAMByte(0x1FFF, 0x5A)
	b, _ := c.Battery()
	if b.RAM()[0x0F*ramBankSize+0x1FFF] != 0x5A {
		t.Errorf("expected write to RAM bank 15")
	}
	if err := b.LoadRAM(make([]byte, 10)); !errors.Is(err, ErrRAMSizeMismatch) {
		t.Errorf("expected ErrRAMSizeMismatch, got %v", err)
	}
}

func TestMBC5_Rumble(t *testing.T) {
	c := mustNew(t, newROM(MBC5RUMBLERAM, 0x00, 0x03))
	c.StoreROMByte(0x0000, 0x0A)

	c.StoreROMByte(0x4000, 0x0B)
	if !c.Rumble() {
		t.Errorf("expected bit 3 of the RAM bank to start the motor")
	}
	c.StoreRAMByte(0x0000, 0x42)
	c.StoreROMByte(0x4000, 0x03)
	if c.Rumble() {
		t.Errorf("expected the motor to stop")
	}
	if c.LoadRAMByte(0x0000) != 0x42 {
		t.Errorf("expected the motor bit to be left out of the RAM bank")
	}

	plain := mustNew(t, newROM(MBC5RAM, 0x00, 0x03))
	plain.StoreROMByte(0x4000, 0x08)
	if plain.Rumble() {
		t.Errorf("expected no motor without rumble")
	}
}

func TestMBC_SaveState(t *testing.T) {
	rom := newROM(MBC5RAM, 0x02, 0x03)
	c := mustNew(t, rom)
	c.StoreROMByte(0x0000, 0x0A)
	c.StoreROMByte(0x2000, 0x05)
	c.StoreROMByte(0x4000, 0x02)
	c.StoreRAMByte(0x0100, 0x77)

	s := types.NewState()
	c.Save(s)

	restored := mustNew(t, rom)
	restored.Load(types.StateFromBytes(s.Bytes()))
	if restored.LoadROMByte(0x4000) != 5 || restored.LoadRAMByte(0x0100) != 0x77 {
		t.Errorf("expected banks and RAM to be restored")
	}
}
