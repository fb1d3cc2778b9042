package cartridge

import "github.com/thelolagemann/dmgcore/internal/types"

// MemoryBankedCartridge2 has up to 256KiB of ROM and 512 half bytes
// of RAM built into the controller. Bit 8 of the address decides
// whether a write to 0x0000 - 0x3FFF selects the ROM bank or
// enables the RAM.
type MemoryBankedCartridge2 struct {
	banks

	ramg bool
	romb types.Byte
}

// NewMBC2 returns a new MemoryBankedCartridge2 cartridge.
func NewMBC2(rom []byte) *MemoryBankedCartridge2 {
	return &MemoryBankedCartridge2{
		banks: newBanks(rom, 512),
		romb:  0x01,
	}
}

func (m *MemoryBankedCartridge2) LoadROMByte(address types.Word) types.Byte {
	if address < 0x4000 {
		return m.readROM(0, address)
	}
	return m.readROM(int(m.romb), address)
}

func (m *MemoryBankedCartridge2) StoreROMByte(address types.Word, value types.Byte) {
	if address >= 0x4000 {
		return
	}
	if address&0x100 == 0x100 {
		m.romb = value & 0x0F
		if m.romb == 0 {
			m.romb = 1
		}
	} else {
		m.ramg = ramEnable(value)
	}
}

// LoadRAMByte returns the lower nibble of the RAM at address, with
// the upper nibble reading as 1s. The 512 bytes repeat over the
// whole external RAM window.
func (m *MemoryBankedCartridge2) LoadRAMByte(address types.Word) types.Byte {
	if !m.ramg {
		return 0xFF
	}
	return types.Byte(m.ram[address&0x1FF]) | 0xF0
}

func (m *MemoryBankedCartridge2) StoreRAMByte(address types.Word, value types.Byte) {
	if m.ramg {
		m.ram[address&0x1FF] = byte(value & 0x0F)
	}
}

func (m *MemoryBankedCartridge2) Load(s *types.State) {
	s.ReadData(m.ram)
	m.ramg = s.ReadBool()
	m.romb = s.Read8()
}

func (m *MemoryBankedCartridge2) Save(s *types.State) {
	s.WriteData(m.ram)
	s.WriteBool(m.ramg)
	s.Write8(m.romb)
}
