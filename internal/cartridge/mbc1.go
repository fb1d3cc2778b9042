package cartridge

import "github.com/thelolagemann/dmgcore/internal/types"

// MemoryBankedCartridge1 represents a MemoryBankedCartridge1 cartridge. This
// cartridge type supports up to 2MiB of ROM and 32KiB of external RAM.
//
// The controller has a 5 bit ROM bank register, and a 2 bit register
// that either selects the upper bits of the ROM bank or the RAM bank,
// depending on the banking mode.
type MemoryBankedCartridge1 struct {
	banks

	ramEnabled bool
	bank1      types.Byte // 0x2000 - 0x3FFF, never 0
	bank2      types.Byte // 0x4000 - 0x5FFF
	ramBanking bool       // 0x6000 - 0x7FFF
}

// NewMBC1 returns a new MemoryBankedCartridge1 cartridge.
func NewMBC1(rom []byte, ramSize int) *MemoryBankedCartridge1 {
	return &MemoryBankedCartridge1{
		banks: newBanks(rom, ramSize),
		bank1: 1,
	}
}

// LoadROMByte returns the value from the cartridges ROM. In RAM
// banking mode, the upper bank bits also apply to 0x0000 - 0x3FFF.
func (m *MemoryBankedCartridge1) LoadROMByte(address types.Word) types.Byte {
	if address < 0x4000 {
		if m.ramBanking {
			return m.readROM(int(m.bank2)<<5, address)
		}
		return m.readROM(0, address)
	}
	return m.readROM(int(m.bank2)<<5|int(m.bank1), address)
}

// StoreROMByte writes to the controller registers.
func (m *MemoryBankedCartridge1) StoreROMByte(address types.Word, value types.Byte) {
	switch {
	case address < 0x2000:
		m.ramEnabled = ramEnable(value)
	case address < 0x4000:
		m.bank1 = value & 0x1F
		if m.bank1 == 0 {
			m.bank1 = 1
		}
	case address < 0x6000:
		m.bank2 = value & 0x03
	default:
		m.ramBanking = value&0x01 == 0x01
	}
}

func (m *MemoryBankedCartridge1) ramBank() int {
	if m.ramBanking {
		return int(m.bank2)
	}
	return 0
}

func (m *MemoryBankedCartridge1) LoadRAMByte(address types.Word) types.Byte {
	if !m.ramEnabled {
		return 0xFF
	}
	return m.readRAM(m.ramBank(), address)
}

func (m *MemoryBankedCartridge1) StoreRAMByte(address types.Word, value types.Byte) {
	if m.ramEnabled {
		m.writeRAM(m.ramBank(), address, value)
	}
}

func (m *MemoryBankedCartridge1) Load(s *types.State) {
	s.ReadData(m.ram)
	m.ramEnabled = s.ReadBool()
	m.bank1 = s.Read8()
	m.bank2 = s.Read8()
	m.ramBanking = s.ReadBool()
}

func (m *MemoryBankedCartridge1) Save(s *types.State) {
	s.WriteData(m.ram)
	s.WriteBool(m.ramEnabled)
	s.Write8(m.bank1)
	s.Write8(m.bank2)
	s.WriteBool(m.ramBanking)
}
