package cartridge

import "github.com/thelolagemann/dmgcore/internal/types"

// MemoryBankedCartridge5 supports up to 8MiB of ROM with a 9 bit
// ROM bank register, and up to 128KiB of RAM. Unlike the other
// controllers, bank 0 may be mapped to 0x4000 - 0x7FFF.
type MemoryBankedCartridge5 struct {
	banks

	ramEnabled bool
	romBank    int
	ramBank    int

	// rumble cartridges wire bit 3 of the RAM bank to the motor
	rumble bool
	motor  bool
}

// NewMBC5 returns a new MemoryBankedCartridge5 cartridge.
func NewMBC5(rom []byte, ramSize int, rumble bool) *MemoryBankedCartridge5 {
	return &MemoryBankedCartridge5{
		banks:   newBanks(rom, ramSize),
		romBank: 1,
		rumble:  rumble,
	}
}

func (m *MemoryBankedCartridge5) LoadROMByte(address types.Word) types.Byte {
	if address < 0x4000 {
		return m.readROM(0, address)
	}
	return m.readROM(m.romBank, address)
}

func (m *MemoryBankedCartridge5) StoreROMByte(address types.Word, value types.Byte) {
	switch {
	case address < 0x2000:
		m.ramEnabled = ramEnable(value)
	case address < 0x3000:
		// ROM bank number (lower 8 bits)
		m.romBank = m.romBank&0x100 | int(value)
	case address < 0x4000:
		// ROM bank number (upper 1 bit)
		m.romBank = m.romBank&0xFF | int(value&0x01)<<8
	case address < 0x6000:
		if m.rumble {
			m.motor = value&0x08 != 0
			m.ramBank = int(value & 0x07)
		} else {
			m.ramBank = int(value & 0x0F)
		}
	}
}

func (m *MemoryBankedCartridge5) LoadRAMByte(address types.Word) types.Byte {
	if !m.ramEnabled {
		return 0xFF
	}
	return m.readRAM(m.ramBank, address)
}

func (m *MemoryBankedCartridge5) StoreRAMByte(address types.Word, value types.Byte) {
	if m.ramEnabled {
		m.writeRAM(m.ramBank, address, value)
	}
}

// Rumble returns true while the rumble motor is on.
func (m *MemoryBankedCartridge5) Rumble() bool {
	return m.motor
}

func (m *MemoryBankedCartridge5) Load(s *types.State) {
	s.ReadData(m.ram)
	m.ramEnabled = s.ReadBool()
	m.romBank = int(s.Read16())
	m.ramBank = int(s.Read8())
	m.motor = s.ReadBool()
}

func (m *MemoryBankedCartridge5) Save(s *types.State) {
	s.WriteData(m.ram)
	s.WriteBool(m.ramEnabled)
	s.Write16(types.Word(m.romBank))
	s.Write8(types.Byte(m.ramBank))
	s.WriteBool(m.motor)
}
