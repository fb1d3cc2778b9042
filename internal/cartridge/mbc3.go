package cartridge

import (
	"time"

	"github.com/thelolagemann/dmgcore/internal/types"
)

// MemoryBankedCartridge3 represents a MemoryBankedCartridge3 cartridge. This
// cartridge type supports up to 2MiB of ROM and 32KiB of RAM, and
// optionally provides a real time clock.
type MemoryBankedCartridge3 struct {
	banks

	romBank types.Byte
	// ramBank selects a RAM bank (0x00 - 0x03) or an RTC register
	// (0x08 - 0x0C).
	ramBank    types.Byte
	ramEnabled bool

	rtc      *RTC
	latchReg types.Byte
}

// NewMBC3 returns a new MemoryBankedCartridge3 cartridge. The clock
// is only used when the cartridge has a timer.
func NewMBC3(rom []byte, ramSize int, timer bool, clock func() time.Time) *MemoryBankedCartridge3 {
	m := &MemoryBankedCartridge3{
		banks:    newBanks(rom, ramSize),
		romBank:  1,
		latchReg: 0xFF,
	}
	if timer {
		m.rtc = newRTC(clock)
	}
	return m
}

func (m *MemoryBankedCartridge3) LoadROMByte(address types.Word) types.Byte {
	if address < 0x4000 {
		return m.readROM(0, address)
	}
	return m.readROM(int(m.romBank), address)
}

func (m *MemoryBankedCartridge3) StoreROMByte(address types.Word, value types.Byte) {
	switch {
	case address < 0x2000:
		m.ramEnabled = ramEnable(value)
	case address < 0x4000:
		m.romBank = value & 0x7F
		if m.romBank == 0 {
			m.romBank = 1
		}
	case address < 0x6000:
		if value <= 0x03 || (value >= rtcSeconds && value <= rtcDaysHigh) {
			m.ramBank = value
		}
	default:
		// latch on a 0 followed by a 1
		if m.rtc != nil && m.latchReg == 0x00 && value == 0x01 {
			m.rtc.latch()
		}
		m.latchReg = value
	}
}

func (m *MemoryBankedCartridge3) LoadRAMByte(address types.Word) types.Byte {
	if !m.ramEnabled {
		return 0xFF
	}
	if m.ramBank >= rtcSeconds {
		if m.rtc == nil {
			return 0xFF
		}
		return m.rtc.read(m.ramBank)
	}
	return m.readRAM(int(m.ramBank), address)
}

func (m *MemoryBankedCartridge3) StoreRAMByte(address types.Word, value types.Byte) {
	if !m.ramEnabled {
		return
	}
	if m.ramBank >= rtcSeconds {
		if m.rtc != nil {
			m.rtc.write(m.ramBank, value)
		}
		return
	}
	m.writeRAM(int(m.ramBank), address, value)
}

func (m *MemoryBankedCartridge3) Load(s *types.State) {
	s.ReadData(m.ram)
	m.romBank = s.Read8()
	m.ramBank = s.Read8()
	m.ramEnabled = s.ReadBool()
	m.latchReg = s.Read8()
	if m.rtc != nil {
		m.rtc.Load(s)
	}
}

func (m *MemoryBankedCartridge3) Save(s *types.State) {
	s.WriteData(m.ram)
	s.Write8(m.romBank)
	s.Write8(m.ramBank)
	s.WriteBool(m.ramEnabled)
	s.Write8(m.latchReg)
	if m.rtc != nil {
		m.rtc.Save(s)
	}
}
