package lcd

import "github.com/thelolagemann/dmgcore/internal/types"

// Status represents the LCD status register. It contains information about the
// current state of the LCD controller. Its value is stored in the STAT register
// (0xFF41) as follows:
//
//	Bit 7 - Always 1
//	Bit 6 - LYC=LY Coincidence Interrupt (1=Enable) (Read/Write)
//	Bit 5 - Mode 2 OAM Interrupt         (1=Enable) (Read/Write)
//	Bit 4 - Mode 1 V-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 3 - Mode 0 H-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 2 - Coincidence Flag  (0:LYC<>LY, 1:LYC=LY) (Read Only)
//	Bit 1-0 - Mode Flag       (Mode 0-3, see Mode) (Read Only)
type Status struct {
	CoincidenceInterrupt bool
	OAMInterrupt         bool
	VBlankInterrupt      bool
	HBlankInterrupt      bool

	// Coincidence is set while LY equals LYC.
	Coincidence bool
	// Mode is the current mode of the LCD controller.
	Mode Mode
}

// Write updates the interrupt selection bits. The coincidence flag
// and the mode are read-only.
func (s *Status) Write(value types.Byte) {
	s.CoincidenceInterrupt = value&types.Bit6 != 0
	s.OAMInterrupt = value&types.Bit5 != 0
	s.VBlankInterrupt = value&types.Bit4 != 0
	s.HBlankInterrupt = value&types.Bit3 != 0
}

// Read encodes the status register. While the LCD is disabled the
// coincidence flag and the mode read 0.
func (s *Status) Read(enabled bool) types.Byte {
	value := types.Byte(types.Bit7)
	if s.CoincidenceInterrupt {
		value |= types.Bit6
	}
	if s.OAMInterrupt {
		value |= types.Bit5
	}
	if s.VBlankInterrupt {
		value |= types.Bit4
	}
	if s.HBlankInterrupt {
		value |= types.Bit3
	}
	if !enabled {
		return value
	}
	if s.Coincidence {
		value |= types.Bit2
	}
	return value | types.Byte(s.Mode&0x03)
}

// Line returns the level of the STAT interrupt line: high while any
// selected source is active.
func (s *Status) Line() bool {
	return s.HBlankInterrupt && s.Mode == HBlank ||
		s.VBlankInterrupt && s.Mode == VBlank ||
		s.OAMInterrupt && s.Mode == OAM ||
		s.CoincidenceInterrupt && s.Coincidence
}
