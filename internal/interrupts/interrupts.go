// Package interrupts provides the interrupt controller of the
// Game Boy: the enable and request registers, the master enable
// flag and the fixed priority between the five sources.
package interrupts

import (
	"github.com/thelolagemann/dmgcore/internal/types"
)

// Source is one of the five interrupt sources. The value is
// the bit position of the source in the IE and IF registers,
// which is also its priority (lower wins).
type Source uint8

const (
	// VBlank is requested every time the PPU enters
	// VBlank mode.
	VBlank Source = iota
	// LCD is requested by the LCD STAT register when one
	// of its selected conditions is met.
	LCD
	// Timer is requested when TIMA overflows.
	Timer
	// Serial is requested when a serial transfer completes.
	Serial
	// Joypad is requested when any of the selected P1 input
	// lines go from high to low.
	Joypad
)

// Sources lists every interrupt source in priority order.
var Sources = [...]Source{VBlank, LCD, Timer, Serial, Joypad}

const sourceMask types.Byte = 0x1F

// Mask returns the bit of the source in the IE and IF registers.
func (s Source) Mask() types.Byte {
	return 1 << s
}

// Vector returns the address of the service routine for the
// source (0x40, 0x48, 0x50, 0x58 or 0x60).
func (s Source) Vector() types.Word {
	return 0x0040 + types.Word(s)*8
}

func (s Source) String() string {
	switch s {
	case VBlank:
		return "VBlank"
	case LCD:
		return "LCD"
	case Timer:
		return "Timer"
	case Serial:
		return "Serial"
	case Joypad:
		return "Joypad"
	}
	return "Unknown"
}

// Service is the interrupt service, used to request
// interrupts and to resolve which interrupt should be
// serviced next.
//
// When an interrupt is requested, the corresponding bit
// in the Flag register is set. When an interrupt is
// enabled, the corresponding bit in the Enable register
// is set. When an interrupt is requested and enabled,
// and the IME is set, the CPU will jump to the interrupt
// vector, and the corresponding bit in the Flag register
// will be cleared.
//
// The IME is set by the EI and RETI instructions, and
// cleared by DI and by the dispatch of an interrupt.
type Service struct {
	Flag   types.Byte // interrupt Flag (types.IF)
	Enable types.Byte // interrupt Enable (types.IE)
	IME    bool       // interrupt master enable
}

// NewService returns a new Service, with IF and IE attached to
// the given register block.
func NewService(h *types.HardwareRegisters) *Service {
	s := &Service{}
	h.RegisterHardware(
		types.IF,
		func(v types.Byte) {
			s.Flag = v & sourceMask // only the first 5 bits are used
		}, func() types.Byte {
			return s.Flag | 0xE0 // the upper 3 bits are always set
		},
	)
	h.RegisterHardware(
		types.IE,
		func(v types.Byte) {
			s.Enable = v
		}, func() types.Byte {
			return s.Enable
		},
	)

	return s
}

// Requested returns the highest priority source that is both
// enabled and requested, regardless of the IME.
func (s *Service) Requested() (Source, bool) {
	pending := s.Enable & s.Flag & sourceMask
	if pending == 0 {
		return 0, false
	}
	for _, src := range Sources {
		if pending&src.Mask() != 0 {
			return src, true
		}
	}
	return 0, false
}

// ShouldInterrupt is like Requested, but never reports a
// source while the IME is cleared.
func (s *Service) ShouldInterrupt() (Source, bool) {
	if !s.IME {
		return 0, false
	}
	return s.Requested()
}

// Request requests the specified interrupt, by setting
// the corresponding bit in the Flag register.
func (s *Service) Request(src Source) {
	s.Flag |= src.Mask()
}

// Reset clears the request bit of src, and only that bit.
func (s *Service) Reset(src Source) {
	s.Flag &^= src.Mask()
}

var _ types.Stater = (*Service)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - Flag (uint8)
//   - Enable (uint8)
//   - IME (bool)
func (s *Service) Load(st *types.State) {
	s.Flag = st.Read8()
	s.Enable = st.Read8()
	s.IME = st.ReadBool()
}

// Save implements the types.Stater interface.
func (s *Service) Save(st *types.State) {
	st.Write8(s.Flag)
	st.Write8(s.Enable)
	st.WriteBool(s.IME)
}
