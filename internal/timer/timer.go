// Package timer provides an implementation of the Game Boy
// timer. It is used to generate interrupts at a specific
// frequency. The frequency can be configured using the
// TimerControlRegister.
package timer

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// Controller is a timer controller. It is used to generate
// interrupts at a specific frequency. The frequency can be
// configured using the types.TAC register.
//
// The divider is the upper byte of a 16-bit counter advanced every
// T-cycle. TIMA is incremented on the falling edge of the counter
// bit selected by TAC.
type Controller struct {
	currentBit  uint16
	internalDiv uint16

	tima               types.Byte
	ticksSinceOverflow uint8
	tma                types.Byte
	tac                types.Byte

	Enabled  bool
	lastBit  bool
	overflow bool

	irq *interrupts.Service
}

// NewController returns a new timer controller, attached to the
// DIV, TIMA, TMA and TAC registers.
func NewController(h *types.HardwareRegisters, irq *interrupts.Service) *Controller {
	c := &Controller{
		irq:        irq,
		currentBit: bits[0],
		tac:        0xF8,
	}
	h.RegisterHardware(
		types.DIV,
		func(v types.Byte) {
			// any write resets the whole counter, which is a
			// falling edge if the selected bit was set
			if c.Enabled && c.internalDiv&c.currentBit != 0 {
				c.increment()
			}
			c.internalDiv = 0
			c.lastBit = false
		}, func() types.Byte {
			return types.Byte(c.internalDiv >> 8)
		},
	)
	h.RegisterHardware(
		types.TIMA,
		func(v types.Byte) {
			// writes to TIMA are ignored if written the same tick it is
			// reloading
			if c.ticksSinceOverflow != 5 {
				c.tima = v
				c.overflow = false
				c.ticksSinceOverflow = 0
			}
		}, func() types.Byte {
			return c.tima
		},
	)
	h.RegisterHardware(
		types.TMA,
		func(v types.Byte) {
			c.tma = v
			// if you write to TMA the same tick that TIMA is reloading,
			// TIMA will be set to the new value of TMA
			if c.ticksSinceOverflow == 5 {
				c.tima = v
			}
		}, func() types.Byte {
			return c.tma
		},
	)
	h.RegisterHardware(
		types.TAC,
		func(v types.Byte) {
			wasEnabled := c.Enabled
			oldBit := c.currentBit
			// 00 = bit 9 (4096 Hz)
			// 01 = bit 3 (262144 Hz)
			// 10 = bit 5 (65536 Hz)
			// 11 = bit 7 (16384 Hz)
			c.tac = v
			c.currentBit = bits[v&0b11]
			c.Enabled = v&types.Bit2 != 0

			c.timaGlitch(wasEnabled, oldBit)
		}, func() types.Byte {
			return c.tac | 0b11111000
		},
	)

	return c
}

// Step advances the timer by 1 M-Cycle (4 T-Cycles).
func (c *Controller) Step() {
	for i := 0; i < 4; i++ {
		c.internalDiv++

		newBit := c.Enabled && c.internalDiv&c.currentBit != 0

		// detect a falling edge
		if !newBit && c.lastBit {
			c.increment()
		}
		c.lastBit = newBit

		// TIMA reads 0 for 4 T-cycles before it is reloaded
		if c.overflow {
			c.ticksSinceOverflow++
			switch c.ticksSinceOverflow {
			case 4:
				c.irq.Request(interrupts.Timer)
			case 5:
				c.tima = c.tma
			case 6:
				c.overflow = false
				c.ticksSinceOverflow = 0
			}
		}
	}
}

// Div returns the internal counter.
func (c *Controller) Div() uint16 {
	return c.internalDiv
}

// SetDiv sets the internal counter, used to start with the
// counter the boot ROM leaves behind.
func (c *Controller) SetDiv(v uint16) {
	c.internalDiv = v
}

// increment advances TIMA. An overflow starts the delayed reload
// from TMA, wherever the edge came from.
func (c *Controller) increment() {
	c.tima++
	if c.tima == 0 {
		c.overflow = true
		c.ticksSinceOverflow = 0
	}
}

// timaGlitch handles the glitch that occurs when the timer is
// disabled, or the frequency changed, while the selected bit is set.
func (c *Controller) timaGlitch(wasEnabled bool, oldBit uint16) {
	if !wasEnabled {
		return
	}

	if c.internalDiv&oldBit != 0 {
		if !c.Enabled || c.internalDiv&c.currentBit == 0 {
			c.increment()
			c.lastBit = false
		}
	}
}

var bits = [4]uint16{512, 8, 32, 128}

var _ types.Stater = (*Controller)(nil)

// Load loads the state of the controller.
func (c *Controller) Load(s *types.State) {
	c.internalDiv = uint16(s.Read16())
	c.tima = s.Read8()
	c.tma = s.Read8()
	c.tac = s.Read8()

	c.Enabled = s.ReadBool()
	c.currentBit = uint16(s.Read16())
	c.lastBit = s.ReadBool()
	c.overflow = s.ReadBool()
	c.ticksSinceOverflow = uint8(s.Read8())
}

// Save saves the state of the controller.
func (c *Controller) Save(s *types.State) {
	s.Write16(types.Word(c.internalDiv))
	s.Write8(c.tima)
	s.Write8(c.tma)
	s.Write8(c.tac)

	s.WriteBool(c.Enabled)
	s.Write16(types.Word(c.currentBit))
	s.WriteBool(c.lastBit)
	s.WriteBool(c.overflow)
	s.Write8(types.Byte(c.ticksSinceOverflow))
}
