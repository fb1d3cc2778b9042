// Package serial provides the serial port of the Game Boy. Bytes
// sent with the internal clock are written to an io.Writer, which
// is how test ROMs report their results.
package serial

import (
	"io"

	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// a bit is transferred every 128 M-cycles (8192 Hz)
const cyclesPerBit = 128

// Controller is the serial controller. It is responsible for sending and
// receiving data to and from devices.
// Before a transfer, data holds the next byte to be sent. AKA types.SB
// During a transfer, it has a mix of the incoming data and the outgoing data.
// each cycle, the leftmost bit of data is sent to the attached device, and
// shifted out of data, and the incoming bit is shifted into data.
//
// example:
//
//	Before : data = o7 o6 o5 o4 o3 o2 o1 o0
//	Cycle 1: data = o6 o5 o4 o3 o2 o1 o0 i0
//	Cycle 2: data = o5 o4 o3 o2 o1 o0 i0 i1
//	...
//	Cycle 8: data = i0 i1 i2 i3 i4 i5 i6 i7
//
// Where o0-o7 are the outgoing bits, and i0-i7 are the incoming bits.
type Controller struct {
	data    types.Byte
	control types.Byte

	count    uint8 // the number of bits that have been transferred.
	cycles   int   // M-cycles since the last bit
	outgoing types.Byte

	AttachedDevice Device // the device that is attached to this controller.
	out            io.Writer

	irq *interrupts.Service
}

// NewController creates a new Controller attached to the SB and SC
// registers. Completed outgoing bytes are written to out, which
// may be nil.
//
// Until a Device is attached with Attach, transfers read back 0xFF
// as they would with no cable plugged in.
func NewController(h *types.HardwareRegisters, irq *interrupts.Service, out io.Writer) *Controller {
	c := &Controller{
		AttachedDevice: disconnected{},
		out:            out,
		irq:            irq,
	}
	h.RegisterHardware(
		types.SB,
		func(v types.Byte) {
			c.data = v
		}, func() types.Byte {
			return c.data
		},
	)
	h.RegisterHardware(
		types.SC,
		func(v types.Byte) {
			c.control = v & (types.Bit7 | types.Bit0)
			if c.transferring() {
				c.count = 0
				c.cycles = 0
				c.outgoing = c.data
			}
		}, func() types.Byte {
			return c.control | 0x7E // bits 1-6 are always set
		},
	)
	return c
}

// Attach attaches a Device to the Controller.
func (c *Controller) Attach(d Device) {
	c.AttachedDevice = d
}

// transferring returns true while this Game Boy drives a transfer.
// Transfers using the external clock never complete without a
// link partner.
func (c *Controller) transferring() bool {
	return c.control&types.Bit7 != 0 && c.control&types.Bit0 != 0
}

// Step advances the controller by one M-cycle.
func (c *Controller) Step() {
	if !c.transferring() {
		return
	}
	if c.cycles++; c.cycles < cyclesPerBit {
		return
	}
	c.cycles = 0

	bit := c.AttachedDevice.Send()
	c.AttachedDevice.Receive(c.data&types.Bit7 != 0)
	c.data <<= 1
	if bit {
		c.data |= 1
	}

	if c.count++; c.count == 8 {
		c.count = 0
		c.control &^= types.Bit7
		c.irq.Request(interrupts.Serial)
		if c.out != nil {
			_, _ = c.out.Write([]byte{byte(c.outgoing)})
		}
	}
}

var _ types.Stater = (*Controller)(nil)

// Load implements the types.Stater interface.
func (c *Controller) Load(s *types.State) {
	c.data = s.Read8()
	c.control = s.Read8()
	c.count = uint8(s.Read8())
	c.cycles = int(s.Read16())
	c.outgoing = s.Read8()
}

// Save implements the types.Stater interface.
func (c *Controller) Save(s *types.State) {
	s.Write8(c.data)
	s.Write8(c.control)
	s.Write8(types.Byte(c.count))
	s.Write16(types.Word(c.cycles))
	s.Write8(c.outgoing)
}
