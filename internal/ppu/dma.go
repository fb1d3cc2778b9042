package ppu

import "github.com/thelolagemann/dmgcore/internal/types"

// DMASource is the bus the DMA controller copies from. It is read
// without the lock the transfer places on the CPU.
type DMASource interface {
	LoadDMA(address types.Word) types.Byte
}

// DMA is the OAM DMA controller. Writing to the DMA register copies
// 160 bytes from value<<8 to the OAM, one byte per machine cycle,
// after a cycle of setup.
type DMA struct {
	enabled    bool
	restarting bool

	timer  uint8
	source types.Word
	value  types.Byte

	bus DMASource
	oam *OAM
}

// NewDMA returns a new DMA controller attached to the DMA register.
func NewDMA(h *types.HardwareRegisters, bus DMASource, oam *OAM) *DMA {
	d := &DMA{
		bus: bus,
		oam: oam,
	}
	h.RegisterHardware(
		types.DMA,
		func(v types.Byte) {
			d.value = v
			d.source = types.Word(v) << 8
			d.timer = 0

			d.restarting = d.enabled
			d.enabled = true
		}, func() types.Byte {
			return d.value
		},
	)
	return d
}

// Step advances the transfer by a machine cycle.
func (d *DMA) Step() {
	if !d.enabled {
		return
	}

	d.timer++
	if d.timer == 1 {
		return // setup
	}
	d.restarting = false

	offset := types.Word(d.timer - 2)
	d.oam.Write(offset, d.bus.LoadDMA(d.source+offset))

	if offset == oamSize-1 {
		d.enabled = false
		d.timer = 0
	}
}

// Active returns true while the transfer locks the CPU out of the
// bus.
func (d *DMA) Active() bool {
	return d.enabled && (d.timer > 0 || d.restarting)
}

var _ types.Stater = (*DMA)(nil)

func (d *DMA) Load(s *types.State) {
	d.enabled = s.ReadBool()
	d.restarting = s.ReadBool()
	d.timer = uint8(s.Read8())
	d.value = s.Read8()
	d.source = types.Word(d.value) << 8
}

func (d *DMA) Save(s *types.State) {
	s.WriteBool(d.enabled)
	s.WriteBool(d.restarting)
	s.Write8(types.Byte(d.timer))
	s.Write8(d.value)
}
