// Package mmu provides a memory management unit for the Game Boy. The
// MMU is unaware of the other components, and handles all the memory
// reads and writes via the IOBus interface and the IO register block.
package mmu

import (
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/boot"
	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/ram"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// IOBus is the interface that the MMU uses to communicate with the
// components that own a memory region.
type IOBus interface {
	Read(address types.Word) types.Byte
	Write(address types.Word, value types.Byte)
}

// DMA reports whether an OAM DMA transfer is in progress.
type DMA interface {
	Active() bool
}

// MMU is the memory management unit for the Game Boy. It handles all
// memory reads and writes to the Game Boy's 64kB of memory, and
// delegates to the other components through the IOBus interface.
type MMU struct {
	// 0x0000 - 0x00FF - BOOT ROM (256B)
	bootROM     *boot.ROM
	bootMounted bool

	// 0x0000 - 0x7FFF - ROM (32kB)
	// 0xA000 - 0xBFFF - External RAM (8kB)
	Cart cartridge.MemoryBankController

	// 0x8000 - 0x9FFF - Video RAM (8kB)
	// 0xFE00 - 0xFE9F - Sprite Attribute Table (160B)
	Video IOBus

	// 0xC000 - 0xDFFF - Work RAM (8kB)
	// 0xE000 - 0xFDFF - Echo RAM (7.5kB)
	wRAM *ram.RAM

	// 0xFF00 - 0xFF7F - I/O Registers
	// 0xFFFF - interrupt enable register
	registers *types.HardwareRegisters

	// 0xFF80 - 0xFFFE - Zero Page RAM (127B)
	zRAM *ram.RAM

	dma DMA

	Log log.Logger
}

// NewMMU returns a new MMU. When bootROM is not nil, it is mounted
// over the cartridge until it is unmapped with the BDIS register.
func NewMMU(cart cartridge.MemoryBankController, bootROM *boot.ROM, registers *types.HardwareRegisters, l log.Logger) *MMU {
	m := &MMU{
		Cart:        cart,
		bootROM:     bootROM,
		bootMounted: bootROM != nil,
		wRAM:        ram.NewRAM(0x2000),
		zRAM:        ram.NewRAM(0x7F),
		registers:   registers,
		Log:         l,
	}

	registers.RegisterHardware(
		types.BDIS,
		func(v types.Byte) {
			switch {
			case v&types.Bit0 != 0 && m.bootMounted:
				m.bootMounted = false
				m.Log.Debugf("mmu: boot rom unmapped")
			case v&types.Bit0 == 0 && !m.bootMounted && m.bootROM != nil:
				m.Log.Warnf("mmu: ignoring attempt to remap the boot rom (0x%02X)", v)
			}
		}, func() types.Byte {
			if m.bootMounted {
				return 0xFE
			}
			return 0xFF
		},
	)

	// the colour registers are not wired on the DMG
	for _, address := range cgbRegisters {
		registers.RegisterHardware(address, types.NoWrite, types.NoRead)
	}
	return m
}

// cgbRegisters are the IO addresses only the CGB decodes: KEY1, VBK,
// HDMA1-5, the palette ports and SVBK.
var cgbRegisters = []types.HardwareAddress{
	0xFF4D, 0xFF4F,
	0xFF51, 0xFF52, 0xFF53, 0xFF54, 0xFF55,
	0xFF68, 0xFF69, 0xFF6A, 0xFF6B,
	0xFF70,
}

// AttachVideo attaches the component owning VRAM and OAM.
func (m *MMU) AttachVideo(video IOBus) {
	m.Video = video
}

// AttachDMA attaches the OAM DMA controller. While it is active,
// the CPU can only access HRAM and the IO registers.
func (m *MMU) AttachDMA(dma DMA) {
	m.dma = dma
}

// BootROMMounted returns true while the boot ROM overlays the
// cartridge.
func (m *MMU) BootROMMounted() bool {
	return m.bootMounted
}

// locked returns true if the address can't be accessed by the CPU
// because of an ongoing OAM DMA transfer.
func (m *MMU) locked(address types.Word) bool {
	return m.dma != nil && address < 0xFF00 && m.dma.Active()
}

// LoadByte returns the value at the given address. It handles all
// the memory banks, mirroring, I/O, etc.
func (m *MMU) LoadByte(address types.Word) types.Byte {
	if m.locked(address) {
		return 0xFF
	}
	return m.load(address)
}

// LoadDMA reads the given address for the OAM DMA controller, which
// isn't locked out by its own transfer. Sources at 0xE000 and above
// read the work RAM.
func (m *MMU) LoadDMA(address types.Word) types.Byte {
	if address >= 0xE000 {
		return m.wRAM.Read(address & 0x1FFF)
	}
	return m.load(address)
}

func (m *MMU) load(address types.Word) types.Byte {
	switch {
	case address < 0x0100 && m.bootMounted:
		return m.bootROM.Read(address)
	case address < 0x8000:
		return m.Cart.LoadROMByte(address)
	case address < 0xA000:
		return m.Video.Read(address)
	case address < 0xC000:
		return m.Cart.LoadRAMByte(address - 0xA000)
	case address < 0xFE00:
		// 0xE000 - 0xFDFF echoes 0xC000 - 0xDDFF
		return m.wRAM.Read(address & 0x1FFF)
	case address < 0xFEA0:
		return m.Video.Read(address)
	case address < 0xFF00:
		// unusable
		return 0x00
	case address < 0xFF80 || address == types.IE:
		return m.registers.Read(address)
	case address < 0xFFFF:
		return m.zRAM.Read(address - 0xFF80)
	}
	panic(fmt.Sprintf("mmu: no mapping for address 0x%04X", address))
}

// StoreByte writes the value to the given address.
func (m *MMU) StoreByte(address types.Word, value types.Byte) {
	if m.locked(address) {
		return
	}

	switch {
	case address < 0x0100 && m.bootMounted:
		m.Log.Debugf("mmu: dropped write of 0x%02X to boot rom at 0x%04X", value, address)
	case address < 0x8000:
		m.Cart.StoreROMByte(address, value)
	case address < 0xA000:
		m.Video.Write(address, value)
	case address < 0xC000:
		m.Cart.StoreRAMByte(address-0xA000, value)
	case address < 0xFE00:
		m.wRAM.Write(address&0x1FFF, value)
	case address < 0xFEA0:
		m.Video.Write(address, value)
	case address < 0xFF00:
		// unusable
	case address < 0xFF80 || address == types.IE:
		m.registers.Write(address, value)
	case address < 0xFFFF:
		m.zRAM.Write(address-0xFF80, value)
	default:
		panic(fmt.Sprintf("mmu: no mapping for address 0x%04X", address))
	}
}

// LoadWord reads two bytes, low byte first.
func (m *MMU) LoadWord(address types.Word) types.Word {
	lo := m.LoadByte(address)
	hi := m.LoadByte(address.Inc())
	return types.WordFrom(lo, hi)
}

// StoreWord writes two bytes, low byte first.
func (m *MMU) StoreWord(address types.Word, value types.Word) {
	lo, hi := value.Split()
	m.StoreByte(address, lo)
	m.StoreByte(address.Inc(), hi)
}

var _ types.Stater = (*MMU)(nil)

// Load restores the work RAM, the zero page and the boot ROM
// mapping. The cartridge and the registers are restored by their
// owners.
func (m *MMU) Load(s *types.State) {
	m.wRAM.Load(s)
	m.zRAM.Load(s)
	m.bootMounted = s.ReadBool() && m.bootROM != nil
}

func (m *MMU) Save(s *types.State) {
	m.wRAM.Save(s)
	m.zRAM.Save(s)
	s.WriteBool(m.bootMounted)
}
