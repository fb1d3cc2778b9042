package cartridge

import "github.com/thelolagemann/dmgcore/internal/types"

// NoMBC is a cartridge without a memory bank controller. The ROM
// is mapped directly, and up to 8KiB of RAM may be present. Writes
// to ROM are ignored.
type NoMBC struct {
	banks
}

// NewNoMBC returns a new NoMBC cartridge.
func NewNoMBC(rom []byte, ramSize int) *NoMBC {
	return &NoMBC{banks: newBanks(rom, ramSize)}
}

func (n *NoMBC) LoadROMByte(address types.Word) types.Byte {
	return types.Byte(n.rom[address&0x7FFF])
}

func (n *NoMBC) StoreROMByte(types.Word, types.Byte) {}

func (n *NoMBC) LoadRAMByte(address types.Word) types.Byte {
	return n.readRAM(0, address)
}

func (n *NoMBC) StoreRAMByte(address types.Word, value types.Byte) {
	n.writeRAM(0, address, value)
}

func (n *NoMBC) Load(s *types.State) {
	s.ReadData(n.ram)
}

func (n *NoMBC) Save(s *types.State) {
	s.WriteData(n.ram)
}
