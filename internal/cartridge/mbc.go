package cartridge

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/types"
)

// ErrRAMSizeMismatch is returned when restoring battery RAM of a
// different size than the cartridge RAM.
var ErrRAMSizeMismatch = errors.New("cartridge: ram size mismatch")

// MemoryBankController controls all reads and writes to the
// cartridge. ROM addresses are absolute (0x0000 - 0x7FFF), RAM
// addresses are relative to the start of the external RAM window
// (0x0000 - 0x1FFF).
//
// Writes to ROM are usually used to write to the controller's
// bank registers.
type MemoryBankController interface {
	LoadROMByte(address types.Word) types.Byte
	StoreROMByte(address types.Word, value types.Byte)
	LoadRAMByte(address types.Word) types.Byte
	StoreRAMByte(address types.Word, value types.Byte)

	types.Stater
}

// BatteryBacked is implemented by controllers whose RAM can be
// persisted between runs. The persisted format is the raw RAM.
type BatteryBacked interface {
	RAM() []byte
	LoadRAM([]byte) error
}

const (
	romBankSize = 0x4000
	ramBankSize = 0x2000
)

// banks holds the ROM and RAM of a cartridge, and implements the
// parts common to every controller.
type banks struct {
	rom []byte
	ram []byte
}

func newBanks(rom []byte, ramSize int) banks {
	return banks{rom: rom, ram: make([]byte, ramSize)}
}

// readROM returns the byte at offset in the given 16KiB bank. Banks
// past the end of the ROM wrap around, as the unused bank lines are
// not connected.
func (b *banks) readROM(bank int, offset types.Word) types.Byte {
	count := len(b.rom) / romBankSize
	bank %= count
	return types.Byte(b.rom[bank*romBankSize+int(offset&0x3FFF)])
}

// readRAM returns the byte at offset in the given 8KiB bank, or
// 0xFF if there is no RAM there.
func (b *banks) readRAM(bank int, offset types.Word) types.Byte {
	i := bank*ramBankSize + int(offset&0x1FFF)
	if i >= len(b.ram) {
		return 0xFF
	}
	return types.Byte(b.ram[i])
}

// writeRAM writes to the given 8KiB bank, dropping writes outside
// of the RAM.
func (b *banks) writeRAM(bank int, offset types.Word, value types.Byte) {
	i := bank*ramBankSize + int(offset&0x1FFF)
	if i < len(b.ram) {
		b.ram[i] = byte(value)
	}
}

// RAM returns the cartridge RAM.
func (b *banks) RAM() []byte {
	return b.ram
}

// LoadRAM replaces the cartridge RAM with data.
func (b *banks) LoadRAM(data []byte) error {
	if len(data) != len(b.ram) {
		return fmt.Errorf("%w: expected %d bytes, got %d", ErrRAMSizeMismatch, len(b.ram), len(data))
	}
	copy(b.ram, data)
	return nil
}

func ramEnable(value types.Byte) bool {
	return value&0x0F == 0x0A
}
