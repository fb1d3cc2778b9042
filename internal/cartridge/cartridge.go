// Package cartridge provides the cartridge header and the memory bank
// controllers of the DMG. The cartridge holds the game ROM and any
// external RAM.
package cartridge

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
)

// Cartridge is a loaded game, with the memory bank controller
// selected by its header.
type Cartridge struct {
	Header
	MemoryBankController
}

type limits struct {
	rom, ram int
}

// the largest ROM and RAM each controller can address
var controllerLimits = map[string]limits{
	"none": {rom: 32 * 1024, ram: 8 * 1024},
	"mbc1": {rom: 2 * 1024 * 1024, ram: 32 * 1024},
	"mbc2": {rom: 256 * 1024, ram: 0},
	"mbc3": {rom: 2 * 1024 * 1024, ram: 32 * 1024},
	"mbc5": {rom: 8 * 1024 * 1024, ram: 128 * 1024},
}

func controllerOf(t Type) (string, bool) {
	switch t {
	case ROM, ROMRAM, ROMRAMBATT:
		return "none", true
	case MBC1, MBC1RAM, MBC1RAMBATT:
		return "mbc1", true
	case MBC2, MBC2BATT:
		return "mbc2", true
	case MBC3, MBC3RAM, MBC3RAMBATT, MBC3TIMERBATT, MBC3TIMERRAMBATT:
		return "mbc3", true
	case MBC5, MBC5RAM, MBC5RAMBATT, MBC5RUMBLE, MBC5RUMBLERAM, MBC5RUMBLERAMBATT:
		return "mbc5", true
	}
	return "", false
}

// New parses the header of rom and creates the memory bank
// controller it asks for. All problems with the header are
// reported together.
func New(rom []byte) (*Cartridge, error) {
	return newCartridge(rom, time.Now)
}

func newCartridge(rom []byte, clock func() time.Time) (*Cartridge, error) {
	header, err := ParseHeader(rom)
	if len(rom) < 0x150 {
		return nil, err
	}

	var result *multierror.Error
	if err != nil {
		result = multierror.Append(result, err)
	}

	controller, ok := controllerOf(header.CartridgeType)
	if !ok {
		result = multierror.Append(result, fmt.Errorf("%w: %s", ErrUnsupportedType, header.CartridgeType))
	} else {
		limit := controllerLimits[controller]
		if header.ROMSize > limit.rom {
			result = multierror.Append(result, fmt.Errorf("%w: %s with %dkB rom", ErrSizeNotSupported, controller, header.ROMSize/1024))
		}
		if header.RAMSize > limit.ram {
			result = multierror.Append(result, fmt.Errorf("%w: %s with %dkB ram", ErrSizeNotSupported, controller, header.RAMSize/1024))
		}
	}
	if header.ROMSize != 0 && header.ROMSize != len(rom) {
		result = multierror.Append(result, fmt.Errorf("%w: header says %d bytes, got %d", ErrLengthMismatch, header.ROMSize, len(rom)))
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	c := &Cartridge{Header: header}
	switch controller {
	case "none":
		c.MemoryBankController = NewNoMBC(rom, header.RAMSize)
	case "mbc1":
		c.MemoryBankController = NewMBC1(rom, header.RAMSize)
	case "mbc2":
		c.MemoryBankController = NewMBC2(rom)
	case "mbc3":
		c.MemoryBankController = NewMBC3(rom, header.RAMSize, header.CartridgeType.Timer(), clock)
	case "mbc5":
		c.MemoryBankController = NewMBC5(rom, header.RAMSize, header.CartridgeType >= MBC5RUMBLE)
	}
	return c, nil
}

// Rumble returns true while the rumble motor of the cartridge is
// running. It is always false for cartridges without a motor.
func (c *Cartridge) Rumble() bool {
	r, ok := c.MemoryBankController.(interface{ Rumble() bool })
	return ok && r.Rumble()
}

// Battery returns the battery backed RAM of the cartridge, if it
// has any.
func (c *Cartridge) Battery() (BatteryBacked, bool) {
	if !c.CartridgeType.Battery() {
		return nil, false
	}
	b, ok := c.MemoryBankController.(BatteryBacked)
	return b, ok
}
