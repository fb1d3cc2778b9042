package cartridge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrHeaderTooShort is returned when the ROM ends before the
	// end of the cartridge header at 0x014F.
	ErrHeaderTooShort = errors.New("cartridge: rom too short to contain a header")
	// ErrUnsupportedType is returned for cartridge types without
	// a memory bank controller implementation.
	ErrUnsupportedType = errors.New("cartridge: unsupported cartridge type")
	// ErrInvalidROMSize is returned for an unknown ROM size code.
	ErrInvalidROMSize = errors.New("cartridge: invalid rom size")
	// ErrInvalidRAMSize is returned for an unknown RAM size code.
	ErrInvalidRAMSize = errors.New("cartridge: invalid ram size")
	// ErrLengthMismatch is returned when the ROM length differs
	// from the ROM size in the header.
	ErrLengthMismatch = errors.New("cartridge: rom length does not match header")
	// ErrSizeNotSupported is returned when the ROM or RAM size is
	// larger than the memory bank controller can address.
	ErrSizeNotSupported = errors.New("cartridge: size not supported by memory bank controller")
)

// Flag is the value of the CGB flag at 0x0143.
type Flag uint8

const (
	FlagOnlyDMG Flag = iota
	FlagSupportsCGB
	FlagOnlyCGB
)

// Type is the cartridge type at 0x0147, describing the memory bank
// controller and any additional hardware on the cartridge.
type Type uint8

const (
	ROM               Type = 0x00
	MBC1              Type = 0x01
	MBC1RAM           Type = 0x02
	MBC1RAMBATT       Type = 0x03
	MBC2              Type = 0x05
	MBC2BATT          Type = 0x06
	ROMRAM            Type = 0x08
	ROMRAMBATT        Type = 0x09
	MMM01             Type = 0x0B
	MMM01RAM          Type = 0x0C
	MMM01RAMBATT      Type = 0x0D
	MBC3TIMERBATT     Type = 0x0F
	MBC3TIMERRAMBATT  Type = 0x10
	MBC3              Type = 0x11
	MBC3RAM           Type = 0x12
	MBC3RAMBATT       Type = 0x13
	MBC5              Type = 0x19
	MBC5RAM           Type = 0x1A
	MBC5RAMBATT       Type = 0x1B
	MBC5RUMBLE        Type = 0x1C
	MBC5RUMBLERAM     Type = 0x1D
	MBC5RUMBLERAMBATT Type = 0x1E
	POCKETCAMERA      Type = 0x1F
	BANDAITAMA5       Type = 0xFD
	HUDSONHUC3        Type = 0xFE
	HUDSONHUC1        Type = 0xFF
)

var typeNames = map[Type]string{
	ROM:               "ROM",
	MBC1:              "MBC1",
	MBC1RAM:           "MBC1+RAM",
	MBC1RAMBATT:       "MBC1+RAM+BATTERY",
	MBC2:              "MBC2",
	MBC2BATT:          "MBC2+BATTERY",
	ROMRAM:            "ROM+RAM",
	ROMRAMBATT:        "ROM+RAM+BATTERY",
	MMM01:             "MMM01",
	MMM01RAM:          "MMM01+RAM",
	MMM01RAMBATT:      "MMM01+RAM+BATTERY",
	MBC3TIMERBATT:     "MBC3+TIMER+BATTERY",
	MBC3TIMERRAMBATT:  "MBC3+TIMER+RAM+BATTERY",
	MBC3:              "MBC3",
	MBC3RAM:           "MBC3+RAM",
	MBC3RAMBATT:       "MBC3+RAM+BATTERY",
	MBC5:              "MBC5",
	MBC5RAM:           "MBC5+RAM",
	MBC5RAMBATT:       "MBC5+RAM+BATTERY",
	MBC5RUMBLE:        "MBC5+RUMBLE",
	MBC5RUMBLERAM:     "MBC5+RUMBLE+RAM",
	MBC5RUMBLERAMBATT: "MBC5+RUMBLE+RAM+BATTERY",
	POCKETCAMERA:      "POCKET CAMERA",
	BANDAITAMA5:       "BANDAI TAMA5",
	HUDSONHUC3:        "HuC3",
	HUDSONHUC1:        "HuC1+RAM+BATTERY",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(0x%02X)", uint8(t))
}

// Battery returns true if the cartridge keeps its RAM powered
// by a battery.
func (t Type) Battery() bool {
	switch t {
	case MBC1RAMBATT, MBC2BATT, ROMRAMBATT, MMM01RAMBATT, MBC3TIMERBATT,
		MBC3TIMERRAMBATT, MBC3RAMBATT, MBC5RAMBATT, MBC5RUMBLERAMBATT, HUDSONHUC1:
		return true
	}
	return false
}

// Timer returns true if the cartridge has a real time clock.
func (t Type) Timer() bool {
	return t == MBC3TIMERBATT || t == MBC3TIMERRAMBATT
}

var ramSizes = map[uint8]int{
	0x00: 0,
	0x01: 2 * 1024,
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// Header represents the header of a cartridge, each cartridge has a header and is
// located at the address space 0x0100-0x014F. The header contains information about
// the cartridge itself, and the hardware it expects to run on.
type Header struct {
	// 0x0134-0x0143 - Title of the game, trimmed at the first NUL
	Title string

	// 0x013F-0x0142 - ManufacturerCode of the game
	ManufacturerCode string

	// 0x0143 - CartridgeGBMode of the game. In older cartridges this byte was part
	// of the title, but the Colour Game Boy and later models interpret this byte
	// to determine if the cartridge is compatible with the Colour Game Boy.
	CartridgeGBMode Flag

	NewLicenseeCode string
	SGBFlag         bool
	CartridgeType   Type
	// ROMSize and RAMSize are in bytes.
	ROMSize         int
	RAMSize         int
	CountryCode     uint8
	OldLicenseeCode uint8
	MaskROMVersion  uint8
	HeaderChecksum  uint8
	GlobalChecksum  uint16

	// computed over 0x0134-0x014C
	checksum uint8
}

// ParseHeader parses the header of the given ROM. Every problem
// with the header is reported, combined into a single error.
func ParseHeader(rom []byte) (Header, error) {
	h := Header{}
	if len(rom) < 0x150 {
		return h, fmt.Errorf("%w: %d bytes", ErrHeaderTooShort, len(rom))
	}
	header := rom[0x100:0x150]

	// parse the mode of the cartridge and parse the header accordingly
	switch header[0x43] {
	case 0x80:
		h.CartridgeGBMode = FlagSupportsCGB
	case 0xC0:
		h.CartridgeGBMode = FlagOnlyCGB
	default:
		h.CartridgeGBMode = FlagOnlyDMG
	}

	// the title fills 0x0134-0x0143, unless 0x0143 holds the CGB
	// flag
	title := header[0x34:0x44]
	if h.CartridgeGBMode != FlagOnlyDMG {
		title = header[0x34:0x43]
	}
	if i := strings.IndexByte(string(title), 0); i >= 0 {
		title = title[:i]
	}
	h.Title = strings.TrimSpace(string(title))

	h.ManufacturerCode = string(header[0x3F:0x43])
	h.NewLicenseeCode = string(header[0x44:0x46])
	h.SGBFlag = header[0x46] == 0x03
	h.CartridgeType = Type(header[0x47])
	h.CountryCode = header[0x4A]
	h.OldLicenseeCode = header[0x4B]
	h.MaskROMVersion = header[0x4C]
	h.HeaderChecksum = header[0x4D]
	h.GlobalChecksum = uint16(header[0x4E])<<8 | uint16(header[0x4F])

	for _, b := range header[0x34:0x4D] {
		h.checksum = h.checksum - b - 1
	}

	var result *multierror.Error

	// the ROM size is calculated by 32kB x (1 << n)
	if code := header[0x48]; code <= 0x08 {
		h.ROMSize = (32 * 1024) << code
	} else {
		result = multierror.Append(result, fmt.Errorf("%w: code 0x%02X", ErrInvalidROMSize, code))
	}

	if size, ok := ramSizes[header[0x49]]; ok {
		h.RAMSize = size
	} else {
		result = multierror.Append(result, fmt.Errorf("%w: code 0x%02X", ErrInvalidRAMSize, header[0x49]))
	}

	return h, result.ErrorOrNil()
}

// ChecksumValid returns true if the header checksum at 0x014D
// matches the header contents. Real hardware refuses to boot a
// cartridge with a bad checksum, the emulator only reports it.
func (h *Header) ChecksumValid() bool {
	return h.checksum == h.HeaderChecksum
}

// Hardware returns the hardware the cartridge was made for.
func (h *Header) Hardware() string {
	switch h.CartridgeGBMode {
	case FlagOnlyDMG:
		return "DMG"
	case FlagSupportsCGB, FlagOnlyCGB:
		return "CGB"
	default:
		return "Unknown"
	}
}

func (h *Header) String() string {
	return fmt.Sprintf("%s | Mode: %s | Type: %s | ROM Size: %dkB | RAM Size: %dkB", h.Title, h.Hardware(), h.CartridgeType, h.ROMSize/1024, h.RAMSize/1024)
}
