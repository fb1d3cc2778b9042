package lcd

// Mode represents a mode of the LCD, as reported in bits 0-1 of
// the STAT register.
type Mode = uint8

const (
	// HBlank (Mode 0) - Horizontal Blanking Period
	//
	//	Duration: the rest of the 114 machine cycles of the line
	//	- Allows CPU access to VRAM/OAM
	//	- STAT interrupt available if enabled via STAT.3
	HBlank Mode = iota

	// VBlank (Mode 1) - Vertical Blanking Period
	//
	//	Duration: 1140 machine cycles (10 lines)
	//	- Allows full CPU access to VRAM/OAM
	//	- VBlank interrupt, STAT interrupt if enabled via STAT.4
	//	- Active during LY 144-153
	VBlank

	// OAM (Mode 2) - OAM Scan
	//
	//	Duration: 20 machine cycles
	//	- Locks the OAM bus
	//	- STAT interrupt available if enabled via STAT.5
	OAM

	// VRAM (Mode 3) - Pixel Transfer
	//
	//	Duration: 43 machine cycles
	//	- Locks both OAM and VRAM buses
	VRAM
)
