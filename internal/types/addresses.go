package types

// HardwareAddress represents the address of a hardware
// register of the Game Boy. The hardware registers are
// mapped to memory addresses 0xFF00 - 0xFF7F & 0xFFFF.
type HardwareAddress = Word

const (
	// P1 selects the input lines to be read by the CPU, and
	// reports the state of the joypad.
	P1 HardwareAddress = 0xFF00
	// SB holds the byte to transfer over the serial port.
	SB HardwareAddress = 0xFF01
	// SC controls the serial port.
	SC HardwareAddress = 0xFF02
	// DIV is incremented at a rate of 16384Hz. Internally it is
	// the upper byte of a 16-bit counter, and writing any value
	// to it resets the whole counter.
	DIV HardwareAddress = 0xFF04
	// TIMA is incremented at the rate selected by TAC. When it
	// overflows it is reloaded from TMA, and a timer interrupt
	// is requested.
	TIMA HardwareAddress = 0xFF05
	// TMA is loaded into TIMA when it overflows.
	TMA HardwareAddress = 0xFF06
	// TAC controls the timer.
	//
	//  Bit 2:   Timer Enable
	//  Bit 1-0: Input Clock Select
	//           00: 4096Hz
	//           01: 262144Hz
	//           10: 65536Hz
	//           11: 16384Hz
	TAC HardwareAddress = 0xFF07
	// IF is used to request interrupts.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)  (1=Request)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h) (1=Request)
	//  Bit 2: Timer Interrupt Request (INT 50h)    (1=Request)
	//  Bit 3: Serial Interrupt Request (INT 58h)   (1=Request)
	//  Bit 4: Joypad Interrupt Request (INT 60h)   (1=Request)
	IF HardwareAddress = 0xFF0F

	NR10 HardwareAddress = 0xFF10
	NR11 HardwareAddress = 0xFF11
	NR12 HardwareAddress = 0xFF12
	NR13 HardwareAddress = 0xFF13
	NR14 HardwareAddress = 0xFF14
	NR21 HardwareAddress = 0xFF16
	NR22 HardwareAddress = 0xFF17
	NR23 HardwareAddress = 0xFF18
	NR24 HardwareAddress = 0xFF19
	NR30 HardwareAddress = 0xFF1A
	NR31 HardwareAddress = 0xFF1B
	NR32 HardwareAddress = 0xFF1C
	NR33 HardwareAddress = 0xFF1D
	NR34 HardwareAddress = 0xFF1E
	NR41 HardwareAddress = 0xFF20
	NR42 HardwareAddress = 0xFF21
	NR43 HardwareAddress = 0xFF22
	NR44 HardwareAddress = 0xFF23
	// NR50 sets the master volume for the left and right output.
	NR50 HardwareAddress = 0xFF24
	// NR51 pans each channel to the left and/or right output.
	NR51 HardwareAddress = 0xFF25
	// NR52 is the sound on/off register. Bit 7 powers the whole
	// sound controller, bits 0-3 report which channels are on.
	NR52 HardwareAddress = 0xFF26
	// WaveRAM is the first of the 16 bytes of wave pattern RAM.
	WaveRAM HardwareAddress = 0xFF30

	// LCDC controls the LCD.
	//
	//  Bit 7: LCD Enable                     (0=Off, 1=On)
	//  Bit 6: Window Tile Map Display Select (0=9800-9BFF, 1=9C00-9FFF)
	//  Bit 5: Window Display Enable          (0=Off, 1=On)
	//  Bit 4: BG & Window Tile Data Select   (0=8800-97FF, 1=8000-8FFF)
	//  Bit 3: BG Tile Map Display Select     (0=9800-9BFF, 1=9C00-9FFF)
	//  Bit 2: OBJ (Sprite) Size              (0=8x8, 1=8x16)
	//  Bit 1: OBJ (Sprite) Display Enable    (0=Off, 1=On)
	//  Bit 0: BG Display                     (0=Off, 1=On)
	LCDC HardwareAddress = 0xFF40
	// STAT reports the mode the LCD is in, and selects the
	// sources of the LCD STAT interrupt.
	//
	//  Bit 6: LYC=LY Coincidence Interrupt (1=Enable) (Read/Write)
	//  Bit 5: mode 2 OAM Interrupt         (1=Enable) (Read/Write)
	//  Bit 4: mode 1 V-Blank Interrupt     (1=Enable) (Read/Write)
	//  Bit 3: mode 0 H-Blank Interrupt     (1=Enable) (Read/Write)
	//  Bit 2: Coincidence Flag  (0:LYC<>LY, 1:LYC=LY) (Read Only)
	//  Bit 1-0: mode Flag                             (Read Only)
	STAT HardwareAddress = 0xFF41
	SCY  HardwareAddress = 0xFF42
	SCX  HardwareAddress = 0xFF43
	// LY is the scanline currently being processed (0-153). It
	// is read-only.
	LY  HardwareAddress = 0xFF44
	LYC HardwareAddress = 0xFF45
	// DMA starts a transfer of 160 bytes from (value << 8) to OAM.
	DMA HardwareAddress = 0xFF46
	// BGP holds the shades for background colour numbers 0-3,
	// two bits each starting from the least significant bits.
	BGP  HardwareAddress = 0xFF47
	OBP0 HardwareAddress = 0xFF48
	OBP1 HardwareAddress = 0xFF49
	WY   HardwareAddress = 0xFF4A
	WX   HardwareAddress = 0xFF4B
	// BDIS unmounts the boot ROM once bit 0 is written as 1.
	BDIS HardwareAddress = 0xFF50
	// IE enables the individual interrupt sources, bits as IF.
	IE HardwareAddress = 0xFFFF
)
