package types

// Single bit masks, used for the flags packed into the hardware
// registers.
const (
	Bit0 = 1 << iota
	Bit1
	Bit2
	Bit3
	Bit4
	Bit5
	Bit6
	Bit7
)
