package boot

// Minimal returns a boot program that skips the logo animation. It
// leaves the CPU registers with the values the DMG boot ROM leaves
// behind, turns on the LCD and unmaps itself with the final
// instruction at 0x00FE, so execution continues at 0x0100.
func Minimal() []byte {
	b := make([]byte, Size)
	copy(b, []byte{
		0x31, 0xFE, 0xFF, // LD SP, $FFFE
		0x3E, 0x91, // LD A, $91
		0xE0, 0x40, // LDH ($FF40), A
		0x3E, 0xFC, // LD A, $FC
		0xE0, 0x47, // LDH ($FF47), A
		0x01, 0xB0, 0x01, // LD BC, $01B0
		0xC5,             // PUSH BC
		0xF1,             // POP AF
		0x01, 0x13, 0x00, // LD BC, $0013
		0x11, 0xD8, 0x00, // LD DE, $00D8
		0x21, 0x4D, 0x01, // LD HL, $014D
	})
	copy(b[0xFC:], []byte{
		0x3E, 0x01, // LD A, $01
		0xE0, 0x50, // LDH ($FF50), A
	})
	return b
}
