package cpu

import "github.com/thelolagemann/dmgcore/internal/types"

// Register represents a GB Register which is used to hold an 8-bit value.
// The CPU has 8 registers: A, B, C, D, E, H, L, and F. The F register is
// special in that it is used to hold the flags.
type Register = types.Byte

// RegisterPair represents a pair of GB Registers which is used to hold a 16-bit
// value. The CPU has 4 register pairs: AF, BC, DE, and HL. A pair holds no
// state of its own; it is a view over its two registers.
type RegisterPair struct {
	High *Register
	Low  *Register

	// lowMask is applied to every write of the low register.
	lowMask Register
}

// Uint16 returns the value of the RegisterPair as a Word.
func (r *RegisterPair) Uint16() types.Word {
	return types.WordFrom(*r.Low, *r.High)
}

// SetUint16 sets the value of the RegisterPair to the given value.
func (r *RegisterPair) SetUint16(value types.Word) {
	lo, hi := value.Split()
	*r.High = hi
	*r.Low = lo & r.lowMask
}

// Registers represents the GB CPU registers.
type Registers struct {
	A Register
	B Register
	C Register
	D Register
	E Register
	F Register
	H Register
	L Register

	// SP is the stack pointer, it points to the top of the stack.
	SP types.Word
	// PC is the program counter, it points to the next instruction to be executed.
	PC types.Word

	BC *RegisterPair
	DE *RegisterPair
	HL *RegisterPair
	AF *RegisterPair
}

// pair wires up the register pairs. The low nibble of F is
// wired to zero, so AF masks it on every write.
func (r *Registers) pair() {
	r.BC = &RegisterPair{High: &r.B, Low: &r.C, lowMask: 0xFF}
	r.DE = &RegisterPair{High: &r.D, Low: &r.E, lowMask: 0xFF}
	r.HL = &RegisterPair{High: &r.H, Low: &r.L, lowMask: 0xFF}
	r.AF = &RegisterPair{High: &r.A, Low: &r.F, lowMask: 0xF0}
}
