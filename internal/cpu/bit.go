package cpu

import "github.com/thelolagemann/dmgcore/internal/types"

// decodeCB executes a 0xCB prefixed instruction. The opcode is
// laid out as oo bbb rrr: operation, bit (or shift kind) and
// register.
func (c *CPU) decodeCB(opcode types.Byte) error {
	r := opcode & 7
	n := uint8(opcode >> 3 & 7)
	value := c.registerIndex(r)

	switch opcode >> 6 {
	case 0:
		c.setRegisterIndex(r, c.shift(n, value))
	case 1:
		c.testBit(n, value)
	case 2:
		c.setRegisterIndex(r, value.Reset(n))
	case 3:
		c.setRegisterIndex(r, value.Set(n))
	default:
		return ErrUnimplemented
	}
	return nil
}

// shift performs the rotate, shift or swap selected by kind, and
// sets the zero flag from the result.
func (c *CPU) shift(kind uint8, value types.Byte) types.Byte {
	var result types.Byte
	switch kind {
	case 0:
		result = c.rotateLeft(value)
	case 1:
		result = c.rotateRight(value)
	case 2:
		result = c.rotateLeftThroughCarry(value)
	case 3:
		result = c.rotateRightThroughCarry(value)
	case 4:
		result = c.shiftLeftArithmetic(value)
	case 5:
		result = c.shiftRightArithmetic(value)
	case 6:
		result = c.swap(value)
	default:
		result = c.shiftRightLogical(value)
	}
	c.setFlagTo(FlagZero, result == 0)
	return result
}

// rotateLeft rotates n left, bit 7 goes to the carry flag and
// to bit 0.
//
//	RLC n
//	RLCA
//
// Flags affected (the zero flag is set by the caller):
//
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) rotateLeft(n types.Byte) types.Byte {
	carry := n.Test(7)
	result := n<<1 | n>>7
	c.setFlags(false, false, false, carry)
	return result
}

// rotateRight rotates n right, bit 0 goes to the carry flag and
// to bit 7.
//
//	RRC n
//	RRCA
func (c *CPU) rotateRight(n types.Byte) types.Byte {
	carry := n.Test(0)
	result := n>>1 | n<<7
	c.setFlags(false, false, false, carry)
	return result
}

// rotateLeftThroughCarry rotates n left through the carry flag.
//
//	RL n
//	RLA
func (c *CPU) rotateLeftThroughCarry(n types.Byte) types.Byte {
	result := n<<1 | types.Byte(c.carry())
	c.setFlags(false, false, false, n.Test(7))
	return result
}

// rotateRightThroughCarry rotates n right through the carry flag.
//
//	RR n
//	RRA
func (c *CPU) rotateRightThroughCarry(n types.Byte) types.Byte {
	result := n>>1 | types.Byte(c.carry())<<7
	c.setFlags(false, false, false, n.Test(0))
	return result
}

// shiftLeftArithmetic shifts n left into the carry flag, bit 0
// is reset.
//
//	SLA n
func (c *CPU) shiftLeftArithmetic(n types.Byte) types.Byte {
	c.setFlags(false, false, false, n.Test(7))
	return n << 1
}

// shiftRightArithmetic shifts n right into the carry flag, bit 7
// keeps its value.
//
//	SRA n
func (c *CPU) shiftRightArithmetic(n types.Byte) types.Byte {
	c.setFlags(false, false, false, n.Test(0))
	return n>>1 | n&0x80
}

// shiftRightLogical shifts n right into the carry flag, bit 7 is
// reset.
//
//	SRL n
func (c *CPU) shiftRightLogical(n types.Byte) types.Byte {
	c.setFlags(false, false, false, n.Test(0))
	return n >> 1
}

// swap swaps the upper and lower nibbles of n.
//
//	SWAP n
//
// Flags affected (the zero flag is set by the caller):
//
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) swap(n types.Byte) types.Byte {
	c.setFlags(false, false, false, false)
	return n<<4 | n>>4
}

// testBit tests bit b of n.
//
//	BIT b, n
//	b = 0-7, n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if bit b of register n is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func (c *CPU) testBit(b uint8, n types.Byte) {
	c.setFlagTo(FlagZero, !n.Test(b))
	c.clearFlag(FlagSubtract)
	c.setFlag(FlagHalfCarry)
}
