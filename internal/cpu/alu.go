package cpu

import "github.com/thelolagemann/dmgcore/internal/types"

// alu performs the 8-bit ALU operation selected by the 3-bit
// operation field of an opcode on A and n.
func (c *CPU) alu(operation types.Byte, n types.Byte) {
	switch operation & 7 {
	case 0:
		c.add(n, false)
	case 1:
		c.add(n, true)
	case 2:
		c.A = c.sub(n, false)
	case 3:
		c.A = c.sub(n, true)
	case 4:
		c.and(n)
	case 5:
		c.xor(n)
	case 6:
		c.or(n)
	default:
		c.compare(n)
	}
}

// add adds n (and the carry flag, if useCarry) to the A Register.
//
//	ADD A, n
//	ADC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(n types.Byte, useCarry bool) {
	var carry uint8
	if useCarry {
		carry = c.carry()
	}
	sum := uint16(c.A) + uint16(n) + uint16(carry)
	halfCarry := uint8(c.A.Low())+uint8(n.Low())+carry > 0x0F

	c.A = types.Byte(sum)
	c.setFlags(c.A == 0, false, halfCarry, sum > 0xFF)
}

// sub subtracts n (and the carry flag, if useCarry) from the A
// Register, and returns the result.
//
//	SUB n
//	SBC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if no borrow from bit 4.
//	C - Set if no borrow.
func (c *CPU) sub(n types.Byte, useCarry bool) types.Byte {
	var carry int
	if useCarry {
		carry = int(c.carry())
	}
	diff := int(c.A) - int(n) - carry
	halfCarry := int(c.A.Low())-int(n.Low())-carry < 0

	result := types.Byte(diff)
	c.setFlags(result == 0, true, halfCarry, diff < 0)
	return result
}

// and performs a bitwise AND operation on n and the A Register.
//
//	AND n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) and(n types.Byte) {
	c.A &= n
	c.setFlags(c.A == 0, false, true, false)
}

// or performs a bitwise OR operation on n and the A Register.
//
//	OR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) or(n types.Byte) {
	c.A |= n
	c.setFlags(c.A == 0, false, false, false)
}

// xor performs a bitwise XOR operation on n and the A Register.
//
//	XOR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) xor(n types.Byte) {
	c.A ^= n
	c.setFlags(c.A == 0, false, false, false)
}

// compare compares n to the A Register. This is a subtraction
// whose result is thrown away.
//
//	CP n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero. (Set if A = n.)
//	N - Set.
//	H - Set if no borrow from bit 4.
//	C - Set for no borrow. (Set if A < n.)
func (c *CPU) compare(n types.Byte) {
	c.sub(n, false)
}

// increment returns n + 1.
//
//	INC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func (c *CPU) increment(n types.Byte) types.Byte {
	result := n.Inc()
	c.setFlagTo(FlagZero, result == 0)
	c.clearFlag(FlagSubtract)
	c.setFlagTo(FlagHalfCarry, n.Low() == 0x0F)
	return result
}

// decrement returns n - 1.
//
//	DEC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if no borrow from bit 4.
//	C - Not affected.
func (c *CPU) decrement(n types.Byte) types.Byte {
	result := n.Dec()
	c.setFlagTo(FlagZero, result == 0)
	c.setFlag(FlagSubtract)
	c.setFlagTo(FlagHalfCarry, n.Low() == 0)
	return result
}

// addHL adds n to the HL register pair.
//
//	ADD HL, n
//	n = BC, DE, HL, SP
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHL(n types.Word) {
	hl := c.HL.Uint16()
	sum := uint32(hl) + uint32(n)

	c.clearFlag(FlagSubtract)
	c.setFlagTo(FlagHalfCarry, hl&0x0FFF+n&0x0FFF > 0x0FFF)
	c.setFlagTo(FlagCarry, sum > 0xFFFF)
	c.HL.SetUint16(types.Word(sum))
}

// addSPSigned returns SP plus the signed offset n. The flags are
// computed on the unsigned low byte.
//
//	ADD SP, r8
//	LD HL, SP+r8
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) addSPSigned(n types.Byte) types.Word {
	low := c.SP.Low()
	c.setFlags(
		false,
		false,
		uint8(low.Low())+uint8(n.Low()) > 0x0F,
		uint16(low)+uint16(n) > 0xFF,
	)
	return c.SP.AddSigned(n)
}

// daa adjusts the A Register back into binary coded decimal after
// an addition or subtraction of two BCD numbers.
//
//	DAA
//
// Flags affected:
//
//	Z - Set if register A is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set or reset according to operation.
func (c *CPU) daa() {
	carry := false
	if c.isFlagSet(FlagSubtract) {
		if c.isFlagSet(FlagCarry) {
			c.A -= 0x60
			carry = true
		}
		if c.isFlagSet(FlagHalfCarry) {
			c.A -= 0x06
		}
	} else {
		lo, hi := c.A.Low(), c.A.High()
		if c.isFlagSet(FlagHalfCarry) || lo > 0x09 {
			c.A += 0x06
		}
		if c.isFlagSet(FlagCarry) || (hi > 0x09 && lo < 0x0A) || (hi > 0x08 && lo > 0x09) {
			c.A += 0x60
			carry = true
		}
	}

	c.setFlagTo(FlagZero, c.A == 0)
	c.clearFlag(FlagHalfCarry)
	c.setFlagTo(FlagCarry, carry)
}
