package cpu

import "github.com/thelolagemann/dmgcore/internal/types"

// registerIndex returns the value of the register selected by the
// 3-bit register field of an opcode. Index 6 is (HL).
func (c *CPU) registerIndex(index types.Byte) types.Byte {
	switch index & 7 {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return c.bus.LoadByte(c.HL.Uint16())
	default:
		return c.A
	}
}

// setRegisterIndex is the store counterpart of registerIndex.
func (c *CPU) setRegisterIndex(index types.Byte, value types.Byte) {
	switch index & 7 {
	case 0:
		c.B = value
	case 1:
		c.C = value
	case 2:
		c.D = value
	case 3:
		c.E = value
	case 4:
		c.H = value
	case 5:
		c.L = value
	case 6:
		c.bus.StoreByte(c.HL.Uint16(), value)
	default:
		c.A = value
	}
}

// condition evaluates the 2-bit condition field of a conditional
// instruction: NZ, Z, NC or C.
func (c *CPU) condition(opcode types.Byte) bool {
	switch opcode >> 3 & 3 {
	case 0:
		return !c.isFlagSet(FlagZero)
	case 1:
		return c.isFlagSet(FlagZero)
	case 2:
		return !c.isFlagSet(FlagCarry)
	default:
		return c.isFlagSet(FlagCarry)
	}
}

// decode executes an unprefixed instruction. The PC already points
// past the instruction. It reports whether a conditional branch
// was taken.
func (c *CPU) decode(opcode types.Byte) (bool, error) {
	switch opcode {
	case OpNOP:
	case OpSTOP:
		c.stop()
	case OpHALT:
		c.halt()
	case OpDI:
		c.IRQ.IME = false
		c.enableIME = false
	case OpEI:
		c.enableIME = true

	// 16-bit loads
	case OpLDBCd16:
		c.BC.SetUint16(c.readOperand16())
	case OpLDDEd16:
		c.DE.SetUint16(c.readOperand16())
	case OpLDHLd16:
		c.HL.SetUint16(c.readOperand16())
	case OpLDSPd16:
		c.SP = c.readOperand16()
	case OpLDa16SP:
		address := c.readOperand16()
		lo, hi := c.SP.Split()
		c.bus.StoreByte(address, lo)
		c.bus.StoreByte(address.Inc(), hi)
	case OpLDSPHL:
		c.SP = c.HL.Uint16()
	case OpLDHLSPr8:
		c.HL.SetUint16(c.addSPSigned(c.readOperand()))
	case OpADDSPr8:
		c.SP = c.addSPSigned(c.readOperand())
	case OpPOPBC:
		c.BC.SetUint16(c.pop())
	case OpPOPDE:
		c.DE.SetUint16(c.pop())
	case OpPOPHL:
		c.HL.SetUint16(c.pop())
	case OpPOPAF:
		c.AF.SetUint16(c.pop())
	case OpPUSHBC:
		c.push(c.BC.Uint16())
	case OpPUSHDE:
		c.push(c.DE.Uint16())
	case OpPUSHHL:
		c.push(c.HL.Uint16())
	case OpPUSHAF:
		c.push(c.AF.Uint16())

	// 8-bit loads through memory
	case OpLDBCA:
		c.bus.StoreByte(c.BC.Uint16(), c.A)
	case OpLDDEA:
		c.bus.StoreByte(c.DE.Uint16(), c.A)
	case OpLDABC:
		c.A = c.bus.LoadByte(c.BC.Uint16())
	case OpLDADE:
		c.A = c.bus.LoadByte(c.DE.Uint16())
	case OpLDHLIA:
		hl := c.HL.Uint16()
		c.bus.StoreByte(hl, c.A)
		c.HL.SetUint16(hl.Inc())
	case OpLDHLDA:
		hl := c.HL.Uint16()
		c.bus.StoreByte(hl, c.A)
		c.HL.SetUint16(hl.Dec())
	case OpLDAHLI:
		hl := c.HL.Uint16()
		c.A = c.bus.LoadByte(hl)
		c.HL.SetUint16(hl.Inc())
	case OpLDAHLD:
		hl := c.HL.Uint16()
		c.A = c.bus.LoadByte(hl)
		c.HL.SetUint16(hl.Dec())
	case OpLDHa8A:
		c.bus.StoreByte(0xFF00|types.Word(c.readOperand()), c.A)
	case OpLDHAa8:
		c.A = c.bus.LoadByte(0xFF00 | types.Word(c.readOperand()))
	case OpLDCA:
		c.bus.StoreByte(0xFF00|types.Word(c.C), c.A)
	case OpLDAC:
		c.A = c.bus.LoadByte(0xFF00 | types.Word(c.C))
	case OpLDa16A:
		c.bus.StoreByte(c.readOperand16(), c.A)
	case OpLDAa16:
		c.A = c.bus.LoadByte(c.readOperand16())

	// 16-bit arithmetic
	case OpINCBC:
		c.BC.SetUint16(c.BC.Uint16().Inc())
	case OpINCDE:
		c.DE.SetUint16(c.DE.Uint16().Inc())
	case OpINCHL:
		c.HL.SetUint16(c.HL.Uint16().Inc())
	case OpINCSP:
		c.SP = c.SP.Inc()
	case OpDECBC:
		c.BC.SetUint16(c.BC.Uint16().Dec())
	case OpDECDE:
		c.DE.SetUint16(c.DE.Uint16().Dec())
	case OpDECHL:
		c.HL.SetUint16(c.HL.Uint16().Dec())
	case OpDECSP:
		c.SP = c.SP.Dec()
	case OpADDHLBC:
		c.addHL(c.BC.Uint16())
	case OpADDHLDE:
		c.addHL(c.DE.Uint16())
	case OpADDHLHL:
		c.addHL(c.HL.Uint16())
	case OpADDHLSP:
		c.addHL(c.SP)

	// accumulator and flag operations
	case OpRLCA:
		c.A = c.rotateLeft(c.A)
		c.clearFlag(FlagZero)
	case OpRRCA:
		c.A = c.rotateRight(c.A)
		c.clearFlag(FlagZero)
	case OpRLA:
		c.A = c.rotateLeftThroughCarry(c.A)
		c.clearFlag(FlagZero)
	case OpRRA:
		c.A = c.rotateRightThroughCarry(c.A)
		c.clearFlag(FlagZero)
	case OpDAA:
		c.daa()
	case OpCPL:
		c.A = ^c.A
		c.setFlag(FlagSubtract)
		c.setFlag(FlagHalfCarry)
	case OpSCF:
		c.setFlag(FlagCarry)
		c.clearFlag(FlagSubtract)
		c.clearFlag(FlagHalfCarry)
	case OpCCF:
		c.setFlagTo(FlagCarry, !c.isFlagSet(FlagCarry))
		c.clearFlag(FlagSubtract)
		c.clearFlag(FlagHalfCarry)

	// 8-bit ALU with immediate
	case OpADDd8, OpADCd8, OpSUBd8, OpSBCd8, OpANDd8, OpXORd8, OpORd8, OpCPd8:
		c.alu(opcode>>3&7, c.readOperand())

	// control flow
	case OpJR:
		c.jumpRelative()
	case OpJRNZ, OpJRZ, OpJRNC, OpJRC:
		if c.condition(opcode) {
			c.jumpRelative()
			return true, nil
		}
	case OpJP:
		c.PC = c.readOperand16()
	case OpJPNZ, OpJPZ, OpJPNC, OpJPC:
		if c.condition(opcode) {
			c.PC = c.readOperand16()
			return true, nil
		}
	case OpJPHL:
		c.PC = c.HL.Uint16()
	case OpCALL:
		c.call(c.readOperand16())
	case OpCALLNZ, OpCALLZ, OpCALLNC, OpCALLC:
		if c.condition(opcode) {
			c.call(c.readOperand16())
			return true, nil
		}
	case OpRET:
		c.PC = c.pop()
	case OpRETI:
		c.PC = c.pop()
		c.IRQ.IME = true
	case OpRETNZ, OpRETZ, OpRETNC, OpRETC:
		if c.condition(opcode) {
			c.PC = c.pop()
			return true, nil
		}
	case OpRST00, OpRST08, OpRST10, OpRST18, OpRST20, OpRST28, OpRST30, OpRST38:
		c.call(types.Word(opcode & 0x38))

	default:
		return false, c.decodeBlock(opcode)
	}
	return false, nil
}

// decodeBlock executes the instructions that are decoded from
// their register fields.
func (c *CPU) decodeBlock(opcode types.Byte) error {
	r := opcode >> 3 & 7
	switch {
	case opcode < 0x40 && opcode&7 == 4: // INC r
		c.setRegisterIndex(r, c.increment(c.registerIndex(r)))
	case opcode < 0x40 && opcode&7 == 5: // DEC r
		c.setRegisterIndex(r, c.decrement(c.registerIndex(r)))
	case opcode < 0x40 && opcode&7 == 6: // LD r, d8
		c.setRegisterIndex(r, c.readOperand())
	case opcode >= 0x40 && opcode < 0x80: // LD r, r'
		c.setRegisterIndex(r, c.registerIndex(opcode))
	case opcode >= 0x80 && opcode < 0xC0: // ALU A, r
		c.alu(r, c.registerIndex(opcode))
	default:
		return ErrUnimplemented
	}
	return nil
}

// halt enters halt mode. If an interrupt is already pending while
// the IME is cleared, the CPU does not halt and the next opcode
// is read twice instead.
func (c *CPU) halt() {
	if _, pending := c.IRQ.Requested(); pending && !c.IRQ.IME {
		c.haltBug = true
		return
	}
	c.mode = ModeHalted
}

// stop enters stop mode and resets the divider.
func (c *CPU) stop() {
	c.bus.StoreByte(types.DIV, 0)
	c.mode = ModeStopped
}

// jumpRelative adds the signed 8-bit operand to the PC.
func (c *CPU) jumpRelative() {
	c.PC = c.PC.AddSigned(c.readOperand())
}

// call pushes the address of the next instruction and jumps to
// address.
func (c *CPU) call(address types.Word) {
	c.push(c.PC)
	c.PC = address
}
