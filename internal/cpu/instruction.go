package cpu

import (
	"fmt"

	"github.com/thelolagemann/dmgcore/internal/types"
)

// Category classifies the control flow effect of an instruction.
type Category uint8

const (
	// CategoryNone is any instruction that falls through to the
	// next instruction.
	CategoryNone Category = iota
	// CategoryJump is JP and JR.
	CategoryJump
	// CategoryCall is CALL.
	CategoryCall
	// CategoryReturn is RET and RETI.
	CategoryReturn
	// CategoryRestart is RST.
	CategoryRestart
)

func (c Category) String() string {
	switch c {
	case CategoryJump:
		return "jump"
	case CategoryCall:
		return "call"
	case CategoryReturn:
		return "return"
	case CategoryRestart:
		return "restart"
	}
	return "none"
}

// Instruction describes a single opcode. Descriptors are immutable
// and shared by every CPU.
//
// Mnemonics use placeholders for their operands:
//
//	d8  - immediate 8-bit data
//	d16 - immediate 16-bit data
//	a8  - 8-bit address in the 0xFF00 IO page
//	a16 - 16-bit absolute address
//	r8  - signed 8-bit offset relative to the next instruction
type Instruction struct {
	Opcode   types.Byte
	Prefixed bool
	Mnemonic string
	// Length is the encoded length in bytes, including the
	// prefix byte for prefixed instructions.
	Length uint8
	// Cycles is the base cost in T-cycles.
	Cycles int
	// CyclesTaken is the cost when a conditional branch is taken,
	// or 0 for instructions without an alternative cost.
	CyclesTaken int
	Category    Category
	Conditional bool
}

// Jumps reports whether the instruction may transfer control
// somewhere other than the following instruction.
func (i *Instruction) Jumps() bool {
	return i.Category != CategoryNone
}

// AlwaysJumps reports whether the instruction unconditionally
// transfers control.
func (i *Instruction) AlwaysJumps() bool {
	return i.Jumps() && !i.Conditional
}

func (i *Instruction) String() string {
	if i.Prefixed {
		return fmt.Sprintf("0xCB%02X %s", i.Opcode, i.Mnemonic)
	}
	return fmt.Sprintf("0x%02X %s", i.Opcode, i.Mnemonic)
}

// Lookup returns the descriptor of an unprefixed opcode, or false
// if the opcode is unassigned.
func Lookup(opcode types.Byte) (*Instruction, bool) {
	i := instructions[opcode]
	return i, i != nil
}

// LookupPrefixed returns the descriptor of the opcode following
// the 0xCB prefix. Every prefixed opcode is assigned.
func LookupPrefixed(opcode types.Byte) (*Instruction, bool) {
	i := prefixedInstructions[opcode]
	return i, i != nil
}

// OpcodeOf returns the opcode with the given mnemonic, and
// whether it is prefixed.
func OpcodeOf(mnemonic string) (opcode types.Byte, prefixed bool, ok bool) {
	if i, found := mnemonics[mnemonic]; found {
		return i.Opcode, i.Prefixed, true
	}
	return 0, false, false
}

var (
	instructions         = build(unprefixedTable(), false)
	prefixedInstructions = build(prefixedTable(), true)
	mnemonics            = index(instructions, prefixedInstructions)
)

// disallowedOpcodes are not assigned on the DMG and decode as
// invalid.
var disallowedOpcodes = [...]types.Byte{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD}

func build(table [256]Instruction, prefixed bool) [256]*Instruction {
	var out [256]*Instruction
	for opcode := range table {
		if table[opcode].Mnemonic == "" {
			continue
		}
		i := table[opcode]
		i.Opcode = types.Byte(opcode)
		i.Prefixed = prefixed
		out[opcode] = &i
	}
	return out
}

func index(tables ...[256]*Instruction) map[string]*Instruction {
	m := make(map[string]*Instruction, 512)
	for _, table := range tables {
		for _, i := range table {
			if i != nil {
				m[i.Mnemonic] = i
			}
		}
	}
	return m
}

// op describes an instruction without control flow.
func op(mnemonic string, length uint8, cycles int) Instruction {
	return Instruction{Mnemonic: mnemonic, Length: length, Cycles: cycles}
}

// flow describes an unconditional control flow instruction.
func flow(mnemonic string, length uint8, cycles int, category Category) Instruction {
	return Instruction{Mnemonic: mnemonic, Length: length, Cycles: cycles, Category: category}
}

// branch describes a conditional control flow instruction.
func branch(mnemonic string, length uint8, cycles, taken int, category Category) Instruction {
	return Instruction{
		Mnemonic:    mnemonic,
		Length:      length,
		Cycles:      cycles,
		CyclesTaken: taken,
		Category:    category,
		Conditional: true,
	}
}

// registerNames is indexed by the 3-bit register field of an
// opcode.
var registerNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

var aluNames = [8]string{"ADD A, ", "ADC A, ", "SUB ", "SBC A, ", "AND ", "XOR ", "OR ", "CP "}

func unprefixedTable() [256]Instruction {
	t := [256]Instruction{
		0x00: op("NOP", 1, 4),
		0x01: op("LD BC, d16", 3, 12),
		0x02: op("LD (BC), A", 1, 8),
		0x03: op("INC BC", 1, 8),
		0x07: op("RLCA", 1, 4),
		0x08: op("LD (a16), SP", 3, 20),
		0x09: op("ADD HL, BC", 1, 8),
		0x0A: op("LD A, (BC)", 1, 8),
		0x0B: op("DEC BC", 1, 8),
		0x0F: op("RRCA", 1, 4),

		0x10: op("STOP", 2, 4),
		0x11: op("LD DE, d16", 3, 12),
		0x12: op("LD (DE), A", 1, 8),
		0x13: op("INC DE", 1, 8),
		0x17: op("RLA", 1, 4),
		0x18: flow("JR r8", 2, 12, CategoryJump),
		0x19: op("ADD HL, DE", 1, 8),
		0x1A: op("LD A, (DE)", 1, 8),
		0x1B: op("DEC DE", 1, 8),
		0x1F: op("RRA", 1, 4),

		0x20: branch("JR NZ, r8", 2, 8, 12, CategoryJump),
		0x21: op("LD HL, d16", 3, 12),
		0x22: op("LD (HL+), A", 1, 8),
		0x23: op("INC HL", 1, 8),
		0x27: op("DAA", 1, 4),
		0x28: branch("JR Z, r8", 2, 8, 12, CategoryJump),
		0x29: op("ADD HL, HL", 1, 8),
		0x2A: op("LD A, (HL+)", 1, 8),
		0x2B: op("DEC HL", 1, 8),
		0x2F: op("CPL", 1, 4),

		0x30: branch("JR NC, r8", 2, 8, 12, CategoryJump),
		0x31: op("LD SP, d16", 3, 12),
		0x32: op("LD (HL-), A", 1, 8),
		0x33: op("INC SP", 1, 8),
		0x37: op("SCF", 1, 4),
		0x38: branch("JR C, r8", 2, 8, 12, CategoryJump),
		0x39: op("ADD HL, SP", 1, 8),
		0x3A: op("LD A, (HL-)", 1, 8),
		0x3B: op("DEC SP", 1, 8),
		0x3F: op("CCF", 1, 4),

		0x76: op("HALT", 1, 4),

		0xC0: branch("RET NZ", 1, 8, 20, CategoryReturn),
		0xC1: op("POP BC", 1, 12),
		0xC2: branch("JP NZ, a16", 3, 12, 16, CategoryJump),
		0xC3: flow("JP a16", 3, 16, CategoryJump),
		0xC4: branch("CALL NZ, a16", 3, 12, 24, CategoryCall),
		0xC5: op("PUSH BC", 1, 16),
		0xC6: op("ADD A, d8", 2, 8),
		0xC7: flow("RST 00H", 1, 16, CategoryRestart),
		0xC8: branch("RET Z", 1, 8, 20, CategoryReturn),
		0xC9: flow("RET", 1, 16, CategoryReturn),
		0xCA: branch("JP Z, a16", 3, 12, 16, CategoryJump),
		0xCB: op("PREFIX CB", 0, 0),
		0xCC: branch("CALL Z, a16", 3, 12, 24, CategoryCall),
		0xCD: flow("CALL a16", 3, 24, CategoryCall),
		0xCE: op("ADC A, d8", 2, 8),
		0xCF: flow("RST 08H", 1, 16, CategoryRestart),

		0xD0: branch("RET NC", 1, 8, 20, CategoryReturn),
		0xD1: op("POP DE", 1, 12),
		0xD2: branch("JP NC, a16", 3, 12, 16, CategoryJump),
		0xD4: branch("CALL NC, a16", 3, 12, 24, CategoryCall),
		0xD5: op("PUSH DE", 1, 16),
		0xD6: op("SUB d8", 2, 8),
		0xD7: flow("RST 10H", 1, 16, CategoryRestart),
		0xD8: branch("RET C", 1, 8, 20, CategoryReturn),
		0xD9: flow("RETI", 1, 16, CategoryReturn),
		0xDA: branch("JP C, a16", 3, 12, 16, CategoryJump),
		0xDC: branch("CALL C, a16", 3, 12, 24, CategoryCall),
		0xDE: op("SBC A, d8", 2, 8),
		0xDF: flow("RST 18H", 1, 16, CategoryRestart),

		0xE0: op("LDH (a8), A", 2, 12),
		0xE1: op("POP HL", 1, 12),
		0xE2: op("LD (C), A", 1, 8),
		0xE5: op("PUSH HL", 1, 16),
		0xE6: op("AND d8", 2, 8),
		0xE7: flow("RST 20H", 1, 16, CategoryRestart),
		0xE8: op("ADD SP, r8", 2, 16),
		0xE9: flow("JP (HL)", 1, 4, CategoryJump),
		0xEA: op("LD (a16), A", 3, 16),
		0xEE: op("XOR d8", 2, 8),
		0xEF: flow("RST 28H", 1, 16, CategoryRestart),

		0xF0: op("LDH A, (a8)", 2, 12),
		0xF1: op("POP AF", 1, 12),
		0xF2: op("LD A, (C)", 1, 8),
		0xF3: op("DI", 1, 4),
		0xF5: op("PUSH AF", 1, 16),
		0xF6: op("OR d8", 2, 8),
		0xF7: flow("RST 30H", 1, 16, CategoryRestart),
		0xF8: op("LD HL, SP+r8", 2, 12),
		0xF9: op("LD SP, HL", 1, 8),
		0xFA: op("LD A, (a16)", 3, 16),
		0xFB: op("EI", 1, 4),
		0xFE: op("CP d8", 2, 8),
		0xFF: flow("RST 38H", 1, 16, CategoryRestart),
	}

	// INC r, DEC r and LD r, d8 in the first quarter
	for r, name := range registerNames {
		base := r << 3
		if name == "(HL)" {
			t[base|0x04] = op("INC (HL)", 1, 12)
			t[base|0x05] = op("DEC (HL)", 1, 12)
			t[base|0x06] = op("LD (HL), d8", 2, 12)
			continue
		}
		t[base|0x04] = op("INC "+name, 1, 4)
		t[base|0x05] = op("DEC "+name, 1, 4)
		t[base|0x06] = op("LD "+name+", d8", 2, 8)
	}

	// LD r, r' (0x40 - 0x7F), with HALT in place of LD (HL), (HL)
	for dst, d := range registerNames {
		for src, s := range registerNames {
			opcode := 0x40 | dst<<3 | src
			if opcode == 0x76 {
				continue
			}
			cycles := 4
			if d == "(HL)" || s == "(HL)" {
				cycles = 8
			}
			t[opcode] = op("LD "+d+", "+s, 1, cycles)
		}
	}

	// 8-bit ALU operations on A (0x80 - 0xBF)
	for fn, prefix := range aluNames {
		for src, s := range registerNames {
			cycles := 4
			if s == "(HL)" {
				cycles = 8
			}
			t[0x80|fn<<3|src] = op(prefix+s, 1, cycles)
		}
	}

	for _, opcode := range disallowedOpcodes {
		t[opcode] = Instruction{}
	}

	return t
}

var cbNames = [8]string{"RLC ", "RRC ", "RL ", "RR ", "SLA ", "SRA ", "SWAP ", "SRL "}

func prefixedTable() [256]Instruction {
	var t [256]Instruction
	for opcode := 0; opcode < 256; opcode++ {
		r := registerNames[opcode&7]
		n := opcode >> 3 & 7

		var mnemonic string
		switch opcode >> 6 {
		case 0:
			mnemonic = cbNames[n] + r
		case 1:
			mnemonic = fmt.Sprintf("BIT %d, %s", n, r)
		case 2:
			mnemonic = fmt.Sprintf("RES %d, %s", n, r)
		case 3:
			mnemonic = fmt.Sprintf("SET %d, %s", n, r)
		}

		cycles := 8
		if r == "(HL)" {
			// BIT only reads (HL), the others read and write it back
			if opcode>>6 == 1 {
				cycles = 12
			} else {
				cycles = 16
			}
		}
		t[opcode] = op(mnemonic, 2, cycles)
	}
	return t
}
