package cpu

import (
	"testing"

	"github.com/thelolagemann/dmgcore/internal/types"
)

func isDisallowed(opcode types.Byte) bool {
	for _, d := range disallowedOpcodes {
		if d == opcode {
			return true
		}
	}
	return false
}

func TestInstruction_TableComplete(t *testing.T) {
	if len(disallowedOpcodes) != 11 {
		t.Fatalf("expected 11 unassigned opcodes, got %d", len(disallowedOpcodes))
	}
	for opcode := 0; opcode < 256; opcode++ {
		i, ok := Lookup(types.Byte(opcode))
		if isDisallowed(types.Byte(opcode)) {
			if ok {
				t.Errorf("0x%02X: expected no descriptor, got %s", opcode, i)
			}
			continue
		}
		if !ok {
			t.Errorf("0x%02X: missing descriptor", opcode)
			continue
		}
		if i.Opcode != types.Byte(opcode) || i.Prefixed {
			t.Errorf("0x%02X: descriptor has wrong identity %s", opcode, i)
		}
		if opcode == int(OpPrefixCB) {
			if i.Length != 0 || i.Cycles != 0 {
				t.Errorf("prefix escape should have no length or cost, got %d/%d", i.Length, i.Cycles)
			}
			continue
		}
		if i.Length < 1 || i.Length > 3 {
			t.Errorf("%s: unexpected length %d", i, i.Length)
		}
		if i.Cycles <= 0 || i.Cycles%4 != 0 {
			t.Errorf("%s: unexpected cycles %d", i, i.Cycles)
		}
	}
}

func TestInstruction_PrefixedTableComplete(t *testing.T) {
	for opcode := 0; opcode < 256; opcode++ {
		i, ok := LookupPrefixed(types.Byte(opcode))
		if !ok {
			t.Fatalf("0xCB%02X: missing descriptor", opcode)
		}
		if !i.Prefixed || i.Length != 2 || i.Jumps() {
			t.Errorf("%s: unexpected descriptor %+v", i, *i)
		}
		want := 8
		if opcode&7 == 6 {
			want = 16
			if opcode>>6 == 1 {
				want = 12
			}
		}
		if i.Cycles != want {
			t.Errorf("%s: expected %d cycles, got %d", i, want, i.Cycles)
		}
	}
}

func TestInstruction_ControlFlow(t *testing.T) {
	tests := []struct {
		opcode      types.Byte
		category    Category
		conditional bool
		cycles      int
		taken       int
	}{
		{OpJR, CategoryJump, false, 12, 0},
		{OpJRNZ, CategoryJump, true, 8, 12},
		{OpJP, CategoryJump, false, 16, 0},
		{OpJPC, CategoryJump, true, 12, 16},
		{OpJPHL, CategoryJump, false, 4, 0},
		{OpCALL, CategoryCall, false, 24, 0},
		{OpCALLZ, CategoryCall, true, 12, 24},
		{OpRET, CategoryReturn, false, 16, 0},
		{OpRETI, CategoryReturn, false, 16, 0},
		{OpRETNC, CategoryReturn, true, 8, 20},
		{OpRST38, CategoryRestart, false, 16, 0},
		{OpNOP, CategoryNone, false, 4, 0},
		{OpHALT, CategoryNone, false, 4, 0},
	}
	for _, tt := range tests {
		i, _ := Lookup(tt.opcode)
		if i.Category != tt.category || i.Conditional != tt.conditional {
			t.Errorf("%s: expected %s (conditional %v), got %s (conditional %v)", i, tt.category, tt.conditional, i.Category, i.Conditional)
		}
		if i.Cycles != tt.cycles || i.CyclesTaken != tt.taken {
			t.Errorf("%s: expected %d/%d cycles, got %d/%d", i, tt.cycles, tt.taken, i.Cycles, i.CyclesTaken)
		}
		if i.AlwaysJumps() != (tt.category != CategoryNone && !tt.conditional) {
			t.Errorf("%s: unexpected AlwaysJumps", i)
		}
	}
}

func TestInstruction_OpcodeOf(t *testing.T) {
	tests := []struct {
		mnemonic string
		opcode   types.Byte
		prefixed bool
	}{
		{"NOP", OpNOP, false},
		{"JP a16", OpJP, false},
		{"JR NZ, r8", OpJRNZ, false},
		{"LDH (a8), A", OpLDHa8A, false},
		{"LD HL, SP+r8", OpLDHLSPr8, false},
		{"RST 28H", OpRST28, false},
		{"PREFIX CB", OpPrefixCB, false},
		{"LD B, C", 0x41, false},
		{"XOR A", 0xAF, false},
		{"LD (HL), d8", 0x36, false},
		{"BIT 7, H", 0x7C, true},
		{"SWAP A", 0x37, true},
		{"SET 0, (HL)", 0xC6, true},
	}
	for _, tt := range tests {
		opcode, prefixed, ok := OpcodeOf(tt.mnemonic)
		if !ok {
			t.Errorf("%q: not found", tt.mnemonic)
			continue
		}
		if opcode != tt.opcode || prefixed != tt.prefixed {
			t.Errorf("%q: expected 0x%02X (prefixed %v), got 0x%02X (prefixed %v)", tt.mnemonic, tt.opcode, tt.prefixed, opcode, prefixed)
		}
	}
	if _, _, ok := OpcodeOf("LD (HL), (HL)"); ok {
		t.Errorf("expected LD (HL), (HL) to be absent")
	}
}

func TestInstruction_MnemonicsUnique(t *testing.T) {
	if len(mnemonics) != 245+256 {
		t.Errorf("expected %d distinct mnemonics, got %d", 245+256, len(mnemonics))
	}
}
