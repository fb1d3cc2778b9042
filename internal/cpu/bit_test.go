package cpu

import (
	"testing"

	"github.com/thelolagemann/dmgcore/internal/types"
)

func TestInstruction_Shifts(t *testing.T) {
	tests := []struct {
		name    string
		opcode  types.Byte
		value   types.Byte
		carryIn bool
		want    types.Byte
		flags   types.Byte
	}{
		{"RLC B", 0x00, 0x85, false, 0x0B, 0x10},
		{"RLC B zero", 0x00, 0x00, false, 0x00, 0x80},
		{"RRC B", 0x08, 0x01, false, 0x80, 0x10},
		{"RL B", 0x10, 0x80, false, 0x00, 0x90},
		{"RL B carry in", 0x10, 0x11, true, 0x23, 0x00},
		{"RR B", 0x18, 0x01, false, 0x00, 0x90},
		{"RR B carry in", 0x18, 0x8A, true, 0xC5, 0x00},
		{"SLA B", 0x20, 0xFF, false, 0xFE, 0x10},
		{"SRA B", 0x28, 0x8A, false, 0xC5, 0x00},
		{"SRA B carry", 0x28, 0x01, false, 0x00, 0x90},
		{"SWAP B", 0x30, 0xF1, true, 0x1F, 0x00},
		{"SWAP B zero", 0x30, 0x00, false, 0x00, 0x80},
		{"SRL B", 0x38, 0xFF, false, 0x7F, 0x10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCPU(0xCB, tt.opcode)
			c.B = tt.value
			c.setFlagTo(FlagCarry, tt.carryIn)
			expectCycles(t, mustStep(t, c), 8)
			expectPC(t, c, 0x0102)
			if c.B != tt.want {
				t.Errorf("expected B=%02X, got %02X", tt.want, c.B)
			}
			if c.F != tt.flags {
				t.Errorf("expected F=%02X, got %02X", tt.flags, c.F)
			}
		})
	}
}

func TestInstruction_Bit(t *testing.T) {
	c, bus := newTestCPU(0xCB, 0x7F, 0xCB, 0x47, 0xCB, 0x46)
	c.A = 0x80
	c.setFlag(FlagCarry)

	expectCycles(t, mustStep(t, c), 8) // BIT 7, A
	if c.F != 0x30 {
		t.Errorf("expected F=30, got %02X", c.F)
	}
	mustStep(t, c) // BIT 0, A
	if c.F != 0xB0 {
		t.Errorf("expected F=B0, got %02X", c.F)
	}

	c.HL.SetUint16(0xC000)
	bus[0xC000] = 0x01
	expectCycles(t, mustStep(t, c), 12) // BIT 0, (HL)
	if c.isFlagSet(FlagZero) {
		t.Errorf("expected bit 0 of (HL) to be set")
	}
}

func TestInstruction_SetReset(t *testing.T) {
	c, bus := newTestCPU(0xCB, 0xC7, 0xCB, 0xBF, 0xCB, 0xDE, 0xCB, 0x86)
	c.A = 0x80
	c.HL.SetUint16(0xC000)

	mustStep(t, c) // SET 0, A
	mustStep(t, c) // RES 7, A
	if c.A != 0x01 {
		t.Errorf("expected A=01, got %02X", c.A)
	}
	expectCycles(t, mustStep(t, c), 16) // SET 3, (HL)
	if bus[0xC000] != 0x08 {
		t.Errorf("expected (HL)=08, got %02X", bus[0xC000])
	}
	bus[0xC000] = 0xFF
	expectCycles(t, mustStep(t, c), 16) // RES 0, (HL)
	if bus[0xC000] != 0xFE {
		t.Errorf("expected (HL)=FE, got %02X", bus[0xC000])
	}
	if c.F != 0 {
		t.Errorf("expected flags to be unaffected, got %02X", c.F)
	}
}

func TestInstruction_ShiftMemory(t *testing.T) {
	c, bus := newTestCPU(0xCB, 0x36)
	c.HL.SetUint16(0xD000)
	bus[0xD000] = 0xAB
	expectCycles(t, mustStep(t, c), 16) // SWAP (HL)
	if bus[0xD000] != 0xBA {
		t.Errorf("expected (HL)=BA, got %02X", bus[0xD000])
	}
}
