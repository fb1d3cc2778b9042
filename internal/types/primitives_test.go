package types

import "testing"

func TestByte_Wrapping(t *testing.T) {
	for a := 0; a < 256; a++ {
		for _, b := range []int{0, 1, 0x0F, 0x10, 0x7F, 0x80, 0xFF} {
			if got := Byte(a).Add(Byte(b)); got != Byte((a+b)%256) {
				t.Errorf("expected %02X + %02X = %02X, got %02X", a, b, (a+b)%256, got)
			}
			if got := Byte(a).Sub(Byte(b)); got != Byte((a-b+256)%256) {
				t.Errorf("expected %02X - %02X = %02X, got %02X", a, b, (a-b+256)%256, got)
			}
		}
	}
	if Byte(0xFF).Inc() != 0 {
		t.Errorf("expected 0xFF + 1 to wrap to 0")
	}
	if Byte(0).Dec() != 0xFF {
		t.Errorf("expected 0 - 1 to wrap to 0xFF")
	}
}

func TestWord_Wrapping(t *testing.T) {
	for a := 0; a < 0x10000; a += 0x3F {
		for _, b := range []int{0, 1, 0xFF, 0x100, 0x7FFF, 0x8000, 0xFFFF} {
			if got := Word(a).Add(Word(b)); got != Word((a+b)%0x10000) {
				t.Errorf("expected %04X + %04X = %04X, got %04X", a, b, (a+b)%0x10000, got)
			}
			if got := Word(a).Sub(Word(b)); got != Word((a-b+0x10000)%0x10000) {
				t.Errorf("expected %04X - %04X = %04X, got %04X", a, b, (a-b+0x10000)%0x10000, got)
			}
		}
	}
	if Word(0xFFFF).Inc() != 0 || Word(0).Dec() != 0xFFFF {
		t.Errorf("expected word increment/decrement to wrap")
	}
}

func TestWord_SplitCompose(t *testing.T) {
	for w := 0; w < 0x10000; w += 0x101 {
		lo, hi := Word(w).Split()
		if lo != Word(w).Low() || hi != Word(w).High() {
			t.Errorf("expected Split to agree with Low/High for %04X", w)
		}
		if WordFrom(lo, hi) != Word(w) {
			t.Errorf("expected %04X, got %04X", w, WordFrom(lo, hi))
		}
	}
}

func TestWord_AddSigned(t *testing.T) {
	tests := []struct {
		w      Word
		offset Byte
		want   Word
	}{
		{0x0100, 0x05, 0x0105},
		{0x0100, 0xFE, 0x00FE},
		{0x0000, 0xFF, 0xFFFF},
		{0xFFFF, 0x01, 0x0000},
		{0x1234, 0x80, 0x11B4},
	}
	for _, tt := range tests {
		if got := tt.w.AddSigned(tt.offset); got != tt.want {
			t.Errorf("expected %04X + %d = %04X, got %04X", tt.w, int8(tt.offset), tt.want, got)
		}
	}
}

func TestByte_Bits(t *testing.T) {
	b := Byte(0)
	for n := uint8(0); n < 8; n++ {
		b = b.Set(n)
		if !b.Test(n) {
			t.Errorf("expected bit %d to be set", n)
		}
	}
	if b != 0xFF {
		t.Errorf("expected 0xFF, got %02X", b)
	}
	if b.Reset(7) != 0x7F {
		t.Errorf("expected 0x7F, got %02X", b.Reset(7))
	}
	if Byte(0xA5).Low() != 0x05 || Byte(0xA5).High() != 0x0A {
		t.Errorf("expected nibbles 0x0A/0x05")
	}
}
