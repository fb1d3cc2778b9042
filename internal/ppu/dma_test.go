package ppu

import (
	"testing"

	"github.com/thelolagemann/dmgcore/internal/types"
)

type testSource struct{}

func (testSource) LoadDMA(address types.Word) types.Byte {
	return types.Byte(address) ^ 0x5A
}

func TestDMA_Transfer(t *testing.T) {
	h := types.NewHardwareRegisters()
	oam := &OAM{}
	d := NewDMA(h, testSource{}, oam)

	h.Write(types.DMA, 0xC1)
	if d.Active() {
		t.Errorf("expected the first cycle to be setup")
	}
	if h.Read(types.DMA) != 0xC1 {
		t.Errorf("expected the DMA register to read back 0xC1")
	}

	d.Step()
	if !d.Active() {
		t.Fatalf("expected the transfer to be active")
	}
	for i := 0; i < 159; i++ {
		d.Step()
	}
	if !d.Active() {
		t.Fatalf("expected the transfer to still be active before the last byte")
	}
	d.Step()
	if d.Active() {
		t.Errorf("expected the transfer to finish after 160 bytes")
	}

	for i := types.Word(0); i < oamSize; i++ {
		if got := oam.Read(i); got != types.Byte(i)^0x5A {
			t.Fatalf("offset %d: expected 0x%02X, got 0x%02X", i, types.Byte(i)^0x5A, got)
		}
	}
}

func TestDMA_Restart(t *testing.T) {
	h := types.NewHardwareRegisters()
	d := NewDMA(h, testSource{}, &OAM{})

	h.Write(types.DMA, 0xC0)
	d.Step()
	d.Step()
	h.Write(types.DMA, 0xC1)
	if !d.Active() {
		t.Errorf("expected a restarted transfer to keep the bus locked")
	}

	s := types.NewState()
	d.Save(s)
	restored := NewDMA(types.NewHardwareRegisters(), testSource{}, &OAM{})
	restored.Load(types.StateFromBytes(s.Bytes()))
	if !restored.Active() || restored.source != 0xC100 {
		t.Errorf("expected the transfer to be restored")
	}
}
