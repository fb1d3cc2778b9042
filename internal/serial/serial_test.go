package serial

import (
	"bytes"
	"testing"

	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// loopback records every bit it receives and sends back a fixed
// pattern.
type loopback struct {
	received []bool
}

func (l *loopback) Receive(bit bool) { l.received = append(l.received, bit) }
func (l *loopback) Send() bool        { return len(l.received)%2 == 0 }

func TestSerial_Transfer(t *testing.T) {
	h := types.NewHardwareRegisters()
	irq := interrupts.NewService(h)
	var out bytes.Buffer
	c := NewController(h, irq, &out)

	h.Write(types.SB, 'A')
	h.Write(types.SC, 0x81)
	if h.Read(types.SC) != 0xFF {
		t.Errorf("expected SC=0xFF during transfer, got 0x%02X", h.Read(types.SC))
	}

	for i := 0; i < 8*cyclesPerBit-1; i++ {
		c.Step()
	}
	if out.Len() != 0 || irq.Flag&interrupts.Serial.Mask() != 0 {
		t.Fatalf("expected the transfer to be in progress")
	}
	c.Step()

	if out.String() != "A" {
		t.Errorf("expected \"A\" to be written, got %q", out.String())
	}
	if h.Read(types.SB) != 0xFF {
		t.Errorf("expected 0xFF to be received, got 0x%02X", h.Read(types.SB))
	}
	if h.Read(types.SC) != 0x7F {
		t.Errorf("expected the transfer bit to be cleared, got 0x%02X", h.Read(types.SC))
	}
	if irq.Flag&interrupts.Serial.Mask() == 0 {
		t.Errorf("expected the serial interrupt")
	}
}

func TestSerial_Device(t *testing.T) {
	h := types.NewHardwareRegisters()
	c := NewController(h, interrupts.NewService(h), nil)
	d := &loopback{}
	c.Attach(d)

	h.Write(types.SB, 0xA5)
	h.Write(types.SC, 0x81)
	for i := 0; i < 8*cyclesPerBit; i++ {
		c.Step()
	}

	want := []bool{true, false, true, false, false, true, false, true}
	for i, bit := range want {
		if d.received[i] != bit {
			t.Errorf("bit %d: expected %v, got %v", i, bit, d.received[i])
		}
	}
	// the device sends 1, 0, 1, 0, ...
	if h.Read(types.SB) != 0xAA {
		t.Errorf("expected 0xAA to be received, got 0x%02X", h.Read(types.SB))
	}
}

func TestSerial_ExternalClock(t *testing.T) {
	h := types.NewHardwareRegisters()
	irq := interrupts.NewService(h)
	c := NewController(h, irq, nil)

	h.Write(types.SC, 0x80)
	for i := 0; i < 8*cyclesPerBit*2; i++ {
		c.Step()
	}
	if irq.Flag != 0 || h.Read(types.SC) != 0xFE {
		t.Errorf("expected an external clock transfer to wait forever")
	}
}
