package timer

import (
	"testing"

	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
)

func newTimer() (*Controller, *types.HardwareRegisters, *interrupts.Service) {
	h := types.NewHardwareRegisters()
	irq := interrupts.NewService(h)
	return NewController(h, irq), h, irq
}

func steps(c *Controller, n int) {
	for i := 0; i < n; i++ {
		c.Step()
	}
}

func TestTimer_Divider(t *testing.T) {
	c, h, _ := newTimer()
	steps(c, 64)
	if got := h.Read(types.DIV); got != 1 {
		t.Errorf("expected DIV=1 after 256 T-cycles, got %d", got)
	}
	steps(c, 64*255)
	if got := h.Read(types.DIV); got != 0 {
		t.Errorf("expected DIV to wrap, got %d", got)
	}

	steps(c, 100)
	h.Write(types.DIV, 0x12)
	if c.Div() != 0 || h.Read(types.DIV) != 0 {
		t.Errorf("expected writing DIV to reset the counter, got 0x%04X", c.Div())
	}
}

func TestTimer_Frequencies(t *testing.T) {
	tests := []struct {
		tac    types.Byte
		period int // M-cycles per increment
	}{
		{0x04, 256},
		{0x05, 4},
		{0x06, 16},
		{0x07, 64},
	}
	for _, tt := range tests {
		c, h, _ := newTimer()
		h.Write(types.TAC, tt.tac)

		steps(c, tt.period-1)
		if got := h.Read(types.TIMA); got != 0 {
			t.Errorf("TAC 0x%02X: expected TIMA=0 before the period, got %d", tt.tac, got)
		}
		steps(c, 1)
		if got := h.Read(types.TIMA); got != 1 {
			t.Errorf("TAC 0x%02X: expected TIMA=1 after the period, got %d", tt.tac, got)
		}
		steps(c, tt.period*9)
		if got := h.Read(types.TIMA); got != 10 {
			t.Errorf("TAC 0x%02X: expected TIMA=10, got %d", tt.tac, got)
		}
	}
}

func TestTimer_Disabled(t *testing.T) {
	c, h, _ := newTimer()
	h.Write(types.TAC, 0x01)
	steps(c, 1000)
	if got := h.Read(types.TIMA); got != 0 {
		t.Errorf("expected a disabled timer not to count, got %d", got)
	}
	if got := h.Read(types.TAC); got != 0xF9 {
		t.Errorf("expected TAC to read 0xF9, got 0x%02X", got)
	}
}

func TestTimer_Overflow(t *testing.T) {
	c, h, irq := newTimer()
	h.Write(types.TMA, 0xAB)
	h.Write(types.TIMA, 0xFF)
	h.Write(types.TAC, 0x05)

	steps(c, 4)
	if got := h.Read(types.TIMA); got != 0 {
		t.Errorf("expected TIMA=0 right after overflow, got 0x%02X", got)
	}
	if irq.Flag&interrupts.Timer.Mask() != 0 {
		t.Errorf("expected the interrupt to be delayed")
	}

	steps(c, 1)
	if got := h.Read(types.TIMA); got != 0xAB {
		t.Errorf("expected TIMA to reload from TMA, got 0x%02X", got)
	}
	if irq.Flag&interrupts.Timer.Mask() == 0 {
		t.Errorf("expected the timer interrupt")
	}
}

func TestTimer_DividerResetGlitch(t *testing.T) {
	c, h, _ := newTimer()
	h.Write(types.TAC, 0x05)
	steps(c, 2) // counter bit 3 is set

	h.Write(types.DIV, 0)
	if got := h.Read(types.TIMA); got != 1 {
		t.Errorf("expected resetting DIV to increment TIMA, got %d", got)
	}
}

func TestTimer_GlitchOverflow(t *testing.T) {
	c, h, irq := newTimer()
	h.Write(types.TMA, 0xAB)
	h.Write(types.TAC, 0x05)
	steps(c, 2) // counter bit 3 is set
	h.Write(types.TIMA, 0xFF)

	h.Write(types.DIV, 0)
	if got := h.Read(types.TIMA); got != 0 {
		t.Errorf("expected TIMA=0 right after overflow, got 0x%02X", got)
	}
	if irq.Flag&interrupts.Timer.Mask() != 0 {
		t.Errorf("expected the interrupt to be delayed")
	}

	steps(c, 2)
	if got := h.Read(types.TIMA); got != 0xAB {
		t.Errorf("expected TIMA to reload from TMA, got 0x%02X", got)
	}
	if irq.Flag&interrupts.Timer.Mask() == 0 {
		t.Errorf("expected the timer interrupt")
	}
}

func TestTimer_State(t *testing.T) {
	c, h, _ := newTimer()
	h.Write(types.TAC, 0x06)
	h.Write(types.TMA, 0x10)
	steps(c, 1234)

	s := types.NewState()
	c.Save(s)

	restored, h2, _ := newTimer()
	restored.Load(types.StateFromBytes(s.Bytes()))
	for _, address := range []types.HardwareAddress{types.DIV, types.TIMA, types.TMA, types.TAC} {
		if h.Read(address) != h2.Read(address) {
			t.Errorf("0x%04X: expected 0x%02X, got 0x%02X", address, h.Read(address), h2.Read(address))
		}
	}
}
