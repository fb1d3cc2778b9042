package mmu

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/thelolagemann/dmgcore/internal/boot"
	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

type testVideo map[types.Word]types.Byte

func (v testVideo) Read(address types.Word) types.Byte         { return v[address] }
func (v testVideo) Write(address types.Word, value types.Byte) { v[address] = value }

type testDMA bool

func (d *testDMA) Active() bool { return bool(*d) }

func newTestMMU(t *testing.T, withBoot bool) (*MMU, *types.HardwareRegisters, testVideo) {
	t.Helper()
	rom := make([]byte, 0x8000)
	for i := range rom {
		rom[i] = byte(i)
	}

	var bootROM *boot.ROM
	if withBoot {
		b := make([]byte, boot.Size)
		for i := range b {
			b[i] = 0xB0
		}
		var err error
		if bootROM, err = boot.New(b); err != nil {
			t.Fatal(err)
		}
	}

	registers := types.NewHardwareRegisters()
	m := NewMMU(cartridge.NewNoMBC(rom, 0x2000), bootROM, registers, log.NewNullLogger())
	video := testVideo{}
	m.AttachVideo(video)
	return m, registers, video
}

func TestMMU_BootROMOverlay(t *testing.T) {
	m, _, _ := newTestMMU(t, true)

	if !m.BootROMMounted() {
		t.Fatalf("expected the boot rom to be mounted")
	}
	if got := m.LoadByte(0x0050); got != 0xB0 {
		t.Errorf("expected boot rom content at 0x0050, got 0x%02X", got)
	}
	if got := m.LoadByte(0x0100); got != 0x00 {
		t.Errorf("expected cartridge content at 0x0100, got 0x%02X", got)
	}

	// writes to the mounted boot rom are dropped
	m.StoreByte(0x0050, 0x12)
	if got := m.LoadByte(0x0050); got != 0xB0 {
		t.Errorf("expected the boot rom to be read-only, got 0x%02X", got)
	}

	m.StoreByte(types.BDIS, 0x01)
	if m.BootROMMounted() {
		t.Errorf("expected the boot rom to be unmapped")
	}
	if got := m.LoadByte(0x0050); got != 0x50 {
		t.Errorf("expected cartridge content at 0x0050, got 0x%02X", got)
	}
}

func TestMMU_BootROMRemount(t *testing.T) {
	var buf bytes.Buffer
	m, _, _ := newTestMMU(t, true)
	m.Log = log.NewWithOutput(&buf, logrus.WarnLevel)

	m.StoreByte(types.BDIS, 0x01)
	m.StoreByte(types.BDIS, 0x00)
	if m.BootROMMounted() {
		t.Errorf("expected the boot rom to stay unmapped")
	}
	if !strings.Contains(buf.String(), "remap the boot rom") {
		t.Errorf("expected a warning, got %q", buf.String())
	}
	if m.LoadByte(types.BDIS) != 0xFF {
		t.Errorf("expected BDIS to read 0xFF once unmapped")
	}
}

func TestMMU_NoBootROM(t *testing.T) {
	m, _, _ := newTestMMU(t, false)
	if m.BootROMMounted() || m.LoadByte(0x0050) != 0x50 {
		t.Errorf("expected the cartridge to be visible without a boot rom")
	}
}

func TestMMU_EchoRAM(t *testing.T) {
	m, _, _ := newTestMMU(t, false)

	for o := types.Word(0); o < 0x1E00; o++ {
		v := types.Byte(o*7 + 3)
		m.StoreByte(0xC000+o, v)
		if got := m.LoadByte(0xE000 + o); got != v {
			t.Fatalf("0x%04X: expected echo 0x%02X, got 0x%02X", 0xE000+o, v, got)
		}
		m.StoreByte(0xE000+o, ^v)
		if got := m.LoadByte(0xC000 + o); got != ^v {
			t.Fatalf("0x%04X: expected 0x%02X, got 0x%02X", 0xC000+o, ^v, got)
		}
	}
}

func TestMMU_Routing(t *testing.T) {
	m, registers, video := newTestMMU(t, false)

	m.StoreByte(0x8000, 0x11)
	m.StoreByte(0xFE9F, 0x22)
	if video[0x8000] != 0x11 || video[0xFE9F] != 0x22 {
		t.Errorf("expected VRAM and OAM writes to reach the video bus")
	}

	m.StoreByte(0xA123, 0x33)
	if m.LoadByte(0xA123) != 0x33 || m.Cart.LoadRAMByte(0x0123) != 0x33 {
		t.Errorf("expected external RAM to be relative to 0xA000")
	}

	m.StoreByte(0xFEA0, 0x44)
	if m.LoadByte(0xFEA0) != 0x00 || m.LoadByte(0xFEFF) != 0x00 {
		t.Errorf("expected the unusable range to read 0x00")
	}

	m.StoreByte(0xFF80, 0x55)
	m.StoreByte(0xFFFE, 0x66)
	if m.LoadByte(0xFF80) != 0x55 || m.LoadByte(0xFFFE) != 0x66 {
		t.Errorf("expected HRAM to be writable")
	}

	m.StoreByte(types.IE, 0x1F)
	if registers.Read(types.IE) != 0x1F {
		t.Errorf("expected IE to be routed to the IO registers")
	}
	m.StoreByte(0xFF01, 0x77)
	if m.LoadByte(0xFF01) != 0x77 {
		t.Errorf("expected unregistered IO to behave as memory")
	}
}

func TestMMU_CGBRegisters(t *testing.T) {
	m, _, _ := newTestMMU(t, false)

	for _, address := range []types.Word{0xFF4D, 0xFF4F, 0xFF55, 0xFF69, 0xFF70} {
		m.StoreByte(address, 0x00)
		if got := m.LoadByte(address); got != 0xFF {
			t.Errorf("0x%04X: expected 0xFF, got 0x%02X", address, got)
		}
	}
	// unclaimed slots still behave as memory
	m.StoreByte(0xFF72, 0x12)
	if got := m.LoadByte(0xFF72); got != 0x12 {
		t.Errorf("expected 0xFF72 to hold 0x12, got 0x%02X", got)
	}
}

func TestMMU_Words(t *testing.T) {
	m, _, _ := newTestMMU(t, false)
	m.StoreWord(0xC100, 0xBEEF)
	if m.LoadByte(0xC100) != 0xEF || m.LoadByte(0xC101) != 0xBE {
		t.Errorf("expected the low byte first")
	}
	if m.LoadWord(0xC100) != 0xBEEF {
		t.Errorf("expected 0xBEEF, got 0x%04X", m.LoadWord(0xC100))
	}
}

func TestMMU_DMALock(t *testing.T) {
	m, _, _ := newTestMMU(t, false)
	m.StoreByte(0xC000, 0x12)
	m.StoreByte(0xFF80, 0x34)

	active := testDMA(true)
	m.AttachDMA(&active)

	if m.LoadByte(0xC000) != 0xFF {
		t.Errorf("expected WRAM to be locked during DMA")
	}
	m.StoreByte(0xC000, 0x99)
	if m.LoadByte(0xFF80) != 0x34 {
		t.Errorf("expected HRAM to stay accessible during DMA")
	}
	if m.LoadDMA(0xC000) != 0x12 || m.LoadDMA(0xE000) != 0x12 {
		t.Errorf("expected the DMA controller to read through the lock")
	}

	active = false
	if m.LoadByte(0xC000) != 0x12 {
		t.Errorf("expected the locked write to be dropped")
	}
}

func TestMMU_State(t *testing.T) {
	m, _, _ := newTestMMU(t, true)
	m.StoreByte(0xC010, 0xAA)
	m.StoreByte(0xFF90, 0xBB)
	m.StoreByte(types.BDIS, 0x01)

	s := types.NewState()
	m.Save(s)

	restored, _, _ := newTestMMU(t, true)
	restored.Load(types.StateFromBytes(s.Bytes()))
	if restored.LoadByte(0xC010) != 0xAA || restored.LoadByte(0xFF90) != 0xBB || restored.BootROMMounted() {
		t.Errorf("expected the memory and boot rom mapping to be restored")
	}
}
