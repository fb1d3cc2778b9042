package ram

import (
	"testing"

	"github.com/thelolagemann/dmgcore/internal/types"
)

func TestRAM(t *testing.T) {
	r := NewRAM(0x7F)
	if r.Len() != 0x7F {
		t.Fatalf("expected 127 bytes, got %d", r.Len())
	}
	r.Write(0x7E, 0x42)
	if r.Read(0x7E) != 0x42 || r.Read(0) != 0 {
		t.Errorf("expected written value to be read back")
	}

	s := types.NewState()
	r.Save(s)
	restored := NewRAM(0x7F)
	restored.Load(types.StateFromBytes(s.Bytes()))
	if restored.Read(0x7E) != 0x42 {
		t.Errorf("expected the RAM to be restored")
	}
}
