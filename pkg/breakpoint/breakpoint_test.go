package breakpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/dmgcore/internal/gameboy"
)

// newGameBoy runs program from 0x0150 of a 32kB cartridge.
func newGameBoy(t *testing.T, program ...byte) *gameboy.GameBoy {
	t.Helper()
	rom := make([]byte, 0x8000)
	copy(rom[0x100:], []byte{0x00, 0xC3, 0x50, 0x01}) // NOP; JP $0150
	copy(rom[0x150:], program)
	g, err := gameboy.New(rom)
	require.NoError(t, err)
	return g
}

func TestPredicate_Registers(t *testing.T) {
	p, err := Compile(`
function should_pause(cpu)
	return cpu.b == 3 and cpu.pc >= 0x150
end`)
	require.NoError(t, err)
	defer p.Close()

	g := newGameBoy(t,
		0x06, 1, // LD B, 1
		0x04,       // INC B
		0x18, 0xFD, // JR -3
	)
	outcome, err := g.ExecuteFrame(nil, p.ShouldPause)
	require.NoError(t, err)
	assert.Equal(t, gameboy.FramePaused, outcome)
	assert.EqualValues(t, 3, g.CPU.B)
	assert.NoError(t, p.Err())
}

func TestPredicate_Read(t *testing.T) {
	p, err := Compile(`function should_pause(cpu) return read(cpu.pc) == 0x40 end`)
	require.NoError(t, err)
	defer p.Close()

	g := newGameBoy(t,
		0x00,       // NOP
		0x40,       // LD B, B
		0x18, 0xFE, // JR -2
	)
	outcome, err := g.ExecuteFrame(nil, p.ShouldPause)
	require.NoError(t, err)
	assert.Equal(t, gameboy.FramePaused, outcome)
	assert.EqualValues(t, 0x0151, g.CPU.PC)
}

func TestPredicate_NeverPauses(t *testing.T) {
	p, err := Compile(`function should_pause(cpu) return cpu.mode == "terminated" end`)
	require.NoError(t, err)
	defer p.Close()

	g := newGameBoy(t, 0x18, 0xFE)
	outcome, err := g.ExecuteFrame(nil, p.ShouldPause)
	require.NoError(t, err)
	assert.Equal(t, gameboy.FrameCompleted, outcome)
}

func TestCompile_Errors(t *testing.T) {
	_, err := Compile(`function should_pause(cpu`)
	assert.Error(t, err)

	_, err = Compile(`local x = 1`)
	assert.ErrorIs(t, err, ErrMissingPredicate)
}

func TestPredicate_RuntimeError(t *testing.T) {
	p, err := Compile(`function should_pause(cpu) return cpu.missing.field end`)
	require.NoError(t, err)
	defer p.Close()

	g := newGameBoy(t, 0x18, 0xFE)
	outcome, err := g.ExecuteFrame(nil, p.ShouldPause)
	require.NoError(t, err)
	assert.Equal(t, gameboy.FramePaused, outcome)
	assert.Error(t, p.Err())
}
