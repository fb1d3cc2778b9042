package gameboy

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/cespare/xxhash"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// ErrInvalidState is returned when a save state can't be loaded into
// this machine.
var ErrInvalidState = errors.New("gameboy: invalid save state")

const stateVersion = 1

var stateMagic = []byte("DMGS")

// state header: magic, version, xxhash of the ROM
const stateHeaderSize = 4 + 1 + 8

// SaveState serializes the machine. The state is prefixed with the
// hash of the ROM it was taken from, and compressed with brotli.
func (g *GameBoy) SaveState() ([]byte, error) {
	s := types.NewState()
	for _, c := range g.components() {
		c.Save(s)
	}

	header := append(append([]byte{}, stateMagic...), stateVersion)
	header = binary.LittleEndian.AppendUint64(header, xxhash.Sum64(g.rom))
	buf := bytes.NewBuffer(header)

	w := brotli.NewWriterOptions(buf, brotli.WriterOptions{Quality: 7})
	if _, err := w.Write(s.Bytes()); err != nil {
		return nil, fmt.Errorf("gameboy: compressing state: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("gameboy: compressing state: %w", err)
	}
	return buf.Bytes(), nil
}

// LoadState restores a state created by SaveState for the same ROM.
// On error the machine is left untouched.
func (g *GameBoy) LoadState(b []byte) error {
	if len(b) < stateHeaderSize || !bytes.Equal(b[:4], stateMagic) {
		return fmt.Errorf("%w: bad header", ErrInvalidState)
	}
	if v := b[4]; v != stateVersion {
		return fmt.Errorf("%w: version %d, expected %d", ErrInvalidState, v, stateVersion)
	}
	if sum := binary.LittleEndian.Uint64(b[5:stateHeaderSize]); sum != xxhash.Sum64(g.rom) {
		return fmt.Errorf("%w: taken from a different rom", ErrInvalidState)
	}

	raw, err := io.ReadAll(brotli.NewReader(bytes.NewReader(b[stateHeaderSize:])))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	// a truncated state must not leave the machine half loaded
	backup := types.NewState()
	for _, c := range g.components() {
		c.Save(backup)
	}
	s := types.StateFromBytes(raw)
	for _, c := range g.components() {
		c.Load(s)
	}
	if err := s.Err(); err != nil {
		restore := types.StateFromBytes(backup.Bytes())
		for _, c := range g.components() {
			c.Load(restore)
		}
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	g.Debugf("gameboy: loaded state at cycle %d", g.CPU.Cycles)
	return nil
}
