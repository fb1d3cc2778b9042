// Package ram provides a basic RAM implementation.
package ram

import "github.com/thelolagemann/dmgcore/internal/types"

// RAM represents a block of RAM. Addresses are offsets from the
// start of the block.
type RAM struct {
	data []types.Byte
}

// NewRAM returns a new, zeroed RAM of the given size.
func NewRAM(size int) *RAM {
	return &RAM{
		data: make([]types.Byte, size),
	}
}

// Read returns the value at the given offset.
func (r *RAM) Read(offset types.Word) types.Byte {
	return r.data[offset]
}

// Write writes the value to the given offset.
func (r *RAM) Write(offset types.Word, value types.Byte) {
	r.data[offset] = value
}

// Len returns the size of the RAM in bytes.
func (r *RAM) Len() int {
	return len(r.data)
}

var _ types.Stater = (*RAM)(nil)

func (r *RAM) Load(s *types.State) {
	for i := range r.data {
		r.data[i] = s.Read8()
	}
}

func (r *RAM) Save(s *types.State) {
	for _, v := range r.data {
		s.Write8(v)
	}
}
