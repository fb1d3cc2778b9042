package types

import "fmt"

// HardwareRegisters is the IO register block of a single
// machine. Each of the 128 slots (0xFF00 - 0xFF7F, with 0xFFFF
// folded onto index 0x7F) may have a hardware register attached,
// which then receives every read and write of that address.
// Slots without a register behave as plain memory.
type HardwareRegisters struct {
	registers [0x80]*HardwareRegister
	raw       [0x80]Byte
}

// HardwareRegister represents a hardware register of the Game
// Boy, used to control and read the state of the hardware.
type HardwareRegister struct {
	write func(v Byte)
	read  func() Byte
}

// NewHardwareRegisters returns an empty register block.
func NewHardwareRegisters() *HardwareRegisters {
	return &HardwareRegisters{}
}

func index(address HardwareAddress) Word {
	if address == IE {
		return 0x7F
	}
	return address & 0x007F
}

// RegisterHardware attaches a hardware register with the given
// read and write functions to the given address. Use NoRead and
// NoWrite for registers that are write-only or read-only.
// Registering an address twice replaces the previous register.
func (h *HardwareRegisters) RegisterHardware(address HardwareAddress, write func(v Byte), read func() Byte) {
	if address != IE && (address < 0xFF00 || address > 0xFF7E) {
		panic(fmt.Sprintf("hardware: address 0x%04X is outside of the IO block", address))
	}
	h.registers[index(address)] = &HardwareRegister{
		write: write,
		read:  read,
	}
}

// Read returns the value of the hardware register for the
// given address.
func (h *HardwareRegisters) Read(address HardwareAddress) Byte {
	if address == 0xFF7F {
		return 0xFF
	}
	if r := h.registers[index(address)]; r != nil {
		return r.read()
	}
	return h.raw[index(address)]
}

// Write writes the given value to the hardware register for
// the given address.
func (h *HardwareRegisters) Write(address HardwareAddress, value Byte) {
	if address == 0xFF7F {
		return
	}
	if r := h.registers[index(address)]; r != nil {
		r.write(value)
		return
	}
	h.raw[index(address)] = value
}

var _ Stater = (*HardwareRegisters)(nil)

// Load restores the unregistered slots. Registered hardware
// saves its own state.
func (h *HardwareRegisters) Load(s *State) {
	for i := range h.raw {
		h.raw[i] = s.Read8()
	}
}

// Save implements the Stater interface.
func (h *HardwareRegisters) Save(s *State) {
	for _, v := range h.raw {
		s.Write8(v)
	}
}

// NoRead is a read function for registers that are not
// readable, which always read as 0xFF.
func NoRead() Byte {
	return 0xFF
}

// NoWrite is a write function for registers that are not
// writable.
func NoWrite(Byte) {}
