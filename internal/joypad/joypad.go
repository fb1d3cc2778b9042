// Package joypad provides an implementation of the Game Boy
// joypad. The joypad is used to read the state of the buttons
// and the direction keys.
package joypad

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// Button represents a physical button on the Game Boy. The value
// is the bit of the button in Keys.
type Button = uint8

const (
	// ButtonA is the A button.
	ButtonA Button = iota
	// ButtonB is the B button.
	ButtonB
	// ButtonSelect is the Select button.
	ButtonSelect
	// ButtonStart is the Start button.
	ButtonStart
	// ButtonRight is the Right button.
	ButtonRight
	// ButtonLeft is the Left button.
	ButtonLeft
	// ButtonUp is the Up button.
	ButtonUp
	// ButtonDown is the Down button.
	ButtonDown
)

// Keys is the set of pressed buttons. The lower 4 bits hold the
// action buttons and the upper 4 bits the direction buttons, in
// the same order as they appear in the P1 register. A 1 means
// the button is pressed.
type Keys uint8

// KeysOf returns the set of the given buttons.
func KeysOf(buttons ...Button) Keys {
	var k Keys
	for _, b := range buttons {
		k |= 1 << b
	}
	return k
}

// Pressed returns true if the button is in the set.
func (k Keys) Pressed(b Button) bool {
	return k&(1<<b) != 0
}

// Input provides the keys pressed on the host.
type Input interface {
	PressedKeys() Keys
}

// State represents the state of the joypad. Select either
// action or direction buttons by writing to the register,
// and then read out bits 0-3 to get the state of the buttons.
//
//	Bit 7 - Not used
//	Bit 6 - Not used
//	Bit 5 - P15 Select Button Keys      (0=Select)
//	Bit 4 - P14 Select Direction Keys   (0=Select)
//	Bit 3 - P13 Input Down  or Start    (0=Pressed) (Read Only)
//	Bit 2 - P12 Input Up    or Select   (0=Pressed) (Read Only)
//	Bit 1 - P11 Input Left  or Button B (0=Pressed) (Read Only)
//	Bit 0 - P10 Input Right or Button A (0=Pressed) (Read Only)
type State struct {
	pressed Keys
	// selection holds bits 4 and 5 of the register
	selection types.Byte

	irq *interrupts.Service
}

// New returns a new joypad state, attached to the P1 register.
func New(h *types.HardwareRegisters, irq *interrupts.Service) *State {
	s := &State{irq: irq}
	h.RegisterHardware(
		types.P1,
		func(v types.Byte) {
			s.update(func() {
				s.selection = v & (types.Bit4 | types.Bit5)
			})
		},
		s.Read,
	)
	return s
}

// Read returns the value of the P1 register.
func (s *State) Read() types.Byte {
	return 0xC0 | s.selection | s.lines()
}

// lines returns the input lines P10 - P13, active low.
func (s *State) lines() types.Byte {
	var low types.Byte
	if s.selection&types.Bit4 == 0 {
		low |= types.Byte(s.pressed>>4) & 0x0F
	}
	if s.selection&types.Bit5 == 0 {
		low |= types.Byte(s.pressed) & 0x0F
	}
	return low ^ 0x0F
}

// update applies change, requesting the joypad interrupt when any
// input line goes from high to low.
func (s *State) update(change func()) {
	before := s.lines()
	change()
	if before&^s.lines() != 0 {
		s.irq.Request(interrupts.Joypad)
	}
}

// HandleInput replaces the set of pressed keys.
func (s *State) HandleInput(keys Keys) {
	s.update(func() {
		s.pressed = keys
	})
}

// Press presses a button.
func (s *State) Press(button Button) {
	s.HandleInput(s.pressed | 1<<button)
}

// Release releases a button.
func (s *State) Release(button Button) {
	s.HandleInput(s.pressed &^ (1 << button))
}

// Pressed returns the set of pressed keys.
func (s *State) Pressed() Keys {
	return s.pressed
}

var _ types.Stater = (*State)(nil)

func (s *State) Load(st *types.State) {
	s.pressed = Keys(st.Read8())
	s.selection = st.Read8()
}

func (s *State) Save(st *types.State) {
	st.Write8(types.Byte(s.pressed))
	st.Write8(s.selection)
}
