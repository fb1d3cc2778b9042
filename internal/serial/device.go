package serial

// Device is the other end of the link cable. It sees one bit per
// serial clock, most significant bit first.
type Device interface {
	// Receive is given the bit shifted out of SB.
	Receive(bit bool)
	// Send returns the bit to shift into SB.
	Send() bool
}

// disconnected is the Device used while no cable is plugged in. The
// input line is pulled high, so a transfer reads back 0xFF.
type disconnected struct{}

func (disconnected) Receive(bool) {}
func (disconnected) Send() bool   { return true }
