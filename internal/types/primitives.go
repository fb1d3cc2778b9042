package types

// Byte is an 8-bit value as seen by the CPU. Arithmetic wraps
// modulo 256, the same way the hardware registers do.
type Byte uint8

// Word is a 16-bit value, used for addresses and register pairs.
// Arithmetic wraps modulo 65536.
type Word uint16

// Add returns b + v, wrapping on overflow.
func (b Byte) Add(v Byte) Byte { return b + v }

// Sub returns b - v, wrapping on underflow.
func (b Byte) Sub(v Byte) Byte { return b - v }

// Inc returns b + 1.
func (b Byte) Inc() Byte { return b + 1 }

// Dec returns b - 1.
func (b Byte) Dec() Byte { return b - 1 }

// Low returns the lower nibble of b.
func (b Byte) Low() Byte { return b & 0x0F }

// High returns the upper nibble of b, shifted down.
func (b Byte) High() Byte { return b >> 4 }

// Test reports whether bit n of b is set.
func (b Byte) Test(n uint8) bool { return b&(1<<n) != 0 }

// Set returns b with bit n set.
func (b Byte) Set(n uint8) Byte { return b | 1<<n }

// Reset returns b with bit n cleared.
func (b Byte) Reset(n uint8) Byte { return b &^ (1 << n) }

// Add returns w + v, wrapping on overflow.
func (w Word) Add(v Word) Word { return w + v }

// Sub returns w - v, wrapping on underflow.
func (w Word) Sub(v Word) Word { return w - v }

// Inc returns w + 1.
func (w Word) Inc() Word { return w + 1 }

// Dec returns w - 1.
func (w Word) Dec() Word { return w - 1 }

// AddSigned adds the two's complement offset held in b, as
// used by relative jumps and SP arithmetic.
func (w Word) AddSigned(b Byte) Word { return Word(int32(w) + int32(int8(b))) }

// Low returns the least significant byte of w.
func (w Word) Low() Byte { return Byte(w) }

// High returns the most significant byte of w.
func (w Word) High() Byte { return Byte(w >> 8) }

// Split decomposes w into its low and high byte, in that order.
func (w Word) Split() (lo, hi Byte) { return Byte(w), Byte(w >> 8) }

// WordFrom composes a Word from a low and a high byte.
func WordFrom(lo, hi Byte) Word { return Word(hi)<<8 | Word(lo) }
