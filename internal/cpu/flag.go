package cpu

// Flag is the bit position of a flag in the F register.
type Flag = uint8

const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

// clearFlag clears a flag from the F register.
func (c *CPU) clearFlag(flag Flag) {
	c.F = c.F.Reset(flag)
}

// setFlag sets a flag in the F register.
func (c *CPU) setFlag(flag Flag) {
	c.F = c.F.Set(flag)
}

// setFlagTo sets or clears a flag depending on value.
func (c *CPU) setFlagTo(flag Flag, value bool) {
	if value {
		c.setFlag(flag)
	} else {
		c.clearFlag(flag)
	}
}

// setFlags sets all four flags at once.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	c.F = 0
	c.setFlagTo(FlagZero, zero)
	c.setFlagTo(FlagSubtract, subtract)
	c.setFlagTo(FlagHalfCarry, halfCarry)
	c.setFlagTo(FlagCarry, carry)
}

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag Flag) bool {
	return c.F.Test(flag)
}

// carry returns 1 if the carry flag is set, 0 otherwise.
func (c *CPU) carry() uint8 {
	if c.isFlagSet(FlagCarry) {
		return 1
	}
	return 0
}
