package cartridge

import (
	"time"

	"github.com/thelolagemann/dmgcore/internal/types"
)

// RTC registers, selected by writing to 0x4000 - 0x5FFF.
const (
	rtcSeconds types.Byte = 0x08 + iota
	rtcMinutes
	rtcHours
	rtcDaysLow
	// rtcDaysHigh holds bit 8 of the day counter (bit 0), the
	// halt flag (bit 6) and the day counter carry (bit 7).
	rtcDaysHigh
)

const (
	rtcHalt  = 6
	rtcCarry = 7
)

// RTC is the real time clock of an MBC3 cartridge. The clock
// counts in whole seconds from the host clock, and is only
// brought up to date when it is latched or written to.
type RTC struct {
	registers [5]types.Byte
	latched   [5]types.Byte
	// last is the host time the registers were last brought up
	// to date.
	last time.Time
	now  func() time.Time
}

func newRTC(now func() time.Time) *RTC {
	return &RTC{now: now, last: now()}
}

func (r *RTC) halted() bool {
	return r.registers[rtcDaysHigh-rtcSeconds].Test(rtcHalt)
}

// update advances the registers by the whole seconds elapsed since
// the last update, unless the clock is halted.
func (r *RTC) update() {
	now := r.now()
	if r.halted() {
		r.last = now
		return
	}
	elapsed := int64(now.Sub(r.last) / time.Second)
	if elapsed <= 0 {
		return
	}
	r.last = r.last.Add(time.Duration(elapsed) * time.Second)

	reg := &r.registers
	days := int64(reg[3]) | int64(reg[4]&0x01)<<8
	total := int64(reg[0]) + int64(reg[1])*60 + int64(reg[2])*3600 + days*86400 + elapsed

	reg[0] = types.Byte(total % 60)
	reg[1] = types.Byte(total / 60 % 60)
	reg[2] = types.Byte(total / 3600 % 24)
	days = total / 86400
	if days > 511 {
		reg[4] = reg[4].Set(rtcCarry)
		days %= 512
	}
	reg[3] = types.Byte(days)
	reg[4] = reg[4]&0xFE | types.Byte(days>>8)
}

// latch copies the current time into the readable registers.
func (r *RTC) latch() {
	r.update()
	r.latched = r.registers
}

func (r *RTC) read(register types.Byte) types.Byte {
	return r.latched[register-rtcSeconds]
}

func (r *RTC) write(register types.Byte, value types.Byte) {
	r.update()
	switch register {
	case rtcSeconds, rtcMinutes:
		value &= 0x3F
	case rtcHours:
		value &= 0x1F
	case rtcDaysHigh:
		value &= 0xC1
	}
	r.registers[register-rtcSeconds] = value
	if register == rtcSeconds {
		// writing the seconds resets the sub-second counter
		r.last = r.now()
	}
}

func (r *RTC) Load(s *types.State) {
	for i := range r.registers {
		r.registers[i] = s.Read8()
	}
	for i := range r.latched {
		r.latched[i] = s.Read8()
	}
	r.last = time.Unix(0, int64(s.Read64()))
}

func (r *RTC) Save(s *types.State) {
	for _, v := range r.registers {
		s.Write8(v)
	}
	for _, v := range r.latched {
		s.Write8(v)
	}
	s.Write64(uint64(r.last.UnixNano()))
}
