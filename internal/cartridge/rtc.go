package cartridge

import "time"

// ClockFunc supplies the current wall-clock time; production code passes
// time.Now, tests pass a fixed function so RTC behavior is deterministic.
type ClockFunc func() time.Time

// rtc implements the MBC3 real-time-clock registers: seconds, minutes,
// hours, day-counter low byte, and day-counter high byte (which also
// carries the day-counter overflow and halt bits). The registers are
// derived from an injected wall-clock rather than ticked once per bus
// step.
type rtc struct {
	clock ClockFunc
	base  time.Time // wall-clock time corresponding to day-counter 0

	halted   bool
	haltedAt time.Duration

	latched     bool
	latchedRegs [5]uint8

	lastLatchWrite uint8
}

func newRTC(clock ClockFunc) *rtc {
	if clock == nil {
		clock = time.Now
	}
	return &rtc{clock: clock, base: clock()}
}

// elapsed returns the RTC's running duration since base, frozen at
// haltedAt while halted.
func (r *rtc) elapsed() time.Duration {
	if r.halted {
		return r.haltedAt
	}
	return r.clock().Sub(r.base)
}

func (r *rtc) registers() [5]uint8 {
	e := r.elapsed()
	totalSeconds := int64(e / time.Second)
	seconds := uint8(totalSeconds % 60)
	minutes := uint8((totalSeconds / 60) % 60)
	hours := uint8((totalSeconds / 3600) % 24)
	days := (totalSeconds / 86400)

	dayLow := uint8(days & 0xFF)
	dayHigh := uint8((days >> 8) & 0x01)
	if r.halted {
		dayHigh |= 0x40
	}
	if days > 0x1FF {
		dayHigh |= 0x80 // day-counter carry
	}
	return [5]uint8{seconds, minutes, hours, dayLow, dayHigh}
}

// Latch implements the "write 0x00 then 0x01" latch sequence on the
// 0x6000-0x7FFF control register.
func (r *rtc) Latch(value uint8) {
	if r.lastLatchWrite == 0x00 && value == 0x01 {
		r.latchedRegs = r.registers()
		r.latched = true
	}
	r.lastLatchWrite = value
}

// Read returns the latched value of the RTC register selected by a
// 0x08-0x0C RAM-bank value, or its live value if no latch has happened.
func (r *rtc) Read(sel uint8) uint8 {
	idx := sel - 0x08
	if int(idx) >= len(r.latchedRegs) {
		return 0xFF
	}
	if !r.latched {
		return r.registers()[idx]
	}
	return r.latchedRegs[idx]
}

// Write updates the live RTC register selected by a 0x08-0x0C RAM-bank
// value. Writing day-high sets halt to bit 6's value; halting freezes elapsed().
func (r *rtc) Write(sel uint8, value uint8) {
	if sel == 0x0C {
		wasHalted := r.halted
		r.halted = value&0x40 != 0
		if r.halted && !wasHalted {
			r.haltedAt = r.elapsed()
		} else if !r.halted && wasHalted {
			r.base = r.clock().Add(-r.haltedAt)
		}
		return
	}
	// Writing seconds/minutes/hours/day-low resets the base so the new
	// value takes effect immediately; only meaningful while halted, which
	// is the only time real software writes these registers.
	regs := r.registers()
	switch sel {
	case 0x08:
		regs[0] = value % 60
	case 0x09:
		regs[1] = value % 60
	case 0x0A:
		regs[2] = value % 24
	case 0x0B:
		regs[3] = value
	}
	days := int64(regs[3])
	total := int64(regs[0]) + int64(regs[1])*60 + int64(regs[2])*3600 + days*86400
	if r.halted {
		r.haltedAt = time.Duration(total) * time.Second
	} else {
		r.base = r.clock().Add(-time.Duration(total) * time.Second)
	}
}
