package dshot

import (
	"time"

	"golang.org/x/exp/constraints"
)

// Port is an output port word. Get is only called once per frame, so a driver may return a
// shadow copy of what it last wrote.
type Port[M constraints.Unsigned] interface {
	Get() M
	Set(M)
}

// Phases splits one bit slot into the three holds of the pulse train.
type Phases struct {
	// High is the time every attached pin is high; it is the whole pulse of a 0 bit.
	High time.Duration
	// Long is the extra high time of a 1 bit.
	Long time.Duration
	// Low completes the bit period after a 1 bit ends.
	Low time.Duration
}

// Period is the length of one bit slot.
func (ph Phases) Period() time.Duration {
	return ph.High + ph.Long + ph.Low
}

// Slowed stretches every phase by n, e.g. to watch the pulse train from a host GPIO driver.
func (ph Phases) Slowed(n int) Phases {
	d := time.Duration(n)
	return Phases{High: ph.High * d, Long: ph.Long * d, Low: ph.Low * d}
}

// DShot600 bit timing: 1.67us per bit, a 0 is high for 625ns and a 1 for 1250ns.
var DShot600 = Phases{
	High: 625 * time.Nanosecond,
	Long: 625 * time.Nanosecond,
	Low:  417 * time.Nanosecond,
}

// Transmit sends the frames held in p on port. Attached pins all rise together at the start of
// each bit slot; pins sending a 0 fall after High, the rest after High+Long. Port bits that are
// not attached keep their state.
//
// Transmit itself does not mask interrupts. wait must hold for exactly the given duration, and
// the caller must make sure nothing preempts the call.
func Transmit[M constraints.Unsigned](port Port[M], p *Planes[M], ph Phases, wait func(time.Duration)) {
	state := port.Get()
	for i := 0; i < FrameBits; i++ {
		state |= p.attached
		port.Set(state)
		wait(ph.High)

		state &= p.bits[i]
		port.Set(state)
		wait(ph.Long)

		state &^= p.attached
		port.Set(state)
		wait(ph.Low)
	}
}

// Spin busy-waits for duration. It is the Transmit wait on hosted platforms, where time.Sleep is
// far too coarse.
func Spin(duration time.Duration) {
	start := time.Now()
	for time.Since(start) < duration {
	}
}
