//go:build tinygo && !avr

package dshot

import (
	"machine"
	"runtime/interrupt"
	"time"

	"tinygo.org/x/drivers/delay"
)

var bus = NewBus[uint32](&pinDriver{})

// Attach configures pin for DShot output on the default bus.
func Attach(pin machine.Pin) *Channel[uint32] {
	return bus.Attach(int(pin))
}

// pinDriver drives up to 32 machine.Pins as one port word. Pins are written one after the other
// and holds are only as exact as delay.Sleep on the chip, so check the waveform with a logic
// analyzer before flying it.
type pinDriver struct {
	pins  []machine.Pin
	state uint32
}

func (d *pinDriver) Output(pin int) uint32 {
	p := machine.Pin(pin)
	for i, q := range d.pins {
		if q == p {
			return 1 << i
		}
	}
	if len(d.pins) == 32 {
		panic("dshot: too many pins")
	}
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.Low()
	d.pins = append(d.pins, p)
	return 1 << (len(d.pins) - 1)
}

func (d *pinDriver) Get() uint32 {
	return d.state
}

func (d *pinDriver) Set(state uint32) {
	changed := d.state ^ state
	for i, p := range d.pins {
		if changed&(1<<i) != 0 {
			p.Set(state&(1<<i) != 0)
		}
	}
	d.state = state
}

// Arm has no portable timer interrupt to use, so refresh comes from a goroutine. Mainline code
// has to yield (time.Sleep) for it to run.
func (d *pinDriver) Arm(hz uint32, tick func()) {
	go func() {
		ticker := time.NewTicker(time.Second / time.Duration(hz))
		for range ticker.C {
			tick()
		}
	}()
}

func (d *pinDriver) Transmit(p *Planes[uint32]) {
	mask := interrupt.Disable()
	Transmit[uint32](d, p, DShot600, delay.Sleep)
	interrupt.Restore(mask)
}
