//go:build tinygo

package ppm

import (
	"machine"
	"time"
)

// PPM decodes an RC receiver's PPM stream from a pin interrupt.
type PPM struct {
	*Decoder
	pin        machine.Pin
	lastChange time.Time
}

func New(pin machine.Pin) *PPM {
	pin.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
	return &PPM{
		Decoder: NewDecoder(),
		pin:     pin,
	}
}

func (p *PPM) Start() error {
	return p.pin.SetInterrupt(machine.PinFalling, func(interruptPin machine.Pin) {
		t := time.Now()
		p.Edge(t.Sub(p.lastChange))
		p.lastChange = t
	})
}

func (p *PPM) Stop() error {
	return p.pin.SetInterrupt(0, nil)
}
