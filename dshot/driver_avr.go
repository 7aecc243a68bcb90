//go:build avr

package dshot

import (
	"device"
	"device/avr"
	"machine"
	"runtime/interrupt"
)

// All DShot pins live on PORTD (D0-D7 on an Uno or Nano).
var bus = NewBus[uint8](avrDriver{})

// Attach configures pin for DShot output on the default bus. pin must be on PORTD.
func Attach(pin machine.Pin) *Channel[uint8] {
	return bus.Attach(int(pin))
}

type avrDriver struct{}

func (avrDriver) Output(pin int) uint8 {
	p := machine.Pin(pin)
	if p < machine.PD0 || p > machine.PD7 {
		panic("dshot: pin is not on PORTD")
	}
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return 1 << uint8(p-machine.PD0)
}

// refresh is what the TIMER2 handler calls; interrupt handlers can't capture variables.
var refresh func()

// Arm runs TIMER2 in CTC mode with a /64 prescaler, which gives OCR2A = 249 for 1kHz at 16MHz.
func (avrDriver) Arm(hz uint32, tick func()) {
	if hz == 0 {
		panic("dshot: refresh rate out of range for TIMER2")
	}
	top := machine.CPUFrequency()/(64*hz) - 1
	if top > 255 {
		panic("dshot: refresh rate out of range for TIMER2")
	}
	refresh = tick

	mask := interrupt.Disable()
	avr.TCCR2A.Set(avr.TCCR2A_WGM21)
	avr.TCCR2B.Set(avr.TCCR2B_CS22)
	avr.TCNT2.Set(0)
	avr.OCR2A.Set(uint8(top))
	interrupt.New(avr.IRQ_TIMER2_COMPA, func(interrupt.Interrupt) {
		refresh()
	})
	avr.TIMSK2.SetBits(avr.TIMSK2_OCIE2A)
	interrupt.Restore(mask)
}

// Transmit is DShot600 at 16MHz, 27 cycles per bit:
//
//	0: 10 cycles high, 17 low
//	1: 20 cycles high, 7 low
//
// Cycle counts are between the starts of the st instructions. A different clock needs the nop
// padding re-derived.
func (avrDriver) Transmit(p *Planes[uint8]) {
	mask := interrupt.Disable()
	device.AsmFull(`
	1:
		or   {state}, {attached}   ; [1]
		st   {port}, {state}       ; [2] every attached pin high
		nop                        ; [5]
		nop
		nop
		nop
		nop
		ld   {plane}, {planes}+    ; [2]
		and  {state}, {plane}      ; [1]
		st   {port}, {state}       ; [2] 0 bits low
		nop                        ; [7]
		nop
		nop
		nop
		nop
		nop
		nop
		and  {state}, {idle}       ; [1]
		st   {port}, {state}       ; [2] 1 bits low
		nop                        ; [1]
		dec  {i}                   ; [1]
		brne 1b                    ; [2] or [1] on the last bit
	`, map[string]interface{}{
		"state":    avr.PORTD.Get(),
		"attached": p.attached,
		"idle":     ^p.attached,
		"plane":    uint8(0),
		"i":        uint8(FrameBits),
		"port":     &avr.PORTD.Reg,
		"planes":   &p.bits[0],
	})
	interrupt.Restore(mask)
}
