//go:build tinygo

package main

import (
	"machine"
	"time"
)

// Pinsssss
const (
	// ESC signal pins, all on PORTD for the AVR driver
	ESC1 = machine.D2
	ESC2 = machine.D3
	ESC3 = machine.D4
	ESC4 = machine.D5

	// PPM receiver input
	PPMInput = machine.D8
)

const (
	// ESCs arm after seeing motor stop for a while
	armTime      = 3 * time.Second
	loopInterval = 10 * time.Millisecond
)
