//go:build linux

package main

import "time"

const (
	CHIP_NAME = "gpiochip0"
)

// ESC signal lines, one bit each of the bus port
var escLines = []int{17, 27, 22, 23}

const (
	// SLOWDOWN stretches DShot600 so the syscall per line write stays small against the phases.
	SLOWDOWN      = 100
	RAMP_INTERVAL = 20 * time.Millisecond
	RAMP_STEP     = 8
	REPORT_EVERY  = 50 // ramp steps
)
