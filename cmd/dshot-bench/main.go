//go:build linux

// dshot-bench ramps the throttle of every ESC line up and down on a Linux GPIO chip, for
// checking the bit-plane waveform with a logic analyzer.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"multidshot-fw/cdev"
	"multidshot-fw/dshot"
)

func main() {
	drv, err := cdev.New(CHIP_NAME, dshot.DShot600.Slowed(SLOWDOWN), escLines...)
	if err != nil {
		fmt.Printf("Requesting ESC lines failed: %s\n", err)
		if errors.Is(err, syscall.EBUSY) {
			fmt.Println("Another process holds one of the lines.")
		}
		os.Exit(1)
	}
	defer drv.Close()

	bus := dshot.NewBus[uint32](drv)
	escs := make([]*dshot.Channel[uint32], len(escLines))
	for i, line := range escLines {
		escs[i] = bus.Attach(line)
	}

	// Capture SIGINT (Ctrl+C) to exit gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	fmt.Printf("Sending DShot600 x%d on %s lines %v...\n", SLOWDOWN, CHIP_NAME, escLines)

	ticker := time.NewTicker(RAMP_INTERVAL)
	defer ticker.Stop()

	throttle, step := uint16(dshot.MinThrottle), RAMP_STEP
	for n := 0; ; n++ {
		select {
		case <-sigChan:
			for _, esc := range escs {
				esc.SetThrottle(dshot.CmdMotorStop)
			}
			// let a few motor stop frames out before Close stops the refresh
			time.Sleep(10 * time.Second / dshot.RefreshRate)
			fmt.Println("\nDShot bench exiting...")
			return
		case <-ticker.C:
		}

		// ESCs are staggered so each line carries a different frame
		for i, esc := range escs {
			esc.SetThrottle(throttle + uint16(i*RAMP_STEP))
		}
		if n%REPORT_EVERY == 0 {
			fmt.Print("\r")
			for i, esc := range escs {
				fmt.Printf("[%d]: %4d %016b ", i+1, esc.Throttle(), esc.Packet())
			}
		}
		for i, esc := range escs {
			if !esc.Intact() {
				fmt.Printf("\n[%d]: planes hold %016b, sent %016b\n", i+1, bus.Planes().Frame(esc.Mask()), esc.Packet())
			}
		}
		if err := drv.Err(); err != nil {
			fmt.Printf("\nWriting ESC lines failed: %s\n", err)
			return
		}

		next := int(throttle) + step
		if next+len(escs)*RAMP_STEP > dshot.MaxThrottle || next < dshot.MinThrottle {
			step = -step
			continue
		}
		throttle = uint16(next)
	}
}
