//go:build tinygo

package main

import (
	"time"

	"multidshot-fw/dshot"
	"multidshot-fw/ppm"
)

func main() {
	time.Sleep(time.Second)
	println("omnivore-fw: DShot600 on 4 ESCs")

	// initialize our ESC outputs; the first one starts the refresh timer
	escs := []func(uint16) uint16{
		dshot.Attach(ESC1).SetThrottle,
		dshot.Attach(ESC2).SetThrottle,
		dshot.Attach(ESC3).SetThrottle,
		dshot.Attach(ESC4).SetThrottle,
	}

	rx := ppm.New(PPMInput)
	if err := rx.Start(); err != nil {
		println("could not start PPM input:", err.Error())
		return
	}

	// arm ESCs, attached channels already send motor stop
	time.Sleep(armTime)
	println("ESCs armed")

	ticker := time.NewTicker(loopInterval)
	defer ticker.Stop()
	for range ticker.C {
		// receiver channel n drives ESC n+1
		for i, setThrottle := range escs {
			setThrottle(dshot.Throttle3D(rx.Channel(i)))
		}
	}
}
