package ppm

import (
	"math"
	"time"
)

const (
	// SyncGap is the shortest gap between edges that starts a new PPM frame.
	SyncGap = 6 * time.Millisecond

	// Theoretically the range is 1ms to 2ms, but receivers stray past both ends, hence the
	// 550us half range instead of 500us.
	center    = 1525 * time.Microsecond
	halfRange = 550 * time.Microsecond
)

// Decoder turns the gaps between PPM edges into channel values between -1 and 1.
type Decoder struct {
	Channels          [16]float64
	currentChannel    int
	DeadZoneThreshold float64
}

func NewDecoder() *Decoder {
	return &Decoder{DeadZoneThreshold: 0.15}
}

// Edge feeds the time since the previous edge.
func (d *Decoder) Edge(gap time.Duration) {
	if gap > SyncGap {
		// start of PPM frame
		d.currentChannel = 0
		return
	}

	if d.currentChannel > len(d.Channels)-1 {
		return
	}

	value := float64(gap-center) / float64(halfRange)
	// average with the previous frame to take the edge off jitter
	d.Channels[d.currentChannel] = (d.Channels[d.currentChannel] + value) / 2
	d.currentChannel++
}

// Channel returns channel ch, or 0 inside the dead zone.
func (d *Decoder) Channel(ch int) float64 {
	if math.Abs(d.Channels[ch]) < d.DeadZoneThreshold {
		return 0
	}
	return d.Channels[ch]
}
