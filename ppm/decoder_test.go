package ppm

import (
	"testing"
	"time"
)

func feed(d *Decoder, gaps ...time.Duration) {
	for _, g := range gaps {
		d.Edge(g)
	}
}

func TestDecoderFrame(t *testing.T) {
	d := NewDecoder()
	feed(d, 10*time.Millisecond, 1525*time.Microsecond, 2075*time.Microsecond, 975*time.Microsecond)

	want := []float64{0, 0.5, -0.5}
	for ch, v := range want {
		if d.Channels[ch] != v {
			t.Errorf("channel %d = %v, want %v", ch, d.Channels[ch], v)
		}
	}

	// the next frame averages with this one
	feed(d, 10*time.Millisecond, 2075*time.Microsecond, 2075*time.Microsecond)
	if d.Channels[0] != 0.5 || d.Channels[1] != 0.75 {
		t.Errorf("after second frame channels = %v, %v, want 0.5, 0.75", d.Channels[0], d.Channels[1])
	}
	if d.Channels[2] != -0.5 {
		t.Errorf("channel 2 = %v, want it kept at -0.5", d.Channels[2])
	}
}

func TestDecoderDeadZone(t *testing.T) {
	d := NewDecoder()
	feed(d, SyncGap+time.Microsecond, 1580*time.Microsecond)

	if d.Channels[0] <= 0 {
		t.Fatalf("raw channel 0 = %v, want a small positive value", d.Channels[0])
	}
	if got := d.Channel(0); got != 0 {
		t.Errorf("Channel(0) = %v inside the dead zone, want 0", got)
	}
}

func TestDecoderSyncGap(t *testing.T) {
	d := NewDecoder()
	feed(d, 7*time.Millisecond, SyncGap)
	if d.currentChannel != 1 {
		t.Errorf("a gap of exactly SyncGap started a frame")
	}
}

func TestDecoderTooManyChannels(t *testing.T) {
	d := NewDecoder()
	d.Edge(10 * time.Millisecond)
	for i := 0; i < 2*len(d.Channels); i++ {
		d.Edge(2075 * time.Microsecond)
	}
	if d.currentChannel != len(d.Channels) {
		t.Errorf("current channel = %d, want it stopped at %d", d.currentChannel, len(d.Channels))
	}
}
