package dshot

import (
	"testing"
)

func TestPlanesReset(t *testing.T) {
	var p Planes[uint8]
	p.Attach(0x01)
	p.Reset()

	for i := 0; i < FrameBits; i++ {
		if p.Plane(i) != 0xFF {
			t.Errorf("plane %d = %#02x after Reset, want 0xff", i, p.Plane(i))
		}
	}
	if p.Attached() != 0 {
		t.Errorf("attached = %#02x after Reset, want 0", p.Attached())
	}
}

func TestPlanesStore(t *testing.T) {
	var p Planes[uint8]
	p.Reset()

	const mask = 0x04
	frame := Encode(1046) // 0x82C6
	p.Store(mask, frame)

	for i := 0; i < FrameBits; i++ {
		bit := frame>>(FrameBits-1-i)&1 == 1
		if got := p.Plane(i)&mask != 0; got != bit {
			t.Errorf("plane %d pin bit = %v, want %v", i, got, bit)
		}
		if p.Plane(i)|mask != 0xFF {
			t.Errorf("plane %d = %#02x, other pins disturbed", i, p.Plane(i))
		}
	}
	if got := p.Frame(mask); got != frame {
		t.Errorf("Frame = %#04x, want %#04x", got, frame)
	}
}

func TestPlanesStoreIsolation(t *testing.T) {
	var p Planes[uint32]
	p.Reset()
	p.Attach(1 << 3)
	p.Attach(1 << 20)

	p.Store(1<<3, Encode(MaxThrottle))
	p.Store(1<<20, Encode(MinThrottle))
	p.Store(1<<20, Encode(300))

	if got := p.Frame(1 << 3); got != Encode(MaxThrottle) {
		t.Errorf("pin 3 frame = %#04x, want %#04x", got, Encode(MaxThrottle))
	}
	if got := p.Frame(1 << 20); got != Encode(300) {
		t.Errorf("pin 20 frame = %#04x, want %#04x", got, Encode(300))
	}
	for i := 0; i < FrameBits; i++ {
		if others := p.Plane(i) | 1<<3 | 1<<20; others != ^uint32(0) {
			t.Errorf("plane %d = %#08x, unattached pins must read 1", i, p.Plane(i))
		}
	}
}

func TestPlanesAttachLoadsZeroFrame(t *testing.T) {
	var p Planes[uint8]
	p.Reset()
	p.Attach(0x10)

	if p.Attached() != 0x10 {
		t.Errorf("attached = %#02x, want 0x10", p.Attached())
	}
	if got := p.Frame(0x10); got != 0 {
		t.Errorf("frame after Attach = %#04x, want 0", got)
	}
}

func TestPlanesAttachKeepsLiveFrame(t *testing.T) {
	var p Planes[uint8]
	p.Reset()
	p.Attach(0x10)
	p.Store(0x10, Encode(MaxThrottle))
	p.Attach(0x10)

	if got := p.Frame(0x10); got != Encode(MaxThrottle) {
		t.Errorf("frame after second Attach = %#04x, want %#04x", got, Encode(MaxThrottle))
	}
}
