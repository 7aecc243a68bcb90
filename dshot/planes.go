package dshot

import (
	"golang.org/x/exp/constraints"
)

// Planes is the frame of every attached channel, transposed: bits[i] is a port word holding, for
// each attached pin, bit i (MSB first) of that pin's current frame.
//
// Pins that are not attached always read as 1. Transmit ANDs the port with a plane to end the
// short pulses, so a 1 leaves any other output on the port alone.
//
// Planes is written by mainline code and read from the refresh interrupt without a lock. A
// channel's update is a read-modify-write per plane; a tick landing mid-update sends a frame
// mixing old and new bits for that one pin, which the ESC drops on checksum.
type Planes[M constraints.Unsigned] struct {
	bits     [FrameBits]M
	attached M
}

// Reset marks every pin as unattached.
func (p *Planes[M]) Reset() {
	for i := range p.bits {
		p.bits[i] = ^M(0)
	}
	p.attached = 0
}

// Attach adds mask to the attached pins and loads an all-zero frame for it. A pin that is
// already attached keeps the frame it is sending.
func (p *Planes[M]) Attach(mask M) {
	if p.attached&mask != 0 {
		return
	}
	p.attached |= mask
	p.Store(mask, 0)
}

// Store writes frame into the mask bits of every plane. Bits outside mask are untouched.
func (p *Planes[M]) Store(mask M, frame uint16) {
	bit := uint16(1) << (FrameBits - 1)
	for i := range p.bits {
		if frame&bit != 0 {
			p.bits[i] |= mask
		} else {
			p.bits[i] &^= mask
		}
		bit >>= 1
	}
}

// Plane returns the port word for frame bit i, 0 being the MSB.
func (p *Planes[M]) Plane(i int) M {
	return p.bits[i]
}

// Attached returns the union of all attached pin masks.
func (p *Planes[M]) Attached() M {
	return p.attached
}

// Frame reassembles the frame held for mask, which must have exactly one bit set.
func (p *Planes[M]) Frame(mask M) (frame uint16) {
	for _, b := range p.bits {
		frame <<= 1
		if b&mask != 0 {
			frame |= 1
		}
	}
	return frame
}
