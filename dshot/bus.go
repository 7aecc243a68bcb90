package dshot

import (
	"golang.org/x/exp/constraints"
)

// RefreshRate is how often, in Hz, every attached channel's frame is retransmitted.
const RefreshRate = 1000

// Driver is the platform side of a Bus.
type Driver[M constraints.Unsigned] interface {
	// Output configures pin as a digital output and returns its bit within the bus port. The
	// mask has exactly one bit set.
	Output(pin int) M

	// Arm starts a fixed rate interrupt calling tick hz times a second. It is called once.
	Arm(hz uint32, tick func())

	// Transmit sends the frames held in p on the port, with interrupts masked for the whole
	// pulse train.
	Transmit(p *Planes[M])
}

// Bus owns the bit-planes of one output port and the refresh interrupt that sends them.
type Bus[M constraints.Unsigned] struct {
	driver Driver[M]
	planes Planes[M]
	armed  bool
}

// Channel is one ESC attached to a Bus.
type Channel[M constraints.Unsigned] struct {
	bus      *Bus[M]
	mask     M
	throttle uint16
	packet   uint16
}

// NewBus returns an idle Bus. Nothing is sent until the first Attach.
func NewBus[M constraints.Unsigned](driver Driver[M]) *Bus[M] {
	b := &Bus[M]{driver: driver}
	b.planes.Reset()
	return b
}

// Attach configures pin for DShot output and returns its Channel. The first call arms the
// refresh interrupt. The channel starts at throttle 0.
func (b *Bus[M]) Attach(pin int) *Channel[M] {
	mask := b.driver.Output(pin)
	b.ensureArmed()
	// registered after arming, Reset would otherwise drop it
	b.planes.Attach(mask)
	return &Channel[M]{bus: b, mask: mask}
}

func (b *Bus[M]) ensureArmed() {
	if b.armed {
		return
	}
	b.planes.Reset()
	b.driver.Arm(RefreshRate, b.tick)
	b.armed = true
}

// tick is the refresh interrupt handler.
func (b *Bus[M]) tick() {
	b.driver.Transmit(&b.planes)
}

// Armed reports whether the refresh interrupt is running.
func (b *Bus[M]) Armed() bool {
	return b.armed
}

// Planes exposes the bit-planes, for diagnostics.
func (b *Bus[M]) Planes() *Planes[M] {
	return &b.planes
}

// SetThrottle encodes throttle and publishes it to the bus. It returns the encoded frame. The
// new frame goes out on the next refresh.
func (ch *Channel[M]) SetThrottle(throttle uint16) uint16 {
	ch.throttle = throttle
	ch.packet = Encode(throttle)
	ch.bus.planes.Store(ch.mask, ch.packet)
	return ch.packet
}

func (ch *Channel[M]) Throttle() uint16 {
	return ch.throttle
}

func (ch *Channel[M]) Packet() uint16 {
	return ch.packet
}

// Intact reports whether the planes still hold this channel's packet, with a valid checksum.
func (ch *Channel[M]) Intact() bool {
	frame := ch.bus.planes.Frame(ch.mask)
	return Valid(frame) && frame == ch.packet
}

// Mask returns the channel's bit within the bus port.
func (ch *Channel[M]) Mask() M {
	return ch.mask
}
