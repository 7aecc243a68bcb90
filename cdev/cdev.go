//go:build linux

// Package cdev drives a dshot.Bus from Linux GPIO lines through the GPIO character device.
//
// Line writes are syscalls, so real DShot600 timing is out of reach; stretch the phases and
// check frames with a logic analyzer.
//
// The refresh goroutine reads the bus planes while SetThrottle writes them, without a lock, as
// the interrupt does on a microcontroller. The race detector reports it; a torn read costs one
// frame that the ESC rejects on checksum.
package cdev

import (
	"fmt"
	"sync"
	"time"

	"github.com/warthog618/go-gpiocdev"

	"multidshot-fw/dshot"
)

// Driver implements dshot.Driver over one request of up to 32 lines. Bit i of the port word is
// the i-th requested offset.
type Driver struct {
	lines   *gpiocdev.Lines
	offsets []int
	values  []int
	phases  dshot.Phases
	state   uint32

	mu  sync.Mutex
	err error

	stop chan struct{}
	wg   sync.WaitGroup
}

// New requests offsets on chip as outputs, driven low.
func New(chip string, phases dshot.Phases, offsets ...int) (*Driver, error) {
	if len(offsets) == 0 || len(offsets) > 32 {
		return nil, fmt.Errorf("cdev: need 1 to 32 lines, got %d", len(offsets))
	}
	values := make([]int, len(offsets))
	lines, err := gpiocdev.RequestLines(chip, offsets,
		gpiocdev.AsOutput(values...),
		gpiocdev.WithConsumer("dshot"))
	if err != nil {
		return nil, fmt.Errorf("cdev: request lines %v on %s: %w", offsets, chip, err)
	}
	return &Driver{
		lines:   lines,
		offsets: offsets,
		values:  values,
		phases:  phases,
		stop:    make(chan struct{}),
	}, nil
}

// Output returns the port bit of a requested line. The lines are already outputs.
func (d *Driver) Output(pin int) uint32 {
	for i, offset := range d.offsets {
		if offset == pin {
			return 1 << i
		}
	}
	panic(fmt.Sprintf("dshot: line %d was not requested", pin))
}

func (d *Driver) Get() uint32 {
	return d.state
}

// Set writes every line in one call. The first failure is kept for Err.
func (d *Driver) Set(state uint32) {
	for i := range d.values {
		d.values[i] = int(state >> i & 1)
	}
	if err := d.lines.SetValues(d.values); err != nil {
		d.setErr(err)
	}
	d.state = state
}

func (d *Driver) Arm(hz uint32, tick func()) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ticker := time.NewTicker(time.Second / time.Duration(hz))
		defer ticker.Stop()
		for {
			select {
			case <-d.stop:
				return
			case <-ticker.C:
				tick()
			}
		}
	}()
}

func (d *Driver) Transmit(p *dshot.Planes[uint32]) {
	dshot.Transmit[uint32](d, p, d.phases, dshot.Spin)
}

// Err returns the first line write error, if any.
func (d *Driver) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

func (d *Driver) setErr(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err == nil {
		d.err = fmt.Errorf("cdev: set values: %w", err)
	}
}

// Close stops the refresh, drives every line low and releases them.
func (d *Driver) Close() error {
	close(d.stop)
	d.wg.Wait()
	d.Set(0)
	return d.lines.Close()
}
