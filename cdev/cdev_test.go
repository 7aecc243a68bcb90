//go:build linux

package cdev

import (
	"testing"

	"multidshot-fw/dshot"
)

func TestOutput(t *testing.T) {
	d := &Driver{offsets: []int{17, 27, 22}}

	tests := []struct {
		pin  int
		mask uint32
	}{
		{17, 0x1},
		{27, 0x2},
		{22, 0x4},
	}
	for _, tt := range tests {
		if got := d.Output(tt.pin); got != tt.mask {
			t.Errorf("Output(%d) = %#x, want %#x", tt.pin, got, tt.mask)
		}
	}
}

func TestOutputNotRequested(t *testing.T) {
	d := &Driver{offsets: []int{17}}
	defer func() {
		if recover() == nil {
			t.Error("Output of a line that was not requested did not panic")
		}
	}()
	d.Output(4)
}

func TestNewLineCount(t *testing.T) {
	if _, err := New("gpiochip0", dshot.DShot600, make([]int, 33)...); err == nil {
		t.Error("New with 33 lines succeeded")
	}
	if _, err := New("gpiochip0", dshot.DShot600); err == nil {
		t.Error("New with no lines succeeded")
	}
}
