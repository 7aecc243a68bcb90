package dshot

/* Multi-pin DShot600 for boards without a DShot-capable timer.

Every attached pin shares one output port. Instead of sending one frame per pin, the frame bits of
all channels are kept as 16 bit-planes (one port word per frame bit) so a single pulse train on the
port carries every channel at once. See
https://www.swallenhardware.io/battlebots/2019/4/20/a-developers-guide-to-dshot-escs for the
protocol itself.

*/

import (
	"math"
)

const (
	CmdMotorStop = iota
	CmdBeacon1
	CmdBeacon2
	CmdBeacon3
	CmdBeacon4
	CmdBeacon5
	CmdESCInfo // v2 includes settings
	CmdSpinDirection1
	CmdSpinDirection2
	Cmd3DModeOff
	Cmd3DModeOn
	CmdSettingsRequest // not implemented
	CmdSaveSettings
	CmdSpinDirectionNormal
	CmdSpinDirectionReversed
	CmdLED0On               // BLHeli32 only
	CmdLED1On               // BLHeli32 only
	CmdLED2On               // BLHeli32 only
	CmdLED3On               // BLHeli32 only
	CmdLED0Off              // BLHeli32 only
	CmdLED1Off              // BLHeli32 only
	CmdLED2Off              // BLHeli32 only
	CmdLED3Off              // BLHeli32 only
	CmdAudioStreamModeOnOff // KISS audio Stream mode on/off
	CmdSilentModeOnOff      // KISS silent mode on/off
	CmdSignalLineTelemetryDisable
	CmdSignalLineContinuousERPMTelemetry
	CmdMax = 47
)

const (
	// FrameBits is the number of bits in a DShot frame, sent MSB first.
	FrameBits = 16

	// MinThrottle is the lowest value that is a throttle rather than a command.
	MinThrottle = CmdMax + 1
	// MaxThrottle is the largest 11-bit throttle value.
	MaxThrottle = 2047
)

// Encode builds the frame for an 11-bit throttle: throttle, a telemetry bit that is always 0, and
// a 4-bit XOR checksum. Bits above the 11th are not masked off.
func Encode(throttle uint16) (frame uint16) {
	frame = throttle << 1
	return frame<<4 | checksum(frame)
}

// Checksum returns the checksum that belongs in the low nibble of frame.
func Checksum(frame uint16) uint16 {
	return checksum(frame >> 4)
}

// Valid reports whether the low nibble of frame matches its checksum.
func Valid(frame uint16) bool {
	return frame&0x0F == Checksum(frame)
}

// checksum xors the three nibbles of the 12-bit throttle+telemetry value.
func checksum(data uint16) (csum uint16) {
	for i := 0; i < 3; i++ {
		csum ^= data
		data >>= 4
	}
	return csum & 0x0F
}

// Throttle3D converts a speed, -1 being full reverse and 1 full forward, to a 3D mode throttle.
// Speeds close to 0 return CmdMotorStop.
func Throttle3D(speed float64) uint16 {
	if math.Abs(speed) < 0.001 {
		return CmdMotorStop
	}
	speed = math.Max(-1, math.Min(1, speed))

	// "direction1" is reverse: 48 (slowest) .. 1047 (full reverse)
	if speed < 0 {
		return uint16(-speed*999) + MinThrottle
	}
	return uint16(speed*999) + 1048
}
