package snes

import (
	"snesio/pkg/pulse"
	"snesio/pkg/raspberry"
)

// Frame is one raw 16 bit capture of the serial data line. Bit 0 is
// the first clocked position. A low bit means the button is pressed;
// an idle or disconnected bus reads 0xffff, indistinguishable from
// nothing pressed.
type Frame uint16

// frameBits is the number of clocked bit positions per frame. All 16
// are sampled to keep the timing uniform, but only the positions in
// AuthoritativeMask carry button state.
const frameBits = pulse.SourcePulses

// AuthoritativeMask covers the 12 bit positions assigned to buttons.
// Bits 12 to 15 are reserved by this controller family and always
// read high.
const AuthoritativeMask Frame = 0x0fff

// sampler captures raw frames off the serial data line, interleaved
// with the clock train.
type sampler struct {
	gen  *pulse.Generator
	data raspberry.Pin
}

// sampleFrame clocks all 16 bit positions out of the peer shift
// register, reading the data line once per pulse at the settle point
// after the rising edge. It always returns a frame; a stuck bus simply
// keeps yielding 0xffff.
func (s *sampler) sampleFrame() Frame {
	var f Frame

	s.gen.EmitClock(frameBits, nil, func(bit int) {
		if s.readBit() {
			f |= 1 << uint(bit)
		}
	})

	return f
}

// readBit reads the data line with the high-confirmed-twice policy: a
// released button (line high) is accepted only when a second read
// agrees, while any low read registers the press immediately. Under
// electrical noise this biases toward registering presses.
func (s *sampler) readBit() bool {
	if s.data.Read() {
		return s.data.Read()
	}
	return false
}
