package snes

import (
	"testing"

	"snesio/pkg/pulse"

	"github.com/stretchr/testify/assert"
)

// glitchPin wraps the bus data line and falsifies the first read of
// one bit position: high on the first read, low on the second.
type glitchPin struct {
	*busPin
	bit   int
	reads int
}

func (p *glitchPin) Read() bool {
	if p.bus.idx == p.bit {
		p.reads++
		return p.reads == 1
	}
	return p.busPin.Read()
}

func newTestSampler(bus *fakeBus) *sampler {
	latch := &busPin{bus: bus, role: roleLatch}
	clock := &busPin{bus: bus, role: roleClock}
	data := &busPin{bus: bus, role: roleData}

	gen := pulse.New(latch, clock, nullDelay{})
	return &sampler{gen: gen, data: data}
}

func sampleOnce(s *sampler, bus *fakeBus) Frame {
	bus.latch()
	return s.sampleFrame()
}

func TestSampleFrame_IdleBus(t *testing.T) {
	bus := newFakeBus(0xffff)
	s := newTestSampler(bus)

	assert.Equal(t, Frame(0xffff), sampleOnce(s, bus), "idle bus must read as no presses")
	assert.Equal(t, Frame(0xffff), sampleOnce(s, bus), "and keep doing so indefinitely")
}

func TestSampleFrame_Buttons(t *testing.T) {
	bus := newFakeBus(0x00ff)
	s := newTestSampler(bus)

	assert.Equal(t, Frame(0x00ff), sampleOnce(s, bus))
}

func TestSampleFrame_AllPressed(t *testing.T) {
	bus := newFakeBus(0x0000)
	s := newTestSampler(bus)

	assert.Equal(t, Frame(0x0000), sampleOnce(s, bus))
}

func TestSampleFrame_GlitchReadsAsPress(t *testing.T) {
	// bit 3 reads high once, then low: the high-confirmed-twice
	// policy must register the press.
	bus := newFakeBus(0xffff)
	s := newTestSampler(bus)
	s.data = &glitchPin{busPin: &busPin{bus: bus, role: roleData}, bit: 3}

	assert.Equal(t, Frame(0xffff&^(1<<3)), sampleOnce(s, bus))
}

func TestSampleFrame_BitOrder(t *testing.T) {
	// only the first clocked position pressed
	bus := newFakeBus(0xfffe)
	s := newTestSampler(bus)

	f := sampleOnce(s, bus)
	assert.Equal(t, Frame(0xfffe), f)
	assert.True(t, DecodeButtons(f).B, "bit 0 is the B button")
}
