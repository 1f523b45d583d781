// Package pulse generates the latch and clock waveforms of the
// controller bus.
//
// Every poll cycle the bus master sends a 12µs wide, positive going
// latch pulse. It instructs the parallel-in serial-out shift register
// in the controller to capture the state of all buttons. The master
// then sends 16 clock pulses, 50% duty cycle with 12µs per full cycle,
// and the controller shifts one latched button state out of the data
// line per pulse. For pass-through re-transmission a 17 pulse train is
// used instead; the extra leading pulse carries a dummy bit that
// realigns the frame with the phase-shifted derived clock of the
// downstream port.
package pulse

import (
	"time"

	"snesio/pkg/raspberry"
)

const (
	// LatchWidth is the width of the positive latch pulse.
	LatchWidth = 12 * time.Microsecond
	// ClockPeriod is the full clock period at 50% duty cycle.
	ClockPeriod = 12 * time.Microsecond
	// HalfPeriod is one clock half period.
	HalfPeriod = ClockPeriod / 2
	// SettleTime is the gap between the rising clock edge and the
	// point where the data line is sampled.
	SettleTime = 6 * time.Microsecond

	// SourcePulses is the pulse count when polling the source bus.
	SourcePulses = 16
	// PassThroughPulses is the pulse count when feeding a downstream
	// port: one dummy pulse, then the 16 data pulses.
	PassThroughPulses = 17
)

// BitFunc is a per-pulse hook of EmitClock. bit is the pulse index,
// starting at 0 with the first pulse after idle.
type BitFunc func(bit int)

// Generator drives the latch and clock lines of one bus. Emission is
// blocking: a call returns once the waveform has been driven out
// completely, so a single goroutine per bus keeps the lines coherent.
type Generator struct {
	latch raspberry.Pin
	clock raspberry.Pin
	delay Delayer
}

// New configures both lines as outputs at their idle levels: latch
// idles low, clock idles high.
func New(latch, clock raspberry.Pin, delay Delayer) *Generator {
	latch.Output()
	latch.Low()
	clock.Output()
	clock.High()

	return &Generator{
		latch: latch,
		clock: clock,
		delay: delay,
	}
}

// EmitLatch emits a single positive latch pulse of LatchWidth.
func (g *Generator) EmitLatch() {
	g.latch.High()
	g.delay.Delay(LatchWidth)
	g.latch.Low()
}

// EmitClock emits a train of pulses on the normally high clock line,
// so the first transition after idle is the falling edge of pulse 0.
// The peer producing data must drive its first bit before that edge.
//
// drive, if not nil, is invoked immediately before the falling edge of
// each pulse, the point where an outbound data bit must be valid.
// sample, if not nil, is invoked once per pulse after the settle time
// following the rising edge, the point where an inbound data bit is
// stable. The remainder of the period runs out as the low half of the
// next pulse.
func (g *Generator) EmitClock(pulses int, drive, sample BitFunc) {
	for bit := 0; bit < pulses; bit++ {
		if drive != nil {
			drive(bit)
		}
		g.clock.Low()
		g.delay.Delay(HalfPeriod)
		g.clock.High()
		g.delay.Delay(SettleTime)
		if sample != nil {
			sample(bit)
		}
	}
}
