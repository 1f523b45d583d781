package passthru

import (
	"snesio/pkg/pulse"
	"snesio/pkg/raspberry"
)

// LineShifter is a Transmitter that shifts outbound frames onto a
// downstream port: a latch pulse, then the 17 pulse clock train with
// the frame bits driven on the data line. One worker goroutine per
// shifter owns the lines; Transmit never blocks on the waveform.
type LineShifter struct {
	gen   *pulse.Generator
	data  raspberry.Pin
	delay pulse.Delayer

	// next is a one slot mailbox; see Transmit.
	next chan Frame17
	quit chan struct{}
	done chan struct{}
}

// NewLineShifter configures data as an output at its idle level (low)
// and starts the transmission worker. gen must drive the latch and
// clock lines of the same port.
func NewLineShifter(gen *pulse.Generator, data raspberry.Pin, delay pulse.Delayer) *LineShifter {
	data.Output()
	data.Low()

	s := &LineShifter{
		gen:   gen,
		data:  data,
		delay: delay,
		next:  make(chan Frame17, 1),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}

	go s.run()
	return s
}

// Transmit hands f to the worker. A frame still waiting in the mailbox
// is dropped and replaced, so at most one transmission is pending.
func (s *LineShifter) Transmit(f Frame17) {
	for {
		select {
		case s.next <- f:
			return
		default:
		}

		select {
		case <-s.next:
			// superseded
		default:
		}
	}
}

// Close stops the worker. A transmission already in progress completes
// before the worker exits; a pending frame in the mailbox is dropped.
func (s *LineShifter) Close() error {
	close(s.quit)
	<-s.done
	return nil
}

func (s *LineShifter) run() {
	defer close(s.done)

	for {
		select {
		case <-s.quit:
			return
		case f := <-s.next:
			s.shift(f)
		}
	}
}

// shift drives one complete outbound frame: latch the peer, then clock
// all 17 bit positions out, each data bit valid before the falling
// edge its consumer keys on. The data line returns to idle afterwards.
func (s *LineShifter) shift(f Frame17) {
	s.gen.EmitLatch()
	s.delay.Delay(pulse.HalfPeriod)

	s.gen.EmitClock(pulse.PassThroughPulses, func(bit int) {
		if f&(1<<uint(bit)) != 0 {
			s.data.High()
		} else {
			s.data.Low()
		}
	}, nil)

	s.data.Low()
}
