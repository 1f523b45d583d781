// Package snes implements the controller bus protocol engine: it polls
// the source bus with precisely timed latch/clock waveforms, samples
// the serial data line, stabilizes the raw frames through a voting
// filter and republishes the result on the bound pass-through ports.
package snes

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"snesio/pkg/passthru"
	"snesio/pkg/pulse"
	"snesio/pkg/raspberry"

	"github.com/womat/debug"
)

var (
	ErrNotIdle    = errors.New("engine has already been started")
	ErrNotRunning = errors.New("engine is not running")
)

// stateType represents the lifecycle state of the engine.
type stateType int

const (
	// idle is the state before Run.
	idle stateType = iota
	// running is the state while the poll loop is active.
	running
	// stopped is terminal; construct a fresh engine to run again.
	stopped
)

// coldState is the stable input state before the first successful
// vote: all lines high, nothing pressed.
const coldState Frame = 0xffff

// Engine owns the source bus and the bound pass-through ports.
//
// One background goroutine runs the poll loop; it is the sole writer
// of the stable input state and the sole driver of the bus lines.
// InputState may be called from any goroutine.
type Engine struct {
	gen   *pulse.Generator
	smp   sampler
	vote  filter
	ports []*passthru.Port
	delay pulse.Delayer

	// cycle is the poll interval of the source bus. The debounce
	// window spans sampleVotes cycles; that 3:1 ratio is the
	// invariant, not the absolute interval.
	cycle time.Duration

	// state holds the stable input state in the low 16 bits, written
	// by the poll loop only and replaced atomically, never torn.
	state uint32

	mu   sync.Mutex
	run  stateType
	quit chan struct{}
	done chan struct{}
}

// New wires an engine to its bus lines. latch and clock become outputs
// at their idle levels, data becomes a pulled-up input. window is the
// debounce window, i.e. the time one full vote of sampleVotes raw
// samples may take; the nominal bus rate is a 16.6ms window.
func New(latch, clock, data raspberry.Pin, delay pulse.Delayer, window time.Duration, ports []*passthru.Port) *Engine {
	data.Input()
	data.PullUp()

	gen := pulse.New(latch, clock, delay)

	e := &Engine{
		gen:   gen,
		smp:   sampler{gen: gen, data: data},
		ports: ports,
		delay: delay,
		cycle: window / sampleVotes,
		state: uint32(coldState),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}

	return e
}

// Run transitions the engine from idle to running and starts the poll
// loop goroutine. A second Run, or a Run after Stop, returns
// ErrNotIdle.
func (e *Engine) Run() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.run != idle {
		return ErrNotIdle
	}
	e.run = running

	go e.loop()
	return nil
}

// Stop transitions the engine from running to stopped. The poll loop
// observes the flag at the top of its cycle and exits cleanly, never
// mid pulse; Stop blocks until then, at most one cycle. The stable
// input state stays readable afterwards.
func (e *Engine) Stop() error {
	e.mu.Lock()
	if e.run != running {
		e.mu.Unlock()
		return ErrNotRunning
	}
	e.run = stopped
	close(e.quit)
	e.mu.Unlock()

	<-e.done
	return nil
}

// InputState returns the stable input state. The call is total: it
// returns the cold state before the first accepted vote and keeps
// returning the last accepted value after Stop.
func (e *Engine) InputState() uint16 {
	return uint16(atomic.LoadUint32(&e.state))
}

// Buttons returns the decoded authoritative bits of the stable state.
func (e *Engine) Buttons() Buttons {
	return DecodeButtons(Frame(e.InputState()))
}

// loop is the poll loop controller. Per cycle: latch the peer, clock a
// raw frame in, feed it to the voting filter, and at every debounce
// window boundary reframe the stable state onto all bound ports,
// changed or not.
func (e *Engine) loop() {
	defer close(e.done)

	debug.InfoLog.Printf("poll loop started, cycle %v, %v bound ports", e.cycle, len(e.ports))

	tick := time.NewTicker(e.cycle)
	defer tick.Stop()

	for cycle := 0; ; cycle++ {
		select {
		case <-e.quit:
			debug.InfoLog.Print("poll loop stopped")
			return
		case <-tick.C:
		}

		e.gen.EmitLatch()
		e.delay.Delay(pulse.HalfPeriod)
		f := e.smp.sampleFrame()

		if v, ok := e.vote.accept(f); ok {
			if Frame(e.InputState()) != v {
				debug.DebugLog.Printf("stable state %#04x", uint16(v))
			}
			atomic.StoreUint32(&e.state, uint32(v))
		}

		if (cycle+1)%sampleVotes == 0 {
			out := passthru.Reframe(e.InputState())
			for _, p := range e.ports {
				p.Transmit(out)
			}
		}
	}
}
