package snes

import (
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"snesio/pkg/passthru"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/womat/debug"
)

func TestMain(m *testing.M) {
	debug.SetDebug(io.Discard, debug.Standard)
	os.Exit(m.Run())
}

// fakeBus emulates a controller on the far end of the bus: the latch
// pulse captures the configured frame into a shift register, each
// falling clock edge presents the next bit on the data line.
type fakeBus struct {
	mu sync.Mutex

	// frames are handed out round robin, one per latch pulse.
	frames []Frame
	latched int

	reg Frame
	idx int
}

func newFakeBus(frames ...Frame) *fakeBus {
	return &fakeBus{frames: frames, idx: -1}
}

func (b *fakeBus) latch() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.reg = b.frames[b.latched%len(b.frames)]
	b.latched++
	b.idx = -1
}

func (b *fakeBus) clockFall() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.idx++
}

func (b *fakeBus) dataLevel() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.idx < 0 || b.idx >= frameBits {
		return true
	}
	return b.reg&(1<<uint(b.idx)) != 0
}

// role selectors for busPin
const (
	roleLatch = iota
	roleClock
	roleData
)

type busPin struct {
	bus  *fakeBus
	role int
}

func (p *busPin) Input()    {}
func (p *busPin) Output()   {}
func (p *busPin) PullUp()   {}
func (p *busPin) PullDown() {}

func (p *busPin) High() {
	if p.role == roleLatch {
		p.bus.latch()
	}
}

func (p *busPin) Low() {
	if p.role == roleClock {
		p.bus.clockFall()
	}
}

func (p *busPin) Read() bool {
	if p.role == roleData {
		return p.bus.dataLevel()
	}
	return false
}

func (p *busPin) Pin() int { return p.role }

// nullDelay skips the microsecond waits; the fake bus has no real
// timing to honor.
type nullDelay struct{}

func (nullDelay) Delay(time.Duration) {}

// collector is a Transmitter keeping every outbound frame.
type collector struct {
	mu     sync.Mutex
	frames []passthru.Frame17
}

func (c *collector) Transmit(f passthru.Frame17) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = append(c.frames, f)
}

func (c *collector) last() (passthru.Frame17, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.frames) == 0 {
		return 0, false
	}
	return c.frames[len(c.frames)-1], true
}

func newTestEngine(bus *fakeBus, ports ...*passthru.Port) *Engine {
	latch := &busPin{bus: bus, role: roleLatch}
	clock := &busPin{bus: bus, role: roleClock}
	data := &busPin{bus: bus, role: roleData}

	// 3ms debounce window -> 1ms cycles, fast enough for tests.
	return New(latch, clock, data, nullDelay{}, 3*time.Millisecond, ports)
}

func TestEngine_ColdState(t *testing.T) {
	e := newTestEngine(newFakeBus(0xffff))

	assert.Equal(t, uint16(0xffff), e.InputState(), "engine must be queryable before Run")
}

func TestEngine_ConvergesOnStableFrames(t *testing.T) {
	out := &collector{}
	e := newTestEngine(newFakeBus(0x00ff), passthru.NewPort(0, out))

	require.NoError(t, e.Run())
	defer func() { _ = e.Stop() }()

	require.Eventually(t, func() bool {
		return e.InputState() == 0x00ff
	}, time.Second, 5*time.Millisecond, "three agreeing raw frames must update the stable state")

	require.Eventually(t, func() bool {
		f, ok := out.last()
		return ok && f == 0x01fe
	}, time.Second, 5*time.Millisecond, "outbound frame must be the reframed stable state")
}

func TestEngine_HoldsOnDisagreement(t *testing.T) {
	// alternating frames never agree three times in a row
	e := newTestEngine(newFakeBus(0x00ff, 0x0fff))

	require.NoError(t, e.Run())
	defer func() { _ = e.Stop() }()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, uint16(0xffff), e.InputState(), "stable state must stay at the cold value")
}

func TestEngine_IdleBusReadsNoPresses(t *testing.T) {
	e := newTestEngine(newFakeBus(0xffff))

	require.NoError(t, e.Run())
	defer func() { _ = e.Stop() }()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, uint16(0xffff), e.InputState())
}

func TestEngine_StopKeepsState(t *testing.T) {
	e := newTestEngine(newFakeBus(0x70ff))

	require.NoError(t, e.Run())
	require.Eventually(t, func() bool {
		return e.InputState() == 0x70ff
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, e.Stop())

	assert.Equal(t, uint16(0x70ff), e.InputState(), "state must stay queryable after Stop")
	assert.Equal(t, uint16(0x70ff), e.InputState(), "repeated reads must agree")
}

func TestEngine_Lifecycle(t *testing.T) {
	e := newTestEngine(newFakeBus(0xffff))

	assert.ErrorIs(t, e.Stop(), ErrNotRunning, "Stop before Run")

	require.NoError(t, e.Run())
	assert.ErrorIs(t, e.Run(), ErrNotIdle, "Run while running")

	require.NoError(t, e.Stop())
	assert.ErrorIs(t, e.Run(), ErrNotIdle, "no restart from stopped")
	assert.ErrorIs(t, e.Stop(), ErrNotRunning)
}

func TestEngine_Buttons(t *testing.T) {
	e := newTestEngine(newFakeBus(0xffff &^ (1 << BitStart)))

	require.NoError(t, e.Run())
	defer func() { _ = e.Stop() }()

	require.Eventually(t, func() bool {
		return e.Buttons().Start
	}, time.Second, 5*time.Millisecond)

	b := e.Buttons()
	assert.False(t, b.B)
	assert.False(t, b.A)
	assert.True(t, b.Start)
}
