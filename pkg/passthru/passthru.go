// Package passthru republishes the stable input state on downstream
// controller port emulations.
//
// The downstream ports run off a derived clock that a phase-combining
// element builds from the latch and clock signals, which makes the
// first real data bit appear one cycle early. Outbound frames carry a
// synthetic low bit in position 0 to compensate.
package passthru

import (
	"github.com/womat/debug"
)

// Frame17 is an outbound frame: the 16 bit stable state shifted up one
// position, with the forced low dummy bit in position 0. Only the low
// 17 bits are significant.
type Frame17 uint32

// Reframe derives the outbound frame for state. Reframe is pure: the
// result is (state << 1) with bit 0 forced low, for every state
// including 0x0000 and 0xffff.
func Reframe(state uint16) Frame17 {
	return Frame17(uint32(state)<<1) &^ 1
}

// Transmitter accepts one outbound frame for transmission on a
// downstream port. Implementations are fire and forget: at most one
// frame is in flight per port, and a frame still waiting for the
// peripheral is superseded by the next one, never queued behind it.
type Transmitter interface {
	Transmit(Frame17)
}

// Port is the static binding between a logical downstream port index
// and its transmission peripheral. Bindings are fixed at
// initialisation and never change at runtime.
type Port struct {
	index int
	tx    Transmitter
}

// NewPort binds port index to tx.
func NewPort(index int, tx Transmitter) *Port {
	return &Port{index: index, tx: tx}
}

// Index returns the logical port index of the binding.
func (p *Port) Index() int {
	return p.index
}

// Transmit hands f to the port peripheral.
func (p *Port) Transmit(f Frame17) {
	debug.TraceLog.Printf("port %v: transmit %#05x", p.index, uint32(f))
	p.tx.Transmit(f)
}
