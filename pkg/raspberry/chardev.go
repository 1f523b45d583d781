//go:build !windows
// +build !windows

package raspberry

import (
	"fmt"

	"github.com/warthog618/gpiod"
	"github.com/womat/debug"
)

// Chip represents a single GPIO character device that controls a set
// of lines. Every call goes through the kernel, so level changes cost
// a syscall each; acceptable for pass-through ports and bench rigs,
// too slow to hold 6µs half periods reliably.
type Chip struct {
	gpiodChip *gpiod.Chip
	pins      map[int]*ChipPin
}

// ChipPin represents a single requested line.
type ChipPin struct {
	gpiodLine *gpiod.Line
	offset    int
}

// openChip opens the default GPIO character device.
func openChip() (*Chip, error) {
	c, err := gpiod.NewChip("gpiochip0")
	if err != nil {
		return nil, err
	}
	return &Chip{gpiodChip: c, pins: map[int]*ChipPin{}}, nil
}

// Close releases the chip and all requested lines.
func (c *Chip) Close() error {
	for _, p := range c.pins {
		_ = p.gpiodLine.Close()
	}
	return c.gpiodChip.Close()
}

// NewPin requests control of a single line on the chip. Lines start
// as inputs; the caller reconfigures direction and bias as needed.
func (c *Chip) NewPin(p int) (Pin, error) {
	if _, ok := c.pins[p]; ok {
		return nil, fmt.Errorf("pin %v already used", p)
	}

	l, err := c.gpiodChip.RequestLine(p, gpiod.AsInput)
	if err != nil {
		return nil, err
	}

	c.pins[p] = &ChipPin{gpiodLine: l, offset: p}
	return c.pins[p], nil
}

// Input sets pin as Input.
func (p *ChipPin) Input() {
	if err := p.gpiodLine.Reconfigure(gpiod.AsInput); err != nil {
		debug.ErrorLog.Printf("reconfigure pin %v as input: %v", p.offset, err)
	}
}

// Output sets pin as Output. The line keeps its current level.
func (p *ChipPin) Output() {
	v, err := p.gpiodLine.Value()
	if err != nil {
		v = 0
	}
	if err := p.gpiodLine.Reconfigure(gpiod.AsOutput(v)); err != nil {
		debug.ErrorLog.Printf("reconfigure pin %v as output: %v", p.offset, err)
	}
}

// PullUp sets the pull state of the pin to PullUp
func (p *ChipPin) PullUp() {
	if err := p.gpiodLine.Reconfigure(gpiod.WithPullUp); err != nil {
		debug.ErrorLog.Printf("reconfigure pin %v bias: %v", p.offset, err)
	}
}

// PullDown sets the pull state of the pin to PullDown
func (p *ChipPin) PullDown() {
	if err := p.gpiodLine.Reconfigure(gpiod.WithPullDown); err != nil {
		debug.ErrorLog.Printf("reconfigure pin %v bias: %v", p.offset, err)
	}
}

// High drives the pin high.
func (p *ChipPin) High() {
	if err := p.gpiodLine.SetValue(1); err != nil {
		debug.ErrorLog.Printf("set pin %v: %v", p.offset, err)
	}
}

// Low drives the pin low.
func (p *ChipPin) Low() {
	if err := p.gpiodLine.SetValue(0); err != nil {
		debug.ErrorLog.Printf("set pin %v: %v", p.offset, err)
	}
}

// Read pin state (high/low)
func (p *ChipPin) Read() bool {
	v, err := p.gpiodLine.Value()
	if err != nil {
		debug.ErrorLog.Printf("read pin %v: %v", p.offset, err)
		return false
	}
	return v != 0
}

// Pin returns the pin number that this Pin represents.
func (p *ChipPin) Pin() int {
	return p.offset
}
