//go:build windows
// +build windows

package raspberry

import (
	"fmt"
)

// WinPin emulates a digital line for development on Windows systems.
// Outputs store the driven level; inputs read back the stored level,
// which starts high (pulled-up idle bus, nothing pressed).
type WinPin struct {
	gpioPin int
	level   bool
}

type WinGPIO struct {
	pins map[int]*WinPin
}

// Open returns the emulated GPIO backend; driver is ignored.
func Open(driver string) (GPIO, error) {
	return &WinGPIO{pins: map[int]*WinPin{}}, nil
}

// Close removes the emulated pins.
func (c *WinGPIO) Close() error {
	return nil
}

// NewPin creates a new pin object.
func (c *WinGPIO) NewPin(p int) (Pin, error) {
	if _, ok := c.pins[p]; ok {
		return nil, fmt.Errorf("pin %v already used", p)
	}

	l := WinPin{gpioPin: p, level: true}
	c.pins[p] = &l
	return c.pins[p], nil
}

// Input sets pin as Input.
func (p *WinPin) Input() {
}

// Output sets pin as Output.
func (p *WinPin) Output() {
}

// PullUp sets the pull state of the pin to PullUp
func (p *WinPin) PullUp() {
	p.level = true
}

// PullDown sets the pull state of the pin to PullDown
func (p *WinPin) PullDown() {
	p.level = false
}

// High drives the pin high.
func (p *WinPin) High() {
	p.level = true
}

// Low drives the pin low.
func (p *WinPin) Low() {
	p.level = false
}

// Read pin state (high/low)
func (p *WinPin) Read() bool {
	return p.level
}

// Pin returns the pin number that this Pin represents.
func (p *WinPin) Pin() int {
	return p.gpioPin
}
