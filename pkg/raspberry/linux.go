//go:build !windows
// +build !windows

package raspberry

import (
	"fmt"

	"github.com/warthog618/gpio"
)

// Open returns the GPIO backend selected by driver. An empty driver
// selects the memory-mapped backend.
func Open(driver string) (GPIO, error) {
	switch driver {
	case "", DriverGpiomem:
		return openRpi()
	case DriverGpiod:
		return openChip()
	}

	return nil, ErrInvalidParam
}

type RpiPin struct {
	gpioPin *gpio.Pin
}

type RpiGPIO struct {
	pins map[int]*RpiPin
}

// openRpi maps the GPIO memory range from /dev/gpiomem.
func openRpi() (*RpiGPIO, error) {
	if err := gpio.Open(); err != nil {
		return nil, err
	}
	return &RpiGPIO{pins: map[int]*RpiPin{}}, nil
}

// Close unmaps the GPIO memory.
// The pin registers keep their last configured state.
func (c *RpiGPIO) Close() error {
	return gpio.Close()
}

// NewPin creates a new pin object.
// The pin number provided is the BCM GPIO number.
func (c *RpiGPIO) NewPin(p int) (Pin, error) {
	if _, ok := c.pins[p]; ok {
		return nil, fmt.Errorf("pin %v already used", p)
	}

	l := RpiPin{gpioPin: gpio.NewPin(p)}
	c.pins[p] = &l
	return c.pins[p], nil
}

// Input sets pin as Input.
func (p *RpiPin) Input() {
	p.gpioPin.Input()
}

// Output sets pin as Output.
func (p *RpiPin) Output() {
	p.gpioPin.Output()
}

// PullUp sets the pull state of the pin to PullUp
func (p *RpiPin) PullUp() {
	p.gpioPin.PullUp()
}

// PullDown sets the pull state of the pin to PullDown
func (p *RpiPin) PullDown() {
	p.gpioPin.PullDown()
}

// High drives the pin high.
func (p *RpiPin) High() {
	p.gpioPin.High()
}

// Low drives the pin low.
func (p *RpiPin) Low() {
	p.gpioPin.Low()
}

// Read pin state (high/low)
func (p *RpiPin) Read() bool {
	return bool(p.gpioPin.Read())
}

// Pin returns the pin number that this Pin represents.
func (p *RpiPin) Pin() int {
	return p.gpioPin.Pin()
}
