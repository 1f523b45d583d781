// Package raspberry drives the gpio lines of the controller bus.
//
// The engine only depends on the Pin interface below; the concrete
// backend is chosen at Open time. On a Raspberry Pi the memory-mapped
// backend (driver "gpiomem") is the default and the only one fast
// enough for the 6µs clock half periods of the bus. The character
// device backend (driver "gpiod") works on any Linux gpiochip and is
// meant for bench rigs where the timing budget is relaxed.
package raspberry

import "fmt"

var ErrInvalidParam = fmt.Errorf("invalid parameters")

// DriverGpiomem selects the memory-mapped /dev/gpiomem backend.
const DriverGpiomem = "gpiomem"

// DriverGpiod selects the /dev/gpiochip0 character device backend.
const DriverGpiod = "gpiod"

// GPIO is a set of requestable digital lines.
type GPIO interface {
	// NewPin requests control of a single line.
	// The pin number provided is the BCM GPIO number.
	// If granted, control is maintained until the GPIO is closed.
	NewPin(gpio int) (Pin, error)
	// Close releases the gpio resources.
	Close() error
}

// Pin is the minimal digital line capability the engine builds on:
// set the direction, set the level, read the level.
type Pin interface {
	// Input sets the pin as input.
	Input()
	// Output sets the pin as output.
	Output()
	// PullUp sets the pull state of the pin to pull-up.
	PullUp()
	// PullDown sets the pull state of the pin to pull-down.
	PullDown()
	// High drives the pin high.
	High()
	// Low drives the pin low.
	Low()
	// Read returns the pin state (high = true).
	Read() bool
	// Pin returns the pin number that this Pin represents.
	Pin() int
}
