package pulse

import "time"

// Delayer suspends the caller for a short, tightly bounded interval.
// The bus timing works in single digit microseconds, far below the
// granularity time.Sleep holds on a stock kernel, so the production
// implementation busy-waits. Tests inject their own Delayer to run
// without real timing.
type Delayer interface {
	Delay(d time.Duration)
}

// SpinDelayer busy-waits on the monotonic clock.
type SpinDelayer struct{}

func (SpinDelayer) Delay(d time.Duration) {
	start := time.Now()
	for time.Since(start) < d {
	}
}
