package pulse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpinDelayer_WaitsAtLeast(t *testing.T) {
	var d SpinDelayer

	const want = 200 * time.Microsecond

	start := time.Now()
	d.Delay(want)
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, int64(elapsed), int64(want))
}
