package passthru

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/womat/debug"
)

func TestMain(m *testing.M) {
	debug.SetDebug(io.Discard, debug.Standard)
	os.Exit(m.Run())
}

func TestReframe(t *testing.T) {
	tests := []struct {
		state uint16
		want  Frame17
	}{
		{0x0000, 0x00000},
		{0xffff, 0x1fffe},
		{0x00ff, 0x001fe},
		{0x8000, 0x10000},
		{0x0001, 0x00002},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Reframe(tt.state), "state %#04x", tt.state)
	}
}

func TestReframe_DummyBitAlwaysLow(t *testing.T) {
	for s := 0; s <= 0xffff; s++ {
		if Reframe(uint16(s))&1 != 0 {
			t.Fatalf("state %#04x: dummy bit not low", s)
		}
	}
}

func TestReframe_Pure(t *testing.T) {
	assert.Equal(t, Reframe(0xa5a5), Reframe(0xa5a5))
}

type spyTransmitter struct {
	frames []Frame17
}

func (s *spyTransmitter) Transmit(f Frame17) {
	s.frames = append(s.frames, f)
}

func TestPort_TransmitForwards(t *testing.T) {
	spy := &spyTransmitter{}
	p := NewPort(1, spy)

	p.Transmit(0x1fffe)
	p.Transmit(0x001fe)

	assert.Equal(t, 1, p.Index())
	assert.Equal(t, []Frame17{0x1fffe, 0x001fe}, spy.frames)
}
