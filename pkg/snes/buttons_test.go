package snes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeButtons_NonePressed(t *testing.T) {
	assert.Equal(t, Buttons{}, DecodeButtons(0xffff))
}

func TestDecodeButtons_AllPressed(t *testing.T) {
	b := DecodeButtons(0x0000)

	assert.Equal(t, Buttons{
		B: true, Y: true, Select: true, Start: true,
		Up: true, Down: true, Left: true, Right: true,
		A: true, X: true, L: true, R: true,
	}, b)
}

func TestDecodeButtons_SingleBits(t *testing.T) {
	tests := []struct {
		bit  int
		want Buttons
	}{
		{BitB, Buttons{B: true}},
		{BitSelect, Buttons{Select: true}},
		{BitRight, Buttons{Right: true}},
		{BitR, Buttons{R: true}},
	}

	for _, tt := range tests {
		got := DecodeButtons(0xffff &^ (1 << uint(tt.bit)))
		assert.Equal(t, tt.want, got, "bit %d", tt.bit)
	}
}

func TestDecodeButtons_ReservedBitsIgnored(t *testing.T) {
	// reserved bits low must not show up in the decode
	assert.Equal(t, Buttons{}, DecodeButtons(AuthoritativeMask))
}
