package snes

// Button bit positions in transmission order. A pressed button pulls
// its position low on the wire, so a set bit means released.
const (
	BitB = iota
	BitY
	BitSelect
	BitStart
	BitUp
	BitDown
	BitLeft
	BitRight
	BitA
	BitX
	BitL
	BitR
)

// Buttons is the decoded view of the 12 authoritative bit positions
// of a frame. A true field means the button is pressed.
type Buttons struct {
	B      bool `json:"b"`
	Y      bool `json:"y"`
	Select bool `json:"select"`
	Start  bool `json:"start"`
	Up     bool `json:"up"`
	Down   bool `json:"down"`
	Left   bool `json:"left"`
	Right  bool `json:"right"`
	A      bool `json:"a"`
	X      bool `json:"x"`
	L      bool `json:"l"`
	R      bool `json:"r"`
}

// DecodeButtons decodes the authoritative bits of f. The reserved
// bits 12 to 15 are ignored.
func DecodeButtons(f Frame) Buttons {
	pressed := func(bit int) bool {
		return f&(1<<uint(bit)) == 0
	}

	return Buttons{
		B:      pressed(BitB),
		Y:      pressed(BitY),
		Select: pressed(BitSelect),
		Start:  pressed(BitStart),
		Up:     pressed(BitUp),
		Down:   pressed(BitDown),
		Left:   pressed(BitLeft),
		Right:  pressed(BitRight),
		A:      pressed(BitA),
		X:      pressed(BitX),
		L:      pressed(BitL),
		R:      pressed(BitR),
	}
}
