package snes

// sampleVotes is the number of consecutive raw frames that must agree
// before a new stable state is accepted.
const sampleVotes = 3

// filter is the voting debounce stage. A single corrupted sample
// (timing jitter, EMI) must not reach the externally visible state, so
// a new value is accepted only when all frames of a full window agree.
// The added latency is sampleVotes poll cycles.
type filter struct {
	window [sampleVotes]Frame
	calls  int
}

// accept buffers f. Every sampleVotes'th call the window is evaluated:
// accept returns (f, true) when all buffered frames are bit for bit
// identical, otherwise (0, false) and the caller keeps its previous
// stable value. If no agreement is ever reached the stable value
// simply stays frozen; stale but safe.
func (v *filter) accept(f Frame) (Frame, bool) {
	v.window[v.calls%sampleVotes] = f
	v.calls++

	if v.calls%sampleVotes != 0 {
		return 0, false
	}

	if v.window[0] == v.window[1] && v.window[1] == v.window[2] {
		return v.window[0], true
	}

	return 0, false
}
