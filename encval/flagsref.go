package encval

// FlagsRef addresses the flag record of a single edge: a fixed-size window
// of storage words inside a larger shared backing array, at Offset words
// into Words.
//
// The record itself performs no validation. Encoded values are the only
// writers and each one touches only the (word, mask) slots handed to it by
// the allocator, so the hot read/write path stays branch free.
type FlagsRef struct {
	Words  []uint32
	Offset int
}

// NewFlagsRef returns a standalone zero-filled record of n words, handy for
// tests and for staging flags before they are written to graph storage.
func NewFlagsRef(n int) FlagsRef {
	return FlagsRef{Words: make([]uint32, n)}
}

func (r FlagsRef) word(i int) uint32 {
	return r.Words[r.Offset+i]
}

func (r FlagsRef) setWord(i int, v uint32) {
	r.Words[r.Offset+i] = v
}
