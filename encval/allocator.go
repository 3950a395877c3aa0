package encval

// WordBits is the fixed width of every storage word in an edge flag record.
const WordBits = 32

// Slot describes where one directional copy of an encoded value lives inside
// a flag record: the word index within the record, the shift of the least
// significant bit, and the mask covering exactly the allocated bits.
type Slot struct {
	Word  int
	Shift uint
	Mask  uint32
}

// BitAllocator hands out non-overlapping bit ranges within successive 32-bit
// storage words. It is a plain value owned by the Registry that uses it, so
// independent registries never share cursor state.
//
// Allocation is deterministic: the same sequence of Allocate calls always
// produces the same slots. Callers rely on that to treat registration order
// as a wire format.
type BitAllocator struct {
	word  int
	shift uint
}

// Allocate reserves the next bits-wide range and advances the cursor. A
// range never spans a word boundary: when the current word cannot hold the
// request the cursor moves to the start of the next word.
//
// bits is trusted to be in [1,32]; encoded value constructors reject
// anything else before allocation is reached.
func (a *BitAllocator) Allocate(bits uint) Slot {
	if a.shift+bits > WordBits {
		a.word++
		a.shift = 0
	}
	s := Slot{
		Word:  a.word,
		Shift: a.shift,
		Mask:  uint32((uint64(1)<<bits)-1) << a.shift,
	}
	a.shift += bits
	return s
}

// Words returns the number of storage words consumed so far, rounded up to
// whole words. A fresh allocator reports 0.
func (a *BitAllocator) Words() int {
	if a.word == 0 && a.shift == 0 {
		return 0
	}
	return a.word + 1
}
