package storage

import (
	"github.com/trailhead-maps/go-roadgraph/encval"
)

// FlagStore is the shared backing array for edge flag records: a growable
// slab of 32-bit words sliced into fixed-size per-edge windows. It is
// exclusively owned by the graph; encoded values only ever see FlagsRef
// windows into it.
//
// Growth is append-only and zero filling, so a fresh record decodes to the
// default of every registered value without an initialization pass. The
// store is not synchronized: all growth belongs to the single-writer build
// phase, after which concurrent readers are safe.
type FlagStore struct {
	wordsPerRecord int
	words          []uint32
	records        int
}

// NewFlagStore creates a store whose records are wordsPerRecord words wide,
// as reported by encval.Registry.WordsPerRecord. wordsPerRecord may be 0
// when no values are registered; every record is then an empty window.
func NewFlagStore(wordsPerRecord int) *FlagStore {
	return &FlagStore{wordsPerRecord: wordsPerRecord}
}

// WordsPerRecord is the fixed width of every record in words.
func (s *FlagStore) WordsPerRecord() int { return s.wordsPerRecord }

// Records is the number of records added so far.
func (s *FlagStore) Records() int { return s.records }

// AddRecord appends a zero-filled record and returns its index.
func (s *FlagStore) AddRecord() int {
	s.words = append(s.words, make([]uint32, s.wordsPerRecord)...)
	s.records++
	return s.records - 1
}

// Record returns the flag record window for index i. The window aliases the
// backing array; encoded values write through it directly. AddRecord may
// reallocate the backing array, so windows must be re-fetched rather than
// held across growth.
func (s *FlagStore) Record(i int) encval.FlagsRef {
	return encval.FlagsRef{Words: s.words, Offset: i * s.wordsPerRecord}
}

// recordWords returns the raw words of record i, used by persistence.
func (s *FlagStore) recordWords(i int) []uint32 {
	off := i * s.wordsPerRecord
	return s.words[off : off+s.wordsPerRecord]
}
