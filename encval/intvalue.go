package encval

import (
	"fmt"
	"strings"
)

// Value is the capability shared by every encoded value variant. The
// Registry drives Init during its single registration pass; Bits and
// Directional describe the value's contribution to the persisted layout.
type Value interface {
	Name() string
	Bits() uint
	Directional() bool
	Init(a *BitAllocator) error
}

// IntValue is the canonical encoded value: an unsigned integer of a limited
// bit width. All other variants transform their value domain onto this
// integer path.
//
// The raw stored pattern 0 always decodes to the default value, so only
// [1, 2^bits-1] is directly representable. See MappedIntValue for values
// that need the full range.
type IntValue struct {
	name         string
	bits         uint
	defaultValue int
	directional  bool

	// set by Init, immutable afterwards
	maxValue    uint64
	fwd, bwd    Slot
	initialized bool
}

// NewIntValue constructs an integer encoded value. defaultValue is returned
// whenever the raw stored bits are 0. If directional is true, the forward
// and backward traversal directions of an edge store independent values and
// the value consumes twice its bit width.
func NewIntValue(name string, bits uint, defaultValue int, directional bool) (*IntValue, error) {
	if name != strings.ToLower(name) {
		return nil, fmt.Errorf("%w: %q", ErrNameNotLowercase, name)
	}
	if bits < 1 || bits > 32 {
		return nil, fmt.Errorf("%w: %q has %d bits", ErrInvalidBits, name, bits)
	}
	return &IntValue{
		name:         name,
		bits:         bits,
		defaultValue: defaultValue,
		directional:  directional,
	}, nil
}

func (v *IntValue) Name() string      { return v.name }
func (v *IntValue) Bits() uint        { return v.bits }
func (v *IntValue) Directional() bool { return v.directional }

// MaxValue is the largest directly encodable value, 2^bits - 1.
func (v *IntValue) MaxValue() uint64 { return v.maxValue }

// Init reserves this value's storage slots. The allocator is owned by the
// registry performing registration; Init must be called exactly once.
func (v *IntValue) Init(a *BitAllocator) error {
	if v.initialized {
		return fmt.Errorf("%w: %s", ErrAlreadyInitialized, v.name)
	}
	v.fwd = a.Allocate(v.bits)
	if v.directional {
		v.bwd = a.Allocate(v.bits)
	}
	v.maxValue = (uint64(1) << v.bits) - 1
	v.initialized = true
	return nil
}

func (v *IntValue) slot(reverse bool) Slot {
	if reverse && v.directional {
		return v.bwd
	}
	return v.fwd
}

func (v *IntValue) check(value int) error {
	if !v.initialized {
		return fmt.Errorf("%w: %s", ErrNotInitialized, v.name)
	}
	if value < 0 {
		return fmt.Errorf("%w: %s negative value %d", ErrValueOutOfRange, v.name, value)
	}
	if uint64(value) > v.maxValue {
		return fmt.Errorf("%w: %s value %d exceeds max %d", ErrValueOutOfRange, v.name, value, v.maxValue)
	}
	return nil
}

// Encode stores value in ref for the given traversal direction. reverse is
// ignored for non-directional values. The slot's previous bits are cleared
// before the new value is ORed in; other slots in the record are untouched.
func (v *IntValue) Encode(reverse bool, ref FlagsRef, value int) error {
	if err := v.check(value); err != nil {
		return err
	}
	v.uncheckedEncode(reverse, ref, value)
	return nil
}

func (v *IntValue) uncheckedEncode(reverse bool, ref FlagsRef, value int) {
	s := v.slot(reverse)
	flags := ref.word(s.Word)
	flags &^= s.Mask
	ref.setWord(s.Word, flags|uint32(value)<<s.Shift)
}

// Decode reads the stored value for the given traversal direction. A raw
// stored pattern of 0 yields the default value.
func (v *IntValue) Decode(reverse bool, ref FlagsRef) (int, error) {
	if !v.initialized {
		return 0, fmt.Errorf("%w: %s", ErrNotInitialized, v.name)
	}
	s := v.slot(reverse)
	raw := (ref.word(s.Word) & s.Mask) >> s.Shift
	if raw == 0 {
		return v.defaultValue, nil
	}
	return int(raw), nil
}

// Equal reports structural equality over storage location: two values are
// interchangeable views of the same stored bits iff their masks, word
// indices, bit width and name all match. Runtime state never participates.
func (v *IntValue) Equal(o *IntValue) bool {
	if o == nil {
		return false
	}
	return v.fwd == o.fwd && v.bwd == o.bwd && v.bits == o.bits && v.name == o.name
}
