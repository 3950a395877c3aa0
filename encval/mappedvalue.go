package encval

import "fmt"

// MappedIntValue is an integer encoded value with an explicit raw-to-logical
// remapping table, for attributes that need a true zero or a non-contiguous
// domain. Logical value domain[i] is stored as raw i+1; raw 0 still means
// "default", which here is simply the first table entry.
//
// A priority attribute spanning [-3,3] with default 0 is constructed as
// NewMappedIntValue("priority", 3, []int{0, -3, -2, -1, 1, 2, 3}, false):
// the leading 0 claims the default slot and every logical value remains
// reachable.
type MappedIntValue struct {
	*IntValue
	domain []int
	raws   map[int]int
}

// NewMappedIntValue constructs a remapped integer value over domain. The
// first domain entry is the default. The bit width must hold len(domain)
// raw patterns beyond the reserved 0.
func NewMappedIntValue(name string, bits uint, domain []int, directional bool) (*MappedIntValue, error) {
	if len(domain) == 0 {
		return nil, fmt.Errorf("%w: %q has an empty domain", ErrInvalidMapping, name)
	}
	// domain[0] is addressable both as raw 0 and raw 1, so only the
	// remaining entries compete for the 2^bits-1 free patterns.
	if uint64(len(domain)) > (uint64(1)<<bits)-1 {
		return nil, fmt.Errorf("%w: %q holds %d entries in %d bits", ErrInvalidMapping, name, len(domain), bits)
	}
	iv, err := NewIntValue(name, bits, 0, directional)
	if err != nil {
		return nil, err
	}
	raws := make(map[int]int, len(domain))
	for i, logical := range domain {
		if _, dup := raws[logical]; dup {
			return nil, fmt.Errorf("%w: %q duplicates %d", ErrInvalidMapping, name, logical)
		}
		raws[logical] = i + 1
	}
	return &MappedIntValue{IntValue: iv, domain: domain, raws: raws}, nil
}

// EncodeMapped stores the logical value. Values outside the domain fail
// with ErrValueOutOfRange.
func (v *MappedIntValue) EncodeMapped(reverse bool, ref FlagsRef, logical int) error {
	raw, ok := v.raws[logical]
	if !ok {
		return fmt.Errorf("%w: %s has no mapping for %d", ErrValueOutOfRange, v.Name(), logical)
	}
	return v.Encode(reverse, ref, raw)
}

// DecodeMapped reads the logical value; a raw 0 pattern yields the default
// (the first domain entry).
func (v *MappedIntValue) DecodeMapped(reverse bool, ref FlagsRef) (int, error) {
	raw, err := v.Decode(reverse, ref)
	if err != nil {
		return 0, err
	}
	if raw == 0 {
		return v.domain[0], nil
	}
	return v.domain[raw-1], nil
}
