package encval

import "fmt"

// StringValue is an enumerated encoded value: the stored bits are a small
// index into an out-of-band, ordered name table. Index i of the table is
// stored as raw i+1, keeping the raw-0 slot for the default.
//
// The table is part of the layout contract in the same way the bit width
// is: two systems interoperate on a stored graph only if they construct the
// value with identical tables.
type StringValue struct {
	*IntValue
	table         []string
	lookup        map[string]int
	defaultString string
}

// NewStringValue constructs an enumerated encoded value over table. The bit
// width must be able to hold len(table)+1 distinct raw patterns (the +1 is
// the reserved default). defaultValue is returned for the raw 0 pattern and
// need not be present in the table.
func NewStringValue(name string, bits uint, defaultValue string, table []string, directional bool) (*StringValue, error) {
	iv, err := NewIntValue(name, bits, 0, directional)
	if err != nil {
		return nil, err
	}
	if uint64(len(table)) > (uint64(1)<<bits)-1 {
		return nil, fmt.Errorf("%w: %q holds %d entries in %d bits", ErrTableTooLarge, name, len(table), bits)
	}
	lookup := make(map[string]int, len(table))
	for i, s := range table {
		lookup[s] = i + 1
	}
	return &StringValue{IntValue: iv, table: table, lookup: lookup, defaultString: defaultValue}, nil
}

// Table returns the ordered name table backing this value.
func (v *StringValue) Table() []string { return v.table }

// EncodeString stores the table index of s. Strings absent from the table
// are a configuration error, not a silent default.
func (v *StringValue) EncodeString(reverse bool, ref FlagsRef, s string) error {
	raw, ok := v.lookup[s]
	if !ok {
		return fmt.Errorf("%w: %s has no entry %q", ErrValueNotIndexed, v.Name(), s)
	}
	return v.Encode(reverse, ref, raw)
}

// DecodeString reads the stored table entry, or the default for raw 0.
func (v *StringValue) DecodeString(reverse bool, ref FlagsRef) (string, error) {
	raw, err := v.Decode(reverse, ref)
	if err != nil {
		return "", err
	}
	if raw == 0 {
		return v.defaultString, nil
	}
	return v.table[raw-1], nil
}
