package encval

// BoolValue is a single-bit encoded value. The raw 0 pattern doubles as the
// default, so a fresh record always reads back false; consequently bool
// defaults other than false are not supported.
type BoolValue struct {
	*IntValue
}

// NewBoolValue constructs a boolean encoded value occupying one bit per
// direction (or one bit total when not directional).
func NewBoolValue(name string, directional bool) (*BoolValue, error) {
	iv, err := NewIntValue(name, 1, 0, directional)
	if err != nil {
		return nil, err
	}
	return &BoolValue{IntValue: iv}, nil
}

// EncodeBool stores b for the given traversal direction.
func (v *BoolValue) EncodeBool(reverse bool, ref FlagsRef, b bool) error {
	raw := 0
	if b {
		raw = 1
	}
	return v.Encode(reverse, ref, raw)
}

// DecodeBool reads the stored flag for the given traversal direction.
func (v *BoolValue) DecodeBool(reverse bool, ref FlagsRef) (bool, error) {
	raw, err := v.Decode(reverse, ref)
	if err != nil {
		return false, err
	}
	return raw != 0, nil
}
