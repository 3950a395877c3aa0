package encval

import (
	"fmt"
	"math"
)

// DecimalValue encodes a float64 quantized by a fixed factor. A speed value
// with factor 5 and 5 bits covers 5..155 km/h in 5 km/h steps, for example.
// The integer path underneath keeps all range checking and the raw-0
// default rule; the stored default decodes as defaultValue quantized to the
// factor grid.
type DecimalValue struct {
	*IntValue
	factor float64
}

// NewDecimalValue constructs a decimal-scaled encoded value. factor is the
// size of one quantization step and must be positive.
func NewDecimalValue(name string, bits uint, defaultValue, factor float64, directional bool) (*DecimalValue, error) {
	if factor <= 0 {
		return nil, fmt.Errorf("%w: %q factor %v", ErrInvalidFactor, name, factor)
	}
	iv, err := NewIntValue(name, bits, int(math.Round(defaultValue/factor)), directional)
	if err != nil {
		return nil, err
	}
	return &DecimalValue{IntValue: iv, factor: factor}, nil
}

// EncodeDecimal stores value rounded to the nearest factor step.
func (v *DecimalValue) EncodeDecimal(reverse bool, ref FlagsRef, value float64) error {
	return v.Encode(reverse, ref, int(math.Round(value/v.factor)))
}

// DecodeDecimal reads the stored value scaled back to its real magnitude.
func (v *DecimalValue) DecodeDecimal(reverse bool, ref FlagsRef) (float64, error) {
	raw, err := v.Decode(reverse, ref)
	if err != nil {
		return 0, err
	}
	return float64(raw) * v.factor, nil
}
