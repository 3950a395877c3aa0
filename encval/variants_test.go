package encval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoolValue(t *testing.T) {
	v, err := NewBoolValue("oneway", false)
	require.NoError(t, err)
	var a BitAllocator
	require.NoError(t, v.Init(&a))
	ref := NewFlagsRef(a.Words())

	got, err := v.DecodeBool(false, ref)
	require.NoError(t, err)
	assert.False(t, got, "fresh record reads false")

	require.NoError(t, v.EncodeBool(false, ref, true))
	got, err = v.DecodeBool(false, ref)
	require.NoError(t, err)
	assert.True(t, got)

	require.NoError(t, v.EncodeBool(false, ref, false))
	got, err = v.DecodeBool(false, ref)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestBoolValueDirectional(t *testing.T) {
	v, err := NewBoolValue("access", true)
	require.NoError(t, err)
	var a BitAllocator
	require.NoError(t, v.Init(&a))
	ref := NewFlagsRef(a.Words())

	require.NoError(t, v.EncodeBool(false, ref, true))
	fwd, err := v.DecodeBool(false, ref)
	require.NoError(t, err)
	bwd, err := v.DecodeBool(true, ref)
	require.NoError(t, err)
	assert.True(t, fwd)
	assert.False(t, bwd)
}

func TestDecimalValue(t *testing.T) {
	// 5 km/h steps: encodable speeds are 5..155.
	v, err := NewDecimalValue("avg_speed", 5, 30, 5, false)
	require.NoError(t, err)
	var a BitAllocator
	require.NoError(t, v.Init(&a))
	ref := NewFlagsRef(a.Words())

	got, err := v.DecodeDecimal(false, ref)
	require.NoError(t, err)
	assert.Equal(t, 30.0, got, "fresh record reads the default on the factor grid")

	require.NoError(t, v.EncodeDecimal(false, ref, 50))
	got, err = v.DecodeDecimal(false, ref)
	require.NoError(t, err)
	assert.Equal(t, 50.0, got)

	// Values round to the nearest step.
	require.NoError(t, v.EncodeDecimal(false, ref, 52))
	got, err = v.DecodeDecimal(false, ref)
	require.NoError(t, err)
	assert.Equal(t, 50.0, got)

	assert.ErrorIs(t, v.EncodeDecimal(false, ref, 160), ErrValueOutOfRange)
	assert.ErrorIs(t, v.EncodeDecimal(false, ref, -5), ErrValueOutOfRange)

	_, err = NewDecimalValue("bad", 5, 0, 0, false)
	assert.ErrorIs(t, err, ErrInvalidFactor)
}

func TestStringValue(t *testing.T) {
	table := []string{"motorway", "trunk", "primary", "residential"}
	v, err := NewStringValue("road_class", 3, "unclassified", table, false)
	require.NoError(t, err)
	var a BitAllocator
	require.NoError(t, v.Init(&a))
	ref := NewFlagsRef(a.Words())

	got, err := v.DecodeString(false, ref)
	require.NoError(t, err)
	assert.Equal(t, "unclassified", got, "fresh record reads the default")

	for _, want := range table {
		require.NoError(t, v.EncodeString(false, ref, want))
		got, err = v.DecodeString(false, ref)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	assert.ErrorIs(t, v.EncodeString(false, ref, "towpath"), ErrValueNotIndexed)
}

func TestStringValueTableMustFit(t *testing.T) {
	// 2 bits leave 3 raw patterns beyond the reserved default.
	_, err := NewStringValue("road_class", 2, "", []string{"a", "b", "c", "d"}, false)
	assert.ErrorIs(t, err, ErrTableTooLarge)

	_, err = NewStringValue("road_class", 2, "", []string{"a", "b", "c"}, false)
	assert.NoError(t, err)
}

func TestMappedIntValue(t *testing.T) {
	// Priority [-3,3] with a reachable true zero; 0 leads so it is the default.
	domain := []int{0, -3, -2, -1, 1, 2, 3}
	v, err := NewMappedIntValue("priority", 3, domain, false)
	require.NoError(t, err)
	var a BitAllocator
	require.NoError(t, v.Init(&a))
	ref := NewFlagsRef(a.Words())

	got, err := v.DecodeMapped(false, ref)
	require.NoError(t, err)
	assert.Equal(t, 0, got, "fresh record reads the default")

	for _, want := range domain {
		require.NoError(t, v.EncodeMapped(false, ref, want))
		got, err = v.DecodeMapped(false, ref)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	assert.ErrorIs(t, v.EncodeMapped(false, ref, 4), ErrValueOutOfRange)
}

func TestMappedIntValueConstruction(t *testing.T) {
	_, err := NewMappedIntValue("p", 2, []int{0, 1, 2, 3}, false)
	assert.ErrorIs(t, err, ErrInvalidMapping, "four entries need three bits")

	_, err = NewMappedIntValue("p", 3, []int{0, 1, 1}, false)
	assert.ErrorIs(t, err, ErrInvalidMapping, "duplicate logical values")

	_, err = NewMappedIntValue("p", 3, nil, false)
	assert.ErrorIs(t, err, ErrInvalidMapping)
}
