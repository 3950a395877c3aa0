package storage

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/trailhead-maps/go-roadgraph/encval"
)

// Manifest is the persisted description of a graph's flag record layout:
// the registration-ordered (name, bits, directional) tuples plus the record
// width they imply. Two systems interoperate on the same stored flag
// records only when their manifests match entry for entry.
//
// GraphID ties persisted flag records to the graph build that produced
// them, so records are never reattached to a structurally compatible but
// different graph by accident.
type Manifest struct {
	GraphID        uuid.UUID            `cbor:"graph_id"`
	WordsPerRecord int                  `cbor:"words_per_record"`
	Entries        []encval.LayoutEntry `cbor:"entries"`
}

// NewManifest captures the layout of reg under a fresh graph identity.
func NewManifest(reg *encval.Registry) Manifest {
	return Manifest{
		GraphID:        uuid.New(),
		WordsPerRecord: reg.WordsPerRecord(),
		Entries:        reg.Layout(),
	}
}

// Matches verifies that other describes the identical layout: same record
// width and the same ordered entries. Graph identity is deliberately not
// compared; callers that require the same build compare GraphID themselves.
func (m Manifest) Matches(other Manifest) error {
	if m.WordsPerRecord != other.WordsPerRecord {
		return fmt.Errorf("%w: %d words per record, stored %d",
			ErrLayoutMismatch, m.WordsPerRecord, other.WordsPerRecord)
	}
	if len(m.Entries) != len(other.Entries) {
		return fmt.Errorf("%w: %d values, stored %d",
			ErrLayoutMismatch, len(m.Entries), len(other.Entries))
	}
	for i, e := range m.Entries {
		if e != other.Entries[i] {
			return fmt.Errorf("%w: entry %d is %+v, stored %+v",
				ErrLayoutMismatch, i, e, other.Entries[i])
		}
	}
	return nil
}

// CBORCodec pairs the deterministic encode options with matching decode
// options so manifests round trip byte-identically.
type CBORCodec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

// NewCBORCodec creates the codec used for every CBOR payload this package
// persists.
func NewCBORCodec() (CBORCodec, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return CBORCodec{}, err
	}
	dec, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		return CBORCodec{}, err
	}
	return CBORCodec{enc: enc, dec: dec}, nil
}

// MarshalCBOR serializes v deterministically.
func (c CBORCodec) MarshalCBOR(v any) ([]byte, error) {
	return c.enc.Marshal(v)
}

// UnmarshalCBOR deserializes data into v.
func (c CBORCodec) UnmarshalCBOR(data []byte, v any) error {
	return c.dec.Unmarshal(data, v)
}
