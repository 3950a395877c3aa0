package encval

import (
	"fmt"

	"go.uber.org/zap"
)

// LayoutEntry describes one registered value in the persisted layout
// schema. The ordered sequence of entries, together with the allocator's
// deterministic placement rule, fully describes the binary format of every
// flag record; see storage.Manifest for the persisted form.
type LayoutEntry struct {
	Name        string `cbor:"name"`
	Bits        uint8  `cbor:"bits"`
	Directional bool   `cbor:"directional"`
}

// Registry owns the single registration pass over a set of encoded values.
// It allocates each value's slots in argument order against its own
// allocator, so independent registries (one per graph, one per test) never
// interfere.
//
// A Registry is immutable once constructed. Registration is the only
// mutating phase of the encval package and must complete before the graph
// is shared with concurrent readers.
type Registry struct {
	alloc  BitAllocator
	values []Value
	byName map[string]Value
}

// NewRegistry registers values in order. Registration order is significant:
// it decides the bit layout and therefore the wire format of stored flag
// records. log may be nil.
func NewRegistry(log *zap.Logger, values ...Value) (*Registry, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Registry{
		values: make([]Value, 0, len(values)),
		byName: make(map[string]Value, len(values)),
	}
	for _, v := range values {
		if _, exists := r.byName[v.Name()]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, v.Name())
		}
		if err := v.Init(&r.alloc); err != nil {
			return nil, err
		}
		r.values = append(r.values, v)
		r.byName[v.Name()] = v
		log.Debug("registered encoded value",
			zap.String("name", v.Name()),
			zap.Uint("bits", v.Bits()),
			zap.Bool("directional", v.Directional()),
		)
	}
	log.Debug("encoded value registry complete",
		zap.Int("values", len(r.values)),
		zap.Int("wordsPerRecord", r.alloc.Words()),
	)
	return r, nil
}

// WordsPerRecord is the fixed number of storage words every edge flag
// record occupies for this registry's layout.
func (r *Registry) WordsPerRecord() int {
	return r.alloc.Words()
}

// Values returns the registered values in registration order.
func (r *Registry) Values() []Value {
	return r.values
}

// ByName returns the registered value with the given name.
func (r *Registry) ByName(name string) (Value, bool) {
	v, ok := r.byName[name]
	return v, ok
}

// Layout returns the ordered layout schema of this registry.
func (r *Registry) Layout() []LayoutEntry {
	entries := make([]LayoutEntry, len(r.values))
	for i, v := range r.values {
		entries[i] = LayoutEntry{
			Name:        v.Name(),
			Bits:        uint8(v.Bits()),
			Directional: v.Directional(),
		}
	}
	return entries
}
