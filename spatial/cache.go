package spatial

import (
	"math"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/paulmach/orb"

	"github.com/trailhead-maps/go-roadgraph/graph"
)

// cacheKey quantizes a coordinate to a ~0.1m grid, so lookups for the same
// physical location share a cache entry regardless of float noise.
type cacheKey struct {
	lon, lat int64
}

func quantize(p orb.Point) cacheKey {
	return cacheKey{
		lon: int64(math.Round(p.Lon() * 1e6)),
		lat: int64(math.Round(p.Lat() * 1e6)),
	}
}

// CachedIndex is a read-through LRU front for an index, for callers such as
// geocoders that resolve the same coordinates repeatedly. The edge filter
// is fixed at construction because cached results must all answer the same
// question. Safe for concurrent queriers: the underlying index is read-only
// and the cache is internally synchronized.
type CachedIndex struct {
	idx    *Index
	filter graph.EdgeFilter
	cache  *lru.Cache[cacheKey, Match]
}

// NewCachedIndex wraps idx with a cache of up to size matches. filter may
// be nil to match any edge.
func NewCachedIndex(idx *Index, filter graph.EdgeFilter, size int) (*CachedIndex, error) {
	cache, err := lru.New[cacheKey, Match](size)
	if err != nil {
		return nil, err
	}
	return &CachedIndex{idx: idx, filter: filter, cache: cache}, nil
}

// FindClosest behaves like Index.FindClosest under the fixed filter, served
// from the cache when the quantized coordinate was resolved before. Misses
// (no candidate at all) are not cached; they are cheap to recompute and
// usually transient while a graph region is still being populated.
func (c *CachedIndex) FindClosest(p orb.Point) (Match, bool) {
	key := quantize(p)
	if m, ok := c.cache.Get(key); ok {
		return m, true
	}
	m, ok := c.idx.FindClosest(p, c.filter)
	if !ok {
		return Match{}, false
	}
	c.cache.Add(key, m)
	return m, true
}

// Len reports the number of cached matches.
func (c *CachedIndex) Len() int {
	return c.cache.Len()
}
