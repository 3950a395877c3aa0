// Package geom provides the small amount of spherical geometry the spatial
// index needs on top of orb: point-to-segment snapping, quadrant splitting
// of bounds, and point-to-bound distance for search pruning.
//
// Distances are meters over the WGS84 sphere. Snapping projects locally
// with an equirectangular approximation, which is accurate at the scale of
// individual road segments and keeps the query hot path cheap.
package geom

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Distance returns the great circle distance between a and b in meters.
func Distance(a, b orb.Point) float64 {
	return geo.Distance(a, b)
}

// SnapToSegment returns the point on segment a-b closest to p and its
// distance from p in meters.
func SnapToSegment(p, a, b orb.Point) (orb.Point, float64) {
	// Project into a locally flat frame, with longitude compressed by the
	// cosine of the segment's mean latitude.
	latScale := math.Cos((a.Lat() + b.Lat()) / 2 * math.Pi / 180)
	ax, ay := a.Lon()*latScale, a.Lat()
	bx, by := b.Lon()*latScale, b.Lat()
	px, py := p.Lon()*latScale, p.Lat()

	dx, dy := bx-ax, by-ay
	len2 := dx*dx + dy*dy
	if len2 == 0 {
		return a, geo.Distance(p, a)
	}
	t := ((px-ax)*dx + (py-ay)*dy) / len2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	snapped := orb.Point{
		a.Lon() + t*(b.Lon()-a.Lon()),
		a.Lat() + t*(b.Lat()-a.Lat()),
	}
	return snapped, geo.Distance(p, snapped)
}

// SnapToLine returns the closest point to p over every segment of line,
// with its distance in meters. line must hold at least one point; a single
// point line snaps to that point.
func SnapToLine(p orb.Point, line orb.LineString) (orb.Point, float64) {
	best := line[0]
	bestDist := geo.Distance(p, line[0])
	for i := 1; i < len(line); i++ {
		snapped, d := SnapToSegment(p, line[i-1], line[i])
		if d < bestDist {
			best, bestDist = snapped, d
		}
	}
	return best, bestDist
}

// QuadSplit divides b into its four quadrants around the center, ordered
// SW, SE, NW, NE.
func QuadSplit(b orb.Bound) [4]orb.Bound {
	c := b.Center()
	return [4]orb.Bound{
		{Min: b.Min, Max: c},
		{Min: orb.Point{c.Lon(), b.Min.Lat()}, Max: orb.Point{b.Max.Lon(), c.Lat()}},
		{Min: orb.Point{b.Min.Lon(), c.Lat()}, Max: orb.Point{c.Lon(), b.Max.Lat()}},
		{Min: c, Max: b.Max},
	}
}

// BoundDistance returns the distance in meters from p to the nearest point
// of b, or 0 when b contains p. The spatial index uses it to prune subtrees
// that cannot improve on the best match found so far.
func BoundDistance(p orb.Point, b orb.Bound) float64 {
	lon := math.Min(math.Max(p.Lon(), b.Min.Lon()), b.Max.Lon())
	lat := math.Min(math.Max(p.Lat(), b.Min.Lat()), b.Max.Lat())
	clamped := orb.Point{lon, lat}
	if clamped == p {
		return 0
	}
	return geo.Distance(p, clamped)
}
