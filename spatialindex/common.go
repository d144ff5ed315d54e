// Package spatialindex provides the three leaf spatial indices (Quadtree,
// RTree, ZOrder) and the Hierarchical index that dispatches among them by
// region density. All four satisfy the Index contract. The hierarchical
// index records a tier tag per region and calls the region's leaf index
// through the Index interface; a region's tier changes whenever its entry
// count crosses a density threshold.
package spatialindex

import "github.com/WenyinWei/zlayout-sub000/geom"

// Payload is an opaque identifier: a polygon identifier or an edge
// identifier. The index never interprets it.
type Payload any

// Entry pairs a bounding rectangle with an opaque payload. The index
// exclusively owns the bounding rectangle it stores; the payload refers to
// geometry owned by the caller.
type Entry struct {
	Bounds  geom.Rectangle
	Payload Payload
}

// equalPayload compares two payloads for equality, used by Remove and by
// the index round-trip property. Payloads are expected to be comparable
// (ints, small structs of comparable fields).
func equalPayload(a, b Payload) bool { return a == b }

// Index is the common capability set shared by Quadtree, RTree, ZOrder,
// and Hierarchical. Queries return no ordering guarantee among entries.
type Index interface {
	// Insert places entry in the index. It returns false (a negative
	// acknowledgement) if entry's bounds do not intersect the index's
	// world rectangle; true otherwise. Never panics on a well-formed
	// Entry.
	Insert(entry Entry) bool

	// Remove deletes the first entry found whose payload equals
	// entry.Payload, by equality of payload identifier. Returns false if
	// no such entry exists.
	Remove(entry Entry) bool

	// QueryRange returns every entry whose bounding rectangle intersects
	// rect.
	QueryRange(rect geom.Rectangle) []Entry

	// QueryPoint returns every entry whose bounding rectangle contains p.
	QueryPoint(p geom.Point) []Entry

	// QueryNearby expands entry's bounds by distance on every side and
	// delegates to QueryRange.
	QueryNearby(entry Entry, distance float64) []Entry

	// FindPotentialIntersections returns a superset of the pairs of
	// entries whose bounding rectangles intersect; callers filter
	// precisely.
	FindPotentialIntersections() []PotentialPair

	// Clear removes every entry.
	Clear()

	// Size returns the number of stored entries.
	Size() int
}

// PotentialPair is a candidate pair of entries whose bounding rectangles
// may intersect, returned by FindPotentialIntersections. It is a superset
// of the truly-intersecting pairs.
type PotentialPair struct {
	A, B Entry
}

// QueryNearby is the shared implementation used by all four index types:
// expand entry's bounds by distance on every side and delegate to the
// given QueryRange function.
func queryNearby(entry Entry, distance float64, queryRange func(geom.Rectangle) []Entry) []Entry {
	return queryRange(entry.Bounds.Expanded(distance))
}

var (
	_ Index = (*Quadtree)(nil)
	_ Index = (*RTree)(nil)
	_ Index = (*ZOrderIndex)(nil)
	_ Index = (*Hierarchical)(nil)
)
