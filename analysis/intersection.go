package analysis

import (
	"sort"

	"github.com/emirpasic/gods/trees/redblacktree"

	"github.com/WenyinWei/zlayout-sub000/geom"
	"github.com/WenyinWei/zlayout-sub000/spatialindex"
)

// IntersectionRecord is one reported crossing between two edges, possibly
// belonging to the same polygon (a self-intersection).
type IntersectionRecord struct {
	Point              geom.Point
	PolygonA, EdgeA    int
	PolygonB, EdgeB    int
	Proper             bool
}

// edgeLess gives edges a total order by (PolygonID, Index), used both to
// report each unordered pair exactly once and as the sweep-line tree's
// tie-break.
func edgeLess(a, b geom.Edge) bool {
	if a.PolygonID != b.PolygonID {
		return a.PolygonID < b.PolygonID
	}
	return a.Index < b.Index
}

// FindIntersections reports every proper or (if includeTouching) improper
// crossing among the edges of polys, including self-intersections within
// a single polygon. Edges sharing a vertex are never reported: adjacency
// is structural, not a violation.
//
// An R-tree over every non-degenerate edge's bounding box prunes candidate
// pairs; each edge queries its own box and only pairs where edgeLess holds
// are tested, so every unordered pair is examined exactly once.
func FindIntersections(polys []geom.Polygon, includeTouching bool) []IntersectionRecord {
	idx := spatialindex.NewRTree(spatialindex.RTreeConfig{})
	var edges []geom.Edge
	for _, p := range polys {
		for _, e := range p.Edges() {
			if e.IsDegenerate() {
				continue
			}
			edges = append(edges, e)
			idx.Insert(spatialindex.Entry{Bounds: e.BoundingBox(), Payload: e})
		}
	}

	var out []IntersectionRecord
	for _, e := range edges {
		for _, cand := range idx.QueryRange(e.BoundingBox()) {
			other := cand.Payload.(geom.Edge)
			if !edgeLess(e, other) {
				continue
			}
			if e.SharesVertex(other) {
				continue
			}
			if rec, ok := testCrossing(e, other, includeTouching); ok {
				out = append(out, rec)
			}
		}
	}
	return out
}

func testCrossing(e, other geom.Edge, includeTouching bool) (IntersectionRecord, bool) {
	cr := geom.SegmentIntersection(e.Start, e.End, other.Start, other.End)
	if cr.Kind == geom.NoCrossing {
		return IntersectionRecord{}, false
	}
	proper := cr.Kind == geom.ProperCrossing
	if !proper && !includeTouching {
		return IntersectionRecord{}, false
	}
	return IntersectionRecord{
		Point:     cr.Point,
		PolygonA:  e.PolygonID,
		EdgeA:     e.Index,
		PolygonB:  other.PolygonID,
		EdgeB:     other.Index,
		Proper:    proper,
	}, true
}

// sweepEvent marks an edge entering or leaving the active set at x.
type sweepEvent struct {
	x       float64
	isStart bool
	edge    geom.Edge
}

// yAtX returns edge's y coordinate at the vertical line x = x, by linear
// interpolation. Near-vertical edges (dx < Epsilon) report their lower
// endpoint's y, since a vertical edge's "y at x" is the whole segment.
func yAtX(edge geom.Edge, x float64) float64 {
	dx := edge.End.X - edge.Start.X
	if dx < geom.Epsilon && dx > -geom.Epsilon {
		if edge.Start.Y < edge.End.Y {
			return edge.Start.Y
		}
		return edge.End.Y
	}
	t := (x - edge.Start.X) / dx
	return edge.Start.Y + t*(edge.End.Y-edge.Start.Y)
}

// SweepLineIntersections is the O((m+k) log m) alternative to
// FindIntersections. It sweeps a vertical line left to right over every
// edge's x-span, keeping the edges currently crossed by the sweep line in
// a redblacktree ordered by each edge's y value at the sweep line's
// current position. Because that ordering changes as the sweep advances,
// the tree's comparator recomputes both edges' y-at-x against a shared
// sweep position on every call rather than using a fixed key.
//
// Only pairs that become adjacent in the active set are tested, which is
// sufficient to find every crossing: two segments cannot cross without
// first becoming neighbours in y-order at some sweep position.
func SweepLineIntersections(polys []geom.Polygon, includeTouching bool) []IntersectionRecord {
	var events []sweepEvent
	for _, p := range polys {
		for _, e := range p.Edges() {
			if e.IsDegenerate() {
				continue
			}
			lo, hi := e.Start.X, e.End.X
			if lo > hi {
				lo, hi = hi, lo
			}
			events = append(events, sweepEvent{x: lo, isStart: true, edge: e})
			events = append(events, sweepEvent{x: hi, isStart: false, edge: e})
		}
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].x != events[j].x {
			return events[i].x < events[j].x
		}
		// Process arrivals before departures at a shared x so a segment
		// that starts exactly where another ends is still compared.
		return events[i].isStart && !events[j].isStart
	})

	currentX := new(float64)
	tree := redblacktree.NewWith(func(a, b interface{}) int {
		ea, eb := a.(geom.Edge), b.(geom.Edge)
		ya, yb := yAtX(ea, *currentX), yAtX(eb, *currentX)
		switch {
		case ya < yb-geom.Epsilon:
			return -1
		case ya > yb+geom.Epsilon:
			return 1
		case edgeLess(ea, eb):
			return -1
		case edgeLess(eb, ea):
			return 1
		default:
			return 0
		}
	})

	type pairKey struct{ pa, ea, pb, eb int }
	seen := make(map[pairKey]bool)
	var out []IntersectionRecord
	emit := func(a, b geom.Edge) {
		if a.SharesVertex(b) {
			return
		}
		rec, ok := testCrossing(a, b, includeTouching)
		if !ok {
			return
		}
		key := pairKey{rec.PolygonA, rec.EdgeA, rec.PolygonB, rec.EdgeB}
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, rec)
	}

	for _, ev := range events {
		*currentX = ev.x
		if ev.isStart {
			tree.Put(ev.edge, struct{}{})
			pred, succ, ok := neighbors(tree, ev.edge)
			if ok {
				if pred != nil {
					emit(*pred, ev.edge)
				}
				if succ != nil {
					emit(ev.edge, *succ)
				}
			}
		} else {
			pred, succ, _ := neighbors(tree, ev.edge)
			tree.Remove(ev.edge)
			if pred != nil && succ != nil {
				emit(*pred, *succ)
			}
		}
	}
	return out
}

// neighbors locates key's position among the tree's ordered keys and
// returns the entries immediately before and after it, if any. ok is
// false if key itself is no longer present.
func neighbors(tree *redblacktree.Tree, key geom.Edge) (pred, succ *geom.Edge, ok bool) {
	keys := tree.Keys()
	for i, k := range keys {
		e := k.(geom.Edge)
		if e == key {
			if i > 0 {
				p := keys[i-1].(geom.Edge)
				pred = &p
			}
			if i < len(keys)-1 {
				s := keys[i+1].(geom.Edge)
				succ = &s
			}
			return pred, succ, true
		}
	}
	return nil, nil, false
}
