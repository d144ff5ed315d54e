package analysis

import (
	"github.com/WenyinWei/zlayout-sub000/geom"
	"github.com/WenyinWei/zlayout-sub000/spatialindex"
)

// NarrowSpacing records a pair of edges from two distinct polygons whose
// closest approach falls below the threshold distance passed to
// FindNarrowSpacing.
type NarrowSpacing struct {
	PolygonA, PolygonB int
	EdgeA, EdgeB       int
	Distance           float64
	WitnessA, WitnessB geom.Point
}

// FindNarrowSpacing reports every pair of edges drawn from two distinct
// polygons in polys whose closest approach is strictly below
// thresholdDist. Edge pairs within a single polygon are out of scope:
// only unordered pairs of distinct polygons are tested, each exactly
// once, lower-ID polygon's edges against higher-ID polygon's edges.
//
// An R-tree over each polygon's bounding box, expanded by thresholdDist,
// prunes candidate polygon pairs before the O(n*m) edge sweep runs, the
// same index-then-refine shape the intersection analyser uses.
func FindNarrowSpacing(polys []geom.Polygon, thresholdDist float64) []NarrowSpacing {
	if len(polys) == 0 {
		return nil
	}

	idx := spatialindex.NewRTree(spatialindex.RTreeConfig{})
	for i, p := range polys {
		idx.Insert(spatialindex.Entry{Bounds: p.BoundingBox().Expanded(thresholdDist), Payload: i})
	}

	var out []NarrowSpacing
	seen := make(map[[2]int]bool)
	for i, p := range polys {
		candidates := idx.QueryRange(p.BoundingBox().Expanded(thresholdDist * 1.5))
		for _, c := range candidates {
			j := c.Payload.(int)
			if j <= i {
				continue
			}
			key := [2]int{i, j}
			if seen[key] {
				continue
			}
			seen[key] = true
			a, b := p, polys[j]
			if b.ID < a.ID {
				a, b = b, a
			}
			out = append(out, narrowSpacingBetween(a, b, thresholdDist)...)
		}
	}
	return out
}

func narrowSpacingBetween(a, b geom.Polygon, threshold float64) []NarrowSpacing {
	var out []NarrowSpacing
	edgesA, edgesB := a.Edges(), b.Edges()
	for _, ea := range edgesA {
		if ea.IsDegenerate() {
			continue
		}
		for _, eb := range edgesB {
			if eb.IsDegenerate() {
				continue
			}
			d, w1, w2 := geom.SegmentDistance(ea.Start, ea.End, eb.Start, eb.End)
			if d < threshold {
				out = append(out, NarrowSpacing{
					PolygonA: a.ID, PolygonB: b.ID,
					EdgeA: ea.Index, EdgeB: eb.Index,
					Distance: d, WitnessA: w1, WitnessB: w2,
				})
			}
		}
	}
	return out
}
