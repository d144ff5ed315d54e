// Package analysis implements the three layout checks built on top of geom
// and spatialindex: sharp interior angles, narrow edge-to-edge spacing, and
// edge intersections (self- and cross-polygon).
package analysis

import (
	"math"

	"github.com/WenyinWei/zlayout-sub000/geom"
)

// SharpAngle records a vertex whose interior angle falls below the
// threshold a caller supplied to FindSharpAngles.
type SharpAngle struct {
	PolygonID int
	VertexIdx int
	Vertex    geom.Point
	AngleDeg  float64
}

// FindSharpAngles reports every vertex of poly whose interior angle is
// strictly below thresholdDeg. Vertices with an undefined angle (a
// degenerate incident edge) never qualify, regardless of threshold.
func FindSharpAngles(poly geom.Polygon, thresholdDeg float64) []SharpAngle {
	var out []SharpAngle
	n := poly.VertexCount()
	for i := 0; i < n; i++ {
		angle := poly.VertexAngle(i)
		if math.IsNaN(angle) {
			continue
		}
		if angle < thresholdDeg {
			out = append(out, SharpAngle{
				PolygonID: poly.ID,
				VertexIdx: i,
				Vertex:    poly.Vertices[i],
				AngleDeg:  angle,
			})
		}
	}
	return out
}

// FindSharpAnglesBatch runs FindSharpAngles over every polygon in polys,
// in order. Grouping the call this way lets a caller amortise a single
// pass over a region's polygons rather than looking each one up
// individually, mirroring how the spatial indices hand back whole result
// batches from one query.
func FindSharpAnglesBatch(polys []geom.Polygon, thresholdDeg float64) []SharpAngle {
	var out []SharpAngle
	for _, p := range polys {
		out = append(out, FindSharpAngles(p, thresholdDeg)...)
	}
	return out
}
