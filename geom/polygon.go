package geom

import "math"

// UndefinedAngle is the sentinel vertex angle for a vertex with an
// incident edge shorter than Epsilon. Callers test for it with
// math.IsNaN; every comparison against it ("< threshold") is false by
// construction, which is exactly the "not sharp" behaviour analyses want.
var UndefinedAngle = math.NaN()

// Orientation is the winding direction of a polygon's vertex sequence.
type Orientation int

const (
	CCW Orientation = iota
	CW
	Degenerate
)

// Polygon is an ordered sequence of >= 3 vertices. The first and last
// vertex are not duplicated; the closing edge (last -> first) is implicit.
// Polygon carries a caller-assigned stable identifier that the kernel
// never reassigns.
type Polygon struct {
	ID       int
	Vertices []Point
}

// NewPolygon constructs a Polygon with the given identifier and vertices.
func NewPolygon(id int, vertices []Point) Polygon {
	return Polygon{ID: id, Vertices: append([]Point(nil), vertices...)}
}

// VertexCount returns the number of vertices.
func (p Polygon) VertexCount() int { return len(p.Vertices) }

// vertex returns vertex i modulo VertexCount, supporting wraparound access.
func (p Polygon) vertex(i int) Point {
	n := len(p.Vertices)
	return p.Vertices[((i%n)+n)%n]
}

// Edges returns the polygon's edges as transient views, including the
// implicit closing edge. Degenerate edges (length < Epsilon) are included
// in the slice; callers that must ignore them (as the analyses do) filter
// via Edge.IsDegenerate.
func (p Polygon) Edges() []Edge {
	n := len(p.Vertices)
	if n < 2 {
		return nil
	}
	edges := make([]Edge, n)
	for i := 0; i < n; i++ {
		edges[i] = Edge{Start: p.vertex(i), End: p.vertex(i + 1), PolygonID: p.ID, Index: i}
	}
	return edges
}

// BoundingBox returns the smallest rectangle containing every vertex.
// Recomputed from the current vertices each call, so it is always
// bit-identical for an unchanged polygon (idempotent).
func (p Polygon) BoundingBox() Rectangle {
	if len(p.Vertices) == 0 {
		return Rectangle{}
	}
	minX, maxX := p.Vertices[0].X, p.Vertices[0].X
	minY, maxY := p.Vertices[0].Y, p.Vertices[0].Y
	for _, v := range p.Vertices[1:] {
		minX = minf(minX, v.X)
		maxX = maxf(maxX, v.X)
		minY = minf(minY, v.Y)
		maxY = maxf(maxY, v.Y)
	}
	return Rectangle{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// signedArea returns the shoelace signed area (positive for CCW, negative
// for CW vertex ordering).
func (p Polygon) signedArea() float64 {
	n := len(p.Vertices)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		a, b := p.vertex(i), p.vertex(i+1)
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// Area returns the polygon's unsigned area via the shoelace formula.
func (p Polygon) Area() float64 {
	return abs(p.signedArea())
}

// Orientation reports the polygon's winding direction. A polygon with
// zero signed area (degenerate, e.g. all vertices collinear) reports
// Degenerate.
func (p Polygon) Orientation() Orientation {
	a := p.signedArea()
	switch {
	case a > Epsilon*Epsilon:
		return CCW
	case a < -Epsilon*Epsilon:
		return CW
	default:
		return Degenerate
	}
}

// IsConvex reports whether all cross products of consecutive edge vectors
// share a sign; zero cross products (collinear consecutive edges) are
// allowed.
func (p Polygon) IsConvex() bool {
	n := len(p.Vertices)
	if n < 3 {
		return false
	}
	sawPositive, sawNegative := false, false
	for i := 0; i < n; i++ {
		a, b, c := p.vertex(i), p.vertex(i+1), p.vertex(i+2)
		cross := b.Sub(a).Cross(c.Sub(b))
		switch {
		case cross > Epsilon*Epsilon:
			sawPositive = true
		case cross < -Epsilon*Epsilon:
			sawNegative = true
		}
		if sawPositive && sawNegative {
			return false
		}
	}
	return true
}

// VertexAngle returns the interior angle at vertex i in degrees, within
// (0, 360). It is computed from the two incident edge vectors using the
// two-argument arctangent on (|cross|, dot) for numerical stability near
// 0 and 180 degrees, then reflected through 360 degrees if the polygon's
// orientation and the vertex's local convexity disagree.
//
// If either incident edge is shorter than Epsilon, VertexAngle returns
// UndefinedAngle.
func (p Polygon) VertexAngle(i int) float64 {
	n := len(p.Vertices)
	if n < 3 {
		return UndefinedAngle
	}
	prev, curr, next := p.vertex(i-1), p.vertex(i), p.vertex(i+1)
	toPrev := prev.Sub(curr)
	toNext := next.Sub(curr)
	if toPrev.Norm() < Epsilon || toNext.Norm() < Epsilon {
		return UndefinedAngle
	}

	cross := toPrev.Cross(toNext)
	dot := toPrev.Dot(toNext)
	angle := math.Atan2(abs(cross), dot) // in [0, pi]
	degrees := angle * 180 / math.Pi

	// The unsigned angle above is the polygon's *interior* angle only when
	// the vertex's local turn direction agrees with the polygon's overall
	// orientation. The local turn uses the same convention as Orientation
	// and IsConvex (incoming edge x outgoing edge), not toPrev x toNext,
	// which points the opposite way.
	edgeIn := curr.Sub(prev)
	edgeOut := next.Sub(curr)
	turnCross := edgeIn.Cross(edgeOut)

	orient := p.Orientation()
	localCCW := turnCross > 0
	reflex := (orient == CCW && !localCCW) || (orient == CW && localCCW)
	if reflex {
		degrees = 360 - degrees
	}
	if degrees <= 0 {
		degrees = Epsilon
	}
	if degrees >= 360 {
		degrees = 360 - Epsilon
	}
	return degrees
}

// Centroid returns the polygon's area-weighted centroid. It returns the
// zero Point for a polygon with fewer than 3 vertices, and the centre of
// the bounding box for a polygon with zero area.
func (p Polygon) Centroid() Point {
	n := len(p.Vertices)
	if n < 3 {
		return Point{}
	}
	a := p.signedArea()
	if abs(a) < Epsilon*Epsilon {
		return p.BoundingBox().Center()
	}
	cx, cy := 0.0, 0.0
	for i := 0; i < n; i++ {
		v0, v1 := p.vertex(i), p.vertex(i+1)
		cross := v0.X*v1.Y - v1.X*v0.Y
		cx += (v0.X + v1.X) * cross
		cy += (v0.Y + v1.Y) * cross
	}
	return Point{cx / (6 * a), cy / (6 * a)}
}

// DistanceTo returns the minimum of all edge-to-edge distances between p
// and other: O(n*m) for n, m edges. Analyses may substitute index-pruned
// variants; this is the kernel's reference implementation.
func (p Polygon) DistanceTo(other Polygon) float64 {
	best := math.Inf(1)
	for _, e1 := range p.Edges() {
		if e1.IsDegenerate() {
			continue
		}
		for _, e2 := range other.Edges() {
			if e2.IsDegenerate() {
				continue
			}
			d, _, _ := SegmentDistance(e1.Start, e1.End, e2.Start, e2.End)
			if d < best {
				best = d
			}
		}
	}
	return best
}
