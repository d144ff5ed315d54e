package geom

// Edge is a transient (start, end) view derived from two consecutive
// polygon vertices. Edges are not stored independently; their identity is
// (PolygonID, Index) into the polygon that produced them.
type Edge struct {
	Start, End Point
	PolygonID  int
	Index      int
}

// Vector returns the edge's direction vector, End - Start.
func (e Edge) Vector() Point { return e.End.Sub(e.Start) }

// Length returns the edge's Euclidean length.
func (e Edge) Length() float64 { return Distance(e.Start, e.End) }

// IsDegenerate reports whether the edge is shorter than Epsilon.
func (e Edge) IsDegenerate() bool { return e.Length() < Epsilon }

// BoundingBox returns the smallest rectangle containing the edge.
func (e Edge) BoundingBox() Rectangle {
	x := interval{e.Start.X, e.End.X}
	if x.Lo > x.Hi {
		x.Lo, x.Hi = x.Hi, x.Lo
	}
	y := interval{e.Start.Y, e.End.Y}
	if y.Lo > y.Hi {
		y.Lo, y.Hi = y.Hi, y.Lo
	}
	return Rectangle{X: x.Lo, Y: y.Lo, Width: x.length(), Height: y.length()}
}

// SharesVertex reports whether e and other, taken from the same polygon,
// share an endpoint by construction (adjacent edges, or the closing edge
// pairing first and last).
func (e Edge) SharesVertex(other Edge) bool {
	if e.PolygonID != other.PolygonID {
		return false
	}
	return e.Start.AlmostEqual(other.Start) || e.Start.AlmostEqual(other.End) ||
		e.End.AlmostEqual(other.Start) || e.End.AlmostEqual(other.End)
}
