package geom

// CrossingKind classifies the result of SegmentIntersection.
type CrossingKind int

const (
	// NoCrossing means the segments do not meet at all.
	NoCrossing CrossingKind = iota
	// ProperCrossing means the segments cross in both segments' interior:
	// both parametric values lie strictly in (Epsilon, 1-Epsilon).
	ProperCrossing
	// ImproperCrossing means the segments touch at an endpoint, or overlap
	// collinearly. The overlap midpoint is reported as the intersection
	// point in the collinear-overlap case.
	ImproperCrossing
)

// Crossing is the result of SegmentIntersection.
type Crossing struct {
	Kind   CrossingKind
	Point  Point
	T, S   float64 // parametric position of Point along (p1,p2) and (p3,p4)
}

// SegmentIntersection computes how segment (p1,p2) relates to segment
// (p3,p4).
//
// The parametric solve is denominator = (p2-p1) x (p4-p3); if
// |denominator| < Epsilon the segments are parallel (including collinear).
// Collinear overlap is always reported as a single ImproperCrossing at the
// overlap midpoint, never as NoCrossing and never as more than one record
// — per-pair deduplication of overlaps is the caller's responsibility.
func SegmentIntersection(p1, p2, p3, p4 Point) Crossing {
	d1 := p2.Sub(p1)
	d2 := p4.Sub(p3)
	denom := d1.Cross(d2)

	if abs(denom) < Epsilon {
		return parallelCrossing(p1, p2, p3, p4, d1, d2)
	}

	r := p3.Sub(p1)
	t := r.Cross(d2) / denom
	s := r.Cross(d1) / denom

	if t < -Epsilon || t > 1+Epsilon || s < -Epsilon || s > 1+Epsilon {
		return Crossing{Kind: NoCrossing}
	}

	point := p1.Add(d1.Mul(t))
	if t > Epsilon && t < 1-Epsilon && s > Epsilon && s < 1-Epsilon {
		return Crossing{Kind: ProperCrossing, Point: point, T: t, S: s}
	}
	return Crossing{Kind: ImproperCrossing, Point: point, T: clamp01(t), S: clamp01(s)}
}

// parallelCrossing handles the |denominator| < Epsilon case: either the
// segments are parallel and disjoint (NoCrossing) or collinear and
// possibly overlapping (ImproperCrossing at the overlap midpoint).
func parallelCrossing(p1, p2, p3, p4, d1, d2 Point) Crossing {
	// Collinearity test: (p3-p1) must also be parallel to d1.
	r := p3.Sub(p1)
	if abs(r.Cross(d1)) > Epsilon*(d1.Norm()+1) {
		return Crossing{Kind: NoCrossing}
	}

	// Project every endpoint onto the common line using d1 as the axis,
	// then intersect the two 1-D intervals.
	len2 := d1.Dot(d1)
	if len2 < Epsilon*Epsilon {
		// p1 == p2: degenerate edge, defer to point-in-segment test against (p3,p4).
		if pointOnSegment(p1, p3, p4) {
			return Crossing{Kind: ImproperCrossing, Point: p1}
		}
		return Crossing{Kind: NoCrossing}
	}

	ta, tb := 0.0, 1.0
	tc := d1.Dot(p3.Sub(p1)) / len2
	td := d1.Dot(p4.Sub(p1)) / len2
	lo, hi := minmax(tc, td)

	start := maxf(ta, lo)
	end := minf(tb, hi)
	if start > end+Epsilon {
		return Crossing{Kind: NoCrossing}
	}
	mid := (start + end) / 2
	return Crossing{Kind: ImproperCrossing, Point: p1.Add(d1.Mul(mid)), T: clamp01(mid)}
}

// pointOnSegment reports whether p lies on the closed segment (a,b),
// within Epsilon.
func pointOnSegment(p, a, b Point) bool {
	ab := b.Sub(a)
	ap := p.Sub(a)
	if abs(ab.Cross(ap)) > Epsilon*(ab.Norm()+1) {
		return false
	}
	len2 := ab.Dot(ab)
	if len2 < Epsilon*Epsilon {
		return p.AlmostEqual(a)
	}
	t := ab.Dot(ap) / len2
	return t >= -Epsilon && t <= 1+Epsilon
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func minmax(a, b float64) (lo, hi float64) {
	if a <= b {
		return a, b
	}
	return b, a
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// SegmentDistance returns the minimum Euclidean distance between segments
// (a,b) and (c,d), and a witness pair of closest points.
func SegmentDistance(a, b, c, d Point) (dist float64, witness1, witness2 Point) {
	if cr := SegmentIntersection(a, b, c, d); cr.Kind != NoCrossing {
		return 0, cr.Point, cr.Point
	}

	best := -1.0
	var bw1, bw2 Point
	consider := func(p, q1, q2 Point) {
		cp, t := closestPointOnSegment(p, q1, q2)
		d := Distance(p, cp)
		if best < 0 || d < best {
			best = d
			bw1, bw2 = p, cp
		}
		_ = t
	}
	consider(a, c, d)
	consider(b, c, d)
	consider(c, a, b)
	consider(d, a, b)
	return best, bw1, bw2
}

// closestPointOnSegment returns the closest point to p on the closed
// segment (a,b), and its parametric position.
func closestPointOnSegment(p, a, b Point) (Point, float64) {
	ab := b.Sub(a)
	len2 := ab.Dot(ab)
	if len2 < Epsilon*Epsilon {
		return a, 0
	}
	t := ab.Dot(p.Sub(a)) / len2
	t = clamp01(t)
	return a.Add(ab.Mul(t)), t
}
