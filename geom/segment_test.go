package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmentIntersectionProperCrossing(t *testing.T) {
	cr := SegmentIntersection(Point{0, 0}, Point{4, 4}, Point{0, 4}, Point{4, 0})
	assert.Equal(t, ProperCrossing, cr.Kind)
	assert.InDelta(t, 2.0, cr.Point.X, 1e-9)
	assert.InDelta(t, 2.0, cr.Point.Y, 1e-9)
}

func TestSegmentIntersectionNoCrossing(t *testing.T) {
	cr := SegmentIntersection(Point{0, 0}, Point{1, 0}, Point{0, 1}, Point{1, 1})
	assert.Equal(t, NoCrossing, cr.Kind)
}

func TestSegmentIntersectionEndpointTouch(t *testing.T) {
	cr := SegmentIntersection(Point{0, 0}, Point{1, 1}, Point{1, 1}, Point{2, 0})
	assert.Equal(t, ImproperCrossing, cr.Kind)
	assert.True(t, Point{1, 1}.AlmostEqual(cr.Point))
}

func TestSegmentIntersectionCollinearOverlap(t *testing.T) {
	cr := SegmentIntersection(Point{0, 0}, Point{4, 0}, Point{2, 0}, Point{6, 0})
	assert.Equal(t, ImproperCrossing, cr.Kind)
	assert.InDelta(t, 3.0, cr.Point.X, 1e-9)
}

func TestSegmentIntersectionParallelDisjoint(t *testing.T) {
	cr := SegmentIntersection(Point{0, 0}, Point{1, 0}, Point{0, 1}, Point{1, 1})
	assert.Equal(t, NoCrossing, cr.Kind)
}

func TestSegmentDistanceZeroWhenCrossing(t *testing.T) {
	d, _, _ := SegmentDistance(Point{0, 0}, Point{4, 4}, Point{0, 4}, Point{4, 0})
	assert.InDelta(t, 0.0, d, 1e-9)
}

func TestSegmentDistanceParallel(t *testing.T) {
	d, _, _ := SegmentDistance(Point{0, 0}, Point{4, 0}, Point{0, 1}, Point{4, 1})
	assert.InDelta(t, 1.0, d, 1e-9)
}
