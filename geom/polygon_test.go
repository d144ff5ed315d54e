package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolygonAreaLShape(t *testing.T) {
	// spec scenario 5: L-shaped polygon, area == 5.
	p := NewPolygon(1, []Point{
		{0, 0}, {3, 0}, {3, 1}, {1, 1}, {1, 3}, {0, 3},
	})
	assert.InDelta(t, 5.0, p.Area(), 1e-9)
}

func TestPolygonOrientationCCW(t *testing.T) {
	p := NewPolygon(1, []Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}})
	assert.Equal(t, CCW, p.Orientation())
}

func TestPolygonOrientationCW(t *testing.T) {
	p := NewPolygon(1, []Point{{0, 0}, {0, 4}, {4, 4}, {4, 0}})
	assert.Equal(t, CW, p.Orientation())
}

func TestPolygonVertexAngleSharpTriangle(t *testing.T) {
	// spec scenario 2: sharp-angle triangle (5,5),(15,5.1),(6,8), threshold 45.
	p := NewPolygon(1, []Point{{5, 5}, {15, 5.1}, {6, 8}})
	angleB := p.VertexAngle(1)
	assert.Less(t, angleB, 45.0, "vertex B's interior angle must be sharp")
	assert.GreaterOrEqual(t, p.VertexAngle(0), 45.0)
	assert.GreaterOrEqual(t, p.VertexAngle(2), 45.0)
}

func TestPolygonVertexAngleSumIsInteriorAngleSum(t *testing.T) {
	p := NewPolygon(1, []Point{{5, 5}, {15, 5.1}, {6, 8}})
	sum := p.VertexAngle(0) + p.VertexAngle(1) + p.VertexAngle(2)
	assert.InDelta(t, 180.0, sum, 1e-6)
}

func TestPolygonVertexAngleSquareIsNinety(t *testing.T) {
	p := NewPolygon(1, []Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}})
	for i := 0; i < 4; i++ {
		assert.InDelta(t, 90.0, p.VertexAngle(i), 1e-9)
	}
}

func TestPolygonVertexAngleUndefinedOnDegenerateEdge(t *testing.T) {
	p := NewPolygon(1, []Point{{0, 0}, {0, 0}, {4, 4}})
	assert.True(t, math.IsNaN(p.VertexAngle(0)))
}

func TestPolygonLShapeNotSharp(t *testing.T) {
	// spec scenario 5: sharp-angle analyser with theta=45 returns empty.
	p := NewPolygon(1, []Point{
		{0, 0}, {3, 0}, {3, 1}, {1, 1}, {1, 3}, {0, 3},
	})
	for i := 0; i < p.VertexCount(); i++ {
		assert.GreaterOrEqual(t, p.VertexAngle(i), 45.0)
	}
}

func TestPolygonBoundingBoxIdempotent(t *testing.T) {
	p := NewPolygon(1, []Point{{1, 1}, {5, 1}, {5, 5}, {1, 5}})
	bb1 := p.BoundingBox()
	bb2 := p.BoundingBox()
	assert.Equal(t, bb1, bb2)
}

func TestPolygonIsConvex(t *testing.T) {
	square := NewPolygon(1, []Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}})
	assert.True(t, square.IsConvex())

	lshape := NewPolygon(2, []Point{
		{0, 0}, {3, 0}, {3, 1}, {1, 1}, {1, 3}, {0, 3},
	})
	assert.False(t, lshape.IsConvex())
}

func TestPolygonDistanceToDisjoint(t *testing.T) {
	a := NewPolygon(1, []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
	b := NewPolygon(2, []Point{{5, 0}, {6, 0}, {6, 1}, {5, 1}})
	assert.InDelta(t, 4.0, a.DistanceTo(b), 1e-9)
}
