package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/WenyinWei/zlayout-sub000/geom"
)

func bowtie() geom.Polygon {
	// spec scenario 1: self-intersecting bowtie.
	return geom.NewPolygon(1, []geom.Point{{0, 0}, {4, 4}, {4, 0}, {0, 4}})
}

func TestFindIntersectionsBowtie(t *testing.T) {
	recs := FindIntersections([]geom.Polygon{bowtie()}, false)
	assert.Len(t, recs, 1)
	rec := recs[0]
	assert.Equal(t, rec.PolygonA, rec.PolygonB)
	assert.NotEqual(t, rec.EdgeA, rec.EdgeB)
	assert.True(t, rec.Proper)
	assert.InDelta(t, 2.0, rec.Point.X, 1e-9)
	assert.InDelta(t, 2.0, rec.Point.Y, 1e-9)
}

func TestFindIntersectionsLShapeEmpty(t *testing.T) {
	// spec scenario 5.
	p := geom.NewPolygon(1, []geom.Point{
		{0, 0}, {3, 0}, {3, 1}, {1, 1}, {1, 3}, {0, 3},
	})
	assert.Empty(t, FindIntersections([]geom.Polygon{p}, true))
}

func TestFindIntersectionsAdjacentEdgesNotReported(t *testing.T) {
	square := geom.NewPolygon(1, []geom.Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}})
	assert.Empty(t, FindIntersections([]geom.Polygon{square}, true))
}

func TestFindIntersectionsIncludeTouchingSuperset(t *testing.T) {
	// Two squares sharing an edge: touching, not proper.
	a := geom.NewPolygon(1, []geom.Point{{0, 0}, {2, 0}, {2, 2}, {0, 2}})
	b := geom.NewPolygon(2, []geom.Point{{2, 0}, {4, 0}, {4, 2}, {2, 2}})

	withTouching := FindIntersections([]geom.Polygon{a, b}, true)
	withoutTouching := FindIntersections([]geom.Polygon{a, b}, false)
	assert.GreaterOrEqual(t, len(withTouching), len(withoutTouching))
	for _, rec := range withoutTouching {
		assert.True(t, rec.Proper)
	}
}

func TestFindIntersectionsCrossPolygon(t *testing.T) {
	a := geom.NewPolygon(1, []geom.Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}})
	b := geom.NewPolygon(2, []geom.Point{{2, 2}, {6, 2}, {6, 6}, {2, 6}})
	recs := FindIntersections([]geom.Polygon{a, b}, false)
	assert.NotEmpty(t, recs)
	for _, r := range recs {
		assert.NotEqual(t, r.PolygonA, r.PolygonB)
	}
}

func TestSweepLineIntersectionsMatchesIndexPruned(t *testing.T) {
	a := geom.NewPolygon(1, []geom.Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}})
	b := geom.NewPolygon(2, []geom.Point{{2, 2}, {6, 2}, {6, 6}, {2, 6}})
	bow := geom.NewPolygon(3, []geom.Point{{0, 0}, {4, 4}, {4, 0}, {0, 4}})
	polys := []geom.Polygon{a, b, bow}

	indexed := FindIntersections(polys, true)
	swept := SweepLineIntersections(polys, true)
	assert.Equal(t, len(indexed), len(swept))
}
