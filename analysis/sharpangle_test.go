package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/WenyinWei/zlayout-sub000/geom"
)

func TestFindSharpAnglesTriangle(t *testing.T) {
	// spec scenario 2.
	p := geom.NewPolygon(1, []geom.Point{{5, 5}, {15, 5.1}, {6, 8}})
	sharp := FindSharpAngles(p, 45)
	assert.Len(t, sharp, 1)
	assert.Equal(t, 1, sharp[0].VertexIdx)
}

func TestFindSharpAnglesLShapeEmpty(t *testing.T) {
	// spec scenario 5.
	p := geom.NewPolygon(1, []geom.Point{
		{0, 0}, {3, 0}, {3, 1}, {1, 1}, {1, 3}, {0, 3},
	})
	assert.Empty(t, FindSharpAngles(p, 45))
}

func TestFindSharpAnglesBatch(t *testing.T) {
	sharpTriangle := geom.NewPolygon(1, []geom.Point{{5, 5}, {15, 5.1}, {6, 8}})
	square := geom.NewPolygon(2, []geom.Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}})
	found := FindSharpAnglesBatch([]geom.Polygon{sharpTriangle, square}, 45)
	assert.Len(t, found, 1)
	assert.Equal(t, 1, found[0].PolygonID)
}
