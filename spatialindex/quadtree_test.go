package spatialindex

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/WenyinWei/zlayout-sub000/geom"
)

func TestQuadtreeInsertRejectsOutsideWorld(t *testing.T) {
	q := NewQuadtree(geom.NewRectangle(0, 0, 10, 10), QuadtreeConfig{})
	ok := q.Insert(Entry{Bounds: geom.NewRectangle(20, 20, 1, 1), Payload: 1})
	assert.False(t, ok)
	assert.Equal(t, 0, q.Size())
}

func TestQuadtreeInsertQueryRoundTrip(t *testing.T) {
	q := NewQuadtree(geom.NewRectangle(0, 0, 100, 100), QuadtreeConfig{Capacity: 4, MaxDepth: 6})
	for i := 0; i < 50; i++ {
		x := float64(i % 10 * 10)
		y := float64(i / 10 * 10)
		ok := q.Insert(Entry{Bounds: geom.NewRectangle(x, y, 1, 1), Payload: i})
		assert.True(t, ok)
	}
	assert.Equal(t, 50, q.Size())

	results := q.QueryRange(geom.NewRectangle(0, 0, 100, 100))
	assert.Len(t, results, 50)
}

func TestQuadtreeRemove(t *testing.T) {
	q := NewQuadtree(geom.NewRectangle(0, 0, 10, 10), QuadtreeConfig{})
	e := Entry{Bounds: geom.NewRectangle(1, 1, 1, 1), Payload: "a"}
	q.Insert(e)
	assert.True(t, q.Remove(e))
	assert.Equal(t, 0, q.Size())
	assert.False(t, q.Remove(e))
}

func TestQuadtreeQueryPoint(t *testing.T) {
	q := NewQuadtree(geom.NewRectangle(0, 0, 10, 10), QuadtreeConfig{})
	q.Insert(Entry{Bounds: geom.NewRectangle(2, 2, 4, 4), Payload: 1})
	found := q.QueryPoint(geom.Point{X: 3, Y: 3})
	assert.Len(t, found, 1)
	assert.Empty(t, q.QueryPoint(geom.Point{X: 9, Y: 9}))
}

func TestQuadtreeFindPotentialIntersectionsStraddling(t *testing.T) {
	q := NewQuadtree(geom.NewRectangle(0, 0, 16, 16), QuadtreeConfig{Capacity: 1, MaxDepth: 4})
	big := Entry{Bounds: geom.NewRectangle(0, 0, 16, 16), Payload: "big"}
	small := Entry{Bounds: geom.NewRectangle(1, 1, 1, 1), Payload: "small"}
	q.Insert(big)
	q.Insert(small)
	pairs := q.FindPotentialIntersections()
	assert.NotEmpty(t, pairs)
}

func TestQuadtreeClear(t *testing.T) {
	q := NewQuadtree(geom.NewRectangle(0, 0, 10, 10), QuadtreeConfig{})
	q.Insert(Entry{Bounds: geom.NewRectangle(1, 1, 1, 1), Payload: 1})
	q.Clear()
	assert.Equal(t, 0, q.Size())
	assert.Empty(t, q.QueryRange(geom.NewRectangle(0, 0, 10, 10)))
}
