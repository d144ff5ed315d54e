package spatialindex

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/WenyinWei/zlayout-sub000/geom"
)

func TestZOrderInsertQueryRoundTrip(t *testing.T) {
	z := NewZOrderIndex(geom.NewRectangle(0, 0, 100, 100))
	for i := 0; i < 60; i++ {
		x := float64(i % 10 * 10)
		y := float64(i / 10 * 10)
		ok := z.Insert(Entry{Bounds: geom.NewRectangle(x, y, 1, 1), Payload: i})
		assert.True(t, ok)
	}
	assert.Equal(t, 60, z.Size())
	assert.Len(t, z.QueryRange(geom.NewRectangle(0, 0, 100, 100)), 60)
}

func TestZOrderLazyResortOnQuery(t *testing.T) {
	z := NewZOrderIndex(geom.NewRectangle(0, 0, 100, 100))
	z.Insert(Entry{Bounds: geom.NewRectangle(90, 90, 1, 1), Payload: "z"})
	z.Insert(Entry{Bounds: geom.NewRectangle(1, 1, 1, 1), Payload: "a"})
	assert.True(t, z.dirty)
	_ = z.QueryRange(geom.NewRectangle(0, 0, 100, 100))
	assert.False(t, z.dirty)
}

func TestZOrderQueryRangeFiltersPrecisely(t *testing.T) {
	z := NewZOrderIndex(geom.NewRectangle(0, 0, 100, 100))
	z.Insert(Entry{Bounds: geom.NewRectangle(5, 5, 1, 1), Payload: "in"})
	z.Insert(Entry{Bounds: geom.NewRectangle(80, 80, 1, 1), Payload: "out"})

	results := z.QueryRange(geom.NewRectangle(0, 0, 10, 10))
	assert.Len(t, results, 1)
	assert.Equal(t, "in", results[0].Payload)
}

func TestZOrderQueryPoint(t *testing.T) {
	z := NewZOrderIndex(geom.NewRectangle(0, 0, 100, 100))
	z.Insert(Entry{Bounds: geom.NewRectangle(2, 2, 4, 4), Payload: "box"})
	assert.Len(t, z.QueryPoint(geom.Point{X: 3, Y: 3}), 1)
	assert.Empty(t, z.QueryPoint(geom.Point{X: 50, Y: 50}))
}

func TestZOrderRemove(t *testing.T) {
	z := NewZOrderIndex(geom.NewRectangle(0, 0, 100, 100))
	e := Entry{Bounds: geom.NewRectangle(1, 1, 1, 1), Payload: 7}
	z.Insert(e)
	assert.True(t, z.Remove(e))
	assert.Equal(t, 0, z.Size())
	assert.False(t, z.Remove(e))
}

func TestZOrderFindPotentialIntersections(t *testing.T) {
	z := NewZOrderIndex(geom.NewRectangle(0, 0, 100, 100))
	z.Insert(Entry{Bounds: geom.NewRectangle(0, 0, 5, 5), Payload: 1})
	z.Insert(Entry{Bounds: geom.NewRectangle(3, 3, 5, 5), Payload: 2})
	z.Insert(Entry{Bounds: geom.NewRectangle(50, 50, 1, 1), Payload: 3})

	pairs := z.FindPotentialIntersections()
	assert.Len(t, pairs, 1)
}
