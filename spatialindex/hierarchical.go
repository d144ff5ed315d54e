package spatialindex

import (
	"sync"

	"github.com/google/btree"

	"github.com/WenyinWei/zlayout-sub000/geom"
	"github.com/WenyinWei/zlayout-sub000/internal/diag"
)

// tier names the backing leaf index a region currently uses.
type tier int

const (
	tierQuadtree tier = iota
	tierRTree
	tierZOrder
)

func tierForCount(n int) tier {
	switch {
	case n < 100:
		return tierQuadtree
	case n < 1000:
		return tierRTree
	default:
		return tierZOrder
	}
}

// region is one cell of the Hierarchical index's fixed grid. Its backing
// index is rebuilt in place from region.entries whenever the entry count
// crosses a density threshold into a different tier.
type region struct {
	morton  uint64
	bounds  geom.Rectangle
	tier    tier
	idx     Index
	entries []Entry
}

func newIndexForTier(t tier, bounds geom.Rectangle) Index {
	switch t {
	case tierQuadtree:
		return NewQuadtree(bounds, QuadtreeConfig{})
	case tierRTree:
		return NewRTree(RTreeConfig{})
	default:
		return NewZOrderIndex(bounds)
	}
}

func newRegion(morton uint64, bounds geom.Rectangle) *region {
	return &region{morton: morton, bounds: bounds, tier: tierQuadtree, idx: newIndexForTier(tierQuadtree, bounds)}
}

func (r *region) insert(entry Entry) {
	r.entries = append(r.entries, entry)
	if desired := tierForCount(len(r.entries)); desired != r.tier {
		r.rebuild(desired)
		return
	}
	r.idx.Insert(entry)
}

func (r *region) rebuild(t tier) {
	r.tier = t
	r.idx = newIndexForTier(t, r.bounds)
	for _, e := range r.entries {
		r.idx.Insert(e)
	}
	diag.Logger.Printf("hierarchical: region %d promoted/demoted to tier %d (%d entries)", r.morton, t, len(r.entries))
}

func (r *region) remove(payload Payload) bool {
	for i, e := range r.entries {
		if equalPayload(e.Payload, payload) {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			if desired := tierForCount(len(r.entries)); desired != r.tier {
				r.rebuild(desired)
			} else {
				r.idx.Remove(e)
			}
			return true
		}
	}
	return false
}

// Hierarchical partitions world into a fixed gridSize x gridSize grid of
// regions. Each region independently dispatches to a Quadtree, RTree, or
// ZOrder index depending on its own entry count (density), not the whole
// index's. Regions are created lazily and registered in a btree keyed by
// the Morton code of their (row, col) grid coordinate, so range queries can
// enumerate the regions touching a query's footprint via repeated point
// lookups without scanning every cell up front.
//
// An entry is filed under the region owning its bounding box's centre.
// Because a single entry's box may extend past its owning region's cell,
// every query expands its cell search by the largest half-extent seen
// across all inserted entries before enumerating candidate regions, then
// re-tests precisely against each region's own index (or, for a region
// whose cell the query misses, against the region's stored entries).
type Hierarchical struct {
	mu       sync.RWMutex
	world    geom.Rectangle
	gridSize int
	cellW    float64
	cellH    float64
	registry *btree.BTreeG[*region]
	size     int

	maxHalfWidth  float64
	maxHalfHeight float64
}

// NewHierarchical constructs a Hierarchical index over world divided into a
// gridSize x gridSize grid of regions. gridSize < 1 is treated as 1 (a
// single region spanning the whole world).
func NewHierarchical(world geom.Rectangle, gridSize int) *Hierarchical {
	diag.Require(world.Width > 0 && world.Height > 0, "spatialindex: hierarchical world must have positive width and height")
	if gridSize < 1 {
		gridSize = 1
	}
	less := func(a, b *region) bool { return a.morton < b.morton }
	return &Hierarchical{
		world:    world,
		gridSize: gridSize,
		cellW:    world.Width / float64(gridSize),
		cellH:    world.Height / float64(gridSize),
		registry: btree.NewG[*region](32, less),
	}
}

func (h *Hierarchical) cellOf(p geom.Point) (row, col int) {
	col = int((p.X - h.world.X) / h.cellW)
	row = int((p.Y - h.world.Y) / h.cellH)
	return clampInt(row, 0, h.gridSize-1), clampInt(col, 0, h.gridSize-1)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func cellMorton(row, col int) uint64 {
	return spread(uint32(row)) | (spread(uint32(col)) << 1)
}

func (h *Hierarchical) cellBounds(row, col int) geom.Rectangle {
	return geom.NewRectangle(h.world.X+float64(col)*h.cellW, h.world.Y+float64(row)*h.cellH, h.cellW, h.cellH)
}

// regionAt returns the region for (row, col), creating and registering it
// if it does not yet exist.
func (h *Hierarchical) regionAt(row, col int) *region {
	key := cellMorton(row, col)
	probe := &region{morton: key}
	if found, ok := h.registry.Get(probe); ok {
		return found
	}
	r := newRegion(key, h.cellBounds(row, col))
	h.registry.ReplaceOrInsert(r)
	return r
}

func (h *Hierarchical) Insert(entry Entry) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.world.Intersects(entry.Bounds) {
		return false
	}
	row, col := h.cellOf(entry.Bounds.Center())
	h.regionAt(row, col).insert(entry)
	h.size++
	if hw := entry.Bounds.Width / 2; hw > h.maxHalfWidth {
		h.maxHalfWidth = hw
	}
	if hh := entry.Bounds.Height / 2; hh > h.maxHalfHeight {
		h.maxHalfHeight = hh
	}
	return true
}

// Remove matches by payload alone, per the Index contract, so every region
// must be searched: the entry may have been filed under a cell derived from
// bounds the caller no longer has in hand.
func (h *Hierarchical) Remove(entry Entry) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	found := false
	h.registry.Ascend(func(r *region) bool {
		if r.remove(entry.Payload) {
			found = true
			return false
		}
		return true
	})
	if found {
		h.size--
	}
	return found
}

// cellRange returns the inclusive [rowMin,rowMax] x [colMin,colMax] grid
// range that may hold the owning region of any entry whose box intersects
// rect, expanded by the largest half-extent seen so far.
func (h *Hierarchical) cellRange(rect geom.Rectangle) (rowMin, rowMax, colMin, colMax int) {
	minX := rect.X - h.maxHalfWidth
	maxX := rect.X + rect.Width + h.maxHalfWidth
	minY := rect.Y - h.maxHalfHeight
	maxY := rect.Y + rect.Height + h.maxHalfHeight

	colMin = clampInt(int((minX-h.world.X)/h.cellW), 0, h.gridSize-1)
	colMax = clampInt(int((maxX-h.world.X)/h.cellW), 0, h.gridSize-1)
	rowMin = clampInt(int((minY-h.world.Y)/h.cellH), 0, h.gridSize-1)
	rowMax = clampInt(int((maxY-h.world.Y)/h.cellH), 0, h.gridSize-1)
	return
}

func (h *Hierarchical) QueryRange(rect geom.Rectangle) []Entry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	rowMin, rowMax, colMin, colMax := h.cellRange(rect)
	var out []Entry
	for row := rowMin; row <= rowMax; row++ {
		for col := colMin; col <= colMax; col++ {
			probe := &region{morton: cellMorton(row, col)}
			r, ok := h.registry.Get(probe)
			if !ok {
				continue
			}
			if r.bounds.Intersects(rect) {
				out = append(out, r.idx.QueryRange(rect)...)
				continue
			}
			// A region's quadtree prunes at its own cell, so entries that
			// overhang the cell into rect are tested directly here.
			for _, e := range r.entries {
				if e.Bounds.Intersects(rect) {
					out = append(out, e)
				}
			}
		}
	}
	return out
}

func (h *Hierarchical) QueryPoint(p geom.Point) []Entry {
	results := h.QueryRange(geom.NewRectangle(p.X, p.Y, 0, 0))
	out := results[:0]
	for _, e := range results {
		if e.Bounds.Contains(p) {
			out = append(out, e)
		}
	}
	return out
}

func (h *Hierarchical) QueryNearby(entry Entry, distance float64) []Entry {
	return queryNearby(entry, distance, h.QueryRange)
}

// FindPotentialIntersections flattens every region's entries and tests all
// pairs for bounding-box intersection. Region locality narrows where
// entries live but not which pairs can intersect, so this does not attempt
// to prune by region the way the leaf indices prune by subtree.
func (h *Hierarchical) FindPotentialIntersections() []PotentialPair {
	h.mu.RLock()
	var all []Entry
	h.registry.Ascend(func(r *region) bool {
		all = append(all, r.entries...)
		return true
	})
	h.mu.RUnlock()

	var out []PotentialPair
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			if all[i].Bounds.Intersects(all[j].Bounds) {
				out = append(out, PotentialPair{A: all[i], B: all[j]})
			}
		}
	}
	return out
}

func (h *Hierarchical) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	less := func(a, b *region) bool { return a.morton < b.morton }
	h.registry = btree.NewG[*region](32, less)
	h.size = 0
	h.maxHalfWidth = 0
	h.maxHalfHeight = 0
}

func (h *Hierarchical) Size() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.size
}
