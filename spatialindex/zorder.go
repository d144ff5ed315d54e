package spatialindex

import (
	"sort"
	"sync"

	"github.com/WenyinWei/zlayout-sub000/geom"
	"github.com/WenyinWei/zlayout-sub000/internal/diag"
)

// ZOrderIndex is a linear index: every entry is projected to a single
// 64-bit Morton code from the interleaved, normalised integer coordinates
// of its bounding rectangle's centre. Entries are kept in a vector sorted
// by Morton code; insertions mark the vector dirty and the next query
// re-sorts it lazily. Best suited to bulk-load-then-query workloads, not
// heavy interleaved updates.
type ZOrderIndex struct {
	mu      sync.RWMutex
	world   geom.Rectangle
	entries []zEntry
	dirty   bool
}

type zEntry struct {
	morton uint64
	entry  Entry
}

// NewZOrderIndex constructs a ZOrderIndex over world. world.Width and
// world.Height must be > 0.
func NewZOrderIndex(world geom.Rectangle) *ZOrderIndex {
	diag.Require(world.Width > 0 && world.Height > 0, "spatialindex: zorder world must have positive width and height")
	return &ZOrderIndex{world: world}
}

// morton interleaves the 32-bit normalised coordinates of p within z's
// world into a single 64-bit code. Bit-interleaving follows the same
// "spread then OR" construction as any Morton-code encoder: each 32-bit
// input has zero bits inserted between its own bits so the two operands
// can be safely ORed without carrying into each other.
func (z *ZOrderIndex) morton(p geom.Point) uint64 {
	nx := normalize(p.X, z.world.X, z.world.Width)
	ny := normalize(p.Y, z.world.Y, z.world.Height)
	return spread(nx) | (spread(ny) << 1)
}

// normalize maps x from [origin, origin+extent] onto the full uint32
// range, clamping out-of-range input instead of wrapping.
func normalize(x, origin, extent float64) uint32 {
	if extent <= 0 {
		return 0
	}
	t := (x - origin) / extent
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return uint32(t * float64(^uint32(0)))
}

// spread inserts a zero bit before each bit of n so that two spread
// 32-bit values can be interleaved by ORing one of them shifted left one.
func spread(n uint32) uint64 {
	x := uint64(n)
	x = (x | (x << 16)) & 0x0000ffff0000ffff
	x = (x | (x << 8)) & 0x00ff00ff00ff00ff
	x = (x | (x << 4)) & 0x0f0f0f0f0f0f0f0f
	x = (x | (x << 2)) & 0x3333333333333333
	x = (x | (x << 1)) & 0x5555555555555555
	return x
}

func (z *ZOrderIndex) Insert(entry Entry) bool {
	z.mu.Lock()
	defer z.mu.Unlock()
	if !z.world.Intersects(entry.Bounds) {
		return false
	}
	z.entries = append(z.entries, zEntry{morton: z.morton(entry.Bounds.Center()), entry: entry})
	z.dirty = true
	return true
}

func (z *ZOrderIndex) Remove(entry Entry) bool {
	z.mu.Lock()
	defer z.mu.Unlock()
	for i, e := range z.entries {
		if equalPayload(e.entry.Payload, entry.Payload) {
			z.entries = append(z.entries[:i], z.entries[i+1:]...)
			return true
		}
	}
	return false
}

// ensureSorted re-sorts the backing vector by Morton code if a mutation
// has occurred since the last sort. Must be called with z.mu held.
func (z *ZOrderIndex) ensureSorted() {
	if !z.dirty {
		return
	}
	sort.Slice(z.entries, func(i, j int) bool { return z.entries[i].morton < z.entries[j].morton })
	z.dirty = false
	diag.Logger.Printf("zorder: resorted %d entries", len(z.entries))
}

func (z *ZOrderIndex) QueryRange(rect geom.Rectangle) []Entry {
	z.mu.Lock()
	z.ensureSorted()
	z.mu.Unlock()

	z.mu.RLock()
	defer z.mu.RUnlock()
	// Entries are keyed by their centre, so the scanned code range covers
	// rect grown by the largest half-extent of any stored entry: an entry
	// that intersects rect has its centre inside that grown rectangle.
	var hw, hh float64
	for _, ze := range z.entries {
		hw = max(hw, ze.entry.Bounds.Width/2)
		hh = max(hh, ze.entry.Bounds.Height/2)
	}
	minCode := z.morton(geom.Point{X: rect.X - hw, Y: rect.Y - hh})
	maxCode := z.morton(geom.Point{X: rect.X + rect.Width + hw, Y: rect.Y + rect.Height + hh})
	if minCode > maxCode {
		minCode, maxCode = maxCode, minCode
	}

	lo := sort.Search(len(z.entries), func(i int) bool { return z.entries[i].morton >= minCode })
	hi := sort.Search(len(z.entries), func(i int) bool { return z.entries[i].morton > maxCode })

	var out []Entry
	for _, ze := range z.entries[lo:hi] {
		if ze.entry.Bounds.Intersects(rect) {
			out = append(out, ze.entry)
		}
	}
	return out
}

func (z *ZOrderIndex) QueryPoint(p geom.Point) []Entry {
	results := z.QueryRange(geom.NewRectangle(p.X, p.Y, 0, 0))
	out := results[:0]
	for _, e := range results {
		if e.Bounds.Contains(p) {
			out = append(out, e)
		}
	}
	return out
}

func (z *ZOrderIndex) QueryNearby(entry Entry, distance float64) []Entry {
	return queryNearby(entry, distance, z.QueryRange)
}

func (z *ZOrderIndex) FindPotentialIntersections() []PotentialPair {
	z.mu.Lock()
	z.ensureSorted()
	snapshot := append([]zEntry(nil), z.entries...)
	z.mu.Unlock()

	var out []PotentialPair
	for i := 0; i < len(snapshot); i++ {
		for j := i + 1; j < len(snapshot); j++ {
			if snapshot[i].entry.Bounds.Intersects(snapshot[j].entry.Bounds) {
				out = append(out, PotentialPair{A: snapshot[i].entry, B: snapshot[j].entry})
			}
		}
	}
	return out
}

func (z *ZOrderIndex) Clear() {
	z.mu.Lock()
	defer z.mu.Unlock()
	z.entries = nil
	z.dirty = false
}

func (z *ZOrderIndex) Size() int {
	z.mu.RLock()
	defer z.mu.RUnlock()
	return len(z.entries)
}
