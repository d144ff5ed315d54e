package spatialindex

import (
	"sync"

	"github.com/WenyinWei/zlayout-sub000/geom"
	"github.com/WenyinWei/zlayout-sub000/internal/diag"
)

// QuadtreeConfig holds the construction parameters for Quadtree.
type QuadtreeConfig struct {
	// Capacity is the number of entries a node holds before it subdivides.
	// Defaults to 10 if <= 0.
	Capacity int
	// MaxDepth bounds subdivision. Defaults to 8 if <= 0.
	MaxDepth int
}

func (c QuadtreeConfig) normalized() QuadtreeConfig {
	if c.Capacity <= 0 {
		c.Capacity = 10
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = 8
	}
	return c
}

// Quadtree is a recursive 4-way spatial partition over a caller-supplied
// world rectangle. An entry straddling multiple children is stored at the
// lowest common ancestor: the smallest node that fully contains it.
type Quadtree struct {
	mu     sync.RWMutex
	world  geom.Rectangle
	config QuadtreeConfig
	root   *quadNode
	size   int

	// CollectStats, when true, causes subdivisions to be logged via
	// diag.Logger. Side-effect only; never changes query results.
	CollectStats bool
}

type quadNode struct {
	bounds   geom.Rectangle
	depth    int
	entries  []Entry
	children [4]*quadNode // nil when the node is a leaf
}

// NewQuadtree constructs a Quadtree over world. world.Width and
// world.Height must be > 0 (a programming-error precondition); this is a
// fatal construction error, not a rejected mutation.
func NewQuadtree(world geom.Rectangle, config QuadtreeConfig) *Quadtree {
	diag.Require(world.Width > 0 && world.Height > 0, "spatialindex: quadtree world must have positive width and height")
	return &Quadtree{
		world:  world,
		config: config.normalized(),
		root:   &quadNode{bounds: world},
	}
}

func (q *Quadtree) Insert(entry Entry) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.world.Intersects(entry.Bounds) {
		return false
	}
	q.insertAt(q.root, entry)
	q.size++
	return true
}

func (q *Quadtree) insertAt(n *quadNode, entry Entry) {
	if n.children[0] != nil {
		if child := fullyContainingChild(n, entry.Bounds); child != nil {
			q.insertAt(child, entry)
			return
		}
		n.entries = append(n.entries, entry)
		return
	}

	n.entries = append(n.entries, entry)
	if len(n.entries) > q.config.Capacity && n.depth < q.config.MaxDepth {
		q.split(n)
	}
}

// fullyContainingChild returns the child of n whose boundary fully
// contains bounds, or nil if no child qualifies (bounds straddles more
// than one child, or n has no children).
func fullyContainingChild(n *quadNode, bounds geom.Rectangle) *quadNode {
	for _, c := range n.children {
		if c == nil {
			continue
		}
		if rectangleFullyContains(c.bounds, bounds) {
			return c
		}
	}
	return nil
}

// rectangleFullyContains reports whether outer fully contains inner
// (every point of inner lies within outer's closed boundary).
func rectangleFullyContains(outer, inner geom.Rectangle) bool {
	return outer.Contains(geom.Point{X: inner.X, Y: inner.Y}) &&
		outer.Contains(geom.Point{X: inner.X + inner.Width, Y: inner.Y + inner.Height})
}

// split subdivides n into four quadrants and redistributes its entries
// downward using the same fully-contains rule as insertion.
func (q *Quadtree) split(n *quadNode) {
	hw, hh := n.bounds.Width/2, n.bounds.Height/2
	x, y := n.bounds.X, n.bounds.Y
	quadrants := [4]geom.Rectangle{
		geom.NewRectangle(x, y, hw, hh),
		geom.NewRectangle(x+hw, y, n.bounds.Width-hw, hh),
		geom.NewRectangle(x, y+hh, hw, n.bounds.Height-hh),
		geom.NewRectangle(x+hw, y+hh, n.bounds.Width-hw, n.bounds.Height-hh),
	}
	for i, qr := range quadrants {
		n.children[i] = &quadNode{bounds: qr, depth: n.depth + 1}
	}

	old := n.entries
	n.entries = nil
	for _, e := range old {
		if child := fullyContainingChild(n, e.Bounds); child != nil {
			q.insertAt(child, e)
		} else {
			n.entries = append(n.entries, e)
		}
	}
	if q.CollectStats {
		diag.Logger.Printf("quadtree: split node at depth %d into 4 children (%d entries redistributed)", n.depth, len(old))
	}
}

func (q *Quadtree) Remove(entry Entry) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if removeFrom(q.root, entry.Payload) {
		q.size--
		return true
	}
	return false
}

func removeFrom(n *quadNode, payload Payload) bool {
	for i, e := range n.entries {
		if equalPayload(e.Payload, payload) {
			n.entries = append(n.entries[:i], n.entries[i+1:]...)
			return true
		}
	}
	for _, c := range n.children {
		if c == nil {
			continue
		}
		if removeFrom(c, payload) {
			return true
		}
	}
	return false
}

func (q *Quadtree) QueryRange(rect geom.Rectangle) []Entry {
	q.mu.RLock()
	defer q.mu.RUnlock()
	var out []Entry
	collectRange(q.root, rect, &out)
	return out
}

func collectRange(n *quadNode, rect geom.Rectangle, out *[]Entry) {
	if n == nil || !n.bounds.Intersects(rect) {
		return
	}
	for _, e := range n.entries {
		if e.Bounds.Intersects(rect) {
			*out = append(*out, e)
		}
	}
	for _, c := range n.children {
		collectRange(c, rect, out)
	}
}

func (q *Quadtree) QueryPoint(p geom.Point) []Entry {
	q.mu.RLock()
	defer q.mu.RUnlock()
	var out []Entry
	collectPoint(q.root, p, &out)
	return out
}

func collectPoint(n *quadNode, p geom.Point, out *[]Entry) {
	if n == nil || !n.bounds.Contains(p) {
		return
	}
	for _, e := range n.entries {
		if e.Bounds.Contains(p) {
			*out = append(*out, e)
		}
	}
	for _, c := range n.children {
		collectPoint(c, p, out)
	}
}

func (q *Quadtree) QueryNearby(entry Entry, distance float64) []Entry {
	return queryNearby(entry, distance, q.QueryRange)
}

func (q *Quadtree) FindPotentialIntersections() []PotentialPair {
	q.mu.RLock()
	defer q.mu.RUnlock()
	var out []PotentialPair
	collectPairs(q.root, &out)
	return out
}

// collectPairs returns every entry in n's subtree, appending to out: all
// unordered pairs within a node's own entries, plus every pair between a
// node's entries and any descendant entry (the straddling-entry case).
func collectPairs(n *quadNode, out *[]PotentialPair) []Entry {
	if n == nil {
		return nil
	}
	for i := 0; i < len(n.entries); i++ {
		for j := i + 1; j < len(n.entries); j++ {
			*out = append(*out, PotentialPair{A: n.entries[i], B: n.entries[j]})
		}
	}
	var descendants []Entry
	for _, c := range n.children {
		childEntries := collectPairs(c, out)
		for _, a := range n.entries {
			for _, b := range childEntries {
				*out = append(*out, PotentialPair{A: a, B: b})
			}
		}
		descendants = append(descendants, childEntries...)
	}
	return append(append([]Entry(nil), n.entries...), descendants...)
}

func (q *Quadtree) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.root = &quadNode{bounds: q.world}
	q.size = 0
}

func (q *Quadtree) Size() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.size
}
