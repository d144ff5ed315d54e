package spatialindex

import (
	"sync"

	"github.com/WenyinWei/zlayout-sub000/geom"
	"github.com/WenyinWei/zlayout-sub000/internal/diag"
)

// RTreeConfig holds the construction parameters for RTree.
type RTreeConfig struct {
	// MinEntries bounds node fan-out from below. Defaults to 2 if <= 0.
	MinEntries int
	// MaxEntries bounds node fan-out from above. Defaults to 8 if <= 0.
	// Must be >= 2*MinEntries once defaults are applied.
	MaxEntries int
}

func (c RTreeConfig) normalized() RTreeConfig {
	if c.MinEntries <= 0 {
		c.MinEntries = 2
	}
	if c.MaxEntries <= 0 {
		c.MaxEntries = 8
	}
	return c
}

// RTree is a height-balanced bounding-box tree. Each internal node stores
// the union rectangle of its children; leaves store (bounding_rectangle,
// payload) entries directly.
type RTree struct {
	mu     sync.RWMutex
	config RTreeConfig
	root   *rtreeNode
	size   int
}

type rtreeNode struct {
	bounds   geom.Rectangle
	leaf     bool
	entries  []Entry      // populated when leaf
	children []*rtreeNode // populated when internal
	parent   *rtreeNode
}

// NewRTree constructs an empty RTree. MaxEntries must be >= 2*MinEntries
// after defaults are applied — a programming-error precondition.
func NewRTree(config RTreeConfig) *RTree {
	config = config.normalized()
	diag.Require(config.MaxEntries >= 2*config.MinEntries, "spatialindex: rtree requires max_entries >= 2*min_entries")
	return &RTree{
		config: config,
		root:   &rtreeNode{leaf: true},
	}
}

func (t *RTree) Insert(entry Entry) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	leaf := chooseLeaf(t.root, entry.Bounds)
	leaf.entries = append(leaf.entries, entry)
	leaf.bounds = leaf.bounds.Union(entry.Bounds)
	t.size++

	split := (*rtreeNode)(nil)
	if len(leaf.entries) > t.config.MaxEntries {
		split = t.splitLeaf(leaf)
	}
	t.adjustTree(leaf, split)
	return true
}

// chooseLeaf descends from n, at each internal level choosing the child
// whose bounding rectangle requires the least area enlargement to cover
// bounds, ties broken by smaller resulting area.
func chooseLeaf(n *rtreeNode, bounds geom.Rectangle) *rtreeNode {
	for !n.leaf {
		best := n.children[0]
		bestEnlargement := enlargement(best.bounds, bounds)
		bestArea := best.bounds.Area()
		for _, c := range n.children[1:] {
			enl := enlargement(c.bounds, bounds)
			area := c.bounds.Area()
			if enl < bestEnlargement || (enl == bestEnlargement && area < bestArea) {
				best, bestEnlargement, bestArea = c, enl, area
			}
		}
		n = best
	}
	return n
}

func enlargement(bounds, add geom.Rectangle) float64 {
	return bounds.Union(add).Area() - bounds.Area()
}

// splitLeaf splits an overfull leaf into two, returning the new sibling.
// The original node keeps one group in place; the sibling holds the other.
func (t *RTree) splitLeaf(n *rtreeNode) *rtreeNode {
	groupA, groupB := quadraticSplitEntries(n.entries, t.config.MinEntries)
	n.entries = groupA
	n.bounds = unionEntryBounds(groupA)
	sibling := &rtreeNode{leaf: true, entries: groupB, bounds: unionEntryBounds(groupB), parent: n.parent}
	return sibling
}

// splitInternal splits an overfull internal node into two, returning the
// new sibling.
func (t *RTree) splitInternal(n *rtreeNode) *rtreeNode {
	groupA, groupB := quadraticSplitChildren(n.children, t.config.MinEntries)
	n.children = groupA
	n.bounds = unionChildBounds(groupA)
	for _, c := range groupA {
		c.parent = n
	}
	sibling := &rtreeNode{children: groupB, bounds: unionChildBounds(groupB), parent: n.parent}
	for _, c := range groupB {
		c.parent = sibling
	}
	return sibling
}

// adjustTree propagates bounds enlargement (and, if split != nil, the new
// sibling) from leaf up to the root.
func (t *RTree) adjustTree(n, split *rtreeNode) {
	for {
		parent := n.parent
		if parent == nil {
			if split != nil {
				newRoot := &rtreeNode{children: []*rtreeNode{n, split}}
				n.parent, split.parent = newRoot, newRoot
				newRoot.bounds = n.bounds.Union(split.bounds)
				t.root = newRoot
			}
			return
		}
		parent.bounds = unionChildBounds(parent.children)
		if split != nil {
			parent.children = append(parent.children, split)
			split.parent = parent
			if len(parent.children) > t.config.MaxEntries {
				split = t.splitInternal(parent)
			} else {
				split = nil
			}
			parent.bounds = unionChildBounds(parent.children)
		}
		n = parent
	}
}

func unionEntryBounds(entries []Entry) geom.Rectangle {
	if len(entries) == 0 {
		return geom.Rectangle{}
	}
	b := entries[0].Bounds
	for _, e := range entries[1:] {
		b = b.Union(e.Bounds)
	}
	return b
}

func unionChildBounds(children []*rtreeNode) geom.Rectangle {
	if len(children) == 0 {
		return geom.Rectangle{}
	}
	b := children[0].bounds
	for _, c := range children[1:] {
		b = b.Union(c.bounds)
	}
	return b
}

// quadraticSplitEntries implements Guttman's quadratic-cost split
// heuristic: pick the two seeds whose combined bounding box wastes the
// most area, then assign the rest one at a time to whichever group needs
// the smaller enlargement, respecting minEntries for both groups.
func quadraticSplitEntries(entries []Entry, minEntries int) (groupA, groupB []Entry) {
	seedA, seedB := pickSeedsEntries(entries)
	boundsA, boundsB := entries[seedA].Bounds, entries[seedB].Bounds
	groupA = []Entry{entries[seedA]}
	groupB = []Entry{entries[seedB]}

	remaining := make([]Entry, 0, len(entries)-2)
	for i, e := range entries {
		if i != seedA && i != seedB {
			remaining = append(remaining, e)
		}
	}

	for len(remaining) > 0 {
		if len(groupA)+len(remaining) <= minEntries {
			groupA = append(groupA, remaining...)
			break
		}
		if len(groupB)+len(remaining) <= minEntries {
			groupB = append(groupB, remaining...)
			break
		}
		bestIdx, toA := 0, true
		bestDiff := -1.0
		for i, e := range remaining {
			enlA := enlargement(boundsA, e.Bounds)
			enlB := enlargement(boundsB, e.Bounds)
			diff := abs64(enlA - enlB)
			if diff > bestDiff {
				bestDiff, bestIdx, toA = diff, i, enlA < enlB
			}
		}
		e := remaining[bestIdx]
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
		if toA {
			groupA = append(groupA, e)
			boundsA = boundsA.Union(e.Bounds)
		} else {
			groupB = append(groupB, e)
			boundsB = boundsB.Union(e.Bounds)
		}
	}
	return groupA, groupB
}

func pickSeedsEntries(entries []Entry) (int, int) {
	bestI, bestJ := 0, 1
	bestWaste := -1.0
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			u := entries[i].Bounds.Union(entries[j].Bounds)
			waste := u.Area() - entries[i].Bounds.Area() - entries[j].Bounds.Area()
			if waste > bestWaste {
				bestWaste, bestI, bestJ = waste, i, j
			}
		}
	}
	return bestI, bestJ
}

// quadraticSplitChildren is quadraticSplitEntries applied to a node's
// children (split by bounding box, carrying the child pointer along).
func quadraticSplitChildren(children []*rtreeNode, minEntries int) (groupA, groupB []*rtreeNode) {
	seedA, seedB := pickSeedsChildren(children)
	boundsA, boundsB := children[seedA].bounds, children[seedB].bounds
	groupA = []*rtreeNode{children[seedA]}
	groupB = []*rtreeNode{children[seedB]}

	remaining := make([]*rtreeNode, 0, len(children)-2)
	for i, c := range children {
		if i != seedA && i != seedB {
			remaining = append(remaining, c)
		}
	}

	for len(remaining) > 0 {
		if len(groupA)+len(remaining) <= minEntries {
			groupA = append(groupA, remaining...)
			break
		}
		if len(groupB)+len(remaining) <= minEntries {
			groupB = append(groupB, remaining...)
			break
		}
		bestIdx, toA := 0, true
		bestDiff := -1.0
		for i, c := range remaining {
			enlA := enlargement(boundsA, c.bounds)
			enlB := enlargement(boundsB, c.bounds)
			diff := abs64(enlA - enlB)
			if diff > bestDiff {
				bestDiff, bestIdx, toA = diff, i, enlA < enlB
			}
		}
		c := remaining[bestIdx]
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
		if toA {
			groupA = append(groupA, c)
			boundsA = boundsA.Union(c.bounds)
		} else {
			groupB = append(groupB, c)
			boundsB = boundsB.Union(c.bounds)
		}
	}
	return groupA, groupB
}

func pickSeedsChildren(children []*rtreeNode) (int, int) {
	bestI, bestJ := 0, 1
	bestWaste := -1.0
	for i := 0; i < len(children); i++ {
		for j := i + 1; j < len(children); j++ {
			u := children[i].bounds.Union(children[j].bounds)
			waste := u.Area() - children[i].bounds.Area() - children[j].bounds.Area()
			if waste > bestWaste {
				bestWaste, bestI, bestJ = waste, i, j
			}
		}
	}
	return bestI, bestJ
}

func abs64(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func (t *RTree) Remove(entry Entry) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	leaf, idx := findLeafWithPayload(t.root, entry.Payload)
	if leaf == nil {
		return false
	}
	leaf.entries = append(leaf.entries[:idx], leaf.entries[idx+1:]...)
	t.size--
	shrinkAncestors(leaf)
	return true
}

func findLeafWithPayload(n *rtreeNode, payload Payload) (*rtreeNode, int) {
	if n.leaf {
		for i, e := range n.entries {
			if equalPayload(e.Payload, payload) {
				return n, i
			}
		}
		return nil, -1
	}
	for _, c := range n.children {
		if leaf, idx := findLeafWithPayload(c, payload); leaf != nil {
			return leaf, idx
		}
	}
	return nil, -1
}

// shrinkAncestors recomputes bounding rectangles from leaf up to the
// root. Underfull leaves are left as-is; no forced reinsertion.
func shrinkAncestors(n *rtreeNode) {
	if n.leaf {
		n.bounds = unionEntryBounds(n.entries)
	}
	for n.parent != nil {
		n = n.parent
		n.bounds = unionChildBounds(n.children)
	}
}

func (t *RTree) QueryRange(rect geom.Rectangle) []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []Entry
	rtreeCollectRange(t.root, rect, &out)
	return out
}

func rtreeCollectRange(n *rtreeNode, rect geom.Rectangle, out *[]Entry) {
	if n == nil || !n.bounds.Intersects(rect) {
		return
	}
	if n.leaf {
		for _, e := range n.entries {
			if e.Bounds.Intersects(rect) {
				*out = append(*out, e)
			}
		}
		return
	}
	for _, c := range n.children {
		rtreeCollectRange(c, rect, out)
	}
}

func (t *RTree) QueryPoint(p geom.Point) []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []Entry
	rtreeCollectPoint(t.root, p, &out)
	return out
}

func rtreeCollectPoint(n *rtreeNode, p geom.Point, out *[]Entry) {
	if n == nil || !n.bounds.Contains(p) {
		return
	}
	if n.leaf {
		for _, e := range n.entries {
			if e.Bounds.Contains(p) {
				*out = append(*out, e)
			}
		}
		return
	}
	for _, c := range n.children {
		rtreeCollectPoint(c, p, out)
	}
}

func (t *RTree) QueryNearby(entry Entry, distance float64) []Entry {
	return queryNearby(entry, distance, t.QueryRange)
}

func (t *RTree) FindPotentialIntersections() []PotentialPair {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var leaves []*rtreeNode
	collectLeaves(t.root, &leaves)

	var out []PotentialPair
	for i, l := range leaves {
		for a := 0; a < len(l.entries); a++ {
			for b := a + 1; b < len(l.entries); b++ {
				out = append(out, PotentialPair{A: l.entries[a], B: l.entries[b]})
			}
		}
		for j := i + 1; j < len(leaves); j++ {
			other := leaves[j]
			if !l.bounds.Intersects(other.bounds) {
				continue
			}
			for _, a := range l.entries {
				for _, b := range other.entries {
					out = append(out, PotentialPair{A: a, B: b})
				}
			}
		}
	}
	return out
}

func collectLeaves(n *rtreeNode, out *[]*rtreeNode) {
	if n == nil {
		return
	}
	if n.leaf {
		*out = append(*out, n)
		return
	}
	for _, c := range n.children {
		collectLeaves(c, out)
	}
}

func (t *RTree) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.root = &rtreeNode{leaf: true}
	t.size = 0
}

func (t *RTree) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size
}
