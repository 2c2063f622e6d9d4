package spatial

import (
	"math"

	"github.com/Looking-Fresh-Games/Freshynoid/graph"
	"github.com/Looking-Fresh-Games/Freshynoid/vmath"
)

const (
	// DefaultMaxDepth bounds subdivision for degenerate point clusters
	DefaultMaxDepth = 8

	// DefaultLeafCapacity is entries per leaf before subdivision
	DefaultLeafCapacity = 8
)

// Match is one radius-query hit: a graph node and its distance to the query point
type Match struct {
	Node     *graph.Node
	Distance float64
}

type entry struct {
	position vmath.Vec3
	node     *graph.Node
}

// octNode is one octree cell; children are nil while the cell is a leaf
type octNode struct {
	bounds   AABB
	children [8]*octNode
	entries  []entry
	depth    int
}

// Index is a point octree over graph-node positions
// Entries reference nodes, they never own them. The index is rebuilt wholesale
// whenever a graph is bound to a fallback plan; incremental removal is not supported
type Index struct {
	root         *octNode
	maxDepth     int
	leafCapacity int
	count        int

	// Entries outside the root bounds; scanned linearly on query
	outliers []entry
}

// NewIndex creates an index covering the given region
func NewIndex(bounds AABB) *Index {
	return &Index{
		root:         &octNode{bounds: bounds},
		maxDepth:     DefaultMaxDepth,
		leafCapacity: DefaultLeafCapacity,
	}
}

// Insert adds one entry; no deduplication
func (x *Index) Insert(position vmath.Vec3, node *graph.Node) {
	x.count++
	if !x.root.bounds.Contains(position) {
		x.outliers = append(x.outliers, entry{position: position, node: node})
		return
	}
	x.root.insert(entry{position: position, node: node}, x.maxDepth, x.leafCapacity)
}

// Clear drops all entries, keeping the root bounds
// Safe to call repeatedly, including on an empty index
func (x *Index) Clear() {
	x.root = &octNode{bounds: x.root.bounds}
	x.outliers = x.outliers[:0]
	x.count = 0
}

// Len returns the number of stored entries
func (x *Index) Len() int {
	return x.count
}

// Bounds returns the root region
func (x *Index) Bounds() AABB {
	return x.root.bounds
}

// RadiusSearch returns every entry within radius of point, in no particular order
// The result is empty (never nil-with-error) when nothing qualifies
func (x *Index) RadiusSearch(point vmath.Vec3, radius float64) []Match {
	if radius < 0 {
		return nil
	}
	var out []Match
	x.root.radiusSearch(point, radius, radius*radius, &out)
	for _, e := range x.outliers {
		if d2 := vmath.DistanceSq(point, e.position); d2 <= radius*radius {
			out = append(out, Match{Node: e.node, Distance: math.Sqrt(d2)})
		}
	}
	return out
}

// Nearest returns the closest entry within radius
// Ties resolve to the lower node ID so lookups are deterministic
func (x *Index) Nearest(point vmath.Vec3, radius float64) (Match, bool) {
	matches := x.RadiusSearch(point, radius)
	if len(matches) == 0 {
		return Match{}, false
	}
	best := matches[0]
	for _, m := range matches[1:] {
		if m.Distance < best.Distance ||
			(m.Distance == best.Distance && m.Node.ID < best.Node.ID) {
			best = m
		}
	}
	return best, true
}

func (n *octNode) insert(e entry, maxDepth, leafCapacity int) {
	if n.children[0] == nil {
		n.entries = append(n.entries, e)
		if len(n.entries) > leafCapacity && n.depth < maxDepth {
			n.subdivide(maxDepth, leafCapacity)
		}
		return
	}
	n.children[n.octant(e.position)].insert(e, maxDepth, leafCapacity)
}

// subdivide splits a leaf into eight children and redistributes its entries
func (n *octNode) subdivide(maxDepth, leafCapacity int) {
	center := n.bounds.Center()
	for i := 0; i < 8; i++ {
		child := AABB{Min: n.bounds.Min, Max: n.bounds.Max}
		if i&1 != 0 {
			child.Min.X = center.X
		} else {
			child.Max.X = center.X
		}
		if i&2 != 0 {
			child.Min.Y = center.Y
		} else {
			child.Max.Y = center.Y
		}
		if i&4 != 0 {
			child.Min.Z = center.Z
		} else {
			child.Max.Z = center.Z
		}
		n.children[i] = &octNode{bounds: child, depth: n.depth + 1}
	}
	entries := n.entries
	n.entries = nil
	for _, e := range entries {
		n.children[n.octant(e.position)].insert(e, maxDepth, leafCapacity)
	}
}

// octant picks the child cell for a position; boundary points go to the upper cell
func (n *octNode) octant(p vmath.Vec3) int {
	center := n.bounds.Center()
	i := 0
	if p.X >= center.X {
		i |= 1
	}
	if p.Y >= center.Y {
		i |= 2
	}
	if p.Z >= center.Z {
		i |= 4
	}
	return i
}

func (n *octNode) radiusSearch(point vmath.Vec3, radius, radiusSq float64, out *[]Match) {
	if n.bounds.DistanceSq(point) > radiusSq {
		return
	}
	if n.children[0] == nil {
		for _, e := range n.entries {
			if d2 := vmath.DistanceSq(point, e.position); d2 <= radiusSq {
				*out = append(*out, Match{Node: e.node, Distance: math.Sqrt(d2)})
			}
		}
		return
	}
	for _, c := range n.children {
		c.radiusSearch(point, radius, radiusSq, out)
	}
}
