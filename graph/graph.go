package graph

import (
	"errors"
	"fmt"

	"github.com/Looking-Fresh-Games/Freshynoid/vmath"
)

var (
	// ErrNegativeWeight rejects edges that would break Dijkstra's invariant
	ErrNegativeWeight = errors.New("graph: edge weight must be non-negative")

	// ErrUnknownNode is returned when an edge references a node that was never added
	ErrUnknownNode = errors.New("graph: unknown node")

	// ErrDuplicateNode is returned when a node ID is added twice
	ErrDuplicateNode = errors.New("graph: duplicate node")
)

// Node is an immutable identity with a world position and an opaque payload
// Owned by the Graph; index entries and solver results reference it
type Node struct {
	ID       int64
	Position vmath.Vec3
	Payload  any
}

// Edge is an unordered node pair with a non-negative traversal weight
type Edge struct {
	A, B   int64
	Weight float64
}

// Neighbor pairs an adjacent node with the connecting edge weight
type Neighbor struct {
	Node   *Node
	Weight float64
}

// Graph is a weighted undirected node/edge graph with adjacency lookup
// Supplied once by the caller and read-only during a solve
type Graph struct {
	nodes    map[int64]*Node
	order    []int64 // insertion order for deterministic iteration
	edges    []Edge
	adjacent map[int64][]Neighbor
}

func New() *Graph {
	return &Graph{
		nodes:    make(map[int64]*Node),
		adjacent: make(map[int64][]Neighbor),
	}
}

// AddNode registers a node; the ID must be unique
func (g *Graph) AddNode(id int64, position vmath.Vec3, payload any) (*Node, error) {
	if _, exists := g.nodes[id]; exists {
		return nil, fmt.Errorf("%w: %d", ErrDuplicateNode, id)
	}
	n := &Node{ID: id, Position: position, Payload: payload}
	g.nodes[id] = n
	g.order = append(g.order, id)
	return n, nil
}

// AddEdge connects two existing nodes in both directions
func (g *Graph) AddEdge(a, b int64, weight float64) error {
	if weight < 0 {
		return fmt.Errorf("%w: %f", ErrNegativeWeight, weight)
	}
	na, ok := g.nodes[a]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownNode, a)
	}
	nb, ok := g.nodes[b]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownNode, b)
	}
	g.edges = append(g.edges, Edge{A: a, B: b, Weight: weight})
	g.adjacent[a] = append(g.adjacent[a], Neighbor{Node: nb, Weight: weight})
	g.adjacent[b] = append(g.adjacent[b], Neighbor{Node: na, Weight: weight})
	return nil
}

// Node returns the node with the given ID
func (g *Graph) Node(id int64) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Neighbors returns the adjacency list for a node, nil when isolated or unknown
func (g *Graph) Neighbors(id int64) []Neighbor {
	return g.adjacent[id]
}

// Edges returns all edges in insertion order
func (g *Graph) Edges() []Edge {
	return g.edges
}

// Len returns the node count
func (g *Graph) Len() int {
	return len(g.nodes)
}
