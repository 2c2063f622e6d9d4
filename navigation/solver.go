package navigation

import (
	"container/heap"
	"errors"
	"fmt"
	"math"

	"github.com/Looking-Fresh-Games/Freshynoid/graph"
)

// ErrNoPath is returned when the target is unreachable from the start
// A partial path is never returned alongside it
var ErrNoPath = errors.New("navigation: no path to target")

// Solve runs Dijkstra over the backup graph and returns the waypoint
// sequence from start to target, inclusive of both endpoints
//
// Minimum selection breaks ties on the lower node ID, so results never
// depend on map iteration order. Reconstruction follows predecessors
// recorded during relaxation rather than walking adjacency-local minima,
// which can diverge from the true shortest path near equal-cost branches
func Solve(g *graph.Graph, start, target int64) (Path, error) {
	startNode, ok := g.Node(start)
	if !ok {
		return Path{}, fmt.Errorf("solve: start %w: %d", graph.ErrUnknownNode, start)
	}
	if _, ok := g.Node(target); !ok {
		return Path{}, fmt.Errorf("solve: target %w: %d", graph.ErrUnknownNode, target)
	}

	if start == target {
		return Path{
			Waypoints: []Waypoint{nodeWaypoint(startNode)},
			Source:    SourceFallback,
		}, nil
	}

	dist := map[int64]float64{start: 0}
	prev := make(map[int64]int64)
	done := make(map[int64]bool)

	open := &solveQueue{}
	heap.Init(open)
	heap.Push(open, &solveItem{id: start, dist: 0})

	for open.Len() > 0 {
		current := heap.Pop(open).(*solveItem)
		if done[current.id] {
			continue
		}
		done[current.id] = true
		if current.id == target {
			break
		}

		for _, nb := range g.Neighbors(current.id) {
			if done[nb.Node.ID] {
				continue
			}
			tentative := current.dist + nb.Weight
			if old, seen := dist[nb.Node.ID]; !seen || tentative < old {
				dist[nb.Node.ID] = tentative
				prev[nb.Node.ID] = current.id
				heap.Push(open, &solveItem{id: nb.Node.ID, dist: tentative})
			}
		}
	}

	cost, reached := dist[target]
	if !reached || !done[target] || math.IsInf(cost, 1) {
		return Path{}, ErrNoPath
	}

	// Walk predecessors back to start, then reverse
	var ids []int64
	for id := target; ; id = prev[id] {
		ids = append(ids, id)
		if id == start {
			break
		}
	}
	waypoints := make([]Waypoint, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		n, _ := g.Node(ids[i])
		waypoints = append(waypoints, nodeWaypoint(n))
	}

	return Path{Waypoints: waypoints, Source: SourceFallback, Cost: cost}, nil
}

func nodeWaypoint(n *graph.Node) Waypoint {
	wp := Waypoint{Position: n.Position, Action: ActionWalk}
	if label, ok := n.Payload.(string); ok {
		wp.Label = label
	}
	return wp
}

// solveItem is one open-set entry; stale entries are skipped via the done set
type solveItem struct {
	id    int64
	dist  float64
	index int
}

type solveQueue []*solveItem

func (q solveQueue) Len() int { return len(q) }

func (q solveQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].id < q[j].id
}

func (q solveQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *solveQueue) Push(x any) {
	item := x.(*solveItem)
	item.index = len(*q)
	*q = append(*q, item)
}

func (q *solveQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*q = old[:n-1]
	return item
}
