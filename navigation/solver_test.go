package navigation

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Looking-Fresh-Games/Freshynoid/graph"
	"github.com/Looking-Fresh-Games/Freshynoid/vmath"
)

func lineGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	_, err := g.AddNode(1, vmath.Vec3{X: 0}, "A")
	require.NoError(t, err)
	_, err = g.AddNode(2, vmath.Vec3{X: 5}, "B")
	require.NoError(t, err)
	_, err = g.AddNode(3, vmath.Vec3{X: 10}, "C")
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(1, 2, 5))
	require.NoError(t, g.AddEdge(2, 3, 5))
	require.NoError(t, g.AddEdge(1, 3, 20))
	return g
}

func TestSolvePrefersCheaperDetour(t *testing.T) {
	g := lineGraph(t)

	path, err := Solve(g, 1, 3)
	require.NoError(t, err)

	require.Len(t, path.Waypoints, 3)
	assert.Equal(t, "A", path.Waypoints[0].Label)
	assert.Equal(t, "B", path.Waypoints[1].Label)
	assert.Equal(t, "C", path.Waypoints[2].Label)
	assert.Equal(t, 10.0, path.Cost)
	assert.Equal(t, SourceFallback, path.Source)
}

func TestSolveStartEqualsTarget(t *testing.T) {
	g := lineGraph(t)

	path, err := Solve(g, 2, 2)
	require.NoError(t, err)

	require.Len(t, path.Waypoints, 1)
	assert.Equal(t, vmath.Vec3{X: 5}, path.Waypoints[0].Position)
	assert.Equal(t, 0.0, path.Cost)
}

func TestSolveDisconnectedTarget(t *testing.T) {
	g := graph.New()
	_, _ = g.AddNode(1, vmath.Vec3{}, nil)
	_, _ = g.AddNode(2, vmath.Vec3{X: 5}, nil)
	_, _ = g.AddNode(3, vmath.Vec3{X: 100}, nil) // island
	require.NoError(t, g.AddEdge(1, 2, 5))

	path, err := Solve(g, 1, 3)
	assert.ErrorIs(t, err, ErrNoPath)
	assert.Empty(t, path.Waypoints) // never a partial path
}

func TestSolveUnknownEndpoints(t *testing.T) {
	g := lineGraph(t)

	_, err := Solve(g, 99, 1)
	assert.ErrorIs(t, err, graph.ErrUnknownNode)

	_, err = Solve(g, 1, 99)
	assert.ErrorIs(t, err, graph.ErrUnknownNode)
}

func TestSolveDeterministicTieBreak(t *testing.T) {
	// Two equal-cost routes 1→2→4 and 1→3→4; selection must not depend
	// on map iteration order. Lower IDs win at every tie
	build := func(edgeOrder [][3]float64) *graph.Graph {
		g := graph.New()
		for id := int64(1); id <= 4; id++ {
			_, _ = g.AddNode(id, vmath.Vec3{X: float64(id)}, nil)
		}
		for _, e := range edgeOrder {
			require.NoError(t, g.AddEdge(int64(e[0]), int64(e[1]), e[2]))
		}
		return g
	}

	edges := [][3]float64{{1, 2, 1}, {1, 3, 1}, {2, 4, 1}, {3, 4, 1}}
	for trial := 0; trial < 10; trial++ {
		g := build(edges)
		path, err := Solve(g, 1, 4)
		require.NoError(t, err)
		require.Len(t, path.Waypoints, 3)
		assert.Equal(t, vmath.Vec3{X: 2}, path.Waypoints[1].Position, "must route via node 2")
		assert.Equal(t, 2.0, path.Cost)
	}
}

// bruteForceCost enumerates every simple path and returns the minimum cost
func bruteForceCost(g *graph.Graph, start, target int64) float64 {
	best := math.Inf(1)
	visited := map[int64]bool{start: true}

	var dfs func(id int64, cost float64)
	dfs = func(id int64, cost float64) {
		if id == target {
			if cost < best {
				best = cost
			}
			return
		}
		for _, nb := range g.Neighbors(id) {
			if visited[nb.Node.ID] {
				continue
			}
			visited[nb.Node.ID] = true
			dfs(nb.Node.ID, cost+nb.Weight)
			visited[nb.Node.ID] = false
		}
	}
	dfs(start, 0)
	return best
}

// Property: solver cost equals exhaustive enumeration on small random graphs
func TestSolveMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 50; trial++ {
		n := 3 + rng.Intn(6) // up to 8 nodes
		g := graph.New()
		for id := int64(0); id < int64(n); id++ {
			_, _ = g.AddNode(id, vmath.Vec3{X: rng.Float64() * 100}, nil)
		}
		for a := int64(0); a < int64(n); a++ {
			for b := a + 1; b < int64(n); b++ {
				if rng.Float64() < 0.5 {
					require.NoError(t, g.AddEdge(a, b, float64(rng.Intn(20))))
				}
			}
		}

		for a := int64(0); a < int64(n); a++ {
			for b := int64(0); b < int64(n); b++ {
				want := bruteForceCost(g, a, b)
				path, err := Solve(g, a, b)
				if math.IsInf(want, 1) {
					assert.ErrorIs(t, err, ErrNoPath, "trial %d %d→%d", trial, a, b)
					continue
				}
				require.NoError(t, err, "trial %d %d→%d", trial, a, b)
				assert.Equal(t, want, path.Cost, "trial %d %d→%d", trial, a, b)
			}
		}
	}
}
