package world

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Looking-Fresh-Games/Freshynoid/navigation"
)

func TestGenerateStartEndConnected(t *testing.T) {
	w := Generate(Config{Width: 21, Height: 21, Seed: 42})

	assert.True(t, w.Walkable(w.Start))
	assert.True(t, w.Walkable(w.End))

	route := w.FindRoute(w.Start, w.End)
	require.NotNil(t, route)
	assert.Equal(t, w.Start, route[0])
	assert.Equal(t, w.End, route[len(route)-1])

	// every step moves one cell orthogonally over open ground
	for i := 1; i < len(route); i++ {
		dx := route[i].X - route[i-1].X
		dy := route[i].Y - route[i-1].Y
		assert.Equal(t, 1, dx*dx+dy*dy)
		assert.True(t, w.Walkable(route[i]))
	}
}

func TestFindRouteBlockedEndpoint(t *testing.T) {
	w := Generate(Config{Width: 11, Height: 11, Seed: 1})
	assert.Nil(t, w.FindRoute(w.Start, Cell{0, 0})) // border is wall
	assert.Nil(t, w.FindRoute(Cell{-1, 0}, w.End))
}

func TestGraphMatchesGrid(t *testing.T) {
	w := Generate(Config{Width: 15, Height: 15, Seed: 7, Braiding: 0.5})
	g, err := w.Graph()
	require.NoError(t, err)

	open := 0
	cols, rows := w.Size()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if w.Walkable(Cell{x, y}) {
				open++
			}
		}
	}
	assert.Equal(t, open, g.Len())

	// the generated corridors must be solvable through the weighted graph
	path, err := navigation.Solve(g, w.NodeID(w.Start), w.NodeID(w.End))
	require.NoError(t, err)
	assert.Equal(t, navigation.SourceFallback, path.Source)
	assert.Greater(t, len(path.Waypoints), 1)
}

func TestPositionCellRoundTrip(t *testing.T) {
	w := Generate(Config{Width: 9, Height: 9, Seed: 3})
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 20; i++ {
		c := w.RandomOpenCell(rng)
		assert.Equal(t, c, w.CellAt(w.Position(c)))
	}
}
