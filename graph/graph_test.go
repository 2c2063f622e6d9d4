package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Looking-Fresh-Games/Freshynoid/vmath"
)

func TestAddNodeDuplicate(t *testing.T) {
	g := New()

	_, err := g.AddNode(1, vmath.Vec3{}, nil)
	require.NoError(t, err)

	_, err = g.AddNode(1, vmath.Vec3{X: 5}, nil)
	assert.ErrorIs(t, err, ErrDuplicateNode)
	assert.Equal(t, 1, g.Len())
}

func TestAddEdgeValidation(t *testing.T) {
	g := New()
	_, _ = g.AddNode(1, vmath.Vec3{}, nil)
	_, _ = g.AddNode(2, vmath.Vec3{X: 10}, nil)

	assert.ErrorIs(t, g.AddEdge(1, 2, -1), ErrNegativeWeight)
	assert.ErrorIs(t, g.AddEdge(1, 99, 5), ErrUnknownNode)
	assert.NoError(t, g.AddEdge(1, 2, 5))
}

func TestEdgeIsBidirectional(t *testing.T) {
	g := New()
	_, _ = g.AddNode(1, vmath.Vec3{}, nil)
	_, _ = g.AddNode(2, vmath.Vec3{X: 10}, nil)
	require.NoError(t, g.AddEdge(1, 2, 7))

	n1 := g.Neighbors(1)
	n2 := g.Neighbors(2)
	require.Len(t, n1, 1)
	require.Len(t, n2, 1)
	assert.Equal(t, int64(2), n1[0].Node.ID)
	assert.Equal(t, int64(1), n2[0].Node.ID)
	assert.Equal(t, 7.0, n1[0].Weight)
}

func TestNodesInsertionOrder(t *testing.T) {
	g := New()
	for _, id := range []int64{5, 1, 9, 3} {
		_, err := g.AddNode(id, vmath.Vec3{X: float64(id)}, nil)
		require.NoError(t, err)
	}

	var got []int64
	for _, n := range g.Nodes() {
		got = append(got, n.ID)
	}
	assert.Equal(t, []int64{5, 1, 9, 3}, got)
}

func TestZeroWeightEdgeAllowed(t *testing.T) {
	g := New()
	_, _ = g.AddNode(1, vmath.Vec3{}, nil)
	_, _ = g.AddNode(2, vmath.Vec3{X: 1}, nil)
	assert.NoError(t, g.AddEdge(1, 2, 0))
}
