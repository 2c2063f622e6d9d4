// Package world generates grid worlds for the navigation demo and binds
// them to nav graphs
package world

import (
	"math/rand"
	"time"

	"github.com/Looking-Fresh-Games/Freshynoid/graph"
	"github.com/Looking-Fresh-Games/Freshynoid/vmath"
)

// Cell occupancy
const (
	Blocked = true
	Open    = false
)

// CellSize is the world-unit width of one grid cell
const CellSize = 4.0

type Cell struct {
	X, Y int
}

type Config struct {
	Width, Height int

	// Braiding: 0.0 (tree, single route everywhere) to 1.0 (no dead ends).
	// Higher values add alternate routes for the planner to find.
	Braiding float64

	Seed int64 // 0 seeds from the wall clock
}

// World is a generated obstacle grid with spawn and goal cells
type World struct {
	Grid       [][]bool
	Start, End Cell
}

// Generate creates a stochastic obstacle course: a recursive-backtracker
// corridor layout with optional braiding for route diversity
func Generate(cfg Config) *World {
	rows := ensureOdd(cfg.Height)
	cols := ensureOdd(cfg.Width)

	grid := make([][]bool, rows)
	for i := range grid {
		grid[i] = make([]bool, cols)
		for j := range grid[i] {
			grid[i][j] = Blocked
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	start := Cell{1, 1}
	end := Cell{cols - 2, rows - 2}

	carveCorridors(grid, start, rng)
	if cfg.Braiding > 0 {
		braid(grid, cfg.Braiding, rng)
	}
	grid[start.Y][start.X] = Open
	grid[end.Y][end.X] = Open

	return &World{Grid: grid, Start: start, End: end}
}

// Size returns columns, rows
func (w *World) Size() (int, int) {
	if len(w.Grid) == 0 {
		return 0, 0
	}
	return len(w.Grid[0]), len(w.Grid)
}

// Walkable reports whether the cell is inside the grid and open
func (w *World) Walkable(c Cell) bool {
	cols, rows := w.Size()
	return c.X >= 0 && c.X < cols && c.Y >= 0 && c.Y < rows && w.Grid[c.Y][c.X] == Open
}

// Position maps a cell to its world-space center on the ground plane
func (w *World) Position(c Cell) vmath.Vec3 {
	return vmath.Vec3{
		X: (float64(c.X) + 0.5) * CellSize,
		Z: (float64(c.Y) + 0.5) * CellSize,
	}
}

// CellAt maps a world position back to its containing cell
func (w *World) CellAt(p vmath.Vec3) Cell {
	return Cell{X: int(p.X / CellSize), Y: int(p.Z / CellSize)}
}

// NodeID gives a cell a stable graph identity
func (w *World) NodeID(c Cell) int64 {
	cols, _ := w.Size()
	return int64(c.Y*cols + c.X)
}

// Graph builds the backup nav graph: one node per open cell, unit-weight
// edges between orthogonally adjacent open cells
func (w *World) Graph() (*graph.Graph, error) {
	g := graph.New()
	cols, rows := w.Size()

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c := Cell{x, y}
			if !w.Walkable(c) {
				continue
			}
			if _, err := g.AddNode(w.NodeID(c), w.Position(c), c); err != nil {
				return nil, err
			}
		}
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c := Cell{x, y}
			if !w.Walkable(c) {
				continue
			}
			for _, n := range []Cell{{x + 1, y}, {x, y + 1}} {
				if w.Walkable(n) {
					if err := g.AddEdge(w.NodeID(c), w.NodeID(n), CellSize); err != nil {
						return nil, err
					}
				}
			}
		}
	}
	return g, nil
}

// FindRoute runs breadth-first search over the grid, cell to cell
// Nil when either endpoint is blocked or no route exists; the nav graph's
// weighted solver is the fallback for those cases
func (w *World) FindRoute(start, end Cell) []Cell {
	if !w.Walkable(start) || !w.Walkable(end) {
		return nil
	}

	queue := []Cell{start}
	cameFrom := make(map[Cell]Cell)
	visited := map[Cell]bool{start: true}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		if curr == end {
			var path []Cell
			for curr != start {
				path = append([]Cell{curr}, path...)
				curr = cameFrom[curr]
			}
			return append([]Cell{start}, path...)
		}

		for _, d := range orthogonal {
			next := Cell{curr.X + d.X, curr.Y + d.Y}
			if w.Walkable(next) && !visited[next] {
				visited[next] = true
				cameFrom[next] = curr
				queue = append(queue, next)
			}
		}
	}
	return nil
}

// RandomOpenCell picks a uniformly random walkable cell
func (w *World) RandomOpenCell(rng *rand.Rand) Cell {
	cols, rows := w.Size()
	for {
		c := Cell{rng.Intn(cols), rng.Intn(rows)}
		if w.Walkable(c) {
			return c
		}
	}
}

var orthogonal = []Cell{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

func carveCorridors(grid [][]bool, start Cell, rng *rand.Rand) {
	rows, cols := len(grid), len(grid[0])

	stack := []Cell{start}
	grid[start.Y][start.X] = Open

	dirs := []Cell{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		candidates := make([]Cell, 0, 4)

		for _, d := range dirs {
			nx, ny := curr.X+d.X, curr.Y+d.Y
			if nx > 0 && nx < cols-1 && ny > 0 && ny < rows-1 && grid[ny][nx] == Blocked {
				candidates = append(candidates, d)
			}
		}

		if len(candidates) > 0 {
			d := candidates[rng.Intn(len(candidates))]
			grid[curr.Y+d.Y/2][curr.X+d.X/2] = Open
			grid[curr.Y+d.Y][curr.X+d.X] = Open
			stack = append(stack, Cell{curr.X + d.X, curr.Y + d.Y})
		} else {
			stack = stack[:len(stack)-1]
		}
	}
}

// braid opens walls at dead ends with the given probability, adding cycles
// so more than one route exists between most cell pairs
func braid(grid [][]bool, probability float64, rng *rand.Rand) {
	rows, cols := len(grid), len(grid[0])

	for y := 1; y < rows-1; y += 2 {
		for x := 1; x < cols-1; x += 2 {
			if grid[y][x] == Blocked {
				continue
			}

			exits := 0
			for _, d := range orthogonal {
				if grid[y+d.Y][x+d.X] == Open {
					exits++
				}
			}
			if exits != 1 || rng.Float64() >= probability {
				continue
			}

			candidates := make([]Cell, 0, 4)
			for _, jd := range []Cell{{0, -2}, {0, 2}, {-2, 0}, {2, 0}} {
				nx, ny := x+jd.X, y+jd.Y
				wx, wy := x+jd.X/2, y+jd.Y/2
				if nx >= 0 && nx < cols && ny >= 0 && ny < rows &&
					grid[ny][nx] == Open && grid[wy][wx] == Blocked {
					candidates = append(candidates, Cell{wx, wy})
				}
			}
			if len(candidates) > 0 {
				c := candidates[rng.Intn(len(candidates))]
				grid[c.Y][c.X] = Open
			}
		}
	}
}

func ensureOdd(n int) int {
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}
