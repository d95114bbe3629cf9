package world

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// Level dimensions. Column 0 exists but never holds terrain.
const (
	Cols = 80
	Rows = 21
)

// Grid is the fixed-size level map, indexed [x][y].
type Grid struct {
	cells [Cols][Rows]Cell
}

// NewGrid creates an all-stone grid
func NewGrid() *Grid {
	return &Grid{}
}

// Bounds returns the full grid rectangle
func Bounds() Rect {
	return Rect{0, 0, Cols - 1, Rows - 1}
}

// InBounds checks if x/y is a usable map position (column 0 is not)
func InBounds(x, y int) bool {
	return x >= 1 && x <= Cols-1 && y >= 0 && y <= Rows-1
}

// At returns the cell at x/y, or nil if out of bounds
func (g *Grid) At(x, y int) *Cell {
	if x < 0 || x >= Cols || y < 0 || y >= Rows {
		return nil
	}
	return &g.cells[x][y]
}

// Cell returns a copy of the cell at x/y; out of bounds reads as stone.
func (g *Grid) Cell(x, y int) Cell {
	if c := g.At(x, y); c != nil {
		return *c
	}
	return Cell{}
}

// Terrain returns the terrain at x/y; out of bounds reads as stone.
func (g *Grid) Terrain(x, y int) Terrain {
	if c := g.At(x, y); c != nil {
		return c.Terrain
	}
	return Stone
}

// SetTerrain changes the terrain at x/y. Returns false if out of bounds.
func (g *Grid) SetTerrain(x, y int, t Terrain) bool {
	c := g.At(x, y)
	if c == nil {
		return false
	}
	c.Terrain = t
	return true
}

// ForEachCell calls fn for every cell, column by column
func (g *Grid) ForEachCell(fn func(x, y int, cell *Cell)) {
	for x := 0; x < Cols; x++ {
		for y := 0; y < Rows; y++ {
			fn(x, y, &g.cells[x][y])
		}
	}
}

// Clone returns an independent copy of the grid
func (g *Grid) Clone() *Grid {
	c := *g
	return &c
}

// Codes returns the terrain numbers row by row, for numeric diffing.
func (g *Grid) Codes() []uint8 {
	out := make([]uint8, 0, Cols*Rows)
	for y := 0; y < Rows; y++ {
		for x := 0; x < Cols; x++ {
			out = append(out, uint8(g.cells[x][y].Terrain))
		}
	}
	return out
}

// Equal reports whether both grids hold identical cells
func (g *Grid) Equal(o *Grid) bool {
	return g.cells == o.cells
}

// String renders the grid with one glyph per cell
func (g *Grid) String() string {
	buf := make([]rune, 0, (Cols+1)*Rows)
	for y := 0; y < Rows; y++ {
		for x := 0; x < Cols; x++ {
			buf = append(buf, g.cells[x][y].Terrain.Glyph())
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

// Reachable collects every position reachable from start. step decides
// whether a move between two adjacent positions is allowed; moves are
// tried in the eight compass directions.
func (g *Grid) Reachable(start Coord, step func(from, to Coord) bool) mapset.Set[Coord] {
	visited := mapset.New[Coord]()
	if !InBounds(start.X, start.Y) {
		return visited
	}
	visited.Put(start)
	queue := []Coord{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				if dx == 0 && dy == 0 {
					continue
				}
				n := Coord{cur.X + dx, cur.Y + dy}
				if !InBounds(n.X, n.Y) || visited.Has(n) || !step(cur, n) {
					continue
				}
				visited.Put(n)
				queue = append(queue, n)
			}
		}
	}
	return visited
}

// Validate checks the grid for terrain values outside the enum and for
// terrain in the unused column 0. Returns an empty string if valid.
func (g *Grid) Validate() string {
	for y := 0; y < Rows; y++ {
		if g.cells[0][y].Terrain != Stone {
			return fmt.Sprintf("column 0 holds terrain at row %d", y)
		}
	}
	for x := 1; x < Cols; x++ {
		for y := 0; y < Rows; y++ {
			if g.cells[x][y].Terrain >= terrainCount {
				return fmt.Sprintf("cell (%d,%d) has unknown terrain %d", x, y, g.cells[x][y].Terrain)
			}
		}
	}
	return ""
}
