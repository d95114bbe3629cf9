// Package walls derives wall shapes from a floor layout: it raises walls
// around floor, drops walls buried in rock, and picks the corner and
// junction piece for every wall from its neighbours.
package walls

import "delvegen/pkg/engine/world"

// Direction bits used to index spineTable.
const (
	bitW = 1 << iota
	bitE
	bitS
	bitN
)

var spineTable = [16]world.Terrain{
	world.VWall, world.HWall, world.HWall, world.HWall,
	world.VWall, world.TRCorner, world.TLCorner, world.TDWall,
	world.VWall, world.BRCorner, world.BLCorner, world.TUWall,
	world.VWall, world.TLWall, world.TRWall, world.CrossWall,
}

// Classify runs the full pass over the whole level.
func Classify(g *world.Grid) {
	ClassifyArea(g, world.Rect{Lx: 1, Ly: 0, Hx: world.Cols - 1, Hy: world.Rows - 1})
}

// ClassifyArea runs Wallify, Cleanup and FixSpines over area. Running it a
// second time changes nothing.
func ClassifyArea(g *world.Grid, area world.Rect) {
	area = clip(area)
	Wallify(g, area)
	Cleanup(g, area)
	FixSpines(g, area)
}

func clip(a world.Rect) world.Rect {
	a.Lx = max(a.Lx, 1)
	a.Ly = max(a.Ly, 0)
	a.Hx = min(a.Hx, world.Cols-1)
	a.Hy = min(a.Hy, world.Rows-1)
	return a
}

// Wallify turns stone next to floor into walls: horizontal when the floor
// is on another row, vertical otherwise. Corridors are left unwalled.
func Wallify(g *world.Grid, area world.Rect) {
	for y := area.Ly; y <= area.Hy; y++ {
		loY := max(y-1, 0)
		hiY := min(y+1, area.Hy)
		for x := area.Lx; x <= area.Hx; x++ {
			if g.Terrain(x, y) != world.Stone {
				continue
			}
			loX := max(x-1, 1)
			hiX := min(x+1, area.Hx)
		scan:
			for yy := loY; yy <= hiY; yy++ {
				for xx := loX; xx <= hiX; xx++ {
					t := g.Terrain(xx, yy)
					if t.IsRoom() || t == world.CrossWall {
						if yy != y {
							g.SetTerrain(x, y, world.HWall)
						} else {
							g.SetTerrain(x, y, world.VWall)
						}
						break scan
					}
				}
			}
		}
	}
}

func solid(g *world.Grid, x, y int) bool {
	return !world.InBounds(x, y) || g.Terrain(x, y).IsStoneOrWall()
}

// Cleanup turns walls that touch nothing but rock back into stone.
func Cleanup(g *world.Grid, area world.Rect) {
	for x := area.Lx; x <= area.Hx; x++ {
		for y := area.Ly; y <= area.Hy; y++ {
			t := g.Terrain(x, y)
			if !t.IsWall() || t == world.DBWall {
				continue
			}
			buried := true
			for dx := -1; dx <= 1 && buried; dx++ {
				for dy := -1; dy <= 1; dy++ {
					if (dx != 0 || dy != 0) && !solid(g, x+dx, y+dy) {
						buried = false
						break
					}
				}
			}
			if buried {
				g.SetTerrain(x, y, world.Stone)
			}
		}
	}
}

func isWall(g *world.Grid, x, y int) bool {
	if !world.InBounds(x, y) {
		return false
	}
	t := g.Terrain(x, y)
	return t.IsWall() || t.IsDoor() || t == world.IronBars
}

func isWallOrStone(g *world.Grid, x, y int) bool {
	if !world.InBounds(x, y) {
		return true
	}
	return g.Terrain(x, y) == world.Stone || isWall(g, x, y)
}

// locale[i][j] holds the neighbour at (x+i-1, y+j-1).
type locale [3][3]bool

// extends reports whether the wall continues towards dx/dy: a wall is
// there and the cells flanking the join are not all rock.
func (l *locale) extends(wallThere bool, dx, dy int) bool {
	if !wallThere {
		return false
	}
	nx, ny := 1+dx, 1+dy
	if dx != 0 {
		return !(l[1][0] && l[1][2] && l[nx][0] && l[nx][2])
	}
	return !(l[0][1] && l[2][1] && l[0][ny] && l[2][ny])
}

// FixSpines assigns the corner or junction piece for every wall.
// Free-standing walls keep their type.
func FixSpines(g *world.Grid, area world.Rect) {
	for x := area.Lx; x <= area.Hx; x++ {
		for y := area.Ly; y <= area.Hy; y++ {
			t := g.Terrain(x, y)
			if !t.IsWall() || t == world.DBWall {
				continue
			}
			var l locale
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					if i != 1 || j != 1 {
						l[i][j] = isWallOrStone(g, x+i-1, y+j-1)
					}
				}
			}
			bits := 0
			if l.extends(isWall(g, x, y-1), 0, -1) {
				bits |= bitN
			}
			if l.extends(isWall(g, x, y+1), 0, 1) {
				bits |= bitS
			}
			if l.extends(isWall(g, x+1, y), 1, 0) {
				bits |= bitE
			}
			if l.extends(isWall(g, x-1, y), -1, 0) {
				bits |= bitW
			}
			if bits != 0 {
				g.SetTerrain(x, y, spineTable[bits])
			}
		}
	}
}
