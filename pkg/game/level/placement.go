package level

import "delvegen/pkg/engine/world"

// SomeX picks a random floor column of r. One draw.
func (b *Builder) SomeX(r *Room) int { return b.rng.Rn1(r.Hx-r.Lx+1, r.Lx) }

// SomeY picks a random floor row of r. One draw.
func (b *Builder) SomeY(r *Room) int { return b.rng.Rn1(r.Hy-r.Ly+1, r.Ly) }

// SomeXY picks a random floor cell of r that is not inside one of its
// subrooms. Irregular rooms and rooms with subrooms retry up to 100
// times; irregular rooms then fall back to a scan.
func (b *Builder) SomeXY(r *Room) (world.Coord, bool) {
	if r.Irregular {
		for try := 0; try < 100; try++ {
			c := world.Coord{X: b.SomeX(r), Y: b.SomeY(r)}
			if !b.grid.Cell(c.X, c.Y).Edge && r.Inside(c.X, c.Y) {
				return c, true
			}
		}
		for x := r.Lx; x <= r.Hx; x++ {
			for y := r.Ly; y <= r.Hy; y++ {
				if !b.grid.Cell(x, y).Edge && r.Inside(x, y) {
					return world.Coord{X: x, Y: y}, true
				}
			}
		}
		return world.Coord{}, false
	}
	if len(r.Subrooms) == 0 {
		return world.Coord{X: b.SomeX(r), Y: b.SomeY(r)}, true
	}
next:
	for try := 0; try < 100; try++ {
		c := world.Coord{X: b.SomeX(r), Y: b.SomeY(r)}
		if b.grid.Terrain(c.X, c.Y).IsWall() {
			continue
		}
		for _, sub := range r.Subrooms {
			if sub.InsideWithWalls(c.X, c.Y) {
				continue next
			}
		}
		// A hit on the last try still counts as a miss.
		return c, try < 99
	}
	return world.Coord{}, false
}

// Occupied reports cells that already hold a trap, furniture, or liquid.
func (b *Builder) Occupied(x, y int) bool {
	t := b.grid.Terrain(x, y)
	return b.TrapAt(x, y) != NoTrap || t.IsFurniture() || t == world.LavaPool || t.IsPool()
}

// ByDoor reports a door or secret door orthogonally next to x/y.
func (b *Builder) ByDoor(x, y int) bool {
	for _, d := range world.AllDirections() {
		dx, dy := d.Delta()
		if world.InBounds(x+dx, y+dy) && b.grid.Terrain(x+dx, y+dy).IsDoor() {
			return true
		}
	}
	return false
}

// NextToDoor reports a door or secret door in any of the eight neighbours.
func (b *Builder) NextToDoor(x, y int) bool {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if world.InBounds(x+dx, y+dy) && b.grid.Terrain(x+dx, y+dy).IsDoor() {
				return true
			}
		}
	}
	return false
}

// HasUpStairs reports whether r holds the up staircase
func (b *Builder) HasUpStairs(r *Room) bool { return b.hasStairs(r, true) }

// HasDownStairs reports whether r holds the down staircase
func (b *Builder) HasDownStairs(r *Room) bool { return b.hasStairs(r, false) }

func (b *Builder) hasStairs(r *Room, up bool) bool {
	for _, s := range b.stairs {
		if s.Up == up && r.Floor().ContainsPoint(s.X, s.Y) {
			return true
		}
	}
	return false
}

// RoomAt returns the innermost room whose floor holds x/y.
func (b *Builder) RoomAt(x, y int) *Room {
	for _, r := range b.rooms {
		if r.Inside(x, y) {
			for _, sub := range r.Subrooms {
				if sub.Inside(x, y) {
					return sub
				}
			}
			return r
		}
	}
	return nil
}
