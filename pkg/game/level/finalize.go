package level

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/walls"
)

// ErrInvariant marks a level that failed its consistency checks. Callers
// may retry with another seed.
var ErrInvariant = errors.New("level invariant violated")

// InvariantError lists every violation found by Finalize.
type InvariantError struct {
	Violations []string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInvariant, strings.Join(e.Violations, "; "))
}

func (e *InvariantError) Unwrap() error { return ErrInvariant }

// StairNeeds says which staircases the finished level must have.
type StairNeeds struct {
	Up, Down bool
}

// Finalize classifies walls, runs the consistency checks and freezes the
// builder. On failure no level is returned.
func (b *Builder) Finalize(needs StairNeeds) (*Level, error) {
	b.mutable()
	b.topologize()
	walls.Classify(b.grid)

	v := append([]string(nil), b.violations...)
	v = append(v, b.checkDoors()...)
	v = append(v, b.checkStairs(needs)...)
	v = append(v, b.checkConnected()...)
	b.finalized = true
	if len(v) > 0 {
		return nil, &InvariantError{Violations: v}
	}
	return b.freeze(), nil
}

func (b *Builder) topologize() {
	for _, r := range b.rooms {
		b.topologizeRoom(r, r.index+world.RoomOffset)
	}
	n := len(b.rooms)
	for i, r := range b.subrooms {
		b.topologizeRoom(r, n+i+world.RoomOffset)
	}
}

func (b *Builder) topologizeRoom(r *Room, no int) {
	g := b.grid
	if r.Irregular {
		r.cells.Each(func(c world.Coord) {
			g.At(c.X, c.Y).RoomNo = no
		})
		return
	}
	if r.Borderless {
		for x := r.Lx; x <= r.Hx; x++ {
			for y := r.Ly; y <= r.Hy; y++ {
				g.At(x, y).RoomNo = no
			}
		}
		return
	}
	wr := r.Walls()
	for x := wr.Lx; x <= wr.Hx; x++ {
		for y := wr.Ly; y <= wr.Hy; y++ {
			c := g.At(x, y)
			if c == nil {
				continue
			}
			if r.Floor().ContainsPoint(x, y) {
				c.RoomNo = no
				continue
			}
			c.Edge = true
			if c.RoomNo != world.NoRoom && c.RoomNo != no {
				c.RoomNo = world.SharedRoom
			} else {
				c.RoomNo = no
			}
		}
	}
}

func (b *Builder) traversable(x, y int) bool {
	return world.InBounds(x, y) && b.grid.Terrain(x, y).Traversable()
}

func (b *Builder) checkDoors() []string {
	blind := mapset.New[world.Coord]()
	for _, d := range b.doors {
		if d.Blind {
			blind.Put(world.Coord{X: d.X, Y: d.Y})
		}
	}
	var v []string
	b.grid.ForEachCell(func(x, y int, c *world.Cell) {
		if !c.Terrain.IsDoor() {
			return
		}
		ew := b.traversable(x-1, y) && b.traversable(x+1, y)
		ns := b.traversable(x, y-1) && b.traversable(x, y+1)
		if ew || ns {
			return
		}
		if blind.Has(world.Coord{X: x, Y: y}) {
			if b.traversable(x-1, y) || b.traversable(x+1, y) || b.traversable(x, y-1) || b.traversable(x, y+1) {
				return
			}
		}
		v = append(v, fmt.Sprintf("door at (%d,%d) does not join two open cells", x, y))
	})
	return v
}

func (b *Builder) checkStairs(needs StairNeeds) []string {
	var up, down int
	var v []string
	for _, s := range b.stairs {
		if b.grid.Terrain(s.X, s.Y) != world.Stairs {
			v = append(v, fmt.Sprintf("stairs at (%d,%d) overwritten", s.X, s.Y))
		}
		if s.Up {
			up++
		} else {
			down++
		}
	}
	if up > 1 || (needs.Up && up == 0) {
		v = append(v, fmt.Sprintf("%d up staircases", up))
	}
	if down > 1 || (needs.Down && down == 0) {
		v = append(v, fmt.Sprintf("%d down staircases", down))
	}
	return v
}

// step allows moves between traversable cells; doors may only be entered
// or left orthogonally.
func (b *Builder) step(from, to world.Coord) bool {
	if !b.traversable(to.X, to.Y) {
		return false
	}
	if from.X != to.X && from.Y != to.Y {
		if b.grid.Terrain(from.X, from.Y).IsDoor() || b.grid.Terrain(to.X, to.Y).IsDoor() {
			return false
		}
	}
	return true
}

func (b *Builder) anchor(r *Room) (world.Coord, bool) {
	for x := r.Lx; x <= r.Hx; x++ {
		for y := r.Ly; y <= r.Hy; y++ {
			if r.Inside(x, y) && b.traversable(x, y) && b.RoomAt(x, y) == r {
				return world.Coord{X: x, Y: y}, true
			}
		}
	}
	return world.Coord{}, false
}

func (b *Builder) checkConnected() []string {
	var rooms []*Room
	for _, r := range b.rooms {
		if r.Type != Vault {
			rooms = append(rooms, r)
		}
	}
	if len(rooms) < 2 {
		return nil
	}
	start, ok := b.anchor(rooms[0])
	if !ok {
		return []string{fmt.Sprintf("room at (%d,%d) has no open floor", rooms[0].Lx, rooms[0].Ly)}
	}
	seen := b.grid.Reachable(start, b.step)
	var v []string
	for _, r := range rooms[1:] {
		if !b.touches(r, seen) {
			v = append(v, fmt.Sprintf("room %d at (%d,%d) unreachable", r.index, r.Lx, r.Ly))
		}
	}
	return v
}

func (b *Builder) touches(r *Room, seen mapset.Set[world.Coord]) bool {
	for x := r.Lx; x <= r.Hx; x++ {
		for y := r.Ly; y <= r.Hy; y++ {
			if r.Inside(x, y) && seen.Has(world.Coord{X: x, Y: y}) {
				return true
			}
		}
	}
	return false
}
