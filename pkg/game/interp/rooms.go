package interp

import (
	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/generator"
	"delvegen/pkg/game/level"
	"delvegen/pkg/game/rect"
	"delvegen/pkg/game/script"
)

// doorTries bounds the wall positions tried for a room door.
const doorTries = 100

// room creates a room, or a subroom when a room frame is current, and
// runs its contents with the new room on top of the stack. A room that
// cannot be placed fails the current theme but not the script.
func (in *Interpreter) room(d script.Room) error {
	f := in.top()
	var (
		r  *level.Room
		ok bool
	)
	if f.room == nil {
		r, ok = in.s.CreateRoom(generator.RoomRequest{
			X: d.X, Y: d.Y, W: d.W, H: d.H,
			XAlign: d.XAlign, YAlign: d.YAlign,
			Type: d.Type, Lit: d.Lit.Lit(), Filled: d.Filled,
		})
	} else {
		r, ok = in.createSubroom(f, d)
	}
	if !ok {
		in.themeFailed = true
		in.b.Logf("interp: no space for %s room", d.Type)
		return nil
	}
	if r == nil {
		// vaults only reserve their spot here
		return nil
	}
	if d.Contents == nil {
		return nil
	}

	in.frames.Push(&frame{
		room:   r,
		origin: world.Coord{X: r.Lx, Y: r.Ly},
		w:      r.Width(),
		h:      r.Height(),
		pool:   rect.NewScoped(r.Walls(), 0, 0),
	})
	err := d.Contents(scope{in})
	in.frames.Pop()
	return err
}

// createSubroom places d inside the frame's room. Unspecified sizes and
// offsets are rolled in the order width, height, x, y; offsets of one
// snap to the parent wall, as do rooms ending one cell short of it.
func (in *Interpreter) createSubroom(f *frame, d script.Room) (*level.Room, bool) {
	in.r.PushTag("subroom")
	defer in.r.PopTag()
	parent := f.room
	width, height := parent.Width(), parent.Height()
	if width < 4 || height < 4 {
		return nil, false
	}
	w, h, x, y := d.W, d.H, d.X, d.Y
	if w == script.Random {
		w = in.r.Rnd(width - 3)
	}
	if h == script.Random {
		h = in.r.Rnd(height - 3)
	}
	if w < 1 || h < 1 || w >= width || h >= height {
		return nil, false
	}
	if x == script.Random {
		x = in.r.Rnd(width - w)
	}
	if y == script.Random {
		y = in.r.Rnd(height - h)
	}
	if x == 1 {
		x = 0
	}
	if y == 1 {
		y = 0
	}
	if x+w+1 == width {
		x++
	}
	if y+h+1 == height {
		y++
	}
	var lit bool
	switch d.Lit {
	case script.Yes:
		lit = true
	case script.Maybe:
		lit = in.s.LitRoll()
	}

	lx, ly := parent.Lx+x, parent.Ly+y
	hx, hy := lx+w-1, ly+h-1
	footprint := world.Rect{Lx: lx - 1, Ly: ly - 1, Hx: hx + 1, Hy: hy + 1}
	free, ok := f.pool.Find(footprint)
	if !ok {
		return nil, false
	}
	f.pool.Commit(free, footprint)
	r := in.b.AddSubroom(parent, lx, ly, hx, hy, lit, d.Type, d.Borderless)
	r.NeedFill = d.Filled
	return r, true
}

// door adds a door to the current room's walls, or at an explicit wall
// cell at level scope.
func (in *Interpreter) door(d script.Door) error {
	in.r.PushTag("door")
	defer in.r.PopTag()
	f := in.top()
	if f.room == nil {
		in.levelDoor(f, d)
		return nil
	}
	in.roomDoor(f.room, d)
	return nil
}

// roomDoor rolls the door's secrecy and state first, then tries wall
// positions until one can take a door with open space behind it.
func (in *Interpreter) roomDoor(r *level.Room, d script.Door) {
	secret := d.Secret == script.Yes
	if d.Secret == script.Maybe {
		secret = in.r.Rn2(2) != 0
	}
	mask := d.State.Mask()
	if d.State == script.DoorRandom {
		mask = in.randomDoorMask(secret)
	}

	for try := 0; try <= doorTries; try++ {
		wall := d.Wall
		if wall == 0 {
			wall = world.WallMask(1) << in.r.Rn2(4)
		}
		var x, y, bx, by int
		switch in.r.Rn2(4) {
		case 0:
			if !wall.Has(world.WallNorth) {
				continue
			}
			y = r.Ly - 1
			x = r.Lx + in.wallPos(d.Pos, r.Hx-r.Lx)
			bx, by = x, y-1
		case 1:
			if !wall.Has(world.WallSouth) {
				continue
			}
			y = r.Hy + 1
			x = r.Lx + in.wallPos(d.Pos, r.Hx-r.Lx)
			bx, by = x, y+1
		case 2:
			if !wall.Has(world.WallWest) {
				continue
			}
			x = r.Lx - 1
			y = r.Ly + in.wallPos(d.Pos, r.Hy-r.Ly)
			bx, by = x-1, y
		default:
			if !wall.Has(world.WallEast) {
				continue
			}
			x = r.Hx + 1
			y = r.Ly + in.wallPos(d.Pos, r.Hy-r.Ly)
			bx, by = x+1, y
		}
		if !world.InBounds(bx, by) || in.b.Terrain(bx, by).IsRock() {
			continue
		}
		if in.s.OkDoor(x, y) {
			in.s.PlaceDoor(x, y, r, mask, secret)
			return
		}
	}
	in.b.Logf("interp: no place for a door in room at %d,%d", r.Lx, r.Ly)
}

func (in *Interpreter) wallPos(pos, span int) int {
	if pos == script.Random {
		return in.r.Rn2(1 + span)
	}
	return pos
}

// randomDoorMask rolls a door state the way room doors in scripts do:
// like corridor doors, but traps do not depend on the difficulty.
func (in *Interpreter) randomDoorMask(secret bool) world.DoorMask {
	if secret {
		mask := world.DoorClosed
		if in.r.Rn2(5) == 0 {
			mask = world.DoorLocked
		}
		if in.r.Rn2(20) == 0 {
			mask |= world.DoorTrapped
		}
		return mask
	}
	if in.r.Rn2(3) != 0 {
		return world.DoorNone
	}
	var mask world.DoorMask
	switch {
	case in.r.Rn2(5) == 0:
		mask = world.DoorOpen
	case in.r.Rn2(6) == 0:
		mask = world.DoorLocked
	default:
		mask = world.DoorClosed
	}
	if mask != world.DoorOpen && in.r.Rn2(25) == 0 {
		mask |= world.DoorTrapped
	}
	return mask
}

// levelDoor puts a door on an explicit wall cell. A random state is one
// of doorway, broken, open, closed or locked with a single draw.
func (in *Interpreter) levelDoor(f *frame, d script.Door) {
	x, y := f.origin.X+d.X, f.origin.Y+d.Y
	if !world.InBounds(x, y) {
		in.b.Logf("interp: door at %d,%d is off the level", x, y)
		return
	}
	t := in.b.Terrain(x, y)
	if !t.IsWall() && !t.IsDoor() {
		in.b.Logf("interp: door at %d,%d is not on a wall (%v)", x, y, t)
		return
	}
	mask := d.State.Mask()
	if d.State == script.DoorRandom {
		mask = world.DoorMask(1<<in.r.Rn2(5)) >> 1
	}
	var owner *level.Room
	for _, r := range in.b.Rooms() {
		if r.InsideWithWalls(x, y) {
			owner = r
			break
		}
	}
	in.s.PlaceDoor(x, y, owner, mask, d.Secret == script.Yes)
}
