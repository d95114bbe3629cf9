package generator

import (
	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/level"
)

// MakeCorridors joins the rooms placed so far. Neighbours in room order
// are joined first, then rooms two apart, then any pair still in
// different components, and finally a few extra corridors that may dead
// end.
func (s *Synthesizer) MakeCorridors() {
	defer s.tag("makecorridors")()
	s.enter(Connecting)
	n := s.b.NumRooms()
	s.smeq = make([]int, n)
	for i := range s.smeq {
		s.smeq[i] = i
	}

	for a := 0; a < n-1; a++ {
		s.join(a, a+1, false)
		if s.r.Rn2(50) == 0 {
			break
		}
	}
	for a := 0; a < n-2; a++ {
		if s.smeq[a] != s.smeq[a+2] {
			s.join(a, a+2, false)
		}
	}
	joined := true
	for a := 0; joined && a < n; a++ {
		joined = false
		for b := 0; b < n; b++ {
			if s.smeq[a] != s.smeq[b] {
				s.join(a, b, false)
				joined = true
			}
		}
	}
	if n > 2 {
		for i := s.r.Rn2(n) + 4; i > 0; i-- {
			a := s.r.Rn2(n)
			b := s.r.Rn2(n - 2)
			if b >= a {
				b += 2
			}
			s.join(a, b, true)
		}
	}
}

// join digs a corridor from room a to room b. Extra corridors (nxcor)
// may give up halfway; the door they started from is then marked blind.
func (s *Synthesizer) join(a, b int, nxcor bool) {
	defer s.tag("join")()
	rooms := s.b.Rooms()
	croom, troom := rooms[a], rooms[b]
	if croom.Type == level.Vault || troom.Type == level.Vault || len(s.b.Doors()) >= level.DoorMax {
		return
	}

	var dd, tt world.Coord
	var dx, dy int
	switch {
	case troom.Lx > croom.Hx:
		dx = 1
		xx, tx := croom.Hx+1, troom.Lx-1
		dd = s.finddpos(xx, croom.Ly, xx, croom.Hy)
		tt = s.finddpos(tx, troom.Ly, tx, troom.Hy)
	case troom.Hy < croom.Ly:
		dy = -1
		yy, ty := croom.Ly-1, troom.Hy+1
		dd = s.finddpos(croom.Lx, yy, croom.Hx, yy)
		tt = s.finddpos(troom.Lx, ty, troom.Hx, ty)
	case troom.Hx < croom.Lx:
		dx = -1
		xx, tx := croom.Lx-1, troom.Hx+1
		dd = s.finddpos(xx, croom.Ly, xx, croom.Hy)
		tt = s.finddpos(tx, troom.Ly, tx, troom.Hy)
	default:
		dy = 1
		yy, ty := croom.Hy+1, troom.Ly-1
		dd = s.finddpos(croom.Lx, yy, croom.Hx, yy)
		tt = s.finddpos(troom.Lx, ty, troom.Hx, ty)
	}

	org := world.Coord{X: dd.X + dx, Y: dd.Y + dy}
	dest := world.Coord{X: tt.X - dx, Y: tt.Y - dy}
	if nxcor && s.b.Terrain(org.X, org.Y) != world.Stone {
		return
	}
	door := -1
	if s.OkDoor(dd.X, dd.Y) || !nxcor {
		door = s.dodoor(dd.X, dd.Y, croom)
	}

	if !s.dig(org, dest, nxcor, world.Corr, world.Stone) {
		if door >= 0 {
			s.b.MarkBlind(door)
		}
		return
	}

	if s.OkDoor(tt.X, tt.Y) || !nxcor {
		s.dodoor(tt.X, tt.Y, troom)
	}
	if s.smeq[a] < s.smeq[b] {
		s.smeq[b] = s.smeq[a]
	} else {
		s.smeq[a] = s.smeq[b]
	}
}

// finddpos picks a door position on the wall segment xl,yl..xh,yh: a
// random cell if it can take a door, else the first cell that can, else
// an existing door, else the segment's low-left end.
func (s *Synthesizer) finddpos(xl, yl, xh, yh int) world.Coord {
	x := s.r.Rn1(xh-xl+1, xl)
	y := s.r.Rn1(yh-yl+1, yl)
	if s.OkDoor(x, y) {
		return world.Coord{X: x, Y: y}
	}
	for x := xl; x <= xh; x++ {
		for y := yl; y <= yh; y++ {
			if s.OkDoor(x, y) {
				return world.Coord{X: x, Y: y}
			}
		}
	}
	for x := xl; x <= xh; x++ {
		for y := yl; y <= yh; y++ {
			if s.b.Terrain(x, y).IsDoor() {
				return world.Coord{X: x, Y: y}
			}
		}
	}
	return world.Coord{X: xl, Y: yh}
}

// OkDoor reports whether a straight wall cell can take a new door.
func (s *Synthesizer) OkDoor(x, y int) bool {
	t := s.b.Terrain(x, y)
	return (t == world.HWall || t == world.VWall) && len(s.b.Doors()) < level.DoorMax && !s.b.ByDoor(x, y)
}

// dodoor makes a door, secret one time in eight.
func (s *Synthesizer) dodoor(x, y int, room *level.Room) int {
	if len(s.b.Doors()) >= level.DoorMax {
		s.b.Logf("generator: door limit reached at %d,%d", x, y)
		return -1
	}
	return s.dosdoor(x, y, room, s.r.Rn2(8) == 0)
}

// dosdoor turns x/y into a door and rolls its state. Cells that are
// already doors stay regular doors. While connecting, a secret door is
// written as a plain door and promoted later by Secret.
func (s *Synthesizer) dosdoor(x, y int, room *level.Room, secret bool) int {
	if !s.b.Terrain(x, y).IsWall() {
		secret = false
	}
	diff := s.desc.Difficulty
	var mask world.DoorMask
	if !secret {
		if s.r.Rn2(3) == 0 {
			switch {
			case s.r.Rn2(5) == 0:
				mask = world.DoorOpen
			case s.r.Rn2(6) == 0:
				mask = world.DoorLocked
			default:
				mask = world.DoorClosed
			}
			if mask != world.DoorOpen && diff >= 5 && s.r.Rn2(25) == 0 {
				mask |= world.DoorTrapped
			}
		} else {
			mask = world.DoorNone
		}
		if mask&world.DoorTrapped != 0 && diff >= 9 && s.r.Rn2(5) == 0 {
			mask = world.DoorNone
			s.b.RequestMonster(level.MonsterRequest{X: x, Y: y, Class: "m", Reason: "door mimic"})
		}
	} else {
		if s.r.Rn2(5) == 0 {
			mask = world.DoorLocked
		} else {
			mask = world.DoorClosed
		}
		if diff >= 4 && s.r.Rn2(20) == 0 {
			mask |= world.DoorTrapped
		}
	}

	c := world.Coord{X: x, Y: y}
	switch {
	case secret && !s.deferSecrets:
		s.b.SetTerrain(x, y, world.SDoor)
	case secret:
		s.b.SetTerrain(x, y, world.Door)
		s.secretDoors[c] = true
	default:
		s.b.SetTerrain(x, y, world.Door)
		delete(s.secretDoors, c)
	}
	s.b.SetDoorMask(x, y, mask)
	return s.b.AddDoor(x, y, room)
}

// PlaceDoor adds a door with a fixed state for scripted levels. Secret
// doors are written immediately.
func (s *Synthesizer) PlaceDoor(x, y int, room *level.Room, mask world.DoorMask, secret bool) int {
	t := world.Door
	if secret {
		t = world.SDoor
	}
	s.b.SetTerrain(x, y, t)
	s.b.SetDoorMask(x, y, mask)
	return s.b.AddDoor(x, y, room)
}

// RandomDoor adds a door on a scripted room's wall with the usual random
// state rolls.
func (s *Synthesizer) RandomDoor(x, y int, room *level.Room, secret bool) int {
	return s.dosdoor(x, y, room, secret)
}

// passable reports terrain a corridor may run through or over.
func passable(t, ftyp, btyp world.Terrain) bool {
	return t == btyp || t == ftyp || t == world.SCorr
}

// dig runs a corridor of ftyp through btyp from org to dest. It fails
// when it leaves the map, meets something it cannot dig through, runs
// too long, or (for extra corridors) gives up at random.
func (s *Synthesizer) dig(org, dest world.Coord, nxcor bool, ftyp, btyp world.Terrain) bool {
	defer s.tag("dig")()
	xx, yy := org.X, org.Y
	tx, ty := dest.X, dest.Y
	if xx <= 0 || yy <= 0 || tx <= 0 || ty <= 0 ||
		xx > world.Cols-1 || tx > world.Cols-1 || yy > world.Rows-1 || ty > world.Rows-1 {
		s.b.Logf("generator: bad corridor %d,%d to %d,%d", xx, yy, tx, ty)
		return false
	}
	var dx, dy int
	switch {
	case tx > xx:
		dx = 1
	case ty > yy:
		dy = 1
	case tx < xx:
		dx = -1
	default:
		dy = -1
	}

	id := s.b.NewCorridor()
	xx -= dx
	yy -= dy
	steps := 0
	for xx != tx || yy != ty {
		if steps > corridorMaxStep || (nxcor && s.r.Rn2(35) == 0) {
			return false
		}
		steps++
		xx += dx
		yy += dy
		if xx >= world.Cols-1 || xx <= 0 || yy <= 0 || yy >= world.Rows-1 {
			return false
		}

		t := s.b.Terrain(xx, yy)
		if t == btyp {
			if ftyp != world.Corr || s.r.Rn2(100) != 0 {
				s.b.DigCell(xx, yy, ftyp, id)
				if nxcor && s.r.Rn2(50) == 0 {
					s.b.RequestObject(level.ObjectRequest{X: xx, Y: yy, ID: "boulder", Quantity: 1, Reason: "corridor boulder"})
				}
			} else if s.deferSecrets {
				s.b.DigCell(xx, yy, world.Corr, id)
				s.secretCorr[world.Coord{X: xx, Y: yy}] = true
			} else {
				s.b.DigCell(xx, yy, world.SCorr, id)
			}
		} else if t != ftyp && t != world.SCorr {
			return false
		}

		dix := abs(xx - tx)
		diy := abs(yy - ty)
		if dix > diy && diy != 0 && s.r.Rn2(dix-diy+1) == 0 {
			dix = 0
		} else if diy > dix && dix != 0 && s.r.Rn2(diy-dix+1) == 0 {
			diy = 0
		}

		// do we have to change direction?
		if dy != 0 && dix > diy {
			ddx := 1
			if xx > tx {
				ddx = -1
			}
			if passable(s.b.Terrain(xx+ddx, yy), ftyp, btyp) {
				dx, dy = ddx, 0
				continue
			}
		} else if dx != 0 && diy > dix {
			ddy := 1
			if yy > ty {
				ddy = -1
			}
			if passable(s.b.Terrain(xx, yy+ddy), ftyp, btyp) {
				dx, dy = 0, ddy
				continue
			}
		}

		// continue straight on?
		if passable(s.b.Terrain(xx+dx, yy+dy), ftyp, btyp) {
			continue
		}

		// try to change direction
		if dx != 0 {
			dx = 0
			dy = 1
			if ty < yy {
				dy = -1
			}
		} else {
			dy = 0
			dx = 1
			if tx < xx {
				dx = -1
			}
		}
		if passable(s.b.Terrain(xx+dx, yy+dy), ftyp, btyp) {
			continue
		}
		dy = -dy
		dx = -dx
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
