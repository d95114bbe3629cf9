package generator

import (
	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/level"
	"delvegen/pkg/game/rect"
)

// RoomRequest describes a room to place. Fields set to Random are chosen
// by the generator: all of X, Y, W, XAlign and YAlign random asks for a
// totally random room drawn from the pool.
type RoomRequest struct {
	// X and Y select a cell of the 5x5 placement grid, 1..5.
	X, Y int
	W, H int
	// XAlign and YAlign position the room inside its grid cell.
	XAlign, YAlign int
	Type           level.RoomType
	Lit            int
	// Filled rooms get the usual random contents.
	Filled bool
}

// RandomRoom is a request with every field left to the generator.
func RandomRoom(t level.RoomType) RoomRequest {
	return RoomRequest{
		X: Random, Y: Random, W: Random, H: Random,
		XAlign: Random, YAlign: Random,
		Type: t, Lit: LitRandom, Filled: true,
	}
}

func (req RoomRequest) totallyRandom() bool {
	return req.X < 0 && req.Y < 0 && req.W < 0 && req.XAlign < 0 && req.YAlign < 0
}

// LitRoll decides whether a randomly lit room is lit. Deeper levels are
// darker.
func (s *Synthesizer) LitRoll() bool {
	d := s.desc.Depth
	if d < 0 {
		d = -d
	}
	return s.r.Rnd(1+d) < 11 && s.r.Rn2(77) != 0
}

// MakeRooms fills the level with rooms until the pool or the room table
// runs out. When theme is non-nil it builds each room instead of the
// plain random room and reports whether it failed.
func (s *Synthesizer) MakeRooms(theme func() (failed bool, err error)) error {
	defer s.tag("makerooms")()
	if s.phase < Placing {
		s.enter(Placing)
	}
	failures := 0
	for s.b.NumRooms() < level.MaxRooms {
		if _, ok := s.pool.Allocate(s.r); !ok {
			break
		}
		if s.b.NumRooms() >= level.MaxRooms/6 && s.r.Rn2(2) != 0 && !s.triedVault {
			s.triedVault = true
			s.reserveVault()
			continue
		}
		if theme != nil {
			failed, err := theme()
			if err != nil {
				return err
			}
			if failed {
				n := failures
				failures++
				if n > 10 || s.b.NumRooms() >= level.MaxRooms/6 {
					break
				}
			}
			continue
		}
		if _, ok := s.CreateRoom(RandomRoom(level.Ordinary)); !ok {
			break
		}
	}
	return nil
}

func (s *Synthesizer) reserveVault() {
	req := RandomRoom(level.Vault)
	req.W, req.H = 2, 2
	req.Lit = LitOn
	if _, ok := s.CreateRoom(req); !ok {
		s.b.Logf("generator: no room left for a vault")
	}
}

// CreateRoom places a room from req, committing its footprint to the
// pool. A vault request only reserves the position, which MakeVault
// turns into a room after the corridors are dug.
func (s *Synthesizer) CreateRoom(req RoomRequest) (*level.Room, bool) {
	defer s.tag("create_room")()
	vault := req.Type == level.Vault
	xlim, ylim := rect.XLim, rect.YLim
	if vault {
		xlim++
		ylim++
	}
	var lit bool
	switch req.Lit {
	case LitRandom:
		lit = s.LitRoll()
	case LitOff:
		lit = false
	default:
		lit = true
	}

	var (
		free, footprint world.Rect
		found           bool
		xabs, yabs      int
		wtmp, htmp      int
	)
	for try := 0; try <= placementTries && !found; try++ {
		if req.totallyRandom() || vault {
			r1, ok := s.pool.Allocate(s.r)
			if !ok {
				return nil, false
			}
			lx, ly, hx, hy := r1.Lx, r1.Ly, r1.Hx, r1.Hy
			var dx, dy int
			if vault {
				dx, dy = 1, 1
			} else {
				span := 8
				if hx-lx > 28 {
					span = 12
				}
				dx = 2 + s.r.Rn2(span)
				dy = 2 + s.r.Rn2(4)
				if dx*dy > 50 {
					dy = 50 / dx
				}
			}
			xborder := xlim + 1
			if lx > 0 && hx < world.Cols-1 {
				xborder = 2 * xlim
			}
			yborder := ylim + 1
			if ly > 0 && hy < world.Rows-1 {
				yborder = 2 * ylim
			}
			if hx-lx < dx+3+xborder || hy-ly < dy+3+yborder {
				continue
			}
			xbase, xoff := 3, 3
			if lx > 0 {
				xbase, xoff = lx, xlim
			}
			ybase, yoff := 2, 2
			if ly > 0 {
				ybase, yoff = ly, ylim
			}
			xabs = lx + xoff + s.r.Rn2(hx-xbase-dx-xborder+1)
			yabs = ly + yoff + s.r.Rn2(hy-ybase-dy-yborder+1)
			n := s.b.NumRooms()
			if ly == 0 && hy >= world.Rows-1 && (n == 0 || s.r.Rn2(n) == 0) && yabs+dy > world.Rows/2 {
				yabs = s.r.Rn1(3, 2)
				if n < 4 && dy > 1 {
					dy--
				}
			}
			if !s.checkRoom(&xabs, &dx, &yabs, &dy, vault) {
				continue
			}
			wtmp, htmp = dx+1, dy+1
			footprint = world.Rect{Lx: xabs - 1, Ly: yabs - 1, Hx: xabs + wtmp, Hy: yabs + htmp}
			free, found = r1, true
			continue
		}

		xtmp, ytmp := req.X, req.Y
		wtmp, htmp = req.W, req.H
		xal, yal := req.XAlign, req.YAlign
		slack := 0
		if xtmp < 0 && ytmp < 0 {
			xtmp = s.r.Rnd(5)
			ytmp = s.r.Rnd(5)
			slack = 1
		}
		if wtmp < 0 || htmp < 0 {
			wtmp = s.r.Rn1(15, 3)
			htmp = s.r.Rn1(8, 2)
		}
		if xal == Random {
			xal = s.r.Rnd(3)
		}
		if yal == Random {
			yal = s.r.Rnd(3)
		}
		xabs = ((xtmp-1)*world.Cols)/5 + 1
		yabs = ((ytmp-1)*world.Rows)/5 + 1
		switch xal {
		case AlignRight:
			xabs += world.Cols/5 - wtmp
		case AlignCenter:
			xabs += (world.Cols/5 - wtmp) / 2
		}
		switch yal {
		case AlignBottom:
			yabs += world.Rows/5 - htmp
		case AlignCenter:
			yabs += (world.Rows/5 - htmp) / 2
		}
		if xabs+wtmp-1 > world.Cols-2 {
			xabs = world.Cols - wtmp - 3
		}
		if xabs < 2 {
			xabs = 2
		}
		if yabs+htmp-1 > world.Rows-2 {
			yabs = world.Rows - htmp - 3
		}
		if yabs < 2 {
			yabs = 2
		}
		footprint = world.Rect{Lx: xabs - 1, Ly: yabs - 1, Hx: xabs + wtmp + slack, Hy: yabs + htmp + slack}
		free, found = s.pool.Find(footprint)
	}
	if !found {
		return nil, false
	}
	s.pool.Commit(free, footprint)

	if vault {
		s.vault = &world.Coord{X: xabs, Y: yabs}
		return nil, true
	}
	room := s.b.AddRoom(xabs, yabs, xabs+wtmp-1, yabs+htmp-1, lit, req.Type, false)
	room.NeedFill = req.Filled
	return room, true
}

// checkRoom makes sure the room at lowx/lowy with extents ddx/ddy keeps
// its margins clear of anything already dug. Each obstacle either
// rejects the room outright or shrinks it away from the obstacle.
func (s *Synthesizer) checkRoom(lowx, ddx, lowy, ddy *int, vault bool) bool {
	hix, hiy := *lowx+*ddx, *lowy+*ddy
	xlim, ylim := rect.XLim, rect.YLim
	if vault {
		xlim++
		ylim++
	}
	if *lowx < 3 {
		*lowx = 3
	}
	if *lowy < 2 {
		*lowy = 2
	}
	if hix > world.Cols-3 {
		hix = world.Cols - 3
	}
	if hiy > world.Rows-3 {
		hiy = world.Rows - 3
	}

	for {
		if hix <= *lowx || hiy <= *lowy {
			return false
		}
		shrunk := false
	scan:
		for x := *lowx - xlim; x <= hix+xlim; x++ {
			if x <= 0 || x >= world.Cols {
				continue
			}
			ymin, ymax := max(*lowy-ylim, 0), min(hiy+ylim, world.Rows-1)
			for y := ymin; y <= ymax; y++ {
				if s.b.Terrain(x, y) == world.Stone {
					continue
				}
				if s.r.Rn2(3) == 0 {
					return false
				}
				if x < *lowx {
					*lowx = x + xlim + 1
				} else {
					hix = x - xlim - 1
				}
				if y < *lowy {
					*lowy = y + ylim + 1
				} else {
					hiy = y - ylim - 1
				}
				shrunk = true
				break scan
			}
		}
		if !shrunk {
			break
		}
	}
	*ddx = hix - *lowx
	*ddy = hiy - *lowy
	return true
}

// MakeStairs puts the down stairs in a random room and the up stairs in
// a different one when there is more than one room.
func (s *Synthesizer) MakeStairs() {
	defer s.tag("stairs")()
	rooms := s.b.Rooms()
	n := len(rooms)
	if n == 0 {
		s.b.Logf("generator: no rooms for stairs")
		return
	}
	croom := rooms[s.r.Rn2(n)]
	if !s.desc.Bottom {
		x := s.b.SomeX(croom)
		y := s.b.SomeY(croom)
		s.b.AddStair(x, y, false, croom)
	}
	if n > 1 {
		troom := croom
		i := s.r.Rn2(n - 1)
		croom = rooms[i]
		if croom == troom {
			croom = rooms[i+1]
		}
	}
	if !s.desc.NeedsUpStairs() {
		return
	}
	for try := 0; try < stairTries; try++ {
		x := s.b.SomeX(croom)
		y := s.b.SomeY(croom)
		if !s.b.Occupied(x, y) {
			s.b.AddStair(x, y, true, croom)
			return
		}
	}
	s.b.Logf("generator: no free cell for up stairs in room %d", croom.Index())
}
