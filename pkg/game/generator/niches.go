package generator

import (
	"strings"

	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/level"
)

// Engravings left in front of trapped niches.
var nicheEngravings = map[level.TrapKind]string{
	level.TrapDoor:        "Vlad was here",
	level.TeleportTrap:    "ad aerarium",
	level.LevelTeleporter: "ad aerarium",
}

// MakeNiches adds a few dead-end nooks behind room walls. Deeper levels
// may hide a trapdoor or a level teleporter in them.
func (s *Synthesizer) MakeNiches() {
	defer s.tag("niches")()
	ct := s.r.Rnd(s.b.NumRooms()/2 + 1)
	ltptr := s.desc.TeleportNiches()
	vamp := s.desc.TrapdoorNiches()
	for ; ct > 0; ct-- {
		switch {
		case ltptr && s.r.Rn2(6) == 0:
			ltptr = false
			s.makeNiche(level.LevelTeleporter)
		case vamp && s.r.Rn2(6) == 0:
			vamp = false
			s.makeNiche(level.TrapDoor)
		default:
			s.makeNiche(level.NoTrap)
		}
	}
}

// makeNiche digs a one-cell corridor above or below a random ordinary
// room, behind a door that is usually secret. Niches without a trap are
// sometimes sealed off and hold a few objects instead.
func (s *Synthesizer) makeNiche(trap level.TrapKind) {
	rooms := s.b.Rooms()
	if len(rooms) == 0 || len(s.b.Doors()) >= level.DoorMax {
		return
	}
	for vct := 8; vct > 0; vct-- {
		aroom := rooms[s.r.Rn2(len(rooms))]
		if aroom.Type != level.Ordinary {
			continue
		}
		if aroom.DoorCount == 1 && s.r.Rn2(5) != 0 {
			continue
		}
		var dd world.Coord
		var dy int
		if s.r.Rn2(2) != 0 {
			dy = 1
			dd = s.finddpos(aroom.Lx, aroom.Hy+1, aroom.Hx, aroom.Hy+1)
		} else {
			dy = -1
			dd = s.finddpos(aroom.Lx, aroom.Ly-1, aroom.Hx, aroom.Ly-1)
		}
		xx, yy := dd.X, dd.Y
		if s.b.Terrain(xx, yy+dy) != world.Stone {
			continue
		}

		id := s.b.NewCorridor()
		if trap != level.NoTrap || s.r.Rn2(4) == 0 {
			s.b.DigCell(xx, yy+dy, world.Corr, id)
			if trap != level.NoTrap {
				if (trap == level.Hole || trap == level.TrapDoor) && !s.CanFallThrough() {
					trap = level.RockTrap
				}
				s.b.AddTrap(xx, yy+dy, trap)
				if text, ok := nicheEngravings[trap]; ok {
					text = strings.TrimLeft(wipeout(s.r, text, 5), " ")
					s.b.Engrave(xx, yy-dy, text, level.Dust)
				}
			}
			s.dosdoor(xx, yy, aroom, s.r.Rn2(5) != 0)
			return
		}

		s.b.DigCell(xx, yy+dy, world.Corr, id)
		if s.r.Rn2(7) != 0 {
			s.dosdoor(xx, yy, aroom, s.r.Rn2(5) != 0)
		} else {
			// inaccessible niches occasionally have iron bars
			if s.r.Rn2(5) == 0 && s.b.Terrain(xx, yy).IsWall() {
				s.b.SetTerrain(xx, yy, world.IronBars)
				if s.r.Rn2(3) != 0 {
					s.b.RequestObject(level.ObjectRequest{X: xx, Y: yy + dy, ID: "corpse", Class: "@", Quantity: 1, Reason: "niche"})
				}
			}
			if !s.desc.NoTeleport {
				s.b.RequestObject(level.ObjectRequest{X: xx, Y: yy + dy, ID: "scroll of teleportation", Quantity: 1, Reason: "niche"})
			}
			if s.r.Rn2(3) == 0 {
				s.b.RequestObject(level.ObjectRequest{X: xx, Y: yy + dy, Quantity: 1, Reason: "niche"})
			}
		}
		return
	}
}

// MakeVault turns the reserved vault position into a closed, lit 2x2
// room full of gold. If the position got crowded by corridors, one more
// position is tried.
func (s *Synthesizer) MakeVault() {
	defer s.tag("vault")()
	if s.vault == nil {
		return
	}
	x, y := s.vault.X, s.vault.Y
	w, h := 1, 1
	if s.checkRoom(&x, &w, &y, &h, true) {
		s.fillVault(x, y, w, h)
		return
	}
	if _, ok := s.pool.Allocate(s.r); !ok {
		return
	}
	s.vault = nil
	req := RandomRoom(level.Vault)
	req.W, req.H = 2, 2
	req.Lit = LitOn
	if _, ok := s.CreateRoom(req); !ok || s.vault == nil {
		return
	}
	x, y = s.vault.X, s.vault.Y
	w, h = 1, 1
	if s.checkRoom(&x, &w, &y, &h, true) {
		s.fillVault(x, y, w, h)
	}
}

func (s *Synthesizer) fillVault(x, y, w, h int) {
	room := s.b.AddRoom(x, y, x+w, y+h, true, level.Vault, false)
	s.threshold++
	depth := max(abs(s.desc.Depth), 1)
	for vx := room.Lx; vx <= room.Hx; vx++ {
		for vy := room.Ly; vy <= room.Hy; vy++ {
			s.b.RequestGold(vx, vy, s.r.Rn1(depth*100, 51))
		}
	}
	// Fort Ludios portal roll; no portal is ever built here.
	s.r.Rn2(3)
	if !s.desc.NoTeleport && s.r.Rn2(3) == 0 {
		s.makeNiche(level.TeleportTrap)
	}
}
