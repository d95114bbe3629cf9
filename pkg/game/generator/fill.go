package generator

import (
	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/level"
)

// FillRooms stocks every ordinary room that asked to be filled, in room
// order. Subrooms are filled before their parent.
func (s *Synthesizer) FillRooms() {
	defer s.tag("fill")()
	for _, r := range s.b.Rooms() {
		s.fillRoom(r)
	}
}

func (s *Synthesizer) fillRoom(croom *level.Room) {
	if croom.Type != level.Ordinary && croom.Type != level.Themed {
		return
	}
	for _, sub := range croom.Subrooms {
		s.fillRoom(sub)
	}
	if !croom.NeedFill {
		return
	}
	diff := s.desc.Difficulty
	depth := abs(s.desc.Depth)

	// a sleeping monster
	if s.r.Rn2(3) == 0 {
		if c, ok := s.b.SomeXY(croom); ok {
			name, made := s.b.RequestMonster(level.MonsterRequest{X: c.X, Y: c.Y, Reason: "room"})
			if made && name == "giant spider" && !s.b.Occupied(c.X, c.Y) {
				s.b.AddTrap(c.X, c.Y, level.Web)
			}
		}
	}

	x := 8 - diff/6
	if x <= 1 {
		x = 2
	}
	for s.r.Rn2(x) == 0 {
		s.MakeTrap(level.NoTrap, croom)
	}
	if s.r.Rn2(3) == 0 {
		if c, ok := s.b.SomeXY(croom); ok {
			s.mkgold(0, c.X, c.Y)
		}
	}
	if s.r.Rn2(10) == 0 {
		s.mkfount(croom)
	}
	if s.r.Rn2(60) == 0 {
		s.mksink(croom)
	}
	if s.r.Rn2(60) == 0 {
		s.mkaltar(croom)
	}
	x = 80 - depth*2
	if x < 2 {
		x = 2
	}
	if s.r.Rn2(x) == 0 {
		s.mkgrave(croom)
	}

	if s.r.Rn2(20) == 0 {
		if c, ok := s.b.SomeXY(croom); ok {
			s.b.RequestObject(level.ObjectRequest{X: c.X, Y: c.Y, ID: "statue", Quantity: 1, Reason: "room"})
		}
	}
	// 40% chance for at least one box regardless of the number of rooms
	if s.r.Rn2(max(s.b.NumRooms()*5/2, 1)) == 0 {
		id := "chest"
		if s.r.Rn2(3) != 0 {
			id = "large box"
		}
		if c, ok := s.b.SomeXY(croom); ok {
			s.b.RequestObject(level.ObjectRequest{X: c.X, Y: c.Y, ID: id, Quantity: 1, Reason: "room"})
		}
	}

	if s.r.Rn2(27+3*depth) == 0 {
		text := randomEngraving(s.r)
		var c world.Coord
		ok := false
		for {
			c, ok = s.b.SomeXY(croom)
			if !ok || s.b.Terrain(c.X, c.Y) == world.Room || s.r.Rn2(40) != 0 {
				break
			}
		}
		t := s.b.Terrain(c.X, c.Y)
		if ok && text != "" && !t.IsPool() && !t.IsFurniture() {
			s.b.Engrave(c.X, c.Y, text, level.Mark)
		}
	}

	if s.r.Rn2(3) == 0 {
		if c, ok := s.b.SomeXY(croom); ok {
			s.b.RequestObject(level.ObjectRequest{X: c.X, Y: c.Y, Quantity: 1, Reason: "room"})
		}
		for tries := 0; s.r.Rn2(5) == 0; {
			if tries++; tries > 100 {
				s.b.Logf("generator: object loop overflow in room %d", croom.Index())
				break
			}
			if c, ok := s.b.SomeXY(croom); ok {
				s.b.RequestObject(level.ObjectRequest{X: c.X, Y: c.Y, Quantity: 1, Reason: "room"})
			}
		}
	}
}

// RandomTrapKind draws trap kinds until one suits the level's
// difficulty and flags.
func (s *Synthesizer) RandomTrapKind() level.TrapKind {
	lvl := s.desc.Difficulty
	noTele := s.desc.NoTeleport
	for {
		kind := level.TrapKind(s.r.Rnd(int(level.TrapNum) - 1))
		switch kind {
		case level.MagicPortal, level.VibratingSquare:
			kind = level.NoTrap
		case level.RollingBoulderTrap, level.SleepingGasTrap:
			if lvl < 2 {
				kind = level.NoTrap
			}
		case level.LevelTeleporter:
			if lvl < 5 || noTele {
				kind = level.NoTrap
			}
		case level.SpikedPit:
			if lvl < 5 {
				kind = level.NoTrap
			}
		case level.LandMine:
			if lvl < 6 {
				kind = level.NoTrap
			}
		case level.Web:
			if lvl < 7 {
				kind = level.NoTrap
			}
		case level.StatueTrap, level.PolyTrap:
			if lvl < 8 {
				kind = level.NoTrap
			}
		case level.FireTrap:
			// only in Gehennom
			kind = level.NoTrap
		case level.TeleportTrap:
			if noTele {
				kind = level.NoTrap
			}
		case level.Hole:
			// much rarer than the others
			if s.r.Rn2(7) != 0 {
				kind = level.NoTrap
			}
		}
		if kind != level.NoTrap {
			return kind
		}
	}
}

// CanFallThrough reports whether holes and trapdoors lead anywhere.
func (s *Synthesizer) CanFallThrough() bool {
	return !s.desc.Bottom && !s.b.Flags().Hardfloor
}

// MakeTrap puts a trap of kind (random for NoTrap) on a free cell of
// croom. Webs come with their spider.
func (s *Synthesizer) MakeTrap(kind level.TrapKind, croom *level.Room) {
	defer s.tag("trap")()
	if kind <= level.NoTrap || kind >= level.TrapNum {
		kind = s.RandomTrapKind()
	}
	if (kind == level.Hole || kind == level.TrapDoor) && !s.CanFallThrough() {
		kind = level.RockTrap
	}
	var c world.Coord
	for tries := 0; ; {
		if tries++; tries > featureTries {
			return
		}
		var ok bool
		if c, ok = s.b.SomeXY(croom); !ok {
			return
		}
		if !s.b.Occupied(c.X, c.Y) {
			break
		}
	}
	s.b.AddTrap(c.X, c.Y, kind)
	if kind == level.Web {
		s.b.RequestMonster(level.MonsterRequest{X: c.X, Y: c.Y, ID: "giant spider", Reason: "web"})
	}
}

// mkgold requests a gold pile; amount 0 rolls one from the difficulty.
func (s *Synthesizer) mkgold(amount, x, y int) {
	if amount <= 0 {
		amount = 1 + s.r.Rnd(s.desc.Difficulty+2)*s.r.Rnd(30)
	}
	s.b.RequestGold(x, y, amount)
}

// furnitureSpot finds a free cell of croom away from doors.
func (s *Synthesizer) furnitureSpot(croom *level.Room) (world.Coord, bool) {
	for tries := 0; tries < featureTries; tries++ {
		c, ok := s.b.SomeXY(croom)
		if !ok {
			return c, false
		}
		if !s.b.Occupied(c.X, c.Y) && !s.b.ByDoor(c.X, c.Y) {
			return c, true
		}
	}
	return world.Coord{}, false
}

func (s *Synthesizer) mkfount(croom *level.Room) {
	c, ok := s.furnitureSpot(croom)
	if !ok {
		return
	}
	s.b.SetTerrain(c.X, c.Y, world.Fountain)
	// blessed fountain
	s.r.Rn2(7)
}

func (s *Synthesizer) mksink(croom *level.Room) {
	if c, ok := s.furnitureSpot(croom); ok {
		s.b.SetTerrain(c.X, c.Y, world.Sink)
	}
}

func (s *Synthesizer) mkaltar(croom *level.Room) {
	if croom.Type != level.Ordinary {
		return
	}
	c, ok := s.furnitureSpot(croom)
	if !ok {
		return
	}
	s.b.AddAltar(c.X, c.Y, level.Alignment(s.r.Rn2(3)-1), false)
}

func (s *Synthesizer) mkgrave(croom *level.Room) {
	bell := s.r.Rn2(10) == 0
	if croom.Type != level.Ordinary {
		return
	}
	c, ok := s.furnitureSpot(croom)
	if !ok {
		return
	}
	text := ""
	if bell {
		text = "Saved by the bell!"
	}
	s.MakeGrave(c.X, c.Y, text)
	if s.r.Rn2(3) == 0 {
		s.mkgold(0, c.X, c.Y)
	}
	for n := s.r.Rn2(5); n > 0; n-- {
		s.b.RequestObject(level.ObjectRequest{X: c.X, Y: c.Y, Quantity: 1, Buried: true, Reason: "grave"})
	}
	if bell {
		s.b.RequestObject(level.ObjectRequest{X: c.X, Y: c.Y, ID: "bell", Quantity: 1, Reason: "grave"})
	}
}

// MakeGrave digs a grave with a headstone; empty text picks an epitaph.
func (s *Synthesizer) MakeGrave(x, y int, text string) {
	t := s.b.Terrain(x, y)
	if (t != world.Room && t != world.Grave) || s.b.TrapAt(x, y) != level.NoTrap {
		return
	}
	s.b.SetTerrain(x, y, world.Grave)
	if text == "" {
		text = randomEpitaph(s.r)
	}
	s.b.Engrave(x, y, text, level.Headstone)
}
