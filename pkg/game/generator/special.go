package generator

import (
	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/dungeon"
	"delvegen/pkg/game/level"
)

// shopKind is one entry of the shop probability table.
type shopKind struct {
	Type level.RoomType
	Prob int
	// Small shops only: wand and book shops in big rooms become general stores.
	SmallOnly bool
}

var shopKinds = []shopKind{
	{Type: level.ShopBase, Prob: 42},
	{Type: level.ArmorShop, Prob: 14},
	{Type: level.ScrollShop, Prob: 10},
	{Type: level.PotionShop, Prob: 10},
	{Type: level.WeaponShop, Prob: 5},
	{Type: level.FoodShop, Prob: 5},
	{Type: level.RingShop, Prob: 3},
	{Type: level.WandShop, Prob: 3, SmallOnly: true},
	{Type: level.ToolShop, Prob: 3},
	{Type: level.BookShop, Prob: 3, SmallOnly: true},
	{Type: level.HealthFoodShop, Prob: 2},
	{Type: level.CandleShop, Prob: 0},
}

// MakeSpecialRoom converts at most one ordinary room into a special
// room. The candidates are tried in a fixed order, each with its own
// depth floor and chance.
func (s *Synthesizer) MakeSpecialRoom() {
	defer s.tag("mkroom")()
	d := s.desc.Depth
	switch {
	case d > 1 && d < dungeon.MedusaDepth && s.b.NumRooms() >= s.threshold && s.r.Rn2(d) < 3:
		s.mkshop()
	case d > 4 && s.r.Rn2(6) == 0:
		s.mkzoo(level.Court)
	case d > 5 && s.r.Rn2(8) == 0:
		s.mkzoo(level.LeprechaunHall)
	case d > 6 && s.r.Rn2(7) == 0:
		s.mkzoo(level.Zoo)
	case d > 8 && s.r.Rn2(5) == 0:
		s.mktemple()
	case d > 9 && s.r.Rn2(5) == 0:
		s.mkzoo(level.Beehive)
	case d > 11 && s.r.Rn2(6) == 0:
		s.mkzoo(level.Morgue)
	case d > 12 && s.r.Rn2(8) == 0:
		s.mkzoo(level.AntHole)
	case d > 14 && s.r.Rn2(4) == 0:
		s.mkzoo(level.Barracks)
	case d > 15 && s.r.Rn2(6) == 0:
		s.mkswamp()
	case d > 16 && s.r.Rn2(8) == 0:
		s.mkzoo(level.CockatriceNest)
	}
}

// MakeRoomOfType builds one special room of type t, as a script would
// ask for it.
func (s *Synthesizer) MakeRoomOfType(t level.RoomType) {
	defer s.tag("mkroom")()
	switch {
	case t.IsShop():
		s.mkshop()
	case t == level.Temple:
		s.mktemple()
	case t == level.Swamp:
		s.mkswamp()
	case t == level.Ordinary, t == level.Themed, t == level.Vault, t == level.Delphi:
		s.b.Logf("generator: %v is not a special room kind", t)
	default:
		s.mkzoo(t)
	}
}

// pickRoom starts at a random room and returns the first ordinary room
// that suits a special room: no up stairs, down stairs rarely (never when
// strict), and preferably a single door.
func (s *Synthesizer) pickRoom(strict bool) *level.Room {
	rooms := s.b.Rooms()
	n := len(rooms)
	if n == 0 {
		return nil
	}
	i := s.r.Rn2(n)
	for left := n; left > 0; left, i = left-1, i+1 {
		if i == n {
			i = 0
		}
		r := rooms[i]
		if r.Type != level.Ordinary {
			continue
		}
		if !strict {
			if s.b.HasUpStairs(r) || (s.b.HasDownStairs(r) && s.r.Rn2(3) != 0) {
				continue
			}
		} else if s.b.HasUpStairs(r) || s.b.HasDownStairs(r) {
			continue
		}
		if r.DoorCount == 1 || s.r.Rn2(5) == 0 {
			return r
		}
	}
	return nil
}

func isBig(r *level.Room) bool { return r.Width()*r.Height() > 20 }

func (s *Synthesizer) mkshop() {
	var sroom *level.Room
	for _, r := range s.b.Rooms() {
		if r.Type != level.Ordinary {
			continue
		}
		if s.b.HasDownStairs(r) || s.b.HasUpStairs(r) {
			continue
		}
		if r.DoorCount == 1 {
			sroom = r
			break
		}
	}
	if sroom == nil {
		return
	}
	if !sroom.Lit {
		for x := sroom.Lx - 1; x <= sroom.Hx+1; x++ {
			for y := sroom.Ly - 1; y <= sroom.Hy+1; y++ {
				if c := s.b.Grid().At(x, y); c != nil {
					c.Lit = true
				}
			}
		}
		sroom.Lit = true
	}
	j := s.r.Rnd(100)
	i := 0
	for j -= shopKinds[i].Prob; j > 0; j -= shopKinds[i].Prob {
		i++
	}
	if isBig(sroom) && shopKinds[i].SmallOnly {
		i = 0
	}
	sroom.Type = shopKinds[i].Type
	s.stockShop(sroom)
}

// shopDoor returns the shop's door and the floor cell just inside it.
func (s *Synthesizer) shopDoor(sroom *level.Room) (door, inside world.Coord, ok bool) {
	doors := s.b.Doors()
	if sroom.DoorCount == 0 || sroom.FirstDoor >= len(doors) {
		return
	}
	d := doors[sroom.FirstDoor]
	door = world.Coord{X: d.X, Y: d.Y}
	inside = door
	switch {
	case d.X == sroom.Lx-1:
		inside.X++
	case d.X == sroom.Hx+1:
		inside.X--
	case d.Y == sroom.Ly-1:
		inside.Y++
	case d.Y == sroom.Hy+1:
		inside.Y--
	default:
		return
	}
	return door, inside, true
}

// doorRow reports floor cells on the row or column the room's first door
// opens onto; shopkeepers and sleeping zoo monsters leave them free.
func (s *Synthesizer) doorRow(r *level.Room, x, y int) bool {
	doors := s.b.Doors()
	if r.DoorCount == 0 || r.FirstDoor >= len(doors) {
		return false
	}
	d := doors[r.FirstDoor]
	return (x == r.Lx && d.X == x-1) || (x == r.Hx && d.X == x+1) ||
		(y == r.Ly && d.Y == y-1) || (y == r.Hy && d.Y == y+1)
}

func (s *Synthesizer) stockShop(sroom *level.Room) {
	door, inside, ok := s.shopDoor(sroom)
	if !ok {
		s.b.Logf("generator: shop in room %d has no usable door", sroom.Index())
		return
	}
	if _, ok := s.b.RequestMonster(level.MonsterRequest{X: inside.X, Y: inside.Y, ID: "shopkeeper", Reason: sroom.Type.String()}); !ok {
		return
	}
	c := s.b.Grid().At(door.X, door.Y)
	if c.DoorMask == world.DoorNone {
		c.DoorMask = world.DoorOpen
	}
	if c.Terrain == world.SDoor {
		c.Terrain = world.Door
	}
	if c.DoorMask&world.DoorTrapped != 0 {
		c.DoorMask = world.DoorNone
	}
	if c.DoorMask == world.DoorLocked {
		m, n := door.X, door.Y
		if sroom.Inside(m+1, n) {
			m--
		} else if sroom.Inside(m-1, n) {
			m++
		}
		if sroom.Inside(m, n+1) {
			n--
		} else if sroom.Inside(m, n-1) {
			n++
		}
		s.b.Engrave(m, n, "Closed for inventory", level.Dust)
	}

	for x := sroom.Lx; x <= sroom.Hx; x++ {
		for y := sroom.Ly; y <= sroom.Hy; y++ {
			if s.doorRow(sroom, x, y) {
				continue
			}
			if s.r.Rn2(100) < s.desc.Depth && !s.b.MonsterAt(x, y) {
				s.b.RequestMonster(level.MonsterRequest{X: x, Y: y, Class: "m", Reason: "shop mimic"})
				continue
			}
			s.r.Rnd(100)
			s.b.RequestObject(level.ObjectRequest{X: x, Y: y, Class: sroom.Type.String(), Quantity: 1, Reason: "shop stock"})
		}
	}
}

func (s *Synthesizer) mkzoo(t level.RoomType) {
	if sroom := s.pickRoom(false); sroom != nil {
		sroom.Type = t
		s.fillZoo(sroom)
	}
}

// fillZoo puts a sleeping monster on every free floor cell of a zoo-like
// room, plus the room kind's treasure.
func (s *Synthesizer) fillZoo(sroom *level.Room) {
	diff := s.desc.Difficulty
	var tx, ty, goldlim int
	switch sroom.Type {
	case level.Court:
		for i := 100; i > 0; i-- {
			c, _ := s.b.SomeXY(sroom)
			tx, ty = c.X, c.Y
			if !s.b.Occupied(tx, ty) {
				break
			}
		}
	case level.Beehive:
		tx = sroom.Lx + (sroom.Hx-sroom.Lx+1)/2
		ty = sroom.Ly + (sroom.Hy-sroom.Ly+1)/2
	case level.Zoo, level.LeprechaunHall:
		goldlim = 500 * diff
	}

	doors := s.b.Doors()
	for sx := sroom.Lx; sx <= sroom.Hx; sx++ {
		for sy := sroom.Ly; sy <= sroom.Hy; sy++ {
			if s.doorRow(sroom, sx, sy) {
				continue
			}
			if sroom.Type == level.Court && s.b.Terrain(sx, sy) == world.Throne {
				continue
			}
			req := level.MonsterRequest{X: sx, Y: sy, Asleep: true, Reason: sroom.Type.String()}
			switch sroom.Type {
			case level.Court:
				req.Class, req.ID = s.courtMonster()
			case level.Barracks:
				req.ID = s.squadMonster()
			case level.Morgue:
				req.Class, req.ID = s.morgueMonster()
			case level.Beehive:
				req.ID = "killer bee"
				if sx == tx && sy == ty {
					req.ID = "queen bee"
				}
			case level.LeprechaunHall:
				req.ID = "leprechaun"
			case level.CockatriceNest:
				req.ID = "cockatrice"
			case level.AntHole:
				req.ID = s.antholeMonster()
			}
			s.b.RequestMonster(req)

			switch sroom.Type {
			case level.Zoo, level.LeprechaunHall:
				var i int
				if sroom.DoorCount > 0 && sroom.FirstDoor < len(doors) {
					d := doors[sroom.FirstDoor]
					dist := (sx-d.X)*(sx-d.X) + (sy-d.Y)*(sy-d.Y)
					i = dist * dist
				} else {
					i = goldlim
				}
				if i >= goldlim {
					i = 5 * diff
				}
				goldlim -= i
				s.b.RequestGold(sx, sy, s.r.Rn1(i, 10))
			case level.Morgue:
				if s.r.Rn2(5) == 0 {
					s.b.RequestObject(level.ObjectRequest{X: sx, Y: sy, ID: "corpse", Quantity: 1, Reason: "morgue"})
				}
				if s.r.Rn2(10) == 0 {
					s.requestBox(sx, sy, "morgue")
				}
				if s.r.Rn2(5) == 0 {
					s.MakeGrave(sx, sy, "")
				}
			case level.Beehive:
				if s.r.Rn2(3) == 0 {
					s.b.RequestObject(level.ObjectRequest{X: sx, Y: sy, ID: "lump of royal jelly", Quantity: 1, Reason: "beehive"})
				}
			case level.Barracks:
				if s.r.Rn2(20) == 0 {
					s.requestBox(sx, sy, "barracks")
				}
			case level.CockatriceNest:
				if s.r.Rn2(3) == 0 {
					s.b.RequestObject(level.ObjectRequest{X: sx, Y: sy, ID: "statue", Quantity: 1, Reason: "cockatrice nest"})
					for i := s.r.Rn2(5); i > 0; i-- {
						s.b.RequestObject(level.ObjectRequest{X: sx, Y: sy, Quantity: 1, Buried: true, Reason: "statue contents"})
					}
				}
			case level.AntHole:
				if s.r.Rn2(3) == 0 {
					s.b.RequestObject(level.ObjectRequest{X: sx, Y: sy, Class: "%", Quantity: 1, Reason: "anthole"})
				}
			}
		}
	}

	switch sroom.Type {
	case level.Court:
		s.b.SetTerrain(tx, ty, world.Throne)
		c, _ := s.b.SomeXY(sroom)
		gold := s.r.Rn1(50*diff, 10)
		s.b.RequestObject(level.ObjectRequest{X: c.X, Y: c.Y, ID: "chest", Quantity: 1, Reason: "royal coffers"})
		s.b.RequestObject(level.ObjectRequest{X: c.X, Y: c.Y, ID: "gold piece", Quantity: gold, Buried: true, Reason: "royal coffers"})
	case level.Morgue:
		f := s.b.Flags()
		f.Graveyard = true
		s.b.SetFlags(f)
	}
}

func (s *Synthesizer) requestBox(x, y int, reason string) {
	id := "chest"
	if s.r.Rn2(3) != 0 {
		id = "large box"
	}
	s.b.RequestObject(level.ObjectRequest{X: x, Y: y, ID: id, Quantity: 1, Reason: reason})
}

// courtMonster picks a throne room courtier; stronger ones get likelier
// with difficulty.
func (s *Synthesizer) courtMonster() (class, id string) {
	i := s.r.Rn2(60) + s.r.Rn2(3*s.desc.Difficulty)
	switch {
	case i > 100:
		return "D", ""
	case i > 95:
		return "H", ""
	case i > 85:
		return "T", ""
	case i > 75:
		return "C", ""
	case i > 60:
		return "o", ""
	case i > 45:
		return "", "bugbear"
	case i > 30:
		return "", "hobgoblin"
	case i > 15:
		return "G", ""
	default:
		return "k", ""
	}
}

var squad = []struct {
	id   string
	prob int
}{
	{"soldier", 80}, {"sergeant", 15}, {"lieutenant", 4}, {"captain", 1},
}

func (s *Synthesizer) squadMonster() string {
	sel := s.r.Rnd(80 + s.desc.Difficulty)
	cpro := 0
	for _, m := range squad {
		cpro += m.prob
		if cpro > sel {
			return m.id
		}
	}
	return squad[s.r.Rn2(len(squad))].id
}

func (s *Synthesizer) morgueMonster() (class, id string) {
	i := s.r.Rn2(100)
	hd := s.r.Rn2(s.desc.Difficulty)
	if hd > 10 && i < 10 {
		return "&", ""
	}
	if hd > 8 && i > 85 {
		return "V", ""
	}
	switch {
	case i < 20:
		return "", "ghost"
	case i < 40:
		return "", "wraith"
	default:
		return "Z", ""
	}
}

// antholeMonster keeps one ant kind per level without drawing.
func (s *Synthesizer) antholeMonster() string {
	switch (int(s.r.Seed()%3) + s.desc.Difficulty) % 3 {
	case 0:
		return "soldier ant"
	case 1:
		return "fire ant"
	default:
		return "giant beetle"
	}
}

// mktemple builds a temple with a shrine in the room's centre.
func (s *Synthesizer) mktemple() {
	sroom := s.pickRoom(true)
	if sroom == nil {
		return
	}
	sroom.Type = level.Temple
	x := sroom.Lx + (sroom.Hx-sroom.Lx)/2
	y := sroom.Ly + (sroom.Hy-sroom.Ly)/2
	align := level.Alignment(s.r.Rn2(3) - 1)
	s.b.AddAltar(x, y, align, true)
	s.b.RequestMonster(level.MonsterRequest{X: x, Y: y, ID: "aligned priest", Reason: align.String() + " temple"})
}

// mkswamp floods up to five rooms in a checkerboard, leaving the cells
// next to doors dry, and stocks the water with eels.
func (s *Synthesizer) mkswamp() {
	rooms := s.b.Rooms()
	if len(rooms) == 0 {
		return
	}
	eels := 0
	for i := 0; i < 5; i++ {
		sroom := rooms[s.r.Rn2(len(rooms))]
		if sroom.Type != level.Ordinary || s.b.HasUpStairs(sroom) || s.b.HasDownStairs(sroom) {
			continue
		}
		sroom.Type = level.Swamp
		for sx := sroom.Lx; sx <= sroom.Hx; sx++ {
			for sy := sroom.Ly; sy <= sroom.Hy; sy++ {
				if s.b.ObjectAt(sx, sy) || s.b.MonsterAt(sx, sy) || s.b.TrapAt(sx, sy) != level.NoTrap || s.b.NextToDoor(sx, sy) {
					continue
				}
				if (sx+sy)%2 != 0 {
					s.b.SetTerrain(sx, sy, world.Pool)
					if eels == 0 || s.r.Rn2(4) == 0 {
						id := "giant eel"
						if s.r.Rn2(5) == 0 {
							if s.r.Rn2(2) != 0 {
								id = "piranha"
							} else {
								id = "electric eel"
							}
						}
						s.b.RequestMonster(level.MonsterRequest{X: sx, Y: sy, ID: id, Reason: "swamp"})
						eels++
					}
				} else if s.r.Rn2(4) == 0 {
					s.b.RequestMonster(level.MonsterRequest{X: sx, Y: sy, Class: "F", Reason: "swamp"})
				}
			}
		}
	}
}
