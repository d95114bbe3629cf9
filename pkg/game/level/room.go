package level

import (
	"github.com/zyedidia/generic/mapset"

	"delvegen/pkg/engine/world"
)

// RoomType identifies what a room was built as. The numbering follows the
// NetHack room kinds.
type RoomType int

const (
	Ordinary RoomType = iota
	Themed
	Court
	Swamp
	Vault
	Beehive
	Morgue
	Barracks
	Zoo
	Delphi
	Temple
	LeprechaunHall
	CockatriceNest
	AntHole
	ShopBase
	ArmorShop
	ScrollShop
	PotionShop
	WeaponShop
	FoodShop
	RingShop
	WandShop
	ToolShop
	BookShop
	HealthFoodShop
	CandleShop
)

var roomTypeNames = map[RoomType]string{
	Ordinary:       "ordinary",
	Themed:         "themed",
	Court:          "throne room",
	Swamp:          "swamp",
	Vault:          "vault",
	Beehive:        "beehive",
	Morgue:         "morgue",
	Barracks:       "barracks",
	Zoo:            "zoo",
	Delphi:         "delphi",
	Temple:         "temple",
	LeprechaunHall: "leprechaun hall",
	CockatriceNest: "cockatrice nest",
	AntHole:        "anthole",
	ShopBase:       "general store",
	ArmorShop:      "armor shop",
	ScrollShop:     "scroll shop",
	PotionShop:     "potion shop",
	WeaponShop:     "weapon shop",
	FoodShop:       "delicatessen",
	RingShop:       "jewelers",
	WandShop:       "wand shop",
	ToolShop:       "hardware store",
	BookShop:       "rare books",
	HealthFoodShop: "health food store",
	CandleShop:     "lighting store",
}

func (t RoomType) String() string {
	if n, ok := roomTypeNames[t]; ok {
		return n
	}
	return "unknown"
}

// IsShop reports any shop kind
func (t RoomType) IsShop() bool { return t >= ShopBase }

// Room is a rectangular (or irregular) room. Lx..Hx and Ly..Hy are the
// floor; walls sit one cell outside.
type Room struct {
	Lx, Ly, Hx, Hy int

	Type       RoomType
	Lit        bool
	Irregular  bool
	NeedFill   bool
	Borderless bool

	DoorCount int
	FirstDoor int

	Parent   *Room
	Subrooms []*Room

	index int
	id    int
	cells mapset.Set[world.Coord]
}

// Index returns the room's position in the level's room list, or its
// position among its parent's subrooms.
func (r *Room) Index() int { return r.index }

// Width returns the floor width
func (r *Room) Width() int { return r.Hx - r.Lx + 1 }

// Height returns the floor height
func (r *Room) Height() int { return r.Hy - r.Ly + 1 }

// Floor returns the floor rectangle
func (r *Room) Floor() world.Rect { return world.Rect{Lx: r.Lx, Ly: r.Ly, Hx: r.Hx, Hy: r.Hy} }

// Walls returns the floor rectangle grown by the wall ring
func (r *Room) Walls() world.Rect {
	return world.Rect{Lx: r.Lx - 1, Ly: r.Ly - 1, Hx: r.Hx + 1, Hy: r.Hy + 1}
}

// Inside reports whether x/y is on the room's floor. Irregular rooms test
// their own cell set.
func (r *Room) Inside(x, y int) bool {
	if r.Irregular {
		return r.cells.Has(world.Coord{X: x, Y: y})
	}
	return r.Floor().ContainsPoint(x, y)
}

// InsideWithWalls reports whether x/y is on the floor or the wall ring.
func (r *Room) InsideWithWalls(x, y int) bool {
	return r.Walls().ContainsPoint(x, y)
}

// Ancestor reports whether a is r or one of r's enclosing rooms.
func (r *Room) Ancestor(a *Room) bool {
	for p := r; p != nil; p = p.Parent {
		if p == a {
			return true
		}
	}
	return false
}
