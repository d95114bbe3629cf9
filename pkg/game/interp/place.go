package interp

import (
	"fmt"

	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/level"
	"delvegen/pkg/game/script"
)

// locationTries bounds random picks before falling back to a scan.
const locationTries = 100

// location resolves sp against the current frame. Fixed spots are
// returned as is when ok accepts them. Random spots are rolled up to
// locationTries times (somexy in a room, a uniform cell of the frame
// otherwise), then the frame is scanned for the first acceptable cell.
// found is false when nothing qualifies.
func (in *Interpreter) location(sp script.Spot, ok func(x, y int) bool) (c world.Coord, found bool, err error) {
	f := in.top()
	if sp.In != "" {
		return in.regionLocation(sp.In, ok)
	}
	if sp.X != script.Random && sp.Y != script.Random {
		c = world.Coord{X: f.origin.X + sp.X, Y: f.origin.Y + sp.Y}
		return c, world.InBounds(c.X, c.Y) && ok(c.X, c.Y), nil
	}
	for try := 0; try < locationTries; try++ {
		if f.room != nil {
			var got bool
			if c, got = in.b.SomeXY(f.room); !got {
				continue
			}
		} else {
			c.X = f.origin.X + in.r.Rn2(f.w)
			c.Y = f.origin.Y + in.r.Rn2(f.h)
		}
		if world.InBounds(c.X, c.Y) && ok(c.X, c.Y) {
			return c, true, nil
		}
	}
	for dx := 0; dx < f.w; dx++ {
		for dy := 0; dy < f.h; dy++ {
			x, y := f.origin.X+dx, f.origin.Y+dy
			if world.InBounds(x, y) && ok(x, y) {
				return world.Coord{X: x, Y: y}, true, nil
			}
		}
	}
	return world.Coord{}, false, nil
}

func (in *Interpreter) regionLocation(name string, ok func(x, y int) bool) (world.Coord, bool, error) {
	reg, defined := in.b.Region(name)
	if !defined {
		return world.Coord{}, false, fmt.Errorf("%w: %q", ErrUndefinedRegion, name)
	}
	if len(reg.Cells) == 0 {
		return world.Coord{}, false, nil
	}
	for try := 0; try < locationTries; try++ {
		c := reg.Cells[in.r.Rn2(len(reg.Cells))]
		if ok(c.X, c.Y) {
			return c, true, nil
		}
	}
	for _, c := range reg.Cells {
		if ok(c.X, c.Y) {
			return c, true, nil
		}
	}
	return world.Coord{}, false, nil
}

// dry accepts floor-like cells without furniture, liquid or a trap.
func (in *Interpreter) dry(x, y int) bool {
	return in.b.Terrain(x, y).IsDry() && !in.b.Occupied(x, y)
}

func (in *Interpreter) place(what string, sp script.Spot, ok func(x, y int) bool) (world.Coord, bool, error) {
	in.r.PushTag(what)
	defer in.r.PopTag()
	c, found, err := in.location(sp, ok)
	if err != nil {
		return c, false, err
	}
	if !found {
		in.b.Logf("interp: no place for %s at %+v", what, sp)
	}
	return c, found, nil
}

func (in *Interpreter) stair(d script.Stair) error {
	what := "down stairs"
	if d.Up {
		what = "up stairs"
	}
	c, found, err := in.place(what, d.Spot, in.dry)
	if err != nil || !found {
		return err
	}
	in.b.AddStair(c.X, c.Y, d.Up, in.b.RoomAt(c.X, c.Y))
	return nil
}

func (in *Interpreter) feature(d script.Feature) error {
	switch d.Kind {
	case world.Fountain, world.Sink, world.Throne, world.Grave, world.Tree:
	default:
		return fmt.Errorf("%w: feature %v", ErrMalformed, d.Kind)
	}
	c, found, err := in.place(d.Kind.String(), d.Spot, in.dry)
	if err != nil || !found {
		return err
	}
	if d.Kind == world.Grave {
		in.s.MakeGrave(c.X, c.Y, "")
		return nil
	}
	in.b.SetTerrain(c.X, c.Y, d.Kind)
	return nil
}

func (in *Interpreter) altar(d script.Altar) error {
	c, found, err := in.place("altar", d.Spot, in.dry)
	if err != nil || !found {
		return err
	}
	align := d.Align
	if d.RandomAlign {
		align = level.Alignment(in.r.Rn2(3) - 1)
	}
	in.b.AddAltar(c.X, c.Y, align, d.Shrine)
	return nil
}

func (in *Interpreter) trap(d script.Trap) error {
	kind := d.Kind
	if kind <= level.NoTrap || kind >= level.TrapNum {
		kind = in.s.RandomTrapKind()
	}
	if (kind == level.Hole || kind == level.TrapDoor) && !in.s.CanFallThrough() {
		kind = level.RockTrap
	}
	c, found, err := in.place(kind.String()+" trap", d.Spot, func(x, y int) bool {
		t := in.b.Terrain(x, y)
		return (t == world.Room || t == world.Corr) && in.b.TrapAt(x, y) == level.NoTrap
	})
	if err != nil || !found {
		return err
	}
	in.b.AddTrap(c.X, c.Y, kind)
	if kind == level.Web && d.Spider != script.No {
		in.b.RequestMonster(level.MonsterRequest{X: c.X, Y: c.Y, ID: "giant spider", Reason: "web"})
	}
	return nil
}

func (in *Interpreter) object(d script.Object) error {
	c, found, err := in.place("object", d.Spot, func(x, y int) bool {
		return in.b.Terrain(x, y).Accessible()
	})
	if err != nil || !found {
		return err
	}
	in.b.RequestObject(level.ObjectRequest{
		X: c.X, Y: c.Y, ID: d.ID, Class: d.Class,
		Quantity: max(d.Quantity, 1), Buried: d.Buried, Reason: "script",
	})
	return nil
}

func (in *Interpreter) monster(d script.Monster) error {
	c, found, err := in.place("monster", d.Spot, func(x, y int) bool {
		return in.b.Terrain(x, y).Accessible() && !in.b.MonsterAt(x, y)
	})
	if err != nil || !found {
		return err
	}
	in.b.RequestMonster(level.MonsterRequest{
		X: c.X, Y: c.Y, ID: d.ID, Class: d.Class, Asleep: d.Asleep, Reason: "script",
	})
	return nil
}

func (in *Interpreter) engraving(d script.Engraving) error {
	if d.Text == "" {
		return fmt.Errorf("%w: empty engraving", ErrMalformed)
	}
	c, found, err := in.place("engraving", d.Spot, func(x, y int) bool {
		return in.b.Terrain(x, y).IsDry()
	})
	if err != nil || !found {
		return err
	}
	in.b.Engrave(c.X, c.Y, d.Text, d.Kind)
	return nil
}
