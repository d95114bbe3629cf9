// Package themes is the built-in catalogue of themed rooms. Each theme
// builds one room at level scope, usually with a contents callback that
// decorates it. Selection is done by the interpreter.
package themes

import (
	"delvegen/pkg/engine/rng"
	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/level"
	"delvegen/pkg/game/script"
)

// DefaultFrequency is the weight of the plain random room. Every other
// theme weighs 1, so most rooms stay ordinary.
const DefaultFrequency = 1000

// Catalogue returns the built-in themes in selection order.
func Catalogue() []script.Theme {
	return []script.Theme{
		{Name: "default", Frequency: DefaultFrequency, Build: plainRoom},
		{Name: "fake delphi", Frequency: 1, Build: fakeDelphi},
		{Name: "room in a room", Frequency: 1, Build: roomInRoom},
		{Name: "huge room", Frequency: 1, Build: hugeRoom},
		{Name: "nesting rooms", Frequency: 1, Build: nestingRooms},
		{Name: "pillars", Frequency: 1, Build: pillars},
		{Name: "temple of the gods", Frequency: 1, MinDifficulty: 5, Build: templeOfTheGods},
		{Name: "boulder room", Frequency: 1, MinDifficulty: 4, Build: themedFill(boulderRoom)},
		{Name: "spider nest", Frequency: 1, MinDifficulty: 10, Build: themedFill(spiderNest)},
		{Name: "trap room", Frequency: 1, Build: themedFill(trapRoom)},
		{Name: "garden", Frequency: 1, MinDifficulty: 4, Build: themedFill(garden)},
		{Name: "buried treasure", Frequency: 1, Build: themedFill(buriedTreasure)},
		{Name: "massacre", Frequency: 1, MinDifficulty: 5, Build: themedFill(massacre)},
		{Name: "statuary", Frequency: 1, Build: themedFill(statuary)},
		{Name: "light source", Frequency: 1, Build: lightSource},
		{Name: "storeroom", Frequency: 1, Build: themedFill(storeroom)},
	}
}

// Plain returns a catalogue holding only the default room.
func Plain() []script.Theme {
	return Catalogue()[:1]
}

func plainRoom(sc script.Scope) error {
	r := script.RandomRoom(level.Ordinary)
	r.Filled = true
	return sc.Run(r)
}

// subroomWithDoor is a subroom entered through one random door.
func subroomWithDoor(r script.Room) script.Room {
	r.Contents = func(sc script.Scope) error {
		return sc.Run(script.RoomDoor())
	}
	return r
}

func fakeDelphi(sc script.Scope) error {
	outer := script.RandomRoom(level.Ordinary)
	outer.W, outer.H = 11, 9
	outer.Filled = true
	outer.Contents = func(sc script.Scope) error {
		inner := script.RandomRoom(level.Ordinary)
		inner.X, inner.Y, inner.W, inner.H = 4, 3, 3, 3
		inner.Filled = true
		return sc.Run(subroomWithDoor(inner))
	}
	return sc.Run(outer)
}

func roomInRoom(sc script.Scope) error {
	outer := script.RandomRoom(level.Ordinary)
	outer.Filled = true
	outer.Contents = func(sc script.Scope) error {
		return sc.Run(subroomWithDoor(script.RandomRoom(level.Ordinary)))
	}
	return sc.Run(outer)
}

func hugeRoom(sc script.Scope) error {
	r := sc.RNG()
	outer := script.RandomRoom(level.Ordinary)
	outer.W = r.Rn2(10) + 11
	outer.H = r.Rn2(5) + 8
	outer.Filled = true
	outer.Contents = func(sc script.Scope) error {
		if !sc.RNG().Percent(90) {
			return nil
		}
		inner := script.RandomRoom(level.Ordinary)
		inner.Filled = true
		inner.Contents = func(sc script.Scope) error {
			if err := sc.Run(script.RoomDoor()); err != nil {
				return err
			}
			if sc.RNG().Percent(50) {
				return sc.Run(script.RoomDoor())
			}
			return nil
		}
		return sc.Run(inner)
	}
	return sc.Run(outer)
}

// nested sizes a subroom between half and all but two cells of the
// current frame.
func nested(sc script.Scope) (w, h int, ok bool) {
	if sc.Width() < 4 || sc.Height() < 4 {
		return 0, 0, false
	}
	r := sc.RNG()
	w = r.Range(sc.Width()/2, sc.Width()-2)
	h = r.Range(sc.Height()/2, sc.Height()-2)
	return w, h, true
}

func nestingRooms(sc script.Scope) error {
	r := sc.RNG()
	outer := script.RandomRoom(level.Ordinary)
	outer.W = 9 + r.Rn2(4)
	outer.H = 9 + r.Rn2(4)
	outer.Filled = true
	outer.Contents = func(sc script.Scope) error {
		w, h, ok := nested(sc)
		if !ok {
			return nil
		}
		mid := script.RandomRoom(level.Ordinary)
		mid.W, mid.H = w, h
		mid.Filled = true
		mid.Contents = func(sc script.Scope) error {
			if w, h, ok := nested(sc); ok {
				inner := script.RandomRoom(level.Ordinary)
				inner.W, inner.H = w, h
				if err := sc.Run(subroomWithDoor(inner)); err != nil {
					return err
				}
			}
			return sc.Run(script.RoomDoor())
		}
		return sc.Run(mid)
	}
	return sc.Run(outer)
}

// glyphTerrain maps theme glyphs to terrain. Unknown glyphs give stone.
func glyphTerrain(g string) world.Terrain {
	if len(g) == 1 {
		if t, ok := world.TerrainFromGlyph(rune(g[0])); ok {
			return t
		}
	}
	return world.Stone
}

func pillars(sc script.Scope) error {
	hall := script.RandomRoom(level.Themed)
	hall.W, hall.H = 10, 10
	hall.Contents = func(sc script.Scope) error {
		terr := []string{"-", "-", "-", "-", "L", "P", "T"}
		rng.Shuffle(sc.RNG(), terr)
		t := glyphTerrain(terr[0])
		var ds []script.Directive
		for x := 0; x < sc.Width()/4; x++ {
			for y := 0; y < sc.Height()/4; y++ {
				ds = append(ds, script.Terrain{X: x*4 + 2, Y: y*4 + 2, W: 2, H: 2, Terrain: t})
			}
		}
		return sc.Run(ds...)
	}
	return sc.Run(hall)
}

func templeOfTheGods(sc script.Scope) error {
	temple := script.RandomRoom(level.Temple)
	temple.Contents = func(sc script.Scope) error {
		aligns := []level.Alignment{level.Lawful, level.Neutral, level.Chaotic}
		rng.Shuffle(sc.RNG(), aligns)
		for _, a := range aligns {
			if err := sc.Run(script.Altar{Spot: script.Anywhere, Align: a, Shrine: true}); err != nil {
				return err
			}
		}
		return nil
	}
	return sc.Run(temple)
}

func lightSource(sc script.Scope) error {
	r := script.RandomRoom(level.Themed)
	r.Lit = script.No
	r.Contents = func(sc script.Scope) error {
		return sc.Run(script.Object{Spot: script.Anywhere, ID: "oil lamp", Quantity: 1})
	}
	return sc.Run(r)
}

// themedFill wraps a contents callback into a random themed room.
func themedFill(fill func(script.Scope) error) func(script.Scope) error {
	return func(sc script.Scope) error {
		r := script.RandomRoom(level.Themed)
		r.Contents = fill
		return sc.Run(r)
	}
}

// eachCell runs fn on every floor offset of the frame, column by column.
func eachCell(sc script.Scope, fn func(x, y int) error) error {
	for x := 0; x < sc.Width(); x++ {
		for y := 0; y < sc.Height(); y++ {
			if err := fn(x, y); err != nil {
				return err
			}
		}
	}
	return nil
}

func boulderRoom(sc script.Scope) error {
	r := sc.RNG()
	return eachCell(sc, func(x, y int) error {
		if !r.Percent(30) {
			return nil
		}
		if r.Percent(50) {
			return sc.Run(script.Object{Spot: script.At(x, y), ID: "boulder", Quantity: 1})
		}
		return sc.Run(script.Trap{Spot: script.At(x, y), Kind: level.RollingBoulderTrap})
	})
}

func spiderNest(sc script.Scope) error {
	r := sc.RNG()
	spiders := sc.Difficulty() > 8
	return eachCell(sc, func(x, y int) error {
		if !r.Percent(30) {
			return nil
		}
		spider := script.No
		if spiders && r.Percent(80) {
			spider = script.Yes
		}
		return sc.Run(script.Trap{Spot: script.At(x, y), Kind: level.Web, Spider: spider})
	})
}

func trapRoom(sc script.Scope) error {
	r := sc.RNG()
	kinds := []level.TrapKind{
		level.ArrowTrap, level.DartTrap, level.RockTrap, level.BearTrap,
		level.LandMine, level.SleepingGasTrap, level.RustTrap, level.AntiMagicField,
	}
	rng.Shuffle(r, kinds)
	return eachCell(sc, func(x, y int) error {
		if !r.Percent(30) {
			return nil
		}
		return sc.Run(script.Trap{Spot: script.At(x, y), Kind: kinds[0]})
	})
}

func garden(sc script.Scope) error {
	r := sc.RNG()
	for i := sc.Width() * sc.Height() / 6; i > 0; i-- {
		if err := sc.Run(script.Monster{Spot: script.Anywhere, ID: "wood nymph", Asleep: true}); err != nil {
			return err
		}
		if r.Percent(30) {
			if err := sc.Run(script.Feature{Spot: script.Anywhere, Kind: world.Fountain}); err != nil {
				return err
			}
		}
	}
	return nil
}

var treasureNotes = []string{
	"X marks the spot.",
	"X marks the spot.",
	"Here be dragons.",
	"Dig here.",
}

func buriedTreasure(sc script.Scope) error {
	r := sc.RNG()
	spot := script.At(r.Rn2(sc.Width()), r.Rn2(sc.Height()))
	return sc.Run(
		script.Object{Spot: spot, ID: "chest", Quantity: 1, Buried: true},
		script.Engraving{Spot: spot, Text: rng.Pick(r, treasureNotes), Kind: level.Engrave},
	)
}

var massacreVictims = []string{
	"apprentice", "warrior", "ninja", "thug", "hunter", "acolyte", "abbot",
	"page", "attendant", "neanderthal", "chieftain", "student", "wizard",
	"valkyrie", "tourist", "samurai", "rogue", "ranger", "priestess",
	"priest", "monk", "knight", "healer", "cavewoman", "caveman",
	"barbarian", "archeologist",
}

func massacre(sc script.Scope) error {
	r := sc.RNG()
	victim := rng.Pick(r, massacreVictims)
	for i := r.D(5, 5); i > 0; i-- {
		if r.Percent(10) {
			victim = rng.Pick(r, massacreVictims)
		}
		if err := sc.Run(script.Object{Spot: script.Anywhere, ID: victim + " corpse", Quantity: 1}); err != nil {
			return err
		}
	}
	return nil
}

func statuary(sc script.Scope) error {
	r := sc.RNG()
	for i := r.D(5, 5); i > 0; i-- {
		if err := sc.Run(script.Object{Spot: script.Anywhere, ID: "statue", Quantity: 1}); err != nil {
			return err
		}
	}
	for i := r.D(1, 3); i > 0; i-- {
		if err := sc.Run(script.Trap{Spot: script.Anywhere, Kind: level.StatueTrap}); err != nil {
			return err
		}
	}
	return nil
}

func storeroom(sc script.Scope) error {
	r := sc.RNG()
	return eachCell(sc, func(x, y int) error {
		if !r.Percent(30) {
			return nil
		}
		if r.Percent(25) {
			return sc.Run(script.Object{Spot: script.At(x, y), ID: "chest", Quantity: 1})
		}
		return sc.Run(script.Monster{Spot: script.At(x, y), Class: "m"})
	})
}
