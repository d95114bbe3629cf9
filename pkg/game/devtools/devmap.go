package devtools

import (
	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/generator"
	"delvegen/pkg/game/level"
	"delvegen/pkg/game/script"
)

// DevScript returns a hand-written showcase level: a walled hall holding
// one of every map feature and a row of trap kinds, next to a room whose
// closets show each door state. Useful to eyeball dumps and colours.
func DevScript() *script.Script {
	hall := []string{
		"---------------------",
		"|...................|",
		"|.{...K...\\...T...P.|",
		"|...................|",
		"|.L...I...W...}...F.|",
		"|...................|",
		"---------------------",
	}
	ds := []script.Directive{
		script.MapTemplate{Rows: hall, X: 2, Y: 2, Lit: true},
		script.Region{Name: "hall", Area: world.Rect{Lx: 1, Ly: 1, Hx: 19, Hy: 5}, Flood: true, Lit: true},
		script.Stair{Spot: script.At(1, 1), Up: true},
		script.Stair{Spot: script.At(19, 5)},
		script.Altar{Spot: script.At(5, 3), Align: level.Lawful},
		script.Altar{Spot: script.At(9, 3), Align: level.Neutral, Shrine: true},
		script.Altar{Spot: script.At(13, 3), Align: level.Chaotic},
		script.Feature{Spot: script.At(17, 3), Kind: world.Grave},
		script.Engraving{Spot: script.At(3, 1), Text: "showcase", Kind: level.Engrave},
		script.Object{Spot: script.InRegion("hall"), ID: "boulder"},
		script.Monster{Spot: script.InRegion("hall"), ID: "newt", Asleep: true},
	}

	x := 1
	for k := level.ArrowTrap; k < level.TrapNum && x < 19; k++ {
		switch k {
		case level.Hole, level.TrapDoor, level.MagicPortal, level.VibratingSquare:
			continue
		}
		ds = append(ds, script.Trap{Spot: script.At(x, 5), Kind: k, Spider: script.No})
		x++
	}

	states := []script.DoorState{script.DoorNone, script.DoorBroken, script.DoorOpen, script.DoorClosed, script.DoorLocked}
	ds = append(ds, script.Room{
		Type: level.Ordinary,
		X:    3, Y: 5, W: 30, H: 6,
		XAlign: generator.AlignCenter, YAlign: generator.AlignCenter,
		Lit: script.Yes,
		Contents: func(sc script.Scope) error {
			for i, st := range states {
				closet := script.Room{
					Type: level.Themed,
					X:    i * 6, Y: 0, W: 3, H: 2,
					Lit: script.No,
					Contents: func(sc script.Scope) error {
						return sc.Run(script.Door{State: st, Secret: script.No, Wall: world.WallSouth, Pos: script.Random})
					},
				}
				if err := sc.Run(closet); err != nil {
					return err
				}
			}
			return nil
		},
	})
	ds = append(ds, script.RandomCorridors{})

	return &script.Script{
		Name:       "showcase",
		Flags:      level.Flags{NoTeleport: true},
		Directives: ds,
	}
}
