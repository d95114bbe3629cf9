// Package script is the in-memory form of an authored level: level flags
// and an ordered list of directives for the interpreter. Parsing a text
// format into a Script is left to the caller.
package script

import (
	"delvegen/pkg/engine/rng"
	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/level"
)

// Random leaves a coordinate, size, position or alignment to the
// interpreter.
const Random = -1

// Script is an authored level.
type Script struct {
	Name       string
	Flags      level.Flags
	Directives []Directive
}

// Directive is one step of a script. The set of directives is closed:
// only the types in this package implement it.
type Directive interface {
	directive()
}

// Toggle is a yes/no setting that may be left to chance. The zero value
// leaves it to chance.
type Toggle int

const (
	Maybe Toggle = iota
	No
	Yes
)

// Lit converts t to the generator's light state.
func (t Toggle) Lit() int {
	switch t {
	case No:
		return 0
	case Yes:
		return 1
	}
	return -1
}

// Alignment of a map template within the level.
type Alignment int

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignHalfLeft
	AlignCenter
	AlignHalfRight
	AlignRight

	AlignTop    = AlignLeft
	AlignBottom = AlignRight
)

// Spot says where a placement directive lands. X and Y are relative to
// the current frame (the room floor, the map template, or the level);
// if either is Random the whole spot is picked at random. In names a
// region to pick from instead.
type Spot struct {
	X, Y int
	In   string
}

// Anywhere is a spot chosen at random in the current frame.
var Anywhere = Spot{X: Random, Y: Random}

// At is a fixed frame-relative spot
func At(x, y int) Spot { return Spot{X: x, Y: y} }

// InRegion picks a random cell of the named region.
func InRegion(name string) Spot { return Spot{X: Random, Y: Random, In: name} }

// MapTemplate stamps rows of glyphs onto the level. With AlignNone the
// template goes to X/Y, otherwise it is aligned on the level. 'x' cells
// keep the terrain below them.
type MapTemplate struct {
	Rows           []string
	HAlign, VAlign Alignment
	X, Y           int
	Lit            bool
}

// Room creates a room. At level scope X and Y select a cell of the 5x5
// placement grid and the alignments position the room inside it; inside
// another room X and Y are offsets into the parent's floor. Contents runs
// with the new room as the current frame.
type Room struct {
	Type           level.RoomType
	X, Y           int
	W, H           int
	XAlign, YAlign int
	Lit            Toggle
	Filled         bool
	// Borderless subrooms are registered without walls.
	Borderless bool
	Contents   func(Scope) error
}

// RandomRoom returns a room directive with position, size and alignment
// left to the interpreter.
func RandomRoom(t level.RoomType) Room {
	return Room{
		Type: t,
		X:    Random, Y: Random, W: Random, H: Random,
		XAlign: Random, YAlign: Random,
	}
}

// DoorState is the state requested for a door.
type DoorState int

const (
	DoorRandom DoorState = iota
	DoorNone
	DoorBroken
	DoorOpen
	DoorClosed
	DoorLocked
)

// Mask returns the door bits for s. DoorRandom has none.
func (s DoorState) Mask() world.DoorMask {
	switch s {
	case DoorBroken:
		return world.DoorBroken
	case DoorOpen:
		return world.DoorOpen
	case DoorClosed:
		return world.DoorClosed
	case DoorLocked:
		return world.DoorLocked
	}
	return world.DoorNone
}

// Door adds a door. In a room it goes on one of the walls in Wall (zero
// picks one wall at random per try) at Pos along the wall, or a random
// position. At level scope X/Y must name a wall cell, Maybe counts as not
// secret and DoorRandom rolls the state.
type Door struct {
	State  DoorState
	Secret Toggle
	Wall   world.WallMask
	Pos    int
	X, Y   int
}

// RoomDoor is a door with a random state on any wall of the room.
func RoomDoor() Door {
	return Door{Wall: world.WallAny, Pos: Random, X: Random, Y: Random}
}

// Stair places an up or down staircase on dry floor.
type Stair struct {
	Spot
	Up bool
}

// Feature places a fountain, sink, throne or grave on floor.
type Feature struct {
	Spot
	Kind world.Terrain
}

// Altar places an altar. RandomAlign ignores Align and rolls one.
type Altar struct {
	Spot
	Align       level.Alignment
	RandomAlign bool
	Shrine      bool
}

// Terrain overwrites a W x H block (1 x 1 when zero) at the frame-relative
// X/Y. No draws.
type Terrain struct {
	X, Y    int
	W, H    int
	Terrain world.Terrain
}

// Trap places a trap. NoTrap picks a kind suited to the level. Webs get
// a giant spider unless Spider is No.
type Trap struct {
	Spot
	Kind   level.TrapKind
	Spider Toggle
}

// Object requests an object.
type Object struct {
	Spot
	ID       string
	Class    string
	Quantity int
	Buried   bool
}

// Monster requests a monster.
type Monster struct {
	Spot
	ID     string
	Class  string
	Asleep bool
}

// Engraving leaves text on the floor.
type Engraving struct {
	Spot
	Text string
	Kind level.EngravingKind
}

// Region names a set of cells: the frame-relative Area, or with Flood the
// cells of Area 4-connected to its top left corner over the same terrain.
// A Type other than Ordinary also registers the cells as an irregular
// room.
type Region struct {
	Name  string
	Area  world.Rect
	Flood bool
	Lit   bool
	Type  level.RoomType
}

// RandomCorridors joins the rooms made so far with corridors.
type RandomCorridors struct{}

// Themes fills the remaining free space with themed rooms picked from
// Set, or from the interpreter's theme set when Set is empty.
type Themes struct {
	Set []Theme
}

func (MapTemplate) directive()     {}
func (Room) directive()            {}
func (Door) directive()            {}
func (Stair) directive()           {}
func (Feature) directive()         {}
func (Altar) directive()           {}
func (Terrain) directive()         {}
func (Trap) directive()            {}
func (Object) directive()          {}
func (Monster) directive()         {}
func (Engraving) directive()       {}
func (Region) directive()          {}
func (RandomCorridors) directive() {}
func (Themes) directive()          {}

// Scope is what a room's Contents callback or a theme sees: the frame it
// runs in and a way to execute further directives there.
type Scope interface {
	// Run executes ds in this scope. It fails only on programming errors;
	// infeasible placements are logged and skipped.
	Run(ds ...Directive) error
	// RNG is the level's random stream, for Shuffle and rolls made by
	// the callback itself.
	RNG() *rng.RNG
	// Room is the room being filled, nil at level scope.
	Room() *level.Room
	// Width and Height of the frame.
	Width() int
	Height() int
	Depth() int
	Difficulty() int
}

// Theme is one entry of a themed-room catalogue. Build usually runs a
// single Room directive; a theme fails when that room could not be made.
type Theme struct {
	Name          string
	Frequency     int
	MinDifficulty int
	MaxDifficulty int
	Build         func(Scope) error
}

// Eligible reports whether t may be picked at difficulty. A zero
// MaxDifficulty means no upper bound.
func (t Theme) Eligible(difficulty int) bool {
	if t.MinDifficulty > 0 && difficulty < t.MinDifficulty {
		return false
	}
	if t.MaxDifficulty > 0 && difficulty > t.MaxDifficulty {
		return false
	}
	return true
}
