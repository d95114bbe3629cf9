package level

import "delvegen/pkg/engine/world"

// TrapKind numbers follow the NetHack trap table.
type TrapKind int

const (
	NoTrap TrapKind = iota
	ArrowTrap
	DartTrap
	RockTrap
	SqueakyBoard
	BearTrap
	LandMine
	RollingBoulderTrap
	SleepingGasTrap
	RustTrap
	FireTrap
	Pit
	SpikedPit
	Hole
	TrapDoor
	TeleportTrap
	LevelTeleporter
	MagicPortal
	Web
	StatueTrap
	MagicTrap
	AntiMagicField
	PolyTrap
	VibratingSquare
	TrapNum
)

var trapNames = [TrapNum]string{
	"no trap", "arrow", "dart", "falling rock", "squeaky board", "bear", "land mine",
	"rolling boulder", "sleep gas", "rust", "fire", "pit", "spiked pit", "hole", "trap door",
	"teleport", "level teleport", "magic portal", "web", "statue", "magic", "anti magic",
	"polymorph", "vibrating square",
}

func (k TrapKind) String() string {
	if k >= 0 && k < TrapNum {
		return trapNames[k]
	}
	return "unknown"
}

// TrapKindByName looks a trap kind up by its script name.
func TrapKindByName(name string) (TrapKind, bool) {
	for i, n := range trapNames {
		if n == name && i != 0 {
			return TrapKind(i), true
		}
	}
	return NoTrap, false
}

// Trap is a placed trap.
type Trap struct {
	X, Y int
	Kind TrapKind
}

// Door is a door record. Several records may name the same cell.
type Door struct {
	X, Y int
	Room *Room
	// Blind doors were left when a corridor dug from them was abandoned.
	Blind bool
}

// Stair is an up or down staircase.
type Stair struct {
	X, Y int
	Up   bool
	Room *Room
}

// MonsterRequest asks the factory for a monster. An empty ID asks for a
// random one, optionally restricted to Class.
type MonsterRequest struct {
	X, Y   int
	ID     string
	Class  string
	Asleep bool
	Reason string
}

// ObjectRequest asks the factory for an object.
type ObjectRequest struct {
	X, Y     int
	ID       string
	Class    string
	Quantity int
	Buried   bool
	Reason   string
}

// Alignment of an altar or priest.
type Alignment int

const (
	Chaotic Alignment = -1
	Neutral Alignment = 0
	Lawful  Alignment = 1
)

func (a Alignment) String() string {
	switch {
	case a < 0:
		return "chaotic"
	case a > 0:
		return "lawful"
	default:
		return "neutral"
	}
}

// Altar is an altar cell and its alignment. Shrines sit in temples.
type Altar struct {
	X, Y   int
	Align  Alignment
	Shrine bool
}

// EngravingKind is how an engraving was made.
type EngravingKind int

const (
	Dust EngravingKind = iota
	Engrave
	Burn
	Mark
	Headstone
)

// Engraving is text left on a floor cell.
type Engraving struct {
	X, Y int
	Text string
	Kind EngravingKind
}

// Region is a named set of cells defined by a script.
type Region struct {
	Name  string
	Cells []world.Coord
	Lit   bool
	Room  *Room
}
