package level

import "delvegen/pkg/engine/world"

// Level is a finished, immutable level. Accessors return copies.
type Level struct {
	grid      *world.Grid
	depth     int
	seed      uint64
	drawCount int64
	flags     Flags

	rooms    []Room
	doors    []Door
	traps    []Trap
	stairs   []Stair
	monsters []MonsterRequest
	objects  []ObjectRequest
	engr     []Engraving
	altars   []Altar
	regions  []Region
}

func (b *Builder) freeze() *Level {
	l := &Level{
		grid:      b.grid.Clone(),
		depth:     b.depth,
		seed:      b.rng.Seed(),
		drawCount: b.rng.Count(),
		flags:     b.flags,
		doors:     append([]Door(nil), b.doors...),
		traps:     append([]Trap(nil), b.traps...),
		stairs:    append([]Stair(nil), b.stairs...),
		monsters:  append([]MonsterRequest(nil), b.monsters...),
		objects:   append([]ObjectRequest(nil), b.objects...),
		engr:      append([]Engraving(nil), b.engr...),
		altars:    append([]Altar(nil), b.altars...),
	}
	for _, r := range b.rooms {
		l.rooms = append(l.rooms, *r)
	}
	for _, name := range b.order {
		l.regions = append(l.regions, *b.regions[name])
	}
	return l
}

// Depth returns the dungeon depth
func (l *Level) Depth() int { return l.depth }

// Seed returns the seed the level was generated from
func (l *Level) Seed() uint64 { return l.seed }

// DrawCount returns the number of random draws generation consumed
func (l *Level) DrawCount() int64 { return l.drawCount }

// Flags returns the level flags
func (l *Level) Flags() Flags { return l.flags }

// Terrain returns the terrain at x/y
func (l *Level) Terrain(x, y int) world.Terrain { return l.grid.Terrain(x, y) }

// Cell returns a copy of the cell at x/y
func (l *Level) Cell(x, y int) world.Cell { return l.grid.Cell(x, y) }

// Grid returns a copy of the whole grid
func (l *Level) Grid() *world.Grid { return l.grid.Clone() }

// TerrainCodes returns the terrain numbers row by row
func (l *Level) TerrainCodes() []uint8 { return l.grid.Codes() }

// Rooms returns copies of the top-level rooms in list order
func (l *Level) Rooms() []Room { return append([]Room(nil), l.rooms...) }

// Doors returns the door records
func (l *Level) Doors() []Door { return append([]Door(nil), l.doors...) }

// Traps returns the placed traps
func (l *Level) Traps() []Trap { return append([]Trap(nil), l.traps...) }

// Stairs returns the staircases
func (l *Level) Stairs() []Stair { return append([]Stair(nil), l.stairs...) }

// Monsters returns the accepted monster requests
func (l *Level) Monsters() []MonsterRequest { return append([]MonsterRequest(nil), l.monsters...) }

// Objects returns the accepted object and gold requests
func (l *Level) Objects() []ObjectRequest { return append([]ObjectRequest(nil), l.objects...) }

// Regions returns the named regions in definition order
func (l *Level) Regions() []Region { return append([]Region(nil), l.regions...) }

// Engravings returns floor text left during generation
func (l *Level) Engravings() []Engraving { return append([]Engraving(nil), l.engr...) }

// Altars returns the level's altars
func (l *Level) Altars() []Altar { return append([]Altar(nil), l.altars...) }
