// Package level assembles a generated level: it owns the grid while
// generation stages carve into it, records who claimed each cell, and
// turns the result into an immutable Level once the consistency checks
// pass.
package level

import (
	"fmt"
	"log"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"delvegen/pkg/engine/rng"
	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/walls"
)

// Limits shared by all generation stages.
const (
	MaxRooms = 40
	DoorMax  = 120
)

// Flags are level-wide properties set by the caller or a script.
type Flags struct {
	NoTeleport bool
	Hardfloor  bool
	// Bottom levels need no down stairs.
	Bottom bool
	// Graveyard is set once a morgue is built.
	Graveyard bool
}

// Config holds builder dependencies. Zero values select defaults.
type Config struct {
	Factory Factory
	Logf    func(format string, args ...any)
	Flags   Flags
}

// Builder accumulates a level under construction.
type Builder struct {
	grid    *world.Grid
	rng     *rng.RNG
	depth   int
	factory Factory
	logf    func(format string, args ...any)
	flags   Flags

	rooms    []*Room
	subrooms []*Room
	byID     map[int]*Room
	nextID   int
	nextCorr int
	claims   [world.Cols][world.Rows]int

	doors    []Door
	traps    []Trap
	stairs   []Stair
	monsters []MonsterRequest
	objects  []ObjectRequest
	engr     []Engraving
	altars   []Altar
	regions  map[string]*Region
	order    []string

	violations []string
	finalized  bool
}

// NewBuilder starts an empty, all-stone level.
func NewBuilder(r *rng.RNG, depth int, cfg Config) *Builder {
	b := &Builder{
		grid:    world.NewGrid(),
		rng:     r,
		depth:   depth,
		factory: cfg.Factory,
		logf:    cfg.Logf,
		flags:   cfg.Flags,
		byID:    make(map[int]*Room),
		regions: make(map[string]*Region),
	}
	if b.factory == nil {
		b.factory = NopFactory{}
	}
	if b.logf == nil {
		b.logf = log.Printf
	}
	return b
}

func (b *Builder) mutable() {
	if b.finalized {
		panic("level: builder used after Finalize")
	}
}

// Grid exposes the working grid to generation stages
func (b *Builder) Grid() *world.Grid { b.mutable(); return b.grid }

// RNG returns the level's random stream
func (b *Builder) RNG() *rng.RNG { return b.rng }

// Depth returns the dungeon depth being generated
func (b *Builder) Depth() int { return b.depth }

// Flags returns the level flags
func (b *Builder) Flags() Flags { return b.flags }

// SetFlags replaces the level flags
func (b *Builder) SetFlags(f Flags) { b.mutable(); b.flags = f }

// Logf reports a non-fatal generation event
func (b *Builder) Logf(format string, args ...any) { b.logf(format, args...) }

// Terrain returns the terrain at x/y
func (b *Builder) Terrain(x, y int) world.Terrain { return b.grid.Terrain(x, y) }

// Rooms returns the top-level rooms in list order
func (b *Builder) Rooms() []*Room { return b.rooms }

// NumRooms returns the number of top-level rooms
func (b *Builder) NumRooms() int { return len(b.rooms) }

// Doors returns the door records
func (b *Builder) Doors() []Door { return b.doors }

// Stairs returns the stairs placed so far
func (b *Builder) Stairs() []Stair { return b.stairs }

// Traps returns the traps placed so far
func (b *Builder) Traps() []Trap { return b.traps }

func (b *Builder) claim(x, y, owner int) {
	cur := b.claims[x][y]
	if cur == 0 || cur == owner {
		b.claims[x][y] = owner
		return
	}
	if owner > 0 && cur > 0 {
		if r := b.byID[owner]; r != nil && r.Ancestor(b.byID[cur]) {
			b.claims[x][y] = owner
			return
		}
	}
	b.violations = append(b.violations, fmt.Sprintf("cell (%d,%d) claimed by %s and %s", x, y, b.owner(cur), b.owner(owner)))
}

func (b *Builder) owner(id int) string {
	if id < 0 {
		return fmt.Sprintf("corridor %d", -id)
	}
	if r := b.byID[id]; r != nil {
		return fmt.Sprintf("%s room at (%d,%d)", r.Type, r.Lx, r.Ly)
	}
	return fmt.Sprintf("owner %d", id)
}

func (b *Builder) newRoom(lx, ly, hx, hy int, lit bool, t RoomType) *Room {
	b.nextID++
	r := &Room{Lx: lx, Ly: ly, Hx: hx, Hy: hy, Type: t, Lit: lit, id: b.nextID}
	b.byID[r.id] = r
	return r
}

// AddRoom carves a room and appends it to the room list. Special rooms
// are registered without touching the terrain.
func (b *Builder) AddRoom(lx, ly, hx, hy int, lit bool, t RoomType, special bool) *Room {
	b.mutable()
	r := b.carve(nil, lx, ly, hx, hy, lit, t, special)
	r.index = len(b.rooms)
	r.FirstDoor = len(b.doors)
	b.rooms = append(b.rooms, r)
	return r
}

// AddSubroom carves a room inside parent. Its walls are classified
// immediately so they join the parent's floor cleanly.
func (b *Builder) AddSubroom(parent *Room, lx, ly, hx, hy int, lit bool, t RoomType, special bool) *Room {
	b.mutable()
	r := b.carve(parent, lx, ly, hx, hy, lit, t, special)
	r.Parent = parent
	r.index = len(parent.Subrooms)
	r.FirstDoor = len(b.doors)
	parent.Subrooms = append(parent.Subrooms, r)
	b.subrooms = append(b.subrooms, r)
	return r
}

func (b *Builder) carve(parent *Room, lx, ly, hx, hy int, lit bool, t RoomType, special bool) *Room {
	lx = max(lx, 1)
	ly = max(ly, 1)
	hx = min(hx, world.Cols-2)
	hy = min(hy, world.Rows-2)
	r := b.newRoom(lx, ly, hx, hy, lit, t)
	r.Borderless = special
	if parent != nil {
		r.Parent = parent
	}
	g := b.grid

	if lit {
		for x := lx - 1; x <= hx+1; x++ {
			for y := max(ly-1, 0); y <= hy+1; y++ {
				g.At(x, y).Lit = true
			}
		}
	}
	if special {
		return r
	}
	for x := lx - 1; x <= hx+1; x++ {
		for _, y := range []int{ly - 1, hy + 1} {
			c := g.At(x, y)
			c.Terrain = world.HWall
			c.Horizontal = true
			b.claim(x, y, r.id)
		}
	}
	for _, x := range []int{lx - 1, hx + 1} {
		for y := ly; y <= hy; y++ {
			c := g.At(x, y)
			c.Terrain = world.VWall
			c.Horizontal = false
			b.claim(x, y, r.id)
		}
	}
	for x := lx; x <= hx; x++ {
		for y := ly; y <= hy; y++ {
			g.SetTerrain(x, y, world.Room)
			b.claim(x, y, r.id)
		}
	}
	if parent == nil {
		g.SetTerrain(lx-1, ly-1, world.TLCorner)
		g.SetTerrain(hx+1, ly-1, world.TRCorner)
		g.SetTerrain(lx-1, hy+1, world.BLCorner)
		g.SetTerrain(hx+1, hy+1, world.BRCorner)
	} else {
		area := r.Walls()
		walls.Cleanup(g, area)
		walls.FixSpines(g, area)
	}
	return r
}

// AddIrregularRoom registers a room made of an arbitrary cell set.
func (b *Builder) AddIrregularRoom(cells []world.Coord, lit bool, t RoomType) *Room {
	b.mutable()
	if len(cells) == 0 {
		return nil
	}
	bb := world.Rect{Lx: cells[0].X, Ly: cells[0].Y, Hx: cells[0].X, Hy: cells[0].Y}
	set := mapset.New[world.Coord]()
	for _, c := range cells {
		bb.Lx, bb.Ly = min(bb.Lx, c.X), min(bb.Ly, c.Y)
		bb.Hx, bb.Hy = max(bb.Hx, c.X), max(bb.Hy, c.Y)
		set.Put(c)
	}
	r := b.newRoom(bb.Lx, bb.Ly, bb.Hx, bb.Hy, lit, t)
	r.Irregular = true
	r.cells = set
	for _, c := range cells {
		b.claim(c.X, c.Y, r.id)
		if lit {
			b.grid.At(c.X, c.Y).Lit = true
		}
	}
	r.index = len(b.rooms)
	r.FirstDoor = len(b.doors)
	b.rooms = append(b.rooms, r)
	return r
}

// SortRooms orders rooms by their left edge, keeping ties in creation order.
func (b *Builder) SortRooms() {
	b.mutable()
	sort.SliceStable(b.rooms, func(i, j int) bool { return b.rooms[i].Lx < b.rooms[j].Lx })
	for i, r := range b.rooms {
		r.index = i
	}
}

// NewCorridor returns a fresh corridor owner id for DigCell.
func (b *Builder) NewCorridor() int {
	b.nextCorr++
	return -b.nextCorr
}

// DigCell sets x/y to t on behalf of corridor owner id.
func (b *Builder) DigCell(x, y int, t world.Terrain, corridor int) {
	b.mutable()
	b.grid.SetTerrain(x, y, t)
	b.claim(x, y, corridor)
}

// SetTerrain changes terrain without claiming the cell; used for furniture
// and script terrain.
func (b *Builder) SetTerrain(x, y int, t world.Terrain) {
	b.mutable()
	b.grid.SetTerrain(x, y, t)
}

// AddDoor records a door on room's wall and bumps its door count.
// Terrain and door state are set by the caller.
func (b *Builder) AddDoor(x, y int, room *Room) int {
	b.mutable()
	if len(b.doors) >= DoorMax {
		return -1
	}
	if room != nil {
		if room.DoorCount == 0 {
			room.FirstDoor = len(b.doors)
		}
		room.DoorCount++
	}
	b.doors = append(b.doors, Door{X: x, Y: y, Room: room})
	return len(b.doors) - 1
}

// MarkBlind flags door i as leading nowhere.
func (b *Builder) MarkBlind(i int) {
	if i >= 0 && i < len(b.doors) {
		b.doors[i].Blind = true
	}
}

// SetDoorMask sets the state bits of the door cell at x/y
func (b *Builder) SetDoorMask(x, y int, m world.DoorMask) {
	b.mutable()
	if c := b.grid.At(x, y); c != nil {
		c.DoorMask = m
	}
}

// AddStair places a staircase at x/y.
func (b *Builder) AddStair(x, y int, up bool, room *Room) {
	b.mutable()
	b.grid.SetTerrain(x, y, world.Stairs)
	b.stairs = append(b.stairs, Stair{X: x, Y: y, Up: up, Room: room})
}

// AddTrap places a trap, replacing the kind of any trap already at x/y.
// Pits and holes dug into floor force the terrain back to plain floor.
func (b *Builder) AddTrap(x, y int, kind TrapKind) {
	b.mutable()
	switch kind {
	case Pit, SpikedPit, Hole, TrapDoor:
		if c := b.grid.At(x, y); c != nil {
			c.DoorMask = 0
			if c.Terrain.IsRoom() {
				c.Terrain = world.Room
			}
		}
	}
	for i := range b.traps {
		if b.traps[i].X == x && b.traps[i].Y == y {
			b.traps[i].Kind = kind
			return
		}
	}
	b.traps = append(b.traps, Trap{X: x, Y: y, Kind: kind})
}

// TrapAt returns the trap kind at x/y, or NoTrap
func (b *Builder) TrapAt(x, y int) TrapKind {
	for _, t := range b.traps {
		if t.X == x && t.Y == y {
			return t.Kind
		}
	}
	return NoTrap
}

// RequestMonster hands a monster request to the factory and records it
// when the factory accepts.
func (b *Builder) RequestMonster(req MonsterRequest) (string, bool) {
	b.mutable()
	name, ok := b.factory.MakeMonster(b.rng, req)
	if ok {
		b.monsters = append(b.monsters, req)
	}
	return name, ok
}

// RequestObject hands an object request to the factory.
func (b *Builder) RequestObject(req ObjectRequest) bool {
	b.mutable()
	ok := b.factory.MakeObject(b.rng, req)
	if ok {
		b.objects = append(b.objects, req)
	}
	return ok
}

// RequestGold hands a gold pile to the factory.
func (b *Builder) RequestGold(x, y, amount int) bool {
	b.mutable()
	ok := b.factory.MakeGold(b.rng, x, y, amount)
	if ok {
		b.objects = append(b.objects, ObjectRequest{X: x, Y: y, ID: "gold piece", Quantity: amount, Reason: "gold"})
	}
	return ok
}

// MonsterAt reports whether a monster was requested at x/y
func (b *Builder) MonsterAt(x, y int) bool {
	for _, m := range b.monsters {
		if m.X == x && m.Y == y {
			return true
		}
	}
	return false
}

// ObjectAt reports whether an object was requested at x/y
func (b *Builder) ObjectAt(x, y int) bool {
	for _, o := range b.objects {
		if o.X == x && o.Y == y && !o.Buried {
			return true
		}
	}
	return false
}

// AddAltar turns x/y into an altar of the given alignment.
func (b *Builder) AddAltar(x, y int, align Alignment, shrine bool) {
	b.mutable()
	b.grid.SetTerrain(x, y, world.Altar)
	for i := range b.altars {
		if b.altars[i].X == x && b.altars[i].Y == y {
			b.altars[i] = Altar{X: x, Y: y, Align: align, Shrine: shrine}
			return
		}
	}
	b.altars = append(b.altars, Altar{X: x, Y: y, Align: align, Shrine: shrine})
}

// Engrave leaves text at x/y, replacing any engraving already there.
// Empty text removes it.
func (b *Builder) Engrave(x, y int, text string, kind EngravingKind) {
	b.mutable()
	for i := range b.engr {
		if b.engr[i].X == x && b.engr[i].Y == y {
			if text == "" {
				b.engr = append(b.engr[:i], b.engr[i+1:]...)
				return
			}
			b.engr[i] = Engraving{X: x, Y: y, Text: text, Kind: kind}
			return
		}
	}
	if text != "" {
		b.engr = append(b.engr, Engraving{X: x, Y: y, Text: text, Kind: kind})
	}
}

// EngravingAt returns the engraving at x/y
func (b *Builder) EngravingAt(x, y int) (Engraving, bool) {
	for _, e := range b.engr {
		if e.X == x && e.Y == y {
			return e, true
		}
	}
	return Engraving{}, false
}

// DefineRegion names a cell set. Redefining a name replaces it.
func (b *Builder) DefineRegion(name string, cells []world.Coord, lit bool) *Region {
	b.mutable()
	if _, ok := b.regions[name]; !ok {
		b.order = append(b.order, name)
	}
	reg := &Region{Name: name, Cells: cells, Lit: lit}
	b.regions[name] = reg
	if lit {
		for _, c := range cells {
			if cell := b.grid.At(c.X, c.Y); cell != nil {
				cell.Lit = true
			}
		}
	}
	return reg
}

// Region looks up a named region
func (b *Builder) Region(name string) (*Region, bool) {
	r, ok := b.regions[name]
	return r, ok
}
