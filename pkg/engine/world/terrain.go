package world

// Terrain is the type of a single map location. The numeric values are
// stable; tooling compares dumped levels by these numbers.
type Terrain uint8

const (
	Stone Terrain = iota
	VWall
	HWall
	TLCorner
	TRCorner
	BLCorner
	BRCorner
	CrossWall
	TUWall
	TDWall
	TLWall
	TRWall
	DBWall
	Tree
	SDoor
	SCorr
	Pool
	Moat
	Water
	DrawbridgeUp
	LavaPool
	IronBars
	Door
	Corr
	Room
	Stairs
	Ladder
	Fountain
	Throne
	Sink
	Grave
	Altar
	Ice
	DrawbridgeDown
	Air
	Cloud
	terrainCount
)

var terrainNames = [terrainCount]string{
	"stone", "vertical wall", "horizontal wall", "top-left corner", "top-right corner",
	"bottom-left corner", "bottom-right corner", "crosswall", "up wall", "down wall",
	"left wall", "right wall", "drawbridge wall", "tree", "secret door", "secret corridor",
	"pool", "moat", "water", "raised drawbridge", "lava", "iron bars", "door", "corridor",
	"floor", "stairs", "ladder", "fountain", "throne", "sink", "grave", "altar", "ice",
	"lowered drawbridge", "air", "cloud",
}

// String returns the English name of the terrain
func (t Terrain) String() string {
	if t < terrainCount {
		return terrainNames[t]
	}
	return "unknown"
}

// IsWall reports plain and junction walls (not trees, doors or bars).
func (t Terrain) IsWall() bool { return t >= VWall && t <= DBWall }

// IsStoneOrWall reports solid rock or any wall.
func (t Terrain) IsStoneOrWall() bool { return t <= DBWall }

// IsRock reports anything below the liquids, secret features included.
func (t Terrain) IsRock() bool { return t < Pool }

// IsRoom reports floor and everything that stands on floor.
func (t Terrain) IsRoom() bool { return t >= Room }

// Accessible reports terrain a walker can stand on.
func (t Terrain) Accessible() bool { return t >= Door }

// IsFurniture reports stairs, ladders, fountains, thrones, sinks, graves and altars.
func (t Terrain) IsFurniture() bool { return t >= Stairs && t <= Altar }

// IsPool reports water a walker would fall into.
func (t Terrain) IsPool() bool { return t == Pool || t == Moat || t == Water }

// IsDoor reports regular and secret doors.
func (t Terrain) IsDoor() bool { return t == Door || t == SDoor }

// IsDry reports floor-like terrain that stairs can be built on.
func (t Terrain) IsDry() bool {
	return t == Room || t == Corr || t == Ice || t == Air || t == Cloud
}

// Traversable reports terrain that connects areas once secrets are found.
func (t Terrain) Traversable() bool {
	return (t.Accessible() && !t.IsPool()) || t == SDoor || t == SCorr
}

var glyphs = map[rune]Terrain{
	' ': Stone, '#': Corr, '.': Room, '-': HWall, '|': VWall, '+': Door,
	'S': SDoor, 'H': SCorr, '{': Fountain, '\\': Throne, 'K': Sink, '}': Moat,
	'P': Pool, 'L': LavaPool, 'I': Ice, 'W': Water, 'T': Tree, 'F': IronBars,
	'B': CrossWall, 'C': Cloud, 'A': Air,
}

// TerrainFromGlyph maps a map-template character to terrain.
func TerrainFromGlyph(r rune) (Terrain, bool) {
	t, ok := glyphs[r]
	return t, ok
}

// Glyph returns the character used to draw the terrain in dumps.
func (t Terrain) Glyph() rune {
	switch {
	case t == VWall:
		return '|'
	case t == HWall || (t.IsWall() && t != VWall):
		return '-'
	}
	switch t {
	case Stone:
		return ' '
	case Tree:
		return '#'
	case SDoor:
		return 'S'
	case SCorr:
		return 'H'
	case Pool, Moat, Water:
		return '}'
	case DrawbridgeUp, DrawbridgeDown:
		return '#'
	case LavaPool:
		return 'L'
	case IronBars:
		return 'F'
	case Door:
		return '+'
	case Corr:
		return '#'
	case Room:
		return '.'
	case Stairs:
		return '>'
	case Ladder:
		return '>'
	case Fountain:
		return '{'
	case Throne:
		return '\\'
	case Sink:
		return 'K'
	case Grave:
		return '|'
	case Altar:
		return '_'
	case Ice:
		return 'I'
	case Air:
		return 'A'
	case Cloud:
		return 'C'
	}
	return '?'
}
