// Package interp executes level scripts. It keeps an explicit stack of
// frames: the level (or the map template stamped on it) at the bottom and
// one frame per room whose contents are being built above it. Rooms,
// doors and random fills go through the generator so that scripted and
// random levels draw the same way.
package interp

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/stack"

	"delvegen/pkg/engine/rng"
	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/generator"
	"delvegen/pkg/game/level"
	"delvegen/pkg/game/rect"
	"delvegen/pkg/game/script"
)

// Programming errors. They abort the script.
var (
	ErrUndefinedRegion  = errors.New("interp: undefined region")
	ErrUnknownDirective = errors.New("interp: unknown directive")
	ErrMalformed        = errors.New("interp: malformed directive")
)

// frame is one level of directive nesting. Coordinates in directives are
// relative to origin.
type frame struct {
	room   *level.Room
	origin world.Coord
	w, h   int
	pool   *rect.Pool
}

// Interpreter runs scripts against one level.
type Interpreter struct {
	s      *generator.Synthesizer
	b      *level.Builder
	r      *rng.RNG
	frames *stack.Stack[*frame]
	themes []script.Theme

	themeFailed bool
}

// New returns an interpreter writing through s. themes is used by Themes
// directives that bring no set of their own.
func New(s *generator.Synthesizer, themes []script.Theme) *Interpreter {
	in := &Interpreter{
		s:      s,
		b:      s.Builder(),
		r:      s.Builder().RNG(),
		frames: stack.New[*frame](),
		themes: themes,
	}
	in.frames.Push(&frame{
		w:    world.Cols,
		h:    world.Rows,
		pool: s.Pool(),
	})
	return in
}

// Exec runs every directive of sc at level scope.
func (in *Interpreter) Exec(sc *script.Script) error {
	if err := in.Run(sc.Directives...); err != nil {
		return fmt.Errorf("script %q: %w", sc.Name, err)
	}
	return nil
}

// Run executes ds in the current frame.
func (in *Interpreter) Run(ds ...script.Directive) error {
	for _, d := range ds {
		if err := in.exec(d); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) top() *frame { return in.frames.Peek() }

func (in *Interpreter) exec(d script.Directive) error {
	switch d := d.(type) {
	case script.MapTemplate:
		return in.mapTemplate(d)
	case script.Room:
		return in.room(d)
	case script.Door:
		return in.door(d)
	case script.Stair:
		return in.stair(d)
	case script.Feature:
		return in.feature(d)
	case script.Altar:
		return in.altar(d)
	case script.Terrain:
		in.terrain(d)
		return nil
	case script.Trap:
		return in.trap(d)
	case script.Object:
		return in.object(d)
	case script.Monster:
		return in.monster(d)
	case script.Engraving:
		return in.engraving(d)
	case script.Region:
		return in.region(d)
	case script.RandomCorridors:
		in.s.Connect()
		return nil
	case script.Themes:
		return in.themed(d)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownDirective, d)
	}
}

// scope is the view of the interpreter handed to contents callbacks.
type scope struct{ in *Interpreter }

func (sc scope) Run(ds ...script.Directive) error { return sc.in.Run(ds...) }
func (sc scope) RNG() *rng.RNG                    { return sc.in.r }
func (sc scope) Room() *level.Room                { return sc.in.top().room }
func (sc scope) Width() int                       { return sc.in.top().w }
func (sc scope) Height() int                      { return sc.in.top().h }
func (sc scope) Depth() int                       { return sc.in.b.Depth() }
func (sc scope) Difficulty() int                  { return sc.in.s.Descriptor().Difficulty }

// Scope returns the interpreter's current frame as a script scope
func (in *Interpreter) Scope() script.Scope { return scope{in} }

// mapTemplate stamps d onto the level and makes it the level frame.
func (in *Interpreter) mapTemplate(d script.MapTemplate) error {
	f := in.top()
	if f.room != nil {
		return fmt.Errorf("%w: map template inside a room", ErrMalformed)
	}
	ysize := len(d.Rows)
	xsize := 0
	for _, row := range d.Rows {
		xsize = max(xsize, len(row))
	}
	if xsize == 0 {
		return fmt.Errorf("%w: empty map template", ErrMalformed)
	}
	xstart, ystart := templateOrigin(d, xsize, ysize)
	if xstart < 0 || ystart < 0 || xstart+xsize > world.Cols || ystart+ysize > world.Rows {
		return fmt.Errorf("%w: map template %dx%d at %d,%d leaves the level", ErrMalformed, xsize, ysize, xstart, ystart)
	}

	g := in.b.Grid()
	for dy, row := range d.Rows {
		for dx, ch := range row {
			if ch == 'x' {
				continue
			}
			t, ok := world.TerrainFromGlyph(ch)
			if !ok {
				return fmt.Errorf("%w: map glyph %q", ErrMalformed, ch)
			}
			x, y := xstart+dx, ystart+dy
			in.b.SetTerrain(x, y, t)
			c := g.At(x, y)
			c.Lit = d.Lit
			c.Horizontal = t == world.HWall
			if t == world.Door {
				c.DoorMask = world.DoorNone
			}
		}
	}
	f.origin = world.Coord{X: xstart, Y: ystart}
	f.w, f.h = xsize, ysize
	return nil
}

// Level width and height rounded down to even numbers, as used for maze
// alignment of map templates.
const (
	xMazeMax = (world.Cols - 1) &^ 1
	yMazeMax = (world.Rows - 1) &^ 1
)

func templateOrigin(d script.MapTemplate, xsize, ysize int) (int, int) {
	if d.HAlign == script.AlignNone && d.VAlign == script.AlignNone {
		return d.X, d.Y
	}
	xstart, ystart := 3, 3
	switch d.HAlign {
	case script.AlignHalfLeft:
		xstart = 2 + (xMazeMax-2-xsize)/4
	case script.AlignCenter:
		xstart = 2 + (xMazeMax-2-xsize)/2
	case script.AlignHalfRight:
		xstart = 2 + (xMazeMax-2-xsize)*3/4
	case script.AlignRight:
		xstart = xMazeMax - xsize - 1
	}
	switch d.VAlign {
	case script.AlignCenter:
		ystart = 2 + (yMazeMax-2-ysize)/2
	case script.AlignBottom:
		ystart = yMazeMax - ysize - 1
	}
	if xstart%2 == 0 {
		xstart++
	}
	if ystart%2 == 0 {
		ystart++
	}
	return xstart, ystart
}

// terrain overwrites a block of cells. Cells off the level are ignored.
func (in *Interpreter) terrain(d script.Terrain) {
	f := in.top()
	w, h := max(d.W, 1), max(d.H, 1)
	for dx := 0; dx < w; dx++ {
		for dy := 0; dy < h; dy++ {
			x, y := f.origin.X+d.X+dx, f.origin.Y+d.Y+dy
			if world.InBounds(x, y) {
				in.b.SetTerrain(x, y, d.Terrain)
			}
		}
	}
}

// region defines a named cell set and optionally lights it or turns it
// into an irregular room. No draws.
func (in *Interpreter) region(d script.Region) error {
	f := in.top()
	area := world.Rect{
		Lx: f.origin.X + d.Area.Lx, Ly: f.origin.Y + d.Area.Ly,
		Hx: f.origin.X + d.Area.Hx, Hy: f.origin.Y + d.Area.Hy,
	}
	if !world.Bounds().Contains(area) || area.Lx > area.Hx || area.Ly > area.Hy {
		return fmt.Errorf("%w: region %q area %+v", ErrMalformed, d.Name, area)
	}
	var cells []world.Coord
	if d.Flood {
		g := in.b.Grid()
		start := world.Coord{X: area.Lx, Y: area.Ly}
		want := g.Terrain(start.X, start.Y)
		seen := g.Reachable(start, func(_, to world.Coord) bool {
			return area.ContainsPoint(to.X, to.Y) && g.Terrain(to.X, to.Y) == want
		})
		for x := area.Lx; x <= area.Hx; x++ {
			for y := area.Ly; y <= area.Hy; y++ {
				if seen.Has(world.Coord{X: x, Y: y}) {
					cells = append(cells, world.Coord{X: x, Y: y})
				}
			}
		}
	} else {
		for x := area.Lx; x <= area.Hx; x++ {
			for y := area.Ly; y <= area.Hy; y++ {
				cells = append(cells, world.Coord{X: x, Y: y})
			}
		}
	}

	var room *level.Room
	if d.Type != level.Ordinary {
		room = in.b.AddIrregularRoom(cells, d.Lit, d.Type)
	}
	if d.Name == "" {
		if d.Lit {
			g := in.b.Grid()
			for _, c := range cells {
				g.At(c.X, c.Y).Lit = true
			}
		}
		return nil
	}
	reg := in.b.DefineRegion(d.Name, cells, d.Lit)
	reg.Room = room
	return nil
}
