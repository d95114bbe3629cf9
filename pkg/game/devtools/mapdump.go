// Package devtools provides developer tools for inspecting generated
// levels: text, colour and HTML map dumps, a showcase script and draw log
// comparison.
package devtools

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/dungeon"
	"delvegen/pkg/game/level"
)

// mark classifies a dumped cell for colouring.
type mark int

const (
	markStone mark = iota
	markWall
	markFloor
	markDark
	markCorridor
	markDoor
	markStairs
	markFeature
	markLiquid
	markLava
	markTree
	markTrap
	markObject
	markMonster
)

var markStyles = map[mark]color.Style{
	markWall:     {color.FgGray},
	markFloor:    {color.FgWhite},
	markDark:     {color.FgGray},
	markCorridor: {color.FgGray, color.OpBold},
	markDoor:     {color.FgYellow, color.OpBold},
	markStairs:   {color.FgGreen, color.OpBold},
	markFeature:  {color.FgCyan},
	markLiquid:   {color.FgBlue},
	markLava:     {color.FgRed},
	markTree:     {color.FgGreen},
	markTrap:     {color.FgMagenta},
	markObject:   {color.FgMagenta, color.OpBold},
	markMonster:  {color.FgRed, color.OpBold},
}

// overlay holds the things drawn on top of terrain.
type overlay map[world.Coord]struct {
	r rune
	m mark
}

func overlays(l *level.Level) overlay {
	o := make(overlay)
	put := func(x, y int, r rune, m mark) {
		o[world.Coord{X: x, Y: y}] = struct {
			r rune
			m mark
		}{r, m}
	}
	for _, ob := range l.Objects() {
		if !ob.Buried {
			put(ob.X, ob.Y, '*', markObject)
		}
	}
	for _, t := range l.Traps() {
		put(t.X, t.Y, '^', markTrap)
	}
	for _, m := range l.Monsters() {
		put(m.X, m.Y, 'M', markMonster)
	}
	for _, s := range l.Stairs() {
		if s.Up {
			put(s.X, s.Y, '<', markStairs)
		} else {
			put(s.X, s.Y, '>', markStairs)
		}
	}
	return o
}

// symbolAt returns the glyph shown at x/y and how to colour it.
func (o overlay) symbolAt(l *level.Level, x, y int) (rune, mark) {
	if v, ok := o[world.Coord{X: x, Y: y}]; ok {
		return v.r, v.m
	}
	c := l.Cell(x, y)
	t := c.Terrain
	switch {
	case t == world.Stone:
		return ' ', markStone
	case t.IsWall() || t == world.SDoor || t == world.SCorr:
		// secrets look like what they hide
		if t == world.SCorr {
			return ' ', markStone
		}
		if t == world.SDoor {
			if c.Horizontal {
				return '-', markWall
			}
			return '|', markWall
		}
		return t.Glyph(), markWall
	case t.IsDoor():
		if c.IsOpen() {
			return '\'', markDoor
		}
		return t.Glyph(), markDoor
	case t == world.Corr:
		return '#', markCorridor
	case t == world.Room:
		if c.Lit {
			return '.', markFloor
		}
		return '.', markDark
	case t.IsPool():
		return t.Glyph(), markLiquid
	case t == world.LavaPool:
		return t.Glyph(), markLava
	case t == world.Tree:
		return t.Glyph(), markTree
	case t == world.Stairs || t == world.Ladder:
		return t.Glyph(), markStairs
	}
	return t.Glyph(), markFeature
}

// MapLines renders the level as rows of glyphs with trailing blanks
// trimmed. colour wraps every glyph in its terminal style.
func MapLines(l *level.Level, colour bool) []string {
	o := overlays(l)
	lines := make([]string, 0, world.Rows)
	var sb strings.Builder
	for y := 0; y < world.Rows; y++ {
		sb.Reset()
		last := 0
		cells := make([]string, 0, world.Cols)
		for x := 0; x < world.Cols; x++ {
			r, m := o.symbolAt(l, x, y)
			s := string(r)
			if r != ' ' {
				last = x + 1
				if st, ok := markStyles[m]; ok && colour {
					s = st.Sprint(s)
				}
			}
			cells = append(cells, s)
		}
		for _, s := range cells[:last] {
			sb.WriteString(s)
		}
		lines = append(lines, sb.String())
	}
	return lines
}

// DumpLevel writes a debug dump of l: metadata, legend, the map and the
// lists of rooms, doors, stairs, traps, regions, monsters, objects and
// engravings. The layout is plain "key: value" lines so it diffs well.
func DumpLevel(w io.Writer, l *level.Level, colour bool) error {
	bw := bufio.NewWriter(w)
	desc := dungeon.Describe(l.Depth(), l.Flags().Bottom, l.Flags().NoTeleport)

	fmt.Fprintln(bw, "=== LEVEL DUMP ===")
	fmt.Fprintln(bw, "")
	fmt.Fprintln(bw, "--- Metadata ---")
	fmt.Fprintf(bw, "depth: %d\n", l.Depth())
	fmt.Fprintf(bw, "seed: %d\n", l.Seed())
	fmt.Fprintf(bw, "draws: %d\n", l.DrawCount())
	fmt.Fprintf(bw, "difficulty: %d\n", desc.Difficulty)
	fmt.Fprintf(bw, "band: %s\n", dungeon.BandLabel(desc.Band))
	fmt.Fprintf(bw, "coordinate_system: x,y (0-based, x=column, y=row)\n")
	fmt.Fprintln(bw, "")

	fmt.Fprintf(bw, "--- %s ---\n", gotext.Get("Legend"))
	fmt.Fprintln(bw, legend())
	fmt.Fprintln(bw, "")

	fmt.Fprintf(bw, "--- %s ---\n", gotext.Get("Map"))
	for _, line := range MapLines(l, colour) {
		fmt.Fprintln(bw, line)
	}
	fmt.Fprintln(bw, "")

	fmt.Fprintf(bw, "--- %s ---\n", gotext.Get("Rooms"))
	for i, r := range l.Rooms() {
		fmt.Fprintf(bw, "  room: %d type: %s lit: %v floor: %d,%d-%d,%d subrooms: %d doors: %d\n",
			i, r.Type, r.Lit, r.Lx, r.Ly, r.Hx, r.Hy, len(r.Subrooms), r.DoorCount)
	}
	fmt.Fprintf(bw, "--- %s ---\n", gotext.Get("Doors"))
	for _, d := range l.Doors() {
		c := l.Cell(d.X, d.Y)
		fmt.Fprintf(bw, "  x: %d y: %d terrain: %s state: %s blind: %v\n", d.X, d.Y, c.Terrain, c.DoorMask, d.Blind)
	}
	fmt.Fprintf(bw, "--- %s ---\n", gotext.Get("Stairs"))
	for _, s := range l.Stairs() {
		fmt.Fprintf(bw, "  x: %d y: %d up: %v\n", s.X, s.Y, s.Up)
	}
	fmt.Fprintf(bw, "--- %s ---\n", gotext.Get("Traps"))
	for _, t := range l.Traps() {
		fmt.Fprintf(bw, "  x: %d y: %d kind: %s\n", t.X, t.Y, t.Kind)
	}
	fmt.Fprintf(bw, "--- %s ---\n", gotext.Get("Regions"))
	for _, r := range l.Regions() {
		fmt.Fprintf(bw, "  name: %q cells: %d lit: %v room: %v\n", r.Name, len(r.Cells), r.Lit, r.Room != nil)
	}
	fmt.Fprintf(bw, "--- %s ---\n", gotext.Get("Monsters"))
	for _, m := range l.Monsters() {
		fmt.Fprintf(bw, "  x: %d y: %d id: %q class: %q asleep: %v reason: %s\n", m.X, m.Y, m.ID, m.Class, m.Asleep, m.Reason)
	}
	fmt.Fprintf(bw, "--- %s ---\n", gotext.Get("Objects"))
	for _, o := range l.Objects() {
		fmt.Fprintf(bw, "  x: %d y: %d id: %q class: %q quantity: %d buried: %v reason: %s\n", o.X, o.Y, o.ID, o.Class, o.Quantity, o.Buried, o.Reason)
	}
	fmt.Fprintf(bw, "--- %s ---\n", gotext.Get("Engravings"))
	for _, e := range l.Engravings() {
		fmt.Fprintf(bw, "  x: %d y: %d kind: %v text: %q\n", e.X, e.Y, e.Kind, e.Text)
	}
	return bw.Flush()
}

func legend() string {
	return strings.Join([]string{
		". = " + gotext.Get("floor"),
		"# = " + gotext.Get("corridor"),
		"+ = " + gotext.Get("door"),
		"< > = " + gotext.Get("stairs"),
		"^ = " + gotext.Get("trap"),
		"{ = " + gotext.Get("fountain"),
		"_ = " + gotext.Get("altar"),
		"} P W = " + gotext.Get("water"),
		"L = " + gotext.Get("lava"),
		"T = " + gotext.Get("tree"),
		"* = " + gotext.Get("object"),
		"M = " + gotext.Get("monster"),
	}, "  ")
}

// DumpLevelToFile writes DumpLevel output without colour to path and
// returns the absolute path written.
func DumpLevelToFile(l *level.Level, path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := DumpLevel(f, l, false); err != nil {
		return "", err
	}
	return absPath, nil
}
