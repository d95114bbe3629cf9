package interp

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"delvegen/pkg/engine/rng"
	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/generator"
	"delvegen/pkg/game/level"
	"delvegen/pkg/game/script"
	"delvegen/pkg/game/themes"
)

type logSink struct{ lines []string }

func (l *logSink) logf(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func newInterp(seed uint64, depth int) (*Interpreter, *level.Builder, *logSink) {
	sink := &logSink{}
	r := rng.New(seed)
	b := level.NewBuilder(r, depth, level.Config{Logf: sink.logf})
	s := generator.New(b, generator.Config{})
	return New(s, themes.Catalogue()), b, sink
}

// fixedRoom lands at 37,9 with an 8x5 floor on an empty level.
func fixedRoom(contents func(script.Scope) error) script.Room {
	return script.Room{
		Type: level.Ordinary,
		X:    3, Y: 3, W: 8, H: 5,
		XAlign: generator.AlignCenter, YAlign: generator.AlignCenter,
		Lit:      script.Yes,
		Contents: contents,
	}
}

func TestRoom_ContentsRunInsideRoom(t *testing.T) {
	in, b, _ := newInterp(1, 3)
	var got *level.Room
	var w, h int
	err := in.Exec(&script.Script{Name: "fixed", Directives: []script.Directive{
		fixedRoom(func(sc script.Scope) error {
			got, w, h = sc.Room(), sc.Width(), sc.Height()
			return sc.Run(script.Object{Spot: script.At(0, 0), ID: "rock"})
		}),
	}})
	if err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if got == nil {
		t.Fatal("contents saw no room")
	}
	if got.Lx != 37 || got.Ly != 9 || w != 8 || h != 5 {
		t.Errorf("room at %d,%d size %dx%d, want 37,9 size 8x5", got.Lx, got.Ly, w, h)
	}
	if !got.Lit {
		t.Error("room requested lit is dark")
	}
	if !b.ObjectAt(37, 9) {
		t.Error("object at room offset 0,0 not placed on the room's corner")
	}
	if in.top().room != nil {
		t.Error("room frame left on the stack")
	}
}

func TestSubroom_SnapsToParentWall(t *testing.T) {
	in, _, _ := newInterp(2, 3)
	var parent *level.Room
	err := in.Run(fixedRoom(func(sc script.Scope) error {
		parent = sc.Room()
		return sc.Run(script.Room{Type: level.Ordinary, X: 1, Y: 1, W: 3, H: 2, Lit: script.No})
	}))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(parent.Subrooms) != 1 {
		t.Fatalf("parent has %d subrooms, want 1", len(parent.Subrooms))
	}
	sub := parent.Subrooms[0]
	if sub.Parent != parent {
		t.Error("subroom parent not set")
	}
	if sub.Lx != parent.Lx || sub.Ly != parent.Ly {
		t.Errorf("subroom at %d,%d, want snapped to %d,%d", sub.Lx, sub.Ly, parent.Lx, parent.Ly)
	}
	if sub.Width() != 3 || sub.Height() != 2 {
		t.Errorf("subroom size %dx%d, want 3x2", sub.Width(), sub.Height())
	}
}

func TestSubroom_OverlapRejected(t *testing.T) {
	in, _, sink := newInterp(3, 3)
	var parent *level.Room
	sub := script.Room{Type: level.Ordinary, X: 0, Y: 0, W: 3, H: 2, Lit: script.No}
	err := in.Run(fixedRoom(func(sc script.Scope) error {
		parent = sc.Room()
		return sc.Run(sub, sub)
	}))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(parent.Subrooms) != 1 {
		t.Errorf("parent has %d subrooms, want the second one rejected", len(parent.Subrooms))
	}
	if !in.themeFailed {
		t.Error("rejected subroom did not mark the room as failed")
	}
	found := false
	for _, l := range sink.lines {
		if strings.Contains(l, "no space") {
			found = true
		}
	}
	if !found {
		t.Errorf("no log line for the rejected subroom: %q", sink.lines)
	}
}

func TestDoor_OnSubroomWall(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		in, b, _ := newInterp(seed, 3)
		var sub *level.Room
		err := in.Run(fixedRoom(func(sc script.Scope) error {
			return sc.Run(script.Room{
				Type: level.Ordinary, X: 0, Y: 0, W: 3, H: 2, Lit: script.No,
				Contents: func(sc script.Scope) error {
					sub = sc.Room()
					return sc.Run(script.RoomDoor())
				},
			})
		}))
		if err != nil {
			t.Fatalf("seed %d: Run: %v", seed, err)
		}
		doors := b.Doors()
		if len(doors) != 1 {
			t.Fatalf("seed %d: %d doors, want 1", seed, len(doors))
		}
		d := doors[0]
		if !b.Terrain(d.X, d.Y).IsDoor() {
			t.Errorf("seed %d: door cell is %v", seed, b.Terrain(d.X, d.Y))
		}
		if !sub.InsideWithWalls(d.X, d.Y) || sub.Inside(d.X, d.Y) {
			t.Errorf("seed %d: door at %d,%d is not on the subroom's walls", seed, d.X, d.Y)
		}
		// the north and west walls back onto rock
		if d.X < sub.Lx || d.Y < sub.Ly {
			t.Errorf("seed %d: door at %d,%d opens onto rock", seed, d.X, d.Y)
		}
	}
}

func TestRun_UndefinedRegion(t *testing.T) {
	in, _, _ := newInterp(1, 1)
	err := in.Exec(&script.Script{Name: "bad", Directives: []script.Directive{
		script.Object{Spot: script.InRegion("nowhere"), ID: "rock"},
	}})
	if !errors.Is(err, ErrUndefinedRegion) {
		t.Errorf("err = %v, want ErrUndefinedRegion", err)
	}
	if err != nil && !strings.Contains(err.Error(), `"bad"`) {
		t.Errorf("error %q does not name the script", err)
	}
}

func TestRun_UnknownDirective(t *testing.T) {
	in, _, _ := newInterp(1, 1)
	if err := in.Run(script.Directive(nil)); !errors.Is(err, ErrUnknownDirective) {
		t.Errorf("err = %v, want ErrUnknownDirective", err)
	}
}

func TestMapTemplate_StampsWithoutDraws(t *testing.T) {
	in, b, _ := newInterp(4, 2)
	b.SetTerrain(12, 6, world.Fountain)
	before := in.r.Count()
	err := in.Run(
		script.MapTemplate{Rows: []string{
			"-----",
			"|.x.|",
			"-----",
		}, X: 10, Y: 5},
		script.Terrain{X: 1, Y: 1, Terrain: world.Ice},
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if in.r.Count() != before {
		t.Errorf("map template made %d draws", in.r.Count()-before)
	}
	tests := []struct {
		x, y int
		want world.Terrain
	}{
		{10, 5, world.HWall},
		{10, 6, world.VWall},
		{11, 6, world.Ice},
		{12, 6, world.Fountain},
		{13, 6, world.Room},
		{14, 7, world.HWall},
	}
	for _, tt := range tests {
		if got := b.Terrain(tt.x, tt.y); got != tt.want {
			t.Errorf("terrain at %d,%d = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if f := in.top(); f.origin != (world.Coord{X: 10, Y: 5}) || f.w != 5 || f.h != 3 {
		t.Errorf("level frame = %+v at %dx%d, want origin 10,5 size 5x3", f.origin, f.w, f.h)
	}
}

func TestMapTemplate_RejectsUnknownGlyph(t *testing.T) {
	in, _, _ := newInterp(4, 2)
	err := in.Run(script.MapTemplate{Rows: []string{"..?.."}, X: 10, Y: 5})
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("err = %v, want ErrMalformed", err)
	}
}

func TestTemplateOrigin_CenteredIsOdd(t *testing.T) {
	x, y := templateOrigin(script.MapTemplate{HAlign: script.AlignCenter, VAlign: script.AlignCenter}, 20, 7)
	if x%2 == 0 || y%2 == 0 {
		t.Errorf("origin %d,%d not odd", x, y)
	}
	if x+20 > world.Cols || y+7 > world.Rows {
		t.Errorf("origin %d,%d pushes template off the level", x, y)
	}
}

func TestRegion_FloodStopsAtOtherTerrain(t *testing.T) {
	in, _, _ := newInterp(5, 2)
	err := in.Run(
		script.MapTemplate{Rows: []string{
			".....",
			"..|..",
		}, X: 10, Y: 5},
		script.Region{Name: "floor", Area: world.Rect{Lx: 0, Ly: 0, Hx: 4, Hy: 1}, Flood: true, Lit: true},
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	reg, ok := in.b.Region("floor")
	if !ok {
		t.Fatal("region not defined")
	}
	if len(reg.Cells) != 9 {
		t.Errorf("flooded %d cells, want 9", len(reg.Cells))
	}
	for _, c := range reg.Cells {
		if c == (world.Coord{X: 12, Y: 6}) {
			t.Error("flood crossed onto the wall")
		}
	}
}

func TestRegion_PlacementStaysInside(t *testing.T) {
	in, b, _ := newInterp(6, 2)
	err := in.Run(
		script.MapTemplate{Rows: []string{"....."}, X: 10, Y: 5},
		script.Region{Name: "spot", Area: world.Rect{Lx: 3, Ly: 0, Hx: 3, Hy: 0}},
		script.Monster{Spot: script.InRegion("spot"), ID: "newt"},
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !b.MonsterAt(13, 5) {
		t.Error("monster not placed in the one-cell region")
	}
}

func TestStair_NoPlaceIsLogged(t *testing.T) {
	in, b, sink := newInterp(7, 2)
	if err := in.Run(script.Stair{Spot: script.Anywhere, Up: true}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(b.Stairs()) != 0 {
		t.Error("stairs placed on solid rock")
	}
	if len(sink.lines) == 0 {
		t.Error("failed placement was not logged")
	}
}

func TestFeature_RejectsNonFeature(t *testing.T) {
	in, _, _ := newInterp(7, 2)
	err := in.Run(script.Feature{Spot: script.Anywhere, Kind: world.Corr})
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("err = %v, want ErrMalformed", err)
	}
}

func TestTrap_WebBringsSpider(t *testing.T) {
	in, b, _ := newInterp(8, 12)
	err := in.Run(fixedRoom(func(sc script.Scope) error {
		return sc.Run(
			script.Trap{Spot: script.At(1, 1), Kind: level.Web},
			script.Trap{Spot: script.At(2, 1), Kind: level.Web, Spider: script.No},
		)
	}))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if b.TrapAt(38, 10) != level.Web || b.TrapAt(39, 10) != level.Web {
		t.Fatal("webs not placed")
	}
	if !b.MonsterAt(38, 10) {
		t.Error("web without a spider setting has no spider")
	}
	if b.MonsterAt(39, 10) {
		t.Error("web with spiders disabled has a spider")
	}
}

func TestPickTheme_Reservoir(t *testing.T) {
	in, _, _ := newInterp(9, 1)
	build := func(script.Scope) error { return nil }
	tests := []struct {
		name  string
		set   []script.Theme
		want  string
		ok    bool
		draws int64
	}{
		{"single", []script.Theme{{Name: "a", Frequency: 5, Build: build}}, "a", true, 1},
		{"zero frequency never wins", []script.Theme{
			{Name: "a", Frequency: 0, Build: build},
			{Name: "b", Frequency: 3, Build: build},
		}, "b", true, 1},
		{"ineligible skipped", []script.Theme{
			{Name: "deep", Frequency: 100, MinDifficulty: 50, Build: build},
			{Name: "b", Frequency: 1, Build: build},
		}, "b", true, 1},
		{"nothing eligible", []script.Theme{
			{Name: "deep", Frequency: 1, MinDifficulty: 50, Build: build},
		}, "", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := in.r.Count()
			got, ok := in.PickTheme(tt.set)
			if ok != tt.ok || got.Name != tt.want {
				t.Errorf("PickTheme = %q, %v; want %q, %v", got.Name, ok, tt.want, tt.ok)
			}
			if n := in.r.Count() - before; n != tt.draws {
				t.Errorf("PickTheme made %d draws, want %d", n, tt.draws)
			}
		})
	}
}

func TestThemes_InsideRoomIsMalformed(t *testing.T) {
	in, _, _ := newInterp(10, 3)
	err := in.Run(fixedRoom(func(sc script.Scope) error {
		return sc.Run(script.Themes{})
	}))
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("err = %v, want ErrMalformed", err)
	}
}

func TestThemes_FillsLevelDeterministically(t *testing.T) {
	run := func() (*level.Builder, int64) {
		in, b, _ := newInterp(11, 8)
		in.r.Attach(rng.NewDrawLog())
		if err := in.Run(script.Themes{}, script.RandomCorridors{}); err != nil {
			t.Fatalf("Run: %v", err)
		}
		return b, in.r.Count()
	}
	a, na := run()
	b, nb := run()
	if a.NumRooms() == 0 {
		t.Fatal("themes made no rooms")
	}
	if na != nb {
		t.Errorf("draw counts %d vs %d", na, nb)
	}
	if !a.Grid().Equal(b.Grid()) {
		t.Error("same seed produced different levels")
	}
	for i := 1; i < a.NumRooms(); i++ {
		if a.Rooms()[i-1].Lx > a.Rooms()[i].Lx {
			t.Errorf("rooms not sorted by x: %d then %d", a.Rooms()[i-1].Lx, a.Rooms()[i].Lx)
		}
	}
}
