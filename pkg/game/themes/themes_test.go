package themes

import (
	"testing"

	"delvegen/pkg/engine/rng"
	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/generator"
	"delvegen/pkg/game/interp"
	"delvegen/pkg/game/level"
	"delvegen/pkg/game/script"
)

func newScope(seed uint64, depth int) (script.Scope, *level.Builder) {
	r := rng.New(seed)
	b := level.NewBuilder(r, depth, level.Config{Logf: func(string, ...any) {}})
	s := generator.New(b, generator.Config{})
	return interp.New(s, Catalogue()).Scope(), b
}

func TestCatalogue_NamesAndWeights(t *testing.T) {
	cat := Catalogue()
	if len(cat) != 16 {
		t.Fatalf("catalogue has %d themes, want 16", len(cat))
	}
	if cat[0].Name != "default" || cat[0].Frequency != DefaultFrequency {
		t.Errorf("first theme = %q weight %d, want the default room", cat[0].Name, cat[0].Frequency)
	}
	seen := make(map[string]bool)
	for _, th := range cat {
		if seen[th.Name] {
			t.Errorf("duplicate theme %q", th.Name)
		}
		seen[th.Name] = true
		if th.Build == nil {
			t.Errorf("theme %q has no builder", th.Name)
		}
		if th.Frequency <= 0 {
			t.Errorf("theme %q can never be picked", th.Name)
		}
	}
	if p := Plain(); len(p) != 1 || p[0].Name != "default" {
		t.Errorf("Plain() = %v", p)
	}
}

func TestCatalogue_EligibilityByDifficulty(t *testing.T) {
	tests := []struct {
		name string
		diff int
		want bool
	}{
		{"spider nest", 9, false},
		{"spider nest", 10, true},
		{"temple of the gods", 4, false},
		{"temple of the gods", 5, true},
		{"pillars", 1, true},
	}
	byName := make(map[string]script.Theme)
	for _, th := range Catalogue() {
		byName[th.Name] = th
	}
	for _, tt := range tests {
		if got := byName[tt.name].Eligible(tt.diff); got != tt.want {
			t.Errorf("%s eligible at %d = %v, want %v", tt.name, tt.diff, got, tt.want)
		}
	}
}

func TestCatalogue_EachThemeBuildsOneRoom(t *testing.T) {
	for _, th := range Catalogue() {
		t.Run(th.Name, func(t *testing.T) {
			for seed := uint64(1); seed <= 3; seed++ {
				sc, b := newScope(seed, 14)
				if err := th.Build(sc); err != nil {
					t.Fatalf("seed %d: %v", seed, err)
				}
				if b.NumRooms() != 1 {
					t.Errorf("seed %d: %d rooms on an empty level, want 1", seed, b.NumRooms())
				}
			}
		})
	}
}

func TestPillars_BlocksShareTerrain(t *testing.T) {
	for seed := uint64(1); seed <= 8; seed++ {
		sc, b := newScope(seed, 3)
		if err := pillars(sc); err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		r := b.Rooms()[0]
		if r.Width() != 10 || r.Height() != 10 {
			t.Fatalf("seed %d: hall is %dx%d", seed, r.Width(), r.Height())
		}
		want := b.Terrain(r.Lx+2, r.Ly+2)
		if want == world.Room {
			t.Errorf("seed %d: pillar left as floor", seed)
		}
		for _, c := range []world.Coord{{X: 3, Y: 3}, {X: 6, Y: 2}, {X: 2, Y: 7}, {X: 7, Y: 7}} {
			if got := b.Terrain(r.Lx+c.X, r.Ly+c.Y); got != want {
				t.Errorf("seed %d: pillar cell %v = %v, want %v", seed, c, got, want)
			}
		}
		if got := b.Terrain(r.Lx+4, r.Ly+4); got != world.Room {
			t.Errorf("seed %d: aisle cell = %v", seed, got)
		}
	}
}

func TestTempleOfTheGods_OneAltarPerAlignment(t *testing.T) {
	sc, b := newScope(5, 9)
	if err := templeOfTheGods(sc); err != nil {
		t.Fatal(err)
	}
	l, err := b.Finalize(level.StairNeeds{})
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	altars := l.Altars()
	if len(altars) != 3 {
		t.Fatalf("%d altars, want 3", len(altars))
	}
	seen := make(map[level.Alignment]bool)
	for _, a := range altars {
		seen[a.Align] = true
		if !a.Shrine {
			t.Errorf("altar at %d,%d is not a shrine", a.X, a.Y)
		}
	}
	if len(seen) != 3 {
		t.Errorf("altar alignments %v, want all three", seen)
	}
}

func TestBuriedTreasure_ChestUnderEngraving(t *testing.T) {
	sc, b := newScope(6, 4)
	if err := themedFill(buriedTreasure)(sc); err != nil {
		t.Fatal(err)
	}
	l, err := b.Finalize(level.StairNeeds{})
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	objs, engr := l.Objects(), l.Engravings()
	if len(objs) != 1 || !objs[0].Buried || objs[0].ID != "chest" {
		t.Fatalf("objects = %+v, want one buried chest", objs)
	}
	if len(engr) != 1 || engr[0].X != objs[0].X || engr[0].Y != objs[0].Y {
		t.Errorf("engravings = %+v, want one over the chest", engr)
	}
}
