package world

import "testing"

func TestNewGrid_AllStone(t *testing.T) {
	g := NewGrid()
	g.ForEachCell(func(x, y int, c *Cell) {
		if c.Terrain != Stone {
			t.Errorf("cell (%d,%d) = %v, want stone", x, y, c.Terrain)
		}
	})
	if msg := g.Validate(); msg != "" {
		t.Errorf("Validate() = %q", msg)
	}
}

func TestGrid_OutOfBoundsReadsStone(t *testing.T) {
	g := NewGrid()
	if g.At(-1, 0) != nil || g.At(Cols, 0) != nil || g.At(0, Rows) != nil {
		t.Error("At out of bounds should be nil")
	}
	if g.Terrain(Cols+3, 2) != Stone {
		t.Error("Terrain out of bounds should read stone")
	}
	if g.SetTerrain(-1, 0, Room) {
		t.Error("SetTerrain out of bounds should fail")
	}
}

func TestGrid_CodesRowMajor(t *testing.T) {
	g := NewGrid()
	g.SetTerrain(5, 2, Room)
	codes := g.Codes()
	if len(codes) != Cols*Rows {
		t.Fatalf("len(Codes()) = %d", len(codes))
	}
	if codes[2*Cols+5] != uint8(Room) {
		t.Errorf("code at (5,2) = %d, want %d", codes[2*Cols+5], Room)
	}
}

func TestGrid_CloneIsIndependent(t *testing.T) {
	g := NewGrid()
	c := g.Clone()
	c.SetTerrain(3, 3, Corr)
	if g.Terrain(3, 3) != Stone {
		t.Error("Clone shares storage with original")
	}
	if g.Equal(c) {
		t.Error("Equal should report the difference")
	}
}

func TestGrid_Reachable(t *testing.T) {
	g := NewGrid()
	for x := 2; x <= 6; x++ {
		g.SetTerrain(x, 4, Corr)
	}
	g.SetTerrain(10, 4, Corr)
	pass := func(_, to Coord) bool { return g.Terrain(to.X, to.Y).Traversable() }
	got := g.Reachable(Coord{2, 4}, pass)
	if got.Size() != 5 {
		t.Errorf("reachable = %d cells, want 5", got.Size())
	}
	if got.Has(Coord{10, 4}) {
		t.Error("isolated corridor reported reachable")
	}
}

func TestRect_Intersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
		ok   bool
	}{
		{"overlap", Rect{0, 0, 10, 10}, Rect{5, 5, 15, 15}, Rect{5, 5, 10, 10}, true},
		{"touching edge", Rect{0, 0, 10, 10}, Rect{10, 0, 20, 10}, Rect{10, 0, 10, 10}, true},
		{"disjoint", Rect{0, 0, 4, 4}, Rect{5, 0, 9, 4}, Rect{}, false},
		{"contained", Rect{0, 0, 79, 20}, Rect{3, 3, 6, 6}, Rect{3, 3, 6, 6}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.Intersect(tt.b)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Intersect = %v,%v want %v,%v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestTerrain_Predicates(t *testing.T) {
	if !TLCorner.IsWall() || Tree.IsWall() || SDoor.IsWall() {
		t.Error("IsWall classification wrong")
	}
	if !Door.Accessible() || SCorr.Accessible() {
		t.Error("Accessible classification wrong")
	}
	if !SCorr.Traversable() || !SDoor.Traversable() || Pool.Traversable() {
		t.Error("Traversable classification wrong")
	}
	if uint8(Cloud) != 35 || uint8(Door) != 22 {
		t.Error("terrain numbering changed")
	}
	for r, want := range map[rune]Terrain{'.': Room, '#': Corr, 'S': SDoor, '}': Moat} {
		if got, ok := TerrainFromGlyph(r); !ok || got != want {
			t.Errorf("TerrainFromGlyph(%q) = %v", r, got)
		}
	}
}
