package walls

import (
	"testing"

	"delvegen/pkg/engine/world"
)

func floorRect(g *world.Grid, lx, ly, hx, hy int) {
	for x := lx; x <= hx; x++ {
		for y := ly; y <= hy; y++ {
			g.SetTerrain(x, y, world.Room)
		}
	}
}

func TestClassify_SimpleRoomCorners(t *testing.T) {
	g := world.NewGrid()
	floorRect(g, 10, 5, 14, 7)
	Classify(g)

	want := map[world.Coord]world.Terrain{
		{X: 9, Y: 4}:  world.TLCorner,
		{X: 15, Y: 4}: world.TRCorner,
		{X: 9, Y: 8}:  world.BLCorner,
		{X: 15, Y: 8}: world.BRCorner,
		{X: 12, Y: 4}: world.HWall,
		{X: 12, Y: 8}: world.HWall,
		{X: 9, Y: 6}:  world.VWall,
		{X: 15, Y: 6}: world.VWall,
		{X: 8, Y: 6}:  world.Stone,
		{X: 12, Y: 6}: world.Room,
	}
	for c, w := range want {
		if got := g.Terrain(c.X, c.Y); got != w {
			t.Errorf("(%d,%d) = %v, want %v", c.X, c.Y, got, w)
		}
	}
}

func TestClassify_Idempotent(t *testing.T) {
	g := world.NewGrid()
	floorRect(g, 10, 5, 20, 12)
	floorRect(g, 30, 3, 33, 5)
	// A subroom: walls inside a floor area.
	floorRect(g, 40, 3, 60, 15)
	for x := 45; x <= 50; x++ {
		g.SetTerrain(x, 6, world.HWall)
		g.SetTerrain(x, 10, world.HWall)
	}
	for y := 6; y <= 10; y++ {
		g.SetTerrain(45, y, world.VWall)
		g.SetTerrain(50, y, world.VWall)
	}
	for x := 21; x <= 29; x++ {
		g.SetTerrain(x, 8, world.Corr)
	}
	Classify(g)
	once := g.Clone()
	Classify(g)
	if !g.Equal(once) {
		t.Errorf("second pass changed the grid:\n%s\nvs\n%s", once, g)
	}
	if got := g.Terrain(45, 6); got != world.TLCorner {
		t.Errorf("subroom corner = %v, want top-left corner", got)
	}
}

func TestClassify_CorridorsStayUnwalled(t *testing.T) {
	g := world.NewGrid()
	for x := 5; x <= 15; x++ {
		g.SetTerrain(x, 10, world.Corr)
	}
	Classify(g)
	for x := 4; x <= 16; x++ {
		for _, y := range []int{9, 11} {
			if g.Terrain(x, y) != world.Stone {
				t.Errorf("(%d,%d) = %v next to corridor, want stone", x, y, g.Terrain(x, y))
			}
		}
	}
}

func TestCleanup_BuriedWallBecomesStone(t *testing.T) {
	g := world.NewGrid()
	g.SetTerrain(20, 10, world.HWall)
	g.SetTerrain(21, 10, world.VWall)
	Cleanup(g, world.Rect{Lx: 1, Ly: 0, Hx: world.Cols - 1, Hy: world.Rows - 1})
	if g.Terrain(20, 10) != world.Stone || g.Terrain(21, 10) != world.Stone {
		t.Error("walls surrounded by rock were kept")
	}
}

func TestFixSpines_FreeStandingPillarKeepsType(t *testing.T) {
	g := world.NewGrid()
	floorRect(g, 10, 5, 14, 9)
	g.SetTerrain(12, 7, world.HWall)
	Classify(g)
	if got := g.Terrain(12, 7); got != world.HWall {
		t.Errorf("pillar = %v, want horizontal wall", got)
	}
}

func TestFixSpines_DoorContinuesWall(t *testing.T) {
	g := world.NewGrid()
	floorRect(g, 10, 5, 14, 7)
	Classify(g)
	g.SetTerrain(12, 4, world.Door)
	g.SetTerrain(12, 3, world.Corr)
	Classify(g)
	if g.Terrain(11, 4) != world.HWall || g.Terrain(13, 4) != world.HWall {
		t.Errorf("walls beside door = %v/%v", g.Terrain(11, 4), g.Terrain(13, 4))
	}
	if g.Terrain(12, 4) != world.Door {
		t.Error("door rewritten")
	}
}
