package level

import (
	"errors"
	"strings"
	"testing"

	"delvegen/pkg/engine/rng"
	"delvegen/pkg/engine/world"
)

func quietBuilder() *Builder {
	return NewBuilder(rng.New(1), 3, Config{Logf: func(string, ...any) {}})
}

// twoRooms builds two rooms joined by a straight corridor.
func twoRooms(t *testing.T, connect bool) (*Builder, *Room, *Room) {
	t.Helper()
	b := quietBuilder()
	a := b.AddRoom(5, 5, 10, 8, true, Ordinary, false)
	c := b.AddRoom(20, 5, 25, 8, false, Ordinary, false)
	if !connect {
		return b, a, c
	}
	b.SetTerrain(11, 6, world.Door)
	b.AddDoor(11, 6, a)
	b.SetTerrain(19, 6, world.Door)
	b.AddDoor(19, 6, c)
	id := b.NewCorridor()
	for x := 12; x <= 18; x++ {
		b.DigCell(x, 6, world.Corr, id)
	}
	return b, a, c
}

func TestAddRoom_CarvesWallsAndFloor(t *testing.T) {
	b, a, _ := twoRooms(t, false)
	if b.Terrain(4, 4) != world.TLCorner || b.Terrain(11, 9) != world.BRCorner {
		t.Errorf("corners = %v/%v", b.Terrain(4, 4), b.Terrain(11, 9))
	}
	if b.Terrain(7, 4) != world.HWall || b.Terrain(4, 6) != world.VWall {
		t.Error("walls not carved")
	}
	if b.Terrain(7, 6) != world.Room {
		t.Error("floor not carved")
	}
	if !b.Grid().Cell(4, 4).Lit || !a.Lit {
		t.Error("lit room walls should be lit")
	}
}

func TestFinalize_ConnectedLevel(t *testing.T) {
	b, a, c := twoRooms(t, true)
	b.AddStair(7, 6, false, a)
	b.AddStair(22, 6, true, c)
	lvl, err := b.Finalize(StairNeeds{Up: true, Down: true})
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if len(lvl.Rooms()) != 2 || len(lvl.Stairs()) != 2 {
		t.Errorf("rooms=%d stairs=%d", len(lvl.Rooms()), len(lvl.Stairs()))
	}
	if got := lvl.Cell(7, 7).RoomNo; got != world.RoomOffset {
		t.Errorf("RoomNo = %d, want %d", got, world.RoomOffset)
	}
	if !lvl.Cell(4, 4).Edge {
		t.Error("wall ring not marked as edge")
	}
}

func TestFinalize_MissingStairs(t *testing.T) {
	b, _, _ := twoRooms(t, true)
	_, err := b.Finalize(StairNeeds{Up: true, Down: true})
	if !errors.Is(err, ErrInvariant) {
		t.Fatalf("err = %v, want ErrInvariant", err)
	}
	var ie *InvariantError
	if !errors.As(err, &ie) || len(ie.Violations) != 2 {
		t.Errorf("violations = %v", err)
	}
}

func TestFinalize_DuplicateStairs(t *testing.T) {
	b, a, _ := twoRooms(t, true)
	b.AddStair(6, 6, false, a)
	b.AddStair(8, 6, false, a)
	_, err := b.Finalize(StairNeeds{Down: true})
	if err == nil || !strings.Contains(err.Error(), "2 down staircases") {
		t.Errorf("err = %v", err)
	}
}

func TestFinalize_Disconnected(t *testing.T) {
	b, a, _ := twoRooms(t, false)
	b.AddStair(7, 6, false, a)
	_, err := b.Finalize(StairNeeds{Down: true})
	if err == nil || !strings.Contains(err.Error(), "unreachable") {
		t.Errorf("err = %v", err)
	}
}

func TestFinalize_DoorFacingRock(t *testing.T) {
	b, a, _ := twoRooms(t, true)
	b.SetTerrain(7, 4, world.Door)
	b.AddDoor(7, 4, a)
	_, err := b.Finalize(StairNeeds{})
	if err == nil || !strings.Contains(err.Error(), "door at (7,4)") {
		t.Errorf("err = %v", err)
	}
}

func TestFinalize_BlindDoorAllowed(t *testing.T) {
	b, a, _ := twoRooms(t, true)
	b.SetTerrain(7, 4, world.Door)
	b.MarkBlind(b.AddDoor(7, 4, a))
	if _, err := b.Finalize(StairNeeds{}); err != nil {
		t.Errorf("Finalize: %v", err)
	}
}

func TestClaims_OverlappingRoomsViolate(t *testing.T) {
	b := quietBuilder()
	b.AddRoom(5, 5, 10, 8, false, Ordinary, false)
	b.AddRoom(9, 7, 14, 10, false, Ordinary, false)
	_, err := b.Finalize(StairNeeds{})
	if err == nil || !strings.Contains(err.Error(), "claimed by") {
		t.Errorf("err = %v", err)
	}
}

func TestClaims_SubroomInsideParentAllowed(t *testing.T) {
	b := quietBuilder()
	p := b.AddRoom(5, 5, 20, 12, false, Ordinary, false)
	sub := b.AddSubroom(p, 8, 7, 10, 9, false, Ordinary, false)
	if len(b.violations) != 0 {
		t.Fatalf("violations = %v", b.violations)
	}
	if b.Terrain(7, 6) != world.TLCorner {
		t.Errorf("subroom corner = %v", b.Terrain(7, 6))
	}
	if b.RoomAt(9, 8) != sub || b.RoomAt(15, 8) != p {
		t.Error("RoomAt does not resolve subroom")
	}
}

func TestFinalize_FreezesBuilder(t *testing.T) {
	b, _, _ := twoRooms(t, true)
	if _, err := b.Finalize(StairNeeds{}); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Error("mutating a finalized builder did not panic")
		}
	}()
	b.SetTerrain(1, 1, world.Room)
}

func TestSomeXY_AvoidsSubrooms(t *testing.T) {
	b := quietBuilder()
	p := b.AddRoom(5, 5, 12, 10, false, Ordinary, false)
	b.AddSubroom(p, 6, 6, 8, 8, false, Ordinary, false)
	for i := 0; i < 200; i++ {
		c, ok := b.SomeXY(p)
		if !ok {
			continue
		}
		if p.Subrooms[0].InsideWithWalls(c.X, c.Y) {
			t.Fatalf("SomeXY returned (%d,%d) inside subroom", c.X, c.Y)
		}
	}
}

func TestNopFactory_NamesMonsters(t *testing.T) {
	b := quietBuilder()
	name, ok := b.RequestMonster(MonsterRequest{X: 3, Y: 3, ID: "giant spider"})
	if !ok || name != "giant spider" || !b.MonsterAt(3, 3) {
		t.Errorf("RequestMonster = %q,%v", name, ok)
	}
	if b.RNG().Count() != 0 {
		t.Error("NopFactory drew from the stream")
	}
}
