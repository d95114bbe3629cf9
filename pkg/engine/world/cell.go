// Package world provides the level grid primitives shared by every
// generation stage: terrain, cells, rectangles and directions.
package world

import "strings"

// DoorMask holds the state bits of a door cell.
type DoorMask uint8

const (
	DoorNone    DoorMask = 0
	DoorBroken  DoorMask = 1
	DoorOpen    DoorMask = 2
	DoorClosed  DoorMask = 4
	DoorLocked  DoorMask = 8
	DoorTrapped DoorMask = 16
)

// String names the set bits, or "doorway" for an empty mask.
func (m DoorMask) String() string {
	if m == DoorNone {
		return "doorway"
	}
	var parts []string
	for _, b := range []struct {
		bit  DoorMask
		name string
	}{
		{DoorBroken, "broken"}, {DoorOpen, "open"}, {DoorClosed, "closed"},
		{DoorLocked, "locked"}, {DoorTrapped, "trapped"},
	} {
		if m&b.bit != 0 {
			parts = append(parts, b.name)
		}
	}
	return strings.Join(parts, "|")
}

// RoomNo values below RoomOffset are markers, not room indices.
const (
	NoRoom     = 0
	SharedRoom = 1
	SharedPlus = 2
	RoomOffset = 3
)

// Cell is one map location.
type Cell struct {
	Terrain  Terrain
	RoomNo   int
	DoorMask DoorMask

	Lit         bool
	NonDiggable bool
	Horizontal  bool // wall orientation hint for doors and secret doors
	Edge        bool // part of a room's wall ring
}

// Door state helpers

// IsOpen reports a door standing open
func (c Cell) IsOpen() bool { return c.DoorMask&DoorOpen != 0 }

// IsLocked reports a locked door
func (c Cell) IsLocked() bool { return c.DoorMask&DoorLocked != 0 }

// IsTrapped reports a trapped door
func (c Cell) IsTrapped() bool { return c.DoorMask&DoorTrapped != 0 }
