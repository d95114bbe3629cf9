// Package dungeon holds depth-dependent facts about the main dungeon: how
// hard a level is, where the special levels sit, and which depth band a
// level belongs to.
package dungeon

import (
	"github.com/leonelquinteros/gotext"
)

// Band groups depths for flavour and diagnostics.
type Band int

const (
	Upper  Band = iota // depths 1-4
	Middle             // 5-11
	Lower              // 12-20
	Deep               // 21 and below
)

// Fixed positions in the main dungeon.
const (
	// MedusaDepth is the first depth where shops are no longer built.
	MedusaDepth = 24
	// TrapdoorNicheMin and TrapdoorNicheMax bound where trapdoor niches appear.
	TrapdoorNicheMin = 6
	TrapdoorNicheMax = 24
	// TeleportNicheMin is the depth below which level teleporter niches appear.
	TeleportNicheMin = 15
)

// Difficulty returns the level difficulty used by trap and door rules.
// Outside the endgame it equals the depth.
func Difficulty(depth int) int {
	if depth < 1 {
		return 1
	}
	return depth
}

// BandOf returns the depth band for a depth
func BandOf(depth int) Band {
	switch {
	case depth <= 4:
		return Upper
	case depth <= 11:
		return Middle
	case depth <= 20:
		return Lower
	default:
		return Deep
	}
}

// Descriptor summarises one level of the dungeon.
type Descriptor struct {
	Depth      int
	Difficulty int
	Band       Band
	// Bottom levels have no down stairs.
	Bottom bool
	// NoTeleport levels suppress teleport niches and vault teleporters.
	NoTeleport bool
}

// Describe returns the descriptor for depth.
func Describe(depth int, bottom, noTeleport bool) Descriptor {
	return Descriptor{
		Depth:      depth,
		Difficulty: Difficulty(depth),
		Band:       BandOf(depth),
		Bottom:     bottom,
		NoTeleport: noTeleport,
	}
}

// NeedsUpStairs reports whether a level at depth leads back up
func (d Descriptor) NeedsUpStairs() bool { return d.Depth > 1 }

// ShopsAllowed reports whether depth is between the first level and Medusa.
func (d Descriptor) ShopsAllowed() bool { return d.Depth > 1 && d.Depth < MedusaDepth }

// TrapdoorNiches reports whether trapdoor niches may be made
func (d Descriptor) TrapdoorNiches() bool {
	return d.Depth >= TrapdoorNicheMin && d.Depth <= TrapdoorNicheMax
}

// TeleportNiches reports whether level teleporter niches may be made
func (d Descriptor) TeleportNiches() bool {
	return !d.NoTeleport && d.Depth > TeleportNicheMin
}

// BandLabel returns the translated band label.
func BandLabel(b Band) string {
	switch b {
	case Middle:
		return gotext.Get("BAND_MIDDLE")
	case Lower:
		return gotext.Get("BAND_LOWER")
	case Deep:
		return gotext.Get("BAND_DEEP")
	default:
		return gotext.Get("BAND_UPPER")
	}
}
