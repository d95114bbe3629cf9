// Package generator places rooms, stairs and corridors on a random level
// and populates them. It owns the level's rectangle pool and drives the
// builder through a fixed sequence of phases so that every run with the
// same seed consumes the same draws in the same order.
package generator

import (
	"fmt"

	"delvegen/pkg/engine/rng"
	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/dungeon"
	"delvegen/pkg/game/level"
	"delvegen/pkg/game/rect"
)

// Phase is the synthesizer's position in the generation pipeline.
type Phase int

const (
	Empty Phase = iota
	Placing
	Connecting
	Secreting
	Done
)

var phaseNames = [...]string{"empty", "placing", "connecting", "secreting", "done"}

func (p Phase) String() string {
	if p >= 0 && int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Light states accepted by RoomRequest.
const (
	LitRandom = -1
	LitOff    = 0
	LitOn     = 1
)

// Random marks a RoomRequest field to be chosen by the generator.
const Random = -1

// Alignments within a grid cell. Random alignment only ever yields the
// first three.
const (
	AlignLeft      = 1
	AlignHalfLeft  = 2
	AlignCenter    = 3
	AlignHalfRight = 4
	AlignRight     = 5

	AlignTop    = AlignLeft
	AlignBottom = AlignRight
)

// Constants for room generation
const (
	placementTries  = 100
	featureTries    = 200
	corridorMaxStep = 500
	stairTries      = 1000
)

// Config tunes a Synthesizer. The zero value generates a normal random
// level.
type Config struct {
	// Bottom levels get no down stairs.
	Bottom bool
	// SkipFill leaves rooms empty (no monsters, objects, traps or
	// furniture). Useful for layout-only tests.
	SkipFill bool
	// SkipSpecial disables special rooms such as shops and zoos.
	SkipSpecial bool
}

// Synthesizer runs room placement, corridor digging and room population
// against a level builder.
type Synthesizer struct {
	b     *level.Builder
	r     *rng.RNG
	pool  *rect.Pool
	desc  dungeon.Descriptor
	cfg   Config
	phase Phase

	theme      func() (failed bool, err error)
	smeq       []int
	vault      *world.Coord
	triedVault bool
	threshold  int

	deferSecrets bool
	secretDoors  map[world.Coord]bool
	secretCorr   map[world.Coord]bool
}

// New returns a synthesizer writing into b. The pool spans the whole
// level.
func New(b *level.Builder, cfg Config) *Synthesizer {
	f := b.Flags()
	return &Synthesizer{
		b:           b,
		r:           b.RNG(),
		pool:        rect.New(world.Bounds()),
		desc:        dungeon.Describe(b.Depth(), cfg.Bottom || f.Bottom, f.NoTeleport),
		cfg:         cfg,
		threshold:   3,
		secretDoors: make(map[world.Coord]bool),
		secretCorr:  make(map[world.Coord]bool),
	}
}

// Phase reports the current pipeline phase
func (s *Synthesizer) Phase() Phase { return s.phase }

// Pool exposes the level rectangle pool
func (s *Synthesizer) Pool() *rect.Pool { return s.pool }

// Builder returns the builder the synthesizer writes into
func (s *Synthesizer) Builder() *level.Builder { return s.b }

// Descriptor returns the depth-derived level properties
func (s *Synthesizer) Descriptor() dungeon.Descriptor { return s.desc }

// UseThemes makes Run build each room through hook instead of a plain
// random room.
func (s *Synthesizer) UseThemes(hook func() (failed bool, err error)) { s.theme = hook }

// enter moves the pipeline forward to p. Phases never move back; a
// script that places rooms after its corridors stays in the later phase.
func (s *Synthesizer) enter(p Phase) {
	if p > s.phase {
		s.phase = p
	}
}

// tag labels the draws of a stage in the draw log until the returned
// func runs.
func (s *Synthesizer) tag(name string) func() {
	s.r.PushTag(name)
	return s.r.PopTag
}

// Run generates a complete random level: rooms, stairs, corridors,
// niches, the vault, special rooms and room contents. It only fails when
// a theme hook reports a programming error.
func (s *Synthesizer) Run() error {
	s.enter(Placing)
	if err := s.MakeRooms(s.theme); err != nil {
		return err
	}
	s.b.SortRooms()
	s.MakeStairs()

	s.enter(Connecting)
	s.deferSecrets = true
	s.MakeCorridors()
	s.MakeNiches()
	s.MakeVault()

	s.Secret()

	if !s.cfg.SkipSpecial {
		s.MakeSpecialRoom()
	}
	if !s.cfg.SkipFill {
		s.FillRooms()
	}
	s.BoundDigging()
	s.Mineralize(true)
	s.enter(Done)
	return nil
}

// Connect digs corridors between the rooms placed so far and applies
// the secret door and corridor decisions straight away. Scripted levels
// use it for their random corridors.
func (s *Synthesizer) Connect() {
	s.enter(Connecting)
	s.deferSecrets = true
	s.MakeCorridors()
	s.Secret()
}

// Secret rewrites every door and corridor cell that was decided secret
// while connecting. No draws.
func (s *Synthesizer) Secret() {
	s.enter(Secreting)
	for c, secret := range s.secretCorr {
		if secret && s.b.Terrain(c.X, c.Y) == world.Corr {
			s.b.SetTerrain(c.X, c.Y, world.SCorr)
		}
	}
	for c, secret := range s.secretDoors {
		if secret && s.b.Terrain(c.X, c.Y) == world.Door {
			s.b.SetTerrain(c.X, c.Y, world.SDoor)
		}
	}
	clear(s.secretCorr)
	clear(s.secretDoors)
	s.deferSecrets = false
}

// Finish marks the pipeline complete for callers that ran the phases
// themselves.
func (s *Synthesizer) Finish() { s.enter(Done) }
