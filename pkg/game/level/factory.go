package level

import "delvegen/pkg/engine/rng"

// Factory builds monsters and objects on request. It is called at the
// moment of the request with the level's RNG, so an implementation may
// consume draws in the same order NetHack does.
type Factory interface {
	// MakeMonster returns the name of the monster actually created.
	MakeMonster(r *rng.RNG, req MonsterRequest) (string, bool)
	MakeObject(r *rng.RNG, req ObjectRequest) bool
	MakeGold(r *rng.RNG, x, y, amount int) bool
}

// NopFactory accepts every request without drawing. Random monsters are
// reported by their class, or as "monster".
type NopFactory struct{}

func (NopFactory) MakeMonster(_ *rng.RNG, req MonsterRequest) (string, bool) {
	switch {
	case req.ID != "":
		return req.ID, true
	case req.Class != "":
		return req.Class, true
	}
	return "monster", true
}

func (NopFactory) MakeObject(*rng.RNG, ObjectRequest) bool { return true }

func (NopFactory) MakeGold(*rng.RNG, int, int, int) bool { return true }
