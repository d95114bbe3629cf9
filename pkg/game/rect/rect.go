// Package rect tracks the free space still available for rooms on a level
// as a pool of disjoint rectangles.
package rect

import (
	"delvegen/pkg/engine/rng"
	"delvegen/pkg/engine/world"
)

// Margins kept between rooms, and pool capacity.
const (
	XLim    = 4
	YLim    = 3
	MaxRect = 50
)

// Pool is a set of disjoint free rectangles inside bounds.
type Pool struct {
	rects      []world.Rect
	bounds     world.Rect
	xlim, ylim int
	observe    func(*Pool)
}

// New seeds a pool with one rectangle covering bounds, using the level margins
func New(bounds world.Rect) *Pool {
	return NewScoped(bounds, XLim, YLim)
}

// NewScoped seeds a pool with custom margins, for space inside a room.
func NewScoped(bounds world.Rect, xlim, ylim int) *Pool {
	return &Pool{
		rects:  []world.Rect{bounds},
		bounds: bounds,
		xlim:   xlim,
		ylim:   ylim,
	}
}

// Observe registers fn to run after every Commit.
func (p *Pool) Observe(fn func(*Pool)) { p.observe = fn }

// Bounds returns the area the pool was seeded with
func (p *Pool) Bounds() world.Rect { return p.bounds }

// Len returns the number of free rectangles
func (p *Pool) Len() int { return len(p.rects) }

// Rects returns a snapshot of the free rectangles in pool order
func (p *Pool) Rects() []world.Rect {
	out := make([]world.Rect, len(p.rects))
	copy(out, p.rects)
	return out
}

// Allocate picks a random free rectangle with one draw. It reports false,
// without drawing, when the pool is exhausted.
func (p *Pool) Allocate(r *rng.RNG) (world.Rect, bool) {
	if len(p.rects) == 0 {
		return world.Rect{}, false
	}
	return p.rects[r.Rn2(len(p.rects))], true
}

// Find returns the first free rectangle containing r.
func (p *Pool) Find(r world.Rect) (world.Rect, bool) {
	for _, fr := range p.rects {
		if fr.Contains(r) {
			return fr, true
		}
	}
	return world.Rect{}, false
}

func (p *Pool) index(r world.Rect) int {
	for i, fr := range p.rects {
		if fr == r {
			return i
		}
	}
	return -1
}

// Remove drops r from the pool; the last rectangle takes its slot.
func (p *Pool) Remove(r world.Rect) {
	i := p.index(r)
	if i < 0 {
		return
	}
	last := len(p.rects) - 1
	p.rects[i] = p.rects[last]
	p.rects = p.rects[:last]
}

// Add appends r unless an existing rectangle already contains it or the
// pool is full.
func (p *Pool) Add(r world.Rect) {
	if len(p.rects) >= MaxRect {
		return
	}
	if _, ok := p.Find(r); ok {
		return
	}
	p.rects = append(p.rects, r)
}

func threshold(interior bool, lim int) int {
	if interior {
		return 2*lim + 4
	}
	return lim + 1 + 4
}

// Commit removes old from the pool, splits any other rectangle that
// overlaps placed, and returns the usable strips of old around placed.
func (p *Pool) Commit(old, placed world.Rect) {
	p.split(old, placed)
	if p.observe != nil {
		p.observe(p)
	}
}

func (p *Pool) split(old, placed world.Rect) {
	p.Remove(old)
	for i := len(p.rects) - 1; i >= 0; i-- {
		if i >= len(p.rects) {
			continue
		}
		if in, ok := p.rects[i].Intersect(placed); ok {
			p.split(p.rects[i], in)
		}
	}

	b := p.bounds
	top := placed.Ly-old.Ly-1 > threshold(old.Hy < b.Hy, p.ylim)
	left := placed.Lx-old.Lx-1 > threshold(old.Hx < b.Hx, p.xlim)
	bottom := old.Hy-placed.Hy-1 > threshold(old.Ly > b.Ly, p.ylim)
	right := old.Hx-placed.Hx-1 > threshold(old.Lx > b.Lx, p.xlim)

	// Side strips only cover rows left free by the top and bottom strips.
	ly, hy := old.Ly, old.Hy
	if top {
		ly = placed.Ly - 1
	}
	if bottom {
		hy = placed.Hy + 1
	}

	if top {
		p.Add(world.Rect{Lx: old.Lx, Ly: old.Ly, Hx: old.Hx, Hy: placed.Ly - 2})
	}
	if left {
		p.Add(world.Rect{Lx: old.Lx, Ly: ly, Hx: placed.Lx - 2, Hy: hy})
	}
	if bottom {
		p.Add(world.Rect{Lx: old.Lx, Ly: placed.Hy + 2, Hx: old.Hx, Hy: old.Hy})
	}
	if right {
		p.Add(world.Rect{Lx: placed.Hx + 2, Ly: ly, Hx: old.Hx, Hy: hy})
	}
}

// Disjoint reports whether no two free rectangles overlap and all lie
// inside the pool bounds.
func (p *Pool) Disjoint() bool {
	for i, a := range p.rects {
		if !p.bounds.Contains(a) || a.Lx > a.Hx || a.Ly > a.Hy {
			return false
		}
		for _, b := range p.rects[i+1:] {
			if a.Overlaps(b) {
				return false
			}
		}
	}
	return true
}
