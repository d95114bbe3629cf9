package world

// Coord is a map position.
type Coord struct {
	X, Y int
}

// Add returns c offset by d
func (c Coord) Add(d Coord) Coord { return Coord{c.X + d.X, c.Y + d.Y} }

// Rect is an inclusive rectangle of map positions.
type Rect struct {
	Lx, Ly, Hx, Hy int
}

// Width returns the number of columns covered
func (r Rect) Width() int { return r.Hx - r.Lx + 1 }

// Height returns the number of rows covered
func (r Rect) Height() int { return r.Hy - r.Ly + 1 }

// Contains reports whether o lies entirely inside r.
func (r Rect) Contains(o Rect) bool {
	return o.Lx >= r.Lx && o.Ly >= r.Ly && o.Hx <= r.Hx && o.Hy <= r.Hy
}

// ContainsPoint reports whether (x, y) lies inside r.
func (r Rect) ContainsPoint(x, y int) bool {
	return x >= r.Lx && x <= r.Hx && y >= r.Ly && y <= r.Hy
}

// Intersect returns the overlap of r and o. The second result is false
// when they do not overlap.
func (r Rect) Intersect(o Rect) (Rect, bool) {
	if o.Lx > r.Hx || r.Lx > o.Hx || o.Ly > r.Hy || r.Ly > o.Hy {
		return Rect{}, false
	}
	out := Rect{max(r.Lx, o.Lx), max(r.Ly, o.Ly), min(r.Hx, o.Hx), min(r.Hy, o.Hy)}
	if out.Lx > out.Hx || out.Ly > out.Hy {
		return Rect{}, false
	}
	return out, true
}

// Overlaps reports whether r and o share any position
func (r Rect) Overlaps(o Rect) bool {
	_, ok := r.Intersect(o)
	return ok
}
