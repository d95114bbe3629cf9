package generator

import (
	"delvegen/pkg/engine/world"
	"delvegen/pkg/game/level"
)

// digMargin is the diggable border kept around the used area. Maze
// levels would keep one cell around pure walls; room levels keep two.
const digMargin = 2

// BoundDigging marks everything outside the used part of the level, plus
// a margin, as undiggable. No draws.
func (s *Synthesizer) BoundDigging() {
	g := s.b.Grid()
	scanCols := func(x int) bool {
		for y := 0; y < world.Rows; y++ {
			if g.Terrain(x, y) != world.Stone {
				return true
			}
		}
		return false
	}
	scanRows := func(y, xmin, xmax int) bool {
		for x := xmin; x <= xmax; x++ {
			if g.Terrain(x, y) != world.Stone {
				return true
			}
		}
		return false
	}

	xmin, found := 0, false
	for ; !found && xmin < world.Cols; xmin++ {
		found = scanCols(xmin)
	}
	if !found {
		return
	}
	xmin -= digMargin
	xmin = max(xmin, 0)

	xmax := world.Cols - 1
	found = false
	for ; !found && xmax >= 0; xmax-- {
		found = scanCols(xmax)
	}
	xmax += digMargin
	xmax = min(xmax, world.Cols-1)

	ymin := 0
	found = false
	for ; !found && ymin < world.Rows; ymin++ {
		found = scanRows(ymin, xmin, xmax)
	}
	ymin -= digMargin

	ymax := world.Rows - 1
	found = false
	for ; !found && ymax >= 0; ymax-- {
		found = scanRows(ymax, xmin, xmax)
	}
	ymax += digMargin

	for x := 0; x < world.Cols; x++ {
		for y := 0; y < world.Rows; y++ {
			if y <= ymin || y >= ymax || x <= xmin || x >= xmax {
				if c := g.At(x, y); c != nil {
					c.NonDiggable = true
				}
			}
		}
	}
}

// Mineralize plants kelp in pools and moats and, when deposits is set,
// seeds solid rock with gold and gems. Run it after BoundDigging.
func (s *Synthesizer) Mineralize(deposits bool) {
	defer s.tag("mineralize")()
	g := s.b.Grid()
	for x := 2; x < world.Cols-2; x++ {
		for y := 1; y < world.Rows-1; y++ {
			t := g.Terrain(x, y)
			if (t == world.Pool && s.r.Rn2(10) == 0) || (t == world.Moat && s.r.Rn2(30) == 0) {
				s.b.RequestObject(level.ObjectRequest{X: x, Y: y, ID: "kelp frond", Quantity: 1, Reason: "kelp"})
			}
		}
	}
	if !deposits {
		return
	}

	goldprob := 20 + s.desc.Depth/3
	gemprob := goldprob / 4
	stone := func(x, y int) bool { return g.Terrain(x, y) == world.Stone }
	for x := 2; x < world.Cols-2; x++ {
		for y := 1; y < world.Rows-1; y++ {
			switch {
			case !stone(x, y+1):
				y += 2
			case !stone(x, y):
				y++
			case !g.Cell(x, y).NonDiggable &&
				stone(x, y-1) && stone(x+1, y-1) && stone(x-1, y-1) &&
				stone(x+1, y) && stone(x-1, y) &&
				stone(x+1, y+1) && stone(x-1, y+1):
				if s.r.Rn2(1000) < goldprob {
					amount := 1 + s.r.Rnd(goldprob*3)
					buried := s.r.Rn2(3) == 0
					s.b.RequestObject(level.ObjectRequest{X: x, Y: y, ID: "gold piece", Quantity: amount, Buried: buried, Reason: "deposit"})
				}
				if s.r.Rn2(1000) < gemprob {
					for cnt := s.r.Rnd(2 + s.desc.Depth/3); cnt > 0; cnt-- {
						buried := s.r.Rn2(3) == 0
						s.b.RequestObject(level.ObjectRequest{X: x, Y: y, Class: "*", Quantity: 1, Buried: buried, Reason: "deposit"})
					}
				}
			}
		}
	}
}
