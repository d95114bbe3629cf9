package interp

import (
	"fmt"

	"delvegen/pkg/game/script"
)

// PickTheme selects a theme by weighted reservoir sampling over the
// themes eligible at the level's difficulty: each eligible theme adds
// its frequency to the running total and replaces the pick when
// Rn2(total) falls under its frequency. Themes with zero frequency take
// no draw. ok is false when nothing is eligible.
func (in *Interpreter) PickTheme(set []script.Theme) (script.Theme, bool) {
	diff := in.s.Descriptor().Difficulty
	pick, total := -1, 0
	for i, t := range set {
		if !t.Eligible(diff) {
			continue
		}
		total += t.Frequency
		if t.Frequency > 0 && in.r.Rn2(total) < t.Frequency {
			pick = i
		}
	}
	if pick < 0 {
		return script.Theme{}, false
	}
	return set[pick], true
}

// ThemeHook returns a room builder for the generator's room placement
// loop. Each call picks and builds one theme at level scope and reports
// whether its room could not be placed.
func (in *Interpreter) ThemeHook(set []script.Theme) func() (bool, error) {
	return func() (bool, error) {
		t, ok := in.PickTheme(set)
		if !ok {
			return true, nil
		}
		in.themeFailed = false
		in.r.PushTag(t.Name)
		err := t.Build(scope{in})
		in.r.PopTag()
		if err != nil {
			return false, fmt.Errorf("theme %q: %w", t.Name, err)
		}
		return in.themeFailed, nil
	}
}

// themed runs the generator's room placement with themed rooms until the
// level pool is used up, then sorts the rooms.
func (in *Interpreter) themed(d script.Themes) error {
	if in.top().room != nil {
		return fmt.Errorf("%w: themes inside a room", ErrMalformed)
	}
	set := d.Set
	if len(set) == 0 {
		set = in.themes
	}
	if len(set) == 0 {
		return fmt.Errorf("%w: no themes to pick from", ErrMalformed)
	}
	if err := in.s.MakeRooms(in.ThemeHook(set)); err != nil {
		return err
	}
	in.b.SortRooms()
	return nil
}
