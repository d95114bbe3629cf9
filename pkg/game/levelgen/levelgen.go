// Package levelgen is the entry point for level generation. It wires a
// seeded RNG, a level builder and the room and corridor synthesizer
// together, hands scripted levels to the interpreter, and checks the
// result before returning it.
package levelgen

import (
	"errors"
	"fmt"

	"delvegen/pkg/engine/rng"
	"delvegen/pkg/game/generator"
	"delvegen/pkg/game/interp"
	"delvegen/pkg/game/level"
	"delvegen/pkg/game/script"
	"delvegen/pkg/game/themes"
)

type options struct {
	factory level.Factory
	drawLog *rng.DrawLog
	logf    func(format string, args ...any)
	themes  []script.Theme
	bottom  bool
	gen     generator.Config
}

// Option configures a generation call.
type Option func(*options)

// WithFactory sets the monster and object factory. The default accepts
// every request without drawing.
func WithFactory(f level.Factory) Option {
	return func(o *options) { o.factory = f }
}

// WithDrawLog records every draw of the call into l.
func WithDrawLog(l *rng.DrawLog) Option {
	return func(o *options) { o.drawLog = l }
}

// WithLogger sends placement diagnostics to logf instead of log.Printf.
func WithLogger(logf func(format string, args ...any)) Option {
	return func(o *options) { o.logf = logf }
}

// WithThemes makes random levels build their rooms from set. Scripts use
// it for Themes directives without a set of their own.
func WithThemes(set []script.Theme) Option {
	return func(o *options) { o.themes = set }
}

// WithBottom marks the level as the bottom of its dungeon: no down
// stairs.
func WithBottom() Option {
	return func(o *options) { o.bottom = true }
}

// WithConfig passes synthesizer settings through. Bottom is or-ed with
// WithBottom and the script's flags.
func WithConfig(cfg generator.Config) Option {
	return func(o *options) { o.gen = cfg }
}

// GenerateLevel builds the level for seed at depth. Without a script the
// synthesizer generates a random level; with one the interpreter runs it
// and random corridors, fill and mineralization follow the script's lead.
//
// Errors are either programming errors in the script (see interp) or a
// *level.InvariantError when the finished level fails its checks.
func GenerateLevel(seed uint64, depth int, sc *script.Script, opts ...Option) (*level.Level, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	r := rng.New(seed)
	if o.drawLog != nil {
		r.Attach(o.drawLog)
	}
	var flags level.Flags
	if sc != nil {
		flags = sc.Flags
	}
	flags.Bottom = flags.Bottom || o.bottom
	b := level.NewBuilder(r, depth, level.Config{
		Factory: o.factory,
		Logf:    o.logf,
		Flags:   flags,
	})
	cfg := o.gen
	cfg.Bottom = cfg.Bottom || flags.Bottom
	s := generator.New(b, cfg)

	if sc == nil {
		if len(o.themes) > 0 {
			s.UseThemes(interp.New(s, o.themes).ThemeHook(o.themes))
		}
		if err := s.Run(); err != nil {
			return nil, err
		}
	} else if err := runScript(s, sc, o); err != nil {
		return nil, err
	}

	desc := s.Descriptor()
	return b.Finalize(level.StairNeeds{Up: desc.NeedsUpStairs(), Down: !desc.Bottom})
}

func runScript(s *generator.Synthesizer, sc *script.Script, o options) error {
	set := o.themes
	if len(set) == 0 {
		set = themes.Catalogue()
	}
	if err := interp.New(s, set).Exec(sc); err != nil {
		return err
	}
	b := s.Builder()
	if len(b.Stairs()) == 0 && b.NumRooms() > 0 {
		s.MakeStairs()
	}
	if !o.gen.SkipFill {
		s.FillRooms()
	}
	s.BoundDigging()
	s.Mineralize(false)
	s.Finish()
	return nil
}

// GenerateWithRetry calls GenerateLevel with seed, seed+1, ... until a
// level passes its checks or attempts run out. Only invariant failures
// are retried. A draw log passed with WithDrawLog holds the draws of the
// last attempt.
func GenerateWithRetry(seed uint64, depth int, sc *script.Script, attempts int, opts ...Option) (*level.Level, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	var err error
	for i := 0; i < max(attempts, 1); i++ {
		o.drawLog.Reset()
		var l *level.Level
		l, err = GenerateLevel(seed+uint64(i), depth, sc, opts...)
		if err == nil {
			return l, nil
		}
		if !errors.Is(err, level.ErrInvariant) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("levelgen: no valid level in %d attempts from seed %d: %w", max(attempts, 1), seed, err)
}
