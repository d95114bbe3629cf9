// Package rng is the generator's single source of randomness. Every
// primitive documents how many raw draws it consumes, because level
// terrain is only reproducible when the draw sequence is.
package rng

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

// ErrBadBound is the panic value (wrapped) for a non-positive bound.
var ErrBadBound = errors.New("rng: bound must be positive")

// RNG is a seeded ISAAC64 stream with a draw counter and an optional log.
// It is not safe for concurrent use; each generation owns one.
type RNG struct {
	seed  uint64
	core  isaac64
	count int64
	log   *DrawLog
	tags  []string
	kind  string // outermost primitive while a composite draw is running
}

// New returns a stream seeded from the little-endian bytes of seed.
func New(seed uint64) *RNG {
	r := &RNG{seed: seed}
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], seed)
	r.core.seed(b[:])
	return r
}

// Seed returns the seed the stream was created with
func (r *RNG) Seed() uint64 { return r.seed }

// Count returns the number of draws consumed so far
func (r *RNG) Count() int64 { return r.count }

// Attach starts recording every draw into log. Passing nil stops recording.
func (r *RNG) Attach(log *DrawLog) { r.log = log }

// Log returns the attached draw log, if any
func (r *RNG) Log() *DrawLog { return r.log }

// PushTag labels subsequent draws until the matching PopTag.
func (r *RNG) PushTag(tag string) { r.tags = append(r.tags, tag) }

// PopTag removes the innermost tag.
func (r *RNG) PopTag() {
	if len(r.tags) > 0 {
		r.tags = r.tags[:len(r.tags)-1]
	}
}

// WithTag runs fn with tag pushed.
func (r *RNG) WithTag(tag string, fn func()) {
	r.PushTag(tag)
	defer r.PopTag()
	fn()
}

func (r *RNG) draw(kind string, bound int) int {
	if bound <= 0 {
		panic(fmt.Errorf("%w: %s(%d)", ErrBadBound, kind, bound))
	}
	if r.kind != "" {
		kind = r.kind
	}
	v := int(r.core.next() % uint64(bound))
	r.count++
	if r.log != nil {
		r.log.add(Draw{
			Index:  r.count - 1,
			Kind:   kind,
			Bound:  bound,
			Result: v,
			Tag:    strings.Join(r.tags, "/"),
		})
	}
	return v
}

// composite marks nested draws with the outer primitive's kind.
func (r *RNG) composite(kind string) func() {
	if r.kind != "" {
		return func() {}
	}
	r.kind = kind
	return func() { r.kind = "" }
}

// Rn2 returns a value in [0, n). One draw.
func (r *RNG) Rn2(n int) int { return r.draw("rn2", n) }

// Rnd returns a value in [1, n]. One draw.
func (r *RNG) Rnd(n int) int { return r.draw("rnd", n) + 1 }

// Rn1 returns a value in [y, x+y). One draw.
func (r *RNG) Rn1(x, y int) int { return r.draw("rn1", x) + y }

// Range returns a value in [lo, hi]. One draw.
func (r *RNG) Range(lo, hi int) int { return r.draw("range", hi-lo+1) + lo }

// Percent reports whether a d100 roll lands under n. One draw.
func (r *RNG) Percent(n int) bool { return r.draw("percent", 100) < n }

// D rolls n dice of x sides: exactly n draws, in order. No dice roll 0.
func (r *RNG) D(n, x int) int {
	if x <= 0 {
		panic(fmt.Errorf("%w: d(%d,%d)", ErrBadBound, n, x))
	}
	if n <= 0 {
		return 0
	}
	done := r.composite("d")
	defer done()
	tmp := n
	for i := 0; i < n; i++ {
		tmp += r.draw("d", x)
	}
	return tmp
}

// Rne returns 1 plus the number of consecutive zero results of Rn2(x),
// stopping at limit. Between 1 and limit draws.
func (r *RNG) Rne(x, limit int) int {
	done := r.composite("rne")
	defer done()
	tmp := 1
	for tmp < limit && r.draw("rne", x) == 0 {
		tmp++
	}
	return tmp
}

// rneLimit is the cap NetHack uses for a low-level hero.
const rneLimit = 5

// Rnz returns a value spread logarithmically around i.
func (r *RNG) Rnz(i int) int {
	done := r.composite("rnz")
	defer done()
	x := int64(i)
	tmp := int64(1000)
	tmp += int64(r.draw("rnz", 1000))
	tmp *= int64(r.Rne(4, rneLimit))
	if r.draw("rnz", 2) != 0 {
		x *= tmp
		x /= 1000
	} else {
		x *= 1000
		x /= tmp
	}
	return int(x)
}

// Shuffle permutes s in place with len(s)-1 draws.
func Shuffle[T any](r *RNG, s []T) {
	done := r.composite("shuffle")
	defer done()
	for i := len(s) - 1; i > 0; i-- {
		j := r.draw("shuffle", i+1)
		s[i], s[j] = s[j], s[i]
	}
}

// Pick returns a uniformly chosen element of s. One draw.
func Pick[T any](r *RNG, s []T) T {
	return s[r.draw("pick", len(s))]
}
