package rng

import (
	"errors"
	"testing"
)

func TestNew_SameSeedSameSequence(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 2000; i++ {
		if x, y := a.Rn2(1000), b.Rn2(1000); x != y {
			t.Fatalf("draw %d: %d != %d", i, x, y)
		}
	}
	if a.Count() != 2000 {
		t.Errorf("Count() = %d, want 2000", a.Count())
	}
}

func TestNew_DifferentSeedsDiffer(t *testing.T) {
	a, b := New(1), New(2)
	same := 0
	for i := 0; i < 64; i++ {
		if a.Rn2(1<<30) == b.Rn2(1<<30) {
			same++
		}
	}
	if same == 64 {
		t.Error("seeds 1 and 2 produced identical streams")
	}
}

func TestRn2_Range(t *testing.T) {
	r := New(7)
	for _, n := range []int{1, 2, 3, 7, 100, 1000} {
		for i := 0; i < 200; i++ {
			if v := r.Rn2(n); v < 0 || v >= n {
				t.Fatalf("Rn2(%d) = %d", n, v)
			}
		}
	}
}

func TestRnd_Rn1_Range(t *testing.T) {
	r := New(9)
	for i := 0; i < 500; i++ {
		if v := r.Rnd(6); v < 1 || v > 6 {
			t.Fatalf("Rnd(6) = %d", v)
		}
		if v := r.Rn1(3, 2); v < 2 || v > 4 {
			t.Fatalf("Rn1(3, 2) = %d", v)
		}
	}
}

func TestRn2_NonPositiveBoundPanics(t *testing.T) {
	for _, n := range []int{0, -1} {
		func() {
			defer func() {
				rec := recover()
				err, ok := rec.(error)
				if !ok || !errors.Is(err, ErrBadBound) {
					t.Errorf("Rn2(%d) panic = %v, want ErrBadBound", n, rec)
				}
			}()
			New(1).Rn2(n)
		}()
	}
}

func TestD_ConsumesOneDrawPerDie(t *testing.T) {
	r := New(3)
	log := NewDrawLog()
	r.Attach(log)
	v := r.D(4, 6)
	if r.Count() != 4 {
		t.Errorf("D(4,6) consumed %d draws, want 4", r.Count())
	}
	if v < 4 || v > 24 {
		t.Errorf("D(4,6) = %d", v)
	}
	for _, d := range log.Draws() {
		if d.Kind != "d" || d.Bound != 6 {
			t.Errorf("logged draw %+v, want kind d bound 6", d)
		}
	}
	for _, n := range []int{0, -3} {
		if v := r.D(n, 6); v != 0 || r.Count() != 4 {
			t.Errorf("D(%d, 6) = %d after %d draws, want 0 without drawing", n, v, r.Count())
		}
	}
}

func TestRne_Bounded(t *testing.T) {
	r := New(11)
	for i := 0; i < 200; i++ {
		before := r.Count()
		v := r.Rne(4, 5)
		if v < 1 || v > 5 {
			t.Fatalf("Rne = %d", v)
		}
		used := r.Count() - before
		if used < 1 || used > 4 {
			t.Fatalf("Rne used %d draws", used)
		}
	}
}

func TestShuffle_DrawCount(t *testing.T) {
	for _, n := range []int{0, 1, 2, 7, 20} {
		r := New(5)
		s := make([]int, n)
		Shuffle(r, s)
		want := int64(n - 1)
		if n == 0 {
			want = 0
		}
		if r.Count() != want {
			t.Errorf("Shuffle of %d used %d draws, want %d", n, r.Count(), want)
		}
	}
}

func TestShuffle_RecordedPermutation(t *testing.T) {
	r := New(1234)
	log := NewDrawLog()
	r.Attach(log)
	got := []string{"-", "-", "-", "-", "L", "P", "T"}
	Shuffle(r, got)

	want := []string{"P", "L", "-", "-", "T", "-", "-"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Shuffle = %v, want %v", got, want)
		}
	}
	if r.Count() != 6 {
		t.Errorf("Shuffle used %d draws, want 6", r.Count())
	}
	wantBounds := []int{7, 6, 5, 4, 3, 2}
	wantResults := []int{0, 3, 0, 2, 1, 0}
	for i, d := range log.Draws() {
		if d.Kind != "shuffle" || d.Bound != wantBounds[i] || d.Result != wantResults[i] {
			t.Errorf("draw %d = %+v, want shuffle(%d)=%d", i, d, wantBounds[i], wantResults[i])
		}
	}
}

func TestRn2_KnownAnswers(t *testing.T) {
	r := New(42)
	want := []int{274356586, 181098426, 582756240, 135662685, 189250936, 542359194, 402118035, 929012834}
	for i, w := range want {
		if got := r.Rn2(1 << 30); got != w {
			t.Fatalf("draw %d = %d, want %d", i, got, w)
		}
	}
}

// A zero seed is the all-zero ISAAC64 key. Outputs are consumed from the
// top of each block, so draws 0, 510 and 511 are r[255] of the first
// block and r[1], r[0] of the second.
func TestIsaac64_ZeroSeedVector(t *testing.T) {
	var s isaac64
	s.seed(make([]byte, 8))
	var out [512]uint64
	for i := range out {
		out[i] = s.next()
	}
	for _, tt := range []struct {
		i    int
		want uint64
	}{
		{0, 0x9d39247e33776d41},
		{510, 0xd4490ad526f14431},
		{511, 0x12a8f216af9418c2},
	} {
		if out[tt.i] != tt.want {
			t.Errorf("output %d = %#x, want %#x", tt.i, out[tt.i], tt.want)
		}
	}
}

func TestDrawLog_Tags(t *testing.T) {
	r := New(8)
	log := NewDrawLog()
	r.Attach(log)
	r.WithTag("makerooms", func() {
		r.Rn2(3)
		r.WithTag("create_room", func() { r.Rnd(5) })
	})
	r.Rn2(2)
	draws := log.Draws()
	if len(draws) != 3 {
		t.Fatalf("got %d draws, want 3", len(draws))
	}
	wantTags := []string{"makerooms", "makerooms/create_room", ""}
	wantKinds := []string{"rn2", "rnd", "rn2"}
	for i, d := range draws {
		if d.Tag != wantTags[i] || d.Kind != wantKinds[i] || d.Index != int64(i) {
			t.Errorf("draw %d = %+v, want tag %q kind %q", i, d, wantTags[i], wantKinds[i])
		}
	}
}

func TestDrawLog_Diff(t *testing.T) {
	run := func(extra bool) *DrawLog {
		r := New(99)
		log := NewDrawLog()
		r.Attach(log)
		for i := 0; i < 10; i++ {
			r.Rn2(10)
		}
		if extra {
			r.Rn2(7)
		}
		return log
	}
	if i, diff := run(false).Diff(run(false)); diff {
		t.Errorf("identical runs diverge at %d", i)
	}
	if i, diff := run(false).Diff(run(true)); !diff || i != 10 {
		t.Errorf("Diff = (%d, %v), want (10, true)", i, diff)
	}
}
