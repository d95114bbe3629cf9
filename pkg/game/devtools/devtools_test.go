package devtools

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"delvegen/pkg/engine/rng"
	"delvegen/pkg/game/level"
	"delvegen/pkg/game/levelgen"
	"delvegen/pkg/game/script"
)

func quiet(string, ...any) {}

func boxLevel(t *testing.T) *level.Level {
	t.Helper()
	sc := &script.Script{Name: "box", Directives: []script.Directive{
		script.MapTemplate{Rows: []string{"-----", "|...|", "-----"}, X: 10, Y: 5},
		script.Stair{Spot: script.At(2, 1)},
	}}
	l, err := levelgen.GenerateLevel(1, 1, sc, levelgen.WithLogger(quiet))
	if err != nil {
		t.Fatalf("GenerateLevel: %v", err)
	}
	return l
}

func TestMapLines_Plain(t *testing.T) {
	lines := MapLines(boxLevel(t), false)
	want := map[int]string{
		4: "",
		5: "          -----",
		6: "          |.>.|",
		7: "          -----",
	}
	for y, w := range want {
		if lines[y] != w {
			t.Errorf("line %d = %q, want %q", y, lines[y], w)
		}
	}
}

func TestDumpLevel_Sections(t *testing.T) {
	var buf bytes.Buffer
	if err := DumpLevel(&buf, boxLevel(t), false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, s := range []string{"depth: 1", "seed: 1", "--- Map ---", "--- Stairs ---", "x: 12 y: 6 up: false"} {
		if !strings.Contains(out, s) {
			t.Errorf("dump lacks %q", s)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("plain dump contains escape codes")
	}
}

func TestWriteHTML_MarksStairs(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, boxLevel(t)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Error("missing doctype")
	}
	if !strings.Contains(out, `<span class="stairs">&gt;</span>`) {
		t.Error("down stairs not rendered")
	}
}

func TestDrawLog_RoundTrip(t *testing.T) {
	r := rng.New(99)
	log := rng.NewDrawLog()
	r.Attach(log)
	r.WithTag("room/door", func() {
		r.Rn2(10)
		r.Rnd(6)
	})
	r.D(2, 4)

	var buf bytes.Buffer
	if err := WriteDrawLog(&buf, log.Draws()); err != nil {
		t.Fatal(err)
	}
	got, err := ReadDrawLog(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if i, diverged := rng.FirstDivergence(log.Draws(), got); diverged {
		t.Errorf("read log diverges at %d", i)
	}
	if got[0].Tag != "room/door" || got[0].Kind != "rn2" {
		t.Errorf("first draw = %+v", got[0])
	}
}

func TestReadDrawLog_Malformed(t *testing.T) {
	_, err := ReadDrawLog(strings.NewReader("# header\n0\trn2\tten\t3\t\n"))
	if !errors.Is(err, ErrBadDrawLog) {
		t.Errorf("err = %v, want ErrBadDrawLog", err)
	}
}

func TestFirstDivergence_Report(t *testing.T) {
	want := []rng.Draw{{Kind: "rn2", Bound: 5, Result: 1}, {Kind: "rn2", Bound: 5, Result: 2}, {Kind: "rnd", Bound: 3, Result: 0}}
	got := []rng.Draw{{Kind: "rn2", Bound: 5, Result: 1}, {Kind: "rn2", Bound: 5, Result: 2}, {Kind: "rnd", Bound: 4, Result: 0}}

	var buf bytes.Buffer
	i, diverged := FirstDivergence(&buf, want, got, 1)
	if !diverged || i != 2 {
		t.Fatalf("FirstDivergence = %d, %v; want 2, true", i, diverged)
	}
	out := buf.String()
	if !strings.Contains(out, "diverge at 2") || !strings.Contains(out, "rnd(4)=0") {
		t.Errorf("report:\n%s", out)
	}
	if strings.Count(out, "\n") != 3 {
		t.Errorf("report has %d lines, want header and two draws", strings.Count(out, "\n"))
	}

	buf.Reset()
	if _, diverged := FirstDivergence(&buf, want, want, 1); diverged || buf.Len() != 0 {
		t.Error("identical logs reported as divergent")
	}
}

func TestDevScript_Generates(t *testing.T) {
	l, err := levelgen.GenerateLevel(3, 1, DevScript(), levelgen.WithLogger(quiet))
	if err != nil {
		t.Fatalf("GenerateLevel: %v", err)
	}
	if len(l.Altars()) != 3 {
		t.Errorf("%d altars, want 3", len(l.Altars()))
	}
	if len(l.Doors()) != 5 {
		t.Errorf("%d doors, want one per closet", len(l.Doors()))
	}
	if len(l.Stairs()) != 2 {
		t.Errorf("stairs = %+v", l.Stairs())
	}
	if len(l.Traps()) == 0 {
		t.Error("no traps in the trap row")
	}
}
