package devtools

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"delvegen/pkg/engine/rng"
)

// ErrBadDrawLog is returned for draw log lines that cannot be parsed.
var ErrBadDrawLog = errors.New("devtools: malformed draw log")

// WriteDrawLog writes one tab-separated line per draw: index, kind,
// bound, result and tag.
func WriteDrawLog(w io.Writer, draws []rng.Draw) error {
	bw := bufio.NewWriter(w)
	for _, d := range draws {
		fmt.Fprintf(bw, "%d\t%s\t%d\t%d\t%s\n", d.Index, d.Kind, d.Bound, d.Result, d.Tag)
	}
	return bw.Flush()
}

// ReadDrawLog parses the WriteDrawLog format. Blank lines and lines
// starting with '#' are skipped.
func ReadDrawLog(r io.Reader) ([]rng.Draw, error) {
	var draws []rng.Draw
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if strings.TrimSpace(text) == "" || strings.HasPrefix(text, "#") {
			continue
		}
		f := strings.SplitN(text, "\t", 5)
		if len(f) < 4 {
			return nil, fmt.Errorf("%w: line %d: %d fields", ErrBadDrawLog, line, len(f))
		}
		var d rng.Draw
		var err error
		if d.Index, err = strconv.ParseInt(f[0], 10, 64); err != nil {
			return nil, fmt.Errorf("%w: line %d: index: %v", ErrBadDrawLog, line, err)
		}
		d.Kind = f[1]
		if d.Bound, err = strconv.Atoi(f[2]); err != nil {
			return nil, fmt.Errorf("%w: line %d: bound: %v", ErrBadDrawLog, line, err)
		}
		if d.Result, err = strconv.Atoi(f[3]); err != nil {
			return nil, fmt.Errorf("%w: line %d: result: %v", ErrBadDrawLog, line, err)
		}
		if len(f) == 5 {
			d.Tag = f[4]
		}
		draws = append(draws, d)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return draws, nil
}

// FirstDivergence compares a recorded sequence with a fresh one and, when
// they disagree, writes the diverging draw with context lines of
// surrounding history to w. It returns the index of the first
// disagreement.
func FirstDivergence(w io.Writer, want, got []rng.Draw, context int) (int, bool) {
	i, diverged := rng.FirstDivergence(want, got)
	if !diverged {
		return -1, false
	}
	fmt.Fprintf(w, "draws diverge at %d (want %d draws, got %d)\n", i, len(want), len(got))
	from := max(i-context, 0)
	for j := from; j <= i; j++ {
		marker := " "
		if j == i {
			marker = ">"
		}
		fmt.Fprintf(w, "%s %6d  want %s  got %s\n", marker, j, describe(want, j), describe(got, j))
	}
	return i, true
}

func describe(draws []rng.Draw, i int) string {
	if i >= len(draws) {
		return "(end)"
	}
	d := draws[i]
	s := fmt.Sprintf("%s(%d)=%d", d.Kind, d.Bound, d.Result)
	if d.Tag != "" {
		s += " [" + d.Tag + "]"
	}
	return s
}
