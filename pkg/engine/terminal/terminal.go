// Package terminal answers the few questions the CLI asks about its
// output: is it a terminal, and is it wide enough for a level map.
package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// GetSize returns the width and height of the terminal on f.
// Falls back to defaults if the size cannot be determined.
func GetSize(f *os.File) (width, height int) {
	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// UseColour decides whether output on f should be coloured. mode is
// "auto", "always" or "never"; auto colours terminals only.
func UseColour(f *os.File, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	return IsTerminal(f)
}

// Fits reports whether the terminal on f can show cols columns without
// wrapping. Non-terminals always fit.
func Fits(f *os.File, cols int) bool {
	if !IsTerminal(f) {
		return true
	}
	w, _ := GetSize(f)
	return w >= cols
}
