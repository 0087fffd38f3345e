package lintdiag

import (
	"cmp"
	"fmt"
)

// Position is a 1-based line/column pair. Zero values mean "unknown".
type Position struct {
	Line   int
	Column int
}

// Location identifies a source span within a file.
type Location struct {
	File  string
	Start Position
	End   Position
}

// IsZero reports whether the location carries no information at all.
func (l Location) IsZero() bool {
	return l == Location{}
}

func (l Location) String() string {
	switch {
	case l.File == "" && l.Start.Line == 0:
		return "<unknown>"
	case l.Start.Line == 0:
		return l.File
	case l.Start.Column == 0:
		return fmt.Sprintf("%s:%d", l.File, l.Start.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", l.File, l.Start.Line, l.Start.Column)
	}
}

// Compare orders locations by file, then by start, then by end.
func (l Location) Compare(other Location) int {
	if c := cmp.Compare(l.File, other.File); c != 0 {
		return c
	}
	if c := comparePos(l.Start, other.Start); c != 0 {
		return c
	}

	return comparePos(l.End, other.End)
}

func comparePos(a, b Position) int {
	if c := cmp.Compare(a.Line, b.Line); c != 0 {
		return c
	}

	return cmp.Compare(a.Column, b.Column)
}
