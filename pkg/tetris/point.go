package tetris

import (
	"strconv"
	"strings"
)

// Position is a grid cell. X grows rightward, Y grows downward.
type Position struct {
	X, Y int
}

func (p Position) Add(o Position) Position { return Position{p.X + o.X, p.Y + o.Y} }
func (p Position) Neg() Position           { return Position{-p.X, -p.Y} }

func (p Position) String() string {
	var b strings.Builder
	b.WriteRune('(')
	b.WriteString(strconv.Itoa(p.X))
	b.WriteRune(',')
	b.WriteString(strconv.Itoa(p.Y))
	b.WriteRune(')')

	return b.String()
}

func less(a, b Position) bool {
	return a.Y < b.Y || (a.Y == b.Y && a.X < b.X)
}
