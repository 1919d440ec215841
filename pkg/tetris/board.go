package tetris

import (
	"errors"
	"fmt"
	"iter"
	"math/rand"
	"time"
)

var ErrInvalidDimensions = errors.New("board dimensions must be positive")

type Direction int

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "Unknown"
	}
}

func (d Direction) offset() Position {
	if d == Left {
		return Position{-1, 0}
	}
	return Position{1, 0}
}

// Board is the game state: one falling shape, the shapes that have settled,
// and whether the game is lost. It is not safe for concurrent use.
type Board struct {
	width  int
	height int

	current *Shape
	fixed   []*Shape
	lost    bool

	src Source
}

// Snapshot is a read-only copy of what a renderer needs. Cells holds one tag
// per position in row-major order, "" for empty.
type Snapshot struct {
	Width  int
	Height int
	Cells  []string
	Lost   bool
}

func (s Snapshot) At(x, y int) string {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height || len(s.Cells) != s.Width*s.Height {
		return ""
	}
	return s.Cells[y*s.Width+x]
}

func NewBoard(width, height int, src Source) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("new board %dx%d: %w", width, height, ErrInvalidDimensions)
	}

	if src == nil {
		src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	b := &Board{width: width, height: height, src: src}
	b.current = b.spawn()

	return b, nil
}

func (b *Board) spawn() *Shape {
	return Random(b.src).Translate(Position{(b.width - 1) / 2, 0})
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }
func (b *Board) Lost() bool  { return b.lost }

// Current returns a copy of the falling shape.
func (b *Board) Current() *Shape {
	return b.current.Translate(Position{})
}

// Settled returns the number of shapes that have stopped falling, including
// ones whose cells have all been cleared.
func (b *Board) Settled() int {
	return len(b.fixed)
}

func (b *Board) OutOfBounds(s *Shape) bool {
	for c := range s.Cells() {
		if c.X < 0 || c.X >= b.width || c.Y < 0 || c.Y >= b.height {
			return true
		}
	}

	return false
}

func (b *Board) Colliding(s *Shape) bool {
	for _, f := range b.fixed {
		if f.CollidesWith(s) {
			return true
		}
	}

	return false
}

func (b *Board) legal(s *Shape) bool {
	return !b.OutOfBounds(s) && !b.Colliding(s)
}

// Tick moves the falling shape down one row, or settles it when it cannot
// move and spawns the next one.
func (b *Board) Tick() {
	if b.lost {
		return
	}

	next := b.current.Translate(Position{0, 1})
	if b.legal(next) {
		b.current = next
		return
	}

	b.fixed = append(b.fixed, b.current)
	b.current = b.spawn()
	b.clearFullRows()

	if b.Colliding(b.current) {
		b.lost = true
	}
}

func (b *Board) Shift(d Direction) {
	if b.lost {
		return
	}

	if next := b.current.Translate(d.offset()); b.legal(next) {
		b.current = next
	}
}

func (b *Board) Rotate() {
	if b.lost {
		return
	}

	if next := b.current.Rotated(); b.legal(next) {
		b.current = next
	}
}

// RowFull reports whether the settled shapes cover every column of row y.
func (b *Board) RowFull(y int) bool {
	seen := make(map[Position]struct{}, b.width)
	for _, f := range b.fixed {
		for c := range f.Cells() {
			if c.Y == y {
				seen[c] = struct{}{}
			}
		}
	}

	return len(seen) == b.width
}

// Rows are re-checked one at a time, top to bottom, after each removal.
// Settled shapes left without cells are kept.
func (b *Board) clearFullRows() {
	for y := 0; y < b.height; y++ {
		if !b.RowFull(y) {
			continue
		}

		for _, f := range b.fixed {
			f.RemoveRow(y)
		}
	}
}

// Cells yields every grid position, row by row.
func (b *Board) Cells() iter.Seq[Position] {
	w, h := b.width, b.height
	return func(yield func(Position) bool) {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if !yield(Position{x, y}) {
					return
				}
			}
		}
	}
}

// Get returns the tag shown at p. The falling shape wins over settled ones,
// and settled shapes are searched in the order they landed.
func (b *Board) Get(p Position) (string, bool) {
	if b.current.Contains(p) {
		return b.current.Tag(), true
	}

	for _, f := range b.fixed {
		if f.Contains(p) {
			return f.Tag(), true
		}
	}

	return "", false
}

func (b *Board) Snapshot() Snapshot {
	s := Snapshot{Width: b.width, Height: b.height, Lost: b.lost, Cells: make([]string, 0, b.width*b.height)}
	for p := range b.Cells() {
		tag, _ := b.Get(p)
		s.Cells = append(s.Cells, tag)
	}

	return s
}
