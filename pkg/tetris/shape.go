package tetris

import (
	"iter"
	"sort"
	"strings"
)

type Kind int

const (
	KindI Kind = iota
	KindO
	KindT
	KindJ
	KindL
	KindS
	KindZ
)

var Kinds = []Kind{KindI, KindO, KindT, KindJ, KindL, KindS, KindZ}

type pattern struct {
	tag    string
	cells  []Position
	anchor Position
}

var patterns = map[Kind]pattern{
	KindI: {"🟦", []Position{{0, 0}, {1, 0}, {2, 0}, {3, 0}}, Position{1, 0}},
	KindO: {"🟨", []Position{{0, 0}, {0, 1}, {1, 0}, {1, 1}}, Position{0, 0}},
	KindT: {"🟫", []Position{{0, 0}, {1, 0}, {2, 0}, {1, 1}}, Position{1, 0}},
	KindJ: {"🟪", []Position{{0, 0}, {0, 1}, {0, 2}, {-1, 2}}, Position{0, 1}},
	KindL: {"🟧", []Position{{0, 0}, {0, 1}, {0, 2}, {1, 2}}, Position{0, 1}},
	KindS: {"🟩", []Position{{0, 0}, {1, 0}, {0, 1}, {-1, 1}}, Position{0, 0}},
	KindZ: {"🟥", []Position{{0, 0}, {-1, 0}, {0, 1}, {1, 1}}, Position{0, 0}},
}

func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindO:
		return "O"
	case KindT:
		return "T"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	case KindS:
		return "S"
	case KindZ:
		return "Z"
	default:
		return "?"
	}
}

// Tag is the display identifier renderers key colors on.
func (k Kind) Tag() string {
	return patterns[k].tag
}

// Source supplies uniform random integers in [0, n). *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Shape is a tetromino: a set of cells plus the anchor it rotates about.
// Cells are kept deduplicated and sorted row-major.
type Shape struct {
	kind   Kind
	cells  []Position
	anchor Position
}

func New(k Kind) *Shape {
	p := patterns[k]
	return newShape(k, p.cells, p.anchor)
}

func Random(src Source) *Shape {
	return New(Kinds[src.Intn(len(Kinds))])
}

func newShape(k Kind, cells []Position, anchor Position) *Shape {
	s := &Shape{kind: k, anchor: anchor, cells: make([]Position, 0, len(cells))}
	for _, c := range cells {
		if !s.Contains(c) {
			s.cells = append(s.cells, c)
		}
	}
	s.sort()

	return s
}

func (s *Shape) sort() {
	sort.Slice(s.cells, func(i, j int) bool { return less(s.cells[i], s.cells[j]) })
}

func (s *Shape) Kind() Kind       { return s.kind }
func (s *Shape) Tag() string      { return s.kind.Tag() }
func (s *Shape) Anchor() Position { return s.anchor }
func (s *Shape) Len() int         { return len(s.cells) }

// Cells yields the shape's cells in row-major order.
func (s *Shape) Cells() iter.Seq[Position] {
	return func(yield func(Position) bool) {
		for _, c := range s.cells {
			if !yield(c) {
				return
			}
		}
	}
}

func (s *Shape) Contains(p Position) bool {
	for _, c := range s.cells {
		if c == p {
			return true
		}
	}

	return false
}

func (s *Shape) CollidesWith(other *Shape) bool {
	for _, c := range s.cells {
		if other.Contains(c) {
			return true
		}
	}

	return false
}

func (s *Shape) Translate(offset Position) *Shape {
	cells := make([]Position, len(s.cells))
	for i, c := range s.cells {
		cells[i] = c.Add(offset)
	}

	return newShape(s.kind, cells, s.anchor.Add(offset))
}

// Rotated returns the shape turned a quarter clockwise about its anchor.
func (s *Shape) Rotated() *Shape {
	a, b := s.anchor.X, s.anchor.Y

	cells := make([]Position, len(s.cells))
	for i, c := range s.cells {
		cells[i] = Position{-c.Y + b + a, c.X - a + b}
	}

	return newShape(s.kind, cells, s.anchor)
}

// RemoveRow deletes row y and moves every cell above it down one row.
func (s *Shape) RemoveRow(y int) {
	cells := s.cells[:0]
	for _, c := range s.cells {
		switch {
		case c.Y == y:
			continue
		case c.Y < y:
			c.Y++
		}
		cells = append(cells, c)
	}
	s.cells = cells
	s.sort()
}

func (s *Shape) String() string {
	var b strings.Builder
	b.WriteString(s.kind.String())
	b.WriteRune('[')
	for i, c := range s.cells {
		if i > 0 {
			b.WriteRune(',')
		}
		b.WriteString(c.String())
	}
	b.WriteString("]@")
	b.WriteString(s.anchor.String())

	return b.String()
}
