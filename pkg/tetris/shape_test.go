package tetris

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSource returns its values in order, wrapping around.
type stubSource struct {
	values []int
	i      int
}

func (s *stubSource) Intn(n int) int {
	v := s.values[s.i%len(s.values)] % n
	s.i++
	return v
}

func always(k Kind) *stubSource {
	return &stubSource{values: []int{int(k)}}
}

func cellSet(s *Shape) map[Position]bool {
	set := make(map[Position]bool)
	for c := range s.Cells() {
		set[c] = true
	}
	return set
}

func TestNewShape(t *testing.T) {
	tests := []struct {
		kind   Kind
		cells  []Position
		anchor Position
	}{
		{KindI, []Position{{0, 0}, {1, 0}, {2, 0}, {3, 0}}, Position{1, 0}},
		{KindO, []Position{{0, 0}, {0, 1}, {1, 0}, {1, 1}}, Position{0, 0}},
		{KindT, []Position{{0, 0}, {1, 0}, {2, 0}, {1, 1}}, Position{1, 0}},
		{KindJ, []Position{{0, 0}, {0, 1}, {0, 2}, {-1, 2}}, Position{0, 1}},
		{KindL, []Position{{0, 0}, {0, 1}, {0, 2}, {1, 2}}, Position{0, 1}},
		{KindS, []Position{{0, 0}, {1, 0}, {0, 1}, {-1, 1}}, Position{0, 0}},
		{KindZ, []Position{{0, 0}, {-1, 0}, {0, 1}, {1, 1}}, Position{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			s := New(tt.kind)
			assert.Equal(t, 4, s.Len())
			assert.Equal(t, tt.anchor, s.Anchor())
			assert.Equal(t, tt.kind, s.Kind())
			assert.NotEmpty(t, s.Tag())
			assert.ElementsMatch(t, tt.cells, slices.Collect(s.Cells()))
		})
	}
}

func TestTagsAreDistinct(t *testing.T) {
	seen := make(map[string]Kind)
	for _, k := range Kinds {
		_, dup := seen[k.Tag()]
		assert.False(t, dup, "tag of %s reused", k)
		seen[k.Tag()] = k
	}
}

func TestRandom(t *testing.T) {
	for i, k := range Kinds {
		s := Random(&stubSource{values: []int{i}})
		assert.Equal(t, k, s.Kind())
	}

	r := rand.New(rand.NewSource(1))
	counts := make(map[Kind]int)
	for i := 0; i < 7000; i++ {
		counts[Random(r).Kind()]++
	}
	assert.Len(t, counts, len(Kinds))
}

func TestCellsStable(t *testing.T) {
	s := New(KindS).Translate(Position{3, 4})
	first := slices.Collect(s.Cells())
	second := slices.Collect(s.Cells())
	assert.Equal(t, first, second)

	var n int
	for range s.Cells() {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestRotated(t *testing.T) {
	s := New(KindT)
	r := s.Rotated()

	assert.ElementsMatch(t, []Position{{1, -1}, {1, 0}, {1, 1}, {0, 0}}, slices.Collect(r.Cells()))
	assert.Equal(t, s.Anchor(), r.Anchor())
	assert.Equal(t, 4, s.Len(), "receiver must not change")
	assert.True(t, s.Contains(Position{2, 0}))
}

func TestRotatedFourTimes(t *testing.T) {
	for _, k := range Kinds {
		s := New(k).Translate(Position{5, 7})
		r := s.Rotated().Rotated().Rotated().Rotated()
		assert.Equal(t, cellSet(s), cellSet(r), "kind %s", k)
		assert.Equal(t, s.Anchor(), r.Anchor())
	}
}

func TestTranslate(t *testing.T) {
	offsets := []Position{{0, 0}, {1, 0}, {-3, 5}, {10, -10}}
	for _, k := range Kinds {
		for _, v := range offsets {
			s := New(k)
			moved := s.Translate(v)
			assert.Equal(t, s.Anchor().Add(v), moved.Anchor())
			assert.Equal(t, k, moved.Kind())

			back := moved.Translate(v.Neg())
			assert.Equal(t, cellSet(s), cellSet(back))
			assert.Equal(t, s.Anchor(), back.Anchor())
		}
	}
}

func TestCollidesWith(t *testing.T) {
	var shapes []*Shape
	for _, k := range Kinds {
		for _, v := range []Position{{0, 0}, {1, 0}, {0, 1}, {4, 4}} {
			shapes = append(shapes, New(k).Translate(v))
		}
	}

	for _, a := range shapes {
		for _, b := range shapes {
			assert.Equal(t, a.CollidesWith(b), b.CollidesWith(a), "%s vs %s", a, b)
		}
	}

	assert.True(t, New(KindO).CollidesWith(New(KindI)))
	assert.False(t, New(KindO).CollidesWith(New(KindI).Translate(Position{0, 2})))
}

func TestRemoveRow(t *testing.T) {
	s := New(KindL).Translate(Position{2, 3})
	// cells (2,3) (2,4) (2,5) (3,5)
	anchor := s.Anchor()

	s.RemoveRow(4)
	assert.ElementsMatch(t, []Position{{2, 4}, {2, 5}, {3, 5}}, slices.Collect(s.Cells()))
	assert.Equal(t, anchor, s.Anchor())
	assert.Equal(t, KindL, s.Kind())

	s.RemoveRow(5)
	assert.ElementsMatch(t, []Position{{2, 5}}, slices.Collect(s.Cells()))

	s.RemoveRow(0)
	assert.ElementsMatch(t, []Position{{2, 5}}, slices.Collect(s.Cells()))

	s.RemoveRow(5)
	require.Equal(t, 0, s.Len())
	assert.False(t, s.CollidesWith(New(KindO)))
}

func TestNewShapeDedupes(t *testing.T) {
	s := newShape(KindO, []Position{{0, 0}, {0, 0}, {1, 0}}, Position{})
	assert.Equal(t, 2, s.Len())
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "O[(0,0),(1,0),(0,1),(1,1)]@(0,0)", New(KindO).String())
}
