package gui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/qnkhuat/tetriterm/pkg/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()

	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(60, 40)
	t.Cleanup(s.Fini)
	return s
}

func testSnapshot(t *testing.T) tetris.Snapshot {
	t.Helper()

	b, err := tetris.NewBoard(4, 6, nil)
	require.NoError(t, err)
	return b.Snapshot()
}

func TestRender(t *testing.T) {
	s := newTestScreen(t)
	snap := testSnapshot(t)
	gs := &GameState{Board: snap, Theme: ThemeBasic, Player: "ada", Match: "calm-otter"}

	Render(s, 0, 0, gs)
	s.Show()

	r, _, _, _ := s.GetContent(0, 0)
	assert.Equal(t, tcell.RuneULCorner, r)
	r, _, _, _ = s.GetContent(snap.Width*cellWidth+1, snap.Height+1)
	assert.Equal(t, tcell.RuneLRCorner, r)

	for row := 0; row < snap.Height; row++ {
		for col := 0; col < snap.Width; col++ {
			r, _, style, _ := s.GetContent(1+col*cellWidth, 1+row)
			if snap.At(col, row) == "" {
				assert.Equal(t, ' ', r)
				continue
			}

			assert.Equal(t, blockRune, r)
			fg, _, _ := style.Decompose()
			assert.Equal(t, ThemeBasic.Piece(snap.At(col, row)), fg)
		}
	}

	var label []rune
	for x := 0; x < len("ada @ calm-otter"); x++ {
		r, _, _, _ := s.GetContent(x, snap.Height+2)
		label = append(label, r)
	}
	assert.Equal(t, "ada @ calm-otter", string(label))
}

func TestRenderWaiting(t *testing.T) {
	s := newTestScreen(t)

	Render(s, 2, 1, &GameState{Theme: ThemeBasic})
	s.Show()

	r, _, _, _ := s.GetContent(2, 1)
	assert.Equal(t, 'w', r)
}

func TestRenderLost(t *testing.T) {
	s := newTestScreen(t)
	snap := testSnapshot(t)
	snap.Lost = true

	Render(s, 0, 0, &GameState{Board: snap, Theme: ThemeBasic, Player: "ada"})
	s.Show()

	r, _, _, _ := s.GetContent(0, snap.Height+3)
	assert.Equal(t, 'G', r)
}

func TestSize(t *testing.T) {
	w, h := Size(10, 20)
	assert.Equal(t, 22, w)
	assert.Equal(t, 25, h)
}

func TestThemePiece(t *testing.T) {
	assert.Equal(t, ThemeBasic.PieceI, ThemeBasic.Piece(tetris.KindI.Tag()))
	assert.Equal(t, ThemeBasic.PieceZ, ThemeBasic.Piece(tetris.KindZ.Tag()))
	assert.Equal(t, ThemeBasic.Empty, ThemeBasic.Piece("?"))
}

func TestThemeHex(t *testing.T) {
	hex := ThemeBasic.Hex()
	assert.Equal(t, "basic", hex.Name)
	assert.Equal(t, "#0", hex.Empty)
	assert.Equal(t, hex, hex.Theme().Hex())
}

func TestImportThemes(t *testing.T) {
	custom := ThemeMono.Hex()
	custom.Name = "custom"

	theme, err := ImportThemes("custom", []ThemeHex{custom})
	require.NoError(t, err)
	assert.Equal(t, "custom", theme.Name)

	theme, err = ImportThemes("basic", nil)
	require.NoError(t, err)
	assert.Equal(t, ThemeBasic, theme)

	_, err = ImportThemes("missing", nil)
	assert.Error(t, err)
}

func TestLoadThemes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "themes.json")
	data := `[{"name":"dark","border":"#808080","empty":"#0","pieceI":"#00ffff"}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	themes, err := LoadThemes(path)
	require.NoError(t, err)
	require.Len(t, themes, 1)

	theme, err := ImportThemes("dark", themes)
	require.NoError(t, err)
	assert.Equal(t, int32(0x00ffff), theme.PieceI.Hex())

	_, err = LoadThemes(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
