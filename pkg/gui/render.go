package gui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

const (
	cellWidth = 2
	blockRune = '█'
)

// drawText places text at the specified coordinates with the provided style
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range []rune(text) {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// drawRune places a rune at the specified coordinates with the provided style
func drawRune(s tcell.Screen, x, y int, style tcell.Style, r rune) {
	s.SetContent(x, y, r, nil, style)
}

// Size returns the screen columns and rows Render uses for a board
func Size(width, height int) (int, int) {
	return width*cellWidth + 2, height + 5
}

// drawFrame draws the border around a board whose top left inner cell is at x, y
func drawFrame(s tcell.Screen, x, y, width, height int, t Theme) {
	style := tcell.StyleDefault.Foreground(t.Border)
	inner := width * cellWidth

	drawRune(s, x-1, y-1, style, tcell.RuneULCorner)
	drawRune(s, x+inner, y-1, style, tcell.RuneURCorner)
	drawRune(s, x-1, y+height, style, tcell.RuneLLCorner)
	drawRune(s, x+inner, y+height, style, tcell.RuneLRCorner)
	for i := 0; i < inner; i++ {
		drawRune(s, x+i, y-1, style, tcell.RuneHLine)
		drawRune(s, x+i, y+height, style, tcell.RuneHLine)
	}
	for j := 0; j < height; j++ {
		drawRune(s, x-1, y+j, style, tcell.RuneVLine)
		drawRune(s, x+inner, y+j, style, tcell.RuneVLine)
	}
}

// drawCell fills one board cell two columns wide to make it square
func drawCell(s tcell.Screen, col, row int, tag string, t Theme) {
	if tag == "" {
		style := tcell.StyleDefault.Background(t.Empty)
		s.SetContent(col, row, ' ', nil, style)
		s.SetContent(col+1, row, ' ', nil, style)
		return
	}

	style := tcell.StyleDefault.Foreground(t.Piece(tag))
	s.SetContent(col, row, blockRune, nil, style)
	s.SetContent(col+1, row, blockRune, nil, style)
}

// drawLabel shows the player, match and loss state under the board
func drawLabel(s tcell.Screen, x, y int, gs *GameState) {
	labelStyle := tcell.StyleDefault.Foreground(gs.Theme.Label)
	label := gs.Player
	if gs.Match != "" {
		label = fmt.Sprintf("%s @ %s", gs.Player, gs.Match)
	}
	if gs.Players > 1 {
		label = fmt.Sprintf("%s (%d)", label, gs.Players)
	}
	drawText(s, x, y, labelStyle, label)

	if gs.Board.Lost {
		lostStyle := tcell.StyleDefault.Foreground(gs.Theme.Lost).Bold(true)
		drawText(s, x, y+1, lostStyle, "GAME OVER - r to restart")
	}
}

// Render draws the board with its top left corner at x, y
func Render(s tcell.Screen, x, y int, gs *GameState) {
	b := gs.Board
	msgStyle := tcell.StyleDefault.Foreground(gs.Theme.Msg)

	if b.Width == 0 || b.Height == 0 {
		drawText(s, x, y, msgStyle, "waiting for server...")
		return
	}

	left, top := x+1, y+1
	drawFrame(s, left, top, b.Width, b.Height, gs.Theme)

	for row := 0; row < b.Height; row++ {
		for col := 0; col < b.Width; col++ {
			drawCell(s, left+col*cellWidth, top+row, b.At(col, row), gs.Theme)
		}
	}

	drawLabel(s, x, top+b.Height+1, gs)

	if gs.Msg != "" {
		drawText(s, x, top+b.Height+3, msgStyle, gs.Msg)
	}
}
