package gui

import (
	"github.com/qnkhuat/tetriterm/pkg/tetris"
)

// GameState encapsulates everything needed to draw a game
type GameState struct {
	Board   tetris.Snapshot // Last board received
	Theme   Theme           // Theme
	Player  string          // Local player name
	Match   string          // Match id
	Players int             // Players sharing the board
	Msg     string          // Status line
}
