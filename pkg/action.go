package pkg

import (
	"github.com/gdamore/tcell/v2"
	"github.com/qnkhuat/tetriterm/pkg/tetris"
)

type Action int

const (
	ActionUnknown Action = iota
	ActionMoveLeft
	ActionMoveRight
	ActionRotate
	ActionDrop
	ActionRestart
	ActionExit
)

func (a Action) String() string {
	switch a {
	case ActionMoveLeft:
		return "Move Left"
	case ActionMoveRight:
		return "Move Right"
	case ActionRotate:
		return "Rotate"
	case ActionDrop:
		return "Drop"
	case ActionRestart:
		return "Restart"
	case ActionExit:
		return "Exit"
	default:
		return "Unknown"
	}
}

// Command returns the board command an action sends, if any
func (a Action) Command() (MessageCommand, bool) {
	switch a {
	case ActionMoveLeft:
		return MessageCommand{Command: CommandShift, Direction: tetris.Left}, true
	case ActionMoveRight:
		return MessageCommand{Command: CommandShift, Direction: tetris.Right}, true
	case ActionRotate:
		return MessageCommand{Command: CommandRotate}, true
	case ActionDrop:
		return MessageCommand{Command: CommandTick}, true
	case ActionRestart:
		return MessageCommand{Command: CommandRestart}, true
	default:
		return MessageCommand{}, false
	}
}

type Keybinding struct {
	k tcell.Key
	r rune

	a Action
}

var keybindings = []*Keybinding{
	{k: tcell.KeyLeft, a: ActionMoveLeft},
	{r: 'h', a: ActionMoveLeft},
	{r: 'H', a: ActionMoveLeft},
	{k: tcell.KeyRight, a: ActionMoveRight},
	{r: 'l', a: ActionMoveRight},
	{r: 'L', a: ActionMoveRight},
	{k: tcell.KeyUp, a: ActionRotate},
	{r: 'k', a: ActionRotate},
	{r: 'K', a: ActionRotate},
	{r: 'z', a: ActionRotate},
	{r: 'Z', a: ActionRotate},
	{r: 'x', a: ActionRotate},
	{r: 'X', a: ActionRotate},
	{k: tcell.KeyDown, a: ActionDrop},
	{r: 'j', a: ActionDrop},
	{r: 'J', a: ActionDrop},
	{r: ' ', a: ActionDrop},
	{r: 'r', a: ActionRestart},
	{r: 'R', a: ActionRestart},
	{k: tcell.KeyEscape, a: ActionExit},
	{k: tcell.KeyCtrlC, a: ActionExit},
	{r: 'q', a: ActionExit},
	{r: 'Q', a: ActionExit},
}

// actionFor looks up the action bound to a key press
func actionFor(ev *tcell.EventKey) Action {
	k := ev.Key()
	r := ev.Rune()

	for _, bind := range keybindings {
		if bind.k != 0 && bind.k == k {
			return bind.a
		}
		if bind.r != 0 && k == tcell.KeyRune && bind.r == r {
			return bind.a
		}
	}

	return ActionUnknown
}
