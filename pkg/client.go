package pkg

import (
	"fmt"
	"log"
	"net"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/qnkhuat/tetriterm/pkg/gui"
	"github.com/rivo/tview"
)

const (
	ConnQueueSize = 10

	DefaultStatusText = "←/→ or h/l move, ↑/k/z/x rotate, ↓/j/space drop, r restart, q quit"
)

type Client struct {
	App    *tview.Application
	Board  *tview.Box
	Status *tview.TextView
	Layout *tview.Grid
	Conn   net.Conn
	Out    chan MessageInterface

	state gui.GameState
	mu    sync.Mutex
}

func NewClient(theme gui.Theme, name string) *Client {
	app := tview.NewApplication()

	board := tview.NewBox()

	status := tview.NewTextView().
		SetText(DefaultStatusText).
		SetTextColor(theme.Label)

	cl := &Client{
		App:    app,
		Board:  board,
		Status: status,
		Out:    make(chan MessageInterface, ConnQueueSize),
		state:  gui.GameState{Theme: theme, Player: name},
	}

	board.SetDrawFunc(cl.draw)
	cl.Layout = tview.NewGrid().
		SetRows(-1, 1).
		SetColumns(-1).
		AddItem(board, 0, 0, 1, 1, 0, 0, true).
		AddItem(status, 1, 0, 1, 1, 0, 0, false)

	app.SetInputCapture(cl.handleKeypress)

	return cl
}

func (cl *Client) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	cl.mu.Lock()
	gs := cl.state
	cl.mu.Unlock()

	w, h := gui.Size(gs.Board.Width, gs.Board.Height)
	left := x + (width-w)/2
	if left < x {
		left = x
	}
	top := y + (height-h)/2
	if top < y {
		top = y
	}
	gui.Render(screen, left, top, &gs)

	return x, y, width, height
}

func (cl *Client) handleKeypress(ev *tcell.EventKey) *tcell.EventKey {
	action := actionFor(ev)
	switch action {
	case ActionUnknown:
		return ev
	case ActionExit:
		cl.App.Stop()
		return nil
	}

	cmd, ok := action.Command()
	if !ok {
		return nil
	}
	select {
	case cl.Out <- cmd:
	default:
		log.Printf("Dropped %s: send queue full", action)
	}
	return nil
}

func (cl *Client) Connect(address string) error {
	log.Printf("Connecting to %s", address)
	conn, err := net.Dial("tcp", address)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", address, err)
	}
	cl.Conn = conn
	return nil
}

// Join asks the server for a match; an empty id starts a new one
func (cl *Client) Join(match string) {
	cl.mu.Lock()
	name := cl.state.Player
	cl.mu.Unlock()

	cl.Out <- MessageConnect{Match: match, Name: name}
}

func (cl *Client) HandleWrite() {
	for command := range cl.Out {
		if err := writeMessage(cl.Conn, command); err != nil {
			log.Printf("Failed to send %s: %v", command.Type(), err)
			cl.App.Stop()
			return
		}
	}
}

func (cl *Client) HandleRead() {
	scanner := newScanner(cl.Conn)
	for scanner.Scan() {
		msg, err := decodeLine(scanner.Bytes())
		if err != nil {
			log.Printf("Received a bad message: %v", err)
			continue
		}
		cl.handleMessage(msg)
	}
	log.Printf("Connection closed")
	cl.setMsg("disconnected from server, q to quit")
}

func (cl *Client) handleMessage(msg MessageInterface) {
	cl.mu.Lock()
	switch m := msg.(type) {
	case MessageConnect:
		cl.state.Match = m.Match
		cl.state.Player = m.Name
		log.Printf("Joined match %s as %s", m.Match, m.Name)
	case MessageState:
		cl.state.Board = m.Board
		cl.state.Players = m.Players
	default:
		log.Printf("Received unexpected %s", msg.Type())
	}
	cl.mu.Unlock()

	cl.App.QueueUpdateDraw(func() {})
}

func (cl *Client) setMsg(msg string) {
	cl.mu.Lock()
	cl.state.Msg = msg
	cl.mu.Unlock()

	cl.App.QueueUpdateDraw(func() {})
}

// State returns a copy of what the client last drew
func (cl *Client) State() gui.GameState {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	return cl.state
}

func (cl *Client) Disconnect() {
	if cl.Conn != nil {
		cl.Conn.Close()
	}
}
