package pkg

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/qnkhuat/tetriterm/pkg/tetris"
)

// Match owns one board. Gravity ticks and player commands are applied by
// Run in the order they arrive, and every change is sent to all players.
type Match struct {
	Id    string
	Board *tetris.Board
	Clock *Clock
	In    chan MessageTransport

	players map[int]*Player
	join    chan *Player
	leave   chan *Player
	done    chan struct{}

	width, height int
	src           tetris.Source

	count      int
	lastActive time.Time
	mu         sync.Mutex
}

func NewMatch(id string, cfg Config, src tetris.Source) (*Match, error) {
	board, err := tetris.NewBoard(cfg.Width, cfg.Height, src)
	if err != nil {
		return nil, fmt.Errorf("match %s: %w", id, err)
	}

	return &Match{
		Id:         id,
		Board:      board,
		Clock:      NewClock(cfg.Gravity),
		In:         make(chan MessageTransport, MessageQueueSize),
		players:    make(map[int]*Player),
		join:       make(chan *Player),
		leave:      make(chan *Player),
		done:       make(chan struct{}),
		width:      cfg.Width,
		height:     cfg.Height,
		src:        src,
		lastActive: time.Now(),
	}, nil
}

// Join attaches p. It returns false once the match has stopped.
func (m *Match) Join(p *Player) bool {
	select {
	case m.join <- p:
		return true
	case <-m.done:
		return false
	}
}

func (m *Match) Leave(p *Player) {
	select {
	case m.leave <- p:
	case <-m.done:
	}
}

// Send queues a player's message. It returns false once the match has stopped.
func (m *Match) Send(t MessageTransport) bool {
	select {
	case <-m.done:
		return false
	default:
	}

	select {
	case m.In <- t:
		return true
	case <-m.done:
		return false
	}
}

func (m *Match) Players() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.count
}

// IdleSince reports when the last player left, or the zero time while
// someone is playing.
func (m *Match) IdleSince() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.count > 0 {
		return time.Time{}
	}
	return m.lastActive
}

func (m *Match) Run(ctx context.Context) {
	defer close(m.done)
	defer m.closePlayers()

	go m.Clock.Run(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Printf("Match %s stopped", m.Id)
			return

		case p := <-m.join:
			m.players[p.Id] = p
			m.setCount()
			m.Clock.Resume()
			log.Printf("Match %s: %s joined (%d playing)", m.Id, p.Name, len(m.players))
			m.broadcast()

		case p := <-m.leave:
			if _, ok := m.players[p.Id]; !ok {
				continue
			}
			delete(m.players, p.Id)
			close(p.Out)
			if len(m.players) == 0 {
				m.Clock.Pause()
			}
			m.setCount()
			log.Printf("Match %s: %s left (%d playing)", m.Id, p.Name, len(m.players))
			m.broadcast()

		case <-m.Clock.C:
			if m.Board.Lost() {
				continue
			}
			m.Board.Tick()
			if m.Board.Lost() {
				log.Printf("Match %s lost", m.Id)
			}
			m.broadcast()

		case t := <-m.In:
			msg, err := t.Message()
			if err != nil {
				log.Printf("Match %s: dropping message from player %d: %v", m.Id, t.PlayerId, err)
				continue
			}
			cmd, ok := msg.(MessageCommand)
			if !ok {
				log.Printf("Match %s: unexpected %s from player %d", m.Id, t.MsgType, t.PlayerId)
				continue
			}
			m.Apply(cmd)
			m.broadcast()
		}
	}
}

// Apply runs one command against the board. Only Run calls it once the
// match is running.
func (m *Match) Apply(cmd MessageCommand) {
	switch cmd.Command {
	case CommandTick:
		m.Board.Tick()
	case CommandShift:
		m.Board.Shift(cmd.Direction)
	case CommandRotate:
		m.Board.Rotate()
	case CommandRestart:
		if !m.Board.Lost() {
			return
		}
		board, err := tetris.NewBoard(m.width, m.height, m.src)
		if err != nil {
			log.Printf("Match %s: restart failed: %v", m.Id, err)
			return
		}
		m.Board = board
		log.Printf("Match %s restarted", m.Id)
	default:
		log.Printf("Match %s: unknown command %d", m.Id, cmd.Command)
	}
}

func (m *Match) State() MessageState {
	return MessageState{Board: m.Board.Snapshot(), Players: len(m.players)}
}

func (m *Match) broadcast() {
	state := m.State()
	for _, p := range m.players {
		select {
		case p.Out <- state:
		default:
			log.Printf("Match %s: %s is not keeping up, dropped a state", m.Id, p.Name)
		}
	}
}

func (m *Match) setCount() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.count = len(m.players)
	m.lastActive = time.Now()
}

func (m *Match) closePlayers() {
	for id, p := range m.players {
		close(p.Out)
		p.Disconnect()
		delete(m.players, id)
	}
	m.setCount()
}
