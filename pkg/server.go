package pkg

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"sync"
	"time"
)

const (
	ServerIdleTimeout = 5 * time.Minute
	SshPort           = ":2222"
	ServerPort        = ":1998"
	MessageQueueSize  = 20

	DefaultWidth   = 10
	DefaultHeight  = 20
	DefaultGravity = 500 * time.Millisecond
)

var ErrMatchNotFound = errors.New("match not found")

type Server struct {
	Matches map[string]*Match

	cfg          Config
	cancels      map[string]context.CancelFunc
	listeners    []net.Listener
	nextPlayerId int

	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
}

func NewServer(cfg Config) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		Matches: make(map[string]*Match),
		cfg:     cfg,
		cancels: make(map[string]context.CancelFunc),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Listen accepts connections on a TCP address until Stop is called
func (s *Server) Listen(address string) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", address, err)
	}
	log.Printf("Listening at %s", listener.Addr())

	return s.Serve(listener)
}

func (s *Server) Serve(listener net.Listener) error {
	s.mu.Lock()
	s.listeners = append(s.listeners, listener)
	s.mu.Unlock()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if s.ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accepting: %w", err)
		}
		go s.HandleConn(conn)
	}
}

// HandleConn reads the player's MessageConnect, attaches it to a match and
// serves it until the connection closes.
func (s *Server) HandleConn(conn net.Conn) {
	scanner := newScanner(conn)
	if !scanner.Scan() {
		conn.Close()
		return
	}
	msg, err := decodeLine(scanner.Bytes())
	hello, ok := msg.(MessageConnect)
	if err != nil || !ok {
		log.Printf("Connection from %s did not start with a connect message: %v", conn.RemoteAddr(), err)
		conn.Close()
		return
	}

	m, err := s.matchFor(hello.Match)
	if err != nil {
		log.Printf("Connection from %s: %v", conn.RemoteAddr(), err)
		conn.Close()
		return
	}

	name := Nickname(hello.Name)
	if name == "" {
		name = NewName()
	}

	p := NewPlayer(conn, name)
	p.scanner = scanner
	s.mu.Lock()
	s.nextPlayerId++
	p.Id = s.nextPlayerId
	s.mu.Unlock()

	p.Out <- MessageConnect{Match: m.Id, Name: p.Name}
	go p.HandleWrite()

	if !m.Join(p) {
		close(p.Out)
		conn.Close()
		return
	}
	p.HandleRead(m)
	p.Disconnect()
}

// matchFor returns the named match, creating it when it does not exist.
// An empty id gets a fresh generated one.
func (s *Server) matchFor(id string) (*Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		for id == "" || s.Matches[id] != nil {
			id = NewName()
		}
	}
	if m, ok := s.Matches[id]; ok {
		return m, nil
	}

	m, err := NewMatch(id, s.cfg, nil)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(s.ctx)
	s.Matches[id] = m
	s.cancels[id] = cancel
	go m.Run(ctx)
	log.Printf("Created match %s", id)

	return m, nil
}

func (s *Server) Match(id string) (*Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.Matches[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrMatchNotFound)
	}
	return m, nil
}

// CleanIdleMatches stops matches nobody has played for the idle timeout
func (s *Server) CleanIdleMatches(interval time.Duration) {
	tick := time.NewTicker(interval)
	defer tick.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-tick.C:
			s.cleanIdleMatches(time.Now())
		}
	}
}

func (s *Server) cleanIdleMatches(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int
	for id, m := range s.Matches {
		idle := m.IdleSince()
		if idle.IsZero() || now.Sub(idle) < s.cfg.IdleTimeout {
			continue
		}

		s.cancels[id]()
		delete(s.cancels, id)
		delete(s.Matches, id)
		removed++
		log.Printf("Removed idle match %s", id)
	}

	return removed
}

// Stop closes every listener and ends all matches
func (s *Server) Stop() {
	s.cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.listeners {
		l.Close()
	}
	s.listeners = nil
}
