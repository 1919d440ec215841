package pkg

import (
	"bufio"
	"log"
	"net"
)

type Player struct {
	Conn net.Conn
	Out  chan MessageInterface
	Id   int
	Name string

	scanner *bufio.Scanner
}

func NewPlayer(conn net.Conn, name string) *Player {
	Out := make(chan MessageInterface, ConnQueueSize)

	p := &Player{
		Conn: conn,
		Out:  Out,
		Name: name,
	}
	return p
}

// HandleRead forwards the player's commands to the match until the
// connection closes, then reports the player gone.
func (p *Player) HandleRead(m *Match) {
	defer m.Leave(p)

	if p.scanner == nil {
		p.scanner = newScanner(p.Conn)
	}
	scanner := p.scanner
	for scanner.Scan() {
		var messageTransport MessageTransport
		if err := Decode(scanner.Bytes(), &messageTransport); err != nil {
			log.Printf("Player %s sent a bad message: %v", p.Name, err)
			continue
		}
		messageTransport.PlayerId = p.Id
		if !m.Send(messageTransport) { // Forward the message to the match
			return
		}
	}
	if err := scanner.Err(); err != nil {
		log.Printf("Player %s read failed: %v", p.Name, err)
	}
}

// HandleWrite sends queued messages until Out is closed
func (p *Player) HandleWrite() {
	for message := range p.Out {
		if err := writeMessage(p.Conn, message); err != nil {
			log.Printf("Failed to write to %s: %v", p.Name, err)
		}
	}
}

func (p *Player) Disconnect() {
	p.Conn.Close()
}
