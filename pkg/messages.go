package pkg

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/qnkhuat/tetriterm/pkg/tetris"
)

const maxMessageSize = 1 << 20

type MessageType int

const (
	TypeMessageState MessageType = iota
	TypeMessageCommand
	TypeMessageTransport
	TypeMessageConnect
)

func (m MessageType) String() string {
	switch m {
	case TypeMessageState:
		return "TypeMessageState"
	case TypeMessageCommand:
		return "TypeMessageCommand"
	case TypeMessageTransport:
		return "TypeMessageTransport"
	case TypeMessageConnect:
		return "TypeMessageConnect"
	default:
		return "Unknown MessageType"
	}
}

type Command int

const (
	CommandTick Command = iota
	CommandShift
	CommandRotate
	CommandRestart
)

func (c Command) String() string {
	switch c {
	case CommandTick:
		return "Tick"
	case CommandShift:
		return "Shift"
	case CommandRotate:
		return "Rotate"
	case CommandRestart:
		return "Restart"
	default:
		return "Unknown"
	}
}

type MessageInterface interface {
	Type() MessageType
}

// MessageTransport is the envelope every line on the wire is encoded in
type MessageTransport struct {
	MsgType  MessageType
	Data     json.RawMessage
	PlayerId int `json:"-"`
}

func (m MessageTransport) Type() MessageType {
	return TypeMessageTransport
}

// MessageCommand asks the match to change its board
type MessageCommand struct {
	Command   Command
	Direction tetris.Direction
}

func (m MessageCommand) Type() MessageType {
	return TypeMessageCommand
}

// MessageState carries the board after every change
type MessageState struct {
	Board   tetris.Snapshot
	Players int
}

func (m MessageState) Type() MessageType {
	return TypeMessageState
}

// MessageConnect is sent by the client to join a match and echoed back by
// the server with the match id and name it settled on
type MessageConnect struct {
	Match string
	Name  string
}

func (m MessageConnect) Type() MessageType {
	return TypeMessageConnect
}

func Encode(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		log.Panic(err)
	}
	return data
}

func Decode(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// writeMessage wraps m in a transport and writes it as one line
func writeMessage(w io.Writer, m MessageInterface) error {
	b := Encode(MessageTransport{MsgType: m.Type(), Data: Encode(m)})
	b = append(b, '\n')
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("writing %s: %w", m.Type(), err)
	}
	return nil
}

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxMessageSize)
	return scanner
}

// decodeLine parses one wire line into its payload
func decodeLine(line []byte) (MessageInterface, error) {
	var transport MessageTransport
	if err := Decode(line, &transport); err != nil {
		return nil, fmt.Errorf("decoding transport: %w", err)
	}

	return transport.Message()
}

// Message decodes the payload according to MsgType
func (m MessageTransport) Message() (MessageInterface, error) {
	var (
		msg MessageInterface
		err error
	)
	switch m.MsgType {
	case TypeMessageState:
		var s MessageState
		err = Decode(m.Data, &s)
		msg = s
	case TypeMessageCommand:
		var c MessageCommand
		err = Decode(m.Data, &c)
		msg = c
	case TypeMessageConnect:
		var c MessageConnect
		err = Decode(m.Data, &c)
		msg = c
	default:
		return nil, fmt.Errorf("unknown message type %d", m.MsgType)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", m.MsgType, err)
	}

	return msg, nil
}
