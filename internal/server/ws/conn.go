// Package ws adapts gorilla/websocket connections to the board protocol's
// transport contracts: per-connection write pumps, the room membership
// index, and the inbound event dispatch loop.
package ws

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/dmitrijs2005/corkboard/internal/server/board"
)

var (
	ErrConnClosed     = errors.New("connection closed")
	ErrSendBufferFull = errors.New("send buffer full")
)

// Conn wraps one websocket session. Outbound frames go through a buffered
// channel drained by a single writer goroutine, so protocol handlers never
// block on the socket.
type Conn struct {
	id     string
	sock   *websocket.Conn
	send   chan board.Message
	closed chan struct{}
	once   sync.Once
}

func newConn(sock *websocket.Conn, sendBufferSize int) *Conn {
	return &Conn{
		id:     uuid.NewString(),
		sock:   sock,
		send:   make(chan board.Message, sendBufferSize),
		closed: make(chan struct{}),
	}
}

func (c *Conn) ID() string { return c.id }

// Send enqueues a frame. A full buffer means the peer stopped reading;
// the frame is dropped and the caller informed rather than blocking the
// protocol on one slow consumer.
func (c *Conn) Send(msg board.Message) error {
	select {
	case <-c.closed:
		return ErrConnClosed
	default:
	}

	select {
	case c.send <- msg:
		return nil
	case <-c.closed:
		return ErrConnClosed
	default:
		return ErrSendBufferFull
	}
}

// writePump is the only goroutine writing to the socket.
func (c *Conn) writePump() {
	defer c.sock.Close()
	for {
		select {
		case msg := <-c.send:
			if err := c.sock.WriteJSON(msg); err != nil {
				return
			}
		case <-c.closed:
			_ = c.sock.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

func (c *Conn) close() {
	c.once.Do(func() { close(c.closed) })
}
