package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/corkboard/internal/server/board"
)

type stubConn struct {
	id     string
	frames []board.Message
}

func (c *stubConn) ID() string { return c.id }
func (c *stubConn) Send(msg board.Message) error {
	c.frames = append(c.frames, msg)
	return nil
}

func TestHub_EnterAndConnectionsIn(t *testing.T) {
	h := NewHub()
	c1 := &stubConn{id: "c1"}
	c2 := &stubConn{id: "c2"}

	h.Enter("B1", c1)
	h.Enter("B1", c2)
	h.Enter("B2", c1)

	assert.Len(t, h.ConnectionsIn("B1"), 2)
	assert.Len(t, h.ConnectionsIn("B2"), 1)
	assert.Empty(t, h.ConnectionsIn("B3"))
}

func TestHub_EnterIsIdempotentPerConn(t *testing.T) {
	h := NewHub()
	c1 := &stubConn{id: "c1"}

	h.Enter("B1", c1)
	h.Enter("B1", c1)

	assert.Len(t, h.ConnectionsIn("B1"), 1)
}

func TestHub_LeaveDropsEmptyRooms(t *testing.T) {
	h := NewHub()
	c1 := &stubConn{id: "c1"}

	h.Enter("B1", c1)
	h.Leave("B1", c1)

	assert.Empty(t, h.ConnectionsIn("B1"))
	h.mu.RLock()
	defer h.mu.RUnlock()
	assert.NotContains(t, h.rooms, "B1")
}

func TestHub_DropConnRemovesFromEveryRoom(t *testing.T) {
	h := NewHub()
	c1 := &stubConn{id: "c1"}
	c2 := &stubConn{id: "c2"}
	h.Enter("B1", c1)
	h.Enter("B2", c1)
	h.Enter("B2", c2)

	h.DropConn(c1)

	assert.Empty(t, h.ConnectionsIn("B1"))
	require.Len(t, h.ConnectionsIn("B2"), 1)
	assert.Equal(t, "c2", h.ConnectionsIn("B2")[0].ID())
}

func TestHub_Broadcast(t *testing.T) {
	h := NewHub()
	c1 := &stubConn{id: "c1"}
	c2 := &stubConn{id: "c2"}
	outsider := &stubConn{id: "c3"}
	h.Enter("B1", c1)
	h.Enter("B1", c2)
	h.Enter("B2", outsider)

	h.Broadcast("B1", board.Message{Event: "ping"})

	assert.Len(t, c1.frames, 1)
	assert.Len(t, c2.frames, 1)
	assert.Empty(t, outsider.frames)
}

func TestHub_BroadcastExcept(t *testing.T) {
	h := NewHub()
	sender := &stubConn{id: "c1"}
	other := &stubConn{id: "c2"}
	h.Enter("B1", sender)
	h.Enter("B1", other)

	h.BroadcastExcept("B1", sender, board.Message{Event: "ping"})

	assert.Empty(t, sender.frames)
	assert.Len(t, other.frames, 1)
}

func TestConn_SendBufferFull(t *testing.T) {
	c := newConn(nil, 1)

	require.NoError(t, c.Send(board.Message{Event: "a"}))
	assert.ErrorIs(t, c.Send(board.Message{Event: "b"}), ErrSendBufferFull)
}

func TestConn_SendAfterClose(t *testing.T) {
	c := newConn(nil, 1)
	c.close()

	assert.ErrorIs(t, c.Send(board.Message{Event: "a"}), ErrConnClosed)
}
