package ws

import (
	"sync"

	"github.com/dmitrijs2005/corkboard/internal/server/board"
)

// Hub is the transport-level room index: which live connections are grouped
// under which board. It implements board.Rooms.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[string]board.Conn
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[string]board.Conn)}
}

func (h *Hub) Enter(boardID string, c board.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[boardID]
	if !ok {
		room = make(map[string]board.Conn)
		h.rooms[boardID] = room
	}
	room[c.ID()] = c
}

func (h *Hub) Leave(boardID string, c board.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(boardID, c.ID())
}

// DropConn removes a connection from every room it entered. Called once
// when the underlying socket closes.
func (h *Hub) DropConn(c board.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for boardID := range h.rooms {
		h.removeLocked(boardID, c.ID())
	}
}

func (h *Hub) removeLocked(boardID, connID string) {
	room, ok := h.rooms[boardID]
	if !ok {
		return
	}
	delete(room, connID)
	if len(room) == 0 {
		delete(h.rooms, boardID)
	}
}

func (h *Hub) ConnectionsIn(boardID string) []board.Conn {
	h.mu.RLock()
	defer h.mu.RUnlock()
	room := h.rooms[boardID]
	conns := make([]board.Conn, 0, len(room))
	for _, c := range room {
		conns = append(conns, c)
	}
	return conns
}

func (h *Hub) Broadcast(boardID string, msg board.Message) {
	// Sends are queue writes, cheap enough to fan out outside the lock.
	for _, c := range h.ConnectionsIn(boardID) {
		_ = c.Send(msg)
	}
}

func (h *Hub) BroadcastExcept(boardID string, except board.Conn, msg board.Message) {
	for _, c := range h.ConnectionsIn(boardID) {
		if c.ID() == except.ID() {
			continue
		}
		_ = c.Send(msg)
	}
}
