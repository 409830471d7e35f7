package board

import (
	"sync"

	"github.com/dmitrijs2005/corkboard/internal/server/auth"
)

// connIndex is the connection→identity reverse index. Every connection held
// in any PresenceEntry has an entry here, updated in the same board-level
// critical section as the presence change. Pending connections are not
// indexed: they are not members of anything yet.
type connIndex struct {
	mu    sync.RWMutex
	conns map[string]*connInfo // conn id →
}

type connInfo struct {
	identity auth.Identity
	boards   map[string]struct{}
}

func newConnIndex() *connIndex {
	return &connIndex{conns: make(map[string]*connInfo)}
}

// bind records the connection's identity and adds the board to its joined
// set.
func (x *connIndex) bind(connID string, identity auth.Identity, boardID string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	info := x.conns[connID]
	if info == nil {
		info = &connInfo{identity: identity, boards: make(map[string]struct{})}
		x.conns[connID] = info
	}
	info.boards[boardID] = struct{}{}
}

// uid resolves a connection to its owning user, if known.
func (x *connIndex) uid(connID string) (string, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	info, ok := x.conns[connID]
	if !ok {
		return "", false
	}
	return info.identity.UID, true
}

// unbindBoard removes one board from the connection's joined set, dropping
// the whole mapping when no boards remain.
func (x *connIndex) unbindBoard(connID, boardID string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	info, ok := x.conns[connID]
	if !ok {
		return
	}
	delete(info.boards, boardID)
	if len(info.boards) == 0 {
		delete(x.conns, connID)
	}
}

// drop removes the connection entirely, returning its identity and the
// boards it had joined.
func (x *connIndex) drop(connID string) (auth.Identity, []string, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	info, ok := x.conns[connID]
	if !ok {
		return auth.Identity{}, nil, false
	}
	delete(x.conns, connID)
	boards := make([]string, 0, len(info.boards))
	for id := range info.boards {
		boards = append(boards, id)
	}
	return info.identity, boards, true
}
