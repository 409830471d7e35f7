package board

import "sync"

// boardState bundles one board's presence and pending maps behind a single
// mutex, so a check-then-act sequence (occupancy probe, then registration)
// is atomic with respect to other events targeting the same board.
type boardState struct {
	mu       sync.Mutex
	gone     bool
	presence map[string]*PresenceEntry // uid →
	pending  map[string]*PendingEntry  // uid →
}

func newBoardState() *boardState {
	return &boardState{
		presence: make(map[string]*PresenceEntry),
		pending:  make(map[string]*PendingEntry),
	}
}

// registry is a concurrency-safe keyed store of board states. The outer
// mutex only guards the map itself; each board's mutations run under that
// board's own lock, so distinct boards never contend.
type registry struct {
	mu     sync.Mutex
	boards map[string]*boardState
}

func newRegistry() *registry {
	return &registry{boards: make(map[string]*boardState)}
}

// withBoard runs fn under the board's lock, creating the state on first use
// and forgetting it once fn leaves both maps empty. A state observed after
// its removal is marked gone, which forces the caller onto a fresh one
// instead of mutating an orphan.
func (r *registry) withBoard(boardID string, fn func(*boardState)) {
	for {
		r.mu.Lock()
		bs := r.boards[boardID]
		if bs == nil {
			bs = newBoardState()
			r.boards[boardID] = bs
		}
		r.mu.Unlock()

		bs.mu.Lock()
		if bs.gone {
			bs.mu.Unlock()
			continue
		}

		fn(bs)

		empty := len(bs.presence) == 0 && len(bs.pending) == 0
		if empty {
			bs.gone = true
		}
		bs.mu.Unlock()

		if empty {
			r.mu.Lock()
			if r.boards[boardID] == bs {
				delete(r.boards, boardID)
			}
			r.mu.Unlock()
		}
		return
	}
}

// boardIDs snapshots the currently tracked boards. Used by disconnect to
// purge pending entries, which live on boards the index does not know the
// connection by.
func (r *registry) boardIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.boards))
	for id := range r.boards {
		ids = append(ids, id)
	}
	return ids
}
