package board

import (
	"context"
	"sort"
	"time"

	"github.com/dmitrijs2005/corkboard/internal/logging"
	"github.com/dmitrijs2005/corkboard/internal/server/auth"
	"github.com/dmitrijs2005/corkboard/internal/server/notes"
)

// NoteStore is the persistent note collection consumed by the protocol: the
// join path reads board snapshots, the mutation relay applies changes.
type NoteStore interface {
	Create(ctx context.Context, note *notes.Note) (*notes.Note, error)
	Edit(ctx context.Context, id string, text string, x, y float64, user notes.UserRef) error
	Move(ctx context.Context, id string, x, y float64) error
	Delete(ctx context.Context, id string) error
	ListByBoard(ctx context.Context, boardID string) ([]*notes.Note, error)
}

// Session is the board session state machine: it processes join, approve,
// reject, leave and disconnect events, keeps the presence and pending
// registries consistent, and emits the resulting notifications.
//
// All registry mutations for one board run under that board's lock; identity
// verification and note snapshots happen outside of it. Outbound sends are
// buffered enqueues and are always emitted before the handler returns.
type Session struct {
	rooms    Rooms
	verifier auth.Verifier
	store    NoteStore
	logger   logging.Logger
	registry *registry
	index    *connIndex
	demoWait time.Duration
}

func NewSession(rooms Rooms, verifier auth.Verifier, store NoteStore, l logging.Logger, demoWait time.Duration) *Session {
	return &Session{
		rooms:    rooms,
		verifier: verifier,
		store:    store,
		logger:   l.With("module", "session"),
		registry: newRegistry(),
		index:    newConnIndex(),
		demoWait: demoWait,
	}
}

// occupiedByOther reports whether the board's room holds a connection owned
// by a different user. A room connection with no resolved identity counts as
// occupied: with another join in flight it is safer to require approval than
// to admit a second occupant silently. Callers hold the board lock.
func (s *Session) occupiedByOther(boardID, uid string) bool {
	for _, c := range s.rooms.ConnectionsIn(boardID) {
		owner, ok := s.index.uid(c.ID())
		if !ok {
			return true
		}
		if owner != uid {
			return true
		}
	}
	return false
}

// Join handles a join_board event from connection c.
func (s *Session) Join(ctx context.Context, c Conn, req JoinBoardRequest) {

	if req.BoardID == "" {
		s.send(ctx, c, Message{Event: EventJoinDenied, Data: JoinDenied{Reason: ReasonMissingBoardID}})
		return
	}

	// Verify before taking the board lock: the verifier may be remote.
	identity, err := s.verifier.Verify(ctx, req.Token)
	if err != nil {
		s.logger.Warn(ctx, "join denied", "board", req.BoardID, "error", err.Error())
		s.send(ctx, c, Message{Event: EventJoinDenied, Data: JoinDenied{Reason: ReasonInvalidToken}})
		return
	}

	user := UserInfo{UID: identity.UID, Name: identity.Name, Email: identity.Email}

	var granted, firstUser bool
	var presenceConns []Conn
	var userList []UserInfo

	s.registry.withBoard(req.BoardID, func(bs *boardState) {
		if s.occupiedByOther(req.BoardID, identity.UID) {
			// A repeat join while pending replaces the parked connection.
			bs.pending[identity.UID] = &PendingEntry{Name: identity.Name, Email: identity.Email, Conn: c}
			for _, entry := range bs.presence {
				presenceConns = append(presenceConns, entry.connections()...)
			}
			return
		}

		granted = true
		firstUser = len(bs.presence) == 0

		s.rooms.Enter(req.BoardID, c)

		entry := bs.presence[identity.UID]
		if entry == nil {
			entry = newPresenceEntry(identity.Name, identity.Email)
			bs.presence[identity.UID] = entry
		}
		entry.addConn(c)
		s.index.bind(c.ID(), *identity, req.BoardID)

		userList = usersOf(bs)
	})

	if !granted {
		s.send(ctx, c, Message{Event: EventWaitingForApproval, Data: WaitingForApproval{BoardID: req.BoardID}})

		notice := Message{Event: EventJoinRequest, Data: JoinRequestNotice{BoardID: req.BoardID, ConnID: c.ID(), User: user}}
		// Room broadcast plus a direct send to every tracked presence
		// connection: the occupant must see the request even if the room
		// fan-out misses a member.
		s.rooms.Broadcast(req.BoardID, notice)
		for _, pc := range presenceConns {
			s.send(ctx, pc, notice)
		}

		s.logger.Info(ctx, "approval needed", "board", req.BoardID, "uid", identity.UID)
		return
	}

	s.send(ctx, c, Message{Event: EventJoinGranted, Data: JoinGranted{BoardID: req.BoardID}})
	s.send(ctx, c, Message{Event: EventLoadExistingNotes, Data: s.snapshot(ctx, req.BoardID)})

	if !firstUser {
		s.send(ctx, c, Message{Event: EventDemoWait, Data: DemoWait{Ms: s.demoWait.Milliseconds()}})
		s.rooms.BroadcastExcept(req.BoardID, c, Message{Event: EventUserJoined, Data: UserJoined{UID: user.UID, Name: user.Name, Email: user.Email}})
	}
	s.rooms.Broadcast(req.BoardID, Message{Event: EventUserList, Data: UserList{BoardID: req.BoardID, Users: userList}})

	s.logger.Info(ctx, "join granted", "board", req.BoardID, "uid", identity.UID)
}

// Approve handles approve_user from a connection already granted on the
// board. Approving an already-decided or vanished request is a no-op.
func (s *Session) Approve(ctx context.Context, c Conn, req ApproveUserRequest) {

	var entry *PendingEntry

	s.registry.withBoard(req.BoardID, func(bs *boardState) {
		e, ok := bs.pending[req.UID]
		if !ok {
			return
		}
		delete(bs.pending, req.UID)
		entry = e

		s.rooms.Enter(req.BoardID, e.Conn)

		pe := bs.presence[req.UID]
		if pe == nil {
			pe = newPresenceEntry(e.Name, e.Email)
			bs.presence[req.UID] = pe
		}
		pe.addConn(e.Conn)
		s.index.bind(e.Conn.ID(), auth.Identity{UID: req.UID, Name: e.Name, Email: e.Email}, req.BoardID)
	})

	if entry == nil {
		s.logger.Warn(ctx, "approval failed: no pending join", "board", req.BoardID, "uid", req.UID)
		return
	}

	s.send(ctx, entry.Conn, Message{Event: EventJoinGranted, Data: JoinGranted{BoardID: req.BoardID}})
	s.send(ctx, entry.Conn, Message{Event: EventLoadExistingNotes, Data: s.snapshot(ctx, req.BoardID)})

	user := UserInfo{UID: req.UID, Name: entry.Name, Email: entry.Email}
	s.rooms.Broadcast(req.BoardID, Message{Event: EventJoinApprovedBroadcast, Data: JoinApprovedBroadcast{BoardID: req.BoardID, User: user}})

	s.logger.Info(ctx, "join approved", "board", req.BoardID, "uid", req.UID)
}

// Reject handles reject_user. Only the rejected connection is notified; its
// transport membership was never established, so there is nothing to clean
// up beyond the pending entry.
func (s *Session) Reject(ctx context.Context, c Conn, req RejectUserRequest) {

	var entry *PendingEntry

	s.registry.withBoard(req.BoardID, func(bs *boardState) {
		e, ok := bs.pending[req.UID]
		if !ok {
			return
		}
		delete(bs.pending, req.UID)
		entry = e
	})

	if entry == nil {
		s.logger.Warn(ctx, "rejection failed: no pending join", "board", req.BoardID, "uid", req.UID)
		return
	}

	s.send(ctx, entry.Conn, Message{Event: EventJoinRejected, Data: JoinRejected{BoardID: req.BoardID}})
	s.logger.Info(ctx, "join rejected", "board", req.BoardID, "uid", req.UID)
}

// Leave handles an explicit leave_board.
func (s *Session) Leave(ctx context.Context, c Conn, req LeaveBoardRequest) {

	s.rooms.Leave(req.BoardID, c)

	var departed []string
	var userList []UserInfo
	s.registry.withBoard(req.BoardID, func(bs *boardState) {
		departed = dropConnFromPresence(bs, c.ID())
		s.index.unbindBoard(c.ID(), req.BoardID)
		userList = usersOf(bs)
	})

	for _, uid := range departed {
		s.rooms.Broadcast(req.BoardID, Message{Event: EventUserLeft, Data: UserLeft{UID: uid}})
	}
	s.rooms.Broadcast(req.BoardID, Message{Event: EventUserList, Data: UserList{BoardID: req.BoardID, Users: userList}})

	s.logger.Info(ctx, "left board", "board", req.BoardID, "conn", c.ID())
}

// Disconnect handles a transport-initiated disconnect. The transport has
// already removed the connection from its rooms; this cleans the presence
// registry for every board the connection had joined and purges any pending
// join it still had parked anywhere.
func (s *Session) Disconnect(ctx context.Context, c Conn) {

	identity, boards, known := s.index.drop(c.ID())

	for _, boardID := range boards {
		var departed []string
		var userList []UserInfo
		s.registry.withBoard(boardID, func(bs *boardState) {
			departed = dropConnFromPresence(bs, c.ID())
			userList = usersOf(bs)
		})
		for _, uid := range departed {
			s.rooms.Broadcast(boardID, Message{Event: EventUserLeft, Data: UserLeft{UID: uid}})
		}
		s.rooms.Broadcast(boardID, Message{Event: EventUserList, Data: UserList{BoardID: boardID, Users: userList}})
	}

	// Purge pending entries matching either this exact connection or, when
	// the identity is known, its uid — a user may have reconnected before
	// the stale pending entry was cleared.
	uid := ""
	if known {
		uid = identity.UID
	}
	for _, boardID := range s.registry.boardIDs() {
		s.registry.withBoard(boardID, func(bs *boardState) {
			for pendingUID, e := range bs.pending {
				if e.Conn.ID() == c.ID() || (uid != "" && pendingUID == uid) {
					delete(bs.pending, pendingUID)
				}
			}
		})
	}

	s.logger.Info(ctx, "disconnected", "conn", c.ID(), "boards", len(boards))
}

// OnlineUsers answers get_online_users with the board's current user list,
// sent to the requester only.
func (s *Session) OnlineUsers(ctx context.Context, c Conn, req OnlineUsersRequest) {

	var userList []UserInfo
	s.registry.withBoard(req.BoardID, func(bs *boardState) {
		userList = usersOf(bs)
	})

	s.send(ctx, c, Message{Event: EventOnlineUsers, Data: userList})
}

// dropConnFromPresence discards the connection from every presence entry on
// the board, deleting entries whose connection set drains. Returns the uids
// that went offline. Callers hold the board lock.
func dropConnFromPresence(bs *boardState, connID string) (departed []string) {
	for uid, entry := range bs.presence {
		if _, held := entry.conns[connID]; !held {
			continue
		}
		if entry.removeConn(connID) {
			delete(bs.presence, uid)
			departed = append(departed, uid)
		}
	}
	return departed
}

// snapshot fetches the board's notes outside any presence lock. A store
// failure degrades to an empty snapshot; the client can re-request over REST.
func (s *Session) snapshot(ctx context.Context, boardID string) LoadExistingNotes {
	list, err := s.store.ListByBoard(ctx, boardID)
	if err != nil {
		s.logger.Error(ctx, "notes snapshot failed", "board", boardID, "error", err.Error())
		list = []*notes.Note{}
	}
	if list == nil {
		list = []*notes.Note{}
	}
	return LoadExistingNotes{BoardID: boardID, Notes: list}
}

func (s *Session) send(ctx context.Context, c Conn, msg Message) {
	if err := c.Send(msg); err != nil {
		s.logger.Debug(ctx, "send failed", "conn", c.ID(), "event", msg.Event, "error", err.Error())
	}
}

// usersOf lists the board's online users in stable uid order. Callers hold
// the board lock.
func usersOf(bs *boardState) []UserInfo {
	users := make([]UserInfo, 0, len(bs.presence))
	for uid, entry := range bs.presence {
		users = append(users, UserInfo{UID: uid, Name: entry.Name, Email: entry.Email})
	}
	sort.Slice(users, func(i, j int) bool { return users[i].UID < users[j].UID })
	return users
}
