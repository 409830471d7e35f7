// Package board implements the session and presence protocol for shared
// note boards: who is on a board, who is waiting at the approval gate, and
// which connections receive each note mutation.
package board

// Message is one outbound socket frame: a named event plus its payload.
type Message struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Conn is one live transport session. The transport layer owns its lifetime;
// the protocol only stores and looks up handles.
//
// Send must not block on network I/O: implementations enqueue the frame and
// report a full buffer or closed connection as an error.
type Conn interface {
	ID() string
	Send(msg Message) error
}

// Rooms is the transport's room membership index — the ground truth of which
// connections are grouped under a board — plus its broadcast fan-out.
type Rooms interface {
	Enter(boardID string, c Conn)
	Leave(boardID string, c Conn)
	ConnectionsIn(boardID string) []Conn
	Broadcast(boardID string, msg Message)
	BroadcastExcept(boardID string, except Conn, msg Message)
}
