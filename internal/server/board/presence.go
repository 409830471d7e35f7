package board

// PresenceEntry tracks one user's live connections on one board. An entry
// exists iff the user has at least one connection registered in the board's
// room; it is removed the instant its connection set drains.
type PresenceEntry struct {
	Name  string
	Email string
	conns map[string]Conn // keyed by connection id
}

func newPresenceEntry(name, email string) *PresenceEntry {
	return &PresenceEntry{Name: name, Email: email, conns: make(map[string]Conn)}
}

func (e *PresenceEntry) addConn(c Conn) {
	e.conns[c.ID()] = c
}

// removeConn discards the connection and reports whether the entry drained.
func (e *PresenceEntry) removeConn(connID string) bool {
	delete(e.conns, connID)
	return len(e.conns) == 0
}

func (e *PresenceEntry) connections() []Conn {
	out := make([]Conn, 0, len(e.conns))
	for _, c := range e.conns {
		out = append(out, c)
	}
	return out
}
