package board

// PendingEntry is a join request parked at the approval gate. At most one
// exists per (board, uid); a repeat join while pending overwrites the parked
// connection. Removed on approval, rejection, or disconnect of that
// connection.
type PendingEntry struct {
	Name  string
	Email string
	Conn  Conn
}
