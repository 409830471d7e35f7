// Package notes persists the sticky notes that make up a board. Boards have
// no row of their own: a board is the set of notes tagged with its id plus
// whatever live presence the session layer tracks.
package notes

import "time"

// UserRef is the note author as exposed on the wire. Email is deliberately
// absent: snapshots and REST reads never leak author emails.
type UserRef struct {
	UID  string `json:"uid"`
	Name string `json:"name"`
}

// Note is one sticky note on a board.
type Note struct {
	ID        string    `json:"id"`
	BoardID   string    `json:"boardId"`
	Text      string    `json:"text"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Kind      string    `json:"type"`
	User      UserRef   `json:"user"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// DefaultKind is assigned when a create event carries no note type.
const DefaultKind = "note"
