package board

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/corkboard/internal/common"
	"github.com/dmitrijs2005/corkboard/internal/logging"
	"github.com/dmitrijs2005/corkboard/internal/server/auth"
	"github.com/dmitrijs2005/corkboard/internal/server/notes"
)

// Relay validates and applies note mutations, then fans the result out to
// the board's room. Every mutation re-proves its credential: a stale but
// still-connected client must not keep writing on the strength of an old
// join.
type Relay struct {
	rooms       Rooms
	verifier    auth.Verifier
	store       NoteStore
	logger      logging.Logger
	echoCreates bool
}

// NewRelay builds a relay. echoCreates controls whether new_note broadcasts
// include the originating connection; edit, move and delete always reflect
// the server-confirmed state back to the sender.
func NewRelay(rooms Rooms, verifier auth.Verifier, store NoteStore, l logging.Logger, echoCreates bool) *Relay {
	return &Relay{
		rooms:       rooms,
		verifier:    verifier,
		store:       store,
		logger:      l.With("module", "relay"),
		echoCreates: echoCreates,
	}
}

// authorize re-verifies the credential carried in a mutation event. On
// failure the sender gets Unauthorized and the store is never touched.
func (r *Relay) authorize(ctx context.Context, c Conn, credential string) bool {
	if _, err := r.verifier.Verify(ctx, credential); err != nil {
		r.logger.Warn(ctx, "mutation rejected", "conn", c.ID(), "error", err.Error())
		r.reply(ctx, c, Message{Event: EventUnauthorized, Data: Unauthorized{Message: ReasonInvalidToken}})
		return false
	}
	return true
}

func (r *Relay) CreateNote(ctx context.Context, c Conn, req CreateNoteRequest) {

	if !r.authorize(ctx, c, req.Token) {
		return
	}

	note := &notes.Note{
		ID:      req.ID,
		BoardID: req.BoardID,
		Text:    req.Text,
		X:       req.X,
		Y:       req.Y,
		Kind:    req.Kind,
		User:    req.User,
	}

	note, err := r.store.Create(ctx, note)
	if err != nil {
		r.logger.Error(ctx, "create note failed", "board", req.BoardID, "error", err.Error())
		r.reply(ctx, c, Message{Event: EventError, Data: ErrorReply{Message: ReasonInternalError}})
		return
	}

	msg := Message{Event: EventNewNote, Data: note}
	if r.echoCreates {
		r.rooms.Broadcast(note.BoardID, msg)
	} else {
		r.rooms.BroadcastExcept(note.BoardID, c, msg)
	}
}

func (r *Relay) EditNote(ctx context.Context, c Conn, req EditNoteRequest) {

	if !r.authorize(ctx, c, req.Token) {
		return
	}

	err := r.store.Edit(ctx, req.ID, req.Text, req.X, req.Y, req.User)
	if errors.Is(err, common.ErrorNotFound) {
		// Note vanished under a concurrent delete; nothing to confirm.
		r.logger.Debug(ctx, "stale edit ignored", "note", req.ID)
		return
	}
	if err != nil {
		r.logger.Error(ctx, "edit note failed", "note", req.ID, "error", err.Error())
		r.reply(ctx, c, Message{Event: EventError, Data: ErrorReply{Message: ReasonInternalError}})
		return
	}

	r.rooms.Broadcast(req.BoardID, Message{Event: EventNoteEdited, Data: NoteEdited{
		ID: req.ID, BoardID: req.BoardID, Text: req.Text, X: req.X, Y: req.Y, User: req.User,
	}})
}

func (r *Relay) MoveNote(ctx context.Context, c Conn, req MoveNoteRequest) {

	if !r.authorize(ctx, c, req.Token) {
		return
	}

	err := r.store.Move(ctx, req.ID, req.X, req.Y)
	if errors.Is(err, common.ErrorNotFound) {
		r.logger.Debug(ctx, "stale move ignored", "note", req.ID)
		return
	}
	if err != nil {
		r.logger.Error(ctx, "move note failed", "note", req.ID, "error", err.Error())
		r.reply(ctx, c, Message{Event: EventError, Data: ErrorReply{Message: ReasonInternalError}})
		return
	}

	r.rooms.Broadcast(req.BoardID, Message{Event: EventNoteMoved, Data: NoteMoved{
		ID: req.ID, BoardID: req.BoardID, X: req.X, Y: req.Y,
	}})
}

func (r *Relay) DeleteNote(ctx context.Context, c Conn, req DeleteNoteRequest) {

	if !r.authorize(ctx, c, req.Token) {
		return
	}

	err := r.store.Delete(ctx, req.ID)
	if errors.Is(err, common.ErrorNotFound) {
		r.logger.Debug(ctx, "stale delete ignored", "note", req.ID)
		return
	}
	if err != nil {
		r.logger.Error(ctx, "delete note failed", "note", req.ID, "error", err.Error())
		r.reply(ctx, c, Message{Event: EventError, Data: ErrorReply{Message: ReasonInternalError}})
		return
	}

	r.rooms.Broadcast(req.BoardID, Message{Event: EventNoteDeleted, Data: NoteDeleted{ID: req.ID}})
}

func (r *Relay) reply(ctx context.Context, c Conn, msg Message) {
	if err := c.Send(msg); err != nil {
		r.logger.Debug(ctx, "send failed", "conn", c.ID(), "event", msg.Event, "error", err.Error())
	}
}
