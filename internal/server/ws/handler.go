package ws

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/dmitrijs2005/corkboard/internal/logging"
	"github.com/dmitrijs2005/corkboard/internal/server/board"
)

// frame is one inbound socket message. The payload stays raw until the
// event name selects the concrete request type.
type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Handler upgrades HTTP requests to websocket sessions and runs the read
// loop that feeds the board protocol.
type Handler struct {
	hub            *Hub
	session        *board.Session
	relay          *board.Relay
	logger         logging.Logger
	upgrader       websocket.Upgrader
	sendBufferSize int
}

func NewHandler(hub *Hub, session *board.Session, relay *board.Relay, l logging.Logger, allowedOrigin string, sendBufferSize int) *Handler {
	return &Handler{
		hub:     hub,
		session: session,
		relay:   relay,
		logger:  l.With("module", "ws"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return allowedOrigin == "*" || r.Header.Get("Origin") == allowedOrigin
			},
		},
		sendBufferSize: sendBufferSize,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sock, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn(ctx, "upgrade failed", "error", err.Error())
		return
	}

	c := newConn(sock, h.sendBufferSize)
	go c.writePump()

	h.logger.Info(ctx, "connected", "conn", c.ID())

	defer func() {
		// Room membership goes first so the departure broadcasts below do
		// not target the dead socket.
		h.hub.DropConn(c)
		h.session.Disconnect(ctx, c)
		c.close()
		h.logger.Info(ctx, "disconnected", "conn", c.ID())
	}()

	for {
		_, data, err := sock.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn(ctx, "read failed", "conn", c.ID(), "error", err.Error())
			}
			return
		}

		var f frame
		if err := json.Unmarshal(data, &f); err != nil {
			h.logger.Warn(ctx, "malformed frame", "conn", c.ID(), "error", err.Error())
			h.sendError(c, "malformed frame")
			continue
		}

		h.dispatch(r, c, f)
	}
}

func (h *Handler) dispatch(r *http.Request, c *Conn, f frame) {
	ctx := r.Context()

	switch f.Event {
	case board.EventJoinBoard:
		var req board.JoinBoardRequest
		// Join skips validation here: the protocol answers a missing board
		// id with its own join_denied reason.
		if !h.decode(c, f.Data, &req) {
			return
		}
		h.session.Join(ctx, c, req)

	case board.EventApproveUser:
		var req board.ApproveUserRequest
		if !h.decodeValid(c, f.Data, &req) {
			return
		}
		h.session.Approve(ctx, c, req)

	case board.EventRejectUser:
		var req board.RejectUserRequest
		if !h.decodeValid(c, f.Data, &req) {
			return
		}
		h.session.Reject(ctx, c, req)

	case board.EventLeaveBoard:
		var req board.LeaveBoardRequest
		if !h.decodeValid(c, f.Data, &req) {
			return
		}
		h.session.Leave(ctx, c, req)

	case board.EventGetOnlineUsers:
		var req board.OnlineUsersRequest
		if !h.decodeValid(c, f.Data, &req) {
			return
		}
		h.session.OnlineUsers(ctx, c, req)

	case board.EventCreateNote:
		var req board.CreateNoteRequest
		if !h.decodeValid(c, f.Data, &req) {
			return
		}
		h.relay.CreateNote(ctx, c, req)

	case board.EventEditNote:
		var req board.EditNoteRequest
		if !h.decodeValid(c, f.Data, &req) {
			return
		}
		h.relay.EditNote(ctx, c, req)

	case board.EventMoveNote:
		var req board.MoveNoteRequest
		if !h.decodeValid(c, f.Data, &req) {
			return
		}
		h.relay.MoveNote(ctx, c, req)

	case board.EventDeleteNote:
		var req board.DeleteNoteRequest
		if !h.decodeValid(c, f.Data, &req) {
			return
		}
		h.relay.DeleteNote(ctx, c, req)

	default:
		h.logger.Warn(ctx, "unknown event", "conn", c.ID(), "event", f.Event)
		h.sendError(c, "unknown event")
	}
}

func (h *Handler) decode(c *Conn, data json.RawMessage, dst any) bool {
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}
	if err := json.Unmarshal(data, dst); err != nil {
		h.sendError(c, "invalid payload")
		return false
	}
	return true
}

func (h *Handler) decodeValid(c *Conn, data json.RawMessage, dst interface{ Validate() error }) bool {
	if !h.decode(c, data, dst) {
		return false
	}
	if err := dst.Validate(); err != nil {
		h.sendError(c, err.Error())
		return false
	}
	return true
}

func (h *Handler) sendError(c *Conn, message string) {
	_ = c.Send(board.Message{Event: board.EventError, Data: board.ErrorReply{Message: message}})
}
