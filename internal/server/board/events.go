package board

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/dmitrijs2005/corkboard/internal/server/notes"
)

// Inbound event names.
const (
	EventJoinBoard      = "join_board"
	EventApproveUser    = "approve_user"
	EventRejectUser     = "reject_user"
	EventLeaveBoard     = "leave_board"
	EventGetOnlineUsers = "get_online_users"
	EventCreateNote     = "create_note"
	EventEditNote       = "edit_note"
	EventMoveNote       = "move_note"
	EventDeleteNote     = "delete_note"
)

// Outbound event names.
const (
	EventJoinDenied            = "join_denied"
	EventWaitingForApproval    = "waiting_for_approval"
	EventJoinRequest           = "join_request"
	EventJoinGranted           = "join_granted"
	EventLoadExistingNotes     = "load_existing_notes"
	EventDemoWait              = "demo_wait"
	EventUserJoined            = "user_joined"
	EventJoinApprovedBroadcast = "join_approved_broadcast"
	EventJoinRejected          = "join_rejected"
	EventUserLeft              = "user_left"
	EventUserList              = "user_list"
	EventOnlineUsers           = "online_users"
	EventUnauthorized          = "Unauthorized"
	EventError                 = "error"
	EventNewNote               = "new_note"
	EventNoteEdited            = "note_edited"
	EventNoteMoved             = "note_moved"
	EventNoteDeleted           = "note_deleted"
)

// Denial reasons, verbatim from the client contract.
const (
	ReasonMissingBoardID = "Missing boardId"
	ReasonInvalidToken   = "Invalid or missing token"
	ReasonInternalError  = "Internal server error"
)

// ---- inbound payloads ----

type JoinBoardRequest struct {
	BoardID string `json:"boardId"`
	Token   string `json:"token"`
}

// Validate intentionally checks only the board id: credential validity is the
// verifier's call, and the protocol answers each failure with its own denial
// reason.
func (r JoinBoardRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BoardID, validation.Required),
	)
}

type ApproveUserRequest struct {
	BoardID string `json:"boardId"`
	UID     string `json:"uid"`
}

func (r ApproveUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BoardID, validation.Required),
		validation.Field(&r.UID, validation.Required),
	)
}

type RejectUserRequest struct {
	BoardID string `json:"boardId"`
	UID     string `json:"uid"`
}

func (r RejectUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BoardID, validation.Required),
		validation.Field(&r.UID, validation.Required),
	)
}

type LeaveBoardRequest struct {
	BoardID string `json:"boardId"`
}

func (r LeaveBoardRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BoardID, validation.Required),
	)
}

type OnlineUsersRequest struct {
	BoardID string `json:"boardId"`
}

func (r OnlineUsersRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BoardID, validation.Required),
	)
}

type CreateNoteRequest struct {
	ID      string        `json:"id"`
	BoardID string        `json:"boardId"`
	Text    string        `json:"text"`
	X       float64       `json:"x"`
	Y       float64       `json:"y"`
	Kind    string        `json:"type"`
	User    notes.UserRef `json:"user"`
	Token   string        `json:"token"`
}

func (r CreateNoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BoardID, validation.Required),
	)
}

type EditNoteRequest struct {
	ID      string        `json:"id"`
	BoardID string        `json:"boardId"`
	Text    string        `json:"text"`
	X       float64       `json:"x"`
	Y       float64       `json:"y"`
	User    notes.UserRef `json:"user"`
	Token   string        `json:"token"`
}

func (r EditNoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.BoardID, validation.Required),
	)
}

type MoveNoteRequest struct {
	ID      string  `json:"id"`
	BoardID string  `json:"boardId"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Token   string  `json:"token"`
}

func (r MoveNoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.BoardID, validation.Required),
	)
}

type DeleteNoteRequest struct {
	ID      string `json:"id"`
	BoardID string `json:"boardId"`
	Token   string `json:"token"`
}

func (r DeleteNoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.BoardID, validation.Required),
	)
}

// ---- outbound payloads ----

type UserInfo struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type JoinDenied struct {
	Reason string `json:"reason"`
}

type WaitingForApproval struct {
	BoardID string `json:"boardId"`
}

type JoinRequestNotice struct {
	BoardID string   `json:"boardId"`
	ConnID  string   `json:"sid"`
	User    UserInfo `json:"user"`
}

type JoinGranted struct {
	BoardID string `json:"boardId"`
}

type LoadExistingNotes struct {
	BoardID string        `json:"boardId"`
	Notes   []*notes.Note `json:"notes"`
}

type DemoWait struct {
	Ms int64 `json:"ms"`
}

type JoinApprovedBroadcast struct {
	BoardID string   `json:"boardId"`
	User    UserInfo `json:"user"`
}

type JoinRejected struct {
	BoardID string `json:"boardId"`
}

type UserJoined struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UserLeft struct {
	UID string `json:"uid"`
}

type UserList struct {
	BoardID string     `json:"boardId"`
	Users   []UserInfo `json:"users"`
}

type Unauthorized struct {
	Message string `json:"message"`
}

type ErrorReply struct {
	Message string `json:"message"`
}

type NoteEdited struct {
	ID      string        `json:"id"`
	BoardID string        `json:"boardId"`
	Text    string        `json:"text"`
	X       float64       `json:"x"`
	Y       float64       `json:"y"`
	User    notes.UserRef `json:"user"`
}

type NoteMoved struct {
	ID      string  `json:"id"`
	BoardID string  `json:"boardId"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

type NoteDeleted struct {
	ID string `json:"id"`
}
