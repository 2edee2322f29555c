package room

import "time"

// Status represents the game lifecycle state inside a room.
type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

// ErrorCode classifies domain failures for the error event surface.
type ErrorCode string

const (
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeInvalidState ErrorCode = "INVALID_STATE"
	CodeEmptyState   ErrorCode = "EMPTY_STATE"
)

// Error is a typed domain error. Handlers match on the sentinel value;
// the dispatcher maps Code to a user-facing reason for the requester.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrInvalidArgs   = &Error{Code: CodeInvalidInput, Message: "invalid arguments"}
	ErrRoomNotFound  = &Error{Code: CodeNotFound, Message: "room does not exist"}
	ErrNoSession     = &Error{Code: CodeNotFound, Message: "connection has no session"}
	ErrBadEncoding   = &Error{Code: CodeInvalidInput, Message: "invalid position encoding"}
	ErrGameNotActive = &Error{Code: CodeInvalidState, Message: "game is not active"}
	ErrNotYourTurn   = &Error{Code: CodeForbidden, Message: "not your turn"}
	ErrUndoNotAuthor = &Error{Code: CodeForbidden, Message: "only your own last move can be undone"}
	ErrNothingToUndo = &Error{Code: CodeEmptyState, Message: "no moves to undo"}
)

// Session binds a live connection to a display name within exactly one
// room. Owned by the store's registry, referenced by room membership.
type Session struct {
	ConnID   string `json:"id"`
	Username string `json:"username"`
	RoomCode string `json:"room"`
}

// Message is an immutable chat entry; ordering is insertion order.
type Message struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Text      string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Move records one applied move together with the encoding that
// resulted from it. The pre-move encoding is never stored.
type Move struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Promotion string    `json:"promotion,omitempty"`
	FEN       string    `json:"fen"`
	SAN       string    `json:"san"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
}
