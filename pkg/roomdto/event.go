package roomdto

import "encoding/json"

// Event is the wire envelope for both directions of the channel. Data
// stays raw until a handler decodes it into its typed payload.
type Event struct {
	Name string          `json:"event"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Inbound event names.
const (
	EvtCreateRoom   = "create-room"
	EvtJoinRoom     = "join-room"
	EvtNewMessage   = "new-message"
	EvtStartGame    = "chess-start-game"
	EvtMove         = "chess-move"
	EvtUndo         = "chess-undo"
	EvtReset        = "chess-reset"
	EvtGameOver     = "chess-game-over"
	EvtGetRoomState = "get-room-state"
)

// Outbound event names.
const (
	EvtRoomCreated     = "room-created"
	EvtJoined          = "joined"
	EvtMessageHistory  = "message-history"
	EvtGameState       = "game-state"
	EvtUsersUpdate     = "users-update"
	EvtUserJoined      = "user-joined"
	EvtUserLeft        = "user-left"
	EvtMessageReceived = "message-received"
	EvtGameStarted     = "chess-game-started"
	EvtMoveReceived    = "chess-move-received"
	EvtUndoReceived    = "chess-undo-received"
	EvtResetReceived   = "chess-reset-received"
	EvtGameEnded       = "chess-game-ended"
	EvtError           = "error"
)
