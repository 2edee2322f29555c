package roomdto

import "time"

// Inbound payloads. create-room, new-message, and get-room-state carry
// a bare JSON string instead of an object.

type JoinRoomRequest struct {
	Username string `json:"username"`
	RoomCode string `json:"roomCode"`
}

type StartGameRequest struct {
	WhitePlayer string `json:"whitePlayer"`
	BlackPlayer string `json:"blackPlayer"`
}

type MoveRequest struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
	FEN       string `json:"fen"`
	SAN       string `json:"san"`
}

type GameOverRequest struct {
	Winner string `json:"winner"`
}

// Outbound payloads.

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Room     string `json:"room"`
}

type Message struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// MoveRecord is a stored move as it appears in game state snapshots.
type MoveRecord struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Promotion string    `json:"promotion,omitempty"`
	FEN       string    `json:"fen"`
	SAN       string    `json:"san"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
}

// MoveReceived is broadcast after a successful move. Turn is the side
// to move derived from the resulting encoding.
type MoveReceived struct {
	MoveRecord
	Turn string `json:"turn"`
}

type GameState struct {
	Status      string       `json:"status"`
	FEN         string       `json:"fen"`
	Turn        string       `json:"turn"`
	Moves       []MoveRecord `json:"moves"`
	WhitePlayer string       `json:"whitePlayer,omitempty"`
	BlackPlayer string       `json:"blackPlayer,omitempty"`
	Winner      string       `json:"winner,omitempty"`
}

type GameStarted struct {
	WhitePlayer string `json:"whitePlayer"`
	BlackPlayer string `json:"blackPlayer"`
	FEN         string `json:"fen"`
	Turn        string `json:"turn"`
}

type UndoReceived struct {
	FEN          string       `json:"fen"`
	Turn         string       `json:"turn"`
	Moves        []MoveRecord `json:"moves"`
	RemovedCount int          `json:"removedCount"`
}

type ResetReceived struct {
	FEN  string `json:"fen"`
	Turn string `json:"turn"`
}

type GameEnded struct {
	Winner string `json:"winner"`
	FEN    string `json:"fen"`
	Turn   string `json:"turn"`
}
