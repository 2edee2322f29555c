package hub

import (
	"github.com/kapu/chess-rooms-go/internal/room"
	"github.com/kapu/chess-rooms-go/pkg/roomdto"
)

func toUsers(sessions []*room.Session) []roomdto.User {
	out := make([]roomdto.User, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, roomdto.User{ID: s.ConnID, Username: s.Username, Room: s.RoomCode})
	}
	return out
}

func toMessage(m room.Message) roomdto.Message {
	return roomdto.Message{
		ID:        m.ID,
		Username:  m.Username,
		Message:   m.Text,
		Timestamp: m.Timestamp,
	}
}

func toMessages(msgs []room.Message) []roomdto.Message {
	out := make([]roomdto.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessage(m))
	}
	return out
}

func toMoveRecord(m room.Move) roomdto.MoveRecord {
	return roomdto.MoveRecord{
		From:      m.From,
		To:        m.To,
		Promotion: m.Promotion,
		FEN:       m.FEN,
		SAN:       m.SAN,
		Author:    m.Author,
		Timestamp: m.Timestamp,
	}
}

func toMoveRecords(moves []room.Move) []roomdto.MoveRecord {
	out := make([]roomdto.MoveRecord, 0, len(moves))
	for _, m := range moves {
		out = append(out, toMoveRecord(m))
	}
	return out
}

func toGameState(g *room.GameState) roomdto.GameState {
	return roomdto.GameState{
		Status:      string(g.Status),
		FEN:         g.FEN,
		Turn:        string(g.Turn()),
		Moves:       toMoveRecords(g.Moves),
		WhitePlayer: g.WhitePlayer,
		BlackPlayer: g.BlackPlayer,
		Winner:      g.Winner,
	}
}
