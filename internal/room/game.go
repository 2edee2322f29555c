package room

import (
	"strings"
	"time"

	"github.com/kapu/chess-rooms-go/internal/fen"
)

// GameState is the per-room board state. The side to move is never
// stored; it is always recomputed from the current encoding, which in
// turn always equals the last move's resulting encoding (or the
// initial position when the move list is empty).
type GameState struct {
	Status      Status
	FEN         string
	Moves       []Move
	WhitePlayer string
	BlackPlayer string
	Winner      string
}

func NewGameState() *GameState {
	return &GameState{Status: StatusWaiting, FEN: fen.Initial}
}

// Turn derives the side to move from the current encoding.
func (g *GameState) Turn() fen.Color {
	c, err := fen.SideToMove(g.FEN)
	if err != nil {
		return fen.White
	}
	return c
}

// Start begins a game from any status: players assigned, move list
// cleared, board reset to the initial arrangement.
func (g *GameState) Start(whitePlayer, blackPlayer string) {
	g.Status = StatusPlaying
	g.WhitePlayer = strings.TrimSpace(whitePlayer)
	g.BlackPlayer = strings.TrimSpace(blackPlayer)
	g.Moves = nil
	g.FEN = fen.Initial
	g.Winner = ""
}

// MoveInput carries a client-submitted move. The resulting encoding
// and notation are trusted; only turn ownership is enforced here.
type MoveInput struct {
	From      string
	To        string
	Promotion string
	FEN       string
	SAN       string
}

// ApplyMove validates preconditions in order (active game, plausible
// encoding, correct side to move) and appends the move, making its
// resulting encoding current.
func (g *GameState) ApplyMove(author string, in MoveInput) (*Move, error) {
	if g.Status != StatusPlaying {
		return nil, ErrGameNotActive
	}
	if !fen.Plausible(in.FEN) {
		return nil, ErrBadEncoding
	}
	if g.playerToMove() != author {
		return nil, ErrNotYourTurn
	}
	mv := Move{
		From:      in.From,
		To:        in.To,
		Promotion: in.Promotion,
		FEN:       strings.TrimSpace(in.FEN),
		SAN:       in.SAN,
		Author:    author,
		Timestamp: time.Now(),
	}
	g.Moves = append(g.Moves, mv)
	g.FEN = mv.FEN
	return &mv, nil
}

// Undo removes the last move if the requester authored it. The current
// encoding reverts to the previous move's result, or to the initial
// position when the list empties. Exactly one move is removed.
func (g *GameState) Undo(author string) (int, error) {
	if len(g.Moves) == 0 {
		return 0, ErrNothingToUndo
	}
	last := g.Moves[len(g.Moves)-1]
	if last.Author != author {
		return 0, ErrUndoNotAuthor
	}
	g.Moves = g.Moves[:len(g.Moves)-1]
	if len(g.Moves) == 0 {
		g.FEN = fen.Initial
	} else {
		g.FEN = g.Moves[len(g.Moves)-1].FEN
	}
	return 1, nil
}

// Finish records an externally determined result. The server does not
// compute outcomes; it trusts the client's determination the same way
// it trusts encodings.
func (g *GameState) Finish(winner string) error {
	if g.Status != StatusPlaying {
		return ErrGameNotActive
	}
	g.Status = StatusFinished
	g.Winner = strings.TrimSpace(winner)
	return nil
}

// Reset returns the game to waiting from any state.
func (g *GameState) Reset() {
	g.Status = StatusWaiting
	g.Moves = nil
	g.FEN = fen.Initial
	g.WhitePlayer = ""
	g.BlackPlayer = ""
	g.Winner = ""
}

func (g *GameState) playerToMove() string {
	if g.Turn() == fen.Black {
		return g.BlackPlayer
	}
	return g.WhitePlayer
}
