package room

import (
	"errors"
	"testing"

	"github.com/kapu/chess-rooms-go/internal/fen"
)

const (
	fenAfterE4 = "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
	fenAfterE5 = "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2"
)

func startedGame(t *testing.T) *GameState {
	t.Helper()
	g := NewGameState()
	g.Start("alice", "bob")
	return g
}

func TestNewGameStateWaiting(t *testing.T) {
	g := NewGameState()
	if g.Status != StatusWaiting {
		t.Fatalf("expected waiting, got %s", g.Status)
	}
	if g.FEN != fen.Initial {
		t.Fatalf("expected initial encoding, got %s", g.FEN)
	}
	if g.Turn() != fen.White {
		t.Fatalf("expected white to move, got %s", g.Turn())
	}
}

func TestApplyMoveAlternatesTurn(t *testing.T) {
	g := startedGame(t)
	mv, err := g.ApplyMove("alice", MoveInput{From: "e2", To: "e4", FEN: fenAfterE4, SAN: "e4"})
	if err != nil {
		t.Fatalf("ApplyMove white: %v", err)
	}
	if mv.Author != "alice" || g.Turn() != fen.Black {
		t.Fatalf("after white's move black should be on turn, got %s", g.Turn())
	}
	if _, err := g.ApplyMove("bob", MoveInput{From: "e7", To: "e5", FEN: fenAfterE5, SAN: "e5"}); err != nil {
		t.Fatalf("ApplyMove black: %v", err)
	}
	if g.Turn() != fen.White {
		t.Fatalf("after black's move white should be on turn, got %s", g.Turn())
	}
	if len(g.Moves) != 2 {
		t.Fatalf("expected 2 moves, got %d", len(g.Moves))
	}
}

func TestApplyMoveWrongTurn(t *testing.T) {
	g := startedGame(t)
	_, err := g.ApplyMove("bob", MoveInput{From: "e7", To: "e5", FEN: fenAfterE5, SAN: "e5"})
	if !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
	if len(g.Moves) != 0 {
		t.Fatalf("rejected move must not be recorded")
	}
}

func TestApplyMoveWhileWaiting(t *testing.T) {
	g := NewGameState()
	_, err := g.ApplyMove("alice", MoveInput{From: "e2", To: "e4", FEN: fenAfterE4})
	if !errors.Is(err, ErrGameNotActive) {
		t.Fatalf("expected ErrGameNotActive, got %v", err)
	}
}

func TestApplyMoveBadEncoding(t *testing.T) {
	g := startedGame(t)
	_, err := g.ApplyMove("alice", MoveInput{From: "e2", To: "e4", FEN: "8/8 w"})
	if !errors.Is(err, ErrBadEncoding) {
		t.Fatalf("expected ErrBadEncoding, got %v", err)
	}
}

func TestUndoRevertsToPriorEncoding(t *testing.T) {
	g := startedGame(t)
	if _, err := g.ApplyMove("alice", MoveInput{From: "e2", To: "e4", FEN: fenAfterE4, SAN: "e4"}); err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if _, err := g.ApplyMove("bob", MoveInput{From: "e7", To: "e5", FEN: fenAfterE5, SAN: "e5"}); err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	removed, err := g.Undo("bob")
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected exactly one move removed, got %d", removed)
	}
	if g.FEN != fenAfterE4 {
		t.Fatalf("encoding should revert to prior move's result, got %s", g.FEN)
	}
	if g.Turn() != fen.Black {
		t.Fatalf("black should be back on turn, got %s", g.Turn())
	}
}

func TestUndoToInitial(t *testing.T) {
	g := startedGame(t)
	if _, err := g.ApplyMove("alice", MoveInput{From: "e2", To: "e4", FEN: fenAfterE4, SAN: "e4"}); err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if _, err := g.Undo("alice"); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if g.FEN != fen.Initial {
		t.Fatalf("encoding should revert to initial, got %s", g.FEN)
	}
}

func TestUndoNotAuthor(t *testing.T) {
	g := startedGame(t)
	if _, err := g.ApplyMove("alice", MoveInput{From: "e2", To: "e4", FEN: fenAfterE4, SAN: "e4"}); err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if _, err := g.Undo("bob"); !errors.Is(err, ErrUndoNotAuthor) {
		t.Fatalf("expected ErrUndoNotAuthor")
	}
	if len(g.Moves) != 1 {
		t.Fatalf("rejected undo must not remove anything")
	}
}

func TestUndoEmpty(t *testing.T) {
	g := startedGame(t)
	if _, err := g.Undo("alice"); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("expected ErrNothingToUndo")
	}
}

func TestFinishAndRestart(t *testing.T) {
	g := startedGame(t)
	if err := g.Finish("alice"); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if g.Status != StatusFinished || g.Winner != "alice" {
		t.Fatalf("unexpected finish state: %s winner=%s", g.Status, g.Winner)
	}
	if err := g.Finish("bob"); !errors.Is(err, ErrGameNotActive) {
		t.Fatalf("double finish should fail")
	}
	// Start is allowed from any status and clears the previous result.
	g.Start("carol", "dave")
	if g.Status != StatusPlaying || g.Winner != "" || len(g.Moves) != 0 {
		t.Fatalf("restart did not reset state")
	}
	if g.FEN != fen.Initial {
		t.Fatalf("restart should reset the board")
	}
}

func TestResetFromAnyState(t *testing.T) {
	g := startedGame(t)
	if _, err := g.ApplyMove("alice", MoveInput{From: "e2", To: "e4", FEN: fenAfterE4, SAN: "e4"}); err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	g.Reset()
	if g.Status != StatusWaiting || len(g.Moves) != 0 || g.FEN != fen.Initial {
		t.Fatalf("reset did not return to waiting baseline")
	}
	if g.WhitePlayer != "" || g.BlackPlayer != "" {
		t.Fatalf("reset should clear player assignments")
	}
}
