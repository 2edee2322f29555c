package fen

import (
	"strings"

	nchess "github.com/corentings/chess/v2"
)

// Color is the side to move as it appears in a position encoding.
type Color string

const (
	White Color = "w"
	Black Color = "b"
)

// Initial is the standard starting position encoding.
const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// MinLen is the shortest encoding accepted as plausible. Clients are
// trusted for legality, so this is a sanity bound, not validation.
const MinLen = 16

var (
	ErrTooShort    = errf("position encoding too short")
	ErrNoTurnField = errf("position encoding has no turn field")
)

type staticErr string

func (e staticErr) Error() string { return string(e) }
func errf(s string) error         { return staticErr(s) }

// Plausible reports whether the encoding passes the length sanity check.
func Plausible(encoding string) bool {
	return len(strings.TrimSpace(encoding)) >= MinLen
}

// SideToMove derives the side to move from a position encoding. A full
// library parse is preferred; encodings the library rejects fall back
// to a raw field split so a trusted-but-odd client encoding still
// yields a turn.
func SideToMove(encoding string) (Color, error) {
	encoding = strings.TrimSpace(encoding)
	if !Plausible(encoding) {
		return "", ErrTooShort
	}
	if option, err := nchess.FEN(encoding); err == nil {
		game := nchess.NewGame(option)
		if game.Position().Turn() == nchess.Black {
			return Black, nil
		}
		return White, nil
	}
	parts := strings.Fields(encoding)
	if len(parts) < 2 {
		return "", ErrNoTurnField
	}
	switch parts[1] {
	case "w", "W":
		return White, nil
	case "b", "B":
		return Black, nil
	}
	return "", ErrNoTurnField
}
