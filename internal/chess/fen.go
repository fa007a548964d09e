// FILE: internal/chess/fen.go
package chess

import (
	"fmt"
	"strconv"
	"strings"
)

// StartingFEN is the standard initial position.
const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FENState is the six-field position notation: piece placement, side to
// move, castling rights, en-passant target, half-move clock and full-move
// number. It is owned and mutated exclusively by Game during move
// application; the Board never touches it.
//
// FEN serves double duty here: it is the wire/persistence encoding of a
// position and (minus the two counters) the equality key for repetition
// detection.
type FENState struct {
	Position       string
	ColorToMove    Color
	CastlingRights map[CastlingDirection]bool
	EnPassant      *Square // nil when no target is recorded
	HalfMoveClock  int
	FullMoves      int
}

// ParseFEN validates and decodes a FEN string. Every field is checked
// independently; any violation fails with ErrInvalidFEN before any state
// is constructed.
func ParseFEN(fen string) (*FENState, error) {
	parts := strings.Split(fen, " ")
	if len(parts) != 6 {
		return nil, fmt.Errorf("%w: expected 6 space-separated fields, got %d", ErrInvalidFEN, len(parts))
	}

	if !isValidPosition(parts[0]) {
		return nil, fmt.Errorf("%w: bad piece placement %q", ErrInvalidFEN, parts[0])
	}
	if parts[1] != "w" && parts[1] != "b" {
		return nil, fmt.Errorf("%w: side to move must be w or b, got %q", ErrInvalidFEN, parts[1])
	}
	if !isValidCastlingRights(parts[2]) {
		return nil, fmt.Errorf("%w: bad castling rights %q", ErrInvalidFEN, parts[2])
	}
	if parts[3] != "-" && !isValidSquareName(parts[3]) {
		return nil, fmt.Errorf("%w: bad en passant square %q", ErrInvalidFEN, parts[3])
	}
	if !isDigits(parts[4]) || !isDigits(parts[5]) {
		return nil, fmt.Errorf("%w: move counters must be non-negative integers", ErrInvalidFEN)
	}

	state := &FENState{
		Position:       parts[0],
		ColorToMove:    ColorWhite,
		CastlingRights: castlingFromFEN(parts[2]),
	}
	if parts[1] == "b" {
		state.ColorToMove = ColorBlack
	}
	if parts[3] != "-" {
		sq, _ := SquareFromAlgebraic(parts[3])
		state.EnPassant = &sq
	}
	state.HalfMoveClock, _ = strconv.Atoi(parts[4])
	state.FullMoves, _ = strconv.Atoi(parts[5])
	return state, nil
}

// StartingPosition returns the state of a fresh game.
func StartingPosition() *FENState {
	state, err := ParseFEN(StartingFEN)
	if err != nil {
		panic(err)
	}
	return state
}

// FEN is the exact inverse of ParseFEN.
func (f *FENState) FEN() string {
	enPassant := "-"
	if f.EnPassant != nil {
		enPassant = f.EnPassant.Algebraic()
	}
	return fmt.Sprintf("%s %s %s %s %d %d",
		f.Position, f.ColorToMove, castlingToFEN(f.CastlingRights),
		enPassant, f.HalfMoveClock, f.FullMoves)
}

// RepetitionKey identifies a position for the repetition rule: placement,
// side to move, castling rights and en-passant square. The two counters are
// deliberately excluded, since repetition ignores move counts.
func (f *FENState) RepetitionKey() string {
	enPassant := "-"
	if f.EnPassant != nil {
		enPassant = f.EnPassant.Algebraic()
	}
	return fmt.Sprintf("%s %s %s %s", f.Position, f.ColorToMove, castlingToFEN(f.CastlingRights), enPassant)
}

// RepetitionKeyOf extracts the repetition key from a full FEN string. The
// string must have been validated before.
func RepetitionKeyOf(fen string) string {
	parts := strings.SplitN(fen, " ", 5)
	if len(parts) < 4 {
		return fen
	}
	return strings.Join(parts[:4], " ")
}

// HasCastlingRight reports whether the direction's right is intact.
func (f *FENState) HasCastlingRight(d CastlingDirection) bool {
	return f.CastlingRights[d]
}

// CanCastle reports whether the side has any castling right left.
func (f *FENState) CanCastle(c Color) bool {
	for _, d := range castlingDirections(c) {
		if f.CastlingRights[d] {
			return true
		}
	}
	return false
}

// RevokeCastlingRight clears one direction. Rights only ever transition
// true to false for the lifetime of a game.
func (f *FENState) RevokeCastlingRight(d CastlingDirection) {
	f.CastlingRights[d] = false
}

// RevokeAllCastlingRights clears both of a side's directions.
func (f *FENState) RevokeAllCastlingRights(c Color) {
	for _, d := range castlingDirections(c) {
		f.CastlingRights[d] = false
	}
}

func (f *FENState) ResetHalfMoveClock()     { f.HalfMoveClock = 0 }
func (f *FENState) IncrementHalfMoveClock() { f.HalfMoveClock++ }
func (f *FENState) IncrementFullMoves()     { f.FullMoves++ }

func castlingFromFEN(field string) map[CastlingDirection]bool {
	rights := make(map[CastlingDirection]bool, 4)
	for _, d := range castlingOrder {
		rights[d] = strings.IndexByte(field, d.FENChar()) >= 0
	}
	return rights
}

// castlingToFEN serializes rights in the fixed KQkq order, collapsing to
// "-" when none remain.
func castlingToFEN(rights map[CastlingDirection]bool) string {
	var sb strings.Builder
	for _, d := range castlingOrder {
		if rights[d] {
			sb.WriteByte(d.FENChar())
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// isValidPosition checks only the piece-placement field: eight ranks whose
// empty-run digits and piece letters sum to exactly eight files each.
func isValidPosition(position string) bool {
	ranks := strings.Split(position, "/")
	if len(ranks) != BoardRanks {
		return false
	}
	for _, rankFEN := range ranks {
		fileCount := 0
		for i := 0; i < len(rankFEN); i++ {
			ch := rankFEN[i]
			switch {
			case ch >= '1' && ch <= '9':
				fileCount += int(ch - '0')
			default:
				if _, ok := PieceFromFEN(ch); !ok {
					return false
				}
				fileCount++
			}
			if fileCount > BoardFiles {
				return false
			}
		}
		if fileCount != BoardFiles {
			return false
		}
	}
	return true
}

// isValidCastlingRights accepts "-" or any non-empty subsequence of "KQkq"
// in canonical order (the 16 valid encodings).
func isValidCastlingRights(field string) bool {
	if field == "-" {
		return true
	}
	if field == "" {
		return false
	}
	idx := 0
	for i := 0; i < len(field); i++ {
		found := false
		for idx < len(castlingOrder) {
			if castlingOrder[idx].FENChar() == field[i] {
				found = true
				idx++
				break
			}
			idx++
		}
		if !found {
			return false
		}
	}
	return true
}

func isValidSquareName(s string) bool {
	_, err := SquareFromAlgebraic(s)
	return err == nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
