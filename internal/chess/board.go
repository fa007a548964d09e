// FILE: internal/chess/board.go
package chess

import (
	"fmt"
	"strings"
)

// Board owns the total mapping from every square to a piece-or-empty value.
// It implements pure geometry and raw mutation; legality is the Game's job.
type Board struct {
	squares [BoardFiles][BoardRanks]Piece
}

// BoardFromPosition parses the piece-placement field of a FEN string
// (ranks 8 down to 1, slash separated, digits for empty runs).
func BoardFromPosition(position string) (*Board, error) {
	ranks := strings.Split(position, "/")
	if len(ranks) != BoardRanks {
		return nil, fmt.Errorf("%w: expected %d ranks, got %d", ErrInvalidFEN, BoardRanks, len(ranks))
	}

	b := &Board{}
	for i, rankFEN := range ranks {
		rank := BoardRanks - i
		file := 1
		for j := 0; j < len(rankFEN); j++ {
			ch := rankFEN[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			piece, ok := PieceFromFEN(ch)
			if !ok {
				return nil, fmt.Errorf("%w: unknown piece character %q", ErrInvalidFEN, ch)
			}
			if file > BoardFiles {
				return nil, fmt.Errorf("%w: rank %d overflows %d files", ErrInvalidFEN, rank, BoardFiles)
			}
			b.squares[file-1][rank-1] = piece
			file++
		}
		if file != BoardFiles+1 {
			return nil, fmt.Errorf("%w: rank %d has %d files", ErrInvalidFEN, rank, file-1)
		}
	}
	return b, nil
}

// PositionString is the exact inverse of BoardFromPosition.
func (b *Board) PositionString() string {
	parts := make([]string, 0, BoardRanks)
	for rank := BoardRanks; rank >= 1; rank-- {
		parts = append(parts, b.rankString(rank))
	}
	return strings.Join(parts, "/")
}

func (b *Board) rankString(rank int) string {
	var sb strings.Builder
	emptyRun := 0
	for file := 1; file <= BoardFiles; file++ {
		piece := b.squares[file-1][rank-1]
		if piece.IsEmpty() {
			emptyRun++
			continue
		}
		if emptyRun > 0 {
			sb.WriteByte(byte('0' + emptyRun))
			emptyRun = 0
		}
		sb.WriteByte(piece.FENChar())
	}
	if emptyRun > 0 {
		sb.WriteByte(byte('0' + emptyRun))
	}
	return sb.String()
}

// Clone returns a deep copy for check simulation. The copy never shares
// mutable state with the receiver.
func (b *Board) Clone() *Board {
	clone := *b
	return &clone
}

func (b *Board) Piece(sq Square) Piece {
	return b.squares[sq.File-1][sq.Rank-1]
}

func (b *Board) PlacePiece(p Piece, sq Square) {
	b.squares[sq.File-1][sq.Rank-1] = p
}

func (b *Board) RemovePiece(sq Square) {
	b.squares[sq.File-1][sq.Rank-1] = Piece{}
}

// MovePiece relocates unconditionally: the source becomes empty and the
// destination is overwritten. No legality check on purpose.
func (b *Board) MovePiece(m Move) {
	piece := b.Piece(m.From)
	b.RemovePiece(m.From)
	b.PlacePiece(piece, m.To)
}

// MovePieces applies several relocations in order (castling moves two pieces).
func (b *Board) MovePieces(moves ...Move) {
	for _, m := range moves {
		b.MovePiece(m)
	}
}

// PromotePiece rewrites the piece type on a square, keeping its color.
func (b *Board) PromotePiece(sq Square, newType PieceType) {
	piece := b.Piece(sq)
	piece.Type = newType
	b.PlacePiece(piece, sq)
}

// LocatePieces returns every square holding the given piece type.
func (b *Board) LocatePieces(t PieceType) []Square {
	var squares []Square
	for file := 1; file <= BoardFiles; file++ {
		for rank := 1; rank <= BoardRanks; rank++ {
			if b.squares[file-1][rank-1].Type == t {
				squares = append(squares, Square{File: file, Rank: rank})
			}
		}
	}
	return squares
}

// LocateColor returns every square holding a piece of the given color.
func (b *Board) LocateColor(c Color) []Square {
	var squares []Square
	for file := 1; file <= BoardFiles; file++ {
		for rank := 1; rank <= BoardRanks; rank++ {
			if b.squares[file-1][rank-1].Color == c {
				squares = append(squares, Square{File: file, Rank: rank})
			}
		}
	}
	return squares
}

func (b *Board) EmptySquares() []Square {
	return b.LocatePieces(PieceEmpty)
}

// KingSquare finds the king of the given color. A started game has exactly
// one king per side; zero or multiple matches is a caller error.
func (b *Board) KingSquare(c Color) (Square, error) {
	var found []Square
	for _, sq := range b.LocatePieces(PieceKing) {
		if b.Piece(sq).Color == c {
			found = append(found, sq)
		}
	}
	if len(found) != 1 {
		return Square{}, fmt.Errorf("expected exactly one %s king, found %d", c.Name(), len(found))
	}
	return found[0], nil
}

// CountMaterial tallies piece points per side.
func (b *Board) CountMaterial() map[Color]int {
	totals := map[Color]int{ColorWhite: 0, ColorBlack: 0}
	for file := 1; file <= BoardFiles; file++ {
		for rank := 1; rank <= BoardRanks; rank++ {
			piece := b.squares[file-1][rank-1]
			if piece.Color != ColorNone {
				totals[piece.Color] += piece.Points()
			}
		}
	}
	return totals
}

// GenerateCandidateMoves produces the pseudo-legal moves for a side:
// geometry and occupancy are respected but check safety is not. Each
// occupied square dispatches to exactly one movement-rule entry.
func (b *Board) GenerateCandidateMoves(c Color) []Move {
	var candidates []Move
	for _, from := range b.LocateColor(c) {
		rule := movementRules[b.Piece(from).Type]
		candidates = append(candidates, rule(from, b)...)
	}
	return candidates
}

// IsSquareAttacked reports whether any piece of bySide attacks the square.
// Every piece kind is asked via its attack-rule entry.
func (b *Board) IsSquareAttacked(sq Square, bySide Color) bool {
	for _, rule := range attackRules {
		if rule(sq, bySide, b) {
			return true
		}
	}
	return false
}

// IsAnyOccupied reports whether any of the squares holds a piece.
func (b *Board) IsAnyOccupied(squares []Square) bool {
	for _, sq := range squares {
		if !b.Piece(sq).IsEmpty() {
			return true
		}
	}
	return false
}

// IsAnyAttacked reports whether any of the squares is attacked by the side.
func (b *Board) IsAnyAttacked(squares []Square, bySide Color) bool {
	for _, sq := range squares {
		if b.IsSquareAttacked(sq, bySide) {
			return true
		}
	}
	return false
}

// IsCheck reports whether the king of the given color is attacked.
func (b *Board) IsCheck(c Color) bool {
	kingSq, err := b.KingSquare(c)
	if err != nil {
		return false
	}
	return b.IsSquareAttacked(kingSq, OppositeColor(c))
}

// ToASCII renders the board for terminals and the /board endpoint.
func (b *Board) ToASCII() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")
	for rank := BoardRanks; rank >= 1; rank-- {
		sb.WriteString(fmt.Sprintf("%d ", rank))
		for file := 1; file <= BoardFiles; file++ {
			piece := b.squares[file-1][rank-1]
			if piece.IsEmpty() {
				sb.WriteString(". ")
			} else {
				sb.WriteString(fmt.Sprintf("%c ", piece.FENChar()))
			}
		}
		sb.WriteString(fmt.Sprintf(" %d\n", rank))
	}
	sb.WriteString("  a b c d e f g h")
	return sb.String()
}
