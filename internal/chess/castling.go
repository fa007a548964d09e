// FILE: internal/chess/castling.go
package chess

import "fmt"

// CastlingDirection identifies one of the four king/rook pairings. The FEN
// letters K, Q, k, q encode them in that canonical order.
type CastlingDirection int

const (
	CastleNone CastlingDirection = iota
	WhiteKingSide
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide
)

// castlingOrder fixes the serialization order of the rights field.
var castlingOrder = [4]CastlingDirection{WhiteKingSide, WhiteQueenSide, BlackKingSide, BlackQueenSide}

func (d CastlingDirection) FENChar() byte {
	switch d {
	case WhiteKingSide:
		return 'K'
	case WhiteQueenSide:
		return 'Q'
	case BlackKingSide:
		return 'k'
	case BlackQueenSide:
		return 'q'
	default:
		return '-'
	}
}

// Side returns the color that castles in this direction.
func (d CastlingDirection) Side() Color {
	switch d {
	case WhiteKingSide, WhiteQueenSide:
		return ColorWhite
	case BlackKingSide, BlackQueenSide:
		return ColorBlack
	default:
		return ColorNone
	}
}

// castlingDirections lists the two directions available to a side.
func castlingDirections(c Color) []CastlingDirection {
	if c == ColorWhite {
		return []CastlingDirection{WhiteKingSide, WhiteQueenSide}
	}
	return []CastlingDirection{BlackKingSide, BlackQueenSide}
}

// CastlingSquares holds the canonical from/to squares of the king and rook
// for one castling direction. If the right is intact, both pieces are still
// on their home squares.
type CastlingSquares struct {
	KingFrom Square
	KingTo   Square
	RookFrom Square
	RookTo   Square
}

var castlingRules = map[CastlingDirection]CastlingSquares{
	WhiteKingSide:  {mustSquare("e1"), mustSquare("g1"), mustSquare("h1"), mustSquare("f1")},
	WhiteQueenSide: {mustSquare("e1"), mustSquare("c1"), mustSquare("a1"), mustSquare("d1")},
	BlackKingSide:  {mustSquare("e8"), mustSquare("g8"), mustSquare("h8"), mustSquare("f8")},
	BlackQueenSide: {mustSquare("e8"), mustSquare("c8"), mustSquare("a8"), mustSquare("d8")},
}

// CastlingRule exposes the square table for a direction.
func CastlingRule(d CastlingDirection) CastlingSquares {
	return castlingRules[d]
}

// candidateCastlingMove builds the tagged king move for a direction.
func candidateCastlingMove(d CastlingDirection) Move {
	rule := castlingRules[d]
	return Move{From: rule.KingFrom, To: rule.KingTo, Castle: d}
}

// squaresBetween enumerates the open interval between two squares on the
// same rank. Calling it across ranks is a programming error.
func squaresBetween(a, b Square) []Square {
	if a.Rank != b.Rank {
		panic(fmt.Sprintf("squaresBetween across ranks: %s %s", a.Algebraic(), b.Algebraic()))
	}
	lo, hi := a.File, b.File
	if lo > hi {
		lo, hi = hi, lo
	}
	var squares []Square
	for file := lo + 1; file < hi; file++ {
		squares = append(squares, Square{File: file, Rank: a.Rank})
	}
	return squares
}

// kingPath lists the squares the king passes through while castling, from
// its home square exclusive up to and including its destination.
func kingPath(d CastlingDirection) []Square {
	rule := castlingRules[d]
	path := squaresBetween(rule.KingFrom, rule.KingTo)
	return append(path, rule.KingTo)
}
