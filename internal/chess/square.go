// FILE: internal/chess/square.go
package chess

import "fmt"

// Board dimensions. Chess is always 8x8, but keeping the edge length in one
// place makes the geometry code honest about where "8" comes from.
const (
	BoardFiles = 8
	BoardRanks = 8
)

// Square is a (file, rank) pair, both 1-based: a1 is (1,1), h8 is (8,8).
// Out-of-bounds squares are only ever constructed transiently during move
// generation and discarded after a WithinBounds check.
type Square struct {
	File int
	Rank int
}

// SquareFromAlgebraic converts "a1".."h8" into a Square.
func SquareFromAlgebraic(s string) (Square, error) {
	if len(s) != 2 {
		return Square{}, fmt.Errorf("invalid square %q", s)
	}
	file := int(s[0]-'a') + 1
	rank := int(s[1] - '0')
	sq := Square{File: file, Rank: rank}
	if !sq.WithinBounds() {
		return Square{}, fmt.Errorf("square %q out of bounds", s)
	}
	return sq, nil
}

// mustSquare is for compile-time-constant square names (castling tables, tests).
func mustSquare(s string) Square {
	sq, err := SquareFromAlgebraic(s)
	if err != nil {
		panic(err)
	}
	return sq
}

func (s Square) Algebraic() string {
	return fmt.Sprintf("%c%d", 'a'+byte(s.File-1), s.Rank)
}

func (s Square) WithinBounds() bool {
	return s.File >= 1 && s.File <= BoardFiles && s.Rank >= 1 && s.Rank <= BoardRanks
}
