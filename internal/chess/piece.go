// FILE: internal/chess/piece.go
package chess

// PieceType enumerates the piece kinds. PieceEmpty marks an unoccupied
// square so the board stays a total mapping.
type PieceType int

const (
	PieceEmpty PieceType = iota
	PiecePawn
	PieceKnight
	PieceBishop
	PieceRook
	PieceQueen
	PieceKing
)

func (t PieceType) String() string {
	switch t {
	case PiecePawn:
		return "pawn"
	case PieceKnight:
		return "knight"
	case PieceBishop:
		return "bishop"
	case PieceRook:
		return "rook"
	case PieceQueen:
		return "queen"
	case PieceKing:
		return "king"
	default:
		return "empty"
	}
}

// Color of a side. ColorNone exists only for empty squares and must never
// appear as a side to move or a registered player color.
type Color int

const (
	ColorNone Color = iota
	ColorWhite
	ColorBlack
)

// String returns the FEN letter for the color.
func (c Color) String() string {
	switch c {
	case ColorWhite:
		return "w"
	case ColorBlack:
		return "b"
	default:
		return "-"
	}
}

// Name returns the long color name used in player registrations.
func (c Color) Name() string {
	switch c {
	case ColorWhite:
		return "white"
	case ColorBlack:
		return "black"
	default:
		return "none"
	}
}

// ColorFromName parses "white" or "black"; anything else is unknown.
func ColorFromName(name string) (Color, bool) {
	switch name {
	case "white":
		return ColorWhite, true
	case "black":
		return ColorBlack, true
	default:
		return ColorNone, false
	}
}

func OppositeColor(c Color) Color {
	if c == ColorWhite {
		return ColorBlack
	}
	return ColorWhite
}

var pieceTypeFromFEN = map[byte]PieceType{
	'p': PiecePawn,
	'n': PieceKnight,
	'b': PieceBishop,
	'r': PieceRook,
	'q': PieceQueen,
	'k': PieceKing,
}

var pieceTypeToFEN = map[PieceType]byte{
	PiecePawn:   'p',
	PieceKnight: 'n',
	PieceBishop: 'b',
	PieceRook:   'r',
	PieceQueen:  'q',
	PieceKing:   'k',
}

// piecePoints is the conventional material value table. The king (and the
// empty marker) count zero toward material totals.
var piecePoints = map[PieceType]int{
	PieceEmpty:  0,
	PiecePawn:   1,
	PieceKnight: 3,
	PieceBishop: 3,
	PieceRook:   5,
	PieceQueen:  9,
	PieceKing:   0,
}

// Piece is a (type, color) pair. The zero value is an empty square.
type Piece struct {
	Type  PieceType
	Color Color
}

// PieceFromFEN decodes a single piece letter; uppercase is white.
func PieceFromFEN(ch byte) (Piece, bool) {
	lower := ch
	color := ColorBlack
	if ch >= 'A' && ch <= 'Z' {
		lower = ch - 'A' + 'a'
		color = ColorWhite
	}
	t, ok := pieceTypeFromFEN[lower]
	if !ok {
		return Piece{}, false
	}
	return Piece{Type: t, Color: color}, true
}

// FENChar encodes the piece as its FEN letter. Returns 0 for empty.
func (p Piece) FENChar() byte {
	ch, ok := pieceTypeToFEN[p.Type]
	if !ok {
		return 0
	}
	if p.Color == ColorWhite {
		return ch - 'a' + 'A'
	}
	return ch
}

func (p Piece) IsEmpty() bool {
	return p.Type == PieceEmpty
}

// Points is the material value of the piece.
func (p Piece) Points() int {
	return piecePoints[p.Type]
}
