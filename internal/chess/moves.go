// FILE: internal/chess/moves.go
package chess

import "fmt"

// Move generation and attack detection. The per-kind strategy tables keep
// the two concerns structurally parallel: attack detection is the "could a
// piece of kind K reach this square" dual of move generation.

// Move is a from/to pair plus the special-rule tags the Game layer assigns.
// Immutable once constructed; equality is structural.
type Move struct {
	From      Square
	To        Square
	Promotion PieceType         // PieceEmpty when not a promotion
	Castle    CastlingDirection // CastleNone for ordinary moves
	EnPassant bool
}

// MoveFromUCI parses "<from><to>[p]", e.g. "e2e4" or "a7a8q". Castling and
// en-passant tags are assigned later when the move is matched against the
// legal set.
func MoveFromUCI(uci string) (Move, error) {
	if len(uci) != 4 && len(uci) != 5 {
		return Move{}, fmt.Errorf("invalid UCI move %q", uci)
	}
	from, err := SquareFromAlgebraic(uci[:2])
	if err != nil {
		return Move{}, fmt.Errorf("invalid UCI move %q: %w", uci, err)
	}
	to, err := SquareFromAlgebraic(uci[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("invalid UCI move %q: %w", uci, err)
	}
	m := Move{From: from, To: to}
	if len(uci) == 5 {
		t, ok := pieceTypeFromFEN[uci[4]]
		if !ok || t == PiecePawn || t == PieceKing {
			return Move{}, fmt.Errorf("invalid promotion piece %q", uci[4])
		}
		m.Promotion = t
	}
	return m, nil
}

// UCI encodes the move. The castling and en-passant tags are not part of
// the notation; a castling move reads as its king move.
func (m Move) UCI() string {
	s := m.From.Algebraic() + m.To.Algebraic()
	if m.Promotion != PieceEmpty {
		s += string(pieceTypeToFEN[m.Promotion])
	}
	return s
}

// AcceptedMove snapshots what the board looked like just before a legal
// move was applied. Castling-rights revocation and the half-move clock
// depend on the pre-move pieces, which the mutated board cannot answer.
type AcceptedMove struct {
	Move     Move
	Moving   Piece
	Captured Piece // zero value when the destination was empty
}

// AcceptMove takes the pre-mutation snapshot for a move.
func AcceptMove(m Move, b *Board) AcceptedMove {
	return AcceptedMove{
		Move:     m,
		Moving:   b.Piece(m.From),
		Captured: b.Piece(m.To),
	}
}

type delta struct {
	file int
	rank int
}

var (
	diagonalDirs = []delta{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
	straightDirs = []delta{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	royalDirs    = append(append([]delta{}, diagonalDirs...), straightDirs...)
	knightDeltas = []delta{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
)

// raycast walks each direction one square at a time: stop at the edge, stop
// after including a capture of the first opposing piece, stop immediately
// on a friendly piece. The standard sliding-piece technique.
func raycast(from Square, b *Board, directions []delta) []Move {
	mover := b.Piece(from).Color
	var moves []Move
	for _, d := range directions {
		target := from
		for {
			target = Square{File: target.File + d.file, Rank: target.Rank + d.rank}
			if !target.WithinBounds() {
				break
			}
			occupant := b.Piece(target)
			if !occupant.IsEmpty() {
				if occupant.Color == OppositeColor(mover) {
					moves = append(moves, Move{From: from, To: target})
				}
				break
			}
			moves = append(moves, Move{From: from, To: target})
		}
	}
	return moves
}

// singleStep includes each in-bounds delta target that is empty or holds an
// opposing piece. Used for knights and kings.
func singleStep(from Square, b *Board, deltas []delta) []Move {
	mover := b.Piece(from).Color
	var moves []Move
	for _, d := range deltas {
		target := Square{File: from.File + d.file, Rank: from.Rank + d.rank}
		if !target.WithinBounds() {
			continue
		}
		if b.Piece(target).Color != mover {
			moves = append(moves, Move{From: from, To: target})
		}
	}
	return moves
}

// pawnHomeRank is where a pawn may open with a two-square advance.
func pawnHomeRank(c Color) int {
	if c == ColorWhite {
		return 2
	}
	return BoardRanks - 1
}

// pawnDirection is +1 for white (toward rank 8), -1 for black.
func pawnDirection(c Color) int {
	if c == ColorWhite {
		return 1
	}
	return -1
}

// promotionRank is the farthest rank for the side's pawns.
func promotionRank(c Color) int {
	if c == ColorWhite {
		return BoardRanks
	}
	return 1
}

// candidatePawnMoves covers pushes and diagonal captures. Pushes require
// empty squares; the two-square advance additionally requires the home rank
// and an empty intermediate square. Diagonal moves exist only as captures.
// En passant is handled by the Game since it needs position history.
func candidatePawnMoves(from Square, b *Board) []Move {
	mover := b.Piece(from).Color
	dir := pawnDirection(mover)
	var moves []Move

	oneAhead := Square{File: from.File, Rank: from.Rank + dir}
	if oneAhead.WithinBounds() && b.Piece(oneAhead).IsEmpty() {
		moves = append(moves, Move{From: from, To: oneAhead})
		twoAhead := Square{File: from.File, Rank: from.Rank + 2*dir}
		if from.Rank == pawnHomeRank(mover) && twoAhead.WithinBounds() && b.Piece(twoAhead).IsEmpty() {
			moves = append(moves, Move{From: from, To: twoAhead})
		}
	}

	for _, df := range []int{-1, 1} {
		target := Square{File: from.File + df, Rank: from.Rank + dir}
		if !target.WithinBounds() {
			continue
		}
		if b.Piece(target).Color == OppositeColor(mover) {
			moves = append(moves, Move{From: from, To: target})
		}
	}
	return moves
}

func candidateKnightMoves(from Square, b *Board) []Move {
	return singleStep(from, b, knightDeltas)
}

func candidateBishopMoves(from Square, b *Board) []Move {
	return raycast(from, b, diagonalDirs)
}

func candidateRookMoves(from Square, b *Board) []Move {
	return raycast(from, b, straightDirs)
}

func candidateQueenMoves(from Square, b *Board) []Move {
	return raycast(from, b, royalDirs)
}

func candidateKingMoves(from Square, b *Board) []Move {
	return singleStep(from, b, royalDirs)
}

// candidateMovesFn generates the pseudo-legal moves for one piece.
type candidateMovesFn func(Square, *Board) []Move

var movementRules = map[PieceType]candidateMovesFn{
	PiecePawn:   candidatePawnMoves,
	PieceKnight: candidateKnightMoves,
	PieceBishop: candidateBishopMoves,
	PieceRook:   candidateRookMoves,
	PieceQueen:  candidateQueenMoves,
	PieceKing:   candidateKingMoves,
}

// attackFn reports whether a piece of the rule's kind and the given color
// attacks the target square.
type attackFn func(target Square, by Color, b *Board) bool

var attackRules = map[PieceType]attackFn{
	PiecePawn:   pawnAttacks,
	PieceKnight: knightAttacks,
	PieceBishop: bishopAttacks,
	PieceRook:   rookAttacks,
	PieceQueen:  queenAttacks,
	PieceKing:   kingAttacks,
}

// slidingAttack raycasts from the target; the first occupied square in any
// direction decides whether an attacker of the wanted kind is looking back.
func slidingAttack(target Square, by Color, b *Board, directions []delta, kind PieceType) bool {
	for _, d := range directions {
		sq := target
		for {
			sq = Square{File: sq.File + d.file, Rank: sq.Rank + d.rank}
			if !sq.WithinBounds() {
				break
			}
			occupant := b.Piece(sq)
			if occupant.IsEmpty() {
				continue
			}
			if occupant.Color == by && occupant.Type == kind {
				return true
			}
			break
		}
	}
	return false
}

func steppingAttack(target Square, by Color, b *Board, deltas []delta, kind PieceType) bool {
	for _, d := range deltas {
		sq := Square{File: target.File + d.file, Rank: target.Rank + d.rank}
		if !sq.WithinBounds() {
			continue
		}
		occupant := b.Piece(sq)
		if occupant.Color == by && occupant.Type == kind {
			return true
		}
	}
	return false
}

// pawnAttacks checks the inverse of the pawn take deltas: a white pawn
// attacking this square must sit one rank below it.
func pawnAttacks(target Square, by Color, b *Board) bool {
	back := -pawnDirection(by)
	deltas := []delta{{1, back}, {-1, back}}
	return steppingAttack(target, by, b, deltas, PiecePawn)
}

func knightAttacks(target Square, by Color, b *Board) bool {
	return steppingAttack(target, by, b, knightDeltas, PieceKnight)
}

func bishopAttacks(target Square, by Color, b *Board) bool {
	return slidingAttack(target, by, b, diagonalDirs, PieceBishop)
}

func rookAttacks(target Square, by Color, b *Board) bool {
	return slidingAttack(target, by, b, straightDirs, PieceRook)
}

func queenAttacks(target Square, by Color, b *Board) bool {
	return slidingAttack(target, by, b, royalDirs, PieceQueen)
}

func kingAttacks(target Square, by Color, b *Board) bool {
	return steppingAttack(target, by, b, royalDirs, PieceKing)
}

// enPassantMoves finds the side's pawns that sit diagonally adjacent to the
// recorded en-passant target and builds the tagged capture moves.
func enPassantMoves(target Square, c Color, b *Board) []Move {
	fromRank := target.Rank - pawnDirection(c)
	var moves []Move
	for _, df := range []int{-1, 1} {
		from := Square{File: target.File + df, Rank: fromRank}
		if !from.WithinBounds() {
			continue
		}
		if b.Piece(from) == (Piece{Type: PiecePawn, Color: c}) {
			moves = append(moves, Move{From: from, To: target, EnPassant: true})
		}
	}
	return moves
}

// promotionTypes are the four kinds a pawn may promote into.
var promotionTypes = []PieceType{PieceKnight, PieceBishop, PieceRook, PieceQueen}

// isPawnMoveToPromotionRank reports whether the move takes a pawn to the
// farthest rank (pushes and diagonal captures both promote).
func isPawnMoveToPromotionRank(m Move, b *Board) bool {
	piece := b.Piece(m.From)
	return piece.Type == PiecePawn && m.To.Rank == promotionRank(piece.Color)
}

// expandPromotions replaces a promoting move with its four variants.
func expandPromotions(m Move) []Move {
	moves := make([]Move, 0, len(promotionTypes))
	for _, t := range promotionTypes {
		variant := m
		variant.Promotion = t
		moves = append(moves, variant)
	}
	return moves
}
