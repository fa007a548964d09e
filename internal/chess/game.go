// FILE: internal/chess/game.go
package chess

import (
	"fmt"
	"strings"
)

// Status is the game state machine tag. WaitingForPlayers and InProgress
// are the only non-terminal states; Aborted is reachable from anywhere by
// external cancellation.
type Status int

const (
	StatusWaitingForPlayers Status = iota
	StatusInProgress
	StatusCheckmate
	StatusStalemate
	StatusDrawRepetition
	StatusDrawFiftyMoveRule
	StatusAborted
)

func (s Status) String() string {
	switch s {
	case StatusWaitingForPlayers:
		return "waiting_for_players"
	case StatusInProgress:
		return "in_progress"
	case StatusCheckmate:
		return "checkmate"
	case StatusStalemate:
		return "stalemate"
	case StatusDrawRepetition:
		return "draw_repetition"
	case StatusDrawFiftyMoveRule:
		return "draw_fifty_move_rule"
	case StatusAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// ParseStatus accepts the canonical underscore form and the space-separated
// variant, case-insensitively.
func ParseStatus(s string) (Status, bool) {
	normalized := strings.ToLower(strings.ReplaceAll(s, " ", "_"))
	for _, status := range []Status{
		StatusWaitingForPlayers, StatusInProgress, StatusCheckmate, StatusStalemate,
		StatusDrawRepetition, StatusDrawFiftyMoveRule, StatusAborted,
	} {
		if status.String() == normalized {
			return status, true
		}
	}
	return StatusWaitingForPlayers, false
}

// Terminal reports whether no further moves can be made.
func (s Status) Terminal() bool {
	switch s {
	case StatusWaitingForPlayers, StatusInProgress:
		return false
	default:
		return true
	}
}

// Game orchestrates a single chess game: turn enforcement, the legal-move
// pipeline, move execution and status transitions. It is the single writer
// of everything it owns; mutating one instance from two call sites
// concurrently requires external serialization (the repository layer keys
// updates by game ID).
type Game struct {
	board   *Board
	moves   []Move
	history []string // FEN before each move, append-only
	state   *FENState
	players map[Color]string
	status  Status
}

// NewGame starts a game with one registered player. An empty startingFEN
// means the standard initial position.
func NewGame(player, colorName, startingFEN string) (*Game, error) {
	color, ok := ColorFromName(colorName)
	if !ok {
		return nil, fmt.Errorf("%w: unknown color %q", ErrGameState, colorName)
	}
	if startingFEN == "" {
		startingFEN = StartingFEN
	}
	state, err := ParseFEN(startingFEN)
	if err != nil {
		return nil, err
	}
	board, err := BoardFromPosition(state.Position)
	if err != nil {
		return nil, err
	}
	return &Game{
		board:   board,
		state:   state,
		players: map[Color]string{color: player},
		status:  StatusWaitingForPlayers,
	}, nil
}

// FromModel reconstructs a Game from its persisted record. Status and side
// names are validated before any board construction is attempted.
func FromModel(m GameModel) (*Game, error) {
	status, ok := ParseStatus(m.Status)
	if !ok {
		return nil, fmt.Errorf("%w: unknown status %q", ErrGameState, m.Status)
	}
	players := make(map[Color]string, len(m.Players))
	for name, player := range m.Players {
		color, ok := ColorFromName(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown side name %q", ErrGameState, name)
		}
		players[color] = player
	}

	state, err := ParseFEN(m.CurrentFEN)
	if err != nil {
		return nil, err
	}
	board, err := BoardFromPosition(state.Position)
	if err != nil {
		return nil, err
	}
	moves := make([]Move, 0, len(m.MovesUCI))
	for _, uci := range m.MovesUCI {
		move, err := MoveFromUCI(uci)
		if err != nil {
			return nil, err
		}
		moves = append(moves, move)
	}
	history := append([]string(nil), m.HistoryFEN...)

	return &Game{
		board:   board,
		moves:   moves,
		history: history,
		state:   state,
		players: players,
		status:  status,
	}, nil
}

// ToModel serializes the game back into its transport record.
func (g *Game) ToModel() GameModel {
	players := make(map[string]string, len(g.players))
	for color, player := range g.players {
		players[color.Name()] = player
	}
	moves := make([]string, 0, len(g.moves))
	for _, m := range g.moves {
		moves = append(moves, m.UCI())
	}
	winner, _ := g.Winner()
	return GameModel{
		CurrentFEN: g.state.FEN(),
		HistoryFEN: append([]string(nil), g.history...),
		MovesUCI:   moves,
		Players:    players,
		Status:     g.status.String(),
		Winner:     winner,
	}
}

func (g *Game) Status() Status {
	return g.status
}

func (g *Game) Board() *Board {
	return g.board
}

func (g *Game) State() *FENState {
	return g.state
}

// PlayerColor looks up the color a player is registered for.
func (g *Game) PlayerColor(player string) (Color, bool) {
	for color, name := range g.players {
		if name == player {
			return color, true
		}
	}
	return ColorNone, false
}

// Winner is defined only at checkmate: the side to move is the mated side,
// so the opponent's player wins.
func (g *Game) Winner() (string, bool) {
	if g.status != StatusCheckmate {
		return "", false
	}
	winner, ok := g.players[OppositeColor(g.state.ColorToMove)]
	return winner, ok
}

// RegisterPlayer adds the second player, who takes the remaining color, and
// starts the game. A third registration is rejected.
func (g *Game) RegisterPlayer(player string) error {
	if g.status != StatusWaitingForPlayers {
		return fmt.Errorf("%w: game is not accepting players (status %s)", ErrGameState, g.status)
	}
	color := ColorWhite
	for registered := range g.players {
		color = OppositeColor(registered)
	}
	g.players[color] = player
	g.status = StatusInProgress
	return nil
}

// Abort cancels the game from any state. Terminal.
func (g *Game) Abort() {
	g.status = StatusAborted
}

// LegalMoves returns the UCI-encoded legal moves for the player, after
// verifying the game is in progress and it is that player's turn. No board
// work happens when either check fails.
func (g *Game) LegalMoves(player string) ([]string, error) {
	if err := g.assertPlayable(player); err != nil {
		return nil, err
	}
	color, _ := g.PlayerColor(player)
	legal := g.generateLegalMoves(color)
	ucis := make([]string, 0, len(legal))
	for _, m := range legal {
		ucis = append(ucis, m.UCI())
	}
	return ucis, nil
}

// MakeMove validates and executes one move, then re-evaluates the game
// status. It either fully succeeds or fails with state untouched.
func (g *Game) MakeMove(uci, player string) error {
	if err := g.assertPlayable(player); err != nil {
		return err
	}
	color, _ := g.PlayerColor(player)

	submitted, err := MoveFromUCI(strings.ToLower(strings.TrimSpace(uci)))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}

	// Match against the freshly computed legal set. The matched move
	// carries the castling/en-passant tags the UCI string cannot express.
	var accepted *Move
	for _, legal := range g.generateLegalMoves(color) {
		if legal.UCI() == submitted.UCI() {
			m := legal
			accepted = &m
			break
		}
	}
	if accepted == nil {
		return fmt.Errorf("%w: %s", ErrIllegalMove, submitted.UCI())
	}

	snapshot := AcceptMove(*accepted, g.board)
	preFEN := g.state.FEN()

	applyMoveToBoard(g.board, *accepted)
	g.updateState(snapshot)

	g.history = append(g.history, preFEN)
	g.moves = append(g.moves, *accepted)
	g.evaluateStatus()
	return nil
}

func (g *Game) assertPlayable(player string) error {
	if g.status != StatusInProgress {
		return fmt.Errorf("%w: game is not in progress (status %s)", ErrGameState, g.status)
	}
	color, ok := g.PlayerColor(player)
	if !ok || color != g.state.ColorToMove {
		waiting := g.players[g.state.ColorToMove]
		return fmt.Errorf("%w: waiting for %s to move", ErrNotYourTurn, waiting)
	}
	return nil
}

// generateLegalMoves runs the full pipeline: pseudo-legal candidates,
// castling and en-passant candidates, the check-safety filter on a board
// clone, and promotion expansion.
func (g *Game) generateLegalMoves(color Color) []Move {
	candidates := g.board.GenerateCandidateMoves(color)

	if directions := g.legalCastlingDirections(color); len(directions) > 0 {
		for _, d := range directions {
			candidates = append(candidates, candidateCastlingMove(d))
		}
	}

	if g.state.EnPassant != nil {
		candidates = append(candidates, enPassantMoves(*g.state.EnPassant, color, g.board)...)
	}

	var legal []Move
	for _, candidate := range candidates {
		if g.leavesOwnKingInCheck(candidate, color) {
			continue
		}
		if isPawnMoveToPromotionRank(candidate, g.board) {
			legal = append(legal, expandPromotions(candidate)...)
		} else {
			legal = append(legal, candidate)
		}
	}
	return legal
}

// leavesOwnKingInCheck simulates the move on a disposable board copy. The
// authoritative board is never mutated during candidate evaluation.
func (g *Game) leavesOwnKingInCheck(m Move, color Color) bool {
	scratch := g.board.Clone()
	applyMoveToBoard(scratch, m)
	return scratch.IsCheck(color)
}

// legalCastlingDirections checks, per direction: not currently in check,
// right not revoked, corridor between king and rook homes unoccupied, and
// no square on the king's path (through its destination) attacked. A
// failure excludes only that direction.
func (g *Game) legalCastlingDirections(color Color) []CastlingDirection {
	if !g.state.CanCastle(color) {
		return nil
	}
	if g.board.IsCheck(color) {
		return nil
	}
	opponent := OppositeColor(color)
	var legal []CastlingDirection
	for _, d := range castlingDirections(color) {
		if !g.state.HasCastlingRight(d) {
			continue
		}
		rule := castlingRules[d]
		if g.board.IsAnyOccupied(squaresBetween(rule.KingFrom, rule.RookFrom)) {
			continue
		}
		if g.board.IsAnyAttacked(kingPath(d), opponent) {
			continue
		}
		legal = append(legal, d)
	}
	return legal
}

// applyMoveToBoard performs the raw board change for a tagged legal move:
// castling relocates king and rook, en passant removes the bypassed pawn,
// promotion rewrites the destination after the base relocation.
func applyMoveToBoard(b *Board, m Move) {
	switch {
	case m.Castle != CastleNone:
		rule := castlingRules[m.Castle]
		b.MovePieces(
			Move{From: rule.KingFrom, To: rule.KingTo},
			Move{From: rule.RookFrom, To: rule.RookTo},
		)
	case m.EnPassant:
		// The captured pawn shares the target's file and the moving
		// pawn's origin rank.
		b.MovePiece(m)
		b.RemovePiece(Square{File: m.To.File, Rank: m.From.Rank})
	default:
		b.MovePiece(m)
	}
	if m.Promotion != PieceEmpty {
		b.PromotePiece(m.To, m.Promotion)
	}
}

// updateState refreshes the FENState after the board change. Everything
// here depends on "whose move was this", so the side to move flips last.
func (g *Game) updateState(snapshot AcceptedMove) {
	mover := g.state.ColorToMove

	g.state.Position = g.board.PositionString()
	g.revokeCastlingRights(snapshot)
	g.state.EnPassant = enPassantTarget(snapshot)

	if snapshot.Moving.Type == PiecePawn || !snapshot.Captured.IsEmpty() {
		g.state.ResetHalfMoveClock()
	} else {
		g.state.IncrementHalfMoveClock()
	}
	if mover == ColorBlack {
		g.state.IncrementFullMoves()
	}
	g.state.ColorToMove = OppositeColor(mover)
}

// revokeCastlingRights applies the revocation rules against the pre-move
// snapshot: castling or any king move clears both of the mover's rights; a
// rook leaving its home square clears that right; capturing a rook on its
// home square clears the opponent's right.
func (g *Game) revokeCastlingRights(snapshot AcceptedMove) {
	mover := snapshot.Moving.Color
	opponent := OppositeColor(mover)

	if snapshot.Move.Castle != CastleNone || snapshot.Moving.Type == PieceKing {
		g.state.RevokeAllCastlingRights(mover)
	}
	if snapshot.Moving.Type == PieceRook {
		for _, d := range castlingDirections(mover) {
			if g.state.HasCastlingRight(d) && snapshot.Move.From == castlingRules[d].RookFrom {
				g.state.RevokeCastlingRight(d)
			}
		}
	}
	if snapshot.Captured.Type == PieceRook && snapshot.Captured.Color == opponent {
		for _, d := range castlingDirections(opponent) {
			if g.state.HasCastlingRight(d) && snapshot.Move.To == castlingRules[d].RookFrom {
				g.state.RevokeCastlingRight(d)
			}
		}
	}
}

// enPassantTarget is set only after a two-rank pawn advance: one rank
// behind the destination, in the mover's direction of travel.
func enPassantTarget(snapshot AcceptedMove) *Square {
	if snapshot.Moving.Type != PiecePawn {
		return nil
	}
	ranksMoved := snapshot.Move.To.Rank - snapshot.Move.From.Rank
	if ranksMoved != 2 && ranksMoved != -2 {
		return nil
	}
	target := Square{
		File: snapshot.Move.From.File,
		Rank: snapshot.Move.From.Rank + pawnDirection(snapshot.Moving.Color),
	}
	return &target
}

// evaluateStatus runs the end-of-game checks in a fixed order, each true
// result overwriting the last: checkmate, stalemate, repetition, fifty
// moves. Repetition and the fifty-move rule are independent of the mate
// tests and run unconditionally.
func (g *Game) evaluateStatus() {
	next := g.state.ColorToMove
	inCheck := g.board.IsCheck(next)
	hasMoves := len(g.generateLegalMoves(next)) > 0

	if inCheck && !hasMoves {
		g.status = StatusCheckmate
	}
	if !inCheck && !hasMoves {
		g.status = StatusStalemate
	}
	if g.isRepetitionDraw() {
		g.status = StatusDrawRepetition
	}
	if g.state.HalfMoveClock >= 50 {
		g.status = StatusDrawFiftyMoveRule
	}
}

// isRepetitionDraw counts history entries sharing the current repetition
// key. The current position is the first occurrence; two more in the log
// makes three.
func (g *Game) isRepetitionDraw() bool {
	key := g.state.RepetitionKey()
	count := 0
	for _, fen := range g.history {
		if RepetitionKeyOf(fen) == key {
			count++
			if count >= 2 {
				return true
			}
		}
	}
	return false
}
