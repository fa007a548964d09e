// FILE: internal/chess/errors.go
package chess

import "errors"

// Failure kinds surfaced to the service/API layers. Every public Game
// operation either fully succeeds or fails with one of these and leaves
// state untouched.
var (
	// ErrInvalidFEN marks position or FEN strings that do not parse.
	ErrInvalidFEN = errors.New("invalid FEN")

	// ErrGameState marks operations not allowed in the current status,
	// such as registering a third player or moving in a finished game.
	ErrGameState = errors.New("invalid game state")

	// ErrNotYourTurn marks actions by a side other than the side to move.
	ErrNotYourTurn = errors.New("not your turn")

	// ErrIllegalMove marks a well-formed move that is not in the legal set.
	ErrIllegalMove = errors.New("illegal move")
)
