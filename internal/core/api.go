// FILE: internal/core/api.go
package core

// Request types

type CreateGameRequest struct {
	PlayerName  string `json:"playerName" validate:"required,min=1,max=64"`
	Color       string `json:"color" validate:"required,oneof=white black"`
	StartingFEN string `json:"startingFen,omitempty" validate:"omitempty,max=100"`
}

type JoinGameRequest struct {
	PlayerName string `json:"playerName" validate:"required,min=1,max=64"`
}

type MoveRequest struct {
	PlayerName string `json:"playerName" validate:"required,min=1,max=64"`
	From       string `json:"from" validate:"required,len=2"`
	To         string `json:"to" validate:"required,len=2"`
	Promotion  string `json:"promotion,omitempty" validate:"omitempty,oneof=n b r q"`
}

// Response types

type GameResponse struct {
	GameID      string            `json:"gameId"`
	Players     map[string]string `json:"players"` // "white"/"black" -> player name
	FEN         string            `json:"fen"`
	StartingFEN string            `json:"startingFen"`
	Moves       []string          `json:"moves"`
	Status      string            `json:"status"` // "waiting_for_players", "in_progress", ...
	Winner      string            `json:"winner,omitempty"`
}

type LegalMovesResponse struct {
	GameID     string   `json:"gameId"`
	PlayerName string   `json:"playerName"`
	Color      string   `json:"color"` // "white" or "black"
	LegalMoves []string `json:"legalMoves"`
}

type BoardResponse struct {
	FEN   string `json:"fen"`
	Board string `json:"board"` // ASCII representation
}
