// FILE: internal/service/service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"chessmate/internal/chess"
	"chessmate/internal/core"
)

// ErrGameNotFound marks lookups of unknown game IDs.
var ErrGameNotFound = errors.New("game not found")

// Repository is the persistence boundary. Implementations must serialize
// updates per game ID; the rules engine itself is single-actor.
type Repository interface {
	CreateGame(ctx context.Context, model chess.GameModel) (string, error)
	GetGame(ctx context.Context, gameID string) (chess.GameModel, error)
	UpdateGame(ctx context.Context, gameID string, model chess.GameModel) error
	DeleteGame(ctx context.Context, gameID string) error
}

// Service orchestrates the rules engine around the repository: fetch the
// record, reconstruct the Game, operate, re-serialize, save.
type Service struct {
	repo Repository
}

func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateGame starts a new game for the first player.
func (s *Service) CreateGame(ctx context.Context, req core.CreateGameRequest) (core.GameResponse, error) {
	game, err := chess.NewGame(req.PlayerName, req.Color, req.StartingFEN)
	if err != nil {
		return core.GameResponse{}, err
	}
	model := game.ToModel()

	gameID, err := s.repo.CreateGame(ctx, model)
	if err != nil {
		return core.GameResponse{}, fmt.Errorf("create game: %w", err)
	}
	return gameResponse(gameID, model), nil
}

// JoinGame registers the second player, who takes the remaining color.
func (s *Service) JoinGame(ctx context.Context, gameID string, req core.JoinGameRequest) (core.GameResponse, error) {
	model, err := s.repo.GetGame(ctx, gameID)
	if err != nil {
		return core.GameResponse{}, err
	}
	game, err := chess.FromModel(model)
	if err != nil {
		return core.GameResponse{}, err
	}
	if err := game.RegisterPlayer(req.PlayerName); err != nil {
		return core.GameResponse{}, err
	}

	updated := game.ToModel()
	if err := s.repo.UpdateGame(ctx, gameID, updated); err != nil {
		return core.GameResponse{}, fmt.Errorf("save game: %w", err)
	}
	return gameResponse(gameID, updated), nil
}

// GetGame returns the current state. Used by clients in their polling loop.
func (s *Service) GetGame(ctx context.Context, gameID string) (core.GameResponse, error) {
	model, err := s.repo.GetGame(ctx, gameID)
	if err != nil {
		return core.GameResponse{}, err
	}
	return gameResponse(gameID, model), nil
}

// LegalMoves computes the mover's legal move set without mutating anything.
func (s *Service) LegalMoves(ctx context.Context, gameID, playerName string) (core.LegalMovesResponse, error) {
	model, err := s.repo.GetGame(ctx, gameID)
	if err != nil {
		return core.LegalMovesResponse{}, err
	}
	game, err := chess.FromModel(model)
	if err != nil {
		return core.LegalMovesResponse{}, err
	}
	moves, err := game.LegalMoves(playerName)
	if err != nil {
		return core.LegalMovesResponse{}, err
	}
	color, _ := game.PlayerColor(playerName)
	return core.LegalMovesResponse{
		GameID:     gameID,
		PlayerName: playerName,
		Color:      color.Name(),
		LegalMoves: moves,
	}, nil
}

// MakeMove executes one move and persists the updated record.
func (s *Service) MakeMove(ctx context.Context, gameID string, req core.MoveRequest) (core.GameResponse, error) {
	model, err := s.repo.GetGame(ctx, gameID)
	if err != nil {
		return core.GameResponse{}, err
	}
	game, err := chess.FromModel(model)
	if err != nil {
		return core.GameResponse{}, err
	}

	uci := req.From + req.To + req.Promotion
	if err := game.MakeMove(uci, req.PlayerName); err != nil {
		return core.GameResponse{}, err
	}

	updated := game.ToModel()
	if err := s.repo.UpdateGame(ctx, gameID, updated); err != nil {
		return core.GameResponse{}, fmt.Errorf("save game: %w", err)
	}
	return gameResponse(gameID, updated), nil
}

// GetBoard renders the current position as ASCII.
func (s *Service) GetBoard(ctx context.Context, gameID string) (core.BoardResponse, error) {
	model, err := s.repo.GetGame(ctx, gameID)
	if err != nil {
		return core.BoardResponse{}, err
	}
	game, err := chess.FromModel(model)
	if err != nil {
		return core.BoardResponse{}, err
	}
	return core.BoardResponse{
		FEN:   model.CurrentFEN,
		Board: game.Board().ToASCII(),
	}, nil
}

// DeleteGame removes the record.
func (s *Service) DeleteGame(ctx context.Context, gameID string) error {
	return s.repo.DeleteGame(ctx, gameID)
}

// gameResponse shapes a record for the API. Before the first move, the
// starting FEN equals the current FEN; afterwards it is the first history
// entry.
func gameResponse(gameID string, model chess.GameModel) core.GameResponse {
	startingFEN := model.CurrentFEN
	if len(model.HistoryFEN) > 0 {
		startingFEN = model.HistoryFEN[0]
	}
	moves := model.MovesUCI
	if moves == nil {
		moves = []string{}
	}
	return core.GameResponse{
		GameID:      gameID,
		Players:     model.Players,
		FEN:         model.CurrentFEN,
		StartingFEN: startingFEN,
		Moves:       moves,
		Status:      model.Status,
		Winner:      model.Winner,
	}
}
