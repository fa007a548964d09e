// FILE: internal/storage/game.go
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"chessmate/internal/chess"
	"chessmate/internal/service"
)

// CreateGame inserts a new game row and returns its generated ID.
func (s *Store) CreateGame(ctx context.Context, model chess.GameModel) (string, error) {
	record, err := recordFromModel(model)
	if err != nil {
		return "", err
	}
	record.GameID = uuid.NewString()
	now := time.Now().UTC()

	query := `INSERT INTO games (
		game_id, current_fen, history_fen, moves_uci, players, status, winner, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.ExecContext(ctx, query,
		record.GameID, record.CurrentFEN, record.HistoryFEN, record.MovesUCI,
		record.Players, record.Status, nullableWinner(record.Winner), now, now,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert game: %w", err)
	}
	return record.GameID, nil
}

// GetGame loads a game row by ID.
func (s *Store) GetGame(ctx context.Context, gameID string) (chess.GameModel, error) {
	query := `SELECT current_fen, history_fen, moves_uci, players, status, winner
		FROM games WHERE game_id = ?`

	var record GameRecord
	var winner sql.NullString
	err := s.db.QueryRowContext(ctx, query, gameID).Scan(
		&record.CurrentFEN, &record.HistoryFEN, &record.MovesUCI,
		&record.Players, &record.Status, &winner,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return chess.GameModel{}, service.ErrGameNotFound
	}
	if err != nil {
		return chess.GameModel{}, fmt.Errorf("failed to query game: %w", err)
	}
	record.Winner = winner.String

	return modelFromRecord(record)
}

// UpdateGame replaces the mutable columns of a game row.
func (s *Store) UpdateGame(ctx context.Context, gameID string, model chess.GameModel) error {
	record, err := recordFromModel(model)
	if err != nil {
		return err
	}

	query := `UPDATE games SET
		current_fen = ?, history_fen = ?, moves_uci = ?, players = ?,
		status = ?, winner = ?, updated_at = ?
	WHERE game_id = ?`

	result, err := s.db.ExecContext(ctx, query,
		record.CurrentFEN, record.HistoryFEN, record.MovesUCI, record.Players,
		record.Status, nullableWinner(record.Winner), time.Now().UTC(), gameID,
	)
	if err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return service.ErrGameNotFound
	}
	return nil
}

// DeleteGame removes a game row.
func (s *Store) DeleteGame(ctx context.Context, gameID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE game_id = ?`, gameID)
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return service.ErrGameNotFound
	}
	return nil
}

func recordFromModel(model chess.GameModel) (GameRecord, error) {
	history := model.HistoryFEN
	if history == nil {
		history = []string{}
	}
	moves := model.MovesUCI
	if moves == nil {
		moves = []string{}
	}
	players := model.Players
	if players == nil {
		players = map[string]string{}
	}

	historyJSON, err := json.Marshal(history)
	if err != nil {
		return GameRecord{}, fmt.Errorf("failed to encode history: %w", err)
	}
	movesJSON, err := json.Marshal(moves)
	if err != nil {
		return GameRecord{}, fmt.Errorf("failed to encode moves: %w", err)
	}
	playersJSON, err := json.Marshal(players)
	if err != nil {
		return GameRecord{}, fmt.Errorf("failed to encode players: %w", err)
	}

	return GameRecord{
		CurrentFEN: model.CurrentFEN,
		HistoryFEN: string(historyJSON),
		MovesUCI:   string(movesJSON),
		Players:    string(playersJSON),
		Status:     model.Status,
		Winner:     model.Winner,
	}, nil
}

func modelFromRecord(record GameRecord) (chess.GameModel, error) {
	model := chess.GameModel{
		CurrentFEN: record.CurrentFEN,
		Status:     record.Status,
		Winner:     record.Winner,
	}
	if err := json.Unmarshal([]byte(record.HistoryFEN), &model.HistoryFEN); err != nil {
		return chess.GameModel{}, fmt.Errorf("failed to decode history: %w", err)
	}
	if err := json.Unmarshal([]byte(record.MovesUCI), &model.MovesUCI); err != nil {
		return chess.GameModel{}, fmt.Errorf("failed to decode moves: %w", err)
	}
	if err := json.Unmarshal([]byte(record.Players), &model.Players); err != nil {
		return chess.GameModel{}, fmt.Errorf("failed to decode players: %w", err)
	}
	return model, nil
}

func nullableWinner(winner string) any {
	if winner == "" {
		return nil
	}
	return winner
}
