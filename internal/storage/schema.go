// FILE: internal/storage/schema.go
package storage

import "time"

// GameRecord represents a row in the games table. The JSON columns hold
// the serialized history, move list, and player map exactly as the rules
// engine produced them.
type GameRecord struct {
	GameID     string    `db:"game_id"`
	CurrentFEN string    `db:"current_fen"`
	HistoryFEN string    `db:"history_fen"`
	MovesUCI   string    `db:"moves_uci"`
	Players    string    `db:"players"`
	Status     string    `db:"status"`
	Winner     string    `db:"winner"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// Schema defines the SQLite database structure
const Schema = `
CREATE TABLE IF NOT EXISTS games (
	game_id TEXT PRIMARY KEY,
	current_fen TEXT NOT NULL,
	history_fen TEXT NOT NULL DEFAULT '[]',
	moves_uci TEXT NOT NULL DEFAULT '[]',
	players TEXT NOT NULL DEFAULT '{}',
	status TEXT NOT NULL,
	winner TEXT,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_games_status ON games(status);
`
