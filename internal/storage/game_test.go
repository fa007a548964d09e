// FILE: internal/storage/game_test.go
package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"chessmate/internal/chess"
	"chessmate/internal/service"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "test.db"), true)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.InitDB(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleModel() chess.GameModel {
	return chess.GameModel{
		CurrentFEN: chess.StartingFEN,
		HistoryFEN: []string{},
		MovesUCI:   []string{},
		Players:    map[string]string{"white": "alice"},
		Status:     "waiting_for_players",
	}
}

func TestCreateAndGetGame(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	model := sampleModel()
	gameID, err := store.CreateGame(ctx, model)
	if err != nil {
		t.Fatal(err)
	}
	if gameID == "" {
		t.Fatal("expected a generated game ID")
	}

	got, err := store.GetGame(ctx, gameID)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(model, got); diff != "" {
		t.Errorf("stored model (-want +got):\n%s", diff)
	}
}

func TestGetGameNotFound(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.GetGame(context.Background(), "nope"); !errors.Is(err, service.ErrGameNotFound) {
		t.Errorf("got %v, want ErrGameNotFound", err)
	}
}

func TestUpdateGame(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	gameID, err := store.CreateGame(ctx, sampleModel())
	if err != nil {
		t.Fatal(err)
	}

	updated := chess.GameModel{
		CurrentFEN: "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		HistoryFEN: []string{chess.StartingFEN},
		MovesUCI:   []string{"e2e4"},
		Players:    map[string]string{"white": "alice", "black": "bob"},
		Status:     "in_progress",
	}
	if err := store.UpdateGame(ctx, gameID, updated); err != nil {
		t.Fatal(err)
	}

	got, err := store.GetGame(ctx, gameID)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(updated, got); diff != "" {
		t.Errorf("updated model (-want +got):\n%s", diff)
	}

	if err := store.UpdateGame(ctx, "missing", updated); !errors.Is(err, service.ErrGameNotFound) {
		t.Errorf("unknown game: got %v, want ErrGameNotFound", err)
	}
}

func TestWinnerColumn(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	model := sampleModel()
	model.Status = "checkmate"
	model.Winner = "alice"
	gameID, err := store.CreateGame(ctx, model)
	if err != nil {
		t.Fatal(err)
	}

	got, err := store.GetGame(ctx, gameID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Winner != "alice" {
		t.Errorf("winner = %q, want alice", got.Winner)
	}
}

func TestDeleteGame(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	gameID, err := store.CreateGame(ctx, sampleModel())
	if err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteGame(ctx, gameID); err != nil {
		t.Fatal(err)
	}
	if _, err := store.GetGame(ctx, gameID); !errors.Is(err, service.ErrGameNotFound) {
		t.Errorf("after delete: got %v, want ErrGameNotFound", err)
	}
	if err := store.DeleteGame(ctx, gameID); !errors.Is(err, service.ErrGameNotFound) {
		t.Errorf("double delete: got %v, want ErrGameNotFound", err)
	}
}

func TestIsHealthy(t *testing.T) {
	store := newTestStore(t)
	if !store.IsHealthy() {
		t.Error("fresh store should be healthy")
	}
}
