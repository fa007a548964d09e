// FILE: internal/chess/fen_test.go
package chess

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseFENRoundTrip(t *testing.T) {
	fens := []string{
		StartingFEN,
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		"4k3/8/8/8/8/8/8/R3K3 w Q - 0 1",
		"8/8/8/8/8/8/8/4K2k b - - 42 77",
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 10 20",
	}
	for _, fen := range fens {
		state, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if got := state.FEN(); got != fen {
			t.Errorf("FEN() = %q, want %q", got, fen)
		}
	}
}

func TestParseFENInvalid(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"empty", ""},
		{"five fields", "8/8/8/8/8/8/8/8 w - - 0"},
		{"seven fields", "8/8/8/8/8/8/8/8 w - - 0 1 extra"},
		{"bad placement", "9/8/8/8/8/8/8/8 w - - 0 1"},
		{"bad side", "8/8/8/8/8/8/8/8 x - - 0 1"},
		{"bad castling letter", "8/8/8/8/8/8/8/8 w X - 0 1"},
		{"castling out of order", "8/8/8/8/8/8/8/8 w QK - 0 1"},
		{"bad en passant", "8/8/8/8/8/8/8/8 w - z9 0 1"},
		{"negative clock", "8/8/8/8/8/8/8/8 w - - -1 1"},
		{"non-numeric counter", "8/8/8/8/8/8/8/8 w - - 0 one"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseFEN(tc.fen); err == nil {
				t.Errorf("ParseFEN(%q): expected error", tc.fen)
			}
		})
	}
}

func TestStartingPosition(t *testing.T) {
	state := StartingPosition()
	if state.ColorToMove != ColorWhite {
		t.Errorf("side to move = %s, want white", state.ColorToMove.Name())
	}
	if !state.CanCastle(ColorWhite) || !state.CanCastle(ColorBlack) {
		t.Error("all castling rights should be intact")
	}
	if state.EnPassant != nil {
		t.Error("en passant target should be empty")
	}
	if state.HalfMoveClock != 0 || state.FullMoves != 1 {
		t.Errorf("counters = %d %d, want 0 1", state.HalfMoveClock, state.FullMoves)
	}
}

func TestRepetitionKeyIgnoresCounters(t *testing.T) {
	a, err := ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	b, err := ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 30 16")
	if err != nil {
		t.Fatal(err)
	}
	if a.RepetitionKey() != b.RepetitionKey() {
		t.Errorf("keys differ: %q vs %q", a.RepetitionKey(), b.RepetitionKey())
	}

	// Different en passant targets are different positions.
	c, err := ParseFEN("4k3/8/8/8/4P3/8/8/4K3 b - e3 0 1")
	if err != nil {
		t.Fatal(err)
	}
	d, err := ParseFEN("4k3/8/8/8/4P3/8/8/4K3 b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if c.RepetitionKey() == d.RepetitionKey() {
		t.Error("en passant target should be part of the repetition key")
	}
}

func TestRepetitionKeyOf(t *testing.T) {
	fen := "4k3/8/8/8/8/8/8/4K3 w Kq e6 12 34"
	want := "4k3/8/8/8/8/8/8/4K3 w Kq e6"
	if got := RepetitionKeyOf(fen); got != want {
		t.Errorf("RepetitionKeyOf = %q, want %q", got, want)
	}
}

func TestCastlingRights(t *testing.T) {
	state, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	state.RevokeCastlingRight(WhiteKingSide)
	if state.HasCastlingRight(WhiteKingSide) {
		t.Error("white king side right should be revoked")
	}
	if !state.CanCastle(ColorWhite) {
		t.Error("white should still hold the queen side right")
	}
	if got := state.FEN(); got != "r3k2r/8/8/8/8/8/8/R3K2R w Qkq - 0 1" {
		t.Errorf("FEN after revocation = %q", got)
	}

	state.RevokeAllCastlingRights(ColorBlack)
	if state.CanCastle(ColorBlack) {
		t.Error("black rights should all be revoked")
	}

	state.RevokeAllCastlingRights(ColorWhite)
	if got := state.FEN(); got != "r3k2r/8/8/8/8/8/8/R3K2R w - - 0 1" {
		t.Errorf("FEN with no rights = %q", got)
	}
}

func TestFENStateCounters(t *testing.T) {
	state := StartingPosition()
	state.IncrementHalfMoveClock()
	state.IncrementHalfMoveClock()
	state.IncrementFullMoves()
	if state.HalfMoveClock != 2 || state.FullMoves != 2 {
		t.Errorf("counters = %d %d, want 2 2", state.HalfMoveClock, state.FullMoves)
	}
	state.ResetHalfMoveClock()
	if state.HalfMoveClock != 0 {
		t.Errorf("half move clock = %d after reset", state.HalfMoveClock)
	}
}

func TestParseFENFields(t *testing.T) {
	state, err := ParseFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	if err != nil {
		t.Fatal(err)
	}
	want := &FENState{
		Position:    "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR",
		ColorToMove: ColorBlack,
		CastlingRights: map[CastlingDirection]bool{
			WhiteKingSide: true, WhiteQueenSide: true,
			BlackKingSide: true, BlackQueenSide: true,
		},
		EnPassant:     &Square{File: 5, Rank: 3},
		HalfMoveClock: 0,
		FullMoves:     1,
	}
	if diff := cmp.Diff(want, state); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}
