// FILE: cmd/perft/main.go
// Package main counts legal move paths to a fixed depth from a FEN
// position. Used to cross-check the move generator against known node
// counts.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/pkg/profile"

	"chessmate/internal/chess"
)

func main() {
	var (
		fen        = flag.String("fen", chess.StartingFEN, "Position to search from")
		depth      = flag.Int("depth", 4, "Search depth in plies")
		divide     = flag.Bool("divide", false, "Print per-move node counts at the root")
		cpuProfile = flag.Bool("profile", false, "Write a CPU profile to the working directory")
	)
	flag.Parse()

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	state, err := chess.ParseFEN(*fen)
	if err != nil {
		log.Fatalf("Invalid FEN: %v", err)
	}

	start := time.Now()
	total := perft(state, *depth, *divide)
	elapsed := time.Since(start)

	fmt.Printf("perft(%d) = %d\n", *depth, total)
	fmt.Printf("elapsed: %s (%.0f nodes/s)\n", elapsed, float64(total)/elapsed.Seconds())
}

// perft walks the legal move tree by replaying each move through the
// full game state, so castling rights, en passant, and promotions are
// all exercised.
func perft(state *chess.FENState, depth int, divide bool) uint64 {
	if depth == 0 {
		return 1
	}

	moves := legalMoves(state)
	if depth == 1 && !divide {
		return uint64(len(moves))
	}

	var total uint64
	for _, uci := range moves {
		next, err := applyMove(state, uci)
		if err != nil {
			log.Fatalf("perft: move %s rejected: %v", uci, err)
		}
		nodes := perft(next, depth-1, false)
		if divide {
			fmt.Printf("%s: %d\n", uci, nodes)
		}
		total += nodes
	}
	return total
}

func legalMoves(state *chess.FENState) []string {
	game := gameAt(state)
	moves, err := game.LegalMoves(playerFor(state.ColorToMove))
	if err != nil {
		return nil
	}
	return moves
}

func applyMove(state *chess.FENState, uci string) (*chess.FENState, error) {
	game := gameAt(state)
	if err := game.MakeMove(uci, playerFor(state.ColorToMove)); err != nil {
		return nil, err
	}
	return chess.ParseFEN(game.ToModel().CurrentFEN)
}

// gameAt wraps a bare position in an in-progress game with both seats
// filled, which is what the move API operates on.
func gameAt(state *chess.FENState) *chess.Game {
	model := chess.GameModel{
		CurrentFEN: state.FEN(),
		Players:    map[string]string{"white": "white", "black": "black"},
		Status:     chess.StatusInProgress.String(),
	}
	game, err := chess.FromModel(model)
	if err != nil {
		log.Fatalf("perft: %v", err)
	}
	return game
}

func playerFor(c chess.Color) string {
	return c.Name()
}
