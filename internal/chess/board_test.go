// FILE: internal/chess/board_test.go
package chess

import (
	"strings"
	"testing"
)

func TestBoardFromPositionRoundTrip(t *testing.T) {
	positions := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",
		"8/8/8/8/3B4/8/8/8",
		"r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R",
		"8/8/8/8/8/8/8/8",
	}
	for _, position := range positions {
		b, err := BoardFromPosition(position)
		if err != nil {
			t.Fatalf("BoardFromPosition(%q): %v", position, err)
		}
		if got := b.PositionString(); got != position {
			t.Errorf("PositionString() = %q, want %q", got, position)
		}
	}
}

func TestBoardFromPositionInvalid(t *testing.T) {
	positions := []string{
		"",
		"8/8/8/8/8/8/8",          // seven ranks
		"9/8/8/8/8/8/8/8",        // rank overflow
		"7/8/8/8/8/8/8/8",        // rank underflow
		"xnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR", // bad piece letter
		"rnbqkbnrr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",
	}
	for _, position := range positions {
		if _, err := BoardFromPosition(position); err == nil {
			t.Errorf("BoardFromPosition(%q): expected error", position)
		}
	}
}

func TestCandidateMoveCounts(t *testing.T) {
	// Each piece alone on d4 of an otherwise empty board.
	tests := []struct {
		position string
		want     int
	}{
		{"8/8/8/8/3B4/8/8/8", 13},
		{"8/8/8/8/3R4/8/8/8", 14},
		{"8/8/8/8/3Q4/8/8/8", 27},
		{"8/8/8/8/3N4/8/8/8", 8},
		{"8/8/8/8/3K4/8/8/8", 8},
	}
	for _, tc := range tests {
		b, err := BoardFromPosition(tc.position)
		if err != nil {
			t.Fatalf("BoardFromPosition(%q): %v", tc.position, err)
		}
		got := len(b.GenerateCandidateMoves(ColorWhite))
		if got != tc.want {
			t.Errorf("candidates for %q = %d, want %d", tc.position, got, tc.want)
		}
	}
}

func TestCandidatePawnMoves(t *testing.T) {
	tests := []struct {
		name     string
		position string
		color    Color
		want     []string
	}{
		{
			name:     "home rank double push",
			position: "8/8/8/8/8/8/4P3/8",
			color:    ColorWhite,
			want:     []string{"e2e3", "e2e4"},
		},
		{
			name:     "advanced pawn single push",
			position: "8/8/8/4P3/8/8/8/8",
			color:    ColorWhite,
			want:     []string{"e5e6"},
		},
		{
			name:     "blocked pawn no pushes",
			position: "8/8/8/8/4p3/4P3/8/8",
			color:    ColorWhite,
			want:     nil,
		},
		{
			name:     "double push blocked by distant piece",
			position: "8/8/8/8/4p3/8/4P3/8",
			color:    ColorWhite,
			want:     []string{"e2e3"},
		},
		{
			name:     "diagonal captures",
			position: "8/8/8/8/3p1p2/4P3/8/8",
			color:    ColorWhite,
			want:     []string{"e3e4", "e3d4", "e3f4"},
		},
		{
			name:     "black home rank",
			position: "8/4p3/8/8/8/8/8/8",
			color:    ColorBlack,
			want:     []string{"e7e6", "e7e5"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := BoardFromPosition(tc.position)
			if err != nil {
				t.Fatalf("BoardFromPosition: %v", err)
			}
			moves := b.GenerateCandidateMoves(tc.color)
			got := make(map[string]bool, len(moves))
			for _, m := range moves {
				got[m.UCI()] = true
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %d moves %v, want %d", len(got), keys(got), len(tc.want))
			}
			for _, uci := range tc.want {
				if !got[uci] {
					t.Errorf("missing move %s in %v", uci, keys(got))
				}
			}
		})
	}
}

func TestIsSquareAttacked(t *testing.T) {
	tests := []struct {
		name     string
		position string
		square   string
		by       Color
		want     bool
	}{
		{"rook along file", "8/8/8/8/8/8/8/R7", "a8", ColorWhite, true},
		{"rook blocked", "8/8/8/P7/8/8/8/R7", "a8", ColorWhite, false},
		{"bishop diagonal", "8/8/8/8/6b1/8/8/8", "d1", ColorBlack, true},
		{"knight jump", "8/8/8/8/8/5n2/8/8", "e1", ColorBlack, true},
		{"white pawn attacks up", "8/8/8/8/8/8/4P3/8", "d3", ColorWhite, true},
		{"white pawn does not attack forward", "8/8/8/8/8/8/4P3/8", "e3", ColorWhite, false},
		{"black pawn attacks down", "8/8/8/4p3/8/8/8/8", "d4", ColorBlack, true},
		{"king adjacency", "8/8/8/8/8/8/8/4K3", "d2", ColorWhite, true},
		{"queen across rank", "8/8/8/8/q7/8/8/8", "h4", ColorBlack, true},
		{"wrong color does not attack", "8/8/8/8/8/8/8/R7", "a8", ColorBlack, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := BoardFromPosition(tc.position)
			if err != nil {
				t.Fatalf("BoardFromPosition: %v", err)
			}
			if got := b.IsSquareAttacked(mustSquare(tc.square), tc.by); got != tc.want {
				t.Errorf("IsSquareAttacked(%s, %s) = %v, want %v", tc.square, tc.by.Name(), got, tc.want)
			}
		})
	}
}

func TestIsCheck(t *testing.T) {
	b, err := BoardFromPosition("4k3/8/8/8/8/6b1/8/R3K3")
	if err != nil {
		t.Fatal(err)
	}
	if !b.IsCheck(ColorWhite) {
		t.Error("white king on e1 should be in check from bishop g3")
	}
	if b.IsCheck(ColorBlack) {
		t.Error("black king on e8 should not be in check")
	}
}

func TestCountMaterial(t *testing.T) {
	b, err := BoardFromPosition("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR")
	if err != nil {
		t.Fatal(err)
	}
	totals := b.CountMaterial()
	if totals[ColorWhite] != 39 || totals[ColorBlack] != 39 {
		t.Errorf("starting material = %v, want 39 per side", totals)
	}
}

func TestKingSquare(t *testing.T) {
	b, err := BoardFromPosition("4k3/8/8/8/8/8/8/4K3")
	if err != nil {
		t.Fatal(err)
	}
	sq, err := b.KingSquare(ColorWhite)
	if err != nil {
		t.Fatal(err)
	}
	if sq != mustSquare("e1") {
		t.Errorf("white king at %s, want e1", sq.Algebraic())
	}

	empty, err := BoardFromPosition("8/8/8/8/8/8/8/8")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := empty.KingSquare(ColorWhite); err == nil {
		t.Error("expected error for missing king")
	}
}

func TestToASCII(t *testing.T) {
	b, err := BoardFromPosition("4k3/8/8/8/8/8/8/4K3")
	if err != nil {
		t.Fatal(err)
	}
	ascii := b.ToASCII()
	lines := strings.Split(ascii, "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 lines, got %d", len(lines))
	}
	if lines[0] != "  a b c d e f g h" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "k") {
		t.Errorf("rank 8 line should contain black king: %q", lines[1])
	}
	if !strings.Contains(lines[8], "K") {
		t.Errorf("rank 1 line should contain white king: %q", lines[8])
	}
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
