// FILE: internal/client/display.go
package client

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Terminal color codes
const (
	Reset   = "\033[0m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
)

// ColorsEnabled reports whether stdout is a terminal. Piped output stays
// plain so logs and scripts do not pick up escape codes.
func ColorsEnabled() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Colorize wraps text in a color code when stdout is a terminal.
func Colorize(color, text string) string {
	if !ColorsEnabled() {
		return text
	}
	return color + text + Reset
}

// Prompt returns a colored prompt string
func Prompt(text string) string {
	if !ColorsEnabled() {
		return text + " > "
	}
	return Yellow + text + " > " + Reset
}

// RenderBoard prints an ASCII board with colored pieces. The first and
// last lines carry the file letters, everything between is ranks.
func RenderBoard(asciiBoard string) {
	lines := strings.Split(asciiBoard, "\n")
	colored := ColorsEnabled()

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !colored {
			fmt.Println(line)
			continue
		}

		isFileLine := i == 0 || i == len(lines)-1 || !strings.ContainsAny(line, "12345678")

		for _, char := range line {
			switch {
			case char >= 'a' && char <= 'h' && isFileLine:
				// File letters
				fmt.Printf("%s%c%s", Cyan, char, Reset)
			case char >= 'A' && char <= 'Z':
				// White pieces
				fmt.Printf("%s%c%s", Blue, char, Reset)
			case char >= 'a' && char <= 'z' && !isFileLine:
				// Black pieces
				fmt.Printf("%s%c%s", Red, char, Reset)
			case char >= '1' && char <= '8':
				// Rank numbers
				fmt.Printf("%s%c%s", Cyan, char, Reset)
			default:
				fmt.Printf("%c", char)
			}
		}
		fmt.Println()
	}
}

// ColorForTurn returns a colored side-to-move indicator
func ColorForTurn(turn string) string {
	if turn == "w" {
		return Colorize(Blue, "White")
	}
	return Colorize(Red, "Black")
}
