// FILE: cmd/chessmate-cli/main.go
// Package main implements an interactive client for the chessmate API.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"chessmate/internal/client"
)

func main() {
	serverURL := flag.String("server", "http://localhost:8080", "Chessmate server URL")
	flag.Parse()

	s := &client.Session{
		Client: client.New(*serverURL),
	}

	// Initialize readline
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          client.Prompt("chessmate"),
		HistoryFile:     ".chessmate_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Printf("%s\n", client.Colorize(client.Cyan, "Chessmate Client"))
	fmt.Printf("%s\n", client.Colorize(client.Cyan, "Server: "+*serverURL))
	fmt.Printf("Type 'help' for commands\n\n")

	registry := client.NewRegistry(s)

	for {
		rl.SetPrompt(buildPrompt(s))

		line, err := rl.Readline()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if line == "exit" || line == "quit" || line == "x" {
			break
		}

		// Check for verbose flag
		if strings.HasSuffix(line, " -v") {
			s.Verbose = true
			line = strings.TrimSuffix(line, " -v")
		} else {
			s.Verbose = false
		}

		registry.Execute(line)
	}
}

func buildPrompt(s *client.Session) string {
	parts := []string{"chessmate"}
	if s.PlayerName != "" {
		parts = append(parts, s.PlayerName)
	}
	if s.GameID != "" {
		id := s.GameID
		if len(id) > 8 {
			id = id[:8]
		}
		parts = append(parts, id)
	}
	return client.Prompt(strings.Join(parts, ":"))
}
