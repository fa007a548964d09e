// FILE: internal/client/commands.go
package client

import (
	"fmt"
	"strings"

	"chessmate/internal/core"
)

// Session holds the interactive client state between commands.
type Session struct {
	Client     *Client
	GameID     string
	PlayerName string
	Color      string
	Verbose    bool
}

// Command defines a client command with its handler
type Command struct {
	Name        string
	ShortName   string
	Description string
	Usage       string
	Handler     func(*Session, []string) error
}

type Registry struct {
	session  *Session
	commands map[string]*Command
	order    []string
}

// NewRegistry builds the command set for the interactive client.
func NewRegistry(session *Session) *Registry {
	r := &Registry{
		session:  session,
		commands: make(map[string]*Command),
	}

	r.Register(&Command{
		Name:        "new",
		ShortName:   "n",
		Description: "Create a new game",
		Usage:       "new <playerName> <white|black> [startingFen]",
		Handler:     newGameHandler,
	})
	r.Register(&Command{
		Name:        "join",
		ShortName:   "j",
		Description: "Join an existing game",
		Usage:       "join <gameId> <playerName>",
		Handler:     joinGameHandler,
	})
	r.Register(&Command{
		Name:        "show",
		ShortName:   "s",
		Description: "Show current game state",
		Usage:       "show [gameId]",
		Handler:     showGameHandler,
	})
	r.Register(&Command{
		Name:        "moves",
		ShortName:   "lm",
		Description: "List your legal moves",
		Usage:       "moves",
		Handler:     legalMovesHandler,
	})
	r.Register(&Command{
		Name:        "move",
		ShortName:   "m",
		Description: "Make a move (UCI, e.g. e2e4 or a7a8q)",
		Usage:       "move <uci>",
		Handler:     makeMoveHandler,
	})
	r.Register(&Command{
		Name:        "board",
		ShortName:   "b",
		Description: "Show the board",
		Usage:       "board",
		Handler:     boardHandler,
	})
	r.Register(&Command{
		Name:        "delete",
		ShortName:   "d",
		Description: "Delete the current game",
		Usage:       "delete [gameId]",
		Handler:     deleteGameHandler,
	})
	r.Register(&Command{
		Name:        "url",
		Description: "Show or set the server URL",
		Usage:       "url [baseUrl]",
		Handler:     urlHandler,
	})
	r.Register(&Command{
		Name:        "help",
		ShortName:   "?",
		Description: "Show available commands",
		Usage:       "help [command]",
		Handler:     nil, // bound below
	})

	r.commands["help"].Handler = r.helpHandler
	return r
}

func (r *Registry) Register(cmd *Command) {
	if _, exists := r.commands[cmd.Name]; !exists {
		r.order = append(r.order, cmd.Name)
	}
	r.commands[cmd.Name] = cmd
	if cmd.ShortName != "" {
		r.commands[cmd.ShortName] = cmd
	}
}

func (r *Registry) Execute(input string) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return
	}

	cmdName := parts[0]
	args := parts[1:]

	cmd, exists := r.commands[cmdName]
	if !exists {
		fmt.Printf("%s\n", Colorize(Red, "Unknown command: "+cmdName))
		fmt.Printf("Type 'help' for available commands\n")
		return
	}

	r.session.Client.SetVerbose(r.session.Verbose)

	if err := cmd.Handler(r.session, args); err != nil {
		fmt.Printf("%s\n", Colorize(Red, "Error: "+err.Error()))
	}
}

func (r *Registry) helpHandler(s *Session, args []string) error {
	if len(args) > 0 {
		cmd, exists := r.commands[args[0]]
		if !exists {
			return fmt.Errorf("unknown command: %s", args[0])
		}
		fmt.Printf("\n%s - %s\n", Colorize(Cyan, cmd.Name), cmd.Description)
		fmt.Printf("Usage: %s\n\n", cmd.Usage)
		return nil
	}

	fmt.Printf("\n%s\n", Colorize(Cyan, "Available commands:"))
	for _, name := range r.order {
		cmd := r.commands[name]
		short := ""
		if cmd.ShortName != "" {
			short = " (" + cmd.ShortName + ")"
		}
		fmt.Printf("  %-12s%s %s\n", cmd.Name, short, cmd.Description)
	}
	fmt.Println()
	return nil
}

func newGameHandler(s *Session, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: new <playerName> <white|black> [startingFen]")
	}
	req := &core.CreateGameRequest{
		PlayerName: args[0],
		Color:      args[1],
	}
	if len(args) > 2 {
		req.StartingFEN = strings.Join(args[2:], " ")
	}

	resp, err := s.Client.CreateGame(req)
	if err != nil {
		return err
	}

	s.GameID = resp.GameID
	s.PlayerName = args[0]
	s.Color = args[1]

	fmt.Printf("%s %s\n", Colorize(Green, "Game created:"), resp.GameID)
	printGame(resp)
	return nil
}

func joinGameHandler(s *Session, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: join <gameId> <playerName>")
	}

	resp, err := s.Client.JoinGame(args[0], args[1])
	if err != nil {
		return err
	}

	s.GameID = args[0]
	s.PlayerName = args[1]
	for color, name := range resp.Players {
		if name == args[1] {
			s.Color = color
		}
	}

	fmt.Printf("%s %s as %s\n", Colorize(Green, "Joined game"), args[0], s.Color)
	printGame(resp)
	return nil
}

func showGameHandler(s *Session, args []string) error {
	gameID := s.GameID
	if len(args) > 0 {
		gameID = args[0]
	}
	if gameID == "" {
		return fmt.Errorf("no active game; use 'show <gameId>' or create one")
	}

	resp, err := s.Client.GetGame(gameID)
	if err != nil {
		return err
	}
	printGame(resp)
	return nil
}

func legalMovesHandler(s *Session, args []string) error {
	if s.GameID == "" || s.PlayerName == "" {
		return fmt.Errorf("no active game")
	}

	resp, err := s.Client.LegalMoves(s.GameID, s.PlayerName)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%d): %s\n",
		Colorize(Cyan, "Legal moves"), len(resp.LegalMoves), strings.Join(resp.LegalMoves, " "))
	return nil
}

func makeMoveHandler(s *Session, args []string) error {
	if s.GameID == "" || s.PlayerName == "" {
		return fmt.Errorf("no active game")
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: move <uci>")
	}

	uci := strings.ToLower(args[0])
	if len(uci) != 4 && len(uci) != 5 {
		return fmt.Errorf("move must be 4 or 5 characters, e.g. e2e4 or a7a8q")
	}
	req := &core.MoveRequest{
		PlayerName: s.PlayerName,
		From:       uci[:2],
		To:         uci[2:4],
	}
	if len(uci) == 5 {
		req.Promotion = uci[4:]
	}

	resp, err := s.Client.MakeMove(s.GameID, req)
	if err != nil {
		return err
	}
	printGame(resp)
	return nil
}

func boardHandler(s *Session, args []string) error {
	if s.GameID == "" {
		return fmt.Errorf("no active game")
	}

	resp, err := s.Client.GetBoard(s.GameID)
	if err != nil {
		return err
	}
	RenderBoard(resp.Board)
	fmt.Printf("FEN: %s\n", resp.FEN)
	return nil
}

func deleteGameHandler(s *Session, args []string) error {
	gameID := s.GameID
	if len(args) > 0 {
		gameID = args[0]
	}
	if gameID == "" {
		return fmt.Errorf("no active game")
	}

	if err := s.Client.DeleteGame(gameID); err != nil {
		return err
	}
	if gameID == s.GameID {
		s.GameID = ""
		s.Color = ""
	}
	fmt.Printf("%s %s\n", Colorize(Green, "Deleted game"), gameID)
	return nil
}

func urlHandler(s *Session, args []string) error {
	if len(args) == 0 {
		fmt.Printf("Server URL: %s\n", s.Client.BaseURL)
		return nil
	}
	s.Client.SetBaseURL(args[0])
	fmt.Printf("Server URL set to %s\n", s.Client.BaseURL)
	return nil
}

func printGame(g *core.GameResponse) {
	fmt.Printf("Status: %s", Colorize(Cyan, g.Status))
	if g.Winner != "" {
		fmt.Printf("  Winner: %s", Colorize(Green, g.Winner))
	}
	fmt.Println()

	if fields := strings.Fields(g.FEN); len(fields) >= 2 {
		fmt.Printf("To move: %s\n", ColorForTurn(fields[1]))
	}
	if len(g.Players) > 0 {
		pairs := make([]string, 0, len(g.Players))
		for color, name := range g.Players {
			pairs = append(pairs, color+"="+name)
		}
		fmt.Printf("Players: %s\n", strings.Join(pairs, " "))
	}
	if len(g.Moves) > 0 {
		fmt.Printf("Moves: %s\n", strings.Join(g.Moves, " "))
	}
	fmt.Printf("FEN: %s\n", g.FEN)
}
