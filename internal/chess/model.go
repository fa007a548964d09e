// FILE: internal/chess/model.go
package chess

// GameModel is the transport-safe record exchanged with the service and
// persistence layers. It is the sole channel between Game and the outside:
// Game never reads or writes a database or HTTP object directly.
type GameModel struct {
	CurrentFEN string            `json:"currentFen"`
	HistoryFEN []string          `json:"historyFen"`
	MovesUCI   []string          `json:"movesUci"`
	Players    map[string]string `json:"players"` // "white"/"black" -> player name
	Status     string            `json:"status"`
	Winner     string            `json:"winner,omitempty"`
}
