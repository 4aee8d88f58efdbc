package models

import "ctchen222/tictactoe-ai/internal/game"

// EvaluateRequest asks for the outcome of a board. Cells are "X", "O" or "".
type EvaluateRequest struct {
	Board []string `json:"board" binding:"required,len=9"`
}

// EvaluateResponse is the derived state of a board.
type EvaluateResponse struct {
	Status     game.Status     `json:"status"`
	Winner     game.PlayerMark `json:"winner"`
	Next       game.PlayerMark `json:"next"`
	EmptyCells []int           `json:"empty_cells"`
}

// MoveRequest asks the computer for a move.
type MoveRequest struct {
	Board      []string `json:"board" binding:"required,len=9"`
	Player     string   `json:"player" binding:"required,oneof=X O x o"`
	Difficulty string   `json:"difficulty" binding:"omitempty,oneof=easy hard"`
}

// MoveResponse carries the chosen cell. Index is null when the board has no empty cell.
type MoveResponse struct {
	Index *int `json:"index"`
	Found bool `json:"found"`
}
