package bot

import (
	"math/rand/v2"

	"ctchen222/tictactoe-ai/internal/game"
)

// Terminal scores, always from O's point of view.
const (
	winScore  = 10
	lossScore = -10
	drawScore = 0
)

// Move is a candidate cell with the score the search assigned to it.
type Move struct {
	Index int
	Score int
}

// SelectMove chooses the next cell for player. ok is false when the board
// has no empty cell or player is neither X nor O. Unknown difficulties play as Hard.
func SelectMove(board game.Board, player game.PlayerMark, difficulty Difficulty) (index int, ok bool) {
	if !player.IsPlayer() {
		return -1, false
	}
	switch difficulty {
	case Easy:
		return easyMove(board)
	default:
		m, found := hardMove(board, player, nil)
		return m.Index, found
	}
}

// easyMove makes a uniformly random move.
func easyMove(board game.Board) (int, bool) {
	available := game.EmptyCells(board)
	if len(available) == 0 {
		return -1, false
	}
	return available[rand.IntN(len(available))], true
}

// hardMove runs a full minimax search and returns the best move for player.
// X minimizes and O maximizes; ties keep the first move in cell order.
// nodes, when non-nil, is incremented once per position visited.
func hardMove(board game.Board, player game.PlayerMark, nodes *int) (Move, bool) {
	available := game.EmptyCells(board)
	if len(available) == 0 || !player.IsPlayer() {
		return Move{Index: -1}, false
	}

	var best Move
	for i, idx := range available {
		next := board
		next[idx] = player
		score := minimax(next, player.Opponent(), nodes)
		if i == 0 || better(player, score, best.Score) {
			best = Move{Index: idx, Score: score}
		}
	}
	return best, true
}

// minimax scores board with mover to play. board is a copy; children are
// built on fresh copies so the caller's board never changes.
func minimax(board game.Board, mover game.PlayerMark, nodes *int) int {
	if nodes != nil {
		*nodes++
	}

	if game.HasWon(board, game.PlayerX) {
		return lossScore
	}
	if game.HasWon(board, game.PlayerO) {
		return winScore
	}
	available := game.EmptyCells(board)
	if len(available) == 0 {
		return drawScore
	}

	best := 0
	for i, idx := range available {
		next := board
		next[idx] = mover
		score := minimax(next, mover.Opponent(), nodes)
		if i == 0 || better(mover, score, best) {
			best = score
		}
	}
	return best
}

// better reports whether score strictly improves on best for mover.
func better(mover game.PlayerMark, score, best int) bool {
	if mover == game.PlayerO {
		return score > best
	}
	return score < best
}
