package game

import (
	"errors"
	"fmt"
)

var (
	ErrGameFinished   = errors.New("game already finished")
	ErrInvalidMove    = errors.New("invalid move")
	ErrCellOccupied   = errors.New("cell already occupied")
	ErrNotPlayersTurn = errors.New("not player's turn")
)

// Game is the mutable state of one match. X always moves first.
type Game struct {
	Board       Board
	CurrentTurn PlayerMark
	Outcome     Outcome
}

func NewGame() *Game {
	return &Game{
		CurrentTurn: PlayerX,
		Outcome:     Outcome{Status: StatusInProgress},
	}
}

// Move places mark on the cell at index and advances the turn.
func (g *Game) Move(mark PlayerMark, index int) error {
	if g.Outcome.IsOver() {
		return ErrGameFinished
	}
	if index < BorderMin || index > BorderMax {
		return fmt.Errorf("%w: cell %d", ErrInvalidMove, index)
	}
	if mark != g.CurrentTurn {
		return fmt.Errorf("%w: %s to move", ErrNotPlayersTurn, g.CurrentTurn)
	}
	if g.Board[index] != None {
		return fmt.Errorf("%w: cell %d", ErrCellOccupied, index)
	}

	g.Board[index] = mark
	g.Outcome = Evaluate(g.Board)
	if g.Outcome.IsOver() {
		g.CurrentTurn = None
	} else {
		g.CurrentTurn = mark.Opponent()
	}
	return nil
}

// NextTurn derives the side to move from the mark counts: X whenever the
// counts are equal. It is None once the game is over.
func NextTurn(b Board) PlayerMark {
	if Evaluate(b).IsOver() {
		return None
	}
	if b.Count(PlayerX) > b.Count(PlayerO) {
		return PlayerO
	}
	return PlayerX
}
