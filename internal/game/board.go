package game

import (
	"errors"
	"fmt"
	"strings"
)

// PlayerMark represents the mark of a player (X, O) or an empty cell.
type PlayerMark string

const (
	// Player marks
	None    PlayerMark = ""
	PlayerX PlayerMark = "X"
	PlayerO PlayerMark = "O"

	// Board geometry
	BoardSide  = 3
	BoardCells = BoardSide * BoardSide

	// Board boundaries
	BorderMin = 0
	BorderMax = BoardCells - 1
)

// ErrInvalidBoard is returned when a board snapshot cannot be used by the engine.
var ErrInvalidBoard = errors.New("invalid board")

// ErrInvalidMark is returned when a value is not one of the known marks.
var ErrInvalidMark = errors.New("invalid mark")

// WinningLines lists every row, column and diagonal as index triples.
var WinningLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

// Opponent returns the other player's mark. None has no opponent.
func (m PlayerMark) Opponent() PlayerMark {
	switch m {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return None
	}
}

// IsPlayer reports whether m is X or O.
func (m PlayerMark) IsPlayer() bool {
	return m == PlayerX || m == PlayerO
}

// ParseMark converts user input into a mark. Lowercase letters are accepted.
func ParseMark(s string) (PlayerMark, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return None, nil
	case "X":
		return PlayerX, nil
	case "O":
		return PlayerO, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrInvalidMark, s)
	}
}

// Board is a 3x3 grid stored row-major: Board[3*row + col].
type Board [BoardCells]PlayerMark

// NewBoard builds a Board from a cell slice, rejecting snapshots of the wrong
// length or with unknown cell values.
func NewBoard(cells []PlayerMark) (Board, error) {
	var b Board
	if len(cells) != BoardCells {
		return b, fmt.Errorf("%w: expected %d cells, got %d", ErrInvalidBoard, BoardCells, len(cells))
	}
	for i, c := range cells {
		if c != None && !c.IsPlayer() {
			return b, fmt.Errorf("%w: cell %d has unknown value %q", ErrInvalidBoard, i, string(c))
		}
		b[i] = c
	}
	return b, nil
}

// ParseBoard is NewBoard for raw strings, accepting lowercase marks.
func ParseBoard(cells []string) (Board, error) {
	marks := make([]PlayerMark, len(cells))
	for i, c := range cells {
		m, err := ParseMark(c)
		if err != nil {
			return Board{}, fmt.Errorf("%w: cell %d: %v", ErrInvalidBoard, i, err)
		}
		marks[i] = m
	}
	return NewBoard(marks)
}

// HasWon reports whether player owns all three cells of any winning line.
func HasWon(b Board, player PlayerMark) bool {
	for _, line := range WinningLines {
		if b[line[0]] == player && b[line[1]] == player && b[line[2]] == player {
			return true
		}
	}
	return false
}

// IsFull reports whether no cell is empty.
func IsFull(b Board) bool {
	for _, c := range b {
		if c == None {
			return false
		}
	}
	return true
}

// EmptyCells returns the indices of empty cells in ascending order.
func EmptyCells(b Board) []int {
	cells := make([]int, 0, BoardCells)
	for i, c := range b {
		if c == None {
			cells = append(cells, i)
		}
	}
	return cells
}

// Count returns how many cells hold mark.
func (b Board) Count(mark PlayerMark) int {
	n := 0
	for _, c := range b {
		if c == mark {
			n++
		}
	}
	return n
}

// Cells returns the board as a slice, the shape used on the wire.
func (b Board) Cells() []PlayerMark {
	cells := make([]PlayerMark, BoardCells)
	copy(cells, b[:])
	return cells
}

func (b Board) String() string {
	var sb strings.Builder
	for r := range BoardSide {
		if r > 0 {
			sb.WriteString("\n-+-+-\n")
		}
		for c := range BoardSide {
			if c > 0 {
				sb.WriteByte('|')
			}
			m := b[r*BoardSide+c]
			if m == None {
				sb.WriteByte(' ')
			} else {
				sb.WriteString(string(m))
			}
		}
	}
	return sb.String()
}
