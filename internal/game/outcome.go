package game

// Status is the phase of a game derived from its board.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWin        Status = "win"
	StatusDraw       Status = "draw"
)

// Outcome is the verdict for a board. Winner is set only when Status is StatusWin.
type Outcome struct {
	Status Status
	Winner PlayerMark
}

// Evaluate computes the outcome of b. A board on which both players own a
// line cannot come from legal play; X is reported in that case.
func Evaluate(b Board) Outcome {
	switch {
	case HasWon(b, PlayerX):
		return Outcome{Status: StatusWin, Winner: PlayerX}
	case HasWon(b, PlayerO):
		return Outcome{Status: StatusWin, Winner: PlayerO}
	case IsFull(b):
		return Outcome{Status: StatusDraw}
	default:
		return Outcome{Status: StatusInProgress}
	}
}

// IsOver reports whether the game has ended.
func (o Outcome) IsOver() bool {
	return o.Status != StatusInProgress
}
