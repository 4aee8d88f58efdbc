package game

// Redis hash fields of a stored session. The outcome and the side to move
// are not stored; they are derived from the board on every read.
const (
	FieldBoard      = "board"
	FieldMode       = "mode"
	FieldDifficulty = "difficulty"
	FieldHumanMark  = "human_mark"
	FieldRound      = "round"
	FieldPlayerID   = "player_id"
)

// GameStateDTO is a session snapshot as read from the store.
type GameStateDTO struct {
	RoomID      string
	PlayerID    string
	Board       Board
	CurrentTurn PlayerMark
	Outcome     Outcome
	Settings    Settings
	Round       int
}

// NewGameState builds a snapshot, deriving the outcome and the side to move from board.
func NewGameState(roomID, playerID string, board Board, settings Settings, round int) *GameStateDTO {
	return &GameStateDTO{
		RoomID:      roomID,
		PlayerID:    playerID,
		Board:       board,
		CurrentTurn: NextTurn(board),
		Outcome:     Evaluate(board),
		Settings:    settings,
		Round:       round,
	}
}

// Game rebuilds the playable game for this snapshot.
func (s *GameStateDTO) Game() *Game {
	return &Game{Board: s.Board, CurrentTurn: s.CurrentTurn, Outcome: s.Outcome}
}
