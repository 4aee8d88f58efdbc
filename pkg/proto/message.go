package proto

import "ctchen222/tictactoe-ai/internal/game"

// Message types exchanged over the websocket.
const (
	TypeMove       = "move"
	TypeRestart    = "restart"
	TypeConfigure  = "configure"
	TypeAssignment = "assignment"
	TypeUpdate     = "update"
	TypeError      = "error"
)

// ClientToServerMessage represents a message from the client to the server.
type ClientToServerMessage struct {
	Type       string `json:"type" validate:"required,oneof=move restart configure"`
	Cell       *int   `json:"cell,omitempty" validate:"omitempty,min=0,max=8"`
	Round      int    `json:"round,omitempty" validate:"min=0"`
	Mode       string `json:"mode,omitempty" validate:"omitempty,oneof=single two_player"`
	Difficulty string `json:"difficulty,omitempty" validate:"omitempty,oneof=easy hard"`
	Mark       string `json:"mark,omitempty" validate:"omitempty,oneof=X O x o"`
}

// ServerToClientMessage represents a message from the server to the client.
type ServerToClientMessage struct {
	Type       string            `json:"type" validate:"required"`
	Reason     string            `json:"reason,omitempty"`
	Board      []game.PlayerMark `json:"board,omitempty"`
	Next       game.PlayerMark   `json:"next,omitempty"`
	Status     game.Status       `json:"status,omitempty"`
	Winner     game.PlayerMark   `json:"winner,omitempty"`
	Round      int               `json:"round"`
	Mode       game.Mode         `json:"mode,omitempty"`
	Difficulty string            `json:"difficulty,omitempty"`
}

// PlayerAssignmentMessage informs a player of their assigned mark.
// In two player mode the single client plays both marks and Mark is empty.
type PlayerAssignmentMessage struct {
	Type     string          `json:"type"`
	RoomID   string          `json:"roomId,omitempty"`
	PlayerID string          `json:"playerId,omitempty"`
	Mark     game.PlayerMark `json:"mark"`
}

// NewUpdate builds the update message for a stored session.
func NewUpdate(state *game.GameStateDTO) *ServerToClientMessage {
	return &ServerToClientMessage{
		Type:       TypeUpdate,
		Board:      state.Board.Cells(),
		Next:       state.CurrentTurn,
		Status:     state.Outcome.Status,
		Winner:     state.Outcome.Winner,
		Round:      state.Round,
		Mode:       state.Settings.Mode,
		Difficulty: state.Settings.Difficulty,
	}
}
