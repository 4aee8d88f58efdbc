package types

import (
	"context"

	"ctchen222/tictactoe-ai/internal/game"
	"ctchen222/tictactoe-ai/internal/player"
)

// RegistrationRequest asks the hub to open a session for a newly connected client.
type RegistrationRequest struct {
	Player   *player.Player
	Settings game.Settings
	Ctx      context.Context
}

// PlayerMove is a raw message from a player waiting to be handled by its room.
type PlayerMove struct {
	Player  *player.Player
	Message []byte
}
