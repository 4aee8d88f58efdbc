package hub

import (
	"context"
	"log/slog"

	"ctchen222/tictactoe-ai/internal/bot"
	"ctchen222/tictactoe-ai/internal/game"
	"ctchen222/tictactoe-ai/internal/hub/types"
	"ctchen222/tictactoe-ai/internal/player"
	"ctchen222/tictactoe-ai/internal/room"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// registerGame opens a room for a newly connected client, seating the
// computer in single mode, and sends the opening state.
func (h *Hub) registerGame(ctx context.Context, req *types.RegistrationRequest) {
	ctx, span := tracer.Start(ctx, "hub.registerGame", trace.WithAttributes(
		attribute.String("player.id", req.Player.ID),
		attribute.String("game.mode", string(req.Settings.Mode)),
		attribute.String("bot.difficulty", req.Settings.Difficulty),
	))
	defer span.End()

	roomID := uuid.New().String()
	span.SetAttributes(attribute.String("room.id", roomID))

	if _, err := h.gameRepo.Create(ctx, roomID, req.Player.ID, req.Settings); err != nil {
		slog.ErrorContext(ctx, "Failed to create game", "room.id", roomID, "player.id", req.Player.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create game")
		req.Player.Conn.Close()
		return
	}

	newRoom := room.NewRoom(roomID, h.gameRepo, h.calculator, h.thinkDelay)
	newRoom.AddPlayer(req.Player)
	if req.Settings.Mode == game.ModeSingle {
		newRoom.AddBot(bot.Difficulty(req.Settings.Difficulty))
	}

	h.mu.Lock()
	h.localRooms[roomID] = newRoom
	h.playerRooms[req.Player] = roomID
	h.mu.Unlock()

	newRoom.SendInitialState(ctx)
	go newRoom.Start(h.unregister)

	slog.InfoContext(ctx, "Room created", "room.id", roomID, "player.id", req.Player.ID, "game.mode", req.Settings.Mode, "bot.difficulty", req.Settings.Difficulty)
}

// unregisterPlayer closes the player's room and drops its session.
func (h *Hub) unregisterPlayer(ctx context.Context, p *player.Player) {
	ctx, span := tracer.Start(ctx, "hub.unregisterPlayer", trace.WithAttributes(
		attribute.String("player.id", p.ID),
	))
	defer span.End()

	h.mu.Lock()
	roomID, ok := h.playerRooms[p]
	r := h.localRooms[roomID]
	delete(h.playerRooms, p)
	delete(h.localRooms, roomID)
	h.mu.Unlock()

	if !ok || r == nil {
		slog.WarnContext(ctx, "Unregister for unknown player", "player.id", p.ID)
		return
	}
	span.SetAttributes(attribute.String("room.id", roomID))

	r.Close()
	if err := r.DeleteSession(ctx); err != nil {
		slog.ErrorContext(ctx, "Failed to delete game session", "room.id", roomID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete game session")
	}
	slog.InfoContext(ctx, "Room closed", "room.id", roomID, "player.id", p.ID)
}
