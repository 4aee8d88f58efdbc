package room

import (
	"context"
	"log/slog"

	"ctchen222/tictactoe-ai/internal/bot"
	"ctchen222/tictactoe-ai/internal/game"
	"ctchen222/tictactoe-ai/internal/player"
	"ctchen222/tictactoe-ai/pkg/proto"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// resetGame starts the next round with settings, re-seating the computer so
// that a reply scheduled for the previous round can never land.
func (r *Room) resetGame(ctx context.Context, p *player.Player, settings game.Settings) {
	ctx, span := tracer.Start(ctx, "room.resetGame", trace.WithAttributes(
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	if _, err := r.gameRepo.Reset(ctx, r.ID, settings); err != nil {
		slog.ErrorContext(ctx, "failed to reset game", "room.id", r.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to reset game")
		r.sendError(ctx, p, reasonInternal)
		return
	}

	r.removeBots()
	if settings.Mode == game.ModeSingle {
		r.addBot(bot.Difficulty(settings.Difficulty))
	}

	slog.InfoContext(ctx, "Game reset", "room.id", r.ID, "game.mode", settings.Mode, "bot.difficulty", settings.Difficulty, "human.mark", settings.HumanMark)
	r.sendInitialState(ctx)
}

// SendInitialState sends every player its mark followed by the current board.
func (r *Room) SendInitialState(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sendInitialState(ctx)
}

func (r *Room) sendInitialState(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "room.sendInitialState", trace.WithAttributes(
		attribute.String("room.id", r.ID),
		attribute.Int("players.count", len(r.Players)),
	))
	defer span.End()

	gameState, err := r.gameRepo.FindByID(ctx, r.ID)
	if err != nil {
		slog.ErrorContext(ctx, "Could not get initial game state", "room.id", r.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Could not get initial game state")
		return
	}

	for _, p := range r.Players {
		r.send(ctx, p, &proto.PlayerAssignmentMessage{
			Type:     proto.TypeAssignment,
			RoomID:   r.ID,
			PlayerID: p.ID,
			Mark:     markFor(p, gameState.Settings),
		})
	}
	r.Broadcast(ctx, proto.NewUpdate(gameState))
}

// markFor is the mark p plays under settings. A two player client gets None
// because it plays both sides.
func markFor(p *player.Player, settings game.Settings) game.PlayerMark {
	if p.IsBot {
		return settings.ComputerMark()
	}
	if settings.Mode == game.ModeSingle {
		return settings.HumanMark
	}
	return game.None
}
