package room

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"ctchen222/tictactoe-ai/internal/bot"
	"ctchen222/tictactoe-ai/internal/game"
	"ctchen222/tictactoe-ai/internal/player"
	"ctchen222/tictactoe-ai/internal/validator"
	"ctchen222/tictactoe-ai/pkg/proto"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Reasons sent back in error messages.
const (
	reasonMalformed   = "malformed message"
	reasonInvalid     = "invalid message"
	reasonMissingCell = "missing cell"
	reasonInternal    = "internal error"
)

// HandleMessage handles a message from a player. It acts as a dispatcher.
func (r *Room) HandleMessage(p *player.Player, rawMessage []byte) {
	ctx := context.Background()
	ctx, span := tracer.Start(ctx, "room.HandleMessage", trace.WithAttributes(
		attribute.String("player.id", p.ID),
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	var message proto.ClientToServerMessage
	if err := json.Unmarshal(rawMessage, &message); err != nil {
		slog.ErrorContext(ctx, "error unmarshalling message", "player.id", p.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error unmarshalling message")
		r.sendError(ctx, p, reasonMalformed)
		return
	}

	if err := validator.GetValidator().Struct(message); err != nil {
		slog.WarnContext(ctx, "invalid message from player", "player.id", p.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid message format")
		r.sendError(ctx, p, reasonInvalid)
		return
	}

	span.SetAttributes(attribute.String("message.type", message.Type))

	switch message.Type {
	case proto.TypeMove:
		r.handleMove(ctx, p, &message)
	case proto.TypeRestart:
		r.handleRestart(ctx, p)
	case proto.TypeConfigure:
		r.handleConfigure(ctx, p, &message)
	}
}

// handleMove applies a move for the mark the sender plays. In single mode the
// human plays HumanMark and the computer the other one; in two player mode the
// client plays whichever side is to move.
func (r *Room) handleMove(ctx context.Context, p *player.Player, message *proto.ClientToServerMessage) {
	ctx, moveSpan := tracer.Start(ctx, "room.handleMove", trace.WithAttributes(
		attribute.String("player.id", p.ID),
		attribute.String("room.id", r.ID),
		attribute.Bool("player.bot", p.IsBot),
	))
	defer moveSpan.End()

	if message.Cell == nil {
		moveSpan.SetStatus(codes.Error, "Missing cell")
		r.sendError(ctx, p, reasonMissingCell)
		return
	}
	moveSpan.SetAttributes(attribute.Int("move.cell", *message.Cell))

	gameState, err := r.gameRepo.FindByID(ctx, r.ID)
	if err != nil {
		slog.ErrorContext(ctx, "handleMove could not find game state for room", "room.id", r.ID, "error", err)
		moveSpan.RecordError(err)
		moveSpan.SetStatus(codes.Error, "Could not find game state")
		r.sendError(ctx, p, reasonInternal)
		return
	}

	var mark game.PlayerMark
	switch {
	case p.IsBot:
		if message.Round != gameState.Round {
			slog.DebugContext(ctx, "discarding computer move from an earlier round", "room.id", r.ID, "move.round", message.Round, "round", gameState.Round)
			moveSpan.SetAttributes(attribute.Bool("move.stale", true))
			return
		}
		mark = gameState.Settings.ComputerMark()
	case gameState.Settings.Mode == game.ModeSingle:
		mark = gameState.Settings.HumanMark
	default:
		mark = gameState.CurrentTurn
	}

	updated, err := r.gameRepo.Update(ctx, r.ID, mark, *message.Cell)
	if err != nil {
		slog.WarnContext(ctx, "invalid move from player", "player.id", p.ID, "mark", mark, "error", err)
		moveSpan.SetAttributes(attribute.Bool("move.valid", false))
		moveSpan.RecordError(err)
		moveSpan.SetStatus(codes.Error, "Invalid move")
		r.sendError(ctx, p, rejectReason(err))
		return
	}
	moveSpan.SetAttributes(attribute.Bool("move.valid", true))

	if updated.Outcome.IsOver() {
		slog.InfoContext(ctx, "Game over", "room.id", r.ID, "status", updated.Outcome.Status, "winner", updated.Outcome.Winner)
	}
	r.Broadcast(ctx, proto.NewUpdate(updated))
}

// handleRestart starts a new round with the current settings.
func (r *Room) handleRestart(ctx context.Context, p *player.Player) {
	ctx, span := tracer.Start(ctx, "room.handleRestart", trace.WithAttributes(
		attribute.String("player.id", p.ID),
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	if p.IsBot {
		return
	}

	gameState, err := r.gameRepo.FindByID(ctx, r.ID)
	if err != nil {
		slog.ErrorContext(ctx, "could not get game state for restart", "room.id", r.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Could not get game state for restart")
		r.sendError(ctx, p, reasonInternal)
		return
	}
	r.resetGame(ctx, p, gameState.Settings)
}

// handleConfigure changes mode, difficulty or mark. Any change restarts the game.
func (r *Room) handleConfigure(ctx context.Context, p *player.Player, message *proto.ClientToServerMessage) {
	ctx, span := tracer.Start(ctx, "room.handleConfigure", trace.WithAttributes(
		attribute.String("player.id", p.ID),
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	if p.IsBot {
		return
	}

	gameState, err := r.gameRepo.FindByID(ctx, r.ID)
	if err != nil {
		slog.ErrorContext(ctx, "could not get game state for configure", "room.id", r.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Could not get game state for configure")
		r.sendError(ctx, p, reasonInternal)
		return
	}

	settings, err := applySettings(gameState.Settings, message)
	if err != nil {
		slog.WarnContext(ctx, "invalid settings from player", "player.id", p.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid settings")
		r.sendError(ctx, p, err.Error())
		return
	}
	span.SetAttributes(
		attribute.String("game.mode", string(settings.Mode)),
		attribute.String("bot.difficulty", settings.Difficulty),
	)
	r.resetGame(ctx, p, settings)
}

// applySettings overlays the non-empty fields of message on current.
func applySettings(current game.Settings, message *proto.ClientToServerMessage) (game.Settings, error) {
	next := current
	if message.Mode != "" {
		mode, err := game.ParseMode(message.Mode)
		if err != nil {
			return current, err
		}
		next.Mode = mode
	}
	if message.Difficulty != "" {
		difficulty, err := bot.ParseDifficulty(message.Difficulty)
		if err != nil {
			return current, err
		}
		next.Difficulty = string(difficulty)
	}
	if message.Mark != "" {
		mark, err := game.ParseMark(message.Mark)
		if err != nil {
			return current, err
		}
		next.HumanMark = mark
	}
	return next, nil
}

// rejectReason turns a move error into the text shown to the player.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, game.ErrGameFinished),
		errors.Is(err, game.ErrInvalidMove),
		errors.Is(err, game.ErrCellOccupied),
		errors.Is(err, game.ErrNotPlayersTurn):
		return err.Error()
	default:
		return reasonInternal
	}
}
