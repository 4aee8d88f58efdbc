package room

import (
	"context"
	"encoding/json"
	"log/slog"

	"ctchen222/tictactoe-ai/internal/hub/types"
	"ctchen222/tictactoe-ai/internal/player"
	"ctchen222/tictactoe-ai/pkg/proto"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Broadcast sends a message to every player in the room, the computer included.
// The caller must hold r.mu.
func (r *Room) Broadcast(ctx context.Context, message *proto.ServerToClientMessage) {
	ctx, span := tracer.Start(ctx, "room.Broadcast", trace.WithAttributes(
		attribute.String("room.id", r.ID),
		attribute.String("message.type", message.Type),
	))
	defer span.End()

	data, err := json.Marshal(message)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling message", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error marshalling message")
		return
	}

	for _, p := range r.Players {
		r.write(ctx, p, data)
	}
}

// send writes a single message to one player. The caller must hold r.mu.
func (r *Room) send(ctx context.Context, p *player.Player, message any) {
	data, err := json.Marshal(message)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling message", "player.id", p.ID, "error", err)
		return
	}
	r.write(ctx, p, data)
}

func (r *Room) write(ctx context.Context, p *player.Player, data []byte) {
	if p.Conn == nil {
		return
	}
	if err := p.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.ErrorContext(ctx, "error writing message to player", "player.id", p.ID, "room.id", r.ID, "error", err)
		trace.SpanFromContext(ctx).RecordError(err)
	}
}

// sendError reports a rejected message to a human player. The computer never gets one.
func (r *Room) sendError(ctx context.Context, p *player.Player, reason string) {
	if p.IsBot {
		return
	}
	r.send(ctx, p, &proto.ServerToClientMessage{Type: proto.TypeError, Reason: reason})
}

// ReadPump pumps messages from the websocket connection to the room's incomingMoves channel.
func (r *Room) ReadPump(p *player.Player) {
	ctx, span := tracer.Start(context.Background(), "room.ReadPump", trace.WithAttributes(
		attribute.String("player.id", p.ID),
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	defer func() {
		p.Conn.Close()
		slog.InfoContext(ctx, "Player disconnected.", "player.id", p.ID, "room.id", r.ID)
		select {
		case r.unregister <- p:
		case <-r.Done:
		}
	}()

	for {
		_, msg, err := p.Conn.ReadMessage()
		if err != nil {
			slog.WarnContext(ctx, "Player connection error", "player.id", p.ID, "room.id", r.ID, "error", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "Player connection error")
			return
		}
		select {
		case r.incomingMoves <- &types.PlayerMove{Player: p, Message: msg}:
		case <-r.Done:
			return
		}
	}
}
