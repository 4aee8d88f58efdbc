package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ctchen222/tictactoe-ai/internal/game"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("bot")
	meter  = otel.Meter("bot")
)

var ErrInvalidPlayer = errors.New("invalid player")

// MoveCalculator picks the computer's next cell.
type MoveCalculator interface {
	CalculateNextMove(ctx context.Context, board game.Board, mark game.PlayerMark, difficulty Difficulty) (index int, ok bool, err error)
}

// BotMoveCalculator implements MoveCalculator on top of SelectMove, adding
// input checks, tracing and metrics.
type BotMoveCalculator struct {
	moves metric.Int64Counter
	nodes metric.Int64Histogram
}

// NewBotMoveCalculator creates a calculator with its instruments registered on the global meter.
func NewBotMoveCalculator() (*BotMoveCalculator, error) {
	moves, err := meter.Int64Counter("bot.moves",
		metric.WithDescription("Moves chosen by the computer player"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot.moves counter: %w", err)
	}
	nodes, err := meter.Int64Histogram("bot.search.nodes",
		metric.WithDescription("Positions visited by one hard search"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot.search.nodes histogram: %w", err)
	}
	return &BotMoveCalculator{moves: moves, nodes: nodes}, nil
}

// CalculateNextMove validates its inputs and selects a move. ok is false when the board is full.
func (c *BotMoveCalculator) CalculateNextMove(ctx context.Context, board game.Board, mark game.PlayerMark, difficulty Difficulty) (int, bool, error) {
	ctx, span := tracer.Start(ctx, "bot.CalculateNextMove", trace.WithAttributes(
		attribute.String("bot.mark", string(mark)),
		attribute.String("bot.difficulty", string(difficulty)),
	))
	defer span.End()

	if !mark.IsPlayer() {
		err := fmt.Errorf("%w: %q", ErrInvalidPlayer, string(mark))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid player mark")
		return -1, false, err
	}

	var (
		index int
		ok    bool
	)
	switch difficulty {
	case Easy:
		index, ok = easyMove(board)
	case Hard:
		nodes := 0
		var m Move
		m, ok = hardMove(board, mark, &nodes)
		index = m.Index
		span.SetAttributes(attribute.Int("bot.search.nodes", nodes), attribute.Int("bot.search.score", m.Score))
		c.nodes.Record(ctx, int64(nodes))
	default:
		err := fmt.Errorf("%w: %q", ErrUnknownDifficulty, string(difficulty))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Unknown difficulty")
		return -1, false, err
	}

	if !ok {
		slog.DebugContext(ctx, "No move available for bot", "bot.mark", mark)
		span.SetAttributes(attribute.Bool("bot.move.found", false))
		return -1, false, nil
	}

	span.SetAttributes(attribute.Bool("bot.move.found", true), attribute.Int("bot.move.cell", index))
	c.moves.Add(ctx, 1, metric.WithAttributes(attribute.String("bot.difficulty", string(difficulty))))
	slog.DebugContext(ctx, "Bot selected move", "bot.mark", mark, "bot.difficulty", difficulty, "cell", index)
	return index, true, nil
}
