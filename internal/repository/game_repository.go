//go:generate mockgen -source=game_repository.go -destination=mocks/mock_game_repository.go -package=mocks

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"ctchen222/tictactoe-ai/internal/game"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("repository.game")

var ErrGameNotFound = errors.New("game not found")

// GameRepository defines the interface for game session operations.
type GameRepository interface {
	Create(ctx context.Context, roomID, playerID string, settings game.Settings) (*game.GameStateDTO, error)
	FindByID(ctx context.Context, id string) (*game.GameStateDTO, error)
	Update(ctx context.Context, id string, mark game.PlayerMark, index int) (*game.GameStateDTO, error)
	Reset(ctx context.Context, id string, settings game.Settings) (*game.GameStateDTO, error)
	Delete(ctx context.Context, id string) error
}

type redisGameRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewGameRepository creates a new Redis-based GameRepository. Sessions expire
// after ttl without writes; zero disables expiry.
func NewGameRepository(rdb *redis.Client, ttl time.Duration) GameRepository {
	return &redisGameRepository{rdb: rdb, ttl: ttl}
}

func roomKey(id string) string {
	return fmt.Sprintf("room:%s", id)
}

// Create initializes a new game state in Redis.
func (r *redisGameRepository) Create(ctx context.Context, roomID, playerID string, settings game.Settings) (*game.GameStateDTO, error) {
	ctx, span := tracer.Start(ctx, "GameRepository.Create", trace.WithAttributes(attribute.String("room.id", roomID)))
	defer span.End()

	key := roomKey(roomID)
	pipe := r.rdb.TxPipeline()
	pipe.Del(ctx, key)
	if err := r.writeRound(ctx, pipe, key, game.Board{}, settings, 0); err != nil {
		return nil, err
	}
	pipe.HSet(ctx, key, game.FieldPlayerID, playerID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create game in redis: %w", err)
	}
	return game.NewGameState(roomID, playerID, game.Board{}, settings, 0), nil
}

// FindByID retrieves the current game state from Redis.
func (r *redisGameRepository) FindByID(ctx context.Context, id string) (*game.GameStateDTO, error) {
	ctx, span := tracer.Start(ctx, "GameRepository.FindByID", trace.WithAttributes(attribute.String("room.id", id)))
	defer span.End()

	data, err := r.rdb.HGetAll(ctx, roomKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get game state from redis: %w", err)
	}
	return decodeState(id, data)
}

// Update applies a move to the game state in Redis. The read-check-write runs
// under WATCH so concurrent writers cannot interleave.
func (r *redisGameRepository) Update(ctx context.Context, id string, mark game.PlayerMark, index int) (*game.GameStateDTO, error) {
	ctx, span := tracer.Start(ctx, "GameRepository.Update", trace.WithAttributes(
		attribute.String("room.id", id),
		attribute.String("move.mark", string(mark)),
		attribute.Int("move.cell", index),
	))
	defer span.End()

	key := roomKey(id)
	var updated *game.GameStateDTO

	txf := func(tx *redis.Tx) error {
		data, err := tx.HGetAll(ctx, key).Result()
		if err != nil {
			return err
		}
		state, err := decodeState(id, data)
		if err != nil {
			return err
		}

		g := state.Game()
		if err := g.Move(mark, index); err != nil {
			return err
		}
		boardJSON, err := json.Marshal(g.Board)
		if err != nil {
			return fmt.Errorf("failed to marshal updated board: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, game.FieldBoard, boardJSON)
			if r.ttl > 0 {
				pipe.Expire(ctx, key, r.ttl)
			}
			return nil
		})
		if err != nil {
			return err
		}
		updated = game.NewGameState(id, state.PlayerID, g.Board, state.Settings, state.Round)
		return nil
	}

	if err := r.rdb.Watch(ctx, txf, key); err != nil {
		return nil, err
	}
	return updated, nil
}

// Reset clears the board, stores new settings and starts the next round.
func (r *redisGameRepository) Reset(ctx context.Context, id string, settings game.Settings) (*game.GameStateDTO, error) {
	ctx, span := tracer.Start(ctx, "GameRepository.Reset", trace.WithAttributes(attribute.String("room.id", id)))
	defer span.End()

	key := roomKey(id)
	var reset *game.GameStateDTO

	txf := func(tx *redis.Tx) error {
		data, err := tx.HGetAll(ctx, key).Result()
		if err != nil {
			return err
		}
		state, err := decodeState(id, data)
		if err != nil {
			return err
		}
		round := state.Round + 1
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			return r.writeRound(ctx, pipe, key, game.Board{}, settings, round)
		})
		if err != nil {
			return err
		}
		reset = game.NewGameState(id, state.PlayerID, game.Board{}, settings, round)
		return nil
	}

	if err := r.rdb.Watch(ctx, txf, key); err != nil {
		return nil, err
	}
	return reset, nil
}

// Delete removes a session.
func (r *redisGameRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "GameRepository.Delete", trace.WithAttributes(attribute.String("room.id", id)))
	defer span.End()

	return r.rdb.Del(ctx, roomKey(id)).Err()
}

func (r *redisGameRepository) writeRound(ctx context.Context, pipe redis.Pipeliner, key string, board game.Board, settings game.Settings, round int) error {
	boardJSON, err := json.Marshal(board)
	if err != nil {
		return fmt.Errorf("failed to marshal board: %w", err)
	}
	pipe.HSet(ctx, key,
		game.FieldBoard, boardJSON,
		game.FieldMode, string(settings.Mode),
		game.FieldDifficulty, settings.Difficulty,
		game.FieldHumanMark, string(settings.HumanMark),
		game.FieldRound, round,
	)
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
	return nil
}

func decodeState(id string, data map[string]string) (*game.GameStateDTO, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}

	var board game.Board
	if err := json.Unmarshal([]byte(data[game.FieldBoard]), &board); err != nil {
		return nil, fmt.Errorf("failed to unmarshal board: %w", err)
	}
	if _, err := game.NewBoard(board[:]); err != nil {
		return nil, err
	}
	round, err := strconv.Atoi(data[game.FieldRound])
	if err != nil {
		return nil, fmt.Errorf("failed to parse round: %w", err)
	}
	settings := game.Settings{
		Mode:       game.Mode(data[game.FieldMode]),
		Difficulty: data[game.FieldDifficulty],
		HumanMark:  game.PlayerMark(data[game.FieldHumanMark]),
	}
	return game.NewGameState(id, data[game.FieldPlayerID], board, settings, round), nil
}
