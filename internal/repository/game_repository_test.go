package repository

import (
	"context"
	"testing"
	"time"

	"ctchen222/tictactoe-ai/internal/game"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// testGameRepository exercises the behaviour every GameRepository must share.
func testGameRepository(t *testing.T, repo GameRepository) {
	ctx := context.Background()
	settings := game.Settings{Mode: game.ModeSingle, Difficulty: "hard", HumanMark: game.PlayerO}

	_, err := repo.FindByID(ctx, "missing")
	require.ErrorIs(t, err, ErrGameNotFound)

	created, err := repo.Create(ctx, "r1", "p1", settings)
	require.NoError(t, err)
	assert.Equal(t, game.PlayerX, created.CurrentTurn)
	assert.Equal(t, 0, created.Round)

	found, err := repo.FindByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, created, found)

	// X, the computer here, opens in the centre.
	state, err := repo.Update(ctx, "r1", game.PlayerX, 4)
	require.NoError(t, err)
	assert.Equal(t, game.PlayerX, state.Board[4])
	assert.Equal(t, game.PlayerO, state.CurrentTurn)

	_, err = repo.Update(ctx, "r1", game.PlayerX, 0)
	assert.ErrorIs(t, err, game.ErrNotPlayersTurn)
	_, err = repo.Update(ctx, "r1", game.PlayerO, 4)
	assert.ErrorIs(t, err, game.ErrCellOccupied)
	_, err = repo.Update(ctx, "missing", game.PlayerO, 0)
	assert.ErrorIs(t, err, ErrGameNotFound)

	for _, mv := range []struct {
		mark game.PlayerMark
		cell int
	}{{game.PlayerO, 0}, {game.PlayerX, 2}, {game.PlayerO, 1}, {game.PlayerX, 6}} {
		state, err = repo.Update(ctx, "r1", mv.mark, mv.cell)
		require.NoError(t, err)
	}
	assert.Equal(t, game.Outcome{Status: game.StatusWin, Winner: game.PlayerX}, state.Outcome)
	assert.Equal(t, game.None, state.CurrentTurn)

	_, err = repo.Update(ctx, "r1", game.PlayerO, 8)
	assert.ErrorIs(t, err, game.ErrGameFinished)

	next := game.DefaultSettings()
	reset, err := repo.Reset(ctx, "r1", next)
	require.NoError(t, err)
	assert.Equal(t, game.Board{}, reset.Board)
	assert.Equal(t, 1, reset.Round)
	assert.Equal(t, next, reset.Settings)
	assert.Equal(t, "p1", reset.PlayerID)

	found, err = repo.FindByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, reset, found)

	require.NoError(t, repo.Delete(ctx, "r1"))
	_, err = repo.FindByID(ctx, "r1")
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestMemoryGameRepository(t *testing.T) {
	testGameRepository(t, NewMemoryGameRepository())
}

func TestRedisGameRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}
	ctx := context.Background()

	redisContainer, err := tcredis.Run(ctx, "redis:7-alpine")
	testcontainers.CleanupContainer(t, redisContainer)
	require.NoError(t, err)

	uri, err := redisContainer.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := redis.ParseURL(uri)
	require.NoError(t, err)
	rdb := redis.NewClient(opts)
	t.Cleanup(func() { rdb.Close() })

	repo := NewGameRepository(rdb, time.Minute)
	testGameRepository(t, repo)

	_, err = repo.Create(ctx, "r2", "p2", game.DefaultSettings())
	require.NoError(t, err)
	ttl, err := rdb.TTL(ctx, roomKey("r2")).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, rdb.HSet(ctx, roomKey("r3"), game.FieldBoard, `["X","Z","","","","","","",""]`, game.FieldRound, 0).Err())
	_, err = repo.FindByID(ctx, "r3")
	assert.ErrorIs(t, err, game.ErrInvalidBoard)
}
