package repository

import (
	"context"
	"fmt"
	"sync"

	"ctchen222/tictactoe-ai/internal/game"
)

type storedGame struct {
	playerID string
	board    game.Board
	settings game.Settings
	round    int
}

type memoryGameRepository struct {
	mu    sync.Mutex
	games map[string]*storedGame
}

// NewMemoryGameRepository creates a process-local GameRepository, used when
// no Redis is configured and in tests.
func NewMemoryGameRepository() GameRepository {
	return &memoryGameRepository{games: make(map[string]*storedGame)}
}

func (r *memoryGameRepository) Create(ctx context.Context, roomID, playerID string, settings game.Settings) (*game.GameStateDTO, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.games[roomID] = &storedGame{playerID: playerID, settings: settings}
	return game.NewGameState(roomID, playerID, game.Board{}, settings, 0), nil
}

func (r *memoryGameRepository) FindByID(ctx context.Context, id string) (*game.GameStateDTO, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return game.NewGameState(id, g.playerID, g.board, g.settings, g.round), nil
}

func (r *memoryGameRepository) Update(ctx context.Context, id string, mark game.PlayerMark, index int) (*game.GameStateDTO, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	state := game.NewGameState(id, g.playerID, g.board, g.settings, g.round)
	played := state.Game()
	if err := played.Move(mark, index); err != nil {
		return nil, err
	}
	g.board = played.Board
	return game.NewGameState(id, g.playerID, g.board, g.settings, g.round), nil
}

func (r *memoryGameRepository) Reset(ctx context.Context, id string, settings game.Settings) (*game.GameStateDTO, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	g.board = game.Board{}
	g.settings = settings
	g.round++
	return game.NewGameState(id, g.playerID, g.board, g.settings, g.round), nil
}

func (r *memoryGameRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.games, id)
	return nil
}
