package hub

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"ctchen222/tictactoe-ai/internal/bot"
	"ctchen222/tictactoe-ai/internal/hub/types"
	"ctchen222/tictactoe-ai/internal/player"
	"ctchen222/tictactoe-ai/internal/repository"
	"ctchen222/tictactoe-ai/internal/room"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("hub")

const shutdownTimeout = 5 * time.Second

// Hub manages all the rooms of this process. Every connected client gets its own room.
type Hub struct {
	mu          sync.RWMutex
	localRooms  map[string]*room.Room
	playerRooms map[*player.Player]string
	register    chan *types.RegistrationRequest
	unregister  chan *player.Player
	gameRepo    repository.GameRepository
	calculator  bot.MoveCalculator
	thinkDelay  time.Duration
}

// NewHub creates a new hub. thinkDelay is how long the computer waits before replying.
func NewHub(gameRepo repository.GameRepository, calculator bot.MoveCalculator, thinkDelay time.Duration) *Hub {
	return &Hub{
		localRooms:  make(map[string]*room.Room),
		playerRooms: make(map[*player.Player]string),
		register:    make(chan *types.RegistrationRequest),
		unregister:  make(chan *player.Player),
		gameRepo:    gameRepo,
		calculator:  calculator,
		thinkDelay:  thinkDelay,
	}
}

// Run serves registrations until ctx is cancelled, then closes every room.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll(ctx)
			slog.Info("Hub stopped.")
			return

		case req := <-h.register:
			regCtx := req.Ctx
			if regCtx == nil {
				regCtx = ctx
			}
			h.registerGame(regCtx, req)

		case p := <-h.unregister:
			h.unregisterPlayer(ctx, p)
		}
	}
}

// closeAll closes every room and drops its session. ctx is already done
// here, so the deletes get their own deadline.
func (h *Hub) closeAll(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	h.mu.Lock()
	defer h.mu.Unlock()
	for id, r := range h.localRooms {
		r.Close()
		if err := r.DeleteSession(ctx); err != nil {
			slog.ErrorContext(ctx, "Failed to delete game session on shutdown", "room.id", id, "error", err)
		}
		delete(h.localRooms, id)
	}
	clear(h.playerRooms)
}

// Register returns the register channel.
func (h *Hub) Register() chan<- *types.RegistrationRequest {
	return h.register
}

// Unregister returns the unregister channel.
func (h *Hub) Unregister() chan<- *player.Player {
	return h.unregister
}

// RoomCount reports how many rooms are open.
func (h *Hub) RoomCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.localRooms)
}
