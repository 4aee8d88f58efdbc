package room

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"ctchen222/tictactoe-ai/internal/bot"
	"ctchen222/tictactoe-ai/internal/hub/types"
	"ctchen222/tictactoe-ai/internal/player"
	"ctchen222/tictactoe-ai/internal/repository"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
)

const (
	heartbeatInterval = 10 * time.Second
)

var tracer = otel.Tracer("room")

// Room is one client's game session. It owns the human player, the computer
// player in single mode, and serializes every message through its run loop.
type Room struct {
	ID            string
	gameRepo      repository.GameRepository
	calculator    bot.MoveCalculator
	thinkDelay    time.Duration
	Players       []*player.Player
	mu            sync.Mutex
	incomingMoves chan *types.PlayerMove
	unregister    chan *player.Player
	Done          chan struct{}
	closeOnce     sync.Once
}

// NewRoom creates a new game room.
func NewRoom(id string, gameRepo repository.GameRepository, calculator bot.MoveCalculator, thinkDelay time.Duration) *Room {
	return &Room{
		ID:            id,
		gameRepo:      gameRepo,
		calculator:    calculator,
		thinkDelay:    thinkDelay,
		Players:       make([]*player.Player, 0, 2),
		incomingMoves: make(chan *types.PlayerMove, 10),
		unregister:    make(chan *player.Player),
		Done:          make(chan struct{}),
	}
}

// AddPlayer adds a player to the room.
func (r *Room) AddPlayer(p *player.Player) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Players = append(r.Players, p)
}

// AddBot seats a computer player with the given difficulty.
func (r *Room) AddBot(difficulty bot.Difficulty) *player.Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addBot(difficulty)
}

func (r *Room) addBot(difficulty bot.Difficulty) *player.Player {
	p := bot.NewBotPlayer(difficulty, r.incomingMoves, r.calculator, r.thinkDelay)
	r.Players = append(r.Players, p)
	return p
}

// removeBots closes and drops every computer player.
func (r *Room) removeBots() {
	kept := r.Players[:0]
	for _, p := range r.Players {
		if p.IsBot {
			p.Conn.Close()
			continue
		}
		kept = append(kept, p)
	}
	r.Players = kept
}

// IncomingMoves returns the channel for incoming player moves.
func (r *Room) IncomingMoves() chan<- *types.PlayerMove {
	return r.incomingMoves
}

// Start launches the read pumps and the game loop, then forwards departing
// players to the hub until the room is closed.
func (r *Room) Start(unregisterPlayer chan<- *player.Player) {
	r.mu.Lock()
	for _, p := range r.Players {
		if !p.IsBot {
			go r.ReadPump(p)
		}
	}
	r.mu.Unlock()
	go r.run()

	for {
		select {
		case p := <-r.unregister:
			select {
			case unregisterPlayer <- p:
			case <-r.Done:
				return
			}
		case <-r.Done:
			return
		}
	}
}

// Close stops the room, cancels any pending computer move and closes the
// human connections so their read pumps return. It is safe to call more than once.
func (r *Room) Close() {
	r.closeOnce.Do(func() {
		close(r.Done)
		r.mu.Lock()
		defer r.mu.Unlock()
		r.removeBots()
		for _, p := range r.Players {
			if p.Conn != nil {
				p.Conn.Close()
			}
		}
	})
}

// run is the main game loop for the room.
func (r *Room) run() {
	pingTicker := time.NewTicker(heartbeatInterval)
	defer pingTicker.Stop()

	for {
		select {
		case <-r.Done:
			slog.Info("Room run goroutine stopping.", "room.id", r.ID)
			return

		case move := <-r.incomingMoves:
			r.HandleMessage(move.Player, move.Message)

		case <-pingTicker.C:
			r.mu.Lock()
			for _, p := range r.Players {
				if p.IsBot {
					continue
				}
				if err := p.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					slog.Warn("Failed to send ping to player, assuming disconnect", "player.id", p.ID, "room.id", r.ID, "error", err)
				}
			}
			r.mu.Unlock()
		}
	}
}

// DeleteSession removes the stored game once the room is gone.
func (r *Room) DeleteSession(ctx context.Context) error {
	return r.gameRepo.Delete(ctx, r.ID)
}
