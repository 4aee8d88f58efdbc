package bot

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"time"

	"ctchen222/tictactoe-ai/internal/game"
	"ctchen222/tictactoe-ai/internal/hub/types"
	"ctchen222/tictactoe-ai/internal/player"
	"ctchen222/tictactoe-ai/pkg/proto"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// BotConnection simulates a websocket connection for a bot player.
// It implements the player.Connection interface: the room writes game state
// to it and the bot answers by queueing a move on the room's incoming channel.
type BotConnection struct {
	playerID      string
	player        *player.Player
	incomingMoves chan<- *types.PlayerMove
	calculator    MoveCalculator
	difficulty    Difficulty
	thinkDelay    time.Duration

	mu      sync.Mutex
	mark    game.PlayerMark // Stores the bot's mark ('X' or 'O')
	pending *time.Timer
	closed  bool
	done    chan struct{}
}

// NewBotConnection creates a new connection for a bot.
func NewBotConnection(playerID string, difficulty Difficulty, p *player.Player, incomingMoves chan<- *types.PlayerMove, calculator MoveCalculator, thinkDelay time.Duration) *BotConnection {
	return &BotConnection{
		playerID:      playerID,
		player:        p,
		incomingMoves: incomingMoves,
		calculator:    calculator,
		difficulty:    difficulty,
		thinkDelay:    thinkDelay,
		done:          make(chan struct{}),
	}
}

// WriteMessage is called by the room to send game state to the bot.
func (bc *BotConnection) WriteMessage(messageType int, data []byte) error {
	if messageType != websocket.TextMessage {
		return nil // pings
	}

	// First, try to unmarshal as a generic message to find the type
	var genericMsg map[string]any
	if err := json.Unmarshal(data, &genericMsg); err != nil {
		return err
	}

	msgType, ok := genericMsg["type"].(string)
	if !ok {
		return nil // Not a valid message for the bot
	}

	switch msgType {
	case proto.TypeAssignment:
		var msg proto.PlayerAssignmentMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return err
		}
		bc.mu.Lock()
		bc.mark = msg.Mark
		bc.mu.Unlock()
		slog.Info("Bot assigned mark", "player.id", bc.playerID, "mark", msg.Mark)

	case proto.TypeUpdate:
		var msg proto.ServerToClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return err
		}
		board, err := game.NewBoard(msg.Board)
		if err != nil {
			return err
		}

		bc.mu.Lock()
		defer bc.mu.Unlock()
		// Any newer state supersedes a reply that has not been sent yet.
		if bc.pending != nil {
			bc.pending.Stop()
			bc.pending = nil
		}
		// The bot only acts if it has a mark, it's its turn, and the game is still running
		if bc.closed || bc.mark == game.None || msg.Next != bc.mark || msg.Status != game.StatusInProgress {
			return nil
		}
		slog.Debug("Bot is thinking", "player.id", bc.playerID, "mark", bc.mark, "round", msg.Round)
		mark, round := bc.mark, msg.Round
		bc.pending = time.AfterFunc(bc.thinkDelay, func() {
			bc.play(board, mark, round)
		})
	}

	return nil
}

// play computes the reply and hands it to the room.
func (bc *BotConnection) play(board game.Board, mark game.PlayerMark, round int) {
	ctx := context.Background()
	index, ok, err := bc.calculator.CalculateNextMove(ctx, board, mark, bc.difficulty)
	if err != nil {
		slog.ErrorContext(ctx, "Bot failed to calculate move", "player.id", bc.playerID, "error", err)
		return
	}
	if !ok {
		return
	}

	move := proto.ClientToServerMessage{
		Type:  proto.TypeMove,
		Cell:  &index,
		Round: round,
	}
	moveBytes, err := json.Marshal(move)
	if err != nil {
		slog.ErrorContext(ctx, "Bot failed to marshal move", "player.id", bc.playerID, "error", err)
		return
	}

	select {
	case <-bc.done:
		return
	default:
	}
	// Wait for room in the queue; only Close abandons the reply.
	select {
	case bc.incomingMoves <- &types.PlayerMove{Player: bc.player, Message: moveBytes}:
	case <-bc.done:
		slog.DebugContext(ctx, "Bot closed before its move was queued", "player.id", bc.playerID, "round", round)
	}
}

// ReadMessage is never used for bots: their moves go straight to the room.
func (bc *BotConnection) ReadMessage() (int, []byte, error) {
	return 0, nil, io.EOF
}

// Close cancels any scheduled reply.
func (bc *BotConnection) Close() error {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	if !bc.closed {
		bc.closed = true
		close(bc.done)
	}
	if bc.pending != nil {
		bc.pending.Stop()
		bc.pending = nil
	}
	return nil
}

// NewBotPlayer creates a new player instance that is a bot.
func NewBotPlayer(difficulty Difficulty, incomingMoves chan<- *types.PlayerMove, calculator MoveCalculator, thinkDelay time.Duration) *player.Player {
	botID := "bot-" + uuid.New().String()[:8]
	p := player.NewPlayer(botID, nil)
	p.IsBot = true
	p.Conn = NewBotConnection(botID, difficulty, p, incomingMoves, calculator, thinkDelay)
	return p
}
