package server

import (
	"context"
	"log/slog"
	"net/http"

	"ctchen222/tictactoe-ai/internal/api/controller"
	"ctchen222/tictactoe-ai/internal/api/response"
	"ctchen222/tictactoe-ai/internal/bot"
	"ctchen222/tictactoe-ai/internal/game"
	"ctchen222/tictactoe-ai/internal/hub"
	"ctchen222/tictactoe-ai/internal/hub/types"
	"ctchen222/tictactoe-ai/internal/player"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("server")

// TokenParser resolves a login token to a player ID.
type TokenParser interface {
	ParseToken(tokenString string) (string, error)
}

type Server struct {
	hub              *hub.Hub
	upgrader         websocket.Upgrader
	userController   *controller.UserController
	engineController *controller.EngineController
	tokens           TokenParser
}

func NewServer(h *hub.Hub, userController *controller.UserController, engineController *controller.EngineController, tokens TokenParser) *Server {
	return &Server{
		hub: h,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		userController:   userController,
		engineController: engineController,
		tokens:           tokens,
	}
}

// Engine builds the gin router.
func (s *Server) Engine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		response.SuccessResponseContent(c, "ok")
	})
	r.GET("/ws", s.handleWebSocket)

	api := r.Group("/api")
	{
		users := api.Group("/users")
		users.POST("/register", s.userController.Register)
		users.POST("/login", s.userController.Login)
		users.POST("/guest", s.userController.GuestLogin)

		engine := api.Group("/engine")
		engine.POST("/evaluate", s.engineController.Evaluate)
		engine.POST("/move", s.engineController.Move)
	}
	return r
}

// handleWebSocket checks the requested settings and the optional login token,
// upgrades the connection and hands the player to the hub.
func (s *Server) handleWebSocket(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "server.handleWebSocket", trace.WithAttributes(
		attribute.String("http.url", c.Request.URL.String()),
		attribute.String("http.method", c.Request.Method),
	))
	defer span.End()

	settings, err := parseSettings(c)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid game settings")
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	playerID := "guest-" + uuid.New().String()
	if token := c.Query("token"); token != "" {
		playerID, err = s.tokens.ParseToken(token)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Invalid token")
			response.ErrorResponse(c, http.StatusUnauthorized, err.Error())
			return
		}
	}
	span.SetAttributes(
		attribute.String("player.id", playerID),
		attribute.String("game.mode", string(settings.Mode)),
		attribute.String("bot.difficulty", settings.Difficulty),
	)

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to upgrade connection", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to upgrade connection")
		return
	}

	// The request context ends with this handler; the hub keeps only its span.
	s.hub.Register() <- &types.RegistrationRequest{
		Player:   player.NewPlayer(playerID, conn),
		Settings: settings,
		Ctx:      context.WithoutCancel(ctx),
	}
}

// parseSettings reads mode, difficulty and mark from the query, defaulting to
// a single player easy game with the human as X.
func parseSettings(c *gin.Context) (game.Settings, error) {
	settings := game.DefaultSettings()

	mode, err := game.ParseMode(c.Query("mode"))
	if err != nil {
		return settings, err
	}
	difficulty, err := bot.ParseDifficulty(c.Query("difficulty"))
	if err != nil {
		return settings, err
	}
	mark, err := game.ParseMark(c.Query("mark"))
	if err != nil {
		return settings, err
	}

	settings.Mode = mode
	settings.Difficulty = string(difficulty)
	if mark != game.None {
		settings.HumanMark = mark
	}
	return settings, nil
}
