package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ctchen222/tictactoe-ai/internal/api/controller"
	apirepository "ctchen222/tictactoe-ai/internal/api/repository"
	"ctchen222/tictactoe-ai/internal/api/service"
	"ctchen222/tictactoe-ai/internal/bot"
	"ctchen222/tictactoe-ai/internal/config"
	"ctchen222/tictactoe-ai/internal/db"
	"ctchen222/tictactoe-ai/internal/hub"
	"ctchen222/tictactoe-ai/internal/logger"
	"ctchen222/tictactoe-ai/internal/repository"
	"ctchen222/tictactoe-ai/internal/server"
	"ctchen222/tictactoe-ai/internal/telemetry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize telemetry before the logger so the otelslog bridge picks up the provider.
	if cfg.TelemetryEnabled {
		shutdown, err := telemetry.InitOtel(ctx, cfg.OtelCollectorAddr)
		if err != nil {
			slog.Error("failed to initialize telemetry", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				slog.Error("Error shutting down telemetry", "error", err)
			}
		}()
	}
	logger.Init(cfg.LogLevel)

	if err := run(ctx, cfg); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server exiting")
}

func run(ctx context.Context, cfg config.Config) error {
	// Live game sessions
	var gameRepo repository.GameRepository
	switch cfg.Store {
	case config.StoreMemory:
		gameRepo = repository.NewMemoryGameRepository()
	default:
		rdb, err := db.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			return err
		}
		defer rdb.Close()
		gameRepo = repository.NewGameRepository(rdb, cfg.SessionTTL)
	}

	// Accounts
	DB, err := db.Connect(cfg.SQLitePath)
	if err != nil {
		return err
	}
	defer DB.Close()
	userRepo := apirepository.NewUserRepository(DB)

	calculator, err := bot.NewBotMoveCalculator()
	if err != nil {
		return err
	}

	// Create services
	userService := service.NewUserService(userRepo, []byte(cfg.JWTSecret))
	engineService := service.NewEngineService(calculator)

	// Create controllers
	userController := controller.NewUserController(userService)
	engineController := controller.NewEngineController(engineService)

	// Create hub
	h := hub.NewHub(gameRepo, calculator, cfg.BotThinkDelay)
	go h.Run(ctx)

	// Create the Gin-based server
	srv := server.NewServer(h, userController, engineController, userService)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Engine(),
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("http server started", "addr", cfg.HTTPAddr, "store", cfg.Store)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return httpServer.Shutdown(shutdownCtx)
}
