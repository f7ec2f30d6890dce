// Arctic Quest - riddle progression and reward server
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

	"github.com/ashureev/arctic-quest/internal/activity"
	"github.com/ashureev/arctic-quest/internal/api"
	"github.com/ashureev/arctic-quest/internal/assistant"
	"github.com/ashureev/arctic-quest/internal/catalog"
	"github.com/ashureev/arctic-quest/internal/config"
	"github.com/ashureev/arctic-quest/internal/feed"
	"github.com/ashureev/arctic-quest/internal/game"
	"github.com/ashureev/arctic-quest/internal/identity"
	"github.com/ashureev/arctic-quest/internal/middleware"
	"github.com/ashureev/arctic-quest/internal/store"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "dev", cfg.IsDevelopment())

	// Initialize dependencies.
	repo, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close repository", "error", closeErr)
		}
	}()

	if err := repo.Ping(context.Background()); err != nil {
		slog.Error("Database health check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database connected")

	recorder := activity.NewRecorder(repo, cfg.ActivityQueueSize, logger)
	defer func() {
		if closeErr := recorder.Close(); closeErr != nil {
			slog.Warn("Failed to flush activity journal", "error", closeErr)
		}
	}()

	hub := feed.NewHub(0)

	games := game.NewManager(catalog.Default(), game.Options{
		StartingCoins:  cfg.StartingCoins,
		CorrectDelay:   cfg.CorrectDelay,
		IncorrectDelay: cfg.IncorrectDelay,
		GateDelay:      cfg.GateDelay,
		TickInterval:   cfg.TickInterval,
		GateRequired:   cfg.GateRequired,
		Sink:           game.MultiSink{recorder, hub},
		Logger:         logger,
	})
	games.OnClose(hub.CloseUser)
	defer games.CloseAll()

	// Initialize handlers.
	baseHandler := api.NewHandler(repo, games, assistant.New(cfg.AssistantTypingDelay))
	healthHandler := api.NewHealthHandler(repo)
	gameHandler := api.NewGameHandler(baseHandler)
	dashboardHandler := api.NewDashboardHandler(baseHandler)
	assistantHandler := api.NewAssistantHandler(baseHandler)
	feedHandler := feed.NewHandler(hub, games, cfg.AllowedOrigins(), cfg.IsDevelopment())

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(identity.Middleware(repo, cfg.IsDevelopment()))

	r.Route("/api", func(r chi.Router) {
		healthHandler.RegisterHealth(r)
		gameHandler.RegisterRoutes(r)
		dashboardHandler.RegisterRoutes(r)
		assistantHandler.RegisterRoutes(r)
	})

	// WebSocket endpoint.
	r.Get("/ws/feed", feedHandler.ServeHTTP)

	// The feed is long-lived, so there is no WriteTimeout.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	game.StartIdleWorker(ctx, games, cfg.SweepInterval, cfg.SessionIdleTTL)

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...",
		"sessions", games.Len(),
		"activity_dropped", recorder.Dropped(),
		"feed_dropped", hub.Dropped(),
	)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		return
	}

	slog.Info("Server stopped successfully")
}
