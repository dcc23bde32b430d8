package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/scorekeep/score-service/config"
	"github.com/scorekeep/score-service/internal/postgres"
	"github.com/scorekeep/score-service/internal/service"
	"github.com/scorekeep/score-service/internal/sweeper"
	httpx "github.com/scorekeep/score-service/internal/transport/http"
	"github.com/scorekeep/score-service/internal/transport/ws"
	"github.com/scorekeep/score-service/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
)

func main() {
	// --- config ---
	_ = godotenv.Load() // optional .env, e.g. DATABASE_URL for local runs

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger.Init(logger.Config{
		Env:       logger.Env(cfg.Logging.Env),
		Service:   cfg.Logging.Service,
		Version:   cfg.Logging.Version,
		Backend:   logger.Backend(cfg.Logging.Backend),
		AddSource: cfg.Logging.AddSource,
		Debug:     cfg.Logging.Debug,
	})
	slog.Info("starting score-service",
		"env", cfg.Logging.Env, "version", cfg.Logging.Version)

	// --- postgres ---
	ctx := context.Background()
	db, err := postgres.New(ctx, postgres.Config{
		DSN:      cfg.Postgres.DSN,
		MaxConns: cfg.Postgres.MaxConns,
		MinConns: cfg.Postgres.MinConns,
	})
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer db.Close()

	// --- repos ---
	roomRepo := postgres.NewRoomRepository(db.Pool)
	partRepo := postgres.NewParticipantRepository(db.Pool)
	gameRepo := postgres.NewGameRepository(db.Pool)
	scoreRepo := postgres.NewScoreRepository(db.Pool)

	// --- WS hub ---
	hub := ws.NewHub()
	wsServer := ws.NewServer(hub)

	// --- services ---
	clock := clockwork.NewRealClock()
	roomSvc := service.NewRoomService(roomRepo, partRepo, gameRepo, hub, clock, cfg.RoomTTL())
	roomSvc.SetCodeAttempts(cfg.Rooms.CodeAttempts)
	gameSvc := service.NewGameService(roomRepo, partRepo, gameRepo, scoreRepo, hub, clock)

	// --- sweeper ---
	sw := sweeper.New(roomRepo, clock, cfg.Sweeper.Schedule)
	if err := sw.Start(ctx); err != nil {
		log.Fatalf("sweeper: %v", err)
	}

	// --- HTTP ---
	handler := httpx.NewHandler(roomSvc, gameSvc)
	router := httpx.NewRouter(handler, wsServer)
	httpSrv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("http listen", "addr", cfg.HTTP.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal", "sig", sig)
	case err := <-errCh:
		slog.Error("server error", "err", err)
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sw.Stop()
	_ = httpSrv.Shutdown(ctxShutdown)
	slog.Info("stopped")
}
