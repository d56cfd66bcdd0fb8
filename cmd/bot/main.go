package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/lastman/internal/api"
	"github.com/KirkDiggler/lastman/internal/common/clock"
	"github.com/KirkDiggler/lastman/internal/common/uuid"
	"github.com/KirkDiggler/lastman/internal/config"
	"github.com/KirkDiggler/lastman/internal/export"
	"github.com/KirkDiggler/lastman/internal/handlers/discord"
	"github.com/KirkDiggler/lastman/internal/handlers/web"
	"github.com/KirkDiggler/lastman/internal/live"
	mutationRepo "github.com/KirkDiggler/lastman/internal/repositories/mutation_ledger"
	sessionRepo "github.com/KirkDiggler/lastman/internal/repositories/session"
	snapshotRepo "github.com/KirkDiggler/lastman/internal/repositories/snapshot"
	"github.com/KirkDiggler/lastman/internal/scheduler"
	"github.com/KirkDiggler/lastman/internal/services/competition"
	"github.com/KirkDiggler/lastman/internal/services/messaging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("bot exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	// Initialize repositories
	snapshots, err := snapshotRepo.NewRedis(&snapshotRepo.Config{RedisClient: redisClient})
	if err != nil {
		return fmt.Errorf("failed to create snapshot repository: %w", err)
	}
	sessions, err := sessionRepo.NewRedis(&sessionRepo.Config{RedisClient: redisClient})
	if err != nil {
		return fmt.Errorf("failed to create session repository: %w", err)
	}
	mutations, err := mutationRepo.NewRedis(&mutationRepo.Config{RedisClient: redisClient})
	if err != nil {
		return fmt.Errorf("failed to create mutation ledger repository: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := api.NewMetrics(registry)
	if err != nil {
		return fmt.Errorf("failed to register API metrics: %w", err)
	}

	clk := &clock.DefaultClock{}
	uuidGenerator := uuid.New()

	apiClient, err := api.New(&api.Config{
		BaseURL:       cfg.APIURL,
		HTTPClient:    &http.Client{Timeout: cfg.APITimeout},
		Logger:        logger,
		Metrics:       metrics,
		UUIDGenerator: uuidGenerator,
		Clock:         clk,
	})
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	// Initialize services
	competitionSvc, err := competition.New(&competition.Config{
		SnapshotTTL:        cfg.SnapshotTTL,
		APIClient:          apiClient,
		SnapshotRepo:       snapshots,
		SessionRepo:        sessions,
		MutationLedgerRepo: mutations,
		Clock:              clk,
		UUIDGenerator:      uuidGenerator,
		Logger:             logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create competition service: %w", err)
	}

	messagingSvc, err := messaging.NewService(&messaging.ServiceConfig{})
	if err != nil {
		return fmt.Errorf("failed to create messaging service: %w", err)
	}

	exporter, err := export.New(&export.Config{
		CompetitionService: competitionSvc,
		Clock:              clk,
		Logger:             logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create exporter: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := live.NewHub(logger)
	hubDone := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(hubDone)
	}()

	// Initialize Discord bot
	bot, err := discord.New(&discord.Config{
		Token:              cfg.DiscordToken,
		ApplicationID:      cfg.ApplicationID,
		GuildID:            cfg.GuildID,
		CompetitionService: competitionSvc,
		MessagingService:   messagingSvc,
		Exporter:           exporter,
		Logger:             logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create Discord bot: %w", err)
	}
	if err := bot.Start(); err != nil {
		return fmt.Errorf("failed to start Discord bot: %w", err)
	}

	sched, err := scheduler.New(&scheduler.Config{
		CompetitionService: competitionSvc,
		Notifier:           bot,
		Broadcaster:        hub,
		Interval:           cfg.WatchInterval,
		Logger:             logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	handler, err := web.New(&web.Config{
		CompetitionService: competitionSvc,
		Hub:                hub,
		Clock:              clk,
		Gatherer:           registry,
		AllowedOrigins:     cfg.CORSOrigins,
		Logger:             logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create HTTP handler: %w", err)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", "address", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
		}
		stop()
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()

	if err := sched.Stop(); err != nil {
		logger.Error("failed to stop scheduler", "error", err)
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful HTTP shutdown failed", "error", err)
		_ = server.Close()
	}
	if err := bot.Stop(); err != nil {
		logger.Error("failed to stop bot", "error", err)
	}
	<-hubDone

	logger.Info("bot has been shut down")
	return nil
}
